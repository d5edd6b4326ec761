package snapshot

import "strings"

// Policy holds the keyword lists driving runtime-process classification.
// Membership is operational policy, not structure; it comes from config.
type Policy struct {
	Include []string
	Exclude []string
}

// Classify labels a command line as relevant or noise. Matching is
// case-insensitive substring containment. An exclusion match suppresses
// the record unless an inclusion keyword also matches: inclusion wins.
func Classify(command string, policy Policy) Kind {
	c := strings.ToLower(command)
	if containsAny(c, policy.Exclude) && !containsAny(c, policy.Include) {
		return KindNoise
	}
	return KindRelevant
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(s, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
