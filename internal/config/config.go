package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"vamphunter/internal/snapshot"
)

const (
	defaultTopLimit      = 10
	defaultRuntimeFilter = "node"
	defaultManifestDepth = 3

	envTopLimit      = "VAMPHUNTER_TOP_LIMIT"
	envRuntimeFilter = "VAMPHUNTER_RUNTIME_FILTER"
)

// Config aggregates the tool's policy knobs. The classifier keyword lists
// are operational policy, not structure: which commands count as noise is
// a site decision, so they live here rather than in code.
type Config struct {
	// TopLimit caps how many rows the ranked sub-views display.
	TopLimit int
	// RuntimeFilter is the substring a command line must contain to be a
	// dev-runtime candidate.
	RuntimeFilter string
	// IncludeKeywords override ExcludeKeywords during classification.
	IncludeKeywords []string
	ExcludeKeywords []string
	// ManifestDepth bounds the package.json scan.
	ManifestDepth int
}

// Policy returns the classifier view of the config.
func (c Config) Policy() snapshot.Policy {
	return snapshot.Policy{Include: c.IncludeKeywords, Exclude: c.ExcludeKeywords}
}

func defaults() Config {
	return Config{
		TopLimit:      defaultTopLimit,
		RuntimeFilter: defaultRuntimeFilter,
		ManifestDepth: defaultManifestDepth,
		IncludeKeywords: []string{
			"npm run",
			"yarn dev",
			"pnpm dev",
			"vite",
			"nodemon",
			"next dev",
		},
		ExcludeKeywords: []string{
			"visual studio code",
			"code helper",
			"electron",
			"slack",
			"discord",
			"typingsinstaller",
		},
	}
}

// Load builds a Config from an optional YAML file path plus environment
// overrides.
func Load(path string) (Config, error) {
	cfg := defaults()

	if path != "" {
		fileCfg, err := loadFromFile(path)
		if err != nil {
			return cfg, fmt.Errorf("load config %s: %w", path, err)
		}
		if fileCfg.TopLimit != 0 {
			cfg.TopLimit = fileCfg.TopLimit
		}
		if fileCfg.RuntimeFilter != "" {
			cfg.RuntimeFilter = fileCfg.RuntimeFilter
		}
		if fileCfg.IncludeKeywords != nil {
			cfg.IncludeKeywords = fileCfg.IncludeKeywords
		}
		if fileCfg.ExcludeKeywords != nil {
			cfg.ExcludeKeywords = fileCfg.ExcludeKeywords
		}
		if fileCfg.ManifestDepth != 0 {
			cfg.ManifestDepth = fileCfg.ManifestDepth
		}
	}

	applyEnvOverrides(&cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(envTopLimit); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TopLimit = n
		} else {
			log.Printf("invalid %s value %q", envTopLimit, v)
		}
	}
	if v := os.Getenv(envRuntimeFilter); v != "" {
		cfg.RuntimeFilter = v
	}
}

type fileConfig struct {
	TopLimit        int      `yaml:"top_limit"`
	RuntimeFilter   string   `yaml:"runtime_filter"`
	IncludeKeywords []string `yaml:"include_keywords"`
	ExcludeKeywords []string `yaml:"exclude_keywords"`
	ManifestDepth   int      `yaml:"manifest_depth"`
}

func loadFromFile(path string) (fileConfig, error) {
	var raw fileConfig

	data, err := os.ReadFile(path)
	if err != nil {
		return raw, err
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return raw, err
	}

	if raw.TopLimit < 0 {
		return raw, errors.New("top_limit must be > 0")
	}
	if raw.ManifestDepth < 0 {
		return raw, errors.New("manifest_depth must be > 0")
	}
	return raw, nil
}
