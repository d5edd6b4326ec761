package snapshot

import "fmt"

const (
	kbPerMB = 1024
	kbPerGB = 1024 * 1024
)

// FormatMemory renders a kilobyte quantity in human units. Values below
// 1024 KB stay in KB, below 1024 MB in MB, the rest in GB with one decimal.
func FormatMemory(kb int64) string {
	switch {
	case kb >= kbPerGB:
		return fmt.Sprintf("%.1f GB", float64(kb)/float64(kbPerGB))
	case kb >= kbPerMB:
		return fmt.Sprintf("%.1f MB", float64(kb)/float64(kbPerMB))
	default:
		return fmt.Sprintf("%d KB", kb)
	}
}
