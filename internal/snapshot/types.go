package snapshot

// CommandUnavailable is the placeholder command line used when both detail
// lookups fail for a process.
const CommandUnavailable = "Details unavailable"

// Listing is one raw row from a socket-enumeration pass, before
// deduplication and detail lookup.
type Listing struct {
	PID  int32
	Name string
	Port string
}

// Process is a normalized listening-socket process record. Records are
// immutable and scoped to a single snapshot; uniqueness key is (PID, Port).
type Process struct {
	PID      int32
	Name     string
	Port     string
	MemoryKB int64 // resident memory; 0 means "unknown", not an error
	Command  string
}

// FormattedMemory returns the record's resident memory in human units.
func (p Process) FormattedMemory() string {
	return FormatMemory(p.MemoryKB)
}

// Kind classifies a runtime process as operator-relevant or background noise.
type Kind string

const (
	KindRelevant Kind = "relevant"
	KindNoise    Kind = "noise"
)

// RuntimeProcess is a memory-focused record for a development-runtime
// process (the 'n' sub-view). Kind is derived by Classify and never set
// directly.
type RuntimeProcess struct {
	User       string
	PID        int32
	CPUPercent float64
	MemPercent float64
	VirtualKB  int64
	ResidentKB int64
	Command    string
	Kind       Kind
}

// MemoryStats aggregates system memory counters in MB. The struct is
// intentionally partial: counters the source does not report stay zero.
type MemoryStats struct {
	FreeMB       uint64
	ActiveMB     uint64
	InactiveMB   uint64
	WiredMB      uint64
	CompressedMB uint64
}
