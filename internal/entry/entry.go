package entry

import "time"

// Kind represents the type of a tree entry.
type Kind uint8

const (
	KindFile Kind = 0
	KindDir  Kind = 1
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDir:
		return "dir"
	default:
		return "unknown"
	}
}

// Rollup represents aggregated statistics for a directory.
type Rollup struct {
	DirID      int64
	TotalSize  int64
	TotalFiles int64
	TotalDirs  int64
}

// ReplayMeta holds metadata about a transcript replay.
type ReplayMeta struct {
	Source    string
	StartTime time.Time
	EndTime   time.Time
	LineCount int64
	TotalSize int64
	FileCount int64
	DirCount  int64
}
