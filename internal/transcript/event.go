package transcript

import "fmt"

// Event is a single classified transcript line. The set of implementations
// is closed: ChangeDirectory, ListDirectory, DirectoryEntry and FileEntry.
type Event interface {
	event()
	String() string
}

// Target selects where a ChangeDirectory moves the cursor.
type Target uint8

const (
	TargetNamed Target = iota
	TargetRoot
	TargetParent
)

// ChangeDirectory is "$ cd <target>". Name is set only for TargetNamed.
type ChangeDirectory struct {
	Target Target
	Name   string
}

// ListDirectory is "$ ls". It carries no state change.
type ListDirectory struct{}

// DirectoryEntry is a "dir <name>" listing line.
type DirectoryEntry struct {
	Name string
}

// FileEntry is a "<size> <name>" listing line.
type FileEntry struct {
	Name string
	Size int64
}

func (ChangeDirectory) event() {}
func (ListDirectory) event()   {}
func (DirectoryEntry) event()  {}
func (FileEntry) event()       {}

func (c ChangeDirectory) String() string {
	switch c.Target {
	case TargetRoot:
		return "cd /"
	case TargetParent:
		return "cd .."
	default:
		return "cd " + c.Name
	}
}

func (ListDirectory) String() string { return "ls" }

func (d DirectoryEntry) String() string { return "dir " + d.Name }

func (f FileEntry) String() string { return fmt.Sprintf("%d %s", f.Size, f.Name) }
