package fstree

import (
	"errors"
	"fmt"
	"iter"

	"github.com/michaelscutari/dugsh/internal/entry"
	"github.com/michaelscutari/dugsh/internal/transcript"
)

var (
	// ErrUnknownDirectory is returned for "cd <name>" when the cursor has no
	// directory child of that name.
	ErrUnknownDirectory = errors.New("unknown directory")

	// ErrNoParent is returned for "cd .." at the root.
	ErrNoParent = errors.New("no parent directory")
)

// BuildError identifies the transcript line that aborted a build.
type BuildError struct {
	Line int // 1-based
	Text string
	Err  error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("line %d (%q): %v", e.Line, e.Text, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }

// Builder replays transcript events into a Tree, tracking the current
// directory as a cursor.
type Builder struct {
	tree   *Tree
	cursor ID

	line       int
	blankLine  int // first unconsumed blank line, 0 if none
	blankCount int
	err        error
}

// NewBuilder creates a builder whose tree holds only the root and whose
// cursor is at the root.
func NewBuilder() *Builder {
	return &Builder{
		tree:   newTree(),
		cursor: RootID,
	}
}

// Cursor returns the current directory.
func (b *Builder) Cursor() ID { return b.cursor }

// Tree returns the tree under construction. Callers must not retain it past
// Finish if they intend to keep feeding the builder.
func (b *Builder) Tree() *Tree { return b.tree }

// Apply performs one event's transition. A failed transition leaves the
// cursor and tree unchanged.
func (b *Builder) Apply(ev transcript.Event) error {
	switch ev := ev.(type) {
	case transcript.ChangeDirectory:
		return b.changeDirectory(ev)
	case transcript.ListDirectory:
		return nil
	case transcript.DirectoryEntry:
		if _, ok := b.tree.Child(b.cursor, ev.Name); !ok {
			b.tree.add(b.cursor, ev.Name, entry.KindDir, 0)
		}
		return nil
	case transcript.FileEntry:
		if _, ok := b.tree.Child(b.cursor, ev.Name); !ok {
			b.tree.add(b.cursor, ev.Name, entry.KindFile, ev.Size)
		}
		return nil
	default:
		return fmt.Errorf("unsupported event %T", ev)
	}
}

func (b *Builder) changeDirectory(cd transcript.ChangeDirectory) error {
	switch cd.Target {
	case transcript.TargetRoot:
		b.cursor = RootID
	case transcript.TargetParent:
		parent, ok := b.tree.Parent(b.cursor)
		if !ok {
			return ErrNoParent
		}
		b.cursor = parent
	default:
		child, ok := b.tree.Child(b.cursor, cd.Name)
		if !ok || !b.tree.IsDir(child) {
			return fmt.Errorf("%w %q in %s", ErrUnknownDirectory, cd.Name, b.tree.Path(b.cursor))
		}
		b.cursor = child
	}
	return nil
}

// Feed parses and applies the next transcript line. Blank lines are held
// back: they are accepted only if nothing but blank lines follows them.
// After the first error every later call returns that same error.
func (b *Builder) Feed(line string) error {
	if b.err != nil {
		return b.err
	}
	b.line++

	if line == "" {
		if b.blankCount == 0 {
			b.blankLine = b.line
		}
		b.blankCount++
		return nil
	}
	if b.blankCount > 0 {
		return b.fail(b.blankLine, "", fmt.Errorf("%w: blank line", transcript.ErrMalformedLine))
	}

	ev, err := transcript.Parse(line)
	if err != nil {
		return b.fail(b.line, line, err)
	}
	if err := b.Apply(ev); err != nil {
		return b.fail(b.line, line, err)
	}
	return nil
}

func (b *Builder) fail(line int, text string, err error) error {
	b.err = &BuildError{Line: line, Text: text, Err: err}
	return b.err
}

// Lines returns the number of lines fed so far.
func (b *Builder) Lines() int { return b.line }

// Finish returns the finished tree. The builder must not be used afterwards.
func (b *Builder) Finish() (*Tree, error) {
	if b.err != nil {
		return nil, b.err
	}
	t := b.tree
	b.tree = nil
	b.err = errors.New("builder already finished")
	return t, nil
}

// Build replays every line of a transcript and returns the finished tree.
func Build(lines iter.Seq[string]) (*Tree, error) {
	b := NewBuilder()
	for line := range lines {
		if err := b.Feed(line); err != nil {
			return nil, err
		}
	}
	return b.Finish()
}
