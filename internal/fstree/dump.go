package fstree

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// DumpOptions controls Dump output.
type DumpOptions struct {
	// DirSize, when set, is called for every directory and its result is
	// printed next to the directory name.
	DirSize func(ID) int64

	// FormatSize renders sizes. Defaults to the plain decimal byte count.
	FormatSize func(int64) string
}

// Dump writes the tree in listing form, one node per line, children indented
// two spaces below their parent in discovery order:
//
//	- / (dir)
//	  - a (dir)
//	    - f (file, size=29116)
func Dump(w io.Writer, t *Tree, opts DumpOptions) error {
	format := opts.FormatSize
	if format == nil {
		format = func(n int64) string { return fmt.Sprintf("%d", n) }
	}

	bw := bufio.NewWriter(w)
	type frame struct {
		id    ID
		depth int
	}
	stack := []frame{{id: t.Root()}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		indent := strings.Repeat("  ", f.depth)
		if t.IsDir(f.id) {
			if opts.DirSize != nil {
				fmt.Fprintf(bw, "%s- %s (dir, size=%s)\n", indent, t.Name(f.id), format(opts.DirSize(f.id)))
			} else {
				fmt.Fprintf(bw, "%s- %s (dir)\n", indent, t.Name(f.id))
			}
		} else {
			fmt.Fprintf(bw, "%s- %s (file, size=%s)\n", indent, t.Name(f.id), format(t.Size(f.id)))
		}

		children := t.nodes[f.id].children
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, frame{id: children[i], depth: f.depth + 1})
		}
	}
	return bw.Flush()
}
