package transcript

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"
)

// GenerateOptions controls Generate.
type GenerateOptions struct {
	// MaxDepth stops descending below this many levels under the root.
	// Zero means no limit.
	MaxDepth int
}

// GenerateStats reports what Generate wrote.
type GenerateStats struct {
	Dirs    int64
	Files   int64
	Bytes   int64
	Skipped int64 // names that cannot be written as a listing line, and non-regular files
}

// Generate walks root in fsys and writes a transcript that replays to the same
// tree: one "$ cd /" and "$ ls" for the root, then a cd/ls/cd .. round trip
// for every subdirectory in lexical order.
func Generate(w io.Writer, fsys fs.FS, root string, opts GenerateOptions) (GenerateStats, error) {
	g := &generator{fsys: fsys, opts: opts, w: bufio.NewWriter(w)}
	g.line("$ cd /")
	if err := g.walk(root, 0); err != nil {
		return g.stats, err
	}
	if err := g.w.Flush(); err != nil {
		return g.stats, err
	}
	return g.stats, g.err
}

type generator struct {
	fsys  fs.FS
	opts  GenerateOptions
	w     *bufio.Writer
	err   error
	stats GenerateStats
}

func (g *generator) line(format string, args ...any) {
	if g.err != nil {
		return
	}
	_, g.err = fmt.Fprintf(g.w, format+"\n", args...)
}

func (g *generator) walk(dir string, depth int) error {
	entries, err := fs.ReadDir(g.fsys, dir)
	if err != nil {
		return fmt.Errorf("read %s: %w", dir, err)
	}

	g.line("$ ls")
	var subdirs []string
	for _, de := range entries {
		name := de.Name()
		if !writableName(name) {
			g.stats.Skipped++
			continue
		}
		switch {
		case de.IsDir():
			g.line("dir %s", name)
			g.stats.Dirs++
			subdirs = append(subdirs, name)
		case de.Type().IsRegular():
			info, err := de.Info()
			if err != nil {
				g.stats.Skipped++
				continue
			}
			g.line("%d %s", info.Size(), name)
			g.stats.Files++
			g.stats.Bytes += info.Size()
		default:
			g.stats.Skipped++
		}
	}

	if g.opts.MaxDepth > 0 && depth+1 >= g.opts.MaxDepth {
		return g.err
	}
	for _, name := range subdirs {
		g.line("$ cd %s", name)
		if err := g.walk(path.Join(dir, name), depth+1); err != nil {
			return err
		}
		g.line("$ cd ..")
	}
	return g.err
}

// writableName reports whether name survives a round trip through a listing
// line and a cd command.
func writableName(name string) bool {
	return validName(name) && !strings.ContainsAny(name, " \t\r\n")
}
