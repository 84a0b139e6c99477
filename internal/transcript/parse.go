// Package transcript classifies terminal-session lines into events.
package transcript

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	commandMarker = "$ "
	dirMarker     = "dir "
)

// ErrMalformedLine is returned when a line matches no recognized shape.
var ErrMalformedLine = errors.New("malformed line")

// Parse converts one transcript line into an Event. Shapes are tried in order:
// "$ cd <target>", "$ ls", "dir <name>", "<size> <name>". An empty line is
// malformed; callers decide whether trailing blanks are tolerated.
func Parse(line string) (Event, error) {
	if rest, ok := strings.CutPrefix(line, commandMarker); ok {
		return parseCommand(line, rest)
	}

	if name, ok := strings.CutPrefix(line, dirMarker); ok {
		fields := strings.Fields(name)
		if len(fields) != 1 {
			return nil, malformed(line, "directory listing needs exactly one name")
		}
		if !validName(fields[0]) {
			return nil, malformed(line, "invalid directory name")
		}
		return DirectoryEntry{Name: fields[0]}, nil
	}

	fields := strings.Fields(line)
	if len(fields) != 2 {
		return nil, malformed(line, "expected <size> <name>")
	}
	if fields[0][0] < '0' || fields[0][0] > '9' {
		return nil, malformed(line, "size is not a non-negative integer")
	}
	size, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil || size < 0 {
		return nil, malformed(line, "size is not a non-negative integer")
	}
	if !validName(fields[1]) {
		return nil, malformed(line, "invalid file name")
	}
	return FileEntry{Name: fields[1], Size: size}, nil
}

func parseCommand(line, rest string) (Event, error) {
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return nil, malformed(line, "empty command")
	}

	switch fields[0] {
	case "cd":
		if len(fields) != 2 {
			return nil, malformed(line, "cd needs exactly one target")
		}
		switch fields[1] {
		case "/":
			return ChangeDirectory{Target: TargetRoot}, nil
		case "..":
			return ChangeDirectory{Target: TargetParent}, nil
		default:
			if !validName(fields[1]) {
				return nil, malformed(line, "invalid cd target")
			}
			return ChangeDirectory{Target: TargetNamed, Name: fields[1]}, nil
		}
	case "ls":
		if len(fields) != 1 {
			return nil, malformed(line, "ls takes no arguments")
		}
		return ListDirectory{}, nil
	}

	return nil, malformed(line, fmt.Sprintf("unknown command %q", fields[0]))
}

// validName reports whether name can be a single path component: non-empty,
// no separator, and not "." or "..".
func validName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.Contains(name, "/")
}

func malformed(line, reason string) error {
	return fmt.Errorf("%w %q: %s", ErrMalformedLine, line, reason)
}
