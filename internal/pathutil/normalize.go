package pathutil

import (
	"path"
	"strings"
)

// Root is the path of the transcript's root directory.
const Root = "/"

// Normalize returns a canonical tree path string.
// It removes trailing slashes, collapses "." and "..", and
// anchors the result at Root.
func Normalize(p string) string {
	if p == "" {
		return Root
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}

// Join appends a child name to a directory path.
func Join(dir, name string) string {
	if dir == Root || dir == "" {
		return Root + name
	}
	return dir + "/" + name
}
