// Package rollup answers size questions about a finished tree.
package rollup

import (
	"errors"
	"iter"

	"github.com/michaelscutari/dugsh/internal/fstree"
)

// ErrNoCandidate is returned when no directory is large enough.
var ErrNoCandidate = errors.New("no directory meets the size target")

// EffectiveSize returns a file's size, or the total size of every file
// below a directory. It walks the subtree on every call.
func EffectiveSize(t *fstree.Tree, id fstree.ID) int64 {
	if !t.IsDir(id) {
		return t.Size(id)
	}
	var total int64
	for c := range t.Children(id) {
		total += EffectiveSize(t, c)
	}
	return total
}

// Directories yields every directory in the tree, root first, depth-first in
// discovery order. Each directory is visited exactly once.
func Directories(t *fstree.Tree) iter.Seq[fstree.ID] {
	return func(yield func(fstree.ID) bool) {
		stack := []fstree.ID{t.Root()}
		for len(stack) > 0 {
			dir := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(dir) {
				return
			}

			mark := len(stack)
			for c := range t.Children(dir) {
				if t.IsDir(c) {
					stack = append(stack, c)
				}
			}
			// Reverse so the first-discovered child pops first.
			for i, j := mark, len(stack)-1; i < j; i, j = i+1, j-1 {
				stack[i], stack[j] = stack[j], stack[i]
			}
		}
	}
}

// SumSmallDirectories adds up the effective size of every directory whose
// effective size is at most threshold. Nested directories count again inside
// their ancestors.
func SumSmallDirectories(t *fstree.Tree, threshold int64) int64 {
	var sum int64
	for dir := range Directories(t) {
		if size := EffectiveSize(t, dir); size <= threshold {
			sum += size
		}
	}
	return sum
}

// Space describes disk usage for a tree on a device of fixed capacity.
type Space struct {
	Capacity     int64
	RequiredFree int64
	Used         int64
	Free         int64
	Needed       int64
}

// SpaceNeeded computes how much must be deleted to reach requiredFree bytes
// of free space. Needed is never negative.
func SpaceNeeded(t *fstree.Tree, capacity, requiredFree int64) Space {
	used := EffectiveSize(t, t.Root())
	free := capacity - used
	return Space{
		Capacity:     capacity,
		RequiredFree: requiredFree,
		Used:         used,
		Free:         free,
		Needed:       max(0, requiredFree-free),
	}
}

// SmallestDirectoryAtLeast returns the effective size of the smallest
// directory whose deletion frees enough space, along with that directory.
func SmallestDirectoryAtLeast(t *fstree.Tree, capacity, requiredFree int64) (int64, fstree.ID, error) {
	needed := SpaceNeeded(t, capacity, requiredFree).Needed

	best, bestID := int64(-1), fstree.None
	for dir := range Directories(t) {
		size := EffectiveSize(t, dir)
		if size >= needed && (best < 0 || size < best) {
			best, bestID = size, dir
		}
	}
	if best < 0 {
		return 0, fstree.None, ErrNoCandidate
	}
	return best, bestID, nil
}
