package rollup

import (
	"github.com/michaelscutari/dugsh/internal/entry"
	"github.com/michaelscutari/dugsh/internal/fstree"
)

// ProgressFunc reports rollup progress.
type ProgressFunc func(done, total int64, depth, maxDepth int)

// Builder computes a rollup table for every directory, bottom-up.
// The table feeds the browse index; queries use EffectiveSize instead.
type Builder struct {
	tree     *fstree.Tree
	cache    map[fstree.ID]*entry.Rollup
	progress ProgressFunc
}

// NewBuilder creates a new rollup builder.
func NewBuilder(t *fstree.Tree) *Builder {
	return &Builder{
		tree:  t,
		cache: make(map[fstree.ID]*entry.Rollup),
	}
}

// SetProgressFunc sets a callback for rollup progress updates.
func (b *Builder) SetProgressFunc(f ProgressFunc) {
	b.progress = f
}

// Build computes rollups for all directories, processing from deepest to
// shallowest so each child's totals exist before its parent needs them.
// Rollups are returned keyed by directory.
func (b *Builder) Build() map[fstree.ID]entry.Rollup {
	byDepth := make(map[int][]fstree.ID)
	maxDepth := 0
	var totalDirs int64
	for dir := range Directories(b.tree) {
		d := b.tree.Depth(dir)
		byDepth[d] = append(byDepth[d], dir)
		maxDepth = max(maxDepth, d)
		totalDirs++
	}

	var processed int64
	for depth := maxDepth; depth >= 0; depth-- {
		for _, dir := range byDepth[depth] {
			b.cache[dir] = b.computeRollup(dir)
			processed++
			if b.progress != nil && (processed == totalDirs || processed%2048 == 0) {
				b.progress(processed, totalDirs, depth, maxDepth)
			}
		}
	}

	out := make(map[fstree.ID]entry.Rollup, len(b.cache))
	for id, r := range b.cache {
		out[id] = *r
	}
	return out
}

func (b *Builder) computeRollup(dir fstree.ID) *entry.Rollup {
	r := &entry.Rollup{DirID: int64(dir)}
	for c := range b.tree.Children(dir) {
		if !b.tree.IsDir(c) {
			r.TotalSize += b.tree.Size(c)
			r.TotalFiles++
			continue
		}
		// Children are one level deeper and already cached.
		child := b.cache[c]
		r.TotalSize += child.TotalSize
		r.TotalFiles += child.TotalFiles
		r.TotalDirs += child.TotalDirs + 1
	}
	return r
}

// Compute is shorthand for NewBuilder(t).Build().
func Compute(t *fstree.Tree) map[fstree.ID]entry.Rollup {
	return NewBuilder(t).Build()
}
