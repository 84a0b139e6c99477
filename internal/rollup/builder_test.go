package rollup

import "testing"

func TestBuilderRollup(t *testing.T) {
	tree := build(t, sampleTranscript)

	var calls int
	builder := NewBuilder(tree)
	builder.SetProgressFunc(func(done, total int64, depth, maxDepth int) {
		calls++
		if done != total || total != 4 || maxDepth != 2 {
			t.Fatalf("unexpected progress %d/%d depth=%d max=%d", done, total, depth, maxDepth)
		}
	})
	rollups := builder.Build()

	if len(rollups) != 4 {
		t.Fatalf("expected 4 rollups, got %d", len(rollups))
	}
	if calls != 1 {
		t.Fatalf("expected one final progress call, got %d", calls)
	}

	a, _ := tree.Lookup("/a")
	ra := rollups[a]
	if ra.TotalSize != 94853 || ra.TotalFiles != 4 || ra.TotalDirs != 1 {
		t.Fatalf("unexpected /a rollup: %+v", ra)
	}

	root := rollups[tree.Root()]
	if root.TotalSize != 48381165 || root.TotalFiles != 10 || root.TotalDirs != 3 {
		t.Fatalf("unexpected / rollup: %+v", root)
	}
}

func TestComputeAgreesWithEffectiveSize(t *testing.T) {
	tree := build(t, sampleTranscript)
	for id, r := range Compute(tree) {
		if want := EffectiveSize(tree, id); r.TotalSize != want {
			t.Fatalf("rollup for %s has %d, effective size %d", tree.Path(id), r.TotalSize, want)
		}
		if r.DirID != int64(id) {
			t.Fatalf("rollup DirID %d for node %d", r.DirID, id)
		}
	}
}
