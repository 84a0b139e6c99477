package rollup

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/michaelscutari/dugsh/internal/fstree"
)

const sampleTranscript = `$ cd /
$ ls
dir a
14848514 b.txt
8504156 c.dat
dir d
$ cd a
$ ls
dir e
29116 f
2557 g
62596 h.lst
$ cd e
$ ls
584 i
$ cd ..
$ cd ..
$ cd d
$ ls
4060174 j
8033020 d.log
5626152 d.ext
7214296 k
`

func build(t *testing.T, s string) *fstree.Tree {
	t.Helper()
	tree, err := fstree.Build(slices.Values(strings.Split(s, "\n")))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return tree
}

func sizeOf(t *testing.T, tree *fstree.Tree, path string) int64 {
	t.Helper()
	id, ok := tree.Lookup(path)
	if !ok {
		t.Fatalf("missing %s", path)
	}
	return EffectiveSize(tree, id)
}

func TestEffectiveSizeSample(t *testing.T) {
	tree := build(t, sampleTranscript)

	want := map[string]int64{
		"/":      48381165,
		"/a":     94853,
		"/a/e":   584,
		"/d":     24933642,
		"/b.txt": 14848514,
	}
	for path, size := range want {
		if got := sizeOf(t, tree, path); got != size {
			t.Fatalf("EffectiveSize(%s) = %d, want %d", path, got, size)
		}
	}
}

func TestEffectiveSizeSmallScenario(t *testing.T) {
	tree := build(t, "$ cd /\n$ ls\ndir a\n14848514 b.txt\n$ cd a\n$ ls\n29116 f\n")
	if got := EffectiveSize(tree, tree.Root()); got != 14848514+29116 {
		t.Fatalf("unexpected root size %d", got)
	}
}

func TestEffectiveSizeEmptyDirectory(t *testing.T) {
	tree := build(t, "$ cd /\ndir empty\n")
	if got := sizeOf(t, tree, "/empty"); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestEffectiveSizeMatchesFileTotal(t *testing.T) {
	var total int64
	for _, line := range strings.Split(sampleTranscript, "\n") {
		var size int64
		var name string
		if n, _ := fmt.Sscan(line, &size, &name); n == 2 {
			total += size
		}
	}
	tree := build(t, sampleTranscript)
	if got := EffectiveSize(tree, tree.Root()); got != total {
		t.Fatalf("root size %d, file total %d", got, total)
	}
}

func TestRelistingDoesNotChangeSizes(t *testing.T) {
	relisted := sampleTranscript + "$ cd /\n$ ls\ndir a\n14848514 b.txt\n$ cd d\n$ ls\n4060174 j\n"
	a := build(t, sampleTranscript)
	b := build(t, relisted)
	for _, path := range []string{"/", "/a", "/a/e", "/d"} {
		if sizeOf(t, a, path) != sizeOf(t, b, path) {
			t.Fatalf("size of %s changed after relisting", path)
		}
	}
}

func TestDirectoriesVisitsEachOnce(t *testing.T) {
	tree := build(t, sampleTranscript)

	var paths []string
	for dir := range Directories(tree) {
		paths = append(paths, tree.Path(dir))
	}
	if !slices.Equal(paths, []string{"/", "/a", "/a/e", "/d"}) {
		t.Fatalf("unexpected directories: %v", paths)
	}
}

func TestDirectoriesStopsEarly(t *testing.T) {
	tree := build(t, sampleTranscript)
	n := 0
	for range Directories(tree) {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Fatalf("expected early stop, got %d", n)
	}
}

func TestSumSmallDirectories(t *testing.T) {
	tree := build(t, sampleTranscript)
	if got := SumSmallDirectories(tree, 100000); got != 95437 {
		t.Fatalf("expected 95437, got %d", got)
	}
	if got := SumSmallDirectories(tree, 0); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestSpaceNeeded(t *testing.T) {
	tree := build(t, sampleTranscript)
	s := SpaceNeeded(tree, 70000000, 30000000)
	if s.Used != 48381165 || s.Free != 21618835 || s.Needed != 8381165 {
		t.Fatalf("unexpected space: %+v", s)
	}

	s = SpaceNeeded(tree, 100000000, 30000000)
	if s.Needed != 0 {
		t.Fatalf("expected nothing needed, got %d", s.Needed)
	}
}

func TestSmallestDirectoryAtLeast(t *testing.T) {
	tree := build(t, sampleTranscript)
	size, dir, err := SmallestDirectoryAtLeast(tree, 70000000, 30000000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if size != 24933642 || tree.Path(dir) != "/d" {
		t.Fatalf("expected /d with 24933642, got %s with %d", tree.Path(dir), size)
	}
}

func TestSmallestDirectoryAtLeastNoCandidate(t *testing.T) {
	tree := build(t, sampleTranscript)
	_, dir, err := SmallestDirectoryAtLeast(tree, 100, 1000)
	if !errors.Is(err, ErrNoCandidate) {
		t.Fatalf("expected ErrNoCandidate, got %v", err)
	}
	if dir != fstree.None {
		t.Fatalf("expected no directory, got %d", dir)
	}
}
