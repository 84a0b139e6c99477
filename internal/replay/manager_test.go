package replay

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/michaelscutari/dugsh/internal/db"
	"github.com/michaelscutari/dugsh/internal/fstree"
	"github.com/michaelscutari/dugsh/internal/rollup"
	"github.com/michaelscutari/dugsh/internal/transcript"
)

const sampleTranscript = "$ cd /\r\n$ ls\r\ndir a\r\n14848514 b.txt\r\n$ cd a\r\n$ ls\r\n29116 f\r\n\r\n"

func TestManagerRunFileIndexes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	if err := os.WriteFile(path, []byte(sampleTranscript), 0644); err != nil {
		t.Fatalf("write transcript: %v", err)
	}

	var stages []string
	mgr := NewManager(nil)
	mgr.SetStageFunc(func(s string) { stages = append(stages, s) })

	ctx := context.Background()
	res, err := mgr.RunFile(ctx, path)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Meta.LineCount != 8 || res.Meta.FileCount != 2 || res.Meta.DirCount != 2 {
		t.Fatalf("unexpected meta %+v", res.Meta)
	}
	if res.Meta.TotalSize != rollup.EffectiveSize(res.Tree, res.Tree.Root()) {
		t.Fatalf("meta total %d disagrees with tree", res.Meta.TotalSize)
	}

	database, err := mgr.Index(ctx, res)
	if err != nil {
		t.Fatalf("index: %v", err)
	}
	defer database.Close()

	r := db.NewReader(database)
	ru, err := r.GetRollup("/")
	if err != nil || ru == nil || ru.TotalSize != 14848514+29116 {
		t.Fatalf("unexpected root rollup %+v %v", ru, err)
	}
	meta, err := r.GetReplayMeta()
	if err != nil || meta.Source != path {
		t.Fatalf("unexpected stored meta %+v %v", meta, err)
	}

	want := []string{"replay", "rollups", "load", "indexes", "done"}
	if strings.Join(stages, ",") != strings.Join(want, ",") {
		t.Fatalf("unexpected stages %v", stages)
	}
}

func TestManagerRunReportsLine(t *testing.T) {
	mgr := NewManager(nil)
	_, err := mgr.Run(context.Background(), "bad", strings.NewReader("$ cd /\n$ cd ..\n"))
	if !errors.Is(err, fstree.ErrNoParent) {
		t.Fatalf("expected ErrNoParent, got %v", err)
	}
	var be *fstree.BuildError
	if !errors.As(err, &be) || be.Line != 2 {
		t.Fatalf("expected error at line 2, got %v", err)
	}

	_, err = mgr.Run(context.Background(), "bad", strings.NewReader("$ cd /\nnonsense here now\n"))
	if !errors.Is(err, transcript.ErrMalformedLine) {
		t.Fatalf("expected ErrMalformedLine, got %v", err)
	}
}

func TestManagerRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewManager(nil).Run(ctx, "x", strings.NewReader("$ cd /\n"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestManagerRunFileMissing(t *testing.T) {
	if _, err := NewManager(nil).RunFile(context.Background(), filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestManagerRejectsSeparatorInNames(t *testing.T) {
	mgr := NewManager(nil)
	ctx := context.Background()

	_, err := mgr.Run(ctx, "slashed", strings.NewReader("$ cd /\ndir a\ndir a/b\n$ cd a\ndir b\n"))
	if !errors.Is(err, transcript.ErrMalformedLine) {
		t.Fatalf("expected ErrMalformedLine, got %v", err)
	}
	var be *fstree.BuildError
	if !errors.As(err, &be) || be.Line != 3 {
		t.Fatalf("expected build error at line 3, got %v", err)
	}

	_, err = mgr.Run(ctx, "dotted", strings.NewReader("$ cd /\n$ ls\n10 ..\n"))
	if !errors.Is(err, transcript.ErrMalformedLine) {
		t.Fatalf("expected ErrMalformedLine for \"..\" listing, got %v", err)
	}

	res, err := mgr.Run(ctx, "nested", strings.NewReader("$ cd /\ndir a\ndir b\n$ cd a\ndir b\n$ cd b\n7 x\n"))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	database, err := mgr.Index(ctx, res)
	if err != nil {
		t.Fatalf("index: %v", err)
	}
	defer database.Close()

	ru, err := db.NewReader(database).GetRollup("/a/b")
	if err != nil || ru == nil || ru.TotalSize != 7 {
		t.Fatalf("expected /a/b rollup of 7, got %+v, %v", ru, err)
	}
	ru, err = db.NewReader(database).GetRollup("/b")
	if err != nil || ru == nil || ru.TotalSize != 0 {
		t.Fatalf("expected empty /b rollup, got %+v, %v", ru, err)
	}
}
