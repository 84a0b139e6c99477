package tui

import (
	"context"
	"strings"
	"testing"

	"github.com/michaelscutari/dugsh/internal/db"
	"github.com/michaelscutari/dugsh/internal/replay"

	tea "github.com/charmbracelet/bubbletea"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	return newTestModelWith(t, Options{Threshold: 100000, Candidate: "/a/e", Needed: 500})
}

func newTestModelWith(t *testing.T, opts Options) *Model {
	t.Helper()
	mgr := replay.NewManager(nil)
	res, err := mgr.Run(context.Background(), "sample", strings.NewReader(
		"$ cd /\n$ ls\ndir a\n14848514 b.txt\n$ cd a\n$ ls\ndir e\n29116 f\n$ cd e\n$ ls\n584 i\n"))
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	database, err := mgr.Index(context.Background(), res)
	if err != nil {
		t.Fatalf("index: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	m := NewModel(db.NewReader(database), opts)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m.Update(m.loadInitialData())
	return m
}

func TestModelLoadsRoot(t *testing.T) {
	m := newTestModel(t)
	if m.err != nil {
		t.Fatalf("load error: %v", m.err)
	}
	if len(m.entries) != 2 || m.entries[0].Name != "b.txt" {
		t.Fatalf("unexpected root entries %+v", m.entries)
	}
	if !strings.Contains(m.View(), "b.txt") {
		t.Fatalf("view missing entries")
	}
}

func TestModelNavigatesIntoAndOut(t *testing.T) {
	m := newTestModel(t)

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("expected load command for directory")
	}
	m.Update(cmd())
	if m.currentPath != "/a" || len(m.entries) != 2 {
		t.Fatalf("expected /a with 2 entries, got %s %+v", m.currentPath, m.entries)
	}
	if m.entries[1].Name != "e" || m.classify(m.entries[1]) != rowCandidate {
		t.Fatalf("expected /a/e to be marked as the candidate, got %+v", m.entries[1])
	}
	if m.classify(m.entries[0]) != rowFile {
		t.Fatalf("expected /a/f to be a file row")
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if cmd == nil {
		t.Fatalf("expected load command for parent")
	}
	m.Update(cmd())
	if m.currentPath != "/" {
		t.Fatalf("expected root, got %s", m.currentPath)
	}
}

func TestModelFilter(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	if !m.filterActive {
		t.Fatalf("expected filter mode")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("txt")})
	if len(m.entries) != 1 || m.entries[0].Name != "b.txt" {
		t.Fatalf("unexpected filtered entries %+v", m.entries)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.filter != "" || len(m.entries) != 2 {
		t.Fatalf("expected filter cleared")
	}
}

func TestFormatBar(t *testing.T) {
	if got := formatBar(0, 100); !strings.Contains(got, "0%") {
		t.Fatalf("unexpected empty bar %q", got)
	}
	if got := formatBar(50, 100); !strings.Contains(got, "50%") {
		t.Fatalf("unexpected half bar %q", got)
	}
}

func TestModelSmallOnly(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("m")})
	if len(m.entries) != 1 || m.entries[0].Name != "a" {
		t.Fatalf("expected only /a, got %+v", m.entries)
	}
	if m.classify(m.entries[0]) != rowSmall {
		t.Fatalf("expected /a to be a small row")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("m")})
	if len(m.entries) != 2 {
		t.Fatalf("expected both root entries back, got %+v", m.entries)
	}
}

func TestModelJumpsToCandidate(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")})
	if cmd == nil {
		t.Fatalf("expected load command for candidate parent")
	}
	m.Update(cmd())
	if m.currentPath != "/a" {
		t.Fatalf("expected /a, got %s", m.currentPath)
	}
	if m.entries[m.cursor].Path != "/a/e" {
		t.Fatalf("expected cursor on /a/e, got %+v", m.entries[m.cursor])
	}
	if !strings.Contains(m.View(), "Delete: /a/e") {
		t.Fatalf("view missing candidate line")
	}
}

func TestModelJumpsToRootCandidate(t *testing.T) {
	m := newTestModelWith(t, Options{Threshold: 100000, Candidate: "/", Needed: 14000000})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(cmd())
	if m.currentPath != "/a" {
		t.Fatalf("expected /a, got %s", m.currentPath)
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")})
	if cmd == nil {
		t.Fatalf("expected load command for root candidate")
	}
	m.Update(cmd())
	if m.currentPath != "/" || m.cursor != 0 {
		t.Fatalf("expected root listing, got %s cursor %d", m.currentPath, m.cursor)
	}
}
