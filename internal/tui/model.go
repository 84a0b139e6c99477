package tui

import (
	"strings"

	"github.com/michaelscutari/dugsh/internal/db"
	"github.com/michaelscutari/dugsh/internal/entry"
	"github.com/michaelscutari/dugsh/internal/pathutil"

	tea "github.com/charmbracelet/bubbletea"
)

// SortColumn represents the current sort field.
type SortColumn int

const (
	SortBySize SortColumn = iota
	SortByName
	SortByFiles
)

func (s SortColumn) String() string {
	switch s {
	case SortByName:
		return "name"
	case SortByFiles:
		return "files"
	default:
		return "size"
	}
}

const pageLimit = 1000

// Options configures the browser.
type Options struct {
	// Threshold marks directories at or below it as small.
	Threshold int64

	// Candidate is the path of the directory whose deletion frees Needed
	// bytes. Empty if none qualifies.
	Candidate string
	Needed    int64
}

// Model holds the TUI state.
type Model struct {
	reader       *db.Reader
	opts         Options
	currentPath  string
	allEntries   []db.DisplayEntry
	entries      []db.DisplayEntry
	cursor       int
	sort         SortColumn
	width        int
	height       int
	meta         *entry.ReplayMeta
	rollup       *entry.Rollup
	filter       string
	filterActive bool
	smallOnly    bool
	selectPath   string // row to select once the next listing arrives
	err          error
}

// NewModel creates a new TUI model.
func NewModel(reader *db.Reader, opts Options) *Model {
	return &Model{
		reader:      reader,
		opts:        opts,
		currentPath: pathutil.Root,
		sort:        SortBySize,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.loadInitialData
}

type dataLoadedMsg struct {
	meta    *entry.ReplayMeta
	entries []db.DisplayEntry
	rollup  *entry.Rollup
	err     error
}

func (m *Model) loadInitialData() tea.Msg {
	meta, err := m.reader.GetReplayMeta()
	if err != nil {
		return dataLoadedMsg{err: err}
	}

	entries, err := m.reader.LoadChildren(pathutil.Root, m.sort.String(), pageLimit)
	if err != nil {
		return dataLoadedMsg{err: err}
	}

	rollup, err := m.reader.GetRollup(pathutil.Root)
	if err != nil {
		return dataLoadedMsg{err: err}
	}

	return dataLoadedMsg{meta: meta, entries: entries, rollup: rollup}
}

type entriesLoadedMsg struct {
	path    string
	entries []db.DisplayEntry
	rollup  *entry.Rollup
	err     error
}

func (m *Model) loadEntries(path string) tea.Cmd {
	return func() tea.Msg {
		entries, err := m.reader.LoadChildren(path, m.sort.String(), pageLimit)
		if err != nil {
			return entriesLoadedMsg{path: path, err: err}
		}
		rollup, _ := m.reader.GetRollup(path)
		return entriesLoadedMsg{path: path, entries: entries, rollup: rollup}
	}
}

func (m *Model) helpLine() string {
	if m.filterActive {
		return "Type to filter | Enter: apply | Esc: clear | q: quit"
	}
	help := "↑/↓ move | Enter: open | Backspace: up | s/n/f: sort | /: filter | m: small only"
	if m.opts.Candidate != "" {
		help += " | c: candidate"
	}
	return help + " | q: quit"
}

func (m *Model) setEntries(entries []db.DisplayEntry) {
	m.allEntries = entries
	m.applyFilter()
}

func (m *Model) applyFilter() {
	m.cursor = 0
	if m.filter == "" && !m.smallOnly {
		m.entries = m.allEntries
		return
	}
	needle := strings.ToLower(m.filter)
	filtered := make([]db.DisplayEntry, 0, len(m.allEntries))
	for _, e := range m.allEntries {
		if m.smallOnly && !m.isSmall(e) {
			continue
		}
		if strings.Contains(strings.ToLower(e.Name), needle) {
			filtered = append(filtered, e)
		}
	}
	m.entries = filtered
}

// selectPending moves the cursor to the row requested by selectPath.
func (m *Model) selectPending() {
	if m.selectPath == "" {
		return
	}
	for i, e := range m.entries {
		if e.Path == m.selectPath {
			m.cursor = i
			break
		}
	}
	m.selectPath = ""
}

func (m *Model) isSmall(e db.DisplayEntry) bool {
	return e.Kind == entry.KindDir && e.TotalSize <= m.opts.Threshold
}

func (m *Model) classify(e db.DisplayEntry) rowClass {
	switch {
	case e.Kind != entry.KindDir:
		return rowFile
	case m.opts.Candidate != "" && e.Path == m.opts.Candidate:
		return rowCandidate
	case m.isSmall(e):
		return rowSmall
	default:
		return rowDir
	}
}
