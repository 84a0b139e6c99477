package tui

import (
	"path"

	"github.com/michaelscutari/dugsh/internal/entry"
	"github.com/michaelscutari/dugsh/internal/pathutil"

	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case dataLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.meta = msg.meta
		m.currentPath = pathutil.Root
		m.clearFilter()
		m.setEntries(msg.entries)
		m.rollup = msg.rollup
		return m, nil

	case entriesLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.currentPath = msg.path
		m.clearFilter()
		m.setEntries(msg.entries)
		m.selectPending()
		m.rollup = msg.rollup
		return m, nil
	}

	return m, nil
}

func (m *Model) clearFilter() {
	m.filter = ""
	m.filterActive = false
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.filterActive {
		return m.handleFilterKey(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		m.moveCursor(-1)

	case "down", "j":
		m.moveCursor(1)

	case "pgup":
		m.moveCursor(-10)

	case "pgdown":
		m.moveCursor(10)

	case "home", "g":
		m.cursor = 0

	case "end", "G":
		m.moveCursor(len(m.entries))

	case "enter", "l", "right":
		if m.cursor < len(m.entries) && m.entries[m.cursor].Kind == entry.KindDir {
			return m, m.loadEntries(m.entries[m.cursor].Path)
		}

	case "backspace", "h", "left":
		if m.currentPath != pathutil.Root {
			return m, m.loadEntries(path.Dir(m.currentPath))
		}

	case "s":
		m.sort = SortBySize
		return m, m.loadEntries(m.currentPath)

	case "n":
		m.sort = SortByName
		return m, m.loadEntries(m.currentPath)

	case "f":
		m.sort = SortByFiles
		return m, m.loadEntries(m.currentPath)

	case "m":
		m.smallOnly = !m.smallOnly
		m.applyFilter()

	case "c":
		switch m.opts.Candidate {
		case "":
		case pathutil.Root:
			// The root has no row of its own; showing its listing is the jump.
			return m, m.loadEntries(pathutil.Root)
		default:
			m.selectPath = m.opts.Candidate
			return m, m.loadEntries(path.Dir(m.opts.Candidate))
		}

	case "/":
		m.filterActive = true
	}

	return m, nil
}

func (m *Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.filterActive = false
	case "esc":
		m.clearFilter()
		m.applyFilter()
	case "backspace":
		if runes := []rune(m.filter); len(runes) > 0 {
			m.filter = string(runes[:len(runes)-1])
			m.applyFilter()
		}
	case "ctrl+c":
		return m, tea.Quit
	default:
		if msg.Type == tea.KeyRunes {
			m.filter += msg.String()
			m.applyFilter()
		}
	}
	return m, nil
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	if m.cursor >= len(m.entries) {
		m.cursor = len(m.entries) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
