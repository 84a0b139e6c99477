package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/michaelscutari/dugsh/internal/db"
	"github.com/michaelscutari/dugsh/internal/entry"
)

const (
	colGap       = 2
	minNameWidth = 10
	barBlocks    = 10
	barColWidth  = barBlocks + 6 // blocks + "  100%"
)

type columnWidths struct {
	size  int
	files int
	dirs  int
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.err != nil {
		return fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err)
	}
	if m.meta == nil {
		return "Loading..."
	}

	var b strings.Builder
	headerLines := 0
	writeLine := func(line string) {
		b.WriteString(line)
		b.WriteString("\n")
		headerLines++
	}

	writeLine(titleStyle.Render("dugsh - " + m.meta.Source))
	writeLine(infoStyle.Render(fmt.Sprintf("Total: %s | Files: %s | Dirs: %s | Lines: %s",
		FormatSize(m.meta.TotalSize),
		FormatCount(m.meta.FileCount),
		FormatCount(m.meta.DirCount),
		FormatCount(m.meta.LineCount),
	)))

	status := fmt.Sprintf("Path: %s", truncateMiddle(m.currentPath, max(10, m.width-6)))
	if m.rollup != nil {
		status += fmt.Sprintf(" | %s in %s files, %s subdirs",
			FormatSize(m.rollup.TotalSize), FormatCount(m.rollup.TotalFiles), FormatCount(m.rollup.TotalDirs))
	}
	writeLine(infoStyle.Render(status))

	if m.opts.Candidate != "" {
		writeLine(answerStyle.Render(fmt.Sprintf("Needed: %s | Delete: %s",
			FormatSize(m.opts.Needed), m.opts.Candidate)))
	}
	if m.smallOnly {
		writeLine(filterStyle.Render(fmt.Sprintf("Showing directories <= %s", FormatSize(m.opts.Threshold))))
	}

	if m.filterActive {
		writeLine(filterStyle.Render(fmt.Sprintf("Filter: %s_", m.filter)))
	} else if m.filter != "" {
		writeLine(filterStyle.Render(fmt.Sprintf("Filter: %s", m.filter)))
	}

	visibleRows := max(5, m.height-headerLines-3)
	startIdx := 0
	if m.cursor >= visibleRows {
		startIdx = m.cursor - visibleRows + 1
	}
	endIdx := min(len(m.entries), startIdx+visibleRows)

	sizeLabel := headerLabel("SIZE", m.sort == SortBySize, "v")
	filesLabel := headerLabel("FILES", m.sort == SortByFiles, "v")
	nameLabel := headerLabel("NAME", m.sort == SortByName, "^")

	widths := calcColumnWidths(m.entries[startIdx:endIdx], sizeLabel, filesLabel, "DIRS")
	nameWidth := max(minNameWidth, m.width-widths.size-widths.files-widths.dirs-colGap*4-barColWidth)
	gap := strings.Repeat(" ", colGap)

	header := fmt.Sprintf("%*s%s%*s%s%*s%s%-*s%s%*s",
		widths.size, sizeLabel, gap,
		widths.files, filesLabel, gap,
		widths.dirs, "DIRS", gap,
		nameWidth, truncateRight(nameLabel, nameWidth), gap,
		barColWidth, "SIZE%",
	)
	writeLine(headerStyle.Render(header))

	for i := startIdx; i < endIdx; i++ {
		b.WriteString(m.formatEntry(m.entries[i], i == m.cursor, widths, nameWidth))
		b.WriteString("\n")
	}
	for i := endIdx - startIdx; i < visibleRows; i++ {
		b.WriteString("\n")
	}

	help := m.helpLine()
	if len(m.entries) > 0 {
		help = fmt.Sprintf("%s [%d/%d]", help, m.cursor+1, len(m.entries))
	}
	b.WriteString(helpStyle.Render(help))

	return b.String()
}

func calcColumnWidths(entries []db.DisplayEntry, sizeLabel, filesLabel, dirsLabel string) columnWidths {
	w := columnWidths{size: len(sizeLabel), files: len(filesLabel), dirs: len(dirsLabel)}
	for _, e := range entries {
		w.size = max(w.size, len(FormatSize(e.TotalSize)))
		w.files = max(w.files, len(FormatCount(e.TotalFiles)))
		w.dirs = max(w.dirs, len(FormatCount(e.TotalDirs)))
	}
	return w
}

func (m *Model) formatEntry(e db.DisplayEntry, selected bool, widths columnWidths, nameWidth int) string {
	rawName := e.Name
	if e.Kind == entry.KindDir {
		rawName += "/"
	}
	rawName = truncateRight(rawName, nameWidth)

	styledName := rowStyles[m.classify(e)].Render(rawName)
	paddedName := styledName + strings.Repeat(" ", max(0, nameWidth-len(rawName)))

	var parentTotal int64
	if m.rollup != nil {
		parentTotal = m.rollup.TotalSize
	}

	gap := strings.Repeat(" ", colGap)
	line := fmt.Sprintf("%*s%s%*s%s%*s%s%s%s%s",
		widths.size, FormatSize(e.TotalSize), gap,
		widths.files, FormatCount(e.TotalFiles), gap,
		widths.dirs, FormatCount(e.TotalDirs), gap,
		paddedName, gap,
		formatBar(e.TotalSize, parentTotal),
	)

	if selected {
		return selectedStyle.Render(line)
	}
	return line
}

func formatBar(value, total int64) string {
	if total <= 0 || value <= 0 {
		return barEmptyStyle.Render(strings.Repeat("░", barBlocks)) + fmt.Sprintf("  %3d%%", 0)
	}

	pct := min(100, float64(value)/float64(total)*100)
	filled := int(math.Round(pct / 100 * barBlocks))
	filled = min(barBlocks, max(1, filled))

	return barFilledStyle.Render(strings.Repeat("█", filled)) +
		barEmptyStyle.Render(strings.Repeat("░", barBlocks-filled)) +
		fmt.Sprintf("  %3d%%", int(math.Round(pct)))
}

func headerLabel(label string, active bool, dir string) string {
	if active {
		return label + dir
	}
	return label
}

func truncateRight(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

func truncateMiddle(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	head := (maxLen - 3) / 2
	tail := maxLen - 3 - head
	return s[:head] + "..." + s[len(s)-tail:]
}
