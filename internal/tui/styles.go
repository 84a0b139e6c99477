package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

var (
	colorAccent = lipgloss.Color("39")  // Blue
	colorDim    = lipgloss.Color("245") // Gray
	colorFaint  = lipgloss.Color("240") // Dark gray
	colorSmall  = lipgloss.Color("212") // Pink
	colorDelete = lipgloss.Color("196") // Red
	colorBar    = lipgloss.Color("76")  // Green
	colorPrompt = lipgloss.Color("214") // Orange

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent).
			MarginBottom(1)

	infoStyle = lipgloss.NewStyle().Foreground(colorDim)

	answerStyle = lipgloss.NewStyle().Foreground(colorDelete)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorFaint).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(colorFaint)

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("0")).
			Background(colorAccent)

	barFilledStyle = lipgloss.NewStyle().Foreground(colorBar)
	barEmptyStyle  = lipgloss.NewStyle().Foreground(colorFaint)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorFaint).
			MarginTop(1)

	filterStyle = lipgloss.NewStyle().Foreground(colorPrompt)
)

// rowClass picks the name style of a listing row.
type rowClass int

const (
	rowFile rowClass = iota
	rowDir
	rowSmall     // directory at or below the threshold
	rowCandidate // the directory to delete
)

var rowStyles = map[rowClass]lipgloss.Style{
	rowFile:      lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
	rowDir:       lipgloss.NewStyle().Foreground(colorAccent).Bold(true),
	rowSmall:     lipgloss.NewStyle().Foreground(colorSmall).Bold(true),
	rowCandidate: lipgloss.NewStyle().Foreground(colorDelete).Bold(true).Underline(true),
}

// FormatSize formats a byte count for display.
func FormatSize(bytes int64) string {
	return humanize.Bytes(uint64(bytes))
}

// FormatCount formats a count for display.
func FormatCount(n int64) string {
	return humanize.Comma(n)
}
