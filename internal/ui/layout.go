package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hqvu/remindcal/internal/theme"
)

// Layout manages the terminal layout dimensions.
type Layout struct {
	Width           int
	Height          int
	HeaderHeight    int
	StatusBarHeight int
}

// NewLayout creates a Layout with the given terminal dimensions.
// HeaderHeight and StatusBarHeight default to 1.
func NewLayout(width, height int) Layout {
	return Layout{
		Width:           width,
		Height:          height,
		HeaderHeight:    1,
		StatusBarHeight: 1,
	}
}

// ContentWidth returns the full available width.
func (l Layout) ContentWidth() int {
	return l.Width
}

// ContentHeight returns the height available for the main content area,
// accounting for the header and status bar.
func (l Layout) ContentHeight() int {
	return l.Height - l.HeaderHeight - l.StatusBarHeight
}

// RenderHeader renders the single header line: the app title on the left and
// the account summary (name plus usage) pushed to the right edge.
func (l Layout) RenderHeader(title string, accountStatus string) string {
	// Header padding eats one column on each side.
	gap := l.Width - 2 - lipgloss.Width(title) - lipgloss.Width(accountStatus)
	if gap < 1 {
		gap = 1
	}
	return theme.HeaderStyle.
		Width(l.Width).
		Render(title + strings.Repeat(" ", gap) + accountStatus)
}

// RenderStatusBar renders the bottom status bar with keyboard hints, padded
// to the full terminal width.
func (l Layout) RenderStatusBar(hints string) string {
	return theme.StatusBarStyle.Width(l.Width).Render(hints)
}

// RenderWithFrame composes a full terminal view by vertically joining
// the header, content area, and status bar.
func (l Layout) RenderWithFrame(
	header string,
	content string,
	statusBar string,
) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		content,
		statusBar,
	)
}
