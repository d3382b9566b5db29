// Package confirmview shows the guest replace prompt: a guest at capacity
// must decide whether the new reminder replaces the existing one.
package confirmview

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hqvu/remindcal/internal/model"
	"github.com/hqvu/remindcal/internal/theme"
)

// ReplaceConfirmedMsg is sent when the user accepts the replacement.
type ReplaceConfirmedMsg struct{}

// ReplaceCancelledMsg is sent when the user keeps the existing reminder.
type ReplaceCancelledMsg struct{}

// Model is the replace confirmation prompt.
type Model struct {
	pending model.Reminder
	width   int
	height  int
}

// New creates a new confirmation prompt model.
func New(width, height int) Model {
	return Model{width: width, height: height}
}

// SetPending sets the reminder awaiting confirmation.
func (m *Model) SetPending(r model.Reminder) {
	m.pending = r
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the confirmation prompt.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "y", "Y", "enter":
			return m, func() tea.Msg { return ReplaceConfirmedMsg{} }
		case "n", "N", "esc":
			return m, func() tea.Msg { return ReplaceCancelledMsg{} }
		}
	}
	return m, nil
}

// View renders the confirmation prompt.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorYellow).
		MarginBottom(1)

	msgStyle := lipgloss.NewStyle().Foreground(theme.ColorWhite)
	hintStyle := theme.HelpStyle

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render("Guest limit reached"),
		msgStyle.Render("Guests can keep one reminder. Replace the existing"),
		msgStyle.Render("reminder with \""+m.pending.Title+"\"?"),
		"",
		msgStyle.Render("Log in to keep up to 50 reminders."),
		"",
		hintStyle.Render("y replace | n keep existing"),
	)

	box := theme.DetailPanelStyle.Render(content)

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(box)
}

// SetSize updates the prompt dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
