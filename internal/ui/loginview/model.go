// Package loginview implements the name prompt for switching from a guest
// session to a named account.
package loginview

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/hqvu/remindcal/internal/theme"
)

// LoginSubmittedMsg carries the chosen account name.
type LoginSubmittedMsg struct {
	Name string
}

// LoginCancelMsg is sent when the user aborts the login form.
type LoginCancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	name string
}

// Model is the login form view.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	width  int
	height int
}

// New creates a new login view model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// Start initializes the login form.
func (m *Model) Start() tea.Cmd {
	m.fb.name = ""
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Account name").
				Placeholder("Who are you?").
				Value(&m.fb.name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
		),
	).WithWidth(min(m.width-4, 60))
	return m.form.Init()
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the login form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		name := strings.TrimSpace(m.fb.name)
		return m, func() tea.Msg { return LoginSubmittedMsg{Name: name} }
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return LoginCancelMsg{} }
	}

	return m, cmd
}

// View renders the login form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	noteStyle := theme.HelpStyle

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render("Log in"),
		m.form.View(),
		noteStyle.Render("Your guest reminders are kept and marked as migrated."),
	)

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
