// Package detailview renders a single reminder with its metadata, upcoming
// occurrences, and the AI refine action.
package detailview

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hqvu/remindcal/internal/ai"
	"github.com/hqvu/remindcal/internal/keys"
	"github.com/hqvu/remindcal/internal/model"
	"github.com/hqvu/remindcal/internal/recur"
	"github.com/hqvu/remindcal/internal/theme"
)

// BackMsg signals the parent to navigate back to the calendar.
type BackMsg struct{}

// EditMsg asks the parent to open the edit form for the reminder.
type EditMsg struct {
	ReminderID string
}

// DeleteMsg asks the parent to delete the reminder.
type DeleteMsg struct {
	ReminderID string
}

// ToggleMsg asks the parent to flip the reminder's completed flag.
type ToggleMsg struct {
	ReminderID string
}

// RefinedMsg carries an async refine result. Seq identifies which request
// produced it; stale results are dropped.
type RefinedMsg struct {
	Seq         int
	ReminderID  string
	Title       string
	Description string
}

// previewHorizon bounds the upcoming-occurrences preview.
const previewHorizon = 365 * 24 * time.Hour

// Model is the reminder detail view component.
type Model struct {
	reminder  *model.Reminder
	assistant *ai.Assistant
	keys      *keys.KeyMap
	viewport  viewport.Model
	spinner   spinner.Model

	refining  bool
	refineSeq int

	width  int
	height int
}

// New creates a new detail view model. assistant may be nil when no AI
// provider is configured; the refine key is then inert.
func New(assistant *ai.Assistant, k *keys.KeyMap, width, height int) Model {
	vp := viewport.New(width, height-2)
	vp.Style = lipgloss.NewStyle()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.ColorBlue)

	return Model{
		assistant: assistant,
		keys:      k,
		viewport:  vp,
		spinner:   sp,
		width:     width,
		height:    height,
	}
}

// Init returns the initial command for the detail view.
func (m Model) Init() tea.Cmd {
	return nil
}

// SetReminder updates the reminder being displayed.
func (m *Model) SetReminder(r model.Reminder) {
	m.reminder = &r
	m.refining = false
	m.viewport.SetContent(m.renderContent())
	m.viewport.GotoTop()
}

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefinedMsg:
		// Only the newest in-flight request wins; stale replies are dropped.
		if msg.Seq != m.refineSeq || m.reminder == nil || m.reminder.ID != msg.ReminderID {
			return m, nil
		}
		m.refining = false
		m.reminder.Title = msg.Title
		m.reminder.Description = msg.Description
		m.viewport.SetContent(m.renderContent())
		return m, nil

	case spinner.TickMsg:
		if !m.refining {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Back):
			return m, func() tea.Msg { return BackMsg{} }

		case key.Matches(msg, m.keys.Edit):
			if m.reminder != nil {
				id := m.reminder.ID
				return m, func() tea.Msg { return EditMsg{ReminderID: id} }
			}

		case key.Matches(msg, m.keys.Delete):
			if m.reminder != nil {
				id := m.reminder.ID
				return m, func() tea.Msg { return DeleteMsg{ReminderID: id} }
			}

		case key.Matches(msg, m.keys.Toggle):
			if m.reminder != nil {
				id := m.reminder.ID
				return m, func() tea.Msg { return ToggleMsg{ReminderID: id} }
			}

		case key.Matches(msg, m.keys.Refine):
			if m.reminder != nil && m.assistant != nil {
				m.refining = true
				m.refineSeq++
				return m, tea.Batch(m.spinner.Tick, m.refineCmd(*m.reminder, m.refineSeq))
			}
		}
	}

	// Delegate to viewport for scrolling (j/k, up/down, pgup/pgdn)
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// Reminder returns the currently displayed reminder, including any refined
// text, so the parent can persist it.
func (m Model) Reminder() (model.Reminder, bool) {
	if m.reminder == nil {
		return model.Reminder{}, false
	}
	return *m.reminder, true
}

// refineCmd runs the refine off the UI goroutine. Refine never fails; a
// provider error just echoes the original text back.
func (m Model) refineCmd(r model.Reminder, seq int) tea.Cmd {
	assistant := m.assistant
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		msg := RefinedMsg{Seq: seq, ReminderID: r.ID, Title: r.Title, Description: r.Description}
		msg.Title = assistant.Refine(ctx, r.Title)
		if r.Description != "" {
			msg.Description = assistant.Refine(ctx, r.Description)
		}
		return msg
	}
}

// View renders the detail view.
func (m Model) View() string {
	if m.reminder == nil {
		emptyStyle := lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray)
		return emptyStyle.Render("No reminder selected")
	}

	if m.refining {
		banner := lipgloss.NewStyle().
			Foreground(theme.ColorBlue).
			Render(m.spinner.View() + " refining...")
		return lipgloss.JoinVertical(lipgloss.Left, banner, m.viewport.View())
	}

	return m.viewport.View()
}

// renderContent builds the full detail content string for the viewport.
func (m Model) renderContent() string {
	if m.reminder == nil {
		return ""
	}

	r := m.reminder
	var sections []string

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	title := titleStyle.Render(r.Title)
	if r.Completed {
		title = theme.CompletedStyle.Render(r.Title)
	}
	sections = append(sections, title)

	typeBadge := theme.TypeStyle(string(r.Type)).Render(strings.ToUpper(string(r.Type)))
	badgeLine := typeBadge
	if r.Recurrence != model.RecurrenceNone {
		badgeLine = lipgloss.JoinHorizontal(
			lipgloss.Top, typeBadge, "  ",
			theme.RecurrenceLabelStyle.Render("↻ "+string(r.Recurrence)),
		)
	}
	sections = append(sections, badgeLine, "")

	metaStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)
	valStyle := lipgloss.NewStyle().Foreground(theme.ColorWhite)

	sections = append(sections, fmt.Sprintf(
		"%s      %s",
		metaStyle.Render("When:"),
		valStyle.Render(r.Date.Format("Monday, January 2 2006 at 15:04")),
	))
	sections = append(sections, fmt.Sprintf(
		"%s    %s",
		metaStyle.Render("Method:"),
		valStyle.Render(string(r.Method)),
	))
	if r.ContactInfo != "" {
		sections = append(sections, fmt.Sprintf(
			"%s   %s",
			metaStyle.Render("Contact:"),
			valStyle.Render(r.ContactInfo),
		))
	}
	if r.RecurrenceEndMode != "" && r.RecurrenceEndMode != model.EndNever {
		sections = append(sections, fmt.Sprintf(
			"%s      %s",
			metaStyle.Render("Ends:"),
			valStyle.Render(m.endLabel()),
		))
	}
	if !r.CreatedAt.IsZero() {
		sections = append(sections, fmt.Sprintf(
			"%s   %s",
			metaStyle.Render("Created:"),
			valStyle.Render(r.CreatedAt.Format("2006-01-02 15:04")),
		))
	}

	sepStyle := lipgloss.NewStyle().Foreground(theme.ColorSubtle)
	separator := sepStyle.Render(strings.Repeat("─", min(m.width-4, 80)))
	sections = append(sections, "", separator, "")

	descHeaderStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)
	sections = append(sections, descHeaderStyle.Render("Description"))

	body := r.Description
	if body == "" {
		body = lipgloss.NewStyle().
			Foreground(theme.ColorGray).
			Italic(true).
			Render("No description")
	}
	sections = append(sections, body)

	if upcoming := m.renderUpcoming(); upcoming != "" {
		sections = append(sections, "", separator, "", upcoming)
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderUpcoming previews the next occurrences of a recurring reminder.
func (m Model) renderUpcoming() string {
	r := m.reminder
	if r.Recurrence == model.RecurrenceNone {
		return ""
	}

	res, err := recur.Expand(*r, recur.Window{
		Start:          r.Date,
		End:            r.Date.Add(previewHorizon),
		MaxOccurrences: 5,
	})
	if err != nil || len(res.Occurrences) == 0 {
		return ""
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	lines := []string{headerStyle.Render("Upcoming")}

	dateStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)
	for _, occ := range res.Occurrences {
		lines = append(lines, "  "+dateStyle.Render(occ.Format("Mon, Jan 2 2006 15:04")))
	}
	if res.Truncated {
		lines = append(lines, "  "+dateStyle.Render("..."))
	}
	return strings.Join(lines, "\n")
}

func (m Model) endLabel() string {
	r := m.reminder
	if r.RecurrenceEndValue == nil {
		return string(r.RecurrenceEndMode)
	}
	if r.RecurrenceEndMode == model.EndCount {
		return fmt.Sprintf("after %d occurrences", r.RecurrenceEndValue.Count)
	}
	return "on " + r.RecurrenceEndValue.Date.Format("2006-01-02")
}

// SetSize updates the detail view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height - 2
}
