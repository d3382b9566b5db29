// Package calendarview renders the main calendar screen: the padded month
// or week grid on top, with the selected day's agenda underneath.
package calendarview

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hqvu/remindcal/internal/calendar"
	"github.com/hqvu/remindcal/internal/keys"
	"github.com/hqvu/remindcal/internal/model"
	"github.com/hqvu/remindcal/internal/store"
	"github.com/hqvu/remindcal/internal/theme"
)

// SelectedReminderMsg is sent when the user opens a reminder's detail view.
type SelectedReminderMsg struct {
	ReminderID string
}

// Model is the main calendar view component.
type Model struct {
	entries *store.Reminders
	keys    *keys.KeyMap
	clock   calendar.Clock

	anchor   time.Time
	mode     model.ViewMode
	selected time.Time // the highlighted day in the grid
	agendaIx int       // cursor within the selected day's agenda

	searchMode  bool
	searchQuery string
	searchInput textinput.Model
	searchIx    int

	width  int
	height int
}

// New creates a new calendar view anchored on today in month mode.
func New(entries *store.Reminders, k *keys.KeyMap, clock calendar.Clock, width, height int) Model {
	now := clock()

	si := textinput.New()
	si.Placeholder = "search reminders..."
	si.Prompt = "/ "
	si.Width = width - 4

	return Model{
		entries:     entries,
		keys:        k,
		clock:       clock,
		anchor:      now,
		mode:        model.ViewMonth,
		selected:    calendar.DayOf(now),
		searchInput: si,
		width:       width,
		height:      height,
	}
}

// Init returns the initial command for the calendar view.
func (m Model) Init() tea.Cmd {
	return nil
}

// Anchor returns the current anchor date; the header shows it.
func (m Model) Anchor() time.Time { return m.anchor }

// Mode returns the active view mode.
func (m Model) Mode() model.ViewMode { return m.mode }

// SelectedDay returns the highlighted day. New reminders default to it.
func (m Model) SelectedDay() time.Time { return m.selected }

// SelectedReminder returns the reminder under the agenda cursor.
func (m Model) SelectedReminder() (model.Reminder, bool) {
	list := m.visibleReminders()
	ix := m.cursor()
	if ix < 0 || ix >= len(list) {
		return model.Reminder{}, false
	}
	return list[ix], true
}

// Update handles messages for the calendar view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if m.searchMode {
			return m.handleSearchKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}
	return m, nil
}

// handleSearchKeys processes key input while the search bar is focused.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchInput.Blur()
		m.searchQuery = strings.TrimSpace(m.searchInput.Value())
		if m.searchQuery == "" {
			m.searchMode = false
		}
		m.searchIx = 0
		return m, nil

	case "esc":
		m.searchMode = false
		m.searchQuery = ""
		m.searchInput.Reset()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// handleNormalKeys processes key input in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	// Search results replace the agenda; esc returns to the grid.
	if m.searchQuery != "" {
		switch {
		case key.Matches(msg, m.keys.Back):
			m.searchQuery = ""
			m.searchInput.Reset()
			return m, nil
		case key.Matches(msg, m.keys.Down):
			m.moveCursor(1)
			return m, nil
		case key.Matches(msg, m.keys.Up):
			m.moveCursor(-1)
			return m, nil
		case key.Matches(msg, m.keys.Select):
			return m, m.openSelected()
		case key.Matches(msg, m.keys.Search):
			m.searchMode = true
			return m, m.searchInput.Focus()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.PrevPeriod):
		m.setAnchor(calendar.OffsetAnchor(m.anchor, m.mode, -1))
		return m, nil

	case key.Matches(msg, m.keys.NextPeriod):
		m.setAnchor(calendar.OffsetAnchor(m.anchor, m.mode, 1))
		return m, nil

	case key.Matches(msg, m.keys.MonthView):
		m.mode = model.ViewMonth
		m.clampSelected()
		return m, nil

	case key.Matches(msg, m.keys.WeekView):
		m.mode = model.ViewWeek
		m.clampSelected()
		return m, nil

	case key.Matches(msg, m.keys.Today):
		anchor, mode := calendar.ResetAnchor(m.entries.All(), m.clock())
		m.anchor = anchor
		m.mode = mode
		m.selected = calendar.DayOf(anchor)
		m.agendaIx = 0
		return m, nil

	case key.Matches(msg, m.keys.Left):
		m.moveSelectedDay(-1)
		return m, nil

	case key.Matches(msg, m.keys.Right):
		m.moveSelectedDay(1)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
		return m, nil

	case key.Matches(msg, m.keys.Select):
		return m, m.openSelected()

	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.searchInput.Reset()
		return m, m.searchInput.Focus()
	}

	return m, nil
}

// setAnchor moves the anchor and drags the selected day along so it stays
// inside the displayed period.
func (m *Model) setAnchor(anchor time.Time) {
	m.anchor = anchor
	m.clampSelected()
	m.agendaIx = 0
}

// clampSelected snaps the selected day into the current grid when a mode or
// period change moved the grid away from it.
func (m *Model) clampSelected() {
	days := calendar.ComputeGrid(m.anchor, m.mode)
	for _, d := range days {
		if calendar.SameDay(d, m.selected) {
			return
		}
	}
	m.selected = calendar.DayOf(m.anchor)
	m.agendaIx = 0
}

// moveSelectedDay moves the day highlight, paging the anchor when the
// selection walks off the displayed period.
func (m *Model) moveSelectedDay(days int) {
	m.selected = m.selected.AddDate(0, 0, days)
	m.agendaIx = 0

	grid := calendar.ComputeGrid(m.anchor, m.mode)
	if m.selected.Before(grid[0]) {
		m.anchor = calendar.OffsetAnchor(m.anchor, m.mode, -1)
	} else if !m.selected.Before(grid[len(grid)-1].AddDate(0, 0, 1)) {
		m.anchor = calendar.OffsetAnchor(m.anchor, m.mode, 1)
	}
}

func (m *Model) moveCursor(delta int) {
	n := len(m.visibleReminders())
	if n == 0 {
		return
	}
	ix := m.cursor() + delta
	if ix < 0 {
		ix = 0
	}
	if ix >= n {
		ix = n - 1
	}
	if m.searchQuery != "" {
		m.searchIx = ix
	} else {
		m.agendaIx = ix
	}
}

func (m Model) cursor() int {
	if m.searchQuery != "" {
		return m.searchIx
	}
	return m.agendaIx
}

// visibleReminders returns the agenda content: search results when a query
// is active, otherwise the selected day's bucket.
func (m Model) visibleReminders() []model.Reminder {
	if m.searchQuery != "" {
		return m.entries.Filter(m.searchQuery)
	}
	return calendar.BucketByDay(m.entries.All(), m.selected)
}

func (m Model) openSelected() tea.Cmd {
	r, ok := m.SelectedReminder()
	if !ok {
		return nil
	}
	return func() tea.Msg {
		return SelectedReminderMsg{ReminderID: r.ID}
	}
}

// View renders the calendar grid and the agenda.
func (m Model) View() string {
	var sections []string

	if m.searchMode {
		searchBar := lipgloss.NewStyle().
			Foreground(theme.ColorWhite).
			Padding(0, 1).
			Render(m.searchInput.View())
		sections = append(sections, searchBar)
	}

	if m.searchQuery != "" {
		sections = append(sections, m.renderSearchResults())
	} else {
		sections = append(sections, m.renderGrid(), "", m.renderAgenda())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderGrid draws the month or week grid of day cells.
func (m Model) renderGrid() string {
	now := m.clock()
	cells := calendar.Cells(m.anchor, m.mode, m.entries.All(), now)

	titleText := m.anchor.Format("January 2006")
	if m.mode == model.ViewWeek {
		titleText = fmt.Sprintf("Week of %s", cells[0].Date.Format("Jan 2, 2006"))
	}
	title := theme.HeaderStyle.Render(titleText)

	weekdayHeader := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorGray).
		Render(" Su  Mo  Tu  We  Th  Fr  Sa")

	lines := []string{title, weekdayHeader}

	for row := 0; row < len(cells)/7; row++ {
		var rendered []string
		for col := 0; col < 7; col++ {
			rendered = append(rendered, m.renderCell(cells[row*7+col]))
		}
		lines = append(lines, strings.Join(rendered, " "))
	}

	return strings.Join(lines, "\n")
}

// renderCell draws one day: the day number plus an entry marker.
func (m Model) renderCell(c model.CalendarCell) string {
	marker := " "
	if len(c.Reminders) > 0 {
		marker = "•"
	}
	text := fmt.Sprintf("%2d%s", c.Date.Day(), marker)

	style := lipgloss.NewStyle().Foreground(theme.ColorWhite)
	if !c.InPeriod {
		style = theme.OutsideMonthStyle
	}
	if c.IsToday {
		style = theme.TodayStyle
	}
	if calendar.SameDay(c.Date, m.selected) {
		style = style.Reverse(true)
	}
	return style.Render(text)
}

// renderAgenda lists the selected day's reminders.
func (m Model) renderAgenda() string {
	day := m.selected
	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		Render(day.Format("Monday, January 2"))

	reminders := m.visibleReminders()
	if len(reminders) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(theme.ColorGray).
			Italic(true).
			Render("No reminders. Press n to add one.")
		return lipgloss.JoinVertical(lipgloss.Left, header, empty)
	}

	lines := []string{header}
	for i, r := range reminders {
		lines = append(lines, m.renderReminderLine(r, i == m.cursor(), false))
	}
	return strings.Join(lines, "\n")
}

// renderSearchResults lists the filter matches across all days.
func (m Model) renderSearchResults() string {
	reminders := m.visibleReminders()
	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		Render(fmt.Sprintf("Search: %q (%d)", m.searchQuery, len(reminders)))

	if len(reminders) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(theme.ColorGray).
			Italic(true).
			Render("No matching reminders.")
		return lipgloss.JoinVertical(lipgloss.Left, header, empty)
	}

	lines := []string{header}
	for i, r := range reminders {
		lines = append(lines, m.renderReminderLine(r, i == m.cursor(), true))
	}
	return strings.Join(lines, "\n")
}

// renderReminderLine draws one agenda row with type badge and time.
func (m Model) renderReminderLine(r model.Reminder, selected, showDate bool) string {
	badge := theme.TypeStyle(string(r.Type)).Render(string(r.Type))

	when := r.Date.Format("15:04")
	if showDate {
		when = r.Date.Format("Jan 2 15:04")
	}
	timeLabel := lipgloss.NewStyle().Foreground(theme.ColorGray).Render(when)

	title := r.Title
	if r.Completed {
		title = theme.CompletedStyle.Render(title)
	}

	recur := ""
	if r.Recurrence != model.RecurrenceNone {
		recur = " " + theme.RecurrenceLabelStyle.Render("↻"+string(r.Recurrence))
	}

	line := fmt.Sprintf("%s  %s  %s%s", timeLabel, badge, title, recur)
	if selected {
		return theme.SelectedItemStyle.Render(line)
	}
	return theme.ListItemStyle.Render(line)
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.searchInput.Width = width - 4
}
