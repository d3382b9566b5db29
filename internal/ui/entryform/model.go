// Package entryform implements the reminder create/edit form.
package entryform

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/hqvu/remindcal/internal/model"
	"github.com/hqvu/remindcal/internal/theme"
)

// SubmittedMsg is dispatched when the form completes. EditID is empty for
// new reminders.
type SubmittedMsg struct {
	Reminder model.Reminder
	EditID   string
}

// CancelMsg is dispatched when the user aborts the form.
type CancelMsg struct{}

const dateTimeLayout = "2006-01-02 15:04"

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title       string
	description string
	date        string
	kind        string
	recurrence  string
	endMode     string
	endValue    string
	method      string
	contactInfo string
	completed   bool
}

// Model is the Bubble Tea model for the reminder create/edit form.
type Model struct {
	form     *huh.Form
	fb       *formBindings
	editMode bool
	editID   string
	width    int
	height   int
}

// New creates a new reminder form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// StartCreate initializes the form for a new reminder on the given day.
func (m *Model) StartCreate(day time.Time) tea.Cmd {
	m.editMode = false
	m.editID = ""
	*m.fb = formBindings{
		date:       time.Date(day.Year(), day.Month(), day.Day(), 9, 0, 0, 0, day.Location()).Format(dateTimeLayout),
		kind:       string(model.TypeStandard),
		recurrence: string(model.RecurrenceNone),
		endMode:    string(model.EndNever),
		method:     string(model.MethodNotification),
	}
	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit initializes the form with an existing reminder's values.
func (m *Model) StartEdit(r model.Reminder) tea.Cmd {
	m.editMode = true
	m.editID = r.ID
	*m.fb = formBindings{
		title:       r.Title,
		description: r.Description,
		date:        r.Date.Format(dateTimeLayout),
		kind:        string(r.Type),
		recurrence:  string(r.Recurrence),
		endMode:     string(model.EndNever),
		method:      string(r.Method),
		contactInfo: r.ContactInfo,
		completed:   r.Completed,
	}
	if r.RecurrenceEndMode != "" {
		m.fb.endMode = string(r.RecurrenceEndMode)
	}
	if r.RecurrenceEndValue != nil {
		if r.RecurrenceEndMode == model.EndCount {
			m.fb.endValue = strconv.Itoa(r.RecurrenceEndValue.Count)
		} else {
			m.fb.endValue = r.RecurrenceEndValue.Date.Format("2006-01-02")
		}
	}
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the reminder form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the reminder form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Reminder"
	if m.editMode {
		titleText = "Edit Reminder"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(titleText) + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	fb := m.fb

	core := []huh.Field{
		huh.NewInput().
			Title("Title").
			Placeholder("What should I remind you about?").
			Value(&fb.title).
			Validate(validateRequired("Title")),
		huh.NewText().
			Title("Description").
			Placeholder("Optional details...").
			Value(&fb.description),
		huh.NewInput().
			Title("Date & Time").
			Placeholder("YYYY-MM-DD HH:MM").
			Value(&fb.date).
			Validate(validateDateTime),
		huh.NewSelect[string]().
			Title("Type").
			Options(
				huh.NewOption("Standard", string(model.TypeStandard)),
				huh.NewOption("Urgent", string(model.TypeUrgent)),
				huh.NewOption("Meeting", string(model.TypeMeeting)),
				huh.NewOption("Health", string(model.TypeHealth)),
				huh.NewOption("Idea", string(model.TypeIdea)),
			).
			Value(&fb.kind),
		huh.NewSelect[string]().
			Title("Repeat").
			Options(
				huh.NewOption("Never", string(model.RecurrenceNone)),
				huh.NewOption("Daily", string(model.RecurrenceDaily)),
				huh.NewOption("Weekly", string(model.RecurrenceWeekly)),
				huh.NewOption("Monthly", string(model.RecurrenceMonthly)),
				huh.NewOption("Yearly", string(model.RecurrenceYearly)),
			).
			Value(&fb.recurrence),
	}
	if m.editMode {
		core = append(core, huh.NewConfirm().
			Title("Completed").
			Value(&fb.completed))
	}

	// Shown only for recurring reminders.
	endGroup := huh.NewGroup(
		huh.NewSelect[string]().
			Title("Ends").
			Options(
				huh.NewOption("Never", string(model.EndNever)),
				huh.NewOption("On date", string(model.EndDate)),
				huh.NewOption("After count", string(model.EndCount)),
			).
			Value(&fb.endMode),
		huh.NewInput().
			Title("End value").
			Placeholder("YYYY-MM-DD or a count").
			Value(&fb.endValue).
			Validate(fb.validateEndValue),
	).WithHideFunc(func() bool {
		return fb.recurrence == string(model.RecurrenceNone)
	})

	// Contact info applies to every delivery method except notification.
	methodGroup := huh.NewGroup(
		huh.NewSelect[string]().
			Title("Remind via").
			Options(
				huh.NewOption("Notification", string(model.MethodNotification)),
				huh.NewOption("Email", string(model.MethodEmail)),
				huh.NewOption("SMS", string(model.MethodSMS)),
				huh.NewOption("Call", string(model.MethodCall)),
			).
			Value(&fb.method),
	)
	contactGroup := huh.NewGroup(
		huh.NewInput().
			Title("Contact").
			Placeholder("email address or phone number").
			Value(&fb.contactInfo).
			Validate(validateRequired("Contact")),
	).WithHideFunc(func() bool {
		return fb.method == string(model.MethodNotification)
	})

	return huh.NewForm(
		huh.NewGroup(core...),
		endGroup,
		methodGroup,
		contactGroup,
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	fb := m.fb

	date, _ := time.ParseInLocation(dateTimeLayout, strings.TrimSpace(fb.date), time.Local)

	r := model.Reminder{
		Title:       strings.TrimSpace(fb.title),
		Description: fb.description,
		Date:        date,
		Type:        model.ReminderType(fb.kind),
		Recurrence:  model.Recurrence(fb.recurrence),
		Method:      model.Method(fb.method),
		ContactInfo: strings.TrimSpace(fb.contactInfo),
		Completed:   fb.completed,
	}

	if r.Recurrence != model.RecurrenceNone {
		r.RecurrenceEndMode = model.EndMode(fb.endMode)
		switch r.RecurrenceEndMode {
		case model.EndCount:
			n, _ := strconv.Atoi(strings.TrimSpace(fb.endValue))
			r.RecurrenceEndValue = &model.EndValue{Count: n}
		case model.EndDate:
			d, _ := time.ParseInLocation("2006-01-02", strings.TrimSpace(fb.endValue), date.Location())
			r.RecurrenceEndValue = &model.EndValue{Date: d}
		}
	}
	r.Normalize()

	editID := m.editID
	if !m.editMode {
		editID = ""
	}
	return func() tea.Msg {
		return SubmittedMsg{Reminder: r, EditID: editID}
	}
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateDateTime(s string) error {
	if _, err := time.ParseInLocation(dateTimeLayout, strings.TrimSpace(s), time.Local); err != nil {
		return fmt.Errorf("invalid date, use YYYY-MM-DD HH:MM")
	}
	return nil
}

// validateEndValue checks the end value against the selected end mode.
func (fb *formBindings) validateEndValue(s string) error {
	s = strings.TrimSpace(s)
	switch fb.endMode {
	case string(model.EndNever):
		return nil
	case string(model.EndCount):
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return fmt.Errorf("count must be a number of at least 1")
		}
	case string(model.EndDate):
		if _, err := time.Parse("2006-01-02", s); err != nil {
			return fmt.Errorf("invalid date, use YYYY-MM-DD")
		}
	}
	return nil
}
