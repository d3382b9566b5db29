// Package app wires the views, the session gate, and the reminder store
// into the root Bubble Tea model.
package app

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	aiservice "github.com/hqvu/remindcal/internal/ai"
	"github.com/hqvu/remindcal/internal/keys"
	"github.com/hqvu/remindcal/internal/model"
	"github.com/hqvu/remindcal/internal/session"
	"github.com/hqvu/remindcal/internal/store"
	"github.com/hqvu/remindcal/internal/ui"
	"github.com/hqvu/remindcal/internal/ui/aiview"
	"github.com/hqvu/remindcal/internal/ui/calendarview"
	"github.com/hqvu/remindcal/internal/ui/confirmview"
	"github.com/hqvu/remindcal/internal/ui/detailview"
	"github.com/hqvu/remindcal/internal/ui/entryform"
	"github.com/hqvu/remindcal/internal/ui/helpview"
	"github.com/hqvu/remindcal/internal/ui/loginview"
	"github.com/hqvu/remindcal/internal/ui/settingsview"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewCalendar ViewState = iota
	ViewDetail
	ViewForm
	ViewConfirmReplace
	ViewLogin
	ViewAI
	ViewHelp
	ViewSettings
)

// Model is the root Bubble Tea model that manages view routing, layout,
// and access to the session gate and reminder store.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	cfg          model.AppConfig
	gate         *session.Gate
	entries      *store.Reminders
	keys         *keys.KeyMap
	logger       *zap.Logger

	calendarView calendarview.Model
	detailView   detailview.Model
	formView     entryform.Model
	confirmView  confirmview.Model
	loginView    loginview.Model
	aiView       aiview.Model
	helpView     helpview.Model
	settingsView settingsview.Model

	ready         bool
	statusMessage string
}

// New creates the root application model. assistant may be nil when no AI
// provider is configured.
func New(
	cfg model.AppConfig,
	gate *session.Gate,
	entries *store.Reminders,
	assistant *aiservice.Assistant,
	logger *zap.Logger,
) Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	k := keys.DefaultKeyMap()
	clock := time.Now

	return Model{
		currentView:  ViewCalendar,
		cfg:          cfg,
		gate:         gate,
		entries:      entries,
		keys:         k,
		logger:       logger,
		calendarView: calendarview.New(entries, k, clock, 80, 24),
		detailView:   detailview.New(assistant, k, 80, 24),
		formView:     entryform.New(80, 24),
		confirmView:  confirmview.New(80, 24),
		loginView:    loginview.New(80, 24),
		aiView:       aiview.New(assistant, k, 80, 24),
		helpView:     helpview.New(k, 80, 24),
		settingsView: settingsview.New(80, 24),
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return m.calendarView.Init()
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		w, h := m.layout.ContentWidth(), m.layout.ContentHeight()
		m.calendarView.SetSize(w, h)
		m.detailView.SetSize(w, h)
		m.formView.SetSize(w, h)
		m.confirmView.SetSize(w, h)
		m.loginView.SetSize(w, h)
		m.aiView.SetSize(w, h)
		m.helpView.SetSize(w, h)
		m.settingsView.SetSize(w, h)
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case calendarview.SelectedReminderMsg:
		if r, ok := m.entries.Get(msg.ReminderID); ok {
			m.previousView = m.currentView
			m.currentView = ViewDetail
			m.detailView.SetReminder(r)
		}
		return m, nil

	case entryform.SubmittedMsg:
		return m.handleFormSubmit(msg)

	case entryform.CancelMsg:
		m.currentView = ViewCalendar
		return m, nil

	case confirmview.ReplaceConfirmedMsg:
		if _, err := m.gate.ConfirmReplace(); err != nil {
			m.logger.Error("replace failed", zap.Error(err))
			m.statusMessage = "Could not save reminder"
		}
		m.currentView = ViewCalendar
		return m, nil

	case confirmview.ReplaceCancelledMsg:
		m.gate.CancelReplace()
		m.currentView = ViewCalendar
		return m, nil

	case loginview.LoginSubmittedMsg:
		if err := m.gate.Login(msg.Name); err != nil {
			m.logger.Error("login failed", zap.Error(err))
			m.statusMessage = "Login failed"
		} else {
			m.statusMessage = ""
		}
		m.currentView = ViewCalendar
		return m, nil

	case loginview.LoginCancelMsg:
		m.currentView = ViewCalendar
		return m, nil

	case detailview.BackMsg:
		m.currentView = ViewCalendar
		return m, nil

	case detailview.EditMsg:
		if r, ok := m.entries.Get(msg.ReminderID); ok {
			m.previousView = m.currentView
			m.currentView = ViewForm
			return m, m.formView.StartEdit(r)
		}
		return m, nil

	case detailview.DeleteMsg:
		if err := m.entries.Delete(msg.ReminderID); err != nil {
			m.logger.Error("delete failed", zap.Error(err))
		}
		m.currentView = ViewCalendar
		return m, nil

	case detailview.ToggleMsg:
		if err := m.entries.ToggleCompleted(msg.ReminderID); err != nil {
			m.logger.Error("toggle failed", zap.Error(err))
		}
		if r, ok := m.entries.Get(msg.ReminderID); ok {
			m.detailView.SetReminder(r)
		}
		return m, nil

	case detailview.RefinedMsg:
		// Let the view apply (or drop) the result, then persist what it kept.
		var cmd tea.Cmd
		m.detailView, cmd = m.detailView.Update(msg)
		if r, ok := m.detailView.Reminder(); ok {
			if err := m.gate.SubmitEdit(r.ID, r); err != nil {
				m.logger.Error("persisting refined text failed", zap.Error(err))
			}
		}
		return m, cmd

	case settingsview.SavedMsg:
		if msg.Err != nil {
			m.logger.Error("saving settings failed", zap.Error(msg.Err))
			m.statusMessage = "Could not save settings"
		} else {
			m.cfg = msg.Config
			m.statusMessage = "Settings saved"
		}
		m.currentView = ViewCalendar
		return m, nil

	case settingsview.CancelMsg:
		m.currentView = ViewCalendar
		return m, nil

	case aiview.CloseMsg:
		m.aiView.Reset()
		m.currentView = ViewCalendar
		return m, nil

	case aiview.ResponseMsg:
		if m.currentView == ViewAI {
			var cmd tea.Cmd
			m.aiView, cmd = m.aiView.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		if newModel, cmd, handled := m.handleGlobalKeys(msg); handled {
			return newModel, cmd
		}
	}

	return m.updateActiveView(msg)
}

// handleGlobalKeys processes keys that work regardless of the focused view.
// Views with text input (form, login, AI) only honor ctrl+c.
func (m Model) handleGlobalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit, true
	}

	switch m.currentView {
	case ViewForm, ViewLogin, ViewAI, ViewConfirmReplace, ViewSettings:
		return m, nil, false
	}

	switch msg.String() {
	case "q":
		if m.currentView == ViewCalendar {
			return m, tea.Quit, true
		}

	case "?":
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return m, nil, true
		}
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return m, nil, true

	case "a":
		if m.currentView == ViewCalendar {
			m.previousView = m.currentView
			m.currentView = ViewAI
			return m, m.aiView.Focus(), true
		}

	case "n":
		if m.currentView == ViewCalendar {
			m.previousView = m.currentView
			m.currentView = ViewForm
			m.statusMessage = ""
			return m, m.formView.StartCreate(m.calendarView.SelectedDay()), true
		}

	case "e":
		if m.currentView == ViewCalendar {
			if r, ok := m.calendarView.SelectedReminder(); ok {
				m.previousView = m.currentView
				m.currentView = ViewForm
				return m, m.formView.StartEdit(r), true
			}
		}

	case "d":
		if m.currentView == ViewCalendar {
			if r, ok := m.calendarView.SelectedReminder(); ok {
				if err := m.entries.Delete(r.ID); err != nil {
					m.logger.Error("delete failed", zap.Error(err))
				}
				return m, nil, true
			}
		}

	case "x":
		if m.currentView == ViewCalendar {
			if r, ok := m.calendarView.SelectedReminder(); ok {
				if err := m.entries.ToggleCompleted(r.ID); err != nil {
					m.logger.Error("toggle failed", zap.Error(err))
				}
				return m, nil, true
			}
		}

	case "s":
		if m.currentView == ViewCalendar {
			m.previousView = m.currentView
			m.currentView = ViewSettings
			m.statusMessage = ""
			return m, m.settingsView.Start(m.cfg), true
		}

	case "L":
		if m.currentView == ViewCalendar && m.gate.Account().IsTemp {
			m.previousView = m.currentView
			m.currentView = ViewLogin
			return m, m.loginView.Start(), true
		}

	case "O":
		if m.currentView == ViewCalendar && !m.gate.Account().IsTemp {
			if err := m.gate.Logout(); err != nil {
				m.logger.Error("logout failed", zap.Error(err))
			}
			m.statusMessage = "Logged out; reminders cleared"
			return m, nil, true
		}
	}

	return m, nil, false
}

// handleFormSubmit routes a completed form through the gate.
func (m Model) handleFormSubmit(msg entryform.SubmittedMsg) (tea.Model, tea.Cmd) {
	if msg.EditID != "" {
		if err := m.gate.SubmitEdit(msg.EditID, msg.Reminder); err != nil {
			m.logger.Error("edit failed", zap.Error(err))
			m.statusMessage = "Could not save changes"
		}
		// Refresh the detail view if the edit came from there.
		if m.previousView == ViewDetail {
			if r, ok := m.entries.Get(msg.EditID); ok {
				m.detailView.SetReminder(r)
				m.currentView = ViewDetail
				return m, nil
			}
		}
		m.currentView = ViewCalendar
		return m, nil
	}

	result, _, err := m.gate.SubmitNew(msg.Reminder)
	switch result {
	case session.SubmitCreated:
		m.statusMessage = ""
		m.currentView = ViewCalendar

	case session.SubmitPendingReplace:
		if pending, ok := m.gate.Pending(); ok {
			m.confirmView.SetPending(pending)
		}
		m.currentView = ViewConfirmReplace

	case session.SubmitRejected:
		if errors.Is(err, session.ErrCapacityExceeded) {
			m.statusMessage = fmt.Sprintf(
				"Reminder limit reached (%d)", m.gate.Account().Capacity())
		} else if err != nil {
			m.logger.Error("create failed", zap.Error(err))
			m.statusMessage = "Could not save reminder"
		}
		m.currentView = ViewCalendar
	}
	return m, nil
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewCalendar:
		m.calendarView, cmd = m.calendarView.Update(msg)
	case ViewDetail:
		m.detailView, cmd = m.detailView.Update(msg)
	case ViewForm:
		m.formView, cmd = m.formView.Update(msg)
	case ViewConfirmReplace:
		m.confirmView, cmd = m.confirmView.Update(msg)
	case ViewLogin:
		m.loginView, cmd = m.loginView.Update(msg)
	case ViewAI:
		m.aiView, cmd = m.aiView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewSettings:
		m.settingsView, cmd = m.settingsView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("RemindCal", m.accountStatus())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewCalendar:
		return m.calendarView.View()
	case ViewDetail:
		return m.detailView.View()
	case ViewForm:
		return m.formView.View()
	case ViewConfirmReplace:
		return m.confirmView.View()
	case ViewLogin:
		return m.loginView.View()
	case ViewAI:
		return m.aiView.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewSettings:
		return m.settingsView.View()
	default:
		return ""
	}
}

// accountStatus summarizes the active account and its usage for the header.
func (m Model) accountStatus() string {
	acct := m.gate.Account()
	return fmt.Sprintf("%s (%d/%d)",
		acct.DisplayName(), m.entries.Count(), acct.Capacity())
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	if m.statusMessage != "" && m.currentView == ViewCalendar {
		return m.statusMessage
	}

	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewDetail:
		return "esc back | e edit | d delete | x toggle | R refine | j/k scroll"
	case ViewForm:
		return "enter submit | esc cancel"
	case ViewConfirmReplace:
		return "y replace | n keep existing"
	case ViewLogin:
		return "enter log in | esc cancel"
	case ViewAI:
		return "enter send | esc close"
	case ViewSettings:
		return "enter save | esc cancel"
	default:
		acct := m.gate.Account()
		hints := "q quit | ? help | n new | h/l period | m/w view | t today | / search | s settings"
		if acct.IsTemp {
			return hints + " | L log in"
		}
		return hints + " | O log out"
	}
}
