// Package settingsview edits the persisted application settings: the storage
// backend, the AI provider, and the assistant API key in the system keyring.
package settingsview

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/hqvu/remindcal/internal/credential"
	"github.com/hqvu/remindcal/internal/model"
	"github.com/hqvu/remindcal/internal/theme"
)

// SavedMsg reports the outcome of persisting the settings. On success Config
// carries the new configuration so the parent can keep its copy current.
type SavedMsg struct {
	Config model.AppConfig
	Err    error
}

// CancelMsg is dispatched when the user aborts the settings form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	backend     string
	storagePath string
	provider    string
	modelName   string
	maxTokens   string
	apiKey      string
	clearKey    bool
}

// buildConfig applies the form values onto the base configuration. Fields the
// form does not cover (display, log file) pass through unchanged.
func (fb *formBindings) buildConfig(base model.AppConfig) (model.AppConfig, error) {
	n, err := strconv.Atoi(strings.TrimSpace(fb.maxTokens))
	if err != nil || n < 1 {
		return base, fmt.Errorf("max tokens must be a positive number")
	}

	base.Storage.Backend = fb.backend
	base.Storage.Path = strings.TrimSpace(fb.storagePath)
	base.AI.Provider = fb.provider
	base.AI.Model = strings.TrimSpace(fb.modelName)
	base.AI.MaxTokens = n
	return base, nil
}

// Model is the Bubble Tea model for the settings form.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	base   model.AppConfig
	width  int
	height int
}

// New creates a new settings view model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// Start initializes the form from the current configuration.
func (m *Model) Start(cfg model.AppConfig) tea.Cmd {
	m.base = cfg
	*m.fb = formBindings{
		backend:     cfg.Storage.Backend,
		storagePath: cfg.Storage.Path,
		provider:    cfg.AI.Provider,
		modelName:   cfg.AI.Model,
		maxTokens:   strconv.Itoa(cfg.AI.MaxTokens),
	}
	if m.fb.backend == "" {
		m.fb.backend = model.StorageSQLite
	}
	if m.fb.provider == "" {
		m.fb.provider = model.ProviderClaude
	}
	if m.fb.maxTokens == "0" {
		m.fb.maxTokens = "1024"
	}
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the settings form.
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

// View renders the settings form.
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
		titleStyle.Render("Settings"),
		m.form.View(),
		noteStyle.Render("Storage changes take effect on restart."),
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

func (m *Model) buildForm() *huh.Form {
	fb := m.fb

	storageGroup := huh.NewGroup(
		huh.NewSelect[string]().
			Title("Storage backend").
			Options(
				huh.NewOption("SQLite database", model.StorageSQLite),
				huh.NewOption("Flat files (diskv)", model.StorageDiskv),
			).
			Value(&fb.backend),
		huh.NewInput().
			Title("Storage path").
			Placeholder("leave empty for the default location").
			Value(&fb.storagePath),
	)

	aiGroup := huh.NewGroup(
		huh.NewSelect[string]().
			Title("AI provider").
			Options(
				huh.NewOption("Claude", model.ProviderClaude),
				huh.NewOption("DeepSeek", model.ProviderDeepSeek),
			).
			Value(&fb.provider),
		huh.NewInput().
			Title("Model").
			Placeholder("leave empty for the provider default").
			Value(&fb.modelName),
		huh.NewInput().
			Title("Max tokens").
			Value(&fb.maxTokens).
			Validate(validateMaxTokens),
	)

	keyGroup := huh.NewGroup(
		huh.NewInput().
			Title("API key").
			Description("Stored in the system keyring. Leave empty to keep the current key.").
			EchoMode(huh.EchoModePassword).
			Value(&fb.apiKey),
		huh.NewConfirm().
			Title("Clear stored API key").
			Value(&fb.clearKey),
	)

	return huh.NewForm(storageGroup, aiGroup, keyGroup).
		WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

// handleSubmit persists the configuration file and updates the keyring entry
// off the UI goroutine.
func (m Model) handleSubmit() tea.Cmd {
	cfg, err := m.fb.buildConfig(m.base)
	fb := *m.fb
	return func() tea.Msg {
		if err != nil {
			return SavedMsg{Err: err}
		}
		if err := model.SaveConfig(model.DefaultConfigPath(), &cfg); err != nil {
			return SavedMsg{Err: err}
		}

		switch {
		case fb.clearKey:
			if err := credential.Delete(credential.APIKeyName); err != nil {
				return SavedMsg{Config: cfg, Err: fmt.Errorf("clearing API key: %w", err)}
			}
		case strings.TrimSpace(fb.apiKey) != "":
			if err := credential.Set(credential.APIKeyName, strings.TrimSpace(fb.apiKey)); err != nil {
				return SavedMsg{Config: cfg, Err: fmt.Errorf("storing API key: %w", err)}
			}
		}
		return SavedMsg{Config: cfg}
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
	h := m.height - 6
	if h < 10 {
		h = 10
	}
	return h
}

func validateMaxTokens(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return fmt.Errorf("must be a positive number")
	}
	return nil
}
