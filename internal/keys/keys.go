package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keybindings for the application.
type KeyMap struct {
	// Day-to-day navigation within the grid
	Down  key.Binding
	Up    key.Binding
	Left  key.Binding
	Right key.Binding

	// Period navigation
	PrevPeriod key.Binding
	NextPeriod key.Binding
	MonthView  key.Binding
	WeekView   key.Binding
	Today      key.Binding

	// Selection
	Select key.Binding

	// Back / Quit
	Back key.Binding
	Quit key.Binding

	// Search
	Search key.Binding

	// Help toggle
	Help key.Binding

	// Entry actions
	New    key.Binding
	Edit   key.Binding
	Delete key.Binding
	Toggle key.Binding
	Refine key.Binding

	// Account
	Login  key.Binding
	Logout key.Binding

	// AI panel
	AI key.Binding

	// Settings form
	Settings key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "previous day"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "next day"),
		),
		PrevPeriod: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "previous period"),
		),
		NextPeriod: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "next period"),
		),
		MonthView: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "month view"),
		),
		WeekView: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "week view"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "jump to today"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open detail"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new reminder"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "toggle done"),
		),
		Refine: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "refine with AI"),
		),
		Login: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "log in"),
		),
		Logout: key.NewBinding(
			key.WithKeys("O"),
			key.WithHelp("O", "log out"),
		),
		AI: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "AI panel"),
		),
		Settings: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "settings"),
		),
	}
}

// ShortHelp returns the most essential keybindings for the compact help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.PrevPeriod, k.NextPeriod, k.MonthView, k.WeekView,
		k.New, k.Quit, k.Help,
	}
}

// FullHelp returns all keybindings grouped by category for the expanded
// help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Select, k.Back, k.Quit},
		{k.PrevPeriod, k.NextPeriod, k.MonthView, k.WeekView, k.Today},
		{k.New, k.Edit, k.Delete, k.Toggle, k.Refine, k.Search},
		{k.Login, k.Logout, k.AI, k.Settings, k.Help},
	}
}
