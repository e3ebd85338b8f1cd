// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings of the main editor view.
type KeyMap struct {
	// Navigation
	Up        key.Binding
	Down      key.Binding
	FocusNext key.Binding
	Filter    key.Binding
	Escape    key.Binding
	PreviewUp key.Binding
	PreviewDn key.Binding
	Preview   key.Binding

	// Schemas
	NewSchema     key.Binding
	FromTemplate  key.Binding
	Duplicate     key.Binding
	Rename        key.Binding
	DeleteSchema  key.Binding
	PageSettings  key.Binding
	Save          key.Binding
	ExportCurrent key.Binding

	// Variables
	AddVariable    key.Binding
	EditVariable   key.Binding
	RemoveVariable key.Binding

	// General
	ToggleTheme key.Binding
	ToggleLog   key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "move down"),
		),
		FocusNext: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch pane"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter schemas"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear filter"),
		),
		PreviewUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "scroll preview up"),
		),
		PreviewDn: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "scroll preview down"),
		),
		Preview: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "show/hide preview"),
		),

		// Schemas
		NewSchema: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new schema"),
		),
		FromTemplate: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "new from template"),
		),
		Duplicate: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "duplicate schema"),
		),
		Rename: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rename schema"),
		),
		DeleteSchema: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "delete schema"),
		),
		PageSettings: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "page settings"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		ExportCurrent: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("ctrl+e", "export schema"),
		),

		// Variables
		AddVariable: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add variable"),
		),
		EditVariable: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit variable"),
		),
		RemoveVariable: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("⌫", "remove variable"),
		),

		// General
		ToggleTheme: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "toggle theme"),
		),
		ToggleLog: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "debug log"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NewSchema, k.AddVariable, k.Save, k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.FocusNext, k.Filter, k.Escape, k.PreviewUp, k.PreviewDn, k.Preview},                          // Navigation
		{k.NewSchema, k.FromTemplate, k.Duplicate, k.Rename, k.DeleteSchema, k.PageSettings, k.Save, k.ExportCurrent}, // Schemas
		{k.AddVariable, k.EditVariable, k.RemoveVariable},                                                             // Variables
		{k.ToggleTheme, k.ToggleLog, k.Help, k.Quit},                                                                  // General
	}
}

// PromptKeyMap defines the keybindings shared by modal prompts, pickers and
// forms.
type PromptKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Next    key.Binding
	Prev    key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultPromptKeyMap returns the keybindings for modal components.
func DefaultPromptKeyMap() PromptKeyMap {
	return PromptKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑", "previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓", "next"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous field"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}
