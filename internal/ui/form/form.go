// Package form provides a modal form of single-line text fields, used for
// schema name prompts and the variable editor.
//
// Keyboard:
//
//	Tab, Down        - next field
//	Shift+Tab, Up    - previous field
//	Enter            - next field, or submit on the last one
//	Esc              - cancel
//
// A valid submission emits SubmitMsg with the field values keyed by
// Field.Key. Cancelling emits CancelMsg. Both carry the form ID.
package form

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vvwxvv/Data-Schema-Json-App/internal/keys"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/ui/overlay"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/ui/styles"
)

const defaultWidth = 50

// Field configures one text input.
type Field struct {
	Key         string
	Label       string
	Placeholder string
	Initial     string
	CharLimit   int
}

// Config configures a form.
type Config struct {
	ID       string
	Title    string
	Fields   []Field
	Width    int                                  // box width, zero uses 50
	Validate func(values map[string]string) error // optional, runs on submit
}

// SubmitMsg is sent when the form is submitted and valid.
type SubmitMsg struct {
	ID     string
	Values map[string]string
}

// CancelMsg is sent when the form is cancelled.
type CancelMsg struct {
	ID string
}

// Model is the form state. Methods return a new Model.
type Model struct {
	cfg     Config
	inputs  []textinput.Model
	focused int
	err     string

	keys          keys.PromptKeyMap
	theme         styles.Theme
	width, height int
}

// New creates a form focused on its first field.
func New(cfg Config, theme styles.Theme) Model {
	if cfg.Width <= 0 {
		cfg.Width = defaultWidth
	}
	m := Model{
		cfg:    cfg,
		inputs: make([]textinput.Model, len(cfg.Fields)),
		keys:   keys.DefaultPromptKeyMap(),
		theme:  theme,
	}
	for i, f := range cfg.Fields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = f.Placeholder
		if f.CharLimit > 0 {
			ti.CharLimit = f.CharLimit
		}
		ti.SetValue(f.Initial)
		ti.Width = cfg.Width - 6
		m.inputs[i] = ti
	}
	if len(m.inputs) > 0 {
		m.inputs[0].Focus()
	}
	return m
}

// ID returns the form identifier.
func (m Model) ID() string {
	return m.cfg.ID
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// SetSize sets the viewport dimensions for overlay rendering.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// Values returns the current field values keyed by Field.Key.
func (m Model) Values() map[string]string {
	values := make(map[string]string, len(m.inputs))
	for i, f := range m.cfg.Fields {
		values[f.Key] = m.inputs[i].Value()
	}
	return values
}

// Err returns the last validation error message.
func (m Model) Err() string {
	return m.err
}

// Update handles focus movement, submit, cancel and text input.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateFocused(msg)
	}

	switch {
	case key.Matches(keyMsg, m.keys.Cancel):
		id := m.cfg.ID
		return m, func() tea.Msg { return CancelMsg{ID: id} }
	case key.Matches(keyMsg, m.keys.Confirm):
		if m.focused < len(m.inputs)-1 {
			return m.focus(m.focused + 1), nil
		}
		return m.submit()
	case key.Matches(keyMsg, m.keys.Next, m.keys.Down):
		return m.focus((m.focused + 1) % max(len(m.inputs), 1)), nil
	case key.Matches(keyMsg, m.keys.Prev, m.keys.Up):
		n := max(len(m.inputs), 1)
		return m.focus((m.focused - 1 + n) % n), nil
	}
	return m.updateFocused(msg)
}

func (m Model) updateFocused(msg tea.Msg) (Model, tea.Cmd) {
	if len(m.inputs) == 0 {
		return m, nil
	}
	// Copy so the receiver's slice is never written.
	inputs := make([]textinput.Model, len(m.inputs))
	copy(inputs, m.inputs)
	var cmd tea.Cmd
	inputs[m.focused], cmd = inputs[m.focused].Update(msg)
	m.inputs = inputs
	return m, cmd
}

func (m Model) focus(i int) Model {
	if len(m.inputs) == 0 {
		return m
	}
	inputs := make([]textinput.Model, len(m.inputs))
	copy(inputs, m.inputs)
	inputs[m.focused].Blur()
	inputs[i].Focus()
	m.inputs = inputs
	m.focused = i
	return m
}

func (m Model) submit() (Model, tea.Cmd) {
	m.err = ""
	values := m.Values()
	if m.cfg.Validate != nil {
		if err := m.cfg.Validate(values); err != nil {
			m.err = err.Error()
			return m, nil
		}
	}
	id := m.cfg.ID
	return m, func() tea.Msg { return SubmitMsg{ID: id, Values: values} }
}

// View renders the form box (without positioning).
func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(m.theme.Title.Render(m.cfg.Title))
	sb.WriteString("\n")
	sb.WriteString(m.theme.Muted.Render(strings.Repeat("─", m.cfg.Width-4)))

	for i, f := range m.cfg.Fields {
		sb.WriteString("\n")
		label := f.Label
		if i == m.focused {
			sb.WriteString(m.theme.Category.Render("> " + label))
		} else {
			sb.WriteString(m.theme.Secondary.Render("  " + label))
		}
		sb.WriteString("\n  ")
		sb.WriteString(m.inputs[i].View())
	}

	if m.err != "" {
		sb.WriteString("\n\n")
		sb.WriteString(m.theme.Error.Render(m.err))
	}
	sb.WriteString("\n\n")
	sb.WriteString(m.theme.Muted.Render("enter confirm · tab next · esc cancel"))

	return m.theme.Overlay.Width(m.cfg.Width - 2).Render(sb.String())
}

// Overlay renders the form centered on top of background.
func (m Model) Overlay(background string) string {
	return overlay.Centered(m.View(), background, m.width, m.height)
}
