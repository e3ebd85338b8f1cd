// Package picker provides a modal single-choice list with type-to-filter.
package picker

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vvwxvv/Data-Schema-Json-App/internal/keys"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/ui/markdown"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/ui/overlay"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/ui/styles"
)

const (
	defaultBoxWidth   = 40
	defaultMaxVisible = 10
)

// Option represents a picker option with label and value.
type Option struct {
	Label       string
	Value       string
	Description string // shown below the list for the highlighted option
}

// SelectMsg is sent when an option is confirmed.
type SelectMsg struct {
	ID     string
	Option Option
}

// CancelMsg is sent when the picker is dismissed.
type CancelMsg struct {
	ID string
}

// Model holds the picker state.
type Model struct {
	id       string
	title    string
	options  []Option
	filtered []int // indexes into options
	selected int   // index into filtered
	offset   int
	query    string

	keys           keys.PromptKeyMap
	theme          styles.Theme
	boxWidth       int
	maxVisible     int
	viewportWidth  int
	viewportHeight int
}

// New creates a picker. id is echoed in SelectMsg and CancelMsg.
func New(id, title string, options []Option, theme styles.Theme) Model {
	m := Model{
		id:         id,
		title:      title,
		options:    options,
		keys:       keys.DefaultPromptKeyMap(),
		theme:      theme,
		boxWidth:   defaultBoxWidth,
		maxVisible: defaultMaxVisible,
	}
	m.refilter()
	return m
}

// ID returns the picker identifier.
func (m Model) ID() string {
	return m.id
}

// SetSize sets the viewport dimensions for overlay rendering.
func (m Model) SetSize(width, height int) Model {
	m.viewportWidth = width
	m.viewportHeight = height
	return m
}

// SetBoxWidth sets the width of the picker box itself.
func (m Model) SetBoxWidth(width int) Model {
	if width > 0 {
		m.boxWidth = width
	}
	return m
}

// SetSelectedValue highlights the option with value, if visible.
func (m Model) SetSelectedValue(value string) Model {
	for i, idx := range m.filtered {
		if m.options[idx].Value == value {
			m.selected = i
			m.clampOffset()
		}
	}
	return m
}

// Selected returns the highlighted option, or the zero Option when the
// filter matches nothing.
func (m Model) Selected() (Option, bool) {
	if m.selected < 0 || m.selected >= len(m.filtered) {
		return Option{}, false
	}
	return m.options[m.filtered[m.selected]], true
}

// Query returns the current filter text.
func (m Model) Query() string {
	return m.query
}

// Update handles navigation, filtering, confirm and cancel keys.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Cancel):
		id := m.id
		return m, func() tea.Msg { return CancelMsg{ID: id} }
	case key.Matches(keyMsg, m.keys.Confirm):
		opt, ok := m.Selected()
		if !ok {
			return m, nil
		}
		id := m.id
		return m, func() tea.Msg { return SelectMsg{ID: id, Option: opt} }
	case key.Matches(keyMsg, m.keys.Down, m.keys.Next):
		if m.selected < len(m.filtered)-1 {
			m.selected++
			m.clampOffset()
		}
	case key.Matches(keyMsg, m.keys.Up, m.keys.Prev):
		if m.selected > 0 {
			m.selected--
			m.clampOffset()
		}
	case keyMsg.Type == tea.KeyBackspace:
		if m.query != "" {
			r := []rune(m.query)
			m.query = string(r[:len(r)-1])
			m.refilter()
		}
	case keyMsg.Type == tea.KeyRunes:
		m.query += string(keyMsg.Runes)
		m.refilter()
	}
	return m, nil
}

func (m *Model) refilter() {
	q := strings.ToLower(m.query)
	m.filtered = nil
	for i, opt := range m.options {
		if q == "" || strings.Contains(strings.ToLower(opt.Label), q) || strings.Contains(strings.ToLower(opt.Value), q) {
			m.filtered = append(m.filtered, i)
		}
	}
	m.selected = 0
	m.offset = 0
}

func (m *Model) clampOffset() {
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+m.maxVisible {
		m.offset = m.selected - m.maxVisible + 1
	}
}

// View renders the picker box (without positioning).
func (m Model) View() string {
	inner := m.boxWidth - 4 // border and padding

	var sb strings.Builder
	sb.WriteString(m.theme.Title.Render(m.title))
	sb.WriteString("\n")
	if m.query != "" {
		sb.WriteString(m.theme.Secondary.Render("filter: " + m.query))
	} else {
		sb.WriteString(m.theme.Muted.Render("type to filter"))
	}
	sb.WriteString("\n")
	sb.WriteString(m.theme.Muted.Render(strings.Repeat("─", inner)))

	if len(m.filtered) == 0 {
		sb.WriteString("\n")
		sb.WriteString(m.theme.Muted.Render("no matches"))
	}
	end := min(m.offset+m.maxVisible, len(m.filtered))
	for i := m.offset; i < end; i++ {
		opt := m.options[m.filtered[i]]
		sb.WriteString("\n")
		if i == m.selected {
			sb.WriteString(m.theme.Selected.Render("> " + opt.Label))
		} else {
			sb.WriteString("  " + m.theme.Text.Render(opt.Label))
		}
	}

	if opt, ok := m.Selected(); ok && opt.Description != "" {
		sb.WriteString("\n")
		sb.WriteString(m.theme.Muted.Render(strings.Repeat("─", inner)))
		sb.WriteString("\n")
		sb.WriteString(m.theme.Secondary.Render(markdown.Wrap(opt.Description, inner)))
	}

	return m.theme.Overlay.Width(m.boxWidth - 2).Render(sb.String())
}

// Overlay renders the picker centered on top of background.
func (m Model) Overlay(background string) string {
	return overlay.Centered(m.View(), background, m.viewportWidth, m.viewportHeight)
}
