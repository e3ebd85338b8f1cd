// Package toaster shows short status notifications at the bottom of the
// screen.
package toaster

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/vvwxvv/Data-Schema-Json-App/internal/ui/overlay"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/ui/styles"
)

// How long toasts stay visible. Problems stay up longer than confirmations.
const (
	DefaultDuration = 3 * time.Second
	ProblemDuration = 5 * time.Second
)

// Style determines the visual appearance of the toast.
type Style int

const (
	StyleSuccess Style = iota
	StyleError
	StyleInfo
	StyleWarn
)

// Duration returns how long a toast of this style stays visible.
func (s Style) Duration() time.Duration {
	if s == StyleError || s == StyleWarn {
		return ProblemDuration
	}
	return DefaultDuration
}

func (s Style) icon() string {
	switch s {
	case StyleError:
		return "✗"
	case StyleInfo:
		return "ℹ"
	case StyleWarn:
		return "!"
	default:
		return "✓"
	}
}

// DismissMsg hides the toast it was scheduled for. Later toasts ignore it.
type DismissMsg struct {
	ID int
}

// Model holds the toaster state.
type Model struct {
	message string
	style   Style
	visible bool
	id      int
	theme   styles.Theme
}

// New creates a hidden toaster.
func New(theme styles.Theme) Model {
	return Model{theme: theme}
}

// SetTheme switches the colors used for rendering.
func (m Model) SetTheme(theme styles.Theme) Model {
	m.theme = theme
	return m
}

// Show displays message and returns a command that dismisses it after the
// style's Duration.
func (m Model) Show(message string, style Style) (Model, tea.Cmd) {
	m.id++
	m.message = message
	m.style = style
	m.visible = true
	id := m.id
	return m, tea.Tick(style.Duration(), func(time.Time) tea.Msg { return DismissMsg{ID: id} })
}

// Update hides the toast when its own DismissMsg arrives.
func (m Model) Update(msg tea.Msg) Model {
	if d, ok := msg.(DismissMsg); ok && d.ID == m.id {
		m.visible = false
		m.message = ""
	}
	return m
}

// Visible reports whether a toast is showing.
func (m Model) Visible() bool {
	return m.visible && m.message != ""
}

// Message returns the current toast text.
func (m Model) Message() string {
	return m.message
}

// View renders the toast box, or "" when hidden.
func (m Model) View() string {
	return m.render(0)
}

// render draws the box. A positive maxWidth truncates the message so the
// box fits in that many columns.
func (m Model) render(maxWidth int) string {
	if !m.Visible() {
		return ""
	}

	var color lipgloss.Color
	switch m.style {
	case StyleError:
		color = m.theme.ErrorColor
	case StyleInfo:
		color = m.theme.InfoColor
	case StyleWarn:
		color = m.theme.WarningColor
	default:
		color = m.theme.SuccessColor
	}

	text := m.style.icon() + " " + m.message
	// border and padding take two columns on each side
	if maxWidth > 4 {
		text = ansi.Truncate(text, maxWidth-4, "…")
	}
	return lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Render(text)
}

// Overlay draws the toast near the bottom edge of bg.
func (m Model) Overlay(bg string, width, height int) string {
	if !m.Visible() {
		return bg
	}
	return overlay.Place(overlay.Config{
		Width:    width,
		Height:   height,
		Position: overlay.Bottom,
		PadY:     1,
	}, m.render(width), bg)
}
