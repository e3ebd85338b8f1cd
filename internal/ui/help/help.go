// Package help contains the keybinding overlay shown with "?".
package help

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/vvwxvv/Data-Schema-Json-App/internal/keys"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/ui/overlay"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/ui/styles"
)

// sectionTitles name the groups returned by KeyMap.FullHelp.
var sectionTitles = []string{"Navigation", "Schemas", "Variables", "General"}

// Model holds the help view state.
type Model struct {
	keys   keys.KeyMap
	theme  styles.Theme
	width  int
	height int
}

// New creates a help view for km.
func New(km keys.KeyMap, theme styles.Theme) Model {
	return Model{keys: km, theme: theme}
}

// SetSize updates dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// SetTheme switches the colors used for rendering.
func (m Model) SetTheme(theme styles.Theme) Model {
	m.theme = theme
	return m
}

// View renders the help box centered on an empty screen.
func (m Model) View() string {
	return m.Overlay("")
}

// Overlay renders the help box on top of a background view.
func (m Model) Overlay(background string) string {
	return overlay.Centered(m.renderContent(), background, m.width, m.height)
}

func (m Model) renderContent() string {
	keyStyle := m.theme.Secondary.Width(11)
	columnStyle := lipgloss.NewStyle().MarginRight(4)

	groups := m.keys.FullHelp()
	columns := make([]string, 0, len(groups))
	for i, group := range groups {
		var col strings.Builder
		col.WriteString(m.theme.Category.Render(sectionTitles[i]))
		col.WriteString("\n")
		for _, b := range group {
			col.WriteString(renderBinding(b, keyStyle, m.theme.Text))
		}
		if i < len(groups)-1 {
			columns = append(columns, columnStyle.Render(col.String()))
		} else {
			columns = append(columns, col.String())
		}
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, columns...)

	width := lipgloss.Width(body)
	var sb strings.Builder
	sb.WriteString(m.theme.Title.Render("Keybindings"))
	sb.WriteString("\n")
	sb.WriteString(m.theme.Muted.Render(strings.Repeat("─", width)))
	sb.WriteString("\n")
	sb.WriteString(body)
	sb.WriteString("\n")
	sb.WriteString(m.theme.Muted.Render("Press ? or Esc to close"))

	return m.theme.Overlay.Render(sb.String())
}

func renderBinding(b key.Binding, keyStyle, descStyle lipgloss.Style) string {
	h := b.Help()
	return keyStyle.Render(h.Key) + descStyle.Render(h.Desc) + "\n"
}
