package styles

import "github.com/charmbracelet/lipgloss"

// Theme holds the resolved styles of one preset.
type Theme struct {
	Name string

	Title     lipgloss.Style
	Text      lipgloss.Style
	Secondary lipgloss.Style
	Muted     lipgloss.Style
	Selected  lipgloss.Style
	Category  lipgloss.Style
	Variable  lipgloss.Style
	Dirty     lipgloss.Style
	StatusBar lipgloss.Style
	Error     lipgloss.Style

	Pane        lipgloss.Style
	FocusedPane lipgloss.Style
	Overlay     lipgloss.Style

	SuccessColor lipgloss.Color
	WarningColor lipgloss.Color
	ErrorColor   lipgloss.Color
	InfoColor    lipgloss.Color
	BorderColor  lipgloss.Color
	FocusColor   lipgloss.Color
}

// NewTheme resolves the named preset. Unknown names fall back to dark.
func NewTheme(name string) Theme {
	p, ok := Presets[name]
	if !ok {
		p = DarkPreset
	}
	c := func(t ColorToken) lipgloss.Color { return lipgloss.Color(p.Colors[t]) }

	pane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(c(TokenBorderDefault)).
		Padding(0, 1)

	return Theme{
		Name: p.Name,

		Title:     lipgloss.NewStyle().Bold(true).Foreground(c(TokenTextPrimary)),
		Text:      lipgloss.NewStyle().Foreground(c(TokenTextPrimary)),
		Secondary: lipgloss.NewStyle().Foreground(c(TokenTextSecondary)),
		Muted:     lipgloss.NewStyle().Foreground(c(TokenTextMuted)),
		Selected: lipgloss.NewStyle().Bold(true).
			Foreground(c(TokenSelectionFg)).
			Background(c(TokenSelectionBg)),
		Category:  lipgloss.NewStyle().Bold(true).Foreground(c(TokenCategoryHeader)),
		Variable:  lipgloss.NewStyle().Foreground(c(TokenVariableName)),
		Dirty:     lipgloss.NewStyle().Bold(true).Foreground(c(TokenDirty)),
		StatusBar: lipgloss.NewStyle().Foreground(c(TokenTextSecondary)).Padding(0, 1),
		Error:     lipgloss.NewStyle().Bold(true).Foreground(c(TokenStatusError)),

		Pane:        pane,
		FocusedPane: pane.BorderForeground(c(TokenBorderFocus)),
		Overlay: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c(TokenBorderFocus)).
			Padding(0, 1),

		SuccessColor: c(TokenStatusSuccess),
		WarningColor: c(TokenStatusWarning),
		ErrorColor:   c(TokenStatusError),
		InfoColor:    c(TokenStatusInfo),
		BorderColor:  c(TokenBorderDefault),
		FocusColor:   c(TokenBorderFocus),
	}
}

// Toggle returns the name of the other built-in theme.
func Toggle(name string) string {
	if name == LightPreset.Name {
		return DarkPreset.Name
	}
	return LightPreset.Name
}
