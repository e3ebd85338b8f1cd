package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"
)

func TestPresets_DefineEveryToken(t *testing.T) {
	for name, p := range Presets {
		require.Equal(t, name, p.Name)
		for _, tok := range AllTokens {
			require.NotEmpty(t, p.Colors[tok], "preset %s missing %s", name, tok)
		}
		require.Len(t, p.Colors, len(AllTokens), "preset %s has unknown tokens", name)
	}
}

func TestNewTheme(t *testing.T) {
	dark := NewTheme("dark")
	require.Equal(t, "dark", dark.Name)
	require.Equal(t, lipgloss.Color(DarkPreset.Colors[TokenStatusError]), dark.ErrorColor)

	light := NewTheme("light")
	require.Equal(t, "light", light.Name)
	require.Equal(t, lipgloss.Color(LightPreset.Colors[TokenBorderFocus]), light.FocusColor)

	require.Equal(t, "dark", NewTheme("solarized").Name)
}

func TestToggle(t *testing.T) {
	require.Equal(t, "light", Toggle("dark"))
	require.Equal(t, "dark", Toggle("light"))
	require.Equal(t, "light", Toggle(""))
}
