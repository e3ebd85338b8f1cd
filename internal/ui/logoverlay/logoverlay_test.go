package logoverlay

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"

	"github.com/vvwxvv/Data-Schema-Json-App/internal/log"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/ui/styles"
)

func newOverlay() Model {
	return New(styles.NewTheme("dark")).SetSize(120, 40)
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestAppend_TrimsNewlineAndCapacity(t *testing.T) {
	m := newOverlay()
	m.capacity = 3
	for _, e := range []string{"a\n", "b\n", "c\n", "d\n"} {
		m = m.Append(e)
	}
	require.Equal(t, []string{"b", "c", "d"}, m.Entries())
}

func TestAppend_DoesNotMutateReceiver(t *testing.T) {
	m := newOverlay().Append("first")
	_ = m.Append("second")
	require.Equal(t, []string{"first"}, m.Entries())
}

func TestLevelFilter(t *testing.T) {
	m := newOverlay().Toggle().
		Append("t [DEBUG] [ui] one").
		Append("t [INFO] [ui] two").
		Append("t [WARN] [ui] three").
		Append("t [ERROR] [ui] four")

	tests := []struct {
		key   string
		level log.Level
		count int
	}{
		{"e", log.LevelError, 1},
		{"w", log.LevelWarn, 2},
		{"i", log.LevelInfo, 3},
		{"d", log.LevelDebug, 4},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			next, _ := m.Update(keyMsg(tt.key))
			require.Equal(t, tt.level, next.MinLevel())
			require.Len(t, next.Entries(), tt.count)
		})
	}
}

func TestUpdate_IgnoredWhenHidden(t *testing.T) {
	m := newOverlay().Append("t [DEBUG] [ui] one")
	next, cmd := m.Update(keyMsg("c"))
	require.Nil(t, cmd)
	require.Len(t, next.Entries(), 1)
}

func TestUpdate_ClearAndClose(t *testing.T) {
	m := newOverlay().Toggle().Append("t [INFO] [ui] one")

	m, _ = m.Update(keyMsg("c"))
	require.Empty(t, m.Entries())
	require.Contains(t, m.View(), "No logs to display")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.False(t, m.Visible())
	require.NotNil(t, cmd)
	require.IsType(t, CloseMsg{}, cmd())
}

func TestOverlay(t *testing.T) {
	bg := lipgloss.Place(120, 40, lipgloss.Left, lipgloss.Top, "background")

	hidden := newOverlay()
	require.Equal(t, bg, hidden.Overlay(bg))

	shown := newOverlay().Toggle().Append("t [WARN] [workspace] autosave failed")
	out := shown.Overlay(bg)
	require.Equal(t, 40, lipgloss.Height(out))
	require.Contains(t, out, "Logs")
	require.Contains(t, out, "autosave failed")
	require.True(t, strings.Contains(out, "[w] warn"))
}

func TestCategoryFilter(t *testing.T) {
	m := newOverlay().Toggle().
		Append("t [INFO] [workspace] saved").
		Append("t [DEBUG] [cache] hit").
		Append("t [WARN] [workspace] skipped").
		Append("untagged line")

	tab := tea.KeyMsg{Type: tea.KeyTab}

	m, _ = m.Update(tab)
	require.Equal(t, "cache", m.Category())
	require.Equal(t, []string{"t [DEBUG] [cache] hit"}, m.Entries())

	m, _ = m.Update(tab)
	require.Equal(t, "workspace", m.Category())
	require.Len(t, m.Entries(), 2)
	require.Contains(t, m.View(), "Logs · workspace")

	m, _ = m.Update(tab)
	require.Empty(t, m.Category())
	require.Len(t, m.Entries(), 4)
}

func TestCategory(t *testing.T) {
	tests := map[string]string{
		"2024-05-11T14:07:00 [INFO] [template] loaded": "template",
		"2024-05-11T14:07:00 [INFO] template loaded":   "",
		"short":           "",
		"a b []":          "",
		"a [WARN] [ui] x": "ui",
	}
	for entry, want := range tests {
		require.Equal(t, want, category(entry), entry)
	}
}

func TestNextCategory_Empty(t *testing.T) {
	require.Empty(t, nextCategory(nil, ""))
	require.Empty(t, nextCategory([]string{"ui"}, "gone"))
}
