package toaster

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"

	"github.com/vvwxvv/Data-Schema-Json-App/internal/ui/styles"
)

func newToaster() Model {
	return New(styles.NewTheme("dark"))
}

func TestNew_Hidden(t *testing.T) {
	m := newToaster()
	require.False(t, m.Visible())
	require.Empty(t, m.View())
}

func TestShow(t *testing.T) {
	tests := []struct {
		style Style
		icon  string
	}{
		{StyleSuccess, "✓"},
		{StyleError, "✗"},
		{StyleInfo, "ℹ"},
		{StyleWarn, "!"},
	}
	for _, tt := range tests {
		m, cmd := newToaster().Show("saved schemas.json", tt.style)
		require.NotNil(t, cmd)
		require.True(t, m.Visible())
		view := m.View()
		require.Contains(t, view, tt.icon+" saved schemas.json")
		require.Contains(t, view, "╭")
	}
}

func TestStyle_Duration(t *testing.T) {
	require.Equal(t, DefaultDuration, StyleSuccess.Duration())
	require.Equal(t, DefaultDuration, StyleInfo.Duration())
	require.Equal(t, ProblemDuration, StyleWarn.Duration())
	require.Equal(t, ProblemDuration, StyleError.Duration())
}

func TestOverlay_TruncatesLongMessages(t *testing.T) {
	bg := strings.TrimSuffix(strings.Repeat(strings.Repeat(".", 30)+"\n", 10), "\n")
	m, _ := newToaster().Show(strings.Repeat("long ", 20), StyleError)

	for _, line := range strings.Split(m.Overlay(bg, 30, 10), "\n") {
		require.LessOrEqual(t, lipgloss.Width(line), 30)
	}
	require.Contains(t, m.Overlay(bg, 30, 10), "…")
}

func TestUpdate_DismissesOwnToastOnly(t *testing.T) {
	m, _ := newToaster().Show("first", StyleInfo)
	first := m.id
	m, _ = m.Show("second", StyleInfo)

	m = m.Update(DismissMsg{ID: first})
	require.True(t, m.Visible(), "stale dismiss must not hide a newer toast")
	require.Equal(t, "second", m.Message())

	m = m.Update(DismissMsg{ID: m.id})
	require.False(t, m.Visible())
}

func TestShow_DoesNotMutateReceiver(t *testing.T) {
	m1 := newToaster()
	m2, _ := m1.Show("hello", StyleSuccess)
	require.False(t, m1.Visible())
	require.True(t, m2.Visible())
}

func TestOverlay(t *testing.T) {
	bg := strings.TrimSuffix(strings.Repeat(strings.Repeat(".", 30)+"\n", 10), "\n")

	require.Equal(t, bg, newToaster().Overlay(bg, 30, 10))

	m, _ := newToaster().Show("Toast", StyleSuccess)
	lines := strings.Split(m.Overlay(bg, 30, 10), "\n")
	require.Len(t, lines, 10)
	// Three-line box, one row of padding below.
	require.Contains(t, lines[7], "Toast")
	require.Equal(t, strings.Repeat(".", 30), lines[9])
}
