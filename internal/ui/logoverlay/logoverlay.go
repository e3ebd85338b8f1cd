// Package logoverlay shows the debug log inside the editor. Lines can be
// narrowed by level and by log category.
package logoverlay

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/vvwxvv/Data-Schema-Json-App/internal/log"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/ui/overlay"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/ui/styles"
)

const (
	maxLines = 25
	minLines = 5
	maxWidth = 160
	minWidth = 40

	// DefaultCapacity is the number of lines kept before the oldest drop.
	DefaultCapacity = 500
)

// CloseMsg is sent when the overlay closes itself.
type CloseMsg struct{}

type keyMap struct {
	Clear    key.Binding
	Debug    key.Binding
	Info     key.Binding
	Warn     key.Binding
	Error    key.Binding
	Category key.Binding
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Close    key.Binding
}

var keys = keyMap{
	Clear:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
	Debug:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "debug")),
	Info:     key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "info")),
	Warn:     key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "warn")),
	Error:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "error")),
	Category: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "category")),
	Up:       key.NewBinding(key.WithKeys("k", "up")),
	Down:     key.NewBinding(key.WithKeys("j", "down")),
	Top:      key.NewBinding(key.WithKeys("g", "home")),
	Bottom:   key.NewBinding(key.WithKeys("G", "end")),
	Close:    key.NewBinding(key.WithKeys("ctrl+x", "esc")),
}

// Model buffers log lines and renders them in a centered box.
type Model struct {
	lines    []string
	capacity int
	shown    bool
	level    log.Level
	category string // "" shows every category
	width    int
	height   int
	vp       viewport.Model
	theme    styles.Theme
}

// New creates a hidden overlay.
func New(theme styles.Theme) Model {
	return Model{capacity: DefaultCapacity, theme: theme}
}

// SetTheme switches the colors used for rendering.
func (m Model) SetTheme(theme styles.Theme) Model {
	m.theme = theme
	m.rebuild(false)
	return m
}

// Append records a log line, dropping the oldest beyond capacity.
func (m Model) Append(entry string) Model {
	keep := m.lines
	if over := len(keep) + 1 - m.capacity; over > 0 {
		keep = keep[over:]
	}
	m.lines = append(slices.Clip(keep), strings.TrimSuffix(entry, "\n"))
	m.rebuild(true)
	return m
}

// Entries returns the buffered lines that pass the level and category
// filters.
func (m Model) Entries() []string {
	var out []string
	for _, e := range m.lines {
		if log.EntryLevel(e) < m.level {
			continue
		}
		if m.category != "" && category(e) != m.category {
			continue
		}
		out = append(out, e)
	}
	return out
}

// MinLevel returns the active level filter.
func (m Model) MinLevel() log.Level {
	return m.level
}

// Category returns the active category filter, "" for all.
func (m Model) Category() string {
	return m.category
}

// Visible reports whether the overlay is shown.
func (m Model) Visible() bool {
	return m.shown
}

// Toggle shows or hides the overlay.
func (m Model) Toggle() Model {
	m.shown = !m.shown
	m.rebuild(true)
	return m
}

// SetSize updates the screen dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width, m.height = width, height
	m.rebuild(false)
	return m
}

// Update handles keys while the overlay is shown.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok || !m.shown {
		return m, nil
	}

	switch {
	case key.Matches(km, keys.Close):
		m.shown = false
		return m, func() tea.Msg { return CloseMsg{} }
	case key.Matches(km, keys.Up):
		m.vp.ScrollUp(1)
	case key.Matches(km, keys.Down):
		m.vp.ScrollDown(1)
	case key.Matches(km, keys.Top):
		m.vp.GotoTop()
	case key.Matches(km, keys.Bottom):
		m.vp.GotoBottom()
	case key.Matches(km, keys.Clear):
		m.lines = nil
		m.rebuild(true)
	case key.Matches(km, keys.Debug):
		m = m.filterLevel(log.LevelDebug)
	case key.Matches(km, keys.Info):
		m = m.filterLevel(log.LevelInfo)
	case key.Matches(km, keys.Warn):
		m = m.filterLevel(log.LevelWarn)
	case key.Matches(km, keys.Error):
		m = m.filterLevel(log.LevelError)
	case key.Matches(km, keys.Category):
		m.category = nextCategory(m.categories(), m.category)
		m.rebuild(true)
	}
	return m, nil
}

func (m Model) filterLevel(level log.Level) Model {
	m.level = level
	m.rebuild(true)
	return m
}

// categories lists the categories present in the buffer, sorted.
func (m Model) categories() []string {
	var cats []string
	for _, e := range m.lines {
		if c := category(e); c != "" && !slices.Contains(cats, c) {
			cats = append(cats, c)
		}
	}
	slices.Sort(cats)
	return cats
}

// nextCategory steps from current to the following category, wrapping to
// "" (all) after the last one.
func nextCategory(cats []string, current string) string {
	if current == "" {
		if len(cats) == 0 {
			return ""
		}
		return cats[0]
	}
	i := slices.Index(cats, current)
	if i < 0 || i == len(cats)-1 {
		return ""
	}
	return cats[i+1]
}

// category reads the "[cat]" tag that follows the level tag in a line
// written by the log package.
func category(entry string) string {
	fields := strings.Fields(entry)
	if len(fields) < 3 {
		return ""
	}
	tag := fields[2]
	if len(tag) < 3 || tag[0] != '[' || tag[len(tag)-1] != ']' {
		return ""
	}
	return tag[1 : len(tag)-1]
}

// View renders the overlay box.
func (m Model) View() string {
	w := m.boxWidth()
	rule := m.theme.Muted.Render(strings.Repeat("─", w-2))
	title := "Logs"
	if m.category != "" {
		title += " · " + m.category
	}
	body := strings.Join([]string{
		m.theme.Title.Render(title),
		rule,
		m.vp.View(),
		rule,
		m.footer(),
	}, "\n")
	return m.theme.Overlay.Width(w).Render(body)
}

// Overlay renders the log box centered on bg, or bg alone when hidden.
func (m Model) Overlay(bg string) string {
	if !m.shown {
		return bg
	}
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, m.View(), bg)
}

// rebuild recreates the viewport for the current size and filters. With
// follow set it scrolls to the newest line.
func (m *Model) rebuild(follow bool) {
	if m.width == 0 || m.height == 0 {
		return
	}
	// title, rules, footer and border take six lines
	h := max(min(maxLines, m.height-6), minLines)
	w := m.boxWidth() - 4
	offset := m.vp.YOffset
	m.vp = viewport.New(w, h)
	m.vp.SetContent(m.render(w))
	if follow && m.shown {
		m.vp.GotoBottom()
	} else {
		m.vp.SetYOffset(offset)
	}
}

func (m Model) render(width int) string {
	entries := m.Entries()
	if len(entries) == 0 {
		return m.theme.Muted.Italic(true).Render("No logs to display")
	}
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = m.line(e, width)
	}
	return strings.Join(out, "\n")
}

func (m Model) boxWidth() int {
	return max(min(m.width-4, maxWidth), minWidth)
}

func (m Model) line(entry string, width int) string {
	entry = ansi.Truncate(entry, width, "…")
	switch log.EntryLevel(entry) {
	case log.LevelError:
		return lipgloss.NewStyle().Foreground(m.theme.ErrorColor).Render(entry)
	case log.LevelWarn:
		return lipgloss.NewStyle().Foreground(m.theme.WarningColor).Render(entry)
	case log.LevelInfo:
		return lipgloss.NewStyle().Foreground(m.theme.InfoColor).Render(entry)
	}
	return m.theme.Muted.Render(entry)
}

// footer lists the filter keys, highlighting the active level.
func (m Model) footer() string {
	active := map[log.Level]key.Binding{
		log.LevelDebug: keys.Debug,
		log.LevelInfo:  keys.Info,
		log.LevelWarn:  keys.Warn,
		log.LevelError: keys.Error,
	}
	parts := []string{m.hint(keys.Clear, false)}
	for _, level := range []log.Level{log.LevelDebug, log.LevelInfo, log.LevelWarn, log.LevelError} {
		parts = append(parts, m.hint(active[level], level == m.level))
	}
	parts = append(parts, m.hint(keys.Category, m.category != ""))
	return strings.Join(parts, "  ")
}

func (m Model) hint(b key.Binding, on bool) string {
	h := b.Help()
	text := "[" + h.Key + "] " + h.Desc
	if on {
		return m.theme.Text.Bold(true).Render(text)
	}
	return m.theme.Muted.Render(text)
}
