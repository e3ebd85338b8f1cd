package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"

	"github.com/vvwxvv/Data-Schema-Json-App/internal/schema"
)

const (
	schemaPaneWidth = 32
	minBodyHeight   = 6
	rowsColumnWidth = 4
	columnGap       = "  "
)

func schemaZoneID(i int) string {
	return fmt.Sprintf("schema-%d", i)
}

func (m Model) bodyHeight() int {
	// header and status bar take one line each
	return max(m.height-2, minBodyHeight)
}

func (m Model) previewHeight() int {
	if !m.cfg.UI.ShowPreview {
		return 0
	}
	return m.bodyHeight() / 2
}

// layout resizes the components that keep their own dimensions.
func (m *Model) layout() {
	rightWidth := max(m.width-schemaPaneWidth, 20)
	m.preview.Width = rightWidth - 4
	// border and title line
	m.preview.Height = max(m.previewHeight()-3, 1)
	m.filter.Width = schemaPaneWidth - 6

	m.help = m.help.SetSize(m.width, m.height)
	m.logOverlay = m.logOverlay.SetSize(m.width, m.height)
	m.picker = m.picker.SetSize(m.width, m.height)
	m.form = m.form.SetSize(m.width, m.height)
	m.updatePreview()
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	bodyHeight := m.bodyHeight()
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderSchemaPane(bodyHeight),
		m.renderRightPane(max(m.width-schemaPaneWidth, 20), bodyHeight),
	)
	view := lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), body, m.renderStatus())

	switch m.modal {
	case modalHelp:
		view = m.help.Overlay(view)
	case modalPicker:
		view = m.picker.Overlay(view)
	case modalForm:
		view = m.form.Overlay(view)
	}
	view = m.logOverlay.Overlay(view)
	view = m.toaster.Overlay(view, m.width, m.height)

	return zone.Scan(view)
}

func (m Model) renderHeader() string {
	parts := []string{
		m.theme.Title.Render("Schema Designer"),
		m.theme.Muted.Render(m.ws.Path()),
	}
	if m.ws.Dirty() {
		parts = append(parts, m.theme.Dirty.Render("● unsaved"))
	}
	return lipgloss.NewStyle().MaxWidth(m.width).Render(strings.Join(parts, "  "))
}

func (m Model) renderStatus() string {
	var hint string
	if m.filtering {
		hint = "enter apply · esc clear"
	} else {
		bindings := m.keys.ShortHelp()
		parts := make([]string, 0, len(bindings))
		for _, b := range bindings {
			h := b.Help()
			parts = append(parts, h.Key+" "+h.Desc)
		}
		hint = strings.Join(parts, " · ")
	}
	return m.theme.StatusBar.MaxWidth(m.width).Render(hint)
}

func (m Model) renderSchemaPane(height int) string {
	inner := schemaPaneWidth - 4

	lines := []string{m.theme.Title.Render(fmt.Sprintf("Schemas (%d)", m.ws.Registry().Len()))}
	if m.filtering || m.filter.Value() != "" {
		lines = append(lines, m.filter.View())
	}

	if len(m.names) == 0 {
		if m.filter.Value() != "" {
			lines = append(lines, m.theme.Muted.Render("No matches"))
		} else {
			lines = append(lines, m.theme.Muted.Render("No schemas yet"))
		}
	}

	listHeight := height - 2 - len(lines)
	offset := scrollOffset(m.cursor, listHeight)
	end := min(offset+max(listHeight, 0), len(m.names))
	for i := offset; i < end; i++ {
		label := runewidth.Truncate(m.names[i], inner-2, "…")
		var row string
		switch {
		case i == m.cursor && m.focus == paneSchemas:
			row = m.theme.Selected.Render(runewidth.FillRight("> "+label, inner))
		case i == m.cursor:
			row = m.theme.Secondary.Render("> " + label)
		default:
			row = "  " + m.theme.Text.Render(label)
		}
		lines = append(lines, zone.Mark(schemaZoneID(i), row))
	}

	style := m.theme.Pane
	if m.focus == paneSchemas {
		style = m.theme.FocusedPane
	}
	return style.Width(schemaPaneWidth - 2).Height(height - 2).Render(strings.Join(lines, "\n"))
}

func (m Model) renderRightPane(width, height int) string {
	previewHeight := m.previewHeight()
	vars := m.renderVariablePane(width, height-previewHeight)
	if previewHeight == 0 {
		return vars
	}
	preview := m.theme.Pane.
		Width(width - 2).
		Height(previewHeight - 2).
		Render(m.theme.Title.Render("Preview") + "\n" + m.preview.View())
	return lipgloss.JoinVertical(lipgloss.Left, vars, preview)
}

func (m Model) renderVariablePane(width, height int) string {
	style := m.theme.Pane
	if m.focus == paneVariables {
		style = m.theme.FocusedPane
	}
	style = style.Width(width - 2).Height(height - 2)
	inner := width - 4

	s, ok := m.selectedSchema()
	if !ok {
		return style.Render(m.theme.Muted.Render("Select or create a schema"))
	}

	head := []string{
		m.theme.Title.Render(runewidth.Truncate(s.Name, inner, "…")) + columnGap +
			m.theme.Muted.Render(fmt.Sprintf("match_img: %s  filter_with: %s", s.MatchImg, s.FilterWith)),
	}
	if s.PageTitleEN != "" || s.PageTitleCN != "" {
		head = append(head, m.theme.Secondary.Render(runewidth.Truncate(s.PageTitleEN+" / "+s.PageTitleCN, inner, "…")))
	}

	rows := m.variableRows()
	if len(rows) == 0 {
		head = append(head, m.theme.Muted.Render("No variables. Press a to add one."))
		return style.Render(strings.Join(head, "\n"))
	}

	cols := newColumns(rows, inner)
	head = append(head, m.theme.Muted.Render(cols.row("  ", "name", "en", "cn", "rows")))

	var body []string
	selectedLine := 0
	var current schema.Category = -1
	for i, r := range rows {
		if r.cat != current {
			current = r.cat
			body = append(body, m.theme.Category.Render(fmt.Sprintf("%s (%d)", r.cat.Label(), len(s.Variables(r.cat)))))
		}
		line := cols.row("  ", r.v.Name, r.v.EnText, r.v.CnText, strconv.Itoa(r.v.Rows))
		if i == m.varCursor {
			selectedLine = len(body)
			line = cols.row("> ", r.v.Name, r.v.EnText, r.v.CnText, strconv.Itoa(r.v.Rows))
			if m.focus == paneVariables {
				line = m.theme.Selected.Render(line)
			} else {
				line = m.theme.Secondary.Render(line)
			}
		} else {
			line = m.theme.Variable.Render(line)
		}
		body = append(body, line)
	}

	bodyHeight := max(height-2-len(head), 1)
	offset := scrollOffset(selectedLine, bodyHeight)
	end := min(offset+bodyHeight, len(body))
	return style.Render(strings.Join(append(head, body[offset:end]...), "\n"))
}

// columns aligns the variable table by display width, so CJK labels
// occupy two cells per rune.
type columns struct {
	name, en, cn int
}

func newColumns(rows []varRow, inner int) columns {
	var maxName, maxEn, maxCn int
	for _, r := range rows {
		maxName = max(maxName, runewidth.StringWidth(r.v.Name))
		maxEn = max(maxEn, runewidth.StringWidth(r.v.EnText))
		maxCn = max(maxCn, runewidth.StringWidth(r.v.CnText))
	}
	// marker, three gaps and the rows column
	avail := max(inner-2-3*len(columnGap)-rowsColumnWidth, 12)

	c := columns{name: max(min(maxName, avail/3), 4)}
	c.en = max(min(maxEn, (avail-c.name)/2), 2)
	c.cn = max(min(maxCn, avail-c.name-c.en), 2)
	return c
}

func (c columns) row(marker, name, en, cn, rows string) string {
	return marker +
		cell(name, c.name) + columnGap +
		cell(en, c.en) + columnGap +
		cell(cn, c.cn) + columnGap +
		runewidth.FillLeft(rows, rowsColumnWidth)
}

func cell(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, "…"), width)
}

// scrollOffset returns the first visible line that keeps line in a window
// of height lines.
func scrollOffset(line, height int) int {
	if height <= 0 || line < height {
		return 0
	}
	return line - height + 1
}
