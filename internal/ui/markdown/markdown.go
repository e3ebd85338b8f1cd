// Package markdown renders template descriptions and summaries for the TUI.
package markdown

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/reflow/wordwrap"
)

// noMarginStyle removes the document margins glamour adds by default.
const noMarginStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

// Renderer wraps glamour with a fixed width and theme.
type Renderer struct {
	renderer *glamour.TermRenderer
	width    int
	theme    string
}

// New creates a renderer for the "dark" or "light" theme. The style is
// explicit so output does not depend on terminal detection.
func New(width int, theme string) (*Renderer, error) {
	if theme != "light" {
		theme = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(theme),
		glamour.WithStylesFromJSONBytes([]byte(noMarginStyle)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	return &Renderer{renderer: r, width: width, theme: theme}, nil
}

// Width returns the configured word wrap width.
func (r *Renderer) Width() int {
	return r.width
}

// Theme returns the glamour style name in use.
func (r *Renderer) Theme() string {
	return r.theme
}

// Render transforms markdown to styled terminal output.
func (r *Renderer) Render(markdown string) (string, error) {
	out, err := r.renderer.Render(markdown)
	if err != nil {
		return "", err
	}
	return strings.Trim(out, "\n"), nil
}

// Wrap word-wraps plain text to width columns. Words longer than width are
// kept whole.
func Wrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	return wordwrap.String(text, width)
}
