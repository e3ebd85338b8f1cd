// Package overlay draws modal boxes over an already rendered view.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Position selects the anchor of the foreground box.
type Position int

const (
	Center Position = iota
	Top
	Bottom
)

// Config describes the screen and where the box goes.
type Config struct {
	Width    int
	Height   int
	Position Position
	PadY     int // rows kept free above a Top box or below a Bottom box
}

// Place writes fg over bg line by line. Both sides may carry ANSI styling;
// cells of bg left and right of the box are preserved.
func Place(cfg Config, fg, bg string) string {
	fgLines := strings.Split(fg, "\n")
	bgLines := strings.Split(bg, "\n")
	for len(bgLines) < cfg.Height {
		bgLines = append(bgLines, strings.Repeat(" ", cfg.Width))
	}

	x, y := origin(cfg, lipgloss.Width(fg), len(fgLines))

	for i, line := range fgLines {
		row := y + i
		if row >= len(bgLines) {
			break
		}
		under := bgLines[row]

		left := ansi.Truncate(under, x, "")
		if w := ansi.StringWidth(left); w < x {
			left += strings.Repeat(" ", x-w)
		}

		var right string
		if end := x + ansi.StringWidth(line); end < ansi.StringWidth(under) {
			right = ansi.TruncateLeft(under, end, "")
		}

		bgLines[row] = left + line + right
	}

	return strings.Join(bgLines, "\n")
}

// Centered places fg in the middle of a width x height screen. An empty bg
// yields fg on a blank screen.
func Centered(fg, bg string, width, height int) string {
	if bg == "" {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, fg)
	}
	return Place(Config{Width: width, Height: height, Position: Center}, fg, bg)
}

func origin(cfg Config, w, h int) (x, y int) {
	x = (cfg.Width - w) / 2
	switch cfg.Position {
	case Top:
		y = cfg.PadY
	case Bottom:
		y = cfg.Height - h - cfg.PadY
	default:
		y = (cfg.Height - h) / 2
	}
	return max(x, 0), max(y, 0)
}
