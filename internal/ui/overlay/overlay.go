// Package overlay draws a box on top of an already rendered screen without
// clearing what is underneath.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Position is where the box is anchored.
type Position int

const (
	Center Position = iota
	Top
	Bottom
)

// Config describes the screen the box is placed on.
type Config struct {
	Width    int
	Height   int
	Position Position
	PadY     int // rows kept free from the top or bottom edge
}

// Place splices fg into bg line by line. Both may contain ANSI styling.
func Place(cfg Config, fg, bg string) string {
	rows := strings.Split(bg, "\n")
	for len(rows) < cfg.Height {
		rows = append(rows, "")
	}

	box := strings.Split(fg, "\n")
	x, y := origin(cfg, lipgloss.Width(fg), len(box))

	for i, line := range box {
		row := y + i
		if row >= len(rows) {
			break
		}
		rows[row] = splice(rows[row], line, x)
	}
	return strings.Join(rows, "\n")
}

// splice replaces the cells of bg starting at column x with fg.
func splice(bg, fg string, x int) string {
	left := ansi.Truncate(bg, x, "")
	if w := ansi.StringWidth(left); w < x {
		left += strings.Repeat(" ", x-w)
	}
	end := x + ansi.StringWidth(fg)
	var right string
	if end < ansi.StringWidth(bg) {
		right = ansi.TruncateLeft(bg, end, "")
	}
	return left + fg + right
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
