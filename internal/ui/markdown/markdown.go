// Package markdown renders markdown for the TUI with glamour.
package markdown

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// noMarginStyle drops glamour's document margins so content lines up with
// the surrounding boxes.
const noMarginStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

// Renderer wraps a glamour renderer configured for a fixed width.
type Renderer struct {
	renderer *glamour.TermRenderer
	width    int
}

// New creates a renderer that wraps at width. Style "light" or "dark"
// forces a palette; anything else follows the terminal background.
func New(width int, style string) (*Renderer, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	switch style {
	case "light", "dark", "notty":
		opts = append(opts, glamour.WithStandardStyle(style))
	default:
		opts = append(opts, glamour.WithAutoStyle())
	}
	opts = append(opts, glamour.WithStylesFromJSONBytes([]byte(noMarginStyle)))

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, err
	}
	return &Renderer{renderer: r, width: width}, nil
}

// Width returns the configured word wrap width.
func (r *Renderer) Width() int {
	return r.width
}

// Render transforms markdown to styled terminal output without trailing blank lines.
func (r *Renderer) Render(md string) (string, error) {
	out, err := r.renderer.Render(md)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n "), nil
}
