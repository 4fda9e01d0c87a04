package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Rounded border pieces.
const (
	borderTopLeft     = "╭"
	borderTopRight    = "╮"
	borderBottomLeft  = "╰"
	borderBottomRight = "╯"
	borderHorizontal  = "─"
	borderVertical    = "│"
)

// Panel describes a box whose title sits in the top border: ╭─ Title ───╮
type Panel struct {
	Title   string
	Width   int // outer width including borders
	Height  int // outer height including borders; 0 fits the content
	Focused bool
	Muted   bool // disabled cards draw everything in the muted color
}

// Render draws content inside the panel.
func (p Panel) Render(content string) string {
	var borderColor lipgloss.TerminalColor = BorderDefaultColor
	titleColor := lipgloss.TerminalColor(OverlayTitleColor)
	switch {
	case p.Muted:
		borderColor, titleColor = TextMutedColor, TextMutedColor
	case p.Focused:
		borderColor, titleColor = BorderFocusColor, AccentColor
	}
	border := lipgloss.NewStyle().Foreground(borderColor)
	title := lipgloss.NewStyle().Foreground(titleColor).Bold(p.Focused)

	inner := max(p.Width-2, 1)
	body := lipgloss.NewStyle().Width(inner)
	if p.Muted {
		body = body.Foreground(TextMutedColor)
	}
	lines := strings.Split(body.Render(content), "\n")
	if p.Height > 0 {
		rows := max(p.Height-2, 1)
		for len(lines) < rows {
			lines = append(lines, "")
		}
		lines = lines[:rows]
	}

	var b strings.Builder
	b.WriteString(topBorder(p.Title, inner, border, title))
	for _, line := range lines {
		if w := lipgloss.Width(line); w < inner {
			line += strings.Repeat(" ", inner-w)
		}
		b.WriteString("\n" + border.Render(borderVertical) + line + border.Render(borderVertical))
	}
	b.WriteString("\n" + border.Render(borderBottomLeft+strings.Repeat(borderHorizontal, inner)+borderBottomRight))
	return b.String()
}

func topBorder(text string, inner int, border, title lipgloss.Style) string {
	// "─ " + title + " " needs at least four cells around a one-cell title.
	if text == "" || inner < 5 {
		return border.Render(borderTopLeft + strings.Repeat(borderHorizontal, inner) + borderTopRight)
	}
	text = TruncateString(text, inner-4)
	rest := max(inner-3-lipgloss.Width(text), 0)
	return border.Render(borderTopLeft+borderHorizontal+" ") +
		title.Render(text) +
		border.Render(" "+strings.Repeat(borderHorizontal, rest)+borderTopRight)
}
