package styles

import (
	"path/filepath"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
	"github.com/rivo/uniseg"
)

// TruncateString cuts s to maxWidth cells, ending in "..." when shortened.
func TruncateString(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return strings.Repeat(".", maxWidth)
	}
	return runewidth.Truncate(s, maxWidth, "...")
}

// TruncatePath shortens a file path from the left so the file name stays
// visible: ".../Pictures/dog.jpg".
func TruncatePath(path string, maxWidth int) string {
	if runewidth.StringWidth(path) <= maxWidth {
		return path
	}
	base := filepath.Base(path)
	if runewidth.StringWidth(base)+4 > maxWidth {
		return TruncateString(base, maxWidth)
	}
	// Drop whole grapheme clusters from the front until the rest fits after
	// the ellipsis, so combining marks and emoji are never split.
	gr := uniseg.NewGraphemes(path)
	for gr.Next() {
		start, _ := gr.Positions()
		tail := path[start:]
		if runewidth.StringWidth(tail)+3 <= maxWidth {
			return "..." + tail
		}
	}
	return TruncateString(base, maxWidth)
}

// Wrap word-wraps text to width cells.
func Wrap(text string, width int) string {
	if width < 1 {
		return text
	}
	return wordwrap.String(text, width)
}
