package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPanel_Basic(t *testing.T) {
	out := Panel{Title: "Breed", Width: 20}.Render("content")

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "╭─ Breed ")
	assert.True(t, strings.HasSuffix(lines[0], "╮") || strings.Contains(lines[0], "╮"))
	assert.Contains(t, lines[1], "content")
	assert.Contains(t, lines[2], "╰")
	for i, line := range lines {
		assert.Equal(t, 20, lipgloss.Width(line), "line %d width", i)
	}
}

func TestPanel_FixedHeightPadsAndClips(t *testing.T) {
	padded := Panel{Width: 12, Height: 5}.Render("a")
	assert.Len(t, strings.Split(padded, "\n"), 5)

	clipped := Panel{Width: 12, Height: 3}.Render("a\nb\nc\nd")
	lines := strings.Split(clipped, "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "a")
}

func TestPanel_LongTitleTruncated(t *testing.T) {
	out := Panel{Title: "A title far too long for this box", Width: 16}.Render("x")
	top := strings.Split(out, "\n")[0]
	assert.Equal(t, 16, lipgloss.Width(top))
	assert.Contains(t, top, "...")
}

func TestPanel_NarrowOmitsTitle(t *testing.T) {
	out := Panel{Title: "Title", Width: 5}.Render("")
	assert.NotContains(t, out, "Title")
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", TruncateString("short", 10))
	assert.Equal(t, "abcd...", TruncateString("abcdefghij", 7))
	assert.Equal(t, "..", TruncateString("abcdefghij", 2))
	assert.Equal(t, "", TruncateString("abc", 0))
	assert.LessOrEqual(t, lipgloss.Width(TruncateString("猫の写真ですよ", 7)), 7)
}

func TestTruncatePath(t *testing.T) {
	path := "/home/user/Pictures/pets/labrador.jpg"
	assert.Equal(t, path, TruncatePath(path, 80))

	got := TruncatePath(path, 24)
	assert.True(t, strings.HasPrefix(got, "..."))
	assert.True(t, strings.HasSuffix(got, "labrador.jpg"))
	assert.LessOrEqual(t, lipgloss.Width(got), 24)

	assert.Equal(t, "lab...", TruncatePath(path, 6))
}

func TestTruncatePath_KeepsGraphemesWhole(t *testing.T) {
	// "e" followed by a combining acute accent is one cluster.
	path := "/photos/cafe\u0301e\u0301e\u0301/dog.jpg"
	for width := 12; width <= 20; width++ {
		got := TruncatePath(path, width)
		assert.False(t, strings.HasPrefix(got, "...\u0301"), "width %d split a cluster: %q", width, got)
		assert.True(t, strings.HasSuffix(got, "dog.jpg"))
	}
}

func TestWrap(t *testing.T) {
	assert.Equal(t, "one two\nthree", Wrap("one two three", 8))
	assert.Equal(t, "unchanged", Wrap("unchanged", 0))
}

func TestButton(t *testing.T) {
	prev := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.ANSI256)
	t.Cleanup(func() { lipgloss.SetColorProfile(prev) })

	enabled, disabled := Button("Show result", true), Button("Show result", false)
	assert.Contains(t, enabled, "Show result")
	assert.Contains(t, disabled, "Show result")
	assert.NotEqual(t, enabled, disabled, "disabled buttons are drawn differently")
}
