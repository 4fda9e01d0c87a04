package logoverlay

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func visible() Model {
	return New().SetSize(100, 40).Toggle()
}

func TestAppend_CapsBuffer(t *testing.T) {
	m := New()
	for i := range Capacity + 10 {
		m = m.Append(fmt.Sprintf("entry %d", i))
	}
	assert.Equal(t, Capacity, m.Len())
}

func TestHiddenIgnoresKeys(t *testing.T) {
	m := New().Append("2026-01-01T00:00:00 [INFO] [workflow] hello")
	m, _ = m.Update(key("c"))
	assert.Equal(t, 1, m.Len())
	assert.Empty(t, m.View())
}

func TestView_ShowsEntries(t *testing.T) {
	m := visible().
		Append("2026-01-01T00:00:00 [INFO] [workflow] transition from=idle to=pending").
		Append("2026-01-01T00:00:01 [ERROR] [classify] request failed")

	view := ansi.Strip(m.View())
	assert.Contains(t, view, "Logs")
	assert.Contains(t, view, "transition from=idle to=pending")
	assert.Contains(t, view, "request failed")
}

func TestLevelFilter(t *testing.T) {
	m := visible().
		Append("t [DEBUG] [ui] noisy").
		Append("t [WARN] [source] careful")

	m, _ = m.Update(key("w"))
	view := ansi.Strip(m.View())
	assert.NotContains(t, view, "noisy")
	assert.Contains(t, view, "careful")

	m, _ = m.Update(key("d"))
	assert.Contains(t, ansi.Strip(m.View()), "noisy")
}

func TestClearAndClose(t *testing.T) {
	m := visible().Append("t [INFO] [ui] x")

	m, _ = m.Update(key("c"))
	assert.Equal(t, 0, m.Len())
	assert.Contains(t, ansi.Strip(m.View()), "No logs to display")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.Visible())
	assert.Equal(t, "bg", m.Overlay("bg"))
}
