package picker

import (
	"os"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/petsense/internal/keys"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	os.Exit(m.Run())
}

func sourcePicker() Model {
	return New("Add photo", []Option{
		{Label: "Take photo", Value: "camera", Hotkey: keys.Chooser.Camera},
		{Label: "Choose from library", Value: "library", Hotkey: keys.Chooser.Lib},
	})
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNavigationAndEnter(t *testing.T) {
	m := sourcePicker()
	assert.Equal(t, "camera", m.Selected().Value)

	m, _ = m.Update(runes("j"))
	assert.Equal(t, "library", m.Selected().Value)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "library", m.Selected().Value, "stays on last option")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "camera", m.Selected().Value, "stays on first option")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, SelectMsg{Value: "camera"}, cmd())
}

func TestHotkeys(t *testing.T) {
	_, cmd := sourcePicker().Update(runes("l"))
	require.NotNil(t, cmd)
	assert.Equal(t, SelectMsg{Value: "library"}, cmd())

	_, cmd = sourcePicker().Update(runes("c"))
	require.NotNil(t, cmd)
	assert.Equal(t, SelectMsg{Value: "camera"}, cmd())
}

func TestCancel(t *testing.T) {
	for _, k := range []tea.KeyMsg{{Type: tea.KeyEsc}, runes("x")} {
		_, cmd := sourcePicker().Update(k)
		require.NotNil(t, cmd)
		assert.Equal(t, CancelMsg{}, cmd())
	}
}

func TestUnknownKeyIgnored(t *testing.T) {
	_, cmd := sourcePicker().Update(runes("z"))
	assert.Nil(t, cmd)
}

func TestView(t *testing.T) {
	view := ansi.Strip(zone.Scan(sourcePicker().View()))
	assert.Contains(t, view, "Add photo")
	assert.Contains(t, view, ">Take photo (c)")
	assert.Contains(t, view, " Choose from library (l)")
}

func TestOverlay_EmptyBackground(t *testing.T) {
	out := sourcePicker().SetSize(60, 20).Overlay("")
	assert.Contains(t, ansi.Strip(zone.Scan(out)), "Take photo")
}
