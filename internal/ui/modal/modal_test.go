package modal

import (
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	os.Exit(m.Run())
}

func TestView_ShowsTitleMessageAndButton(t *testing.T) {
	m := New(Config{Title: "Camera access denied", Message: "Allow camera access to take a photo."})
	view := ansi.Strip(zone.Scan(m.View()))

	assert.Contains(t, view, "Camera access denied")
	assert.Contains(t, view, "Allow camera access to take a photo.")
	assert.Contains(t, view, "OK")
}

func TestUpdate_AcknowledgeKeys(t *testing.T) {
	m := New(Config{Title: "t"})
	for _, k := range []tea.KeyMsg{
		{Type: tea.KeyEnter},
		{Type: tea.KeyEsc},
		{Type: tea.KeySpace, Runes: []rune{' '}},
	} {
		_, cmd := m.Update(k)
		require.NotNil(t, cmd, "key %q", k.String())
		assert.Equal(t, AcknowledgedMsg{}, cmd())
	}
}

func TestUpdate_OtherKeysIgnored(t *testing.T) {
	m := New(Config{Title: "t"})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	assert.Nil(t, cmd)
}

func TestOverlay_Centers(t *testing.T) {
	m := New(Config{Title: "Notice", Message: "hi", Width: 20}).SetSize(40, 12)
	bg := strings.TrimSuffix(strings.Repeat(strings.Repeat(".", 40)+"\n", 12), "\n")

	out := ansi.Strip(zone.Scan(m.Overlay(bg)))
	rows := strings.Split(out, "\n")
	require.Len(t, rows, 12)
	assert.True(t, strings.HasPrefix(rows[0], "....."), "top rows keep the background")

	found := false
	for _, r := range rows {
		if strings.Contains(r, "Notice") {
			found = true
			assert.True(t, strings.HasPrefix(r, "....."))
		}
	}
	assert.True(t, found)
}
