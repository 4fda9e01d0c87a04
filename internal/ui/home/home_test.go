package home

import (
	"os"
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

func plain(m Model) string {
	return ansi.Strip(zone.Scan(m.View()))
}

func TestView(t *testing.T) {
	view := plain(New().SetSize(80, 30))

	assert.Contains(t, view, Title)
	assert.Contains(t, view, Tagline)
	assert.Contains(t, view, "Breed recognition")
	assert.Contains(t, view, "Cat mood (audio)")
	assert.Contains(t, view, "(in development)")
}

func TestEnter_OpensRecognition(t *testing.T) {
	m := New()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, OpenRecognitionMsg{}, cmd())
}

func TestNavigation_Clamps(t *testing.T) {
	m := New()
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.Selected())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.Selected())
}

func TestDisabledCard_ShowsNotice(t *testing.T) {
	m := New().SetSize(80, 30)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd, "dismiss timer")
	assert.True(t, m.toaster.Visible())
	assert.Contains(t, plain(m), InDevelopment)
}
