// Package modal provides a blocking notice that must be acknowledged before
// the screen underneath accepts input again.
package modal

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/petsense/internal/keys"
	"github.com/zjrosen/petsense/internal/ui/overlay"
	"github.com/zjrosen/petsense/internal/ui/styles"
)

// ZoneOK is the click target of the OK button.
const ZoneOK = "modal-ok"

const defaultWidth = 44

// Config controls modal content.
type Config struct {
	Title   string
	Message string
	Width   int // 0 uses the default
}

// AcknowledgedMsg is sent when the user dismisses the modal.
type AcknowledgedMsg struct{}

// Model is the modal component state.
type Model struct {
	config Config
	width  int
	height int
}

// New creates a modal with the given content.
func New(cfg Config) Model {
	if cfg.Width == 0 {
		cfg.Width = defaultWidth
	}
	return Model{config: cfg}
}

// SetSize sets the viewport the modal is centered in.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// Update handles acknowledgement by key or by clicking OK.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, keys.Notice.Acknowledge) {
			return m, acknowledge
		}
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionRelease && msg.Button == tea.MouseButtonLeft &&
			zone.Get(ZoneOK).InBounds(msg) {
			return m, acknowledge
		}
	}
	return m, nil
}

func acknowledge() tea.Msg { return AcknowledgedMsg{} }

// View renders the modal box.
func (m Model) View() string {
	inner := m.config.Width - 4

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.OverlayTitleColor).
		Render(m.config.Title)
	divider := lipgloss.NewStyle().
		Foreground(styles.OverlayBorderColor).
		Render(strings.Repeat("─", inner))
	message := lipgloss.NewStyle().
		Foreground(styles.TextPrimaryColor).
		Width(inner).
		Render(m.config.Message)
	button := lipgloss.PlaceHorizontal(inner, lipgloss.Right,
		zone.Mark(ZoneOK, styles.PrimaryButtonStyle.Render("OK")))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.StatusWarningColor).
		Padding(0, 1).
		Width(m.config.Width).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, divider, "", message, "", button))
}

// Overlay renders the modal centered on bg.
func (m Model) Overlay(bg string) string {
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, m.View(), bg)
}
