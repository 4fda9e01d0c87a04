// Package toaster shows short-lived notices at the bottom of the screen.
package toaster

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/petsense/internal/ui/overlay"
	"github.com/zjrosen/petsense/internal/ui/styles"
)

// DefaultDuration is how long a toast stays up.
const DefaultDuration = 3 * time.Second

// Style determines the icon and border color of a toast.
type Style int

const (
	StyleSuccess Style = iota
	StyleError
	StyleInfo
	StyleWarn
)

// Model holds the toaster state.
type Model struct {
	message string
	style   Style
	visible bool
	seq     uint64
}

// New creates a hidden toaster.
func New() Model {
	return Model{}
}

// seqs is shared by every toaster so a dismissal only matches the toast
// that scheduled it, whichever screen receives it.
var seqs atomic.Uint64

// Show displays message and returns the command that hides it after d.
// A later Show keeps the earlier dismissal from hiding the new toast.
func (m Model) Show(message string, style Style, d time.Duration) (Model, tea.Cmd) {
	m.seq = seqs.Add(1)
	m.message = message
	m.style = style
	m.visible = true
	seq := m.seq
	return m, tea.Tick(d, func(time.Time) tea.Msg { return DismissMsg{seq: seq} })
}

// Hide dismisses the toast immediately.
func (m Model) Hide() Model {
	m.visible = false
	m.message = ""
	return m
}

// Visible returns whether the toast is currently showing.
func (m Model) Visible() bool {
	return m.visible
}

// Message returns the text of the visible toast.
func (m Model) Message() string {
	return m.message
}

// Update handles DismissMsg.
func (m Model) Update(msg tea.Msg) Model {
	if d, ok := msg.(DismissMsg); ok && d.seq == m.seq {
		return m.Hide()
	}
	return m
}

// View renders the toast box.
func (m Model) View() string {
	if !m.visible || m.message == "" {
		return ""
	}

	box := lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder())
	switch m.style {
	case StyleError:
		return box.BorderForeground(styles.StatusErrorColor).Render("❌ " + m.message)
	case StyleInfo:
		return box.BorderForeground(styles.StatusInfoColor).Render("ℹ️ " + m.message)
	case StyleWarn:
		return box.BorderForeground(styles.StatusWarningColor).Render("⚠️ " + m.message)
	default:
		return box.BorderForeground(styles.StatusSuccessColor).Render("✅ " + m.message)
	}
}

// Overlay renders the toast near the bottom of bg.
func (m Model) Overlay(bg string, width, height int) string {
	if !m.visible || m.message == "" {
		return bg
	}
	return overlay.Place(overlay.Config{
		Width:    width,
		Height:   height,
		Position: overlay.Bottom,
		PadY:     1,
	}, m.View(), bg)
}

// DismissMsg hides the toast it was scheduled for.
type DismissMsg struct {
	seq uint64
}
