// Package picker provides a small option chooser drawn as an overlay.
package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/petsense/internal/keys"
	"github.com/zjrosen/petsense/internal/ui/overlay"
	"github.com/zjrosen/petsense/internal/ui/styles"
)

// Option is one entry. Hotkey, when set, selects it directly.
type Option struct {
	Label  string
	Value  string
	Hotkey key.Binding
}

// SelectMsg reports the chosen option's value.
type SelectMsg struct {
	Value string
}

// CancelMsg is sent when the picker is dismissed without a choice.
type CancelMsg struct{}

// Model holds the picker state.
type Model struct {
	title    string
	options  []Option
	selected int
	boxWidth int
	width    int
	height   int
}

// New creates a picker with the given title and options.
func New(title string, options []Option) Model {
	return Model{title: title, options: options, boxWidth: 30}
}

// SetSize sets the viewport dimensions for overlay rendering.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// Selected returns the highlighted option.
func (m Model) Selected() Option {
	if m.selected >= 0 && m.selected < len(m.options) {
		return m.options[m.selected]
	}
	return Option{}
}

// Update handles navigation, hotkeys, mouse clicks and cancellation.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Chooser.Abort):
			return m, func() tea.Msg { return CancelMsg{} }
		case key.Matches(msg, keys.Chooser.Down):
			m.selected = min(m.selected+1, len(m.options)-1)
		case key.Matches(msg, keys.Chooser.Up):
			m.selected = max(m.selected-1, 0)
		case key.Matches(msg, keys.Chooser.Select):
			return m, m.choose(m.selected)
		default:
			for i, opt := range m.options {
				if key.Matches(msg, opt.Hotkey) {
					m.selected = i
					return m, m.choose(i)
				}
			}
		}
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		for i := range m.options {
			if zone.Get(optionZone(i)).InBounds(msg) {
				m.selected = i
				return m, m.choose(i)
			}
		}
	}
	return m, nil
}

func (m Model) choose(i int) tea.Cmd {
	if i < 0 || i >= len(m.options) {
		return nil
	}
	value := m.options[i].Value
	return func() tea.Msg { return SelectMsg{Value: value} }
}

func optionZone(i int) string {
	return fmt.Sprintf("picker-option:%d", i)
}

// View renders the picker box.
func (m Model) View() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.OverlayTitleColor).
		PaddingLeft(1).
		Render(m.title)
	divider := lipgloss.NewStyle().
		Foreground(styles.OverlayBorderColor).
		Render(strings.Repeat("─", m.boxWidth))

	lines := make([]string, 0, len(m.options))
	for i, opt := range m.options {
		label := opt.Label
		if h := opt.Hotkey.Help().Key; h != "" {
			label += styles.HintStyle.Render(" (" + h + ")")
		}
		var line string
		if i == m.selected {
			line = styles.SelectionIndicatorStyle.Render(">") + lipgloss.NewStyle().Bold(true).Render(label)
		} else {
			line = " " + label
		}
		lines = append(lines, zone.Mark(optionZone(i), line))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Width(m.boxWidth).
		Render(title + "\n" + divider + "\n" + strings.Join(lines, "\n"))
}

// Overlay renders the picker centered on background.
func (m Model) Overlay(background string) string {
	if background == "" {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.View())
	}
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, m.View(), background)
}
