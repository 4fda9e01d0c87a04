// Package logoverlay shows recent log entries on top of the TUI when
// running with --debug.
package logoverlay

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/petsense/internal/log"
	"github.com/zjrosen/petsense/internal/ui/overlay"
	"github.com/zjrosen/petsense/internal/ui/styles"
)

const (
	// Capacity is how many entries are kept.
	Capacity = 500

	viewportMaxHeight = 20
	viewportMinHeight = 4
	boxMaxWidth       = 140
	boxMinWidth       = 40
)

// Model is the log overlay component state.
type Model struct {
	entries  []string
	visible  bool
	minLevel log.Level
	width    int
	height   int
	viewport viewport.Model
}

// New creates a hidden overlay showing every level.
func New() Model {
	return Model{minLevel: log.LevelDebug}
}

// Append records one entry, dropping the oldest past Capacity.
func (m Model) Append(entry string) Model {
	m.entries = append(m.entries, strings.TrimRight(entry, "\n"))
	if over := len(m.entries) - Capacity; over > 0 {
		m.entries = append([]string(nil), m.entries[over:]...)
	}
	if m.visible {
		m.refresh()
	}
	return m
}

// Len returns the number of buffered entries.
func (m Model) Len() int { return len(m.entries) }

// Visible returns whether the overlay is showing.
func (m Model) Visible() bool { return m.visible }

// Toggle flips visibility.
func (m Model) Toggle() Model {
	m.visible = !m.visible
	if m.visible {
		m.refresh()
	}
	return m
}

// SetSize updates the screen size.
func (m Model) SetSize(width, height int) Model {
	m.width, m.height = width, height
	m.refresh()
	return m
}

// Update handles keys while visible: level filters d/i/w/e, c clears,
// j/k scroll, esc or ctrl+x closes.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !m.visible || !ok {
		return m, nil
	}
	switch k.String() {
	case "d":
		m.minLevel = log.LevelDebug
	case "i":
		m.minLevel = log.LevelInfo
	case "w":
		m.minLevel = log.LevelWarn
	case "e":
		m.minLevel = log.LevelError
	case "c":
		m.entries = nil
	case "j", "down":
		m.viewport.ScrollDown(1)
		return m, nil
	case "k", "up":
		m.viewport.ScrollUp(1)
		return m, nil
	case "esc", "ctrl+x":
		m.visible = false
		return m, nil
	default:
		return m, nil
	}
	m.refresh()
	return m, nil
}

func (m *Model) refresh() {
	if m.width == 0 || m.height == 0 {
		return
	}
	width := m.boxWidth() - 2
	height := max(min(viewportMaxHeight, m.height-6), viewportMinHeight)
	m.viewport = viewport.New(width, height)
	m.viewport.SetContent(m.content(width))
	m.viewport.GotoBottom()
}

func (m Model) content(width int) string {
	var lines []string
	for _, e := range m.entries {
		level, ok := levelOf(e)
		if ok && level < m.minLevel {
			continue
		}
		if ansi.StringWidth(e) > width {
			e = ansi.Truncate(e, width, "...")
		}
		lines = append(lines, colorize(level, ok).Render(e))
	}
	if len(lines) == 0 {
		return styles.HintStyle.Italic(true).Render("No logs to display")
	}
	return strings.Join(lines, "\n")
}

func levelOf(entry string) (log.Level, bool) {
	for _, l := range []log.Level{log.LevelError, log.LevelWarn, log.LevelInfo, log.LevelDebug} {
		if strings.Contains(entry, "["+l.String()+"]") {
			return l, true
		}
	}
	return log.LevelDebug, false
}

func colorize(level log.Level, known bool) lipgloss.Style {
	if !known {
		return lipgloss.NewStyle().Foreground(styles.TextPrimaryColor)
	}
	switch level {
	case log.LevelError:
		return lipgloss.NewStyle().Foreground(styles.StatusErrorColor)
	case log.LevelWarn:
		return lipgloss.NewStyle().Foreground(styles.StatusWarningColor)
	case log.LevelInfo:
		return lipgloss.NewStyle().Foreground(styles.StatusInfoColor)
	default:
		return lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	}
}

func (m Model) boxWidth() int {
	return max(min(m.width-4, boxMaxWidth), boxMinWidth)
}

// View renders the overlay box.
func (m Model) View() string {
	if !m.visible {
		return ""
	}
	width := m.boxWidth()
	divider := lipgloss.NewStyle().Foreground(styles.OverlayBorderColor).Render(strings.Repeat("─", width))
	title := lipgloss.NewStyle().Bold(true).Foreground(styles.OverlayTitleColor).PaddingLeft(1).Render("Logs")

	hints := make([]string, 0, 5)
	hints = append(hints, styles.HintStyle.Render("[c] Clear"))
	for _, f := range []struct {
		label string
		level log.Level
	}{{"[d] Debug", log.LevelDebug}, {"[i] Info", log.LevelInfo}, {"[w] Warn", log.LevelWarn}, {"[e] Error", log.LevelError}} {
		style := styles.HintStyle
		if f.level == m.minLevel {
			style = lipgloss.NewStyle().Foreground(styles.TextPrimaryColor).Bold(true)
		}
		hints = append(hints, style.Render(f.label))
	}

	body := strings.Join([]string{title, divider, m.viewport.View(), divider, strings.Join(hints, "  ")}, "\n")
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Width(width).
		Render(body)
}

// Overlay renders the log box centered on bg.
func (m Model) Overlay(bg string) string {
	if !m.visible {
		return bg
	}
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, m.View(), bg)
}
