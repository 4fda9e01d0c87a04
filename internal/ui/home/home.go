// Package home is the start screen listing the available analyses.
package home

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/petsense/internal/keys"
	"github.com/zjrosen/petsense/internal/log"
	"github.com/zjrosen/petsense/internal/ui/styles"
	"github.com/zjrosen/petsense/internal/ui/toaster"
)

const (
	// Title is the application name shown at the top of the screen.
	Title = "PetSense AI"
	// Tagline sits under the title.
	Tagline = "Learn more about your pet from a single photo"
	// InDevelopment is shown when a disabled card is chosen.
	InDevelopment = "Cat mood recognition is still in development"
)

// OpenRecognitionMsg asks the host to open the breed recognition screen.
type OpenRecognitionMsg struct{}

type card struct {
	title   string
	body    string
	enabled bool
}

var cards = []card{
	{title: "Breed recognition", body: "Find out the breed of a dog or cat from a photo.", enabled: true},
	{title: "Cat mood (audio)", body: "Tell how your cat feels from a short recording. Coming soon."},
}

// Model is the home screen.
type Model struct {
	selected int
	toaster  toaster.Model
	help     help.Model
	width    int
	height   int
}

// New returns the home screen with the first card selected.
func New() Model {
	return Model{toaster: toaster.New(), help: help.New()}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Selected returns the index of the highlighted card.
func (m Model) Selected() int { return m.selected }

// SetSize updates the screen dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width, m.height = width, height
	m.help.Width = width
	return m
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	case toaster.DismissMsg:
		m.toaster = m.toaster.Update(msg)
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Home.Up):
			m.selected = max(m.selected-1, 0)
		case key.Matches(msg, keys.Home.Down):
			m.selected = min(m.selected+1, len(cards)-1)
		case key.Matches(msg, keys.Home.Enter):
			return m.open(m.selected)
		}
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		for i := range cards {
			if zone.Get(cardZone(i)).InBounds(msg) {
				m.selected = i
				return m.open(i)
			}
		}
	}
	return m, nil
}

func (m Model) open(i int) (Model, tea.Cmd) {
	c := cards[i]
	if !c.enabled {
		log.Debug(log.CatUI, "disabled card chosen", "card", c.title)
		var cmd tea.Cmd
		m.toaster, cmd = m.toaster.Show(InDevelopment, toaster.StyleInfo, toaster.DefaultDuration)
		return m, cmd
	}
	return m, func() tea.Msg { return OpenRecognitionMsg{} }
}

func cardZone(i int) string {
	return fmt.Sprintf("home-card:%d", i)
}

// View implements tea.Model.
func (m Model) View() string {
	width := m.width
	if width <= 0 {
		width = 60
	}
	cardWidth := max(min(width-4, 56), 24)

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(Title))
	b.WriteString("\n")
	b.WriteString(styles.TaglineStyle.Render(Tagline))
	b.WriteString("\n\n")

	for i, c := range cards {
		body := c.body
		if !c.enabled {
			body += "\n" + "(in development)"
		}
		panel := styles.Panel{
			Title:   c.title,
			Width:   cardWidth,
			Focused: i == m.selected && c.enabled,
			Muted:   !c.enabled,
		}.Render(styles.Wrap(body, cardWidth-4))

		indicator := "  "
		if i == m.selected {
			indicator = styles.SelectionIndicatorStyle.Render("▸ ")
		}
		b.WriteString(zone.Mark(cardZone(i), lipgloss.JoinHorizontal(lipgloss.Center, indicator, panel)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.HintStyle.Render("Photos are sent to the recognition server you configure."))
	b.WriteString("\n")
	b.WriteString(m.help.View(keys.Home))

	view := lipgloss.NewStyle().Padding(1, 2).Render(b.String())
	if m.toaster.Visible() {
		view = m.toaster.Overlay(view, m.width, m.height)
	}
	return view
}
