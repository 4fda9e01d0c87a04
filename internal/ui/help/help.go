// Package help renders the key reference overlay.
package help

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/petsense/internal/keys"
	"github.com/zjrosen/petsense/internal/ui/markdown"
	"github.com/zjrosen/petsense/internal/ui/overlay"
	"github.com/zjrosen/petsense/internal/ui/styles"
)

const (
	// Tip is shown under the photo preview.
	Tip = "For best results use clear photos taken in good lighting."
	// Disclaimer is shown under every result.
	Disclaimer = "PetSense AI can make mistakes. Check the result."

	boxWidth = 56
)

// Model is the help overlay.
type Model struct {
	width   int
	height  int
	style   string
	content string
}

// New creates a help overlay. style is passed to the markdown renderer.
func New(style string) Model {
	m := Model{style: style}
	m.content = m.render()
	return m
}

// SetSize sets the viewport dimensions for overlay rendering.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// Document returns the markdown source of the help text.
func Document() string {
	var b strings.Builder
	b.WriteString("# PetSense AI\n\n")
	b.WriteString("Identify a dog or cat breed from a photo.\n\n")
	section(&b, "Home", keys.Home.FullHelp())
	section(&b, "Breed recognition", keys.Recognition.FullHelp())
	section(&b, "Add photo", keys.Chooser.FullHelp())
	fmt.Fprintf(&b, "## Tips\n\n%s\n\n> %s\n", Tip, Disclaimer)
	return b.String()
}

func section(b *strings.Builder, title string, groups [][]key.Binding) {
	fmt.Fprintf(b, "## %s\n\n", title)
	for _, group := range groups {
		for _, binding := range group {
			h := binding.Help()
			fmt.Fprintf(b, "- `%s` %s\n", h.Key, h.Desc)
		}
	}
	b.WriteString("\n")
}

func (m Model) render() string {
	doc := Document()
	r, err := markdown.New(boxWidth-4, m.style)
	if err != nil {
		return doc
	}
	out, err := r.Render(doc)
	if err != nil {
		return doc
	}
	return out
}

// View renders the help box.
func (m Model) View() string {
	footer := styles.HintStyle.Render("press ? or esc to close")
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Padding(0, 1).
		Width(boxWidth).
		Render(m.content + "\n\n" + footer)
}

// Overlay renders the help box centered on bg.
func (m Model) Overlay(bg string) string {
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, m.View(), bg)
}
