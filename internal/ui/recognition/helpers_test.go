package recognition

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/petsense/internal/classify"
	"github.com/zjrosen/petsense/internal/photo"
	"github.com/zjrosen/petsense/internal/source"
	"github.com/zjrosen/petsense/internal/testutil"
	"github.com/zjrosen/petsense/internal/ui/picker"
	"github.com/zjrosen/petsense/internal/workflow"
)

func cameraReturning(ref photo.Reference, err error) source.Provider {
	return source.ProviderFunc(func(context.Context) (photo.Reference, error) {
		return ref, err
	})
}

func newScreen(clock *testutil.Clock, c classify.Classifier, camera source.Provider, lib source.Library) Model {
	m := New(Config{
		Workflow: workflow.Config{
			Classifier:    c,
			Gate:          3 * time.Second,
			FrameInterval: 50 * time.Millisecond,
			Clock:         clock,
		},
		Library:        lib,
		Camera:         camera,
		ShowTip:        true,
		ShowDisclaimer: true,
	})
	return m.SetSize(80, 40)
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// plain renders the view without styling or zone markers.
func plain(m Model) string {
	return ansi.Strip(zone.Scan(m.View()))
}

// find runs cmd, flattening batches, and returns the first message of type T.
func find[T tea.Msg](cmd tea.Cmd) (T, bool) {
	var zero T
	if cmd == nil {
		return zero, false
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			if c == nil {
				continue
			}
			if t, ok := find[T](c); ok {
				return t, true
			}
		}
		return zero, false
	}
	t, ok := msg.(T)
	return t, ok
}

// choose opens the source chooser and picks the option behind hotkey r.
func choose(m Model, r rune) (Model, tea.Cmd) {
	m, _ = m.Update(keyRune('a'))
	m, cmd := m.Update(keyRune(r))
	sel, ok := find[picker.SelectMsg](cmd)
	if !ok {
		return m, nil
	}
	return m.Update(sel)
}

// withImage takes a camera photo and lets the readiness gate elapse.
func withImage(m Model, clock *testutil.Clock, ref photo.Reference) Model {
	m, _ = choose(m, 'c')
	m, _ = m.Update(workflow.AcquiredMsg{Kind: source.KindCamera, Image: ref})
	clock.Advance(3 * time.Second)
	m, _ = m.Update(workflow.GateElapsedMsg{Generation: m.Workflow().Generation()})
	return m
}
