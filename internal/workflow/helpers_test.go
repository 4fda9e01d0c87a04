package workflow

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/petsense/internal/classify"
	"github.com/zjrosen/petsense/internal/photo"
	"github.com/zjrosen/petsense/internal/testutil"
)

func newTestModel(clock *testutil.Clock, c classify.Classifier) Model {
	return New(Config{
		Classifier:    c,
		Gate:          3 * time.Second,
		FrameInterval: 50 * time.Millisecond,
		Clock:         clock,
	})
}

// ready selects ref and fires its gate after the full window.
func ready(m Model, clock *testutil.Clock, ref photo.Reference) Model {
	m, _ = m.Select(ref)
	clock.Advance(m.Gate())
	m, _ = m.Update(GateElapsedMsg{Generation: m.Generation()})
	return m
}

// runSubmit executes a submission command synchronously and feeds its result back.
func runSubmit(m Model, cmd tea.Cmd) Model {
	m, _ = m.Update(cmd())
	return m
}
