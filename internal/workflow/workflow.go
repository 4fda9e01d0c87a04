// Package workflow implements the acquisition and submission state machine
// behind the recognition screen.
//
// All state changes happen inside Update, on the Bubble Tea event loop. The
// readiness timer, the progress animation and the classification request
// run as commands and post messages back; each message carries the
// generation of the image it was issued for, and Update drops any message
// whose generation is no longer current. Generations are drawn from a
// process-wide counter, so a message issued by one workflow can never match
// another. Every generation also owns a context whose cancel func is the
// handle for its timers and request.
package workflow

import (
	"context"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/petsense/internal/classify"
	"github.com/zjrosen/petsense/internal/log"
	"github.com/zjrosen/petsense/internal/photo"
	"github.com/zjrosen/petsense/internal/source"
	"github.com/zjrosen/petsense/internal/tracing"
)

const (
	// DefaultGate is how long an image must be shown before it can be submitted.
	DefaultGate = 3 * time.Second
	// DefaultFrameInterval paces the progress animation.
	DefaultFrameInterval = 50 * time.Millisecond
)

var (
	generations  atomic.Uint64
	acquisitions atomic.Uint64
)

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

// RealClock returns the actual current time.
type RealClock struct{}

// Now returns time.Now().
func (RealClock) Now() time.Time { return time.Now() }

// Config wires the workflow to its collaborators.
type Config struct {
	Classifier    classify.Classifier
	Gate          time.Duration
	FrameInterval time.Duration
	Clock         Clock
	// Tracer records acquisition and submission spans; nil records nothing.
	Tracer trace.Tracer
}

// AcquiredMsg reports the result of an image source request. Request
// identifies the Acquire call it answers; a zero Request is a result the
// caller reports directly and always applies.
type AcquiredMsg struct {
	Request uint64
	Kind    source.Kind
	Image   photo.Reference
	Err     error
}

// GateElapsedMsg fires when the readiness timer for Generation expires.
type GateElapsedMsg struct {
	Generation uint64
}

// FrameMsg advances the progress animation for Generation.
type FrameMsg struct {
	Generation uint64
}

// SubmittedMsg carries the classifier's answer for Generation.
type SubmittedMsg struct {
	Generation uint64
	Result     classify.Result
	Err        error
}

// NoticeMsg asks the screen to show a message. Blocking notices need the
// user's acknowledgement; the others are transient.
type NoticeMsg struct {
	Kind     ErrorKind
	Source   source.Kind
	Blocking bool
}

// Model is the workflow state machine.
type Model struct {
	cfg Config

	state      State
	generation uint64

	life          context.Context
	stop          context.CancelFunc
	current       context.Context
	cancelCurrent context.CancelFunc
	cancelAcquire context.CancelFunc
	acquisition   uint64
	acquiring     bool
	destroyed     bool
}

// New creates an Idle workflow. Call Destroy when the owning screen closes.
func New(cfg Config) Model {
	if cfg.Gate <= 0 {
		cfg.Gate = DefaultGate
	}
	if cfg.FrameInterval <= 0 {
		cfg.FrameInterval = DefaultFrameInterval
	}
	if cfg.Clock == nil {
		cfg.Clock = RealClock{}
	}
	if cfg.Tracer == nil {
		cfg.Tracer = noop.NewTracerProvider().Tracer("workflow")
	}
	life, stop := context.WithCancel(context.Background())
	return Model{
		cfg:   cfg,
		state: Idle{},
		life:  life,
		stop:  stop,
	}
}

// State returns the current state.
func (m Model) State() State { return m.state }

// Generation returns the tag of the active image. It is zero before the
// first selection and unique across all workflows after that.
func (m Model) Generation() uint64 { return m.generation }

// Gate returns the configured readiness window.
func (m Model) Gate() time.Duration { return m.cfg.Gate }

// Acquiring reports whether an image source request is outstanding.
func (m Model) Acquiring() bool { return m.acquiring }

// Destroyed reports whether Destroy has been called.
func (m Model) Destroyed() bool { return m.destroyed }

// Display renders the current state at the current time.
func (m Model) Display() DisplayModel {
	return Render(m.state, m.cfg.Clock.Now(), m.cfg.Gate)
}

// Acquire asks p for an image. The result arrives as an AcquiredMsg. A
// second Acquire while one is outstanding cancels the first.
func (m Model) Acquire(kind source.Kind, p source.Provider) (Model, tea.Cmd) {
	if m.destroyed {
		return m, nil
	}
	if m.cancelAcquire != nil {
		m.cancelAcquire()
	}
	ctx, cancel := context.WithCancel(m.life)
	m.cancelAcquire = cancel
	m.acquisition = acquisitions.Add(1)
	m.acquiring = true

	req := m.acquisition
	tracer := m.cfg.Tracer
	log.Debug(log.CatWorkflow, "acquiring image", "source", kind, "request", req)
	return m, func() tea.Msg {
		ctx, span := tracer.Start(ctx, tracing.SpanAcquire,
			trace.WithAttributes(tracing.AttrSource.String(kind.String())))
		defer span.End()

		ref, err := p.Request(ctx)
		if ctx.Err() != nil && err == nil {
			err = source.ErrCancelled
		}
		if err != nil {
			span.SetAttributes(tracing.AttrFailure.String(acquisitionKind(err).String()))
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetAttributes(tracing.AttrPhotoID.String(ref.ID.String()))
		}
		return AcquiredMsg{Request: req, Kind: kind, Image: ref, Err: err}
	}
}

// CancelAcquire aborts an outstanding Acquire; its result arrives as a cancellation.
func (m Model) CancelAcquire() Model {
	if m.cancelAcquire != nil {
		m.cancelAcquire()
	}
	return m
}

// Select makes ref the active image: any previous image, outcome, timer and
// in-flight request are discarded and the readiness gate restarts from zero.
func (m Model) Select(ref photo.Reference) (Model, tea.Cmd) {
	if m.destroyed || ref.IsZero() {
		return m, nil
	}
	if m.cancelCurrent != nil {
		m.cancelCurrent()
	}

	m.generation = generations.Add(1)
	ctx, cancel := context.WithCancel(m.life)
	m.current, m.cancelCurrent = ctx, cancel

	m = m.transition(Pending{Image: ref, StartedAt: m.cfg.Clock.Now()})
	gen := m.generation
	return m, tea.Batch(
		after(ctx, m.cfg.Gate, GateElapsedMsg{Generation: gen}),
		after(ctx, m.cfg.FrameInterval, FrameMsg{Generation: gen}),
	)
}

// Submit sends the active image for classification. It refuses locally,
// without any network traffic, when there is no image (ErrNoImageSelected,
// with a notice), when the gate has not elapsed or the image is already
// resolved (ErrNotReady), or while a request is running (ErrInFlight).
func (m Model) Submit() (Model, tea.Cmd, error) {
	if m.destroyed {
		return m, nil, ErrNotReady
	}

	switch s := m.state.(type) {
	case Idle:
		log.Debug(log.CatWorkflow, "submit refused", "reason", NoImageSelected)
		return m, notice(NoticeMsg{Kind: NoImageSelected}), ErrNoImageSelected
	case Submitting:
		return m, nil, ErrInFlight
	case Resolved:
		return m, nil, ErrNotReady
	case Pending:
		if s.Image.IsZero() {
			return m, notice(NoticeMsg{Kind: NoImageSelected}), ErrNoImageSelected
		}
		if !s.ElapsedGate {
			return m, nil, ErrNotReady
		}
	}

	image := ImageOf(m.state)
	m = m.transition(Submitting{Image: image})

	ctx := m.currentContext()
	gen := m.generation
	classifier := m.cfg.Classifier
	tracer := m.cfg.Tracer
	return m, func() tea.Msg {
		ctx, span := tracer.Start(ctx, tracing.SpanSubmit, trace.WithAttributes(
			tracing.AttrPhotoID.String(image.ID.String()),
			tracing.AttrGeneration.Int64(int64(gen)),
		))
		defer span.End()

		result, err := classifier.Classify(ctx, image)
		if err != nil {
			span.SetAttributes(tracing.AttrFailure.String(submissionKind(err).String()))
			span.SetStatus(codes.Error, err.Error())
		}
		return SubmittedMsg{Generation: gen, Result: result, Err: err}
	}, nil
}

// Destroy cancels every timer and request. Afterwards Update ignores all
// messages and the state never changes again.
func (m Model) Destroy() Model {
	if m.destroyed {
		return m
	}
	m.stop()
	m.destroyed = true
	m.acquiring = false
	log.Debug(log.CatWorkflow, "destroyed", "generation", m.generation, "state", m.state.Name())
	return m
}

// Update applies completions posted back by the workflow's commands.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.destroyed {
		return m, nil
	}

	switch msg := msg.(type) {
	case AcquiredMsg:
		return m.handleAcquired(msg)
	case GateElapsedMsg:
		return m.handleGate(msg)
	case FrameMsg:
		return m.handleFrame(msg)
	case SubmittedMsg:
		return m.handleSubmitted(msg)
	}
	return m, nil
}

func (m Model) handleAcquired(msg AcquiredMsg) (Model, tea.Cmd) {
	if msg.Request != 0 && msg.Request != m.acquisition {
		log.Debug(log.CatWorkflow, "stale acquisition dropped", "for", msg.Request, "current", m.acquisition)
		return m, nil
	}
	if m.cancelAcquire != nil {
		m.cancelAcquire()
	}
	m.acquiring = false
	m.cancelAcquire = nil

	if msg.Err == nil {
		return m.Select(msg.Image)
	}

	kind := acquisitionKind(msg.Err)
	switch kind {
	case Cancelled:
		log.Debug(log.CatWorkflow, "acquisition cancelled", "source", msg.Kind)
		return m, nil
	case PermissionDenied:
		log.Info(log.CatWorkflow, "acquisition denied", "source", msg.Kind)
		return m, notice(NoticeMsg{Kind: PermissionDenied, Source: msg.Kind, Blocking: true})
	default:
		log.Warn(log.CatWorkflow, "acquisition failed", "source", msg.Kind, "error", msg.Err)
		return m, notice(NoticeMsg{Kind: kind, Source: msg.Kind})
	}
}

func (m Model) handleGate(msg GateElapsedMsg) (Model, tea.Cmd) {
	p, ok := m.state.(Pending)
	if !ok || msg.Generation != m.generation || p.ElapsedGate {
		log.Debug(log.CatWorkflow, "stale gate dropped", "for", msg.Generation, "current", m.generation)
		return m, nil
	}

	// Timers may fire a hair early relative to the workflow clock; re-arm
	// for the remainder so readiness is never reported before the gate.
	if remaining := m.cfg.Gate - m.cfg.Clock.Now().Sub(p.StartedAt); remaining > 0 {
		return m, after(m.currentContext(), remaining, msg)
	}

	p.ElapsedGate = true
	return m.transition(p), nil
}

func (m Model) handleFrame(msg FrameMsg) (Model, tea.Cmd) {
	p, ok := m.state.(Pending)
	if !ok || msg.Generation != m.generation || p.ElapsedGate {
		return m, nil
	}
	return m, after(m.currentContext(), m.cfg.FrameInterval, msg)
}

func (m Model) handleSubmitted(msg SubmittedMsg) (Model, tea.Cmd) {
	s, ok := m.state.(Submitting)
	if !ok || msg.Generation != m.generation {
		log.Debug(log.CatWorkflow, "stale submission dropped", "for", msg.Generation, "current", m.generation)
		return m, nil
	}

	var outcome Outcome
	if msg.Err != nil {
		outcome = Failure{Reason: submissionKind(msg.Err)}
	} else {
		outcome = Success{Label: msg.Result.Label, Probability: msg.Result.Probability}
	}
	return m.transition(Resolved{Image: s.Image, Outcome: outcome}), nil
}

func (m Model) transition(next State) Model {
	log.Info(log.CatWorkflow, "transition",
		"from", m.state.Name(),
		"to", next.Name(),
		"generation", m.generation,
		"photo", ImageOf(next))
	m.state = next
	return m
}

// currentContext is the handle of the active generation.
func (m Model) currentContext() context.Context {
	if m.current != nil {
		return m.current
	}
	return m.life
}

func after(ctx context.Context, d time.Duration, msg tea.Msg) tea.Cmd {
	return func() tea.Msg {
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-t.C:
			return msg
		case <-ctx.Done():
			return nil
		}
	}
}

func notice(n NoticeMsg) tea.Cmd {
	return func() tea.Msg { return n }
}
