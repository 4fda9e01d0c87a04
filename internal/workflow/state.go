package workflow

import (
	"fmt"
	"time"

	"github.com/zjrosen/petsense/internal/photo"
)

// State is one of Idle, Pending, Submitting or Resolved. The variants carry
// only the fields that are meaningful for them, so combinations such as
// "submitting without an image" cannot be expressed.
type State interface {
	Name() string
	isState()
}

// Idle means no image has been chosen.
type Idle struct{}

// Pending means an image is chosen and the readiness gate is running
// (ElapsedGate false) or finished (ElapsedGate true, i.e. ready to submit).
type Pending struct {
	Image       photo.Reference
	ElapsedGate bool
	StartedAt   time.Time
}

// Submitting means a classification request for Image is in flight.
type Submitting struct {
	Image photo.Reference
}

// Resolved holds the terminal outcome for Image until another image is chosen.
type Resolved struct {
	Image   photo.Reference
	Outcome Outcome
}

func (Idle) isState()       {}
func (Pending) isState()    {}
func (Submitting) isState() {}
func (Resolved) isState()   {}

func (Idle) Name() string { return "idle" }

func (p Pending) Name() string {
	if p.ElapsedGate {
		return "ready"
	}
	return "pending"
}

func (Submitting) Name() string { return "submitting" }
func (Resolved) Name() string   { return "resolved" }

// ImageOf returns the active image of s, or the zero Reference for Idle.
func ImageOf(s State) photo.Reference {
	switch s := s.(type) {
	case Pending:
		return s.Image
	case Submitting:
		return s.Image
	case Resolved:
		return s.Image
	default:
		return photo.Reference{}
	}
}

// ReadyToSubmit reports whether s accepts a submission.
func ReadyToSubmit(s State) bool {
	p, ok := s.(Pending)
	return ok && p.ElapsedGate && !p.Image.IsZero()
}

// Outcome is either Success or Failure.
type Outcome interface {
	isOutcome()
}

// Success is a classification label with its probability in percent.
type Success struct {
	Label       string
	Probability float64
}

// Failure records why a submission did not produce a label.
type Failure struct {
	Reason ErrorKind
}

func (Success) isOutcome() {}
func (Failure) isOutcome() {}

func (s Success) String() string {
	return fmt.Sprintf("%s (%v%%)", s.Label, s.Probability)
}

func (f Failure) String() string {
	return f.Reason.String()
}
