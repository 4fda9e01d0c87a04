package workflow

import (
	"fmt"
	"time"

	"github.com/zjrosen/petsense/internal/photo"
)

// MessageKind selects which status line the screen shows.
type MessageKind int

const (
	MessageNone MessageKind = iota
	MessageProcessing
	MessageSuccess
	MessageFailure
)

const (
	// ProcessingText is shown while a request is in flight.
	ProcessingText = "⏳ Analyzing on the server..."
	// FailureText is shown for every failed submission.
	FailureText = "❌ Recognition failed"
)

// DisplayModel is everything the recognition screen needs to draw the
// workflow. It is derived from State and never stored.
type DisplayModel struct {
	ShowPreview   bool
	Preview       photo.Reference
	ShowProgress  bool
	Progress      float64
	SubmitEnabled bool
	Message       MessageKind
	Text          string
	Reason        ErrorKind
}

// Render derives the display for s at time now. Progress is the share of
// the readiness gate elapsed since the image was chosen, clamped to [0, 1].
func Render(s State, now time.Time, gate time.Duration) DisplayModel {
	switch s := s.(type) {
	case Pending:
		d := DisplayModel{
			ShowPreview:   true,
			Preview:       s.Image,
			SubmitEnabled: s.ElapsedGate,
		}
		if !s.ElapsedGate {
			d.ShowProgress = true
			d.Progress = progress(now.Sub(s.StartedAt), gate)
		}
		return d
	case Submitting:
		return DisplayModel{
			ShowPreview: true,
			Preview:     s.Image,
			Message:     MessageProcessing,
			Text:        ProcessingText,
		}
	case Resolved:
		d := DisplayModel{ShowPreview: true, Preview: s.Image}
		switch o := s.Outcome.(type) {
		case Success:
			d.Message = MessageSuccess
			d.Text = SuccessText(o)
		case Failure:
			d.Message = MessageFailure
			d.Text = FailureText
			d.Reason = o.Reason
		}
		return d
	default:
		return DisplayModel{}
	}
}

// SuccessText formats a label and probability for display.
func SuccessText(s Success) string {
	return fmt.Sprintf("Result: %s\nProbability: %v%%", s.Label, s.Probability)
}

func progress(elapsed, gate time.Duration) float64 {
	if gate <= 0 {
		return 1
	}
	p := float64(elapsed) / float64(gate)
	return min(max(p, 0), 1)
}
