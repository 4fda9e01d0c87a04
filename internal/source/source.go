// Package source supplies images from the camera or the photo library.
//
// Every request asks for permission first, on each call, and reports the two
// user-driven outcomes through sentinel errors: ErrCancelled when the user
// backs out of the picker and ErrPermissionDenied when access is refused.
package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/zjrosen/petsense/internal/photo"
)

var (
	// ErrCancelled means the user aborted the picker; nothing should change.
	ErrCancelled = errors.New("image selection cancelled")
	// ErrPermissionDenied means access to the camera or library was refused.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrUnavailable means the source is not configured on this machine.
	ErrUnavailable = errors.New("image source unavailable")
)

// Kind selects where an image comes from.
type Kind int

const (
	KindCamera Kind = iota
	KindLibrary
)

func (k Kind) String() string {
	switch k {
	case KindCamera:
		return "camera"
	case KindLibrary:
		return "library"
	default:
		return fmt.Sprintf("source(%d)", int(k))
	}
}

// Provider yields one image per call, or ErrCancelled / ErrPermissionDenied.
type Provider interface {
	Request(ctx context.Context) (photo.Reference, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context) (photo.Reference, error)

// Request calls f.
func (f ProviderFunc) Request(ctx context.Context) (photo.Reference, error) {
	return f(ctx)
}

// Outcome classifies a provider result for callers that switch on it.
type Outcome int

const (
	OutcomeSelected Outcome = iota
	OutcomeCancelled
	OutcomeDenied
	OutcomeFailed
)

// Classify maps a provider error to an Outcome.
func Classify(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeSelected
	case errors.Is(err, ErrCancelled), errors.Is(err, context.Canceled):
		return OutcomeCancelled
	case errors.Is(err, ErrPermissionDenied):
		return OutcomeDenied
	default:
		return OutcomeFailed
	}
}
