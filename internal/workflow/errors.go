package workflow

import (
	"errors"
	"fmt"

	"github.com/zjrosen/petsense/internal/classify"
	"github.com/zjrosen/petsense/internal/source"
)

// ErrorKind enumerates every failure the workflow can surface.
type ErrorKind int

const (
	// PermissionDenied: camera or library access refused. Blocking notice.
	PermissionDenied ErrorKind = iota
	// Cancelled: the user backed out of the picker. Silent.
	Cancelled
	// NoImageSelected: submit with no active image. Notice, no network.
	NoImageSelected
	// NotReady: submit before the readiness gate elapsed or after resolution.
	NotReady
	// InFlight: submit while a request is already running.
	InFlight
	// SourceUnavailable: the picker failed for a reason other than the user.
	SourceUnavailable
	NetworkError
	Timeout
	ServerError
	MalformedResponse
)

func (k ErrorKind) String() string {
	switch k {
	case PermissionDenied:
		return "permission_denied"
	case Cancelled:
		return "cancelled"
	case NoImageSelected:
		return "no_image_selected"
	case NotReady:
		return "not_ready"
	case InFlight:
		return "in_flight"
	case SourceUnavailable:
		return "source_unavailable"
	case NetworkError:
		return "network_error"
	case Timeout:
		return "timeout"
	case ServerError:
		return "server_error"
	case MalformedResponse:
		return "malformed_response"
	default:
		return fmt.Sprintf("error_kind(%d)", int(k))
	}
}

// Error is a local workflow refusal. Compare with errors.Is against the
// sentinels below; two Errors match when their kinds match.
type Error struct {
	Kind ErrorKind
}

func (e *Error) Error() string {
	return "workflow: " + e.Kind.String()
}

// Is matches on Kind.
func (e *Error) Is(target error) bool {
	var t *Error
	return errors.As(target, &t) && t.Kind == e.Kind
}

var (
	ErrNoImageSelected = &Error{Kind: NoImageSelected}
	ErrNotReady        = &Error{Kind: NotReady}
	ErrInFlight        = &Error{Kind: InFlight}
)

// submissionKind maps a classifier error onto the workflow taxonomy.
func submissionKind(err error) ErrorKind {
	switch classify.KindOf(err) {
	case classify.KindTimeout:
		return Timeout
	case classify.KindServer:
		return ServerError
	case classify.KindMalformed:
		return MalformedResponse
	default:
		return NetworkError
	}
}

// acquisitionKind maps a source error onto the workflow taxonomy.
func acquisitionKind(err error) ErrorKind {
	switch source.Classify(err) {
	case source.OutcomeCancelled:
		return Cancelled
	case source.OutcomeDenied:
		return PermissionDenied
	default:
		return SourceUnavailable
	}
}
