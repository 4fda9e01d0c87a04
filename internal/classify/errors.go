package classify

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Kind classifies why a submission failed.
type Kind int

const (
	// KindNetwork covers transport failures: refused connections, DNS, resets.
	KindNetwork Kind = iota
	// KindTimeout is a transport or context deadline.
	KindTimeout
	// KindServer is any non-2xx status.
	KindServer
	// KindMalformed is a 2xx body without a usable class and probability.
	KindMalformed
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network_error"
	case KindTimeout:
		return "timeout"
	case KindServer:
		return "server_error"
	case KindMalformed:
		return "malformed_response"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error annotates a failed submission with the operation, the failure kind
// and, when a response arrived, its status code.
type Error struct {
	Op         string
	Kind       Kind
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s (status %d): %v", e.Op, e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

// Unwrap supports errors.Is/As.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// KindOf extracts the failure kind from err. Errors that did not come from
// this package are reported as network errors.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	if isTimeout(err) {
		return KindTimeout
	}
	return KindNetwork
}

func transportError(op string, err error) error {
	kind := KindNetwork
	if isTimeout(err) {
		kind = KindTimeout
	}
	return &Error{Op: op, Kind: kind, Err: err}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
