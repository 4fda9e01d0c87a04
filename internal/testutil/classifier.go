package testutil

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/zjrosen/petsense/internal/classify"
	"github.com/zjrosen/petsense/internal/photo"
)

// Classifier answers every request with Result and Err and records what it
// was asked. Packages whose own tests sit inside classify cannot use it.
type Classifier struct {
	Result classify.Result
	Err    error

	calls atomic.Int32
	mu    sync.Mutex
	seen  []photo.Reference
}

// Classify implements classify.Classifier.
// It ignores ctx so a superseded request still answers, as a slow server would.
func (c *Classifier) Classify(_ context.Context, ref photo.Reference) (classify.Result, error) {
	c.calls.Add(1)
	c.mu.Lock()
	c.seen = append(c.seen, ref)
	c.mu.Unlock()
	return c.Result, c.Err
}

// Calls returns how many requests were made.
func (c *Classifier) Calls() int32 {
	return c.calls.Load()
}

// Seen returns the photos submitted, in order.
func (c *Classifier) Seen() []photo.Reference {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]photo.Reference(nil), c.seen...)
}
