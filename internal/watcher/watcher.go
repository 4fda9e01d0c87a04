// Package watcher watches a capture directory and announces image files that
// appear in it once they have stopped changing.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zjrosen/petsense/internal/log"
	"github.com/zjrosen/petsense/internal/photo"
	"github.com/zjrosen/petsense/internal/pubsub"
)

// ErrStopped is returned by NextImage when the watcher is stopped while waiting.
var ErrStopped = errors.New("watcher stopped")

// Config holds watcher configuration options.
type Config struct {
	Dir string
	// Settle is how long a file must go without writes before it is announced.
	// Camera tools usually write in several chunks.
	Settle time.Duration
}

// DefaultConfig returns the settle window used for camera drop directories.
func DefaultConfig(dir string) Config {
	return Config{Dir: dir, Settle: 300 * time.Millisecond}
}

// Watcher publishes the absolute path of every settled image file created in Dir.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	dir       string
	settle    time.Duration
	broker    *pubsub.Broker[string]
	done      chan struct{}
	stopOnce  sync.Once
}

// New creates a watcher; call Start to begin receiving events.
func New(cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	settle := cfg.Settle
	if settle <= 0 {
		settle = DefaultConfig(cfg.Dir).Settle
	}
	return &Watcher{
		fsWatcher: fsw,
		dir:       cfg.Dir,
		settle:    settle,
		broker:    pubsub.NewBroker[string](),
		done:      make(chan struct{}),
	}, nil
}

// Start begins watching the directory.
func (w *Watcher) Start() error {
	if err := w.fsWatcher.Add(w.dir); err != nil {
		return fmt.Errorf("watching directory %s: %w", w.dir, err)
	}
	go w.loop()
	return nil
}

// Stop terminates the watcher and closes the broker. Safe to call twice.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		err = w.fsWatcher.Close()
		w.broker.Close()
	})
	return err
}

// NextImage blocks until the next image file settles in the directory.
// It returns ctx.Err() when ctx ends first and ErrStopped when the watcher stops.
func (w *Watcher) NextImage(ctx context.Context) (string, error) {
	sub, cancel := context.WithCancel(ctx)
	defer cancel()

	ch := w.broker.Subscribe(sub)
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case event, ok := <-ch:
		if !ok {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			return "", ErrStopped
		}
		return event.Payload, nil
	}
}

// loop tracks one settle timer per file so a burst of writes to the same
// file produces a single announcement.
func (w *Watcher) loop() {
	pending := make(map[string]time.Time)
	ticker := time.NewTicker(max(w.settle/3, time.Millisecond))
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !isRelevant(event) {
				continue
			}
			pending[event.Name] = time.Now()

		case now := <-ticker.C:
			for path, last := range pending {
				if now.Sub(last) < w.settle {
					continue
				}
				delete(pending, path)
				if w.broker.SubscriberCount() == 0 {
					log.Debug(log.CatWatcher, "image settled with nobody waiting", "path", path)
					continue
				}
				log.Debug(log.CatWatcher, "image settled", "path", path)
				w.broker.Publish(pubsub.CreatedEvent, path)
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.ErrorErr(log.CatWatcher, "fsnotify error", err, "dir", w.dir)

		case <-w.done:
			return
		}
	}
}

func isRelevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		return false
	}
	return photo.HasImageExtension(event.Name)
}
