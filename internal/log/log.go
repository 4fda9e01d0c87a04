// Package log provides the category logger used across petsense.
//
// Logging is off until Init is called (the TUI owns the terminal, so entries
// only ever go to a file). Every entry is also published on a broker so the
// app can surface the latest line while running with --debug.
package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/petsense/internal/pubsub"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a config string to a Level, defaulting to LevelDebug.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelDebug
	}
}

// Category groups related log messages.
type Category string

const (
	CatWorkflow Category = "workflow" // state machine transitions
	CatSource   Category = "source"   // camera/library acquisition
	CatClassify Category = "classify" // classification requests
	CatConfig   Category = "config"   // configuration loading/saving
	CatUI       Category = "ui"       // screen and component updates
	CatCache    Category = "cache"    // in-session result cache
	CatWatcher  Category = "watcher"  // watched capture directory
	CatTrace    Category = "trace"    // tracing provider lifecycle
)

type logger struct {
	mu       sync.Mutex
	writer   io.Writer
	closer   io.Closer
	minLevel Level
	broker   *pubsub.Broker[string]
	now      func() time.Time
}

var (
	stateMu sync.RWMutex
	current *logger
)

// Init opens path through tea.LogToFile and makes it the log destination.
// The returned func closes the file and disables logging again.
func Init(path string) (func(), error) {
	f, err := tea.LogToFile(path, "petsense")
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	install(f, f)
	return func() {
		stateMu.Lock()
		defer stateMu.Unlock()
		if current != nil {
			current.broker.Close()
			current = nil
		}
		_ = f.Close()
	}, nil
}

// InitWriter routes entries to w. Mostly useful in tests.
func InitWriter(w io.Writer) func() {
	install(w, nil)
	return func() {
		stateMu.Lock()
		defer stateMu.Unlock()
		if current != nil {
			current.broker.Close()
			current = nil
		}
	}
}

func install(w io.Writer, c io.Closer) {
	stateMu.Lock()
	defer stateMu.Unlock()
	if current != nil {
		current.broker.Close()
	}
	current = &logger{
		writer:   w,
		closer:   c,
		minLevel: LevelDebug,
		broker:   pubsub.NewBroker[string](),
		now:      time.Now,
	}
}

// Enabled reports whether a destination is installed.
func Enabled() bool {
	stateMu.RLock()
	defer stateMu.RUnlock()
	return current != nil
}

// SetMinLevel drops entries below level.
func SetMinLevel(level Level) {
	stateMu.RLock()
	defer stateMu.RUnlock()
	if current == nil {
		return
	}
	current.mu.Lock()
	current.minLevel = level
	current.mu.Unlock()
}

// Debug logs at debug level.
func Debug(cat Category, msg string, fields ...any) {
	write(LevelDebug, cat, msg, fields...)
}

// Info logs at info level.
func Info(cat Category, msg string, fields ...any) {
	write(LevelInfo, cat, msg, fields...)
}

// Warn logs at warning level.
func Warn(cat Category, msg string, fields ...any) {
	write(LevelWarn, cat, msg, fields...)
}

// Error logs at error level.
func Error(cat Category, msg string, fields ...any) {
	write(LevelError, cat, msg, fields...)
}

// ErrorErr logs at error level with err appended as the "error" field.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	if err != nil {
		fields = append(fields, "error", err.Error())
	} else {
		fields = append(fields, "error", "<nil>")
	}
	write(LevelError, cat, msg, fields...)
}

func write(level Level, cat Category, msg string, fields ...any) {
	stateMu.RLock()
	l := current
	stateMu.RUnlock()
	if l == nil {
		return
	}

	l.mu.Lock()
	if level < l.minLevel {
		l.mu.Unlock()
		return
	}
	entry := format(l.now(), level, cat, msg, fields)
	_, _ = io.WriteString(l.writer, entry+"\n")
	l.mu.Unlock()

	l.broker.Publish(pubsub.CreatedEvent, entry)
}

// format renders one entry:
// 2026-01-02T15:04:05 [WARN] [classify] message key=value key2=value2
func format(ts time.Time, level Level, cat Category, msg string, fields []any) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s] [%s] %s", ts.Format("2006-01-02T15:04:05"), level, cat, msg)
	for i := 0; i+1 < len(fields); i += 2 {
		fmt.Fprintf(&b, " %v=%v", fields[i], fields[i+1])
	}
	if len(fields)%2 != 0 {
		fmt.Fprintf(&b, " %v=<missing>", fields[len(fields)-1])
	}
	return b.String()
}

// Event carries one formatted log entry.
type Event = pubsub.Event[string]

// Listener delivers log entries into an update loop.
type Listener = pubsub.ContinuousListener[string]

// NewListener subscribes to log entries until ctx is done. When ctx ends,
// entries the listener missed because it fell behind are reported once.
// It returns nil when logging is disabled.
func NewListener(ctx context.Context) *Listener {
	stateMu.RLock()
	defer stateMu.RUnlock()
	if current == nil {
		return nil
	}
	broker := current.broker
	context.AfterFunc(ctx, func() {
		if n := broker.Dropped(); n > 0 {
			Warn(CatUI, "log listener missed entries", "dropped", n)
		}
	})
	return pubsub.NewContinuousListener[string](ctx, broker)
}

// DebugFromEnv reports whether PETSENSE_DEBUG asks for logging.
func DebugFromEnv() bool {
	v := strings.ToLower(os.Getenv("PETSENSE_DEBUG"))
	return v != "" && v != "0" && v != "false"
}
