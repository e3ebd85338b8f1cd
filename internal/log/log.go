// Package log writes the debug log of schemadesigner. Lines carry a
// timestamp, a level and a category:
//
//	2024-05-11T14:07:00 [WARN] [workspace] skipped malformed schema name=bad
//
// Nothing is written until Init or InitWithTeaLog installs a log file, which
// the CLI does for --debug or SCHEMADESIGNER_DEBUG. Every line is also
// published on a broker so the TUI can show it in its log overlay.
package log

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vvwxvv/Data-Schema-Json-App/internal/pubsub"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

// ErrUnknownLevel is returned by ParseLevel.
var ErrUnknownLevel = errors.New("unknown log level")

func (l Level) String() string {
	if l < LevelDebug || int(l) >= len(levelNames) {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLevel accepts a level name in any case, plus "warning".
func ParseLevel(s string) (Level, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	if name == "WARNING" {
		return LevelWarn, nil
	}
	for i, n := range levelNames {
		if n == name {
			return Level(i), nil
		}
	}
	return LevelDebug, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
}

// EntryLevel reads the level tag of a formatted line. Lines without a
// known tag count as debug.
func EntryLevel(entry string) Level {
	for i := len(levelNames) - 1; i > 0; i-- {
		if strings.Contains(entry, "["+levelNames[i]+"]") {
			return Level(i)
		}
	}
	return LevelDebug
}

// Category groups related log messages.
type Category string

const (
	CatConfig    Category = "config"    // Configuration loading/saving
	CatWorkspace Category = "workspace" // Workspace file load/save, export, backups
	CatTemplate  Category = "template"  // Template catalog loading and previews
	CatWatcher   Category = "watcher"   // File watcher events
	CatUI        Category = "ui"        // UI component updates
	CatCache     Category = "cache"     // cache operations
	CatCLI       Category = "cli"       // Command execution
)

// Logger writes formatted lines to a file and publishes them.
type Logger struct {
	mu       sync.Mutex
	out      io.Writer
	closer   io.Closer
	enabled  bool
	minLevel Level
	broker   *pubsub.Broker[string]
	now      func() time.Time
}

var current atomic.Pointer[Logger]

func newLogger(w io.Writer, c io.Closer) *Logger {
	return &Logger{
		out:      w,
		closer:   c,
		enabled:  true,
		minLevel: LevelDebug,
		broker:   pubsub.NewBroker[string](),
		now:      time.Now,
	}
}

// install makes l the global logger and returns its cleanup.
func install(l *Logger) func() {
	current.Store(l)
	return func() {
		current.CompareAndSwap(l, nil)
		l.broker.Close()
		if l.closer != nil {
			_ = l.closer.Close()
		}
	}
}

// Init appends to the file at path. The returned function closes it.
func Init(path string) (func(), error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint:gosec // G304: path is user-controlled debug log path
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return install(newLogger(f, f)), nil
}

// InitWithTeaLog opens path with tea.LogToFile, so Bubble Tea's own log
// output lands in the same file under prefix.
func InitWithTeaLog(path string, prefix string) (func(), error) {
	f, err := tea.LogToFile(path, prefix)
	if err != nil {
		return nil, err
	}
	return install(newLogger(f, f)), nil
}

// SetEnabled toggles logging on/off.
func SetEnabled(enabled bool) {
	if l := current.Load(); l != nil {
		l.mu.Lock()
		l.enabled = enabled
		l.mu.Unlock()
	}
}

// SetMinLevel drops lines below level.
func SetMinLevel(level Level) {
	if l := current.Load(); l != nil {
		l.mu.Lock()
		l.minLevel = level
		l.mu.Unlock()
	}
}

// Debug logs at debug level.
func Debug(cat Category, msg string, fields ...any) {
	write(LevelDebug, cat, msg, fields)
}

// Info logs at info level.
func Info(cat Category, msg string, fields ...any) {
	write(LevelInfo, cat, msg, fields)
}

// Warn logs at warning level.
func Warn(cat Category, msg string, fields ...any) {
	write(LevelWarn, cat, msg, fields)
}

// Error logs at error level.
func Error(cat Category, msg string, fields ...any) {
	write(LevelError, cat, msg, fields)
}

// ErrorErr logs at error level with err appended as the "error" field.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	value := "<nil>"
	if err != nil {
		value = err.Error()
	}
	write(LevelError, cat, msg, append(fields, "error", value))
}

func write(level Level, cat Category, msg string, fields []any) {
	l := current.Load()
	if l == nil {
		return
	}

	l.mu.Lock()
	if !l.enabled || level < l.minLevel {
		l.mu.Unlock()
		return
	}
	entry := format(l.now(), level, cat, msg, fields)
	if l.out != nil {
		_, _ = io.WriteString(l.out, entry)
	}
	l.mu.Unlock()

	l.broker.Publish(pubsub.LoggedEvent, entry)
}

// format renders one line. Fields are key/value pairs; a trailing key
// without a value is written as key=<missing>.
func format(ts time.Time, level Level, cat Category, msg string, fields []any) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s [%s] [%s] %s", ts.Format("2006-01-02T15:04:05"), level, cat, msg)
	for i := 0; i < len(fields); i += 2 {
		if i+1 < len(fields) {
			fmt.Fprintf(&sb, " %v=%v", fields[i], fields[i+1])
		} else {
			fmt.Fprintf(&sb, " %v=<missing>", fields[i])
		}
	}
	sb.WriteByte('\n')
	return sb.String()
}

// LogEvent is the message a LogListener delivers.
type LogEvent = pubsub.Event[string]

// LogListener delivers log lines to a Bubble Tea program.
type LogListener = pubsub.Listener[string]

// NewListener subscribes to the installed logger until ctx is done. It
// returns nil when no logger is installed.
func NewListener(ctx context.Context) *LogListener {
	l := current.Load()
	if l == nil {
		return nil
	}
	return pubsub.NewListener(ctx, l.broker)
}
