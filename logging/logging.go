// Package logging provides the structured-logging facade consumed by the
// trap, memory, segment and scheduler packages.
//
// This mirrors the teacher package's own package-level logging interface:
// a small Logger interface with a no-op default, so every component can
// accept a logging.Logger without depending on any particular backend. The
// logging/zlog subpackage supplies a github.com/rs/zerolog-backed
// implementation for real use.
package logging

import "time"

// Level is the severity of a log entry.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the level's name.
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

// Entry is a single structured log record.
type Entry struct {
	Level     Level
	Component string // "trap", "gmem", "lmem", "segment", "sched"
	Op        string
	Handle    uint16
	Message   string
	Err       error
	Time      time.Time
}

// Logger is the structured-logging interface every component depends on.
// A nil Logger is always treated as a no-op by callers in this module;
// Noop satisfies the interface explicitly for callers that want a concrete
// value instead of a nil one.
type Logger interface {
	Log(Entry)
	Enabled(Level) bool
}

// Noop is a Logger that discards everything.
type Noop struct{}

// Log implements Logger.
func (Noop) Log(Entry) {}

// Enabled implements Logger.
func (Noop) Enabled(Level) bool { return false }

// Emit logs entry on l if l is non-nil and the entry's level is enabled.
// Every component in this module calls through Emit rather than l.Log
// directly, so a nil Logger (spec's "NULL log sink") is always safe.
func Emit(l Logger, entry Entry) {
	if l == nil || !l.Enabled(entry.Level) {
		return
	}
	if entry.Time.IsZero() {
		entry.Time = time.Now()
	}
	l.Log(entry)
}
