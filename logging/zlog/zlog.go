// Package zlog adapts logging.Logger onto github.com/rs/zerolog, the
// third-party logger the teacher pack's logiface/zerolog adapter targets.
package zlog

import (
	"github.com/rs/zerolog"

	"github.com/MaiRat/WinDOS-sub002/logging"
)

// Logger implements logging.Logger over a zerolog.Logger.
type Logger struct {
	Z zerolog.Logger
}

// New wraps z as a logging.Logger.
func New(z zerolog.Logger) *Logger {
	return &Logger{Z: z}
}

func toZerolog(l logging.Level) zerolog.Level {
	switch l {
	case logging.LevelDebug:
		return zerolog.DebugLevel
	case logging.LevelInfo:
		return zerolog.InfoLevel
	case logging.LevelWarn:
		return zerolog.WarnLevel
	case logging.LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Enabled implements logging.Logger.
func (l *Logger) Enabled(level logging.Level) bool {
	return l.Z.GetLevel() <= toZerolog(level)
}

// Log implements logging.Logger, emitting one structured zerolog event per entry.
func (l *Logger) Log(e logging.Entry) {
	ev := l.Z.WithLevel(toZerolog(e.Level))
	ev = ev.Str("component", e.Component).Str("op", e.Op)
	if e.Handle != 0 {
		ev = ev.Uint16("handle", e.Handle)
	}
	if e.Err != nil {
		ev = ev.Err(e.Err)
	}
	if !e.Time.IsZero() {
		ev = ev.Time("ts", e.Time)
	}
	ev.Msg(e.Message)
}
