package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// Logger wraps zerolog with the project's log shape: every entry carries
// the service name, hostname and an "action" field.
type Logger struct {
	zl zerolog.Logger
}

func New(service string) *Logger {
	zl := zerolog.New(os.Stdout).With().
		Timestamp().
		Str("service", service).
		Str("hostname", hostname()).
		Logger()
	return &Logger{zl: zl}
}

func (l *Logger) Info(action string, fields map[string]any) {
	l.emit(l.zl.Info(), action, fields)
}

func (l *Logger) Debug(action string, fields map[string]any) {
	l.emit(l.zl.Debug(), action, fields)
}

func (l *Logger) Warn(action string, fields map[string]any) {
	l.emit(l.zl.Warn(), action, fields)
}

func (l *Logger) Error(action string, err error, fields map[string]any) {
	l.emit(l.zl.Error().Err(err), action, fields)
}

func (l *Logger) emit(ev *zerolog.Event, action string, fields map[string]any) {
	ev = ev.Str("action", action)
	for k, v := range fields {
		ev = ev.Interface(k, v)
	}
	ev.Msg(action)
}

func hostname() string { h, _ := os.Hostname(); return h }
