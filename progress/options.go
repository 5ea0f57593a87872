package progress

import (
	"log/slog"
	"time"
)

type Option func(l *Log)

// WithLogger specifies the structured logger progress lines are mirrored to
func WithLogger(logger *slog.Logger) Option {
	return func(l *Log) {
		l.logger = logger
	}
}

// WithClock overrides the timestamp source
func WithClock(now func() time.Time) Option {
	return func(l *Log) {
		l.now = now
	}
}
