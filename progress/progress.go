// Package progress writes the human-readable ETL progress log
package progress

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"
)

// TimestampFormat is the layout of every log line prefix
const TimestampFormat = "2006-Jan-02-15:04:05"

const (
	headerTitle = "ETL Process Log - Largest Banks Data"
	headerWidth = 50
)

// Log is an append-only progress log owning its file handle
type Log struct {
	logger *slog.Logger
	now    func() time.Time

	w      io.Writer
	closer io.Closer

	mu sync.Mutex
}

// Open truncates (or creates) the log file at the given path
// and writes the log header
func Open(path string, opts ...Option) (*Log, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("unable to open progress log: %w", err)
	}

	l := New(f, opts...)
	l.closer = f

	if err = l.writeHeader(); err != nil {
		_ = f.Close()

		return nil, err
	}

	return l, nil
}

// New creates a progress log over the given writer, without a header
func New(w io.Writer, opts ...Option) *Log {
	l := &Log{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
		w:      w,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Log appends a timestamped line to the progress log.
// The message is mirrored to the structured logger
func (l *Log) Log(message string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.logger.Info(message)

	line := fmt.Sprintf("%s : %s\n", l.now().Format(TimestampFormat), message)

	if _, err := io.WriteString(l.w, line); err != nil {
		l.logger.Error(
			"unable to write progress log",
			"err", err,
		)
	}
}

// Close releases the underlying file, if any
func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closer == nil {
		return nil
	}

	err := l.closer.Close()
	l.closer = nil

	return err
}

func (l *Log) writeHeader() error {
	header := headerTitle + "\n" + strings.Repeat("=", headerWidth) + "\n"

	if _, err := io.WriteString(l.w, header); err != nil {
		return fmt.Errorf("unable to write progress log header: %w", err)
	}

	return nil
}
