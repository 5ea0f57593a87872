package etl

import (
	"io"
	"log/slog"

	"github.com/sig-0/bankcaps/config"
)

type Option func(p *Pipeline)

// WithLogger specifies the logger for the pipeline
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = l
	}
}

// WithProgress specifies the progress log for the pipeline
func WithProgress(progress Progress) Option {
	return func(p *Pipeline) {
		p.progress = progress
	}
}

// WithConfig specifies the run configuration.
// Defaults to config.DefaultConfig
func WithConfig(c *config.Config) Option {
	return func(p *Pipeline) {
		p.config = c
	}
}

// WithOutput specifies where intermediate data and query results are printed.
// Defaults to io.Discard
func WithOutput(w io.Writer) Option {
	return func(p *Pipeline) {
		p.out = w
	}
}
