package banks

import "log/slog"

type Option func(s *Scanner)

// WithLogger specifies the logger for the scanner
func WithLogger(l *slog.Logger) Option {
	return func(s *Scanner) {
		s.logger = l
	}
}

// WithMaxRecords caps the number of accepted rows.
// Defaults to 10
func WithMaxRecords(n int) Option {
	return func(s *Scanner) {
		if n > 0 {
			s.maxRecords = n
		}
	}
}

// WithStrategies overrides the ordered table lookup strategies
func WithStrategies(strategies ...TableStrategy) Option {
	return func(s *Scanner) {
		s.strategies = strategies
	}
}
