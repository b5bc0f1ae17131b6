package sheet

import (
	"log/slog"
	"time"
)

// Option is a function that modifies Store configuration
type Option func(*Store)

// WithTimeFunc sets a custom time function for testing
func WithTimeFunc(fn func() time.Time) Option {
	return func(s *Store) {
		s.timeFunc = fn
	}
}

// WithIDFunc sets the generator used for new topic, section and problem ids
func WithIDFunc(fn func() string) Option {
	return func(s *Store) {
		s.idFunc = fn
	}
}

// WithLogger sets the logger mutations and persistence failures go to
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithKey overrides the backend key the sheet is persisted under
func WithKey(key string) Option {
	return func(s *Store) {
		s.key = key
	}
}
