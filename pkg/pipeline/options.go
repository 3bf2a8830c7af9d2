package pipeline

import (
	"log/slog"
	"time"

	"github.com/aretw0/timeline/pkg/reference"
)

type options struct {
	logger      *slog.Logger
	notifier    reference.Notifier
	clock       func() time.Time
	eventBuffer int
}

// Option configures a Service.
type Option func(*options)

func defaultOptions() *options {
	return &options{
		logger:      slog.Default(),
		eventBuffer: 16,
	}
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithNotifier sets where user-visible notices (e.g. an invalid reference pattern) go.
func WithNotifier(n reference.Notifier) Option {
	return func(o *options) {
		o.notifier = n
	}
}

// WithClock overrides the clock used for unanchored reference parsing.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.clock = now
	}
}

// WithEventBuffer sets the buffer size of Watch update channels.
func WithEventBuffer(size int) Option {
	return func(o *options) {
		if size > 0 {
			o.eventBuffer = size
		}
	}
}
