package platform

import (
	"log/slog"
	"time"

	"github.com/aretw0/timeline/pkg/core"
	"github.com/aretw0/timeline/pkg/reference"
)

// options holds the internal configuration for the timeline service.
type options struct {
	repository   core.Repository
	logger       *slog.Logger
	adapter      string
	configPath   string
	settings     *core.Settings
	notifier     reference.Notifier
	clock        func() time.Time
	cacheSize    int
	eventBuffer  int
	extensions   []string
	errorHandler func(error)
}

// Option defines a functional option for configuring the service.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		adapter:   "fs",
		cacheSize: 1024,
	}
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRepository allows injecting a custom document store (e.g. a mock).
// If provided, the default filesystem adapter will be skipped.
func WithRepository(repo core.Repository) Option {
	return func(o *options) {
		o.repository = repo
	}
}

// WithAdapter allows specifying the storage adapter to use by name (e.g. "fs").
// Defaults to "fs".
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithConfigPath reads settings from path instead of <root>/.timeline/config.yaml.
func WithConfigPath(path string) Option {
	return func(o *options) {
		o.configPath = path
	}
}

// WithSettings skips the settings file and uses s as is.
func WithSettings(s core.Settings) Option {
	return func(o *options) {
		o.settings = &s
	}
}

// WithNotifier sets where user-visible notices go.
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

// WithParseCache sets the number of memoized date parses. Zero or less disables the cache.
func WithParseCache(size int) Option {
	return func(o *options) {
		o.cacheSize = size
	}
}

// WithEventBuffer sets the buffer size of watch update channels.
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.eventBuffer = size
	}
}

// WithExtensions sets which file extensions count as documents. Defaults to .md.
func WithExtensions(exts ...string) Option {
	return func(o *options) {
		o.extensions = exts
	}
}

// WithWatcherErrorHandler registers a callback for errors raised during Watch.
// Watch errors are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.errorHandler = fn
	}
}
