package timeline

import (
	"log/slog"
	"time"

	"github.com/aretw0/timeline/internal/platform"
	"github.com/aretw0/timeline/pkg/core"
	"github.com/aretw0/timeline/pkg/pipeline"
	"github.com/aretw0/timeline/pkg/reference"
)

// Version exposes the version of the library.
// See version.go for the implementation using go:embed.

// --- Types ---

// Service builds timelines for the documents of a vault.
type Service = pipeline.Service

// Result is the output of one build.
type Result = pipeline.Result

// Settings are the persisted build settings.
type Settings = core.Settings

// --- Configuration ---

// Option defines a functional option for configuring the service.
type Option = platform.Option

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithRepository allows injecting a custom document store.
func WithRepository(repo core.Repository) Option {
	return platform.WithRepository(repo)
}

// WithAdapter allows specifying the storage adapter to use by name.
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithConfigPath reads settings from a specific file.
func WithConfigPath(path string) Option {
	return platform.WithConfigPath(path)
}

// WithSettings uses the given settings instead of the settings file.
func WithSettings(s Settings) Option {
	return platform.WithSettings(s)
}

// WithNotifier sets where user-visible notices go.
func WithNotifier(n reference.Notifier) Option {
	return platform.WithNotifier(n)
}

// WithClock overrides the clock used for unanchored reference parsing.
func WithClock(now func() time.Time) Option {
	return platform.WithClock(now)
}

// WithParseCache sets the number of memoized date parses.
func WithParseCache(size int) Option {
	return platform.WithParseCache(size)
}

// WithEventBuffer sets the buffer size of watch update channels.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithWatcherErrorHandler registers a callback for errors raised during Watch.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// --- Factory ---

// New creates a new timeline Service.
func New(path string, opts ...Option) (*Service, error) {
	return platform.New(path, opts...)
}

// Open returns the document store without building a service.
func Open(path string, opts ...Option) (core.Repository, error) {
	return platform.Open(path, opts...)
}

// FindRoot looks upwards from dir for a vault root (.timeline, .obsidian or .git).
func FindRoot(dir string) (string, error) {
	return platform.FindRoot(dir)
}
