// Package reference determines the anchor date a document's relative date phrases
// are interpreted against.
//
// Resolution walks an ordered list of strategies and takes the first one that
// yields a date:
//
//  1. an explicit reference from the build's directive block (parsed unanchored);
//  2. a metadata property, looked up by exact key or by the first key matching a pattern;
//  3. the document's creation timestamp.
//
// The last tier always succeeds, so Resolve never fails.
package reference

import (
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/aretw0/timeline/pkg/core"
	"github.com/aretw0/timeline/pkg/dateparse"
)

// Notifier shows a short-lived message to the user.
type Notifier interface {
	Notify(msg string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(msg string)

func (f NotifierFunc) Notify(msg string) { f(msg) }

// Input is everything a strategy may look at.
type Input struct {
	Document core.Document
	Settings core.Settings
	// Explicit is the directive-level reference string, empty when absent.
	Explicit string
}

// Strategy yields a reference date or reports that it has none.
type Strategy interface {
	Name() string
	Resolve(in Input) (time.Time, bool)
}

// Resolver runs strategies in order.
type Resolver struct {
	strategies []Strategy
	now        func() time.Time
	logger     *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// WithClock overrides the clock used for unanchored parsing and as the last resort
// when a document has no creation timestamp.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) {
		r.now = now
	}
}

// WithStrategies replaces the default strategy chain. The creation timestamp is
// still used when every strategy declines.
func WithStrategies(strategies ...Strategy) Option {
	return func(r *Resolver) {
		r.strategies = strategies
	}
}

// New builds a Resolver with the default chain: explicit, property, created.
func New(parser dateparse.Parser, notifier Notifier, opts ...Option) *Resolver {
	r := &Resolver{
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if notifier == nil {
		notifier = NotifierFunc(func(string) {})
	}
	if r.strategies == nil {
		r.strategies = []Strategy{
			Explicit{Parser: parser, Now: r.now},
			Property{Parser: parser, Notifier: notifier, Logger: r.logger},
			Created{},
		}
	}
	return r
}

// Resolve returns the anchor date for a build. It always returns a usable date.
func (r *Resolver) Resolve(doc core.Document, settings core.Settings, explicit string) time.Time {
	in := Input{Document: doc, Settings: settings, Explicit: explicit}
	for _, s := range r.strategies {
		if t, ok := s.Resolve(in); ok {
			r.logger.Debug("reference resolved", "document", doc.ID, "strategy", s.Name(), "reference", t)
			return t
		}
	}
	if !doc.Created.IsZero() {
		return doc.Created
	}
	return r.now()
}

// Explicit parses the directive-level reference without an anchor.
type Explicit struct {
	Parser dateparse.Parser
	Now    func() time.Time
}

func (Explicit) Name() string { return "explicit" }

func (e Explicit) Resolve(in Input) (time.Time, bool) {
	if in.Explicit == "" {
		return time.Time{}, false
	}
	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	return e.Parser.ParseStrict(in.Explicit, now())
}

// Property reads the reference from the document's metadata block, either by the
// exact configured key or by the first key (in stored order) matching the configured
// pattern. A matching key whose value does not parse ends the search: later keys are
// not considered.
type Property struct {
	Parser   dateparse.Parser
	Notifier Notifier
	Logger   *slog.Logger
}

func (Property) Name() string { return "property" }

func (p Property) Resolve(in Input) (time.Time, bool) {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	key := in.Settings.ReferenceKeyOrPattern
	value, found := p.lookup(in, logger)
	if !found {
		logger.Debug("reference property not found", "document", in.Document.ID, "key", key)
		return time.Time{}, false
	}

	text, ok := value.AsString()
	if !ok {
		logger.Debug("reference property is not a string", "document", in.Document.ID, "key", key)
		return time.Time{}, false
	}

	t, ok := p.Parser.ParseStrict(text, in.Document.Created)
	if !ok {
		logger.Debug("reference property is not a date", "document", in.Document.ID, "key", key, "value", text)
		return time.Time{}, false
	}
	return t, true
}

func (p Property) lookup(in Input, logger *slog.Logger) (core.Value, bool) {
	key := in.Settings.ReferenceKeyOrPattern
	if !in.Settings.UseReferencePattern {
		return in.Document.Metadata.Get(key)
	}

	re, err := regexp.Compile(key)
	if err != nil {
		logger.Warn("invalid reference pattern", "pattern", key, "error", err)
		if p.Notifier != nil {
			p.Notifier.Notify(fmt.Sprintf("Invalid reference pattern %q, using the file creation date.", key))
		}
		return core.Value{}, false
	}

	for _, prop := range in.Document.Metadata {
		if re.MatchString(prop.Key) {
			return prop.Value, true
		}
	}
	return core.Value{}, false
}

// Created falls back to the document's creation timestamp.
type Created struct{}

func (Created) Name() string { return "created" }

func (Created) Resolve(in Input) (time.Time, bool) {
	if in.Document.Created.IsZero() {
		return time.Time{}, false
	}
	return in.Document.Created, true
}
