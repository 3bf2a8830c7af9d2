// Package pipeline runs timeline builds against a document store.
//
// A build reads one document snapshot and one settings snapshot, then:
// extracts directives and resolves the reference date once, segments the body,
// dates each segment and groups the dated events. Builds share no mutable state,
// so concurrent builds need no coordination.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/timeline/pkg/annotate"
	"github.com/aretw0/timeline/pkg/core"
	"github.com/aretw0/timeline/pkg/dateparse"
	"github.com/aretw0/timeline/pkg/reference"
	"github.com/aretw0/timeline/pkg/segment"
	"github.com/aretw0/timeline/pkg/timeline"
)

// Source says where the entries of a build came from.
type Source string

const (
	// SourceDocument means the document body (minus metadata and directive block).
	SourceDocument Source = "document"
	// SourceBlock means the directive block body itself, which held no directives.
	SourceBlock Source = "block"
)

// Result is the output of one build.
type Result struct {
	DocumentID string              `json:"document"`
	Reference  time.Time           `json:"reference"`
	Order      core.SortOrder      `json:"order"`
	Source     Source              `json:"source"`
	Directives annotate.Directives `json:"directives,omitempty"`
	Timeline   timeline.Grouped    `json:"timeline"`
}

// Service handles timeline builds for documents of a repository.
type Service struct {
	repo     core.Repository
	parser   dateparse.Parser
	resolver *reference.Resolver
	logger   *slog.Logger
	buffer   int

	mu       sync.RWMutex
	settings core.Settings
	builds   uint64
}

// NewService creates a new Service.
func NewService(repo core.Repository, parser dateparse.Parser, settings core.Settings, opts ...Option) *Service {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	resolverOpts := []reference.Option{reference.WithLogger(o.logger)}
	if o.clock != nil {
		resolverOpts = append(resolverOpts, reference.WithClock(o.clock))
	}

	return &Service{
		repo:     repo,
		parser:   parser,
		resolver: reference.New(parser, o.notifier, resolverOpts...),
		logger:   o.logger,
		buffer:   o.eventBuffer,
		settings: settings,
	}
}

// Repository returns the document store the service reads from.
func (s *Service) Repository() core.Repository {
	return s.repo
}

// Settings returns the current settings snapshot.
func (s *Service) Settings() core.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// SetSettings replaces the settings used by subsequent builds.
func (s *Service) SetSettings(settings core.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
}

// Build builds the timeline of a document. When block is nil the first timeline
// block of the document, if any, is used.
//
// Build returns (nil, nil) when there is no eligible document: nothing to do is not
// an error.
func (s *Service) Build(ctx context.Context, id string, block *segment.Block) (*Result, error) {
	return s.BuildWith(ctx, id, block, nil)
}

// BuildWith is Build with directives that take precedence over the ones found in
// the block. Overrides never turn a literal block back into directives.
func (s *Service) BuildWith(ctx context.Context, id string, block *segment.Block, overrides annotate.Directives) (*Result, error) {
	doc, ok, err := s.document(ctx, id)
	if err != nil || !ok {
		return nil, err
	}
	settings := s.Settings()

	if block == nil {
		if b, found := segment.FindBlock(doc.Content, segment.Language); found {
			block = &b
		}
	}

	res := &Result{DocumentID: doc.ID, Source: SourceDocument, Order: settings.DefaultSortOrder}

	content, offset, directiveSource := doc.Content, doc.BodyOffset, ""
	if block != nil {
		directiveSource = block.Source()
		if strings.TrimSpace(block.Body) != "" {
			res.Directives = annotate.ExtractDirectives(block.Body)
			if !res.Directives.Recognized() {
				// A block without directives is the timeline content itself.
				res.Source = SourceBlock
				res.Directives = nil
				content, offset, directiveSource = block.Body, 0, ""
			}
		}
	}
	if len(overrides) > 0 {
		merged := make(annotate.Directives, len(res.Directives)+len(overrides))
		for k, v := range res.Directives {
			merged[k] = v
		}
		for k, v := range overrides {
			merged[k] = v
		}
		res.Directives = merged
	}

	if order, ok := res.Directives.Sort(); ok {
		res.Order = order
	}
	explicit, _ := res.Directives.Reference()
	res.Reference = s.resolver.Resolve(doc, settings, explicit)

	segments := segment.Split(content, offset, directiveSource, settings.Delimiter)
	events := segment.Assign(segments, res.Reference, s.parser)
	res.Timeline = timeline.Group(events, res.Order)

	s.mu.Lock()
	s.builds++
	s.mu.Unlock()

	s.logger.Debug("timeline built",
		"document", doc.ID,
		"source", res.Source,
		"segments", len(segments),
		"events", len(events),
		"order", res.Order,
	)
	return res, nil
}

// DateList is every date mentioned in a document.
type DateList struct {
	DocumentID string            `json:"document"`
	Reference  time.Time         `json:"reference"`
	Dates      []dateparse.Match `json:"dates"`
}

// Dates lists every date mentioned anywhere in the document, interpreted against
// its reference date. It returns (nil, nil) when there is no eligible document.
func (s *Service) Dates(ctx context.Context, id string) (*DateList, error) {
	doc, ok, err := s.document(ctx, id)
	if err != nil || !ok {
		return nil, err
	}
	ref := s.resolver.Resolve(doc, s.Settings(), "")
	return &DateList{
		DocumentID: doc.ID,
		Reference:  ref,
		Dates:      s.parser.Parse(doc.Content, ref),
	}, nil
}

func (s *Service) document(ctx context.Context, id string) (core.Document, bool, error) {
	if id == "" {
		s.logger.Debug("no document to build")
		return core.Document{}, false, nil
	}
	doc, err := s.repo.Get(ctx, id)
	if errors.Is(err, core.ErrNotFound) || errors.Is(err, core.ErrUnsupportedDocument) {
		s.logger.Debug("no eligible document", "document", id, "reason", err)
		return core.Document{}, false, nil
	}
	if err != nil {
		return core.Document{}, false, fmt.Errorf("failed to read document %s: %w", id, err)
	}
	return doc, true, nil
}
