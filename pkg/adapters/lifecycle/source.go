// Package lifecycle exposes timeline rebuilds as a lifecycle event source.
package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/timeline/pkg/pipeline"
	"github.com/aretw0/timeline/pkg/segment"
)

// Watcher rebuilds a note whenever it changes. pipeline.Service implements it.
type Watcher interface {
	Watch(ctx context.Context, id string, block *segment.Block) (<-chan pipeline.Update, error)
}

type watchSource struct {
	watcher Watcher
	id      string
	block   *segment.Block
	out     chan lifecycle.Event
}

// NewSource creates a lifecycle.Source that watches one note and emits each
// rebuild as a pipeline.Update. A consumer that falls behind only receives the
// newest rebuild, since every update replaces the previous one.
func NewSource(w Watcher, id string, block *segment.Block) lifecycle.Source {
	return &watchSource{
		watcher: w,
		id:      id,
		block:   block,
		out:     make(chan lifecycle.Event),
	}
}

func (s *watchSource) Events() <-chan lifecycle.Event {
	return s.out
}

// Start begins watching. It fails when the note's repository cannot be watched.
func (s *watchSource) Start(ctx context.Context) error {
	updates, err := s.watcher.Watch(ctx, s.id, s.block)
	if err != nil {
		return err
	}

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		var pending *pipeline.Update
		for {
			// out stays nil, and so never ready, until there is something to send.
			var out chan lifecycle.Event
			var next lifecycle.Event
			if pending != nil {
				out, next = s.out, *pending
			}

			select {
			case <-ctx.Done():
				return nil
			case u, ok := <-updates:
				if !ok {
					if pending != nil {
						select {
						case s.out <- *pending:
						case <-ctx.Done():
						}
					}
					return nil
				}
				pending = &u
			case out <- next:
				pending = nil
			}
		}
	})
	return nil
}
