package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/timeline/pkg/core"
	"github.com/aretw0/timeline/pkg/segment"
)

// ErrNotWatchable is returned by Watch when the repository emits no change events.
var ErrNotWatchable = errors.New("repository does not support watching")

// Update is the outcome of a rebuild triggered by a change.
// Result is nil when the document is gone or no longer eligible.
type Update struct {
	Event  core.Event
	Result *Result
	Err    error
}

func (u Update) String() string {
	switch {
	case u.Err != nil:
		return fmt.Sprintf("%s (error: %v)", u.Event, u.Err)
	case u.Result == nil:
		return fmt.Sprintf("%s (removed)", u.Event)
	default:
		return fmt.Sprintf("%s (%d entries)", u.Event, u.Result.Timeline.Len())
	}
}

// Watch builds the document once, then rebuilds it every time it changes, until
// ctx is done. Each rebuild is independent of the previous one; consumers replace
// what they display with the newest update.
func (s *Service) Watch(ctx context.Context, id string, block *segment.Block) (<-chan Update, error) {
	w, ok := s.repo.(core.Watchable)
	if !ok {
		return nil, ErrNotWatchable
	}

	first, err := s.Build(ctx, id, block)
	if first != nil {
		id = first.DocumentID
	} else {
		id = w.Canonical(id)
	}

	events, werr := w.Watch(ctx, id)
	if werr != nil {
		return nil, werr
	}

	out := make(chan Update, s.buffer)
	out <- Update{Event: core.Event{Type: core.EventModify, ID: id}, Result: first, Err: err}

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case e, ok := <-events:
				if !ok {
					return
				}
				if e.ID != id {
					continue
				}
				u := Update{Event: e}
				if e.Type != core.EventDelete {
					u.Result, u.Err = s.Build(ctx, id, block)
				}
				select {
				case out <- u:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
