package fs

import (
	"sync"
	"time"

	"github.com/aretw0/timeline/pkg/core"
)

// debouncer coalesces bursts of events per document ID. Only the last event of a
// burst is delivered, after the window elapses with no newer event for that ID.
type debouncer struct {
	window time.Duration

	mu      sync.Mutex
	gen     map[string]uint64
	stopped bool
	wg      sync.WaitGroup
}

func newDebouncer(window time.Duration) *debouncer {
	return &debouncer{
		window: window,
		gen:    make(map[string]uint64),
	}
}

func (d *debouncer) add(e core.Event, deliver func(core.Event)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}

	d.gen[e.ID]++
	g := d.gen[e.ID]
	d.wg.Add(1)
	time.AfterFunc(d.window, func() {
		defer d.wg.Done()

		d.mu.Lock()
		current := !d.stopped && d.gen[e.ID] == g
		if current {
			delete(d.gen, e.ID)
		}
		d.mu.Unlock()

		if current {
			deliver(e)
		}
	})
}

// stopAndWait rejects new events and waits for in-flight timers, up to timeout.
// It reports whether every timer finished.
func (d *debouncer) stopAndWait(timeout time.Duration) bool {
	d.mu.Lock()
	d.stopped = true
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return true
	case <-time.After(timeout):
		return false
	}
}
