package dateparse

import (
	"fmt"
	"slices"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/zeebo/xxh3"
)

const defaultCacheSize = 1024

type strictResult struct {
	t  time.Time
	ok bool
}

type cacheKey struct {
	text   xxh3.Uint128
	anchor int64
	loc    string
}

func newCacheKey(text string, anchor time.Time) cacheKey {
	return cacheKey{
		text:   xxh3.HashString128(text),
		anchor: anchor.UnixNano(),
		loc:    anchor.Location().String(),
	}
}

// Cached memoizes the results of another Parser. A watched document is rebuilt on
// every save while most of its segments are unchanged.
type Cached struct {
	next    Parser
	entries *lru.Cache[cacheKey, []Match]
	strict  *lru.Cache[cacheKey, strictResult]
}

// NewCached wraps next with an LRU cache holding up to size texts.
// A size of zero or less uses the default.
func NewCached(next Parser, size int) (*Cached, error) {
	if size <= 0 {
		size = defaultCacheSize
	}
	entries, err := lru.New[cacheKey, []Match](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create parse cache: %w", err)
	}
	strict, err := lru.New[cacheKey, strictResult](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create parse cache: %w", err)
	}
	return &Cached{next: next, entries: entries, strict: strict}, nil
}

// Parse implements Parser. Callers own the returned slice.
func (c *Cached) Parse(text string, anchor time.Time) []Match {
	key := newCacheKey(text, anchor)
	if m, ok := c.entries.Get(key); ok {
		return slices.Clone(m)
	}
	m := c.next.Parse(text, anchor)
	c.entries.Add(key, m)
	return slices.Clone(m)
}

// ParseStrict implements Parser.
func (c *Cached) ParseStrict(text string, anchor time.Time) (time.Time, bool) {
	key := newCacheKey(text, anchor)
	if r, ok := c.strict.Get(key); ok {
		return r.t, r.ok
	}
	t, ok := c.next.ParseStrict(text, anchor)
	c.strict.Add(key, strictResult{t: t, ok: ok})
	return t, ok
}

// Len returns the number of cached results.
func (c *Cached) Len() int {
	return c.entries.Len() + c.strict.Len()
}

var (
	_ Parser = (*Natural)(nil)
	_ Parser = (*Cached)(nil)
)
