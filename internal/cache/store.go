// Package cache holds remote content (products, categories, events, news)
// in memory for a bounded time after it was fetched.
package cache

import (
	"log/slog"
	"sync"
	"time"

	"github.com/heartmarshall/storefront-backend/internal/domain"
)

// DefaultKey is the sub-key used for whole-collection entries.
const DefaultKey = "all"

const (
	DefaultTTL         = 10 * time.Minute
	DefaultPrefetchTTL = 15 * time.Minute
)

type entry struct {
	data     any
	stamped  time.Time
	prefetch bool
}

// Store is a TTL cache keyed by (content type, sub-key). Entries are replaced
// wholesale on Set and are never merged. Concurrent Sets for the same key are
// not serialized: the last one to complete wins.
type Store struct {
	mu      sync.RWMutex
	entries map[domain.ContentType]map[string]entry

	ttl         time.Duration
	prefetchTTL time.Duration
	now         func() time.Time
	metrics     Metrics
	log         *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithTTL overrides the normal and prefetch TTLs.
func WithTTL(ttl, prefetchTTL time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
		s.prefetchTTL = prefetchTTL
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithMetrics sets the hit/miss recorder.
func WithMetrics(m Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

// New creates an empty Store.
func New(logger *slog.Logger, opts ...Option) *Store {
	s := &Store{
		entries:     make(map[domain.ContentType]map[string]entry),
		ttl:         DefaultTTL,
		prefetchTTL: DefaultPrefetchTTL,
		now:         time.Now,
		metrics:     NoopMetrics{},
		log:         logger.With("component", "content_cache"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the value for (typ, key) if present and unexpired.
// An empty key means DefaultKey.
func (s *Store) Get(typ domain.ContentType, key string) (any, bool) {
	key = normKey(key)

	s.mu.RLock()
	e, ok := s.entries[typ][key]
	s.mu.RUnlock()

	if !ok || !s.fresh(e) {
		s.metrics.Miss(typ)
		return nil, false
	}
	s.metrics.Hit(typ)
	return e.data, true
}

// Lookup is Get with a type assertion. A stored value of another type is
// reported as absent.
func Lookup[T any](s *Store, typ domain.ContentType, key string) (T, bool) {
	var zero T
	v, ok := s.Get(typ, key)
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	if !ok {
		return zero, false
	}
	return t, true
}

// SetOption configures a single Set call.
type SetOption func(*entry)

// Prefetched marks the entry as populated by a prefetch, which gives it the
// longer prefetch TTL.
func Prefetched() SetOption {
	return func(e *entry) { e.prefetch = true }
}

// Set stores data under (typ, key), overwriting any existing entry and
// stamping it with the current time.
func (s *Store) Set(typ domain.ContentType, key string, data any, opts ...SetOption) {
	e := entry{data: data, stamped: s.now()}
	for _, opt := range opts {
		opt(&e)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	byKey, ok := s.entries[typ]
	if !ok {
		byKey = make(map[string]entry)
		s.entries[typ] = byKey
	}
	byKey[normKey(key)] = e
}

// Clear removes every sub-key of the given types, or everything when called
// with no arguments.
func (s *Store) Clear(types ...domain.ContentType) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(types) == 0 {
		s.entries = make(map[domain.ContentType]map[string]entry)
		s.log.Debug("content cache cleared")
		return
	}
	for _, t := range types {
		delete(s.entries, t)
		s.log.Debug("content cache cleared", slog.String("type", t.String()))
	}
}

// IsPrefetchValid reports whether (typ, key) holds an unexpired entry that was
// populated by a prefetch.
func (s *Store) IsPrefetchValid(typ domain.ContentType, key string) bool {
	s.mu.RLock()
	e, ok := s.entries[typ][normKey(key)]
	s.mu.RUnlock()

	return ok && e.prefetch && s.fresh(e)
}

// Len returns the number of stored entries, expired ones included.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, byKey := range s.entries {
		n += len(byKey)
	}
	return n
}

func (s *Store) fresh(e entry) bool {
	ttl := s.ttl
	if e.prefetch {
		ttl = s.prefetchTTL
	}
	return s.now().Sub(e.stamped) < ttl
}

func normKey(key string) string {
	if key == "" {
		return DefaultKey
	}
	return key
}
