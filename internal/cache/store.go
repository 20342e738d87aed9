package cache

import (
	"sync"
	"time"
)

// Stats holds counters describing cache activity since construction.
type Stats struct {
	Hits        uint64 `json:"hits"`
	Misses      uint64 `json:"misses"`
	Expirations uint64 `json:"expirations"`
	Puts        uint64 `json:"puts"`
	Clears      uint64 `json:"clears"`
}

// HitRatio returns hits / (hits + misses), or 0 when nothing was read.
func (s Stats) HitRatio() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Option configures a Store.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces time.Now as the source of the current time.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// Store is an in-memory response cache with a fixed TTL.
// Safe for concurrent use.
type Store[V any] struct {
	ttl time.Duration
	now func() time.Time

	// mu guards entries and stats. Get mutates on expiry, so there is no read lock.
	mu      sync.Mutex
	entries map[string]Entry[V]
	stats   Stats
}

// New creates an empty store whose entries stay fresh for ttl.
// A non-positive ttl makes every entry stale as soon as the clock moves.
func New[V any](ttl time.Duration, opts ...Option) *Store[V] {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	return &Store[V]{
		ttl:     ttl,
		now:     o.now,
		entries: make(map[string]Entry[V]),
	}
}

// Get returns the value stored under key if it is still fresh.
// A stale entry is deleted and reported as a miss.
func (s *Store[V]) Get(key string) (V, bool) {
	var zero V

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		s.stats.Misses++
		return zero, false
	}

	if entry.IsExpired(s.now(), s.ttl) {
		delete(s.entries, key)
		s.stats.Expirations++
		s.stats.Misses++
		return zero, false
	}

	s.stats.Hits++
	return entry.Value, true
}

// Put stores value under key with the current time, replacing any previous
// entry for that key and restarting its freshness window.
func (s *Store[V]) Put(key string, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = Entry[V]{Value: value, StoredAt: s.now()}
	s.stats.Puts++
}

// Clear removes all entries.
func (s *Store[V]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(s.entries)
	s.stats.Clears++
}

// Len returns the number of stored entries, including stale ones not read yet.
func (s *Store[V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// TTL returns the freshness window.
func (s *Store[V]) TTL() time.Duration {
	return s.ttl
}

// Stats returns a snapshot of the activity counters.
func (s *Store[V]) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}
