package cache

import "time"

// Entry is a single cached value with the time it was stored.
type Entry[V any] struct {
	// Value is the cached payload. The cache never inspects it.
	Value V

	// StoredAt is the timestamp of the Put that created the entry.
	StoredAt time.Time
}

// Age returns how long ago the entry was stored, relative to now.
func (e Entry[V]) Age(now time.Time) time.Duration {
	return now.Sub(e.StoredAt)
}

// IsExpired reports whether the entry is older than ttl at now.
// An entry whose age equals ttl is still fresh.
func (e Entry[V]) IsExpired(now time.Time, ttl time.Duration) bool {
	return e.Age(now) > ttl
}

// TimeUntilExpiration returns the remaining freshness window.
// Returns 0 if already expired.
func (e Entry[V]) TimeUntilExpiration(now time.Time, ttl time.Duration) time.Duration {
	remaining := ttl - e.Age(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}
