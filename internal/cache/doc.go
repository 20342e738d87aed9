// Package cache provides an in-memory TTL cache for analytics API responses.
//
// The cache de-duplicates identical outbound requests within a freshness window:
//   - Entries are keyed by a request fingerprint (endpoint plus canonical params)
//   - An entry is fresh while its age is less than or equal to the TTL
//   - Expired entries are purged lazily on the next Get for that key; there is
//     no background sweeper
//   - Clear drops everything, used by "force refresh"
//
// The store is memory-only and discarded on process exit. Callers own the
// fetch side: only successful responses are Put, so failures are always
// retried on the next request.
package cache
