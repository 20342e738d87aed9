// Package analytics is the data-access layer for the link analytics backend.
//
// Every request is fingerprinted and looked up in the response cache first.
// A hit returns without network I/O. A miss performs the HTTP GET and stores
// the body only after it decoded successfully, so failed requests are never
// cached and are retried on the next call.
//
// Concurrent misses for the same request each fetch and the last response
// to land wins the cache entry, unless coalescing is enabled, in which case
// a singleflight group shares one fetch between them.
package analytics
