// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"sync"
	"time"
)

// Payload is the cached, requester-independent part of a result page.
type Payload struct {
	Records []Record
	Total   int
}

type cacheEntry struct {
	payload    Payload
	insertedAt time.Time
}

// Cache maps query signatures to result payloads for a fixed TTL.
//
// Expired entries are removed lazily: every [Cache.Get] first sweeps the whole map.
// There is no background timer and no request coalescing, so concurrent misses for
// the same signature may both reach the data source; the last [Cache.Put] wins.
//
// Cache is safe for concurrent use. Construct one per process with [NewCache] and
// release it with [Cache.Close].
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]cacheEntry
	closed  bool
}

// CacheOption customises a [Cache].
type CacheOption func(*Cache)

// WithClock replaces the wall clock used to stamp and expire entries.
func WithClock(now func() time.Time) CacheOption {
	return func(cache *Cache) {
		cache.now = now
	}
}

// NewCache constructs an empty cache whose entries live for ttl.
func NewCache(ttl time.Duration, options ...CacheOption) *Cache {
	cache := &Cache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
	for _, option := range options {
		option(cache)
	}
	return cache
}

// Get sweeps expired entries and then returns the payload stored under signature.
//
// An entry is expired once its age reaches the TTL. A closed cache always misses.
func (cache *Cache) Get(signature string) (Payload, bool) {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	if cache.closed {
		cacheMissesTotal.Inc()
		return Payload{}, false
	}

	cache.sweep()

	entry, found := cache.entries[signature]
	if !found {
		cacheMissesTotal.Inc()
		return Payload{}, false
	}

	cacheHitsTotal.Inc()
	return entry.payload, true
}

// Put stores payload under signature with the current time, replacing any previous entry.
// Put on a closed cache is a no-op.
func (cache *Cache) Put(signature string, payload Payload) {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	if cache.closed {
		return
	}

	cache.entries[signature] = cacheEntry{payload: payload, insertedAt: cache.now()}
	cacheEntries.Set(float64(len(cache.entries)))
}

// Len returns the number of stored entries, including expired ones not yet swept.
func (cache *Cache) Len() int {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	return len(cache.entries)
}

// Close drops every entry. Later calls to Get miss and calls to Put are ignored.
func (cache *Cache) Close() {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	cache.closed = true
	clear(cache.entries)
	cacheEntries.Set(0)
}

// sweep evicts every expired entry. The caller must hold mu.
func (cache *Cache) sweep() {
	now := cache.now()

	evicted := 0
	for signature, entry := range cache.entries {
		if !now.Before(entry.insertedAt.Add(cache.ttl)) {
			delete(cache.entries, signature)
			evicted++
		}
	}

	if evicted > 0 {
		cacheEvictionsTotal.Add(float64(evicted))
		cacheEntries.Set(float64(len(cache.entries)))
	}
}
