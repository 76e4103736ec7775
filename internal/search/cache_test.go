// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a manually advanced clock shared by cache tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: fixtureTime}
}

func (clock *fakeClock) Now() time.Time {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return clock.now
}

func (clock *fakeClock) Advance(d time.Duration) {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	clock.now = clock.now.Add(d)
}

func TestCache_PutGet(t *testing.T) {
	cache := NewCache(5*time.Minute, WithClock(newFakeClock().Now))
	defer cache.Close()

	payload := Payload{Records: catalogue()[:2], Total: 7}
	cache.Put("k", payload)

	got, found := cache.Get("k")
	require.True(t, found)
	assert.Equal(t, payload, got)

	_, found = cache.Get("other")
	assert.False(t, found)
}

func TestCache_ExpiresAtTTL(t *testing.T) {
	clock := newFakeClock()
	cache := NewCache(5*time.Minute, WithClock(clock.Now))
	defer cache.Close()

	cache.Put("k", Payload{Records: catalogue()[:1], Total: 1})

	clock.Advance(5*time.Minute - time.Nanosecond)
	_, found := cache.Get("k")
	assert.True(t, found, "just before the TTL")

	clock.Advance(time.Nanosecond)
	_, found = cache.Get("k")
	assert.False(t, found, "age equal to the TTL is expired")
}

func TestCache_GetSweepsEveryExpiredEntry(t *testing.T) {
	clock := newFakeClock()
	cache := NewCache(time.Minute, WithClock(clock.Now))
	defer cache.Close()

	evictionsBefore := testutil.ToFloat64(cacheEvictionsTotal)

	for i := range 3 {
		cache.Put(fmt.Sprintf("old-%d", i), Payload{Total: i})
	}
	clock.Advance(45 * time.Second)
	cache.Put("young", Payload{Total: 9})
	require.Equal(t, 4, cache.Len())

	clock.Advance(30 * time.Second)
	_, found := cache.Get("unrelated")
	assert.False(t, found)

	assert.Equal(t, 1, cache.Len())
	assert.Equal(t, 3.0, testutil.ToFloat64(cacheEvictionsTotal)-evictionsBefore)

	_, found = cache.Get("young")
	assert.True(t, found)
}

func TestCache_PutOverwritesAndRestamps(t *testing.T) {
	clock := newFakeClock()
	cache := NewCache(time.Minute, WithClock(clock.Now))
	defer cache.Close()

	cache.Put("k", Payload{Total: 1})
	clock.Advance(50 * time.Second)
	cache.Put("k", Payload{Total: 2})
	clock.Advance(50 * time.Second)

	got, found := cache.Get("k")
	require.True(t, found)
	assert.Equal(t, 2, got.Total)
}

func TestCache_Close(t *testing.T) {
	cache := NewCache(time.Minute)
	cache.Put("k", Payload{Total: 1})

	cache.Close()
	assert.Zero(t, cache.Len())

	_, found := cache.Get("k")
	assert.False(t, found)

	cache.Put("k", Payload{Total: 1})
	assert.Zero(t, cache.Len())

	assert.NotPanics(t, cache.Close)
}

func TestCache_HitMissMetrics(t *testing.T) {
	cache := NewCache(time.Minute)
	defer cache.Close()

	hitsBefore := testutil.ToFloat64(cacheHitsTotal)
	missesBefore := testutil.ToFloat64(cacheMissesTotal)

	cache.Get("k")
	cache.Put("k", Payload{Total: 1})
	cache.Get("k")
	cache.Get("k")

	assert.Equal(t, 2.0, testutil.ToFloat64(cacheHitsTotal)-hitsBefore)
	assert.Equal(t, 1.0, testutil.ToFloat64(cacheMissesTotal)-missesBefore)
}

func TestCache_ConcurrentAccess(t *testing.T) {
	cache := NewCache(time.Minute)
	defer cache.Close()

	var wg sync.WaitGroup
	for worker := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 200 {
				key := fmt.Sprintf("k-%d", (worker+i)%10)
				cache.Put(key, Payload{Total: i})
				if payload, found := cache.Get(key); found {
					assert.GreaterOrEqual(t, payload.Total, 0)
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, cache.Len())
}
