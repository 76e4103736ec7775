// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// blockingStore holds every append until release is closed.
type blockingStore struct {
	*memoryRepository
	release chan struct{}
	started sync.Once
	entered chan struct{}
}

func newBlockingStore() *blockingStore {
	return &blockingStore{
		memoryRepository: newMemoryRepository(),
		release:          make(chan struct{}),
		entered:          make(chan struct{}),
	}
}

func (store *blockingStore) AppendQueryLog(ctx context.Context, entry LogEntry) error {
	store.started.Do(func() { close(store.entered) })
	<-store.release
	return store.memoryRepository.AppendQueryLog(ctx, entry)
}

func TestQueryLogger_CloseDrainsQueue(t *testing.T) {
	repository := newMemoryRepository()
	queryLog := NewQueryLogger(repository, 16, discardLogger())
	queryLog.Start()

	for _, text := range []string{"one", "two", "three"} {
		assert.True(t, queryLog.Dispatch(LogEntry{Query: text, Scope: scopeContent}))
	}

	require.NoError(t, queryLog.Close(context.Background()))

	entries := repository.entries()
	require.Len(t, entries, 3)
	for _, entry := range entries {
		assert.NotEmpty(t, entry.ID)
		assert.False(t, entry.CreatedAt.IsZero())
	}
}

func TestQueryLogger_CloseWithoutStartStillDrains(t *testing.T) {
	repository := newMemoryRepository()
	queryLog := NewQueryLogger(repository, 4, discardLogger())

	queryLog.Dispatch(LogEntry{Query: "pending"})
	require.NoError(t, queryLog.Close(context.Background()))

	assert.Len(t, repository.entries(), 1)
}

func TestQueryLogger_FullQueueDrops(t *testing.T) {
	store := newBlockingStore()
	queryLog := NewQueryLogger(store, 1, discardLogger())
	queryLog.Start()

	droppedBefore := testutil.ToFloat64(queryLogTotal.WithLabelValues(queryLogDropped))

	// The worker takes the first entry and blocks, the second fills the queue.
	require.True(t, queryLog.Dispatch(LogEntry{Query: "a"}))
	<-store.entered
	require.True(t, queryLog.Dispatch(LogEntry{Query: "b"}))

	assert.False(t, queryLog.Dispatch(LogEntry{Query: "c"}))
	assert.Equal(t, 1.0, testutil.ToFloat64(queryLogTotal.WithLabelValues(queryLogDropped))-droppedBefore)

	close(store.release)
	require.NoError(t, queryLog.Close(context.Background()))
	assert.Len(t, store.entries(), 2)
}

func TestQueryLogger_DispatchAfterClose(t *testing.T) {
	repository := newMemoryRepository()
	queryLog := NewQueryLogger(repository, 4, discardLogger())
	queryLog.Start()
	require.NoError(t, queryLog.Close(context.Background()))

	assert.False(t, queryLog.Dispatch(LogEntry{Query: "late"}))
	assert.Empty(t, repository.entries())
	assert.NoError(t, queryLog.Close(context.Background()), "second close")
}

func TestQueryLogger_CloseHonoursDeadline(t *testing.T) {
	store := newBlockingStore()
	queryLog := NewQueryLogger(store, 4, discardLogger())
	queryLog.Start()

	queryLog.Dispatch(LogEntry{Query: "stuck"})
	<-store.entered

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, queryLog.Close(ctx), context.DeadlineExceeded)

	close(store.release)
}

func TestQueryLogger_WriteFailureSwallowed(t *testing.T) {
	repository := newMemoryRepository()
	repository.appendErr = errors.New("disk full")
	queryLog := NewQueryLogger(repository, 4, discardLogger())
	queryLog.Start()

	failedBefore := testutil.ToFloat64(queryLogTotal.WithLabelValues(queryLogFailed))

	assert.True(t, queryLog.Dispatch(LogEntry{Query: "x"}))
	require.NoError(t, queryLog.Close(context.Background()))

	assert.Empty(t, repository.entries())
	assert.Equal(t, 1.0, testutil.ToFloat64(queryLogTotal.WithLabelValues(queryLogFailed))-failedBefore)
}

func TestQueryLogger_KeepsCallerTimestamp(t *testing.T) {
	repository := newMemoryRepository()
	queryLog := NewQueryLogger(repository, 4, discardLogger())
	queryLog.Start()

	queryLog.Dispatch(LogEntry{ID: "fixed", Query: "x", CreatedAt: fixtureTime})
	require.NoError(t, queryLog.Close(context.Background()))

	entries := repository.entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "fixed", entries[0].ID)
	assert.Equal(t, fixtureTime, entries[0].CreatedAt)
}
