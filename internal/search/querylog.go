// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/taibuivan/yomira-search/internal/platform/constants"
	"github.com/taibuivan/yomira-search/pkg/uuid"
)

// QueryLogger appends [LogEntry] values off the request path.
//
// Entries go through a bounded queue drained by a single worker goroutine. When the
// queue is full the entry is dropped and counted; a request never waits on logging.
// Write failures are logged and swallowed.
type QueryLogger struct {
	store  QueryLogStore
	logger *slog.Logger
	now    func() time.Time

	mu     sync.RWMutex
	queue  chan LogEntry
	closed bool

	startOnce sync.Once
	done      chan struct{}
}

// NewQueryLogger constructs a logger whose queue holds up to queueSize pending entries.
// Call [QueryLogger.Start] before dispatching and [QueryLogger.Close] at shutdown.
func NewQueryLogger(store QueryLogStore, queueSize int, logger *slog.Logger) *QueryLogger {
	if queueSize < 1 {
		queueSize = 1
	}
	return &QueryLogger{
		store:  store,
		logger: logger,
		now:    time.Now,
		queue:  make(chan LogEntry, queueSize),
		done:   make(chan struct{}),
	}
}

// Start launches the worker. Calling it more than once has no effect.
func (queryLog *QueryLogger) Start() {
	queryLog.startOnce.Do(func() {
		go queryLog.run()
	})
}

/*
Dispatch enqueues entry without blocking.

Missing IDs and timestamps are filled in here so the stored time reflects the
search, not the write.

Parameters:
  - entry: LogEntry

Returns:
  - bool: false when the entry was dropped (queue full or logger closed)
*/
func (queryLog *QueryLogger) Dispatch(entry LogEntry) bool {
	if entry.ID == "" {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = queryLog.now().UTC()
	}

	queryLog.mu.RLock()
	defer queryLog.mu.RUnlock()

	if queryLog.closed {
		queryLogTotal.WithLabelValues(queryLogDropped).Inc()
		return false
	}

	select {
	case queryLog.queue <- entry:
		return true
	default:
		queryLogTotal.WithLabelValues(queryLogDropped).Inc()
		queryLog.logger.Warn("search_querylog_dropped",
			slog.String("scope", entry.Scope),
			slog.Int("queue_size", cap(queryLog.queue)),
		)
		return false
	}
}

// Close stops accepting entries and waits until the queue is drained or ctx ends.
// A worker that was never started is started here so pending entries still get written.
func (queryLog *QueryLogger) Close(ctx context.Context) error {
	queryLog.mu.Lock()
	if queryLog.closed {
		queryLog.mu.Unlock()
		return nil
	}
	queryLog.closed = true
	close(queryLog.queue)
	queryLog.mu.Unlock()

	queryLog.Start()

	select {
	case <-queryLog.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (queryLog *QueryLogger) run() {
	defer close(queryLog.done)

	for entry := range queryLog.queue {
		queryLog.write(entry)
	}
}

func (queryLog *QueryLogger) write(entry LogEntry) {
	ctx, cancel := context.WithTimeout(context.Background(), constants.QueryLogWriteTimeout)
	defer cancel()

	if err := queryLog.store.AppendQueryLog(ctx, entry); err != nil {
		queryLogTotal.WithLabelValues(queryLogFailed).Inc()
		queryLog.logger.Warn("search_querylog_write_failed",
			slog.String("entry_id", entry.ID),
			slog.Any("error", err),
		)
		return
	}

	queryLogTotal.WithLabelValues(queryLogWritten).Inc()
}
