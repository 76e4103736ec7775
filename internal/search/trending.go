// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/taibuivan/yomira-search/internal/platform/constants"
	"github.com/taibuivan/yomira-search/internal/platform/ctxutil"
)

// Window is the lookback period of a trending ranking.
type Window string

const (
	WindowDay   Window = "day"
	WindowWeek  Window = "week"
	WindowMonth Window = "month"
)

// Lookback returns the duration covered by w.
func (w Window) Lookback() (time.Duration, bool) {
	switch w {
	case WindowDay:
		return 24 * time.Hour, true
	case WindowWeek:
		return 7 * 24 * time.Hour, true
	case WindowMonth:
		return 30 * 24 * time.Hour, true
	}
	return 0, false
}

// TrendingQuery is one ranked entry of a trending list.
type TrendingQuery struct {
	Rank  int    `json:"rank"`
	Query string `json:"query"`
	Count int    `json:"count"`
}

// SnapshotStore memoizes computed rankings for a short time.
type SnapshotStore interface {
	Load(context context.Context, key string) ([]TrendingQuery, bool, error)
	Save(context context.Context, key string, ranking []TrendingQuery, ttl time.Duration) error
}

// TrendingAggregator ranks logged queries by frequency over a rolling window.
type TrendingAggregator struct {
	store       QueryLogStore
	snapshots   SnapshotStore
	snapshotTTL time.Duration
	now         func() time.Time
}

// NewTrendingAggregator constructs an aggregator over store.
// snapshots may be nil, in which case every call recomputes.
func NewTrendingAggregator(store QueryLogStore, snapshots SnapshotStore, snapshotTTL time.Duration) *TrendingAggregator {
	return &TrendingAggregator{
		store:       store,
		snapshots:   snapshots,
		snapshotTTL: snapshotTTL,
		now:         time.Now,
	}
}

/*
Trending returns the most frequent non-empty queries logged inside window.

Description: Counts are sorted descending with ties broken by query text, truncated
to limit and ranked 1..n by position. When a snapshot store is configured a fresh
ranking is reused; snapshot failures are logged and fall back to recomputation.

Parameters:
  - context: context.Context
  - window: Window (Must be valid)
  - limit: int (Already clamped by the caller)

Returns:
  - []TrendingQuery: Ranked entries, never nil
  - error: Data source failures
*/
func (aggregator *TrendingAggregator) Trending(context context.Context, window Window, limit int) ([]TrendingQuery, error) {
	lookback, ok := window.Lookback()
	if !ok {
		return nil, fmt.Errorf("search: unknown trending window %q", window)
	}

	logger := ctxutil.GetLogger(context)
	key := fmt.Sprintf("%s%s:%d", constants.RedisPrefixTrending, window, limit)

	// 1. Reuse a recent snapshot when one exists
	if aggregator.snapshots != nil {
		ranking, found, err := aggregator.snapshots.Load(context, key)
		if err != nil {
			logger.WarnContext(context, "trending_snapshot_load_failed", slog.String("key", key), slog.Any("error", err))
		} else if found {
			return ranking, nil
		}
	}

	// 2. Aggregate from the query log
	counts, err := aggregator.store.CountQueries(context, aggregator.now().Add(-lookback), limit)
	if err != nil {
		return nil, err
	}
	ranking := Rank(counts, limit)

	// 3. Memoize for subsequent callers
	if aggregator.snapshots != nil {
		if err := aggregator.snapshots.Save(context, key, ranking, aggregator.snapshotTTL); err != nil {
			logger.WarnContext(context, "trending_snapshot_save_failed", slog.String("key", key), slog.Any("error", err))
		}
	}

	return ranking, nil
}

// Rank orders counts by count descending then query ascending, drops blank
// queries, truncates to limit and assigns positional ranks starting at 1.
func Rank(counts []QueryCount, limit int) []TrendingQuery {
	sorted := slices.DeleteFunc(slices.Clone(counts), func(count QueryCount) bool {
		return strings.TrimSpace(count.Query) == ""
	})

	slices.SortFunc(sorted, func(a, b QueryCount) int {
		if result := cmp.Compare(b.Count, a.Count); result != 0 {
			return result
		}
		return strings.Compare(a.Query, b.Query)
	})

	sorted = capped(sorted, max(limit, 0))

	ranking := make([]TrendingQuery, len(sorted))
	for i, count := range sorted {
		ranking[i] = TrendingQuery{Rank: i + 1, Query: count.Query, Count: count.Count}
	}
	return ranking
}
