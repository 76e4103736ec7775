// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/yomira-search/internal/platform/constants"
	"github.com/taibuivan/yomira-search/internal/platform/ctxutil"
	"github.com/taibuivan/yomira-search/internal/platform/validate"
	"github.com/taibuivan/yomira-search/pkg/pagination"
)

// Query log scope recorded for plain content searches.
const scopeContent = "content"

// Request field names used in validation details.
const (
	fieldQuery  = "q"
	fieldScope  = "scope"
	fieldWindow = "window"
)

// # Service Layer

// Service is the entry point for every search operation.
type Service struct {
	cache       *Cache
	executor    *Executor
	suggestions *SuggestionEngine
	trending    *TrendingAggregator
	directory   DirectorySource
	queryLog    *QueryLogger
}

// NewService wires a [Service] around its collaborators.
//
// The cache and query logger are owned by the caller, which must close them at shutdown.
func NewService(repository Repository, cache *Cache, queryLog *QueryLogger, trending *TrendingAggregator) *Service {
	return &Service{
		cache:       cache,
		executor:    NewExecutor(repository, repository),
		suggestions: NewSuggestionEngine(repository),
		trending:    trending,
		directory:   repository,
		queryLog:    queryLog,
	}
}

// # Content Search

/*
Search returns one page of catalogue records matching query.

Description: The query is normalized and compiled, and its canonical signature is
looked up in the cache. On a miss the executor queries the data source and
non-empty pages are cached. Favorite state is applied afterwards for the requester,
so cached pages never carry per-user data. One query log entry is dispatched
without waiting.

Parameters:
  - context: context.Context
  - query: Query (Raw request values)
  - requesterID: string (Empty for anonymous callers)

Returns:
  - *ResultPage: Records, pagination metadata and the cached flag
  - error: VALIDATION_ERROR for overlong text, or data source failures
*/
func (service *Service) Search(context context.Context, query Query, requesterID string) (page *ResultPage, err error) {
	defer func(startTime time.Time) { recordRequest("search", startTime, err) }(time.Now())

	query = query.Normalize()

	validator := &validate.Validator{}
	validator.MaxLen(fieldQuery, query.Text, constants.MaxQueryLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	page, err = service.searchContent(context, query, requesterID)
	if err != nil {
		return nil, err
	}

	service.queryLog.Dispatch(LogEntry{
		Query:       query.Text,
		Scope:       scopeContent,
		RequesterID: requesterID,
		ResultCount: page.Meta.Total,
	})

	return page, nil
}

// searchContent runs the cached content path for a normalized query without logging it.
func (service *Service) searchContent(context context.Context, query Query, requesterID string) (*ResultPage, error) {

	// 1. Compile the canonical request
	predicates := Compile(query)
	order := ResolveSort(query.Sort, query.Text != "")
	signature := Signature(query)

	// 2. Serve from cache, or fetch and remember non-empty pages
	payload, cached := service.cache.Get(signature)
	if !cached {
		fetched, err := service.executor.Fetch(context, predicates, order, query.Params())
		if err != nil {
			return nil, err
		}

		payload = fetched
		if len(payload.Records) > 0 {
			service.cache.Put(signature, payload)
		}
	}

	ctxutil.GetLogger(context).DebugContext(context, "search_cache_lookup",
		slog.String("signature", signature),
		slog.Bool("hit", cached),
		slog.Int("total", payload.Total),
	)

	// 3. Apply per-requester state
	return &ResultPage{
		Items:  service.executor.Enrich(context, payload.Records, requesterID),
		Meta:   pagination.NewMeta(query.Page, query.PageSize, payload.Total),
		Cached: cached,
	}, nil
}

// # Read Models

/*
Suggest returns autocomplete candidates for prefix.

Parameters:
  - context: context.Context
  - prefix: string
  - scope: string (all, content, author, genre; empty means all)

Returns:
  - []Suggestion: At most ten candidates
  - error: VALIDATION_ERROR for an unknown scope, or data source failures
*/
func (service *Service) Suggest(context context.Context, prefix, scope string) (suggestions []Suggestion, err error) {
	defer func(startTime time.Time) { recordRequest("suggest", startTime, err) }(time.Now())

	if scope == "" {
		scope = string(SuggestAll)
	}

	validator := &validate.Validator{}
	validator.OneOf(fieldScope, scope,
		string(SuggestAll),
		string(SuggestContent),
		string(SuggestAuthor),
		string(SuggestGenre),
	)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	return service.suggestions.Suggest(context, prefix, SuggestScope(scope))
}

/*
Trending returns the most searched queries of a rolling window.

Parameters:
  - context: context.Context
  - window: string (day, week, month; empty means week)
  - limit: int (Non-positive means the default; values above the maximum are clamped)

Returns:
  - []TrendingQuery: Ranked queries
  - error: VALIDATION_ERROR for an unknown window, or data source failures
*/
func (service *Service) Trending(context context.Context, window string, limit int) (ranking []TrendingQuery, err error) {
	defer func(startTime time.Time) { recordRequest("trending", startTime, err) }(time.Now())

	if window == "" {
		window = string(WindowWeek)
	}

	validator := &validate.Validator{}
	validator.OneOf(fieldWindow, window, string(WindowDay), string(WindowWeek), string(WindowMonth))
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = constants.TrendingDefaultLimit
	}
	limit = min(limit, constants.TrendingMaxLimit)

	return service.trending.Trending(context, Window(window), limit)
}
