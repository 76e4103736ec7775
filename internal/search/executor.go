// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"context"
	"log/slog"

	"github.com/taibuivan/yomira-search/internal/platform/ctxutil"
	"github.com/taibuivan/yomira-search/pkg/pagination"
)

// Executor runs compiled queries against the data source and annotates the
// returned rows with per-requester favorite state.
type Executor struct {
	content   ContentSource
	favorites FavoriteSource
}

// NewExecutor constructs an [Executor].
func NewExecutor(content ContentSource, favorites FavoriteSource) *Executor {
	return &Executor{content: content, favorites: favorites}
}

/*
Fetch asks the data source for one page of matching records and the total count.

Parameters:
  - context: context.Context
  - predicates: []Predicate
  - order: SortOrder
  - params: pagination.Params (Offset derived as (page-1)*limit)

Returns:
  - Payload: Records of the page and the total match count
  - error: Data source failure, never retried
*/
func (executor *Executor) Fetch(context context.Context, predicates []Predicate, order SortOrder, params pagination.Params) (Payload, error) {
	records, total, err := executor.content.Query(context, predicates, order, params.Offset(), params.Limit)
	if err != nil {
		return Payload{}, err
	}
	return Payload{Records: records, Total: total}, nil
}

/*
Enrich wraps records into results carrying the requester's favorite state.

Anonymous requests skip the lookup. A failed lookup is logged and degrades to
"not favorited" for every row; it never fails the request.

Parameters:
  - context: context.Context
  - records: []Record (Not modified)
  - requesterID: string (Empty for anonymous callers)

Returns:
  - []Result: One result per record, in the same order
*/
func (executor *Executor) Enrich(context context.Context, records []Record, requesterID string) []Result {
	results := make([]Result, len(records))
	for i, record := range records {
		results[i] = Result{Record: record}
	}

	if requesterID == "" || len(records) == 0 {
		return results
	}

	ids := make([]string, len(records))
	for i, record := range records {
		ids[i] = record.ID
	}

	favorited, err := executor.favorites.FavoriteState(context, requesterID, ids)
	if err != nil {
		enrichmentFailuresTotal.Inc()
		ctxutil.GetLogger(context).WarnContext(context, "search_enrichment_failed",
			slog.String("requester_id", requesterID),
			slog.Int("records", len(ids)),
			slog.Any("error", err),
		)
		return results
	}

	for i := range results {
		_, results[i].IsFavorite = favorited[results[i].ID]
	}
	return results
}

// Execute fetches one page and enriches it for requesterID.
func (executor *Executor) Execute(context context.Context, predicates []Predicate, order SortOrder, params pagination.Params, requesterID string) ([]Result, int, error) {
	payload, err := executor.Fetch(context, predicates, order, params)
	if err != nil {
		return nil, 0, err
	}
	return executor.Enrich(context, payload.Records, requesterID), payload.Total, nil
}
