// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"context"
	"time"
)

// # Data Source Contracts

// ContentSource runs compiled content queries.
type ContentSource interface {

	/*
		Query returns one page of records matching every predicate plus the total match count.

		Parameters:
		  - context: context.Context
		  - predicates: []Predicate (AND-ed; empty matches everything)
		  - order: SortOrder (Comparator sequence ending in the record ID)
		  - offset: int
		  - limit: int

		Returns:
		  - []Record: The requested window
		  - int: Total records matching the predicates
		  - error: Data source failures
	*/
	Query(context context.Context, predicates []Predicate, order SortOrder, offset, limit int) ([]Record, int, error)
}

// FavoriteSource reports which records a user has favorited.
type FavoriteSource interface {

	/*
		FavoriteState returns the subset of ids the requester has favorited.

		Parameters:
		  - context: context.Context
		  - requesterID: string
		  - ids: []string (Record IDs of a single result page)

		Returns:
		  - map[string]struct{}: Favorited IDs
		  - error: Lookup failures
	*/
	FavoriteState(context context.Context, requesterID string, ids []string) (map[string]struct{}, error)
}

// QueryLogStore persists and aggregates executed searches.
type QueryLogStore interface {

	// AppendQueryLog stores one entry. Callers treat failures as best-effort.
	AppendQueryLog(context context.Context, entry LogEntry) error

	/*
		CountQueries groups non-empty query texts logged at or after since.

		Parameters:
		  - context: context.Context
		  - since: time.Time (Inclusive cutoff)
		  - limit: int (Maximum number of groups to return)

		Returns:
		  - []QueryCount: Distinct query texts with their occurrence counts
		  - error: Aggregation failures
	*/
	CountQueries(context context.Context, since time.Time, limit int) ([]QueryCount, error)
}

// SuggestionSource answers autocomplete prefix lookups.
type SuggestionSource interface {

	// SuggestContent returns records whose title or author starts with prefix,
	// most favorited first.
	SuggestContent(context context.Context, prefix string, limit int) ([]Record, error)

	// SuggestAuthors returns authors starting with prefix grouped by work count, largest first.
	SuggestAuthors(context context.Context, prefix string, limit int) ([]AuthorCount, error)
}

// DirectorySource searches the non-content entity types of the global search.
type DirectorySource interface {

	// SearchUsers returns one page of active users matching text plus the total.
	SearchUsers(context context.Context, text string, offset, limit int) ([]UserHit, int, error)

	// SearchLists returns one page of public lists matching text plus the total.
	SearchLists(context context.Context, text string, offset, limit int) ([]ListHit, int, error)
}

// Repository is the complete data source consumed by [Service].
type Repository interface {
	ContentSource
	FavoriteSource
	QueryLogStore
	SuggestionSource
	DirectorySource
}
