// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package search implements faceted catalogue search with a short-lived result cache.

A request flows through four stages:

  - Compile: optional filters become an ordered list of AND-ed [Predicate] values.
  - Resolve: the sort mode becomes a deterministic [SortOrder] ending in the record ID.
  - Cache: a canonical signature of the normalized [Query] keys an in-process [Cache].
  - Execute: on a miss the [Executor] asks the data source for one page plus a total.

Alongside the primary path the package maintains read models for autocomplete
([SuggestionEngine]) and trending queries ([TrendingAggregator]), and fans a single
text query out to content, users and lists ([Service.GlobalSearch]).
*/
package search

import (
	"math"
	"slices"
	"strings"
	"time"

	"github.com/taibuivan/yomira-search/pkg/pagination"
)

// # Domain Enums

// Status is the publication status of a catalogue record.
type Status string

const (
	StatusOngoing   Status = "ongoing"
	StatusCompleted Status = "completed"
	StatusHiatus    Status = "hiatus"
	StatusCancelled Status = "cancelled"
)

// Type is the format of a catalogue record.
type Type string

const (
	TypeManga  Type = "manga"
	TypeManhwa Type = "manhwa"
	TypeManhua Type = "manhua"
	TypeAnime  Type = "anime"
)

// SortMode selects the ranking strategy applied to a result page.
type SortMode string

const (
	SortRelevance    SortMode = "relevance"
	SortPopularity   SortMode = "popularity"
	SortRating       SortMode = "rating"
	SortLatest       SortMode = "latest"
	SortAlphabetical SortMode = "alphabetical"
	SortYear         SortMode = "year"
)

// IsValid reports whether m is a recognised [SortMode].
func (m SortMode) IsValid() bool {
	switch m {
	case
		SortRelevance,
		SortPopularity,
		SortRating,
		SortLatest,
		SortAlphabetical,
		SortYear:
		return true
	}
	return false
}

// # Entities

// Record is a catalogue entry as seen by search. It is read-only here.
type Record struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	AltTitle      string    `json:"alt_title,omitempty"`
	Author        string    `json:"author"`
	Artist        string    `json:"artist,omitempty"`
	Synopsis      string    `json:"synopsis,omitempty"`
	Genres        []string  `json:"genres"`
	Year          *int      `json:"year,omitempty"`
	Rating        float64   `json:"rating"`
	Status        Status    `json:"status"`
	Type          Type      `json:"type"`
	FavoriteCount int64     `json:"favorite_count"`
	ViewCount     int64     `json:"view_count"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Result is a [Record] annotated with the requester's favorite state.
type Result struct {
	Record
	IsFavorite bool `json:"is_favorite"`
}

// ResultPage is one page of content search results.
type ResultPage struct {
	Items  []Result        `json:"items"`
	Meta   pagination.Meta `json:"meta"`
	Cached bool            `json:"cached"`
}

// # Query Specification

// Query describes a content search. Zero values mean "not filtered".
//
// Year and Rating take precedence over their range counterparts when set.
// Requester identity is deliberately absent: it never influences which records match.
type Query struct {
	Text          string
	Genres        []string
	ExcludeGenres []string
	Type          Type
	Status        Status
	Year          *int
	YearFrom      *int
	YearTo        *int
	Rating        *float64
	RatingFrom    *float64
	RatingTo      *float64
	Author        string
	Sort          SortMode
	Page          int
	PageSize      int
}

// Normalize returns a canonical copy of q.
//
// Text fields are trimmed and genre sets are de-duplicated and sorted. Non-finite
// ratings are dropped, and an exact year or rating clears the matching range. An
// unknown sort mode becomes [SortRelevance] and pagination is clamped. The receiver
// is never modified.
func (q Query) Normalize() Query {
	normalized := q

	normalized.Text = strings.TrimSpace(q.Text)
	normalized.Author = strings.TrimSpace(q.Author)
	normalized.Type = Type(strings.ToLower(strings.TrimSpace(string(q.Type))))
	normalized.Status = Status(strings.ToLower(strings.TrimSpace(string(q.Status))))
	normalized.Genres = normalizeSet(q.Genres)
	normalized.ExcludeGenres = normalizeSet(q.ExcludeGenres)

	normalized.Rating = finite(q.Rating)
	normalized.RatingFrom = finite(q.RatingFrom)
	normalized.RatingTo = finite(q.RatingTo)

	if normalized.Year != nil {
		normalized.YearFrom, normalized.YearTo = nil, nil
	}
	if normalized.Rating != nil {
		normalized.RatingFrom, normalized.RatingTo = nil, nil
	}

	normalized.Sort = SortMode(strings.ToLower(strings.TrimSpace(string(q.Sort))))
	if !normalized.Sort.IsValid() {
		normalized.Sort = SortRelevance
	}

	params := pagination.Normalize(q.Page, q.PageSize)
	normalized.Page, normalized.PageSize = params.Page, params.Limit

	return normalized
}

// Params returns the pagination window of a normalized query.
func (q Query) Params() pagination.Params {
	return pagination.Params{Page: q.Page, Limit: q.PageSize}
}

// finite drops NaN and infinite bounds.
func finite(value *float64) *float64 {
	if value == nil || math.IsNaN(*value) || math.IsInf(*value, 0) {
		return nil
	}
	return value
}

// normalizeSet trims, de-duplicates and sorts values. Empty input yields nil.
func normalizeSet(values []string) []string {
	var set []string
	for _, value := range values {
		if clean := strings.TrimSpace(value); clean != "" {
			set = append(set, clean)
		}
	}
	if len(set) == 0 {
		return nil
	}

	slices.Sort(set)
	return slices.Compact(set)
}

// # Auxiliary Read Models

// LogEntry is one append-only record of an executed search, consumed by trending.
type LogEntry struct {
	ID          string
	Query       string
	Scope       string
	RequesterID string
	ResultCount int
	CreatedAt   time.Time
}

// QueryCount is the number of times a query text was logged inside a window.
type QueryCount struct {
	Query string
	Count int
}

// AuthorCount is an author name with the number of catalogue records credited to it.
type AuthorCount struct {
	Author string
	Works  int
}

// UserHit is a user account matched by the global search.
type UserHit struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

// ListHit is a public custom list matched by the global search.
type ListHit struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	OwnerID       string `json:"owner_id"`
	OwnerUsername string `json:"owner_username"`
	ItemCount     int    `json:"item_count"`
}
