// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"cmp"
	"strings"
)

// SortKey names an attribute a result page can be ordered by.
type SortKey string

const (
	KeyFavoriteCount SortKey = "favorite_count"
	KeyViewCount     SortKey = "view_count"
	KeyRating        SortKey = "rating"
	KeyUpdatedAt     SortKey = "updated_at"
	KeyTitle         SortKey = "title"
	KeyYear          SortKey = "year"
	KeyID            SortKey = "id"
)

// SortTerm is one comparison step. Records missing the key (only [KeyYear]) sort last.
type SortTerm struct {
	Key        SortKey
	Descending bool
}

// SortOrder is an ordered comparator sequence. Resolved orders always end with [KeyID].
type SortOrder []SortTerm

// ResolveSort maps a sort mode to its comparator sequence.
//
// Relevance depends on whether free text is present: with text, favorites dominate,
// otherwise raw views do. Unknown modes resolve as relevance. Every order ends with
// the record ID ascending so repeated calls paginate deterministically.
func ResolveSort(mode SortMode, hasText bool) SortOrder {
	var order SortOrder

	switch mode {
	case SortPopularity:
		order = SortOrder{{KeyFavoriteCount, true}, {KeyViewCount, true}}
	case SortRating:
		order = SortOrder{{KeyRating, true}, {KeyFavoriteCount, true}}
	case SortLatest:
		order = SortOrder{{KeyUpdatedAt, true}}
	case SortAlphabetical:
		order = SortOrder{{KeyTitle, false}}
	case SortYear:
		order = SortOrder{{KeyYear, true}}
	default:
		if hasText {
			order = SortOrder{{KeyFavoriteCount, true}, {KeyRating, true}}
		} else {
			order = SortOrder{{KeyViewCount, true}, {KeyRating, true}}
		}
	}

	return append(order, SortTerm{Key: KeyID})
}

// Compare orders a before b, returning a negative number, zero or a positive number.
// It is suitable for [slices.SortFunc].
func (order SortOrder) Compare(a, b Record) int {
	for _, term := range order {
		if result := term.compare(a, b); result != 0 {
			return result
		}
	}
	return 0
}

func (term SortTerm) compare(a, b Record) int {
	// Absent years stay at the end in either direction.
	if term.Key == KeyYear && (a.Year == nil || b.Year == nil) {
		switch {
		case a.Year == nil && b.Year == nil:
			return 0
		case a.Year == nil:
			return 1
		default:
			return -1
		}
	}

	var result int
	switch term.Key {
	case KeyFavoriteCount:
		result = cmp.Compare(a.FavoriteCount, b.FavoriteCount)
	case KeyViewCount:
		result = cmp.Compare(a.ViewCount, b.ViewCount)
	case KeyRating:
		result = cmp.Compare(a.Rating, b.Rating)
	case KeyUpdatedAt:
		result = a.UpdatedAt.Compare(b.UpdatedAt)
	case KeyTitle:
		result = strings.Compare(a.Title, b.Title)
	case KeyYear:
		result = cmp.Compare(*a.Year, *b.Year)
	case KeyID:
		result = strings.Compare(a.ID, b.ID)
	}

	if term.Descending {
		return -result
	}
	return result
}
