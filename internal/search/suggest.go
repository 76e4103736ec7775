// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/taibuivan/yomira-search/internal/platform/constants"
	"github.com/taibuivan/yomira-search/pkg/slug"
)

// SuggestScope restricts which candidate sources autocomplete consults.
type SuggestScope string

const (
	SuggestAll     SuggestScope = "all"
	SuggestContent SuggestScope = "content"
	SuggestAuthor  SuggestScope = "author"
	SuggestGenre   SuggestScope = "genre"
)

// IsValid reports whether s is a recognised [SuggestScope].
func (s SuggestScope) IsValid() bool {
	switch s {
	case SuggestAll, SuggestContent, SuggestAuthor, SuggestGenre:
		return true
	}
	return false
}

// SuggestionKind identifies where a suggestion came from.
type SuggestionKind string

const (
	KindContent SuggestionKind = "content"
	KindAuthor  SuggestionKind = "author"
	KindGenre   SuggestionKind = "genre"
)

// Suggestion is one autocomplete candidate.
type Suggestion struct {
	Kind  SuggestionKind `json:"kind"`
	Text  string         `json:"text"`
	ID    string         `json:"id,omitempty"`
	Slug  string         `json:"slug,omitempty"`
	Count int            `json:"count,omitempty"`
}

// Genres is the fixed genre taxonomy offered by autocomplete.
var Genres = []string{
	"Acción",
	"Aventura",
	"Comedia",
	"Drama",
	"Fantasía",
	"Romance",
	"Terror",
	"Misterio",
	"Ciencia ficción",
	"Recuentos de la vida",
	"Deportes",
	"Sobrenatural",
	"Psicológico",
	"Histórico",
	"Mecha",
	"Música",
	"Escolar",
	"Isekai",
	"Artes marciales",
	"Harem",
	"Thriller",
	"Tragedia",
}

// SuggestionEngine merges content, author and genre candidates for a prefix.
type SuggestionEngine struct {
	source SuggestionSource
	genres []string
}

// NewSuggestionEngine constructs an engine over source and the default [Genres].
func NewSuggestionEngine(source SuggestionSource) *SuggestionEngine {
	return &SuggestionEngine{source: source, genres: Genres}
}

/*
Suggest returns up to ten autocomplete candidates for prefix.

Description: Content matches (title or author starting with the prefix, max 5)
come first, then grouped authors (max 3), then taxonomy genres containing the
prefix regardless of accents or case (max 3). A blank prefix returns an empty
list without touching the data source.

Parameters:
  - context: context.Context
  - prefix: string
  - scope: SuggestScope (Must be valid; the service validates it)

Returns:
  - []Suggestion: Merged candidates, never nil
  - error: Data source failures
*/
func (engine *SuggestionEngine) Suggest(context context.Context, prefix string, scope SuggestScope) ([]Suggestion, error) {
	prefix = strings.TrimSpace(prefix)
	suggestions := []Suggestion{}

	if utf8.RuneCountInString(prefix) < 1 {
		return suggestions, nil
	}

	// 1. Content: title or author starts with prefix
	if scope == SuggestAll || scope == SuggestContent {
		records, err := engine.source.SuggestContent(context, prefix, constants.SuggestionContentLimit)
		if err != nil {
			return nil, err
		}
		for _, record := range capped(records, constants.SuggestionContentLimit) {
			suggestions = append(suggestions, Suggestion{Kind: KindContent, Text: record.Title, ID: record.ID})
		}
	}

	// 2. Authors grouped by number of works
	if scope == SuggestAll || scope == SuggestAuthor {
		authors, err := engine.source.SuggestAuthors(context, prefix, constants.SuggestionAuthorLimit)
		if err != nil {
			return nil, err
		}
		for _, author := range capped(authors, constants.SuggestionAuthorLimit) {
			suggestions = append(suggestions, Suggestion{Kind: KindAuthor, Text: author.Author, Count: author.Works})
		}
	}

	// 3. Static taxonomy, no data source involved
	if scope == SuggestAll || scope == SuggestGenre {
		for _, genre := range engine.matchGenres(prefix, constants.SuggestionGenreLimit) {
			suggestions = append(suggestions, Suggestion{Kind: KindGenre, Text: genre, Slug: slug.From(genre)})
		}
	}

	return capped(suggestions, constants.SuggestionLimit), nil
}

// matchGenres returns taxonomy entries containing prefix, ignoring accents and case.
func (engine *SuggestionEngine) matchGenres(prefix string, limit int) []string {
	needle := slug.Key(prefix)

	var matches []string
	for _, genre := range engine.genres {
		if strings.Contains(slug.Key(genre), needle) {
			matches = append(matches, genre)
			if len(matches) == limit {
				break
			}
		}
	}
	return matches
}

func capped[T any](items []T, limit int) []T {
	if len(items) > limit {
		return items[:limit]
	}
	return items
}
