// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(suggestions []Suggestion) []SuggestionKind {
	var result []SuggestionKind
	for _, suggestion := range suggestions {
		result = append(result, suggestion.Kind)
	}
	return result
}

func TestSuggest_BlankPrefix(t *testing.T) {
	repository := newMemoryRepository(catalogue()...)
	engine := NewSuggestionEngine(repository)

	for _, prefix := range []string{"", "   "} {
		suggestions, err := engine.Suggest(context.Background(), prefix, SuggestAll)
		require.NoError(t, err)
		assert.NotNil(t, suggestions)
		assert.Empty(t, suggestions)
	}
	assert.Zero(t, repository.suggestCalls)
}

func TestSuggest_MergesInOrder(t *testing.T) {
	records := catalogue()
	records = append(records, Record{ID: "c09", Title: "Monster Musume", Author: "Okayado", FavoriteCount: 10})
	engine := NewSuggestionEngine(newMemoryRepository(records...))

	suggestions, err := engine.Suggest(context.Background(), "mo", SuggestAll)
	require.NoError(t, err)

	// Titles "Monster", "Monster Musume"; author "Mo Xiang Tong Xiu"; no genre contains "mo".
	require.Len(t, suggestions, 4)
	assert.Equal(t, Suggestion{Kind: KindContent, Text: "Monster", ID: "c04"}, suggestions[0])
	assert.Equal(t, "Tian Guan Ci Fu", suggestions[1].Text, "matched by author")
	assert.Equal(t, "Monster Musume", suggestions[2].Text)
	assert.Equal(t, Suggestion{Kind: KindAuthor, Text: "Mo Xiang Tong Xiu", Count: 1}, suggestions[3])
}

func TestSuggest_CapsAtTen(t *testing.T) {
	var records []Record
	for i := range 8 {
		records = append(records, Record{ID: fmt.Sprintf("r%d", i), Title: fmt.Sprintf("Dra %d", i), Author: fmt.Sprintf("Dra Author %d", i)})
	}
	engine := NewSuggestionEngine(newMemoryRepository(records...))

	suggestions, err := engine.Suggest(context.Background(), "dra", SuggestAll)
	require.NoError(t, err)

	// 5 content + 3 authors + "Drama" = 9; caps per source hold.
	assert.Equal(t, []SuggestionKind{
		KindContent, KindContent, KindContent, KindContent, KindContent,
		KindAuthor, KindAuthor, KindAuthor,
		KindGenre,
	}, kinds(suggestions))
	assert.LessOrEqual(t, len(suggestions), 10)
}

func TestSuggest_GenresIgnoreAccents(t *testing.T) {
	engine := NewSuggestionEngine(newMemoryRepository())

	for _, prefix := range []string{"accion", "ACCIÓN", "Acci"} {
		suggestions, err := engine.Suggest(context.Background(), prefix, SuggestGenre)
		require.NoError(t, err)
		require.Len(t, suggestions, 1, prefix)
		assert.Equal(t, Suggestion{Kind: KindGenre, Text: "Acción", Slug: "accion"}, suggestions[0])
	}

	suggestions, err := engine.Suggest(context.Background(), "ficcion", SuggestGenre)
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "ciencia-ficcion", suggestions[0].Slug)
}

func TestSuggest_GenreCap(t *testing.T) {
	engine := NewSuggestionEngine(newMemoryRepository())

	// "a" appears in far more than three genres.
	suggestions, err := engine.Suggest(context.Background(), "a", SuggestGenre)
	require.NoError(t, err)
	assert.Len(t, suggestions, 3)
	assert.Equal(t, "Acción", suggestions[0].Text)
}

func TestSuggest_ScopeFiltering(t *testing.T) {
	repository := newMemoryRepository(catalogue()...)
	engine := NewSuggestionEngine(repository)

	suggestions, err := engine.Suggest(context.Background(), "one", SuggestContent)
	require.NoError(t, err)
	assert.Equal(t, []SuggestionKind{KindContent, KindContent}, kinds(suggestions))

	suggestions, err = engine.Suggest(context.Background(), "one", SuggestAuthor)
	require.NoError(t, err)
	assert.Equal(t, []Suggestion{{Kind: KindAuthor, Text: "ONE", Count: 1}}, suggestions)

	calls := repository.suggestCalls
	suggestions, err = engine.Suggest(context.Background(), "dra", SuggestGenre)
	require.NoError(t, err)
	assert.Equal(t, []SuggestionKind{KindGenre}, kinds(suggestions))
	assert.Equal(t, calls, repository.suggestCalls, "genre scope never queries the data source")
}
