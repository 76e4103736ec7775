// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// # Predicates

// Field names a filterable scalar attribute of a [Record].
type Field string

const (
	FieldTitle    Field = "title"
	FieldAltTitle Field = "alt_title"
	FieldAuthor   Field = "author"
	FieldSynopsis Field = "synopsis"
	FieldType     Field = "type"
	FieldStatus   Field = "status"
	FieldYear     Field = "year"
	FieldRating   Field = "rating"
)

// textFields are the attributes searched by free text.
var textFields = []Field{FieldTitle, FieldAltTitle, FieldAuthor, FieldSynopsis}

// Predicate is one AND-ed clause of a compiled query.
//
// The set of implementations is closed: [TextMatch], [GenreIncludes], [GenreExcludes],
// [EqualityFilter] and [RangeFilter]. Data sources translate them with a type switch.
type Predicate interface {
	// Matches reports whether record satisfies the clause.
	Matches(record Record) bool

	predicate()
}

// TextMatch is a case-insensitive substring match OR-ed across Fields.
type TextMatch struct {
	Fields []Field
	Needle string
}

// GenreIncludes requires a non-empty intersection with Genres.
type GenreIncludes struct {
	Genres []string
}

// GenreExcludes requires an empty intersection with Genres.
type GenreExcludes struct {
	Genres []string
}

// EqualityFilter requires Field to equal Value exactly.
type EqualityFilter struct {
	Field Field
	Value string
}

// RangeFilter bounds a numeric Field inclusively. A nil bound is open.
// Records without a value for Field never match.
type RangeFilter struct {
	Field Field
	Min   *float64
	Max   *float64
}

func (TextMatch) predicate()      {}
func (GenreIncludes) predicate()  {}
func (GenreExcludes) predicate()  {}
func (EqualityFilter) predicate() {}
func (RangeFilter) predicate()    {}

// Matches implements [Predicate].
func (clause TextMatch) Matches(record Record) bool {
	needle := foldCase(clause.Needle)
	for _, field := range clause.Fields {
		if strings.Contains(foldCase(record.text(field)), needle) {
			return true
		}
	}
	return false
}

// Matches implements [Predicate].
func (clause GenreIncludes) Matches(record Record) bool {
	return slices.ContainsFunc(record.Genres, func(genre string) bool {
		return slices.Contains(clause.Genres, genre)
	})
}

// Matches implements [Predicate].
func (clause GenreExcludes) Matches(record Record) bool {
	return !GenreIncludes(clause).Matches(record)
}

// Matches implements [Predicate].
func (clause EqualityFilter) Matches(record Record) bool {
	return record.text(clause.Field) == clause.Value
}

// Matches implements [Predicate].
func (clause RangeFilter) Matches(record Record) bool {
	value, ok := record.number(clause.Field)
	if !ok {
		return false
	}
	if clause.Min != nil && value < *clause.Min {
		return false
	}
	if clause.Max != nil && value > *clause.Max {
		return false
	}
	return true
}

// # Compiler

/*
Compile turns a query into the ordered list of clauses a record must satisfy.

Clauses are emitted in a fixed order (text, genre include, genre exclude, type,
status, year, rating, author) and only for fields that are set. A query with no
filters compiles to an empty list, which matches every record.

Parameters:
  - query: Query (normalized or raw; compilation normalizes again)

Returns:
  - []Predicate: Clauses to AND together
*/
func Compile(query Query) []Predicate {
	query = query.Normalize()

	var predicates []Predicate

	// 1. Free text across every searchable attribute
	if query.Text != "" {
		predicates = append(predicates, TextMatch{Fields: textFields, Needle: query.Text})
	}

	// 2. Genre sets
	if len(query.Genres) > 0 {
		predicates = append(predicates, GenreIncludes{Genres: query.Genres})
	}
	if len(query.ExcludeGenres) > 0 {
		predicates = append(predicates, GenreExcludes{Genres: query.ExcludeGenres})
	}

	// 3. Enum equality
	if query.Type != "" {
		predicates = append(predicates, EqualityFilter{Field: FieldType, Value: string(query.Type)})
	}
	if query.Status != "" {
		predicates = append(predicates, EqualityFilter{Field: FieldStatus, Value: string(query.Status)})
	}

	// 4. Numeric ranges, exact value first
	if clause, ok := rangeClause(FieldYear, intToFloat(query.Year), intToFloat(query.YearFrom), intToFloat(query.YearTo)); ok {
		predicates = append(predicates, clause)
	}
	if clause, ok := rangeClause(FieldRating, query.Rating, query.RatingFrom, query.RatingTo); ok {
		predicates = append(predicates, clause)
	}

	// 5. Author substring, independent of free text
	if query.Author != "" {
		predicates = append(predicates, TextMatch{Fields: []Field{FieldAuthor}, Needle: query.Author})
	}

	return predicates
}

// rangeClause builds a [RangeFilter] where an exact value pins both bounds.
func rangeClause(field Field, exact, from, to *float64) (RangeFilter, bool) {
	if exact != nil {
		return RangeFilter{Field: field, Min: exact, Max: exact}, true
	}
	if from == nil && to == nil {
		return RangeFilter{}, false
	}
	return RangeFilter{Field: field, Min: from, Max: to}, true
}

// # Helpers

func (record Record) text(field Field) string {
	switch field {
	case FieldTitle:
		return record.Title
	case FieldAltTitle:
		return record.AltTitle
	case FieldAuthor:
		return record.Author
	case FieldSynopsis:
		return record.Synopsis
	case FieldType:
		return string(record.Type)
	case FieldStatus:
		return string(record.Status)
	}
	return ""
}

func (record Record) number(field Field) (float64, bool) {
	switch field {
	case FieldYear:
		if record.Year == nil {
			return 0, false
		}
		return float64(*record.Year), true
	case FieldRating:
		return record.Rating, true
	}
	return 0, false
}

func intToFloat(value *int) *float64 {
	if value == nil {
		return nil
	}
	converted := float64(*value)
	return &converted
}

// foldCase returns the Unicode case-folded form of s.
// A new Caser is created per call since Casers are not safe for concurrent use.
func foldCase(s string) string {
	return cases.Fold().String(s)
}
