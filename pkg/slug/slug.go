// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug derives ASCII identifiers and accent-insensitive match keys from Unicode text.
//
// Genre names in the taxonomy carry accents ("Acción", "Fantasía"); autocomplete
// matches them through [Key] and exposes them through [From].
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// separators matches every run of characters not allowed in a slug.
var separators = regexp.MustCompile(`[^a-z0-9]+`)

// StripMarks removes combining marks after canonical decomposition,
// so "Acción" becomes "Accion". Invalid input is returned unchanged.
func StripMarks(s string) string {
	stripped, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
	if err != nil {
		return s
	}
	return stripped
}

// Key returns the accent-insensitive, case-folded form of s.
func Key(s string) string {
	return cases.Fold().String(StripMarks(s))
}

// From converts s into a lowercase, hyphen separated ASCII slug.
//
//	From("Ciencia ficción") == "ciencia-ficcion"
func From(s string) string {
	lowered := strings.ToLower(StripMarks(s))
	return strings.Trim(separators.ReplaceAllString(lowered, "-"), "-")
}
