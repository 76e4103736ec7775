// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// signaturePrefix versions the key layout so a format change never aliases old entries.
const signaturePrefix = "search:v1:"

// canonicalQuery fixes the field order of the serialized form.
type canonicalQuery struct {
	Text          string   `json:"q"`
	Genres        []string `json:"g"`
	ExcludeGenres []string `json:"xg"`
	Type          Type     `json:"t"`
	Status        Status   `json:"s"`
	Year          *int     `json:"y"`
	YearFrom      *int     `json:"yf"`
	YearTo        *int     `json:"yt"`
	Rating        *float64 `json:"r"`
	RatingFrom    *float64 `json:"rf"`
	RatingTo      *float64 `json:"rt"`
	Author        string   `json:"a"`
	Sort          SortMode `json:"o"`
	Page          int      `json:"p"`
	PageSize      int      `json:"ps"`
}

// Signature derives the cache key of a query.
//
// The query is normalized first, so genre insertion order, duplicate genres and
// surrounding whitespace never change the key. The result is the SHA-256 of the
// canonical JSON form, hex encoded and prefixed with "search:v1:".
func Signature(query Query) string {
	query = query.Normalize()

	canonical, err := json.Marshal(canonicalQuery{
		Text:          query.Text,
		Genres:        query.Genres,
		ExcludeGenres: query.ExcludeGenres,
		Type:          query.Type,
		Status:        query.Status,
		Year:          query.Year,
		YearFrom:      query.YearFrom,
		YearTo:        query.YearTo,
		Rating:        query.Rating,
		RatingFrom:    query.RatingFrom,
		RatingTo:      query.RatingTo,
		Author:        query.Author,
		Sort:          query.Sort,
		Page:          query.Page,
		PageSize:      query.PageSize,
	})
	if err != nil {
		// Unreachable: normalization drops the only unencodable values (NaN, Inf).
		panic("search: unencodable query: " + err.Error())
	}

	digest := sha256.Sum256(canonical)
	return signaturePrefix + hex.EncodeToString(digest[:])
}
