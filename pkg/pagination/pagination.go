// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides shared types and helpers for paged results.
//
// Pages are 1-indexed. Out-of-range requests are clamped, never rejected.
package pagination

import (
	"math"
	"net/http"

	"github.com/taibuivan/yomira-search/pkg/query"
)

const (
	// DefaultLimit is the number of items per page if not specified.
	DefaultLimit = 20
	// MaxLimit is the upper bound for items per page.
	MaxLimit = 100
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
	// MaxPage keeps (page-1)*limit within int for every valid limit.
	MaxPage = math.MaxInt / MaxLimit
)

// Params holds a page number and page size.
type Params struct {
	Page  int
	Limit int
}

// Normalize clamps page and limit into their valid ranges.
//
// A page below 1 becomes [DefaultPage] and a page above [MaxPage] is capped.
// A limit below 1 becomes [DefaultLimit] and a limit above [MaxLimit] is capped.
func Normalize(page, limit int) Params {
	page = min(page, MaxPage)
	if page < 1 {
		page = DefaultPage
	}

	limit = min(limit, MaxLimit)
	if limit < 1 {
		limit = DefaultLimit
	}
	return Params{Page: page, Limit: limit}
}

// Offset returns the zero-based index of the first item on [Params.Page].
// It saturates at [math.MaxInt] instead of overflowing.
func (p Params) Offset() int {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewMeta constructs pagination metadata, deriving TotalPages from total and limit.
func NewMeta(page, limit, total int) Meta {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// FromRequest parses the "page" and "limit" query parameters and normalizes them.
// Malformed values fall back to the defaults.
func FromRequest(request *http.Request) Params {
	values := request.URL.Query()

	page, limit := DefaultPage, DefaultLimit
	if n := query.Int(values.Get("page")); n != nil {
		page = *n
	}
	if n := query.Int(values.Get("limit")); n != nil {
		limit = *n
	}

	return Normalize(page, limit)
}
