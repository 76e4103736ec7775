// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil extracts typed values from HTTP requests.

Numeric query parameters are parsed leniently: a malformed value is reported as
absent instead of failing the request.
*/
package requestutil

import (
	"net/http"
	"strings"

	"github.com/taibuivan/yomira-search/internal/platform/ctxutil"
	"github.com/taibuivan/yomira-search/pkg/query"
)

// RequesterID returns the verified caller's user ID, or "" when anonymous.
func RequesterID(request *http.Request) string {
	return ctxutil.GetRequesterID(request.Context())
}

// String returns the trimmed value of a query parameter.
func String(request *http.Request, key string) string {
	return strings.TrimSpace(request.URL.Query().Get(key))
}

// List returns the values of a query parameter given either repeated
// (?genre=a&genre=b) or comma-separated (?genre=a,b).
func List(request *http.Request, key string) []string {
	return query.StringSlice(request.URL.Query()[key])
}

// Int returns the query parameter as an int, or nil when missing or malformed.
func Int(request *http.Request, key string) *int {
	return query.Int(request.URL.Query().Get(key))
}

// Float returns the query parameter as a finite float64, or nil when missing or malformed.
func Float(request *http.Request, key string) *float64 {
	return query.Float(request.URL.Query().Get(key))
}
