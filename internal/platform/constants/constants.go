// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the search service.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Search Policy: Cache TTL, result caps, and query length limits.
  - Headers: Canonical header names shared by middleware.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "yomira-search"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 50.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 100

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Search Policy

const (
	// SearchCacheTTL is the fixed lifetime of a cached result page.
	SearchCacheTTL = 5 * time.Minute

	// MaxQueryLength is the longest free-text query accepted, in runes.
	MaxQueryLength = 200

	// SuggestionLimit caps the merged autocomplete list.
	SuggestionLimit = 10
	// SuggestionContentLimit caps title/author record matches.
	SuggestionContentLimit = 5
	// SuggestionAuthorLimit caps grouped author matches.
	SuggestionAuthorLimit = 3
	// SuggestionGenreLimit caps taxonomy matches.
	SuggestionGenreLimit = 3

	// GlobalMinQueryLength is the minimum rune count accepted by the global search.
	GlobalMinQueryLength = 2
	// GlobalContentLimit is the content cap when every entity type is requested.
	GlobalContentLimit = 5
	// GlobalUserLimit is the user cap when every entity type is requested.
	GlobalUserLimit = 3
	// GlobalListLimit is the list cap when every entity type is requested.
	GlobalListLimit = 3

	// TrendingDefaultLimit is used when the caller omits a limit.
	TrendingDefaultLimit = 10
	// TrendingMaxLimit bounds the ranked list size.
	TrendingMaxLimit = 100

	// QueryLogWriteTimeout bounds a single background append.
	QueryLogWriteTimeout = 3 * time.Second
)

// # Authentication

const (
	// AuthIssuer is the expected 'iss' claim on access tokens.
	AuthIssuer = "yomira.app"
)

// # Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldError   = "error"
	FieldCode    = "code"
	FieldStatus  = "status"
	FieldChecks  = "checks"
	FieldApp     = "app"
	FieldVersion = "version"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixTrending = "search:trending:"
)
