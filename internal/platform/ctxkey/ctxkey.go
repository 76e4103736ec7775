// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxkey defines the typed context keys shared by middleware and [ctxutil].
package ctxkey

// Key identifies one context value. Its field is unexported, so only this package can mint keys.
type Key struct{ name string }

// String returns the key name, used when debugging context chains.
func (k Key) String() string { return "search/" + k.name }

var (
	// KeyRequestID carries the X-Request-ID correlation value.
	KeyRequestID = Key{"request_id"}

	// KeyUser carries the verified bearer token claims of the requester.
	// Absent for anonymous searches.
	KeyUser = Key{"requester"}

	// KeyLogger carries the request scoped [*log/slog.Logger].
	KeyLogger = Key{"logger"}
)
