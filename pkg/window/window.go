// Copyright (c) 2026 Homezy. All rights reserved.
// Author: dev@homezy.app

// Package window provides shared types and helpers for time-windowed,
// paginated API list endpoints.
//
// # Overview
//
// It standardizes how a query window is requested via query parameters
// (fromDays, limit, offset) and how the resulting bounds are clamped before
// being forwarded to the upstream data store.
package window

import (
	"net/http"
	"strconv"
	"time"
)

const (
	// DefaultLimit is the number of items per page if not specified.
	DefaultLimit = 20
	// MaxLimit is the upper bound for items per page to prevent system abuse.
	MaxLimit = 100
	// DefaultOffset is the starting row offset.
	DefaultOffset = 0
)

// Params holds the parsed query window of one listing request.
//
// # Invariants
//
// Limit is clamped to [1, MaxLimit] and Offset to >= 0 regardless of
// caller-supplied values. FromDays converts to an absolute UTC lower-bound
// timestamp computed at request time.
type Params struct {
	FromDays int
	Limit    int
	Offset   int
}

// Since returns the absolute lower-bound timestamp of the window,
// UTC, RFC 3339 formatted: now minus FromDays days.
func (p Params) Since(now time.Time) string {
	return now.UTC().Add(-time.Duration(p.FromDays) * 24 * time.Hour).Format(time.RFC3339)
}

// FromRequest parses "fromDays", "limit" and "offset" query parameters.
//
// # Clamping
//
// Non-numeric input must not crash a listing endpoint: every value is
// coerced via a safe numeric parse with the stated default as fallback.
// defaultDays varies per resource and is supplied by the caller.
func FromRequest(r *http.Request, defaultDays int) Params {
	fromDays := parseIntParam(r, "fromDays", defaultDays)
	limit := parseIntParam(r, "limit", DefaultLimit)
	offset := parseIntParam(r, "offset", DefaultOffset)

	if fromDays < 0 {
		fromDays = defaultDays
	}

	if limit < 1 || limit > MaxLimit {
		if limit > MaxLimit {
			limit = MaxLimit
		} else {
			limit = DefaultLimit
		}
	}

	if offset < 0 {
		offset = DefaultOffset
	}

	return Params{FromDays: fromDays, Limit: limit, Offset: offset}
}

// parseIntParam parses a single integer query parameter with a fallback default.
func parseIntParam(r *http.Request, key string, defaultVal int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultVal
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultVal
	}

	return n
}
