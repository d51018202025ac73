// Copyright (c) 2026 Homezy. All rights reserved.
// Author: dev@homezy.app

package sec

import "errors"

// # Verification Failure Taxonomy
//
// Sentinel errors returned by token verifiers. Callers pick the response
// status (and retry policy) with [errors.Is]; the distinction between an
// invalid token and an unreachable authority is load-bearing: a timeout must
// never be reported to the caller as a bad credential.
var (
	// ErrMissingToken means no bearer token was present. Rejected locally
	// without any network call.
	ErrMissingToken = errors.New("sec: missing token")

	// ErrInvalidToken means the issuing authority rejected the token as
	// unknown, expired, or malformed.
	ErrInvalidToken = errors.New("sec: invalid token")

	// ErrAuthorityUnavailable means the verification call itself failed
	// (network error, timeout, or authority-side 5xx).
	ErrAuthorityUnavailable = errors.New("sec: authority unavailable")
)
