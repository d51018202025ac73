// Copyright (c) 2026 Homezy. All rights reserved.
// Author: dev@homezy.app

/*
Package sec provides the security primitives of the gateway: identity
extraction from request headers, the verified-user claims object, the
authorization policy, and the data-store service token.

# Architecture

This package isolates security-sensitive code from the domain logic. It holds
no state and makes no network calls; verification against the token-issuing
authority lives in internal/auth and only its *result* ([VerifiedUser]) flows
through here.
*/
package sec

import "time"

// VerifiedUser is the canonical identity confirmed by the token-issuing
// authority for the current request.
//
// # Lifetime
//
// A VerifiedUser exists only for the duration of one request. It is never
// cached across requests: each request re-verifies its token so that a
// revoked session stops authorizing on the very next call.
type VerifiedUser struct {
	ID        string    `json:"id"`
	Type      UserType  `json:"user_type"`
	Email     string    `json:"email,omitempty"`
	FullName  string    `json:"full_name,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`

	// Token is the bearer token the claims were verified from. Kept for
	// session invalidation; never serialized back to clients.
	Token string `json:"-"`
}
