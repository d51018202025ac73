// Copyright (c) 2026 Homezy. All rights reserved.
// Author: dev@homezy.app

// Package middleware provides the HTTP middleware chain for the Homezy API server.
//
// # Architecture
//
// Middleware intercepts incoming HTTP requests to apply global policies
// before they reach the domain handlers. This includes cross-cutting concerns
// like Logging, AuthZ/AuthN, Rate Limiting, and CORS.
package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/homezy-app/homezy-api/internal/platform/apperr"
	"github.com/homezy-app/homezy-api/internal/platform/ctxutil"
	"github.com/homezy-app/homezy-api/internal/platform/metrics"
	"github.com/homezy-app/homezy-api/internal/platform/respond"
	"github.com/homezy-app/homezy-api/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify tokens in middleware.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from the `auth`
// package's authority client, allowing us to easily inject fakes during
// unit testing.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*sec.VerifiedUser, error)
}

// Authenticate extracts the bearer token and verifies it against the
// token-issuing authority.
//
// # Flow
//  1. Recover the raw token from headers via [sec.TokenFromHeader].
//  2. If absent, the request proceeds as anonymous.
//  3. If present, verify against the authority — one outbound call, no caching.
//  4. On success, inject the [*sec.VerifiedUser] into the request context.
//  5. On failure, record the failure in context and continue anonymous.
//
// The middleware never rejects a request itself: route-level guards
// ([RequireAuth], [RequireType]) convert a recorded failure into the
// action-style envelope, while the verify endpoint converts it into the
// verify-style one. This keeps exactly one verification call per request
// regardless of which endpoint consumes the outcome.
//
// Caller-supplied identity headers are never consulted: only claims returned
// by the verifier reach the context.
func Authenticate(verifier TokenVerifier, gauges *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// ── 1. Anonymous Access ───────────────────────────────────────────
			token := sec.TokenFromHeader(request.Header)
			if token == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Token Verification ─────────────────────────────────────────
			user, err := verifier.Verify(request.Context(), token)
			if err != nil {
				gauges.ObserveAuth(authOutcome(err))

				// Record, don't reject: the guard or endpoint owning this
				// route decides the envelope.
				ctx := ctxutil.WithAuthFailure(request.Context(), err)
				next.ServeHTTP(writer, request.WithContext(ctx))
				return
			}

			gauges.ObserveAuth("allowed")

			// ── 3. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithVerifiedUser(request.Context(), user)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
//
// # Flow
//  1. Check if [*sec.VerifiedUser] exists in context.
//  2. If missing, abort with the recorded verification failure (or a plain
//     401 when no token was presented at all).
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		user := GetUser(request.Context())
		if user == nil {
			respond.Error(writer, request, VerificationError(AuthFailure(request.Context())))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireType blocks requests unless the verified user's type exactly
// matches the required type.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate]. It automatically
// implies [RequireAuth] so you don't need to mount both.
//
// # Flow
//  1. Check if [*sec.VerifiedUser] exists in context (implies AuthN).
//  2. Check the exact user-type match via [sec.UserType.Matches] — no
//     hierarchy; an admin is rejected on a worker-only route.
//  3. If the types differ, abort with HTTP 403 Forbidden.
func RequireType(required sec.UserType) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			user := GetUser(request.Context())

			// ── 1. Authentication Check ───────────────────────────────────────
			if user == nil {
				respond.Error(writer, request, VerificationError(AuthFailure(request.Context())))
				return
			}

			// ── 2. Authorization Check ────────────────────────────────────────
			if !user.Type.Matches(required) {
				respond.Error(writer, request, apperr.Forbidden(
					fmt.Sprintf("Access restricted to %ss", required),
				))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// GetUser retrieves the [*sec.VerifiedUser] from the [context.Context].
//
// # Returns
//   - A pointer to [*sec.VerifiedUser] if the request is authenticated.
//   - nil if the request is anonymous.
func GetUser(ctx context.Context) *sec.VerifiedUser {
	return ctxutil.GetVerifiedUser(ctx)
}

// AuthFailure returns the verification failure [Authenticate] recorded for
// this request. An anonymous request (no token presented) reads as
// [sec.ErrMissingToken].
func AuthFailure(ctx context.Context) error {
	if err := ctxutil.GetAuthFailure(ctx); err != nil {
		return err
	}
	return sec.ErrMissingToken
}

// authOutcome labels a verification failure for the auth outcome counter.
func authOutcome(err error) string {
	switch {
	case errors.Is(err, sec.ErrMissingToken):
		return "missing_token"
	case errors.Is(err, sec.ErrInvalidToken):
		return "invalid_token"
	case errors.Is(err, sec.ErrAuthorityUnavailable):
		return "authority_unavailable"
	default:
		return "error"
	}
}

// VerificationError maps a verifier failure onto the canonical [apperr.AppError].
//
// Invalid and missing tokens are authentication failures (401); an
// unreachable authority is an upstream failure (502) and must never be
// presented as a credential problem.
func VerificationError(err error) *apperr.AppError {
	switch {
	case errors.Is(err, sec.ErrMissingToken):
		return apperr.Unauthorized("Authentication required")
	case errors.Is(err, sec.ErrInvalidToken):
		return apperr.Unauthorized("Invalid or expired token")
	case errors.Is(err, sec.ErrAuthorityUnavailable):
		return apperr.Unavailable("auth", err)
	default:
		return apperr.Internal(err)
	}
}
