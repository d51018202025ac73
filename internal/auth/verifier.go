// Copyright (c) 2026 Homezy. All rights reserved.
// Author: dev@homezy.app

/*
Package auth implements the authentication and authorization gateway: token
verification against the issuing authority, session invalidation, and the
HTTP endpoints consumed by every protected client.

# Architecture

Token issuance (login, registration, OTP) is owned by the external authority
and is out of scope here; this package verifies and revokes only. Every
request re-verifies its token — the gateway keeps no cross-request cache —
so a session deleted mid-lifetime stops authorizing on the very next call.
*/
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/homezy-app/homezy-api/internal/platform/constants"
	"github.com/homezy-app/homezy-api/internal/platform/sec"
)

// # Token Verifier

// AuthorityVerifier verifies bearer tokens against the token-issuing
// authority over HTTPS.
//
// It implements the middleware.TokenVerifier contract.
type AuthorityVerifier struct {
	baseURL    string
	httpClient *http.Client
}

// NewAuthorityVerifier constructs an [AuthorityVerifier].
//
// # Parameters
//   - baseURL: Root URL of the authority's verification interface.
//   - timeout: Bound for every verification call (configurable, never hard-coded).
func NewAuthorityVerifier(baseURL string, timeout time.Duration) *AuthorityVerifier {
	return &AuthorityVerifier{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// verifyResponse is the authority's reply to a successful verification.
type verifyResponse struct {
	User sec.VerifiedUser `json:"user"`
}

/*
Verify confirms a bearer token with the issuing authority.

Description: An empty token is rejected locally without any network call.
Otherwise exactly one verification call is issued; the result is never
cached across requests.

Parameters:
  - ctx: context.Context
  - token: string

Returns:
  - *sec.VerifiedUser: Canonical user record on success
  - error: sec.ErrMissingToken, sec.ErrInvalidToken, or sec.ErrAuthorityUnavailable
*/
func (verifier *AuthorityVerifier) Verify(ctx context.Context, token string) (*sec.VerifiedUser, error) {

	// ── 1. Local Rejection ────────────────────────────────────────────────
	if token == "" {
		return nil, sec.ErrMissingToken
	}

	// ── 2. Authority Call ─────────────────────────────────────────────────
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, verifier.baseURL+"/verify", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", sec.ErrAuthorityUnavailable, err)
	}

	request.Header.Set(constants.HeaderAuthorization, "Bearer "+token)
	request.Header.Set("Accept", "application/json")

	response, err := verifier.httpClient.Do(request)
	if err != nil {
		// Network error or expired deadline: upstream unavailability, never
		// conflated with an invalid credential.
		return nil, fmt.Errorf("%w: %w", sec.ErrAuthorityUnavailable, err)
	}
	defer func() { _ = response.Body.Close() }()

	// ── 3. Outcome Classification ─────────────────────────────────────────
	switch {
	case response.StatusCode >= 200 && response.StatusCode <= 299:
		// fallthrough to decoding below
	case response.StatusCode >= 400 && response.StatusCode <= 499:
		// The authority reports the token unknown, expired, or malformed.
		return nil, fmt.Errorf("%w: authority status %d", sec.ErrInvalidToken, response.StatusCode)
	default:
		return nil, fmt.Errorf("%w: authority status %d", sec.ErrAuthorityUnavailable, response.StatusCode)
	}

	// ── 4. Canonical User Record ──────────────────────────────────────────
	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", sec.ErrAuthorityUnavailable, err)
	}

	var payload verifyResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: malformed verification reply: %w", sec.ErrAuthorityUnavailable, err)
	}

	if payload.User.ID == "" || !payload.User.Type.Valid() {
		return nil, fmt.Errorf("%w: incomplete claims", sec.ErrInvalidToken)
	}

	// Keep the raw token on the claims for session invalidation.
	user := payload.User
	user.Token = token

	return &user, nil
}
