// Copyright (c) 2026 Homezy. All rights reserved.
// Author: dev@homezy.app

package auth

import (
	"context"
	"fmt"

	"github.com/homezy-app/homezy-api/internal/upstream"
)

// # Session Data Access

// SessionStore defines the data access contract over the data store's
// session records. The only operation this gateway performs against a
// session is deletion; reads happen implicitly through token verification.
type SessionStore interface {

	/*
		Invalidate deletes the session record keyed by the token.

		Description: Idempotent — deleting a non-existent session is not an
		error from the caller's perspective. After deletion, the token must
		be rejected by the verifier on next use (enforced by the issuing
		authority, which reads the same session table).

		Parameters:
		  - ctx: context.Context
		  - token: string

		Returns:
		  - error: Data store call failures
	*/
	Invalidate(ctx context.Context, token string) error
}

// UpstreamSessionStore implements [SessionStore] against the remote data store.
type UpstreamSessionStore struct {
	client *upstream.Client
}

// NewSessionStore creates an [UpstreamSessionStore].
func NewSessionStore(client *upstream.Client) *UpstreamSessionStore {
	return &UpstreamSessionStore{client: client}
}

// Invalidate deletes the session row matching the token.
func (store *UpstreamSessionStore) Invalidate(ctx context.Context, token string) error {
	if err := store.client.Delete(ctx, "sessions", []upstream.Filter{
		upstream.Eq("token", token),
	}); err != nil {
		return fmt.Errorf("session_invalidate_failed: %w", err)
	}
	return nil
}
