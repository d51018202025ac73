// Copyright (c) 2026 Homezy. All rights reserved.
// Author: dev@homezy.app

package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/homezy-app/homezy-api/internal/audit"
	"github.com/homezy-app/homezy-api/internal/platform/constants"
	"github.com/homezy-app/homezy-api/internal/platform/sec"
)

// # Service Definitions

// Service orchestrates the session lifecycle operations of the gateway.
type Service struct {
	sessions SessionStore
	recorder audit.Recorder
	logger   *slog.Logger
}

// NewService constructs the auth [Service].
func NewService(sessions SessionStore, recorder audit.Recorder, logger *slog.Logger) *Service {
	return &Service{
		sessions: sessions,
		recorder: recorder,
		logger:   logger,
	}
}

/*
Logout revokes the caller's session and records the audit event.

Description: Best effort revoke, always succeed to the client. The session
delete and the audit write are independent, unordered side effects — failure
of one never blocks or reverses the other, and neither failure surfaces to
the caller. The handler waits a short bounded time for both, then responds
regardless; late completions keep running on a detached context.

A delete failure leaves the token technically valid until its natural
expiry, bounded by the TTL owned by the issuing authority.

Parameters:
  - ctx: context.Context
  - user: *sec.VerifiedUser (the verified caller)
  - ipAddress: string (for the audit trail)
*/
func (service *Service) Logout(ctx context.Context, user *sec.VerifiedUser, ipAddress string) {

	// Side effects must survive the parent request's cancellation.
	background := context.WithoutCancel(ctx)
	done := make(chan struct{}, 2)

	// ── 1. Session Delete (best effort) ───────────────────────────────────
	go func() {
		defer func() { done <- struct{}{} }()

		if err := service.sessions.Invalidate(background, user.Token); err != nil {
			service.logger.ErrorContext(ctx, "session_delete_failed",
				slog.String("user_id", user.ID),
				slog.Any("error", err),
			)
		}
	}()

	// ── 2. Audit Write (best effort) ──────────────────────────────────────
	go func() {
		defer func() { done <- struct{}{} }()

		service.recorder.Record(background, audit.NewEvent(
			user, audit.ActionLogout, audit.EntitySession, ipAddress,
		))
	}()

	// ── 3. Bounded Join ───────────────────────────────────────────────────
	timer := time.NewTimer(constants.SideEffectWait)
	defer timer.Stop()

	for pending := 2; pending > 0; pending-- {
		select {
		case <-done:
		case <-timer.C:
			service.logger.WarnContext(ctx, "logout_side_effects_still_pending",
				slog.String("user_id", user.ID),
			)
			return
		}
	}
}
