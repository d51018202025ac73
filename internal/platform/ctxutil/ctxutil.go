// Copyright (c) 2026 Homezy. All rights reserved.
// Author: dev@homezy.app

// Package ctxutil provides helpers for interacting with values stored in [context.Context].
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/homezy-app/homezy-api/internal/platform/ctxkey"
	"github.com/homezy-app/homezy-api/internal/platform/sec"
)

// # Request Tracing

// WithRequestID returns a new context with the provided request ID attached.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID retrieves the request ID from the context.
// Returns an empty string if not found.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeyRequestID).(string)
	return id
}

// # Structured Logging

// WithLogger returns a new context with the provided logger attached.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger retrieves the logger from the context.
// If no logger is found, it returns the global default logger.
func GetLogger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return logger
}

// # Identity & Access

// WithVerifiedUser returns a new context with the verified user attached.
func WithVerifiedUser(ctx context.Context, user *sec.VerifiedUser) context.Context {
	return context.WithValue(ctx, ctxkey.KeyUser, user)
}

// GetVerifiedUser retrieves the [*sec.VerifiedUser] from the [context.Context].
func GetVerifiedUser(ctx context.Context) *sec.VerifiedUser {
	user, ok := ctx.Value(ctxkey.KeyUser).(*sec.VerifiedUser)
	if !ok {
		return nil
	}
	return user
}

// WithAuthFailure returns a new context carrying a failed verification outcome.
func WithAuthFailure(ctx context.Context, err error) context.Context {
	return context.WithValue(ctx, ctxkey.KeyAuthFailure, err)
}

// GetAuthFailure retrieves the verification failure recorded for this
// request, or nil when verification succeeded or never ran.
func GetAuthFailure(ctx context.Context) error {
	err, _ := ctx.Value(ctxkey.KeyAuthFailure).(error)
	return err
}
