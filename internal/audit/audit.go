// Copyright (c) 2026 Homezy. All rights reserved.
// Author: dev@homezy.app

/*
Package audit implements best-effort recording of security-relevant events
(logout, and by extension any future auth event).

# Architecture

Events are fire-and-forget: the request handler enqueues onto a Redis list
and a background worker drains the list into the data store's audit_logs
resource with at-least-once semantics. No failure in this package — enqueue,
serialization, or upstream write — ever propagates to the request being
audited; everything is swallowed into the operational log.
*/
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/homezy-app/homezy-api/internal/platform/sec"
)

// # Domain Entities

// Event is one append-only audit record.
type Event struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	UserType   string    `json:"user_type"`
	Action     string    `json:"action"`
	EntityType string    `json:"entity_type"`
	IPAddress  string    `json:"ip_address"`
	CreatedAt  time.Time `json:"created_at"`
}

// Well-known action and entity identifiers.
const (
	ActionLogout  = "logout"
	EntitySession = "session"
)

// NewEvent builds an [Event] for a verified user's action, stamping the
// event ID and timestamp.
func NewEvent(user *sec.VerifiedUser, action, entityType, ipAddress string) Event {
	return Event{
		ID:         uuid.New().String(),
		UserID:     user.ID,
		UserType:   string(user.Type),
		Action:     action,
		EntityType: entityType,
		IPAddress:  ipAddress,
		CreatedAt:  time.Now().UTC(),
	}
}

// # Contracts

// Recorder accepts audit events. Implementations must never return an error
// to the caller: audit logging must not become an availability dependency
// for the action being audited.
type Recorder interface {
	Record(ctx context.Context, event Event)
}

// Queue is the transport buffering events between request handlers and the
// background worker.
type Queue interface {

	// Push appends a serialized event to the tail of the queue.
	Push(ctx context.Context, payload []byte) error

	// Pop blocks briefly for the next pending event. It returns (nil, nil)
	// when the wait elapsed with nothing queued.
	Pop(ctx context.Context) ([]byte, error)
}

// Writer persists drained events. Satisfied by the upstream data store client.
type Writer interface {
	Insert(ctx context.Context, resource string, record any) error
}
