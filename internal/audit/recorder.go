// Copyright (c) 2026 Homezy. All rights reserved.
// Author: dev@homezy.app

package audit

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/homezy-app/homezy-api/internal/platform/constants"
)

// # Queue Recorder

// QueueRecorder implements [Recorder] by enqueueing events for the
// background worker.
type QueueRecorder struct {
	queue  Queue
	logger *slog.Logger
}

// NewQueueRecorder creates a [QueueRecorder].
func NewQueueRecorder(queue Queue, logger *slog.Logger) *QueueRecorder {
	return &QueueRecorder{queue: queue, logger: logger}
}

/*
Record enqueues one event, swallowing every failure.

Description: Serialization and enqueue errors are logged to the operational
log only; the parent request never observes them.

Parameters:
  - ctx: context.Context
  - event: Event
*/
func (recorder *QueueRecorder) Record(ctx context.Context, event Event) {

	// Serialize the event
	payload, err := json.Marshal(event)
	if err != nil {
		recorder.logger.ErrorContext(ctx, "audit_event_encode_failed",
			slog.String("action", event.Action),
			slog.Any("error", err),
		)
		return
	}

	// Enqueue for the background worker
	if err := recorder.queue.Push(ctx, payload); err != nil {
		recorder.logger.ErrorContext(ctx, "audit_event_enqueue_failed",
			slog.String("action", event.Action),
			slog.String("user_id", event.UserID),
			slog.Any("error", err),
		)
	}
}

// # Redis Queue

// popWait bounds each blocking pop so the worker can observe shutdown.
const popWait = 1 * time.Second

// RedisQueue implements [Queue] on a Redis list.
type RedisQueue struct {
	client *redis.Client
}

// NewRedisQueue creates a Redis-backed [Queue].
func NewRedisQueue(client *redis.Client) *RedisQueue {
	return &RedisQueue{client: client}
}

// Push appends a payload to the audit list.
func (queue *RedisQueue) Push(ctx context.Context, payload []byte) error {
	return queue.client.LPush(ctx, constants.RedisKeyAuditQueue, payload).Err()
}

// Pop blocks up to popWait for the next payload.
func (queue *RedisQueue) Pop(ctx context.Context) ([]byte, error) {
	values, err := queue.client.BRPop(ctx, popWait, constants.RedisKeyAuditQueue).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	// BRPOP returns [key, value]
	if len(values) != 2 {
		return nil, nil
	}

	return []byte(values[1]), nil
}
