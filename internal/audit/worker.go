// Copyright (c) 2026 Homezy. All rights reserved.
// Author: dev@homezy.app

package audit

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"
)

// # Background Worker

// resource is the data store collection audit events land in.
const resource = "audit_logs"

// retryDelay spaces redeliveries after a failed upstream write.
const retryDelay = 5 * time.Second

// Worker drains the audit queue into the data store.
//
// # Delivery Semantics
//
// At-least-once: a failed write puts the event back on the queue and waits
// before the next attempt. An event that cannot be decoded is dropped — a
// poison payload must not wedge the queue.
type Worker struct {
	queue  Queue
	writer Writer
	logger *slog.Logger
}

// NewWorker creates a [Worker].
func NewWorker(queue Queue, writer Writer, logger *slog.Logger) *Worker {
	return &Worker{queue: queue, writer: writer, logger: logger}
}

// Run consumes the queue until the context is cancelled.
//
// It is started once from main as a background goroutine; it never returns
// an error because every failure mode is retry or drop.
func (worker *Worker) Run(ctx context.Context) {
	worker.logger.Info("audit_worker_started")

	for {
		// Stop cleanly on shutdown
		if ctx.Err() != nil {
			worker.logger.Info("audit_worker_stopped")
			return
		}

		payload, err := worker.queue.Pop(ctx)
		if err != nil {
			if ctx.Err() != nil {
				worker.logger.Info("audit_worker_stopped")
				return
			}
			worker.logger.Error("audit_queue_pop_failed", slog.Any("error", err))
			worker.sleep(ctx, retryDelay)
			continue
		}

		// Nothing queued within the wait
		if payload == nil {
			continue
		}

		worker.deliver(ctx, payload)
	}
}

// deliver writes one event, re-queueing it on failure.
func (worker *Worker) deliver(ctx context.Context, payload []byte) {
	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		// Poison payload: drop rather than redeliver forever.
		worker.logger.Error("audit_event_decode_failed", slog.Any("error", err))
		return
	}

	if err := worker.writer.Insert(ctx, resource, event); err != nil {
		worker.logger.Error("audit_event_write_failed",
			slog.String("event_id", event.ID),
			slog.String("action", event.Action),
			slog.Any("error", err),
		)

		if pushErr := worker.queue.Push(ctx, payload); pushErr != nil {
			// Both the store and the queue are down; the event is lost.
			// Audit durability is best-effort by design.
			worker.logger.Error("audit_event_requeue_failed",
				slog.String("event_id", event.ID),
				slog.Any("error", pushErr),
			)
		}

		worker.sleep(ctx, retryDelay)
		return
	}

	worker.logger.Debug("audit_event_written",
		slog.String("event_id", event.ID),
		slog.String("action", event.Action),
	)
}

// sleep waits for the delay or context cancellation, whichever comes first.
func (worker *Worker) sleep(ctx context.Context, delay time.Duration) {
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
