// Copyright (c) 2026 Homezy. All rights reserved.
// Author: dev@homezy.app

package notification

import (
	"context"
	"encoding/json"

	"github.com/homezy-app/homezy-api/internal/upstream"
)

// Service reads and updates a worker's notification feed.
type Service struct {
	client *upstream.Client
}

// NewService constructs the notification [Service].
func NewService(client *upstream.Client) *Service {
	return &Service{client: client}
}

/*
Feed returns the worker's newest notifications.

Description: Rows are filtered to the worker's own ID, ordered newest-first,
and capped at the feed limit.

Parameters:
  - ctx: context.Context
  - workerID: string (from verified claims)

Returns:
  - []json.RawMessage: Row sequence
  - error: apperr-wrapped upstream failures
*/
func (service *Service) Feed(ctx context.Context, workerID string) ([]json.RawMessage, error) {
	rows, _, err := service.client.List(ctx, upstream.Query{
		Resource: resource,
		Columns:  columns,
		Order:    "created_at.desc",
		Filters: []upstream.Filter{
			upstream.Eq("worker_id", workerID),
		},
		Limit:  feedLimit,
		Offset: 0,
	})
	if err != nil {
		return nil, err
	}

	if rows == nil {
		rows = []json.RawMessage{}
	}

	return rows, nil
}

/*
MarkRead flags the given notifications as read.

Description: The update is double-scoped: by notification IDs and by the
verified worker's ID, so IDs belonging to another worker are silently
ignored. Matching zero rows is not an error.

Parameters:
  - ctx: context.Context
  - workerID: string (from verified claims)
  - ids: []string

Returns:
  - error: apperr-wrapped upstream failures
*/
func (service *Service) MarkRead(ctx context.Context, workerID string, ids []string) error {
	return service.client.Update(ctx, resource,
		[]upstream.Filter{
			upstream.In("id", ids),
			upstream.Eq("worker_id", workerID),
		},
		map[string]any{"is_read": true},
	)
}
