// Copyright (c) 2026 Homezy. All rights reserved.
// Author: dev@homezy.app

package listing

import (
	"context"
	"encoding/json"
	"time"

	"github.com/homezy-app/homezy-api/internal/upstream"
	"github.com/homezy-app/homezy-api/pkg/window"
)

// # List Envelope

// Envelope is the uniform shape returned by every paginated listing endpoint.
type Envelope struct {
	Ok    bool              `json:"ok"`
	Items []json.RawMessage `json:"items"`

	// Total is null when the upstream did not report a count.
	Total *int `json:"total"`

	Limit    int `json:"limit"`
	Offset   int `json:"offset"`
	FromDays int `json:"fromDays"`
}

// # Read-Query Proxy

// Service translates bounded query parameters into safe upstream filter
// expressions and reshapes the reply into the stable [Envelope].
type Service struct {
	client *upstream.Client

	// now is injected for deterministic window bounds in tests.
	now func() time.Time
}

// NewService constructs the listing [Service].
func NewService(client *upstream.Client) *Service {
	return &Service{client: client, now: time.Now}
}

/*
List executes one read-query proxy pass for a resource.

Description: The query window arrives pre-clamped ([window.FromRequest]);
this method builds the upstream filter (enumerated columns, resource sort
key, lower-bound timestamp, pagination, optional exact count), issues one
upstream call, and reshapes the result. A non-2xx upstream status propagates
with the upstream's own status code preserved.

Parameters:
  - ctx: context.Context
  - resource: Resource
  - params: window.Params

Returns:
  - *Envelope: Stable client-facing envelope
  - error: apperr-wrapped upstream failures
*/
func (service *Service) List(ctx context.Context, resource Resource, params window.Params) (*Envelope, error) {

	// 1. Build the upstream filter from the clamped window
	query := upstream.Query{
		Resource: resource.Name,
		Columns:  resource.Columns,
		Order:    resource.Order,
		Filters: []upstream.Filter{
			upstream.Gte(resource.TimestampColumn, params.Since(service.now())),
		},
		Limit:      params.Limit,
		Offset:     params.Offset,
		ExactCount: resource.Counted,
	}

	// 2. One upstream call
	rows, total, err := service.client.List(ctx, query)
	if err != nil {
		return nil, err
	}

	// An empty page serializes as [], never null
	if rows == nil {
		rows = []json.RawMessage{}
	}

	// 3. Reshape into the stable envelope
	return &Envelope{
		Ok:       true,
		Items:    rows,
		Total:    total,
		Limit:    params.Limit,
		Offset:   params.Offset,
		FromDays: params.FromDays,
	}, nil
}
