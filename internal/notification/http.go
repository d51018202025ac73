// Copyright (c) 2026 Homezy. All rights reserved.
// Author: dev@homezy.app

package notification

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/homezy-app/homezy-api/internal/platform/request"
	"github.com/homezy-app/homezy-api/internal/platform/respond"
	"github.com/homezy-app/homezy-api/internal/platform/validate"
)

// Handler exposes the worker notification endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a notification [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the worker notification router.
//
// # Endpoints
//   - GET  /notifications      : Newest notifications for the verified worker.
//   - POST /notifications/read : Mark notifications as read.
//
// Mounted behind the worker user-type gate: an authenticated admin or
// household receives 403 here, not 200.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/notifications", handler.feed)
	router.Post("/notifications/read", handler.markRead)
	return router
}

// # Request Payloads

type markReadRequest struct {
	IDs []string `json:"ids"`
}

type feedResponse struct {
	Ok    bool              `json:"ok"`
	Items []json.RawMessage `json:"items"`
}

type markReadResponse struct {
	Ok bool `json:"ok"`
}

/*
Feed returns the verified worker's notification feed.

GET /worker/notifications

Description: Rows are filtered to the caller's own worker ID (taken from the
verified claims, never from request parameters), newest first, capped at 50.

Response:
  - 200: {ok:true, items}
  - 401: {error} — unauthenticated
  - 403: {error} — authenticated but not a worker
*/
func (handler *Handler) feed(writer http.ResponseWriter, request *http.Request) {
	user, err := requestutil.RequiredUser(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	items, err := handler.service.Feed(request.Context(), user.ID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, feedResponse{Ok: true, Items: items})
}

/*
MarkRead flags the given notifications as read.

POST /worker/notifications/read

Description: Validates the ID list and updates only rows owned by the
verified worker.

Request:
  - Body: markReadRequest (IDs)

Response:
  - 200: {ok:true}
  - 400: ErrInvalidJSON / validation failure — missing or oversized ID list
*/
func (handler *Handler) markRead(writer http.ResponseWriter, request *http.Request) {
	user, err := requestutil.RequiredUser(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input markReadRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.NotEmpty("ids", input.IDs).
		MaxCount("ids", input.IDs, feedLimit)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.MarkRead(request.Context(), user.ID, input.IDs); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, markReadResponse{Ok: true})
}
