// Copyright (c) 2026 Homezy. All rights reserved.
// Author: dev@homezy.app

package listing

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/homezy-app/homezy-api/internal/platform/apperr"
	requestutil "github.com/homezy-app/homezy-api/internal/platform/request"
	"github.com/homezy-app/homezy-api/internal/platform/respond"
	"github.com/homezy-app/homezy-api/pkg/window"
)

// Handler exposes the admin listing endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a listing [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the admin listing router.
//
// # Endpoints
//   - GET /{resource} : jobs, payments, ratings
//
// The route group is mounted behind the admin user-type gate; the privileged
// service credential is used only between this service and the data store,
// never as an end-user gate.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/{resource}", handler.list)
	return router
}

/*
List proxies one windowed, paginated read of a resource collection.

GET /admin/{resource}?fromDays=<int>&limit=<int>&offset=<int>

Description: Parses and clamps the query window, forwards it as a safe
upstream filter, and reshapes the reply (including the exact total from the
count-bearing header) into the stable list envelope.

Response:
  - 200: {ok:true, items, total, limit, offset, fromDays}
  - 404: {error} — unknown resource name
  - 4xx/5xx: {error} — upstream status preserved
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {

	// 1. Resolve the resource descriptor
	resource, ok := ByName(requestutil.Param(request, "resource"))
	if !ok {
		respond.Error(writer, request, apperr.NotFound("Resource"))
		return
	}

	// 2. Parse and clamp the query window
	params := window.FromRequest(request, resource.DefaultWindowDays)

	// 3. Proxy the read
	envelope, err := handler.service.List(request.Context(), resource, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, envelope)
}
