// Copyright (c) 2026 Homezy. All rights reserved.
// Author: dev@homezy.app

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/homezy-app/homezy-api/internal/platform/middleware"
	requestutil "github.com/homezy-app/homezy-api/internal/platform/request"
	"github.com/homezy-app/homezy-api/internal/platform/respond"
	"github.com/homezy-app/homezy-api/internal/platform/sec"
)

// # Definitions & Constructors

// Handler implements the gateway's authentication HTTP endpoints.
//
// Verification itself happens once per request in the authenticate
// middleware; this handler only shapes its outcome into the auth envelopes.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its dependencies.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication routes.
//
// # Endpoints
//   - GET  /verify : Confirms the caller's token and returns the verified user.
//   - POST /logout : Revokes the caller's session (verified identity required).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Verify converts the chain's verification outcome into the
	// authenticated:false envelope on failure, so no guard sits in front.
	router.Get("/verify", handler.verify)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/logout", handler.logout)
	})

	return router
}

// # Response Payloads

type verifySuccessResponse struct {
	Success       bool              `json:"success"`
	Authenticated bool              `json:"authenticated"`
	User          *sec.VerifiedUser `json:"user"`
}

type logoutResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

/*
Verify confirms the caller's identity.

GET /auth/verify

Description: Reports the outcome of this request's single verification pass
against the issuing authority. No caching and no second authority call — the
authenticate middleware verified already; this endpoint only reshapes its
result into the verify-style envelope.

Response:
  - 200: {success:true, authenticated:true, user}
  - 401: {error, authenticated:false} — missing or rejected token
  - 502: {error, authenticated:false} — authority unreachable
*/
func (handler *Handler) verify(writer http.ResponseWriter, request *http.Request) {

	// 1. Read the chain's verification result; nothing else is trusted.
	user := middleware.GetUser(request.Context())
	if user == nil {
		respond.AuthError(writer, request, middleware.VerificationError(
			middleware.AuthFailure(request.Context()),
		))
		return
	}

	respond.OK(writer, verifySuccessResponse{
		Success:       true,
		Authenticated: true,
		User:          user,
	})
}

/*
Logout terminates the current user session.

POST /auth/logout

Description: Deletes the session record keyed by the caller's token (best
effort) and records a security audit event (best effort). Both side effects
are independent; their failures are swallowed, so a logout observed by the
client always succeeds once the caller is verified.

Response:
  - 200: {success:true, message}
  - 401: {error} — no verified identity
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	user, err := requestutil.RequiredUser(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.authService.Logout(request.Context(), user, middleware.RealIP(request))

	respond.OK(writer, logoutResponse{
		Success: true,
		Message: "Logged out successfully",
	})
}
