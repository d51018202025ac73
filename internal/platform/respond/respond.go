// Copyright (c) 2026 Homezy. All rights reserved.
// Author: dev@homezy.app

// Package respond provides HTTP response helpers used by all API handlers.
//
// # Architecture
//
// This package centralizes the presentation logic for HTTP responses.
// It ensures that every response (Success or Error) across the entire application
// follows a strict, predictable JSON envelope structure. This consistency is
// crucial for mobile apps and frontend SPAs to parse data robustly.
//
// Every branch produces exactly one response; no path both fails and writes.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/homezy-app/homezy-api/internal/platform/apperr"
	"github.com/homezy-app/homezy-api/internal/platform/ctxkey"
)

// exposeDetails controls whether 500 responses carry diagnostic detail.
// It is enabled once at startup for non-production builds only.
var exposeDetails bool

// ExposeDetails toggles diagnostic detail on internal-error responses.
// Call once during startup wiring; never flip at runtime.
func ExposeDetails(enabled bool) { exposeDetails = enabled }

// ErrorEnvelope is the JSON envelope for error responses.
type ErrorEnvelope struct {
	Error string `json:"error"`

	// Authenticated is present (false) only on verify-style auth failures.
	Authenticated *bool `json:"authenticated,omitempty"`

	// Details carries field-level validation errors, or diagnostic text on
	// 500 responses in non-production builds.
	Details any `json:"details,omitempty"`
}

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload interface{}) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 OK response with the handler-built payload.
//
// Handlers own their success envelope ({ok:true,...} for listings,
// {success:true,...} for auth actions); this helper only fixes status
// and content type.
func OK(writer http.ResponseWriter, payload interface{}) {
	JSON(writer, http.StatusOK, payload)
}

// Error converts any Go error into a standardized JSON API error response.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	writeError(writer, request, err, nil)
}

// AuthError behaves like [Error] but marks the verify-style envelope with
// authenticated:false, as consumed by session-restoring clients.
func AuthError(writer http.ResponseWriter, request *http.Request, err error) {
	authenticated := false
	writeError(writer, request, err, &authenticated)
}

func writeError(writer http.ResponseWriter, request *http.Request, err error, authenticated *bool) {
	var appError *apperr.AppError
	if !errors.As(err, &appError) {
		// Unexpected internal error: log full details but hide them from the client for security.
		logger := getLoggerFromContext(request)
		logger.ErrorContext(request.Context(), "unhandled_error_swallowed",
			slog.String("error", err.Error()),
			slog.String("request_id", getRequestIDFromContext(request)),
		)
		appError = apperr.Internal(err)
	}

	// Always log 5xx errors as they indicate server-side issues.
	if appError.HTTPStatus >= 500 {
		logger := getLoggerFromContext(request)
		logger.ErrorContext(request.Context(), "api_server_error",
			slog.String("code", appError.Code),
			slog.String("request_id", getRequestIDFromContext(request)),
			slog.Any("cause", appError.Cause),
		)
	}

	envelope := ErrorEnvelope{
		Error:         appError.Message,
		Authenticated: authenticated,
	}

	if len(appError.Details) > 0 {
		envelope.Details = appError.Details
	}

	// Diagnostic detail is a development aid only; production builds never
	// leak causes, stack traces, or credentials.
	if exposeDetails && appError.HTTPStatus == http.StatusInternalServerError && appError.Cause != nil {
		envelope.Details = appError.Cause.Error()
	}

	JSON(writer, appError.HTTPStatus, envelope)
}

// getLoggerFromContext extracts the per-request logger.
func getLoggerFromContext(request *http.Request) *slog.Logger {
	if logger, ok := request.Context().Value(ctxkey.KeyLogger).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// getRequestIDFromContext extracts the X-Request-ID for log correlation.
func getRequestIDFromContext(request *http.Request) string {
	if id, ok := request.Context().Value(ctxkey.KeyRequestID).(string); ok {
		return id
	}
	return ""
}
