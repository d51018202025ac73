// Copyright (c) 2026 Homezy. All rights reserved.
// Author: dev@homezy.app

package middleware_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homezy-app/homezy-api/internal/platform/middleware"
	"github.com/homezy-app/homezy-api/internal/platform/sec"
)

// fakeVerifier returns canned verification results keyed by token.
type fakeVerifier struct {
	users map[string]*sec.VerifiedUser
	err   error
	calls int
}

func (f *fakeVerifier) Verify(_ context.Context, token string) (*sec.VerifiedUser, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	user, ok := f.users[token]
	if !ok {
		return nil, fmt.Errorf("%w: unknown", sec.ErrInvalidToken)
	}
	return user, nil
}

// echoUser terminates the chain and reports the verified identity it saw.
func echoUser(writer http.ResponseWriter, request *http.Request) {
	user := middleware.GetUser(request.Context())
	if user == nil {
		writer.WriteHeader(http.StatusOK)
		_, _ = writer.Write([]byte("anonymous"))
		return
	}
	_, _ = writer.Write([]byte(user.ID))
}

/*
TestAuthenticate_Anonymous verifies that a request without any token passes
through as anonymous — no verification call is made.
*/
func TestAuthenticate_Anonymous(t *testing.T) {
	verifier := &fakeVerifier{}
	handler := middleware.Authenticate(verifier, nil)(http.HandlerFunc(echoUser))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "anonymous", recorder.Body.String())
	assert.Zero(t, verifier.calls)
}

/*
TestAuthenticate_ValidToken verifies that verified claims are injected into
the request context.
*/
func TestAuthenticate_ValidToken(t *testing.T) {
	verifier := &fakeVerifier{users: map[string]*sec.VerifiedUser{
		"good-token": {ID: "user-7", Type: sec.TypeWorker},
	}}
	handler := middleware.Authenticate(verifier, nil)(http.HandlerFunc(echoUser))

	request := httptest.NewRequest("GET", "/", nil)
	request.Header.Set("Authorization", "Bearer good-token")

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "user-7", recorder.Body.String())
	assert.Equal(t, 1, verifier.calls)
}

/*
TestAuthenticate_NoCaching verifies that every request re-verifies: two
requests with the same token produce two verification calls.
*/
func TestAuthenticate_NoCaching(t *testing.T) {
	verifier := &fakeVerifier{users: map[string]*sec.VerifiedUser{
		"good-token": {ID: "user-7", Type: sec.TypeWorker},
	}}
	handler := middleware.Authenticate(verifier, nil)(http.HandlerFunc(echoUser))

	for i := 0; i < 2; i++ {
		request := httptest.NewRequest("GET", "/", nil)
		request.Header.Set("Authorization", "Bearer good-token")
		handler.ServeHTTP(httptest.NewRecorder(), request)
	}

	assert.Equal(t, 2, verifier.calls)
}

/*
TestAuthenticate_InvalidTokenDefers verifies that a rejected token does not
terminate the request at the middleware: open routes see it as anonymous,
while the recorded failure stays available for whatever gate owns the route.
*/
func TestAuthenticate_InvalidTokenDefers(t *testing.T) {
	verifier := &fakeVerifier{err: fmt.Errorf("%w: authority status 401", sec.ErrInvalidToken)}
	handler := middleware.Authenticate(verifier, nil)(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Nil(t, middleware.GetUser(request.Context()))
		assert.ErrorIs(t, middleware.AuthFailure(request.Context()), sec.ErrInvalidToken)
		writer.WriteHeader(http.StatusOK)
	}))

	request := httptest.NewRequest("GET", "/", nil)
	request.Header.Set("Authorization", "Bearer bad-token")

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
}

/*
TestAuthenticate_InvalidToken verifies the 401 envelope when a guarded route
consumes a rejected token.
*/
func TestAuthenticate_InvalidToken(t *testing.T) {
	verifier := &fakeVerifier{err: fmt.Errorf("%w: authority status 401", sec.ErrInvalidToken)}
	gate := middleware.RequireAuth(http.HandlerFunc(echoUser))
	handler := middleware.Authenticate(verifier, nil)(gate)

	request := httptest.NewRequest("GET", "/", nil)
	request.Header.Set("Authorization", "Bearer bad-token")

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
	assert.Equal(t, "Invalid or expired token", payload["error"])
}

/*
TestAuthenticate_AuthorityDown verifies that an unreachable authority yields
502 at the guard, never a credential failure.
*/
func TestAuthenticate_AuthorityDown(t *testing.T) {
	verifier := &fakeVerifier{err: fmt.Errorf("%w: dial tcp: timeout", sec.ErrAuthorityUnavailable)}
	gate := middleware.RequireAuth(http.HandlerFunc(echoUser))
	handler := middleware.Authenticate(verifier, nil)(gate)

	request := httptest.NewRequest("GET", "/", nil)
	request.Header.Set("Authorization", "Bearer any-token")

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusBadGateway, recorder.Code)
}

/*
TestRequireAuth verifies the anonymous-request gate.
*/
func TestRequireAuth(t *testing.T) {
	handler := middleware.RequireAuth(http.HandlerFunc(echoUser))

	// Anonymous: blocked
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest("POST", "/", nil))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	// Authenticated: passes
	verifier := &fakeVerifier{users: map[string]*sec.VerifiedUser{
		"good-token": {ID: "user-7", Type: sec.TypeHousehold},
	}}
	chained := middleware.Authenticate(verifier, nil)(handler)

	request := httptest.NewRequest("POST", "/", nil)
	request.Header.Set("Authorization", "Bearer good-token")

	recorder = httptest.NewRecorder()
	chained.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

/*
TestRequireType verifies exact-match user-type enforcement: no hierarchy, an
admin is rejected on a worker-only route.
*/
func TestRequireType(t *testing.T) {
	tests := []struct {
		name       string
		userType   sec.UserType
		required   sec.UserType
		wantStatus int
	}{
		{"worker_allowed", sec.TypeWorker, sec.TypeWorker, http.StatusOK},
		{"admin_allowed_on_admin", sec.TypeAdmin, sec.TypeAdmin, http.StatusOK},
		{"admin_rejected_on_worker", sec.TypeAdmin, sec.TypeWorker, http.StatusForbidden},
		{"worker_rejected_on_admin", sec.TypeWorker, sec.TypeAdmin, http.StatusForbidden},
		{"household_rejected_on_worker", sec.TypeHousehold, sec.TypeWorker, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := &fakeVerifier{users: map[string]*sec.VerifiedUser{
				"token": {ID: "u-1", Type: tt.userType},
			}}

			gate := middleware.RequireType(tt.required)(http.HandlerFunc(echoUser))
			handler := middleware.Authenticate(verifier, nil)(gate)

			request := httptest.NewRequest("GET", "/", nil)
			request.Header.Set("Authorization", "Bearer token")

			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)

			if tt.wantStatus == http.StatusForbidden {
				var payload map[string]any
				require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
				assert.Equal(t, fmt.Sprintf("Access restricted to %ss", tt.required), payload["error"])
			}
		})
	}
}

/*
TestRequireType_Anonymous verifies that the type gate implies authentication.
*/
func TestRequireType_Anonymous(t *testing.T) {
	handler := middleware.RequireType(sec.TypeAdmin)(http.HandlerFunc(echoUser))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

/*
TestVerificationError verifies the sentinel-to-envelope mapping, in
particular that unavailability never downgrades to a credential error.
*/
func TestVerificationError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"missing_token", sec.ErrMissingToken, http.StatusUnauthorized},
		{"invalid_token", fmt.Errorf("%w: rejected", sec.ErrInvalidToken), http.StatusUnauthorized},
		{"authority_unavailable", fmt.Errorf("%w: timeout", sec.ErrAuthorityUnavailable), http.StatusBadGateway},
		{"unexpected", fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appError := middleware.VerificationError(tt.err)
			require.NotNil(t, appError)
			assert.Equal(t, tt.wantStatus, appError.HTTPStatus)
		})
	}
}
