// Copyright (c) 2026 Homezy. All rights reserved.
// Author: dev@homezy.app

package sec_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homezy-app/homezy-api/internal/platform/sec"
)

/*
TestTokenFromHeader verifies the identity extraction rules: Authorization
bearer first, raw-token fallback second, absence as empty string.
*/
func TestTokenFromHeader(t *testing.T) {
	tests := []struct {
		name      string
		authz     string
		authToken string
		want      string
	}{
		{"bearer_token", "Bearer abc123", "", "abc123"},
		{"bearer_with_padding", "Bearer   abc123  ", "", "abc123"},
		{"fallback_header", "", "raw-token", "raw-token"},
		{"bearer_wins_over_fallback", "Bearer primary", "secondary", "primary"},
		{"empty_bearer_falls_back", "Bearer ", "raw-token", "raw-token"},
		{"non_bearer_scheme_ignored", "Basic dXNlcjpwYXNz", "", ""},
		{"no_headers", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := http.Header{}
			if tt.authz != "" {
				header.Set("Authorization", tt.authz)
			}
			if tt.authToken != "" {
				header.Set("X-Auth-Token", tt.authToken)
			}

			assert.Equal(t, tt.want, sec.TokenFromHeader(header))
		})
	}
}

/*
TestUserType_Matches verifies the exact-match authorization policy: no
hierarchy between user types.
*/
func TestUserType_Matches(t *testing.T) {
	tests := []struct {
		name     string
		actual   sec.UserType
		required sec.UserType
		want     bool
	}{
		{"worker_on_worker_route", sec.TypeWorker, sec.TypeWorker, true},
		{"admin_on_admin_route", sec.TypeAdmin, sec.TypeAdmin, true},
		{"admin_on_worker_route", sec.TypeAdmin, sec.TypeWorker, false},
		{"worker_on_admin_route", sec.TypeWorker, sec.TypeAdmin, false},
		{"household_on_worker_route", sec.TypeHousehold, sec.TypeWorker, false},
		{"any_type_when_unrestricted", sec.TypeHousehold, "", true},
		{"unknown_type_when_unrestricted", sec.UserType("ghost"), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.actual.Matches(tt.required))
		})
	}
}

/*
TestUserType_Valid verifies the known user type set.
*/
func TestUserType_Valid(t *testing.T) {
	assert.True(t, sec.TypeHousehold.Valid())
	assert.True(t, sec.TypeWorker.Valid())
	assert.True(t, sec.TypeAdmin.Valid())
	assert.False(t, sec.UserType("superuser").Valid())
	assert.False(t, sec.UserType("").Valid())
}

/*
TestServiceTokenSource verifies that the minted service token is a signed
HS256 JWT carrying the service role, and that it is reused while valid.
*/
func TestServiceTokenSource(t *testing.T) {
	source := sec.NewServiceTokenSource("test-secret", "homezy-api", time.Hour, time.Minute)

	signed, err := source.Token()
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	// Parse it back with the shared secret
	claims := &sec.ServiceClaims{}
	parsed, err := jwt.ParseWithClaims(signed, claims, func(token *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, "service_role", claims.Role)
	assert.Equal(t, "homezy-api", claims.Issuer)

	// A fresh token is reused, not re-minted, while validity remains
	again, err := source.Token()
	require.NoError(t, err)
	assert.Equal(t, signed, again)
}
