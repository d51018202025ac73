// Copyright (c) 2026 Homezy. All rights reserved.
// Author: dev@homezy.app

package sec

import (
	"net/http"
	"strings"

	"github.com/homezy-app/homezy-api/internal/platform/constants"
)

// # Identity Extraction

const bearerPrefix = "Bearer "

// TokenFromHeader recovers the caller's bearer token from request headers.
//
// # Extraction Rules (first match wins)
//
//  1. 'Authorization: Bearer <token>' with the prefix stripped.
//  2. The raw-token fallback header 'X-Auth-Token'.
//
// Absence is represented as an empty string, never as an error. The token
// content is not parsed here; trust is established exclusively by the
// token-issuing authority. Caller-supplied identity headers (user id, user
// type) are deliberately ignored for authorization decisions.
func TokenFromHeader(header http.Header) string {

	// 1. Standard Authorization header
	authorization := header.Get(constants.HeaderAuthorization)
	if strings.HasPrefix(authorization, bearerPrefix) {
		if token := strings.TrimSpace(strings.TrimPrefix(authorization, bearerPrefix)); token != "" {
			return token
		}
	}

	// 2. Raw-token fallback for clients that cannot set Authorization
	return strings.TrimSpace(header.Get(constants.HeaderAuthToken))
}
