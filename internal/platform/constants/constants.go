// Copyright (c) 2026 Homezy. All rights reserved.
// Author: dev@homezy.app

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Gateway: Header names and side-effect deadlines for the auth gateway.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "homezy-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Gateway

const (
	// SideEffectWait bounds how long a request handler waits for best-effort
	// side effects (session delete, audit enqueue) before responding anyway.
	SideEffectWait = 2 * time.Second

	// ServiceTokenTTL is the lifetime of a self-signed data-store service token.
	ServiceTokenTTL = 1 * time.Hour

	// ServiceTokenRefreshMargin triggers a re-mint when the current service
	// token has less than this much validity remaining.
	ServiceTokenRefreshMargin = 1 * time.Minute
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"

	// HeaderAuthorization carries the end-user bearer token.
	HeaderAuthorization = "Authorization"

	// HeaderAuthToken is the raw-token fallback set by legacy mobile clients
	// that cannot attach an Authorization header.
	HeaderAuthToken = "X-Auth-Token"

	// HeaderContentRange is the count-bearing response header of the data store.
	HeaderContentRange = "Content-Range"

	// HeaderPrefer asks the data store for an exact row count alongside a page.
	HeaderPrefer = "Prefer"
)

// # JSON Field Identifiers

const (
	// FieldError keys the message in the flat error envelope written on the
	// rate-limit and panic paths, where no typed payload is available.
	FieldError = "error"
)

// # Redis Keys (Queue Taxonomy)

const (
	// RedisKeyAuditQueue is the list holding pending audit events.
	RedisKeyAuditQueue = "audit:events"
)
