// Copyright (c) 2026 Homezy. All rights reserved.
// Author: dev@homezy.app

/*
Package notification implements the worker-facing notification feed.

# Architecture

Notifications live in the remote data store; this package scopes every read
and write to the verified worker's own rows. The worker identity comes
exclusively from the verified claims in the request context — never from
caller-supplied parameters — so one worker can never address another
worker's feed.
*/
package notification

// # Collection Shape

const (
	// resource is the data store collection.
	resource = "notifications"

	// feedLimit caps the feed at the newest entries.
	feedLimit = 50
)

// columns enumerates the selected notification columns.
var columns = []string{"id", "worker_id", "title", "body", "is_read", "created_at"}
