// Copyright (c) 2026 Homezy. All rights reserved.
// Author: dev@homezy.app

/*
Package listing implements the read-query proxy shared by every paginated,
time-windowed listing endpoint.

# Architecture

One generic, parameterized routine replaces the per-resource fetch-filter-
reshape copies: a [Resource] descriptor names the collection, its enumerated
columns, its default window, its sort key, and whether an exact count is
requested. Handlers stay one line per resource.
*/
package listing

// # Resource Descriptors

// Resource describes one listable data store collection.
type Resource struct {
	// Name is the data store collection (table/view).
	Name string

	// Columns enumerates the selected columns; the proxy never selects '*'.
	Columns []string

	// TimestampColumn carries the window's lower bound filter.
	TimestampColumn string

	// DefaultWindowDays is the fromDays fallback for this resource.
	DefaultWindowDays int

	// Order is the upstream order expression. Time-series resources sort
	// ascending; paginated listings sort newest-first.
	Order string

	// Counted requests an exact row count alongside the page. Uncounted
	// resources report total as null.
	Counted bool
}

var (
	// Jobs lists household job bookings, newest first.
	Jobs = Resource{
		Name:              "jobs",
		Columns:           []string{"id", "household_id", "worker_id", "status", "scheduled_at", "total_amount", "created_at"},
		TimestampColumn:   "created_at",
		DefaultWindowDays: 30,
		Order:             "created_at.desc",
		Counted:           true,
	}

	// Payments lists settlement records, newest first.
	Payments = Resource{
		Name:              "payments",
		Columns:           []string{"id", "job_id", "household_id", "amount", "status", "method", "created_at"},
		TimestampColumn:   "created_at",
		DefaultWindowDays: 30,
		Order:             "created_at.desc",
		Counted:           true,
	}

	// Ratings lists worker ratings as a time series, oldest first.
	Ratings = Resource{
		Name:              "ratings",
		Columns:           []string{"id", "job_id", "worker_id", "stars", "comment", "created_at"},
		TimestampColumn:   "created_at",
		DefaultWindowDays: 90,
		Order:             "created_at.asc",
		Counted:           false,
	}
)

// resources indexes the listable collections by URL name.
var resources = map[string]Resource{
	Jobs.Name:     Jobs,
	Payments.Name: Payments,
	Ratings.Name:  Ratings,
}

// ByName resolves a listable resource from its URL name.
func ByName(name string) (Resource, bool) {
	resource, ok := resources[name]
	return resource, ok
}
