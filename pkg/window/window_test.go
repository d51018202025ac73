// Copyright (c) 2026 Homezy. All rights reserved.
// Author: dev@homezy.app

package window_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/homezy-app/homezy-api/pkg/window"
)

/*
TestFromRequest_Clamping verifies that caller-supplied window parameters are
clamped to safe bounds instead of rejected.
*/
func TestFromRequest_Clamping(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		defaultDays  int
		wantFromDays int
		wantLimit    int
		wantOffset   int
	}{
		{"all_defaults", "", 30, 30, 20, 0},
		{"explicit_values", "fromDays=7&limit=50&offset=40", 30, 7, 50, 40},
		{"limit_above_max", "limit=1000", 30, 30, 100, 0},
		{"limit_at_max", "limit=100", 30, 30, 100, 0},
		{"limit_zero", "limit=0", 30, 30, 20, 0},
		{"limit_negative", "limit=-3", 30, 30, 20, 0},
		{"offset_negative", "offset=-5", 30, 30, 20, 0},
		{"from_days_negative", "fromDays=-1", 90, 90, 20, 0},
		{"non_numeric_from_days", "fromDays=abc", 30, 30, 20, 0},
		{"non_numeric_limit", "limit=twenty", 30, 30, 20, 0},
		{"non_numeric_offset", "offset=1.5", 30, 30, 20, 0},
		{"resource_specific_default", "", 90, 90, 20, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", "/admin/jobs?"+tt.query, nil)
			params := window.FromRequest(request, tt.defaultDays)

			assert.Equal(t, tt.wantFromDays, params.FromDays)
			assert.Equal(t, tt.wantLimit, params.Limit)
			assert.Equal(t, tt.wantOffset, params.Offset)
		})
	}
}

/*
TestParams_Since verifies the absolute UTC lower-bound computation.
*/
func TestParams_Since(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	params := window.Params{FromDays: 30}
	assert.Equal(t, "2026-07-29T12:00:00Z", params.Since(now))

	params = window.Params{FromDays: 0}
	assert.Equal(t, "2026-08-28T12:00:00Z", params.Since(now))
}

/*
TestParams_Since_NormalizesToUTC verifies that a zoned clock still produces a
UTC RFC 3339 bound.
*/
func TestParams_Since_NormalizesToUTC(t *testing.T) {
	zone := time.FixedZone("JST", 9*3600)
	now := time.Date(2026, 8, 28, 9, 0, 0, 0, zone) // 00:00 UTC

	params := window.Params{FromDays: 1}
	assert.Equal(t, "2026-08-27T00:00:00Z", params.Since(now))
}
