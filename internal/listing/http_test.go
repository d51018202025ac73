// Copyright (c) 2026 Homezy. All rights reserved.
// Author: dev@homezy.app

package listing_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homezy-app/homezy-api/internal/listing"
	"github.com/homezy-app/homezy-api/internal/platform/sec"
	"github.com/homezy-app/homezy-api/internal/upstream"
)

// upstreamFake is a canned data store: it records the query it received and
// replies with a fixed page.
type upstreamFake struct {
	lastPath  string
	lastQuery url.Values
	lastCount string
	status    int
	body      string
	count     string
}

func (f *upstreamFake) handler() http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		f.lastPath = request.URL.Path
		f.lastQuery = request.URL.Query()
		f.lastCount = request.Header.Get("Prefer")

		if f.count != "" {
			writer.Header().Set("Content-Range", f.count)
		}
		if f.status != 0 {
			writer.WriteHeader(f.status)
			return
		}
		_, _ = writer.Write([]byte(f.body))
	}
}

func newListingRouter(t *testing.T, fake *upstreamFake) chi.Router {
	t.Helper()
	server := httptest.NewServer(fake.handler())
	t.Cleanup(server.Close)

	tokens := sec.NewServiceTokenSource("test-secret", "homezy-api", time.Hour, time.Minute)
	client := upstream.NewClient(server.URL, 2*time.Second, tokens, nil)
	handler := listing.NewHandler(listing.NewService(client))

	router := chi.NewRouter()
	router.Mount("/admin", handler.Routes())
	return router
}

type envelope struct {
	Ok       bool              `json:"ok"`
	Items    []json.RawMessage `json:"items"`
	Total    *int              `json:"total"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
	FromDays int               `json:"fromDays"`
}

/*
TestList_Jobs verifies one full proxy pass: clamped window in, upstream
filter out, stable envelope back.
*/
func TestList_Jobs(t *testing.T) {
	fake := &upstreamFake{
		body:  `[{"id":"j-1","status":"completed"},{"id":"j-2","status":"pending"}]`,
		count: "0-1/57",
	}
	router := newListingRouter(t, fake)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("GET", "/admin/jobs?fromDays=7&limit=25&offset=50", nil))

	require.Equal(t, http.StatusOK, recorder.Code)

	var got envelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))

	assert.True(t, got.Ok)
	assert.Len(t, got.Items, 2)
	require.NotNil(t, got.Total)
	assert.Equal(t, 57, *got.Total)
	assert.Equal(t, 25, got.Limit)
	assert.Equal(t, 50, got.Offset)
	assert.Equal(t, 7, got.FromDays)

	// The upstream saw a safe, parameterized query — never raw client input.
	assert.Equal(t, "/jobs", fake.lastPath)
	assert.Equal(t, "id,household_id,worker_id,status,scheduled_at,total_amount,created_at", fake.lastQuery.Get("select"))
	assert.Equal(t, "created_at.desc", fake.lastQuery.Get("order"))
	assert.Equal(t, "25", fake.lastQuery.Get("limit"))
	assert.Equal(t, "50", fake.lastQuery.Get("offset"))
	assert.Equal(t, "count=exact", fake.lastCount)

	// Lower-bound filter is an absolute RFC 3339 UTC timestamp.
	bound := fake.lastQuery.Get("created_at")
	require.True(t, len(bound) > 4 && bound[:4] == "gte.")
	parsed, err := time.Parse(time.RFC3339, bound[4:])
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC().Add(-7*24*time.Hour), parsed, 5*time.Second)
}

/*
TestList_Ratings verifies the uncounted, ascending time-series variant:
total is null and no count preference is sent upstream.
*/
func TestList_Ratings(t *testing.T) {
	fake := &upstreamFake{body: `[{"id":"r-1","stars":5}]`}
	router := newListingRouter(t, fake)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("GET", "/admin/ratings", nil))

	require.Equal(t, http.StatusOK, recorder.Code)

	var got envelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))

	assert.Nil(t, got.Total)
	assert.Equal(t, 90, got.FromDays) // resource-specific default window
	assert.Equal(t, "created_at.asc", fake.lastQuery.Get("order"))
	assert.Empty(t, fake.lastCount)
}

/*
TestList_EmptyPage verifies items serializes as [] and never null.
*/
func TestList_EmptyPage(t *testing.T) {
	fake := &upstreamFake{body: `[]`, count: "*/0"}
	router := newListingRouter(t, fake)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("GET", "/admin/payments", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"items":[]`)

	var got envelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.NotNil(t, got.Total)
	assert.Equal(t, 0, *got.Total)
}

/*
TestList_ClampsWindow verifies abusive parameters are clamped, not rejected.
*/
func TestList_ClampsWindow(t *testing.T) {
	fake := &upstreamFake{body: `[]`}
	router := newListingRouter(t, fake)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("GET", "/admin/jobs?limit=9999&offset=-3&fromDays=junk", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "100", fake.lastQuery.Get("limit"))
	assert.Equal(t, "0", fake.lastQuery.Get("offset"))

	var got envelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	assert.Equal(t, 100, got.Limit)
	assert.Equal(t, 30, got.FromDays)
}

/*
TestList_UnknownResource verifies that an unmapped collection name is a 404
before any upstream call.
*/
func TestList_UnknownResource(t *testing.T) {
	fake := &upstreamFake{body: `[]`}
	router := newListingRouter(t, fake)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("GET", "/admin/users", nil))

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Empty(t, fake.lastPath)
}

/*
TestList_UpstreamFailure verifies that a non-2xx data store reply propagates
with its own status code and the fixed message shape.
*/
func TestList_UpstreamFailure(t *testing.T) {
	fake := &upstreamFake{status: http.StatusServiceUnavailable}
	router := newListingRouter(t, fake)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("GET", "/admin/jobs", nil))

	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
	assert.Equal(t, "jobs 503", payload["error"])
}

/*
TestByName verifies the resource registry.
*/
func TestByName(t *testing.T) {
	for _, name := range []string{"jobs", "payments", "ratings"} {
		resource, ok := listing.ByName(name)
		assert.True(t, ok, name)
		assert.Equal(t, name, resource.Name)
		assert.NotEmpty(t, resource.Columns)
	}

	_, ok := listing.ByName("sessions")
	assert.False(t, ok)
}
