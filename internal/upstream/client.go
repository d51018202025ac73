// Copyright (c) 2026 Homezy. All rights reserved.
// Author: dev@homezy.app

/*
Package upstream implements the REST client for the remote relational data
store.

All persistent state of the platform lives behind this client; the service
itself holds no cross-request mutable state. The store speaks a
PostgREST-style dialect: column selection via 'select', filters as
'<column>=<op>.<value>', ordering via 'order=<column>.<dir>', pagination via
'limit'/'offset', and exact row counts via the 'Prefer: count=exact' request
header answered in 'Content-Range: <start>-<end>/<total>'.

# Architecture

  - Credential: Every call carries the privileged service token minted by
    [sec.ServiceTokenSource]. End-user tokens never reach the data store.
  - Timeouts: Every call is bounded by the configured timeout; an expired
    deadline is classified as unavailability, never as a data error.
  - Errors: Non-2xx replies preserve the upstream's own status code verbatim.
*/
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/homezy-app/homezy-api/internal/platform/apperr"
	"github.com/homezy-app/homezy-api/internal/platform/constants"
	"github.com/homezy-app/homezy-api/internal/platform/metrics"
	"github.com/homezy-app/homezy-api/internal/platform/sec"
)

// # Client Definitions

// Client is the HTTP client for the remote data store.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     *sec.ServiceTokenSource
	gauges     *metrics.Metrics
}

// NewClient constructs a data store [Client].
//
// # Parameters
//   - baseURL: Root URL of the data store's REST interface.
//   - timeout: Bound for every single outbound call (configurable, never hard-coded).
//   - tokens: Source of the privileged service credential.
//   - gauges: Prometheus instrumentation (nil disables metrics).
func NewClient(baseURL string, timeout time.Duration, tokens *sec.ServiceTokenSource, gauges *metrics.Metrics) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		tokens:     tokens,
		gauges:     gauges,
	}
}

// # Query Model

// Filter is a single upstream filter expression, e.g. {"created_at", "gte.2026-01-01T00:00:00Z"}.
type Filter struct {
	Column    string
	Predicate string
}

// Gte builds a lower-bound filter on a column.
func Gte(column, value string) Filter {
	return Filter{Column: column, Predicate: "gte." + value}
}

// Eq builds an equality filter on a column.
func Eq(column, value string) Filter {
	return Filter{Column: column, Predicate: "eq." + value}
}

// In builds a set-membership filter on a column.
func In(column string, values []string) Filter {
	return Filter{Column: column, Predicate: "in.(" + strings.Join(values, ",") + ")"}
}

// Query describes one read against a data store resource.
type Query struct {
	// Resource is the collection name (table/view) to read.
	Resource string

	// Columns enumerates the selected columns. Never empty: the proxy never
	// forwards a bare 'select=*'.
	Columns []string

	// Order is the upstream order expression, e.g. "created_at.desc".
	Order string

	// Filters are ANDed filter expressions.
	Filters []Filter

	// Limit and Offset bound the page. Callers clamp before building a Query.
	Limit  int
	Offset int

	// ExactCount requests an exact row count alongside the page.
	ExactCount bool
}

// # Read Path

// List executes a read query and returns the row sequence plus the exact
// total when the store reported one (nil otherwise).
func (client *Client) List(ctx context.Context, query Query) ([]json.RawMessage, *int, error) {

	// 1. Build the upstream URL
	values := url.Values{}
	values.Set("select", strings.Join(query.Columns, ","))

	if query.Order != "" {
		values.Set("order", query.Order)
	}

	for _, filter := range query.Filters {
		values.Set(filter.Column, filter.Predicate)
	}

	values.Set("limit", strconv.Itoa(query.Limit))
	values.Set("offset", strconv.Itoa(query.Offset))

	requestURL := client.baseURL + "/" + query.Resource + "?" + values.Encode()

	// 2. Issue exactly one upstream call
	header := http.Header{}
	if query.ExactCount {
		header.Set(constants.HeaderPrefer, "count=exact")
	}

	body, responseHeader, err := client.do(ctx, http.MethodGet, requestURL, query.Resource, header, nil)
	if err != nil {
		return nil, nil, err
	}

	// 3. Parse the body as the row sequence
	var rows []json.RawMessage
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, nil, apperr.Internal(fmt.Errorf("upstream: malformed %s payload: %w", query.Resource, err))
	}

	// 4. Extract the exact total from the count-bearing header, if present
	total := ParseContentRange(responseHeader.Get(constants.HeaderContentRange))

	return rows, total, nil
}

// # Write Path

// Insert appends one record to a resource. The store's reply body is discarded.
func (client *Client) Insert(ctx context.Context, resource string, record any) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return apperr.Internal(fmt.Errorf("upstream: encode %s record: %w", resource, err))
	}

	header := http.Header{}
	header.Set(constants.HeaderPrefer, "return=minimal")

	requestURL := client.baseURL + "/" + resource
	_, _, err = client.do(ctx, http.MethodPost, requestURL, resource, header, payload)
	return err
}

// Update patches every record matching the filters. Matching zero records is
// not an error.
func (client *Client) Update(ctx context.Context, resource string, filters []Filter, changes any) error {
	payload, err := json.Marshal(changes)
	if err != nil {
		return apperr.Internal(fmt.Errorf("upstream: encode %s changes: %w", resource, err))
	}

	header := http.Header{}
	header.Set(constants.HeaderPrefer, "return=minimal")

	_, _, err = client.do(ctx, http.MethodPatch, client.filteredURL(resource, filters), resource, header, payload)
	return err
}

// Delete removes every record matching the filters.
//
// # Idempotence
//
// Deleting records that do not exist succeeds: the store replies 2xx with
// zero affected rows, which is exactly the contract logout relies on.
func (client *Client) Delete(ctx context.Context, resource string, filters []Filter) error {
	_, _, err := client.do(ctx, http.MethodDelete, client.filteredURL(resource, filters), resource, nil, nil)
	return err
}

// # Health

// Ping verifies the data store answers at all. Used by the readiness probe.
func (client *Client) Ping(ctx context.Context) error {
	_, _, err := client.do(ctx, http.MethodHead, client.baseURL+"/", "datastore", nil, nil)
	return err
}

// # Transport Internals

func (client *Client) filteredURL(resource string, filters []Filter) string {
	values := url.Values{}
	for _, filter := range filters {
		values.Set(filter.Column, filter.Predicate)
	}
	return client.baseURL + "/" + resource + "?" + values.Encode()
}

// do executes one outbound call, attaching the service credential and
// translating failures into the canonical error taxonomy.
func (client *Client) do(ctx context.Context, method, requestURL, resource string, header http.Header, payload []byte) ([]byte, http.Header, error) {
	serviceToken, err := client.tokens.Token()
	if err != nil {
		return nil, nil, apperr.Internal(err)
	}

	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	request, err := http.NewRequestWithContext(ctx, method, requestURL, bodyReader)
	if err != nil {
		return nil, nil, apperr.Internal(err)
	}

	request.Header.Set(constants.HeaderAuthorization, "Bearer "+serviceToken)
	request.Header.Set("Accept", "application/json")
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	for key, values := range header {
		for _, value := range values {
			request.Header.Add(key, value)
		}
	}

	startTime := time.Now()
	response, err := client.httpClient.Do(request)
	if err != nil {
		// Call-level failure (network error, expired deadline): classified as
		// unavailability, never as a validation failure.
		client.gauges.ObserveUpstream(resource, "error", time.Since(startTime))
		return nil, nil, apperr.Unavailable(resource, err)
	}
	defer func() { _ = response.Body.Close() }()

	client.gauges.ObserveUpstream(resource, statusClass(response.StatusCode), time.Since(startTime))

	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, nil, apperr.Unavailable(resource, err)
	}

	// Non-2xx maps to the envelope's upstream-failure branch with the
	// upstream's own status code preserved.
	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, nil, apperr.Upstream(resource, response.StatusCode)
	}

	return responseBody, response.Header, nil
}

// statusClass buckets an HTTP status for the upstream call counter.
func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}

// ParseContentRange extracts the exact total from a Content-Range header of
// the form "<start>-<end>/<total>".
//
// It takes the substring after the last '/'; an absent header, a '*' total,
// or a malformed value all yield nil rather than an error.
func ParseContentRange(value string) *int {
	if value == "" {
		return nil
	}

	slash := strings.LastIndex(value, "/")
	if slash < 0 {
		return nil
	}

	total, err := strconv.Atoi(strings.TrimSpace(value[slash+1:]))
	if err != nil {
		return nil
	}

	return &total
}
