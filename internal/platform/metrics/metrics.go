// Copyright (c) 2026 Homezy. All rights reserved.
// Author: dev@homezy.app

// Package metrics registers and exposes the Prometheus instrumentation for
// the gateway: authentication outcomes and upstream call latency.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	authRequests     *prometheus.CounterVec
	upstreamRequests *prometheus.CounterVec
	upstreamLatency  prometheus.Histogram
}

// New creates and registers all Prometheus metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		authRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "homezy_auth_requests_total",
			Help: "Token verification attempts by outcome",
		}, []string{"outcome"}),

		upstreamRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "homezy_upstream_requests_total",
			Help: "Data store calls by resource and status class",
		}, []string{"resource", "status"}),

		upstreamLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "homezy_upstream_request_duration_seconds",
			Help:    "Latency of data store calls",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// ObserveAuth counts one token verification attempt.
// Safe to call on a nil receiver (metrics disabled in tests).
func (m *Metrics) ObserveAuth(outcome string) {
	if m == nil {
		return
	}
	m.authRequests.WithLabelValues(outcome).Inc()
}

// ObserveUpstream counts one data store call and records its latency.
// Safe to call on a nil receiver.
func (m *Metrics) ObserveUpstream(resource, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.upstreamRequests.WithLabelValues(resource, status).Inc()
	m.upstreamLatency.Observe(duration.Seconds())
}
