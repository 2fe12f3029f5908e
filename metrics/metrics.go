// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package metrics holds the portal's prometheus collectors. They register on
// the default registry and are served by promhttp at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tanker_portal_http_requests_total",
		Help: "HTTP requests served, by method, route and status code",
	}, []string{"method", "route", "code"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tanker_portal_http_request_duration_seconds",
		Help:    "HTTP request latency by route",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	}, []string{"route"})

	UpstreamCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tanker_portal_upstream_calls_total",
		Help: "Calls to the drought backend, by endpoint and outcome",
	}, []string{"endpoint", "outcome"})

	FetchFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tanker_portal_fetch_fallbacks_total",
		Help: "Reads that degraded to the static demo dataset, by dataset",
	}, []string{"dataset"})

	ActionOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tanker_portal_action_outcomes_total",
		Help: "Approve/reject outcomes by target status and kind (confirmed, optimistic)",
	}, []string{"status", "kind"})

	NotificationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tanker_portal_notification_failures_total",
		Help: "Fire-and-forget driver notifications that failed",
	})

	ToastShows = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tanker_portal_toast_shows_total",
		Help: "Toast messages shown",
	})
)

// Outcome labels for UpstreamCalls
const (
	OutcomeOK        = "ok"
	OutcomeTransport = "transport_error"
	OutcomeStatus    = "status_error"
	OutcomeSchema    = "schema_error"
	OutcomeEmpty     = "empty"
)
