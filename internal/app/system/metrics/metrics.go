// Package metrics defines and registers all custom Prometheus metrics for
// the CyVox console. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default registry via promauto at package
// load; the /metrics endpoint is mounted in bootstrap.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cyvox"

// UpstreamRequestsTotal counts GETs against the CyVox backend API.
// Labels:
//   - endpoint: logical endpoint name (e.g. "complaints_all", "users_all")
//   - result: "ok" or "error"
var UpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total number of upstream CyVox API requests, by endpoint and result.",
	},
	[]string{"endpoint", "result"},
)

// UpstreamRequestDuration measures upstream GET latency per endpoint.
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of upstream CyVox API requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"endpoint"},
)

// NavigationsTotal counts resolved view navigations.
// Label:
//   - view: the resolved view name (e.g. "dashboard", "complaints")
var NavigationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "navigations_total",
		Help:      "Total number of resolved hash navigations, by view.",
	},
	[]string{"view"},
)

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of operator login attempts, by result.",
	},
	[]string{"result"},
)
