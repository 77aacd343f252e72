// Package metrics defines and registers all custom Prometheus metrics for the
// domain console. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation (promauto), so importing the package is enough.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "console"

// ── Backend API metrics ───────────────────────────────────────────────────────

// APIRequestsTotal counts calls made by the API client.
// Labels:
//   - resource: first path segment of the endpoint (e.g. "profile", "config", "dev-login")
//   - method:   HTTP method
//   - code:     HTTP status code, or "error" when the request never completed
var APIRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "api_requests_total",
		Help:      "Total number of backend API requests, by resource, method and status code.",
	},
	[]string{"resource", "method", "code"},
)

// APIRequestDuration measures backend round-trip latency.
var APIRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "api_request_duration_seconds",
		Help:      "Duration of backend API requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"resource", "method"},
)

// SessionTeardownsTotal counts sessions cleared because the backend answered 401.
var SessionTeardownsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_teardowns_total",
		Help:      "Total number of sessions cleared after an unauthorized backend response.",
	},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ConfigLoadsTotal counts configuration document fetches.
// Label:
//   - result: "success" or "failure"
var ConfigLoadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "config_loads_total",
		Help:      "Total number of configuration loads, by result.",
	},
	[]string{"result"},
)

// GuardDecisionsTotal counts navigation guard outcomes.
// Label:
//   - outcome: "allowed", "login" or "forbidden"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of navigation guard decisions, by outcome.",
	},
	[]string{"outcome"},
)

// ActiveBrowserSessions tracks session contexts held by the console server.
var ActiveBrowserSessions = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "browser_sessions_active",
		Help:      "Current number of browser session contexts held in memory.",
	},
)

// Result label values.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)
