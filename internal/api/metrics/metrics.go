// Package metrics defines and registers all custom Prometheus metrics for
// the HR portal gateway. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "hrportal"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts by outcome.
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

// CSRFFetchesTotal counts upstream CSRF token fetches.
// Label:
//   - result: "ok", "rejected" (non-200), "empty" (no usable token), "error" (network)
var CSRFFetchesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "csrf_fetches_total",
		Help:      "Total number of upstream CSRF token fetches, by result.",
	},
	[]string{"result"},
)

// SessionResolutionsTotal counts upstream session checks.
// Label:
//   - result: "authenticated", "unauthenticated", "csrf_unavailable",
//     "unknown_role", or "error"
var SessionResolutionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_resolutions_total",
		Help:      "Total number of upstream session checks, by result.",
	},
	[]string{"result"},
)

// GuardDecisionsTotal counts route-guard evaluations on protected routes.
// Label:
//   - decision: "loading", "authorized", "redirect_login", "redirect_home"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of route guard evaluations, by decision.",
	},
	[]string{"decision"},
)

// ── Upstream metrics ──────────────────────────────────────────────────────────

// UpstreamRequestDuration measures latency of calls to the HR API.
// Labels:
//   - method: HTTP method of the upstream call
//   - status: upstream status code, or "error" when no response was received
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of requests to the upstream HR API.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"method", "status"},
)
