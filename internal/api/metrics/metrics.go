// Package metrics defines and registers all custom Prometheus metrics for the
// ShopKeeper access core. It is the single source of truth for metric names,
// labels, and help strings. Everything registers against the default registry
// at package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "shopkeeper"

// ── Authentication ────────────────────────────────────────────────────────────

// AuthFailuresTotal counts rejected authentication attempts.
// Label:
//   - code: machine-readable failure code (e.g. "TOKEN_EXPIRED", "ACCOUNT_LOCKED")
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of authentication failures, by failure code.",
	},
	[]string{"code"},
)

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

// ── Authorization ─────────────────────────────────────────────────────────────

// AuthzDenialsTotal counts authorization denials.
// Label:
//   - gate: which check denied ("role", "permission", "ownership")
var AuthzDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authz_denials_total",
		Help:      "Total number of authorization denials, by gate.",
	},
	[]string{"gate"},
)

// ── Rate limiting ─────────────────────────────────────────────────────────────

// RateLimitChecksTotal counts sensitive-operation throttle decisions.
// Label:
//   - result: "allowed" or "denied"
var RateLimitChecksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limit_checks_total",
		Help:      "Total number of sliding-window rate limit checks, by result.",
	},
	[]string{"result"},
)

// ── Audit pipeline ────────────────────────────────────────────────────────────

// AuditRecordsTotal counts audit records by pipeline outcome.
// Label:
//   - result: "written", "failed" (sink error), or "dropped" (queue full)
var AuditRecordsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_records_total",
		Help:      "Total number of audit records, by pipeline outcome.",
	},
	[]string{"result"},
)

// AuditQueueDepth tracks the records waiting in each audit worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit records pending in each worker channel.",
	},
	[]string{"worker_id"},
)
