// Package metrics defines and registers all custom Prometheus metrics for
// the Linkroom API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "linkroom"

// ── Job metrics ───────────────────────────────────────────────────────────────

// JobsPostedTotal counts successfully created job postings.
// Label:
//   - role: "employer" or "admin"
var JobsPostedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "jobs_posted_total",
		Help:      "Total number of jobs posted, by actor role.",
	},
	[]string{"role"},
)

// CreditConflictsTotal counts conditional credit decrements that lost a race
// against a concurrent posting (counted per attempt, before retry).
var CreditConflictsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "credit_conflicts_total",
		Help:      "Total number of credit decrement conflicts observed.",
	},
)

// JobsExpiredTotal counts jobs hidden by the expiry sweep.
var JobsExpiredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "jobs_expired_total",
		Help:      "Total number of jobs hidden by the expiry sweep.",
	},
)

// JobsIngestedTotal counts externally ingested jobs.
// Label:
//   - result: "created" or "updated"
var JobsIngestedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "jobs_ingested_total",
		Help:      "Total number of ingested jobs, by upsert result.",
	},
	[]string{"result"},
)

// ── Application metrics ───────────────────────────────────────────────────────

// ApplicationsTotal counts application lifecycle actions.
// Label:
//   - action: "applied" or "withdrawn"
var ApplicationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "applications_total",
		Help:      "Total number of application lifecycle actions.",
	},
	[]string{"action"},
)

// ── Payment metrics ───────────────────────────────────────────────────────────

// PaymentsInitiatedTotal counts payments successfully initiated with the
// external processor.
var PaymentsInitiatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payments_initiated_total",
		Help:      "Total number of payment transactions initiated.",
	},
)

// PaymentsVerifiedTotal counts verification outcomes.
// Label:
//   - result: "activated", "replayed", or "failed"
var PaymentsVerifiedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payments_verified_total",
		Help:      "Total number of payment verifications, by outcome.",
	},
	[]string{"result"},
)

// ProviderRequestDuration measures external payment-processor call latency.
// Label:
//   - operation: "initialize" or "verify"
var ProviderRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "provider_request_duration_seconds",
		Help:      "Duration of external payment processor calls.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)

// ── Alert metrics ─────────────────────────────────────────────────────────────

// AlertsSentTotal counts alert emails dispatched.
// Label:
//   - result: "sent" or "error"
var AlertsSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "alerts_sent_total",
		Help:      "Total number of job alert emails dispatched, by result.",
	},
	[]string{"result"},
)

// AlertQueueDepth tracks pending alert deliveries per dispatcher worker.
// Label:
//   - worker_id: numeric worker index
var AlertQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "alert_queue_depth",
		Help:      "Current number of alert deliveries pending per worker.",
	},
	[]string{"worker_id"},
)
