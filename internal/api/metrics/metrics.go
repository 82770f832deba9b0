// Package metrics defines and registers all custom Prometheus metrics for the
// donorhub API. It is the single source of truth for metric names, labels,
// and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "donorhub"

// IdentityResolutionsTotal counts credential resolutions at the
// authentication boundary. Optional-auth routes resolve too, so this is a
// resolution counter, not a login counter.
// Label:
//   - result: "ok" or "rejected"
var IdentityResolutionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "identity_resolutions_total",
		Help:      "Total number of credential resolutions, by result.",
	},
	[]string{"result"},
)

// RoleRequestsTotal counts merchant role request decisions.
// Label:
//   - decision: "submitted", "approved", or "rejected"
var RoleRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "role_requests_total",
		Help:      "Total number of merchant role request decisions.",
	},
	[]string{"decision"},
)

// DonationsCreatedTotal counts newly created donation requests.
var DonationsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "donations_created_total",
		Help:      "Total number of donation requests created.",
	},
)

// PaymentIntentsTotal counts funding payment intents.
// Label:
//   - result: "ok" or "error"
var PaymentIntentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payment_intents_total",
		Help:      "Total number of payment intents requested, by result.",
	},
	[]string{"result"},
)

// AuditQueueDepth tracks the current number of entries waiting in each
// audit dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit entries pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
