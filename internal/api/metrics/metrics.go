// Package metrics defines and registers all custom Prometheus metrics for the
// quotes API. It is the single source of truth for metric names, labels, and
// help strings. Registration happens at import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "quotes"

// QuotesCreatedTotal counts newly created quotes.
// Label:
//   - visibility: "public" or "private"
var QuotesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "created_total",
		Help:      "Total number of quotes created, by visibility.",
	},
	[]string{"visibility"},
)

// QuotesDeletedTotal counts deleted quotes.
var QuotesDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "deleted_total",
		Help:      "Total number of quotes deleted.",
	},
)

// ListRequestsTotal counts listing queries by the kind of actor issuing them.
// Label:
//   - actor: "anonymous", "user" or "admin"
var ListRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "list_requests_total",
		Help:      "Total number of quote list queries, by actor kind.",
	},
	[]string{"actor"},
)

// AuthzDeniedTotal counts mutation attempts rejected by the authorization
// gate.
// Label:
//   - action: "update" or "delete"
var AuthzDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authz_denied_total",
		Help:      "Total number of mutations denied by the authorization gate.",
	},
	[]string{"action"},
)

// ListQueryDuration measures how long the filtered list query takes against
// the store.
var ListQueryDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "list_query_duration_seconds",
		Help:      "Duration of the filtered quote list query.",
		Buckets:   prometheus.DefBuckets,
	},
)
