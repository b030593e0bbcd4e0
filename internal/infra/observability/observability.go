// Package observability holds the Prometheus metrics for the portions
// service. Metrics are exposed on /metrics when enabled in config.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Ledger Metrics ─────────────────────────────────────────────────────────

// EventsAppended counts appended ledger events by ledger and kind.
var EventsAppended = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "portions",
	Subsystem: "ledger",
	Name:      "events_appended_total",
	Help:      "Total events appended to the event log.",
}, []string{"ledger", "kind"})

// CommandsRejected counts commands refused before any append.
var CommandsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "portions",
	Subsystem: "ledger",
	Name:      "commands_rejected_total",
	Help:      "Total commands rejected by validation or the below-zero guard.",
}, []string{"reason"})

// QueryDuration tracks read-side aggregation latency.
var QueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "portions",
	Subsystem: "ledger",
	Name:      "query_duration_seconds",
	Help:      "Time spent recomputing current values from the event log.",
	Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1},
}, []string{"query"})

// StoreFailures counts unexpected persistence-layer errors.
var StoreFailures = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "portions",
	Subsystem: "store",
	Name:      "failures_total",
	Help:      "Total unexpected store errors surfaced to callers.",
})
