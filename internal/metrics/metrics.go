// Package metrics defines Prometheus instrumentation for the offline cache
// and its synchronization passes.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// EntriesReplayed tracks outbox entries replayed against the remote API,
	// labelled by collection and terminal status (synced/failed).
	EntriesReplayed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "opticsave_outbox_entries_replayed_total",
		Help: "Total number of outbox entries replayed against the remote API",
	}, []string{"collection", "status"})

	// SyncPassDuration measures how long a full synchronization pass takes.
	SyncPassDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "opticsave_sync_pass_duration_seconds",
		Help:    "Duration of a full synchronization pass in seconds",
		Buckets: prometheus.DefBuckets,
	})

	// OutboxBacklog tracks pending outbox entries per collection. This is
	// the primary indicator of how far behind the remote store the local
	// cache is.
	OutboxBacklog = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "opticsave_outbox_backlog",
		Help: "Current number of pending entries in the outbox",
	}, []string{"collection"})

	// OnlineStatus provides a binary 0/1 signal for remote reachability.
	OnlineStatus = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "opticsave_online",
		Help: "Remote connectivity status (1 for online, 0 for offline)",
	})
)

// Handler returns the HTTP handler exposing the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
