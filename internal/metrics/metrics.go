// internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BroadcastsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "broadcast_jobs_total",
			Help: "Total number of broadcast jobs dispatched",
		},
	)

	DeliveriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "broadcast_deliveries_total",
			Help: "Per-recipient delivery outcomes",
		},
		[]string{"status"},
	)

	DispatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "broadcast_dispatch_duration_seconds",
			Help: "Duration of whole-job dispatch fan-out in seconds",
		},
	)

	CampaignRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campaign_runs_total",
			Help: "Scheduled campaign run attempts by result",
		},
		[]string{"campaign_type", "result"},
	)
)
