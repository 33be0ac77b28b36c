package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DeliveriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notify_deliveries_total",
			Help: "Total number of per-target dispatch attempts by outcome",
		},
		[]string{"status"},
	)

	FanoutsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notify_fanouts_total",
			Help: "Total number of recipient fanouts by aggregate status",
		},
		[]string{"status"},
	)

	TokensPrunedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "notify_tokens_pruned_total",
			Help: "Total number of invalid device tokens removed from the store",
		},
	)

	ProviderRequestSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "notify_provider_request_seconds",
			Help: "Duration of push provider requests in seconds",
		},
	)
)
