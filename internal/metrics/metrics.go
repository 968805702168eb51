package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MonthReads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "panchangam_month_reads_total",
			Help: "Month file reads by result (ok, missing, corrupt)",
		},
		[]string{"result"},
	)

	CorruptMonthFiles = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "panchangam_corrupt_month_files_total",
			Help: "Month files that exist but failed to parse",
		},
	)

	GoldRateFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "panchangam_gold_rate_fetches_total",
			Help: "Gold rate upstream fetches by status",
		},
		[]string{"status"},
	)

	GoldRateFetchLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "panchangam_gold_rate_fetch_latency_seconds",
			Help:    "Gold rate upstream fetch latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
)
