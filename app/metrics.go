package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	txCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "milestone",
		Subsystem: "abci",
		Name:      "transactions_total",
		Help:      "Number of processed transactions by call, message path and result code.",
	}, []string{"call", "path", "code"})
	txDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "milestone",
		Subsystem: "abci",
		Name:      "transaction_duration_seconds",
		Help:      "Transaction processing time.",
		Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
	}, []string{"call"})
)
