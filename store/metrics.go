package store

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeSuccess = "success"
	outcomeError   = "error"
)

var (
	dispatches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "store_dispatches_total",
		Help: "Total number of actions dispatched to the store",
	}, []string{"outcome"})

	dispatchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "store_dispatch_duration_seconds",
		Help:    "Time spent reducing a dispatched action",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
)
