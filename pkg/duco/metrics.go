package duco

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	refreshesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ducobox_document_refreshes_total",
		Help: "Number of document refreshes attempted against the board.",
	})
	refreshErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ducobox_document_refresh_errors_total",
		Help: "Number of document refreshes that failed.",
	})
	refreshDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name: "ducobox_document_refresh_duration_seconds",
		Help: "Time spent fetching a full document snapshot.",
	})
)
