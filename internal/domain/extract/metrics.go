package extract

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	documentsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "payslipx",
		Subsystem: "extract",
		Name:      "documents_total",
		Help:      "Number of documents processed.",
	})

	itemsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "payslipx",
		Subsystem: "extract",
		Name:      "items_total",
		Help:      "Number of financial items extracted across all documents.",
	})

	validationFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "payslipx",
		Subsystem: "extract",
		Name:      "validation_failures_total",
		Help:      "Number of documents that failed validation.",
	})

	extractionSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "payslipx",
		Subsystem: "extract",
		Name:      "duration_seconds",
		Help:      "End to end extraction latency per document.",
		Buckets:   prometheus.DefBuckets,
	})
)
