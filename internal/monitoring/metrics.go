package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method", "status_code"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"path", "method", "status_code"},
	)
)

var (
	CatalogPartsTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_parts_total",
			Help: "Number of distinct parts currently in the catalog",
		},
	)

	UploadRowsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upload_rows_total",
			Help: "Total number of uploaded spreadsheet rows by outcome",
		},
		[]string{"result"},
	)

	CheckoutAttemptsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "checkout_attempts_total",
			Help: "Total number of checkout attempts",
		},
	)

	CheckoutSuccessTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "checkout_success_total",
			Help: "Total number of successful checkouts",
		},
	)

	CheckoutFailureTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_failure_total",
			Help: "Total number of failed checkouts",
		},
		[]string{"reason"},
	)

	ItemsSoldTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "items_sold_total",
			Help: "Total quantity of parts sold across all checkouts",
		},
	)
)

// RecordUploadOutcome feeds the per-row counters after a merge.
func RecordUploadOutcome(succeeded, failed int) {
	UploadRowsTotal.WithLabelValues("ok").Add(float64(succeeded))
	UploadRowsTotal.WithLabelValues("failed").Add(float64(failed))
}
