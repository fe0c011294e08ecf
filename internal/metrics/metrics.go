// Package metrics provides Prometheus metrics for the catalog server.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ScansTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_scans_total",
			Help: "Total number of catalog tree scans",
		},
		[]string{"status"},
	)

	ScanDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_scan_duration_seconds",
			Help:    "Time taken to scan the catalog tree",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)

	ProductsListed = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_products",
			Help: "Number of product records in the latest scan",
		},
	)

	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_http_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"endpoint", "code"},
	)

	RateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_http_rate_limited_total",
			Help: "Total number of API requests rejected by the rate limiter",
		},
	)
)

// RecordScan records the outcome of one scan.
func RecordScan(start time.Time, products int, err error) {
	ScanDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		ScansTotal.WithLabelValues("error").Inc()
		return
	}
	ScansTotal.WithLabelValues("success").Inc()
	ProductsListed.Set(float64(products))
}
