// Package metrics defines the Prometheus collectors exported on /metrics.
// All collectors are registered with the default registry on package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "classroom"

// HTTPRequestsTotal counts handled requests.
// Labels: method, route (the gin route pattern, not the raw path), status.
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests handled.",
	},
	[]string{"method", "route", "status"},
)

// HTTPRequestDuration observes request latency in seconds.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency in seconds.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// MediaUploadsTotal counts calls to the media host.
// Label result: "success" or "error".
var MediaUploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "media_uploads_total",
		Help:      "Total number of file uploads to the media host.",
	},
	[]string{"result"},
)

// MediaCleanupsTotal counts deletions of uploaded files whose record could not be saved.
// Label result: "success" or "error".
var MediaCleanupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "media_cleanups_total",
		Help:      "Total number of orphaned uploads removed after a failed save.",
	},
	[]string{"result"},
)

// RecordWritesTotal counts successful writes.
// Labels: entity ("user", "assignment", "attachment"), operation ("create", "update", "delete").
var RecordWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "record_writes_total",
		Help:      "Total number of records written.",
	},
	[]string{"entity", "operation"},
)

// Result returns the "result" label value for err.
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
