package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics holds the server-level Prometheus instruments. Upload
// outcomes are labeled by detected format and success/failure so quota
// incidents and bad-input spikes are distinguishable on a dashboard.
type metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	uploadsTotal    *prometheus.CounterVec
}

func newMetrics() *metrics {
	return &metrics{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "soilscan_http_requests_total",
			Help: "HTTP requests by path and status code.",
		}, []string{"path", "status"}),
		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "soilscan_http_request_duration_seconds",
			Help:    "HTTP request duration by path.",
			Buckets: prometheus.DefBuckets,
		}, []string{"path"}),
		uploadsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "soilscan_uploads_total",
			Help: "Processed document uploads by extraction method and outcome.",
		}, []string{"method", "outcome"}),
	}
}
