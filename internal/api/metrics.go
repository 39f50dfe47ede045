package api

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mulemobile_api_requests_total",
		Help: "Calls made to the remote storefront API.",
	}, []string{"method", "route", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "mulemobile_api_request_duration_seconds",
		Help:    "Latency of calls to the remote storefront API.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
)

func observe(method, route string, status int, took time.Duration) {
	requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	requestDuration.WithLabelValues(method, route).Observe(took.Seconds())
}
