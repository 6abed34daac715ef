package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "clinic", Name: "http_requests_total", Help: "HTTP requests by method, route and status."},
		[]string{"method", "route", "status"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: "clinic", Name: "http_request_duration_seconds", Help: "HTTP request latency by method and route.", Buckets: prometheus.DefBuckets},
		[]string{"method", "route"},
	)
	Admissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "clinic", Name: "schedule_admissions_total", Help: "Admission decisions by outcome."},
		[]string{"outcome"},
	)
	RateLimitRejected = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "clinic", Name: "rate_limit_rejected_total", Help: "Requests rejected by the per-IP limiter."},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(HTTPRequests)
	reg.MustRegister(HTTPDuration)
	reg.MustRegister(Admissions)
	reg.MustRegister(RateLimitRejected)
}
