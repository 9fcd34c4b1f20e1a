package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	LoginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "edublog_logins_total",
			Help: "Login attempts by result.",
		},
		[]string{"result"},
	)

	SessionRejectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "edublog_session_rejections_total",
			Help: "Requests rejected by the access guard, by reason.",
		},
		[]string{"reason"},
	)

	PostMutationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "edublog_post_mutations_total",
			Help: "Post create/update/delete operations by result.",
		},
		[]string{"op", "result"},
	)

	ReadsMarkedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "edublog_reads_marked_total",
			Help: "Mark-as-read calls, split by whether a new record was written.",
		},
		[]string{"outcome"},
	)
)

// MustRegister exposes every collector on the default registry, stamped
// with a constant service label.
func MustRegister(serviceName string) {
	reg := prometheus.WrapRegistererWith(prometheus.Labels{"service": serviceName}, prometheus.DefaultRegisterer)
	reg.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDurationSeconds,
		LoginsTotal,
		SessionRejectionsTotal,
		PostMutationsTotal,
		ReadsMarkedTotal,
	)
}
