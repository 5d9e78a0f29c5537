// Package servermon holds the Prometheus collectors used to monitor the
// API server.
package servermon

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDurationHistogram = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "chefhub",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Histogram of HTTP request time in seconds.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"method", "route", "status"})
	DBQueryDurationHistogram = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "chefhub",
		Subsystem: "db",
		Name:      "query_duration_seconds",
		Help:      "Histogram of database query time in seconds.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"method"})
	DBQueryErrorCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chefhub",
		Subsystem: "db",
		Name:      "error_total",
		Help:      "The number of database errors.",
	}, []string{"method"})
	DishCreatedCount = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "chefhub",
		Subsystem: "dish",
		Name:      "created_total",
		Help:      "The number of dishes created.",
	})
	DishRevisionCount = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "chefhub",
		Subsystem: "dish",
		Name:      "revision_total",
		Help:      "The number of dish revisions applied.",
	})
	AuthenticationFailCount = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "chefhub",
		Subsystem: "auth",
		Name:      "failure_total",
		Help:      "The number of failed logins.",
	})
)

// DurationObserver returns a function that, when run with defer, records
// the duration of the parent function's execution in seconds.
func DurationObserver(m *prometheus.HistogramVec, labelValues ...string) func() {
	start := time.Now()
	return func() {
		m.WithLabelValues(labelValues...).Observe(time.Since(start).Seconds())
	}
}

// ErrorCounter increases the counter if *err is not nil.
func ErrorCounter(m *prometheus.CounterVec, err *error, labelValues ...string) {
	if *err == nil {
		return
	}
	m.WithLabelValues(labelValues...).Inc()
}
