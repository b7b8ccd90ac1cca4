// Package metrics holds the Prometheus collectors of the till. They are
// registered on the default registry and served by promhttp at /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SalesFinalized = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pizzeria",
		Name:      "sales_finalized_total",
		Help:      "Finalized orders by status (paid, pending) and whether they replaced an edited record.",
	}, []string{"status", "replaced"})

	SalesVoided = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "pizzeria",
		Name:      "sales_voided_total",
		Help:      "Sale records voided after admin authorization.",
	})

	DayClosures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pizzeria",
		Name:      "day_closures_total",
		Help:      "Day closures by scope (waiter, admin).",
	}, []string{"scope"})

	PrintJobs = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pizzeria",
		Name:      "print_jobs_total",
		Help:      "Print jobs by document kind and result (ok, error, skipped, dropped).",
	}, []string{"kind", "result"})

	PrintedBytes = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "pizzeria",
		Name:      "printed_bytes_total",
		Help:      "ESC/POS bytes delivered to the printer.",
	})

	PrintDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "pizzeria",
		Name:      "print_duration_seconds",
		Help:      "Time spent streaming one job to the printer.",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	})

	PINAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pizzeria",
		Name:      "pin_attempts_total",
		Help:      "PIN checks by purpose (login, admin) and result (accepted, rejected, throttled, malformed).",
	}, []string{"purpose", "result"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "pizzeria",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route and status code.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

// ObserveHTTP records one finished request.
func ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}
