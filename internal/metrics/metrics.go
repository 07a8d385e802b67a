// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GeneratedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "passgen_generated_total",
		Help: "Credentials generated, by mode.",
	}, []string{"mode"})

	GenerationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "passgen_generation_errors_total",
		Help: "Rejected or failed generations, by error kind.",
	}, []string{"kind"})

	EvaluatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "passgen_evaluated_total",
		Help: "Strength evaluations of caller-supplied strings.",
	})

	StrengthScore = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "passgen_strength_score",
		Help:    "Total strength score of generated credentials.",
		Buckets: prometheus.LinearBuckets(0, 1, 7),
	})

	CommonDetectedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "passgen_common_detected_total",
		Help: "Evaluated strings containing a common-password pattern.",
	})

	RateLimitedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "passgen_rate_limited_total",
		Help: "Requests rejected by the rate limiter, by transport.",
	}, []string{"transport"})

	ActiveSessions = promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "passgen_history_sessions",
		Help: "Sessions currently holding history.",
	}, func() float64 {
		if fn := sessionCount.Load(); fn != nil {
			return float64((*fn)())
		}
		return 0
	})
)

var sessionCount atomic.Pointer[func() int]

// TrackSessions makes ActiveSessions report fn at scrape time.
func TrackSessions(fn func() int) { sessionCount.Store(&fn) }
