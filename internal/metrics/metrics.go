// Package metrics exposes Prometheus counters for validation outcomes and
// external check behaviour.
package metrics

import (
	"net/http"
	"time"

	"pdf-validator/internal/domain"
	"pdf-validator/internal/runner"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pdf_validator"

var (
	validationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validations_total",
			Help:      "Validation verdicts by result and reason",
		},
		[]string{"result", "reason"},
	)

	validationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "validation_duration_seconds",
			Help:      "Wall-clock time spent validating one document",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
	)

	checkTimeouts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "check_timeouts_total",
			Help:      "External checks terminated because the budget ran out",
		},
		[]string{"tool"},
	)

	checkCancellations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "check_cancellations_total",
			Help:      "External checks terminated because the request was cancelled",
		},
		[]string{"tool"},
	)

	checkStartFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "check_start_failures_total",
			Help:      "External checks that could not be started",
		},
		[]string{"tool"},
	)
)

// RecordVerdict counts a verdict and observes its duration.
func RecordVerdict(verdict domain.Verdict, elapsed time.Duration) {
	result := "valid"
	reason := "none"
	if !verdict.Valid {
		result = "invalid"
		reason = verdict.Reason.Code()
	}
	validationsTotal.WithLabelValues(result, reason).Inc()
	validationDuration.Observe(elapsed.Seconds())
}

// RecordCheck counts timeouts, cancellations and start failures of one
// external check.
func RecordCheck(tool string, result *runner.Result) {
	if result == nil {
		return
	}
	if !result.Started() {
		checkStartFailures.WithLabelValues(tool).Inc()
	}
	if result.TimedOut {
		checkTimeouts.WithLabelValues(tool).Inc()
	}
	if result.Cancelled {
		checkCancellations.WithLabelValues(tool).Inc()
	}
}

// RecordTimeout counts a timeout of an in-process check.
func RecordTimeout(tool string) {
	checkTimeouts.WithLabelValues(tool).Inc()
}

// RecordCancellation counts an in-process check abandoned because the
// request was cancelled.
func RecordCancellation(tool string) {
	checkCancellations.WithLabelValues(tool).Inc()
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
