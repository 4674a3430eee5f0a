// Package metrics exposes Prometheus counters for authentication attempts,
// challenge submissions and session store failures.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "sector"

// Metrics holds the service counters. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	authAttempts *prometheus.CounterVec
	submissions  *prometheus.CounterVec
	storeErrors  *prometheus.CounterVec
}

// New creates the counters on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		authAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_attempts_total",
			Help:      "Credential checks by entry method and result.",
		}, []string{"method", "result"}),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "challenge_submissions_total",
			Help:      "Challenge answers by challenge type and result.",
		}, []string{"type", "result"}),
		storeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_errors_total",
			Help:      "Session store failures degraded to the fail-closed default.",
		}, []string{"operation"}),
	}

	reg.MustRegister(
		m.authAttempts,
		m.submissions,
		m.storeErrors,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func result(ok bool, yes, no string) string {
	if ok {
		return yes
	}
	return no
}

// AuthAttempt records a credential check. method is "json" or "basic".
func (m *Metrics) AuthAttempt(method string, success bool) {
	if m == nil {
		return
	}
	m.authAttempts.WithLabelValues(method, result(success, "success", "failure")).Inc()
}

// Submission records a graded answer. Unknown types are folded into "unknown"
// to bound label cardinality.
func (m *Metrics) Submission(challengeType string, known, correct bool) {
	if m == nil {
		return
	}
	if !known {
		challengeType = "unknown"
	}
	m.submissions.WithLabelValues(challengeType, result(correct, "correct", "incorrect")).Inc()
}

// StoreError records a degraded store operation.
func (m *Metrics) StoreError(operation string) {
	if m == nil {
		return
	}
	m.storeErrors.WithLabelValues(operation).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
