// Package metrics collects Prometheus counters for the inlining
// pipeline. All methods are nil-safe so the widget can run without a
// registerer configured.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Fetch outcomes.
const (
	OutcomeOK     = "ok"
	OutcomeStatus = "status"
	OutcomeError  = "error"
)

// Metrics holds pipeline counters.
type Metrics struct {
	fetches          *prometheus.CounterVec
	substitutions    prometheus.Counter
	sanitizeFailures prometheus.Counter
}

// New creates pipeline metrics registered on reg. A nil registerer
// yields nil metrics, which every method accepts.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		return nil
	}

	m := &Metrics{
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "svginline",
			Name:      "fetches_total",
			Help:      "SVG source fetches by outcome",
		}, []string{"outcome"}),
		substitutions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "svginline",
			Name:      "substitutions_total",
			Help:      "Placeholders successfully replaced with inline SVG",
		}),
		sanitizeFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "svginline",
			Name:      "sanitize_failures_total",
			Help:      "Fetched documents rejected by sanitization",
		}),
	}
	reg.MustRegister(m.fetches, m.substitutions, m.sanitizeFailures)
	return m
}

// IncFetch records a fetch attempt with its outcome.
func (m *Metrics) IncFetch(outcome string) {
	if m == nil {
		return
	}
	m.fetches.WithLabelValues(outcome).Inc()
}

// IncSubstitution records a completed DOM swap.
func (m *Metrics) IncSubstitution() {
	if m == nil {
		return
	}
	m.substitutions.Inc()
}

// IncSanitizeFailure records a rejected document.
func (m *Metrics) IncSanitizeFailure() {
	if m == nil {
		return
	}
	m.sanitizeFailures.Inc()
}
