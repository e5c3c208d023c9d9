// Package metrics exposes Prometheus counters for widget activity.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace is the default metric namespace
const Namespace = "visitgate"

// Metrics holds widget counters. A nil *Metrics is valid and records nothing.
type Metrics struct {
	PurposeQueries *prometheus.CounterVec
	Decisions      *prometheus.CounterVec
	Outcomes       *prometheus.CounterVec
	Dials          *prometheus.CounterVec
	UsageErrors    *prometheus.CounterVec
}

// New creates counters and registers them with reg (prometheus.DefaultRegisterer when nil).
func New(reg prometheus.Registerer, namespace string) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = Namespace
	}
	ret := &Metrics{
		PurposeQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "purpose_queries_total",
			Help:      "Total purpose queries by match result (matched, unmatched).",
		}, []string{"result"}),
		Decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "decisions_total",
			Help:      "Total per-authority decisions by decision (approved, denied).",
		}, []string{"decision"}),
		Outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outcomes_total",
			Help:      "Total reported outcomes by outcome and path (authority, fallback).",
		}, []string{"outcome", "path"}),
		Dials: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dial_total",
			Help:      "Total dial attempts by result (ok, error).",
		}, []string{"result"}),
		UsageErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "usage_errors_total",
			Help:      "Total rejected widget operations by reason.",
		}, []string{"reason"}),
	}
	for _, c := range []prometheus.Collector{ret.PurposeQueries, ret.Decisions, ret.Outcomes, ret.Dials, ret.UsageErrors} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return ret, nil
}

// PurposeQuery records a purpose change
func (m *Metrics) PurposeQuery(matched int) {
	if m == nil {
		return
	}
	result := "matched"
	if matched == 0 {
		result = "unmatched"
	}
	m.PurposeQueries.WithLabelValues(result).Inc()
}

// Decision records a single authority decision
func (m *Metrics) Decision(approved bool) {
	if m == nil {
		return
	}
	m.Decisions.WithLabelValues(decisionLabel(approved)).Inc()
}

// Outcome records a reported outcome
func (m *Metrics) Outcome(approved bool, path string) {
	if m == nil {
		return
	}
	m.Outcomes.WithLabelValues(decisionLabel(approved), path).Inc()
}

// Dial records a dial attempt
func (m *Metrics) Dial(err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.Dials.WithLabelValues(result).Inc()
}

// UsageError records a rejected operation
func (m *Metrics) UsageError(reason string) {
	if m == nil {
		return
	}
	m.UsageErrors.WithLabelValues(reason).Inc()
}

func decisionLabel(approved bool) string {
	if approved {
		return "approved"
	}
	return "denied"
}

// Handler returns an http.Handler serving metrics gathered by g
func Handler(g prometheus.Gatherer) http.Handler {
	if g == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
