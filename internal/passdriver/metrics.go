package passdriver

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is per-pass instrumentation, registered once per Pipeline
// and shared across every pass it runs. Grounded on the teacher's own
// Prometheus wiring pattern for request/operation histograms, applied
// here to pass timing (SPEC_FULL.md §2 A4).
type Metrics struct {
	passDuration *prometheus.HistogramVec
	passNodes    *prometheus.GaugeVec
}

// NewMetrics registers the pipeline's collectors against reg. Pass
// prometheus.NewRegistry() for an isolated registry (tests) or
// prometheus.DefaultRegisterer to export via the process's default
// /metrics handler.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		passDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "shady",
			Subsystem: "pass",
			Name:      "duration_seconds",
			Help:      "Wall-clock time spent in a single compiler pass.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"pass"}),
		passNodes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "shady",
			Subsystem: "pass",
			Name:      "output_decls",
			Help:      "Declaration count of the module a pass produced.",
		}, []string{"pass"}),
	}
	reg.MustRegister(m.passDuration, m.passNodes)
	return m
}

func (m *Metrics) observe(pass string, d time.Duration, declCount int) {
	m.passDuration.WithLabelValues(pass).Observe(d.Seconds())
	m.passNodes.WithLabelValues(pass).Set(float64(declCount))
}
