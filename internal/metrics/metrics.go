// Package metrics exposes run counters in the Prometheus text format.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/roach88/gedcheck/internal/parser"
	"github.com/roach88/gedcheck/internal/rules"
)

// Recorder collects the metrics of one or more checks on a private registry.
type Recorder struct {
	registry *prometheus.Registry

	// Input lines by classification outcome
	Lines *prometheus.CounterVec

	// Records built by kind ("individual", "family")
	Records *prometheus.CounterVec

	// Rule violations by rule code
	Findings *prometheus.CounterVec

	// Time spent evaluating rules
	CheckDuration prometheus.Histogram
}

// New creates a Recorder with all gedcheck metrics registered.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Recorder{
		registry: reg,
		Lines: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gedcheck_lines_total",
			Help: "Input lines by classification outcome",
		}, []string{"kind"}),
		Records: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gedcheck_records_total",
			Help: "Records built by kind",
		}, []string{"kind"}),
		Findings: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gedcheck_findings_total",
			Help: "Rule violations by rule code",
		}, []string{"code"}),
		CheckDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "gedcheck_check_duration_seconds",
			Help:    "Duration of rule evaluation over one document",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),
	}
}

// Registry returns the registry the metrics live on.
func (m *Recorder) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveParse adds the builder counters of one document.
func (m *Recorder) ObserveParse(stats parser.Stats) {
	if m == nil {
		return
	}
	for kind, n := range stats.ByKind() {
		m.Lines.WithLabelValues(kind).Add(float64(n))
	}
	m.Records.WithLabelValues("individual").Add(float64(stats.Individuals))
	m.Records.WithLabelValues("family").Add(float64(stats.Families))
}

// ObserveReport adds the findings of one check and its duration. Rules that
// ran clean are reported with a zero count.
func (m *Recorder) ObserveReport(report rules.Report, d time.Duration) {
	if m == nil {
		return
	}
	for code, n := range report.CountByCode() {
		m.Findings.WithLabelValues(code).Add(float64(n))
	}
	m.CheckDuration.Observe(d.Seconds())
}

// WriteTextfile writes every metric to path in the node_exporter textfile
// collector format. The file is replaced atomically.
func (m *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
