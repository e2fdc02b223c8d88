package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/gedcheck/internal/parser"
	"github.com/roach88/gedcheck/internal/rules"
)

func TestRecorder_ObserveParse(t *testing.T) {
	m := New()
	m.ObserveParse(parser.Stats{Lines: 10, Unrecognized: 2, Structural: 2, Ignored: 1, Individuals: 3, Families: 1})
	m.ObserveParse(parser.Stats{Lines: 4, Individuals: 1})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Lines.WithLabelValues("unrecognized")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Lines.WithLabelValues("structural")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Lines.WithLabelValues("ignored")))
	assert.Equal(t, 9.0, testutil.ToFloat64(m.Lines.WithLabelValues("applied")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.Records.WithLabelValues("individual")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Records.WithLabelValues("family")))
}

func TestRecorder_ObserveReport(t *testing.T) {
	m := New()
	report := rules.Report{
		Rules: []string{"US01", "US02", "US03"},
		Findings: []rules.Finding{
			{Code: "US01", RecordID: "I1"},
			{Code: "US01", RecordID: "I2"},
			{Code: "US03", RecordID: "I1"},
		},
	}
	m.ObserveReport(report, 20*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Findings.WithLabelValues("US01")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Findings.WithLabelValues("US02")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Findings.WithLabelValues("US03")))
	assert.Equal(t, 3, testutil.CollectAndCount(m.Findings))
}

func TestRecorder_NilIsNoop(t *testing.T) {
	var m *Recorder
	assert.NotPanics(t, func() {
		m.ObserveParse(parser.Stats{Lines: 1})
		m.ObserveReport(rules.Report{}, time.Second)
	})
}

func TestRecorder_WriteTextfile(t *testing.T) {
	m := New()
	m.ObserveParse(parser.Stats{Lines: 3, Individuals: 1})
	m.ObserveReport(rules.Report{Rules: []string{"US07"}}, time.Millisecond)

	path := filepath.Join(t.TempDir(), "gedcheck.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, `gedcheck_lines_total{kind="applied"} 3`)
	assert.Contains(t, text, `gedcheck_records_total{kind="individual"} 1`)
	assert.Contains(t, text, `gedcheck_findings_total{code="US07"} 0`)
	assert.Contains(t, text, "gedcheck_check_duration_seconds_count 1")
}

func TestRecorder_WriteTextfileBadPath(t *testing.T) {
	err := New().WriteTextfile(filepath.Join(t.TempDir(), "missing", "dir", "x.prom"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write metrics")
}
