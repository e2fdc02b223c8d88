package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/gedcheck/internal/record"
)

// Snapshot renders the parts of a result that golden files pin down.
// The output is canonical JSON, so identical results give identical bytes.
//
// Run identifiers and Pass/Errors are left out: they describe the harness,
// not the checked document.
func Snapshot(scenario *Scenario, result *Result) ([]byte, error) {
	findings := make([]any, len(result.Report.Findings))
	for i, f := range result.Report.Findings {
		m := map[string]any{
			"code":    f.Code,
			"story":   f.Story,
			"kind":    f.Kind,
			"message": f.Message,
		}
		if f.RecordID != "" {
			m["record_id"] = f.RecordID
		}
		findings[i] = m
	}

	return record.MarshalCanonical(map[string]any{
		"name":           scenario.Name,
		"reference_date": scenario.ReferenceDate,
		"individuals":    stringsToAny(result.Individuals),
		"families":       stringsToAny(result.Families),
		"findings":       findings,
		"relations": map[string]any{
			"cousin_marriages":       stringsToAny(result.Relations.CousinMarriages),
			"aunt_uncle_marriages":   stringsToAny(result.Relations.AuntUncleMarriages),
			"sibling_marriages":      stringsToAny(result.Relations.SiblingMarriages),
			"parent_child_marriages": stringsToAny(result.Relations.ParentChildMarriages),
		},
	})
}

// RunWithGolden executes a scenario and compares its snapshot against a
// golden file stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns the result so callers can also check Pass.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result against its golden file without
// re-running the scenario.
func AssertGolden(t *testing.T, scenario *Scenario, result *Result) error {
	t.Helper()

	snapshot, err := Snapshot(scenario, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, snapshot)

	return nil
}

func stringsToAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
