package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/gedcheck/internal/kinship"
	"github.com/roach88/gedcheck/internal/parser"
	"github.com/roach88/gedcheck/internal/record"
	"github.com/roach88/gedcheck/internal/rules"
	"github.com/roach88/gedcheck/internal/store"
	"github.com/roach88/gedcheck/internal/testutil"
)

// Run executes a test scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation.
//
// Execution flow:
//  1. Parse the scenario document
//  2. Check it with every rule not disabled, at the reference date
//  3. Archive the run and read the findings back
//  4. Answer the kinship queries
//  5. Evaluate expectations
func Run(scenario *Scenario) (*Result, error) {
	return RunContext(context.Background(), scenario)
}

// RunContext is Run with a caller supplied context.
func RunContext(ctx context.Context, scenario *Scenario) (*Result, error) {
	if scenario == nil {
		return nil, fmt.Errorf("scenario is nil")
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	day, err := rules.ParseDate(scenario.ReferenceDate)
	if err != nil {
		return nil, fmt.Errorf("reference date: %w", err)
	}

	records := parser.Parse(testutil.Lines(scenario.GED), parser.WithLogger(logger))

	rc := rules.NewContext(records)
	rc.Clock = rules.FixedClock{T: day.Time}

	runner := rules.NewRunner(rules.All(),
		rules.WithDisabled(scenario.Disabled...),
		rules.WithRunnerLogger(logger),
	)
	report, err := runner.Run(ctx, rc)
	if err != nil {
		return nil, fmt.Errorf("check: %w", err)
	}

	st, err := store.Open(":memory:", store.WithIDGenerator(testutil.NewSequenceIDs("run")))
	if err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}
	defer st.Close()

	runID, err := st.SaveRun(ctx, store.Run{
		Source:        scenario.Name,
		ReferenceDate: rules.FormatDate(day.Time),
	}, records, report)
	if err != nil {
		return nil, fmt.Errorf("archive: %w", err)
	}

	archived, err := st.ReadFindings(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("archive: %w", err)
	}

	result := NewResult()
	result.RunID = runID
	result.Report = rules.Report{Rules: report.Rules, Findings: archived}
	result.Individuals = individualIDs(records.Individuals())
	result.Families = familyIDs(records.Families())
	result.Relations = relationsOf(rc.Kin)

	evaluate(result, rc.Kin, scenario.Expect)

	return result, nil
}

func relationsOf(kin *kinship.Engine) Relations {
	return Relations{
		CousinMarriages:      familyIDs(kin.FirstCousinMarriages()),
		AuntUncleMarriages:   familyIDs(kin.AuntUncleMarriages()),
		SiblingMarriages:     familyIDs(kin.SiblingMarriages()),
		ParentChildMarriages: familyIDs(kin.ParentChildMarriages()),
	}
}

func individualIDs(inds []*record.Individual) []string {
	out := make([]string, len(inds))
	for i, ind := range inds {
		out[i] = ind.ID
	}
	return out
}

func familyIDs(fams []*record.Family) []string {
	out := make([]string, len(fams))
	for i, fam := range fams {
		out[i] = fam.ID
	}
	return out
}
