package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/gedcheck/internal/rules"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Database string
}

// ReplayResult is the JSON payload of the replay command.
type ReplayResult struct {
	RunID         string          `json:"run_id"`
	ReferenceDate string          `json:"reference_date"`
	Deterministic bool            `json:"deterministic"`
	Missing       []rules.Finding `json:"missing,omitempty"` // archived, not reproduced
	Extra         []rules.Finding `json:"extra,omitempty"`   // reproduced, not archived
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay <run-id>",
		Short: "Re-check an archived run and verify determinism",
		Long: `Rebuild the records of an archived run, re-run the same rules at the
same reference date, and compare the findings with the archived ones.

Thresholds come from the current config.

Exit codes:
  0 - Findings reproduced exactly
  1 - Findings differ from the archive
  2 - Command error (database or run not found, etc.)

Examples:
  gedcheck replay 0190c6a4-... --db ./archive.db
  gedcheck replay 0190c6a4-... --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (default from config)")

	return cmd
}

func runReplay(opts *ReplayOptions, runID string, cmd *cobra.Command) error {
	ctx := context.Background()
	formatter := opts.formatter(cmd)

	st, err := openArchive(opts.RootOptions, formatter, opts.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	run, err := st.ReadRun(ctx, runID)
	if errors.Is(err, sql.ErrNoRows) {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("run not found: %s", runID), nil)
	}
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeDatabaseFailed, "failed to read run", err)
	}

	records, err := st.LoadRecords(ctx, runID)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeDatabaseFailed, "failed to load records", err)
	}
	archived, err := st.ReadFindings(ctx, runID)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeDatabaseFailed, "failed to read findings", err)
	}

	day, err := rules.ParseDate(run.ReferenceDate)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeDatabaseFailed, "archived reference date is invalid", err)
	}

	rc := newRuleContext(opts.config(), records)
	rc.Clock = rules.FixedClock{T: day.Time}

	runner := rules.NewRunner(rules.All(),
		rules.WithDisabled(notIn(run.Rules)...),
		rules.WithRunnerLogger(opts.logger()),
	)
	report, err := runner.Run(ctx, rc)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, "check failed", err)
	}

	result := ReplayResult{
		RunID:         runID,
		ReferenceDate: run.ReferenceDate,
		Missing:       subtract(archived, report.Findings),
		Extra:         subtract(report.Findings, archived),
	}
	result.Deterministic = len(result.Missing) == 0 && len(result.Extra) == 0

	if opts.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else {
		w := cmd.OutOrStdout()
		if result.Deterministic {
			fmt.Fprintf(w, "✓ Run %s reproduced: %d finding(s)\n", runID, len(archived))
		} else {
			fmt.Fprintf(w, "✗ Run %s differs from the archive\n", runID)
			for _, f := range result.Missing {
				fmt.Fprintf(w, "  - %s\n", f)
			}
			for _, f := range result.Extra {
				fmt.Fprintf(w, "  + %s\n", f)
			}
		}
	}

	if !result.Deterministic {
		return NewExitError(ExitFailure, "replay differs from archive")
	}
	return nil
}

// notIn returns the codes of every known rule missing from codes.
func notIn(codes []string) []string {
	var out []string
	for _, r := range rules.All() {
		if !slices.Contains(codes, r.Code()) {
			out = append(out, r.Code())
		}
	}
	return out
}

// subtract returns the findings of a that b does not hold, honoring repeats.
func subtract(a, b []rules.Finding) []rules.Finding {
	remaining := map[rules.Finding]int{}
	for _, f := range b {
		remaining[f]++
	}
	var out []rules.Finding
	for _, f := range a {
		if remaining[f] > 0 {
			remaining[f]--
			continue
		}
		out = append(out, f)
	}
	return out
}
