package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/gedcheck/internal/metrics"
	"github.com/roach88/gedcheck/internal/rules"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	FailOnFindings bool
	Disable        []string
	MetricsFile    string // overrides config metrics_file
}

// CheckResult is the JSON payload of the check command.
type CheckResult struct {
	Path          string          `json:"path"`
	ReferenceDate string          `json:"reference_date"`
	Rules         []string        `json:"rules"`
	Findings      []rules.Finding `json:"findings"`
	Passed        bool            `json:"passed"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Run validation rules over a genealogy file",
		Long: `Run every enabled validation rule and report the findings.

Rules run concurrently over the parsed records. Findings are sorted
by rule code, then record identifier.

Exit codes:
  0 - Check completed (findings are reported, not failed, by default)
  1 - Findings present and --fail-on-findings given
  2 - Command error (input not found, invalid config, etc.)

Examples:
  gedcheck check family.ged
  gedcheck check family.ged --disable US01,US42
  gedcheck check family.ged --fail-on-findings --metrics gedcheck.prom
  gedcheck check family.ged --config gedcheck.yaml --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.FailOnFindings, "fail-on-findings", false, "exit 1 when any rule reports a finding")
	cmd.Flags().StringSliceVar(&opts.Disable, "disable", nil, "rule codes to skip, in addition to the config")
	cmd.Flags().StringVar(&opts.MetricsFile, "metrics", "", "write Prometheus textfile metrics to this path")

	return cmd
}

func runCheck(opts *CheckOptions, path string, cmd *cobra.Command) error {
	ctx := context.Background()
	formatter := opts.formatter(cmd)
	cfg := opts.config()

	records, stats, err := loadInput(opts.RootOptions, formatter, path)
	if err != nil {
		return err
	}

	rc := newRuleContext(cfg, records)
	report, elapsed, err := runChecks(ctx, opts.RootOptions, rc, opts.Disable)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, "check failed", err)
	}
	opts.logger().Info("check finished",
		"path", path,
		"rules", len(report.Rules),
		"findings", len(report.Findings),
		"duration", elapsed)

	metricsFile := opts.MetricsFile
	if metricsFile == "" {
		metricsFile = cfg.MetricsFile
	}
	if metricsFile != "" {
		rec := metrics.New()
		rec.ObserveParse(stats)
		rec.ObserveReport(report, elapsed)
		if err := rec.WriteTextfile(metricsFile); err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeMetricsFailed, "failed to write metrics", err)
		}
		formatter.VerboseLog("Wrote metrics to %s", metricsFile)
	}

	result := CheckResult{
		Path:          path,
		ReferenceDate: rules.FormatDate(rc.Clock.Now()),
		Rules:         report.Rules,
		Findings:      report.Findings,
		Passed:        report.Passed(),
	}

	if opts.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else {
		outputCheckText(cmd, result)
	}

	if opts.FailOnFindings && !report.Passed() {
		return NewExitError(ExitFailure, fmt.Sprintf("%d finding(s)", len(report.Findings)))
	}
	return nil
}

func outputCheckText(cmd *cobra.Command, result CheckResult) {
	w := cmd.OutOrStdout()

	for _, f := range result.Findings {
		fmt.Fprintf(w, "%s\n", f)
	}
	if len(result.Findings) > 0 {
		fmt.Fprintln(w)
	}

	if result.Passed {
		fmt.Fprintf(w, "✓ %d rules, no findings (as of %s)\n", len(result.Rules), result.ReferenceDate)
		return
	}
	fmt.Fprintf(w, "✗ %d rules, %d finding(s) (as of %s)\n", len(result.Rules), len(result.Findings), result.ReferenceDate)
}
