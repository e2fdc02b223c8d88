package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/gedcheck/internal/rules"
	"github.com/roach88/gedcheck/internal/store"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Database string // overrides config database
}

// ExportResult is the JSON payload of the export command.
type ExportResult struct {
	RunID         string `json:"run_id"`
	Database      string `json:"database"`
	Fingerprint   string `json:"fingerprint"`
	ReferenceDate string `json:"reference_date"`
	Individuals   int    `json:"individuals"`
	Families      int    `json:"families"`
	Findings      int    `json:"findings"`
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Check a file and archive records and findings in SQLite",
		Long: `Check a genealogy file and archive the run in a SQLite database.

Each export creates a new run holding every record and finding, so
later runs over the same document can be compared by fingerprint.

Examples:
  gedcheck export family.ged
  gedcheck export family.ged --db ./archive.db
  gedcheck export family.ged --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (default from config)")

	return cmd
}

func runExport(opts *ExportOptions, path string, cmd *cobra.Command) error {
	ctx := context.Background()
	formatter := opts.formatter(cmd)
	cfg := opts.config()

	dbPath := opts.Database
	if dbPath == "" {
		dbPath = cfg.Database
	}

	records, _, err := loadInput(opts.RootOptions, formatter, path)
	if err != nil {
		return err
	}

	rc := newRuleContext(cfg, records)
	report, _, err := runChecks(ctx, opts.RootOptions, rc, nil)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, "check failed", err)
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeDatabaseFailed, "failed to open database", err)
	}
	defer st.Close()

	refDate := rules.FormatDate(rc.Clock.Now())
	runID, err := st.SaveRun(ctx, store.Run{Source: path, ReferenceDate: refDate}, records, report)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeDatabaseFailed, "failed to archive run", err)
	}
	opts.logger().Info("run archived", "run_id", runID, "path", dbPath)

	summary, err := st.ReadRun(ctx, runID)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeDatabaseFailed, "failed to read archived run", err)
	}

	result := ExportResult{
		RunID:         runID,
		Database:      dbPath,
		Fingerprint:   summary.Fingerprint,
		ReferenceDate: refDate,
		Individuals:   summary.Individuals,
		Families:      summary.Families,
		Findings:      summary.Findings,
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "✓ Archived run %s\n", runID)
	fmt.Fprintf(w, "  Database: %s\n", dbPath)
	fmt.Fprintf(w, "  Records: %d individuals, %d families\n", result.Individuals, result.Families)
	fmt.Fprintf(w, "  Findings: %d\n", result.Findings)
	return nil
}
