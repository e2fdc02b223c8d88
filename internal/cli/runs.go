package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/gedcheck/internal/rules"
	"github.com/roach88/gedcheck/internal/store"
)

// RunsOptions holds flags for the runs command.
type RunsOptions struct {
	*RootOptions
	Database    string
	Fingerprint string // only runs over this document
	RunID       string // show one run with its findings
}

// RunsResult is the JSON payload of the runs command.
type RunsResult struct {
	Runs     []store.RunSummary `json:"runs"`
	Findings []rules.Finding    `json:"findings,omitempty"`
}

// NewRunsCommand creates the runs command.
func NewRunsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List archived runs",
		Long: `List the runs archived by export, oldest first.

With --id, show a single run together with its findings.
With --fingerprint, list only runs over that document.

Examples:
  gedcheck runs --db ./archive.db
  gedcheck runs --db ./archive.db --id 0190c6a4-...
  gedcheck runs --fingerprint <hash> --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRuns(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (default from config)")
	cmd.Flags().StringVar(&opts.Fingerprint, "fingerprint", "", "only runs over the document with this fingerprint")
	cmd.Flags().StringVar(&opts.RunID, "id", "", "show a single run and its findings")

	return cmd
}

func runRuns(opts *RunsOptions, cmd *cobra.Command) error {
	ctx := context.Background()
	formatter := opts.formatter(cmd)

	st, err := openArchive(opts.RootOptions, formatter, opts.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	var result RunsResult
	switch {
	case opts.RunID != "":
		run, err := st.ReadRun(ctx, opts.RunID)
		if errors.Is(err, sql.ErrNoRows) {
			return formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("run not found: %s", opts.RunID), nil)
		}
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeDatabaseFailed, "failed to read run", err)
		}
		findings, err := st.ReadFindings(ctx, opts.RunID)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeDatabaseFailed, "failed to read findings", err)
		}
		result = RunsResult{Runs: []store.RunSummary{run}, Findings: findings}
	case opts.Fingerprint != "":
		runs, err := st.RunsByFingerprint(ctx, opts.Fingerprint)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeDatabaseFailed, "failed to list runs", err)
		}
		result.Runs = runs
	default:
		runs, err := st.ListRuns(ctx)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeDatabaseFailed, "failed to list runs", err)
		}
		result.Runs = runs
	}
	if result.Runs == nil {
		result.Runs = []store.RunSummary{}
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}

	w := cmd.OutOrStdout()
	if len(result.Runs) == 0 {
		fmt.Fprintln(w, "No runs found in database.")
		return nil
	}
	for _, r := range result.Runs {
		fmt.Fprintf(w, "%d  %s  %s  as of %s  %d individuals, %d families, %d findings\n",
			r.Seq, r.ID, r.Source, r.ReferenceDate, r.Individuals, r.Families, r.Findings)
	}
	if opts.RunID != "" {
		fmt.Fprintln(w)
		for _, f := range result.Findings {
			fmt.Fprintf(w, "%s\n", f)
		}
	}
	return nil
}

// openArchive opens the run archive at path, or the configured database when
// path is empty. The archive must already exist.
func openArchive(opts *RootOptions, formatter *OutputFormatter, path string) (*store.Store, error) {
	if path == "" {
		path = opts.config().Database
	}
	if !fileExists(path) {
		return nil, formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("database not found: %s", path), nil)
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, formatter.Fail(ExitCommandError, ErrCodeDatabaseFailed, "failed to open database", err)
	}
	return st, nil
}
