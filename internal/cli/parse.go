package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/gedcheck/internal/parser"
	"github.com/roach88/gedcheck/internal/record"
)

// ParseOptions holds flags for the parse command.
type ParseOptions struct {
	*RootOptions
	Records bool // list every record, not only counts
}

// ParseResult is the JSON payload of the parse command.
type ParseResult struct {
	Path        string               `json:"path"`
	Fingerprint string               `json:"fingerprint"`
	Stats       parser.Stats         `json:"stats"`
	Individuals []*record.Individual `json:"individuals,omitempty"`
	Families    []*record.Family     `json:"families,omitempty"`
}

// NewParseCommand creates the parse command.
func NewParseCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ParseOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a genealogy file and summarize its records",
		Long: `Parse a genealogy file into individual and family records.

Prints line statistics and the content fingerprint of the records.
Files ending in .xz are decompressed on the fly.

Examples:
  gedcheck parse family.ged
  gedcheck parse family.ged.xz --records
  gedcheck parse family.ged --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Records, "records", false, "list every parsed record")

	return cmd
}

func runParse(opts *ParseOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	records, stats, err := loadInput(opts.RootOptions, formatter, path)
	if err != nil {
		return err
	}

	fingerprint, err := records.Fingerprint()
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, "failed to fingerprint records", err)
	}

	result := ParseResult{
		Path:        path,
		Fingerprint: fingerprint,
		Stats:       stats,
	}
	if opts.Records {
		result.Individuals = records.Individuals()
		result.Families = records.Families()
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "✓ Parsed %s\n", path)
	fmt.Fprintf(w, "  Individuals: %d\n", stats.Individuals)
	fmt.Fprintf(w, "  Families: %d\n", stats.Families)
	fmt.Fprintf(w, "  Lines: %d (%d structural, %d unrecognized, %d ignored)\n",
		stats.Lines, stats.Structural, stats.Unrecognized, stats.Ignored)
	fmt.Fprintf(w, "  Fingerprint: %s\n", fingerprint)

	if opts.Records {
		for _, ind := range result.Individuals {
			fmt.Fprintf(w, "  %s %s (%s)\n", ind.ID, ind.Name, sexText(ind.Sex))
		}
		for _, fam := range result.Families {
			fmt.Fprintf(w, "  %s husband=%s wife=%s children=[%s]\n",
				fam.ID, orDash(fam.Husband), orDash(fam.Wife), strings.Join(fam.Children, " "))
		}
	}
	return nil
}

func sexText(s record.Sex) string {
	if s == record.SexUnknown {
		return "?"
	}
	return string(s)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
