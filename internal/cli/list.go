package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/gedcheck/internal/rules"
)

// ListResult is the JSON payload of the list command.
type ListResult struct {
	ReferenceDate string          `json:"reference_date"`
	Listings      []rules.Listing `json:"listings"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <file>",
		Short: "Print informational listings",
		Long: `Print the informational listings: deceased, living married, living
single, recent births, recent deaths and upcoming anniversaries.

"Recent" and "upcoming" are measured from the reference date in the
config (today when unset) using the recent_days threshold.

Examples:
  gedcheck list family.ged
  gedcheck list family.ged --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runList(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	records, _, err := loadInput(opts, formatter, path)
	if err != nil {
		return err
	}

	rc := newRuleContext(opts.config(), records)
	result := ListResult{
		ReferenceDate: rules.FormatDate(rc.Clock.Now()),
		Listings:      rules.Listings(rc),
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}

	w := cmd.OutOrStdout()
	for _, l := range result.Listings {
		ids := l.Individuals
		if len(l.Families) > 0 {
			ids = l.Families
		}
		if len(ids) == 0 {
			fmt.Fprintf(w, "%s %s: none\n", l.Code, l.Title)
			continue
		}
		fmt.Fprintf(w, "%s %s: %s\n", l.Code, l.Title, strings.Join(ids, " "))
	}
	return nil
}
