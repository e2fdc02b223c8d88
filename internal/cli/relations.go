package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/gedcheck/internal/kinship"
	"github.com/roach88/gedcheck/internal/record"
)

// RelationsOptions holds flags for the relations command.
type RelationsOptions struct {
	*RootOptions
	Founders []string // two family ids to compare
}

// Marriage names a family and its spouses.
type Marriage struct {
	Family  string `json:"family"`
	Husband string `json:"husband,omitempty"`
	Wife    string `json:"wife,omitempty"`
}

// FounderAnswer is the answer to a sibling-founder question.
type FounderAnswer struct {
	A       string `json:"a"`
	B       string `json:"b"`
	Related bool   `json:"related"`
}

// RelationsResult is the JSON payload of the relations command.
type RelationsResult struct {
	CousinMarriages      []Marriage     `json:"cousin_marriages"`
	AuntUncleMarriages   []Marriage     `json:"aunt_uncle_marriages"`
	SiblingMarriages     []Marriage     `json:"sibling_marriages"`
	ParentChildMarriages []Marriage     `json:"parent_child_marriages"`
	Founders             *FounderAnswer `json:"founders,omitempty"`
}

// NewRelationsCommand creates the relations command.
func NewRelationsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RelationsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "relations <file>",
		Short: "Report marriages between close relatives",
		Long: `Report marriages between first cousins, aunts or uncles and their
nieces or nephews, siblings, and parents and children.

With --founders, also answer whether two families were founded by
siblings.

Examples:
  gedcheck relations family.ged
  gedcheck relations family.ged --founders F1,F2
  gedcheck relations family.ged --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRelations(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringSliceVar(&opts.Founders, "founders", nil, "two family ids to test for sibling founders")

	return cmd
}

func runRelations(opts *RelationsOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	if len(opts.Founders) != 0 && len(opts.Founders) != 2 {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, "--founders takes exactly two family ids", nil)
	}

	records, _, err := loadInput(opts.RootOptions, formatter, path)
	if err != nil {
		return err
	}

	kin := kinship.New(records)
	result := RelationsResult{
		CousinMarriages:      marriages(kin.FirstCousinMarriages()),
		AuntUncleMarriages:   marriages(kin.AuntUncleMarriages()),
		SiblingMarriages:     marriages(kin.SiblingMarriages()),
		ParentChildMarriages: marriages(kin.ParentChildMarriages()),
	}
	if len(opts.Founders) == 2 {
		a, _ := records.FindFamily(opts.Founders[0])
		b, _ := records.FindFamily(opts.Founders[1])
		result.Founders = &FounderAnswer{
			A:       opts.Founders[0],
			B:       opts.Founders[1],
			Related: kin.AreFoundersSiblings(a, b),
		}
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}

	w := cmd.OutOrStdout()
	sections := []struct {
		title string
		list  []Marriage
	}{
		{"First cousin marriages", result.CousinMarriages},
		{"Aunt/uncle marriages", result.AuntUncleMarriages},
		{"Sibling marriages", result.SiblingMarriages},
		{"Parent/child marriages", result.ParentChildMarriages},
	}
	for _, s := range sections {
		fmt.Fprintf(w, "%s: %d\n", s.title, len(s.list))
		for _, m := range s.list {
			fmt.Fprintf(w, "  %s husband=%s wife=%s\n", m.Family, orDash(m.Husband), orDash(m.Wife))
		}
	}
	if f := result.Founders; f != nil {
		verdict := "are not"
		if f.Related {
			verdict = "are"
		}
		fmt.Fprintf(w, "Families %s and %s %s founded by siblings\n", f.A, f.B, verdict)
	}
	return nil
}

func marriages(fams []*record.Family) []Marriage {
	out := make([]Marriage, 0, len(fams))
	for _, fam := range fams {
		out = append(out, Marriage{Family: fam.ID, Husband: fam.Husband, Wife: fam.Wife})
	}
	return out
}
