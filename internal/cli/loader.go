package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/roach88/gedcheck/internal/config"
	"github.com/roach88/gedcheck/internal/gedfile"
	"github.com/roach88/gedcheck/internal/parser"
	"github.com/roach88/gedcheck/internal/record"
	"github.com/roach88/gedcheck/internal/rules"
)

// loadInput parses the genealogy file at path. Failures are reported through
// formatter and returned as ExitErrors.
func loadInput(opts *RootOptions, formatter *OutputFormatter, path string) (*record.Store, parser.Stats, error) {
	formatter.VerboseLog("Reading %s", path)

	records, stats, err := gedfile.Load(path, opts.logger())
	if err != nil {
		var fileErr *gedfile.Error
		if errors.As(err, &fileErr) && fileErr.NotFound {
			return nil, stats, formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("input not found: %s", path), nil)
		}
		return nil, stats, formatter.Fail(ExitCommandError, ErrCodeReadFailed, fmt.Sprintf("failed to read %s", path), err)
	}

	formatter.VerboseLog("Parsed %d lines: %d individuals, %d families", stats.Lines, stats.Individuals, stats.Families)
	return records, stats, nil
}

// newRuleContext builds the rule context over records the way cfg asks.
func newRuleContext(cfg config.Config, records *record.Store) *rules.Context {
	c := rules.NewContext(records)
	c.Clock = cfg.Clock()
	c.Thresholds = cfg.Thresholds
	return c
}

// runChecks runs every rule not disabled by cfg or extra.
func runChecks(ctx context.Context, opts *RootOptions, c *rules.Context, extra []string) (rules.Report, time.Duration, error) {
	cfg := opts.config()
	disabled := append(append([]string{}, cfg.Rules.Disabled...), extra...)
	if err := rules.ValidateCodes(disabled); err != nil {
		return rules.Report{}, 0, err
	}

	runner := rules.NewRunner(rules.All(),
		rules.WithDisabled(disabled...),
		rules.WithRunnerLogger(opts.logger()),
	)

	start := time.Now()
	report, err := runner.Run(ctx, c)
	return report, time.Since(start), err
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
