package rules

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// Runner evaluates a set of rules against one store.
type Runner struct {
	rules    []Rule
	disabled map[string]bool
	limit    int
	logger   *slog.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithDisabled skips the rules with the given codes.
func WithDisabled(codes ...string) RunnerOption {
	return func(r *Runner) {
		for _, c := range codes {
			r.disabled[c] = true
		}
	}
}

// WithConcurrency bounds the number of rules evaluated at once.
func WithConcurrency(n int) RunnerOption {
	return func(r *Runner) {
		if n > 0 {
			r.limit = n
		}
	}
}

// WithRunnerLogger sets the logger used for per-rule timing.
func WithRunnerLogger(l *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = l
	}
}

// NewRunner creates a runner over rules.
func NewRunner(rules []Rule, opts ...RunnerOption) *Runner {
	r := &Runner{
		rules:    rules,
		disabled: map[string]bool{},
		limit:    runtime.GOMAXPROCS(0),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Enabled returns the rules that Run evaluates, in registration order.
func (r *Runner) Enabled() []Rule {
	var out []Rule
	for _, rule := range r.rules {
		if !r.disabled[rule.Code()] {
			out = append(out, rule)
		}
	}
	return out
}

// Run evaluates every enabled rule. Rules only read c, so they run
// concurrently; the merged findings are sorted by code, record and message.
func (r *Runner) Run(ctx context.Context, c *Context) (Report, error) {
	enabled := r.Enabled()
	results := make([][]Finding, len(enabled))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.limit)
	for i, rule := range enabled {
		i, rule := i, rule
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			results[i] = rule.Check(c)
			r.logger.Debug("rule checked",
				"code", rule.Code(),
				"findings", len(results[i]),
				"elapsed", time.Since(start))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	report := Report{Rules: make([]string, 0, len(enabled)), Findings: []Finding{}}
	for i, rule := range enabled {
		report.Rules = append(report.Rules, rule.Code())
		report.Findings = append(report.Findings, results[i]...)
	}
	sortFindings(report.Findings)
	return report, nil
}
