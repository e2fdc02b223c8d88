package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/gedcheck/internal/config"
)

// ValidationResult represents the result of config validation.
type ValidationResult struct {
	Valid  bool           `json:"valid"`
	Config *config.Config `json:"config,omitempty"`
	Field  string         `json:"field,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a config file",
		Long: `Validate a gedcheck YAML config file against its schema.

Unknown keys, malformed dates, unknown rule codes and out of range
thresholds are reported with the offending field.

Exit codes:
  0 - Config is valid
  1 - Config is invalid
  2 - Command error (file not found, etc.)

Examples:
  gedcheck validate gedcheck.yaml
  gedcheck validate gedcheck.yaml --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	if !fileExists(path) {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("config not found: %s", path), nil)
	}

	cfg, err := config.Load(path)
	if err != nil {
		var cfgErr *config.Error
		if !errors.As(err, &cfgErr) {
			return formatter.Fail(ExitCommandError, ErrCodeReadFailed, "failed to read config", err)
		}
		return outputValidationError(formatter, cfgErr)
	}

	if opts.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true, Config: &cfg})
	}
	fmt.Fprintf(formatter.Writer, "✓ %s is valid\n", path)
	return nil
}

func outputValidationError(formatter *OutputFormatter, cfgErr *config.Error) error {
	if formatter.Format == "json" {
		if err := formatter.Success(ValidationResult{
			Valid: false,
			Field: cfgErr.Field,
			Error: cfgErr.Message,
		}); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(formatter.Writer, "✗ Validation failed")
		if cfgErr.Field != "" {
			fmt.Fprintf(formatter.Writer, "  %s: %s: %s\n", ErrCodeConfigInvalid, cfgErr.Field, cfgErr.Message)
		} else {
			fmt.Fprintf(formatter.Writer, "  %s: %s\n", ErrCodeConfigInvalid, cfgErr.Message)
		}
	}

	// Validation failures = exit code 1 (test/validation failure)
	return WrapExitError(ExitFailure, "config validation failed", cfgErr)
}
