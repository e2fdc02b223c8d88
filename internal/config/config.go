package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"

	"github.com/roach88/gedcheck/internal/rules"
)

//go:embed schema.cue
var schemaSource string

// Config is the full set of knobs a run honors.
type Config struct {
	// ReferenceDate pins "today" for date rules; empty means the wall clock.
	ReferenceDate string           `yaml:"reference_date" json:"reference_date,omitempty"`
	LogLevel      string           `yaml:"log_level" json:"log_level"`
	Database      string           `yaml:"database" json:"database,omitempty"`
	MetricsFile   string           `yaml:"metrics_file" json:"metrics_file,omitempty"`
	Rules         RulesConfig      `yaml:"rules" json:"rules"`
	Thresholds    rules.Thresholds `yaml:"thresholds" json:"thresholds"`
}

// RulesConfig selects which rules run.
type RulesConfig struct {
	Disabled []string `yaml:"disabled" json:"disabled,omitempty"`
}

// Error reports an invalid configuration value.
type Error struct {
	Path    string // file the value came from, empty for in-memory configs
	Field   string // dotted key, empty when the whole document is malformed
	Message string
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("config")
	if e.Path != "" {
		b.WriteString(" ")
		b.WriteString(e.Path)
	}
	if e.Field != "" {
		b.WriteString(": ")
		b.WriteString(e.Field)
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	return b.String()
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		LogLevel:   "info",
		Database:   "gedcheck.db",
		Thresholds: rules.DefaultThresholds(),
	}
}

// Load reads and validates the file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		var cfgErr *Error
		if errors.As(err, &cfgErr) {
			cfgErr.Path = path
		}
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes and validates a YAML document.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return cfg, nil
		}
		return Config{}, &Error{Message: err.Error()}
	}

	if err := validateSchema(data); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// validateSchema checks the raw document against schema.cue.
func validateSchema(data []byte) error {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return &Error{Message: err.Error()}
	}
	if raw == nil {
		return nil
	}

	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Config"))

	value := def.Unify(ctx.Encode(raw))
	if err := value.Validate(cue.Concrete(true)); err != nil {
		errs := cueerrors.Errors(err)
		if len(errs) == 0 {
			return &Error{Message: err.Error()}
		}
		first := errs[0]
		return &Error{
			Field:   strings.Join(first.Path(), "."),
			Message: first.Error(),
		}
	}
	return nil
}

// Validate checks the values the schema cannot express.
func (c Config) Validate() error {
	if c.ReferenceDate != "" {
		d, err := rules.ParseDate(c.ReferenceDate)
		if err != nil || d.Partial {
			return &Error{Field: "reference_date", Message: fmt.Sprintf("%q is not a full legal date", c.ReferenceDate)}
		}
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return &Error{Field: "log_level", Message: err.Error()}
	}
	if err := rules.ValidateCodes(c.Rules.Disabled); err != nil {
		return &Error{Field: "rules.disabled", Message: err.Error()}
	}
	return nil
}

// Clock returns the clock date rules should use.
func (c Config) Clock() rules.Clock {
	if c.ReferenceDate == "" {
		return rules.SystemClock{}
	}
	d, err := rules.ParseDate(c.ReferenceDate)
	if err != nil {
		return rules.SystemClock{}
	}
	return rules.FixedClock{T: d.Time}
}

// Level returns the slog level named by LogLevel.
func (c Config) Level() slog.Level {
	level, _ := parseLevel(c.LogLevel)
	return level
}

func parseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
}
