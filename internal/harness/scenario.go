package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/roach88/gedcheck/internal/rules"
)

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// ReferenceDate is "today" for date rules, "2 JAN 2006" form.
	ReferenceDate string `yaml:"reference_date"`

	// Disabled lists rule codes to skip.
	Disabled []string `yaml:"disabled,omitempty"`

	// GED is the document under test, one record line per text line.
	GED string `yaml:"ged"`

	// Expect holds what checking the document must produce.
	Expect Expectations `yaml:"expect"`
}

// Expectations lists the checks made against a scenario result.
type Expectations struct {
	// Individuals and Families are identifiers in parse order.
	// A nil list is not checked.
	Individuals []string `yaml:"individuals,omitempty"`
	Families    []string `yaml:"families,omitempty"`

	// Findings must each be present in the report.
	Findings []FindingExpectation `yaml:"findings,omitempty"`

	// Absent lists codes that must not appear in the report.
	Absent []string `yaml:"absent,omitempty"`

	// Clean requires a report without findings.
	Clean bool `yaml:"clean,omitempty"`

	// Relations holds kinship query expectations.
	Relations *RelationExpectations `yaml:"relations,omitempty"`
}

// FindingExpectation names one expected finding.
type FindingExpectation struct {
	Code   string `yaml:"code"`
	Record string `yaml:"record,omitempty"`
}

// RelationExpectations are compared exactly; nil lists are not checked.
type RelationExpectations struct {
	CousinMarriages      []string          `yaml:"cousin_marriages,omitempty"`
	AuntUncleMarriages   []string          `yaml:"aunt_uncle_marriages,omitempty"`
	SiblingMarriages     []string          `yaml:"sibling_marriages,omitempty"`
	ParentChildMarriages []string          `yaml:"parent_child_marriages,omitempty"`
	SiblingFounders      []FounderQuestion `yaml:"sibling_founders,omitempty"`
}

// FounderQuestion asks whether families A and B are founded by siblings.
type FounderQuestion struct {
	A       string `yaml:"a"`
	B       string `yaml:"b"`
	Related bool   `yaml:"related"`
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "finding:" vs "findings:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// FindScenarioFiles returns the .yaml and .yml files directly under dir,
// sorted by name. A non-empty filter is a glob matched against the file
// name without extension.
func FindScenarioFiles(dir, filter string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read scenario dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		if filter != "" {
			matched, err := filepath.Match(filter, e.Name()[:len(e.Name())-len(ext)])
			if err != nil {
				return nil, fmt.Errorf("invalid filter pattern: %w", err)
			}
			if !matched {
				continue
			}
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.ReferenceDate == "" {
		return fmt.Errorf("reference_date is required")
	}
	if d, err := rules.ParseDate(s.ReferenceDate); err != nil || d.Partial {
		return fmt.Errorf("reference_date %q is not a full legal date", s.ReferenceDate)
	}

	if s.GED == "" {
		return fmt.Errorf("ged is required")
	}

	if err := rules.ValidateCodes(s.Disabled); err != nil {
		return fmt.Errorf("disabled: %w", err)
	}

	for i, f := range s.Expect.Findings {
		if f.Code == "" {
			return fmt.Errorf("expect.findings[%d]: code is required", i)
		}
		if err := rules.ValidateCodes([]string{f.Code}); err != nil {
			return fmt.Errorf("expect.findings[%d]: %w", i, err)
		}
	}
	if err := rules.ValidateCodes(s.Expect.Absent); err != nil {
		return fmt.Errorf("expect.absent: %w", err)
	}
	if s.Expect.Clean && len(s.Expect.Findings) > 0 {
		return fmt.Errorf("expect: clean contradicts expected findings")
	}

	if r := s.Expect.Relations; r != nil {
		for i, q := range r.SiblingFounders {
			if q.A == "" || q.B == "" {
				return fmt.Errorf("expect.relations.sibling_founders[%d]: a and b are required", i)
			}
		}
	}

	return nil
}
