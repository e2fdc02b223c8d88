package harness

import "github.com/roach88/gedcheck/internal/rules"

// Relations holds the family identifiers returned by each kinship query,
// in parse order.
type Relations struct {
	CousinMarriages      []string `json:"cousin_marriages"`
	AuntUncleMarriages   []string `json:"aunt_uncle_marriages"`
	SiblingMarriages     []string `json:"sibling_marriages"`
	ParentChildMarriages []string `json:"parent_child_marriages"`
}

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if all expect clauses match.
	Pass bool `json:"pass"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// RunID is the archive identifier of the run.
	RunID string `json:"run_id"`

	// Individuals and Families are record identifiers in parse order.
	Individuals []string `json:"individuals"`
	Families    []string `json:"families"`

	// Report is the rule report as read back from the archive.
	Report rules.Report `json:"report"`

	Relations Relations `json:"relations"`
}

// NewResult creates a new passing result.
// Used as the starting point for test execution.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
