package rules

import (
	"fmt"
	"sort"
)

// Record kinds a finding can refer to.
const (
	KindIndividual = "individual"
	KindFamily     = "family"
	KindDocument   = "document"
)

// Finding is a single rule violation.
type Finding struct {
	Code     string `json:"code"`
	Story    string `json:"story"`
	Kind     string `json:"kind"`
	RecordID string `json:"record_id,omitempty"`
	Message  string `json:"message"`
}

// String implements fmt.Stringer.
func (f Finding) String() string {
	if f.RecordID == "" {
		return fmt.Sprintf("[%s] %s", f.Code, f.Message)
	}
	return fmt.Sprintf("[%s] %s %s: %s", f.Code, f.Kind, f.RecordID, f.Message)
}

// Report is the merged outcome of a Runner.
type Report struct {
	Rules    []string  `json:"rules"`
	Findings []Finding `json:"findings"`
}

// Passed reports whether no rule produced a finding.
func (r Report) Passed() bool {
	return len(r.Findings) == 0
}

// CountByCode returns the number of findings per rule code.
func (r Report) CountByCode() map[string]int {
	counts := make(map[string]int, len(r.Rules))
	for _, code := range r.Rules {
		counts[code] = 0
	}
	for _, f := range r.Findings {
		counts[f.Code]++
	}
	return counts
}

// Codes returns the distinct codes that produced findings, sorted.
func (r Report) Codes() []string {
	seen := map[string]bool{}
	var out []string
	for _, f := range r.Findings {
		if !seen[f.Code] {
			seen[f.Code] = true
			out = append(out, f.Code)
		}
	}
	sort.Strings(out)
	return out
}

func sortFindings(fs []Finding) {
	sort.SliceStable(fs, func(a, b int) bool {
		if fs[a].Code != fs[b].Code {
			return fs[a].Code < fs[b].Code
		}
		if fs[a].RecordID != fs[b].RecordID {
			return fs[a].RecordID < fs[b].RecordID
		}
		return fs[a].Message < fs[b].Message
	})
}
