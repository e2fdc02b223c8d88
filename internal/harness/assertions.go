package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/gedcheck/internal/kinship"
)

// evaluate checks every expectation and records failures on result.
func evaluate(result *Result, kin *kinship.Engine, expect Expectations) {
	if expect.Individuals != nil {
		compareIDs(result, "individuals", expect.Individuals, result.Individuals)
	}
	if expect.Families != nil {
		compareIDs(result, "families", expect.Families, result.Families)
	}

	for _, want := range expect.Findings {
		if !hasFinding(result, want) {
			if want.Record == "" {
				result.AddError(fmt.Sprintf("expected finding %s, got none", want.Code))
			} else {
				result.AddError(fmt.Sprintf("expected finding %s on %s, got none", want.Code, want.Record))
			}
		}
	}

	reported := result.Report.Codes()
	for _, code := range expect.Absent {
		if slices.Contains(reported, code) {
			result.AddError(fmt.Sprintf("unexpected finding %s", code))
		}
	}

	if expect.Clean && !result.Report.Passed() {
		result.AddError(fmt.Sprintf("expected no findings, got %s", strings.Join(reported, ", ")))
	}

	if expect.Relations != nil {
		evaluateRelations(result, kin, expect.Relations)
	}
}

func hasFinding(result *Result, want FindingExpectation) bool {
	for _, f := range result.Report.Findings {
		if f.Code != want.Code {
			continue
		}
		if want.Record == "" || f.RecordID == want.Record {
			return true
		}
	}
	return false
}

func evaluateRelations(result *Result, kin *kinship.Engine, want *RelationExpectations) {
	got := result.Relations
	if want.CousinMarriages != nil {
		compareIDs(result, "cousin_marriages", want.CousinMarriages, got.CousinMarriages)
	}
	if want.AuntUncleMarriages != nil {
		compareIDs(result, "aunt_uncle_marriages", want.AuntUncleMarriages, got.AuntUncleMarriages)
	}
	if want.SiblingMarriages != nil {
		compareIDs(result, "sibling_marriages", want.SiblingMarriages, got.SiblingMarriages)
	}
	if want.ParentChildMarriages != nil {
		compareIDs(result, "parent_child_marriages", want.ParentChildMarriages, got.ParentChildMarriages)
	}

	store := kin.Store()
	for _, q := range want.SiblingFounders {
		a, _ := store.FindFamily(q.A)
		b, _ := store.FindFamily(q.B)
		if related := kin.AreFoundersSiblings(a, b); related != q.Related {
			result.AddError(fmt.Sprintf("sibling_founders(%s, %s): expected %t, got %t", q.A, q.B, q.Related, related))
		}
	}
}

// compareIDs treats an empty expectation list as "none".
func compareIDs(result *Result, what string, want, got []string) {
	if len(want) == 0 && len(got) == 0 {
		return
	}
	if !slices.Equal(want, got) {
		result.AddError(fmt.Sprintf("%s: expected [%s], got [%s]", what, strings.Join(want, " "), strings.Join(got, " ")))
	}
}
