package rules

import (
	"testing"
	"time"

	"github.com/roach88/gedcheck/internal/testutil"
)

var referenceDay = time.Date(2020, time.June, 1, 0, 0, 0, 0, time.UTC)

func newTestContext(t *testing.T, doc string) *Context {
	t.Helper()
	c := NewContext(testutil.ParseGED(t, doc))
	c.Clock = FixedClock{T: referenceDay}
	return c
}

func checkDoc(t *testing.T, rule Rule, doc string) []Finding {
	t.Helper()
	return rule.Check(newTestContext(t, doc))
}

func recordIDs(fs []Finding) []string {
	out := []string{}
	for _, f := range fs {
		out = append(out, f.RecordID)
	}
	return out
}
