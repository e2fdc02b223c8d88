package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/gedcheck/internal/parser"
	"github.com/roach88/gedcheck/internal/record"
)

// Lines splits a multi-line document literal into lines, dropping
// surrounding blank lines and leading indentation. Trailing spaces are
// kept so a line classifies the same as it would in a file.
func Lines(doc string) []string {
	raw := strings.Split(doc, "\n")
	for len(raw) > 0 && strings.TrimSpace(raw[0]) == "" {
		raw = raw[1:]
	}
	for len(raw) > 0 && strings.TrimSpace(raw[len(raw)-1]) == "" {
		raw = raw[:len(raw)-1]
	}

	out := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSuffix(l, "\r")
		out = append(out, strings.TrimLeft(l, " \t"))
	}
	return out
}

// ParseGED parses a document literal into a store.
func ParseGED(t testing.TB, doc string) *record.Store {
	t.Helper()
	store := parser.Parse(Lines(doc))
	require.NotNil(t, store)
	return store
}
