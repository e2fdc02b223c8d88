package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLines_TrimsIndentation(t *testing.T) {
	got := Lines(`
		0 @I1@ INDI
		1 NAME Ann /Lee/
	`)
	assert.Equal(t, []string{"0 @I1@ INDI", "1 NAME Ann /Lee/"}, got)
}

func TestLines_KeepsTrailingSpace(t *testing.T) {
	got := Lines("\n\t0 I1 INDI\n\t1 BIRT \n\t2 DATE 1 JAN 1980\r\n\n")
	assert.Equal(t, []string{"0 I1 INDI", "1 BIRT ", "2 DATE 1 JAN 1980"}, got)
}

func TestParseGED_TrailingSpaceMatchesFile(t *testing.T) {
	store := ParseGED(t, "0 I1 INDI\n1 BIRT \n2 DATE 1 JAN 1980\n")
	ind, ok := store.FindIndividual("I1")
	require.True(t, ok)
	assert.Nil(t, ind.Birth, "a header with a trailing space is unrecognized")
}

func TestParseGED(t *testing.T) {
	store := ParseGED(t, `
		0 @I1@ INDI
		1 NAME Ann /Lee/
		0 @F1@ FAM
		1 WIFE @I1@
	`)
	ind, ok := store.FindIndividual("@I1@")
	require.True(t, ok)
	assert.Equal(t, "Ann /Lee/", ind.Name)
	require.Len(t, store.Families(), 1)
}
