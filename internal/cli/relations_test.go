package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelationsCommand_Text(t *testing.T) {
	out, err := execute(t, NewRelationsCommand(testOptions("text")), cousinsGED)
	require.NoError(t, err)

	assert.Contains(t, out, "First cousin marriages: 1\n  F3 husband=C wife=D\n")
	assert.Contains(t, out, "Aunt/uncle marriages: 0\n")
	assert.Contains(t, out, "Sibling marriages: 0\n")
	assert.Contains(t, out, "Parent/child marriages: 0\n")
	assert.NotContains(t, out, "founded by siblings")
}

func TestRelationsCommand_Founders(t *testing.T) {
	tests := []struct {
		founders string
		want     string
	}{
		{"F1,F2", "Families F1 and F2 are founded by siblings"},
		{"F2,F1", "Families F2 and F1 are founded by siblings"},
		{"F0,F3", "Families F0 and F3 are not founded by siblings"},
		{"F1,F1", "Families F1 and F1 are not founded by siblings"},
		{"F1,F9", "Families F1 and F9 are not founded by siblings"},
	}

	for _, tt := range tests {
		t.Run(tt.founders, func(t *testing.T) {
			out, err := execute(t, NewRelationsCommand(testOptions("text")), cousinsGED, "--founders", tt.founders)
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestRelationsCommand_FoundersNeedTwo(t *testing.T) {
	_, err := execute(t, NewRelationsCommand(testOptions("text")), cousinsGED, "--founders", "F1")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRelationsCommand_JSON(t *testing.T) {
	out, err := execute(t, NewRelationsCommand(testOptions("json")), cousinsGED, "--founders", "F1,F2")
	require.NoError(t, err)

	var resp struct {
		Data RelationsResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, []Marriage{{Family: "F3", Husband: "C", Wife: "D"}}, resp.Data.CousinMarriages)
	assert.Empty(t, resp.Data.SiblingMarriages)
	require.NotNil(t, resp.Data.Founders)
	assert.True(t, resp.Data.Founders.Related)
}
