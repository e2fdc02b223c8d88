package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand_Text(t *testing.T) {
	out, err := execute(t, NewParseCommand(testOptions("text")), troubledGED)
	require.NoError(t, err)

	assert.Contains(t, out, "✓ Parsed testdata/troubled.ged")
	assert.Contains(t, out, "Individuals: 3")
	assert.Contains(t, out, "Families: 1")
	assert.Contains(t, out, "Fingerprint: ")
	assert.NotContains(t, out, "Bob /Smith/")
}

func TestParseCommand_Records(t *testing.T) {
	out, err := execute(t, NewParseCommand(testOptions("text")), troubledGED, "--records")
	require.NoError(t, err)

	assert.Contains(t, out, "I1 Bob /Smith/ (M)")
	assert.Contains(t, out, "F1 husband=I1 wife=I2 children=[I3]")
}

func TestParseCommand_JSON(t *testing.T) {
	out, err := execute(t, NewParseCommand(testOptions("json")), cousinsGED, "--records")
	require.NoError(t, err)

	var resp struct {
		Status string      `json:"status"`
		Data   ParseResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 0, resp.Data.Stats.Individuals)
	assert.Equal(t, 4, resp.Data.Stats.Families)
	assert.Equal(t, 14, resp.Data.Stats.Lines)
	require.Len(t, resp.Data.Families, 4)
	assert.Equal(t, "F3", resp.Data.Families[3].ID)
	assert.NotEmpty(t, resp.Data.Fingerprint)
}

func TestParseCommand_SameFingerprint(t *testing.T) {
	path := writeFile(t, "copy.ged", "\ufeff0 F1 FAM\r\n1 CHIL A\r\n")
	other := writeFile(t, "other.ged", "0 F1 FAM\n1 CHIL A\n")

	var first, second struct {
		Data ParseResult `json:"data"`
	}
	out, err := execute(t, NewParseCommand(testOptions("json")), path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &first))
	out, err = execute(t, NewParseCommand(testOptions("json")), other)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &second))

	assert.Equal(t, first.Data.Fingerprint, second.Data.Fingerprint)
}

func TestParseCommand_MissingFile(t *testing.T) {
	out, err := execute(t, NewParseCommand(testOptions("text")), "testdata/nope.ged")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), ErrCodeNotFound)
	assert.Contains(t, out, "Error [E002]: input not found: testdata/nope.ged")
}

func TestParseCommand_MissingArgs(t *testing.T) {
	_, err := execute(t, NewParseCommand(testOptions("text")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}
