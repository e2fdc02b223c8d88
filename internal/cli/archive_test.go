package cli

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/gedcheck/internal/rules"
	"github.com/roach88/gedcheck/internal/store"
)

// exportRun archives path into dbPath and returns the run id.
func exportRun(t *testing.T, dbPath, path string) ExportResult {
	t.Helper()
	out, err := execute(t, NewExportCommand(testOptions("json")), path, "--db", dbPath)
	require.NoError(t, err)

	var resp struct {
		Status string       `json:"status"`
		Data   ExportResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Equal(t, "ok", resp.Status)
	return resp.Data
}

func TestExportCommand(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "archive.db")

	result := exportRun(t, dbPath, troubledGED)
	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, dbPath, result.Database)
	assert.Equal(t, "1 JUN 2020", result.ReferenceDate)
	assert.Equal(t, 3, result.Individuals)
	assert.Equal(t, 1, result.Families)
	assert.Equal(t, 4, result.Findings)
}

func TestExportCommand_Text(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "archive.db")

	out, err := execute(t, NewExportCommand(testOptions("text")), cleanGED, "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Archived run ")
	assert.Contains(t, out, "Records: 3 individuals, 1 families")
	assert.Contains(t, out, "Findings: 0")
}

func TestExportCommand_DatabaseFromConfig(t *testing.T) {
	opts := testOptions("text")
	opts.Config.Database = filepath.Join(t.TempDir(), "configured.db")

	_, err := execute(t, NewExportCommand(opts), cleanGED)
	require.NoError(t, err)
	assert.FileExists(t, opts.Config.Database)
}

func TestExportCommand_BadDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "no-such-dir", "archive.db")

	out, err := execute(t, NewExportCommand(testOptions("text")), cleanGED, "--db", dbPath)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E005]")
}

func TestRunsCommand(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "archive.db")
	first := exportRun(t, dbPath, troubledGED)
	second := exportRun(t, dbPath, troubledGED)
	other := exportRun(t, dbPath, cleanGED)

	t.Run("list", func(t *testing.T) {
		out, err := execute(t, NewRunsCommand(testOptions("json")), "--db", dbPath)
		require.NoError(t, err)

		var resp struct {
			Data RunsResult `json:"data"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &resp))
		require.Len(t, resp.Data.Runs, 3)
		assert.Equal(t, first.RunID, resp.Data.Runs[0].ID)
		assert.Equal(t, int64(1), resp.Data.Runs[0].Seq)
		assert.Equal(t, other.RunID, resp.Data.Runs[2].ID)
		assert.Empty(t, resp.Data.Findings)
	})

	t.Run("by fingerprint", func(t *testing.T) {
		out, err := execute(t, NewRunsCommand(testOptions("json")), "--db", dbPath, "--fingerprint", first.Fingerprint)
		require.NoError(t, err)

		var resp struct {
			Data RunsResult `json:"data"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &resp))
		require.Len(t, resp.Data.Runs, 2)
		assert.Equal(t, first.RunID, resp.Data.Runs[0].ID)
		assert.Equal(t, second.RunID, resp.Data.Runs[1].ID)
	})

	t.Run("show", func(t *testing.T) {
		out, err := execute(t, NewRunsCommand(testOptions("text")), "--db", dbPath, "--id", first.RunID)
		require.NoError(t, err)
		assert.Contains(t, out, first.RunID)
		assert.Contains(t, out, "3 individuals, 1 families, 4 findings")
		assert.Contains(t, out, "[US16] family F1: male members have different last names: Smith, Jones")
	})

	t.Run("unknown run", func(t *testing.T) {
		_, err := execute(t, NewRunsCommand(testOptions("text")), "--db", dbPath, "--id", "missing")
		require.Error(t, err)
		assert.Equal(t, ExitCommandError, GetExitCode(err))
		assert.Contains(t, err.Error(), "run not found")
	})
}

func TestRunsCommand_MissingDatabase(t *testing.T) {
	_, err := execute(t, NewRunsCommand(testOptions("text")), "--db", filepath.Join(t.TempDir(), "none.db"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "database not found")
}

func TestRunsCommand_Empty(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "archive.db")
	st, err := store.Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, st.Close())

	out, err := execute(t, NewRunsCommand(testOptions("text")), "--db", dbPath)
	require.NoError(t, err)
	assert.Equal(t, "No runs found in database.\n", out)
}

func TestReplayCommand_Deterministic(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "archive.db")
	run := exportRun(t, dbPath, troubledGED)

	out, err := execute(t, NewReplayCommand(testOptions("text")), run.RunID, "--db", dbPath)
	require.NoError(t, err)
	assert.Equal(t, "✓ Run "+run.RunID+" reproduced: 4 finding(s)\n", out)
}

func TestReplayCommand_UsesArchivedDateAndRules(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "archive.db")

	opts := testOptions("json")
	opts.Config.Rules.Disabled = []string{"US42"}
	out, err := execute(t, NewExportCommand(opts), troubledGED, "--db", dbPath)
	require.NoError(t, err)
	var exported struct {
		Data ExportResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &exported))

	// A different reference date and rule set in the current config must not
	// change what the replay checks.
	replayOpts := testOptions("json")
	replayOpts.Config.ReferenceDate = "1 JAN 2040"
	out, err = execute(t, NewReplayCommand(replayOpts), exported.Data.RunID, "--db", dbPath)
	require.NoError(t, err)

	var resp struct {
		Data ReplayResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.True(t, resp.Data.Deterministic)
	assert.Equal(t, "1 JUN 2020", resp.Data.ReferenceDate)
}

func TestReplayCommand_Drift(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "archive.db")
	st, err := store.Open(dbPath)
	require.NoError(t, err)

	records := parseFile(t, cleanGED)
	forged := rules.Report{
		Rules: []string{"US01"},
		Findings: []rules.Finding{{
			Code: "US01", Story: "Dates before current date", Kind: rules.KindIndividual,
			RecordID: "I1", Message: "forged",
		}},
	}
	runID, err := st.SaveRun(context.Background(), store.Run{Source: cleanGED, ReferenceDate: "1 JUN 2020"}, records, forged)
	require.NoError(t, err)
	require.NoError(t, st.Close())

	out, err := execute(t, NewReplayCommand(testOptions("text")), runID, "--db", dbPath)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "differs from the archive")
	assert.Contains(t, out, "  - [US01] individual I1: forged")
}

func TestReplayCommand_UnknownRun(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "archive.db")
	exportRun(t, dbPath, cleanGED)

	_, err := execute(t, NewReplayCommand(testOptions("text")), "missing", "--db", dbPath)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestSubtract(t *testing.T) {
	a := rules.Finding{Code: "US01", RecordID: "I1"}
	b := rules.Finding{Code: "US02", RecordID: "F1"}

	assert.Empty(t, subtract([]rules.Finding{a, b}, []rules.Finding{b, a}))
	assert.Equal(t, []rules.Finding{a}, subtract([]rules.Finding{a, a}, []rules.Finding{a}))
	assert.Equal(t, []rules.Finding{b}, subtract([]rules.Finding{b}, nil))
}

func TestNotIn(t *testing.T) {
	disabled := notIn([]string{"US01", "US02"})
	assert.Len(t, disabled, len(rules.All())-2)
	assert.NotContains(t, disabled, "US01")
	assert.Contains(t, disabled, "US03")
}
