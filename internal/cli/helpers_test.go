package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/roach88/gedcheck/internal/config"
	"github.com/roach88/gedcheck/internal/gedfile"
	"github.com/roach88/gedcheck/internal/record"
)

const (
	troubledGED = "testdata/troubled.ged"
	cleanGED    = "testdata/clean.ged"
	cousinsGED  = "testdata/cousins.ged"
)

// testOptions returns root options pinned to 1 JUN 2020.
func testOptions(format string) *RootOptions {
	cfg := config.Default()
	cfg.ReferenceDate = "1 JUN 2020"
	return &RootOptions{Format: format, Config: &cfg}
}

// execute runs cmd with args and returns what it wrote to stdout.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// writeFile writes content to name under a fresh temp dir.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// parseFile loads a genealogy file the way commands do.
func parseFile(t *testing.T, path string) *record.Store {
	t.Helper()
	records, _, err := gedfile.Load(path, nil)
	require.NoError(t, err)
	return records
}
