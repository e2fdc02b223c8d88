package gedfile

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

const smallDocument = "0 HEAD\n0 I1 INDI\n1 NAME Ann /Lee/\n1 BIRT\n2 DATE 1 JAN 1980\n0 F1 FAM\n1 WIFE I1\n0 TRLR\n"

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func writeXZ(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)
	w, err := xz.NewWriter(f)
	require.NoError(t, err)
	_, err = io.WriteString(w, content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())
	return path
}

func TestLoad_StripsBOM(t *testing.T) {
	store, stats, err := Load(writeFile(t, "bom.ged", "\ufeff0 I1 INDI\n1 NAME Ann /Lee/\n"),
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Unrecognized)

	ind, ok := store.FindIndividual("I1")
	require.True(t, ok)
	assert.Equal(t, "Ann /Lee/", ind.Name)
}

func TestLoad_NotFound(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "missing.ged"), nil)
	require.Error(t, err)

	var fileErr *Error
	require.True(t, errors.As(err, &fileErr))
	assert.True(t, fileErr.NotFound)
	assert.Contains(t, err.Error(), "missing.ged")
}

func TestOpen_XZ(t *testing.T) {
	f, err := Open(writeXZ(t, "family.ged.xz", smallDocument))
	require.NoError(t, err)
	defer f.Close()

	b, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, smallDocument, string(b))
}

func TestOpen_CorruptXZ(t *testing.T) {
	_, err := Open(writeFile(t, "broken.ged.xz", "not compressed"))
	require.Error(t, err)

	var fileErr *Error
	require.True(t, errors.As(err, &fileErr))
	assert.False(t, fileErr.NotFound)
	assert.Contains(t, err.Error(), "open xz stream")
}

func TestStripBOM_ShortInput(t *testing.T) {
	b, err := io.ReadAll(StripBOM(strings.NewReader("0")))
	require.NoError(t, err)
	assert.Equal(t, "0", string(b))
}

func TestLoad(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	for _, path := range []string{
		writeFile(t, "family.ged", smallDocument),
		writeXZ(t, "family.ged.xz", smallDocument),
	} {
		store, stats, err := Load(path, logger)
		require.NoError(t, err, path)
		assert.Equal(t, 8, stats.Lines)
		assert.Equal(t, 1, stats.Individuals)
		assert.Equal(t, 1, stats.Families)

		ind, ok := store.FindIndividual("I1")
		require.True(t, ok)
		assert.Equal(t, "Ann /Lee/", ind.Name)
	}
}
