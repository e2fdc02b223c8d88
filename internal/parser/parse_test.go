package parser

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDocument = `0 NOTE sample family
0 HEAD
0 I1 INDI
1 NAME Joe /Smith/
1 SEX M
1 BIRT
2 DATE 15 JUL 1960
1 FAMS F1
0 I2 INDI
1 NAME Jennifer /Smith/
1 SEX F
1 BIRT
2 DATE 23 SEP 1961
1 FAMS F1
0 I3 INDI
1 NAME Dick /Smith/
1 SEX M
1 BIRT
2 DATE 13 FEB 1981
1 FAMC F1
0 F1 FAM
1 HUSB I1
1 WIFE I2
1 CHIL I3
1 MARR
2 DATE 14 FEB 1980
0 TRLR`

func TestParseReader(t *testing.T) {
	store, stats, err := ParseReader(strings.NewReader(sampleDocument),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, err)

	assert.Len(t, store.Individuals(), 3)
	assert.Len(t, store.Families(), 1)
	assert.Equal(t, 27, stats.Lines)
	assert.Equal(t, 0, stats.Unrecognized)
	assert.Equal(t, 3, stats.Structural)

	fam, ok := store.FindFamily("F1")
	require.True(t, ok)
	date, _ := fam.Marriage.Date()
	assert.Equal(t, "14 FEB 1980", date)
}

func TestParseReader_CRLF(t *testing.T) {
	crlf := strings.ReplaceAll(sampleDocument, "\n", "\r\n")
	store, _, err := ParseReader(strings.NewReader(crlf),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, err)

	ind, ok := store.FindIndividual("I1")
	require.True(t, ok)
	assert.Equal(t, "Joe /Smith/", ind.Name)
}

func TestParseReader_MatchesParse(t *testing.T) {
	fromReader, _, err := ParseReader(strings.NewReader(sampleDocument),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, err)
	fromLines := quietParse(strings.Split(sampleDocument, "\n")...)

	a, err := fromReader.Fingerprint()
	require.NoError(t, err)
	b, err := fromLines.Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk on fire")
}

func TestParseReader_ReadError(t *testing.T) {
	_, _, err := ParseReader(failingReader{},
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk on fire")
}

func TestParse_Empty(t *testing.T) {
	store := quietParse()
	assert.Empty(t, store.Individuals())
	assert.Empty(t, store.Families())
}

func TestParseReader_OverlongLineSkipped(t *testing.T) {
	doc := "0 I1 INDI\n0 NOTE " + strings.Repeat("x", 2*maxLineSize) + "\n0 I2 INDI\n1 NAME Bob /Lee/\n"
	store, stats, err := ParseReader(strings.NewReader(doc),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, err)

	require.Len(t, store.Individuals(), 2)
	ind, ok := store.FindIndividual("I2")
	require.True(t, ok)
	assert.Equal(t, "Bob /Lee/", ind.Name)
	assert.Equal(t, 4, stats.Lines)
	assert.Equal(t, 1, stats.Unrecognized)
}

func TestEachLine(t *testing.T) {
	type got struct {
		text     string
		overlong bool
	}
	tests := []struct {
		name  string
		input string
		want  []got
	}{
		{"empty", "", nil},
		{"no final newline", "a\nb", []got{{"a", false}, {"b", false}}},
		{"crlf", "a\r\n\r\nb\r\n", []got{{"a", false}, {"", false}, {"b", false}}},
		{"overlong middle", "ok\n0123456789abc\nend\n", []got{{"ok", false}, {"", true}, {"end", false}}},
		{"overlong last", "ok\n0123456789abc", []got{{"ok", false}, {"", true}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var lines []got
			err := eachLine(strings.NewReader(tt.input), 8, func(line string, overlong bool) {
				lines = append(lines, got{line, overlong})
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, lines)
		})
	}
}
