package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/gedcheck/internal/record"
	"github.com/roach88/gedcheck/internal/rules"
	"github.com/roach88/gedcheck/internal/testutil"
)

// createTestStore creates a new store in a temp dir with predictable run ids.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, WithIDGenerator(testutil.NewSequenceIDs("run")))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

const archiveDocument = `
	0 I1 INDI
	1 NAME Bob /Smith/
	1 SEX M
	1 BIRT
	2 DATE 1 JAN 1960
	1 FAMS F1
	0 I2 INDI
	1 NAME Ann /Lee/
	1 SEX F
	1 DEAT
	1 FAMS F1
	0 I3 INDI
	1 NAME Tim /Smith/
	1 FAMC F1
	0 I3 INDI
	1 NAME Tim /Duplicate/
	0 F1 FAM
	1 HUSB I1
	1 WIFE I2
	1 CHIL I3
	1 CHIL I3
	1 MARR
	2 DATE 1 JUN 1985
	0 F2 FAM
`

func createTestRecords(t *testing.T) *record.Store {
	t.Helper()
	return testutil.ParseGED(t, archiveDocument)
}

func createTestReport() rules.Report {
	return rules.Report{
		Rules: []string{"US03", "US22"},
		Findings: []rules.Finding{
			{Code: "US22", Story: "Unique IDs", Kind: rules.KindIndividual, RecordID: "I3", Message: "individual identifier I3 is used more than once"},
			{Code: "US22", Story: "Unique IDs", Kind: rules.KindDocument, Message: "document level"},
		},
	}
}
