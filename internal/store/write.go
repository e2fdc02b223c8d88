package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/gedcheck/internal/record"
	"github.com/roach88/gedcheck/internal/rules"
)

// Run describes one check to archive.
type Run struct {
	ID            string // generated when empty
	Source        string // input path as given
	ReferenceDate string // "today" the rules used, "2 JAN 2006" form
}

// SaveRun archives records and the report produced over them in a single
// transaction and returns the run identifier.
//
// Saving the same document twice yields two runs with the same fingerprint.
func (s *Store) SaveRun(ctx context.Context, run Run, records *record.Store, report rules.Report) (string, error) {
	if run.ID == "" {
		run.ID = s.ids.NewID()
	}

	fingerprint, err := records.Fingerprint()
	if err != nil {
		return "", fmt.Errorf("save run: %w", err)
	}
	rulesJSON, err := marshalRefs(report.Rules)
	if err != nil {
		return "", fmt.Errorf("save run: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("save run: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM runs`).Scan(&seq); err != nil {
		return "", fmt.Errorf("save run: next seq: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, seq, source, fingerprint, reference_date, rules)
		VALUES (?, ?, ?, ?, ?, ?)
	`, run.ID, seq, run.Source, fingerprint, run.ReferenceDate, rulesJSON)
	if err != nil {
		return "", fmt.Errorf("save run: insert run: %w", err)
	}

	if err := writeIndividuals(ctx, tx, run.ID, records.Individuals()); err != nil {
		return "", err
	}
	if err := writeFamilies(ctx, tx, run.ID, records.Families()); err != nil {
		return "", err
	}
	if err := writeFindings(ctx, tx, run.ID, report.Findings); err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("save run: commit: %w", err)
	}
	return run.ID, nil
}

func writeIndividuals(ctx context.Context, tx *sql.Tx, runID string, individuals []*record.Individual) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO individuals (run_id, position, id, name, sex, birth, death, fams, famc)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("write individuals: prepare: %w", err)
	}
	defer stmt.Close()

	for pos, ind := range individuals {
		birth, err := marshalEvent(ind.Birth)
		if err != nil {
			return fmt.Errorf("write individual %s: %w", ind.ID, err)
		}
		death, err := marshalEvent(ind.Death)
		if err != nil {
			return fmt.Errorf("write individual %s: %w", ind.ID, err)
		}
		fams, err := marshalRefs(ind.SpouseOf)
		if err != nil {
			return fmt.Errorf("write individual %s: %w", ind.ID, err)
		}
		famc, err := marshalRefs(ind.ChildOf)
		if err != nil {
			return fmt.Errorf("write individual %s: %w", ind.ID, err)
		}
		if _, err := stmt.ExecContext(ctx, runID, pos, ind.ID, ind.Name, string(ind.Sex), birth, death, fams, famc); err != nil {
			return fmt.Errorf("write individual %s: %w", ind.ID, err)
		}
	}
	return nil
}

func writeFamilies(ctx context.Context, tx *sql.Tx, runID string, families []*record.Family) error {
	famStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO families (run_id, position, id, husband, wife, marriage, divorce)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("write families: prepare: %w", err)
	}
	defer famStmt.Close()

	childStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO family_children (run_id, family_position, position, child_id)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("write family children: prepare: %w", err)
	}
	defer childStmt.Close()

	for pos, fam := range families {
		marriage, err := marshalEvent(fam.Marriage)
		if err != nil {
			return fmt.Errorf("write family %s: %w", fam.ID, err)
		}
		divorce, err := marshalEvent(fam.Divorce)
		if err != nil {
			return fmt.Errorf("write family %s: %w", fam.ID, err)
		}
		if _, err := famStmt.ExecContext(ctx, runID, pos, fam.ID, fam.Husband, fam.Wife, marriage, divorce); err != nil {
			return fmt.Errorf("write family %s: %w", fam.ID, err)
		}
		for i, child := range fam.Children {
			if _, err := childStmt.ExecContext(ctx, runID, pos, i, child); err != nil {
				return fmt.Errorf("write family %s child %s: %w", fam.ID, child, err)
			}
		}
	}
	return nil
}

func writeFindings(ctx context.Context, tx *sql.Tx, runID string, findings []rules.Finding) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO findings (run_id, seq, code, story, kind, record_id, message)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("write findings: prepare: %w", err)
	}
	defer stmt.Close()

	for i, f := range findings {
		if _, err := stmt.ExecContext(ctx, runID, i, f.Code, f.Story, f.Kind, f.RecordID, f.Message); err != nil {
			return fmt.Errorf("write finding %s: %w", f.Code, err)
		}
	}
	return nil
}

// DeleteRun removes a run and everything archived with it.
// Deleting an unknown run is not an error.
func (s *Store) DeleteRun(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	return nil
}
