package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/roach88/gedcheck/internal/record"
	"github.com/roach88/gedcheck/internal/rules"
)

// RunSummary describes an archived run.
type RunSummary struct {
	ID            string   `json:"id"`
	Seq           int64    `json:"seq"`
	Source        string   `json:"source"`
	Fingerprint   string   `json:"fingerprint"`
	ReferenceDate string   `json:"reference_date"`
	Rules         []string `json:"rules"`
	Individuals   int      `json:"individuals"`
	Families      int      `json:"families"`
	Findings      int      `json:"findings"`
}

const runSummarySelect = `
	SELECT r.id, r.seq, r.source, r.fingerprint, r.reference_date, r.rules,
		(SELECT COUNT(*) FROM individuals i WHERE i.run_id = r.id),
		(SELECT COUNT(*) FROM families f WHERE f.run_id = r.id),
		(SELECT COUNT(*) FROM findings x WHERE x.run_id = r.id)
	FROM runs r
`

type scanner interface {
	Scan(dest ...any) error
}

func scanRunSummary(row scanner) (RunSummary, error) {
	var (
		sum       RunSummary
		rulesJSON string
	)
	if err := row.Scan(&sum.ID, &sum.Seq, &sum.Source, &sum.Fingerprint, &sum.ReferenceDate, &rulesJSON,
		&sum.Individuals, &sum.Families, &sum.Findings); err != nil {
		return RunSummary{}, err
	}
	sum.Rules = []string{}
	if err := json.Unmarshal([]byte(rulesJSON), &sum.Rules); err != nil {
		return RunSummary{}, fmt.Errorf("unmarshal rules: %w", err)
	}
	return sum, nil
}

// ReadRun retrieves a single run by ID.
// Returns an error wrapping sql.ErrNoRows if not found.
func (s *Store) ReadRun(ctx context.Context, id string) (RunSummary, error) {
	row := s.db.QueryRowContext(ctx, runSummarySelect+` WHERE r.id = ?`, id)
	sum, err := scanRunSummary(row)
	if err != nil {
		return RunSummary{}, fmt.Errorf("read run %s: %w", id, err)
	}
	return sum, nil
}

// ListRuns returns every run ordered by seq.
// Returns an empty slice (not nil) if no runs exist.
func (s *Store) ListRuns(ctx context.Context) ([]RunSummary, error) {
	return s.queryRuns(ctx, runSummarySelect+` ORDER BY r.seq ASC, r.id COLLATE BINARY ASC`)
}

// RunsByFingerprint returns the runs that checked an identical document.
func (s *Store) RunsByFingerprint(ctx context.Context, fingerprint string) ([]RunSummary, error) {
	return s.queryRuns(ctx, runSummarySelect+` WHERE r.fingerprint = ? ORDER BY r.seq ASC, r.id COLLATE BINARY ASC`, fingerprint)
}

func (s *Store) queryRuns(ctx context.Context, query string, args ...any) ([]RunSummary, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []RunSummary{}
	for rows.Next() {
		sum, err := scanRunSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// ReadFindings returns the findings of a run in report order.
// Returns an empty slice (not nil) if the run had none.
func (s *Store) ReadFindings(ctx context.Context, runID string) ([]rules.Finding, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT code, story, kind, record_id, message
		FROM findings
		WHERE run_id = ?
		ORDER BY seq ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query findings: %w", err)
	}
	defer rows.Close()

	findings := []rules.Finding{}
	for rows.Next() {
		var f rules.Finding
		if err := rows.Scan(&f.Code, &f.Story, &f.Kind, &f.RecordID, &f.Message); err != nil {
			return nil, fmt.Errorf("scan finding: %w", err)
		}
		findings = append(findings, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate findings: %w", err)
	}
	return findings, nil
}

// LoadRecords rebuilds the record store archived with a run. The result
// has the same fingerprint as the store that was saved.
func (s *Store) LoadRecords(ctx context.Context, runID string) (*record.Store, error) {
	if _, err := s.ReadRun(ctx, runID); err != nil {
		return nil, err
	}
	individuals, err := s.readIndividuals(ctx, runID)
	if err != nil {
		return nil, err
	}
	families, err := s.readFamilies(ctx, runID)
	if err != nil {
		return nil, err
	}
	return record.NewStore(individuals, families), nil
}

func (s *Store) readIndividuals(ctx context.Context, runID string) ([]*record.Individual, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, sex, birth, death, fams, famc
		FROM individuals
		WHERE run_id = ?
		ORDER BY position ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query individuals: %w", err)
	}
	defer rows.Close()

	var out []*record.Individual
	for rows.Next() {
		var (
			ind          record.Individual
			sex          string
			birth, death sql.NullString
			fams, famc   string
		)
		if err := rows.Scan(&ind.ID, &ind.Name, &sex, &birth, &death, &fams, &famc); err != nil {
			return nil, fmt.Errorf("scan individual: %w", err)
		}
		ind.Sex = record.Sex(sex)
		if ind.Birth, err = unmarshalEvent(birth); err != nil {
			return nil, err
		}
		if ind.Death, err = unmarshalEvent(death); err != nil {
			return nil, err
		}
		if ind.SpouseOf, err = unmarshalRefs(fams); err != nil {
			return nil, err
		}
		if ind.ChildOf, err = unmarshalRefs(famc); err != nil {
			return nil, err
		}
		out = append(out, &ind)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate individuals: %w", err)
	}
	return out, nil
}

func (s *Store) readFamilies(ctx context.Context, runID string) ([]*record.Family, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT position, id, husband, wife, marriage, divorce
		FROM families
		WHERE run_id = ?
		ORDER BY position ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query families: %w", err)
	}
	defer rows.Close()

	var out []*record.Family
	byPosition := map[int]*record.Family{}
	for rows.Next() {
		var (
			fam               record.Family
			pos               int
			marriage, divorce sql.NullString
		)
		if err := rows.Scan(&pos, &fam.ID, &fam.Husband, &fam.Wife, &marriage, &divorce); err != nil {
			return nil, fmt.Errorf("scan family: %w", err)
		}
		if fam.Marriage, err = unmarshalEvent(marriage); err != nil {
			return nil, err
		}
		if fam.Divorce, err = unmarshalEvent(divorce); err != nil {
			return nil, err
		}
		out = append(out, &fam)
		byPosition[pos] = &fam
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate families: %w", err)
	}

	childRows, err := s.db.QueryContext(ctx, `
		SELECT family_position, child_id
		FROM family_children
		WHERE run_id = ?
		ORDER BY family_position ASC, position ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query family children: %w", err)
	}
	defer childRows.Close()

	for childRows.Next() {
		var (
			pos   int
			child string
		)
		if err := childRows.Scan(&pos, &child); err != nil {
			return nil, fmt.Errorf("scan family child: %w", err)
		}
		if fam, ok := byPosition[pos]; ok {
			fam.Children = append(fam.Children, child)
		}
	}
	if err := childRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate family children: %w", err)
	}
	return out, nil
}
