package store

import (
	"database/sql"
	"fmt"
	"time"
)

type Run struct {
	ID                  int64
	Branch              string
	ShortSHA            string
	CreatedAt           time.Time
	ReportPath          string
	PDFPath             sql.NullString
	FindingsJSON        string
	FindingCount        int
	RecommendationCount int
}

type RunParams struct {
	Branch              string
	ShortSHA            string
	CreatedAt           time.Time
	ReportPath          string
	PDFPath             string
	FindingsJSON        string
	FindingCount        int
	RecommendationCount int
}

func (s *Store) RecordRun(p RunParams) (int64, error) {
	if p.Branch == "" {
		return 0, fmt.Errorf("branch is required")
	}
	pdfPath := sql.NullString{String: p.PDFPath, Valid: p.PDFPath != ""}
	res, err := s.db.Exec(`
		INSERT INTO runs (branch, short_sha, created_at, report_path, pdf_path, findings_json, finding_count, recommendation_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, p.Branch, p.ShortSHA, p.CreatedAt.UTC(), p.ReportPath, pdfPath, p.FindingsJSON, p.FindingCount, p.RecommendationCount)
	if err != nil {
		return 0, fmt.Errorf("failed to record run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read run id: %w", err)
	}
	return id, nil
}

func (s *Store) GetRun(id int64) (Run, error) {
	row := s.db.QueryRow(`
		SELECT id, branch, short_sha, created_at, report_path, pdf_path, findings_json, finding_count, recommendation_count
		FROM runs
		WHERE id = ?
	`, id)
	return scanRun(row)
}

func (s *Store) LatestRun() (Run, error) {
	row := s.db.QueryRow(`
		SELECT id, branch, short_sha, created_at, report_path, pdf_path, findings_json, finding_count, recommendation_count
		FROM runs
		ORDER BY id DESC
		LIMIT 1
	`)
	return scanRun(row)
}

func (s *Store) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
		SELECT id, branch, short_sha, created_at, report_path, pdf_path, findings_json, finding_count, recommendation_count
		FROM runs
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		run, err := scanRunRows(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

func scanRun(row *sql.Row) (Run, error) {
	var run Run
	if err := row.Scan(
		&run.ID,
		&run.Branch,
		&run.ShortSHA,
		&run.CreatedAt,
		&run.ReportPath,
		&run.PDFPath,
		&run.FindingsJSON,
		&run.FindingCount,
		&run.RecommendationCount,
	); err != nil {
		if err == sql.ErrNoRows {
			return Run{}, err
		}
		return Run{}, fmt.Errorf("failed to read run: %w", err)
	}
	return run, nil
}

func scanRunRows(rows *sql.Rows) (Run, error) {
	var run Run
	if err := rows.Scan(
		&run.ID,
		&run.Branch,
		&run.ShortSHA,
		&run.CreatedAt,
		&run.ReportPath,
		&run.PDFPath,
		&run.FindingsJSON,
		&run.FindingCount,
		&run.RecommendationCount,
	); err != nil {
		return Run{}, fmt.Errorf("failed to read run: %w", err)
	}
	return run, nil
}
