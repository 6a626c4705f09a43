package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Job statuses, in lifecycle order.
const (
	JobPending = "pending"
	JobRunning = "running"
	JobDone    = "done"
	JobFailed  = "failed"
)

// Report is one persisted generation result with its validation outcome.
type Report struct {
	ID              string
	CreatedAt       time.Time
	Mode            string
	TemplateID      string
	ReportType      string
	Subject         string
	Prompt          string
	Content         string
	Valid           bool
	Warnings        []string
	MissingSections []string
}

// Job is one queued report-generation request.
type Job struct {
	ID               string
	CreatedAt        time.Time
	Status           string
	Mode             string
	TemplateID       string
	ReportType       string
	Subject          string
	PlayerID         int
	BaseInstructions string
	Level            string
	DataDepth        string
	Audience         string
	ReportID         string
	Error            string
}

type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates or opens a SQLite database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS reports (
			id TEXT PRIMARY KEY,
			created_at TIMESTAMP,
			mode TEXT,
			template_id TEXT,
			report_type TEXT,
			subject TEXT,
			prompt TEXT,
			content TEXT,
			valid INTEGER,
			warnings JSON,
			missing_sections JSON
		);`,
		`CREATE TABLE IF NOT EXISTS report_jobs (
			id TEXT PRIMARY KEY,
			created_at TIMESTAMP,
			status TEXT,
			mode TEXT,
			template_id TEXT,
			report_type TEXT,
			subject TEXT,
			player_id INTEGER,
			base_instructions TEXT,
			level TEXT,
			data_depth TEXT,
			audience TEXT,
			report_id TEXT,
			error TEXT
		);`,
		`CREATE INDEX IF NOT EXISTS idx_reports_template ON reports(template_id);`,
		`CREATE INDEX IF NOT EXISTS idx_jobs_status ON report_jobs(status);`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

// --- Reports ---

func (s *SQLiteStore) SaveReport(ctx context.Context, r *Report) error {
	warnings, _ := json.Marshal(r.Warnings)
	missing, _ := json.Marshal(r.MissingSections)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reports (id, created_at, mode, template_id, report_type, subject, prompt, content, valid, warnings, missing_sections)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			mode=excluded.mode,
			template_id=excluded.template_id,
			report_type=excluded.report_type,
			subject=excluded.subject,
			prompt=excluded.prompt,
			content=excluded.content,
			valid=excluded.valid,
			warnings=excluded.warnings,
			missing_sections=excluded.missing_sections
	`, r.ID, r.CreatedAt, r.Mode, r.TemplateID, r.ReportType, r.Subject, r.Prompt, r.Content, r.Valid, warnings, missing)

	return err
}

func (s *SQLiteStore) GetReport(ctx context.Context, id string) (*Report, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, mode, template_id, report_type, subject, prompt, content, valid, warnings, missing_sections
		FROM reports WHERE id = ?`, id)
	return scanReport(row)
}

// ListReports returns the most recent reports, newest first.
func (s *SQLiteStore) ListReports(ctx context.Context, limit int) ([]*Report, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, mode, template_id, report_type, subject, prompt, content, valid, warnings, missing_sections
		FROM reports ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []*Report
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReport(row rowScanner) (*Report, error) {
	var r Report
	var warnings, missing []byte
	err := row.Scan(&r.ID, &r.CreatedAt, &r.Mode, &r.TemplateID, &r.ReportType,
		&r.Subject, &r.Prompt, &r.Content, &r.Valid, &warnings, &missing)
	if err != nil {
		return nil, err
	}
	if len(warnings) > 0 {
		_ = json.Unmarshal(warnings, &r.Warnings)
	}
	if len(missing) > 0 {
		_ = json.Unmarshal(missing, &r.MissingSections)
	}
	return &r, nil
}

// --- Jobs ---

func (s *SQLiteStore) EnqueueJob(ctx context.Context, j *Job) error {
	if j.Status == "" {
		j.Status = JobPending
	}
	if j.CreatedAt.IsZero() {
		j.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO report_jobs (id, created_at, status, mode, template_id, report_type, subject, player_id, base_instructions, level, data_depth, audience, report_id, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, j.ID, j.CreatedAt, j.Status, j.Mode, j.TemplateID, j.ReportType, j.Subject,
		j.PlayerID, j.BaseInstructions, j.Level, j.DataDepth, j.Audience, j.ReportID, j.Error)
	return err
}

// ClaimNextJob atomically moves the oldest pending job to running and returns
// it. Returns nil when the queue is empty.
func (s *SQLiteStore) ClaimNextJob(ctx context.Context) (*Job, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `
		SELECT id, created_at, status, mode, template_id, report_type, subject, player_id, base_instructions, level, data_depth, audience, report_id, error
		FROM report_jobs WHERE status = ? ORDER BY created_at ASC LIMIT 1`, JobPending)

	var j Job
	err = row.Scan(&j.ID, &j.CreatedAt, &j.Status, &j.Mode, &j.TemplateID, &j.ReportType,
		&j.Subject, &j.PlayerID, &j.BaseInstructions, &j.Level, &j.DataDepth, &j.Audience,
		&j.ReportID, &j.Error)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE report_jobs SET status = ? WHERE id = ?`, JobRunning, j.ID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	j.Status = JobRunning
	return &j, nil
}

func (s *SQLiteStore) CompleteJob(ctx context.Context, jobID, reportID string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE report_jobs SET status = ?, report_id = ? WHERE id = ?`, JobDone, reportID, jobID)
	return err
}

func (s *SQLiteStore) FailJob(ctx context.Context, jobID string, cause error) error {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	_, err := s.db.ExecContext(ctx,
		`UPDATE report_jobs SET status = ?, error = ? WHERE id = ?`, JobFailed, msg, jobID)
	return err
}

func (s *SQLiteStore) GetJob(ctx context.Context, id string) (*Job, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, status, mode, template_id, report_type, subject, player_id, base_instructions, level, data_depth, audience, report_id, error
		FROM report_jobs WHERE id = ?`, id)

	var j Job
	err := row.Scan(&j.ID, &j.CreatedAt, &j.Status, &j.Mode, &j.TemplateID, &j.ReportType,
		&j.Subject, &j.PlayerID, &j.BaseInstructions, &j.Level, &j.DataDepth, &j.Audience,
		&j.ReportID, &j.Error)
	if err != nil {
		return nil, err
	}
	return &j, nil
}
