package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/amishk599/interndigest/internal/model"
)

// Ensure SQLiteStore implements model.RunStore.
var _ model.RunStore = (*SQLiteStore)(nil)

// timeLayout is fixed-width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const dateLayout = "2006-01-02"

// SQLiteStore archives digest runs and the postings each one sent.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and ensures the
// runs and run_postings tables exist.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Verify the connection is alive.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id            TEXT PRIMARY KEY,
			run_at        TEXT NOT NULL,
			scraped       INTEGER NOT NULL,
			unique_count  INTEGER NOT NULL,
			sent          INTEGER NOT NULL,
			fallback_used INTEGER NOT NULL,
			delivered     INTEGER NOT NULL,
			delivery_err  TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS run_postings (
			run_id       TEXT NOT NULL,
			position     INTEGER NOT NULL,
			title        TEXT NOT NULL,
			company      TEXT NOT NULL,
			location     TEXT NOT NULL,
			compensation TEXT NOT NULL,
			url          TEXT NOT NULL,
			source       TEXT NOT NULL,
			posted_date  TEXT NOT NULL,
			PRIMARY KEY (run_id, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_run_at ON runs (run_at)`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("creating schema: %w", err)
		}
	}

	return &SQLiteStore{db: db}, nil
}

// SaveRun records run and its postings in one transaction. Saving the same
// run ID twice replaces the earlier record.
func (s *SQLiteStore) SaveRun(ctx context.Context, run model.RunRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save run %s: %w", run.ID, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM run_postings WHERE run_id = ?", run.ID); err != nil {
		return fmt.Errorf("clearing postings for run %s: %w", run.ID, err)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO runs (id, run_at, scraped, unique_count, sent, fallback_used, delivered, delivery_err)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.RunAt.UTC().Format(timeLayout), run.Scraped, run.Unique, run.Sent,
		boolToInt(run.FallbackUsed), boolToInt(run.Delivered), run.DeliveryErr,
	)
	if err != nil {
		return fmt.Errorf("inserting run %s: %w", run.ID, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO run_postings (run_id, position, title, company, location, compensation, url, source, posted_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing posting insert: %w", err)
	}
	defer stmt.Close()

	for i, p := range run.Postings {
		_, err := stmt.ExecContext(ctx, run.ID, i, p.Title, p.Company, p.Location, p.Compensation,
			p.URL, string(p.Source), p.PostedDate.Format(dateLayout))
		if err != nil {
			return fmt.Errorf("inserting posting %d of run %s: %w", i, run.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run %s: %w", run.ID, err)
	}
	return nil
}

// RecentRuns returns up to limit runs, newest first, with their postings.
func (s *SQLiteStore) RecentRuns(ctx context.Context, limit int) ([]model.RunRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, run_at, scraped, unique_count, sent, fallback_used, delivered, delivery_err
		 FROM runs ORDER BY run_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []model.RunRecord
	for rows.Next() {
		var (
			r                   model.RunRecord
			runAt               string
			fallback, delivered int
		)
		if err := rows.Scan(&r.ID, &runAt, &r.Scraped, &r.Unique, &r.Sent, &fallback, &delivered, &r.DeliveryErr); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if r.RunAt, err = time.Parse(timeLayout, runAt); err != nil {
			return nil, fmt.Errorf("parsing run_at %q: %w", runAt, err)
		}
		r.FallbackUsed = fallback != 0
		r.Delivered = delivered != 0
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}

	for i := range runs {
		postings, err := s.runPostings(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Postings = postings
	}
	return runs, nil
}

func (s *SQLiteStore) runPostings(ctx context.Context, runID string) ([]model.Posting, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT title, company, location, compensation, url, source, posted_date
		 FROM run_postings WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying postings for run %s: %w", runID, err)
	}
	defer rows.Close()

	var postings []model.Posting
	for rows.Next() {
		var (
			p            model.Posting
			source, date string
		)
		if err := rows.Scan(&p.Title, &p.Company, &p.Location, &p.Compensation, &p.URL, &source, &date); err != nil {
			return nil, fmt.Errorf("scanning posting for run %s: %w", runID, err)
		}
		p.Source = model.Source(source)
		if p.PostedDate, err = time.Parse(dateLayout, date); err != nil {
			return nil, fmt.Errorf("parsing posted_date %q: %w", date, err)
		}
		postings = append(postings, p)
	}
	return postings, rows.Err()
}

// Cleanup deletes runs (and their postings) older than the given duration.
func (s *SQLiteStore) Cleanup(ctx context.Context, olderThan time.Duration) error {
	cutoff := time.Now().Add(-olderThan).UTC().Format(timeLayout)
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM run_postings WHERE run_id IN (SELECT id FROM runs WHERE run_at < ?)", cutoff)
	if err != nil {
		return fmt.Errorf("cleaning up postings older than %v: %w", olderThan, err)
	}
	if _, err := s.db.ExecContext(ctx, "DELETE FROM runs WHERE run_at < ?", cutoff); err != nil {
		return fmt.Errorf("cleaning up runs older than %v: %w", olderThan, err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
