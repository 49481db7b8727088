package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	"StockNewsAlert/internal/model"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists the run journal to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	// Decimals are stored as TEXT to keep them exact.
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			run_id         TEXT PRIMARY KEY,
			started_at     INTEGER NOT NULL,
			finished_at    INTEGER NOT NULL,
			ticker         TEXT NOT NULL,
			issuer         TEXT NOT NULL,
			threshold      TEXT NOT NULL,
			state          TEXT NOT NULL,
			previous_date  TEXT,
			latest_date    TEXT,
			previous_close TEXT,
			latest_close   TEXT,
			difference     TEXT,
			percentage     TEXT,
			increased      INTEGER,
			article_count  INTEGER,
			subject        TEXT,
			error          TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordRun(rec *RunRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO runs
		(run_id, started_at, finished_at, ticker, issuer, threshold, state,
		 previous_date, latest_date, previous_close, latest_close,
		 difference, percentage, increased, article_count, subject, error)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		rec.RunID, rec.StartedAt.UnixMilli(), rec.FinishedAt.UnixMilli(),
		rec.Ticker, rec.Issuer, rec.Threshold.String(), string(rec.State),
		rec.PreviousDate, rec.LatestDate, rec.PreviousClose.String(), rec.LatestClose.String(),
		rec.Difference.String(), rec.Percentage.String(), boolToInt(rec.Increased),
		rec.ArticleCount, rec.Subject, rec.Error,
	)
	return err
}

// RecentRuns returns up to limit runs, newest first.
func (r *SQLiteRecorder) RecentRuns(limit int) ([]RunRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT
		run_id, started_at, finished_at, ticker, issuer, threshold, state,
		previous_date, latest_date, previous_close, latest_close,
		difference, percentage, increased, article_count, subject, error
		FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var (
			rec                               RunRecord
			started, finished                 int64
			threshold, state                  string
			prevClose, latestClose, diff, pct string
		)
		if err := rows.Scan(&rec.RunID, &started, &finished, &rec.Ticker, &rec.Issuer,
			&threshold, &state, &rec.PreviousDate, &rec.LatestDate, &prevClose, &latestClose,
			&diff, &pct, &rec.Increased, &rec.ArticleCount, &rec.Subject, &rec.Error); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		rec.StartedAt = time.UnixMilli(started)
		rec.FinishedAt = time.UnixMilli(finished)
		rec.State = model.RunState(state)
		rec.Threshold = parseDecimal(threshold)
		rec.PreviousClose = parseDecimal(prevClose)
		rec.LatestClose = parseDecimal(latestClose)
		rec.Difference = parseDecimal(diff)
		rec.Percentage = parseDecimal(pct)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
