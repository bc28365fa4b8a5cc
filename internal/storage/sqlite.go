// Package storage provides SQLite-based persistence for the run history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/horse-dash/internal/config"
	"github.com/vovakirdan/horse-dash/internal/core"
)

// Store manages the SQLite database connection for the run history.
type Store struct {
	db *sql.DB
}

// Run is one finished run.
type Run struct {
	ID          int64
	Variant     string // Ruleset name
	RecipientID string // Empty for the default recipient
	Recipient   string // Display name at the time of the run
	Phase       core.Phase
	Total       int
	Target      int
	Score       int
	Frames      int
	CreatedAt   time.Time
}

// NewRun builds the history record for a finished run of the given ruleset.
func NewRun(variant string, r config.Recipient, st core.GameState) Run {
	return Run{
		Variant:     variant,
		RecipientID: r.ID,
		Recipient:   r.Name,
		Phase:       st.Phase,
		Total:       st.Total,
		Target:      st.Target,
		Score:       st.Score,
		Frames:      st.Frames,
	}
}

// Cleared reports whether the run hit the target.
func (r Run) Cleared() bool {
	return r.Phase == core.PhaseCleared
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			variant TEXT NOT NULL,
			recipient_id TEXT NOT NULL DEFAULT '',
			recipient TEXT NOT NULL DEFAULT '',
			phase TEXT NOT NULL,
			total INTEGER NOT NULL DEFAULT 0,
			target INTEGER NOT NULL DEFAULT 0,
			score INTEGER NOT NULL DEFAULT 0,
			frames INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_variant ON runs(variant);
		CREATE INDEX IF NOT EXISTS idx_runs_recipient ON runs(recipient_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished run. Runs that are still playing are rejected.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(run Run) (int64, error) {
	if !run.Phase.Terminal() {
		return 0, fmt.Errorf("storage: run is not finished (phase %s)", run.Phase)
	}

	result, err := s.db.Exec(
		`INSERT INTO runs (variant, recipient_id, recipient, phase, total, target, score, frames)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.Variant, run.RecipientID, run.Recipient, run.Phase.String(),
		run.Total, run.Target, run.Score, run.Frames,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const runColumns = `id, variant, recipient_id, recipient, phase, total, target, score, frames, created_at`

// RecentRuns returns the latest runs, newest first. An empty variant
// matches all rulesets.
func (s *Store) RecentRuns(variant string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE ? = '' OR variant = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		variant, variant, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// RecipientRuns returns the latest runs for one recipient, newest first.
func (s *Store) RecipientRuns(recipientID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE recipient_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		recipientID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query recipient runs: %w", err)
	}
	return scanRuns(rows)
}

func scanRuns(rows *sql.Rows) ([]Run, error) {
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var phase string
		var createdAt any
		if err := rows.Scan(
			&r.ID, &r.Variant, &r.RecipientID, &r.Recipient, &phase,
			&r.Total, &r.Target, &r.Score, &r.Frames, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		p, ok := core.ParsePhase(phase)
		if !ok {
			return nil, fmt.Errorf("storage: run %d has unknown phase %q", r.ID, phase)
		}
		r.Phase = p
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// parseTime handles both time.Time and the string form SQLite returns.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// ClearRuns deletes the history of one ruleset, or all of it when variant
// is empty.
func (s *Store) ClearRuns(variant string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE ? = '' OR variant = ?", variant, variant)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// RunStats contains aggregated statistics for a ruleset or recipient.
type RunStats struct {
	Key        string // Variant or recipient id
	Runs       int
	Cleared    int
	BestScore  int
	LastPlayed time.Time
}

// ClearRate returns the share of cleared runs, 0 with no runs.
func (st RunStats) ClearRate() float64 {
	if st.Runs == 0 {
		return 0
	}
	return float64(st.Cleared) / float64(st.Runs)
}

// VariantStats retrieves statistics for a single ruleset.
func (s *Store) VariantStats(variant string) (*RunStats, error) {
	stats := &RunStats{Key: variant}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN phase = 'cleared' THEN 1 ELSE 0 END), 0),
		        COALESCE(MAX(score), 0),
		        MAX(created_at)
		 FROM runs WHERE variant = ?`,
		variant,
	).Scan(&stats.Runs, &stats.Cleared, &stats.BestScore, &lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get variant stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// RecipientStats retrieves statistics for every recipient that has runs,
// keyed by recipient id.
func (s *Store) RecipientStats() (map[string]*RunStats, error) {
	rows, err := s.db.Query(
		`SELECT recipient_id, COUNT(*),
		        SUM(CASE WHEN phase = 'cleared' THEN 1 ELSE 0 END),
		        MAX(score), MAX(created_at)
		 FROM runs
		 GROUP BY recipient_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get recipient stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*RunStats)
	for rows.Next() {
		var st RunStats
		var lastPlayed any
		if err := rows.Scan(&st.Key, &st.Runs, &st.Cleared, &st.BestScore, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.Key] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}
