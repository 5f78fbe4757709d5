package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/seyio/leadpilot/pkg/models"
)

// HistoryCap bounds how many runs are retained. Creating a run beyond the
// cap evicts the oldest non-current entries.
const HistoryCap = 50

// Store persists workflow runs in a local SQLite database. Each run is one
// row holding the serialized aggregate; the current run is a flag on its
// row, so the current pointer and the history entry for a run can never
// diverge.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the store at the given path
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// OpenDefault opens the store at ~/.leadpilot/leadpilot.db
func OpenDefault() (*Store, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	dir := filepath.Join(homeDir, ".leadpilot")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create leadpilot directory: %w", err)
	}

	return Open(filepath.Join(dir, "leadpilot.db"))
}

// Close closes the underlying database
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RunMigrations creates all necessary tables
func RunMigrations(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		data TEXT NOT NULL,
		is_current INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
	CREATE INDEX IF NOT EXISTS idx_runs_is_current ON runs(is_current);
	`
	_, err := db.Exec(schema)
	return err
}

// CreateRun inserts a new run, makes it current, and evicts the oldest
// entries beyond the history cap.
func (s *Store) CreateRun(run models.WorkflowRun) error {
	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("marshal run: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`UPDATE runs SET is_current=0`); err != nil {
		return err
	}
	_, err = tx.Exec(
		`INSERT INTO runs (id, name, data, is_current, created_at, updated_at) VALUES (?, ?, ?, 1, ?, ?)`,
		run.ID, run.Name, string(data), run.CreatedAt, run.UpdatedAt,
	)
	if err != nil {
		return err
	}

	// Evict beyond the cap, oldest first, never the current run
	_, err = tx.Exec(`
		DELETE FROM runs WHERE id IN (
			SELECT id FROM runs WHERE is_current=0
			ORDER BY created_at DESC
			LIMIT -1 OFFSET ?
		)`, HistoryCap-1)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// SaveRun writes an updated run back to its history row. The run must
// already exist; saving is the persistence side effect of every successful
// mutation.
func (s *Store) SaveRun(run models.WorkflowRun) error {
	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("marshal run: %w", err)
	}

	res, err := s.db.Exec(
		`UPDATE runs SET name=?, data=?, updated_at=? WHERE id=?`,
		run.Name, string(data), run.UpdatedAt, run.ID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CurrentRun returns the current run, or nil if none is set
func (s *Store) CurrentRun() (*models.WorkflowRun, error) {
	var data string
	err := s.db.QueryRow(`SELECT data FROM runs WHERE is_current=1 LIMIT 1`).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeRun(data)
}

// GetRun returns one run by id, or nil if not found
func (s *Store) GetRun(id string) (*models.WorkflowRun, error) {
	var data string
	err := s.db.QueryRow(`SELECT data FROM runs WHERE id=?`, id).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeRun(data)
}

// SetCurrent makes the run with the given id current. A missing id is
// silently ignored and the current pointer is left unchanged.
func (s *Store) SetCurrent(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`UPDATE runs SET is_current=1 WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil
	}
	if _, err := tx.Exec(`UPDATE runs SET is_current=0 WHERE id != ?`, id); err != nil {
		return err
	}
	return tx.Commit()
}

// DeleteRun removes a run from history. If it was current, no run is
// current afterwards.
func (s *Store) DeleteRun(id string) error {
	_, err := s.db.Exec(`DELETE FROM runs WHERE id=?`, id)
	return err
}

// RunSummary is a listing row for the history view
type RunSummary struct {
	ID        string
	Name      string
	IsCurrent bool
	Stats     models.RunStats
}

// ListRuns returns run summaries, newest first
func (s *Store) ListRuns() ([]RunSummary, error) {
	rows, err := s.db.Query(`SELECT data, is_current FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var data string
		var current bool
		if err := rows.Scan(&data, &current); err != nil {
			return nil, err
		}
		run, err := decodeRun(data)
		if err != nil {
			return nil, err
		}
		out = append(out, RunSummary{
			ID:        run.ID,
			Name:      run.Name,
			IsCurrent: current,
			Stats:     run.Stats,
		})
	}
	return out, rows.Err()
}

func decodeRun(data string) (*models.WorkflowRun, error) {
	run := &models.WorkflowRun{}
	if err := json.Unmarshal([]byte(data), run); err != nil {
		return nil, fmt.Errorf("decode run: %w", err)
	}
	return run, nil
}
