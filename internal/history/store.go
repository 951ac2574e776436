// Package history persists a ledger of past runs in a local SQLite database.
//
// Every process or bulk invocation is recorded with its per-folder outcomes,
// so users can answer "when did I last package this course and what score did
// it get" without digging through log files.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/harrison/scormpack/internal/course"
)

//go:embed schema.sql
var schemaSQL string

// DefaultDBPath is the database location relative to the working directory.
const DefaultDBPath = ".scormpack/history.db"

// Run is one recorded invocation of the process or bulk command.
type Run struct {
	ID           string
	Command      string
	RootPath     string
	StartedAt    time.Time
	DurationSecs int64
	Total        int
	Completed    int
	Failed       int
	Results      []FolderRecord
}

// FolderRecord is the stored outcome for a single course folder within a run.
type FolderRecord struct {
	ID           int64
	RunID        string
	FolderName   string
	FolderPath   string
	Score        int
	Outcome      string
	ArchivePath  string
	ErrorMessage string
}

// Store manages the SQLite run ledger.
type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore opens (or creates) the ledger database at dbPath and ensures the
// schema exists. Use ":memory:" for an ephemeral store.
func NewStore(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// busy_timeout first so later statements wait on locks instead of failing.
	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordRun stores a completed run and its per-folder results, returning the
// generated run ID.
func (s *Store) RecordRun(ctx context.Context, command, rootPath string, summary course.RunSummary) (string, error) {
	runID := uuid.New().String()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, command, root_path, started_at, duration_seconds, total_folders, completed_folders, failed_folders)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		runID,
		command,
		rootPath,
		time.Now().UTC(),
		int64(summary.Duration.Seconds()),
		summary.Total(),
		summary.Completed(),
		summary.Failed(),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	for _, r := range summary.Results {
		errMsg := ""
		if r.Err != nil {
			errMsg = r.Err.Error()
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO folder_results (run_id, folder_name, folder_path, score, outcome, archive_path, error_message)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			runID,
			r.Name,
			r.Folder,
			r.Score,
			r.Outcome.String(),
			r.ArchivePath,
			errMsg,
		)
		if err != nil {
			return "", fmt.Errorf("insert folder result: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit run: %w", err)
	}
	return runID, nil
}

// ListRuns returns the most recent runs, newest first, without their folder
// results. A limit of 0 returns all runs.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT id, command, root_path, started_at, duration_seconds, total_folders, completed_folders, failed_folders
		FROM runs ORDER BY started_at DESC, id DESC`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.Command, &run.RootPath, &run.StartedAt,
			&run.DurationSecs, &run.Total, &run.Completed, &run.Failed); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRun returns a single run with its folder results, or sql.ErrNoRows when
// no run matches. The ID may be a unique prefix of the full UUID.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	var run Run
	err := s.db.QueryRowContext(ctx,
		`SELECT id, command, root_path, started_at, duration_seconds, total_folders, completed_folders, failed_folders
		 FROM runs WHERE id = ? OR id LIKE ? ORDER BY started_at DESC LIMIT 1`,
		id, id+"%").
		Scan(&run.ID, &run.Command, &run.RootPath, &run.StartedAt,
			&run.DurationSecs, &run.Total, &run.Completed, &run.Failed)
	if err != nil {
		return nil, fmt.Errorf("query run %s: %w", id, err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, run_id, folder_name, folder_path, score, outcome, archive_path, error_message
		 FROM folder_results WHERE run_id = ? ORDER BY id`,
		run.ID)
	if err != nil {
		return nil, fmt.Errorf("query folder results: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rec FolderRecord
		if err := rows.Scan(&rec.ID, &rec.RunID, &rec.FolderName, &rec.FolderPath,
			&rec.Score, &rec.Outcome, &rec.ArchivePath, &rec.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scan folder result: %w", err)
		}
		run.Results = append(run.Results, rec)
	}
	return &run, rows.Err()
}

// FolderHistory returns all recorded results for a course folder name, newest
// run first.
func (s *Store) FolderHistory(ctx context.Context, folderName string) ([]FolderRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT fr.id, fr.run_id, fr.folder_name, fr.folder_path, fr.score, fr.outcome, fr.archive_path, fr.error_message
		 FROM folder_results fr JOIN runs r ON r.id = fr.run_id
		 WHERE fr.folder_name = ?
		 ORDER BY r.started_at DESC, fr.id DESC`,
		folderName)
	if err != nil {
		return nil, fmt.Errorf("query folder history: %w", err)
	}
	defer rows.Close()

	var records []FolderRecord
	for rows.Next() {
		var rec FolderRecord
		if err := rows.Scan(&rec.ID, &rec.RunID, &rec.FolderName, &rec.FolderPath,
			&rec.Score, &rec.Outcome, &rec.ArchivePath, &rec.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scan folder result: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Prune deletes the oldest runs beyond keep. Folder results are removed by
// the cascade on runs.
func (s *Store) Prune(ctx context.Context, keep int) error {
	if keep <= 0 {
		return nil
	}
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM runs WHERE id NOT IN (
			SELECT id FROM runs ORDER BY started_at DESC, id DESC LIMIT ?)`,
		keep)
	if err != nil {
		return fmt.Errorf("prune runs: %w", err)
	}
	return nil
}

// ShortID returns the first segment of a run UUID for compact display.
func ShortID(id string) string {
	if i := strings.Index(id, "-"); i > 0 {
		return id[:i]
	}
	return id
}
