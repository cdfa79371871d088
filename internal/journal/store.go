package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"crescendo/internal/config"
)

// Store manages verification history persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	lock *flock.Flock
	path string
}

// Open initializes or connects to the journal database and applies
// migrations.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.CacheDir, "journal.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{
		db:   db,
		lock: flock.New(dbPath + ".lock"),
		path: dbPath,
	}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// RecordRun appends a verification outcome. The cross-process lock is
// held only for the duration of the insert.
func (s *Store) RecordRun(ctx context.Context, run Run) error {
	if run.RunID == "" {
		return fmt.Errorf("record run: empty run id")
	}

	rulesJSON, err := json.Marshal(run.Rules)
	if err != nil {
		return fmt.Errorf("marshal rules: %w", err)
	}
	createdAt := run.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("acquire journal lock: %w", err)
	}
	defer func() {
		_ = s.lock.Unlock()
	}()

	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO verification_runs (
            run_id, torrent_id, release_name, verified, skip_hash, rules_json, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.RunID,
		run.TorrentID,
		run.ReleaseName,
		boolInt(run.Verified),
		boolInt(run.SkipHash),
		string(rulesJSON),
		createdAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// ListRecent returns the newest runs first, capped at limit.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT run_id, torrent_id, release_name, verified, skip_hash, rules_json, created_at
         FROM verification_runs
         ORDER BY created_at DESC, id DESC
         LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// ListForTorrent returns all runs for one torrent, newest first.
func (s *Store) ListForTorrent(ctx context.Context, torrentID int64) ([]Run, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT run_id, torrent_id, release_name, verified, skip_hash, rules_json, created_at
         FROM verification_runs
         WHERE torrent_id = ?
         ORDER BY created_at DESC, id DESC`,
		torrentID,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs for torrent %d: %w", torrentID, err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

func scanRuns(rows *sql.Rows) ([]Run, error) {
	var runs []Run
	for rows.Next() {
		var (
			run       Run
			verified  int
			skipHash  int
			rulesJSON string
			createdAt string
		)
		if err := rows.Scan(&run.RunID, &run.TorrentID, &run.ReleaseName, &verified, &skipHash, &rulesJSON, &createdAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.Verified = verified != 0
		run.SkipHash = skipHash != 0
		if err := json.Unmarshal([]byte(rulesJSON), &run.Rules); err != nil {
			return nil, fmt.Errorf("unmarshal rules for run %s: %w", run.RunID, err)
		}
		parsed, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse created_at for run %s: %w", run.RunID, err)
		}
		run.CreatedAt = parsed
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
