package serve

import (
	"database/sql"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using modernc.org/sqlite (pure Go).
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Enable WAL mode for concurrent reads.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// Init creates the schema tables.
func (s *SQLiteStore) Init() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id     TEXT NOT NULL UNIQUE,
		endpoint   TEXT NOT NULL,
		goal       TEXT NOT NULL DEFAULT '',
		team       TEXT NOT NULL DEFAULT '',
		backend    TEXT NOT NULL DEFAULT '',
		status     TEXT NOT NULL DEFAULT '',
		error      TEXT NOT NULL DEFAULT '',
		latency_ms INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS scheduled_jobs (
		name       TEXT PRIMARY KEY,
		cron       TEXT NOT NULL,
		team       TEXT NOT NULL DEFAULT '',
		goal       TEXT NOT NULL DEFAULT '',
		enabled    INTEGER NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
	CREATE INDEX IF NOT EXISTS idx_runs_team ON runs(team);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// InsertRun records a dispatch.
func (s *SQLiteStore) InsertRun(r RunRecord) error {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	_, err := s.db.Exec(
		`INSERT INTO runs (run_id, endpoint, goal, team, backend, status, error, latency_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Endpoint, r.Goal, r.Team, r.Backend, r.Status, r.Error, r.LatencyMS, r.CreatedAt,
	)
	return err
}

// ListRuns returns recent runs, newest first.
func (s *SQLiteStore) ListRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	rows, err := s.db.Query(
		`SELECT id, run_id, endpoint, goal, team, backend, status, error, latency_ms, created_at
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var r RunRecord
		if err := rows.Scan(&r.ID, &r.RunID, &r.Endpoint, &r.Goal, &r.Team, &r.Backend,
			&r.Status, &r.Error, &r.LatencyMS, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// UpsertScheduledJob creates or replaces a scheduled job.
func (s *SQLiteStore) UpsertScheduledJob(job ScheduledJob) error {
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now()
	}
	_, err := s.db.Exec(
		`INSERT INTO scheduled_jobs (name, cron, team, goal, enabled, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET cron=excluded.cron, team=excluded.team,
		   goal=excluded.goal, enabled=excluded.enabled`,
		job.Name, job.Cron, job.Team, job.Goal, boolToInt(job.Enabled), job.CreatedAt,
	)
	return err
}

// DeleteScheduledJob removes a scheduled job by name.
func (s *SQLiteStore) DeleteScheduledJob(name string) error {
	_, err := s.db.Exec(`DELETE FROM scheduled_jobs WHERE name = ?`, name)
	return err
}

// ListScheduledJobs returns all scheduled jobs.
func (s *SQLiteStore) ListScheduledJobs() ([]ScheduledJob, error) {
	rows, err := s.db.Query(
		`SELECT name, cron, team, goal, enabled, created_at FROM scheduled_jobs ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ScheduledJob
	for rows.Next() {
		var job ScheduledJob
		var enabled int
		if err := rows.Scan(&job.Name, &job.Cron, &job.Team, &job.Goal, &enabled, &job.CreatedAt); err != nil {
			return nil, err
		}
		job.Enabled = enabled != 0
		out = append(out, job)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
