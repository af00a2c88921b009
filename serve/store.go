package serve

import "time"

// Store persists run history and scheduled jobs.
type Store interface {
	// Init creates tables if they don't exist.
	Init() error

	// Close closes the store.
	Close() error

	// InsertRun records a completed or failed dispatch.
	InsertRun(r RunRecord) error

	// ListRuns returns recent runs, newest first.
	ListRuns(limit int) ([]RunRecord, error)

	// UpsertScheduledJob creates or replaces a scheduled job.
	UpsertScheduledJob(job ScheduledJob) error

	// DeleteScheduledJob removes a scheduled job by name.
	DeleteScheduledJob(name string) error

	// ListScheduledJobs returns all scheduled jobs.
	ListScheduledJobs() ([]ScheduledJob, error)
}

// RunRecord is one persisted dispatch through the gateway.
type RunRecord struct {
	ID        int64     `json:"id"`
	RunID     string    `json:"run_id"`
	Endpoint  string    `json:"endpoint"`
	Goal      string    `json:"goal"`
	Team      string    `json:"team,omitempty"`
	Backend   string    `json:"backend,omitempty"`
	Status    string    `json:"status"`
	Error     string    `json:"error,omitempty"`
	LatencyMS int64     `json:"latency_ms"`
	CreatedAt time.Time `json:"created_at"`
}

// Run statuses.
const (
	RunCompleted = "completed"
	RunStreamed  = "streamed"
	RunFailed    = "failed"
)

// ScheduledJob is a persisted recurring team run.
type ScheduledJob struct {
	Name      string    `json:"name"`
	Cron      string    `json:"cron"`
	Team      string    `json:"team,omitempty"`
	Goal      string    `json:"goal"`
	Enabled   bool      `json:"enabled"`
	CreatedAt time.Time `json:"created_at"`
}
