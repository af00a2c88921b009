package serve

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/robfig/cron/v3"
)

// Scheduler fires recurring team runs on cron expressions, e.g. a
// "0 7 * * 1-5" morning pipeline briefing. Jobs are mirrored to durable
// storage through the persist and remove hooks so they survive restarts.
type Scheduler struct {
	c       *cron.Cron
	fire    func(ctx context.Context, job ScheduledJob)
	persist func(job ScheduledJob) error
	remove  func(name string) error

	mu      sync.Mutex
	jobs    map[string]ScheduledJob
	entries map[string]cron.EntryID
}

// NewScheduler creates a Scheduler that invokes fire on each tick of an
// enabled job. persist and remove may be nil when durable storage is not
// wanted; storage errors are logged, never propagated, so a broken store
// cannot stop scheduling.
func NewScheduler(
	fire func(ctx context.Context, job ScheduledJob),
	persist func(job ScheduledJob) error,
	remove func(name string) error,
) *Scheduler {
	return &Scheduler{
		c:       cron.New(),
		fire:    fire,
		persist: persist,
		remove:  remove,
		jobs:    make(map[string]ScheduledJob),
		entries: make(map[string]cron.EntryID),
	}
}

// Start begins the cron runner and blocks until ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	s.c.Start()
	slog.Info("scheduler started")
	<-ctx.Done()
	s.c.Stop()
	slog.Info("scheduler stopped")
}

// AddJob registers a job under its name, replacing any existing job with
// that name. Disabled jobs are stored and persisted without a cron entry so
// they can be re-enabled later.
func (s *Scheduler) AddJob(job ScheduledJob) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.entries[job.Name]; ok {
		s.c.Remove(id)
		delete(s.entries, job.Name)
	}
	delete(s.jobs, job.Name)

	if job.Enabled {
		entryID, err := s.c.AddFunc(job.Cron, s.makeFunc(job))
		if err != nil {
			return fmt.Errorf("invalid cron expression %q: %w", job.Cron, err)
		}
		s.entries[job.Name] = entryID
	}
	s.jobs[job.Name] = job

	if s.persist != nil {
		if err := s.persist(job); err != nil {
			slog.Warn("scheduler: persist job failed", "name", job.Name, "error", err)
		}
	}

	slog.Info("scheduler: job added",
		"name", job.Name, "cron", job.Cron, "team", job.Team, "enabled", job.Enabled)
	return nil
}

// RemoveJob unregisters a job by name and drops it from durable storage.
func (s *Scheduler) RemoveJob(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[name]; !ok {
		return fmt.Errorf("schedule %q not found", name)
	}
	if id, ok := s.entries[name]; ok {
		s.c.Remove(id)
		delete(s.entries, name)
	}
	delete(s.jobs, name)

	if s.remove != nil {
		if err := s.remove(name); err != nil {
			slog.Warn("scheduler: remove job from store failed", "name", name, "error", err)
		}
	}

	slog.Info("scheduler: job removed", "name", name)
	return nil
}

// ListJobs returns a snapshot of all registered jobs, enabled or not,
// sorted by name.
func (s *Scheduler) ListJobs() []ScheduledJob {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ScheduledJob, 0, len(s.jobs))
	for _, j := range s.jobs {
		out = append(out, j)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (s *Scheduler) makeFunc(job ScheduledJob) func() {
	return func() {
		slog.Info("scheduler: firing job", "name", job.Name, "team", job.Team)
		s.fire(context.Background(), job)
	}
}
