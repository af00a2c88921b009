package serve

import (
	"context"
	"testing"
)

func TestSchedulerAddRemove(t *testing.T) {
	var persisted, removed []string
	s := NewScheduler(
		func(ctx context.Context, job ScheduledJob) {},
		func(job ScheduledJob) error { persisted = append(persisted, job.Name); return nil },
		func(name string) error { removed = append(removed, name); return nil },
	)

	job := ScheduledJob{Name: "weekly-report", Cron: "0 9 * * 1", Team: "campaign-analytics-hub", Goal: "weekly summary", Enabled: true}
	if err := s.AddJob(job); err != nil {
		t.Fatalf("AddJob: %v", err)
	}
	if len(persisted) != 1 || persisted[0] != "weekly-report" {
		t.Errorf("persist callback not called: %v", persisted)
	}

	jobs := s.ListJobs()
	if len(jobs) != 1 || jobs[0].Name != "weekly-report" {
		t.Fatalf("ListJobs = %+v", jobs)
	}

	// Replacing keeps a single entry.
	job.Cron = "0 10 * * 1"
	if err := s.AddJob(job); err != nil {
		t.Fatalf("AddJob replace: %v", err)
	}
	jobs = s.ListJobs()
	if len(jobs) != 1 || jobs[0].Cron != "0 10 * * 1" {
		t.Errorf("replace failed: %+v", jobs)
	}

	if err := s.RemoveJob("weekly-report"); err != nil {
		t.Fatalf("RemoveJob: %v", err)
	}
	if len(removed) != 1 || removed[0] != "weekly-report" {
		t.Errorf("remove callback not called: %v", removed)
	}
	if got := s.ListJobs(); len(got) != 0 {
		t.Errorf("jobs after remove = %+v", got)
	}
}

func TestSchedulerRejectsInvalidCron(t *testing.T) {
	s := NewScheduler(func(ctx context.Context, job ScheduledJob) {}, nil, nil)
	err := s.AddJob(ScheduledJob{Name: "bad", Cron: "not a cron", Goal: "x", Enabled: true})
	if err == nil {
		t.Fatal("expected error for invalid cron expression")
	}
}

func TestSchedulerDisabledJobNotScheduled(t *testing.T) {
	s := NewScheduler(func(ctx context.Context, job ScheduledJob) {}, nil, nil)
	// A disabled job with an invalid cron is still accepted: it is only
	// validated when enabled.
	if err := s.AddJob(ScheduledJob{Name: "paused", Cron: "whatever", Goal: "x", Enabled: false}); err != nil {
		t.Fatalf("AddJob disabled: %v", err)
	}
	jobs := s.ListJobs()
	if len(jobs) != 1 || jobs[0].Enabled {
		t.Errorf("ListJobs = %+v", jobs)
	}
	if err := s.RemoveJob("paused"); err != nil {
		t.Fatalf("RemoveJob disabled: %v", err)
	}
}

func TestBrokerFanOut(t *testing.T) {
	b := NewEventBroker()
	ch1, err := b.Subscribe()
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	ch2, err := b.Subscribe()
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	defer b.Close()

	b.Publish(BrokerEvent{Type: "run.completed", RunID: "r1"})

	for i, ch := range []chan BrokerEvent{ch1, ch2} {
		select {
		case ev := <-ch:
			if ev.RunID != "r1" {
				t.Errorf("subscriber %d: run_id = %q", i, ev.RunID)
			}
		default:
			t.Errorf("subscriber %d received nothing", i)
		}
	}
}

func TestBrokerDropsForSlowSubscriber(t *testing.T) {
	b := NewEventBroker()
	ch, err := b.Subscribe()
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	defer b.Close()

	for i := 0; i < subscriberBuffer+3; i++ {
		b.Publish(BrokerEvent{Type: "run.completed"})
	}

	if got := b.Dropped(); got != 3 {
		t.Errorf("Dropped() = %d, want 3", got)
	}
	if got := len(ch); got != subscriberBuffer {
		t.Errorf("buffered = %d, want %d", got, subscriberBuffer)
	}
}

func TestBrokerClosedRejectsSubscribe(t *testing.T) {
	b := NewEventBroker()
	b.Close()
	if _, err := b.Subscribe(); err == nil {
		t.Fatal("Subscribe on closed broker: want error")
	}
}
