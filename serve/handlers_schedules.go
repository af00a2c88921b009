package serve

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	nanobot "github.com/ttracx/sales-marketing-nanobot-swarm"
)

func (s *Server) handleListSchedules(w http.ResponseWriter, r *http.Request) {
	jobs := []ScheduledJob{}
	if s.scheduler != nil {
		jobs = s.scheduler.ListJobs()
	}
	writeJSON(w, http.StatusOK, map[string]any{"total": len(jobs), "schedules": jobs})
}

func (s *Server) handleCreateSchedule(w http.ResponseWriter, r *http.Request) {
	if s.scheduler == nil {
		writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{Error: "scheduler not running"})
		return
	}

	var req ScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" || req.Cron == "" || req.Goal == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "name, cron, and goal are required"})
		return
	}

	team := req.Team
	if team == "" {
		team = nanobot.DetectTeam(req.Goal)
	}
	if _, ok := nanobot.GetTeam(team); !ok {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "unknown team: " + team})
		return
	}

	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	job := ScheduledJob{
		Name:      req.Name,
		Cron:      req.Cron,
		Team:      team,
		Goal:      req.Goal,
		Enabled:   enabled,
		CreatedAt: time.Now(),
	}
	if err := s.scheduler.AddJob(job); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusCreated, job)
}

func (s *Server) handleDeleteSchedule(w http.ResponseWriter, r *http.Request) {
	if s.scheduler == nil {
		writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{Error: "scheduler not running"})
		return
	}

	name := r.PathValue("name")
	if err := s.scheduler.RemoveJob(name); err != nil {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted", "name": name})
}

// runScheduledJob fires one cron-triggered team run and records it like any
// other dispatch.
func (s *Server) runScheduledJob(ctx context.Context, job ScheduledJob) {
	t0 := time.Now()
	messages := swarmMessages(job.Team, job.Goal, nil)

	result, err := s.dispatcher.Dispatch(ctx, messages, swarmRunTemperature, swarmRunMaxTokens)
	if err != nil {
		slog.Warn("scheduled run failed", "name", job.Name, "team", job.Team, "error", err)
		s.recordRun("schedule:"+job.Name, job.Goal, job.Team, "", RunFailed, err.Error(), time.Since(t0))
		return
	}

	slog.Info("scheduled run completed", "name", job.Name, "team", job.Team,
		"backend", result.Backend, "latency", time.Since(t0))
	s.recordRun("schedule:"+job.Name, job.Goal, job.Team, result.Backend, RunCompleted, "", time.Since(t0))
}
