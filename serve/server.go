package serve

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	nanobot "github.com/ttracx/sales-marketing-nanobot-swarm"
	"github.com/ttracx/sales-marketing-nanobot-swarm/llm"
	"github.com/ttracx/sales-marketing-nanobot-swarm/tools"
)

// Service identity reported by the health and topology endpoints.
const (
	serviceName    = "Sales & Marketing Nanobot Swarm"
	serviceVersion = "1.0.0"
	poweredBy      = "VibeCaaS.com / NeuralQuantum.ai LLC"
)

// Config holds server configuration.
type Config struct {
	Addr   string
	DBPath string
}

// Server is the HTTP gateway: LLM dispatch endpoints, team registry views,
// calculator tools, run history, scheduler, and the SSE activity feed.
type Server struct {
	gw         nanobot.Config
	dispatcher *llm.Dispatcher
	tools      *tools.Registry
	broker     *EventBroker
	store      Store
	scheduler  *Scheduler
	cfg        Config
	startedAt  time.Time
}

// New creates a new Server over the given dispatcher.
func New(dispatcher *llm.Dispatcher, gw nanobot.Config, cfg Config) *Server {
	return &Server{
		gw:         gw,
		dispatcher: dispatcher,
		tools:      tools.Default(),
		broker:     NewEventBroker(),
		cfg:        cfg,
	}
}

// Handler builds the full route table wrapped in CORS middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.registerRoutes(mux)
	return corsMiddleware(mux)
}

// Start initializes the store and scheduler, registers routes, and listens
// for HTTP requests. It blocks until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	s.startedAt = time.Now()

	store, err := NewSQLiteStore(s.cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	s.store = store
	if err := store.Init(); err != nil {
		return fmt.Errorf("init database: %w", err)
	}

	// Scheduler fires persisted cron jobs as swarm runs.
	s.scheduler = NewScheduler(s.runScheduledJob, store.UpsertScheduledJob, store.DeleteScheduledJob)
	if jobs, err := store.ListScheduledJobs(); err != nil {
		slog.Warn("restore scheduled jobs failed", "error", err)
	} else {
		for _, job := range jobs {
			if err := s.scheduler.AddJob(job); err != nil {
				slog.Warn("restore scheduled job failed", "name", job.Name, "error", err)
			}
		}
	}
	go s.scheduler.Start(ctx)

	// Optional Telegram bridge.
	if s.gw.TelegramToken != "" {
		bot, err := NewTelegramBot(s.gw.TelegramToken, s)
		if err != nil {
			slog.Warn("telegram bridge init failed, bridge disabled", "error", err)
		} else {
			go bot.Start(ctx)
		}
	}

	srv := &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("gateway started", "addr", s.cfg.Addr,
			"primary_configured", s.dispatcher.Primary().Configured(),
			"fallback_configured", s.dispatcher.Fallback().Configured())
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down server")
	case err := <-errCh:
		return err
	}

	// Close the broker first so SSE handlers unblock and the
	// HTTP server can drain cleanly.
	s.broker.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
	if err := store.Close(); err != nil {
		slog.Error("store close error", "error", err)
	}

	return nil
}

// registerRoutes adds all API routes to the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /swarm/health", s.handleSwarmHealth)
	mux.HandleFunc("GET /swarm/topology", s.handleSwarmTopology)

	// Swarm execution
	mux.HandleFunc("POST /swarm/run", s.gated(s.handleSwarmRun))

	// OpenAI compatible
	mux.HandleFunc("POST /v1/chat/completions", s.gated(s.handleChatCompletions))
	mux.HandleFunc("GET /v1/models", s.handleListModels)

	// Builders
	mux.HandleFunc("POST /agent/build", s.gated(s.handleAgentBuild))
	mux.HandleFunc("POST /team/build", s.gated(s.handleTeamBuild))

	// Teams
	mux.HandleFunc("GET /swarm/teams", s.handleListTeams)
	mux.HandleFunc("GET /swarm/teams/{name}", s.handleGetTeam)

	// Calculator tools
	mux.HandleFunc("GET /tools", s.handleListTools)
	mux.HandleFunc("GET /tools/{name}", s.handleGetTool)
	mux.HandleFunc("POST /tools/{name}", s.gated(s.handleRunTool))

	// Run history + activity feed
	mux.HandleFunc("GET /api/runs", s.handleListRuns)
	mux.HandleFunc("GET /api/events", s.handleSSE)

	// Schedules
	mux.HandleFunc("GET /api/schedules", s.handleListSchedules)
	mux.HandleFunc("POST /api/schedules", s.gated(s.handleCreateSchedule))
	mux.HandleFunc("DELETE /api/schedules/{name}", s.gated(s.handleDeleteSchedule))
}

// gated enforces the X-Api-Key shared secret when GATEWAY_API_KEY is set.
// When unset the gate is disabled entirely.
func (s *Server) gated(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.gw.GatewayAPIKey != "" && r.Header.Get("X-Api-Key") != s.gw.GatewayAPIKey {
			writeJSON(w, http.StatusUnauthorized, ErrorResponse{
				Error: "Unauthorized: invalid or missing X-Api-Key header.",
			})
			return
		}
		next(w, r)
	}
}

// corsMiddleware adds permissive CORS headers.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Api-Key")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// recordRun persists a run row and publishes a lifecycle event. The store is
// nil before Start (and in handler tests), in which case only the event is
// published.
func (s *Server) recordRun(endpoint, goal, team, backend, status, errMsg string, latency time.Duration) string {
	runID := uuid.NewString()

	eventType := "run.completed"
	if status == RunFailed {
		eventType = "run.failed"
	}
	s.broker.Publish(BrokerEvent{
		Type:      eventType,
		RunID:     runID,
		Endpoint:  endpoint,
		Team:      team,
		Backend:   backend,
		Error:     errMsg,
		Timestamp: time.Now().Unix(),
	})

	if s.store == nil {
		return runID
	}
	err := s.store.InsertRun(RunRecord{
		RunID:     runID,
		Endpoint:  endpoint,
		Goal:      truncate(goal, 1024),
		Team:      team,
		Backend:   backend,
		Status:    status,
		Error:     errMsg,
		LatencyMS: latency.Milliseconds(),
		CreatedAt: time.Now(),
	})
	if err != nil {
		slog.Warn("record run failed", "endpoint", endpoint, "error", err)
	}
	return runID
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("write json response", "error", err)
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
