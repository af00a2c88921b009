package serve

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	nanobot "github.com/ttracx/sales-marketing-nanobot-swarm"
)

var swarmCapabilities = []string{
	"lead_generation_and_qualification",
	"content_marketing_and_seo",
	"email_campaign_management",
	"social_media_strategy",
	"campaign_analytics",
	"competitive_intelligence",
	"sales_enablement",
	"account_based_marketing",
	"brand_strategy",
	"growth_hacking",
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	backendStatus := func(configured bool) string {
		if configured {
			return "configured"
		}
		return "not configured"
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "healthy",
		"service":    serviceName,
		"version":    serviceVersion,
		"powered_by": poweredBy,
		"backends": map[string]string{
			"ollama":     backendStatus(s.dispatcher.Primary().Configured()),
			"nvidia_nim": backendStatus(s.dispatcher.Fallback().Configured()),
		},
		"timestamp": float64(time.Now().UnixMilli()) / 1000,
	})
}

func (s *Server) handleSwarmHealth(w http.ResponseWriter, r *http.Request) {
	primary := s.dispatcher.Primary()
	fallback := s.dispatcher.Fallback()

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "operational",
		"service": serviceName,
		"version": serviceVersion,
		"backends": map[string]any{
			"primary": map[string]any{
				"provider":   "Ollama Cloud",
				"model":      primary.Model,
				"configured": primary.Configured(),
			},
			"fallback": map[string]any{
				"provider":   "NVIDIA NIM",
				"model":      fallback.Model,
				"configured": fallback.Configured(),
			},
		},
		"teams_available": len(nanobot.TeamNames()),
		"team_names":      nanobot.TeamNames(),
		"capabilities":    swarmCapabilities,
		"powered_by":      poweredBy,
	})
}

func (s *Server) handleSwarmTopology(w http.ResponseWriter, r *http.Request) {
	teams := nanobot.Teams()

	topology := make(map[string]any, len(teams))
	for _, team := range teams {
		topology[team.Name] = map[string]any{
			"description": team.Description,
			"mode":        team.Mode,
			"agent_count": len(team.Agents),
			"agents":      team.Agents,
			"tools":       team.Tools,
			"category":    team.Category,
			"kpis":        team.KPIs,
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"swarm_name":          serviceName,
		"total_teams":         len(teams),
		"total_unique_agents": nanobot.UniqueAgents(),
		"coordination_model":  "hierarchical + flat hybrid",
		"teams":               topology,
		"routing_logic":       "keyword-based auto-detection with manual override via 'team' parameter",
		"powered_by":          poweredBy,
	})
}

func (s *Server) handleListModels(w http.ResponseWriter, r *http.Request) {
	primary := s.dispatcher.Primary()
	fallback := s.dispatcher.Fallback()

	models := []ModelEntry{}
	if primary.Configured() {
		models = append(models, ModelEntry{
			ID:      primary.Model,
			Object:  "model",
			OwnedBy: "ollama",
			Role:    "primary",
		})
	}
	if fallback.Configured() {
		models = append(models, ModelEntry{
			ID:      fallback.Model,
			Object:  "model",
			OwnedBy: "nvidia-nim",
			Role:    "fallback",
		})
	}

	writeJSON(w, http.StatusOK, ModelList{Object: "list", Data: models})
}

func (s *Server) handleListTeams(w http.ResponseWriter, r *http.Request) {
	teams := nanobot.Teams()

	list := make([]TeamSummary, 0, len(teams))
	for _, team := range teams {
		list = append(list, TeamSummary{
			Name:        team.Name,
			Description: team.Description,
			Mode:        team.Mode,
			AgentCount:  len(team.Agents),
			Category:    team.Category,
			Tools:       team.Tools,
			UseCases:    team.UseCases,
			KPIs:        team.KPIs,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"total": len(list),
		"teams": list,
		"routing_hint": "Use POST /swarm/run with a 'goal' to auto-detect the best team, " +
			"or pass a 'team' name from this list to override.",
	})
}

func (s *Server) handleGetTeam(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	team, ok := nanobot.GetTeam(name)
	if !ok {
		writeJSON(w, http.StatusNotFound, ErrorResponse{
			Error: fmt.Sprintf("Team '%s' not found. Available teams: %s",
				name, strings.Join(nanobot.TeamNames(), ", ")),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"name":        team.Name,
		"description": team.Description,
		"mode":        team.Mode,
		"agents":      team.Agents,
		"agent_count": len(team.Agents),
		"tools":       team.Tools,
		"category":    team.Category,
		"use_cases":   team.UseCases,
		"kpis":        team.KPIs,
		"how_to_invoke": map[string]string{
			"auto":     fmt.Sprintf("POST /swarm/run with a goal describing %s", strings.ToLower(team.Description)),
			"explicit": fmt.Sprintf("POST /swarm/run with team='%s' and your goal", team.Name),
		},
	})
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeJSON(w, http.StatusOK, map[string]any{"total": 0, "runs": []RunRecord{}})
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		fmt.Sscanf(v, "%d", &limit)
	}

	runs, err := s.store.ListRuns(limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	if runs == nil {
		runs = []RunRecord{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"total": len(runs), "runs": runs})
}
