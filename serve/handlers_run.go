package serve

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	nanobot "github.com/ttracx/sales-marketing-nanobot-swarm"
	"github.com/ttracx/sales-marketing-nanobot-swarm/llm"
)

// Sampling defaults per endpoint.
const (
	swarmRunTemperature = 0.1
	swarmRunMaxTokens   = 8192

	chatDefaultTemperature = 0.1
	chatDefaultMaxTokens   = 4096

	builderTemperature  = 0.15
	agentBuildMaxTokens = 6144
	teamBuildMaxTokens  = 8192
)

const noBackendMessage = "No LLM backend available. Configure OLLAMA_API_KEY or NVIDIA_API_KEY."

func (s *Server) handleSwarmRun(w http.ResponseWriter, r *http.Request) {
	var req SwarmRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Goal == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "goal is required"})
		return
	}

	t0 := time.Now()

	// Manual override wins; otherwise route by goal keywords. An unknown
	// override keeps its name in the envelope but borrows the default
	// team's configuration.
	teamName := req.Team
	if teamName == "" {
		teamName = nanobot.DetectTeam(req.Goal)
	}
	teamConfig, ok := nanobot.GetTeam(teamName)
	if !ok {
		teamConfig, _ = nanobot.GetTeam(nanobot.DefaultTeam)
	}

	messages := swarmMessages(teamName, req.Goal, req.Context)

	if req.Stream {
		frames, backend, err := s.dispatcher.DispatchStream(r.Context(), messages, swarmRunTemperature, swarmRunMaxTokens)
		if err != nil {
			s.recordRun("/swarm/run", req.Goal, teamName, backend, RunFailed, err.Error(), time.Since(t0))
			writeJSON(w, http.StatusBadGateway, ErrorResponse{Error: err.Error()})
			return
		}
		s.relayStream(w, frames)
		s.recordRun("/swarm/run", req.Goal, teamName, backend, RunStreamed, "", time.Since(t0))
		return
	}

	result, err := s.dispatcher.Dispatch(r.Context(), messages, swarmRunTemperature, swarmRunMaxTokens)
	if err != nil {
		s.recordRun("/swarm/run", req.Goal, teamName, "", RunFailed, err.Error(), time.Since(t0))
		s.writeDispatchError(w, err)
		return
	}

	s.recordRun("/swarm/run", req.Goal, teamName, result.Backend, RunCompleted, "", time.Since(t0))

	writeJSON(w, http.StatusOK, SwarmRunResponse{
		Goal: req.Goal,
		Team: teamName,
		TeamConfig: TeamConfigView{
			Description: teamConfig.Description,
			Mode:        teamConfig.Mode,
			Agents:      teamConfig.Agents,
			Category:    teamConfig.Category,
		},
		Result:         result.Content,
		Backend:        result.Backend,
		LatencySeconds: roundSeconds(time.Since(t0)),
		PoweredBy:      poweredBy,
	})
}

func (s *Server) handleChatCompletions(w http.ResponseWriter, r *http.Request) {
	var req ChatCompletionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Messages) == 0 {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "messages are required"})
		return
	}

	temperature := chatDefaultTemperature
	if req.Temperature != nil {
		temperature = *req.Temperature
	}
	maxTokens := chatDefaultMaxTokens
	if req.MaxTokens != nil {
		maxTokens = *req.MaxTokens
	}

	messages := make([]llm.Message, 0, len(req.Messages)+1)
	hasSystem := false
	for _, m := range req.Messages {
		if m.Role == "system" {
			hasSystem = true
		}
		messages = append(messages, llm.Message{Role: llm.Role(m.Role), Content: m.Content})
	}
	if !hasSystem {
		messages = append([]llm.Message{{Role: llm.RoleSystem, Content: nanobot.SwarmSystemPrompt}}, messages...)
	}

	t0 := time.Now()

	if req.Stream {
		frames, backend, err := s.dispatcher.DispatchStream(r.Context(), messages, temperature, maxTokens)
		if err != nil {
			s.recordRun("/v1/chat/completions", lastUserContent(req.Messages), "", backend, RunFailed, err.Error(), time.Since(t0))
			writeJSON(w, http.StatusBadGateway, ErrorResponse{Error: err.Error()})
			return
		}
		s.relayStream(w, frames)
		s.recordRun("/v1/chat/completions", lastUserContent(req.Messages), "", backend, RunStreamed, "", time.Since(t0))
		return
	}

	result, err := s.dispatcher.Dispatch(r.Context(), messages, temperature, maxTokens)
	if err != nil {
		s.recordRun("/v1/chat/completions", lastUserContent(req.Messages), "", "", RunFailed, err.Error(), time.Since(t0))
		s.writeDispatchError(w, err)
		return
	}

	s.recordRun("/v1/chat/completions", lastUserContent(req.Messages), "", result.Backend, RunCompleted, "", time.Since(t0))

	model := s.dispatcher.Fallback().Model
	if result.Backend == llm.BackendOllama {
		model = s.dispatcher.Primary().Model
	}

	writeJSON(w, http.StatusOK, ChatCompletionResponse{
		ID:      "chatcmpl-sm-" + uuid.NewString(),
		Object:  "chat.completion",
		Created: time.Now().Unix(),
		Model:   model,
		Choices: []ChatChoice{{
			Index:        0,
			Message:      ChatMessage{Role: "assistant", Content: result.Content},
			FinishReason: "stop",
		}},
		Usage:   ChatUsage{PromptTokens: -1, CompletionTokens: -1, TotalTokens: -1},
		Backend: result.Backend,
	})
}

func (s *Server) handleAgentBuild(w http.ResponseWriter, r *http.Request) {
	var req AgentBuildRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" || req.Description == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "name and description are required"})
		return
	}

	t0 := time.Now()

	toolsStr := "auto-select from available tools"
	if len(req.Tools) > 0 {
		toolsStr = strings.Join(req.Tools, ", ")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Build a complete agent configuration for:\n\n")
	fmt.Fprintf(&b, "**Name**: %s\n", req.Name)
	fmt.Fprintf(&b, "**Description**: %s\n", req.Description)
	fmt.Fprintf(&b, "**Role**: %s\n", req.Role)
	fmt.Fprintf(&b, "**Tools**: %s\n", toolsStr)
	if req.Context != "" {
		fmt.Fprintf(&b, "**Context**: %s\n", req.Context)
	}
	b.WriteString("\n\nProvide a complete, production-ready agent configuration JSON " +
		"with a detailed system prompt following the sales & marketing workflow format. " +
		"Include a step-by-step workflow (Step 1 to Step N) and an Output Format section.")

	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: nanobot.AgentBuilderPrompt},
		{Role: llm.RoleUser, Content: b.String()},
	}

	result, err := s.dispatcher.Dispatch(r.Context(), messages, builderTemperature, agentBuildMaxTokens)
	if err != nil {
		s.recordRun("/agent/build", req.Name, "", "", RunFailed, err.Error(), time.Since(t0))
		s.writeDispatchError(w, err)
		return
	}

	s.recordRun("/agent/build", req.Name, "", result.Backend, RunCompleted, "", time.Since(t0))

	writeJSON(w, http.StatusOK, BuildResponse{
		AgentName:      req.Name,
		Configuration:  extractJSONBlock(result.Content),
		FullResponse:   result.Content,
		Backend:        result.Backend,
		LatencySeconds: roundSeconds(time.Since(t0)),
	})
}

func (s *Server) handleTeamBuild(w http.ResponseWriter, r *http.Request) {
	var req TeamBuildRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" || req.Goal == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "name and goal are required"})
		return
	}

	t0 := time.Now()

	if req.Mode == "" {
		req.Mode = "hierarchical"
	}
	if req.AgentCount <= 0 {
		req.AgentCount = 5
	}
	toolsStr := "auto-select from available tools"
	if len(req.Tools) > 0 {
		toolsStr = strings.Join(req.Tools, ", ")
	}

	content := fmt.Sprintf(
		"Build a complete multi-agent team configuration for:\n\n"+
			"**Team Name**: %s\n"+
			"**Description**: %s\n"+
			"**Primary Goal**: %s\n"+
			"**Mode**: %s\n"+
			"**Agent Count**: %d\n"+
			"**Available Tools**: %s\n\n"+
			"Produce:\n"+
			"1. Complete team configuration JSON\n"+
			"2. Agent role descriptions (one paragraph each)\n"+
			"3. Step-by-step workflow\n"+
			"4. Success metrics and KPIs\n"+
			"5. Tool justification",
		req.Name, req.Description, req.Goal, req.Mode, req.AgentCount, toolsStr)

	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: nanobot.TeamBuilderPrompt},
		{Role: llm.RoleUser, Content: content},
	}

	result, err := s.dispatcher.Dispatch(r.Context(), messages, builderTemperature, teamBuildMaxTokens)
	if err != nil {
		s.recordRun("/team/build", req.Name, "", "", RunFailed, err.Error(), time.Since(t0))
		s.writeDispatchError(w, err)
		return
	}

	s.recordRun("/team/build", req.Name, "", result.Backend, RunCompleted, "", time.Since(t0))

	writeJSON(w, http.StatusOK, BuildResponse{
		TeamName:       req.Name,
		Configuration:  extractJSONBlock(result.Content),
		FullResponse:   result.Content,
		Backend:        result.Backend,
		LatencySeconds: roundSeconds(time.Since(t0)),
	})
}

// relayStream forwards backend SSE frames verbatim, one blank line after
// each. A terminal error becomes a final error frame; frames already
// delivered stand.
func (s *Server) relayStream(w http.ResponseWriter, frames <-chan llm.Frame) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "streaming unsupported"})
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	for frame := range frames {
		if frame.Err != nil {
			payload, _ := json.Marshal(map[string]string{"error": frame.Err.Error()})
			fmt.Fprintf(w, "data: %s\n\n", payload)
			flusher.Flush()
			return
		}
		fmt.Fprintf(w, "%s\n\n", frame.Data)
		flusher.Flush()
	}
}

// swarmMessages builds the prompt envelope for a team run.
func swarmMessages(team, goal string, context map[string]any) []llm.Message {
	contextStr := ""
	if len(context) > 0 {
		if data, err := json.MarshalIndent(context, "", "  "); err == nil {
			contextStr = "\n\n## Additional Context\n" + string(data)
		}
	}

	user := fmt.Sprintf(
		"## Team: %s\n## Goal\n%s%s\n\nExecute this goal using the %s team. "+
			"Follow the team's workflow systematically and provide complete, actionable output.",
		team, goal, contextStr, team)

	return []llm.Message{
		{Role: llm.RoleSystem, Content: nanobot.SwarmSystemPrompt},
		{Role: llm.RoleUser, Content: user},
	}
}

var jsonBlockRe = regexp.MustCompile("```(?:json)?\\s*(\\{[\\s\\S]+?\\})\\s*```")

// extractJSONBlock pulls the first fenced JSON object out of a model
// response. Returns nil when no block is present or it fails to parse.
func extractJSONBlock(content string) map[string]any {
	m := jsonBlockRe.FindStringSubmatch(content)
	if m == nil {
		return nil
	}
	var config map[string]any
	if err := json.Unmarshal([]byte(m[1]), &config); err != nil {
		return nil
	}
	return config
}

// writeDispatchError maps dispatcher failures to HTTP statuses: 503 when no
// backend is configured, 502 when the upstream call failed.
func (s *Server) writeDispatchError(w http.ResponseWriter, err error) {
	if errors.Is(err, llm.ErrNoBackend) {
		writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{Error: noBackendMessage})
		return
	}
	writeJSON(w, http.StatusBadGateway, ErrorResponse{Error: err.Error()})
}

func lastUserContent(messages []ChatMessage) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == "user" {
			return messages[i].Content
		}
	}
	return ""
}

func roundSeconds(d time.Duration) float64 {
	return math.Round(d.Seconds()*100) / 100
}
