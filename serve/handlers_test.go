package serve

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	nanobot "github.com/ttracx/sales-marketing-nanobot-swarm"
	"github.com/ttracx/sales-marketing-nanobot-swarm/llm"
	"github.com/ttracx/sales-marketing-nanobot-swarm/tools"
)

// capturedRequest is the chat-completions body a fake backend received.
type capturedRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
	Stream      bool    `json:"stream"`
}

type fakeLLM struct {
	mu      sync.Mutex
	content string
	last    capturedRequest
	server  *httptest.Server
}

func newFakeLLM(t *testing.T, content string) *fakeLLM {
	t.Helper()
	f := &fakeLLM{content: content}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req capturedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		f.last = req
		f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"id":"x","model":%q,"choices":[{"index":0,"message":{"role":"assistant","content":%q},"finish_reason":"stop"}]}`,
			req.Model, f.content)
	}))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeLLM) lastRequest() capturedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last
}

func (f *fakeLLM) backend(name, model string) llm.BackendConfig {
	return llm.BackendConfig{Name: name, BaseURL: f.server.URL, APIKey: "test-key", Model: model}
}

// newTestServer builds a gateway over the given backends without touching
// the SQLite store or scheduler.
func newTestServer(t *testing.T, gw nanobot.Config, primary, fallback llm.BackendConfig) *httptest.Server {
	t.Helper()
	s := &Server{
		gw:         gw,
		dispatcher: llm.NewDispatcher(primary, fallback),
		tools:      tools.Default(),
		broker:     NewEventBroker(),
	}
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, url string, out any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp
}

func TestHealthReportsBackendState(t *testing.T) {
	fake := newFakeLLM(t, "ok")
	ts := newTestServer(t, nanobot.Config{},
		fake.backend(llm.BackendOllama, "primary-model"),
		llm.BackendConfig{Name: llm.BackendNIM})

	var body struct {
		Status   string            `json:"status"`
		Service  string            `json:"service"`
		Backends map[string]string `json:"backends"`
	}
	resp := getJSON(t, ts.URL+"/health", &body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if body.Status != "healthy" {
		t.Errorf("status = %q", body.Status)
	}
	if body.Backends["ollama"] != "configured" {
		t.Errorf("ollama = %q, want configured", body.Backends["ollama"])
	}
	if body.Backends["nvidia_nim"] != "not configured" {
		t.Errorf("nvidia_nim = %q, want not configured", body.Backends["nvidia_nim"])
	}
}

func TestListTeams(t *testing.T) {
	ts := newTestServer(t, nanobot.Config{}, llm.BackendConfig{}, llm.BackendConfig{})

	var body struct {
		Total int           `json:"total"`
		Teams []TeamSummary `json:"teams"`
	}
	getJSON(t, ts.URL+"/swarm/teams", &body)
	if body.Total != 10 {
		t.Fatalf("total = %d, want 10", body.Total)
	}
	if body.Teams[0].Name != "abm-orchestrator" {
		t.Errorf("first team = %q, want abm-orchestrator", body.Teams[0].Name)
	}
	for _, team := range body.Teams {
		if team.AgentCount == 0 {
			t.Errorf("team %s has no agents", team.Name)
		}
	}
}

func TestGetTeamNotFound(t *testing.T) {
	ts := newTestServer(t, nanobot.Config{}, llm.BackendConfig{}, llm.BackendConfig{})

	var body ErrorResponse
	resp := getJSON(t, ts.URL+"/swarm/teams/no-such-team", &body)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	if !strings.Contains(body.Error, "lead-generation-engine") {
		t.Errorf("error should list available teams, got %q", body.Error)
	}
}

func TestAuthGate(t *testing.T) {
	fake := newFakeLLM(t, "done")
	ts := newTestServer(t, nanobot.Config{GatewayAPIKey: "secret"},
		fake.backend(llm.BackendOllama, "m"), llm.BackendConfig{})

	body := strings.NewReader(`{"goal": "find leads"}`)
	resp, err := http.Post(ts.URL+"/swarm/run", "application/json", body)
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("without key: status = %d, want 401", resp.StatusCode)
	}

	req, _ := http.NewRequest(http.MethodPost, ts.URL+"/swarm/run",
		strings.NewReader(`{"goal": "find leads"}`))
	req.Header.Set("X-Api-Key", "secret")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("POST with key: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("with key: status = %d, want 200", resp.StatusCode)
	}
}

func TestAuthGateDisabledWhenUnset(t *testing.T) {
	ts := newTestServer(t, nanobot.Config{}, llm.BackendConfig{}, llm.BackendConfig{})

	// No key configured: gate is open, request reaches the dispatcher and
	// fails with 503 because no backend is configured.
	resp, err := http.Post(ts.URL+"/swarm/run", "application/json",
		strings.NewReader(`{"goal": "anything"}`))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", resp.StatusCode)
	}
}

func TestSwarmRunEnvelope(t *testing.T) {
	fake := newFakeLLM(t, "campaign plan here")
	ts := newTestServer(t, nanobot.Config{},
		fake.backend(llm.BackendOllama, "m"), llm.BackendConfig{})

	resp, err := http.Post(ts.URL+"/swarm/run", "application/json",
		strings.NewReader(`{"goal": "improve deliverability of our weekly newsletter"}`))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()

	var body SwarmRunResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Team != "email-campaign-manager" {
		t.Errorf("team = %q, want email-campaign-manager", body.Team)
	}
	if body.Result != "campaign plan here" {
		t.Errorf("result = %q", body.Result)
	}
	if body.Backend != llm.BackendOllama {
		t.Errorf("backend = %q", body.Backend)
	}
	if len(body.TeamConfig.Agents) == 0 {
		t.Error("team_config.agents is empty")
	}

	last := fake.lastRequest()
	if last.Temperature != 0.1 || last.MaxTokens != 8192 {
		t.Errorf("sampling = (%v, %d), want (0.1, 8192)", last.Temperature, last.MaxTokens)
	}
	if len(last.Messages) != 2 || last.Messages[0].Role != "system" {
		t.Fatalf("unexpected message shape: %+v", last.Messages)
	}
	if !strings.Contains(last.Messages[1].Content, "## Team: email-campaign-manager") {
		t.Errorf("user prompt missing team header: %q", last.Messages[1].Content)
	}
}

func TestSwarmRunTeamOverride(t *testing.T) {
	fake := newFakeLLM(t, "ok")
	ts := newTestServer(t, nanobot.Config{},
		fake.backend(llm.BackendOllama, "m"), llm.BackendConfig{})

	resp, err := http.Post(ts.URL+"/swarm/run", "application/json",
		strings.NewReader(`{"goal": "anything", "team": "growth-hacker-lab"}`))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()

	var body SwarmRunResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Team != "growth-hacker-lab" {
		t.Errorf("team = %q, want growth-hacker-lab", body.Team)
	}
}

func TestSwarmRunStreamNoBackend(t *testing.T) {
	ts := newTestServer(t, nanobot.Config{}, llm.BackendConfig{}, llm.BackendConfig{})

	resp, err := http.Post(ts.URL+"/swarm/run", "application/json",
		strings.NewReader(`{"goal": "anything", "stream": true}`))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		t.Fatalf("content-type = %q", ct)
	}
	data, _ := io.ReadAll(resp.Body)
	want := `data: {"error": "No LLM backend available."}` + "\n\n"
	if string(data) != want {
		t.Errorf("body = %q, want %q", data, want)
	}
}

func TestChatCompletionsInjectsSystemPrompt(t *testing.T) {
	fake := newFakeLLM(t, "hello")
	ts := newTestServer(t, nanobot.Config{},
		fake.backend(llm.BackendOllama, "primary-model"), llm.BackendConfig{})

	resp, err := http.Post(ts.URL+"/v1/chat/completions", "application/json",
		strings.NewReader(`{"messages": [{"role": "user", "content": "hi"}]}`))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()

	var body ChatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.HasPrefix(body.ID, "chatcmpl-sm-") {
		t.Errorf("id = %q", body.ID)
	}
	if body.Model != "primary-model" {
		t.Errorf("model = %q", body.Model)
	}
	if body.Usage.TotalTokens != -1 {
		t.Errorf("usage.total_tokens = %d, want -1", body.Usage.TotalTokens)
	}
	if body.Choices[0].Message.Content != "hello" {
		t.Errorf("content = %q", body.Choices[0].Message.Content)
	}

	last := fake.lastRequest()
	if last.Temperature != 0.1 || last.MaxTokens != 4096 {
		t.Errorf("sampling = (%v, %d), want defaults (0.1, 4096)", last.Temperature, last.MaxTokens)
	}
	if len(last.Messages) != 2 || last.Messages[0].Role != "system" {
		t.Fatalf("system prompt not injected: %+v", last.Messages)
	}
}

func TestChatCompletionsKeepsExistingSystemMessage(t *testing.T) {
	fake := newFakeLLM(t, "ok")
	ts := newTestServer(t, nanobot.Config{},
		fake.backend(llm.BackendOllama, "m"), llm.BackendConfig{})

	resp, err := http.Post(ts.URL+"/v1/chat/completions", "application/json",
		strings.NewReader(`{"messages": [{"role": "system", "content": "custom"}, {"role": "user", "content": "hi"}], "temperature": 0.7, "max_tokens": 256}`))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	resp.Body.Close()

	last := fake.lastRequest()
	if len(last.Messages) != 2 {
		t.Fatalf("got %d messages, want 2 (no injection)", len(last.Messages))
	}
	if last.Messages[0].Content != "custom" {
		t.Errorf("system content = %q", last.Messages[0].Content)
	}
	if last.Temperature != 0.7 || last.MaxTokens != 256 {
		t.Errorf("sampling = (%v, %d), want (0.7, 256)", last.Temperature, last.MaxTokens)
	}
}

func TestListModels(t *testing.T) {
	fake := newFakeLLM(t, "ok")
	ts := newTestServer(t, nanobot.Config{},
		fake.backend(llm.BackendOllama, "primary-model"),
		fake.backend(llm.BackendNIM, "fallback-model"))

	var body ModelList
	getJSON(t, ts.URL+"/v1/models", &body)
	if len(body.Data) != 2 {
		t.Fatalf("got %d models, want 2", len(body.Data))
	}
	if body.Data[0].Role != "primary" || body.Data[0].ID != "primary-model" {
		t.Errorf("primary entry = %+v", body.Data[0])
	}
	if body.Data[1].Role != "fallback" || body.Data[1].OwnedBy != "nvidia-nim" {
		t.Errorf("fallback entry = %+v", body.Data[1])
	}
}

func TestAgentBuildExtractsConfiguration(t *testing.T) {
	fake := newFakeLLM(t, "Here is your agent:\n```json\n{\"name\": \"sdr-bot\", \"temperature\": 0.2}\n```\nDone.")
	ts := newTestServer(t, nanobot.Config{},
		fake.backend(llm.BackendOllama, "m"), llm.BackendConfig{})

	resp, err := http.Post(ts.URL+"/agent/build", "application/json",
		strings.NewReader(`{"name": "sdr-bot", "description": "outbound SDR agent"}`))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()

	var body BuildResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.AgentName != "sdr-bot" {
		t.Errorf("agent_name = %q", body.AgentName)
	}
	if body.Configuration == nil || body.Configuration["name"] != "sdr-bot" {
		t.Errorf("generated_configuration = %v", body.Configuration)
	}

	last := fake.lastRequest()
	if last.Temperature != 0.15 || last.MaxTokens != 6144 {
		t.Errorf("sampling = (%v, %d), want (0.15, 6144)", last.Temperature, last.MaxTokens)
	}
}

func TestToolsEndpoints(t *testing.T) {
	ts := newTestServer(t, nanobot.Config{}, llm.BackendConfig{}, llm.BackendConfig{})

	var listing struct {
		Total int           `json:"total"`
		Tools []ToolSummary `json:"tools"`
	}
	getJSON(t, ts.URL+"/tools", &listing)
	if listing.Total != 7 {
		t.Fatalf("total = %d, want 7", listing.Total)
	}

	resp, err := http.Post(ts.URL+"/tools/lead_scoring_calc", "application/json",
		strings.NewReader(`{"calc_type": "ilt_score", "company_size": 500, "title_seniority": "VP", "engagement_signals": 10}`))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("execute status = %d", resp.StatusCode)
	}
	var result struct {
		Tool   string         `json:"tool"`
		Result map[string]any `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Result["ilt_score"].(float64) != 84.7 {
		t.Errorf("ilt_score = %v", result.Result["ilt_score"])
	}

	resp, err = http.Post(ts.URL+"/tools/no_such_tool", "application/json", strings.NewReader(`{}`))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown tool status = %d, want 404", resp.StatusCode)
	}

	resp, err = http.Post(ts.URL+"/tools/lead_scoring_calc", "application/json",
		strings.NewReader(`{"calc_type": "bogus"}`))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("unknown calc_type status = %d, want 400", resp.StatusCode)
	}
}

func TestExtractJSONBlock(t *testing.T) {
	cfg := extractJSONBlock("prose\n```json\n{\"a\": 1}\n```")
	if cfg == nil || cfg["a"].(float64) != 1 {
		t.Errorf("labelled block: got %v", cfg)
	}

	cfg = extractJSONBlock("```\n{\"b\": true}\n```")
	if cfg == nil || cfg["b"] != true {
		t.Errorf("bare block: got %v", cfg)
	}

	if cfg := extractJSONBlock("no fences here"); cfg != nil {
		t.Errorf("no block: got %v", cfg)
	}
	if cfg := extractJSONBlock("```json\n{not valid}\n```"); cfg != nil {
		t.Errorf("invalid JSON: got %v", cfg)
	}
}
