package serve

// --- Request Types ---

// SwarmRunRequest is the body for POST /swarm/run.
type SwarmRunRequest struct {
	Goal    string         `json:"goal"`
	Team    string         `json:"team,omitempty"`
	Context map[string]any `json:"context,omitempty"`
	Stream  bool           `json:"stream,omitempty"`
}

// ChatCompletionRequest is the OpenAI-compatible body for
// POST /v1/chat/completions. Temperature and MaxTokens are pointers so an
// explicit zero can be told apart from an omitted field.
type ChatCompletionRequest struct {
	Model       string        `json:"model,omitempty"`
	Messages    []ChatMessage `json:"messages"`
	Temperature *float64      `json:"temperature,omitempty"`
	MaxTokens   *int          `json:"max_tokens,omitempty"`
	Stream      bool          `json:"stream,omitempty"`
}

// ChatMessage is a single conversation message on the wire.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// AgentBuildRequest is the body for POST /agent/build.
type AgentBuildRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Role        string   `json:"role,omitempty"`
	Tools       []string `json:"tools,omitempty"`
	Context     string   `json:"context,omitempty"`
}

// TeamBuildRequest is the body for POST /team/build.
type TeamBuildRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Goal        string   `json:"goal"`
	Mode        string   `json:"mode,omitempty"`
	AgentCount  int      `json:"agent_count,omitempty"`
	Tools       []string `json:"tools,omitempty"`
}

// ScheduleRequest is the body for POST /api/schedules.
type ScheduleRequest struct {
	Name    string `json:"name"`
	Cron    string `json:"cron"`
	Team    string `json:"team,omitempty"`
	Goal    string `json:"goal"`
	Enabled *bool  `json:"enabled,omitempty"`
}

// --- Response Types ---

// ErrorResponse carries a machine-readable error message.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SwarmRunResponse is the non-streaming envelope for POST /swarm/run.
type SwarmRunResponse struct {
	Goal           string         `json:"goal"`
	Team           string         `json:"team"`
	TeamConfig     TeamConfigView `json:"team_config"`
	Result         string         `json:"result"`
	Backend        string         `json:"backend"`
	LatencySeconds float64        `json:"latency_seconds"`
	PoweredBy      string         `json:"powered_by"`
}

// TeamConfigView is the abbreviated team configuration embedded in run
// envelopes.
type TeamConfigView struct {
	Description string   `json:"description"`
	Mode        string   `json:"mode"`
	Agents      []string `json:"agents"`
	Category    string   `json:"category"`
}

// ChatCompletionResponse mirrors the OpenAI chat completion object. Token
// usage is not tracked by the gateway, so all usage counts are -1.
type ChatCompletionResponse struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"`
	Created int64        `json:"created"`
	Model   string       `json:"model"`
	Choices []ChatChoice `json:"choices"`
	Usage   ChatUsage    `json:"usage"`
	Backend string       `json:"backend"`
}

// ChatChoice is one completion choice.
type ChatChoice struct {
	Index        int         `json:"index"`
	Message      ChatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

// ChatUsage holds placeholder token counts.
type ChatUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ModelEntry is one entry in the GET /v1/models list.
type ModelEntry struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	OwnedBy string `json:"owned_by"`
	Role    string `json:"role"`
}

// ModelList is the OpenAI-compatible model listing.
type ModelList struct {
	Object string       `json:"object"`
	Data   []ModelEntry `json:"data"`
}

// BuildResponse is the envelope for the agent and team builders. The
// generated configuration is nil when no parseable JSON block was found in
// the model output.
type BuildResponse struct {
	AgentName      string         `json:"agent_name,omitempty"`
	TeamName       string         `json:"team_name,omitempty"`
	Configuration  map[string]any `json:"generated_configuration"`
	FullResponse   string         `json:"full_response"`
	Backend        string         `json:"backend"`
	LatencySeconds float64        `json:"latency_seconds"`
}

// TeamSummary is one row in the GET /swarm/teams listing.
type TeamSummary struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Mode        string   `json:"mode"`
	AgentCount  int      `json:"agent_count"`
	Category    string   `json:"category"`
	Tools       []string `json:"tools"`
	UseCases    []string `json:"use_cases"`
	KPIs        []string `json:"kpis"`
}

// ToolSummary is one row in the GET /tools listing.
type ToolSummary struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	CalcTypes   []string `json:"calc_types"`
}

// BrokerEvent is a run lifecycle event fanned out to SSE subscribers.
type BrokerEvent struct {
	Type      string `json:"type"`
	RunID     string `json:"run_id,omitempty"`
	Endpoint  string `json:"endpoint,omitempty"`
	Team      string `json:"team,omitempty"`
	Backend   string `json:"backend,omitempty"`
	Error     string `json:"error,omitempty"`
	Timestamp int64  `json:"timestamp"`
}
