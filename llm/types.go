package llm

// Message represents a conversation message.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Role identifies the message sender.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Provider labels reported to callers in the response envelope.
const (
	BackendOllama = "ollama"
	BackendNIM    = "nvidia_nim"
)

// BackendConfig identifies one remote chat-completion backend. The two
// process-wide instances (primary, fallback) are built once at startup and
// never mutated, so they are safe for unsynchronized concurrent reads.
type BackendConfig struct {
	// Name is the provider label ("ollama", "nvidia_nim").
	Name string

	// BaseURL is the API base, e.g. "https://ollama.com/v1". The client
	// appends "/chat/completions".
	BaseURL string

	// APIKey is the bearer credential. Empty means the backend is not
	// configured and must never be attempted.
	APIKey string

	// Model is the model identifier sent in every request.
	Model string
}

// Configured reports whether the backend has a credential and may be called.
func (b BackendConfig) Configured() bool {
	return b.APIKey != ""
}

// CallResult is the outcome of one buffered dispatch.
type CallResult struct {
	// Content is the assistant message content, exactly as received.
	Content string

	// Backend is the provider label of the backend that answered.
	Backend string
}

// Frame is a single Server-Sent-Events chunk relayed verbatim from a backend
// stream, or a terminal error. A Frame never carries both.
type Frame struct {
	// Data is a full "data: ..." line, without trailing newlines.
	Data string

	// Err terminates the stream abnormally. Frames already delivered stand.
	Err error
}
