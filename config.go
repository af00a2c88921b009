package nanobot

import (
	"os"
	"strings"

	"github.com/ttracx/sales-marketing-nanobot-swarm/llm"
)

// Backend endpoint and model constants. The primary backend is Ollama Cloud;
// the fallback is NVIDIA NIM. Both speak the OpenAI chat-completions wire
// format.
const (
	OllamaBaseURL = "https://ollama.com/v1"
	OllamaModel   = "ministral-3:8b"

	NIMBaseURL = "https://integrate.api.nvidia.com/v1"
	NIMModel   = "meta/llama-3.3-70b-instruct"
)

// Config holds the process-wide gateway configuration, populated once at
// startup from environment variables and never mutated.
type Config struct {
	// OllamaAPIKey enables the primary backend. Empty means unconfigured.
	OllamaAPIKey string

	// NvidiaAPIKey enables the fallback backend. Empty means unconfigured.
	NvidiaAPIKey string

	// GatewayAPIKey, when set, gates all mutating endpoints behind an
	// X-Api-Key header check. When unset the gate is disabled entirely.
	GatewayAPIKey string

	// TelegramToken, when set, enables the Telegram bridge.
	TelegramToken string
}

// ConfigFromEnv reads gateway configuration from the environment.
func ConfigFromEnv() Config {
	return Config{
		OllamaAPIKey:  strings.TrimSpace(os.Getenv("OLLAMA_API_KEY")),
		NvidiaAPIKey:  strings.TrimSpace(os.Getenv("NVIDIA_API_KEY")),
		GatewayAPIKey: strings.TrimSpace(os.Getenv("GATEWAY_API_KEY")),
		TelegramToken: strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN")),
	}
}

// PrimaryBackend returns the Ollama Cloud backend configuration.
func (c Config) PrimaryBackend() llm.BackendConfig {
	return llm.BackendConfig{
		Name:    llm.BackendOllama,
		BaseURL: OllamaBaseURL,
		APIKey:  c.OllamaAPIKey,
		Model:   OllamaModel,
	}
}

// FallbackBackend returns the NVIDIA NIM backend configuration.
func (c Config) FallbackBackend() llm.BackendConfig {
	return llm.BackendConfig{
		Name:    llm.BackendNIM,
		BaseURL: NIMBaseURL,
		APIKey:  c.NvidiaAPIKey,
		Model:   NIMModel,
	}
}
