// Package nanobot implements the Sales & Marketing Nanobot Swarm gateway.
//
// The gateway routes high-level sales and marketing goals to one of ten
// pre-configured agent teams, builds a prompt from the team's system prompt
// and the goal, and forwards it to a primary LLM backend with a silent
// fallback to a secondary backend. Alongside the LLM path it exposes a
// library of deterministic business-metric calculators (lead scoring,
// CAC/LTV, SEO estimates, email campaign health, market sizing, ROI).
//
// # Quick Start
//
// Load configuration from the environment and dispatch a goal:
//
//	cfg := nanobot.ConfigFromEnv()
//	disp := llm.NewDispatcher(cfg.PrimaryBackend(), cfg.FallbackBackend())
//
//	team := nanobot.DetectTeam("draft a cold outreach sequence")
//	messages := []llm.Message{
//	    {Role: llm.RoleSystem, Content: nanobot.SwarmSystemPrompt},
//	    {Role: llm.RoleUser, Content: "draft a cold outreach sequence"},
//	}
//	result, err := disp.Dispatch(ctx, messages, 0.1, 8192)
//
// # Architecture
//
// The main components are:
//
//   - AgentTeam: static configuration for a named team, loaded at init from
//     an embedded YAML registry
//   - DetectTeam: ordered keyword routing from a free-form goal to a team,
//     first match wins
//   - llm.Dispatcher: primary-then-fallback backend selection for both the
//     buffered and the streaming call path
//   - tools: registry of deterministic calculators invokable over HTTP
//   - serve: the HTTP gateway with SSE streaming, run persistence, scheduled
//     team runs, and an optional Telegram bridge
//
// # Thread Safety
//
// The team registry and routing table are populated during init and read-only
// afterwards; backend configurations are immutable once constructed. All of
// them are safe for unsynchronized concurrent reads.
package nanobot
