// Package llm provides the LLM backend clients and the primary/fallback
// dispatcher used by the gateway.
//
// Both backends speak the OpenAI chat-completions wire format. The Client
// performs a single buffered or streaming call against one BackendConfig and
// never retries; backend selection and failover live entirely in the
// Dispatcher.
package llm
