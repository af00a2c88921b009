package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout bounds every backend call, streaming or not.
const DefaultTimeout = 120 * time.Second

// Client speaks the OpenAI-compatible chat completions protocol to a
// single configured backend.
type Client struct {
	backend    BackendConfig
	httpClient *http.Client
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// NewClient creates a client for one backend.
func NewClient(backend BackendConfig, opts ...Option) *Client {
	c := &Client{
		backend: backend,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Backend returns the backend this client targets.
func (c *Client) Backend() BackendConfig {
	return c.backend
}

// Configured reports whether the backend has an API key.
func (c *Client) Configured() bool {
	return c.backend.Configured()
}

// chatRequest is the OpenAI-compatible request format.
type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
	Stream      bool      `json:"stream,omitempty"`
}

// chatResponse is the OpenAI-compatible response format.
type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index   int     `json:"index"`
		Message Message `json:"message"`
		Finish  string  `json:"finish_reason"`
	} `json:"choices"`
}

// Call sends a non-streaming completion request and returns the text of
// the first choice.
func (c *Client) Call(ctx context.Context, messages []Message, temperature float64, maxTokens int) (string, error) {
	if !c.backend.Configured() {
		return "", &ConfigError{Backend: c.backend.Name}
	}

	req := &chatRequest{
		Model:       c.backend.Model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}

	httpReq, err := c.createHTTPRequest(ctx, req)
	if err != nil {
		return "", err
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", &TransportError{Backend: c.backend.Name, Err: err}
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return "", &TransportError{Backend: c.backend.Name, Err: err}
	}

	if httpResp.StatusCode != http.StatusOK {
		return "", &ProtocolError{
			Backend:    c.backend.Name,
			StatusCode: httpResp.StatusCode,
			Message:    truncateBody(body),
		}
	}

	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", &ProtocolError{Backend: c.backend.Name, Message: fmt.Sprintf("unmarshal response: %v", err)}
	}
	if len(resp.Choices) == 0 {
		return "", &ProtocolError{Backend: c.backend.Name, Message: "response contained no choices"}
	}

	return resp.Choices[0].Message.Content, nil
}

func (c *Client) createHTTPRequest(ctx context.Context, req *chatRequest) (*http.Request, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.backend.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.backend.APIKey)

	return httpReq, nil
}

// truncateBody keeps error messages readable when a backend returns a
// large HTML or JSON error page.
func truncateBody(body []byte) string {
	const limit = 512
	if len(body) > limit {
		return string(body[:limit]) + "..."
	}
	return string(body)
}
