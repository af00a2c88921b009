package llm

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"strings"
)

// Stream sends a streaming completion request. The HTTP exchange is opened
// synchronously so a connection or status failure is reported as the return
// error; once a channel is returned the stream is live and any later
// failure arrives as a Frame carrying Err.
//
// Frames carry raw SSE data lines from the backend, "data: " prefix
// included, so a relay can forward them verbatim.
func (c *Client) Stream(ctx context.Context, messages []Message, temperature float64, maxTokens int) (<-chan Frame, error) {
	if !c.backend.Configured() {
		return nil, &ConfigError{Backend: c.backend.Name}
	}

	req := &chatRequest{
		Model:       c.backend.Model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
		Stream:      true,
	}

	httpReq, err := c.createHTTPRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Backend: c.backend.Name, Err: err}
	}

	if httpResp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(httpResp.Body)
		httpResp.Body.Close()
		return nil, &ProtocolError{
			Backend:    c.backend.Name,
			StatusCode: httpResp.StatusCode,
			Message:    truncateBody(body),
		}
	}

	frames := make(chan Frame, 16)

	go func() {
		defer close(frames)
		defer httpResp.Body.Close()

		scanner := bufio.NewScanner(httpResp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

		for scanner.Scan() {
			line := scanner.Text()
			if !strings.HasPrefix(line, "data: ") {
				continue
			}

			select {
			case frames <- Frame{Data: line}:
			case <-ctx.Done():
				return
			}
		}

		if err := scanner.Err(); err != nil {
			select {
			case frames <- Frame{Err: &TransportError{Backend: c.backend.Name, Err: err}}:
			case <-ctx.Done():
			}
		}
	}()

	return frames, nil
}
