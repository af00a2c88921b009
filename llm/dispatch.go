package llm

import (
	"context"
	"log/slog"
)

// NoBackendFrame is the single terminal frame emitted on a streaming
// request when neither backend is configured.
const NoBackendFrame = `data: {"error": "No LLM backend available."}`

// Dispatcher routes completion requests to a primary backend with a
// silent fallback. The primary's error is logged but never surfaced; the
// fallback's error is the one callers see.
type Dispatcher struct {
	primary  *Client
	fallback *Client
}

// NewDispatcher builds a dispatcher over the two backends. Either may be
// unconfigured (empty API key); an unconfigured backend is skipped.
func NewDispatcher(primary, fallback BackendConfig, opts ...Option) *Dispatcher {
	return &Dispatcher{
		primary:  NewClient(primary, opts...),
		fallback: NewClient(fallback, opts...),
	}
}

// Primary returns the primary backend configuration.
func (d *Dispatcher) Primary() BackendConfig {
	return d.primary.Backend()
}

// Fallback returns the fallback backend configuration.
func (d *Dispatcher) Fallback() BackendConfig {
	return d.fallback.Backend()
}

// Available reports whether at least one backend is configured.
func (d *Dispatcher) Available() bool {
	return d.primary.Configured() || d.fallback.Configured()
}

// Dispatch runs a non-streaming completion. The primary is tried first
// when configured; on any primary failure the fallback is tried when
// configured. Returns ErrNoBackend when neither is configured.
func (d *Dispatcher) Dispatch(ctx context.Context, messages []Message, temperature float64, maxTokens int) (*CallResult, error) {
	if d.primary.Configured() {
		content, err := d.primary.Call(ctx, messages, temperature, maxTokens)
		if err == nil {
			return &CallResult{Content: content, Backend: d.primary.Backend().Name}, nil
		}
		slog.Warn("primary backend failed, trying fallback", "backend", d.primary.Backend().Name, "error", err)
	}

	if d.fallback.Configured() {
		content, err := d.fallback.Call(ctx, messages, temperature, maxTokens)
		if err != nil {
			return nil, err
		}
		return &CallResult{Content: content, Backend: d.fallback.Backend().Name}, nil
	}

	return nil, ErrNoBackend
}

// DispatchStream runs a streaming completion with the same ordering as
// Dispatch. Fallback happens only when a backend fails to open its
// stream; once frames are flowing a mid-stream failure ends the stream
// with an error frame and no second attempt.
//
// When neither backend is configured the returned channel carries exactly
// one terminal frame (NoBackendFrame) and closes; the error return is nil
// so callers always relay the channel.
func (d *Dispatcher) DispatchStream(ctx context.Context, messages []Message, temperature float64, maxTokens int) (<-chan Frame, string, error) {
	if d.primary.Configured() {
		frames, err := d.primary.Stream(ctx, messages, temperature, maxTokens)
		if err == nil {
			return frames, d.primary.Backend().Name, nil
		}
		slog.Warn("primary backend failed to open stream, trying fallback", "backend", d.primary.Backend().Name, "error", err)
	}

	if d.fallback.Configured() {
		frames, err := d.fallback.Stream(ctx, messages, temperature, maxTokens)
		if err != nil {
			return nil, "", err
		}
		return frames, d.fallback.Backend().Name, nil
	}

	frames := make(chan Frame, 1)
	frames <- Frame{Data: NoBackendFrame}
	close(frames)
	return frames, "", nil
}
