package llm

import (
	"errors"
	"fmt"
)

// ErrNoBackend is returned by the Dispatcher when neither backend is
// configured. It is a configuration error, not a transient failure.
var ErrNoBackend = errors.New("no LLM backend available")

// ConfigError reports that a backend was invoked without its credential.
// The client fails fast with this error; it is never retried.
type ConfigError struct {
	Backend string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("backend %s: API key not configured", e.Backend)
}

// TransportError reports a network or timeout failure reaching a backend.
type TransportError struct {
	Backend string
	Err     error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("backend %s: %v", e.Backend, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ProtocolError reports a non-2xx HTTP status or a malformed response body
// from a backend. For dispatch purposes it is treated like a TransportError.
type ProtocolError struct {
	Backend    string
	StatusCode int
	Message    string
}

func (e *ProtocolError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("backend %s: API error %d: %s", e.Backend, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend %s: %s", e.Backend, e.Message)
}
