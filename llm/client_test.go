package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientCall(t *testing.T) {
	var gotAuth string
	var gotReq chatRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotReq)
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "hi there"}},
			},
		})
	}))
	defer server.Close()

	c := NewClient(BackendConfig{
		Name:    BackendOllama,
		BaseURL: server.URL,
		APIKey:  "sk-test",
		Model:   "ministral-3:8b",
	})

	content, err := c.Call(context.Background(), testMessages(), 0.3, 256)
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	if content != "hi there" {
		t.Errorf("got content %q", content)
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("got auth header %q", gotAuth)
	}
	if gotReq.Model != "ministral-3:8b" {
		t.Errorf("got model %q", gotReq.Model)
	}
	if gotReq.Temperature != 0.3 || gotReq.MaxTokens != 256 {
		t.Errorf("params not forwarded: temp=%v max=%d", gotReq.Temperature, gotReq.MaxTokens)
	}
	if gotReq.Stream {
		t.Error("non-streaming call set stream=true")
	}
}

func TestClientCallUnconfigured(t *testing.T) {
	c := NewClient(BackendConfig{Name: BackendOllama, BaseURL: "http://127.0.0.1:1"})

	_, err := c.Call(context.Background(), testMessages(), 0.7, 512)
	var cerr *ConfigError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected ConfigError, got %T: %v", err, err)
	}
	if cerr.Backend != BackendOllama {
		t.Errorf("got backend %q", cerr.Backend)
	}
}

func TestClientCallTransportError(t *testing.T) {
	// Nothing listens on this port.
	c := NewClient(BackendConfig{
		Name:    BackendNIM,
		BaseURL: "http://127.0.0.1:1",
		APIKey:  "sk-test",
		Model:   "m",
	})

	_, err := c.Call(context.Background(), testMessages(), 0.7, 512)
	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("expected TransportError, got %T: %v", err, err)
	}
}

func TestClientCallEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer server.Close()

	c := NewClient(BackendConfig{Name: BackendOllama, BaseURL: server.URL, APIKey: "k", Model: "m"})

	_, err := c.Call(context.Background(), testMessages(), 0.7, 512)
	var perr *ProtocolError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ProtocolError, got %T: %v", err, err)
	}
}

func TestClientStreamOpenFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "backend down", http.StatusBadGateway)
	}))
	defer server.Close()

	c := NewClient(BackendConfig{Name: BackendOllama, BaseURL: server.URL, APIKey: "k", Model: "m"})

	_, err := c.Stream(context.Background(), testMessages(), 0.7, 512)
	var perr *ProtocolError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ProtocolError on open, got %T: %v", err, err)
	}
	if perr.StatusCode != http.StatusBadGateway {
		t.Errorf("got status %d", perr.StatusCode)
	}
}

func TestClientStreamFiltersNonDataLines(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.Write([]byte("event: ping\n"))
		w.Write([]byte(": comment line\n"))
		w.Write([]byte("data: {\"delta\": \"keep\"}\n\n"))
		w.Write([]byte("data: [DONE]\n\n"))
	}))
	defer server.Close()

	c := NewClient(BackendConfig{Name: BackendOllama, BaseURL: server.URL, APIKey: "k", Model: "m"})

	frames, err := c.Stream(context.Background(), testMessages(), 0.7, 512)
	if err != nil {
		t.Fatalf("Stream failed: %v", err)
	}

	var got []string
	for f := range frames {
		if f.Err != nil {
			t.Fatalf("frame error: %v", f.Err)
		}
		got = append(got, f.Data)
	}
	want := []string{`data: {"delta": "keep"}`, "data: [DONE]"}
	if len(got) != len(want) {
		t.Fatalf("got frames %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("frame %d: got %q, want %q", i, got[i], want[i])
		}
	}
}
