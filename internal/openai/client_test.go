package openai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

const completionBody = `{
	"id": "chatcmpl-1",
	"object": "chat.completion",
	"created": 1700000000,
	"model": "gemini-3-flash-preview",
	"choices": [{
		"index": 0,
		"finish_reason": "stop",
		"message": {"role": "assistant", "content": "Refined paragraph."}
	}]
}`

func TestGenerateSuccess(t *testing.T) {
	var payload map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Fatalf("unexpected authorization header: %q", got)
		}
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatalf("read body: %v", err)
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			t.Fatalf("unmarshal body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionBody))
	}))
	defer server.Close()

	client := NewClient(Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
	})

	got, err := client.Generate(context.Background(), "blend these notes")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got != "Refined paragraph." {
		t.Fatalf("unexpected text: %q", got)
	}
	if model, _ := payload["model"].(string); model != defaultModel {
		t.Fatalf("expected default model %s, got %q", defaultModel, model)
	}
	messages, _ := payload["messages"].([]any)
	if len(messages) != 1 {
		t.Fatalf("expected one message, got %d", len(messages))
	}
	msg, _ := messages[0].(map[string]any)
	if role, _ := msg["role"].(string); role != "user" {
		t.Fatalf("expected user role, got %q", role)
	}
	if content, _ := msg["content"].(string); content != "blend these notes" {
		t.Fatalf("unexpected content: %v", msg["content"])
	}
}

func TestGenerateErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":{"message":"overloaded","type":"server_error","param":"","code":"overloaded"}}`))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test-key", Model: "gpt-4o-mini", BaseURL: server.URL})

	if _, err := client.Generate(context.Background(), "hi"); err == nil {
		t.Fatal("expected error for 503 response")
	}
	if n := calls.Load(); n != 1 {
		t.Fatalf("expected exactly one attempt, got %d", n)
	}
	if client.Model() != "gpt-4o-mini" {
		t.Fatalf("unexpected model: %q", client.Model())
	}
}

func TestGenerateEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","created":0,"model":"m","choices":[]}`))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test-key", BaseURL: server.URL})

	if _, err := client.Generate(context.Background(), "hi"); err == nil {
		t.Fatal("expected error for empty choices")
	}
}
