package groq

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"skillmatch-backend/internal/llm"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient("test-key", "llama3-70b-8192")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	client.apiURL = srv.URL
	return client, srv
}

func completionReply(content string) []byte {
	payload := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"role": "assistant", "content": content}},
		},
		"usage": map[string]int{"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15},
	}
	data, _ := json.Marshal(payload)
	return data
}

func TestCompleteReturnsContent(t *testing.T) {
	var gotReq chatRequest
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing bearer auth, got %q", r.Header.Get("Authorization"))
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write(completionReply("  React, Node, SQL  "))
	})

	got, err := client.Complete(context.Background(), "list skills", 200)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "React, Node, SQL" {
		t.Fatalf("expected trimmed content, got %q", got)
	}
	if gotReq.MaxTokens != 200 {
		t.Fatalf("expected max_tokens=200, got %d", gotReq.MaxTokens)
	}
	if gotReq.Temperature != temperature {
		t.Fatalf("expected temperature=%v, got %v", temperature, gotReq.Temperature)
	}
	if len(gotReq.Messages) != 1 || gotReq.Messages[0].Role != "user" {
		t.Fatalf("expected one user message, got %+v", gotReq.Messages)
	}
}

func TestCompleteNon2xxIsUpstreamError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})

	_, err := client.Complete(context.Background(), "p", 200)
	if !errors.Is(err, llm.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

func TestCompleteAPIErrorBodyIsUpstreamError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"invalid model","type":"invalid_request_error"}}`))
	})

	_, err := client.Complete(context.Background(), "p", 200)
	if !errors.Is(err, llm.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

func TestCompleteMalformedBodyIsUpstreamError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	})

	_, err := client.Complete(context.Background(), "p", 200)
	if !errors.Is(err, llm.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

func TestCompleteMissingChoicesIsUpstreamError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	})

	_, err := client.Complete(context.Background(), "p", 200)
	if !errors.Is(err, llm.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

func TestCompleteNetworkFailureIsUpstreamError(t *testing.T) {
	client, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close()

	_, err := client.Complete(context.Background(), "p", 200)
	if !errors.Is(err, llm.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

func TestNewClientValidation(t *testing.T) {
	if _, err := NewClient("", "model"); err == nil {
		t.Fatal("expected error for missing api key")
	}
	if _, err := NewClient("key", " "); err == nil {
		t.Fatal("expected error for missing model")
	}
}
