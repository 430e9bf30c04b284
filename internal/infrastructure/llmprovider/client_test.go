package llmprovider_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/namestorm/server/internal/domain/llm"
	"github.com/namestorm/server/internal/infrastructure/llmprovider"
)

func completionRequest() llm.ChatCompletionRequest {
	return llm.ChatCompletionRequest{
		Model: "gpt-4o-mini",
		Messages: []llm.ChatMessage{
			{Role: llm.RoleUser, Content: "names please"},
		},
	}
}

func TestCreateChatCompletion_Success(t *testing.T) {
	var hits int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("path = %q, want /v1/chat/completions", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("authorization = %q, want the bearer token", got)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(llm.ChatCompletionResponse{
			Choices: []llm.ChatCompletionChoice{{
				Message: llm.ChatMessage{Role: llm.RoleAssistant, Content: "hello"},
			}},
		})
	}))
	defer upstream.Close()

	client := llmprovider.NewClient(upstream.URL, "sk-test")
	resp, err := client.CreateChatCompletion(context.Background(), completionRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Choices) != 1 || resp.Choices[0].Message.Content != "hello" {
		t.Errorf("response = %+v, want the decoded completion", resp)
	}
	if atomic.LoadInt32(&hits) != 1 {
		t.Errorf("upstream hits = %d, want 1", hits)
	}
}

func TestCreateChatCompletion_NonOKSurfacesWithoutRetry(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{"server error", http.StatusInternalServerError},
		{"rate limited", http.StatusTooManyRequests},
		{"bad request", http.StatusBadRequest},
		{"unauthorized", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hits int32
			upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				atomic.AddInt32(&hits, 1)
				http.Error(w, "upstream unhappy", tt.status)
			}))
			defer upstream.Close()

			client := llmprovider.NewClient(upstream.URL, "sk-test")
			_, err := client.CreateChatCompletion(context.Background(), completionRequest())
			if err == nil {
				t.Fatal("expected the gateway error to surface")
			}
			if !strings.Contains(err.Error(), "gateway error") {
				t.Errorf("err = %v, want a gateway error", err)
			}
			if atomic.LoadInt32(&hits) != 1 {
				t.Errorf("upstream hits = %d, a non-2xx response must be surfaced as a single error", hits)
			}
		})
	}
}

func TestCreateChatCompletion_TransportFailureIsRetried(t *testing.T) {
	var hits int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		n := atomic.AddInt32(&hits, 1)
		if n == 1 {
			// Drop the connection mid-request to force a transport error.
			hj, ok := w.(http.Hijacker)
			if !ok {
				t.Fatal("recorder does not support hijacking")
			}
			conn, _, err := hj.Hijack()
			if err != nil {
				t.Fatalf("hijack: %v", err)
			}
			conn.Close()
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(llm.ChatCompletionResponse{
			Choices: []llm.ChatCompletionChoice{{
				Message: llm.ChatMessage{Role: llm.RoleAssistant, Content: "recovered"},
			}},
		})
	}))
	defer upstream.Close()

	client := llmprovider.NewClient(upstream.URL, "sk-test")
	resp, err := client.CreateChatCompletion(context.Background(), completionRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Choices[0].Message.Content != "recovered" {
		t.Errorf("response = %+v, want the second attempt's completion", resp)
	}
	if atomic.LoadInt32(&hits) != 2 {
		t.Errorf("upstream hits = %d, want the dropped connection retried once", hits)
	}
}
