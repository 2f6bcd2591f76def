package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// anthropicStub answers every Messages call with the given status and body.
func anthropicStub(t *testing.T, status int, header http.Header, body any, seen *map[string]any) *AnthropicProvider {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if seen != nil {
			json.NewDecoder(r.Body).Decode(seen)
		}
		for k, v := range header {
			w.Header()[k] = v
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(server.Close)

	client := anthropic.NewClient(
		option.WithAPIKey("test-key"),
		option.WithBaseURL(server.URL),
		option.WithMaxRetries(0),
	)
	return &AnthropicProvider{client: &client, model: "claude-haiku-4-5-20251001"}
}

func anthropicMessage(stop string, blocks ...string) map[string]any {
	content := make([]map[string]any, len(blocks))
	for i, b := range blocks {
		content[i] = map[string]any{"type": "text", "text": b}
	}
	return map[string]any{
		"id":          "msg_test",
		"type":        "message",
		"role":        "assistant",
		"content":     content,
		"model":       "claude-haiku-4-5-20251001",
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 120, "output_tokens": 480},
	}
}

func anthropicFailure(kind string) map[string]any {
	return map[string]any{
		"type":  "error",
		"error": map[string]any{"type": kind, "message": kind},
	}
}

var batchRequest = Request{
	System:      "You write programming challenges.",
	Messages:    []Message{{Role: RoleUser, Content: "Write 2 Beginner challenges."}},
	MaxTokens:   4096,
	Temperature: 0.7,
}

func TestAnthropicProvider_Reply(t *testing.T) {
	var seen map[string]any
	p := anthropicStub(t, http.StatusOK, nil,
		anthropicMessage("end_turn", `[{"title":"Pair Sum"},`, `{"title":"Digit Root"}]`), &seen)

	resp, err := p.Generate(context.Background(), batchRequest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != `[{"title":"Pair Sum"},{"title":"Digit Root"}]` {
		t.Errorf("text blocks not joined: %q", resp.Text)
	}
	if resp.StopReason != StopEnd {
		t.Errorf("stop reason = %q, want %q", resp.StopReason, StopEnd)
	}
	if resp.Usage.TotalTokens != 600 {
		t.Errorf("total tokens = %d, want 600", resp.Usage.TotalTokens)
	}
	if resp.Model != "claude-haiku-4-5-20251001" {
		t.Errorf("model = %q", resp.Model)
	}

	if seen["model"] != "claude-haiku-4-5-20251001" {
		t.Errorf("request model = %v", seen["model"])
	}
	if seen["max_tokens"] != float64(4096) {
		t.Errorf("request max_tokens = %v", seen["max_tokens"])
	}
	system, _ := seen["system"].([]any)
	if len(system) != 1 {
		t.Errorf("expected one system block, got %v", seen["system"])
	}
}

func TestAnthropicProvider_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		header http.Header
		body   any
		check  func(t *testing.T, err error)
	}{
		{
			name:   "truncated batch",
			status: http.StatusOK,
			body:   anthropicMessage("max_tokens", `[{"title":"Pair`),
			check: func(t *testing.T, err error) {
				var maxTok *ErrMaxTokensExceeded
				if !errors.As(err, &maxTok) {
					t.Fatalf("expected ErrMaxTokensExceeded, got %T (%v)", err, err)
				}
				if maxTok.Text != `[{"title":"Pair` {
					t.Errorf("partial text = %q", maxTok.Text)
				}
			},
		},
		{
			name:   "no text block",
			status: http.StatusOK,
			body:   anthropicMessage("end_turn"),
			check: func(t *testing.T, err error) {
				var invalid *ErrInvalidResponse
				if !errors.As(err, &invalid) {
					t.Fatalf("expected ErrInvalidResponse, got %T (%v)", err, err)
				}
			},
		},
		{
			name:   "rate limited",
			status: http.StatusTooManyRequests,
			header: http.Header{"Retry-After": []string{"7"}},
			body:   anthropicFailure("rate_limit_error"),
			check: func(t *testing.T, err error) {
				var rl *ErrRateLimit
				if !errors.As(err, &rl) {
					t.Fatalf("expected ErrRateLimit, got %T (%v)", err, err)
				}
				if rl.RetryAfter != 7*time.Second {
					t.Errorf("retry after = %s, want 7s", rl.RetryAfter)
				}
			},
		},
		{
			name:   "overloaded",
			status: http.StatusInternalServerError,
			body:   anthropicFailure("api_error"),
			check: func(t *testing.T, err error) {
				var unavail *ErrProviderUnavailable
				if !errors.As(err, &unavail) {
					t.Fatalf("expected ErrProviderUnavailable, got %T (%v)", err, err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := anthropicStub(t, tt.status, tt.header, tt.body, nil)
			_, err := p.Generate(context.Background(), batchRequest)
			tt.check(t, err)
		})
	}
}

func TestNewAnthropicProvider(t *testing.T) {
	if _, err := NewAnthropicProvider(AnthropicConfig{}); err == nil {
		t.Fatal("expected error for empty API key")
	}

	for friendly, id := range map[string]string{
		"claude-sonnet":            "claude-sonnet-4-5-20250929",
		"claude-haiku":             "claude-haiku-4-5-20251001",
		"claude-sonnet-4-20250514": "claude-sonnet-4-20250514",
	} {
		p, err := NewAnthropicProvider(AnthropicConfig{APIKey: "k", Model: friendly})
		if err != nil {
			t.Fatalf("%s: %v", friendly, err)
		}
		if p.ModelID() != id {
			t.Errorf("ModelID() for %q = %q, want %q", friendly, p.ModelID(), id)
		}
	}
}
