package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCompleteFinalAnswer(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected authorization header %q", got)
		}

		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		if body["model"] != "test-model" {
			t.Errorf("unexpected model %v", body["model"])
		}
		msgs, _ := body["messages"].([]any)
		if len(msgs) != 2 {
			t.Errorf("expected system + user message, got %d", len(msgs))
		}
		first, _ := msgs[0].(map[string]any)
		if first["role"] != RoleSystem {
			t.Errorf("expected system message first, got %v", first["role"])
		}

		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"hello"}}]}`))
	}))
	defer srv.Close()

	client := NewOpenAIClient("test-key", "test-model", WithBaseURL(srv.URL))
	decision, err := client.Complete(context.Background(), CompletionRequest{
		System:   "be helpful",
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if !decision.IsFinal() || decision.Content != "hello" {
		t.Errorf("unexpected decision: %+v", decision)
	}
}

func TestCompleteToolCalls(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		tools, _ := body["tools"].([]any)
		if len(tools) != 1 {
			t.Errorf("expected 1 tool in request, got %d", len(tools))
		}

		_, _ = w.Write([]byte(`{"choices":[{"message":{
			"role":"assistant",
			"tool_calls":[
				{"id":"call-1","type":"function","function":{"name":"count_records","arguments":"{\"category\":\"students\"}"}},
				{"id":"call-2","type":"function","function":{"name":"top_students_by_gpa","arguments":""}}
			]}}]}`))
	}))
	defer srv.Close()

	client := NewOpenAIClient("test-key", "test-model", WithBaseURL(srv.URL))
	decision, err := client.Complete(context.Background(), CompletionRequest{
		Messages: []Message{{Role: RoleUser, Content: "how many students?"}},
		Tools:    []ToolSpec{{Name: "count_records", Description: "count", Parameters: map[string]any{"type": "object"}}},
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if decision.IsFinal() {
		t.Fatal("expected tool calls, got final answer")
	}
	if len(decision.ToolCalls) != 2 {
		t.Fatalf("expected 2 tool calls, got %d", len(decision.ToolCalls))
	}
	if decision.ToolCalls[0].Name != "count_records" {
		t.Errorf("unexpected tool name %q", decision.ToolCalls[0].Name)
	}
	// Empty arguments are normalized to an empty object.
	if string(decision.ToolCalls[1].Arguments) != "{}" {
		t.Errorf("expected {} arguments, got %q", decision.ToolCalls[1].Arguments)
	}
}

func TestCompleteErrorStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer srv.Close()

	client := NewOpenAIClient("test-key", "test-model", WithBaseURL(srv.URL))
	_, err := client.Complete(context.Background(), CompletionRequest{
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
	})
	if err == nil {
		t.Fatal("expected error for 429 response")
	}
	if !strings.Contains(err.Error(), "429") || !strings.Contains(err.Error(), "rate limited") {
		t.Errorf("expected status and body snippet in error, got %v", err)
	}
}

func TestCompleteNoChoices(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	client := NewOpenAIClient("test-key", "test-model", WithBaseURL(srv.URL))
	if _, err := client.Complete(context.Background(), CompletionRequest{
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
	}); err == nil {
		t.Fatal("expected error for empty choices")
	}
}

func TestToolResultRoundTrip(t *testing.T) {
	t.Parallel()

	var captured []map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Messages []map[string]any `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		captured = body.Messages
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"done"}}]}`))
	}))
	defer srv.Close()

	client := NewOpenAIClient("test-key", "test-model", WithBaseURL(srv.URL))
	_, err := client.Complete(context.Background(), CompletionRequest{
		Messages: []Message{
			{Role: RoleUser, Content: "count"},
			{Role: RoleAssistant, ToolCalls: []ToolCall{{ID: "call-1", Name: "count_records", Arguments: json.RawMessage(`{"category":"students"}`)}}},
			{Role: RoleTool, Content: `{"count":3}`, ToolCallID: "call-1"},
		},
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	if len(captured) != 3 {
		t.Fatalf("expected 3 wire messages, got %d", len(captured))
	}
	second := captured[1]
	calls, _ := second["tool_calls"].([]any)
	if len(calls) != 1 {
		t.Fatalf("expected tool_calls on assistant message, got %v", second)
	}
	call, _ := calls[0].(map[string]any)
	if call["type"] != "function" {
		t.Errorf("expected function call type, got %v", call["type"])
	}
	third := captured[2]
	if third["tool_call_id"] != "call-1" {
		t.Errorf("expected tool_call_id on tool result, got %v", third)
	}
}
