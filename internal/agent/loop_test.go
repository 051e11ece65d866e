package agent

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/avagyan/studenthub/internal/llm"
)

// scriptedClient replays a fixed sequence of decisions.
type scriptedClient struct {
	decisions []*llm.Decision
	err       error
	requests  []llm.CompletionRequest
}

func (c *scriptedClient) Complete(_ context.Context, req llm.CompletionRequest) (*llm.Decision, error) {
	c.requests = append(c.requests, req)
	if c.err != nil {
		return nil, c.err
	}
	if len(c.decisions) == 0 {
		return nil, errors.New("script exhausted")
	}
	d := c.decisions[0]
	c.decisions = c.decisions[1:]
	return d, nil
}

func newTestRunner(client llm.Client) *Runner {
	return NewRunner(client, NewRegistry(testDirectory()), RunnerConfig{})
}

func TestRespondFinalAnswerFirstStep(t *testing.T) {
	t.Parallel()

	client := &scriptedClient{decisions: []*llm.Decision{
		{Content: "There are 3 students."},
	}}
	runner := newTestRunner(client)
	conv := NewConversation()

	answer, err := runner.Respond(context.Background(), conv, "how many students?")
	if err != nil {
		t.Fatalf("Respond failed: %v", err)
	}
	if answer != "There are 3 students." {
		t.Errorf("unexpected answer: %q", answer)
	}
	// user turn + assistant turn.
	if conv.Len() != 2 {
		t.Errorf("expected 2 turns, got %d", conv.Len())
	}
	if !conv.Consistent() {
		t.Error("conversation inconsistent")
	}
	if len(client.requests) != 1 {
		t.Fatalf("expected 1 model call, got %d", len(client.requests))
	}
	if len(client.requests[0].Tools) != 5 {
		t.Errorf("expected tool specs in request, got %d", len(client.requests[0].Tools))
	}
	if client.requests[0].System == "" {
		t.Error("expected system prompt in request")
	}
}

func TestRespondToolRoundThenFinal(t *testing.T) {
	t.Parallel()

	client := &scriptedClient{decisions: []*llm.Decision{
		{ToolCalls: []llm.ToolCall{{
			ID:        "call-1",
			Name:      ToolCountRecords,
			Arguments: json.RawMessage(`{"category":"students"}`),
		}}},
		{Content: "There are 3 students."},
	}}
	runner := newTestRunner(client)
	conv := NewConversation()

	answer, err := runner.Respond(context.Background(), conv, "how many students?")
	if err != nil {
		t.Fatalf("Respond failed: %v", err)
	}
	if answer != "There are 3 students." {
		t.Errorf("unexpected answer: %q", answer)
	}
	// user, tool-call, tool-result, assistant.
	if conv.Len() != 4 {
		t.Fatalf("expected 4 turns, got %d", conv.Len())
	}
	if !conv.Consistent() {
		t.Error("conversation inconsistent")
	}

	// The second model call must carry the tool result.
	second := client.requests[1].Messages
	last := second[len(second)-1]
	if last.Role != llm.RoleTool || last.ToolCallID != "call-1" {
		t.Fatalf("expected tool result as last message, got %+v", last)
	}
	if !strings.Contains(last.Content, `"count":3`) {
		t.Errorf("expected count in tool result, got %q", last.Content)
	}
}

func TestRespondToolErrorIsFedBack(t *testing.T) {
	t.Parallel()

	client := &scriptedClient{decisions: []*llm.Decision{
		{ToolCalls: []llm.ToolCall{{
			ID:        "call-1",
			Name:      ToolStudentDetails,
			Arguments: json.RawMessage(`{"name":"nobody"}`),
		}}},
		{Content: "I could not find that student."},
	}}
	runner := newTestRunner(client)
	conv := NewConversation()

	answer, err := runner.Respond(context.Background(), conv, "tell me about nobody")
	if err != nil {
		t.Fatalf("Respond failed: %v", err)
	}
	if answer != "I could not find that student." {
		t.Errorf("unexpected answer: %q", answer)
	}

	second := client.requests[1].Messages
	last := second[len(second)-1]
	if !strings.Contains(last.Content, "not_found") {
		t.Errorf("expected not_found error payload, got %q", last.Content)
	}
}

func TestRespondUnknownToolFatal(t *testing.T) {
	t.Parallel()

	client := &scriptedClient{decisions: []*llm.Decision{
		{ToolCalls: []llm.ToolCall{{ID: "call-1", Name: "send_email", Arguments: json.RawMessage(`{}`)}}},
	}}
	runner := newTestRunner(client)
	conv := NewConversation()

	_, err := runner.Respond(context.Background(), conv, "email everyone")
	if !errors.Is(err, ErrUnknownTool) {
		t.Fatalf("expected ErrUnknownTool, got %v", err)
	}
	// The hallucinated call never entered the conversation.
	if conv.Len() != 1 {
		t.Errorf("expected only the user turn, got %d turns", conv.Len())
	}
	if !conv.Consistent() {
		t.Error("conversation inconsistent")
	}
}

func TestRespondUpstreamFailure(t *testing.T) {
	t.Parallel()

	client := &scriptedClient{err: errors.New("connection refused")}
	runner := newTestRunner(client)
	conv := NewConversation()

	_, err := runner.Respond(context.Background(), conv, "hello")
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
	if conv.Len() != 1 {
		t.Errorf("expected only the user turn, got %d turns", conv.Len())
	}
}

func TestRespondStepBudgetExhausted(t *testing.T) {
	t.Parallel()

	call := llm.ToolCall{ID: "call-1", Name: ToolCountRecords, Arguments: json.RawMessage(`{"category":"students"}`)}
	client := &scriptedClient{decisions: []*llm.Decision{
		{ToolCalls: []llm.ToolCall{call}},
		{ToolCalls: []llm.ToolCall{call}},
	}}
	runner := NewRunner(client, NewRegistry(testDirectory()), RunnerConfig{MaxSteps: 2})
	conv := NewConversation()

	_, err := runner.Respond(context.Background(), conv, "loop forever")
	if !errors.Is(err, ErrStepBudget) {
		t.Fatalf("expected ErrStepBudget, got %v", err)
	}
	// Completed rounds survive; nothing dangles.
	if !conv.Consistent() {
		t.Error("conversation inconsistent after budget exhaustion")
	}
	if conv.Len() != 5 {
		t.Errorf("expected user + 2 full tool rounds = 5 turns, got %d", conv.Len())
	}
}

func TestRespondMultipleCallsOneBatch(t *testing.T) {
	t.Parallel()

	client := &scriptedClient{decisions: []*llm.Decision{
		{ToolCalls: []llm.ToolCall{
			{ID: "call-1", Name: ToolCountRecords, Arguments: json.RawMessage(`{"category":"students"}`)},
			{ID: "call-2", Name: ToolCountRecords, Arguments: json.RawMessage(`{"category":"grades"}`)},
		}},
		{Content: "3 students, 7 grades."},
	}}
	runner := newTestRunner(client)
	conv := NewConversation()

	if _, err := runner.Respond(context.Background(), conv, "counts please"); err != nil {
		t.Fatalf("Respond failed: %v", err)
	}
	// user, call batch, 2 results, assistant.
	if conv.Len() != 5 {
		t.Errorf("expected 5 turns, got %d", conv.Len())
	}
	if !conv.Consistent() {
		t.Error("conversation inconsistent")
	}
}
