// Package llm provides a minimal client for OpenAI-compatible chat
// completion APIs with function calling.
package llm

import (
	"context"
	"encoding/json"
)

// Message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Message is one chat message sent to the model.
type Message struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

// ToolSpec describes a tool the model may request.
type ToolSpec struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Parameters  any    `json:"parameters"`
}

// ToolCall is a tool invocation requested by the model.
type ToolCall struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// Decision is the model's per-step output: either a final answer or a batch
// of tool calls to execute.
type Decision struct {
	Content   string
	ToolCalls []ToolCall
}

// IsFinal reports whether the decision carries a final answer rather than
// tool calls.
func (d *Decision) IsFinal() bool {
	return len(d.ToolCalls) == 0
}

// CompletionRequest carries everything the model needs for one step.
type CompletionRequest struct {
	System   string
	Messages []Message
	Tools    []ToolSpec
}

// Client is the interface for chat completion providers. Implementations are
// treated as unreliable: callers validate tool names and arguments before
// acting on a Decision.
type Client interface {
	Complete(ctx context.Context, req CompletionRequest) (*Decision, error)
}
