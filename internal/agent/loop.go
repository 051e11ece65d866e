// Package agent implements the conversational assistant: the tool catalog
// and the decide/act loop that converts one user message into one answer.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/avagyan/studenthub/internal/llm"
)

const systemPrompt = `You are the assistant of a student records system. You answer
questions about students, courses, grades, attendance, performance records and
internships by calling the provided tools; never invent data.

When the user asks about one specific student, answer with a single JSON
object using exactly these keys: student_name, attendance, gpa,
scholarship_status, internship_status, message. Put anything the keys do not
cover into "message". For every other question answer in plain text.

If a tool reports that something was not found or that a name is ambiguous,
relay that to the user in a helpful sentence instead of failing.`

const (
	// DefaultMaxSteps caps decide/act round-trips per turn.
	DefaultMaxSteps = 5
	// DefaultTurnTimeout bounds one whole turn.
	DefaultTurnTimeout = 2 * time.Minute
	// DefaultToolTimeout bounds one tool invocation.
	DefaultToolTimeout = 10 * time.Second
)

// RunnerConfig holds the loop bounds. Zero values fall back to defaults.
type RunnerConfig struct {
	MaxSteps    int
	TurnTimeout time.Duration
	ToolTimeout time.Duration
}

// Runner drives the decide/act/observe cycle for one user message at a time.
// A single Runner is shared by all sessions; per-session state lives in the
// Conversation passed to Respond.
type Runner struct {
	client      llm.Client
	tools       *Registry
	maxSteps    int
	turnTimeout time.Duration
	toolTimeout time.Duration
}

// NewRunner creates a runner over the given model client and tool catalog.
func NewRunner(client llm.Client, tools *Registry, cfg RunnerConfig) *Runner {
	if cfg.MaxSteps <= 0 {
		cfg.MaxSteps = DefaultMaxSteps
	}
	if cfg.TurnTimeout <= 0 {
		cfg.TurnTimeout = DefaultTurnTimeout
	}
	if cfg.ToolTimeout <= 0 {
		cfg.ToolTimeout = DefaultToolTimeout
	}
	return &Runner{
		client:      client,
		tools:       tools,
		maxSteps:    cfg.MaxSteps,
		turnTimeout: cfg.TurnTimeout,
		toolTimeout: cfg.ToolTimeout,
	}
}

// Respond converts one user message into one final answer, consulting tools
// as the model requests. On a loop-level failure the conversation keeps the
// user turn and any completed tool rounds but never a dangling tool call;
// the returned error wraps ErrUpstream, ErrUnknownTool or ErrStepBudget.
func (r *Runner) Respond(ctx context.Context, conv *Conversation, message string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.turnTimeout)
	defer cancel()

	conv.AppendUser(message)

	for step := 0; step < r.maxSteps; step++ {
		decision, err := r.client.Complete(ctx, llm.CompletionRequest{
			System:   systemPrompt,
			Messages: conv.Messages(),
			Tools:    r.tools.Specs(),
		})
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrUpstream, err)
		}

		if decision.IsFinal() {
			conv.AppendAssistant(decision.Content)
			return decision.Content, nil
		}

		// Validate the whole batch before mutating the conversation, so a
		// hallucinated tool name cannot leave a dangling call turn.
		for _, call := range decision.ToolCalls {
			if !r.tools.Has(call.Name) {
				return "", fmt.Errorf("%w: %q", ErrUnknownTool, call.Name)
			}
		}

		conv.AppendToolCalls(decision.ToolCalls)
		for _, call := range decision.ToolCalls {
			conv.AppendToolResult(call.ID, r.invoke(ctx, call))
		}
	}

	return "", fmt.Errorf("%w after %d steps", ErrStepBudget, r.maxSteps)
}

// invoke runs one tool call under the tool timeout and renders the outcome
// as the JSON payload fed back to the model. Tool failures are data, not
// errors: the model may recover from them.
func (r *Runner) invoke(ctx context.Context, call llm.ToolCall) string {
	tctx, cancel := context.WithTimeout(ctx, r.toolTimeout)
	defer cancel()

	started := time.Now()
	payload, terr := r.tools.Invoke(tctx, call.Name, call.Arguments)
	if terr != nil {
		slog.Debug("tool call failed", "tool", call.Name, "kind", terr.Kind, "error", terr.Message)
		data, err := json.Marshal(map[string]any{"error": terr})
		if err != nil {
			return `{"error":{"kind":"internal","message":"encode tool error"}}`
		}
		return string(data)
	}

	slog.Debug("tool call completed", "tool", call.Name, "duration", time.Since(started))
	return string(payload)
}
