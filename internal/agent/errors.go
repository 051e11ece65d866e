package agent

import (
	"errors"
	"fmt"
)

// ErrorKind classifies tool failures. Tool errors are returned to the model
// as tool results so it can recover; they never abort the loop.
type ErrorKind string

const (
	// KindNotFound indicates an entity lookup miss.
	KindNotFound ErrorKind = "not_found"
	// KindAmbiguousMatch indicates multiple candidates matched a lookup.
	KindAmbiguousMatch ErrorKind = "ambiguous_match"
	// KindInvalidArguments indicates an unknown enum value or malformed call.
	KindInvalidArguments ErrorKind = "invalid_arguments"
	// KindInternal indicates an unexpected failure inside a tool.
	KindInternal ErrorKind = "internal"
)

// ToolError is the normalized failure of one tool invocation. Nothing else
// crosses the tool boundary.
type ToolError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func notFoundf(format string, args ...any) *ToolError {
	return &ToolError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func ambiguousf(format string, args ...any) *ToolError {
	return &ToolError{Kind: KindAmbiguousMatch, Message: fmt.Sprintf(format, args...)}
}

func invalidArgsf(format string, args ...any) *ToolError {
	return &ToolError{Kind: KindInvalidArguments, Message: fmt.Sprintf(format, args...)}
}

func internalf(format string, args ...any) *ToolError {
	return &ToolError{Kind: KindInternal, Message: fmt.Sprintf(format, args...)}
}

// Loop-level failures. These are fatal to the current turn only: the session
// stays connected and the conversation is left without dangling tool calls.
var (
	// ErrUpstream indicates the model call itself failed.
	ErrUpstream = errors.New("model request failed")
	// ErrUnknownTool indicates the model requested a tool outside the catalog.
	ErrUnknownTool = errors.New("unknown tool requested")
	// ErrStepBudget indicates the decide/act round-trip cap was reached
	// without a final answer.
	ErrStepBudget = errors.New("tool round-trip budget exhausted")
)
