package agent

import (
	"encoding/json"
	"testing"

	"github.com/avagyan/studenthub/internal/llm"
)

func TestConversationOrdering(t *testing.T) {
	t.Parallel()

	conv := NewConversation()
	conv.AppendUser("hi")
	conv.AppendAssistant("hello")
	conv.AppendUser("who is mary?")

	msgs := conv.Messages()
	if len(msgs) != 3 {
		t.Fatalf("expected 3 turns, got %d", len(msgs))
	}
	if msgs[0].Role != llm.RoleUser || msgs[1].Role != llm.RoleAssistant || msgs[2].Role != llm.RoleUser {
		t.Errorf("unexpected roles: %+v", msgs)
	}

	// Messages returns a copy; mutating it must not affect the conversation.
	msgs[0].Content = "tampered"
	if conv.Messages()[0].Content != "hi" {
		t.Error("Messages must return a copy")
	}
}

func TestConversationConsistent(t *testing.T) {
	t.Parallel()

	conv := NewConversation()
	conv.AppendUser("question")
	conv.AppendToolCalls([]llm.ToolCall{
		{ID: "c1", Name: ToolCountRecords, Arguments: json.RawMessage(`{}`)},
		{ID: "c2", Name: ToolCountRecords, Arguments: json.RawMessage(`{}`)},
	})
	conv.AppendToolResult("c1", `{"count":1}`)
	conv.AppendToolResult("c2", `{"count":2}`)
	conv.AppendAssistant("done")

	if !conv.Consistent() {
		t.Error("expected consistent conversation")
	}
}

func TestConversationInconsistentMissingResult(t *testing.T) {
	t.Parallel()

	conv := NewConversation()
	conv.AppendUser("question")
	conv.AppendToolCalls([]llm.ToolCall{{ID: "c1", Name: ToolCountRecords}})
	conv.AppendAssistant("answered without a result")

	if conv.Consistent() {
		t.Error("expected inconsistency for dangling tool call")
	}
}

func TestConversationInconsistentOrphanResult(t *testing.T) {
	t.Parallel()

	conv := NewConversation()
	conv.AppendUser("question")
	conv.AppendToolResult("ghost", `{}`)

	if conv.Consistent() {
		t.Error("expected inconsistency for orphan tool result")
	}
}

func TestConversationInconsistentMismatchedID(t *testing.T) {
	t.Parallel()

	conv := NewConversation()
	conv.AppendUser("question")
	conv.AppendToolCalls([]llm.ToolCall{{ID: "c1", Name: ToolCountRecords}})
	conv.AppendToolResult("c2", `{}`)

	if conv.Consistent() {
		t.Error("expected inconsistency for mismatched call id")
	}
}
