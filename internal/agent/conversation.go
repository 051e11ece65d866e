package agent

import (
	"github.com/avagyan/studenthub/internal/llm"
)

// Conversation is the ordered, append-only turn log of one chat session.
// It is owned by a single connection and mutated only by the Runner between
// reads, so it needs no locking. It lives and dies with the session.
type Conversation struct {
	messages []llm.Message
}

// NewConversation creates an empty conversation.
func NewConversation() *Conversation {
	return &Conversation{}
}

// AppendUser appends a user turn.
func (c *Conversation) AppendUser(text string) {
	c.messages = append(c.messages, llm.Message{Role: llm.RoleUser, Content: text})
}

// AppendAssistant appends a final assistant answer.
func (c *Conversation) AppendAssistant(text string) {
	c.messages = append(c.messages, llm.Message{Role: llm.RoleAssistant, Content: text})
}

// AppendToolCalls appends an assistant turn requesting the given tool calls.
func (c *Conversation) AppendToolCalls(calls []llm.ToolCall) {
	c.messages = append(c.messages, llm.Message{
		Role:      llm.RoleAssistant,
		ToolCalls: append([]llm.ToolCall(nil), calls...),
	})
}

// AppendToolResult appends the result turn for one tool call, matched back
// to the originating call by its id.
func (c *Conversation) AppendToolResult(callID, payload string) {
	c.messages = append(c.messages, llm.Message{
		Role:       llm.RoleTool,
		Content:    payload,
		ToolCallID: callID,
	})
}

// Messages returns a copy of the ordered turn history.
func (c *Conversation) Messages() []llm.Message {
	return append([]llm.Message(nil), c.messages...)
}

// Len returns the number of turns.
func (c *Conversation) Len() int {
	return len(c.messages)
}

// Consistent reports whether every tool-call turn is matched, in order, by
// one result turn per requested call before any other turn kind follows.
func (c *Conversation) Consistent() bool {
	for i := 0; i < len(c.messages); i++ {
		m := c.messages[i]
		if m.Role == llm.RoleTool {
			// Result without a preceding call turn.
			return false
		}
		if m.Role != llm.RoleAssistant || len(m.ToolCalls) == 0 {
			continue
		}
		for _, call := range m.ToolCalls {
			i++
			if i >= len(c.messages) {
				return false
			}
			next := c.messages[i]
			if next.Role != llm.RoleTool || next.ToolCallID != call.ID {
				return false
			}
		}
	}
	return true
}
