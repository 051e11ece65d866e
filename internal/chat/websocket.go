package chat

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"github.com/avagyan/studenthub/internal/agent"
	"github.com/coder/websocket"
	"github.com/google/uuid"
)

var roomNamePattern = regexp.MustCompile(`^[A-Za-z0-9._:-]{1,64}$`)

// inboundFrame is the wire format of one client message.
type inboundFrame struct {
	Message *string `json:"message"`
}

// outboundFrame is the wire format of one server message. Either Message or
// Error is set, never both.
type outboundFrame struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Handler upgrades chat connections and runs the agent loop per inbound
// message. One conversation per connection; one turn in flight at a time.
type Handler struct {
	runner        *agent.Runner
	hub           *Hub
	transcripts   *agent.TranscriptLogger
	allowedOrigin string
	isDev         bool
}

// NewHandler creates a chat WebSocket handler.
func NewHandler(runner *agent.Runner, hub *Hub, transcripts *agent.TranscriptLogger, allowedOrigin string, isDev bool) *Handler {
	return &Handler{
		runner:        runner,
		hub:           hub,
		transcripts:   transcripts,
		allowedOrigin: allowedOrigin,
		isDev:         isDev,
	}
}

// wsSender adapts websocket.Conn to Sender.
type wsSender struct {
	conn *websocket.Conn
}

func (s *wsSender) Send(ctx context.Context, data []byte) error {
	return s.conn.Write(ctx, websocket.MessageText, data)
}

// ServeHTTP implements http.Handler for the WebSocket upgrade.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !h.checkOrigin(r) {
		http.Error(w, "origin not allowed", http.StatusForbidden)
		return
	}

	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		slog.Error("Failed to accept chat WebSocket", "error", err, "ip", r.RemoteAddr)
		return
	}
	defer func() {
		if closeErr := ws.Close(websocket.StatusNormalClosure, "session ended"); closeErr != nil {
			slog.Debug("Failed to close chat websocket", "error", closeErr)
		}
	}()

	sessionID := uuid.NewString()
	room := h.roomForRequest(r, sessionID)
	slog.Info("Chat session started", "session_id", sessionID, "room", room, "ip", r.RemoteAddr)

	sender := &wsSender{conn: ws}
	h.hub.Join(room, sender)
	defer h.hub.Leave(room, sender)

	ctx := r.Context()
	conv := agent.NewConversation()

	h.readLoop(ctx, ws, sender, conv, sessionID, room)
	slog.Info("Chat session ended", "session_id", sessionID)
}

// roomForRequest picks the delivery room: the connection's own session id by
// default, or a shared named room when the client opts in via ?room=.
func (h *Handler) roomForRequest(r *http.Request, sessionID string) string {
	requested := strings.TrimSpace(r.URL.Query().Get("room"))
	if requested != "" && roomNamePattern.MatchString(requested) {
		return "room:" + requested
	}
	return "session:" + sessionID
}

func (h *Handler) checkOrigin(r *http.Request) bool {
	if h.isDev {
		return true
	}
	origin := r.Header.Get("Origin")
	if origin == "" || h.allowedOrigin == "*" || origin == h.allowedOrigin {
		return true
	}
	slog.Warn("Chat WebSocket origin rejected", "origin", origin, "allowed", h.allowedOrigin)
	return false
}

// readLoop processes inbound frames one at a time: the next frame is not
// read until the current turn has completed.
func (h *Handler) readLoop(ctx context.Context, ws *websocket.Conn, sender Sender, conv *agent.Conversation, sessionID, room string) {
	for {
		_, data, err := ws.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) != -1 {
				slog.Debug("Chat WebSocket closed by client", "session_id", sessionID)
			} else if !errors.Is(err, context.Canceled) {
				slog.Warn("Chat WebSocket read error", "error", err, "session_id", sessionID)
			}
			return
		}

		var frame inboundFrame
		if err := json.Unmarshal(data, &frame); err != nil || frame.Message == nil || strings.TrimSpace(*frame.Message) == "" {
			// Malformed frame: reply on this connection only, mutate nothing.
			h.send(ctx, sender, outboundFrame{Error: "invalid_frame"}, sessionID)
			continue
		}
		message := *frame.Message

		h.transcript(sessionID, room, "user", message, false)

		answer, err := h.runner.Respond(ctx, conv, message)
		isErr := err != nil
		if err != nil {
			answer = userFacingError(err)
			slog.Warn("Chat turn failed", "session_id", sessionID, "error", err)
		}
		answer = normalizeAnswer(answer, sessionID)
		h.transcript(sessionID, room, "assistant", answer, isErr)

		// The answer goes to every subscriber of the room, the asker
		// included.
		payload, err := json.Marshal(outboundFrame{Message: answer})
		if err != nil {
			slog.Error("Failed to encode chat answer", "error", err, "session_id", sessionID)
			continue
		}
		h.hub.Broadcast(ctx, room, payload)
	}
}

func (h *Handler) send(ctx context.Context, sender Sender, frame outboundFrame, sessionID string) {
	data, err := json.Marshal(frame)
	if err != nil {
		slog.Error("Failed to encode chat frame", "error", err, "session_id", sessionID)
		return
	}
	if err := sender.Send(ctx, data); err != nil {
		slog.Debug("Failed to send chat frame", "error", err, "session_id", sessionID)
	}
}

func (h *Handler) transcript(sessionID, room, role, content string, isErr bool) {
	if h.transcripts == nil {
		return
	}
	h.transcripts.Log(agent.TranscriptEvent{
		SessionID: sessionID,
		Room:      room,
		Role:      role,
		Content:   content,
		IsError:   isErr,
	})
}

// normalizeAnswer re-serializes a structured single-student answer into the
// canonical six-key object, dropping any extra keys the model slipped in.
// Anything that does not parse as the object is delivered verbatim.
func normalizeAnswer(answer, sessionID string) string {
	ans, ok := agent.ParseStructuredAnswer(answer)
	if !ok {
		return answer
	}
	data, err := json.Marshal(ans)
	if err != nil {
		slog.Error("Failed to encode structured answer", "error", err, "session_id", sessionID)
		return answer
	}
	slog.Debug("Structured answer delivered", "session_id", sessionID, "student", ans.StudentName)
	return string(data)
}

// userFacingError maps a loop failure to the plain-text message delivered in
// place of an answer. Raw errors never reach the client.
func userFacingError(err error) string {
	switch {
	case errors.Is(err, agent.ErrStepBudget):
		return "I could not finish answering within the allowed number of lookup steps. Please try a more specific question."
	case errors.Is(err, agent.ErrUnknownTool):
		return "I produced an invalid lookup request and discarded it. Please rephrase your question."
	case errors.Is(err, agent.ErrUpstream):
		return "The assistant is temporarily unavailable. Please try again in a moment."
	default:
		return "Something went wrong while answering. Please try again."
	}
}
