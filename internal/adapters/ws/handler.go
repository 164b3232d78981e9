// Package ws exposes the assistant over a WebSocket channel: one socket per
// session, envelope frames both ways.
package ws

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/NicolasDuarte04/Briki-Web-App-sub001/internal/app/assistant"
	"github.com/NicolasDuarte04/Briki-Web-App-sub001/internal/domain"
	"github.com/NicolasDuarte04/Briki-Web-App-sub001/internal/observability"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// Same open policy as the HTTP CORS middleware.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Envelope is one frame on the socket.
type Envelope struct {
	Type    string          `json:"type"` // user_message | assistant_message | plans | error | reset
	Text    string          `json:"text,omitempty"`
	Message *domain.Message `json:"message,omitempty"`
	Plans   []domain.Plan   `json:"plans,omitempty"`
	Error   string          `json:"error,omitempty"`
}

type Handler struct {
	assistant *assistant.Service
}

func NewHandler(svc *assistant.Service) *Handler {
	return &Handler{assistant: svc}
}

// ServeHTTP upgrades /ws?session_id=... and pumps envelopes until the client
// hangs up.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sessionID := domain.SessionID(r.URL.Query().Get("session_id"))
	if sessionID == "" {
		http.Error(w, "session_id is required", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		observability.LoggerFromContext(r.Context()).Error("ws upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	log := observability.LoggerFromContext(r.Context()).With("session_id", sessionID)
	log.Info("ws connected")

	for {
		var in Envelope
		if err := conn.ReadJSON(&in); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("ws read failed", "error", err)
			}
			return
		}

		switch in.Type {
		case "user_message":
			h.handleUserMessage(r, conn, sessionID, in.Text)
		case "reset":
			if err := h.assistant.ResetChat(r.Context(), sessionID); err != nil {
				writeError(conn, err)
				continue
			}
			_ = conn.WriteJSON(Envelope{Type: "reset"})
		default:
			writeError(conn, errors.New("unknown envelope type: "+in.Type))
		}
	}
}

func (h *Handler) handleUserMessage(r *http.Request, conn *websocket.Conn, sessionID domain.SessionID, text string) {
	out, err := h.assistant.SendMessage(r.Context(), assistant.SendMessageInput{
		SessionID: sessionID,
		Text:      text,
	})
	if err != nil {
		writeError(conn, err)
		return
	}

	for _, reply := range out.Replies {
		env := Envelope{Type: "assistant_message", Message: reply}
		if reply.Type == domain.MessageTypePlans {
			env.Type = "plans"
			env.Plans = reply.Plans
		}
		if err := conn.WriteJSON(env); err != nil {
			return
		}
	}
}

func writeError(conn *websocket.Conn, err error) {
	payload, _ := json.Marshal(Envelope{Type: "error", Error: err.Error()})
	_ = conn.WriteMessage(websocket.TextMessage, payload)
}
