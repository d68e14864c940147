package chat

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

// WebSocketHandler serves a live conversational session. Each inbound text
// message is routed through the conversation manager and the refreshed
// transcript is pushed back on the same connection.
type WebSocketHandler struct {
	handler  *Handler
	upgrader websocket.Upgrader
}

// NewWebSocketHandler creates the websocket chat handler.
func NewWebSocketHandler(handler *Handler) *WebSocketHandler {
	return &WebSocketHandler{
		handler: handler,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterWebSocketRoutes registers the websocket route.
func (h *WebSocketHandler) RegisterWebSocketRoutes(r chi.Router) {
	r.Get("/ws/chat", h.handleWebSocket)
}

type inboundMessage struct {
	Content string `json:"content"`
	Mode    string `json:"mode"`
}

type outgoingMessage struct {
	Type      string `json:"type"`
	Data      any    `json:"data,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

func (h *WebSocketHandler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	log.Printf("[ws] chat connection opened from %s", r.RemoteAddr)

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[ws] read failed: %v", err)
			}
			return
		}

		svc := h.handler.conversationSvc
		svc.SendMessage(r.Context(), inbound.Content, normalizeMode(inbound.Mode))

		out := outgoingMessage{
			Type:      "messages",
			Data:      svc.Messages(),
			Timestamp: time.Now().UnixMilli(),
		}
		if err := conn.WriteJSON(out); err != nil {
			log.Printf("[ws] write failed: %v", err)
			return
		}
	}
}
