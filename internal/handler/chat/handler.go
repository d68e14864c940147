package chat

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	conversationService "github.com/nexa-app/nexa/backend/internal/service/conversation"
)

// Handler exposes the conversation manager over HTTP.
type Handler struct {
	conversationSvc *conversationService.Service
}

// New creates the chat handler.
func New(conversationSvc *conversationService.Service) *Handler {
	return &Handler{conversationSvc: conversationSvc}
}

// RegisterRoutes registers the chat routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/chat/messages", h.handleListMessages)
	r.Post("/chat/messages", h.handleSendMessage)
	r.Post("/chat/history", h.handleLoadHistory)
	r.Delete("/chat/messages", h.handleClear)
}

func (h *Handler) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Content string `json:"content"`
		Mode    string `json:"mode"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(payload.Content) == "" {
		respondError(w, http.StatusBadRequest, "content is required")
		return
	}

	h.conversationSvc.SendMessage(r.Context(), payload.Content, normalizeMode(payload.Mode))

	respondJSON(w, http.StatusOK, map[string]any{
		"messages": h.conversationSvc.Messages(),
	})
}

func (h *Handler) handleListMessages(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"messages":  h.conversationSvc.Messages(),
		"isLoading": h.conversationSvc.IsLoading(),
	})
}

func (h *Handler) handleLoadHistory(w http.ResponseWriter, r *http.Request) {
	if err := h.conversationSvc.LoadHistory(r.Context()); err != nil {
		respondError(w, http.StatusBadGateway, "failed to load chat history")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"messages": h.conversationSvc.Messages(),
	})
}

func (h *Handler) handleClear(w http.ResponseWriter, r *http.Request) {
	h.conversationSvc.Clear()
	respondJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

// normalizeMode maps unknown modes to general.
func normalizeMode(raw string) conversationService.Mode {
	switch mode := conversationService.Mode(raw); mode {
	case conversationService.ModeStudy, conversationService.ModeLanguage:
		return mode
	default:
		return conversationService.ModeGeneral
	}
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
