package mood

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	moodModel "github.com/nexa-app/nexa/backend/internal/model/mood"
	moodService "github.com/nexa-app/nexa/backend/internal/service/mood"
	"github.com/nexa-app/nexa/backend/pkg/utils"
)

// Handler exposes the mood manager over HTTP.
type Handler struct {
	moodSvc *moodService.Service
}

// New creates the mood handler.
func New(moodSvc *moodService.Service) *Handler {
	return &Handler{moodSvc: moodSvc}
}

// RegisterRoutes registers the mood routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/moods", h.handleLogMood)
	r.Get("/moods", h.handleListLogs)
	r.Get("/moods/stats", h.handleStats)
}

func (h *Handler) handleLogMood(w http.ResponseWriter, r *http.Request) {
	var entry moodModel.Entry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(entry.Mood) == "" {
		utils.RespondError(w, http.StatusBadRequest, "mood is required")
		return
	}

	aiResponse, err := h.moodSvc.LogMood(r.Context(), entry)
	if err != nil {
		if errors.Is(err, moodService.ErrAuthRequired) {
			utils.RespondError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		utils.RespondError(w, http.StatusBadGateway, "failed to log mood")
		return
	}

	utils.RespondJSON(w, http.StatusCreated, map[string]string{"ai_response": aiResponse})
}

func (h *Handler) handleListLogs(w http.ResponseWriter, r *http.Request) {
	if err := h.moodSvc.LoadHistory(r.Context()); err != nil {
		utils.RespondError(w, http.StatusBadGateway, "failed to load mood history")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{"logs": h.moodSvc.Logs()})
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	stats := h.moodSvc.Stats()
	if stats == nil {
		utils.RespondJSON(w, http.StatusOK, map[string]any{"stats": nil})
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{"stats": stats})
}
