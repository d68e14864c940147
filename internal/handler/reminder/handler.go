package reminder

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	reminderService "github.com/nexa-app/nexa/backend/internal/service/reminder"
	"github.com/nexa-app/nexa/backend/pkg/utils"
)

// Handler exposes the reminder manager over HTTP. It owns the input
// validation the manager documents as a caller-side precondition.
type Handler struct {
	reminderSvc *reminderService.Service
}

// New creates the reminder handler.
func New(reminderSvc *reminderService.Service) *Handler {
	return &Handler{reminderSvc: reminderSvc}
}

// RegisterRoutes registers the reminder routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/reminders", h.handleCreate)
	r.Get("/reminders", h.handleList)
	r.Get("/reminders/upcoming", h.handleUpcoming)
	r.Get("/reminders/overdue", h.handleOverdue)
	r.Patch("/reminders/{id}", h.handleToggle)
	r.Delete("/reminders/{id}", h.handleDelete)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Title        string    `json:"title"`
		Description  string    `json:"description"`
		ScheduledFor time.Time `json:"scheduled_for"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(payload.Title) == "" {
		utils.RespondError(w, http.StatusBadRequest, "title is required")
		return
	}
	if payload.ScheduledFor.IsZero() {
		utils.RespondError(w, http.StatusBadRequest, "scheduled_for is required")
		return
	}

	created, err := h.reminderSvc.Create(r.Context(), payload.Title, payload.Description, payload.ScheduledFor)
	if err != nil {
		if errors.Is(err, reminderService.ErrAuthRequired) {
			utils.RespondError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		utils.RespondError(w, http.StatusBadGateway, "failed to create reminder")
		return
	}

	utils.RespondJSON(w, http.StatusCreated, created)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	if err := h.reminderSvc.LoadAll(r.Context()); err != nil {
		utils.RespondError(w, http.StatusBadGateway, "failed to load reminders")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{"reminders": h.reminderSvc.Reminders()})
}

func (h *Handler) handleUpcoming(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]any{"reminders": h.reminderSvc.Upcoming()})
}

func (h *Handler) handleOverdue(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]any{"reminders": h.reminderSvc.Overdue()})
}

func (h *Handler) handleToggle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var payload struct {
		Completed bool `json:"completed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.reminderSvc.Toggle(r.Context(), id, payload.Completed); err != nil {
		utils.RespondError(w, http.StatusBadGateway, "failed to update reminder")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.reminderSvc.Delete(r.Context(), id); err != nil {
		utils.RespondError(w, http.StatusBadGateway, "failed to delete reminder")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
