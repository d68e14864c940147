package profile

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	profileService "github.com/nexa-app/nexa/backend/internal/service/profile"
	"github.com/nexa-app/nexa/backend/internal/store"
	"github.com/nexa-app/nexa/backend/pkg/utils"
)

// Handler exposes the profile service over HTTP.
type Handler struct {
	profileSvc *profileService.Service
}

// New creates the profile handler.
func New(profileSvc *profileService.Service) *Handler {
	return &Handler{profileSvc: profileSvc}
}

// RegisterRoutes registers the profile routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/profile", h.handleGet)
	r.Put("/profile", h.handleSave)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	prof, err := h.profileSvc.Get(r.Context())
	switch {
	case errors.Is(err, profileService.ErrAuthRequired):
		utils.RespondError(w, http.StatusUnauthorized, "authentication required")
	case errors.Is(err, store.ErrNotFound):
		utils.RespondError(w, http.StatusNotFound, "profile not found")
	case err != nil:
		utils.RespondError(w, http.StatusBadGateway, "failed to load profile")
	default:
		utils.RespondJSON(w, http.StatusOK, prof)
	}
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		DisplayName string `json:"display_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.profileSvc.SetDisplayName(r.Context(), payload.DisplayName); err != nil {
		if errors.Is(err, profileService.ErrAuthRequired) {
			utils.RespondError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		utils.RespondError(w, http.StatusBadGateway, "failed to save profile")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}
