package quote

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nexa-app/nexa/backend/internal/service/ai"
	"github.com/nexa-app/nexa/backend/pkg/utils"
)

// Handler serves the daily motivational quote.
type Handler struct {
	gateway *ai.Gateway
}

// New creates the quote handler.
func New(gateway *ai.Gateway) *Handler {
	return &Handler{gateway: gateway}
}

// RegisterRoutes registers the quote route.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/quote", h.handleQuote)
}

func (h *Handler) handleQuote(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"quote": h.gateway.MotivationalQuote(r.Context()),
	})
}
