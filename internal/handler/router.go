package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	chatHandler "github.com/nexa-app/nexa/backend/internal/handler/chat"
	moodHandler "github.com/nexa-app/nexa/backend/internal/handler/mood"
	profileHandler "github.com/nexa-app/nexa/backend/internal/handler/profile"
	quoteHandler "github.com/nexa-app/nexa/backend/internal/handler/quote"
	reminderHandler "github.com/nexa-app/nexa/backend/internal/handler/reminder"
	middlewarePkg "github.com/nexa-app/nexa/backend/internal/middleware"
	aiService "github.com/nexa-app/nexa/backend/internal/service/ai"
	conversationService "github.com/nexa-app/nexa/backend/internal/service/conversation"
	moodService "github.com/nexa-app/nexa/backend/internal/service/mood"
	profileService "github.com/nexa-app/nexa/backend/internal/service/profile"
	reminderService "github.com/nexa-app/nexa/backend/internal/service/reminder"
)

// NewRouter wires HTTP routes to the companion services.
func NewRouter(
	gateway *aiService.Gateway,
	conversationSvc *conversationService.Service,
	moodSvc *moodService.Service,
	reminderSvc *reminderService.Service,
	profileSvc *profileService.Service,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	chatH := chatHandler.New(conversationSvc)
	wsH := chatHandler.NewWebSocketHandler(chatH)

	r.Route("/api", func(api chi.Router) {
		chatH.RegisterRoutes(api)
		wsH.RegisterWebSocketRoutes(api)
		moodHandler.New(moodSvc).RegisterRoutes(api)
		reminderHandler.New(reminderSvc).RegisterRoutes(api)
		profileHandler.New(profileSvc).RegisterRoutes(api)
		quoteHandler.New(gateway).RegisterRoutes(api)
	})

	return r
}
