package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/nexa-app/nexa/backend/internal/config"
	"github.com/nexa-app/nexa/backend/internal/handler"
	"github.com/nexa-app/nexa/backend/internal/notify"
	aiService "github.com/nexa-app/nexa/backend/internal/service/ai"
	conversationService "github.com/nexa-app/nexa/backend/internal/service/conversation"
	moodService "github.com/nexa-app/nexa/backend/internal/service/mood"
	profileService "github.com/nexa-app/nexa/backend/internal/service/profile"
	reminderService "github.com/nexa-app/nexa/backend/internal/service/reminder"
	"github.com/nexa-app/nexa/backend/internal/session"
	"github.com/nexa-app/nexa/backend/internal/store/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	records, err := sqlite.Open(cfg.Store.Path)
	if err != nil {
		log.Fatalf("failed to open record store: %v", err)
	}
	defer records.Close()

	// Without credentials the gateway still serves fallback text, so the
	// rest of the system keeps working.
	var generator aiService.Generator
	if cfg.AI.Enabled() {
		arkGen, err := aiService.NewArkGenerator(ctx, cfg.AI)
		if err != nil {
			log.Printf("warning: failed to initialize ark generator: %v", err)
			log.Println("continuing with fallback responses only")
		} else {
			generator = arkGen
			log.Println("ark generator initialized successfully")
		}
	} else {
		log.Println("ark credentials not configured, serving fallback responses only")
	}

	gateway := aiService.NewGateway(generator, aiService.WithTimeout(cfg.AI.RequestTimeout))
	sessions := session.NewStatic(cfg.Session.UserID)
	notifier := notify.LogNotifier{}

	conversationSvc := conversationService.NewService(gateway, records, sessions, notifier)
	moodSvc := moodService.NewService(gateway, records, sessions, notifier)
	reminderSvc := reminderService.NewService(records, sessions, notifier)
	profileSvc := profileService.NewService(records, sessions, notifier)

	if _, ok := sessions.CurrentUserID(); ok {
		if err := conversationSvc.LoadHistory(ctx); err != nil {
			log.Printf("warning: %v", err)
		}
		if err := moodSvc.LoadHistory(ctx); err != nil {
			log.Printf("warning: %v", err)
		}
		if err := reminderSvc.LoadAll(ctx); err != nil {
			log.Printf("warning: %v", err)
		}
	}

	router := handler.NewRouter(gateway, conversationSvc, moodSvc, reminderSvc, profileSvc)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Nexa backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
