package mood

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/nexa-app/nexa/backend/internal/notify"
	"github.com/nexa-app/nexa/backend/internal/service/ai"
	moodservice "github.com/nexa-app/nexa/backend/internal/service/mood"
	"github.com/nexa-app/nexa/backend/internal/session"
	"github.com/nexa-app/nexa/backend/internal/store"
)

type noopStore struct{}

func (noopStore) Insert(_ context.Context, _ string, rec store.Record) (store.Record, error) {
	return rec, nil
}
func (noopStore) SelectByOwner(context.Context, string, string, store.OrderBy, int) ([]store.Record, error) {
	return nil, nil
}
func (noopStore) Update(context.Context, string, string, store.Record) error { return nil }
func (noopStore) Delete(context.Context, string, string) error               { return nil }

type noopNotifier struct{}

func (noopNotifier) Notify(notify.Kind, string, string) {}

func setupRouter(userID string) *chi.Mux {
	svc := moodservice.NewService(ai.NewGateway(nil), noopStore{}, session.NewStatic(userID), noopNotifier{})
	handler := New(svc)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r
}

func TestLogMoodMissingMood(t *testing.T) {
	r := setupRouter("user-1")
	payload := []byte(`{"emoji": "😀"}`)

	req := httptest.NewRequest(http.MethodPost, "/moods", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestLogMoodUnauthenticated(t *testing.T) {
	r := setupRouter("")
	payload := []byte(`{"mood": "Sad", "emoji": "😢"}`)

	req := httptest.NewRequest(http.MethodPost, "/moods", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestLogMoodReturnsAIResponse(t *testing.T) {
	r := setupRouter("user-1")
	payload := []byte(`{"mood": "Happy", "emoji": "😀"}`)

	req := httptest.NewRequest(http.MethodPost, "/moods", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if body["ai_response"] == "" {
		t.Fatal("expected a non-empty ai_response")
	}
}

func TestStatsEmptyHistory(t *testing.T) {
	r := setupRouter("user-1")

	req := httptest.NewRequest(http.MethodGet, "/moods/stats", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if body["stats"] != nil {
		t.Fatalf("expected null stats, got %v", body["stats"])
	}
}
