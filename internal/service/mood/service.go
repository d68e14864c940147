package mood

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"sync"

	"github.com/nexa-app/nexa/backend/internal/model/mood"
	"github.com/nexa-app/nexa/backend/internal/notify"
	"github.com/nexa-app/nexa/backend/internal/service/ai"
	"github.com/nexa-app/nexa/backend/internal/session"
	"github.com/nexa-app/nexa/backend/internal/store"
)

var ErrAuthRequired = errors.New("authentication required")

const historyLimit = 30

// Service owns the newest-first mood history and its aggregate statistics.
type Service struct {
	gateway  *ai.Gateway
	records  store.RecordStore
	sessions session.Provider
	notifier notify.Notifier

	mu      sync.Mutex
	logs    []mood.Log
	loading bool
}

// NewService wires the mood manager.
func NewService(gateway *ai.Gateway, records store.RecordStore, sessions session.Provider, notifier notify.Notifier) *Service {
	return &Service{
		gateway:  gateway,
		records:  records,
		sessions: sessions,
		notifier: notifier,
	}
}

// LogMood asks the gateway for a supportive response, persists the entry
// combined with that response, and prepends the stored log locally. The AI
// text is returned for immediate display. Without an identity no store
// call happens: a validation notification is emitted and ErrAuthRequired
// returned.
func (s *Service) LogMood(ctx context.Context, entry mood.Entry) (string, error) {
	ownerID, ok := s.sessions.CurrentUserID()
	if !ok {
		s.notifier.Notify(notify.KindError, "Authentication required", "Please log in to track your mood.")
		return "", ErrAuthRequired
	}

	s.setLoading(true)
	defer s.setLoading(false)

	aiResponse := s.gateway.MoodSupport(ctx, entry)

	stored, err := s.records.Insert(ctx, store.CollectionMoodLogs, entry.Record(ownerID, aiResponse))
	if err != nil {
		log.Printf("[mood] failed to persist log: %v", err)
		s.notifier.Notify(notify.KindError, "Error", "Failed to log mood. Please try again.")
		return "", fmt.Errorf("failed to log mood: %w", err)
	}

	logged := mood.LogFromRecord(stored)
	s.mu.Lock()
	s.logs = append([]mood.Log{logged}, s.logs...)
	s.mu.Unlock()

	s.notifier.Notify(notify.KindSuccess, "Mood logged!", "Thanks for sharing how you're feeling.")
	return aiResponse, nil
}

// LoadHistory replaces the local sequence with up to 30 stored logs,
// newest first. Without an identity it is a no-op.
func (s *Service) LoadHistory(ctx context.Context) error {
	ownerID, ok := s.sessions.CurrentUserID()
	if !ok {
		return nil
	}

	records, err := s.records.SelectByOwner(ctx, store.CollectionMoodLogs, ownerID, store.OrderBy{Field: "created_at", Descending: true}, historyLimit)
	if err != nil {
		log.Printf("[mood] failed to load history: %v", err)
		return fmt.Errorf("failed to load mood history: %w", err)
	}

	logs := make([]mood.Log, 0, len(records))
	for _, rec := range records {
		logs = append(logs, mood.LogFromRecord(rec))
	}

	s.mu.Lock()
	s.logs = logs
	s.mu.Unlock()
	return nil
}

// Stats aggregates the in-memory history, or returns nil when it is empty.
// The most common mood tie-breaks to the mood encountered first in
// sequence order; the weekly average is min(7, n)/7 over the 7 newest
// entries, rounded to one decimal.
func (s *Service) Stats() *mood.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.logs) == 0 {
		return nil
	}

	counts := make(map[string]int, len(s.logs))
	var order []string
	for _, logged := range s.logs {
		if _, seen := counts[logged.Mood]; !seen {
			order = append(order, logged.Mood)
		}
		counts[logged.Mood]++
	}

	mostCommon := ""
	best := 0
	for _, m := range order {
		if counts[m] > best {
			best = counts[m]
			mostCommon = m
		}
	}

	recent := len(s.logs)
	if recent > 7 {
		recent = 7
	}
	weekly := math.Round(float64(recent)/7*10) / 10

	return &mood.Stats{
		TotalEntries:   len(s.logs),
		MostCommonMood: mostCommon,
		WeeklyAverage:  weekly,
		MoodCounts:     counts,
	}
}

// Logs returns a copy of the current sequence, newest first.
func (s *Service) Logs() []mood.Log {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]mood.Log(nil), s.logs...)
}

// IsLoading reports whether a log operation is in flight.
func (s *Service) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Service) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}
