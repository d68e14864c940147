package conversation

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/nexa-app/nexa/backend/internal/model/chat"
	"github.com/nexa-app/nexa/backend/internal/notify"
	"github.com/nexa-app/nexa/backend/internal/service/ai"
	"github.com/nexa-app/nexa/backend/internal/session"
	"github.com/nexa-app/nexa/backend/internal/store"
)

// Mode selects how a message is dispatched to the AI gateway.
type Mode string

const (
	ModeGeneral  Mode = "general"
	ModeStudy    Mode = "study"
	ModeLanguage Mode = "language"
)

const historyLimit = 50

// Service owns the in-memory conversation and keeps it reconciled with the
// record store. Local state is authoritative for the session: persistence
// failures are reported but never roll back an appended message.
type Service struct {
	gateway  *ai.Gateway
	records  store.RecordStore
	sessions session.Provider
	notifier notify.Notifier

	mu       sync.Mutex
	messages []chat.Message
	loading  bool
}

// NewService wires the conversation manager.
func NewService(gateway *ai.Gateway, records store.RecordStore, sessions session.Provider, notifier notify.Notifier) *Service {
	return &Service{
		gateway:  gateway,
		records:  records,
		sessions: sessions,
		notifier: notifier,
		messages: make([]chat.Message, 0, 16),
	}
}

// SendMessage appends the user message, asks the gateway for a response and
// appends it as the assistant message. Blank content and calls arriving
// while a send is in flight are no-ops. When an identity is present the
// pair is persisted after the in-memory append.
func (s *Service) SendMessage(ctx context.Context, content string, mode Mode) {
	content = strings.TrimSpace(content)
	if content == "" {
		return
	}

	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return
	}
	s.loading = true
	history := append([]chat.Message(nil), s.messages...)
	userMessage := chat.Message{
		Role:      chat.RoleUser,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
	s.messages = append(s.messages, userMessage)
	s.mu.Unlock()

	var response string
	switch mode {
	case ModeStudy:
		response = s.gateway.StudyAssist(ctx, content, "")
	case ModeLanguage:
		response = s.gateway.LanguagePractice(ctx, content, ai.PracticeGrammar)
	default:
		response = s.gateway.GenerateReply(ctx, content, history)
	}

	assistantMessage := chat.Message{
		Role:      chat.RoleAssistant,
		Content:   response,
		Timestamp: time.Now().UTC(),
	}

	s.mu.Lock()
	s.messages = append(s.messages, assistantMessage)
	s.loading = false
	s.mu.Unlock()

	if ownerID, ok := s.sessions.CurrentUserID(); ok {
		s.persistPair(ctx, ownerID, userMessage, assistantMessage)
	}
}

func (s *Service) persistPair(ctx context.Context, ownerID string, pair ...chat.Message) {
	for _, message := range pair {
		if _, err := s.records.Insert(ctx, store.CollectionChatHistory, message.Record(ownerID)); err != nil {
			log.Printf("[chat] failed to persist %s message: %v", message.Role, err)
			s.notifier.Notify(notify.KindError, "Error", "Failed to save chat history.")
			return
		}
	}
}

// LoadHistory replaces the in-memory sequence with up to 50 stored
// messages ordered by timestamp ascending. Without an identity it is a
// no-op.
func (s *Service) LoadHistory(ctx context.Context) error {
	ownerID, ok := s.sessions.CurrentUserID()
	if !ok {
		return nil
	}

	records, err := s.records.SelectByOwner(ctx, store.CollectionChatHistory, ownerID, store.OrderBy{Field: "timestamp"}, historyLimit)
	if err != nil {
		log.Printf("[chat] failed to load history: %v", err)
		return fmt.Errorf("failed to load chat history: %w", err)
	}

	messages := make([]chat.Message, 0, len(records))
	for _, rec := range records {
		messages = append(messages, chat.MessageFromRecord(rec))
	}

	s.mu.Lock()
	s.messages = messages
	s.mu.Unlock()
	return nil
}

// Clear resets the in-memory sequence. Persisted records are untouched.
func (s *Service) Clear() {
	s.mu.Lock()
	s.messages = s.messages[:0]
	s.mu.Unlock()
}

// Messages returns a copy of the current sequence.
func (s *Service) Messages() []chat.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]chat.Message(nil), s.messages...)
}

// IsLoading reports whether a send is in flight. Callers wanting strict
// serialization gate on this flag.
func (s *Service) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}
