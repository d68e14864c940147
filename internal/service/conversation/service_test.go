package conversation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexa-app/nexa/backend/internal/model/chat"
	"github.com/nexa-app/nexa/backend/internal/notify"
	"github.com/nexa-app/nexa/backend/internal/service/ai"
	"github.com/nexa-app/nexa/backend/internal/session"
	"github.com/nexa-app/nexa/backend/internal/store"
)

type stubGenerator struct {
	text string
	err  error
}

func (s stubGenerator) Generate(context.Context, string) (string, error) {
	return s.text, s.err
}

type fakeStore struct {
	mu        sync.Mutex
	inserted  []store.Record
	insertErr error
	selected  []store.Record
	selectErr error
}

func (f *fakeStore) Insert(_ context.Context, _ string, rec store.Record) (store.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	stored := store.Record{}
	for k, v := range rec {
		stored[k] = v
	}
	stored["id"] = fmt.Sprintf("rec-%d", len(f.inserted)+1)
	stored["created_at"] = time.Now().UTC().Format(time.RFC3339Nano)
	f.inserted = append(f.inserted, stored)
	return stored, nil
}

func (f *fakeStore) SelectByOwner(context.Context, string, string, store.OrderBy, int) ([]store.Record, error) {
	if f.selectErr != nil {
		return nil, f.selectErr
	}
	return f.selected, nil
}

func (f *fakeStore) Update(context.Context, string, string, store.Record) error { return nil }
func (f *fakeStore) Delete(context.Context, string, string) error               { return nil }

type recordingNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *recordingNotifier) Notify(kind notify.Kind, title, _ string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, string(kind)+":"+title)
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.events)
}

func newTestService(gen ai.Generator, records *fakeStore, userID string) (*Service, *recordingNotifier) {
	notifier := &recordingNotifier{}
	svc := NewService(ai.NewGateway(gen), records, session.NewStatic(userID), notifier)
	return svc, notifier
}

func TestSendMessageAppendsPairInOrder(t *testing.T) {
	svc, _ := newTestService(stubGenerator{text: "hello there"}, &fakeStore{}, "user-1")

	svc.SendMessage(context.Background(), "hi", ModeGeneral)

	messages := svc.Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, chat.RoleUser, messages[0].Role)
	assert.Equal(t, "hi", messages[0].Content)
	assert.Equal(t, chat.RoleAssistant, messages[1].Role)
	assert.Equal(t, "hello there", messages[1].Content)
	assert.False(t, svc.IsLoading())
}

func TestSendMessageAppendsPairEvenWhenGenerationFails(t *testing.T) {
	svc, _ := newTestService(stubGenerator{err: errors.New("down")}, &fakeStore{}, "user-1")

	svc.SendMessage(context.Background(), "hi", ModeGeneral)

	messages := svc.Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, chat.RoleUser, messages[0].Role)
	assert.Equal(t, chat.RoleAssistant, messages[1].Role)
	assert.NotEmpty(t, messages[1].Content)
}

func TestSendMessageBlankContentIsNoop(t *testing.T) {
	records := &fakeStore{}
	svc, _ := newTestService(stubGenerator{text: "ok"}, records, "user-1")

	svc.SendMessage(context.Background(), "   ", ModeGeneral)

	assert.Empty(t, svc.Messages())
	assert.Empty(t, records.inserted)
}

func TestSendMessagePersistsPairWhenAuthenticated(t *testing.T) {
	records := &fakeStore{}
	svc, _ := newTestService(stubGenerator{text: "ok"}, records, "user-1")

	svc.SendMessage(context.Background(), "hi", ModeGeneral)

	require.Len(t, records.inserted, 2)
	assert.Equal(t, chat.RoleUser, records.inserted[0].String("role"))
	assert.Equal(t, chat.RoleAssistant, records.inserted[1].String("role"))
	assert.Equal(t, "user-1", records.inserted[0].String("user_id"))
}

func TestSendMessageSkipsPersistenceWithoutIdentity(t *testing.T) {
	records := &fakeStore{}
	svc, _ := newTestService(stubGenerator{text: "ok"}, records, "")

	svc.SendMessage(context.Background(), "hi", ModeGeneral)

	assert.Len(t, svc.Messages(), 2)
	assert.Empty(t, records.inserted)
}

func TestSendMessagePersistenceFailureKeepsLocalState(t *testing.T) {
	records := &fakeStore{insertErr: errors.New("store down")}
	svc, notifier := newTestService(stubGenerator{text: "ok"}, records, "user-1")

	svc.SendMessage(context.Background(), "hi", ModeGeneral)

	assert.Len(t, svc.Messages(), 2)
	assert.Equal(t, 1, notifier.count())
}

func TestLoadHistoryReplacesWholesale(t *testing.T) {
	records := &fakeStore{selected: []store.Record{
		{"role": "user", "content": "earlier", "timestamp": "2026-08-01T10:00:00Z"},
		{"role": "assistant", "content": "reply", "timestamp": "2026-08-01T10:00:01Z"},
	}}
	svc, _ := newTestService(stubGenerator{text: "ok"}, records, "user-1")

	require.NoError(t, svc.LoadHistory(context.Background()))
	require.NoError(t, svc.LoadHistory(context.Background()))

	messages := svc.Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, "earlier", messages[0].Content)
}

func TestLoadHistoryWithoutIdentityIsNoop(t *testing.T) {
	records := &fakeStore{selected: []store.Record{{"role": "user", "content": "x"}}}
	svc, _ := newTestService(stubGenerator{text: "ok"}, records, "")

	require.NoError(t, svc.LoadHistory(context.Background()))
	assert.Empty(t, svc.Messages())
}

func TestClearResetsMemoryOnly(t *testing.T) {
	records := &fakeStore{}
	svc, _ := newTestService(stubGenerator{text: "ok"}, records, "user-1")

	svc.SendMessage(context.Background(), "hi", ModeGeneral)
	svc.Clear()

	assert.Empty(t, svc.Messages())
	assert.Len(t, records.inserted, 2)
}
