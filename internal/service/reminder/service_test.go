package reminder

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexa-app/nexa/backend/internal/notify"
	"github.com/nexa-app/nexa/backend/internal/session"
	"github.com/nexa-app/nexa/backend/internal/store"
)

type fakeStore struct {
	mu        sync.Mutex
	inserted  []store.Record
	insertErr error
	updates   map[string]store.Record
	updateErr error
	deleted   []string
	deleteErr error
	selected  []store.Record
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
	return f.selected, nil
}

func (f *fakeStore) Update(_ context.Context, _ string, id string, patch store.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	if f.updates == nil {
		f.updates = make(map[string]store.Record)
	}
	f.updates[id] = patch
	return nil
}

func (f *fakeStore) Delete(_ context.Context, _ string, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *recordingNotifier) Notify(kind notify.Kind, title, _ string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, string(kind)+":"+title)
}

func newTestService(records *fakeStore, userID string, now time.Time) (*Service, *recordingNotifier) {
	notifier := &recordingNotifier{}
	svc := NewService(records, session.NewStatic(userID), notifier, WithClock(func() time.Time { return now }))
	return svc, notifier
}

func TestCreateToggleDeleteLifecycle(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	records := &fakeStore{}
	svc, _ := newTestService(records, "user-1", now)
	ctx := context.Background()

	created, err := svc.Create(ctx, "Call mom", "", now.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, records.inserted, 1)
	require.Len(t, svc.Reminders(), 1)
	assert.False(t, created.Completed)
	assert.NotEmpty(t, created.ID)

	require.NoError(t, svc.Toggle(ctx, created.ID, true))
	require.Len(t, records.updates, 1)
	assert.Equal(t, true, records.updates[created.ID].Bool("completed"))
	assert.True(t, svc.Reminders()[0].Completed)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.Equal(t, []string{created.ID}, records.deleted)
	assert.Empty(t, svc.Reminders())
}

func TestCreateUnauthenticated(t *testing.T) {
	records := &fakeStore{}
	svc, notifier := newTestService(records, "", time.Now())

	_, err := svc.Create(context.Background(), "Call mom", "", time.Now().Add(time.Hour))

	require.ErrorIs(t, err, ErrAuthRequired)
	assert.Empty(t, records.inserted)
	assert.Empty(t, svc.Reminders())
	require.Len(t, notifier.events, 1)
	assert.Equal(t, "error:Authentication required", notifier.events[0])
}

func TestToggleStoreFailureLeavesLocalStateUntouched(t *testing.T) {
	now := time.Now()
	records := &fakeStore{}
	svc, notifier := newTestService(records, "user-1", now)
	ctx := context.Background()

	created, err := svc.Create(ctx, "Water plants", "", now.Add(time.Hour))
	require.NoError(t, err)

	records.updateErr = errors.New("store down")
	require.Error(t, svc.Toggle(ctx, created.ID, true))

	assert.False(t, svc.Reminders()[0].Completed)
	assert.Contains(t, notifier.events, "error:Error")
}

func TestUpcomingOverduePartition(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	records := &fakeStore{}
	svc, _ := newTestService(records, "user-1", now)
	ctx := context.Background()

	past, err := svc.Create(ctx, "past", "", now.Add(-time.Hour))
	require.NoError(t, err)
	boundary, err := svc.Create(ctx, "boundary", "", now)
	require.NoError(t, err)
	future, err := svc.Create(ctx, "future", "", now.Add(time.Hour))
	require.NoError(t, err)
	done, err := svc.Create(ctx, "done", "", now.Add(2*time.Hour))
	require.NoError(t, err)
	require.NoError(t, svc.Toggle(ctx, done.ID, true))

	upcoming := svc.Upcoming()
	overdue := svc.Overdue()

	require.Len(t, upcoming, 1)
	assert.Equal(t, future.ID, upcoming[0].ID)

	require.Len(t, overdue, 2)
	ids := []string{overdue[0].ID, overdue[1].ID}
	assert.Contains(t, ids, past.ID)
	// The boundary instant counts as overdue, not upcoming.
	assert.Contains(t, ids, boundary.ID)

	for _, up := range upcoming {
		assert.NotContains(t, ids, up.ID)
	}
}

func TestUpcomingCapsAtFive(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	svc, _ := newTestService(&fakeStore{}, "user-1", now)
	ctx := context.Background()

	for i := 1; i <= 8; i++ {
		_, err := svc.Create(ctx, fmt.Sprintf("task %d", i), "", now.Add(time.Duration(i)*time.Hour))
		require.NoError(t, err)
	}

	upcoming := svc.Upcoming()
	require.Len(t, upcoming, 5)
	assert.Equal(t, "task 1", upcoming[0].Title)
	assert.Equal(t, "task 5", upcoming[4].Title)
}

func TestLoadAllReplacesWholesale(t *testing.T) {
	records := &fakeStore{selected: []store.Record{
		{"id": "a", "title": "first", "scheduled_for": "2026-08-30T10:00:00Z", "completed": false},
		{"id": "b", "title": "second", "scheduled_for": "2026-08-31T10:00:00Z", "completed": true},
	}}
	svc, _ := newTestService(records, "user-1", time.Now())

	require.NoError(t, svc.LoadAll(context.Background()))
	require.NoError(t, svc.LoadAll(context.Background()))

	reminders := svc.Reminders()
	require.Len(t, reminders, 2)
	assert.Equal(t, "first", reminders[0].Title)
	assert.True(t, reminders[1].Completed)
}
