package reminder

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/nexa-app/nexa/backend/internal/model/reminder"
	"github.com/nexa-app/nexa/backend/internal/notify"
	"github.com/nexa-app/nexa/backend/internal/session"
	"github.com/nexa-app/nexa/backend/internal/store"
)

var ErrAuthRequired = errors.New("authentication required")

const upcomingLimit = 5

// Service owns the reminder sequence. Unlike the conversation and mood
// managers, local state only changes after a confirmed store write.
type Service struct {
	records  store.RecordStore
	sessions session.Provider
	notifier notify.Notifier
	now      func() time.Time

	mu        sync.Mutex
	reminders []reminder.Reminder
	loading   bool
}

// Option customizes a Service.
type Option func(*Service)

// WithClock overrides the time source used by Upcoming and Overdue.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService wires the reminder manager.
func NewService(records store.RecordStore, sessions session.Provider, notifier notify.Notifier, opts ...Option) *Service {
	s := &Service{
		records:  records,
		sessions: sessions,
		notifier: notifier,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create persists a new reminder and appends it locally. Title and
// schedule validation is a caller-side precondition; the manager only
// requires an identity.
func (s *Service) Create(ctx context.Context, title, description string, scheduledFor time.Time) (reminder.Reminder, error) {
	ownerID, ok := s.sessions.CurrentUserID()
	if !ok {
		s.notifier.Notify(notify.KindError, "Authentication required", "Please log in to create reminders.")
		return reminder.Reminder{}, ErrAuthRequired
	}

	s.setLoading(true)
	defer s.setLoading(false)

	pending := reminder.Reminder{
		Title:        title,
		Description:  description,
		ScheduledFor: scheduledFor,
	}

	stored, err := s.records.Insert(ctx, store.CollectionReminders, pending.Record(ownerID))
	if err != nil {
		log.Printf("[reminder] failed to create: %v", err)
		s.notifier.Notify(notify.KindError, "Error", "Failed to create reminder. Please try again.")
		return reminder.Reminder{}, fmt.Errorf("failed to create reminder: %w", err)
	}

	created := reminder.FromRecord(stored)
	s.mu.Lock()
	s.reminders = append(s.reminders, created)
	s.mu.Unlock()

	s.notifier.Notify(notify.KindSuccess, "Reminder created!", fmt.Sprintf("You'll be reminded about %q", title))
	return created, nil
}

// Toggle persists the completed flag by id and reflects it into local
// state. The id is assumed to be owner-scoped already; on store failure
// nothing changes locally.
func (s *Service) Toggle(ctx context.Context, id string, completed bool) error {
	if err := s.records.Update(ctx, store.CollectionReminders, id, store.Record{"completed": completed}); err != nil {
		log.Printf("[reminder] failed to update %s: %v", id, err)
		s.notifier.Notify(notify.KindError, "Error", "Failed to update reminder.")
		return fmt.Errorf("failed to update reminder: %w", err)
	}

	s.mu.Lock()
	for i := range s.reminders {
		if s.reminders[i].ID == id {
			s.reminders[i].Completed = completed
		}
	}
	s.mu.Unlock()
	return nil
}

// Delete persists the deletion and removes the entry locally.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.records.Delete(ctx, store.CollectionReminders, id); err != nil {
		log.Printf("[reminder] failed to delete %s: %v", id, err)
		s.notifier.Notify(notify.KindError, "Error", "Failed to delete reminder.")
		return fmt.Errorf("failed to delete reminder: %w", err)
	}

	s.mu.Lock()
	kept := s.reminders[:0]
	for _, r := range s.reminders {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	s.reminders = kept
	s.mu.Unlock()

	s.notifier.Notify(notify.KindSuccess, "Reminder deleted", "The reminder has been removed.")
	return nil
}

// LoadAll replaces local state with every stored reminder for the
// identity, ordered by schedule ascending. Without an identity it is a
// no-op.
func (s *Service) LoadAll(ctx context.Context) error {
	ownerID, ok := s.sessions.CurrentUserID()
	if !ok {
		return nil
	}

	records, err := s.records.SelectByOwner(ctx, store.CollectionReminders, ownerID, store.OrderBy{Field: "scheduled_for"}, 0)
	if err != nil {
		log.Printf("[reminder] failed to load: %v", err)
		return fmt.Errorf("failed to load reminders: %w", err)
	}

	reminders := make([]reminder.Reminder, 0, len(records))
	for _, rec := range records {
		reminders = append(reminders, reminder.FromRecord(rec))
	}

	s.mu.Lock()
	s.reminders = reminders
	s.mu.Unlock()
	return nil
}

// Upcoming returns the first 5 non-completed reminders scheduled strictly
// after now, in ascending schedule order.
func (s *Service) Upcoming() []reminder.Reminder {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	var upcoming []reminder.Reminder
	for _, r := range s.reminders {
		if !r.Completed && r.ScheduledFor.After(now) {
			upcoming = append(upcoming, r)
			if len(upcoming) == upcomingLimit {
				break
			}
		}
	}
	return upcoming
}

// Overdue returns every non-completed reminder scheduled at or before now.
// The boundary instant counts as overdue.
func (s *Service) Overdue() []reminder.Reminder {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	var overdue []reminder.Reminder
	for _, r := range s.reminders {
		if !r.Completed && !r.ScheduledFor.After(now) {
			overdue = append(overdue, r)
		}
	}
	return overdue
}

// Reminders returns a copy of the current sequence.
func (s *Service) Reminders() []reminder.Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]reminder.Reminder(nil), s.reminders...)
}

// IsLoading reports whether a create is in flight.
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
