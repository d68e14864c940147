package profile

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/nexa-app/nexa/backend/internal/model/profile"
	"github.com/nexa-app/nexa/backend/internal/notify"
	"github.com/nexa-app/nexa/backend/internal/session"
	"github.com/nexa-app/nexa/backend/internal/store"
)

var ErrAuthRequired = errors.New("authentication required")

// Service loads and saves the user's profile record.
type Service struct {
	records  store.RecordStore
	sessions session.Provider
	notifier notify.Notifier
}

// NewService wires the profile service.
func NewService(records store.RecordStore, sessions session.Provider, notifier notify.Notifier) *Service {
	return &Service{records: records, sessions: sessions, notifier: notifier}
}

// Get returns the identity's profile, or store.ErrNotFound when none has
// been saved yet.
func (s *Service) Get(ctx context.Context) (profile.Profile, error) {
	ownerID, ok := s.sessions.CurrentUserID()
	if !ok {
		return profile.Profile{}, ErrAuthRequired
	}

	records, err := s.records.SelectByOwner(ctx, store.CollectionProfiles, ownerID, store.OrderBy{}, 1)
	if err != nil {
		log.Printf("[profile] failed to load: %v", err)
		return profile.Profile{}, fmt.Errorf("failed to load profile: %w", err)
	}
	if len(records) == 0 {
		return profile.Profile{}, store.ErrNotFound
	}

	return profile.FromRecord(records[0]), nil
}

// SetDisplayName updates the stored display name, creating the profile
// record on first save.
func (s *Service) SetDisplayName(ctx context.Context, displayName string) error {
	ownerID, ok := s.sessions.CurrentUserID()
	if !ok {
		s.notifier.Notify(notify.KindError, "Authentication required", "Please log in to update your profile.")
		return ErrAuthRequired
	}

	existing, err := s.Get(ctx)
	switch {
	case err == nil:
		if err := s.records.Update(ctx, store.CollectionProfiles, existing.ID, store.Record{"display_name": displayName}); err != nil {
			log.Printf("[profile] failed to update: %v", err)
			s.notifier.Notify(notify.KindError, "Error", "Failed to update profile. Please try again.")
			return fmt.Errorf("failed to update profile: %w", err)
		}
	case errors.Is(err, store.ErrNotFound):
		rec := store.Record{"user_id": ownerID, "display_name": displayName}
		if _, err := s.records.Insert(ctx, store.CollectionProfiles, rec); err != nil {
			log.Printf("[profile] failed to create: %v", err)
			s.notifier.Notify(notify.KindError, "Error", "Failed to update profile. Please try again.")
			return fmt.Errorf("failed to create profile: %w", err)
		}
	default:
		return err
	}

	s.notifier.Notify(notify.KindSuccess, "Profile updated", "Your display name has been saved.")
	return nil
}
