package reminder

import (
	"time"

	"github.com/nexa-app/nexa/backend/internal/store"
)

// Reminder is a scheduled item owned by a single user. Completed is the
// only mutable field; ScheduledFor is caller-supplied and never recomputed.
type Reminder struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	ScheduledFor time.Time `json:"scheduled_for"`
	Completed    bool      `json:"completed"`
	CreatedAt    time.Time `json:"created_at"`
}

// Record flattens the reminder for persistence under the given owner.
func (r Reminder) Record(ownerID string) store.Record {
	return store.Record{
		"user_id":       ownerID,
		"title":         r.Title,
		"description":   r.Description,
		"scheduled_for": r.ScheduledFor.UTC().Format(time.RFC3339Nano),
		"completed":     r.Completed,
	}
}

// FromRecord rebuilds a reminder from a stored row.
func FromRecord(rec store.Record) Reminder {
	return Reminder{
		ID:           rec.String("id"),
		Title:        rec.String("title"),
		Description:  rec.String("description"),
		ScheduledFor: rec.Time("scheduled_for"),
		Completed:    rec.Bool("completed"),
		CreatedAt:    rec.Time("created_at"),
	}
}
