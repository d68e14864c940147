package store

import (
	"context"
	"errors"
	"time"
)

// Collection names used by the companion services.
const (
	CollectionChatHistory = "chat_history"
	CollectionMoodLogs    = "mood_logs"
	CollectionReminders   = "reminders"
	CollectionProfiles    = "profiles"
)

var (
	ErrNotFound = errors.New("record not found")
)

// Record is a flattened row as exchanged with the record store. Values are
// strings, bools and RFC3339 timestamps; the store assigns "id" and
// "created_at" on insert when absent.
type Record map[string]any

// RecordStore is the durable CRUD contract consumed by the services. Every
// read is scoped to an owner identity; update and delete address a record
// by id, which is assumed to be owner-scoped already.
type RecordStore interface {
	Insert(ctx context.Context, collection string, rec Record) (Record, error)
	SelectByOwner(ctx context.Context, collection, ownerID string, order OrderBy, limit int) ([]Record, error)
	Update(ctx context.Context, collection, id string, patch Record) error
	Delete(ctx context.Context, collection, id string) error
}

// OrderBy names the record field query results are sorted on.
type OrderBy struct {
	Field      string
	Descending bool
}

// String reads a string field, returning "" when absent or mistyped.
func (r Record) String(key string) string {
	if v, ok := r[key].(string); ok {
		return v
	}
	return ""
}

// Bool reads a bool field, returning false when absent or mistyped.
func (r Record) Bool(key string) bool {
	if v, ok := r[key].(bool); ok {
		return v
	}
	return false
}

// Time reads a timestamp field stored either as time.Time or as an RFC3339
// string. The zero time is returned when the field is absent or unparsable.
func (r Record) Time(key string) time.Time {
	switch v := r[key].(type) {
	case time.Time:
		return v
	case string:
		if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
			return t
		}
	}
	return time.Time{}
}
