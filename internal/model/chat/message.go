package chat

import (
	"time"

	"github.com/nexa-app/nexa/backend/internal/store"
)

// Roles a message can carry.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single conversational turn. Messages are immutable once
// created and ordered by creation time within a conversation.
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Record flattens the message for persistence under the given owner.
func (m Message) Record(ownerID string) store.Record {
	return store.Record{
		"user_id":   ownerID,
		"role":      m.Role,
		"content":   m.Content,
		"timestamp": m.Timestamp.UTC().Format(time.RFC3339Nano),
	}
}

// MessageFromRecord rebuilds a message from a stored row.
func MessageFromRecord(rec store.Record) Message {
	return Message{
		Role:      rec.String("role"),
		Content:   rec.String("content"),
		Timestamp: rec.Time("timestamp"),
	}
}
