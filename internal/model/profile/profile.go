package profile

import (
	"github.com/nexa-app/nexa/backend/internal/store"
)

// Profile holds the user-editable account details.
type Profile struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// FromRecord rebuilds a profile from a stored row.
func FromRecord(rec store.Record) Profile {
	return Profile{
		ID:          rec.String("id"),
		DisplayName: rec.String("display_name"),
	}
}
