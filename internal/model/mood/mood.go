package mood

import (
	"time"

	"github.com/nexa-app/nexa/backend/internal/store"
)

// Entry is the transient payload submitted when logging a mood. It is not
// stored as-is; the mood service combines it with the companion's response
// before persisting.
type Entry struct {
	Mood        string `json:"mood"`
	Emoji       string `json:"emoji"`
	Description string `json:"description,omitempty"`
}

// Log is the persisted projection of a logged mood. Logs are never mutated.
type Log struct {
	ID          string    `json:"id"`
	Mood        string    `json:"mood"`
	Emoji       string    `json:"emoji"`
	Description string    `json:"description,omitempty"`
	AIResponse  string    `json:"ai_response,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Stats aggregates the in-memory mood history.
type Stats struct {
	TotalEntries   int            `json:"totalEntries"`
	MostCommonMood string         `json:"mostCommonMood"`
	WeeklyAverage  float64        `json:"weeklyAverage"`
	MoodCounts     map[string]int `json:"moodCounts"`
}

// Record flattens an entry plus the companion response for persistence.
func (e Entry) Record(ownerID, aiResponse string) store.Record {
	return store.Record{
		"user_id":     ownerID,
		"mood":        e.Mood,
		"emoji":       e.Emoji,
		"description": e.Description,
		"ai_response": aiResponse,
	}
}

// LogFromRecord rebuilds a mood log from a stored row.
func LogFromRecord(rec store.Record) Log {
	return Log{
		ID:          rec.String("id"),
		Mood:        rec.String("mood"),
		Emoji:       rec.String("emoji"),
		Description: rec.String("description"),
		AIResponse:  rec.String("ai_response"),
		CreatedAt:   rec.Time("created_at"),
	}
}
