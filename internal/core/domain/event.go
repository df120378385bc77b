package domain

import "time"

// EventStatus is the lifecycle state of an event.
type EventStatus string

const (
	EventScheduled EventStatus = "scheduled"
	EventCancelled EventStatus = "cancelled"
)

// Event is an organised happening owned by its creator. Other users may join
// or leave the participant list while the event is scheduled.
type Event struct {
	ID           string      `json:"id" bson:"_id,omitempty"`
	Title        string      `json:"title" bson:"title"`
	Description  string      `json:"description,omitempty" bson:"description,omitempty"`
	Location     string      `json:"location,omitempty" bson:"location,omitempty"`
	OwnerID      string      `json:"owner_id" bson:"owner_id"`
	Participants []string    `json:"participants" bson:"participants"`
	Status       EventStatus `json:"status" bson:"status"`
	StartsAt     time.Time   `json:"starts_at" bson:"starts_at"`
	EndsAt       time.Time   `json:"ends_at" bson:"ends_at"`
	CreatedAt    time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at" bson:"updated_at"`
}

// HasParticipant reports whether userID is on the participant list.
func (e *Event) HasParticipant(userID string) bool {
	for _, p := range e.Participants {
		if p == userID {
			return true
		}
	}
	return false
}
