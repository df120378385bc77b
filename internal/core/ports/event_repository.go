package ports

import (
	"context"
	"time"

	"github.com/eventdesk/event-management-api/internal/core/domain"
)

// ListEventsFilter carries all query parameters for listing events.
type ListEventsFilter struct {
	OwnerID       string    // optional: only events created by this user
	ParticipantID string    // optional: only events this user joined
	Status        string    // optional: "scheduled" or "cancelled"
	From          time.Time // optional: starts_at >= From
	To            time.Time // optional: starts_at <= To
	Page          int       // 1-based
	Limit         int       // capped at 100 by the service
}

// EventRepository defines persistence operations for events. Participant
// changes are atomic per document so concurrent join/leave calls cannot
// produce duplicate entries.
type EventRepository interface {
	Create(ctx context.Context, e *domain.Event) (*domain.Event, error)
	FindByID(ctx context.Context, id string) (*domain.Event, error)
	Update(ctx context.Context, e *domain.Event) (*domain.Event, error)
	Delete(ctx context.Context, id string) error
	AddParticipant(ctx context.Context, id, userID string) (*domain.Event, error)
	RemoveParticipant(ctx context.Context, id, userID string) (*domain.Event, error)
	List(ctx context.Context, filter ListEventsFilter) ([]*domain.Event, int64, error)
}
