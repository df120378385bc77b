package ports

import (
	"context"
	"time"

	"github.com/eventdesk/event-management-api/internal/core/domain"
)

// CreateEventInput carries all data needed to create an event.
type CreateEventInput struct {
	Title       string
	Description string
	Location    string
	StartsAt    time.Time
	EndsAt      time.Time
}

// UpdateEventInput carries the mutable fields of an event. Nil pointers mean
// "leave unchanged". Status moves the event between scheduled and cancelled;
// cancelling closes the event to new participants.
type UpdateEventInput struct {
	Title       *string
	Description *string
	Location    *string
	Status      *string
	StartsAt    *time.Time
	EndsAt      *time.Time
}

// ListEventsResult is returned by List.
type ListEventsResult struct {
	Items      []*domain.Event
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// EventService defines use-case operations for events. Mutations are
// restricted to the owner or an admin; any active user may join or leave a
// scheduled event.
type EventService interface {
	Create(ctx context.Context, actor domain.Identity, input CreateEventInput) (*domain.Event, error)
	Get(ctx context.Context, id string) (*domain.Event, error)
	List(ctx context.Context, filter ListEventsFilter) (*ListEventsResult, error)
	Update(ctx context.Context, actor domain.Identity, id string, input UpdateEventInput) (*domain.Event, error)
	Delete(ctx context.Context, actor domain.Identity, id string) error
	Join(ctx context.Context, actor domain.Identity, id string) (*domain.Event, error)
	Leave(ctx context.Context, actor domain.Identity, id string) (*domain.Event, error)
}
