package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/eventdesk/event-management-api/internal/api/metrics"
	"github.com/eventdesk/event-management-api/internal/core/domain"
	"github.com/eventdesk/event-management-api/internal/core/ports"
)

type eventService struct {
	repo   ports.EventRepository
	logger zerolog.Logger
}

// NewEventService returns an EventService implementation.
func NewEventService(repo ports.EventRepository, logger zerolog.Logger) ports.EventService {
	return &eventService{repo: repo, logger: logger}
}

func (s *eventService) Create(ctx context.Context, actor domain.Identity, input ports.CreateEventInput) (*domain.Event, error) {
	if input.Title == "" || input.StartsAt.IsZero() || input.EndsAt.IsZero() {
		return nil, domain.ErrValidation
	}
	if !input.EndsAt.After(input.StartsAt) {
		return nil, domain.ErrValidation
	}

	now := time.Now().UTC()
	event := &domain.Event{
		Title:        input.Title,
		Description:  input.Description,
		Location:     input.Location,
		OwnerID:      actor.UserID,
		Participants: []string{actor.UserID},
		Status:       domain.EventScheduled,
		StartsAt:     input.StartsAt.UTC(),
		EndsAt:       input.EndsAt.UTC(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create event")
		return nil, err
	}

	metrics.EventsCreatedTotal.Inc()
	s.logger.Info().Str("event_id", created.ID).Str("owner_id", actor.UserID).Msg("event created")
	return created, nil
}

func (s *eventService) Get(ctx context.Context, id string) (*domain.Event, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *eventService) List(ctx context.Context, filter ports.ListEventsFilter) (*ports.ListEventsResult, error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ports.ListEventsResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

func (s *eventService) Update(ctx context.Context, actor domain.Identity, id string, input ports.UpdateEventInput) (*domain.Event, error) {
	event, err := s.authorizeOwner(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, domain.ErrValidation
		}
		event.Title = *input.Title
	}
	if input.Description != nil {
		event.Description = *input.Description
	}
	if input.Location != nil {
		event.Location = *input.Location
	}
	if input.Status != nil {
		status := domain.EventStatus(*input.Status)
		if status != domain.EventScheduled && status != domain.EventCancelled {
			return nil, domain.ErrValidation
		}
		event.Status = status
	}
	if input.StartsAt != nil {
		event.StartsAt = input.StartsAt.UTC()
	}
	if input.EndsAt != nil {
		event.EndsAt = input.EndsAt.UTC()
	}
	if !event.EndsAt.After(event.StartsAt) {
		return nil, domain.ErrValidation
	}
	event.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, event)
}

func (s *eventService) Delete(ctx context.Context, actor domain.Identity, id string) error {
	if _, err := s.authorizeOwner(ctx, actor, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("event_id", id).Str("actor", actor.UserID).Msg("event deleted")
	return nil
}

func (s *eventService) Join(ctx context.Context, actor domain.Identity, id string) (*domain.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.Status != domain.EventScheduled {
		return nil, domain.ErrValidation
	}
	if event.HasParticipant(actor.UserID) {
		return event, nil
	}
	return s.repo.AddParticipant(ctx, id, actor.UserID)
}

func (s *eventService) Leave(ctx context.Context, actor domain.Identity, id string) (*domain.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// The owner stays on the participant list for the event's lifetime.
	if event.OwnerID == actor.UserID {
		return nil, domain.ErrValidation
	}
	if !event.HasParticipant(actor.UserID) {
		return event, nil
	}
	return s.repo.RemoveParticipant(ctx, id, actor.UserID)
}

// authorizeOwner loads the event and checks that the actor owns it or is an
// admin.
func (s *eventService) authorizeOwner(ctx context.Context, actor domain.Identity, id string) (*domain.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.OwnerID != actor.UserID && !actor.HasRole(domain.RoleAdmin) {
		return nil, domain.ErrForbidden
	}
	return event, nil
}
