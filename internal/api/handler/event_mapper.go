package handler

import (
	"github.com/eventdesk/event-management-api/internal/core/domain"
	"github.com/eventdesk/event-management-api/internal/core/ports"
)

// --- Request → Service input ---

func toCreateEventInput(req createEventRequest) ports.CreateEventInput {
	return ports.CreateEventInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
	}
}

func toUpdateEventInput(req updateEventRequest) ports.UpdateEventInput {
	return ports.UpdateEventInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Status:      req.Status,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
	}
}

// --- Domain → HTTP response ---

func toEventResponse(e *domain.Event) eventResponse {
	return eventResponse{
		ID:           e.ID,
		Title:        e.Title,
		Description:  e.Description,
		Location:     e.Location,
		OwnerID:      e.OwnerID,
		Participants: e.Participants,
		Status:       string(e.Status),
		StartsAt:     e.StartsAt,
		EndsAt:       e.EndsAt,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func toListEventsResponse(r *ports.ListEventsResult) listEventsResponse {
	items := make([]eventResponse, 0, len(r.Items))
	for _, e := range r.Items {
		items = append(items, toEventResponse(e))
	}
	return listEventsResponse{
		Items:      items,
		Total:      r.Total,
		Page:       r.Page,
		Limit:      r.Limit,
		TotalPages: r.TotalPages,
	}
}
