package handler

import "time"

// --- Request / Response types ---

type createEventRequest struct {
	Title       string    `json:"title"       validate:"required,max=200"`
	Description string    `json:"description" validate:"omitempty,max=2000"`
	Location    string    `json:"location"    validate:"omitempty,max=200"`
	StartsAt    time.Time `json:"starts_at"   validate:"required"`
	EndsAt      time.Time `json:"ends_at"     validate:"required"`
}

type updateEventRequest struct {
	Title       *string    `json:"title"       validate:"omitempty,max=200"`
	Description *string    `json:"description" validate:"omitempty,max=2000"`
	Location    *string    `json:"location"    validate:"omitempty,max=200"`
	Status      *string    `json:"status"      validate:"omitempty,oneof=scheduled cancelled"`
	StartsAt    *time.Time `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
}

type eventResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Location     string    `json:"location,omitempty"`
	OwnerID      string    `json:"owner_id"`
	Participants []string  `json:"participants"`
	Status       string    `json:"status"`
	StartsAt     time.Time `json:"starts_at"`
	EndsAt       time.Time `json:"ends_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type listEventsResponse struct {
	Items      []eventResponse `json:"items"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}
