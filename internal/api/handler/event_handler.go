package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eventdesk/event-management-api/internal/core/ports"
)

// EventHandler handles CRUD and participation for events.
type EventHandler struct {
	eventService ports.EventService
}

func NewEventHandler(eventService ports.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// Create handles POST /api/events.
//
// @Summary      Create an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createEventRequest  true  "Event details"
// @Success      201   {object}  eventResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /events [post]
func (h *EventHandler) Create(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	event, err := h.eventService.Create(c.Request().Context(), identity, toCreateEventInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toEventResponse(event))
}

// List handles GET /api/events.
//
// @Summary      List events
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        owner_id     query     string  false  "Filter by owner"
// @Param        participant  query     string  false  "Filter by participant"
// @Param        status       query     string  false  "Filter by status (scheduled|cancelled)"
// @Param        from         query     string  false  "starts_at lower bound (RFC 3339)"
// @Param        to           query     string  false  "starts_at upper bound (RFC 3339)"
// @Param        page         query     int     false  "Page number (1-based)"
// @Param        limit        query     int     false  "Page size (max 100)"
// @Success      200          {object}  listEventsResponse
// @Failure      401          {object}  errorResponse
// @Router       /events [get]
func (h *EventHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	filter := ports.ListEventsFilter{
		OwnerID:       c.QueryParam("owner_id"),
		ParticipantID: c.QueryParam("participant"),
		Status:        c.QueryParam("status"),
		Page:          page,
		Limit:         limit,
	}
	if from := c.QueryParam("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid from timestamp")
		}
		filter.From = t
	}
	if to := c.QueryParam("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid to timestamp")
		}
		filter.To = t
	}

	result, err := h.eventService.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListEventsResponse(result))
}

// Get handles GET /api/events/:id.
//
// @Summary      Get an event by id
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Event id"
// @Success      200  {object}  eventResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /events/{id} [get]
func (h *EventHandler) Get(c echo.Context) error {
	event, err := h.eventService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEventResponse(event))
}

// Update handles PUT /api/events/:id. Owner or admin only.
//
// @Summary      Update an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Event id"
// @Param        body  body      updateEventRequest  true  "Fields to update"
// @Success      200   {object}  eventResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /events/{id} [put]
func (h *EventHandler) Update(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	event, err := h.eventService.Update(c.Request().Context(), identity, c.Param("id"), toUpdateEventInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEventResponse(event))
}

// Delete handles DELETE /api/events/:id. Owner or admin only.
//
// @Summary      Delete an event
// @Tags         events
// @Security     BearerAuth
// @Param        id  path  string  true  "Event id"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /events/{id} [delete]
func (h *EventHandler) Delete(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.eventService.Delete(c.Request().Context(), identity, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Join handles POST /api/events/:id/join.
//
// @Summary      Join an event
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Event id"
// @Success      200  {object}  eventResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /events/{id}/join [post]
func (h *EventHandler) Join(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	event, err := h.eventService.Join(c.Request().Context(), identity, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEventResponse(event))
}

// Leave handles POST /api/events/:id/leave.
//
// @Summary      Leave an event
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Event id"
// @Success      200  {object}  eventResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /events/{id}/leave [post]
func (h *EventHandler) Leave(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	event, err := h.eventService.Leave(c.Request().Context(), identity, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEventResponse(event))
}
