package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/eventdesk/event-management-api/internal/core/domain"
	"github.com/eventdesk/event-management-api/internal/core/ports"
)

// AdminHandler handles account management. All routes are behind the ADMIN
// role gate.
type AdminHandler struct {
	userService ports.UserService
}

func NewAdminHandler(userService ports.UserService) *AdminHandler {
	return &AdminHandler{userService: userService}
}

type updateRolesRequest struct {
	Roles []string `json:"roles" validate:"required,min=1,dive,oneof=ADMIN USER"`
}

type listUsersResponse struct {
	Items      []userSummary `json:"items"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int           `json:"total_pages"`
}

// ListUsers returns a page of user accounts.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by status (active|disabled)"
// @Param        role    query     string  false  "Filter by role"
// @Param        page    query     int     false  "Page number (1-based)"
// @Param        limit   query     int     false  "Page size (max 100)"
// @Success      200     {object}  listUsersResponse
// @Failure      401     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.userService.List(c.Request().Context(), ports.ListUsersFilter{
		Status: c.QueryParam("status"),
		Role:   c.QueryParam("role"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return err
	}

	items := make([]userSummary, 0, len(result.Items))
	for _, u := range result.Items {
		items = append(items, toUserSummary(u))
	}
	return c.JSON(http.StatusOK, listUsersResponse{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}

// UpdateRoles replaces a user's role set.
//
// @Summary      Update a user's roles
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "User id"
// @Param        body  body      updateRolesRequest  true  "New role set"
// @Success      200   {object}  userSummary
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /admin/users/{id}/roles [put]
func (h *AdminHandler) UpdateRoles(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateRolesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.UpdateRoles(c.Request().Context(), identity, c.Param("id"), req.Roles)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserSummary(user))
}

// DisableUser soft-disables an account.
//
// @Summary      Disable a user account
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  userSummary
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /admin/users/{id}/disable [post]
func (h *AdminHandler) DisableUser(c echo.Context) error {
	return h.setStatus(c, domain.StatusDisabled)
}

// EnableUser re-enables a previously disabled account.
//
// @Summary      Enable a user account
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  userSummary
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /admin/users/{id}/enable [post]
func (h *AdminHandler) EnableUser(c echo.Context) error {
	return h.setStatus(c, domain.StatusActive)
}

func (h *AdminHandler) setStatus(c echo.Context, status domain.UserStatus) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	user, err := h.userService.SetStatus(c.Request().Context(), identity, c.Param("id"), status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserSummary(user))
}
