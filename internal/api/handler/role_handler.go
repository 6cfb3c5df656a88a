package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ageplan/autenticacao/internal/core/domain"
	"github.com/ageplan/autenticacao/internal/core/ports"
)

// RoleHandler handles HTTP requests for the role registry.
type RoleHandler struct {
	service ports.RoleService
}

func NewRoleHandler(service ports.RoleService) *RoleHandler {
	return &RoleHandler{service: service}
}

// Create handles POST /api/papeis.
//
// @Summary      Register a role
// @Tags         papeis
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        body  body      roleRequest  true  "Role name"
// @Success      201   {object}  roleResponse
// @Failure      400   {object}  statusMessage
// @Router       /api/papeis [post]
func (h *RoleHandler) Create(c echo.Context) error {
	var req roleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, statusMessage{Status: http.StatusBadRequest, Message: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, statusMessage{Status: http.StatusBadRequest, Message: err.Error()})
	}

	role, err := h.service.Create(c.Request().Context(), domain.RoleName(req.Name))
	if err != nil {
		return roleError(c, err)
	}

	c.Response().Header().Set(echo.HeaderLocation, "/api/papeis/"+strconv.FormatInt(role.ID, 10))
	return c.JSON(http.StatusCreated, toRoleResponse(role))
}

// Get handles GET /api/papeis/:id.
//
// @Summary      Fetch a role by id
// @Tags         papeis
// @Produce      json
// @Security     BasicAuth
// @Param        id   path      int  true  "Role id"
// @Success      200  {object}  roleResponse
// @Failure      404  {object}  statusMessage
// @Router       /api/papeis/{id} [get]
func (h *RoleHandler) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, statusMessage{Status: http.StatusBadRequest, Message: "invalid id"})
	}

	role, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return roleError(c, err)
	}
	return c.JSON(http.StatusOK, toRoleResponse(role))
}

// List handles GET /api/papeis.
//
// @Summary      List all roles
// @Tags         papeis
// @Produce      json
// @Security     BasicAuth
// @Success      200  {array}  roleResponse
// @Router       /api/papeis [get]
func (h *RoleHandler) List(c echo.Context) error {
	roles, err := h.service.List(c.Request().Context())
	if err != nil {
		return roleError(c, err)
	}

	out := make([]roleResponse, 0, len(roles))
	for i := range roles {
		out = append(out, toRoleResponse(&roles[i]))
	}
	return c.JSON(http.StatusOK, out)
}

// Update handles PUT /api/papeis/:id.
//
// @Summary      Rename a role
// @Tags         papeis
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        id    path      int          true  "Role id"
// @Param        body  body      roleRequest  true  "New role name"
// @Success      200   {object}  roleResponse
// @Failure      400   {object}  statusMessage
// @Failure      404   {object}  statusMessage
// @Router       /api/papeis/{id} [put]
func (h *RoleHandler) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, statusMessage{Status: http.StatusBadRequest, Message: "invalid id"})
	}

	var req roleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, statusMessage{Status: http.StatusBadRequest, Message: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, statusMessage{Status: http.StatusBadRequest, Message: err.Error()})
	}

	role, err := h.service.Update(c.Request().Context(), id, domain.RoleName(req.Name))
	if err != nil {
		return roleError(c, err)
	}
	return c.JSON(http.StatusOK, toRoleResponse(role))
}

// Delete handles DELETE /api/papeis/:id. Users already holding the role
// keep it; only the registry entry goes away.
//
// @Summary      Delete a role
// @Tags         papeis
// @Security     BasicAuth
// @Param        id  path  int  true  "Role id"
// @Success      204
// @Failure      404  {object}  statusMessage
// @Router       /api/papeis/{id} [delete]
func (h *RoleHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, statusMessage{Status: http.StatusBadRequest, Message: "invalid id"})
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return roleError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func toRoleResponse(r *domain.Role) roleResponse {
	return roleResponse{ID: r.ID, Name: string(r.Name)}
}

func roleError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrRoleNotFound):
		return c.JSON(http.StatusNotFound, statusMessage{Status: http.StatusNotFound, Message: err.Error()})
	case errors.Is(err, domain.ErrRoleExists), errors.Is(err, domain.ErrInvalidRoleName):
		return c.JSON(http.StatusBadRequest, statusMessage{Status: http.StatusBadRequest, Message: err.Error()})
	}
	return err
}
