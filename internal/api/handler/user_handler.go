package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ageplan/autenticacao/internal/api/metrics"
	"github.com/ageplan/autenticacao/internal/core/domain"
	"github.com/ageplan/autenticacao/internal/core/ports"
)

// UserHandler handles HTTP requests for user management and registration.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Create handles POST /api/usuarios (admin only).
//
// @Summary      Create a user with an arbitrary role set
// @Tags         usuarios
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        body  body      userRequest  true  "User details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  statusMessage
// @Failure      404   {object}  statusMessage
// @Router       /api/usuarios [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req userRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, statusMessage{Status: http.StatusBadRequest, Message: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, statusMessage{Status: http.StatusBadRequest, Message: err.Error()})
	}
	// The password tag is omitempty so updates can leave it out; the write
	// paths that mint credentials still demand one.
	if req.Password == "" {
		return c.JSON(http.StatusBadRequest, statusMessage{Status: http.StatusBadRequest, Message: "password is required"})
	}

	view, err := h.service.Create(c.Request().Context(), toUserInput(req))
	if err != nil {
		return userError(c, err)
	}

	metrics.UsersCreatedTotal.WithLabelValues("admin").Inc()
	c.Response().Header().Set(echo.HeaderLocation, "/api/usuarios/"+strconv.FormatInt(view.ID, 10))
	return c.JSON(http.StatusCreated, toUserResponse(view))
}

// Register handles POST /api/usuarios/registro (public). The requested role
// set is disregarded; the new user gets the default role.
//
// @Summary      Self-register a new user
// @Tags         usuarios
// @Accept       json
// @Produce      json
// @Param        body  body      userRequest  true  "Registration details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  statusMessage
// @Failure      404   {object}  statusMessage
// @Router       /api/usuarios/registro [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req userRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, statusMessage{Status: http.StatusBadRequest, Message: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, statusMessage{Status: http.StatusBadRequest, Message: err.Error()})
	}
	if req.Password == "" {
		return c.JSON(http.StatusBadRequest, statusMessage{Status: http.StatusBadRequest, Message: "password is required"})
	}

	view, err := h.service.Register(c.Request().Context(), toUserInput(req))
	if err != nil {
		return userError(c, err)
	}

	metrics.UsersCreatedTotal.WithLabelValues("registration").Inc()
	c.Response().Header().Set(echo.HeaderLocation, "/api/usuarios/"+strconv.FormatInt(view.ID, 10))
	return c.JSON(http.StatusCreated, toUserResponse(view))
}

// Get handles GET /api/usuarios/:id (admin, instructor, or the user themself).
//
// @Summary      Fetch a user by id
// @Tags         usuarios
// @Produce      json
// @Security     BasicAuth
// @Param        id   path      int  true  "User id"
// @Success      200  {object}  userResponse
// @Failure      404  {object}  statusMessage
// @Router       /api/usuarios/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, statusMessage{Status: http.StatusBadRequest, Message: "invalid id"})
	}

	view, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return userError(c, err)
	}
	return c.JSON(http.StatusOK, toUserResponse(view))
}

// Me handles GET /api/usuarios/me: the caller's own record, resolved from
// the authenticated principal.
func (h *UserHandler) Me(c echo.Context) error {
	username, err := principalUsername(c)
	if err != nil {
		return err
	}

	view, err := h.service.GetByUsername(c.Request().Context(), username)
	if err != nil {
		return userError(c, err)
	}
	return c.JSON(http.StatusOK, toUserResponse(view))
}

// List handles GET /api/usuarios (admin or instructor) with page/size/sort
// passed through to the persistence layer.
//
// @Summary      List users, paginated
// @Tags         usuarios
// @Produce      json
// @Security     BasicAuth
// @Param        page  query     int     false  "Page index (0-based)"
// @Param        size  query     int     false  "Page size"
// @Param        sort  query     string  false  "Sort, e.g. username,desc"
// @Success      200   {object}  userPageResponse
// @Router       /api/usuarios [get]
func (h *UserHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))

	result, err := h.service.List(c.Request().Context(), ports.PageRequest{
		Page: page,
		Size: size,
		Sort: c.QueryParam("sort"),
	})
	if err != nil {
		return userError(c, err)
	}
	return c.JSON(http.StatusOK, toUserPageResponse(result))
}

// Update handles PUT /api/usuarios/:id (admin, or the user themself). Full
// record replace; the password is never changed here.
//
// @Summary      Update a user
// @Tags         usuarios
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        id    path      int          true  "User id"
// @Param        body  body      userRequest  true  "New user details"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  statusMessage
// @Failure      404   {object}  statusMessage
// @Router       /api/usuarios/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, statusMessage{Status: http.StatusBadRequest, Message: "invalid id"})
	}

	var req userRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, statusMessage{Status: http.StatusBadRequest, Message: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, statusMessage{Status: http.StatusBadRequest, Message: err.Error()})
	}

	view, err := h.service.Update(c.Request().Context(), id, toUserInput(req))
	if err != nil {
		return userError(c, err)
	}
	return c.JSON(http.StatusOK, toUserResponse(view))
}

// Delete handles DELETE /api/usuarios/:id (admin only).
//
// @Summary      Delete a user
// @Tags         usuarios
// @Security     BasicAuth
// @Param        id  path  int  true  "User id"
// @Success      204
// @Failure      404  {object}  statusMessage
// @Router       /api/usuarios/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, statusMessage{Status: http.StatusBadRequest, Message: "invalid id"})
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return userError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Login handles POST /api/login: a form-login style credential check through
// the same authentication path the Basic middleware uses. There is no
// session store behind it; clients keep sending credentials per request.
func (h *UserHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, statusMessage{Status: http.StatusBadRequest, Message: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, statusMessage{Status: http.StatusBadRequest, Message: err.Error()})
	}

	user, err := h.service.Authenticate(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(metrics.LoginOutcome(err)).Inc()
		// Uniform body: do not reveal whether the username exists.
		return c.JSON(http.StatusUnauthorized, statusMessage{Status: http.StatusUnauthorized, Message: "invalid credentials"})
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	view, err := h.service.GetByUsername(c.Request().Context(), user.Username)
	if err != nil {
		return userError(c, err)
	}
	return c.JSON(http.StatusOK, toUserResponse(view))
}

// Logout handles POST /api/logout. Without a server-side session there is
// nothing to invalidate; the endpoint exists so clients have a stable
// logout URL.
func (h *UserHandler) Logout(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "logged out"})
}

// userError maps known domain errors onto the in-handler envelope; anything
// unrecognised goes to the central error handler.
func userError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrRoleNotFound):
		return c.JSON(http.StatusNotFound, statusMessage{Status: http.StatusNotFound, Message: err.Error()})
	case errors.Is(err, domain.ErrEmailInUse),
		errors.Is(err, domain.ErrUsernameInUse),
		errors.Is(err, domain.ErrInvalidRoleName):
		return c.JSON(http.StatusBadRequest, statusMessage{Status: http.StatusBadRequest, Message: err.Error()})
	}
	return err
}
