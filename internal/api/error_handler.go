package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ageplan/autenticacao/internal/core/domain"
)

// standardError is the envelope for errors that escape the handlers:
// routing failures, authentication rejections, persistence faults.
// Handler-level validation and domain errors use their own smaller
// {status,message} envelope and never reach this path.
type standardError struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Path      string    `json:"path"`
	Message   string    `json:"message"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Passes echo.HTTPError codes and messages through (router 404s,
//     middleware 401/403s, bind failures).
//   - Maps persistence faults to a generic envelope without leaking
//     driver internals.
//   - Logs the real cause of anything unexpected and answers 500.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, standardError{
			Timestamp: time.Now().UTC(),
			Status:    code,
			Error:     http.StatusText(code),
			Path:      c.Request().URL.Path,
			Message:   msg,
		})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrPrincipalNotFound),
		errors.Is(err, domain.ErrAccountUnavailable):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrMissingRole):
		return http.StatusForbidden, err.Error()
	}

	if isDatabaseError(err) {
		log.Error().
			Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("database error")
		return http.StatusBadRequest, "Database exception"
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}

func isDatabaseError(err error) bool {
	var (
		cmdErr   mongo.CommandError
		writeErr mongo.WriteException
	)
	return errors.As(err, &cmdErr) ||
		errors.As(err, &writeErr) ||
		errors.Is(err, mongo.ErrClientDisconnected)
}
