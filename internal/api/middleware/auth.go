package middleware

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ageplan/autenticacao/internal/api/metrics"
	"github.com/ageplan/autenticacao/internal/core/ports"
)

// BasicAuth authenticates the request with HTTP Basic credentials against
// the identity service and injects the principal into context:
//
//	user_id     int64
//	username    string
//	authorities []string
//
// Unknown principal and bad password both come back as the same 401 body so
// the response does not leak which usernames exist; the distinction survives
// in logs and metrics only.
func BasicAuth(users ports.UserService, logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			username, password, ok := basicCredentials(c.Request().Header.Get("Authorization"))
			if !ok {
				c.Response().Header().Set(echo.HeaderWWWAuthenticate, `Basic realm="autenticacao"`)
				return echo.NewHTTPError(http.StatusUnauthorized, "missing credentials")
			}

			user, err := users.Authenticate(c.Request().Context(), username, password)
			if err != nil {
				metrics.LoginsTotal.WithLabelValues(metrics.LoginOutcome(err)).Inc()
				logger.Warn().Str("username", username).Str("reason", metrics.LoginOutcome(err)).Msg("authentication failed")
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
			}

			metrics.LoginsTotal.WithLabelValues("success").Inc()
			c.Set("user_id", user.ID)
			c.Set("username", user.Username)
			c.Set("authorities", user.Authorities())

			return next(c)
		}
	}
}

func basicCredentials(header string) (username, password string, ok bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "basic") {
		return "", "", false
	}

	decoded, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return "", "", false
	}

	username, password, ok = strings.Cut(string(decoded), ":")
	return username, password, ok
}
