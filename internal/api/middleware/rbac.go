package middleware

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ageplan/autenticacao/internal/api/metrics"
	"github.com/ageplan/autenticacao/internal/core/domain"
)

// RequireAuthority enforces role-based access control: the request passes
// when the principal holds at least one of the allowed authorities. A
// principal with an empty authority set is authenticated but denied here.
func RequireAuthority(allowed ...domain.RoleName) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if hasAnyAuthority(c, allowed) {
				return next(c)
			}
			return deny(c, allowed)
		}
	}
}

// RequireAuthorityOrSelf behaves like RequireAuthority but also lets a
// principal through when the route's id parameter names its own record, so
// users can read and update themselves without an elevated role.
func RequireAuthorityOrSelf(idParam string, allowed ...domain.RoleName) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if hasAnyAuthority(c, allowed) {
				return next(c)
			}
			if id, err := strconv.ParseInt(c.Param(idParam), 10, 64); err == nil {
				if principalID, ok := c.Get("user_id").(int64); ok && principalID == id {
					return next(c)
				}
			}
			return deny(c, allowed)
		}
	}
}

func hasAnyAuthority(c echo.Context, allowed []domain.RoleName) bool {
	authorities, _ := c.Get("authorities").([]string)
	for _, have := range authorities {
		for _, want := range allowed {
			if have == string(want) {
				return true
			}
		}
	}
	return false
}

func deny(c echo.Context, allowed []domain.RoleName) error {
	authority := ""
	if len(allowed) > 0 {
		authority = string(allowed[0])
	}
	metrics.AuthorizationDeniedTotal.WithLabelValues(authority).Inc()
	return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
}
