// Package metrics defines and registers all custom Prometheus metrics for
// the authentication API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ageplan/autenticacao/internal/core/domain"
)

const namespace = "autenticacao"

// LoginsTotal counts authentication attempts through the security layer.
// Label:
//   - outcome: "success", "unknown_user", "bad_password", "account_unavailable"
//
// The per-outcome split keeps "no such user" and "bad password" apart in
// metrics even though the HTTP response is identical for both.
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of authentication attempts, by outcome.",
	},
	[]string{"outcome"},
)

// LoginOutcome classifies an authentication failure into the outcome label
// consumed by LoginsTotal. Lives next to the counter so every ingestion path
// uses the same label values.
func LoginOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrPrincipalNotFound):
		return "unknown_user"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "bad_password"
	case errors.Is(err, domain.ErrAccountUnavailable):
		return "account_unavailable"
	default:
		return "error"
	}
}

// UsersCreatedTotal counts users created through either write path.
// Label:
//   - path: "admin" (administrative create) or "registration" (self-service)
var UsersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of users created, by creation path.",
	},
	[]string{"path"},
)

// AuthorizationDeniedTotal counts requests rejected by the role gate.
// Label:
//   - authority: the first authority the route required
var AuthorizationDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authorization_denied_total",
		Help:      "Total number of requests denied by role-based authorization.",
	},
	[]string{"authority"},
)
