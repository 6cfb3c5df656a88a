package ports

import (
	"context"

	"github.com/ageplan/autenticacao/internal/core/domain"
)

// UserInput carries the write-side fields for creating or updating a user.
// Roles holds role names to be resolved against the role registry; on update
// a nil slice means the field was absent and the current role set is kept,
// while an explicit empty slice replaces it.
type UserInput struct {
	FullName   string
	Username   string
	Email      string
	Password   string
	Roles      []string
	Department string
	Specialty  string
}

// UserView is the public projection of a user: everything a caller may see,
// and never the password hash.
type UserView struct {
	ID         int64    `json:"id"`
	FullName   string   `json:"full_name"`
	Username   string   `json:"username"`
	Email      string   `json:"email"`
	Roles      []string `json:"roles"`
	Department string   `json:"department,omitempty"`
	Specialty  string   `json:"specialty,omitempty"`
	Enabled    bool     `json:"enabled"`
}

// UserPageView is one page of public user projections.
type UserPageView struct {
	Items      []UserView `json:"content"`
	Total      int64      `json:"total_elements"`
	Page       int        `json:"page"`
	Size       int        `json:"size"`
	TotalPages int        `json:"total_pages"`
}

// UserService orchestrates user management and the authentication lookup.
type UserService interface {
	Create(ctx context.Context, input UserInput) (*UserView, error)
	Register(ctx context.Context, input UserInput) (*UserView, error)
	Get(ctx context.Context, id int64) (*UserView, error)
	GetByUsername(ctx context.Context, username string) (*UserView, error)
	List(ctx context.Context, page PageRequest) (*UserPageView, error)
	Update(ctx context.Context, id int64, input UserInput) (*UserView, error)
	Delete(ctx context.Context, id int64) error

	// AuthenticationLookup returns the full internal record, hash included.
	// It is consumed only by the security layer; absence surfaces as
	// domain.ErrPrincipalNotFound, never the generic not-found.
	AuthenticationLookup(ctx context.Context, username string) (*domain.User, error)

	// Authenticate resolves the principal and verifies the password and the
	// account-status flags.
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
}
