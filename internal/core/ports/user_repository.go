package ports

import (
	"context"

	"github.com/ageplan/autenticacao/internal/core/domain"
)

// PageRequest carries pagination parameters passed through opaquely to the
// persistence layer. Sort follows the "field,direction" convention, e.g.
// "username,desc"; an empty sort falls back to the id.
type PageRequest struct {
	Page int
	Size int
	Sort string
}

// UserPage is one page of user records plus the totals needed by clients to
// drive pagination.
type UserPage struct {
	Items      []domain.User
	Total      int64
	Page       int
	Size       int
	TotalPages int
}

// UserRepository defines the interface for user persistence. The exclude
// parameter on the existence checks names a record to skip, so an update can
// keep its own email/username without reporting a conflict; pass 0 to check
// against every record.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindAll(ctx context.Context, page PageRequest) (*UserPage, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
	ExistsByEmail(ctx context.Context, email string, exclude int64) (bool, error)
	ExistsByUsername(ctx context.Context, username string, exclude int64) (bool, error)
}
