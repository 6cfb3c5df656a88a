package ports

import (
	"context"

	"github.com/ageplan/autenticacao/internal/core/domain"
)

// RoleService manages the role registry.
type RoleService interface {
	Create(ctx context.Context, name domain.RoleName) (*domain.Role, error)
	Get(ctx context.Context, id int64) (*domain.Role, error)
	List(ctx context.Context) ([]domain.Role, error)
	Update(ctx context.Context, id int64, name domain.RoleName) (*domain.Role, error)
	Delete(ctx context.Context, id int64) error
}
