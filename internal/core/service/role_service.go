package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ageplan/autenticacao/internal/core/domain"
	"github.com/ageplan/autenticacao/internal/core/ports"
)

// RoleService implements the role registry over a repository.
type RoleService struct {
	repo   ports.RoleRepository
	logger zerolog.Logger
}

func NewRoleService(repo ports.RoleRepository, logger zerolog.Logger) *RoleService {
	return &RoleService{repo: repo, logger: logger}
}

// Create persists a new role. At most one role may exist per name; a second
// create with the same name fails with domain.ErrRoleExists.
func (s *RoleService) Create(ctx context.Context, name domain.RoleName) (*domain.Role, error) {
	if !name.Valid() {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidRoleName, name)
	}

	exists, err := s.repo.ExistsByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrRoleExists
	}

	role, err := s.repo.Create(ctx, &domain.Role{Name: name})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("role_id", role.ID).Str("name", string(role.Name)).Msg("role created")
	return role, nil
}

func (s *RoleService) Get(ctx context.Context, id int64) (*domain.Role, error) {
	role, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, roleNotFound(err, id)
	}
	return role, nil
}

func (s *RoleService) List(ctx context.Context) ([]domain.Role, error) {
	return s.repo.FindAll(ctx)
}

// Update overwrites the role's name. Uniqueness against other roles is not
// re-checked here; the storage layer's unique index still rejects an actual
// collision at write time.
func (s *RoleService) Update(ctx context.Context, id int64, name domain.RoleName) (*domain.Role, error) {
	if !name.Valid() {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidRoleName, name)
	}

	role, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, roleNotFound(err, id)
	}

	role.Name = name
	updated, err := s.repo.Update(ctx, role)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("role_id", id).Str("name", string(name)).Msg("role updated")
	return updated, nil
}

// Delete removes the role by id. Users still holding the role keep it on
// their record; deleting an in-use role is a caller responsibility.
func (s *RoleService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return roleNotFound(err, id)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("role_id", id).Msg("role deleted")
	return nil
}

// roleNotFound names the missing record in the not-found message; other
// errors pass through untouched.
func roleNotFound(err error, id int64) error {
	if errors.Is(err, domain.ErrRoleNotFound) {
		return fmt.Errorf("role %d: %w", id, domain.ErrRoleNotFound)
	}
	return err
}
