// Package bootstrap provisions the baseline data the service needs before
// it can answer requests: the closed role set, and optionally an initial
// administrator account. Every step is idempotent so it can run on each
// startup.
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/ageplan/autenticacao/internal/core/domain"
	"github.com/ageplan/autenticacao/internal/core/ports"
	"github.com/ageplan/autenticacao/internal/infrastructure/config"
)

type Bootstrapper struct {
	roles  ports.RoleRepository
	users  ports.UserRepository
	cfg    config.BootstrapConfig
	logger zerolog.Logger
}

func New(roles ports.RoleRepository, users ports.UserRepository, cfg config.BootstrapConfig, logger zerolog.Logger) *Bootstrapper {
	return &Bootstrapper{roles: roles, users: users, cfg: cfg, logger: logger}
}

// Run seeds the role registry and, when an admin password is configured,
// the initial administrator account.
func (b *Bootstrapper) Run(ctx context.Context) error {
	if err := b.seedRoles(ctx); err != nil {
		return err
	}
	return b.seedAdmin(ctx)
}

func (b *Bootstrapper) seedRoles(ctx context.Context) error {
	for _, name := range []domain.RoleName{domain.RoleAdmin, domain.RoleInstructor, domain.RoleStudent} {
		_, err := b.roles.Create(ctx, &domain.Role{Name: name})
		switch {
		case err == nil:
			b.logger.Info().Str("role", string(name)).Msg("role provisioned")
		case errors.Is(err, domain.ErrRoleExists):
			// Already there, nothing to do.
		default:
			return fmt.Errorf("bootstrap: seed role %s: %w", name, err)
		}
	}
	return nil
}

func (b *Bootstrapper) seedAdmin(ctx context.Context) error {
	if b.cfg.AdminPassword == "" {
		b.logger.Debug().Msg("bootstrap admin disabled: no password configured")
		return nil
	}

	_, err := b.users.FindByUsername(ctx, b.cfg.AdminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("bootstrap: look up admin: %w", err)
	}

	admin, err := b.roles.FindByName(ctx, domain.RoleAdmin)
	if err != nil {
		return fmt.Errorf("bootstrap: resolve %s: %w", domain.RoleAdmin, err)
	}
	instructor, err := b.roles.FindByName(ctx, domain.RoleInstructor)
	if err != nil {
		return fmt.Errorf("bootstrap: resolve %s: %w", domain.RoleInstructor, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(b.cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("bootstrap: hash admin password: %w", err)
	}

	user := domain.NewAdministrator(b.cfg.AdminFullName, b.cfg.AdminUsername, b.cfg.AdminEmail, b.cfg.AdminDepartment, *admin, *instructor)
	user.PasswordHash = string(hash)

	if _, err := b.users.Create(ctx, user); err != nil {
		return fmt.Errorf("bootstrap: create admin: %w", err)
	}

	b.logger.Info().Str("username", user.Username).Msg("administrator account provisioned")
	return nil
}
