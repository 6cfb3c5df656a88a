package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/ageplan/autenticacao/internal/core/domain"
	"github.com/ageplan/autenticacao/internal/core/ports"
)

// UserService implements user management and the authentication lookup over
// the user and role repositories.
type UserService struct {
	users  ports.UserRepository
	roles  ports.RoleRepository
	logger zerolog.Logger
}

func NewUserService(users ports.UserRepository, roles ports.RoleRepository, logger zerolog.Logger) *UserService {
	return &UserService{users: users, roles: roles, logger: logger}
}

// Create builds a user from the input with the role set requested by the
// caller. Email and username are checked independently before the write, each
// failure naming its own field; the storage layer's unique indexes back the
// same guarantee up if two creates race past these checks.
func (s *UserService) Create(ctx context.Context, input ports.UserInput) (*ports.UserView, error) {
	if err := s.checkUnique(ctx, input.Email, input.Username, 0); err != nil {
		return nil, err
	}

	user := domain.NewUser(input.FullName, input.Username, input.Email)
	user.Department = input.Department
	user.Specialty = input.Specialty

	roles, err := s.resolveRoles(ctx, input.Roles)
	if err != nil {
		return nil, err
	}
	for _, r := range roles {
		user.AddRole(r)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hash)

	created, err := s.users.Create(ctx, user)
	if err != nil {
		s.logger.Error().Err(err).Str("username", input.Username).Msg("failed to create user")
		return nil, err
	}

	s.logger.Info().Int64("user_id", created.ID).Str("username", created.Username).Msg("user created")
	return toView(created), nil
}

// Register is self-registration: whatever role set the caller supplied is
// disregarded and the registry's default role is forced onto the new user.
// The default role must have been provisioned before registration can
// succeed.
func (s *UserService) Register(ctx context.Context, input ports.UserInput) (*ports.UserView, error) {
	if err := s.checkUnique(ctx, input.Email, input.Username, 0); err != nil {
		return nil, err
	}

	defaultRole, err := s.roles.FindByName(ctx, domain.DefaultRole)
	if err != nil {
		if errors.Is(err, domain.ErrRoleNotFound) {
			return nil, fmt.Errorf("default role %s not provisioned: %w", domain.DefaultRole, domain.ErrRoleNotFound)
		}
		return nil, err
	}

	user := domain.NewUser(input.FullName, input.Username, input.Email)
	user.AddRole(*defaultRole)

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hash)

	created, err := s.users.Create(ctx, user)
	if err != nil {
		s.logger.Error().Err(err).Str("username", input.Username).Msg("failed to register user")
		return nil, err
	}

	s.logger.Info().Int64("user_id", created.ID).Str("username", created.Username).Msg("user registered")
	return toView(created), nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*ports.UserView, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, userNotFound(err, id)
	}
	return toView(user), nil
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*ports.UserView, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, fmt.Errorf("user %s: %w", username, domain.ErrUserNotFound)
		}
		return nil, err
	}
	return toView(user), nil
}

func (s *UserService) List(ctx context.Context, page ports.PageRequest) (*ports.UserPageView, error) {
	result, err := s.users.FindAll(ctx, page)
	if err != nil {
		return nil, err
	}

	items := make([]ports.UserView, len(result.Items))
	for i := range result.Items {
		items[i] = *toView(&result.Items[i])
	}
	return &ports.UserPageView{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		Size:       result.Size,
		TotalPages: result.TotalPages,
	}, nil
}

// Update is a full-record replace of name, username, email and role set. The
// uniqueness checks exclude the record itself, so a user may keep its own
// email without conflict. The password is intentionally left unchanged. A nil
// role list means the field was absent from the payload and the current role
// set is kept; an explicit empty list replaces it with nothing.
func (s *UserService) Update(ctx context.Context, id int64, input ports.UserInput) (*ports.UserView, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, userNotFound(err, id)
	}

	if err := s.checkUnique(ctx, input.Email, input.Username, id); err != nil {
		return nil, err
	}

	if input.Roles != nil {
		roles, err := s.resolveRoles(ctx, input.Roles)
		if err != nil {
			return nil, err
		}
		user.Roles = nil
		for _, r := range roles {
			user.AddRole(r)
		}
	}

	user.FullName = input.FullName
	user.Username = input.Username
	user.Email = input.Email
	user.Department = input.Department
	user.Specialty = input.Specialty

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", id).Msg("failed to update user")
		return nil, err
	}

	s.logger.Info().Int64("user_id", id).Msg("user updated")
	return toView(updated), nil
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	if _, err := s.users.FindByID(ctx, id); err != nil {
		return userNotFound(err, id)
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("user_id", id).Msg("user deleted")
	return nil
}

// AuthenticationLookup returns the full internal record, hash included, for
// the security layer. A missing principal surfaces as ErrPrincipalNotFound,
// distinct from the generic not-found used everywhere else.
func (s *UserService) AuthenticationLookup(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, fmt.Errorf("%s: %w", username, domain.ErrPrincipalNotFound)
		}
		return nil, err
	}
	return user, nil
}

// Authenticate verifies the principal's password and account-status flags.
// Authorization is a separate concern: a user with an empty role set still
// authenticates successfully here.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.AuthenticationLookup(ctx, username)
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.Active() {
		return nil, domain.ErrAccountUnavailable
	}

	return user, nil
}

// userNotFound names the missing record in the not-found message; other
// errors pass through untouched.
func userNotFound(err error, id int64) error {
	if errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("user %d: %w", id, domain.ErrUserNotFound)
	}
	return err
}

// checkUnique runs the two independent pre-write existence checks. exclude
// names a record id to skip (0 to check against all), so updates do not
// collide with themselves.
func (s *UserService) checkUnique(ctx context.Context, email, username string, exclude int64) error {
	inUse, err := s.users.ExistsByEmail(ctx, email, exclude)
	if err != nil {
		return err
	}
	if inUse {
		return domain.ErrEmailInUse
	}

	inUse, err = s.users.ExistsByUsername(ctx, username, exclude)
	if err != nil {
		return err
	}
	if inUse {
		return domain.ErrUsernameInUse
	}
	return nil
}

// resolveRoles looks every requested role name up in the registry. An
// unresolved name fails with a not-found naming the missing role.
func (s *UserService) resolveRoles(ctx context.Context, names []string) ([]domain.Role, error) {
	roles := make([]domain.Role, 0, len(names))
	for _, raw := range names {
		name, err := domain.ParseRoleName(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidRoleName, raw)
		}
		role, err := s.roles.FindByName(ctx, name)
		if err != nil {
			if errors.Is(err, domain.ErrRoleNotFound) {
				return nil, fmt.Errorf("role %s: %w", name, domain.ErrRoleNotFound)
			}
			return nil, err
		}
		roles = append(roles, *role)
	}
	return roles, nil
}

// toView strips the credential hash and projects roles onto their names.
func toView(u *domain.User) *ports.UserView {
	return &ports.UserView{
		ID:         u.ID,
		FullName:   u.FullName,
		Username:   u.Username,
		Email:      u.Email,
		Roles:      u.Authorities(),
		Department: u.Department,
		Specialty:  u.Specialty,
		Enabled:    u.Enabled,
	}
}
