package domain

import (
	"errors"
	"time"
)

var ErrUserNotFound = errors.New("user not found")
var ErrEmailInUse = errors.New("email already in use")
var ErrUsernameInUse = errors.New("username already in use")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrAccountUnavailable = errors.New("account is disabled or locked")
var ErrMissingRole = errors.New("user lacks the required role")

// ErrPrincipalNotFound is raised only by the authentication lookup path so the
// security layer can tell "no such user" from "bad password" in logs and
// metrics while keeping the HTTP response identical for both.
var ErrPrincipalNotFound = errors.New("principal not found")

// User models an account in the system. PasswordHash is carried only on the
// internal record used by the authentication path; public views never
// include it.
type User struct {
	ID           int64  `json:"id" bson:"_id"`
	FullName     string `json:"full_name" bson:"full_name"`
	Username     string `json:"username" bson:"username"`
	Email        string `json:"email" bson:"email"`
	PasswordHash string `json:"-" bson:"password_hash"`
	Roles        []Role `json:"roles" bson:"roles"`

	// Optional attributes carried by specialised accounts. The distinction
	// between an administrator and an instructor is role membership, not a
	// record subtype.
	Department string `json:"department,omitempty" bson:"department,omitempty"`
	Specialty  string `json:"specialty,omitempty" bson:"specialty,omitempty"`

	AccountNonExpired     bool `json:"account_non_expired" bson:"account_non_expired"`
	AccountNonLocked      bool `json:"account_non_locked" bson:"account_non_locked"`
	CredentialsNonExpired bool `json:"credentials_non_expired" bson:"credentials_non_expired"`
	Enabled               bool `json:"enabled" bson:"enabled"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// NewUser returns a User with all account-status flags at their defaults.
func NewUser(fullName, username, email string) *User {
	return &User{
		FullName:              fullName,
		Username:              username,
		Email:                 email,
		AccountNonExpired:     true,
		AccountNonLocked:      true,
		CredentialsNonExpired: true,
		Enabled:               true,
	}
}

// NewAdministrator builds an administrator account: both the ADMIN and
// INSTRUTOR roles come pre-attached, so an administrator can also do
// everything an instructor can.
func NewAdministrator(fullName, username, email, department string, admin, instructor Role) *User {
	u := NewUser(fullName, username, email)
	u.Department = department
	u.AddRole(admin)
	u.AddRole(instructor)
	return u
}

// NewInstructor builds an instructor account with the INSTRUTOR role attached.
func NewInstructor(fullName, username, email, specialty string, instructor Role) *User {
	u := NewUser(fullName, username, email)
	u.Specialty = specialty
	u.AddRole(instructor)
	return u
}

// AddRole attaches a role to the user. Duplicates (by name) are ignored, so
// the role set never holds the same role twice.
func (u *User) AddRole(role Role) {
	if u.HasRole(role.Name) {
		return
	}
	u.Roles = append(u.Roles, role)
}

// RemoveRole detaches the role with the given name, if present.
func (u *User) RemoveRole(name RoleName) {
	for i, r := range u.Roles {
		if r.Name == name {
			u.Roles = append(u.Roles[:i], u.Roles[i+1:]...)
			return
		}
	}
}

// HasRole reports whether the user holds the named role.
func (u *User) HasRole(name RoleName) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}

// Authorities projects the role set onto authority tokens, one per role,
// using the role's canonical name verbatim. An empty role set yields an
// empty authority set: authentication may still succeed but every
// role-gated endpoint denies access.
func (u *User) Authorities() []string {
	out := make([]string, len(u.Roles))
	for i, r := range u.Roles {
		out[i] = string(r.Name)
	}
	return out
}

// Active reports whether the account may authenticate: every status flag
// must still be true.
func (u *User) Active() bool {
	return u.Enabled && u.AccountNonExpired && u.AccountNonLocked && u.CredentialsNonExpired
}

// TeachClass is a role-gated capability: only holders of the INSTRUTOR role
// may teach. This is a membership check at call time, not a record subtype;
// the same record may hold several role-derived behaviours.
func (u *User) TeachClass(subject string) error {
	if subject == "" {
		return errors.New("subject is required")
	}
	if !u.HasRole(RoleInstructor) {
		return ErrMissingRole
	}
	return nil
}
