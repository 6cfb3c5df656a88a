package domain

import "errors"

// RoleName identifies one of the fixed role kinds recognised by the system.
type RoleName string

const (
	RoleAdmin      RoleName = "ADMIN"
	RoleInstructor RoleName = "INSTRUTOR"
	RoleStudent    RoleName = "ALUNO"
)

// DefaultRole is the role forced onto every self-registered user.
const DefaultRole = RoleStudent

var ErrRoleNotFound = errors.New("role not found")
var ErrRoleExists = errors.New("role already exists")
var ErrInvalidRoleName = errors.New("invalid role name")

// Valid reports whether the name belongs to the closed role set.
func (n RoleName) Valid() bool {
	switch n {
	case RoleAdmin, RoleInstructor, RoleStudent:
		return true
	}
	return false
}

// ParseRoleName converts a raw string into a RoleName, rejecting anything
// outside the closed set.
func ParseRoleName(s string) (RoleName, error) {
	n := RoleName(s)
	if !n.Valid() {
		return "", ErrInvalidRoleName
	}
	return n, nil
}

// Role is a named permission bucket assignable to users. The name doubles
// as the authority token consumed by the authorization layer.
type Role struct {
	ID   int64    `json:"id" bson:"_id"`
	Name RoleName `json:"name" bson:"name"`
}
