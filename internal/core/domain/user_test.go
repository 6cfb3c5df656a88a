package domain

import (
	"errors"
	"testing"
)

func TestAddRole_IgnoresDuplicates(t *testing.T) {
	u := NewUser("Jo Silva", "jo", "jo@example.com")
	admin := Role{ID: 1, Name: RoleAdmin}

	u.AddRole(admin)
	u.AddRole(admin)
	u.AddRole(Role{ID: 9, Name: RoleAdmin}) // same name, different id

	if len(u.Roles) != 1 {
		t.Fatalf("expected a single ADMIN role, got %v", u.Roles)
	}
}

func TestAuthorities_ProjectsRoleNames(t *testing.T) {
	u := NewUser("Jo Silva", "jo", "jo@example.com")
	u.AddRole(Role{ID: 1, Name: RoleAdmin})
	u.AddRole(Role{ID: 2, Name: RoleInstructor})

	got := u.Authorities()
	if len(got) != 2 || got[0] != "ADMIN" || got[1] != "INSTRUTOR" {
		t.Fatalf("unexpected authorities: %v", got)
	}
}

func TestAuthorities_EmptyRoleSet(t *testing.T) {
	u := NewUser("Jo Silva", "jo", "jo@example.com")
	if len(u.Authorities()) != 0 {
		t.Fatalf("expected empty authority set, got %v", u.Authorities())
	}
}

func TestNewAdministrator_AttachesBothRoles(t *testing.T) {
	admin := Role{ID: 1, Name: RoleAdmin}
	instructor := Role{ID: 2, Name: RoleInstructor}

	u := NewAdministrator("Ana Souza", "ana", "ana@example.com", "Financeiro", admin, instructor)
	if !u.HasRole(RoleAdmin) || !u.HasRole(RoleInstructor) {
		t.Fatalf("administrator must hold ADMIN and INSTRUTOR, got %v", u.Roles)
	}
	if u.Department != "Financeiro" {
		t.Fatalf("unexpected department: %q", u.Department)
	}
}

func TestTeachClass_IsACapabilityCheck(t *testing.T) {
	instructor := Role{ID: 2, Name: RoleInstructor}

	teacher := NewInstructor("Ana Souza", "ana", "ana@example.com", "Matemática", instructor)
	if err := teacher.TeachClass("Álgebra"); err != nil {
		t.Fatalf("instructor must be able to teach: %v", err)
	}

	// An administrator teaches because it holds INSTRUTOR, not because of
	// any record subtype.
	admin := NewAdministrator("Zé Lima", "ze", "ze@example.com", "TI", Role{ID: 1, Name: RoleAdmin}, instructor)
	if err := admin.TeachClass("Redes"); err != nil {
		t.Fatalf("administrator with INSTRUTOR must be able to teach: %v", err)
	}

	student := NewUser("Bia Costa", "bia", "bia@example.com")
	student.AddRole(Role{ID: 3, Name: RoleStudent})
	if err := student.TeachClass("História"); !errors.Is(err, ErrMissingRole) {
		t.Fatalf("expected ErrMissingRole, got %v", err)
	}
}

func TestActive_AnyClearedFlagBlocks(t *testing.T) {
	u := NewUser("Jo Silva", "jo", "jo@example.com")
	if !u.Active() {
		t.Fatalf("fresh user must be active")
	}

	u.AccountNonLocked = false
	if u.Active() {
		t.Fatalf("locked account must not be active")
	}
}

func TestParseRoleName(t *testing.T) {
	if _, err := ParseRoleName("ADMIN"); err != nil {
		t.Fatalf("ADMIN must parse: %v", err)
	}
	if _, err := ParseRoleName("MANAGER"); !errors.Is(err, ErrInvalidRoleName) {
		t.Fatalf("expected ErrInvalidRoleName, got %v", err)
	}
}
