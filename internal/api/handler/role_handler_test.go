package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/ageplan/autenticacao/internal/core/domain"
)

type stubRoleService struct {
	createFn func(ctx context.Context, name domain.RoleName) (*domain.Role, error)
	getFn    func(ctx context.Context, id int64) (*domain.Role, error)
	listFn   func(ctx context.Context) ([]domain.Role, error)
	updateFn func(ctx context.Context, id int64, name domain.RoleName) (*domain.Role, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (s *stubRoleService) Create(ctx context.Context, name domain.RoleName) (*domain.Role, error) {
	return s.createFn(ctx, name)
}

func (s *stubRoleService) Get(ctx context.Context, id int64) (*domain.Role, error) {
	return s.getFn(ctx, id)
}

func (s *stubRoleService) List(ctx context.Context) ([]domain.Role, error) {
	return s.listFn(ctx)
}

func (s *stubRoleService) Update(ctx context.Context, id int64, name domain.RoleName) (*domain.Role, error) {
	return s.updateFn(ctx, id, name)
}

func (s *stubRoleService) Delete(ctx context.Context, id int64) error {
	return s.deleteFn(ctx, id)
}

func TestRoleHandler_Create(t *testing.T) {
	svc := &stubRoleService{
		createFn: func(ctx context.Context, name domain.RoleName) (*domain.Role, error) {
			if name != domain.RoleInstructor {
				t.Fatalf("name = %q", name)
			}
			return &domain.Role{ID: 2, Name: name}, nil
		},
	}
	h := NewRoleHandler(svc)

	c, rec := newTestContext(http.MethodPost, "/api/papeis", `{"name":"INSTRUTOR"}`)

	if err := h.Create(c); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	if got := rec.Header().Get(echo.HeaderLocation); got != "/api/papeis/2" {
		t.Errorf("Location = %q", got)
	}

	var resp roleResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != 2 || resp.Name != "INSTRUTOR" {
		t.Errorf("unexpected body: %+v", resp)
	}
}

func TestRoleHandler_Create_Duplicate(t *testing.T) {
	svc := &stubRoleService{
		createFn: func(ctx context.Context, name domain.RoleName) (*domain.Role, error) {
			return nil, domain.ErrRoleExists
		},
	}
	h := NewRoleHandler(svc)

	c, rec := newTestContext(http.MethodPost, "/api/papeis", `{"name":"ADMIN"}`)

	if err := h.Create(c); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestRoleHandler_Create_UnknownName(t *testing.T) {
	h := NewRoleHandler(&stubRoleService{})

	c, rec := newTestContext(http.MethodPost, "/api/papeis", `{"name":"SUPERUSER"}`)

	if err := h.Create(c); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestRoleHandler_Get_NotFound(t *testing.T) {
	svc := &stubRoleService{
		getFn: func(ctx context.Context, id int64) (*domain.Role, error) {
			return nil, fmt.Errorf("role %d: %w", id, domain.ErrRoleNotFound)
		},
	}
	h := NewRoleHandler(svc)

	c, rec := newTestContext(http.MethodGet, "/api/papeis/9", "")
	c.SetParamNames("id")
	c.SetParamValues("9")

	if err := h.Get(c); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}

	var resp statusMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != http.StatusNotFound {
		t.Errorf("envelope status = %d, want 404", resp.Status)
	}
	if !strings.Contains(resp.Message, "9") {
		t.Errorf("envelope message must name the missing id, got %q", resp.Message)
	}
}

func TestRoleHandler_List(t *testing.T) {
	svc := &stubRoleService{
		listFn: func(ctx context.Context) ([]domain.Role, error) {
			return []domain.Role{
				{ID: 1, Name: domain.RoleAdmin},
				{ID: 2, Name: domain.RoleInstructor},
			}, nil
		},
	}
	h := NewRoleHandler(svc)

	c, rec := newTestContext(http.MethodGet, "/api/papeis", "")

	if err := h.List(c); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp []roleResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp) != 2 || resp[0].Name != "ADMIN" {
		t.Errorf("unexpected body: %+v", resp)
	}
}

func TestRoleHandler_Update(t *testing.T) {
	svc := &stubRoleService{
		updateFn: func(ctx context.Context, id int64, name domain.RoleName) (*domain.Role, error) {
			return &domain.Role{ID: id, Name: name}, nil
		},
	}
	h := NewRoleHandler(svc)

	c, rec := newTestContext(http.MethodPut, "/api/papeis/2", `{"name":"ALUNO"}`)
	c.SetParamNames("id")
	c.SetParamValues("2")

	if err := h.Update(c); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestRoleHandler_Delete(t *testing.T) {
	svc := &stubRoleService{
		deleteFn: func(ctx context.Context, id int64) error {
			return nil
		},
	}
	h := NewRoleHandler(svc)

	c, rec := newTestContext(http.MethodDelete, "/api/papeis/3", "")
	c.SetParamNames("id")
	c.SetParamValues("3")

	if err := h.Delete(c); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
}
