package middleware

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ageplan/autenticacao/internal/core/domain"
	"github.com/ageplan/autenticacao/internal/core/ports"
)

type stubUserService struct {
	authenticateFn func(ctx context.Context, username, password string) (*domain.User, error)
}

func (s *stubUserService) Create(context.Context, ports.UserInput) (*ports.UserView, error) {
	return nil, nil
}
func (s *stubUserService) Register(context.Context, ports.UserInput) (*ports.UserView, error) {
	return nil, nil
}
func (s *stubUserService) Get(context.Context, int64) (*ports.UserView, error) { return nil, nil }
func (s *stubUserService) GetByUsername(context.Context, string) (*ports.UserView, error) {
	return nil, nil
}
func (s *stubUserService) List(context.Context, ports.PageRequest) (*ports.UserPageView, error) {
	return nil, nil
}
func (s *stubUserService) Update(context.Context, int64, ports.UserInput) (*ports.UserView, error) {
	return nil, nil
}
func (s *stubUserService) Delete(context.Context, int64) error { return nil }
func (s *stubUserService) AuthenticationLookup(context.Context, string) (*domain.User, error) {
	return nil, nil
}
func (s *stubUserService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	return s.authenticateFn(ctx, username, password)
}

func basicHeader(username, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
}

func TestBasicAuth_InjectsPrincipal(t *testing.T) {
	e := echo.New()
	stub := &stubUserService{
		authenticateFn: func(_ context.Context, username, password string) (*domain.User, error) {
			if username != "ana" || password != "s3cret" {
				t.Fatalf("unexpected credentials: %s %s", username, password)
			}
			u := domain.NewUser("Ana Souza", "ana", "ana@example.com")
			u.ID = 3
			u.AddRole(domain.Role{ID: 1, Name: domain.RoleAdmin})
			return u, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", basicHeader("ana", "s3cret"))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := BasicAuth(stub, zerolog.Nop())
	handler := mw(func(c echo.Context) error {
		if c.Get("username") != "ana" {
			t.Fatalf("expected username in context, got %v", c.Get("username"))
		}
		if id, _ := c.Get("user_id").(int64); id != 3 {
			t.Fatalf("expected user_id 3, got %v", c.Get("user_id"))
		}
		authorities, _ := c.Get("authorities").([]string)
		if len(authorities) != 1 || authorities[0] != "ADMIN" {
			t.Fatalf("unexpected authorities: %v", authorities)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestBasicAuth_MissingHeader(t *testing.T) {
	e := echo.New()
	stub := &stubUserService{
		authenticateFn: func(context.Context, string, string) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := BasicAuth(stub, zerolog.Nop())
	err := mw(func(c echo.Context) error { return nil })(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

// TestBasicAuth_UniformFailureBody checks that unknown-user and bad-password
// failures are indistinguishable on the wire.
func TestBasicAuth_UniformFailureBody(t *testing.T) {
	e := echo.New()

	responses := make([]string, 0, 2)
	for _, failure := range []error{domain.ErrPrincipalNotFound, domain.ErrInvalidCredentials} {
		failure := failure
		stub := &stubUserService{
			authenticateFn: func(context.Context, string, string) (*domain.User, error) {
				return nil, failure
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", basicHeader("ghost", "pw"))
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := BasicAuth(stub, zerolog.Nop())(func(c echo.Context) error { return nil })(c)
		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 HTTPError, got %v", err)
		}
		responses = append(responses, he.Error())
	}

	if responses[0] != responses[1] {
		t.Fatalf("failure responses must not leak which usernames exist: %q vs %q", responses[0], responses[1])
	}
}
