package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ageplan/autenticacao/internal/api/handler"
	"github.com/ageplan/autenticacao/internal/api/middleware"
	"github.com/ageplan/autenticacao/internal/core/domain"
	"github.com/ageplan/autenticacao/internal/core/service"
	mongorepo "github.com/ageplan/autenticacao/internal/infrastructure/db/mongo"
	"github.com/ageplan/autenticacao/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("autenticacao"))

	// --- Dependencies ---
	roleRepo := mongorepo.NewRoleRepository(db)
	userRepo := mongorepo.NewUserRepository(db)

	roleService := service.NewRoleService(roleRepo, log)
	userService := service.NewUserService(userRepo, roleRepo, log)

	roleHandler := handler.NewRoleHandler(roleService)
	userHandler := handler.NewUserHandler(userService)

	auth := middleware.BasicAuth(userService, log)

	// --- Public routes ---
	e.POST("/api/usuarios/registro", userHandler.Register)
	e.POST("/api/login", userHandler.Login)
	e.POST("/api/logout", userHandler.Logout)

	// --- User management ---
	users := e.Group("/api/usuarios", auth)
	users.POST("", userHandler.Create, middleware.RequireAuthority(domain.RoleAdmin))
	users.GET("", userHandler.List, middleware.RequireAuthority(domain.RoleAdmin, domain.RoleInstructor))
	users.GET("/me", userHandler.Me)
	users.GET("/:id", userHandler.Get, middleware.RequireAuthorityOrSelf("id", domain.RoleAdmin, domain.RoleInstructor))
	users.PUT("/:id", userHandler.Update, middleware.RequireAuthorityOrSelf("id", domain.RoleAdmin))
	users.DELETE("/:id", userHandler.Delete, middleware.RequireAuthority(domain.RoleAdmin))

	// --- Role registry (authenticated) ---
	roles := e.Group("/api/papeis", auth)
	roles.POST("", roleHandler.Create)
	roles.GET("", roleHandler.List)
	roles.GET("/:id", roleHandler.Get)
	roles.PUT("/:id", roleHandler.Update)
	roles.DELETE("/:id", roleHandler.Delete)

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e
}
