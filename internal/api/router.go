package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/musitech/crm-api/internal/api/handler"
	"github.com/musitech/crm-api/internal/api/middleware"
	"github.com/musitech/crm-api/internal/core/domain"
	"github.com/musitech/crm-api/internal/core/ports"
	"github.com/musitech/crm-api/internal/core/token"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// All application routes live under /api; health probes and metrics sit at
// the root.
func NewRouter(
	authService ports.AuthService,
	statusService ports.StatusService,
	codec *token.Codec,
	corsOrigins []string,
	db *mongo.Database,
	rdb *redis.Client,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     corsOrigins,
		AllowCredentials: true,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
	}))
	e.Use(echoprometheus.NewMiddleware("crm"))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(authService)
	statusHandler := handler.NewStatusHandler(statusService)
	authMiddleware := middleware.Auth(codec, authService)

	// --- API routes ---
	api := e.Group("/api")
	api.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "Hello World"})
	})

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/profile", authHandler.Profile, authMiddleware)
	auth.GET("/me", authHandler.Profile, authMiddleware)
	auth.POST("/create-admin", authHandler.CreateAdmin)

	api.POST("/status", statusHandler.Create)
	api.GET("/status", statusHandler.List)

	admin := api.Group("/admin", authMiddleware, middleware.RequireRole(domain.RoleAdmin))
	admin.GET("/users", authHandler.ListUsers)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
