package api

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/photoshare/photoshare/internal/api/handler"
	"github.com/photoshare/photoshare/internal/api/middleware"
	"github.com/photoshare/photoshare/internal/core/domain"
	"github.com/photoshare/photoshare/internal/core/ports"
	"github.com/photoshare/photoshare/internal/core/service"
	pgrepo "github.com/photoshare/photoshare/internal/infrastructure/db/postgres"
	redisinfra "github.com/photoshare/photoshare/internal/infrastructure/db/redis"
)

// Deps carries the process-wide dependencies the router wires into handlers.
// All of them are created once at startup and injected; nothing reaches for
// package-level globals.
type Deps struct {
	Pool      *pgxpool.Pool
	Redis     *redis.Client
	Blobs     ports.BlobStore
	Cleaner   ports.BlobCleaner
	JWTSecret string
	Log       zerolog.Logger

	// UploadsDir, when non-empty, is served on /uploads for the local
	// storage driver.
	UploadsDir string
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("photoshare"))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Dependencies ---
	authRepo := pgrepo.NewAuthRepository(deps.Pool)
	photoRepo := pgrepo.NewPhotoRepository(deps.Pool)
	commentRepo := pgrepo.NewCommentRepository(deps.Pool)
	throttle := redisinfra.NewLoginThrottle(deps.Redis)

	authService := service.NewAuthService(authRepo, throttle, deps.JWTSecret, 24*time.Hour, deps.Log)
	photoService := service.NewPhotoService(photoRepo, commentRepo, deps.Blobs, deps.Cleaner, deps.Log)

	authHandler := handler.NewAuthHandler(authService)
	photoHandler := handler.NewPhotoHandler(photoService)
	commentHandler := handler.NewCommentHandler(photoService)

	requireAuth := middleware.Auth(deps.JWTSecret)
	optionalAuth := middleware.OptionalAuth(deps.JWTSecret)

	// --- API routes ---
	apiGroup := e.Group("/api")

	apiGroup.POST("/auth/register", authHandler.Register)
	apiGroup.POST("/auth/login", authHandler.Login)

	apiGroup.GET("/photos", photoHandler.List)
	apiGroup.GET("/photos/:id", photoHandler.Get, optionalAuth)
	apiGroup.POST("/photos", photoHandler.Create, requireAuth, middleware.RequireRole(domain.RoleCreator))
	apiGroup.PUT("/photos/:id", photoHandler.Update, requireAuth)
	apiGroup.DELETE("/photos/:id", photoHandler.Delete, requireAuth)
	apiGroup.POST("/photos/:id/like", photoHandler.ToggleLike, requireAuth)
	apiGroup.POST("/photos/:id/comment", commentHandler.Add, requireAuth)
	apiGroup.DELETE("/comments/:id", commentHandler.Delete, requireAuth)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Pool, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	if deps.UploadsDir != "" {
		e.Static("/uploads", deps.UploadsDir)
	}

	return e
}
