package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/linkroom/linkroom-api/docs"
	"github.com/linkroom/linkroom-api/internal/api/handler"
	"github.com/linkroom/linkroom-api/internal/api/middleware"
	"github.com/linkroom/linkroom-api/internal/core/domain"
	"github.com/linkroom/linkroom-api/internal/core/ports"
	"github.com/linkroom/linkroom-api/internal/core/service"
)

// Deps carries everything the router needs. Services are constructed by the
// caller so the schedulers can share the same instances.
type Deps struct {
	JWTSecret    string
	IngestAPIKey string
	JobRetention time.Duration
	Logger       zerolog.Logger

	Mongo *mongo.Database
	Redis *redis.Client

	Auth         ports.AuthService
	Jobs         ports.JobService
	Applications ports.ApplicationService
	Payments     ports.PaymentService
	Alerts       *service.AlertService
	ListingCache ports.ApplicationListingCache
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("linkroom"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	jobHandler := handler.NewJobHandler(deps.Jobs, deps.JobRetention)
	applicationHandler := handler.NewApplicationHandler(deps.Applications, deps.ListingCache, deps.Logger)
	paymentHandler := handler.NewPaymentHandler(deps.Payments)
	alertHandler := handler.NewAlertHandler(deps.Alerts)

	authRequired := middleware.Auth(deps.JWTSecret)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/v1")

	// --- Public board ---
	v1.GET("/jobs", jobHandler.List)
	v1.GET("/jobs/:id", jobHandler.Get)
	v1.POST("/jobs/:id/view", jobHandler.TrackView, authRequired)

	// --- Employer posting ---
	v1.POST("/jobs", jobHandler.Post, authRequired, middleware.RBAC(domain.RoleEmployer))

	// --- Admin ---
	admin := v1.Group("/admin", authRequired, middleware.RBAC(domain.RoleAdmin))
	admin.POST("/jobs", jobHandler.AdminPost)

	v1.POST("/internal/expire-jobs", jobHandler.Expire, authRequired, middleware.RBAC(domain.RoleAdmin))

	// --- Applications ---
	applications := v1.Group("/applications", authRequired)
	applications.POST("", applicationHandler.Apply, middleware.RBAC(domain.RoleJobSeeker))
	applications.GET("", applicationHandler.ListMine)
	applications.DELETE("/:id", applicationHandler.Withdraw)

	// --- Payments ---
	// Initiation is employer/admin only; verification is open to any
	// authenticated identity so a purchase can be confirmed from whichever
	// session holds the reference.
	payments := v1.Group("/payments", authRequired)
	payments.POST("", paymentHandler.Create, middleware.RBAC(domain.RoleEmployer, domain.RoleAdmin))
	payments.GET("/verify/:reference", paymentHandler.Verify)

	// --- Alerts ---
	v1.POST("/alerts", alertHandler.Create, authRequired, middleware.RBAC(domain.RoleJobSeeker))

	// --- External ingestion (shared-key auth, not JWT) ---
	v1.POST("/ingest/jobs", jobHandler.Ingest, middleware.APIKey(deps.IngestAPIKey))

	return e
}
