package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shopkeeper/shopkeeper-api/internal/api/handler"
	"github.com/shopkeeper/shopkeeper-api/internal/api/middleware"
	"github.com/shopkeeper/shopkeeper-api/internal/core/domain"
	"github.com/shopkeeper/shopkeeper-api/internal/core/ports"
	"github.com/shopkeeper/shopkeeper-api/internal/core/service"
	mongostore "github.com/shopkeeper/shopkeeper-api/internal/infrastructure/db/mongo"
)

// RouterConfig carries the settings the handler chain needs.
type RouterConfig struct {
	JWTSecret          string
	APIKey             string
	TokenTTL           time.Duration
	LockoutMaxFailures int
	LockoutDuration    time.Duration
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, limiter ports.RateLimiter, recorder ports.AuditRecorder, cfg RouterConfig, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("shopkeeper"))

	// --- Dependencies ---
	users := mongostore.NewUserRepository(db)
	roles := mongostore.NewRoleRepository(db)
	registry := mongostore.NewResourceRegistry(db)

	tokens := service.NewJWTTokenService(cfg.JWTSecret, cfg.TokenTTL)
	resolver := service.NewPrincipalResolver(tokens, users, roles, log)
	authService := service.NewAuthService(users, tokens, log, cfg.LockoutMaxFailures, cfg.LockoutDuration)

	authHandler := handler.NewAuthHandler(authService)
	resourceHandler := handler.NewResourceHandler(registry)
	storefrontHandler := handler.NewStorefrontHandler()
	integrationHandler := handler.NewIntegrationHandler(log)

	protect := middleware.Protect(resolver)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login,
		middleware.RateLimitSensitive(limiter),
		middleware.Audit(recorder, "login", "auth"),
	)
	e.GET("/auth/me", authHandler.Me, protect)
	e.POST("/auth/password", authHandler.ChangePassword,
		protect,
		middleware.RateLimitSensitive(limiter),
		middleware.Audit(recorder, "change_password", "auth"),
	)

	// --- Guarded resource reads/deletes ---
	for _, rt := range domain.KnownResourceTypes() {
		module := string(rt)
		g := e.Group("/"+module, protect)
		g.GET("/:id", resourceHandler.Get(rt),
			middleware.RequirePermission(module, domain.ActionRead),
			middleware.RequireOwnership(rt, registry),
			middleware.Audit(recorder, "read", module),
		)
		g.DELETE("/:id", resourceHandler.Delete(rt),
			middleware.RequirePermission(module, domain.ActionDelete),
			middleware.RequireOwnership(rt, registry),
			middleware.Audit(recorder, "delete", module),
		)
	}

	// --- Public storefront (personalized when a valid token is presented) ---
	e.GET("/storefront/catalog", storefrontHandler.Catalog, middleware.OptionalAuth(resolver))

	// --- Machine-to-machine integration (static API key, not the JWT flow) ---
	e.POST("/integrations/inventory-sync", integrationHandler.InventorySync,
		middleware.RequireAPIKey(cfg.APIKey),
		middleware.Audit(recorder, "inventory_sync", "integrations"),
	)

	// --- Observability & health ---
	e.GET("/metrics", echoprometheus.NewHandler())

	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	return e
}
