package router

import (
	"time"

	"github.com/billing/backend/internal/infrastructure/config"
	"github.com/billing/backend/internal/infrastructure/logger"
	"github.com/billing/backend/internal/interfaces/http/handler"
	"github.com/billing/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// Handlers groups the HTTP handlers served by the engine
type Handlers struct {
	Invoice *handler.InvoiceHandler
	Payment *handler.PaymentHandler
	Health  *handler.HealthHandler
}

// EngineConfig carries what the middleware stack needs besides handlers
type EngineConfig struct {
	HTTP        config.HTTPConfig
	Swagger     config.SwaggerConfig
	ServiceName string
	Tracing     bool
	Profiling   bool
	// Meter is nil when metrics are disabled
	Meter    metric.Meter
	Verifier middleware.TokenVerifier
	// AllowHeaderIdentity accepts X-User-ID without a token
	AllowHeaderIdentity bool
	Logger              *zap.Logger
}

// NewEngine assembles the gin engine: global middleware, probes, API docs and
// the authenticated /api/v1 routes
func NewEngine(cfg EngineConfig, h Handlers) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	middleware.SetupValidator()
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	probes := []string{"/health", "/api/v1/health"}
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.ServiceName,
		Enabled:     cfg.Tracing,
		SkipPaths:   probes,
	}))
	engine.Use(middleware.HTTPMetrics(cfg.Meter))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(corsConfig(cfg.HTTP)))
	if cfg.HTTP.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	}

	if h.Health != nil {
		engine.GET("/health", h.Health.Health)
		engine.GET("/api/v1/health", h.Health.Health)
	}

	auth := middleware.OwnerAuth(middleware.AuthConfig{
		Verifier:            cfg.Verifier,
		AllowHeaderIdentity: cfg.AllowHeaderIdentity,
		Logger:              log,
	})

	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:     cfg.Swagger.Enabled,
			RequireAuth: cfg.Swagger.RequireAuth,
			AllowedIPs:  cfg.Swagger.AllowedIPs,
		}, auth),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	apiMiddleware := []gin.HandlerFunc{auth, middleware.SpanEnricher()}
	if cfg.HTTP.RateLimitEnabled && cfg.HTTP.RateLimitRequests > 0 {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		apiMiddleware = append(apiMiddleware, middleware.RateLimit(limiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}
	if cfg.Profiling {
		apiMiddleware = append(apiMiddleware, middleware.Profiling(middleware.DefaultProfilingConfig()))
	}

	r := NewRouter(engine, WithAPIVersion("v1"), WithMiddleware(apiMiddleware...))
	if h.Invoice != nil {
		r.Register(InvoiceRoutes(h.Invoice))
	}
	if h.Payment != nil {
		r.Register(PaymentRoutes(h.Payment))
	}
	r.Setup()

	return engine
}

func corsConfig(cfg config.HTTPConfig) middleware.CORSConfig {
	cors := middleware.DefaultCORSConfig()
	if len(cfg.CORSAllowOrigins) > 0 {
		cors.AllowOrigins = cfg.CORSAllowOrigins
	}
	if len(cfg.CORSAllowMethods) > 0 {
		cors.AllowMethods = cfg.CORSAllowMethods
	}
	if len(cfg.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = cfg.CORSAllowHeaders
	}
	cors.MaxAge = 12 * time.Hour
	return cors
}
