package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	invoicingapp "github.com/billing/backend/internal/application/invoicing"
	paymentapp "github.com/billing/backend/internal/application/payment"
	"github.com/billing/backend/internal/domain/shared"
	"github.com/billing/backend/internal/domain/shared/valueobject"
	"github.com/billing/backend/internal/infrastructure/auth"
	"github.com/billing/backend/internal/infrastructure/cache"
	"github.com/billing/backend/internal/infrastructure/config"
	"github.com/billing/backend/internal/infrastructure/document"
	"github.com/billing/backend/internal/infrastructure/event"
	"github.com/billing/backend/internal/infrastructure/logger"
	"github.com/billing/backend/internal/infrastructure/persistence"
	"github.com/billing/backend/internal/infrastructure/telemetry"
	"github.com/billing/backend/internal/interfaces/http/handler"
	"github.com/billing/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	_ "github.com/billing/backend/docs"
)

// Version is set at build time
var Version = "dev"

//	@title			Billing Backend API
//	@version		1.0
//	@description	Invoice lifecycle, numbering and payments

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logCfg := logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: logger.DefaultTimeFormat,
	}
	log, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx := context.Background()

	// Telemetry: logs first so everything after is exported too
	loggerProvider, err := telemetry.NewLoggerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	log = loggerProvider.Bridge(log, logger.ParseLevel(cfg.Log.Level))
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting billing backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", Version),
	)

	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	profiler, err := telemetry.NewProfiler(cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	if profiler.IsEnabled() && tracerProvider.IsEnabled() {
		tracerProvider.EnableSpanProfiles()
	}
	defer shutdownTelemetry(log, loggerProvider, tracerProvider, meterProvider, profiler)

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh),
	)
	db, err := persistence.NewDatabase(&cfg.Database, persistence.WithGormLogger(gormLog))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if err := telemetry.RegisterDBTracing(db.DB, cfg.Telemetry, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}
	dbMetrics, err := telemetry.RegisterDBMetrics(db.DB, meterProvider, cfg.Telemetry.DBSlowQueryThresh, log)
	if err != nil {
		log.Fatal("Failed to register database metrics", zap.Error(err))
	}
	if dbMetrics != nil {
		defer func() {
			_ = dbMetrics.Stop()
		}()
	}

	var meter metric.Meter
	if meterProvider.IsEnabled() {
		meter = meterProvider.Meter("billing")
	}

	// Repositories
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)

	// Documents
	renderer, err := document.NewRenderer(cfg.Document, cfg.Invoicing.DefaultCurrency, log)
	if err != nil {
		log.Fatal("Failed to initialize document renderer", zap.Error(err))
	}
	if closer, ok := renderer.(io.Closer); ok {
		defer func() {
			_ = closer.Close()
		}()
	}
	archive, err := document.NewArchive(ctx, cfg.Document, cfg.Storage, log)
	if err != nil {
		log.Fatal("Failed to initialize document archive", zap.Error(err))
	}

	// Application services
	clock := shared.SystemClock{}
	currency := valueobject.Currency(cfg.Invoicing.DefaultCurrency)
	eventBus := event.NewInMemoryEventBus(log)

	invoiceOpts := []invoicingapp.Option{
		invoicingapp.WithEventPublisher(eventBus),
		invoicingapp.WithRenderer(renderer),
		invoicingapp.WithArchive(archive),
		invoicingapp.WithDefaultTaxRate(cfg.Invoicing.DefaultTaxRate),
		invoicingapp.WithCurrency(currency),
	}
	paymentService := paymentapp.NewService(paymentRepo, invoiceRepo, clock, log)
	paymentService.SetEventPublisher(eventBus)
	paymentService.SetCurrency(currency)

	if meter != nil {
		operationMetrics, err := telemetry.NewOperationMetrics(meter)
		if err != nil {
			log.Fatal("Failed to register operation metrics", zap.Error(err))
		}
		invoiceOpts = append(invoiceOpts, invoicingapp.WithRecorder(operationMetrics))
		paymentService.SetRecorder(operationMetrics)
	}
	invoiceService := invoicingapp.NewService(invoiceRepo, clock, log, invoiceOpts...)

	// Payment completed -> invoice settled
	idempotencyStore, err := cache.NewIdempotencyStore(ctx, cfg.Idempotency, cfg.Redis, cfg.App.Env, log)
	if err != nil {
		log.Fatal("Failed to initialize idempotency store", zap.Error(err))
	}
	defer func() {
		_ = idempotencyStore.Close()
	}()
	settlementHandler := invoicingapp.NewSettlementHandler(invoiceService, idempotencyStore, shared.IdempotencyConfig{
		Enabled: cfg.Idempotency.Enabled,
		TTL:     cfg.Idempotency.TTL,
	}, log)
	eventBus.Subscribe(settlementHandler)
	log.Info("Event handlers registered",
		zap.Strings("settlement_events", settlementHandler.EventTypes()),
	)

	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// HTTP
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := router.NewEngine(router.EngineConfig{
		HTTP:                cfg.HTTP,
		Swagger:             cfg.Swagger,
		ServiceName:         cfg.Telemetry.ServiceName,
		Tracing:             tracerProvider.IsEnabled(),
		Profiling:           profiler.IsEnabled(),
		Meter:               meter,
		Verifier:            auth.NewJWTService(cfg.JWT),
		AllowHeaderIdentity: cfg.JWT.AllowHeaderIdentity,
		Logger:              log,
	}, router.Handlers{
		Invoice: handler.NewInvoiceHandler(invoiceService),
		Payment: handler.NewPaymentHandler(paymentService),
		Health:  handler.NewHealthHandler(db, Version),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

func shutdownTelemetry(log *zap.Logger, lp *telemetry.LoggerProvider, tp *telemetry.TracerProvider, mp *telemetry.MeterProvider, p *telemetry.Profiler) {
	ctx := context.Background()
	if err := p.Stop(); err != nil {
		log.Error("Error stopping profiler", zap.Error(err))
	}
	if err := mp.Shutdown(ctx); err != nil {
		log.Error("Error shutting down meter provider", zap.Error(err))
	}
	if err := tp.Shutdown(ctx); err != nil {
		log.Error("Error shutting down tracer provider", zap.Error(err))
	}
	if err := lp.Shutdown(ctx); err != nil {
		log.Error("Error shutting down logger provider", zap.Error(err))
	}
}
