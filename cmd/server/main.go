package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	companyapp "github.com/brokerhub/backend/internal/application/company"
	documentapp "github.com/brokerhub/backend/internal/application/document"
	eventapp "github.com/brokerhub/backend/internal/application/event"
	fundingapp "github.com/brokerhub/backend/internal/application/funding"
	identityapp "github.com/brokerhub/backend/internal/application/identity"
	partnerapp "github.com/brokerhub/backend/internal/application/partner"
	"github.com/brokerhub/backend/internal/domain/identity"
	"github.com/brokerhub/backend/internal/infrastructure/auth"
	"github.com/brokerhub/backend/internal/infrastructure/cache"
	"github.com/brokerhub/backend/internal/infrastructure/config"
	"github.com/brokerhub/backend/internal/infrastructure/event"
	"github.com/brokerhub/backend/internal/infrastructure/logger"
	"github.com/brokerhub/backend/internal/infrastructure/persistence"
	"github.com/brokerhub/backend/internal/infrastructure/registry"
	"github.com/brokerhub/backend/internal/infrastructure/scheduler"
	"github.com/brokerhub/backend/internal/infrastructure/storage"
	"github.com/brokerhub/backend/internal/infrastructure/telemetry"
	"github.com/brokerhub/backend/internal/interfaces/http/handler"
	"github.com/brokerhub/backend/internal/interfaces/http/middleware"
	"github.com/brokerhub/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// version is the reported application version. Overridable at build time
// via -ldflags "-X main.version=...".
var version = "1.0.0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting BrokerHub Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	// Initialize OpenTelemetry tracing (no-op provider when disabled)
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(ctx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	meterProvider, err := telemetry.NewMeterProvider(context.Background(), telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := meterProvider.Shutdown(ctx); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
	}()

	// Ship application logs to the collector alongside traces and metrics
	loggerProvider, err := telemetry.NewLoggerProvider(context.Background(), telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := loggerProvider.Shutdown(ctx); err != nil {
			log.Error("Error shutting down logger provider", zap.Error(err))
		}
	}()
	if loggerProvider.IsEnabled() {
		otelCore := telemetry.NewZapOTELCore(telemetry.ZapBridgeConfig{
			ServiceName:    cfg.Telemetry.ServiceName,
			LoggerProvider: loggerProvider,
			Level:          zapcore.InfoLevel,
		})
		log = telemetry.NewBridgedLogger(log.Core(), otelCore, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	}

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Attach query tracing and metrics when telemetry is on
	if cfg.Telemetry.Enabled {
		dbTracingConfig := telemetry.DefaultDBTracingConfig()
		dbTracingConfig.Enabled = true
		tracingPlugin := telemetry.NewDBTracingPlugin(dbTracingConfig, log)
		if err := tracingPlugin.RegisterOtelGorm(db.DB); err != nil {
			log.Warn("Failed to register DB tracing plugin", zap.Error(err))
		}

		dbMetrics, err := telemetry.RegisterDBMetrics(db.DB, meterProvider, telemetry.DefaultDBMetricsConfig(), log)
		if err != nil {
			log.Warn("Failed to register DB metrics", zap.Error(err))
		} else if dbMetrics != nil {
			defer dbMetrics.Stop()
		}
	}

	// Initialize repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	inviteRepo := persistence.NewGormInviteRepository(db.DB)
	passwordResetRepo := persistence.NewGormPasswordResetRepository(db.DB)
	companyRepo := persistence.NewGormCompanyRepository(db.DB)
	assignmentRepo := persistence.NewGormAssignmentRepository(db.DB)
	leadRepo := persistence.NewGormLeadRepository(db.DB)
	applicationRepo := persistence.NewGormApplicationRepository(db.DB)
	onboardingRepo := persistence.NewGormOnboardingRepository(db.DB)
	lenderRepo := persistence.NewGormLenderRepository(db.DB)
	documentRepo := persistence.NewGormDocumentRepository(db.DB)
	outboxRepo := event.NewGormOutboxRepository(db.DB)

	// Initialize event serializer and register all event types
	eventSerializer := event.NewEventSerializer()
	event.RegisterAllEvents(eventSerializer)

	// Events written by services land in the outbox table; the processor
	// drains it onto the in-memory bus for at-least-once delivery
	outboxEventPublisher := event.NewOutboxEventPublisher(outboxRepo, eventSerializer)

	// Token infrastructure
	jwtService := auth.NewJWTService(cfg.JWT)
	blacklist := newTokenBlacklist(cfg, log)

	// Object storage for document uploads. A stub keeps local development
	// working without MinIO/S3 credentials.
	objectStorage := newObjectStorage(cfg, log)

	// Company registry lookup client
	registryClient, err := registry.NewClient(&cfg.Registry, registry.WithLogger(log))
	if err != nil {
		log.Fatal("Failed to create registry client", zap.Error(err))
	}

	// Initialize application services
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, identityapp.DefaultAuthServiceConfig(), log)
	userService := identityapp.NewUserService(userRepo, inviteRepo, passwordResetRepo, log)
	userService.SetSessionRevoker(authService)
	companyService := companyapp.NewCompanyService(companyRepo, assignmentRepo, log)
	registryService := companyapp.NewRegistryService(registryClient, companyRepo, log)
	partnerService := partnerapp.NewPartnerService(assignmentRepo, userRepo, companyRepo, log)
	leadService := partnerapp.NewLeadService(leadRepo, userRepo, inviteRepo, companyRepo, applicationRepo, log)
	leadImportService := partnerapp.NewLeadImportService(leadRepo, log)
	applicationService := fundingapp.NewApplicationService(applicationRepo, companyRepo, assignmentRepo, log)
	eligibilityService := fundingapp.NewEligibilityService(lenderRepo, applicationRepo, companyRepo, userRepo, assignmentRepo, log)
	onboardingService := fundingapp.NewOnboardingService(onboardingRepo, userRepo, companyRepo, applicationRepo, log)
	documentService := documentapp.NewDocumentService(documentRepo, applicationRepo, assignmentRepo, objectStorage, log)
	outboxService := eventapp.NewOutboxService(outboxRepo, log)

	// Route domain events through the outbox
	// Multi-aggregate flows commit through a single transaction
	userService.SetTransactionManager(db)
	leadService.SetTransactionManager(db)
	onboardingService.SetTransactionManager(db)

	userService.SetEventPublisher(outboxEventPublisher)
	companyService.SetEventPublisher(outboxEventPublisher)
	partnerService.SetEventPublisher(outboxEventPublisher)
	leadService.SetEventPublisher(outboxEventPublisher)
	leadImportService.SetEventPublisher(outboxEventPublisher)
	applicationService.SetEventPublisher(outboxEventPublisher)
	onboardingService.SetEventPublisher(outboxEventPublisher)
	documentService.SetEventPublisher(outboxEventPublisher)

	// Initialize event bus and cross-context handlers
	eventBus := event.NewInMemoryEventBus(log)

	idempotencyStore, err := cache.NewIdempotencyStoreFactory(cfg.Redis, cache.WithLogger(log)).CreateStore()
	if err != nil {
		log.Fatal("Failed to create idempotency store", zap.Error(err))
	}

	// Company archived -> revoke active partner assignments
	companyArchivedHandler := partnerapp.NewCompanyArchivedHandler(partnerService, log)
	eventBus.Subscribe(event.NewIdempotentHandler(companyArchivedHandler, idempotencyStore, log))

	log.Info("Event handlers registered",
		zap.Strings("company_archived_events", companyArchivedHandler.EventTypes()),
	)

	// Start event bus
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Outbox processor drains pending entries onto the event bus
	outboxProcessorConfig := event.DefaultOutboxProcessorConfig()
	outboxProcessor := event.NewOutboxProcessor(outboxRepo, eventBus, eventSerializer, outboxProcessorConfig, log)
	if err := outboxProcessor.Start(context.Background()); err != nil {
		log.Fatal("Failed to start outbox processor", zap.Error(err))
	}
	defer func() {
		if err := outboxProcessor.Stop(context.Background()); err != nil {
			log.Error("Error stopping outbox processor", zap.Error(err))
		}
	}()
	log.Info("Outbox processor started",
		zap.Int("batch_size", outboxProcessorConfig.BatchSize),
		zap.Duration("poll_interval", outboxProcessorConfig.PollInterval),
	)

	// Expired-upload sweeper (if enabled)
	if cfg.Documents.SweepEnabled {
		sweeper := scheduler.NewDocumentSweeper(scheduler.DocumentSweeperConfig{
			Enabled:   cfg.Documents.SweepEnabled,
			Interval:  cfg.Documents.SweepInterval,
			BatchSize: cfg.Documents.SweepBatchSize,
		}, documentService, log)
		if err := sweeper.Start(context.Background()); err != nil {
			log.Fatal("Failed to start document sweeper", zap.Error(err))
		}
		defer func() {
			if err := sweeper.Stop(context.Background()); err != nil {
				log.Error("Error stopping document sweeper", zap.Error(err))
			}
		}()
		log.Info("Document sweeper started",
			zap.Duration("interval", cfg.Documents.SweepInterval),
			zap.Int("batch_size", cfg.Documents.SweepBatchSize),
		)
	}

	// The default tenant scopes unauthenticated requests (login, invite
	// accept, password reset) in single-tenant deployments
	defaultTenantID := uuid.Nil
	if cfg.App.DefaultTenantID != "" {
		defaultTenantID, err = uuid.Parse(cfg.App.DefaultTenantID)
		if err != nil {
			log.Fatal("Invalid app.default_tenant_id", zap.Error(err))
		}
	}

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authService, userService, defaultTenantID)
	userHandler := handler.NewUserHandler(userService)
	companyHandler := handler.NewCompanyHandler(companyService)
	registryHandler := handler.NewRegistryHandler(registryService)
	partnerHandler := handler.NewPartnerHandler(partnerService)
	leadHandler := handler.NewLeadHandler(leadService)
	leadImportHandler := handler.NewLeadImportHandler(leadImportService)
	defer leadImportHandler.Stop()
	applicationHandler := handler.NewApplicationHandler(applicationService)
	eligibilityHandler := handler.NewEligibilityHandler(eligibilityService)
	onboardingHandler := handler.NewOnboardingHandler(onboardingService)
	documentHandler := handler.NewDocumentHandler(documentService)
	outboxHandler := handler.NewOutboxHandler(outboxService)
	systemHandler := handler.NewSystemHandler(db, version)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Tracing - OpenTelemetry spans (if enabled)
	// 5. Security - Add security headers
	// 6. CORS - Handle cross-origin requests
	// 7. BodyLimit - Limit request body size
	// 8. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	if cfg.Telemetry.Enabled {
		engine.Use(middleware.Tracing())
		engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
			MeterProvider: meterProvider,
			ServiceName:   cfg.Telemetry.ServiceName,
			Enabled:       true,
		}))
	}
	engine.Use(middleware.Secure())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health and readiness endpoints (outside API versioning)
	engine.GET("/health", systemHandler.Health)
	engine.GET("/ready", systemHandler.Ready)

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Apply JWT authentication middleware to API routes
	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		SkipPaths: []string{
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
			"/api/v1/auth/invites/accept",
			"/api/v1/auth/password-reset",
			"/api/v1/auth/password-reset/confirm",
		},
		Logger: log,
	}
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	adminOnly := middleware.RequireRole(string(identity.RoleAdmin))
	brokerage := middleware.RequireRole(string(identity.RolePartner), string(identity.RoleAdmin))

	// Auth domain - public endpoints, rate limited separately to slow
	// credential stuffing
	authRoutes := router.NewDomainGroup("auth", "/auth")
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		authRoutes.Use(middleware.RateLimit(authLimiter))
		log.Info("Auth rate limiting enabled",
			zap.Int("requests", cfg.HTTP.AuthRateLimitRequests),
			zap.Duration("window", cfg.HTTP.AuthRateLimitWindow),
		)
	}
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/refresh", authHandler.RefreshToken)
	authRoutes.POST("/invites/accept", authHandler.AcceptInvite)
	authRoutes.POST("/password-reset", authHandler.RequestPasswordReset)
	authRoutes.POST("/password-reset/confirm", authHandler.ConfirmPasswordReset)

	// Auth domain - session endpoints requiring authentication
	sessionRoutes := router.NewDomainGroup("session", "/auth")
	sessionRoutes.POST("/logout", authHandler.Logout)
	sessionRoutes.DELETE("/sessions", authHandler.RevokeAllSessions)
	sessionRoutes.GET("/me", authHandler.GetCurrentUser)
	sessionRoutes.PUT("/password", authHandler.ChangePassword)

	// Identity domain (user management)
	userRoutes := router.NewDomainGroup("users", "/users")
	userRoutes.POST("/invites", adminOnly, userHandler.Invite)
	userRoutes.GET("", adminOnly, userHandler.List)
	userRoutes.PATCH("/me", userHandler.UpdateProfile)
	userRoutes.GET("/:id", userHandler.Get)
	userRoutes.POST("/:id/suspend", adminOnly, userHandler.Suspend)
	userRoutes.POST("/:id/reactivate", adminOnly, userHandler.Reactivate)

	// Company domain
	companyRoutes := router.NewDomainGroup("companies", "/companies")
	companyRoutes.POST("", companyHandler.Create)
	companyRoutes.GET("", companyHandler.List)
	companyRoutes.GET("/:id", companyHandler.Get)
	companyRoutes.PUT("/:id", companyHandler.Update)
	companyRoutes.POST("/:id/archive", companyHandler.Archive)
	companyRoutes.POST("/:id/restore", companyHandler.Restore)
	companyRoutes.POST("/:id/reassign", adminOnly, companyHandler.Reassign)
	companyRoutes.GET("/:id/assignments", adminOnly, partnerHandler.ListForCompany)

	// Company registry lookup proxy
	registryRoutes := router.NewDomainGroup("registry", "/registry")
	registryRoutes.GET("/companies", registryHandler.Search)
	registryRoutes.GET("/companies/:number", registryHandler.Lookup)
	registryRoutes.POST("/companies/import", registryHandler.CreateFromRegistry)

	// Partner domain (assignments)
	partnerRoutes := router.NewDomainGroup("partners", "/partners")
	partnerRoutes.POST("/assignments", adminOnly, partnerHandler.Assign)
	partnerRoutes.DELETE("/assignments/:id", adminOnly, partnerHandler.Revoke)
	partnerRoutes.GET("/:id/assignments", brokerage, partnerHandler.ListForPartner)

	// Lead domain (partner-sourced prospects)
	leadRoutes := router.NewDomainGroup("leads", "/leads")
	leadRoutes.Use(brokerage)
	leadRoutes.POST("", leadHandler.Create)
	leadRoutes.GET("", leadHandler.List)
	leadRoutes.PUT("/:id", leadHandler.Update)
	leadRoutes.POST("/:id/contacted", leadHandler.MarkContacted)
	leadRoutes.POST("/:id/qualify", leadHandler.Qualify)
	leadRoutes.POST("/:id/disqualify", leadHandler.Disqualify)
	leadRoutes.POST("/:id/convert", leadHandler.Convert)
	leadRoutes.POST("/import/validate", leadImportHandler.Validate)
	leadRoutes.POST("/import", leadImportHandler.Import)

	// Funding domain (applications and eligibility)
	applicationRoutes := router.NewDomainGroup("applications", "/applications")
	applicationRoutes.POST("", applicationHandler.Create)
	applicationRoutes.GET("", applicationHandler.List)
	applicationRoutes.GET("/:id", applicationHandler.Get)
	applicationRoutes.PUT("/:id", applicationHandler.UpdateDraft)
	applicationRoutes.POST("/:id/submit", applicationHandler.Submit)
	applicationRoutes.POST("/:id/transition", brokerage, applicationHandler.Transition)
	applicationRoutes.POST("/:id/offer", brokerage, applicationHandler.RecordOffer)
	applicationRoutes.POST("/:id/withdraw", applicationHandler.Withdraw)
	applicationRoutes.GET("/:id/eligibility", eligibilityHandler.Score)

	// Lender catalogue backing the eligibility scorer
	lenderRoutes := router.NewDomainGroup("lenders", "/lenders")
	lenderRoutes.Use(adminOnly)
	lenderRoutes.POST("", eligibilityHandler.CreateLender)
	lenderRoutes.GET("", eligibilityHandler.ListLenders)
	lenderRoutes.PUT("/:id", eligibilityHandler.UpdateLender)
	lenderRoutes.DELETE("/:id", eligibilityHandler.DeleteLender)

	// Onboarding wizard
	onboardingRoutes := router.NewDomainGroup("onboarding", "/onboarding")
	onboardingRoutes.GET("", onboardingHandler.Get)
	onboardingRoutes.POST("/personal", onboardingHandler.SubmitPersonal)
	onboardingRoutes.POST("/company", onboardingHandler.SubmitCompany)
	onboardingRoutes.POST("/funding", onboardingHandler.SubmitFunding)
	onboardingRoutes.POST("/documents", onboardingHandler.SubmitDocuments)
	onboardingRoutes.POST("/complete", onboardingHandler.Complete)

	// Document domain (presigned uploads/downloads)
	documentRoutes := router.NewDomainGroup("documents", "/documents")
	documentRoutes.POST("", documentHandler.InitiateUpload)
	documentRoutes.GET("", documentHandler.List)
	documentRoutes.POST("/:id/confirm", documentHandler.ConfirmUpload)
	documentRoutes.GET("/:id/download", documentHandler.Download)
	documentRoutes.DELETE("/:id", documentHandler.Delete)

	// System domain (outbox administration)
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.Use(adminOnly)
	systemRoutes.GET("/outbox/stats", outboxHandler.GetStats)
	systemRoutes.GET("/outbox/dead", outboxHandler.GetDeadLetterEntries)
	systemRoutes.POST("/outbox/dead/retry-all", outboxHandler.RetryAllDeadEntries)
	systemRoutes.GET("/outbox/:id", outboxHandler.GetEntry)
	systemRoutes.POST("/outbox/:id/retry", outboxHandler.RetryDeadEntry)

	// Register all domain groups
	r.Register(authRoutes).
		Register(sessionRoutes).
		Register(userRoutes).
		Register(companyRoutes).
		Register(registryRoutes).
		Register(partnerRoutes).
		Register(leadRoutes).
		Register(applicationRoutes).
		Register(lenderRoutes).
		Register(onboardingRoutes).
		Register(documentRoutes).
		Register(systemRoutes)

	// Setup routes
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// newTokenBlacklist wires the Redis-backed token blacklist, falling back to
// the in-memory implementation outside production so a local server does not
// require Redis.
func newTokenBlacklist(cfg *config.Config, log *zap.Logger) auth.TokenBlacklist {
	blacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		if cfg.App.Env == "production" {
			log.Fatal("Redis is required for the token blacklist in production", zap.Error(err))
		}
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
		return auth.NewInMemoryTokenBlacklist()
	}
	log.Info("Redis token blacklist connected")
	return blacklist
}

// newObjectStorage wires S3-compatible object storage, or a stub when no
// endpoint is configured outside production.
func newObjectStorage(cfg *config.Config, log *zap.Logger) documentapp.ObjectStorageService {
	if cfg.Storage.Endpoint == "" && cfg.App.Env != "production" {
		log.Warn("No storage endpoint configured, using stub object storage")
		return storage.NewStubObjectStorage()
	}

	s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage,
		storage.WithLogger(log),
		storage.WithPresignExpiration(cfg.Storage.PresignExpiration),
	)
	if err != nil {
		log.Fatal("Failed to initialize object storage", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s3Storage.EnsureBucket(ctx); err != nil {
		log.Warn("Failed to ensure storage bucket", zap.Error(err))
	}
	return s3Storage
}
