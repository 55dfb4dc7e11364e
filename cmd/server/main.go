package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	financeapp "github.com/paymentflow/backend/internal/application/finance"
	identityapp "github.com/paymentflow/backend/internal/application/identity"
	notificationapp "github.com/paymentflow/backend/internal/application/notification"
	partnerapp "github.com/paymentflow/backend/internal/application/partner"
	"github.com/paymentflow/backend/internal/infrastructure/auth"
	"github.com/paymentflow/backend/internal/infrastructure/cache"
	"github.com/paymentflow/backend/internal/infrastructure/config"
	"github.com/paymentflow/backend/internal/infrastructure/email"
	"github.com/paymentflow/backend/internal/infrastructure/logger"
	"github.com/paymentflow/backend/internal/infrastructure/persistence"
	"github.com/paymentflow/backend/internal/infrastructure/scheduler"
	"github.com/paymentflow/backend/internal/infrastructure/secret"
	"github.com/paymentflow/backend/internal/infrastructure/storage"
	"github.com/paymentflow/backend/internal/infrastructure/telemetry"
	"github.com/paymentflow/backend/internal/interfaces/http/handler"
	"github.com/paymentflow/backend/internal/interfaces/http/middleware"
	"github.com/paymentflow/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()

	// Telemetry: traces, business metrics and logs go to the OTLP collector
	telemetryCfg := telemetry.ConfigFrom(cfg.Telemetry)
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetryCfg, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetryCfg, 30*time.Second, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	loggerProvider, err := telemetry.NewLoggerProvider(ctx, telemetryCfg, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	log = loggerProvider.Bridge(log, zapcore.InfoLevel)

	log.Info("Starting PaymentFlow backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabase(&cfg.Database,
		persistence.WithLogger(log, logger.GormLevel(cfg.Log.Level), cfg.Telemetry.DBSlowQueryThresh),
		persistence.WithTracing(cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled),
	)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	log.Info("Database connected successfully")

	store, err := cache.NewStoreFactory(cfg.Preferences, cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(!cfg.IsProduction()),
	).CreateStore(ctx)
	if err != nil {
		log.Fatal("Failed to create preference store", zap.Error(err))
	}

	sealer, err := secret.New(cfg.Email.EncryptionKey)
	if err != nil {
		log.Fatal("Invalid email encryption key", zap.Error(err))
	}
	if cfg.Email.EncryptionKey == "" {
		log.Warn("Email encryption key not set, SMTP passwords are stored unsealed")
	}

	var objects storage.ObjectStorage
	if cfg.Storage.Enabled {
		s3, err := storage.NewS3ObjectStorage(&cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		if err := s3.EnsureBucket(ctx); err != nil {
			log.Warn("Attachment bucket not ready", zap.String("bucket", s3.Bucket()), zap.Error(err))
		}
		objects = s3
	}

	// Repositories
	clientRepo := persistence.NewGormClientRepository(db.DB)
	receivableRepo := persistence.NewGormReceivableRepository(db.DB)
	profileRepo := persistence.NewGormReminderProfileRepository(db.DB)
	subscriptionRepo := persistence.NewGormSubscriptionRepository(db.DB)
	settingsRepo := persistence.NewGormEmailSettingsRepository(db.DB, sealer)

	// Application services. The subscription service is also the gate
	// every mutating service checks.
	subscriptionService := identityapp.NewSubscriptionService(subscriptionRepo, store, identityapp.SubscriptionServiceConfig{
		Enforce:  cfg.Subscription.Enforce,
		CacheTTL: cfg.Subscription.CacheTTL,
	}, log)
	clientService := partnerapp.NewClientService(clientRepo, receivableRepo, profileRepo, subscriptionService, log)
	clientListService := partnerapp.NewClientListService(clientService, store, cfg.Preferences.TTL, log)
	profileService := partnerapp.NewReminderProfileService(profileRepo)
	receivableService := financeapp.NewReceivableService(receivableRepo)
	settingsService := notificationapp.NewSettingsService(settingsRepo, subscriptionService)

	relayMetrics, err := telemetry.NewRelayMetrics(meterProvider.Meter("paymentflow/email"))
	if err != nil {
		log.Fatal("Failed to register relay metrics", zap.Error(err))
	}
	relayService := notificationapp.NewRelayService(
		email.NewSMTPSender(cfg.Email.SendTimeout, email.WithSenderLogger(log)),
		email.NewAttachmentFetcher(objects, cfg.Email.MaxAttachmentBytes, cfg.Email.AttachmentTimeout),
		settingsService,
		subscriptionService,
		notificationapp.RelayConfig{
			MaxBatch:      cfg.Email.MaxBatch,
			RatePerSecond: cfg.Email.RatePerSecond,
			Burst:         cfg.Email.Burst,
		},
		notificationapp.WithRelayMetrics(relayMetrics),
		notificationapp.WithRelayLogger(log),
	)

	// Daily reminder dispatch
	var (
		reminderScheduler *scheduler.Scheduler
		cronTrigger       *scheduler.CronTrigger
	)
	if cfg.Scheduler.Enabled {
		dispatcher := notificationapp.NewReminderDispatcher(clientRepo, receivableRepo, profileRepo, settingsRepo, relayService, log)
		reminderScheduler, err = scheduler.NewScheduler(scheduler.SchedulerConfig{
			MaxConcurrentJobs: cfg.Scheduler.MaxConcurrentJobs,
			QueueSize:         scheduler.DefaultSchedulerConfig().QueueSize,
			JobTimeout:        cfg.Scheduler.JobTimeout,
			RetryAttempts:     cfg.Scheduler.RetryAttempts,
			RetryDelay:        cfg.Scheduler.RetryDelay,
		}, scheduler.NewReminderExecutor(dispatcher, relayMetrics, log), log)
		if err != nil {
			log.Fatal("Failed to create reminder scheduler", zap.Error(err))
		}
		if err := reminderScheduler.Start(ctx); err != nil {
			log.Fatal("Failed to start reminder scheduler", zap.Error(err))
		}

		hour, minute, err := scheduler.ParseCronSchedule(cfg.Scheduler.DailyCronSchedule)
		if err != nil {
			log.Fatal("Invalid reminder schedule", zap.String("schedule", cfg.Scheduler.DailyCronSchedule), zap.Error(err))
		}
		triggerCfg := scheduler.DefaultCronTriggerConfig()
		triggerCfg.Hour, triggerCfg.Minute = hour, minute
		cronTrigger = scheduler.NewCronTrigger(triggerCfg, reminderScheduler, subscriptionService, log)
		if err := cronTrigger.Start(ctx); err != nil {
			log.Fatal("Failed to start reminder trigger", zap.Error(err))
		}
		log.Info("Reminder scheduler started",
			zap.Int("max_concurrent_jobs", cfg.Scheduler.MaxConcurrentJobs),
			zap.String("schedule", cfg.Scheduler.DailyCronSchedule),
		)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware order: request id first so every later log line and span
	// carries it, recovery before anything that may panic.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	if cfg.Telemetry.Enabled {
		engine.Use(middleware.Tracing(cfg.Telemetry.ServiceName))
	}

	var prom *telemetry.PrometheusRegistry
	if cfg.Telemetry.MetricsEnabled {
		prom = telemetry.NewPrometheusRegistry()
		if sqlDB, err := db.DB.DB(); err == nil {
			if err := prom.RegisterDB(sqlDB, cfg.Database.DBName); err != nil {
				log.Warn("Failed to register database pool metrics", zap.Error(err))
			}
		}
		engine.Use(middleware.HTTPMetrics(prom))
	}

	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{middleware.RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.Secure(cfg.IsProduction()))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	systemHandler := handler.NewSystemHandler(telemetry.ServiceVersion, map[string]handler.HealthCheck{
		"database": db.Ping,
	})
	engine.GET("/health", systemHandler.Health)
	engine.GET("/ready", systemHandler.Ready)
	if prom != nil {
		engine.GET("/metrics", gin.WrapH(prom.Handler()))
	}

	jwtService := auth.NewJWTService(cfg.JWT)
	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.Logger = log

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))
	if cfg.Telemetry.Enabled {
		r.Use(middleware.TraceAttributes())
	}
	if cfg.HTTP.RateLimitEnabled {
		r.Use(middleware.RateLimit(middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	handlers := router.Handlers{
		Clients:          handler.NewClientHandler(clientService, clientListService),
		Receivables:      handler.NewReceivableHandler(receivableService),
		ReminderProfiles: handler.NewReminderProfileHandler(profileService),
		Emails:           handler.NewEmailHandler(relayService, cfg.Storage.KeyPrefix),
		Settings:         handler.NewSettingsHandler(settingsService),
		Subscription:     handler.NewSubscriptionHandler(subscriptionService),
	}
	if objects != nil {
		handlers.Attachments = handler.NewAttachmentHandler(objects, cfg.Storage.KeyPrefix, cfg.Storage.PresignExpiration)
	}
	r.Register(router.DomainGroups(handlers, middleware.RequireActiveSubscription(subscriptionService))...)
	r.Setup()

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if cronTrigger != nil {
		if err := cronTrigger.Stop(shutdownCtx); err != nil {
			log.Error("Error stopping reminder trigger", zap.Error(err))
		}
	}
	if reminderScheduler != nil {
		if err := reminderScheduler.Stop(shutdownCtx); err != nil {
			log.Error("Error stopping reminder scheduler", zap.Error(err))
		}
	}
	if err := store.Close(); err != nil {
		log.Error("Error closing preference store", zap.Error(err))
	}
	if err := db.Close(); err != nil {
		log.Error("Error closing database", zap.Error(err))
	}
	for name, shutdown := range map[string]func(context.Context) error{
		"logs":    loggerProvider.Shutdown,
		"metrics": meterProvider.Shutdown,
		"traces":  tracerProvider.Shutdown,
	} {
		if err := shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down telemetry", zap.String("signal", name), zap.Error(err))
		}
	}

	log.Info("Server exited gracefully")
}
