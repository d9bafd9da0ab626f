package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	eventapp "github.com/translog/backend/internal/application/event"
	fleetapp "github.com/translog/backend/internal/application/fleet"
	invoicingapp "github.com/translog/backend/internal/application/invoicing"
	orderapp "github.com/translog/backend/internal/application/order"
	partnerapp "github.com/translog/backend/internal/application/partner"
	recurringapp "github.com/translog/backend/internal/application/recurring"
	reportapp "github.com/translog/backend/internal/application/report"
	tenantapp "github.com/translog/backend/internal/application/tenant"
	"github.com/translog/backend/internal/infrastructure/cache"
	"github.com/translog/backend/internal/infrastructure/config"
	"github.com/translog/backend/internal/infrastructure/event"
	"github.com/translog/backend/internal/infrastructure/gus"
	"github.com/translog/backend/internal/infrastructure/ksef"
	"github.com/translog/backend/internal/infrastructure/logger"
	"github.com/translog/backend/internal/infrastructure/nbp"
	"github.com/translog/backend/internal/infrastructure/persistence"
	"github.com/translog/backend/internal/infrastructure/scheduler"
	"github.com/translog/backend/internal/infrastructure/telemetry"
	"github.com/translog/backend/internal/interfaces/http/handler"
	"github.com/translog/backend/internal/interfaces/http/middleware"
	"github.com/translog/backend/internal/interfaces/http/router"
)

//	@title			TransLog Backend API
//	@version		1.0
//	@description	Multi-tenant transport back office: transport orders, contractors, fleet, invoicing with NBP exchange rates and KSeF submission

//	@contact.name	API Support
//	@contact.url	https://github.com/translog/backend
//	@contact.email	support@translog.pl

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/api/v1

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

	log.Info("Starting TransLog Backend",
		zap.String("app", cfg.Server.Name),
		zap.String("env", cfg.Server.Env),
		zap.String("port", cfg.Server.Port),
	)

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

	// Initialize OpenTelemetry providers (no-op when disabled)
	ctx := context.Background()
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
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
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := meterProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
	}()

	// Continuous profiling (no-op when disabled)
	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:             cfg.Profiling.Enabled,
		ServerAddress:       cfg.Profiling.ServerAddress,
		ApplicationName:     cfg.Profiling.ApplicationName,
		BasicAuthUser:       cfg.Profiling.BasicAuthUser,
		BasicAuthPassword:   cfg.Profiling.BasicAuthPassword,
		ProfileCPU:          true,
		ProfileAllocObjects: true,
		ProfileAllocSpace:   true,
		ProfileInuseObjects: true,
		ProfileInuseSpace:   true,
		ProfileGoroutines:   true,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	defer func() {
		if err := profiler.Stop(); err != nil {
			log.Error("Error stopping profiler", zap.Error(err))
		}
	}()

	// Register database query tracing (otelgorm + slow query marking)
	if cfg.Telemetry.DBTraceEnabled {
		dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
			Enabled:          true,
			LogFullSQL:       cfg.Telemetry.DBLogFullSQL,
			SlowQueryThresh:  cfg.Telemetry.DBSlowQueryThresh,
			DBSystem:         "postgresql",
			WithoutVariables: !cfg.Telemetry.DBLogFullSQL,
		}, log)
		if err := dbTracing.RegisterOtelGorm(db.DB); err != nil {
			log.Warn("Failed to register database tracing", zap.Error(err))
		}
	}

	// Redis backs the shared exchange rate cache and event idempotency.
	// When unavailable both degrade to in-memory, which is fine for
	// single-instance deployments.
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, pingCancel := context.WithTimeout(ctx, 2*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		log.Warn("Redis unavailable, rate cache degrades to in-memory", zap.Error(err))
		_ = redisClient.Close()
		redisClient = nil
	} else {
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Error closing redis client", zap.Error(err))
			}
		}()
	}
	pingCancel()

	// Initialize repositories
	tenantRepo := persistence.NewGormTenantRepository(db.DB)
	contractorRepo := persistence.NewGormContractorRepository(db.DB)
	vehicleRepo := persistence.NewGormVehicleRepository(db.DB)
	trailerRepo := persistence.NewGormTrailerRepository(db.DB)
	driverRepo := persistence.NewGormDriverRepository(db.DB)
	orderRepo := persistence.NewGormTransportOrderRepository(db.DB)
	templateRepo := persistence.NewGormTemplateRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	rateRepo := persistence.NewGormRateRepository(db.DB)
	revenueReportRepo := persistence.NewGormRevenueReportRepository(db.DB)
	receivablesReportRepo := persistence.NewGormReceivablesReportRepository(db.DB)
	outboxRepo := event.NewGormOutboxRepository(db.DB)

	// Initialize event serializer and register all event types
	eventSerializer := event.NewEventSerializer()
	event.RegisterAllEvents(eventSerializer)

	// Create outbox publisher for transactional event saving
	outboxPublisher := event.NewOutboxPublisher(eventSerializer)

	// Inject outbox publisher into repositories that persist aggregates
	// together with their domain events
	orderRepo.SetOutboxEventSaver(outboxPublisher)
	invoiceRepo.SetOutboxEventSaver(outboxPublisher)

	// External integrations
	rateCache := cache.NewRateCache(redisClient, cfg.NBP.CacheTTL, log)
	nbpClient := nbp.NewClient(cfg.NBP, rateCache, rateRepo, log)
	gusClient := gus.NewClient(cfg.GUS, log)
	ksefGateway := ksef.NewGateway(cfg.KSeF, log)

	// Initialize application services
	tenantService := tenantapp.NewTenantService(tenantRepo)
	contractorService := partnerapp.NewContractorService(contractorRepo, orderRepo, invoiceRepo, gusClient)
	vehicleService := fleetapp.NewVehicleService(vehicleRepo)
	trailerService := fleetapp.NewTrailerService(trailerRepo)
	driverService := fleetapp.NewDriverService(driverRepo)
	expiryService := fleetapp.NewExpiryService(vehicleRepo, trailerRepo, driverRepo)
	orderService := orderapp.NewOrderService(orderRepo, contractorRepo, vehicleRepo, trailerRepo, driverRepo)
	templateService := recurringapp.NewTemplateService(templateRepo)
	generationService := recurringapp.NewGenerationService(templateRepo, orderRepo)
	invoiceService := invoicingapp.NewInvoiceService(invoiceRepo, contractorRepo, orderRepo, nbpClient, ksefGateway)
	rateService := invoicingapp.NewRateService(nbpClient)
	reportService := reportapp.NewReportService(revenueReportRepo, receivablesReportRepo, templateRepo)
	outboxService := eventapp.NewOutboxService(outboxRepo, log)

	// Initialize event bus
	eventBus := event.NewInMemoryEventBus(log)

	// Business metrics are fed by async event handlers; the handlers are
	// wrapped with idempotency so redelivered outbox events do not double
	// count
	if meterProvider.IsEnabled() {
		businessMetrics, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
			Meter:               meterProvider.Meter("translog.business"),
			Logger:              log,
			ReceivablesProvider: telemetry.NewGormReceivablesMetricsProvider(db.DB),
			FleetProvider:       telemetry.NewGormFleetMetricsProvider(db.DB),
		})
		if err != nil {
			log.Fatal("Failed to initialize business metrics", zap.Error(err))
		}
		businessMetrics.StartPeriodicCollection(ctx, telemetry.NewGormTenantProvider(db.DB), 5*time.Minute)
		defer businessMetrics.Stop()

		idempotencyFactory := cache.NewIdempotencyStoreFactory(cfg.Redis, cache.WithLogger(log))
		idempotencyStore, err := idempotencyFactory.CreateStore()
		if err != nil {
			log.Fatal("Failed to create idempotency store", zap.Error(err))
		}

		orderMetricsHandler := event.NewIdempotentHandler(
			eventapp.NewOrderMetricsHandler(businessMetrics, log), idempotencyStore, log,
			event.WithIdempotencyMetrics(event.GlobalIdempotencyMetrics),
		)
		invoiceMetricsHandler := event.NewIdempotentHandler(
			eventapp.NewInvoiceMetricsHandler(businessMetrics, log), idempotencyStore, log,
			event.WithIdempotencyMetrics(event.GlobalIdempotencyMetrics),
		)
		recurringMetricsHandler := event.NewIdempotentHandler(
			eventapp.NewRecurringMetricsHandler(businessMetrics, log), idempotencyStore, log,
			event.WithIdempotencyMetrics(event.GlobalIdempotencyMetrics),
		)
		eventBus.Subscribe(orderMetricsHandler)
		eventBus.Subscribe(invoiceMetricsHandler)
		eventBus.Subscribe(recurringMetricsHandler)

		log.Info("Business metrics event handlers registered",
			zap.Strings("order_events", orderMetricsHandler.EventTypes()),
			zap.Strings("invoice_events", invoiceMetricsHandler.EventTypes()),
			zap.Strings("recurring_events", recurringMetricsHandler.EventTypes()),
		)
	}

	// Start event bus
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Initialize and start the outbox processor for guaranteed event delivery.
	// It reads events from the outbox table and publishes them to the event bus.
	if cfg.Event.ProcessorEnabled {
		outboxProcessorConfig := event.DefaultOutboxProcessorConfig()
		if cfg.Event.BatchSize > 0 {
			outboxProcessorConfig.BatchSize = cfg.Event.BatchSize
		}
		if cfg.Event.PollInterval > 0 {
			outboxProcessorConfig.PollInterval = cfg.Event.PollInterval
		}
		outboxProcessorConfig.CleanupEnabled = cfg.Event.CleanupEnabled
		if cfg.Event.CleanupRetention > 0 {
			outboxProcessorConfig.CleanupRetention = cfg.Event.CleanupRetention
		}

		outboxProcessor := event.NewOutboxProcessor(outboxRepo, eventBus, eventSerializer, outboxProcessorConfig, log)
		if err := outboxProcessor.Start(ctx); err != nil {
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
	}

	// Initialize the recurring order sweep scheduler (if enabled)
	if cfg.Scheduler.Enabled {
		sweepExecutor := scheduler.NewSweepExecutor(generationService, log)
		sweepScheduler := scheduler.NewScheduler(scheduler.Config{
			Enabled:              cfg.Scheduler.Enabled,
			MaxConcurrentTenants: cfg.Scheduler.MaxConcurrentTenants,
			JobTimeout:           cfg.Scheduler.JobTimeout,
			RetryAttempts:        cfg.Scheduler.RetryAttempts,
			RetryDelay:           cfg.Scheduler.RetryDelay,
		}, sweepExecutor, log)
		if err := sweepScheduler.Start(ctx); err != nil {
			log.Fatal("Failed to start sweep scheduler", zap.Error(err))
		}
		defer func() {
			if err := sweepScheduler.Stop(context.Background()); err != nil {
				log.Error("Error stopping sweep scheduler", zap.Error(err))
			}
		}()

		cronTrigger := scheduler.NewCronTrigger(cfg.Scheduler.CronSchedule, sweepScheduler, tenantService, log)
		if err := cronTrigger.Start(ctx); err != nil {
			log.Fatal("Failed to start sweep cron trigger", zap.Error(err))
		}
		defer func() {
			if err := cronTrigger.Stop(context.Background()); err != nil {
				log.Error("Error stopping sweep cron trigger", zap.Error(err))
			}
		}()
		log.Info("Recurring order scheduler started",
			zap.String("schedule", cfg.Scheduler.CronSchedule),
			zap.Int("max_concurrent_tenants", cfg.Scheduler.MaxConcurrentTenants),
			zap.Duration("job_timeout", cfg.Scheduler.JobTimeout),
		)
	}

	// Initialize HTTP handlers
	tenantHandler := handler.NewTenantHandler(tenantService)
	contractorHandler := handler.NewContractorHandler(contractorService)
	vehicleHandler := handler.NewVehicleHandler(vehicleService)
	trailerHandler := handler.NewTrailerHandler(trailerService)
	driverHandler := handler.NewDriverHandler(driverService)
	fleetExpiryHandler := handler.NewFleetExpiryHandler(expiryService)
	orderHandler := handler.NewOrderHandler(orderService)
	recurringHandler := handler.NewRecurringHandler(templateService, generationService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)
	rateHandler := handler.NewRateHandler(rateService)
	reportHandler := handler.NewReportHandler(reportService)
	outboxHandler := handler.NewOutboxHandler(outboxService)
	systemHandler := handler.NewSystemHandler()

	// Set Gin mode based on environment
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.Server.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Tracing - OpenTelemetry spans (enriched after tenant resolution)
	// 5. Metrics - HTTP server metrics
	// 6. Security - Add security headers
	// 7. CORS - Handle cross-origin requests
	// 8. BodyLimit - Limit request body size
	// 9. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
		MeterProvider: meterProvider,
		ServiceName:   cfg.Telemetry.ServiceName,
		Enabled:       cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.Server.CORSAllowOrigins,
		AllowMethods:     cfg.Server.CORSAllowMethods,
		AllowHeaders:     cfg.Server.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.Server.MaxBodySize))

	// Rate limiting (if enabled)
	if cfg.RateLimit.Enabled {
		rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.RateLimit.Requests),
			zap.Duration("window", cfg.RateLimit.Window),
		)
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Every API route runs under tenant context resolved from the
	// X-Tenant-ID header. Tenant administration itself is exempt.
	tenantConfig := middleware.DefaultTenantConfig()
	tenantConfig.Validator = &tenantValidator{svc: tenantService}
	tenantConfig.Logger = log
	r.Use(middleware.TenantMiddlewareWithConfig(tenantConfig))

	// Post-tenant enrichment: span attributes and profiling labels need
	// the resolved tenant
	r.Use(middleware.TracingAttributeInjector())
	r.Use(middleware.Profiling())

	// Tenant administration
	tenantRoutes := router.NewDomainGroup("tenant", "/tenants")
	tenantRoutes.POST("", tenantHandler.Create)
	tenantRoutes.GET("", tenantHandler.List)
	tenantRoutes.GET("/:id", tenantHandler.GetByID)
	tenantRoutes.POST("/:id/activate", tenantHandler.Activate)
	tenantRoutes.POST("/:id/deactivate", tenantHandler.Deactivate)

	// Contractor CRM
	contractorRoutes := router.NewDomainGroup("contractor", "/contractors")
	contractorRoutes.POST("", contractorHandler.Create)
	contractorRoutes.GET("", contractorHandler.List)
	contractorRoutes.GET("/lookup/:nip", contractorHandler.Lookup)
	contractorRoutes.GET("/code/:code", contractorHandler.GetByCode)
	contractorRoutes.GET("/:id", contractorHandler.GetByID)
	contractorRoutes.PUT("/:id", contractorHandler.Update)
	contractorRoutes.DELETE("/:id", contractorHandler.Delete)
	contractorRoutes.POST("/:id/block", contractorHandler.Block)
	contractorRoutes.POST("/:id/activate", contractorHandler.Activate)

	// Fleet (vehicles, trailers, drivers, document expiry)
	fleetRoutes := router.NewDomainGroup("fleet", "/fleet")
	fleetRoutes.GET("/expiring-documents", fleetExpiryHandler.ExpiringDocuments)

	fleetRoutes.POST("/vehicles", vehicleHandler.Create)
	fleetRoutes.GET("/vehicles", vehicleHandler.List)
	fleetRoutes.GET("/vehicles/:id", vehicleHandler.GetByID)
	fleetRoutes.PUT("/vehicles/:id", vehicleHandler.Update)
	fleetRoutes.DELETE("/vehicles/:id", vehicleHandler.Delete)

	fleetRoutes.POST("/trailers", trailerHandler.Create)
	fleetRoutes.GET("/trailers", trailerHandler.List)
	fleetRoutes.GET("/trailers/:id", trailerHandler.GetByID)
	fleetRoutes.PUT("/trailers/:id", trailerHandler.Update)
	fleetRoutes.DELETE("/trailers/:id", trailerHandler.Delete)

	fleetRoutes.POST("/drivers", driverHandler.Create)
	fleetRoutes.GET("/drivers", driverHandler.List)
	fleetRoutes.GET("/drivers/:id", driverHandler.GetByID)
	fleetRoutes.PUT("/drivers/:id", driverHandler.Update)
	fleetRoutes.DELETE("/drivers/:id", driverHandler.Delete)

	// Transport orders
	orderRoutes := router.NewDomainGroup("order", "/orders")
	orderRoutes.POST("", orderHandler.Create)
	orderRoutes.GET("", orderHandler.List)
	orderRoutes.GET("/stats/summary", orderHandler.GetStatusSummary)
	orderRoutes.GET("/number/:order_number", orderHandler.GetByNumber)
	orderRoutes.GET("/:id", orderHandler.GetByID)
	orderRoutes.PUT("/:id", orderHandler.Update)
	orderRoutes.DELETE("/:id", orderHandler.Delete)
	orderRoutes.POST("/:id/assign-fleet", orderHandler.AssignFleet)
	orderRoutes.POST("/:id/plan", orderHandler.Plan)
	orderRoutes.POST("/:id/dispatch", orderHandler.Dispatch)
	orderRoutes.POST("/:id/complete", orderHandler.Complete)
	orderRoutes.POST("/:id/cancel", orderHandler.Cancel)

	// Recurring order templates
	recurringRoutes := router.NewDomainGroup("recurring", "/recurring-orders")
	recurringRoutes.POST("", recurringHandler.Create)
	recurringRoutes.GET("", recurringHandler.List)
	recurringRoutes.POST("/generate-due", recurringHandler.GenerateDue)
	recurringRoutes.GET("/:id", recurringHandler.GetByID)
	recurringRoutes.PUT("/:id", recurringHandler.Update)
	recurringRoutes.DELETE("/:id", recurringHandler.Delete)
	recurringRoutes.POST("/:id/activate", recurringHandler.Activate)
	recurringRoutes.POST("/:id/deactivate", recurringHandler.Deactivate)
	recurringRoutes.POST("/:id/generate", recurringHandler.Generate)

	// Invoicing
	invoiceRoutes := router.NewDomainGroup("invoicing", "/invoices")
	invoiceRoutes.POST("", invoiceHandler.Create)
	invoiceRoutes.GET("", invoiceHandler.List)
	invoiceRoutes.POST("/from-order/:order_id", invoiceHandler.CreateFromOrder)
	invoiceRoutes.GET("/:id", invoiceHandler.GetByID)
	invoiceRoutes.PUT("/:id", invoiceHandler.Update)
	invoiceRoutes.DELETE("/:id", invoiceHandler.Delete)
	invoiceRoutes.POST("/:id/lines", invoiceHandler.AddLine)
	invoiceRoutes.DELETE("/:id/lines/:line_id", invoiceHandler.RemoveLine)
	invoiceRoutes.POST("/:id/attach-rate", invoiceHandler.AttachRate)
	invoiceRoutes.POST("/:id/rescale-to-pln", invoiceHandler.Rescale)
	invoiceRoutes.POST("/:id/issue", invoiceHandler.Issue)
	invoiceRoutes.POST("/:id/pay", invoiceHandler.MarkPaid)
	invoiceRoutes.POST("/:id/cancel", invoiceHandler.Cancel)
	invoiceRoutes.POST("/:id/ksef/submit", invoiceHandler.SubmitToKSeF)
	invoiceRoutes.POST("/:id/ksef/status", invoiceHandler.RefreshKSeFStatus)

	// NBP exchange rates
	rateRoutes := router.NewDomainGroup("rates", "/exchange-rates")
	rateRoutes.GET("/:currency", rateHandler.GetRate)

	// Reports
	reportRoutes := router.NewDomainGroup("report", "/reports")
	reportRoutes.GET("/revenue", reportHandler.GetRevenue)
	reportRoutes.GET("/top-contractors", reportHandler.GetTopContractors)
	reportRoutes.GET("/receivables-aging", reportHandler.GetReceivablesAging)
	reportRoutes.GET("/recurring-generation", reportHandler.GetRecurringGeneration)

	// System and outbox operations
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)
	systemRoutes.GET("/outbox/stats", outboxHandler.GetStats)
	systemRoutes.GET("/outbox/dead", outboxHandler.GetDeadLetterEntries)
	systemRoutes.POST("/outbox/dead/retry-all", outboxHandler.RetryAllDeadEntries)
	systemRoutes.GET("/outbox/:id", outboxHandler.GetEntry)
	systemRoutes.POST("/outbox/:id/retry", outboxHandler.RetryDeadEntry)

	// Register all domain groups
	r.Register(tenantRoutes).
		Register(contractorRoutes).
		Register(fleetRoutes).
		Register(orderRoutes).
		Register(recurringRoutes).
		Register(invoiceRoutes).
		Register(rateRoutes).
		Register(reportRoutes).
		Register(systemRoutes)

	// Setup routes
	r.Setup()

	// Also keep a simple ping at root API level for basic health checks
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.Server.Port,
		Handler:        engine,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// tenantValidator adapts TenantService to the middleware validator contract
type tenantValidator struct {
	svc *tenantapp.TenantService
}

func (v *tenantValidator) ValidateTenant(ctx context.Context, tenantID uuid.UUID) error {
	return v.svc.RequireActive(ctx, tenantID)
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
