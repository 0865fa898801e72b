package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/sirupsen/logrus"

	"github.com/staydesk/backoffice-api/internal/blob"
	"github.com/staydesk/backoffice-api/internal/cache"
	"github.com/staydesk/backoffice-api/internal/config"
	"github.com/staydesk/backoffice-api/internal/database"
	"github.com/staydesk/backoffice-api/internal/handlers"
	"github.com/staydesk/backoffice-api/internal/metrics"
	"github.com/staydesk/backoffice-api/internal/middleware"
	"github.com/staydesk/backoffice-api/internal/services"
	"github.com/staydesk/backoffice-api/pkg/validator"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logger.Info("Starting StayDesk back-office API")
	logger.Infof("Version: %s, Build Time: %s", version, buildTime)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Set log level
	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Set Gin mode
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Initialize database connection
	logger.Info("Connecting to database...")
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Database connection established")

	if cfg.Database.AutoMigrate {
		migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := database.Migrate(migrateCtx, db)
		cancel()
		if err != nil {
			logger.Fatalf("Failed to migrate schema: %v", err)
		}
		logger.Info("Schema up to date")
	}

	// Initialize services
	logger.Info("Initializing services...")
	structValidator := validator.NewStructValidator()
	binding.Validator = structValidator

	deps := services.Deps{
		Store:     database.NewPostgresStore(db),
		Events:    services.NewNotifier(logger),
		Validator: structValidator,
		Logger:    logger,
		Clock:     time.Now,
	}

	roomService := services.NewRoomService(deps)
	guestService := services.NewGuestService(deps)
	reservationService := services.NewReservationService(deps, roomService, guestService, cfg.Lifecycle.CoupleRoomStatus)
	housekeepingService := services.NewHousekeepingService(deps, roomService)
	dashboardService := services.NewDashboardService(deps)
	activityService := services.NewActivityService(deps)

	// Report cache
	var reportCache services.ReportCache = cache.Noop{}
	if cfg.Redis.URL != "" {
		redisCache, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logger.Fatalf("Failed to configure report cache: %v", err)
		}
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisCache.Ping(pingCtx); err != nil {
			logger.Warnf("Report cache unreachable, reports will be computed on every request: %v", err)
		}
		cancel()
		defer redisCache.Close()
		reportCache = redisCache
		logger.Info("Report cache enabled (redis)")
	}
	reportService := services.NewReportService(deps, reportCache)

	// Report exports
	var exportService *services.ExportService
	blobStore, err := blob.Open(context.Background(), cfg.Export)
	if err != nil {
		logger.Warnf("Report exports disabled: %v", err)
	} else {
		exportService = services.NewExportService(deps, reportService, blobStore)
		logger.WithField("driver", blobStore.Driver()).Info("Report exports enabled")
	}

	// Change listeners
	appMetrics := metrics.New()
	deps.Events.Subscribe(appMetrics)
	deps.Events.Subscribe(reportService)
	deps.Events.Subscribe(activityService)

	// Initialize and start cron service
	cronService := services.NewCronService(cfg.Jobs, reservationService, exportService, logger)
	if cfg.Jobs.Enabled {
		if err := cronService.Start(); err != nil {
			logger.Fatalf("Failed to start cron service: %v", err)
		}
	}

	logger.Info("Services initialized")

	// Initialize handlers
	routes := &handlers.Router{
		Guests:       handlers.NewGuestHandler(guestService, logger),
		Rooms:        handlers.NewRoomHandler(roomService, logger),
		Reservations: handlers.NewReservationHandler(reservationService, logger),
		Housekeeping: handlers.NewHousekeepingHandler(housekeepingService, logger),
		Reports:      handlers.NewReportHandler(dashboardService, reportService, exportService, activityService, logger),
		Admin:        handlers.NewAdminHandler(cronService, logger),
	}

	// Setup Gin router
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestContext())
	router.Use(middleware.RequestLogger(logger))
	router.Use(appMetrics.Middleware())

	// CORS configuration
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint
	router.GET("/health", healthCheckHandler(db))
	router.GET("/metrics", gin.WrapH(appMetrics.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	routes.Register(v1)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Infof("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	cronService.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited successfully")
}

// healthCheckHandler returns a health check endpoint
func healthCheckHandler(db database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "unhealthy",
				"error":    err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"database":  "healthy",
			"version":   version,
			"timestamp": time.Now().Unix(),
		})
	}
}
