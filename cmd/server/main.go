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

	"github.com/hcm/backend/internal/application/hcmsync"
	"github.com/hcm/backend/internal/infrastructure/config"
	"github.com/hcm/backend/internal/infrastructure/logger"
	"github.com/hcm/backend/internal/infrastructure/persistence"
	"github.com/hcm/backend/internal/infrastructure/scheduler"
	"github.com/hcm/backend/internal/infrastructure/vendors"
	"github.com/hcm/backend/internal/interfaces/http/handler"
	"github.com/hcm/backend/internal/interfaces/http/middleware"
	"github.com/hcm/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting HCM backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize database with a zap-backed gorm logger
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to migrate database", zap.Error(err))
	}

	// Repositories
	configRepo := persistence.NewGormERPConfigRepository(db.DB)
	employeeRepo := persistence.NewGormERPEmployeeRepository(db.DB)
	logRepo := persistence.NewGormERPSyncLogRepository(db.DB)

	// Vendor connector registry
	registry := vendors.NewRegistry(&http.Client{
		Timeout: cfg.Connector.RequestTimeout,
	})

	// Sync orchestrator
	syncService := hcmsync.NewService(
		configRepo, employeeRepo, logRepo, registry, log.Named("hcmsync"),
		hcmsync.WithPageSize(cfg.Connector.PageSize),
		hcmsync.WithRunTimeout(cfg.Connector.RunTimeout),
	)

	// Scheduled sync trigger
	if cfg.Scheduler.Enabled {
		trigger := scheduler.NewEmployeeSyncTrigger(
			scheduler.EmployeeSyncTriggerConfig{CheckInterval: cfg.Scheduler.CheckInterval},
			configRepo,
			syncService,
			log.Named("scheduler"),
		)
		if err := trigger.Start(context.Background()); err != nil {
			log.Fatal("Failed to start sync trigger", zap.Error(err))
		}
		defer func() {
			stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer stopCancel()
			if err := trigger.Stop(stopCtx); err != nil {
				log.Warn("Sync trigger did not stop cleanly", zap.Error(err))
			}
		}()
	}

	// HTTP engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Warn("Failed to set trusted proxies", zap.Error(err))
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORS())

	// Liveness probe outside API versioning
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewERPSyncHandler(syncService))
	r.Register(handler.NewSystemHandler(db))
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
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	// Let in-flight sync runs finish before closing the database
	syncService.Shutdown()

	log.Info("Server exited gracefully")
}
