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
	"github.com/google/uuid"
	"go.uber.org/zap"

	dispatchapp "github.com/wms/backend/internal/application/dispatch"
	"github.com/wms/backend/internal/application/expiration"
	intakeapp "github.com/wms/backend/internal/application/intake"
	warehouseapp "github.com/wms/backend/internal/application/warehouse"
	"github.com/wms/backend/internal/domain/dispatch"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/domain/warehouse"
	"github.com/wms/backend/internal/infrastructure/auth"
	"github.com/wms/backend/internal/infrastructure/config"
	"github.com/wms/backend/internal/infrastructure/event"
	"github.com/wms/backend/internal/infrastructure/logger"
	"github.com/wms/backend/internal/infrastructure/notify"
	"github.com/wms/backend/internal/infrastructure/persistence"
	"github.com/wms/backend/internal/infrastructure/scheduler"
	"github.com/wms/backend/internal/interfaces/http/handler"
	"github.com/wms/backend/internal/interfaces/http/middleware"
	"github.com/wms/backend/internal/interfaces/http/router"
)

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
		_ = log.Sync()
	}()

	log.Info("Starting warehouse backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database connection with a GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	warehouseRepo := persistence.NewGormWarehouseRepository(db.DB)
	sectionRepo := persistence.NewGormSectionRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	movementRepo := persistence.NewGormStockMovementRepository(db.DB)

	// The single operator warehouse is created on first start
	warehouseID, err := bootstrapWarehouse(context.Background(), warehouseRepo, cfg.Warehouse, log)
	if err != nil {
		log.Fatal("Failed to bootstrap warehouse", zap.Error(err))
	}

	// Event bus with Redis fan-out of committed domain events
	eventBus := event.NewInMemoryEventBus(log)
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	notifier, err := notify.NewRedisNotifier(cfg.Redis, notify.WithLogger(log))
	if err != nil {
		log.Warn("Redis notifier disabled", zap.Error(err))
	} else {
		eventBus.Subscribe(notifier)
		defer func() {
			if err := notifier.Close(); err != nil {
				log.Error("Error closing Redis notifier", zap.Error(err))
			}
		}()
	}

	// Application services
	scope := persistence.NewGormTransactionScope(db.DB)
	planner := warehouse.NewSectionPlanner(cfg.Warehouse.CoordinateRows)
	matcher := warehouse.NewSectionMatcher()
	allocator := warehouse.NewSlotAllocator()
	selector := dispatch.NewRetrievalSelector()

	sectionService := warehouseapp.NewSectionService(warehouseID, warehouseRepo, sectionRepo, planner)
	sectionService.SetEventPublisher(eventBus)

	intakeService := intakeapp.NewIntakeService(warehouseID, scope, matcher, allocator)
	intakeService.SetEventPublisher(eventBus)

	dispatchService := dispatchapp.NewDispatchService(scope.ForDispatch(), selector, allocator)
	dispatchService.SetEventPublisher(eventBus)

	expirationService := expiration.NewExpirationService(productRepo, eventBus, log)

	// Daily expiration scan
	if cfg.Scheduler.Enabled {
		scanScheduler, err := scheduler.New(cfg.Scheduler, scheduler.ScanJobFunc(func(ctx context.Context) error {
			_, err := expirationService.Scan(ctx)
			return err
		}), log)
		if err != nil {
			log.Fatal("Failed to create expiration scheduler", zap.Error(err))
		}
		if err := scanScheduler.Start(context.Background()); err != nil {
			log.Fatal("Failed to start expiration scheduler", zap.Error(err))
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := scanScheduler.Stop(ctx); err != nil {
				log.Error("Error stopping expiration scheduler", zap.Error(err))
			}
		}()
	}

	// HTTP engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Failed to set trusted proxies", zap.Error(err))
	}
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))

	middleware.SetupValidator()

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db))

	jwtService := auth.NewJWTService(cfg.JWT)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(middleware.JWTAuth(middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/api/v1/system/ping",
			"/api/v1/system/info",
		},
		Logger: log,
	}))

	r.Register(handler.NewSectionHandler(sectionService)).
		Register(handler.NewIntakeHandler(intakeService)).
		Register(handler.NewDispatchHandler(dispatchService)).
		Register(handler.NewMovementHandler(movementRepo)).
		Register(handler.NewSystemHandler(expirationService))
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
	if err := eventBus.Stop(ctx); err != nil {
		log.Error("Error stopping event bus", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// bootstrapWarehouse loads the configured warehouse, creating it on first
// start with the configured slot budget.
func bootstrapWarehouse(ctx context.Context, repo warehouse.WarehouseRepository, cfg config.WarehouseConfig, log *zap.Logger) (uuid.UUID, error) {
	existing, err := repo.FindByName(ctx, cfg.Name)
	if err == nil {
		log.Info("Warehouse loaded",
			zap.String("name", existing.Name),
			zap.Int("total_slots", existing.TotalSlots),
			zap.Int("used_slots", existing.UsedSlots),
		)
		return existing.ID, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return uuid.Nil, err
	}

	wh, err := warehouse.NewWarehouse(cfg.Name, cfg.Capacity)
	if err != nil {
		return uuid.Nil, err
	}
	if err := repo.Save(ctx, wh); err != nil {
		return uuid.Nil, err
	}
	log.Info("Warehouse created",
		zap.String("name", wh.Name),
		zap.Int("total_slots", wh.TotalSlots),
	)
	return wh.ID, nil
}

// healthHandler reports liveness of the service and its database
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
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
