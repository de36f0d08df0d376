package app

import (
	"context"
	"fmt"
	"time"

	"weijob_backend/database"
	"weijob_backend/internal/cache"
	"weijob_backend/internal/config"
	"weijob_backend/internal/handlers"
	"weijob_backend/internal/logger"
	"weijob_backend/internal/middleware"
	"weijob_backend/internal/repositories"
	"weijob_backend/internal/routes"
	"weijob_backend/internal/services"
	"weijob_backend/internal/storage"
	"weijob_backend/internal/validator"
	"weijob_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	unlockCache := newUnlockCache(cfg)

	ginRouter, serviceContainer := SetupRouter(cfg, gormDB, unlockCache)

	// Background purge of expired unlock records.
	worker := workers.NewUnlockWorker(
		gormDB,
		serviceContainer.ShareService,
		time.Duration(cfg.Unlock.RetentionDays)*24*time.Hour,
		time.Duration(cfg.Unlock.PurgeIntervalHours)*time.Hour,
	)
	workerCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	worker.Start(workerCtx)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func newUnlockCache(cfg *config.Config) *cache.UnlockCache {
	unlockCache := cache.NewUnlockCache(
		cfg.Redis.Addr,
		cfg.Redis.Password,
		cfg.Redis.DB,
		time.Duration(cfg.Redis.UnlockTTLHours)*time.Hour,
	)
	if unlockCache == nil {
		logger.Warn("Redis address not configured, unlock caching disabled")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := unlockCache.Ping(ctx); err != nil {
		// The cache is an optimization; the ledger stays authoritative.
		logger.Warn("Redis unavailable, continuing without unlock cache", "error", err)
		return nil
	}
	logger.Info("Redis connected", "addr", cfg.Redis.Addr)
	return unlockCache
}

// SetupRouter wires repositories, services and handlers into a gin
// engine. Shared with the test server.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB, unlockCache *cache.UnlockCache) (*gin.Engine, *services.ServiceContainer) {
	storageInstance, err := storage.NewStorage(storage.Config{
		BasePath: cfg.Storage.BasePath,
		BaseURL:  cfg.Storage.BaseURL,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}

	serviceContainer := initializeServices(unlockCache, storageInstance)
	appHandlers := initializeHandlers(serviceContainer, storageInstance)

	ginRouter := initializeGinRouter(cfg, gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter, serviceContainer
}

func initializeServices(unlockCache *cache.UnlockCache, storageInstance storage.Storage) *services.ServiceContainer {
	userRepo := repositories.NewUserRepository()
	jobRepo := repositories.NewJobRepository()
	unlockRepo := repositories.NewUnlockRepository()

	gate := services.NewVisibilityGate(unlockRepo, unlockCache)

	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo)
	jobService := services.NewJobService(jobRepo, gate)
	shareService := services.NewShareService(unlockRepo, jobRepo, gate, unlockCache)
	uploadService := services.NewUploadService(storageInstance)

	return &services.ServiceContainer{
		AuthService:   authService,
		UserService:   userService,
		JobService:    jobService,
		ShareService:  shareService,
		UploadService: uploadService,
	}
}

func initializeHandlers(container *services.ServiceContainer, storageInstance storage.Storage) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:   handlers.NewAuthHandler(baseHandler, container.AuthService),
		UserHandler:   handlers.NewUserHandler(baseHandler, container.UserService),
		JobHandler:    handlers.NewJobHandler(baseHandler, container.JobService),
		ShareHandler:  handlers.NewShareHandler(baseHandler, container.ShareService),
		UploadHandler: handlers.NewUploadHandler(baseHandler, container.UploadService),
		FileHandler:   handlers.NewFileHandler(baseHandler, storageInstance),
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(gin.Recovery())
	router.Use(middleware.DBMiddleware(db))
	return router
}

