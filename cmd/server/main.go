package main

import (
	"os"

	"github.com/gin-gonic/gin"

	"github.com/jeffholland/drillbuilder/internal/cache"
	"github.com/jeffholland/drillbuilder/internal/config"
	"github.com/jeffholland/drillbuilder/internal/handlers"
	"github.com/jeffholland/drillbuilder/internal/repositories/postgres"
	"github.com/jeffholland/drillbuilder/internal/services"
	"github.com/jeffholland/drillbuilder/internal/utils"
	"github.com/jeffholland/drillbuilder/internal/validator"
	"github.com/jeffholland/drillbuilder/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger := utils.NewDefaultLogger()
	if cfg.IsDevelopment() {
		logger = utils.NewDevelopmentLogger()
	}
	slogger := utils.ToSlogLogger(logger)

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := pkg.Migrate(db); err != nil {
		logger.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	var cacheService cache.CacheService = cache.NoopCache{}
	redisClient, err := pkg.NewRedisClient(cfg)
	if err != nil {
		logger.Warn("redis unavailable, caching disabled", "error", err)
	} else {
		defer redisClient.Close()
		cacheService = cache.NewRedisCache(redisClient, slogger)
	}

	publisher, err := cfg.Events.CreateEventPublisher(slogger)
	if err != nil {
		logger.Error("failed to create event publisher", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	repo := postgres.New(db)
	serviceManager := services.NewServiceManager(repo, cacheService, publisher, slogger, validator.New())
	handlerManager := handlers.NewHandlerManager(serviceManager, logger)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware(logger))

	handlerManager.SetupRoutes(router)

	logger.Info("starting server", "port", cfg.Port, "environment", cfg.Environment)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
