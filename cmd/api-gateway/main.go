package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/Aplkalex/cuhk-scheduler-sub000/api/swagger"
	"github.com/Aplkalex/cuhk-scheduler-sub000/internal/handler"
	"github.com/Aplkalex/cuhk-scheduler-sub000/internal/middleware"
	"github.com/Aplkalex/cuhk-scheduler-sub000/internal/repository"
	"github.com/Aplkalex/cuhk-scheduler-sub000/internal/service"
	"github.com/Aplkalex/cuhk-scheduler-sub000/pkg/cache"
	"github.com/Aplkalex/cuhk-scheduler-sub000/pkg/config"
	"github.com/Aplkalex/cuhk-scheduler-sub000/pkg/logger"
	corsmiddleware "github.com/Aplkalex/cuhk-scheduler-sub000/pkg/middleware/cors"
	reqidmiddleware "github.com/Aplkalex/cuhk-scheduler-sub000/pkg/middleware/requestid"
)

// @title CUHK Course Scheduler API
// @version 0.1.0
// @description Weekly timetable generation and ranking engine
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	catalog, err := repository.LoadCatalog(cfg.Catalog.Path, cfg.Catalog.Format, logr)
	if err != nil {
		logr.Sugar().Fatalw("failed to load catalog", "path", cfg.Catalog.Path, "error", err)
	}

	metricsSvc := service.NewMetricsService()

	var cacheRepo service.CacheRepository
	if cfg.Redis.Enabled {
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		} else {
			repo := repository.NewCacheRepository(client, logr)
			defer repo.Close() //nolint:errcheck
			cacheRepo = repo
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Generator.CacheTTL, logr,
		cfg.Generator.CacheEnabled && cacheRepo != nil)

	generatorSvc := service.NewGeneratorService(catalog, cacheSvc, metricsSvc, logr, cfg.Generator)
	catalogSvc := service.NewCatalogService(catalog)

	scheduleHandler := handler.NewScheduleHandler(generatorSvc)
	courseHandler := handler.NewCourseHandler(catalogSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready", "courses": catalog.Count()})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/schedules/generate", scheduleHandler.Generate)
		api.GET("/schedules/preferences", scheduleHandler.Preferences)

		api.GET("/courses", courseHandler.List)
		api.GET("/courses/departments", courseHandler.Departments)
		api.GET("/courses/:code", courseHandler.Get)
	}

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "courses", catalog.Count())
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
