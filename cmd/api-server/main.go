package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/daktarbari/doctor-directory-api/api/swagger"
	"github.com/daktarbari/doctor-directory-api/internal/handler"
	"github.com/daktarbari/doctor-directory-api/internal/lexicon"
	"github.com/daktarbari/doctor-directory-api/internal/middleware"
	"github.com/daktarbari/doctor-directory-api/internal/nlp"
	"github.com/daktarbari/doctor-directory-api/internal/repository"
	"github.com/daktarbari/doctor-directory-api/internal/search"
	"github.com/daktarbari/doctor-directory-api/internal/service"
	"github.com/daktarbari/doctor-directory-api/pkg/cache"
	"github.com/daktarbari/doctor-directory-api/pkg/config"
	"github.com/daktarbari/doctor-directory-api/pkg/database"
	"github.com/daktarbari/doctor-directory-api/pkg/logger"
	corsmiddleware "github.com/daktarbari/doctor-directory-api/pkg/middleware/cors"
	reqidmiddleware "github.com/daktarbari/doctor-directory-api/pkg/middleware/requestid"
)

// @title Doctor Directory API
// @version 1.0.0
// @description Doctor directory with AI-assisted natural language search
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		} else {
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.TTL, logr, true)
		}
	}

	doctorRepo := repository.NewDoctorRepository(db)
	validate := validator.New()

	doctorSvc := service.NewDoctorService(doctorRepo, cacheSvc, validate, logr)

	var exportSvc *service.ExportService
	if cfg.Export.Enabled {
		exportSvc = service.NewExportService(doctorRepo)
	}

	var searchSvc *service.SearchService
	if cfg.AISearch.Enabled {
		var translator nlp.Translator
		if cfg.Translator.Enabled {
			translator = nlp.NewHTTPTranslator(cfg.Translator)
		}
		normalizer := nlp.NewNormalizer(translator, cfg.Translator.TargetLanguage, logr, metricsSvc)

		extractor, err := nlp.NewExtractor(cfg.AISearch, logr)
		if err != nil {
			logr.Sugar().Fatalw("failed to init criteria extractor", "error", err)
		}

		builder := search.NewBuilder(lexicon.Default())
		searchSvc = service.NewSearchService(normalizer, extractor, builder, doctorRepo, metricsSvc, logr, cfg.AISearch.FallbackDistrict)
	}

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
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	doctorHandler := handler.NewDoctorHandler(doctorSvc, exporterOrNil(exportSvc))
	doctors := api.Group("/doctors")
	doctors.GET("", doctorHandler.List)
	doctors.POST("", doctorHandler.Create)
	doctors.GET("/export", doctorHandler.Export)
	doctors.GET("/:id", doctorHandler.Get)
	doctors.PUT("/:id", doctorHandler.Update)
	doctors.DELETE("/:id", doctorHandler.Delete)
	doctors.POST("/:id/restore", doctorHandler.Restore)

	if searchSvc != nil {
		searchHandler := handler.NewSearchHandler(searchSvc)
		api.POST("/search/ai", searchHandler.Search)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Info("server starting",
		zap.String("addr", addr),
		zap.String("env", cfg.Env),
		zap.Bool("ai_search", searchSvc != nil),
		zap.Bool("cache", cacheSvc.Enabled()),
	)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

// exporterOrNil keeps the handler's nil check meaningful: a typed nil
// *ExportService in an interface would not compare equal to nil.
func exporterOrNil(svc *service.ExportService) handler.ExportService {
	if svc == nil {
		return nil
	}
	return svc
}
