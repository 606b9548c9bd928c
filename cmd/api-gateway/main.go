package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/eduboost/course-portal-api/api/swagger"
	"github.com/eduboost/course-portal-api/internal/handler"
	"github.com/eduboost/course-portal-api/internal/middleware"
	"github.com/eduboost/course-portal-api/internal/repository"
	"github.com/eduboost/course-portal-api/internal/service"
	"github.com/eduboost/course-portal-api/pkg/cache"
	"github.com/eduboost/course-portal-api/pkg/config"
	"github.com/eduboost/course-portal-api/pkg/database"
	"github.com/eduboost/course-portal-api/pkg/logger"
	corsmiddleware "github.com/eduboost/course-portal-api/pkg/middleware/cors"
	reqidmiddleware "github.com/eduboost/course-portal-api/pkg/middleware/requestid"
	"github.com/eduboost/course-portal-api/pkg/openai"
)

// @title Course Portal API
// @version 1.0.0
// @description Password-gated course portal backend: notes, resources, display ordering, AI study tools
// @BasePath /api
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Storage backend: one of PostgreSQL or a flat JSON file. Both
	// expose the same store surface so the services never know which
	// one they got.
	var (
		noteStore     service.NoteStore
		resourceStore service.ResourceStore
		orderStore    service.OrderStore
		accessStore   service.AccessEventStore
	)
	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
		}
		defer db.Close() //nolint:errcheck
		noteStore = repository.NewNoteRepository(db)
		resourceStore = repository.NewResourceRepository(db)
		orderStore = repository.NewOrderRepository(db)
		accessStore = repository.NewAccessEventRepository(db)
	case config.StorageDriverFile:
		store, err := repository.NewFileStore(cfg.Storage.FilePath)
		if err != nil {
			logr.Sugar().Fatalw("failed to open file store", "error", err, "path", cfg.Storage.FilePath)
		}
		noteStore = store.NoteStore()
		resourceStore = store.ResourceStore()
		orderStore = store.OrderStore()
		accessStore = store.AccessEventStore()
	default:
		logr.Sugar().Fatalw("unknown storage driver", "driver", cfg.Storage.Driver)
	}

	sessions := service.NewSessionService(service.SessionConfig{
		StudentSecret:   cfg.Auth.StudentPassword,
		ProfessorSecret: cfg.Auth.ProfessorPassword,
		TTL:             cfg.Auth.SessionTTL,
		SweepInterval:   cfg.Auth.SweepInterval,
	}, logr)
	sessions.StartSweeper(ctx)

	rateCfg := service.RateLimitConfig{Window: cfg.RateLimit.Window, MaxRequests: cfg.RateLimit.MaxRequests}
	var limiter service.RateLimiter
	if cfg.Redis.Enabled {
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect to redis", "error", err)
		}
		defer client.Close() //nolint:errcheck
		limiter = service.NewRedisRateLimiter(client, rateCfg)
	} else {
		memLimiter := service.NewMemoryRateLimiter(rateCfg)
		memLimiter.StartSweeper(ctx, cfg.RateLimit.Window)
		limiter = memLimiter
	}

	metrics := service.NewMetricsService(sessions.Count)

	orders := service.NewOrderService(orderStore, logr)
	notes := service.NewNoteService(noteStore, orders, cfg.Limits, logr)
	resources := service.NewResourceService(resourceStore, orders, cfg.Limits, logr)
	exports := service.NewExportService(notes)

	ai := service.NewAIService(openai.New(openai.Config{
		APIKey:         cfg.OpenAI.APIKey,
		BaseURL:        cfg.OpenAI.BaseURL,
		ChatModel:      cfg.OpenAI.ChatModel,
		SpeechModel:    cfg.OpenAI.SpeechModel,
		SpeechVoice:    cfg.OpenAI.SpeechVoice,
		RequestTimeout: cfg.OpenAI.RequestTimeout,
	}), cfg.Limits, logr)

	feed := service.NewFeedService(nil, cfg.Feed, logr)

	analytics := service.NewAnalyticsService(accessStore, cfg.Analytics, logr)
	analytics.Start(ctx)
	defer analytics.Stop()

	authHandler := handler.NewAuthHandler(sessions, metrics, cfg.Limits.MaxPasswordLength)
	noteHandler := handler.NewNoteHandler(notes)
	resourceHandler := handler.NewResourceHandler(resources)
	orderHandler := handler.NewOrderHandler(orders)
	aiHandler := handler.NewAIHandler(ai, metrics)
	feedHandler := handler.NewFeedHandler(feed)
	analyticsHandler := handler.NewAnalyticsHandler(analytics)
	exportHandler := handler.NewExportHandler(exports)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"ok":          true,
			"authEnabled": sessions.Enabled(),
			"rateLimit": gin.H{
				"windowMs":    cfg.RateLimit.Window.Milliseconds(),
				"maxRequests": cfg.RateLimit.MaxRequests,
			},
		})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.RateLimit(limiter, cfg.RateLimit, metrics, logr))

	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/prof-login", authHandler.ProfessorLogin)
	api.GET("/auth/status", authHandler.Status)

	authed := api.Group("")
	authed.Use(middleware.RequireSession(sessions))
	authed.Use(middleware.AccessLog(analytics))
	{
		authed.GET("/notes", noteHandler.List)
		authed.GET("/resources", resourceHandler.List)
		authed.GET("/feed", feedHandler.Get)
		authed.POST("/ai/summarize", aiHandler.Summarize)
		authed.POST("/ai/flashcards", aiHandler.Flashcards)
		authed.POST("/ai/podcast", aiHandler.Podcast)
	}

	professor := api.Group("")
	professor.Use(middleware.RequireProfessor(sessions, metrics))
	professor.Use(middleware.AccessLog(analytics))
	{
		professor.POST("/notes", noteHandler.Create)
		professor.PUT("/notes/:id", noteHandler.Update)
		professor.DELETE("/notes/:id", noteHandler.Delete)
		professor.POST("/resources", resourceHandler.Create)
		professor.PUT("/resources/:id", resourceHandler.Update)
		professor.DELETE("/resources/:id", resourceHandler.Delete)
		professor.PUT("/order", orderHandler.Set)
		professor.GET("/analytics/access", analyticsHandler.AccessReport)
		if cfg.Exports.Enabled {
			professor.GET("/notes/export", exportHandler.ExportNotes)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{Addr: addr, Handler: r}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "storage", cfg.Storage.Driver, "auth_enabled", sessions.Enabled())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}
