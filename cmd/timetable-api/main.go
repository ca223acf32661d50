package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/uniplan/timetable-api/api/swagger"
	"github.com/uniplan/timetable-api/internal/handler"
	"github.com/uniplan/timetable-api/internal/middleware"
	"github.com/uniplan/timetable-api/internal/models"
	"github.com/uniplan/timetable-api/internal/repository"
	"github.com/uniplan/timetable-api/internal/service"
	"github.com/uniplan/timetable-api/internal/timetable"
	"github.com/uniplan/timetable-api/pkg/cache"
	"github.com/uniplan/timetable-api/pkg/config"
	"github.com/uniplan/timetable-api/pkg/database"
	"github.com/uniplan/timetable-api/pkg/jobs"
	"github.com/uniplan/timetable-api/pkg/logger"
	corsmiddleware "github.com/uniplan/timetable-api/pkg/middleware/cors"
	reqidmiddleware "github.com/uniplan/timetable-api/pkg/middleware/requestid"
	"github.com/uniplan/timetable-api/pkg/storage"
)

// @title Timetable API
// @version 1.0.0
// @description Computed timetable views, occupancy answers and the reschedule-request workflow for generated schedules.
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

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, running without cache", "error", err)
		redisClient = nil
	}

	exportStore, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to prepare export storage", "error", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)

	validate := validator.New()

	allocationRepo := repository.NewAllocationRepository(db)
	requestRepo := repository.NewRequestRepository(db, allocationRepo)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	gridCfg := timetable.GridConfig{
		SlotMinutes:    cfg.Grid.SlotMinutes,
		DayStartMinute: cfg.Grid.DayStartMinute,
		DayEndMinute:   cfg.Grid.DayEndMinute,
		Days:           cfg.Grid.Days,
	}

	metricsSvc := service.NewMetricsService()
	authSvc := service.NewAuthService(cfg.JWT.Secret)
	timetableSvc := service.NewTimetableService(allocationRepo, cacheRepo, gridCfg, cfg.Grid.CacheTTL, validate, logr)
	occupancySvc := service.NewOccupancyService(timetableSvc, cfg.Occupancy.OnlineWithin, cfg.Occupancy.AwayWithin, logr)
	exportSvc := service.NewExportService(timetableSvc, exportStore, signer, cfg.Exports.SignedURLTTL, logr)

	// The sink logs decisions; the campus notification gateway subscribes to
	// these log lines in staging until its HTTP endpoint is ready.
	sink := service.DecisionSinkFunc(func(ctx context.Context, event models.DecisionEvent) error {
		logr.Info("reschedule decision delivered",
			zap.String("requestId", event.RequestID),
			zap.String("requester", event.RequesterID),
			zap.String("decision", string(event.Decision)),
		)
		metricsSvc.RecordDecision(event.Decision)
		return nil
	})
	notifySvc := service.NewNotificationService(sink, jobs.QueueConfig{
		Workers:    cfg.Notifications.Workers,
		BufferSize: cfg.Notifications.BufferSize,
		Logger:     logr,
	})
	notifySvc.Start(context.Background())
	defer notifySvc.Stop()

	requestSvc := service.NewRequestService(requestRepo, allocationRepo, timetableSvc, notifySvc, validate, logr)

	timetableHandler := handler.NewTimetableHandler(timetableSvc)
	occupancyHandler := handler.NewOccupancyHandler(occupancySvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	requestHandler := handler.NewRequestHandler(requestSvc)

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Exports.CleanupSchedule, exportSvc.CleanupExpired); err != nil {
		logr.Sugar().Warnw("invalid export cleanup schedule, cleanup disabled", "schedule", cfg.Exports.CleanupSchedule, "error", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

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
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "db unreachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	authed := api.Group("", middleware.JWT(authSvc))

	schedules := authed.Group("/schedules/:id")
	schedules.GET("/timetable", timetableHandler.Grid)
	schedules.GET("/timetable/diagnostics", middleware.RequireRoles(models.RoleAdmin), timetableHandler.Diagnostics)
	schedules.GET("/blocks", timetableHandler.Blocks)
	schedules.GET("/export", exportHandler.Export)
	schedules.GET("/rooms/:room/occupancy", occupancyHandler.RoomOccupancy)

	authed.GET("/faculty/:name/presence", occupancyHandler.FacultyPresence)

	// Signed token carries its own authorization.
	api.GET("/exports/:token", exportHandler.Download)

	if cfg.Requests.Enabled {
		requests := authed.Group("/requests")
		requests.POST("", requestHandler.Create)
		requests.GET("", requestHandler.List)
		requests.GET("/:id", requestHandler.Get)
		requests.POST("/:id/approve", middleware.RequireRoles(models.RoleAdmin), requestHandler.Approve)
		requests.POST("/:id/reject", middleware.RequireRoles(models.RoleAdmin), requestHandler.Reject)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
