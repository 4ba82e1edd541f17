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

	"github.com/mentorhub/dashboard-service/internal/cache"
	"github.com/mentorhub/dashboard-service/internal/channels"
	"github.com/mentorhub/dashboard-service/internal/config"
	"github.com/mentorhub/dashboard-service/internal/handlers"
	"github.com/mentorhub/dashboard-service/internal/repositories/postgres"
	"github.com/mentorhub/dashboard-service/internal/services"
	"github.com/mentorhub/dashboard-service/internal/store"
	"github.com/mentorhub/dashboard-service/internal/utils"
	"github.com/mentorhub/dashboard-service/internal/validator"
	"github.com/mentorhub/dashboard-service/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	var logger utils.Logger
	if cfg.Environment == "development" {
		logger = utils.NewDevelopmentLogger()
	} else {
		logger = utils.NewDefaultLogger()
	}
	slogger := utils.ToSlogLogger(logger)

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := pkg.Migrate(db); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	redisClient, err := pkg.NewRedisClient(cfg)
	if err != nil {
		logger.Error("Failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	publisher, err := cfg.Events.CreateEventPublisher(slogger)
	if err != nil {
		logger.Error("Failed to create event publisher", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	ctx := context.Background()

	repo := postgres.NewRepository(db)
	cacheService := cache.NewRedisCache(redisClient, slogger)
	notificationStore := store.New(ctx, store.NewRedisBackend(redisClient, ""), slogger)

	// Side channels. Chime and desktop ride the existing redis and event
	// infrastructure; email only exists when sendgrid is configured.
	var email channels.Channel
	if cfg.SendgridAPIKey != "" && len(cfg.EmailTo) > 0 {
		email = channels.NewEmailChannel(cfg.SendgridAPIKey, cfg.AppName, cfg.EmailFrom, cfg.EmailTo)
	}
	dispatcher := channels.NewDispatcher(slogger,
		channels.NewChimeChannel(redisClient),
		channels.NewDesktopPushChannel(publisher, cfg.Events.PushTopic),
		email,
	)
	defer dispatcher.Flush()

	v := validator.New()

	notificationService := services.NewNotificationService(notificationStore, dispatcher, publisher, slogger, v, cfg.Events.EventTopic)
	svcs := handlers.Services{
		Dashboard:    services.NewDashboardService(repo, slogger),
		Student:      services.NewStudentService(repo, slogger, v, publisher, notificationService, cfg.Events.EventTopic),
		User:         services.NewUserService(repo, cacheService, slogger, v),
		Batch:        services.NewBatchService(repo, slogger, v, publisher, cfg.Events.EventTopic),
		Package:      services.NewPackageService(repo, slogger, v),
		Notification: notificationService,
		Export:       services.NewExportService(repo, slogger),
	}

	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware(logger))

	handlers.NewHandlerManager(svcs, logger).SetupRoutes(router)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Starting dashboard service", "port", cfg.Port, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Forced shutdown", "error", err)
	}
}
