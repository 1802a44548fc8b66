package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"comnibus/database"
	"comnibus/internal/config"
	"comnibus/internal/http-api/handler"
	"comnibus/internal/http-api/middleware"
	"comnibus/internal/http-api/repository"
	"comnibus/internal/http-api/service"
)

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(h)
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoTimeout)
	defer cancel()

	client, collections, err := database.ConnectDB(ctx, cfg, logger)
	if err != nil {
		logger.Error("could not connect to store", "error", err)
		os.Exit(1)
	}
	defer client.Disconnect(context.Background())

	redisClient, err := database.ConnectRedis(ctx, cfg)
	if err != nil {
		logger.Error("could not connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	// Repositories
	userRepo := repository.NewUserRepository(collections.Users)
	bookRepo := repository.NewBookRepository(collections.Books)
	thoughtRepo := repository.NewThoughtRepository(collections.Thoughts)
	reportRepo := repository.NewReportRepository(collections.Reports)
	messageRepo := repository.NewMessageRepository(collections.Messages)
	requestRepo := repository.NewRequestRepository(collections.Requests)
	blacklist := repository.NewTokenBlacklist(redisClient)

	// Services
	messageService := service.NewMessageService(messageRepo)
	aggregationService := service.NewAggregationService(bookRepo, userRepo)
	authService := service.NewAuthService(userRepo, blacklist, cfg)
	socialService := service.NewSocialService(userRepo, messageService)
	feedService := service.NewFeedService(userRepo, bookRepo, thoughtRepo)
	catalogService := service.NewCatalogService(bookRepo)
	reviewService := service.NewReviewService(bookRepo, aggregationService, messageService, cfg.MaxReviewsPerWeek)
	thoughtService := service.NewThoughtService(thoughtRepo, messageService)
	reportService := service.NewReportService(reportRepo, bookRepo, thoughtRepo, aggregationService, messageService)
	shelfService := service.NewShelfService(userRepo, bookRepo, aggregationService)
	requestService := service.NewRequestService(requestRepo, bookRepo, messageService)

	if cfg.GoEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID(logger))
	r.Use(middleware.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst).Middleware())

	r.GET("/check-conn", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "API is alive and database connected"})
	})

	api := r.Group("/api/v1.0")
	authed := api.Group("", middleware.AuthMiddleware(authService))
	admin := authed.Group("", middleware.RequireAdmin())

	handler.NewAuthHandler(authService).RegisterRoutes(api, authed, admin)
	handler.NewSocialHandler(socialService, feedService).RegisterRoutes(authed)
	handler.NewBookHandler(catalogService).RegisterRoutes(api, authed)
	handler.NewReviewHandler(reviewService).RegisterRoutes(api, authed)
	handler.NewThoughtHandler(thoughtService).RegisterRoutes(api, authed, admin)
	handler.NewReportHandler(reportService).RegisterRoutes(authed, admin)
	handler.NewShelfHandler(shelfService, authService).RegisterRoutes(authed)
	handler.NewMessageHandler(messageService).RegisterRoutes(authed)
	handler.NewRequestHandler(requestService).RegisterRoutes(authed, admin)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("server starting", "addr", addr, "env", cfg.GoEnv)
	if err := r.Run(addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
