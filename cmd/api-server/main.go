package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"bookshelf/database"
	"bookshelf/internal/config"
	"bookshelf/internal/logger"
	"bookshelf/internal/microservices/http-api/middleware"
	"bookshelf/internal/microservices/http-api/repository"
	"bookshelf/internal/microservices/http-api/server"
	"bookshelf/internal/microservices/http-api/service"
)

func main() {
	// 1. Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	appLogger := logger.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	slog.SetDefault(appLogger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// 2. Connect to the database
	db, err := database.Connect(cfg, appLogger)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}
	defer database.Close(db)

	// 3. Stats cache, optional
	var statsCache repository.StatsCache = repository.NoopStatsCache{}
	if cfg.CacheEnabled() {
		redisAddr := strings.TrimPrefix(cfg.RedisURL, "redis://")
		redisCache, err := repository.NewRedisStatsCache(redisAddr, cfg.RedisPassword, cfg.CacheExpiry())
		if err != nil {
			appLogger.Warn("stats cache disabled", "error", err)
		} else {
			defer redisCache.Close()
			statsCache = redisCache
			appLogger.Info("stats cache enabled", "addr", redisAddr, "ttl", cfg.CacheExpiry())
		}
	}

	// 4. Repositories and services
	userRepo := repository.NewUserRepository(db)
	bookRepo := repository.NewBookRepository(db)
	userBookRepo := repository.NewUserBookRepository(db)
	goalRepo := repository.NewReadingGoalRepository(db)

	goalService := service.NewReadingGoalService(goalRepo, userBookRepo, userRepo, appLogger)
	userBookService := service.NewUserBookService(userBookRepo, userRepo, bookRepo, goalService, statsCache, appLogger)
	statsService := service.NewStatsService(userBookRepo, statsCache, appLogger)
	authService := service.NewAuthService(userRepo, cfg.JWTSecret)

	// 5. Setup Gin
	r := server.NewRouter(server.Deps{
		Auth:           authService,
		UserBooks:      userBookService,
		ReadingGoals:   goalService,
		Stats:          statsService,
		Logger:         appLogger,
		RateLimiter:    middleware.NewIPRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		RequestTimeout: cfg.RequestTimeout,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf("127.0.0.1:%d", cfg.HTTPPort),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		appLogger.Info("server running", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("graceful shutdown failed", "error", err)
	}
}
