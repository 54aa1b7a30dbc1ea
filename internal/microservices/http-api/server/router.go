package server

import (
	"log/slog"
	"net/http"
	"time"

	"bookshelf/internal/microservices/http-api/handler"
	"bookshelf/internal/microservices/http-api/middleware"
	"bookshelf/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

// Deps are the services the HTTP layer exposes.
type Deps struct {
	Auth           service.AuthService
	UserBooks      service.UserBookService
	ReadingGoals   service.ReadingGoalService
	Stats          service.StatsService
	Logger         *slog.Logger
	RateLimiter    *middleware.IPRateLimiter
	RequestTimeout time.Duration
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	if d.Logger != nil {
		r.Use(middleware.RequestLogger(d.Logger))
	}
	if d.RateLimiter != nil {
		r.Use(middleware.RateLimit(d.RateLimiter))
	}

	r.GET("/check-conn", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"message": "API is alive and database connected",
		})
	})

	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(d.Auth))
	{
		handler.NewUserBookHandler(d.UserBooks, d.Stats, d.RequestTimeout).
			RegisterRoutes(api.Group("/user-books"))
		handler.NewReadingGoalHandler(d.ReadingGoals, d.RequestTimeout).
			RegisterRoutes(api.Group("/reading-goals"))
	}

	return r
}
