package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"bookshelf/internal/microservices/http-api/dto"
	"bookshelf/internal/microservices/http-api/middleware"
	"bookshelf/internal/microservices/http-api/models"
	"bookshelf/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type UserBookHandler struct {
	svc     service.UserBookService
	stats   service.StatsService
	timeout time.Duration
}

func NewUserBookHandler(svc service.UserBookService, stats service.StatsService, timeout time.Duration) *UserBookHandler {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &UserBookHandler{svc: svc, stats: stats, timeout: timeout}
}

func (h *UserBookHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("", middleware.RequireAdmin(), h.List)
	rg.GET("/user/:userId", h.ListByUser)
	rg.GET("/user/:userId/stats", h.Stats)
	rg.GET("/:id", h.Get)
	rg.PATCH("/:id", h.Update)
	rg.PATCH("/:id/status", h.UpdateStatus)
	rg.PATCH("/:id/progress", h.UpdateProgress)
	rg.DELETE("/:id", h.Remove)
}

// Create adds a book to a library. user_id defaults to the caller.
func (h *UserBookHandler) Create(c *gin.Context) {
	var req dto.CreateUserBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.UserID == 0 {
		req.UserID, _ = middleware.CurrentUserID(c)
	}
	if !middleware.CanAccess(c, req.UserID) {
		forbidden(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	ub, err := h.svc.Create(ctx, req)
	if err != nil {
		if ub != nil && errors.Is(err, service.ErrGoalSync) {
			respondGoalSyncError(c, ub.ID, err)
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewUserBookResponse(ub))
}

func (h *UserBookHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	list, err := h.svc.FindAll(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserBookListResponse(list))
}

func (h *UserBookHandler) ListByUser(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}
	if !middleware.CanAccess(c, userID) {
		forbidden(c)
		return
	}

	var query dto.UserBookFilterQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	list, err := h.svc.FindByUser(ctx, userID, query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserBookListResponse(list))
}

func (h *UserBookHandler) Stats(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}
	if !middleware.CanAccess(c, userID) {
		forbidden(c)
		return
	}

	var year *int
	if raw := c.Query("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil || y < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
			return
		}
		year = &y
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	stats, err := h.stats.GetUserBookStats(ctx, userID, year)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *UserBookHandler) Get(c *gin.Context) {
	ub, _, cancel, ok := h.loadOwned(c)
	if !ok {
		return
	}
	defer cancel()

	c.JSON(http.StatusOK, dto.NewUserBookDetailResponse(ub))
}

func (h *UserBookHandler) Update(c *gin.Context) {
	var req dto.UpdateUserBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ub, ctx, cancel, ok := h.loadOwned(c)
	if !ok {
		return
	}
	defer cancel()

	updated, err := h.svc.Update(ctx, ub.ID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserBookResponse(updated))
}

func (h *UserBookHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	status, err := models.ParseReadingStatus(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ub, ctx, cancel, ok := h.loadOwned(c)
	if !ok {
		return
	}
	defer cancel()

	h.respondMutation(c, ub.ID, func() (*models.UserBook, error) {
		return h.svc.UpdateStatus(ctx, ub.ID, status)
	})
}

func (h *UserBookHandler) UpdateProgress(c *gin.Context) {
	var req dto.UpdateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ub, ctx, cancel, ok := h.loadOwned(c)
	if !ok {
		return
	}
	defer cancel()

	h.respondMutation(c, ub.ID, func() (*models.UserBook, error) {
		return h.svc.UpdateProgress(ctx, ub.ID, *req.CurrentPage)
	})
}

func (h *UserBookHandler) Remove(c *gin.Context) {
	ub, ctx, cancel, ok := h.loadOwned(c)
	if !ok {
		return
	}
	defer cancel()

	if err := h.svc.Remove(ctx, ub.ID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// loadOwned fetches the record named by :id and checks the caller may use it.
// On failure the response is already written.
func (h *UserBookHandler) loadOwned(c *gin.Context) (*models.UserBook, context.Context, context.CancelFunc, bool) {
	id, ok := parseID(c, "id")
	if !ok {
		return nil, nil, nil, false
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)

	ub, err := h.svc.FindOne(ctx, id)
	if err != nil {
		cancel()
		respondError(c, err)
		return nil, nil, nil, false
	}
	if !middleware.CanAccess(c, ub.UserID) {
		cancel()
		forbidden(c)
		return nil, nil, nil, false
	}
	return ub, ctx, cancel, true
}

func (h *UserBookHandler) respondMutation(c *gin.Context, id int64, mutate func() (*models.UserBook, error)) {
	ub, err := mutate()
	if err != nil {
		if ub != nil && errors.Is(err, service.ErrGoalSync) {
			respondGoalSyncError(c, id, err)
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserBookResponse(ub))
}
