package handler

import (
	"context"
	"net/http"
	"time"

	"bookshelf/internal/microservices/http-api/dto"
	"bookshelf/internal/microservices/http-api/middleware"
	"bookshelf/internal/microservices/http-api/models"
	"bookshelf/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type ReadingGoalHandler struct {
	svc     service.ReadingGoalService
	timeout time.Duration
}

func NewReadingGoalHandler(svc service.ReadingGoalService, timeout time.Duration) *ReadingGoalHandler {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &ReadingGoalHandler{svc: svc, timeout: timeout}
}

func (h *ReadingGoalHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("", middleware.RequireAdmin(), h.List)
	rg.GET("/user/:userId", h.ListByUser)
	rg.POST("/user/:userId/sync", h.Sync)
	rg.GET("/:id", h.Get)
	rg.PATCH("/:id", h.Update)
	rg.DELETE("/:id", h.Remove)
}

// Create makes a goal. user_id defaults to the caller.
func (h *ReadingGoalHandler) Create(c *gin.Context) {
	var req dto.CreateReadingGoalRequest
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

	goal, err := h.svc.Create(ctx, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewReadingGoalResponse(goal))
}

func (h *ReadingGoalHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	goals, err := h.svc.FindAll(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewReadingGoalListResponse(goals))
}

func (h *ReadingGoalHandler) ListByUser(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}
	if !middleware.CanAccess(c, userID) {
		forbidden(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	goals, err := h.svc.ListByUser(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewReadingGoalListResponse(goals))
}

// Sync recomputes the user's active goals and returns all of their goals
func (h *ReadingGoalHandler) Sync(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}
	if !middleware.CanAccess(c, userID) {
		forbidden(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	if err := h.svc.Synchronize(ctx, userID); err != nil {
		respondError(c, err)
		return
	}

	goals, err := h.svc.ListByUser(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewReadingGoalListResponse(goals))
}

func (h *ReadingGoalHandler) Get(c *gin.Context) {
	goal, _, cancel, ok := h.loadOwned(c)
	if !ok {
		return
	}
	defer cancel()

	c.JSON(http.StatusOK, dto.NewReadingGoalResponse(goal))
}

func (h *ReadingGoalHandler) Update(c *gin.Context) {
	var req dto.UpdateReadingGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal, ctx, cancel, ok := h.loadOwned(c)
	if !ok {
		return
	}
	defer cancel()

	updated, err := h.svc.Update(ctx, goal.ID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewReadingGoalResponse(updated))
}

func (h *ReadingGoalHandler) Remove(c *gin.Context) {
	goal, ctx, cancel, ok := h.loadOwned(c)
	if !ok {
		return
	}
	defer cancel()

	if err := h.svc.Remove(ctx, goal.ID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ReadingGoalHandler) loadOwned(c *gin.Context) (*models.ReadingGoal, context.Context, context.CancelFunc, bool) {
	id, ok := parseID(c, "id")
	if !ok {
		return nil, nil, nil, false
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)

	goal, err := h.svc.FindOne(ctx, id)
	if err != nil {
		cancel()
		respondError(c, err)
		return nil, nil, nil, false
	}
	if !middleware.CanAccess(c, goal.UserID) {
		cancel()
		forbidden(c)
		return nil, nil, nil, false
	}
	return goal, ctx, cancel, true
}
