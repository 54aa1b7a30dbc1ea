package handler

import (
	"errors"
	"net/http"
	"strconv"

	"bookshelf/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

// respondError maps service error kinds onto HTTP statuses
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// respondGoalSyncError reports a change that was saved while the goal
// counters could not be refreshed
func respondGoalSyncError(c *gin.Context, userBookID int64, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":        err.Error(),
		"user_book_id": userBookID,
		"saved":        true,
	})
}

func forbidden(c *gin.Context) {
	c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
}

func parseID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + param})
		return 0, false
	}
	return id, true
}
