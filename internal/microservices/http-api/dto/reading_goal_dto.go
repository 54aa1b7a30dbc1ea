package dto

import (
	"time"

	"bookshelf/internal/microservices/http-api/models"
)

// DateLayout is the wire format of goal start and end dates
const DateLayout = "2006-01-02"

type CreateReadingGoalRequest struct {
	UserID         int64  `json:"user_id" validate:"required,gt=0"`
	GoalName       string `json:"goal_name" validate:"required"`
	TargetBooks    int    `json:"target_books" validate:"required,min=1"`
	CompletedBooks *int   `json:"completed_books,omitempty" validate:"omitempty,gte=0"`
	StartDate      string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate        string `json:"end_date" validate:"required,datetime=2006-01-02"`
	IsActive       *bool  `json:"is_active,omitempty"`
}

// UpdateReadingGoalRequest: completed_books is deliberately absent
type UpdateReadingGoalRequest struct {
	GoalName    *string `json:"goal_name,omitempty" validate:"omitempty,min=1"`
	TargetBooks *int    `json:"target_books,omitempty" validate:"omitempty,min=1"`
	StartDate   *string `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate     *string `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

type ReadingGoalResponse struct {
	ID                 int64        `json:"id"`
	UserID             int64        `json:"user_id"`
	GoalName           string       `json:"goal_name"`
	TargetBooks        int          `json:"target_books"`
	CompletedBooks     int          `json:"completed_books"`
	StartDate          string       `json:"start_date"`
	EndDate            string       `json:"end_date"`
	IsActive           bool         `json:"is_active"`
	ProgressPercentage int          `json:"progress_percentage"`
	User               *models.User `json:"user,omitempty"`
	CreatedAt          string       `json:"created_at"`
	UpdatedAt          string       `json:"updated_at"`
}

func NewReadingGoalResponse(g *models.ReadingGoal) ReadingGoalResponse {
	return ReadingGoalResponse{
		ID:                 g.ID,
		UserID:             g.UserID,
		GoalName:           g.GoalName,
		TargetBooks:        g.TargetBooks,
		CompletedBooks:     g.CompletedBooks,
		StartDate:          g.StartDate.Format(DateLayout),
		EndDate:            g.EndDate.Format(DateLayout),
		IsActive:           g.IsActive,
		ProgressPercentage: g.ProgressPercentage(),
		User:               g.User,
		CreatedAt:          g.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          g.UpdatedAt.Format(time.RFC3339),
	}
}

func NewReadingGoalListResponse(goals []models.ReadingGoal) []ReadingGoalResponse {
	out := make([]ReadingGoalResponse, 0, len(goals))
	for i := range goals {
		out = append(out, NewReadingGoalResponse(&goals[i]))
	}
	return out
}
