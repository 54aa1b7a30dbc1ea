package models

import (
	"math"
	"time"
)

// ReadingGoal is a target number of books to finish between two dates.
// CompletedBooks is a cached count owned by the goal synchronizer.
type ReadingGoal struct {
	ID             int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID         int64     `json:"user_id" gorm:"not null;index"`
	GoalName       string    `json:"goal_name" gorm:"not null"`
	TargetBooks    int       `json:"target_books" gorm:"not null;check:target_books >= 1"`
	CompletedBooks int       `json:"completed_books" gorm:"not null;default:0"`
	StartDate      time.Time `json:"start_date" gorm:"type:date;not null"`
	EndDate        time.Time `json:"end_date" gorm:"type:date;not null"`
	IsActive       bool      `json:"is_active" gorm:"not null;index"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
}

func (ReadingGoal) TableName() string {
	return "reading_goals"
}

// ProgressPercentage is completed/target rounded, 0 when target is not positive
func (g *ReadingGoal) ProgressPercentage() int {
	if g.TargetBooks <= 0 {
		return 0
	}
	return int(math.Round(float64(g.CompletedBooks) / float64(g.TargetBooks) * 100))
}
