package models

import (
	"fmt"
	"math"
	"time"
)

// ReadingStatus is the closed set of states a UserBook can be in.
type ReadingStatus string

const (
	StatusToRead    ReadingStatus = "to-read"
	StatusReading   ReadingStatus = "reading"
	StatusCompleted ReadingStatus = "completed"
)

// Valid reports whether s is one of the three known statuses
func (s ReadingStatus) Valid() bool {
	switch s {
	case StatusToRead, StatusReading, StatusCompleted:
		return true
	}
	return false
}

// ParseReadingStatus converts raw input into a ReadingStatus
func ParseReadingStatus(raw string) (ReadingStatus, error) {
	s := ReadingStatus(raw)
	if !s.Valid() {
		return "", fmt.Errorf("status must be to-read, reading or completed, got %q", raw)
	}
	return s, nil
}

// UserBook is a user's personal record of one book.
// completed_at is set if and only if status is completed.
type UserBook struct {
	ID          int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      int64         `gorm:"not null;uniqueIndex:idx_user_books_user_book" json:"user_id"`
	BookID      int64         `gorm:"not null;uniqueIndex:idx_user_books_user_book;index" json:"book_id"`
	Status      ReadingStatus `gorm:"type:varchar(16);not null;default:'to-read';index" json:"status"`
	CurrentPage int           `gorm:"not null;default:0" json:"current_page"`
	Rating      *int          `gorm:"check:rating IS NULL OR (rating >= 1 AND rating <= 5)" json:"rating,omitempty"`
	Review      *string       `gorm:"type:text" json:"review,omitempty"`
	StartedAt   *time.Time    `json:"started_at,omitempty"`
	CompletedAt *time.Time    `gorm:"index" json:"completed_at,omitempty"`
	CreatedAt   time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time     `gorm:"autoUpdateTime" json:"updated_at"`

	// Associations
	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"user,omitempty"`
	Book *Book `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE;" json:"book,omitempty"`
}

func (UserBook) TableName() string {
	return "user_books"
}

// ProgressPercentage returns currentPage/totalPages as a rounded percentage.
// Books without a positive page count report 0.
func ProgressPercentage(currentPage, totalPages int) int {
	if totalPages <= 0 {
		return 0
	}
	return int(math.Round(float64(currentPage) / float64(totalPages) * 100))
}
