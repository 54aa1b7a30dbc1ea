package models

import "time"

type Note struct {
	ID         int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserBookID int64     `json:"user_book_id" gorm:"not null;index"`
	Content    string    `json:"content" gorm:"not null;type:text"`
	PageNumber *int      `json:"page_number,omitempty"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	UserBook *UserBook `json:"user_book,omitempty" gorm:"foreignKey:UserBookID;constraint:OnDelete:CASCADE;"`
}

func (Note) TableName() string {
	return "notes"
}
