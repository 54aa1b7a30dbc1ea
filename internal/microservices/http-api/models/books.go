package models

import "time"

type Book struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string    `json:"title" gorm:"not null"`
	AuthorID    int64     `json:"author_id" gorm:"not null;index"`
	GenreID     *int64    `json:"genre_id,omitempty" gorm:"index"`
	TotalPages  int       `json:"total_pages" gorm:"not null"`
	CoverURL    *string   `json:"cover_url,omitempty"`
	Description *string   `json:"description,omitempty"`
	Year        *int      `json:"year,omitempty"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	Author *Author `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;"`
	Genre  *Genre  `json:"genre,omitempty" gorm:"foreignKey:GenreID;constraint:OnDelete:SET NULL;"`
}

func (Book) TableName() string {
	return "books"
}
