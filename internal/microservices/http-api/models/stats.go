package models

import "time"

// UserBookStats summarizes a user's library, optionally for one year.
type UserBookStats struct {
	TotalBooks         int          `json:"total_books"`
	CompletedBooks     int          `json:"completed_books"`
	ReadingBooks       int          `json:"reading_books"`
	ToReadBooks        int          `json:"to_read_books"`
	TotalPages         int          `json:"total_pages"`
	AverageRating      float64      `json:"average_rating"`
	FavoriteGenre      *string      `json:"favorite_genre"`
	RecentlyAddedBooks []RecentBook `json:"recently_added_books"`
}

// RecentBook is the trimmed projection used in RecentlyAddedBooks.
type RecentBook struct {
	ID        int64             `json:"id"`
	Book      RecentBookSummary `json:"book"`
	Status    ReadingStatus     `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
}

type RecentBookSummary struct {
	ID       int64   `json:"id"`
	Title    string  `json:"title"`
	Author   *string `json:"author"`
	CoverURL *string `json:"cover_url"`
}
