package dto

import "bookshelf/internal/microservices/http-api/models"

// CreateUserBookRequest: payload to add a book to a user's library
type CreateUserBookRequest struct {
	UserID int64   `json:"user_id" validate:"required,gt=0"`
	BookID int64   `json:"book_id" validate:"required,gt=0"`
	Status *string `json:"status,omitempty" validate:"omitempty,oneof=to-read reading completed"`
	Rating *int    `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	Review *string `json:"review,omitempty"`
}

// UpdateUserBookRequest only carries the fields a plain edit may change
type UpdateUserBookRequest struct {
	Rating *int    `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	Review *string `json:"review,omitempty"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required" validate:"required,oneof=to-read reading completed"`
}

type UpdateProgressRequest struct {
	CurrentPage *int `json:"current_page" binding:"required" validate:"required,gte=0"`
}

// UserBookFilterQuery: query string filters for a user's library
type UserBookFilterQuery struct {
	Status   *string `form:"status" json:"status" validate:"omitempty,oneof=to-read reading completed"`
	AuthorID *int64  `form:"authorId" json:"authorId" validate:"omitempty,gt=0"`
	GenreID  *int64  `form:"genreId" json:"genreId" validate:"omitempty,gt=0"`
}

// UserBookResponse is a user book as returned by the API.
// ProgressPercentage is only filled on single-record reads.
type UserBookResponse struct {
	models.UserBook
	ProgressPercentage *int `json:"progress_percentage,omitempty"`
}

func NewUserBookResponse(ub *models.UserBook) UserBookResponse {
	return UserBookResponse{UserBook: *ub}
}

// NewUserBookDetailResponse adds the reading progress of the book
func NewUserBookDetailResponse(ub *models.UserBook) UserBookResponse {
	resp := UserBookResponse{UserBook: *ub}
	totalPages := 0
	if ub.Book != nil {
		totalPages = ub.Book.TotalPages
	}
	pct := models.ProgressPercentage(ub.CurrentPage, totalPages)
	resp.ProgressPercentage = &pct
	return resp
}

type UserBookListResponse struct {
	Items []UserBookResponse `json:"items"`
	Total int                `json:"total"`
}

func NewUserBookListResponse(list []models.UserBook) UserBookListResponse {
	items := make([]UserBookResponse, 0, len(list))
	for i := range list {
		items = append(items, NewUserBookResponse(&list[i]))
	}
	return UserBookListResponse{Items: items, Total: len(items)}
}
