package repository

import (
	"context"
	"fmt"
	"time"

	"bookshelf/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserBookFilter narrows a user's library listing. Nil fields are ignored.
type UserBookFilter struct {
	Status   *models.ReadingStatus
	AuthorID *int64
	GenreID  *int64
}

type UserBookRepository interface {
	Create(ctx context.Context, ub *models.UserBook) error
	Save(ctx context.Context, ub *models.UserBook) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*models.UserBook, error)
	FindByUserAndBook(ctx context.Context, userID, bookID int64) (*models.UserBook, error)
	FindAll(ctx context.Context) ([]models.UserBook, error)
	FindByUser(ctx context.Context, userID int64, filter UserBookFilter) ([]models.UserBook, error)
	FindForStats(ctx context.Context, userID int64, year *int) ([]models.UserBook, error)
	CountCompletedByUser(ctx context.Context, userID int64) (int64, error)
}

type userBookRepository struct {
	db *gorm.DB
}

func NewUserBookRepository(db *gorm.DB) UserBookRepository {
	return &userBookRepository{db: db}
}

// withRelations preloads everything a user book response shows
func withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User").
		Preload("Book").
		Preload("Book.Author").
		Preload("Book.Genre")
}

func (r *userBookRepository) Create(ctx context.Context, ub *models.UserBook) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(ub).Error; err != nil {
		return fmt.Errorf("create user book: %w", err)
	}
	return nil
}

// Save writes every column of ub, including NULLs, but never its associations
func (r *userBookRepository) Save(ctx context.Context, ub *models.UserBook) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(ub).Error; err != nil {
		return fmt.Errorf("save user book %d: %w", ub.ID, err)
	}
	return nil
}

func (r *userBookRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.UserBook{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete user book %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("delete user book %d: %w", id, gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *userBookRepository) FindByID(ctx context.Context, id int64) (*models.UserBook, error) {
	var ub models.UserBook
	if err := withRelations(r.db.WithContext(ctx)).First(&ub, id).Error; err != nil {
		return nil, fmt.Errorf("find user book %d: %w", id, err)
	}
	return &ub, nil
}

func (r *userBookRepository) FindByUserAndBook(ctx context.Context, userID, bookID int64) (*models.UserBook, error) {
	var ub models.UserBook
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		First(&ub).Error; err != nil {
		return nil, fmt.Errorf("find user book for user %d book %d: %w", userID, bookID, err)
	}
	return &ub, nil
}

func (r *userBookRepository) FindAll(ctx context.Context) ([]models.UserBook, error) {
	var list []models.UserBook
	if err := withRelations(r.db.WithContext(ctx)).
		Order("user_books.id ASC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list user books: %w", err)
	}
	return list, nil
}

func (r *userBookRepository) FindByUser(ctx context.Context, userID int64, filter UserBookFilter) ([]models.UserBook, error) {
	var list []models.UserBook

	q := withRelations(r.db.WithContext(ctx)).
		Model(&models.UserBook{}).
		Where("user_books.user_id = ?", userID)

	if filter.Status != nil {
		q = q.Where("user_books.status = ?", *filter.Status)
	}
	if filter.AuthorID != nil || filter.GenreID != nil {
		q = q.Joins("JOIN books ON books.id = user_books.book_id")
		if filter.AuthorID != nil {
			q = q.Where("books.author_id = ?", *filter.AuthorID)
		}
		if filter.GenreID != nil {
			q = q.Where("books.genre_id = ?", *filter.GenreID)
		}
	}

	if err := q.Order("user_books.created_at DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list user books for user %d: %w", userID, err)
	}
	return list, nil
}

// FindForStats loads a user's records in id order. With year set, only
// records completed within that calendar year (UTC) are returned.
func (r *userBookRepository) FindForStats(ctx context.Context, userID int64, year *int) ([]models.UserBook, error) {
	var list []models.UserBook

	q := r.db.WithContext(ctx).
		Preload("Book").
		Preload("Book.Author").
		Preload("Book.Genre").
		Where("user_id = ?", userID)

	if year != nil {
		start := time.Date(*year, time.January, 1, 0, 0, 0, 0, time.UTC)
		q = q.Where("completed_at >= ? AND completed_at < ?", start, start.AddDate(1, 0, 0))
	}

	if err := q.Order("id ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("load stats records for user %d: %w", userID, err)
	}
	return list, nil
}

func (r *userBookRepository) CountCompletedByUser(ctx context.Context, userID int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.UserBook{}).
		Where("user_id = ? AND status = ?", userID, models.StatusCompleted).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count completed books for user %d: %w", userID, err)
	}
	return count, nil
}
