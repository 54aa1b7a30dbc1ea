package repository

import (
	"context"
	"fmt"

	"bookshelf/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReadingGoalRepository interface {
	Create(ctx context.Context, goal *models.ReadingGoal) error
	Save(ctx context.Context, goal *models.ReadingGoal) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*models.ReadingGoal, error)
	FindAll(ctx context.Context) ([]models.ReadingGoal, error)
	FindByUser(ctx context.Context, userID int64) ([]models.ReadingGoal, error)
	FindActiveByUser(ctx context.Context, userID int64) ([]models.ReadingGoal, error)
	UpdateCompletedBooks(ctx context.Context, id int64, completed int) error
}

type readingGoalRepository struct {
	db *gorm.DB
}

func NewReadingGoalRepository(db *gorm.DB) ReadingGoalRepository {
	return &readingGoalRepository{db: db}
}

func (r *readingGoalRepository) Create(ctx context.Context, goal *models.ReadingGoal) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(goal).Error; err != nil {
		return fmt.Errorf("create reading goal: %w", err)
	}
	return nil
}

func (r *readingGoalRepository) Save(ctx context.Context, goal *models.ReadingGoal) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(goal).Error; err != nil {
		return fmt.Errorf("save reading goal %d: %w", goal.ID, err)
	}
	return nil
}

func (r *readingGoalRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.ReadingGoal{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete reading goal %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("delete reading goal %d: %w", id, gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *readingGoalRepository) FindByID(ctx context.Context, id int64) (*models.ReadingGoal, error) {
	var goal models.ReadingGoal
	if err := r.db.WithContext(ctx).Preload("User").First(&goal, id).Error; err != nil {
		return nil, fmt.Errorf("find reading goal %d: %w", id, err)
	}
	return &goal, nil
}

func (r *readingGoalRepository) FindAll(ctx context.Context) ([]models.ReadingGoal, error) {
	var goals []models.ReadingGoal
	if err := r.db.WithContext(ctx).Preload("User").Order("id ASC").Find(&goals).Error; err != nil {
		return nil, fmt.Errorf("list reading goals: %w", err)
	}
	return goals, nil
}

func (r *readingGoalRepository) FindByUser(ctx context.Context, userID int64) ([]models.ReadingGoal, error) {
	var goals []models.ReadingGoal
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&goals).Error; err != nil {
		return nil, fmt.Errorf("list reading goals for user %d: %w", userID, err)
	}
	return goals, nil
}

func (r *readingGoalRepository) FindActiveByUser(ctx context.Context, userID int64) ([]models.ReadingGoal, error) {
	var goals []models.ReadingGoal
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("id ASC").
		Find(&goals).Error; err != nil {
		return nil, fmt.Errorf("list active reading goals for user %d: %w", userID, err)
	}
	return goals, nil
}

// UpdateCompletedBooks writes only the cached counter, leaving user edits alone
func (r *readingGoalRepository) UpdateCompletedBooks(ctx context.Context, id int64, completed int) error {
	if err := r.db.WithContext(ctx).
		Model(&models.ReadingGoal{}).
		Where("id = ?", id).
		Update("completed_books", completed).Error; err != nil {
		return fmt.Errorf("update completed books for goal %d: %w", id, err)
	}
	return nil
}
