package service

import (
	"context"

	"bookshelf/internal/microservices/http-api/models"
	"bookshelf/internal/microservices/http-api/repository"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockBookRepository mocks the BookRepository interface
type MockBookRepository struct {
	mock.Mock
}

func (m *MockBookRepository) Create(ctx context.Context, book *models.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookRepository) FindByID(ctx context.Context, id int64) (*models.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Book), args.Error(1)
}

// MockUserBookRepository mocks the UserBookRepository interface
type MockUserBookRepository struct {
	mock.Mock
}

func (m *MockUserBookRepository) Create(ctx context.Context, ub *models.UserBook) error {
	args := m.Called(ctx, ub)
	return args.Error(0)
}

func (m *MockUserBookRepository) Save(ctx context.Context, ub *models.UserBook) error {
	args := m.Called(ctx, ub)
	return args.Error(0)
}

func (m *MockUserBookRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserBookRepository) FindByID(ctx context.Context, id int64) (*models.UserBook, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserBook), args.Error(1)
}

func (m *MockUserBookRepository) FindByUserAndBook(ctx context.Context, userID, bookID int64) (*models.UserBook, error) {
	args := m.Called(ctx, userID, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserBook), args.Error(1)
}

func (m *MockUserBookRepository) FindAll(ctx context.Context) ([]models.UserBook, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserBook), args.Error(1)
}

func (m *MockUserBookRepository) FindByUser(ctx context.Context, userID int64, filter repository.UserBookFilter) ([]models.UserBook, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserBook), args.Error(1)
}

func (m *MockUserBookRepository) FindForStats(ctx context.Context, userID int64, year *int) ([]models.UserBook, error) {
	args := m.Called(ctx, userID, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserBook), args.Error(1)
}

func (m *MockUserBookRepository) CountCompletedByUser(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockReadingGoalRepository mocks the ReadingGoalRepository interface
type MockReadingGoalRepository struct {
	mock.Mock
}

func (m *MockReadingGoalRepository) Create(ctx context.Context, goal *models.ReadingGoal) error {
	args := m.Called(ctx, goal)
	return args.Error(0)
}

func (m *MockReadingGoalRepository) Save(ctx context.Context, goal *models.ReadingGoal) error {
	args := m.Called(ctx, goal)
	return args.Error(0)
}

func (m *MockReadingGoalRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReadingGoalRepository) FindByID(ctx context.Context, id int64) (*models.ReadingGoal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReadingGoal), args.Error(1)
}

func (m *MockReadingGoalRepository) FindAll(ctx context.Context) ([]models.ReadingGoal, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReadingGoal), args.Error(1)
}

func (m *MockReadingGoalRepository) FindByUser(ctx context.Context, userID int64) ([]models.ReadingGoal, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReadingGoal), args.Error(1)
}

func (m *MockReadingGoalRepository) FindActiveByUser(ctx context.Context, userID int64) ([]models.ReadingGoal, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReadingGoal), args.Error(1)
}

func (m *MockReadingGoalRepository) UpdateCompletedBooks(ctx context.Context, id int64, completed int) error {
	args := m.Called(ctx, id, completed)
	return args.Error(0)
}

// MockGoalSynchronizer records Synchronize calls
type MockGoalSynchronizer struct {
	mock.Mock
}

func (m *MockGoalSynchronizer) Synchronize(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockStatsCache mocks the StatsCache interface
type MockStatsCache struct {
	mock.Mock
}

func (m *MockStatsCache) Get(ctx context.Context, userID int64, year *int) (*models.UserBookStats, error) {
	args := m.Called(ctx, userID, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserBookStats), args.Error(1)
}

func (m *MockStatsCache) Set(ctx context.Context, userID int64, year *int, stats *models.UserBookStats) error {
	args := m.Called(ctx, userID, year, stats)
	return args.Error(0)
}

func (m *MockStatsCache) InvalidateUser(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
func int64Ptr(v int64) *int64 { return &v }
