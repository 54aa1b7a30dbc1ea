package handler_test

import (
	"context"

	"bookshelf/internal/microservices/http-api/dto"
	"bookshelf/internal/microservices/http-api/middleware"
	"bookshelf/internal/microservices/http-api/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

// --- HELPER FUNCTIONS FOR POINTERS ---
func intPtr(i int) *int { return &i }

// --- MOCK SERVICES ---

type MockUserBookService struct {
	mock.Mock
}

func (m *MockUserBookService) Create(ctx context.Context, req dto.CreateUserBookRequest) (*models.UserBook, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserBook), args.Error(1)
}

func (m *MockUserBookService) FindOne(ctx context.Context, id int64) (*models.UserBook, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserBook), args.Error(1)
}

func (m *MockUserBookService) FindAll(ctx context.Context) ([]models.UserBook, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.UserBook), args.Error(1)
}

func (m *MockUserBookService) FindByUser(ctx context.Context, userID int64, query dto.UserBookFilterQuery) ([]models.UserBook, error) {
	args := m.Called(ctx, userID, query)
	return args.Get(0).([]models.UserBook), args.Error(1)
}

func (m *MockUserBookService) Update(ctx context.Context, id int64, req dto.UpdateUserBookRequest) (*models.UserBook, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserBook), args.Error(1)
}

func (m *MockUserBookService) UpdateStatus(ctx context.Context, id int64, status models.ReadingStatus) (*models.UserBook, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserBook), args.Error(1)
}

func (m *MockUserBookService) UpdateProgress(ctx context.Context, id int64, currentPage int) (*models.UserBook, error) {
	args := m.Called(ctx, id, currentPage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserBook), args.Error(1)
}

func (m *MockUserBookService) Remove(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) GetUserBookStats(ctx context.Context, userID int64, year *int) (*models.UserBookStats, error) {
	args := m.Called(ctx, userID, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserBookStats), args.Error(1)
}

type MockReadingGoalService struct {
	mock.Mock
}

func (m *MockReadingGoalService) Create(ctx context.Context, req dto.CreateReadingGoalRequest) (*models.ReadingGoal, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReadingGoal), args.Error(1)
}

func (m *MockReadingGoalService) FindOne(ctx context.Context, id int64) (*models.ReadingGoal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReadingGoal), args.Error(1)
}

func (m *MockReadingGoalService) FindAll(ctx context.Context) ([]models.ReadingGoal, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.ReadingGoal), args.Error(1)
}

func (m *MockReadingGoalService) ListByUser(ctx context.Context, userID int64) ([]models.ReadingGoal, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.ReadingGoal), args.Error(1)
}

func (m *MockReadingGoalService) Update(ctx context.Context, id int64, req dto.UpdateReadingGoalRequest) (*models.ReadingGoal, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReadingGoal), args.Error(1)
}

func (m *MockReadingGoalService) Remove(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReadingGoalService) Synchronize(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// mockAuthMiddleware stands in for AuthMiddleware with a fixed caller
func mockAuthMiddleware(userID int64, role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, userID)
		c.Set(middleware.ContextRole, role)
		c.Next()
	}
}
