package service

import (
	"context"
	"log/slog"
	"time"

	"bookshelf/internal/microservices/http-api/dto"
	"bookshelf/internal/microservices/http-api/models"
	"bookshelf/internal/microservices/http-api/repository"
	"bookshelf/internal/validation"
)

type ReadingGoalService interface {
	Create(ctx context.Context, req dto.CreateReadingGoalRequest) (*models.ReadingGoal, error)
	FindOne(ctx context.Context, id int64) (*models.ReadingGoal, error)
	FindAll(ctx context.Context) ([]models.ReadingGoal, error)
	ListByUser(ctx context.Context, userID int64) ([]models.ReadingGoal, error)
	Update(ctx context.Context, id int64, req dto.UpdateReadingGoalRequest) (*models.ReadingGoal, error)
	Remove(ctx context.Context, id int64) error
	Synchronize(ctx context.Context, userID int64) error
}

type readingGoalService struct {
	repo         repository.ReadingGoalRepository
	userBookRepo repository.UserBookRepository
	userRepo     repository.UserRepository
	validate     *validation.Validator
	logger       *slog.Logger
}

func NewReadingGoalService(
	repo repository.ReadingGoalRepository,
	userBookRepo repository.UserBookRepository,
	userRepo repository.UserRepository,
	logger *slog.Logger,
) ReadingGoalService {
	if logger == nil {
		logger = slog.Default()
	}
	return &readingGoalService{
		repo:         repo,
		userBookRepo: userBookRepo,
		userRepo:     userRepo,
		validate:     validation.New(),
		logger:       logger,
	}
}

func (s *readingGoalService) Create(ctx context.Context, req dto.CreateReadingGoalRequest) (*models.ReadingGoal, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, invalidArgument("%v", err)
	}

	start, end, err := parseGoalRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindByID(ctx, req.UserID); err != nil {
		return nil, lookupErr(err, "user %d", req.UserID)
	}

	goal := &models.ReadingGoal{
		UserID:      req.UserID,
		GoalName:    req.GoalName,
		TargetBooks: req.TargetBooks,
		StartDate:   start,
		EndDate:     end,
		IsActive:    true,
	}
	if req.CompletedBooks != nil {
		goal.CompletedBooks = *req.CompletedBooks
	}
	if req.IsActive != nil {
		goal.IsActive = *req.IsActive
	}

	if err := s.repo.Create(ctx, goal); err != nil {
		return nil, err
	}

	s.logger.Info("reading_goal_created",
		"goal_id", goal.ID,
		"user_id", goal.UserID,
		"target_books", goal.TargetBooks,
	)
	return goal, nil
}

func (s *readingGoalService) FindOne(ctx context.Context, id int64) (*models.ReadingGoal, error) {
	goal, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "reading goal %d", id)
	}
	return goal, nil
}

func (s *readingGoalService) FindAll(ctx context.Context) ([]models.ReadingGoal, error) {
	return s.repo.FindAll(ctx)
}

func (s *readingGoalService) ListByUser(ctx context.Context, userID int64) ([]models.ReadingGoal, error) {
	return s.repo.FindByUser(ctx, userID)
}

// Update applies the editable goal fields. completed_books belongs to Synchronize.
func (s *readingGoalService) Update(ctx context.Context, id int64, req dto.UpdateReadingGoalRequest) (*models.ReadingGoal, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, invalidArgument("%v", err)
	}

	goal, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "reading goal %d", id)
	}

	if req.GoalName != nil {
		goal.GoalName = *req.GoalName
	}
	if req.TargetBooks != nil {
		goal.TargetBooks = *req.TargetBooks
	}
	if req.StartDate != nil {
		if goal.StartDate, err = time.Parse(dto.DateLayout, *req.StartDate); err != nil {
			return nil, invalidArgument("start_date: %v", err)
		}
	}
	if req.EndDate != nil {
		if goal.EndDate, err = time.Parse(dto.DateLayout, *req.EndDate); err != nil {
			return nil, invalidArgument("end_date: %v", err)
		}
	}
	if req.IsActive != nil {
		goal.IsActive = *req.IsActive
	}

	if goal.EndDate.Before(goal.StartDate) {
		return nil, invalidArgument("end_date must not be before start_date")
	}

	if err := s.repo.Save(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *readingGoalService) Remove(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return lookupErr(err, "reading goal %d", id)
	}
	s.logger.Info("reading_goal_removed", "goal_id", id)
	return nil
}

// Synchronize sets completed_books on every active goal of the user to the
// number of books they have completed. Inactive goals are not touched.
// Goals are written one at a time, so a failure can leave earlier goals
// updated and later ones stale; running it again converges.
func (s *readingGoalService) Synchronize(ctx context.Context, userID int64) error {
	count, err := s.userBookRepo.CountCompletedByUser(ctx, userID)
	if err != nil {
		return err
	}

	goals, err := s.repo.FindActiveByUser(ctx, userID)
	if err != nil {
		return err
	}

	updated := 0
	for _, g := range goals {
		if g.CompletedBooks == int(count) {
			continue
		}
		if err := s.repo.UpdateCompletedBooks(ctx, g.ID, int(count)); err != nil {
			return err
		}
		updated++
	}

	s.logger.Debug("goals_synchronized",
		"user_id", userID,
		"completed_books", count,
		"active_goals", len(goals),
		"updated", updated,
	)
	return nil
}

func parseGoalRange(startRaw, endRaw string) (time.Time, time.Time, error) {
	start, err := time.Parse(dto.DateLayout, startRaw)
	if err != nil {
		return time.Time{}, time.Time{}, invalidArgument("start_date: %v", err)
	}
	end, err := time.Parse(dto.DateLayout, endRaw)
	if err != nil {
		return time.Time{}, time.Time{}, invalidArgument("end_date: %v", err)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, invalidArgument("end_date must not be before start_date")
	}
	return start, end, nil
}
