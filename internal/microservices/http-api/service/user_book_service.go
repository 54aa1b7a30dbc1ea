package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"bookshelf/internal/microservices/http-api/dto"
	"bookshelf/internal/microservices/http-api/models"
	"bookshelf/internal/microservices/http-api/repository"
	"bookshelf/internal/validation"

	"gorm.io/gorm"
)

// GoalSynchronizer recomputes a user's active goal counters.
type GoalSynchronizer interface {
	Synchronize(ctx context.Context, userID int64) error
}

type UserBookService interface {
	Create(ctx context.Context, req dto.CreateUserBookRequest) (*models.UserBook, error)
	FindOne(ctx context.Context, id int64) (*models.UserBook, error)
	FindAll(ctx context.Context) ([]models.UserBook, error)
	FindByUser(ctx context.Context, userID int64, query dto.UserBookFilterQuery) ([]models.UserBook, error)
	Update(ctx context.Context, id int64, req dto.UpdateUserBookRequest) (*models.UserBook, error)
	UpdateStatus(ctx context.Context, id int64, status models.ReadingStatus) (*models.UserBook, error)
	UpdateProgress(ctx context.Context, id int64, currentPage int) (*models.UserBook, error)
	Remove(ctx context.Context, id int64) error
}

type userBookService struct {
	repo     repository.UserBookRepository
	userRepo repository.UserRepository
	bookRepo repository.BookRepository
	goals    GoalSynchronizer
	cache    repository.StatsCache
	validate *validation.Validator
	logger   *slog.Logger
	now      func() time.Time
}

// NewUserBookService wires the reading record manager. A nil cache disables
// stats invalidation and a nil logger falls back to slog.Default.
func NewUserBookService(
	repo repository.UserBookRepository,
	userRepo repository.UserRepository,
	bookRepo repository.BookRepository,
	goals GoalSynchronizer,
	cache repository.StatsCache,
	logger *slog.Logger,
) UserBookService {
	if cache == nil {
		cache = repository.NoopStatsCache{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &userBookService{
		repo:     repo,
		userRepo: userRepo,
		bookRepo: bookRepo,
		goals:    goals,
		cache:    cache,
		validate: validation.New(),
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *userBookService) Create(ctx context.Context, req dto.CreateUserBookRequest) (*models.UserBook, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, invalidArgument("%v", err)
	}

	if _, err := s.userRepo.FindByID(ctx, req.UserID); err != nil {
		return nil, lookupErr(err, "user %d", req.UserID)
	}
	if _, err := s.bookRepo.FindByID(ctx, req.BookID); err != nil {
		return nil, lookupErr(err, "book %d", req.BookID)
	}

	_, err := s.repo.FindByUserAndBook(ctx, req.UserID, req.BookID)
	if err == nil {
		return nil, conflict("user %d already has book %d in their library", req.UserID, req.BookID)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	initial := models.StatusToRead
	if req.Status != nil {
		initial = models.ReadingStatus(*req.Status)
	}

	ub, completed := resolveInitialStatus(models.UserBook{
		UserID: req.UserID,
		BookID: req.BookID,
		Rating: req.Rating,
		Review: req.Review,
	}, initial, s.now())

	if err := s.repo.Create(ctx, &ub); err != nil {
		// lost a race against the unique index
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflict("user %d already has book %d in their library", req.UserID, req.BookID)
		}
		return nil, err
	}

	s.logger.Info("user_book_created",
		"user_book_id", ub.ID,
		"user_id", ub.UserID,
		"book_id", ub.BookID,
		"status", ub.Status,
	)
	s.invalidateStats(ctx, ub.UserID)

	if completed {
		if err := s.syncGoals(ctx, &ub); err != nil {
			return &ub, err
		}
	}
	return &ub, nil
}

func (s *userBookService) FindOne(ctx context.Context, id int64) (*models.UserBook, error) {
	ub, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "user book %d", id)
	}
	return ub, nil
}

func (s *userBookService) FindAll(ctx context.Context) ([]models.UserBook, error) {
	return s.repo.FindAll(ctx)
}

func (s *userBookService) FindByUser(ctx context.Context, userID int64, query dto.UserBookFilterQuery) ([]models.UserBook, error) {
	if err := s.validate.Validate(query); err != nil {
		return nil, invalidArgument("%v", err)
	}

	filter := repository.UserBookFilter{
		AuthorID: query.AuthorID,
		GenreID:  query.GenreID,
	}
	if query.Status != nil {
		st := models.ReadingStatus(*query.Status)
		filter.Status = &st
	}
	return s.repo.FindByUser(ctx, userID, filter)
}

// Update edits rating and review only. Status, progress and timestamps
// go through UpdateStatus and UpdateProgress.
func (s *userBookService) Update(ctx context.Context, id int64, req dto.UpdateUserBookRequest) (*models.UserBook, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, invalidArgument("%v", err)
	}

	ub, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "user book %d", id)
	}

	if req.Rating != nil {
		ub.Rating = req.Rating
	}
	if req.Review != nil {
		ub.Review = req.Review
	}

	if err := s.repo.Save(ctx, ub); err != nil {
		return nil, err
	}
	s.invalidateStats(ctx, ub.UserID)
	return ub, nil
}

func (s *userBookService) UpdateStatus(ctx context.Context, id int64, status models.ReadingStatus) (*models.UserBook, error) {
	if !status.Valid() {
		return nil, invalidArgument("unknown status %q", status)
	}

	ub, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "user book %d", id)
	}

	prior := ub.Status
	next, completed := ResolveStatusChange(*ub, status, s.now())
	if err := s.repo.Save(ctx, &next); err != nil {
		return nil, err
	}

	s.logger.Info("user_book_status_changed",
		"user_book_id", next.ID,
		"from", prior,
		"to", next.Status,
	)
	s.invalidateStats(ctx, next.UserID)

	if completed {
		if err := s.syncGoals(ctx, &next); err != nil {
			return &next, err
		}
	}
	return &next, nil
}

func (s *userBookService) UpdateProgress(ctx context.Context, id int64, currentPage int) (*models.UserBook, error) {
	ub, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "user book %d", id)
	}

	book := ub.Book
	if book == nil {
		if book, err = s.bookRepo.FindByID(ctx, ub.BookID); err != nil {
			return nil, lookupErr(err, "book %d", ub.BookID)
		}
	}

	next, completed, err := ResolveProgressUpdate(*ub, currentPage, book.TotalPages, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, &next); err != nil {
		return nil, err
	}

	s.logger.Debug("user_book_progress_updated",
		"user_book_id", next.ID,
		"current_page", next.CurrentPage,
		"total_pages", book.TotalPages,
		"status", next.Status,
	)
	s.invalidateStats(ctx, next.UserID)

	if completed {
		if err := s.syncGoals(ctx, &next); err != nil {
			return &next, err
		}
	}
	return &next, nil
}

// Remove deletes the record. Goal counters are left as they are until the
// next completion or an explicit sync.
func (s *userBookService) Remove(ctx context.Context, id int64) error {
	ub, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return lookupErr(err, "user book %d", id)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return lookupErr(err, "user book %d", id)
	}

	s.logger.Info("user_book_removed", "user_book_id", id, "user_id", ub.UserID)
	s.invalidateStats(ctx, ub.UserID)
	return nil
}

// syncGoals runs after the record is saved. A failure leaves the record
// in place and is reported as ErrGoalSync.
func (s *userBookService) syncGoals(ctx context.Context, ub *models.UserBook) error {
	if err := s.goals.Synchronize(ctx, ub.UserID); err != nil {
		s.logger.Error("goal_sync_failed",
			"user_book_id", ub.ID,
			"user_id", ub.UserID,
			"error", err,
		)
		return fmt.Errorf("%w: user book %d was saved: %w", ErrGoalSync, ub.ID, err)
	}
	return nil
}

func (s *userBookService) invalidateStats(ctx context.Context, userID int64) {
	if err := s.cache.InvalidateUser(ctx, userID); err != nil {
		s.logger.Warn("stats_cache_invalidate_failed", "user_id", userID, "error", err)
	}
}
