package service

import (
	"context"
	"log/slog"
	"sort"

	"bookshelf/internal/microservices/http-api/models"
	"bookshelf/internal/microservices/http-api/repository"
)

const recentlyAddedLimit = 5

type StatsService interface {
	GetUserBookStats(ctx context.Context, userID int64, year *int) (*models.UserBookStats, error)
}

type statsService struct {
	repo   repository.UserBookRepository
	cache  repository.StatsCache
	logger *slog.Logger
}

func NewStatsService(repo repository.UserBookRepository, cache repository.StatsCache, logger *slog.Logger) StatsService {
	if cache == nil {
		cache = repository.NoopStatsCache{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &statsService{repo: repo, cache: cache, logger: logger}
}

// GetUserBookStats summarizes a user's library. With year set only records
// completed in that year are considered, so reading and to-read counts are 0.
func (s *statsService) GetUserBookStats(ctx context.Context, userID int64, year *int) (*models.UserBookStats, error) {
	cached, err := s.cache.Get(ctx, userID, year)
	if err != nil {
		s.logger.Warn("stats_cache_get_failed", "user_id", userID, "error", err)
	}
	if cached != nil {
		return cached, nil
	}

	records, err := s.repo.FindForStats(ctx, userID, year)
	if err != nil {
		return nil, err
	}

	stats := aggregateStats(records)

	if err := s.cache.Set(ctx, userID, year, stats); err != nil {
		s.logger.Warn("stats_cache_set_failed", "user_id", userID, "error", err)
	}
	return stats, nil
}

// aggregateStats expects records in id order. The favorite genre is the
// first genre to reach the highest completed count.
func aggregateStats(records []models.UserBook) *models.UserBookStats {
	stats := &models.UserBookStats{
		TotalBooks:         len(records),
		RecentlyAddedBooks: []models.RecentBook{},
	}

	var ratingSum, rated, maxCount int
	genreCounts := make(map[string]int)

	for _, ub := range records {
		switch ub.Status {
		case models.StatusCompleted:
			stats.CompletedBooks++
			if ub.Book != nil {
				stats.TotalPages += ub.Book.TotalPages
				if ub.Book.Genre != nil {
					name := ub.Book.Genre.Name
					genreCounts[name]++
					if genreCounts[name] > maxCount {
						maxCount = genreCounts[name]
						stats.FavoriteGenre = &name
					}
				}
			}
		case models.StatusReading:
			stats.ReadingBooks++
		case models.StatusToRead:
			stats.ToReadBooks++
		}

		if ub.Rating != nil {
			ratingSum += *ub.Rating
			rated++
		}
	}

	if rated > 0 {
		stats.AverageRating = float64(ratingSum) / float64(rated)
	}

	stats.RecentlyAddedBooks = recentlyAdded(records, recentlyAddedLimit)
	return stats
}

func recentlyAdded(records []models.UserBook, limit int) []models.RecentBook {
	sorted := make([]models.UserBook, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		}
		return sorted[i].ID > sorted[j].ID
	})

	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	out := make([]models.RecentBook, 0, len(sorted))
	for _, ub := range sorted {
		rb := models.RecentBook{
			ID:        ub.ID,
			Status:    ub.Status,
			CreatedAt: ub.CreatedAt,
		}
		if ub.Book != nil {
			rb.Book = models.RecentBookSummary{
				ID:       ub.Book.ID,
				Title:    ub.Book.Title,
				CoverURL: ub.Book.CoverURL,
			}
			if ub.Book.Author != nil {
				author := ub.Book.Author.Name
				rb.Book.Author = &author
			}
		} else {
			rb.Book.ID = ub.BookID
		}
		out = append(out, rb)
	}
	return out
}
