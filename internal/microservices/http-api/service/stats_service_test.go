package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"bookshelf/internal/microservices/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func genreBook(id int64, genre string, pages int) *models.Book {
	b := &models.Book{ID: id, Title: "Book", TotalPages: pages}
	if genre != "" {
		b.Genre = &models.Genre{Name: genre}
	}
	return b
}

func completed(id int64, genre string) models.UserBook {
	return models.UserBook{ID: id, Status: models.StatusCompleted, Book: genreBook(id, genre, 100)}
}

func TestAggregateStats_FavoriteGenreFirstToReachMax(t *testing.T) {
	stats := aggregateStats([]models.UserBook{
		completed(1, "A"), completed(2, "B"), completed(3, "A"), completed(4, "B"),
	})
	require.NotNil(t, stats.FavoriteGenre)
	assert.Equal(t, "A", *stats.FavoriteGenre)
}

func TestAggregateStats_FavoriteGenreHighestCount(t *testing.T) {
	stats := aggregateStats([]models.UserBook{
		completed(1, "Poetry"), completed(2, "Sci-Fi"), completed(3, "Sci-Fi"), completed(4, "Sci-Fi"),
	})
	assert.Equal(t, "Sci-Fi", *stats.FavoriteGenre)
}

func TestAggregateStats_FavoriteGenreIgnoresUnfinished(t *testing.T) {
	stats := aggregateStats([]models.UserBook{
		{ID: 1, Status: models.StatusReading, Book: genreBook(1, "Horror", 100)},
		{ID: 2, Status: models.StatusToRead, Book: genreBook(2, "Horror", 100)},
		completed(3, ""),
	})
	assert.Nil(t, stats.FavoriteGenre)
}

func TestAggregateStats_Counts(t *testing.T) {
	stats := aggregateStats([]models.UserBook{
		{ID: 1, Status: models.StatusCompleted, Rating: intPtr(4), Book: genreBook(1, "A", 320)},
		{ID: 2, Status: models.StatusCompleted, Rating: intPtr(5), Book: genreBook(2, "A", 180)},
		{ID: 3, Status: models.StatusReading, Rating: intPtr(3), Book: genreBook(3, "B", 999)},
		{ID: 4, Status: models.StatusToRead, Book: genreBook(4, "B", 50)},
	})

	assert.Equal(t, 4, stats.TotalBooks)
	assert.Equal(t, 2, stats.CompletedBooks)
	assert.Equal(t, 1, stats.ReadingBooks)
	assert.Equal(t, 1, stats.ToReadBooks)
	assert.Equal(t, 500, stats.TotalPages)
	assert.InDelta(t, 4.0, stats.AverageRating, 1e-9)
}

func TestAggregateStats_NoRatingsIsZero(t *testing.T) {
	stats := aggregateStats([]models.UserBook{
		{ID: 1, Status: models.StatusReading, Book: genreBook(1, "", 10)},
	})
	assert.Equal(t, 0.0, stats.AverageRating)

	empty := aggregateStats(nil)
	assert.Equal(t, 0.0, empty.AverageRating)
	assert.Equal(t, 0, empty.TotalBooks)
	assert.NotNil(t, empty.RecentlyAddedBooks)
	assert.Empty(t, empty.RecentlyAddedBooks)
}

func TestAggregateStats_RecentlyAdded(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	author := &models.Author{Name: "Le Guin"}
	cover := "https://covers.example/1.jpg"

	var records []models.UserBook
	for i := int64(1); i <= 7; i++ {
		records = append(records, models.UserBook{
			ID:        i,
			BookID:    i * 10,
			Status:    models.StatusToRead,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
			Book:      &models.Book{ID: i * 10, Title: "T", Author: author, CoverURL: &cover},
		})
	}
	// same timestamp as record 7, higher id wins
	records = append(records, models.UserBook{
		ID: 8, BookID: 80, Status: models.StatusReading, CreatedAt: records[6].CreatedAt,
		Book: &models.Book{ID: 80, Title: "Tied"},
	})

	stats := aggregateStats(records)

	require.Len(t, stats.RecentlyAddedBooks, 5)
	ids := make([]int64, 0, 5)
	for _, rb := range stats.RecentlyAddedBooks {
		ids = append(ids, rb.ID)
	}
	assert.Equal(t, []int64{8, 7, 6, 5, 4}, ids)

	second := stats.RecentlyAddedBooks[1]
	assert.Equal(t, int64(70), second.Book.ID)
	assert.Equal(t, "Le Guin", *second.Book.Author)
	assert.Equal(t, cover, *second.Book.CoverURL)
	assert.Nil(t, stats.RecentlyAddedBooks[0].Book.Author)
}

func TestGetUserBookStats_CachesResult(t *testing.T) {
	repo := new(MockUserBookRepository)
	cache := new(MockStatsCache)
	svc := NewStatsService(repo, cache, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()
	year := 2025

	cache.On("Get", ctx, int64(1), &year).Return(nil, nil)
	repo.On("FindForStats", ctx, int64(1), &year).Return([]models.UserBook{completed(1, "A")}, nil)
	cache.On("Set", ctx, int64(1), &year, mock.AnythingOfType("*models.UserBookStats")).Return(nil)

	stats, err := svc.GetUserBookStats(ctx, 1, &year)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.CompletedBooks)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestGetUserBookStats_CacheHit(t *testing.T) {
	repo := new(MockUserBookRepository)
	cache := new(MockStatsCache)
	svc := NewStatsService(repo, cache, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	cached := &models.UserBookStats{TotalBooks: 42}
	cache.On("Get", ctx, int64(1), (*int)(nil)).Return(cached, nil)

	stats, err := svc.GetUserBookStats(ctx, 1, nil)
	require.NoError(t, err)
	assert.Same(t, cached, stats)
	repo.AssertNotCalled(t, "FindForStats", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetUserBookStats_CacheErrorsAreNotFatal(t *testing.T) {
	repo := new(MockUserBookRepository)
	cache := new(MockStatsCache)
	svc := NewStatsService(repo, cache, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	cache.On("Get", ctx, int64(1), (*int)(nil)).Return(nil, errors.New("redis down"))
	repo.On("FindForStats", ctx, int64(1), (*int)(nil)).Return([]models.UserBook{}, nil)
	cache.On("Set", ctx, int64(1), (*int)(nil), mock.Anything).Return(errors.New("redis down"))

	stats, err := svc.GetUserBookStats(ctx, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalBooks)
}

func TestGetUserBookStats_DisabledCache(t *testing.T) {
	repo := new(MockUserBookRepository)
	svc := NewStatsService(repo, nil, nil)
	ctx := context.Background()

	repo.On("FindForStats", ctx, int64(1), (*int)(nil)).Return([]models.UserBook{completed(1, "A")}, nil).Twice()

	_, err := svc.GetUserBookStats(ctx, 1, nil)
	require.NoError(t, err)
	_, err = svc.GetUserBookStats(ctx, 1, nil)
	require.NoError(t, err)
	repo.AssertNumberOfCalls(t, "FindForStats", 2)
}
