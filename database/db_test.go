package database

import (
	"io"
	"log/slog"
	"testing"

	"bookshelf/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect_SQLiteMigrates(t *testing.T) {
	cfg := &config.Config{DBType: "sqlite", DatabaseURL: ":memory:", DBAutoMigrate: true, LogLevel: "warn"}

	db, err := Connect(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { Close(db) })

	for _, table := range []string{"users", "authors", "genres", "books", "user_books", "notes", "reading_goals"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
	assert.True(t, db.Migrator().HasIndex("user_books", "idx_user_books_user_book"))
}

func TestConnect_UnsupportedType(t *testing.T) {
	_, err := Connect(&config.Config{DBType: "oracle"}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.ErrorContains(t, err, "unsupported database type")
}

func TestConnect_BadPostgresDSN(t *testing.T) {
	_, err := Connect(&config.Config{DBType: "postgres", DatabaseURL: "postgres://%zz"}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.ErrorContains(t, err, "invalid DATABASE_URL")
}
