package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"bookshelf/internal/microservices/http-api/models"

	"github.com/redis/go-redis/v9"
)

// StatsCache stores computed stats per user and year. A miss returns (nil, nil).
type StatsCache interface {
	Get(ctx context.Context, userID int64, year *int) (*models.UserBookStats, error)
	Set(ctx context.Context, userID int64, year *int, stats *models.UserBookStats) error
	InvalidateUser(ctx context.Context, userID int64) error
}

// NoopStatsCache never stores anything. Used when REDIS_URL is not set.
type NoopStatsCache struct{}

func (NoopStatsCache) Get(context.Context, int64, *int) (*models.UserBookStats, error) {
	return nil, nil
}

func (NoopStatsCache) Set(context.Context, int64, *int, *models.UserBookStats) error {
	return nil
}

func (NoopStatsCache) InvalidateUser(context.Context, int64) error {
	return nil
}

type RedisStatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStatsCache connects to redis and verifies the connection with a ping
func NewRedisStatsCache(addr, password string, ttl time.Duration) (*RedisStatsCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisStatsCacheWithClient(rdb, ttl), nil
}

func NewRedisStatsCacheWithClient(client *redis.Client, ttl time.Duration) *RedisStatsCache {
	return &RedisStatsCache{client: client, ttl: ttl}
}

func statsKey(userID int64, year *int) string {
	y := "all"
	if year != nil {
		y = strconv.Itoa(*year)
	}
	return fmt.Sprintf("stats:user:%d:year:%s", userID, y)
}

func (c *RedisStatsCache) Get(ctx context.Context, userID int64, year *int) (*models.UserBookStats, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}

	raw, err := c.client.Get(ctx, statsKey(userID, year)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cached stats: %w", err)
	}

	var stats models.UserBookStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, fmt.Errorf("decode cached stats: %w", err)
	}
	return &stats, nil
}

func (c *RedisStatsCache) Set(ctx context.Context, userID int64, year *int, stats *models.UserBookStats) error {
	if c == nil || c.client == nil {
		return nil
	}

	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("encode stats: %w", err)
	}
	return c.client.Set(ctx, statsKey(userID, year), raw, c.ttl).Err()
}

// InvalidateUser drops every cached year for the user
func (c *RedisStatsCache) InvalidateUser(ctx context.Context, userID int64) error {
	if c == nil || c.client == nil {
		return nil
	}

	pattern := fmt.Sprintf("stats:user:%d:*", userID)
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return fmt.Errorf("scan cached stats: %w", err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("delete cached stats: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return nil
}

func (c *RedisStatsCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
