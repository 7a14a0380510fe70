package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	derr "github.com/ozzus/hopcraft/internal/domain/errors"
	"github.com/ozzus/hopcraft/internal/domain/models"
)

const airportsKey = "airports:all"

type AirportCacheRepository struct {
	redis *redis.Client
}

func NewAirportCacheRepository(redisClient *redis.Client) *AirportCacheRepository {
	return &AirportCacheRepository{redis: redisClient}
}

func (r *AirportCacheRepository) GetAll(ctx context.Context) ([]models.Airport, error) {
	data, err := r.redis.Get(ctx, airportsKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, derr.ErrAirportsNotCached
		}
		return nil, fmt.Errorf("redis get airports: %w", err)
	}

	var airports []models.Airport
	if err := json.Unmarshal(data, &airports); err != nil {
		return nil, fmt.Errorf("unmarshal cached airports: %w", err)
	}

	return airports, nil
}

func (r *AirportCacheRepository) SetAll(ctx context.Context, airports []models.Airport, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	data, err := json.Marshal(airports)
	if err != nil {
		return fmt.Errorf("marshal airports for cache: %w", err)
	}

	if err := r.redis.Set(ctx, airportsKey, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set airports: %w", err)
	}

	return nil
}

// NewClient connects and pings; the caller decides whether a failure disables the cache.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}

	return client, nil
}
