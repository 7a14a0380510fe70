package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	derr "github.com/ozzus/hopcraft/internal/domain/errors"
	"github.com/ozzus/hopcraft/internal/domain/models"
)

func unreachableClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestSetAll_ZeroTTLSkipsWrite(t *testing.T) {
	client := unreachableClient()
	defer client.Close()

	repo := NewAirportCacheRepository(client)
	if err := repo.SetAll(context.Background(), []models.Airport{{IATACode: "CTA"}}, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGetAll_ConnectionErrorIsNotAMiss(t *testing.T) {
	client := unreachableClient()
	defer client.Close()

	repo := NewAirportCacheRepository(client)
	_, err := repo.GetAll(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, derr.ErrAirportsNotCached) {
		t.Fatalf("connection failure must not look like a cache miss: %v", err)
	}
}

func TestNewClient_PingFailure(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if _, err := NewClient(ctx, "127.0.0.1:1", "", 0); err == nil {
		t.Fatal("expected ping error")
	}
}
