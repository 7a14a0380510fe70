package main

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/ozzus/hopcraft/internal/application/service"
	"github.com/ozzus/hopcraft/internal/clients/flightapi"
	"github.com/ozzus/hopcraft/internal/config"
	"github.com/ozzus/hopcraft/internal/domain/ports"
	cacheredis "github.com/ozzus/hopcraft/internal/infrastructures/db/redis"
)

type dependencies struct {
	client  *flightapi.Client
	catalog *service.AirportCatalog
	close   func()
}

// newDependencies builds the API client and the airport catalog. Redis is optional: when it is
// not configured or unreachable the catalog reads straight from the API.
func newDependencies(ctx context.Context, cfg *config.Config, log *zap.Logger) *dependencies {
	client := flightapi.NewClient(log, cfg.API.BaseURL, &http.Client{}, flightapi.Timeouts{
		Airports: cfg.API.AirportsTimeout,
		Reverse:  cfg.API.ReverseTimeout,
		Smart:    cfg.API.SmartTimeout,
	})

	deps := &dependencies{client: client, close: func() {}}

	var cache ports.AirportCache
	if cfg.Redis.Addr != "" {
		redisClient, err := cacheredis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Warn("redis unavailable, airport cache disabled", zap.Error(err))
		} else {
			cache = cacheredis.NewAirportCacheRepository(redisClient)
			deps.close = func() {
				if err := redisClient.Close(); err != nil {
					log.Warn("failed to close redis client", zap.Error(err))
				}
			}
		}
	}

	deps.catalog = service.NewAirportCatalog(log, client, cache, cfg.Redis.AirportsTTL)
	return deps
}
