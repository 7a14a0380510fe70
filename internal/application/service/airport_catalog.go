package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	derr "github.com/ozzus/hopcraft/internal/domain/errors"
	"github.com/ozzus/hopcraft/internal/domain/models"
	"github.com/ozzus/hopcraft/internal/domain/ports"
)

const (
	airportsFlightKey = "airports"

	// airportsRetryBackoff is how long a failed load is remembered before the API is tried again.
	airportsRetryBackoff = 30 * time.Second
)

// AirportCatalog reads the airport list through an in-process snapshot, then the optional
// cache, then the search API. An expired snapshot keeps being served while the API fails, and a
// failure is remembered for a short backoff so page renders do not wait on a dead backend.
type AirportCatalog struct {
	log      *zap.Logger
	source   ports.AirportSource
	cache    ports.AirportCache
	cacheTTL time.Duration
	backoff  time.Duration
	now      func() time.Time

	group singleflight.Group

	mu       sync.RWMutex
	airports []models.Airport
	index    models.AirportIndex
	loadedAt time.Time
	failedAt time.Time
	lastErr  error
}

func NewAirportCatalog(log *zap.Logger, source ports.AirportSource, cache ports.AirportCache, cacheTTL time.Duration) *AirportCatalog {
	if log == nil {
		log = zap.NewNop()
	}

	return &AirportCatalog{
		log:      log,
		source:   source,
		cache:    cache,
		cacheTTL: cacheTTL,
		backoff:  airportsRetryBackoff,
		now:      time.Now,
	}
}

func (c *AirportCatalog) List(ctx context.Context) ([]models.Airport, error) {
	if airports, ok := c.snapshot(); ok {
		return airports, nil
	}
	if airports, ok, err := c.backingOff(); ok {
		return airports, err
	}

	v, err, shared := c.group.Do(airportsFlightKey, func() (any, error) {
		return c.load(ctx)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		c.log.Debug("airport load shared", zap.String("op", "service.AirportCatalog.List"))
	}
	return v.([]models.Airport), nil
}

// Index never fails: without airports the map simply has no coordinates to draw.
func (c *AirportCatalog) Index(ctx context.Context) models.AirportIndex {
	if _, err := c.List(ctx); err != nil {
		c.log.Warn("airport index unavailable", zap.String("op", "service.AirportCatalog.Index"), zap.Error(err))
		return models.AirportIndex{}
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.index
}

func (c *AirportCatalog) Nearby(ctx context.Context, lat, lon float64, radiusKm int) ([]models.NearbyAirport, error) {
	const op = "service.AirportCatalog.Nearby"

	ctx, span := otel.Tracer(tracerName).Start(ctx, op)
	defer span.End()
	span.SetAttributes(
		attribute.Float64("airports.lat", lat),
		attribute.Float64("airports.lon", lon),
		attribute.Int("airports.radius_km", radiusKm),
	)

	airports, err := c.source.FetchAirportsInRadius(ctx, lat, lon, radiusKm)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "nearby airports unavailable")
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	span.SetAttributes(attribute.Int("airports.count", len(airports)))
	return airports, nil
}

func (c *AirportCatalog) snapshot() ([]models.Airport, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.airports == nil {
		return nil, false
	}
	if c.cacheTTL > 0 && c.now().Sub(c.loadedAt) > c.cacheTTL {
		return nil, false
	}
	return c.airports, true
}

// backingOff reports whether a recent failure should be answered without calling the API.
// The expired snapshot wins over the remembered error.
func (c *AirportCatalog) backingOff() ([]models.Airport, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.lastErr == nil || c.now().Sub(c.failedAt) >= c.backoff {
		return nil, false, nil
	}
	if c.airports != nil {
		return c.airports, true, nil
	}
	return nil, true, c.lastErr
}

func (c *AirportCatalog) store(airports []models.Airport) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.airports = airports
	c.index = models.NewAirportIndex(airports)
	c.loadedAt = c.now()
	c.failedAt = time.Time{}
	c.lastErr = nil
}

// fail records err and returns the expired snapshot, if there is one.
func (c *AirportCatalog) fail(err error) ([]models.Airport, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.failedAt = c.now()
	c.lastErr = err
	return c.airports, c.airports != nil
}

func (c *AirportCatalog) load(ctx context.Context) ([]models.Airport, error) {
	const op = "service.AirportCatalog.load"

	ctx, span := otel.Tracer(tracerName).Start(ctx, op)
	defer span.End()

	logger := c.log.With(zap.String("op", op))

	if airports, ok := c.snapshot(); ok {
		return airports, nil
	}
	if airports, ok, err := c.backingOff(); ok {
		return airports, err
	}

	if c.cache != nil {
		airports, err := c.cache.GetAll(ctx)
		if err == nil {
			logger.Debug("airports loaded from redis cache", zap.Int("count", len(airports)))
			span.AddEvent("airports.cache.hit")
			c.store(airports)
			return airports, nil
		}
		if errors.Is(err, derr.ErrAirportsNotCached) {
			span.AddEvent("airports.cache.miss")
		} else {
			logger.Warn("redis cache read failed", zap.Error(err))
			span.RecordError(err)
		}
	}

	airports, err := c.source.FetchAirports(ctx)
	if err != nil {
		err = fmt.Errorf("%s: %w", op, err)
		span.RecordError(err)
		if stale, ok := c.fail(err); ok {
			logger.Warn("airports api failed, serving expired snapshot", zap.Int("count", len(stale)), zap.Error(err))
			span.AddEvent("airports.stale")
			return stale, nil
		}
		span.SetStatus(otelcodes.Error, "airports unavailable")
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.SetAll(ctx, airports, c.cacheTTL); err != nil {
			logger.Warn("redis cache write failed", zap.Error(err))
			span.RecordError(err)
		}
	}

	c.store(airports)
	span.SetAttributes(attribute.Int("airports.count", len(airports)))
	span.SetStatus(otelcodes.Ok, "ok")
	logger.Info("airports loaded from api", zap.Int("count", len(airports)))
	return airports, nil
}
