package ports

import (
	"context"
	"time"

	"github.com/ozzus/hopcraft/internal/domain/models"
)

type FlightSearcher interface {
	SearchReverse(ctx context.Context, query models.ReverseQuery) (models.ReverseResult, error)
	SearchSmartMulti(ctx context.Context, query models.SmartMultiQuery) (models.SmartMultiResult, error)
}

type AirportSource interface {
	FetchAirports(ctx context.Context) ([]models.Airport, error)
	FetchAirportsInRadius(ctx context.Context, lat, lon float64, radiusKm int) ([]models.NearbyAirport, error)
}

type AirportCache interface {
	GetAll(ctx context.Context) ([]models.Airport, error)
	SetAll(ctx context.Context, airports []models.Airport, ttl time.Duration) error
}
