package models

import "time"

type FlightOffer struct {
	Origin          string    `json:"origin"`
	OriginCity      string    `json:"origin_city"`
	PriceEUR        float64   `json:"price_eur"`
	Airline         string    `json:"airline"`
	Departure       Timestamp `json:"departure"`
	DurationMinutes int       `json:"duration_minutes"`
	Direct          bool      `json:"direct"`
	Latitude        float64   `json:"latitude"`
	Longitude       float64   `json:"longitude"`
}

// ProviderStatus is optional badge data describing which upstream provider served a search.
type ProviderStatus struct {
	ActiveProvider   string `json:"active_provider"`
	SerpapiRemaining int    `json:"serpapi_remaining"`
	AmadeusRemaining int    `json:"amadeus_remaining"`
	Note             string `json:"note"`
}

type ReverseResult struct {
	Destination    string          `json:"destination,omitempty"`
	Results        []FlightOffer   `json:"results"`
	Cached         bool            `json:"cached"`
	FetchedAt      *Timestamp      `json:"fetched_at,omitempty"`
	ProviderStatus *ProviderStatus `json:"provider_status,omitempty"`
}

const DefaultMaxResults = 50

type ReverseQuery struct {
	Destination string
	DateFrom    time.Time
	DateTo      time.Time
	DirectOnly  bool
	MaxResults  int
}
