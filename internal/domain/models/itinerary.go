package models

import "time"

type Leg struct {
	FromAirport       string    `json:"from_airport"`
	ToAirport         string    `json:"to_airport"`
	PricePerPersonEUR float64   `json:"price_per_person_eur"`
	Airline           string    `json:"airline"`
	Departure         Timestamp `json:"departure"`
	DurationMinutes   int       `json:"duration_minutes"`
	Direct            bool      `json:"direct"`
}

type Itinerary struct {
	Rank                      int      `json:"rank"`
	Route                     []string `json:"route"`
	Legs                      []Leg    `json:"legs"`
	TotalPricePerPersonEUR    float64  `json:"total_price_per_person_eur"`
	TotalPriceAllTravelersEUR float64  `json:"total_price_all_travelers_eur"`
	SuggestedDaysPerStop      []int    `json:"suggested_days_per_stop"`
	AINotes                   string   `json:"ai_notes"`
}

type SmartMultiResult struct {
	Origin         string          `json:"origin"`
	Itineraries    []Itinerary     `json:"itineraries"`
	ProviderStatus *ProviderStatus `json:"provider_status,omitempty"`
}

type SmartMultiQuery struct {
	Origin             string
	TripDurationDays   int
	BudgetPerPersonEUR float64
	Travelers          int
	DateFrom           time.Time
	DateTo             time.Time
	DirectOnly         bool
}
