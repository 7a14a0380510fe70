package models

type Airport struct {
	IATACode  string  `json:"iata_code"`
	Name      string  `json:"name"`
	City      string  `json:"city"`
	Country   string  `json:"country,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	IsActive  *bool   `json:"is_active,omitempty"`
}

// NearbyAirport is an airport returned by the radius lookup, with its distance from the center.
type NearbyAirport struct {
	Airport
	DistanceKm int `json:"distance_km"`
}

// AirportIndex maps IATA codes to airports for coordinate lookups.
type AirportIndex map[string]Airport

func NewAirportIndex(airports []Airport) AirportIndex {
	index := make(AirportIndex, len(airports))
	for _, a := range airports {
		index[a.IATACode] = a
	}
	return index
}
