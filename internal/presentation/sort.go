package presentation

import (
	"sort"
	"strings"

	"github.com/ozzus/hopcraft/internal/domain/models"
)

type SortKey string

const (
	SortByPrice     SortKey = "price"
	SortByDuration  SortKey = "duration"
	SortByDeparture SortKey = "departure"
)

// SortOptions lists the keys in the order the sort control shows them.
var SortOptions = []struct {
	Key   SortKey
	Label string
}{
	{Key: SortByPrice, Label: "Prezzo"},
	{Key: SortByDuration, Label: "Durata"},
	{Key: SortByDeparture, Label: "Partenza"},
}

// ParseSortKey falls back to price for empty or unknown keys.
func ParseSortKey(value string) SortKey {
	switch SortKey(strings.ToLower(strings.TrimSpace(value))) {
	case SortByDuration:
		return SortByDuration
	case SortByDeparture:
		return SortByDeparture
	default:
		return SortByPrice
	}
}

// SortOffers returns a stably sorted copy; the fetched slice is never reordered.
func SortOffers(offers []models.FlightOffer, key SortKey) []models.FlightOffer {
	sorted := make([]models.FlightOffer, len(offers))
	copy(sorted, offers)

	var less func(a, b models.FlightOffer) bool
	switch key {
	case SortByDuration:
		less = func(a, b models.FlightOffer) bool { return a.DurationMinutes < b.DurationMinutes }
	case SortByDeparture:
		less = func(a, b models.FlightOffer) bool { return a.Departure.Before(b.Departure) }
	default:
		less = func(a, b models.FlightOffer) bool { return a.PriceEUR < b.PriceEUR }
	}

	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
	return sorted
}
