package presentation

import (
	"strings"

	"github.com/ozzus/hopcraft/internal/domain/models"
)

type LegRow struct {
	From      string
	To        string
	Price     string
	Airline   string
	Departure string
	Duration  string
	Direct    bool
}

type StopDays struct {
	IATA string
	Days int
}

type ItineraryCard struct {
	Rank           int
	Color          string
	Route          string
	PricePerPerson string
	Travelers      int
	TotalAll       string
	ShowTotalAll   bool
	Legs           []LegRow
	StopDays       []StopDays
	Notes          string
}

func NewItineraryCard(it models.Itinerary, travelers int) ItineraryCard {
	card := ItineraryCard{
		Rank:           it.Rank,
		Color:          RouteColor(it.Rank),
		Route:          strings.Join(it.Route, " → "),
		PricePerPerson: FormatEUR(it.TotalPricePerPersonEUR, 0),
		Travelers:      travelers,
		ShowTotalAll:   travelers > 1,
		TotalAll:       FormatEUR(it.TotalPriceAllTravelersEUR, 0),
		Legs:           make([]LegRow, 0, len(it.Legs)),
		Notes:          strings.TrimSpace(it.AINotes),
	}

	for _, leg := range it.Legs {
		card.Legs = append(card.Legs, LegRow{
			From:      leg.FromAirport,
			To:        leg.ToAirport,
			Price:     FormatEUR(leg.PricePerPersonEUR, 0),
			Airline:   leg.Airline,
			Departure: FormatDeparture(leg.Departure),
			Duration:  FormatDuration(leg.DurationMinutes),
			Direct:    leg.Direct,
		})
	}

	// Days are suggested for intermediate stops only: the route starts and ends at the origin.
	if len(it.SuggestedDaysPerStop) > 0 && len(it.Route) > 2 {
		stops := it.Route[1 : len(it.Route)-1]
		for i, code := range stops {
			if i >= len(it.SuggestedDaysPerStop) {
				break
			}
			card.StopDays = append(card.StopDays, StopDays{IATA: code, Days: it.SuggestedDaysPerStop[i]})
		}
	}

	return card
}

func NewItineraryCards(itineraries []models.Itinerary, travelers int) []ItineraryCard {
	cards := make([]ItineraryCard, 0, len(itineraries))
	for _, it := range itineraries {
		cards = append(cards, NewItineraryCard(it, travelers))
	}
	return cards
}

type OfferRow struct {
	Origin     string
	OriginCity string
	Price      string
	Color      string
	Airline    string
	Departure  string
	Duration   string
	Direct     bool
}

func NewOfferRows(offers []models.FlightOffer) []OfferRow {
	rows := make([]OfferRow, 0, len(offers))
	for _, o := range offers {
		rows = append(rows, OfferRow{
			Origin:     o.Origin,
			OriginCity: o.OriginCity,
			Price:      FormatEUR(o.PriceEUR, 2),
			Color:      PriceColor(o.PriceEUR),
			Airline:    o.Airline,
			Departure:  FormatDeparture(o.Departure),
			Duration:   FormatDuration(o.DurationMinutes),
			Direct:     o.Direct,
		})
	}
	return rows
}
