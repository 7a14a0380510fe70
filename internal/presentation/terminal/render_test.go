package terminal

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/ozzus/hopcraft/internal/domain/models"
	"github.com/ozzus/hopcraft/internal/presentation"
)

func init() {
	color.NoColor = true
}

func TestRenderOffers_SortedAndLabelled(t *testing.T) {
	offers := []models.FlightOffer{
		{Origin: "FCO", OriginCity: "Roma", PriceEUR: 120, Airline: "ITA", Departure: models.ParseTimestamp("2024-06-01T10:00:00"), DurationMinutes: 80},
		{Origin: "MXP", OriginCity: "Milano", PriceEUR: 39.9, Airline: "Ryanair", Departure: models.ParseTimestamp("2024-06-02T06:30:00"), DurationMinutes: 115, Direct: true},
	}

	var buf bytes.Buffer
	RenderOffers(&buf, "CTA", offers, presentation.SortByPrice)
	out := buf.String()

	if !strings.Contains(out, "Voli verso CTA (2)") {
		t.Fatalf("missing header:\n%s", out)
	}
	if strings.Index(out, "MXP") > strings.Index(out, "FCO") {
		t.Fatalf("cheaper offer must come first:\n%s", out)
	}
	if !strings.Contains(out, "€39.90") || !strings.Contains(out, "Diretto") || !strings.Contains(out, "1h 55m") {
		t.Fatalf("unexpected offer row:\n%s", out)
	}
	if !strings.Contains(out, ">€150") {
		t.Fatalf("missing legend:\n%s", out)
	}
}

func TestRenderOffers_Empty(t *testing.T) {
	var buf bytes.Buffer
	RenderOffers(&buf, "CTA", nil, presentation.SortByPrice)
	if !strings.Contains(buf.String(), "Nessun volo trovato.") {
		t.Fatalf("unexpected output: %s", buf.String())
	}
}

func TestRenderItineraries(t *testing.T) {
	result := models.SmartMultiResult{
		Origin: "CTA",
		Itineraries: []models.Itinerary{{
			Rank:                      1,
			Route:                     []string{"CTA", "BCN", "CTA"},
			TotalPricePerPersonEUR:    150,
			TotalPriceAllTravelersEUR: 300,
			SuggestedDaysPerStop:      []int{6},
			AINotes:                   "Ottimo a luglio.",
			Legs: []models.Leg{
				{FromAirport: "CTA", ToAirport: "BCN", PricePerPersonEUR: 75, Airline: "Vueling", DurationMinutes: 150},
			},
		}},
	}

	var buf bytes.Buffer
	RenderItineraries(&buf, result, 2)
	out := buf.String()

	for _, want := range []string{"#1 CTA → BCN → CTA", "€150/persona", "(€300 per 2 viaggiatori)", "BCN: 6 gg", "Ottimo a luglio."} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}

	buf.Reset()
	RenderItineraries(&buf, result, 1)
	if strings.Contains(buf.String(), "viaggiatori") {
		t.Fatalf("single traveler must not show the group total:\n%s", buf.String())
	}
}

func TestHexColor_Malformed(t *testing.T) {
	if got := hexColor("nope").Sprint("x"); got != "x" {
		t.Fatalf("unexpected output: %q", got)
	}
}
