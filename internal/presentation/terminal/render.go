// Package terminal renders search results for the hopcraft CLI.
package terminal

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/ozzus/hopcraft/internal/domain/models"
	"github.com/ozzus/hopcraft/internal/presentation"
)

var (
	headerColor = color.New(color.Bold)
	mutedColor  = color.New(color.Faint)
	directColor = color.New(color.FgGreen)
)

// hexColor turns "#rrggbb" into a truecolor printer; malformed values print uncolored.
func hexColor(hex string) *color.Color {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return color.New(color.Reset)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.New(color.Reset)
	}
	return color.RGB(int(v>>16&0xff), int(v>>8&0xff), int(v&0xff))
}

func RenderOffers(w io.Writer, destination string, offers []models.FlightOffer, key presentation.SortKey) {
	headerColor.Fprintf(w, "Voli verso %s (%d)\n", destination, len(offers))
	if len(offers) == 0 {
		mutedColor.Fprintln(w, "Nessun volo trovato.")
		return
	}

	for _, row := range presentation.NewOfferRows(presentation.SortOffers(offers, key)) {
		price := hexColor(row.Color).Sprintf("%9s", row.Price)
		fmt.Fprintf(w, "%s  %-3s %-18s %-14s %s  %s",
			price, row.Origin, truncate(row.OriginCity, 18), truncate(row.Airline, 14), row.Departure, row.Duration)
		if row.Direct {
			directColor.Fprint(w, "  Diretto")
		}
		fmt.Fprintln(w)
	}

	fmt.Fprint(w, "\n")
	for _, tier := range presentation.PriceTiers {
		hexColor(tier.Color).Fprint(w, "● ")
		fmt.Fprintf(w, "%s  ", tier.Label)
	}
	fmt.Fprintln(w)
}

func RenderItineraries(w io.Writer, result models.SmartMultiResult, travelers int) {
	headerColor.Fprintf(w, "Itinerari da %s (%d)\n", result.Origin, len(result.Itineraries))
	if len(result.Itineraries) == 0 {
		mutedColor.Fprintln(w, "Nessun itinerario trovato.")
		return
	}

	for _, card := range presentation.NewItineraryCards(result.Itineraries, travelers) {
		fmt.Fprintln(w)
		hexColor(card.Color).Fprintf(w, "#%d %s", card.Rank, card.Route)
		fmt.Fprintf(w, "  %s/persona", card.PricePerPerson)
		if card.ShowTotalAll {
			fmt.Fprintf(w, "  (%s per %d viaggiatori)", card.TotalAll, card.Travelers)
		}
		fmt.Fprintln(w)

		for _, leg := range card.Legs {
			fmt.Fprintf(w, "  %s → %s  %-6s %-14s %s  %s", leg.From, leg.To, leg.Price, truncate(leg.Airline, 14), leg.Departure, leg.Duration)
			if leg.Direct {
				directColor.Fprint(w, "  Diretto")
			}
			fmt.Fprintln(w)
		}

		if len(card.StopDays) > 0 {
			parts := make([]string, 0, len(card.StopDays))
			for _, s := range card.StopDays {
				parts = append(parts, fmt.Sprintf("%s: %d gg", s.IATA, s.Days))
			}
			mutedColor.Fprintf(w, "  %s\n", strings.Join(parts, " · "))
		}
		if card.Notes != "" {
			mutedColor.Fprintf(w, "  %s\n", card.Notes)
		}
	}
}

func RenderAirports(w io.Writer, airports []models.Airport) {
	headerColor.Fprintf(w, "Aeroporti (%d)\n", len(airports))
	for _, a := range airports {
		fmt.Fprintf(w, "%-3s  %-22s %s\n", a.IATACode, truncate(a.City, 22), a.Name)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
