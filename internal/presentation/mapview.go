package presentation

import (
	"fmt"

	"github.com/ozzus/hopcraft/internal/domain/models"
)

const (
	offerMarkerRadius   = 9
	airportMarkerRadius = 6
	airportMarkerColor  = "#2d3436"
	defaultZoom         = 4
)

var defaultCenter = [2]float64{50, 15}

type Marker struct {
	Lat    float64  `json:"lat"`
	Lon    float64  `json:"lon"`
	Color  string   `json:"color"`
	Radius int      `json:"radius"`
	Popup  []string `json:"popup"`
}

type Polyline struct {
	Rank   int          `json:"rank"`
	Color  string       `json:"color"`
	Route  []string     `json:"route"`
	Points [][2]float64 `json:"points"`
}

// MapLayer is everything the map script draws for one mode.
type MapLayer struct {
	Mode      string      `json:"mode"`
	Center    [2]float64  `json:"center"`
	Zoom      int         `json:"zoom"`
	Legend    []PriceTier `json:"legend,omitempty"`
	Markers   []Marker    `json:"markers"`
	Polylines []Polyline  `json:"polylines"`
}

func emptyLayer(mode string) MapLayer {
	return MapLayer{
		Mode:      mode,
		Center:    defaultCenter,
		Zoom:      defaultZoom,
		Markers:   []Marker{},
		Polylines: []Polyline{},
	}
}

// ReverseLayer renders one marker per offer, colored by price tier.
func ReverseLayer(offers []models.FlightOffer, destination string) MapLayer {
	layer := emptyLayer("reverse")
	layer.Legend = PriceTiers

	for _, o := range offers {
		detail := FormatDuration(o.DurationMinutes)
		if o.Direct {
			detail = "✈ Diretto"
		}
		layer.Markers = append(layer.Markers, Marker{
			Lat:    o.Latitude,
			Lon:    o.Longitude,
			Color:  PriceColor(o.PriceEUR),
			Radius: offerMarkerRadius,
			Popup: []string{
				fmt.Sprintf("%s (%s) → %s", o.OriginCity, o.Origin, destination),
				fmt.Sprintf("%s — %s", FormatEUR(o.PriceEUR, 2), o.Airline),
				FormatDeparture(o.Departure),
				detail,
			},
		})
	}
	return layer
}

// SmartLayer renders one polyline per itinerary through the route's known airports and one
// marker per distinct airport visited. Codes missing from the index are skipped.
func SmartLayer(itineraries []models.Itinerary, airports models.AirportIndex) MapLayer {
	layer := emptyLayer("smart")
	seen := make(map[string]struct{})

	for _, it := range itineraries {
		line := Polyline{
			Rank:   it.Rank,
			Color:  RouteColor(it.Rank),
			Route:  it.Route,
			Points: make([][2]float64, 0, len(it.Route)),
		}

		for _, code := range it.Route {
			a, ok := airports[code]
			if !ok {
				continue
			}
			line.Points = append(line.Points, [2]float64{a.Latitude, a.Longitude})

			if _, dup := seen[code]; dup {
				continue
			}
			seen[code] = struct{}{}
			layer.Markers = append(layer.Markers, Marker{
				Lat:    a.Latitude,
				Lon:    a.Longitude,
				Color:  airportMarkerColor,
				Radius: airportMarkerRadius,
				Popup:  []string{fmt.Sprintf("%s (%s)", a.City, a.IATACode)},
			})
		}

		layer.Polylines = append(layer.Polylines, line)
	}
	return layer
}
