package presentation

import "math"

type PriceTier struct {
	Max   float64 `json:"-"`
	Color string  `json:"color"`
	Label string  `json:"label"`
}

// PriceTiers are matched in order; the first tier whose Max exceeds the price wins.
var PriceTiers = []PriceTier{
	{Max: 50, Color: "#2ecc71", Label: "<€50"},
	{Max: 100, Color: "#f1c40f", Label: "€50-100"},
	{Max: 150, Color: "#e67e22", Label: "€100-150"},
	{Max: math.Inf(1), Color: "#e74c3c", Label: ">€150"},
}

func TierFor(price float64) PriceTier {
	for _, t := range PriceTiers {
		if price < t.Max {
			return t
		}
	}
	return PriceTiers[len(PriceTiers)-1]
}

func PriceColor(price float64) string {
	return TierFor(price).Color
}

// RouteColors color smart-mode itineraries by rank.
var RouteColors = []string{"#0984e3", "#e84393", "#00b894", "#e67e22", "#6c5ce7"}

func RouteColor(rank int) string {
	n := len(RouteColors)
	i := ((rank-1)%n + n) % n
	return RouteColors[i]
}
