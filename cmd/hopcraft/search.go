package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ozzus/hopcraft/internal/application/forms"
	derr "github.com/ozzus/hopcraft/internal/domain/errors"
	"github.com/ozzus/hopcraft/internal/presentation"
	"github.com/ozzus/hopcraft/internal/presentation/terminal"
)

var (
	reverseForm forms.ReverseForm
	reverseSort string

	smartForm forms.SmartForm

	nearLat    float64
	nearLon    float64
	nearRadius int
)

var airportsCmd = &cobra.Command{
	Use:   "airports",
	Short: "List the airports known to the search API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		stopTracing, err := startTracing()
		if err != nil {
			return err
		}
		defer stopTracing()

		deps := newDependencies(cmd.Context(), cfg, log)
		defer deps.close()

		if cmd.Flags().Changed("lat") || cmd.Flags().Changed("lon") {
			nearby, err := deps.catalog.Nearby(cmd.Context(), nearLat, nearLon, nearRadius)
			if err != nil {
				return userError(err)
			}
			for _, a := range nearby {
				fmt.Fprintf(cmd.OutOrStdout(), "%-3s  %5d km  %s\n", a.IATACode, a.DistanceKm, a.City)
			}
			return nil
		}

		airports, err := deps.catalog.List(cmd.Context())
		if err != nil {
			return userError(err)
		}
		terminal.RenderAirports(cmd.OutOrStdout(), airports)
		return nil
	},
}

var reverseCmd = &cobra.Command{
	Use:   "reverse",
	Short: "Find flights from anywhere in Europe to one destination",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		query, err := reverseForm.Validate(forms.Today(time.Now()))
		if err != nil {
			return err
		}

		stopTracing, err := startTracing()
		if err != nil {
			return err
		}
		defer stopTracing()

		deps := newDependencies(cmd.Context(), cfg, log)
		defer deps.close()

		result, err := deps.client.SearchReverse(cmd.Context(), query)
		if err != nil {
			return userError(err)
		}

		terminal.RenderOffers(cmd.OutOrStdout(), query.Destination, result.Results, presentation.ParseSortKey(reverseSort))
		return nil
	},
}

var smartCmd = &cobra.Command{
	Use:   "smart",
	Short: "Build AI-ranked multi-city itineraries from one origin",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		query, err := smartForm.Validate(forms.Today(time.Now()))
		if err != nil {
			return err
		}

		stopTracing, err := startTracing()
		if err != nil {
			return err
		}
		defer stopTracing()

		deps := newDependencies(cmd.Context(), cfg, log)
		defer deps.close()

		result, err := deps.client.SearchSmartMulti(cmd.Context(), query)
		if err != nil {
			return userError(err)
		}

		terminal.RenderItineraries(cmd.OutOrStdout(), result, query.Travelers)
		return nil
	},
}

func init() {
	today := forms.Today(time.Now())
	reverseDefaults := forms.DefaultReverseForm(today)
	smartDefaults := forms.DefaultSmartForm(today)

	rf := reverseCmd.Flags()
	rf.StringVar(&reverseForm.Destination, "destination", "", "destination IATA code")
	rf.StringVar(&reverseForm.DateFrom, "from", reverseDefaults.DateFrom, "first departure day (YYYY-MM-DD)")
	rf.StringVar(&reverseForm.DateTo, "to", reverseDefaults.DateTo, "last departure day, at most 6 days after --from")
	rf.BoolVar(&reverseForm.DirectOnly, "direct", false, "direct flights only")
	rf.StringVar(&reverseSort, "sort", string(presentation.SortByPrice), "sort by price, duration or departure")
	_ = reverseCmd.MarkFlagRequired("destination")

	sf := smartCmd.Flags()
	sf.StringVar(&smartForm.Origin, "origin", "", "origin IATA code")
	sf.StringVar(&smartForm.DateFrom, "from", smartDefaults.DateFrom, "departure day (YYYY-MM-DD)")
	sf.StringVar(&smartForm.DateTo, "to", smartDefaults.DateTo, "return day, 5 to 25 days after --from")
	sf.StringVar(&smartForm.Budget, "budget", smartDefaults.Budget, "budget per person in EUR")
	sf.StringVar(&smartForm.Travelers, "travelers", smartDefaults.Travelers, "number of travelers (1-9)")
	sf.BoolVar(&smartForm.DirectOnly, "direct", false, "direct flights only")
	_ = smartCmd.MarkFlagRequired("origin")

	af := airportsCmd.Flags()
	af.Float64Var(&nearLat, "lat", 0, "latitude of the search center")
	af.Float64Var(&nearLon, "lon", 0, "longitude of the search center")
	af.IntVar(&nearRadius, "radius", 0, "search radius in km (server default when 0)")
	airportsCmd.MarkFlagsRequiredTogether("lat", "lon")
}

func userError(err error) error {
	return fmt.Errorf("%s", derr.UserMessage(err))
}
