package handlers

import (
	"time"

	"github.com/ozzus/hopcraft/internal/application/forms"
	"github.com/ozzus/hopcraft/internal/application/shell"
	"github.com/ozzus/hopcraft/internal/domain/models"
	"github.com/ozzus/hopcraft/internal/presentation"
)

// SearchTimeouts drive the loading countdown; they match the API client's request bounds.
type SearchTimeouts struct {
	Reverse time.Duration
	Smart   time.Duration
}

type sortOption struct {
	Key      presentation.SortKey
	Label    string
	Selected bool
}

type pageView struct {
	Mode          shell.Mode
	Loading       bool
	Today         string
	SortOptions   []sortOption
	Airports      []models.Airport
	AirportsError string
	Reverse       reverseView
	Smart         smartView
}

type reverseView struct {
	Form       forms.ReverseForm
	FieldError *forms.FieldError
	MaxDateTo  string

	Loading  bool
	Progress presentation.Progress
	Error    string

	HasResult   bool
	Destination string
	Cached      bool
	Rows        []presentation.OfferRow
	Provider    *models.ProviderStatus
}

type smartView struct {
	Form            forms.SmartForm
	FieldError      *forms.FieldError
	MinDateTo       string
	TripDays        int
	TripDaysAllowed bool

	Loading  bool
	Progress presentation.Progress
	Error    string

	HasResult bool
	Origin    string
	Cards     []presentation.ItineraryCard
	Provider  *models.ProviderStatus
}

func buildPageView(st shell.State, sortKey presentation.SortKey, now time.Time, timeouts SearchTimeouts) pageView {
	view := pageView{
		Mode:    st.Mode,
		Loading: st.ModeState(st.Mode).Loading(),
		Today:   forms.FormatDate(forms.Today(now)),
		Reverse: newReverseView(st.Reverse, st.ReverseForm, sortKey, now, timeouts.Reverse),
		Smart:   newSmartView(st.Smart, st.SmartForm, now, timeouts.Smart),
	}

	for _, opt := range presentation.SortOptions {
		view.SortOptions = append(view.SortOptions, sortOption{
			Key:      opt.Key,
			Label:    opt.Label,
			Selected: opt.Key == sortKey,
		})
	}
	return view
}

func newReverseView(ms shell.ModeState, form forms.ReverseForm, sortKey presentation.SortKey, now time.Time, timeout time.Duration) reverseView {
	view := reverseView{
		Form:       form,
		FieldError: ms.FieldError,
		Loading:    ms.Loading(),
		Error:      ms.Err,
	}

	if from, ok := forms.ParseDate(form.DateFrom); ok {
		view.MaxDateTo = forms.FormatDate(forms.MaxReverseDateTo(from))
	}
	if view.Loading {
		view.Progress = presentation.ProgressFor(presentation.ReverseStages, timeout, now.Sub(ms.StartedAt))
	}

	if res := ms.Reverse; res != nil {
		view.HasResult = true
		view.Destination = res.Destination
		view.Cached = res.Cached
		view.Rows = presentation.NewOfferRows(presentation.SortOffers(res.Results, sortKey))
		view.Provider = res.ProviderStatus
	}
	return view
}

func newSmartView(ms shell.ModeState, form forms.SmartForm, now time.Time, timeout time.Duration) smartView {
	view := smartView{
		Form:       form,
		FieldError: ms.FieldError,
		Loading:    ms.Loading(),
		Error:      ms.Err,
	}

	from, okFrom := forms.ParseDate(form.DateFrom)
	to, okTo := forms.ParseDate(form.DateTo)
	if okFrom {
		view.MinDateTo = forms.FormatDate(forms.AddDays(from, 1))
	}
	if okFrom && okTo {
		view.TripDays = forms.TripDurationDays(from, to)
		view.TripDaysAllowed = forms.TripDurationAllowed(view.TripDays)
	}
	if view.Loading {
		view.Progress = presentation.ProgressFor(presentation.SmartStages, timeout, now.Sub(ms.StartedAt))
	}

	if res := ms.Smart; res != nil {
		view.HasResult = true
		view.Origin = res.Origin
		view.Cards = presentation.NewItineraryCards(res.Itineraries, ms.Travelers)
		view.Provider = res.ProviderStatus
	}
	return view
}

func timeoutFor(mode shell.Mode, timeouts SearchTimeouts) time.Duration {
	if mode == shell.ModeSmart {
		return timeouts.Smart
	}
	return timeouts.Reverse
}

func stagesFor(mode shell.Mode) []presentation.Stage {
	if mode == shell.ModeSmart {
		return presentation.SmartStages
	}
	return presentation.ReverseStages
}
