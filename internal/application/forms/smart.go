package forms

import (
	"strconv"
	"strings"
	"time"

	"github.com/ozzus/hopcraft/internal/domain/models"
)

const (
	MinTripDays = 5
	MaxTripDays = 25

	// ReturnAdvanceDays is how far the return date jumps when the departure passes it.
	ReturnAdvanceDays = 12

	MinBudgetEUR  = 50
	MinTravelers  = 1
	MaxTravelers  = 9
	defaultBudget = 300

	defaultSmartOffsetDays = 30
)

// SmartForm holds the raw field values of the smart multi-city form.
type SmartForm struct {
	Origin     string
	Budget     string
	Travelers  string
	DateFrom   string
	DateTo     string
	DirectOnly bool
}

func DefaultSmartForm(today time.Time) SmartForm {
	from := AddDays(today, defaultSmartOffsetDays)
	return SmartForm{
		Budget:    strconv.Itoa(defaultBudget),
		Travelers: strconv.Itoa(MinTravelers),
		DateFrom:  FormatDate(from),
		DateTo:    FormatDate(AddDays(from, ReturnAdvanceDays)),
	}
}

// SmartDatesOnFromChange advances the return date when the departure reaches or passes it.
// It applies only to an edit of the departure field, never to a submitted pair.
func SmartDatesOnFromChange(from, to time.Time) time.Time {
	if !to.After(from) {
		return AddDays(from, ReturnAdvanceDays)
	}
	return to
}

// TripDurationDays is the day count between departure and return, rounded.
func TripDurationDays(from, to time.Time) int {
	return dayDiff(from, to)
}

func TripDurationAllowed(days int) bool {
	return days >= MinTripDays && days <= MaxTripDays
}

// Normalize cleans up the text fields. Dates are left as submitted so that an
// out-of-band trip blocks instead of being rewritten.
func (f SmartForm) Normalize() SmartForm {
	f.Origin = NormalizeIATA(f.Origin)
	f.Budget = strings.TrimSpace(f.Budget)
	f.Travelers = strings.TrimSpace(f.Travelers)
	f.DateFrom = strings.TrimSpace(f.DateFrom)
	f.DateTo = strings.TrimSpace(f.DateTo)
	return f
}

func (f SmartForm) Validate(today time.Time) (models.SmartMultiQuery, error) {
	f = f.Normalize()

	if !ValidIATA(f.Origin) {
		return models.SmartMultiQuery{}, fieldError("origin", "Inserisci un codice IATA di 3 lettere")
	}

	budget, err := strconv.ParseFloat(f.Budget, 64)
	if err != nil || budget < MinBudgetEUR {
		return models.SmartMultiQuery{}, fieldError("budget", "Il budget minimo è 50 € a persona")
	}

	travelers, err := strconv.Atoi(f.Travelers)
	if err != nil || travelers < MinTravelers || travelers > MaxTravelers {
		return models.SmartMultiQuery{}, fieldError("travelers", "I viaggiatori devono essere tra 1 e 9")
	}

	from, ok := ParseDate(f.DateFrom)
	if !ok {
		return models.SmartMultiQuery{}, fieldError("date_from", "Data di partenza non valida")
	}
	if from.Before(today) {
		return models.SmartMultiQuery{}, fieldError("date_from", "La data di partenza non può essere nel passato")
	}

	to, ok := ParseDate(f.DateTo)
	if !ok {
		return models.SmartMultiQuery{}, fieldError("date_to", "Data di rientro non valida")
	}

	days := TripDurationDays(from, to)
	if !TripDurationAllowed(days) {
		return models.SmartMultiQuery{}, fieldError("date_to", "La durata del viaggio deve essere tra 5 e 25 giorni")
	}

	return models.SmartMultiQuery{
		Origin:             f.Origin,
		TripDurationDays:   days,
		BudgetPerPersonEUR: budget,
		Travelers:          travelers,
		DateFrom:           from,
		DateTo:             to,
		DirectOnly:         f.DirectOnly,
	}, nil
}
