package forms

import (
	"time"

	"github.com/ozzus/hopcraft/internal/domain/models"
)

// MaxReverseRangeDays is the widest departure window the backend accepts.
const MaxReverseRangeDays = 6

const defaultReverseSpanDays = 3

// ReverseForm holds the raw field values of the reverse-search form.
type ReverseForm struct {
	Destination string
	DateFrom    string
	DateTo      string
	DirectOnly  bool
}

func DefaultReverseForm(today time.Time) ReverseForm {
	return ReverseForm{
		DateFrom: FormatDate(today),
		DateTo:   FormatDate(AddDays(today, defaultReverseSpanDays)),
	}
}

// ClampReverseDateTo keeps to within [from, from+6 days].
func ClampReverseDateTo(from, to time.Time) time.Time {
	if to.Before(from) {
		return from
	}
	if maxTo := AddDays(from, MaxReverseRangeDays); to.After(maxTo) {
		return maxTo
	}
	return to
}

// ReverseDatesOnFromChange is applied when the start date moves: the end never stays before it.
func ReverseDatesOnFromChange(from, to time.Time) time.Time {
	if to.Before(from) {
		return from
	}
	return to
}

// MaxReverseDateTo is the upper bound offered by the end-date picker.
func MaxReverseDateTo(from time.Time) time.Time {
	return AddDays(from, MaxReverseRangeDays)
}

// Normalize applies the field adjustments the form performs while the user types.
func (f ReverseForm) Normalize() ReverseForm {
	f.Destination = NormalizeIATA(f.Destination)

	from, okFrom := ParseDate(f.DateFrom)
	to, okTo := ParseDate(f.DateTo)
	if okFrom && okTo {
		to = ReverseDatesOnFromChange(from, to)
		f.DateTo = FormatDate(ClampReverseDateTo(from, to))
	}
	return f
}

// Validate returns the query for a submittable form. Anything else blocks the submission
// with a *FieldError.
func (f ReverseForm) Validate(today time.Time) (models.ReverseQuery, error) {
	f = f.Normalize()

	if !ValidIATA(f.Destination) {
		return models.ReverseQuery{}, fieldError("destination", "Inserisci un codice IATA di 3 lettere")
	}

	from, ok := ParseDate(f.DateFrom)
	if !ok {
		return models.ReverseQuery{}, fieldError("date_from", "Data di partenza non valida")
	}
	if from.Before(today) {
		return models.ReverseQuery{}, fieldError("date_from", "La data di partenza non può essere nel passato")
	}

	to, ok := ParseDate(f.DateTo)
	if !ok {
		return models.ReverseQuery{}, fieldError("date_to", "Data finale non valida")
	}

	return models.ReverseQuery{
		Destination: f.Destination,
		DateFrom:    from,
		DateTo:      to,
		DirectOnly:  f.DirectOnly,
		MaxResults:  models.DefaultMaxResults,
	}, nil
}
