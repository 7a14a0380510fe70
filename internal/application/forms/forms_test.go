package forms

import (
	"errors"
	"testing"
	"time"

	derr "github.com/ozzus/hopcraft/internal/domain/errors"
)

var today = time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, ok := ParseDate(s)
	if !ok {
		t.Fatalf("bad fixture date %q", s)
	}
	return d
}

func TestNormalizeIATA(t *testing.T) {
	tests := []struct {
		raw       string
		want      string
		wantValid bool
	}{
		{raw: "cta", want: "CTA", wantValid: true},
		{raw: "  fco ", want: "FCO", wantValid: true},
		{raw: "catania", want: "CATANIA", wantValid: false},
		{raw: " ctaa", want: "CTAA", wantValid: false},
		{raw: "ct", want: "CT", wantValid: false},
		{raw: "", want: "", wantValid: false},
		{raw: "c1a", want: "C1A", wantValid: false},
		{raw: "ç a", want: "Ç A", wantValid: false},
	}

	for _, tc := range tests {
		got := NormalizeIATA(tc.raw)
		if got != tc.want {
			t.Fatalf("NormalizeIATA(%q): expected %q, got %q", tc.raw, tc.want, got)
		}
		if ValidIATA(got) != tc.wantValid {
			t.Fatalf("ValidIATA(%q): expected %v", got, tc.wantValid)
		}
	}
}

func TestClampReverseDateTo(t *testing.T) {
	from := mustDate(t, "2024-06-01")
	tests := []struct {
		name string
		to   string
		want string
	}{
		{name: "inside range", to: "2024-06-03", want: "2024-06-03"},
		{name: "same day", to: "2024-06-01", want: "2024-06-01"},
		{name: "upper bound", to: "2024-06-07", want: "2024-06-07"},
		{name: "past upper bound", to: "2024-06-20", want: "2024-06-07"},
		{name: "before start", to: "2024-05-28", want: "2024-06-01"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FormatDate(ClampReverseDateTo(from, mustDate(t, tc.to)))
			if got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestClampReverseDateTo_AlwaysWithinWindow(t *testing.T) {
	from := mustDate(t, "2024-02-26")
	for offset := -40; offset <= 40; offset++ {
		to := ClampReverseDateTo(from, AddDays(from, offset))
		if to.Before(from) || to.After(AddDays(from, MaxReverseRangeDays)) {
			t.Fatalf("offset %d: %s outside window", offset, FormatDate(to))
		}
	}
}

func TestReverseForm_Validate(t *testing.T) {
	form := ReverseForm{Destination: " cta", DateFrom: "2024-06-01", DateTo: "2024-06-30", DirectOnly: true}

	q, err := form.Validate(today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Destination != "CTA" {
		t.Fatalf("unexpected destination: %q", q.Destination)
	}
	if FormatDate(q.DateTo) != "2024-06-07" {
		t.Fatalf("date_to must be clamped, got %s", FormatDate(q.DateTo))
	}
	if !q.DirectOnly || q.MaxResults != 50 {
		t.Fatalf("unexpected query: %+v", q)
	}
}

func TestReverseForm_ValidateBlocks(t *testing.T) {
	tests := []struct {
		name      string
		form      ReverseForm
		wantField string
	}{
		{name: "short code", form: ReverseForm{Destination: "CT", DateFrom: "2024-06-01", DateTo: "2024-06-02"}, wantField: "destination"},
		{name: "too long", form: ReverseForm{Destination: "catania", DateFrom: "2024-06-01", DateTo: "2024-06-03"}, wantField: "destination"},
		{name: "digits", form: ReverseForm{Destination: "C7A", DateFrom: "2024-06-01", DateTo: "2024-06-02"}, wantField: "destination"},
		{name: "bad date", form: ReverseForm{Destination: "CTA", DateFrom: "01/06/2024", DateTo: "2024-06-02"}, wantField: "date_from"},
		{name: "past date", form: ReverseForm{Destination: "CTA", DateFrom: "2024-05-01", DateTo: "2024-05-02"}, wantField: "date_from"},
		{name: "missing end", form: ReverseForm{Destination: "CTA", DateFrom: "2024-06-01"}, wantField: "date_to"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.form.Validate(today)
			if !errors.Is(err, derr.ErrFormInvalid) {
				t.Fatalf("expected ErrFormInvalid, got %v", err)
			}
			var fe *FieldError
			if !errors.As(err, &fe) || fe.Field != tc.wantField {
				t.Fatalf("expected field %q, got %v", tc.wantField, err)
			}
		})
	}
}

func TestReverseForm_NormalizeKeepsEndAfterStart(t *testing.T) {
	got := ReverseForm{Destination: "cta", DateFrom: "2024-06-10", DateTo: "2024-06-05"}.Normalize()
	if got.DateTo != "2024-06-10" {
		t.Fatalf("expected end moved to start, got %s", got.DateTo)
	}
}

func TestDefaultForms(t *testing.T) {
	r := DefaultReverseForm(today)
	if r.DateFrom != "2024-05-20" || r.DateTo != "2024-05-23" {
		t.Fatalf("unexpected reverse defaults: %+v", r)
	}

	s := DefaultSmartForm(today)
	if s.DateFrom != "2024-06-19" || s.DateTo != "2024-07-01" || s.Budget != "300" || s.Travelers != "1" {
		t.Fatalf("unexpected smart defaults: %+v", s)
	}
}

func TestSmartDatesOnFromChange(t *testing.T) {
	from := mustDate(t, "2024-07-10")

	if got := FormatDate(SmartDatesOnFromChange(from, mustDate(t, "2024-07-05"))); got != "2024-07-22" {
		t.Fatalf("return before departure must advance by 12 days, got %s", got)
	}
	if got := FormatDate(SmartDatesOnFromChange(from, from)); got != "2024-07-22" {
		t.Fatalf("return equal to departure must advance, got %s", got)
	}
	if got := FormatDate(SmartDatesOnFromChange(from, mustDate(t, "2024-07-20"))); got != "2024-07-20" {
		t.Fatalf("later return must be kept, got %s", got)
	}
}

func TestSmartForm_DurationBand(t *testing.T) {
	from := "2024-07-01"
	for days := 1; days <= 30; days++ {
		form := SmartForm{
			Origin:    "CTA",
			Budget:    "300",
			Travelers: "2",
			DateFrom:  from,
			DateTo:    FormatDate(AddDays(mustDate(t, from), days)),
		}

		q, err := form.Validate(today)
		inBand := days >= MinTripDays && days <= MaxTripDays
		if inBand {
			if err != nil {
				t.Fatalf("%d days: unexpected error: %v", days, err)
			}
			if q.TripDurationDays != days {
				t.Fatalf("%d days: request carries %d", days, q.TripDurationDays)
			}
			continue
		}
		if !errors.Is(err, derr.ErrFormInvalid) {
			t.Fatalf("%d days: expected block, got %v", days, err)
		}
	}
}

func TestSmartForm_ValidateBlocks(t *testing.T) {
	base := SmartForm{Origin: "CTA", Budget: "300", Travelers: "1", DateFrom: "2024-07-01", DateTo: "2024-07-13"}

	tests := []struct {
		name      string
		mutate    func(f *SmartForm)
		wantField string
	}{
		{name: "bad origin", mutate: func(f *SmartForm) { f.Origin = "x" }, wantField: "origin"},
		{name: "origin too long", mutate: func(f *SmartForm) { f.Origin = "palermo" }, wantField: "origin"},
		{name: "return before departure", mutate: func(f *SmartForm) { f.DateFrom, f.DateTo = "2024-08-01", "2024-07-20" }, wantField: "date_to"},
		{name: "return on departure day", mutate: func(f *SmartForm) { f.DateTo = f.DateFrom }, wantField: "date_to"},
		{name: "low budget", mutate: func(f *SmartForm) { f.Budget = "40" }, wantField: "budget"},
		{name: "budget not a number", mutate: func(f *SmartForm) { f.Budget = "tanti" }, wantField: "budget"},
		{name: "zero travelers", mutate: func(f *SmartForm) { f.Travelers = "0" }, wantField: "travelers"},
		{name: "too many travelers", mutate: func(f *SmartForm) { f.Travelers = "10" }, wantField: "travelers"},
		{name: "past departure", mutate: func(f *SmartForm) { f.DateFrom = "2024-05-01" }, wantField: "date_from"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := base
			tc.mutate(&f)
			_, err := f.Validate(today)
			var fe *FieldError
			if !errors.As(err, &fe) || fe.Field != tc.wantField {
				t.Fatalf("expected field %q, got %v", tc.wantField, err)
			}
		})
	}
}

func TestSmartForm_ReversedPairIsNotRewritten(t *testing.T) {
	form := SmartForm{Origin: "pmo", Budget: "250.5", Travelers: "3", DateFrom: "2024-08-01", DateTo: "2024-07-20"}

	if got := form.Normalize(); got.DateTo != "2024-07-20" {
		t.Fatalf("return date must be kept as submitted, got %s", got.DateTo)
	}

	_, err := form.Validate(today)
	var fe *FieldError
	if !errors.As(err, &fe) || fe.Field != "date_to" {
		t.Fatalf("expected block on date_to, got %v", err)
	}
}

func TestSmartForm_Validate(t *testing.T) {
	q, err := SmartForm{Origin: " pmo", Budget: "250.5", Travelers: "3", DateFrom: "2024-08-01", DateTo: "2024-08-13"}.Validate(today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Origin != "PMO" || q.TripDurationDays != 12 || q.BudgetPerPersonEUR != 250.5 || q.Travelers != 3 {
		t.Fatalf("unexpected query: %+v", q)
	}
}

func TestToday(t *testing.T) {
	now := time.Date(2024, 5, 20, 23, 59, 0, 0, time.UTC)
	if got := Today(now); !got.Equal(today) {
		t.Fatalf("unexpected today: %s", got)
	}
}
