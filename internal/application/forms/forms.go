// Package forms normalizes and validates the two search forms before anything reaches the
// search API.
package forms

import (
	"fmt"
	"strings"
	"time"

	derr "github.com/ozzus/hopcraft/internal/domain/errors"
	"github.com/ozzus/hopcraft/internal/domain/models"
)

const iataLength = 3

// FieldError reports which field blocked a submission.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *FieldError) Unwrap() error {
	return derr.ErrFormInvalid
}

func fieldError(field, message string) error {
	return &FieldError{Field: field, Message: message}
}

// NormalizeIATA trims and upper-cases a code. Longer input is kept whole so ValidIATA rejects it.
func NormalizeIATA(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

func ValidIATA(code string) bool {
	if len(code) != iataLength {
		return false
	}
	for _, ch := range code {
		if ch < 'A' || ch > 'Z' {
			return false
		}
	}
	return true
}

func ParseDate(value string) (time.Time, bool) {
	t, err := time.Parse(models.DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func FormatDate(t time.Time) string {
	return t.Format(models.DateLayout)
}

func AddDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}

// Today truncates now to a UTC calendar day, the unit every form date is compared in.
func Today(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dayDiff(from, to time.Time) int {
	hours := to.Sub(from).Hours()
	if hours >= 0 {
		return int(hours/24 + 0.5)
	}
	return -int(-hours/24 + 0.5)
}
