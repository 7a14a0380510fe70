package models

import (
	"encoding/json"
	"strings"
	"time"
)

// DateLayout is the calendar-date format exchanged with the search API and the forms.
const DateLayout = "2006-01-02"

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	DateLayout,
}

// Timestamp is a departure time as sent by the backend. The backend may omit the zone, so
// parsing is lenient and the original text is re-encoded unchanged.
type Timestamp struct {
	t   time.Time
	raw string
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{t: t, raw: t.Format(time.RFC3339)}
}

// ParseTimestamp never fails: text that matches no known layout keeps its raw form and a zero time.
func ParseTimestamp(value string) Timestamp {
	value = strings.TrimSpace(value)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return Timestamp{t: t, raw: value}
		}
	}
	return Timestamp{raw: value}
}

func (ts Timestamp) Time() time.Time { return ts.t }

func (ts Timestamp) IsZero() bool { return ts.t.IsZero() }

func (ts Timestamp) String() string { return ts.raw }

func (ts Timestamp) Equal(other Timestamp) bool {
	return ts.raw == other.raw && ts.t.Equal(other.t)
}

func (ts Timestamp) Before(other Timestamp) bool { return ts.t.Before(other.t) }

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.raw == "" {
		return []byte("null"), nil
	}
	return json.Marshal(ts.raw)
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*ts = Timestamp{}
		return nil
	}

	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	*ts = ParseTimestamp(value)
	return nil
}
