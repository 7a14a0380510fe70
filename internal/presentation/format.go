package presentation

import (
	"fmt"
	"strconv"

	"github.com/ozzus/hopcraft/internal/domain/models"
)

const departureLayout = "02/01 15:04"

func FormatDuration(minutes int) string {
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// FormatDeparture renders day/month and time as the backend sent them; no zone conversion.
func FormatDeparture(ts models.Timestamp) string {
	if ts.IsZero() {
		return ts.String()
	}
	return ts.Time().Format(departureLayout)
}

func FormatEUR(value float64, decimals int) string {
	return "€" + strconv.FormatFloat(value, 'f', decimals, 64)
}
