package flightapi

import (
	"encoding/json"

	"github.com/ozzus/hopcraft/internal/domain/models"
)

type smartMultiRequest struct {
	Origin             string  `json:"origin"`
	TripDurationDays   int     `json:"trip_duration_days"`
	BudgetPerPersonEUR float64 `json:"budget_per_person_eur"`
	Travelers          int     `json:"travelers"`
	DateFrom           string  `json:"date_from"`
	DateTo             string  `json:"date_to"`
	DirectOnly         bool    `json:"direct_only"`
}

func newSmartMultiRequest(q models.SmartMultiQuery) smartMultiRequest {
	return smartMultiRequest{
		Origin:             q.Origin,
		TripDurationDays:   q.TripDurationDays,
		BudgetPerPersonEUR: q.BudgetPerPersonEUR,
		Travelers:          q.Travelers,
		DateFrom:           q.DateFrom.Format(models.DateLayout),
		DateTo:             q.DateTo.Format(models.DateLayout),
		DirectOnly:         q.DirectOnly,
	}
}

type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

type validationIssue struct {
	Msg string `json:"msg"`
}
