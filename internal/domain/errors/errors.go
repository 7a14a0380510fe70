package errors

import (
	"errors"
	"fmt"
)

// User-facing messages are part of the UI contract and stay in Italian.
var (
	ErrAirportsUnavailable = errors.New("Impossibile caricare la lista aeroporti")
	ErrSearchTooSlow       = errors.New("Ricerca troppo lenta, riprova tra qualche minuto.")
	ErrBackendUnavailable  = errors.New("Servizio di ricerca non raggiungibile")
	ErrAirportsNotCached   = errors.New("airports not cached")
	ErrFormInvalid         = errors.New("invalid form")
	ErrSessionNotFound     = errors.New("session not found")
)

// APIError is a non-2xx answer of the search API. Error returns the server detail verbatim.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("Errore %d", e.StatusCode)
	}
	return e.Detail
}

// UserMessage returns the text shown inline for a failed request.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr):
		return apiErr.Error()
	case errors.Is(err, ErrSearchTooSlow):
		return ErrSearchTooSlow.Error()
	case errors.Is(err, ErrAirportsUnavailable):
		return ErrAirportsUnavailable.Error()
	case errors.Is(err, ErrBackendUnavailable):
		return ErrBackendUnavailable.Error()
	default:
		return err.Error()
	}
}
