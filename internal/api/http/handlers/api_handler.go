package handlers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ozzus/hopcraft/internal/application/shell"
	derr "github.com/ozzus/hopcraft/internal/domain/errors"
	"github.com/ozzus/hopcraft/internal/presentation"
)

type APIHandler struct {
	log      *zap.Logger
	sessions *SessionManager
	airports AirportCatalog
	timeouts SearchTimeouts
	timeout  time.Duration
}

type fieldErrorResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type stateResponse struct {
	Mode       shell.Mode             `json:"mode"`
	Status     shell.Status           `json:"status"`
	Token      uint64                 `json:"token"`
	Error      string                 `json:"error,omitempty"`
	FieldError *fieldErrorResponse    `json:"field_error,omitempty"`
	Progress   *presentation.Progress `json:"progress,omitempty"`
	HasResult  bool                   `json:"has_result"`
}

func NewAPIHandler(log *zap.Logger, sessions *SessionManager, airports AirportCatalog, timeouts SearchTimeouts, airportsTimeout time.Duration) *APIHandler {
	return &APIHandler{
		log:      log,
		sessions: sessions,
		airports: airports,
		timeouts: timeouts,
		timeout:  airportsTimeout,
	}
}

func (h *APIHandler) State(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	st := h.sessions.Resolve(w, r)
	mode, parseErr := parseModeQuery(r, st.Mode)
	if parseErr != "" {
		writeError(w, http.StatusBadRequest, parseErr)
		return
	}

	ms := st.ModeState(mode)
	resp := stateResponse{
		Mode:      mode,
		Status:    ms.Status,
		Token:     ms.Token,
		Error:     ms.Err,
		HasResult: ms.Reverse != nil || ms.Smart != nil,
	}
	if ms.FieldError != nil {
		resp.FieldError = &fieldErrorResponse{Field: ms.FieldError.Field, Message: ms.FieldError.Message}
	}
	if ms.Loading() {
		p := presentation.ProgressFor(stagesFor(mode), timeoutFor(mode, h.timeouts), h.sessions.Now().Sub(ms.StartedAt))
		resp.Progress = &p
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *APIHandler) Map(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	st := h.sessions.Resolve(w, r)
	mode, parseErr := parseModeQuery(r, st.Mode)
	if parseErr != "" {
		writeError(w, http.StatusBadRequest, parseErr)
		return
	}

	if mode == shell.ModeReverse {
		layer := presentation.ReverseLayer(nil, "")
		if res := st.Reverse.Reverse; res != nil {
			layer = presentation.ReverseLayer(res.Results, res.Destination)
		}
		writeJSON(w, http.StatusOK, layer)
		return
	}

	res := st.Smart.Smart
	if res == nil {
		writeJSON(w, http.StatusOK, presentation.SmartLayer(nil, nil))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	writeJSON(w, http.StatusOK, presentation.SmartLayer(res.Itineraries, h.airports.Index(ctx)))
}

// Airports serves the full list, or the airports around lat/lon when both are given.
func (h *APIHandler) Airports(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	lat, latPresent, latErr := parseFloatQuery(r, "lat")
	lon, lonPresent, lonErr := parseFloatQuery(r, "lon")
	radius, _, radiusErr := parsePositiveIntQuery(r, "radius_km")
	for _, msg := range []string{latErr, lonErr, radiusErr} {
		if msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}
	}
	if latPresent != lonPresent {
		writeError(w, http.StatusBadRequest, "lat and lon must be given together")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if latPresent {
		nearby, err := h.airports.Nearby(ctx, lat, lon, radius)
		if err != nil {
			h.log.Error("nearby airports failed", zap.Error(err))
			writeError(w, http.StatusBadGateway, derr.UserMessage(err))
			return
		}
		writeJSON(w, http.StatusOK, nearby)
		return
	}

	airports, err := h.airports.List(ctx)
	if err != nil {
		h.log.Error("list airports failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, derr.UserMessage(err))
		return
	}
	writeJSON(w, http.StatusOK, airports)
}
