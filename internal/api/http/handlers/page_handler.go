package handlers

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ozzus/hopcraft/internal/application/forms"
	"github.com/ozzus/hopcraft/internal/application/shell"
	derr "github.com/ozzus/hopcraft/internal/domain/errors"
	"github.com/ozzus/hopcraft/internal/domain/models"
	"github.com/ozzus/hopcraft/internal/presentation"
)

type SearchStarter interface {
	StartReverse(sessionID string, form forms.ReverseForm) (shell.State, error)
	StartSmart(sessionID string, form forms.SmartForm) (shell.State, error)
}

type AirportCatalog interface {
	List(ctx context.Context) ([]models.Airport, error)
	Index(ctx context.Context) models.AirportIndex
	Nearby(ctx context.Context, lat, lon float64, radiusKm int) ([]models.NearbyAirport, error)
}

type PageHandler struct {
	log      *zap.Logger
	sessions *SessionManager
	searches SearchStarter
	airports AirportCatalog
	tmpl     *template.Template
	timeouts SearchTimeouts
	timeout  time.Duration
}

func NewPageHandler(log *zap.Logger, sessions *SessionManager, searches SearchStarter, airports AirportCatalog, tmpl *template.Template, timeouts SearchTimeouts, airportsTimeout time.Duration) *PageHandler {
	return &PageHandler{
		log:      log,
		sessions: sessions,
		searches: searches,
		airports: airports,
		tmpl:     tmpl,
		timeouts: timeouts,
		timeout:  airportsTimeout,
	}
}

func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	st := h.sessions.Resolve(w, r)
	h.render(w, r, st, http.StatusOK)
}

func (h *PageHandler) SwitchMode(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	mode, parseErr := parseModeFromPath(r.URL.Path)
	if parseErr != "" {
		writeError(w, http.StatusNotFound, parseErr)
		return
	}

	st := h.sessions.Resolve(w, r)
	if _, err := h.sessions.Update(st.ID, func(s *shell.State) { s.SwitchMode(mode) }); err != nil {
		h.log.Error("switch mode failed", zap.Error(err), zap.String("session_id", st.ID))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *PageHandler) SearchReverse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form body")
		return
	}

	form := forms.ReverseForm{
		Destination: r.PostForm.Get("destination"),
		DateFrom:    r.PostForm.Get("date_from"),
		DateTo:      r.PostForm.Get("date_to"),
		DirectOnly:  checkbox(r, "direct_only"),
	}

	st := h.sessions.Resolve(w, r)
	next, err := h.searches.StartReverse(st.ID, form)
	h.afterSubmit(w, r, next, err)
}

func (h *PageHandler) SearchSmart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form body")
		return
	}

	form := forms.SmartForm{
		Origin:     r.PostForm.Get("origin"),
		Budget:     r.PostForm.Get("budget"),
		Travelers:  r.PostForm.Get("travelers"),
		DateFrom:   r.PostForm.Get("date_from"),
		DateTo:     r.PostForm.Get("date_to"),
		DirectOnly: checkbox(r, "direct_only"),
	}

	st := h.sessions.Resolve(w, r)
	next, err := h.searches.StartSmart(st.ID, form)
	h.afterSubmit(w, r, next, err)
}

func (h *PageHandler) afterSubmit(w http.ResponseWriter, r *http.Request, st shell.State, err error) {
	switch {
	case err == nil:
		http.Redirect(w, r, "/", http.StatusSeeOther)
	case errors.Is(err, derr.ErrFormInvalid):
		h.render(w, r, st, http.StatusUnprocessableEntity)
	default:
		h.log.Error("start search failed", zap.Error(err), zap.String("path", r.URL.Path))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, st shell.State, status int) {
	sortKey := presentation.ParseSortKey(r.URL.Query().Get("sort"))
	view := buildPageView(st, sortKey, h.sessions.Now(), h.timeouts)

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	airports, err := h.airports.List(ctx)
	if err != nil {
		h.log.Warn("airport list unavailable", zap.Error(err))
		view.AirportsError = derr.UserMessage(err)
	}
	view.Airports = airports

	writeHTML(h.log, w, h.tmpl, status, view)
}

func checkbox(r *http.Request, key string) bool {
	switch strings.ToLower(strings.TrimSpace(r.PostForm.Get(key))) {
	case "", "false", "0", "off":
		return false
	default:
		return true
	}
}
