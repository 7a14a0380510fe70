package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/ozzus/hopcraft/internal/application/forms"
	"github.com/ozzus/hopcraft/internal/application/shell"
	derr "github.com/ozzus/hopcraft/internal/domain/errors"
	"github.com/ozzus/hopcraft/internal/domain/models"
	"github.com/ozzus/hopcraft/internal/domain/ports"
)

const tracerName = "hopcraft/service"

// SearchService validates submissions, moves the session to loading and runs one fetch per
// submission in the background. A fetch only lands if its token is still the latest for
// its mode; superseded fetches run to completion and are dropped.
type SearchService struct {
	log      *zap.Logger
	searcher ports.FlightSearcher
	sessions *shell.Store
	baseCtx  context.Context
	wg       sync.WaitGroup
}

func NewSearchService(ctx context.Context, log *zap.Logger, searcher ports.FlightSearcher, sessions *shell.Store) *SearchService {
	if log == nil {
		log = zap.NewNop()
	}

	return &SearchService{
		log:      log,
		searcher: searcher,
		sessions: sessions,
		baseCtx:  ctx,
	}
}

// StartReverse returns the session state after the submission. A blocked submission returns
// the state carrying the field error together with the *forms.FieldError.
func (s *SearchService) StartReverse(sessionID string, form forms.ReverseForm) (shell.State, error) {
	const op = "service.StartReverse"

	now := s.sessions.Now()
	query, err := form.Validate(forms.Today(now))
	if err != nil {
		return s.reject(op, sessionID, shell.ModeReverse, err, func(st *shell.State) {
			st.ReverseForm = form.Normalize()
		})
	}

	var token uint64
	state, err := s.sessions.Update(sessionID, func(st *shell.State) {
		st.ReverseForm = form.Normalize()
		token = st.Begin(shell.ModeReverse, now)
	})
	if err != nil {
		return shell.State{}, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("reverse search started",
		zap.String("op", op),
		zap.String("session_id", sessionID),
		zap.Uint64("token", token),
		zap.String("destination", query.Destination),
	)

	s.wg.Add(1)
	go s.runReverse(sessionID, token, query)

	return state, nil
}

func (s *SearchService) StartSmart(sessionID string, form forms.SmartForm) (shell.State, error) {
	const op = "service.StartSmart"

	now := s.sessions.Now()
	query, err := form.Validate(forms.Today(now))
	if err != nil {
		return s.reject(op, sessionID, shell.ModeSmart, err, func(st *shell.State) {
			st.SmartForm = form.Normalize()
		})
	}

	var token uint64
	state, err := s.sessions.Update(sessionID, func(st *shell.State) {
		st.SmartForm = form.Normalize()
		token = st.Begin(shell.ModeSmart, now)
	})
	if err != nil {
		return shell.State{}, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("smart search started",
		zap.String("op", op),
		zap.String("session_id", sessionID),
		zap.Uint64("token", token),
		zap.String("origin", query.Origin),
		zap.Int("trip_duration_days", query.TripDurationDays),
	)

	s.wg.Add(1)
	go s.runSmart(sessionID, token, query)

	return state, nil
}

func (s *SearchService) reject(op, sessionID string, mode shell.Mode, err error, keepForm func(st *shell.State)) (shell.State, error) {
	var fieldErr *forms.FieldError
	if !errors.As(err, &fieldErr) {
		return shell.State{}, fmt.Errorf("%s: %w", op, err)
	}

	state, updErr := s.sessions.Update(sessionID, func(st *shell.State) {
		keepForm(st)
		st.Reject(mode, fieldErr)
	})
	if updErr != nil {
		return shell.State{}, fmt.Errorf("%s: %w", op, updErr)
	}

	s.log.Debug("submission blocked",
		zap.String("op", op),
		zap.String("session_id", sessionID),
		zap.String("field", fieldErr.Field),
	)
	return state, err
}

func (s *SearchService) runReverse(sessionID string, token uint64, query models.ReverseQuery) {
	const op = "service.runReverse"
	defer s.wg.Done()

	ctx, span := otel.Tracer(tracerName).Start(s.baseCtx, op)
	defer span.End()
	span.SetAttributes(
		attribute.String("search.destination", query.Destination),
		attribute.String("search.date_from", query.DateFrom.Format(models.DateLayout)),
		attribute.String("search.date_to", query.DateTo.Format(models.DateLayout)),
		attribute.Bool("search.direct_only", query.DirectOnly),
	)

	logger := s.log.With(
		zap.String("op", op),
		zap.String("session_id", sessionID),
		zap.Uint64("token", token),
	)

	result, err := s.searcher.SearchReverse(ctx, query)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "reverse search failed")
		logger.Warn("reverse search failed", zap.Error(err))
		s.finish(logger, sessionID, func(st *shell.State) bool {
			return st.Fail(shell.ModeReverse, token, derr.UserMessage(err))
		})
		return
	}

	if result.Destination == "" {
		result.Destination = query.Destination
	}
	span.SetAttributes(
		attribute.Int("search.results_count", len(result.Results)),
		attribute.Bool("search.cached", result.Cached),
	)
	span.SetStatus(otelcodes.Ok, "ok")
	logger.Info("reverse search finished", zap.Int("results_count", len(result.Results)), zap.Bool("cached", result.Cached))

	s.finish(logger, sessionID, func(st *shell.State) bool {
		return st.CompleteReverse(token, result)
	})
}

func (s *SearchService) runSmart(sessionID string, token uint64, query models.SmartMultiQuery) {
	const op = "service.runSmart"
	defer s.wg.Done()

	ctx, span := otel.Tracer(tracerName).Start(s.baseCtx, op)
	defer span.End()
	span.SetAttributes(
		attribute.String("search.origin", query.Origin),
		attribute.Int("search.trip_duration_days", query.TripDurationDays),
		attribute.Float64("search.budget_per_person_eur", query.BudgetPerPersonEUR),
		attribute.Int("search.travelers", query.Travelers),
	)

	logger := s.log.With(
		zap.String("op", op),
		zap.String("session_id", sessionID),
		zap.Uint64("token", token),
	)

	result, err := s.searcher.SearchSmartMulti(ctx, query)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "smart search failed")
		logger.Warn("smart search failed", zap.Error(err))
		s.finish(logger, sessionID, func(st *shell.State) bool {
			return st.Fail(shell.ModeSmart, token, derr.UserMessage(err))
		})
		return
	}

	span.SetAttributes(attribute.Int("search.itineraries_count", len(result.Itineraries)))
	span.SetStatus(otelcodes.Ok, "ok")
	logger.Info("smart search finished", zap.Int("itineraries_count", len(result.Itineraries)))

	s.finish(logger, sessionID, func(st *shell.State) bool {
		return st.CompleteSmart(token, result, query.Travelers)
	})
}

func (s *SearchService) finish(logger *zap.Logger, sessionID string, apply func(st *shell.State) bool) {
	applied := false
	if _, err := s.sessions.Update(sessionID, func(st *shell.State) {
		applied = apply(st)
	}); err != nil {
		logger.Debug("session gone before search finished", zap.Error(err))
		return
	}
	if !applied {
		logger.Debug("stale search result discarded")
	}
}

// Wait blocks until every started fetch has finished.
func (s *SearchService) Wait() {
	s.wg.Wait()
}
