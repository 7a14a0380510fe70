package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ozzus/hopcraft/internal/application/forms"
	"github.com/ozzus/hopcraft/internal/application/shell"
	derr "github.com/ozzus/hopcraft/internal/domain/errors"
	"github.com/ozzus/hopcraft/internal/domain/models"
)

type searcherMock struct {
	mu           sync.Mutex
	reverseCalls []models.ReverseQuery
	smartCalls   []models.SmartMultiQuery

	gates   map[string]chan struct{}
	reverse map[string]models.ReverseResult
	smart   models.SmartMultiResult
	err     error
}

func (m *searcherMock) SearchReverse(ctx context.Context, query models.ReverseQuery) (models.ReverseResult, error) {
	m.mu.Lock()
	m.reverseCalls = append(m.reverseCalls, query)
	gate := m.gates[query.Destination]
	m.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return models.ReverseResult{}, ctx.Err()
		}
	}
	if m.err != nil {
		return models.ReverseResult{}, m.err
	}
	return m.reverse[query.Destination], nil
}

func (m *searcherMock) SearchSmartMulti(_ context.Context, query models.SmartMultiQuery) (models.SmartMultiResult, error) {
	m.mu.Lock()
	m.smartCalls = append(m.smartCalls, query)
	m.mu.Unlock()

	if m.err != nil {
		return models.SmartMultiResult{}, m.err
	}
	return m.smart, nil
}

func (m *searcherMock) reverseCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.reverseCalls)
}

func dateIn(days int) string {
	return forms.FormatDate(forms.AddDays(forms.Today(time.Now()), days))
}

func newTestService(t *testing.T, searcher *searcherMock) (*SearchService, *shell.Store, string) {
	t.Helper()
	store := shell.NewStore(time.Hour)
	session := store.Create()
	svc := NewSearchService(context.Background(), nil, searcher, store)
	return svc, store, session.ID
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestStartReverse_Success(t *testing.T) {
	searcher := &searcherMock{reverse: map[string]models.ReverseResult{
		"CTA": {Results: []models.FlightOffer{{Origin: "MXP", PriceEUR: 39}}, Cached: true},
	}}
	svc, store, id := newTestService(t, searcher)

	state, err := svc.StartReverse(id, forms.ReverseForm{Destination: " cta", DateFrom: dateIn(1), DateTo: dateIn(3)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.Reverse.Status != shell.StatusLoading || state.Reverse.Token != 1 {
		t.Fatalf("unexpected state after start: %+v", state.Reverse)
	}
	if state.ReverseForm.Destination != "CTA" {
		t.Fatalf("form must be kept normalized, got %q", state.ReverseForm.Destination)
	}

	svc.Wait()

	got, err := store.Get(id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Reverse.Status != shell.StatusSuccess || got.Reverse.Reverse == nil {
		t.Fatalf("unexpected final state: %+v", got.Reverse)
	}
	if got.Reverse.Reverse.Destination != "CTA" || !got.Reverse.Reverse.Cached {
		t.Fatalf("unexpected result: %+v", got.Reverse.Reverse)
	}
	if len(searcher.reverseCalls) != 1 || searcher.reverseCalls[0].MaxResults != models.DefaultMaxResults {
		t.Fatalf("unexpected calls: %+v", searcher.reverseCalls)
	}
}

func TestStartReverse_InvalidBlocksFetch(t *testing.T) {
	searcher := &searcherMock{}
	svc, store, id := newTestService(t, searcher)

	state, err := svc.StartReverse(id, forms.ReverseForm{Destination: "CT", DateFrom: dateIn(1), DateTo: dateIn(2)})

	var fieldErr *forms.FieldError
	if !errors.As(err, &fieldErr) || fieldErr.Field != "destination" {
		t.Fatalf("expected destination field error, got %v", err)
	}
	if !errors.Is(err, derr.ErrFormInvalid) {
		t.Fatalf("expected ErrFormInvalid, got %v", err)
	}
	if state.Reverse.FieldError == nil || state.Reverse.Status != shell.StatusIdle {
		t.Fatalf("unexpected state: %+v", state.Reverse)
	}

	svc.Wait()
	if searcher.reverseCount() != 0 {
		t.Fatal("blocked submission must not reach the client")
	}
	got, _ := store.Get(id)
	if got.Reverse.Token != 0 {
		t.Fatalf("blocked submission must not issue a token, got %d", got.Reverse.Token)
	}
}

func TestStartReverse_StaleResultDiscarded(t *testing.T) {
	gate := make(chan struct{})
	searcher := &searcherMock{
		gates: map[string]chan struct{}{"BLQ": gate},
		reverse: map[string]models.ReverseResult{
			"BLQ": {Results: []models.FlightOffer{{Origin: "OLD"}}},
			"CTA": {Results: []models.FlightOffer{{Origin: "NEW"}}},
		},
	}
	svc, store, id := newTestService(t, searcher)

	if _, err := svc.StartReverse(id, forms.ReverseForm{Destination: "BLQ", DateFrom: dateIn(1), DateTo: dateIn(2)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.StartReverse(id, forms.ReverseForm{Destination: "CTA", DateFrom: dateIn(1), DateTo: dateIn(2)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	waitFor(t, func() bool {
		st, _ := store.Get(id)
		return st.Reverse.Status == shell.StatusSuccess
	})

	close(gate)
	svc.Wait()

	got, _ := store.Get(id)
	if got.Reverse.Token != 2 || got.Reverse.Reverse.Results[0].Origin != "NEW" {
		t.Fatalf("stale result overwrote newer state: %+v", got.Reverse.Reverse)
	}
	if searcher.reverseCount() != 2 {
		t.Fatalf("expected one fetch per submission, got %d", searcher.reverseCount())
	}
}

func TestStartReverse_FailureMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "server detail", err: &derr.APIError{StatusCode: 404, Detail: "no flights found"}, want: "no flights found"},
		{name: "timeout", err: derr.ErrSearchTooSlow, want: "Ricerca troppo lenta, riprova tra qualche minuto."},
		{name: "no detail", err: &derr.APIError{StatusCode: 500}, want: "Errore 500"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, store, id := newTestService(t, &searcherMock{err: tc.err})

			if _, err := svc.StartReverse(id, forms.ReverseForm{Destination: "CTA", DateFrom: dateIn(0), DateTo: dateIn(1)}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			svc.Wait()

			got, _ := store.Get(id)
			if got.Reverse.Status != shell.StatusError || got.Reverse.Err != tc.want {
				t.Fatalf("expected error %q, got %+v", tc.want, got.Reverse)
			}
		})
	}
}

func TestStartSmart_Success(t *testing.T) {
	searcher := &searcherMock{smart: models.SmartMultiResult{
		Origin:      "CTA",
		Itineraries: []models.Itinerary{{Rank: 1, Route: []string{"CTA", "BCN", "CTA"}}},
	}}
	svc, store, id := newTestService(t, searcher)

	form := forms.SmartForm{Origin: "cta", Budget: "250", Travelers: "2", DateFrom: dateIn(30), DateTo: dateIn(40)}
	if _, err := svc.StartSmart(id, form); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	svc.Wait()

	got, _ := store.Get(id)
	if got.Mode != shell.ModeSmart || got.Smart.Status != shell.StatusSuccess || got.Smart.Travelers != 2 {
		t.Fatalf("unexpected smart state: %+v", got.Smart)
	}
	if len(searcher.smartCalls) != 1 || searcher.smartCalls[0].TripDurationDays != 10 {
		t.Fatalf("unexpected smart calls: %+v", searcher.smartCalls)
	}
}

func TestStartSmart_DurationOutOfBand(t *testing.T) {
	searcher := &searcherMock{}
	svc, _, id := newTestService(t, searcher)

	form := forms.SmartForm{Origin: "CTA", Budget: "300", Travelers: "1", DateFrom: dateIn(30), DateTo: dateIn(33)}
	if _, err := svc.StartSmart(id, form); !errors.Is(err, derr.ErrFormInvalid) {
		t.Fatalf("expected ErrFormInvalid, got %v", err)
	}
	svc.Wait()
	if len(searcher.smartCalls) != 0 {
		t.Fatal("blocked submission must not reach the client")
	}
}

func TestStart_UnknownSession(t *testing.T) {
	svc := NewSearchService(context.Background(), nil, &searcherMock{}, shell.NewStore(time.Hour))

	if _, err := svc.StartReverse("missing", forms.ReverseForm{Destination: "CTA", DateFrom: dateIn(1), DateTo: dateIn(2)}); !errors.Is(err, derr.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	svc.Wait()
}

func TestStart_ShutdownCancelsInFlight(t *testing.T) {
	gate := make(chan struct{})
	defer close(gate)

	store := shell.NewStore(time.Hour)
	session := store.Create()
	ctx, cancel := context.WithCancel(context.Background())
	svc := NewSearchService(ctx, nil, &searcherMock{gates: map[string]chan struct{}{"CTA": gate}}, store)

	if _, err := svc.StartReverse(session.ID, forms.ReverseForm{Destination: "CTA", DateFrom: dateIn(1), DateTo: dateIn(2)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cancel()
	svc.Wait()

	got, _ := store.Get(session.ID)
	if got.Reverse.Status != shell.StatusError {
		t.Fatalf("expected error after shutdown, got %+v", got.Reverse)
	}
}
