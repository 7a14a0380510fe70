package flightapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	derr "github.com/ozzus/hopcraft/internal/domain/errors"
	"github.com/ozzus/hopcraft/internal/domain/models"
)

const tracerName = "hopcraft/flightapi"

const (
	defaultBaseURL         = "http://localhost:8000"
	defaultAirportsTimeout = 10 * time.Second
	defaultReverseTimeout  = 45 * time.Second
	defaultSmartTimeout    = 120 * time.Second
	apiPrefix              = "/api/v1"
	maxErrorBodyBytes      = 1 << 20
)

type Timeouts struct {
	Airports time.Duration
	Reverse  time.Duration
	Smart    time.Duration
}

type Client struct {
	log        *zap.Logger
	baseURL    string
	httpClient *http.Client
	timeouts   Timeouts
}

// NewClient does not set http.Client.Timeout: each call carries its own deadline so that an
// expired search is reported as too slow rather than as a transport error.
func NewClient(log *zap.Logger, baseURL string, httpClient *http.Client, timeouts Timeouts) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if timeouts.Airports <= 0 {
		timeouts.Airports = defaultAirportsTimeout
	}
	if timeouts.Reverse <= 0 {
		timeouts.Reverse = defaultReverseTimeout
	}
	if timeouts.Smart <= 0 {
		timeouts.Smart = defaultSmartTimeout
	}

	return &Client{
		log:        log,
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: httpClient,
		timeouts:   timeouts,
	}
}

func (c *Client) Timeouts() Timeouts {
	return c.timeouts
}

func (c *Client) FetchAirports(ctx context.Context) (airports []models.Airport, err error) {
	const op = "flightapi.FetchAirports"
	ctx, span := otel.Tracer(tracerName).Start(ctx, op)
	logger := c.log.With(zap.String("op", op))
	defer func(start time.Time) { c.finish(logger, span, start, err, len(airports)) }(time.Now())

	if err := c.getList(ctx, c.baseURL+apiPrefix+"/airports", &airports); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if airports == nil {
		airports = []models.Airport{}
	}
	return airports, nil
}

func (c *Client) FetchAirportsInRadius(ctx context.Context, lat, lon float64, radiusKm int) (airports []models.NearbyAirport, err error) {
	const op = "flightapi.FetchAirportsInRadius"
	ctx, span := otel.Tracer(tracerName).Start(ctx, op, trace.WithAttributes(
		attribute.Float64("airports.lat", lat),
		attribute.Float64("airports.lon", lon),
		attribute.Int("airports.radius_km", radiusKm),
	))
	logger := c.log.With(zap.String("op", op))
	defer func(start time.Time) { c.finish(logger, span, start, err, len(airports)) }(time.Now())

	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	if radiusKm > 0 {
		q.Set("radius_km", strconv.Itoa(radiusKm))
	}

	if err := c.getList(ctx, c.baseURL+apiPrefix+"/airports/in-radius?"+q.Encode(), &airports); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if airports == nil {
		airports = []models.NearbyAirport{}
	}
	return airports, nil
}

// getList maps every failure to ErrAirportsUnavailable: the airport list only feeds autocomplete
// and map coordinates, so callers never need more detail than "unavailable".
func (c *Client) getList(ctx context.Context, reqURL string, out any) error {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeouts.Airports)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: do request: %v", derr.ErrAirportsUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: unexpected status: %s", derr.ErrAirportsUnavailable, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", derr.ErrAirportsUnavailable, err)
	}
	return nil
}

// SearchReverse returns server failures as *errors.APIError and an expired deadline as
// ErrSearchTooSlow, both unwrapped so their messages can be shown as they are.
func (c *Client) SearchReverse(ctx context.Context, query models.ReverseQuery) (result models.ReverseResult, err error) {
	const op = "flightapi.SearchReverse"
	ctx, span := otel.Tracer(tracerName).Start(ctx, op, trace.WithAttributes(
		attribute.String("search.destination", query.Destination),
		attribute.Bool("search.direct_only", query.DirectOnly),
	))
	logger := c.log.With(zap.String("op", op), zap.String("destination", query.Destination))
	defer func(start time.Time) { c.finish(logger, span, start, err, len(result.Results)) }(time.Now())

	reqURL := c.baseURL + apiPrefix + "/search/reverse?" + reverseQueryString(query)

	if err := c.doSearch(ctx, http.MethodGet, reqURL, nil, c.timeouts.Reverse, &result); err != nil {
		return models.ReverseResult{}, err
	}
	if result.Results == nil {
		result.Results = []models.FlightOffer{}
	}
	return result, nil
}

func (c *Client) SearchSmartMulti(ctx context.Context, query models.SmartMultiQuery) (result models.SmartMultiResult, err error) {
	const op = "flightapi.SearchSmartMulti"
	ctx, span := otel.Tracer(tracerName).Start(ctx, op, trace.WithAttributes(
		attribute.String("search.origin", query.Origin),
		attribute.Int("search.trip_duration_days", query.TripDurationDays),
		attribute.Int("search.travelers", query.Travelers),
	))
	logger := c.log.With(zap.String("op", op), zap.String("origin", query.Origin))
	defer func(start time.Time) { c.finish(logger, span, start, err, len(result.Itineraries)) }(time.Now())

	payload, err := json.Marshal(newSmartMultiRequest(query))
	if err != nil {
		return models.SmartMultiResult{}, fmt.Errorf("%s: marshal request: %w", op, err)
	}

	reqURL := c.baseURL + apiPrefix + "/search/smart-multi"
	if err := c.doSearch(ctx, http.MethodPost, reqURL, payload, c.timeouts.Smart, &result); err != nil {
		return models.SmartMultiResult{}, err
	}
	if result.Itineraries == nil {
		result.Itineraries = []models.Itinerary{}
	}
	return result, nil
}

func (c *Client) finish(logger *zap.Logger, span trace.Span, start time.Time, err error, count int) {
	defer span.End()
	elapsed := time.Since(start)

	if err != nil {
		logger.Warn("search api call failed", zap.Duration("elapsed", elapsed), zap.Error(err))
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return
	}

	logger.Debug("search api call done", zap.Duration("elapsed", elapsed), zap.Int("count", count))
	span.SetAttributes(attribute.Int("response.count", count))
	span.SetStatus(otelcodes.Ok, "ok")
}

func (c *Client) doSearch(ctx context.Context, method, reqURL string, body []byte, timeout time.Duration, out any) error {
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(reqCtx, method, reqURL, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return mapTransportError(ctx, reqCtx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return parseAPIError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return mapTransportError(ctx, reqCtx, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

func mapTransportError(parent, reqCtx context.Context, err error) error {
	if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
		return derr.ErrSearchTooSlow
	}
	if parent.Err() != nil {
		return parent.Err()
	}
	return fmt.Errorf("%w: %v", derr.ErrBackendUnavailable, err)
}

// reverseQueryString keeps the parameter order of the API documentation; url.Values.Encode
// would sort the keys.
func reverseQueryString(query models.ReverseQuery) string {
	maxResults := query.MaxResults
	if maxResults <= 0 {
		maxResults = models.DefaultMaxResults
	}

	params := [][2]string{
		{"destination", query.Destination},
		{"date_from", query.DateFrom.Format(models.DateLayout)},
		{"date_to", query.DateTo.Format(models.DateLayout)},
		{"direct_only", strconv.FormatBool(query.DirectOnly)},
		{"max_results", strconv.Itoa(maxResults)},
	}

	var b strings.Builder
	for i, p := range params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p[0]))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p[1]))
	}
	return b.String()
}
