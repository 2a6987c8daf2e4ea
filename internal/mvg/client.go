package mvg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/Laetus/mvv-bot/internal/domain"
)

const (
	maxStations   = 3
	maxDepartures = 10

	authHeader = "x-mvg-authorization-key"
)

var (
	// ErrUpstreamUnavailable means the transit API could not be reached or
	// returned a body that is not well-formed JSON.
	ErrUpstreamUnavailable = errors.New("transit upstream unavailable")
	// ErrUpstreamError means the transit API rejected the request
	// (non-2xx status, e.g. an invalid auth key).
	ErrUpstreamError = errors.New("transit upstream rejected request")
)

// Client talks to the MVG transit API. Calls are not retried; failures
// surface to the caller as ErrUpstreamUnavailable or ErrUpstreamError.
type Client struct {
	httpClient *http.Client
	baseURL    string
	authKey    string
	log        *zap.Logger
}

func NewClient(baseURL, authKey string, log *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		authKey:    authKey,
		log:        log,
	}
}

// FindNearbyStations returns at most 3 stations close to the given
// location, in upstream order (trusted to be distance-ascending). Zero
// results or an unparsable body count as "no stations found", not as an
// error.
func (c *Client) FindNearbyStations(ctx context.Context, loc domain.Location) ([]domain.Station, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(loc.Latitude, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(loc.Longitude, 'f', -1, 64))

	body, err := c.get(ctx, "/fahrinfo/api/location/nearby?"+q.Encode())
	if err != nil {
		return nil, err
	}

	var nearby nearbyResponse
	if err := json.Unmarshal(body, &nearby); err != nil {
		c.log.Debug("unparsable nearby response treated as empty", zap.Error(err))
		return nil, nil
	}

	records := nearby.Locations
	if len(records) > maxStations {
		records = records[:maxStations]
	}
	stations := make([]domain.Station, 0, len(records))
	for _, r := range records {
		stations = append(stations, r.toDomain())
	}
	return stations, nil
}

// GetDepartures returns at most the first 10 upcoming departures for a
// station, in upstream order (soonest-first).
func (c *Client) GetDepartures(ctx context.Context, stationID int64) ([]domain.Departure, error) {
	body, err := c.get(ctx, fmt.Sprintf("/fahrinfo/api/departure/%d", stationID))
	if err != nil {
		return nil, err
	}

	var deps departuresResponse
	if err := json.Unmarshal(body, &deps); err != nil {
		return nil, fmt.Errorf("%w: decode departures: %v", ErrUpstreamUnavailable, err)
	}

	records := deps.Departures
	if len(records) > maxDepartures {
		records = records[:maxDepartures]
	}
	departures := make([]domain.Departure, 0, len(records))
	for _, r := range records {
		departures = append(departures, r.toDomain())
	}
	return departures, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrUpstreamUnavailable, err)
	}
	req.Header.Set(authHeader, c.authKey)
	req.Header.Set("cache-control", "no-cache")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: status %d", ErrUpstreamError, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUpstreamUnavailable, err)
	}
	return body, nil
}
