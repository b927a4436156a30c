// Package weather fetches current conditions from the Open-Meteo APIs.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const (
	DefaultGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"
	DefaultForecastURL  = "https://api.open-meteo.com/v1/forecast"

	coordinatesTTL = 24 * time.Hour
	requestTimeout = 10 * time.Second
	maxErrorBody   = 4 << 10
)

// Coordinates is a resolved place.
type Coordinates struct {
	Latitude  float64
	Longitude float64
	Name      string
}

// Conditions are the current weather values at a place.
type Conditions struct {
	Temperature float64
	WindSpeed   float64
	Code        int
}

// Config contains the options for a Client.
type Config struct {
	Location     string
	Language     string
	Timezone     string
	GeocodingURL string
	ForecastURL  string
}

// Client resolves the configured location and fetches its current weather.
// Resolved coordinates are cached for 24 hours.
type Client struct {
	httpClient *http.Client
	config     Config
	now        func() time.Time
	sfg        singleflight.Group

	mu       sync.Mutex
	cached   *Coordinates
	cachedAt time.Time
}

// New returns a Client. When httpClient is nil a client with a 10s timeout is used.
func New(httpClient *http.Client, config Config) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: requestTimeout}
	}
	if config.GeocodingURL == "" {
		config.GeocodingURL = DefaultGeocodingURL
	}
	if config.ForecastURL == "" {
		config.ForecastURL = DefaultForecastURL
	}
	return &Client{
		httpClient: httpClient,
		config:     config,
		now:        time.Now,
	}
}

// SetNow replaces the clock used for cache expiry.
func (c *Client) SetNow(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// ResolvePlace geocodes name and returns the first match.
func (c *Client) ResolvePlace(ctx context.Context, name string) (Coordinates, error) {
	params := url.Values{}
	params.Set("name", name)
	params.Set("count", "1")
	if c.config.Language != "" {
		params.Set("language", c.config.Language)
	}
	params.Set("format", "json")

	var payload geocodingResponse
	if err := c.getJSON(ctx, "geocode", c.config.GeocodingURL, params, &payload); err != nil {
		return Coordinates{}, err
	}
	if len(payload.Results) == 0 {
		return Coordinates{}, &NotFoundError{Place: name}
	}
	top := payload.Results[0]
	if top.Latitude == nil || top.Longitude == nil {
		return Coordinates{}, &UpstreamError{Op: "geocode", Err: fmt.Errorf("result without coordinates")}
	}
	resolved := top.Name
	if resolved == "" {
		resolved = name
	}
	return Coordinates{Latitude: *top.Latitude, Longitude: *top.Longitude, Name: resolved}, nil
}

// Coordinates returns the configured location, resolving it when the cache is
// empty or older than 24 hours.
func (c *Client) Coordinates(ctx context.Context) (Coordinates, error) {
	c.mu.Lock()
	if c.cached != nil && c.now().Sub(c.cachedAt) < coordinatesTTL {
		coords := *c.cached
		c.mu.Unlock()
		return coords, nil
	}
	c.mu.Unlock()

	x, err, _ := c.sfg.Do("coordinates", func() (any, error) {
		coords, err := c.ResolvePlace(ctx, c.config.Location)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.cached = &coords
		c.cachedAt = c.now()
		c.mu.Unlock()
		slog.Info("location resolved", "query", c.config.Location, "place", coords.Name, "lat", coords.Latitude, "lon", coords.Longitude)
		return coords, nil
	})
	if err != nil {
		return Coordinates{}, err
	}
	return x.(Coordinates), nil
}

// Current fetches the current conditions at coords.
func (c *Client) Current(ctx context.Context, coords Coordinates) (Conditions, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(coords.Latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(coords.Longitude, 'f', -1, 64))
	params.Set("current", "temperature_2m,wind_speed_10m,weather_code")
	if c.config.Timezone != "" {
		params.Set("timezone", c.config.Timezone)
	}

	var payload forecastResponse
	if err := c.getJSON(ctx, "forecast", c.config.ForecastURL, params, &payload); err != nil {
		return Conditions{}, err
	}
	cur := payload.Current
	if cur == nil {
		return Conditions{}, &UpstreamError{Op: "forecast", Err: fmt.Errorf("missing current block")}
	}
	if cur.Temperature == nil || cur.WindSpeed == nil || cur.WeatherCode == nil {
		return Conditions{}, &UpstreamError{Op: "forecast", Err: fmt.Errorf("incomplete current block")}
	}
	return Conditions{
		Temperature: *cur.Temperature,
		WindSpeed:   *cur.WindSpeed,
		Code:        int(*cur.WeatherCode),
	}, nil
}

// Summary returns a one-line description of the current weather,
// e.g. "Helsinki: -3.2°C, Lumisadetta, wind 4.0 m/s".
func (c *Client) Summary(ctx context.Context) (string, error) {
	coords, err := c.Coordinates(ctx)
	if err != nil {
		return "", err
	}
	conditions, err := c.Current(ctx, coords)
	if err != nil {
		return "", err
	}
	return FormatSummary(coords.Name, conditions), nil
}

// FormatSummary renders conditions at place as a single line.
func FormatSummary(place string, conditions Conditions) string {
	return fmt.Sprintf(
		"%s: %+.1f°C, %s, wind %.1f m/s",
		place,
		conditions.Temperature,
		Description(conditions.Code),
		conditions.WindSpeed,
	)
}

func (c *Client) getJSON(ctx context.Context, op, endpoint string, params url.Values, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &UpstreamError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &UpstreamError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("%s", body)}
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return &UpstreamError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

type geocodingResponse struct {
	Results []struct {
		Name      string   `json:"name"`
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	} `json:"results"`
}

type forecastResponse struct {
	Current *struct {
		Temperature *float64 `json:"temperature_2m"`
		WindSpeed   *float64 `json:"wind_speed_10m"`
		WeatherCode *float64 `json:"weather_code"`
	} `json:"current"`
}
