// Package openweather adapts the OpenWeather REST API to the advisor's
// SnapshotProvider contract. Current conditions come from /data/2.5/weather;
// forecast buckets resolve to the nearest 3-hour slice of /data/2.5/forecast.
package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/couchcryptid/weather-advisor-service/internal/domain"
	"github.com/couchcryptid/weather-advisor-service/internal/observability"
)

// Client implements advisor.SnapshotProvider using the OpenWeather API.
// Snapshots are fetched fresh on every call and never cached.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates an OpenWeather client.
func NewClient(apiKey string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: "https://api.openweathermap.org/data/2.5",
		logger:  logger,
		metrics: metrics,
	}
}

// FetchSnapshot returns normalized conditions for a city. BucketNow reads
// current conditions; every other bucket reads the forecast slice closest to
// the bucket's reference time in the city's local timezone. Unknown cities
// surface as domain.ErrSnapshotUnavailable.
func (c *Client) FetchSnapshot(ctx context.Context, city string, bucket domain.TimeBucket) (domain.WeatherSnapshot, error) {
	if bucket == domain.BucketNow {
		return c.fetchCurrent(ctx, city)
	}
	return c.fetchForecast(ctx, city, bucket)
}

func (c *Client) fetchCurrent(ctx context.Context, city string) (domain.WeatherSnapshot, error) {
	var resp currentResponse
	if err := c.get(ctx, "/weather", city, &resp); err != nil {
		return domain.WeatherSnapshot{}, err
	}

	precip := 0.0
	if len(resp.Rain) > 0 || len(resp.Snow) > 0 {
		precip = 1.0
	}

	return domain.WeatherSnapshot{
		City:                     resp.Name,
		Temperature:              resp.Main.Temp,
		FeelsLike:                resp.Main.FeelsLike,
		Humidity:                 resp.Main.Humidity,
		WindSpeed:                resp.Wind.Speed,
		PrecipitationProbability: precip,
		Description:              description(resp.Weather),
		IsDaylight:               daylightAt(resp.Dt, resp.Sys.Sunrise, resp.Sys.Sunset, resp.Timezone),
		Timestamp:                time.Unix(resp.Dt, 0).UTC(),
	}, nil
}

func (c *Client) fetchForecast(ctx context.Context, city string, bucket domain.TimeBucket) (domain.WeatherSnapshot, error) {
	var resp forecastResponse
	if err := c.get(ctx, "/forecast", city, &resp); err != nil {
		return domain.WeatherSnapshot{}, err
	}
	if len(resp.List) == 0 {
		return domain.WeatherSnapshot{}, fmt.Errorf("%w: empty forecast for %q", domain.ErrSnapshotUnavailable, city)
	}

	loc := time.FixedZone("city", resp.City.Timezone)
	ref := bucket.ReferenceTime(domain.Now().In(loc))
	slice := nearestSlice(resp.List, ref)

	return domain.WeatherSnapshot{
		City:                     resp.City.Name,
		Temperature:              slice.Main.Temp,
		FeelsLike:                slice.Main.FeelsLike,
		Humidity:                 slice.Main.Humidity,
		WindSpeed:                slice.Wind.Speed,
		PrecipitationProbability: slice.Pop,
		Description:              description(slice.Weather),
		IsDaylight:               daylightAt(slice.Dt, resp.City.Sunrise, resp.City.Sunset, resp.City.Timezone),
		Timestamp:                time.Unix(slice.Dt, 0).UTC(),
	}, nil
}

func (c *Client) get(ctx context.Context, path, city string, out any) error {
	params := url.Values{
		"q":     {city},
		"appid": {c.apiKey},
		"units": {"metric"},
	}
	fullURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.SnapshotDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.SnapshotRequests.WithLabelValues("error").Inc()
		return fmt.Errorf("openweather request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			c.metrics.SnapshotRequests.WithLabelValues("error").Inc()
			return fmt.Errorf("decode response: %w", err)
		}
		c.metrics.SnapshotRequests.WithLabelValues("success").Inc()
		return nil
	case http.StatusNotFound:
		c.metrics.SnapshotRequests.WithLabelValues("not_found").Inc()
		return fmt.Errorf("%w: unknown city %q", domain.ErrSnapshotUnavailable, city)
	default:
		body, _ := io.ReadAll(resp.Body)
		c.metrics.SnapshotRequests.WithLabelValues("error").Inc()
		return fmt.Errorf("openweather API error: status %d: %s", resp.StatusCode, body)
	}
}

// nearestSlice picks the forecast entry with the smallest absolute distance
// to the reference time.
func nearestSlice(list []forecastSlice, ref time.Time) forecastSlice {
	best := list[0]
	bestDelta := absDuration(time.Unix(best.Dt, 0).Sub(ref))
	for _, s := range list[1:] {
		if d := absDuration(time.Unix(s.Dt, 0).Sub(ref)); d < bestDelta {
			best = s
			bestDelta = d
		}
	}
	return best
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

// daylightAt compares the local time of day against local sunrise and sunset.
// OpenWeather reports sunrise/sunset for the current day only, so forecast
// slices on later days reuse the same time-of-day window.
func daylightAt(ts, sunrise, sunset int64, tzOffset int) bool {
	const day = int64(24 * 60 * 60)
	t := ((ts + int64(tzOffset)) % day + day) % day
	r := ((sunrise + int64(tzOffset)) % day + day) % day
	s := ((sunset + int64(tzOffset)) % day + day) % day
	if r <= s {
		return t >= r && t <= s
	}
	return t >= r || t <= s
}

func description(weather []weatherEntry) string {
	if len(weather) == 0 {
		return ""
	}
	return weather[0].Description
}

// OpenWeather API response types.

type weatherEntry struct {
	Description string `json:"description"`
}

type mainBlock struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	Humidity  float64 `json:"humidity"`
}

type windBlock struct {
	Speed float64 `json:"speed"`
}

type currentResponse struct {
	Name    string             `json:"name"`
	Dt      int64              `json:"dt"`
	Main    mainBlock          `json:"main"`
	Wind    windBlock          `json:"wind"`
	Weather []weatherEntry     `json:"weather"`
	Rain    map[string]float64 `json:"rain"`
	Snow    map[string]float64 `json:"snow"`
	Sys     struct {
		Sunrise int64 `json:"sunrise"`
		Sunset  int64 `json:"sunset"`
	} `json:"sys"`
	Timezone int `json:"timezone"`
}

type forecastSlice struct {
	Dt      int64          `json:"dt"`
	Main    mainBlock      `json:"main"`
	Wind    windBlock      `json:"wind"`
	Weather []weatherEntry `json:"weather"`
	Pop     float64        `json:"pop"`
}

type forecastResponse struct {
	List []forecastSlice `json:"list"`
	City struct {
		Name     string `json:"name"`
		Timezone int    `json:"timezone"`
		Sunrise  int64  `json:"sunrise"`
		Sunset   int64  `json:"sunset"`
	} `json:"city"`
}
