// Package openweathermap implements weather.Provider on top of the
// OpenWeatherMap current weather, OneCall 3.0 and Solar Energy APIs.
package openweathermap

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/ventosol/ventosol/internal/provider"
	"github.com/ventosol/ventosol/internal/provider/resilience"
	"github.com/ventosol/ventosol/internal/weather"
)

const (
	// ProviderName identifies this weather provider.
	ProviderName = "openweathermap"

	// DefaultBaseURL is the OpenWeatherMap API host.
	DefaultBaseURL = "https://api.openweathermap.org"

	currentPath    = "/data/2.5/weather"
	oneCallPath    = "/data/3.0/onecall"
	irradiancePath = "/energy/1.0/solar/interval_data"
)

// ClientConfig holds configuration for the OpenWeatherMap client.
type ClientConfig struct {
	// APIKey is the OpenWeatherMap API key (required).
	APIKey string

	// BaseURL is the API host (optional, defaults to DefaultBaseURL).
	BaseURL string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a resilient client with defaults.
	HTTPClient *resilience.Client

	// Clock stamps FetchedAt (optional).
	Clock clockwork.Clock

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is an OpenWeatherMap API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *resilience.Client
	clock      clockwork.Clock
	logger     zerolog.Logger
}

// NewClient creates a new OpenWeatherMap client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.DefaultClientConfig(ProviderName))
	}

	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		httpClient: httpClient,
		clock:      clock,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// CurrentWeather fetches current conditions and enriches them with the daily
// UV index and wind speed from OneCall. OneCall is best-effort: when it fails
// the snapshot is returned without those readings.
func (c *Client) CurrentWeather(ctx context.Context, lat, lng float64) (*weather.Snapshot, error) {
	q := c.coordQuery(lat, lng)
	q.Set("units", "metric")

	var current currentWeatherResponse
	if err := c.httpClient.GetJSON(ctx, c.baseURL+currentPath+"?"+q.Encode(), nil, &current); err != nil {
		return nil, fmt.Errorf("current weather: %w", err)
	}
	if current.Wind == nil || current.Main == nil || current.Clouds == nil {
		return nil, fmt.Errorf("current weather: %w: missing wind, main or clouds", provider.ErrMalformedResponse)
	}

	snap := c.toSnapshot(lat, lng, &current)

	daily, err := c.dailyForecast(ctx, lat, lng)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("onecall: %w: %w", provider.ErrNetworkFailure, ctx.Err())
		}
		c.logger.Warn().Err(err).
			Float64("lat", lat).
			Float64("lng", lng).
			Msg("onecall daily forecast unavailable, continuing without uv index")
		return snap, nil
	}

	snap.UVIndex = daily.UVI
	snap.DailyWindSpeedMs = daily.WindSpeed
	return snap, nil
}

// SolarIrradiance fetches the daily clear and cloudy sky irradiance for date.
func (c *Client) SolarIrradiance(ctx context.Context, lat, lng float64, date time.Time) (*weather.Irradiance, error) {
	q := c.coordQuery(lat, lng)
	q.Set("date", date.Format(time.DateOnly))
	q.Set("interval", "1h")

	var resp irradianceResponse
	if err := c.httpClient.GetJSON(ctx, c.baseURL+irradiancePath+"?"+q.Encode(), nil, &resp); err != nil {
		return nil, fmt.Errorf("solar irradiance: %w", err)
	}
	if len(resp.Irradiance.Daily) == 0 {
		return nil, fmt.Errorf("solar irradiance: %w", provider.ErrNoResults)
	}

	day := resp.Irradiance.Daily[0]
	if day.ClearSky == nil || day.CloudySky == nil {
		return nil, fmt.Errorf("solar irradiance: %w: missing clear_sky or cloudy_sky", provider.ErrMalformedResponse)
	}

	return &weather.Irradiance{
		Lat:          lat,
		Lng:          lng,
		Date:         date,
		ClearSkyGHI:  day.ClearSky.GHI,
		ClearSkyDNI:  day.ClearSky.DNI,
		ClearSkyDHI:  day.ClearSky.DHI,
		CloudySkyGHI: day.CloudySky.GHI,
		CloudySkyDNI: day.CloudySky.DNI,
		CloudySkyDHI: day.CloudySky.DHI,
		FetchedAt:    c.clock.Now(),
	}, nil
}

var errNoDaily = errors.New("no daily forecast")

func (c *Client) dailyForecast(ctx context.Context, lat, lng float64) (*dailyForecast, error) {
	q := c.coordQuery(lat, lng)
	q.Set("exclude", "minutely,hourly,alerts")
	q.Set("units", "metric")

	var resp oneCallResponse
	if err := c.httpClient.GetJSON(ctx, c.baseURL+oneCallPath+"?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	if len(resp.Daily) == 0 {
		return nil, errNoDaily
	}
	return &resp.Daily[0], nil
}

func (c *Client) coordQuery(lat, lng float64) url.Values {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', 6, 64))
	q.Set("lon", strconv.FormatFloat(lng, 'f', 6, 64))
	q.Set("appid", c.apiKey)
	return q
}

// toSnapshot converts an OpenWeatherMap response to the domain model.
func (c *Client) toSnapshot(lat, lng float64, resp *currentWeatherResponse) *weather.Snapshot {
	snap := &weather.Snapshot{
		Lat:              lat,
		Lng:              lng,
		WindSpeedMs:      resp.Wind.Speed,
		WindDirectionDeg: resp.Wind.Deg,
		WindGustMs:       resp.Wind.Gust,
		CloudCoverPct:    resp.Clouds.All,
		PressureHpa:      resp.Main.Pressure,
		TemperatureC:     resp.Main.Temp,
		HumidityPct:      resp.Main.Humidity,
		FetchedAt:        c.clock.Now(),
	}
	if resp.Dt > 0 {
		snap.ObservedAt = time.Unix(resp.Dt, 0).UTC()
	}

	if len(resp.Weather) > 0 {
		snap.Condition = mapCondition(resp.Weather[0].Main)
		snap.Description = resp.Weather[0].Description
	} else {
		snap.Condition = weather.ConditionUnknown
	}

	return snap
}

// mapCondition maps OpenWeatherMap condition to domain condition.
func mapCondition(owmCondition string) weather.Condition {
	switch owmCondition {
	case "Clear":
		return weather.ConditionClear
	case "Clouds":
		return weather.ConditionClouds
	case "Rain":
		return weather.ConditionRain
	case "Drizzle":
		return weather.ConditionDrizzle
	case "Thunderstorm":
		return weather.ConditionThunderstorm
	case "Snow":
		return weather.ConditionSnow
	case "Mist":
		return weather.ConditionMist
	case "Fog":
		return weather.ConditionFog
	case "Haze", "Dust", "Sand", "Ash", "Squall", "Tornado":
		return weather.ConditionHaze
	default:
		return weather.ConditionUnknown
	}
}

// OpenWeatherMap API response structures.

type currentWeatherResponse struct {
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Main *struct {
		Temp     float64 `json:"temp"`
		Pressure float64 `json:"pressure"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Wind *struct {
		Speed float64  `json:"speed"`
		Deg   float64  `json:"deg"`
		Gust  *float64 `json:"gust"`
	} `json:"wind"`
	Clouds *struct {
		All float64 `json:"all"`
	} `json:"clouds"`
	Dt int64 `json:"dt"`
}

type dailyForecast struct {
	UVI       *float64 `json:"uvi"`
	WindSpeed *float64 `json:"wind_speed"`
}

type oneCallResponse struct {
	Daily []dailyForecast `json:"daily"`
}

type skyIrradiance struct {
	GHI float64 `json:"ghi"`
	DNI float64 `json:"dni"`
	DHI float64 `json:"dhi"`
}

type irradianceResponse struct {
	Irradiance struct {
		Daily []struct {
			ClearSky  *skyIrradiance `json:"clear_sky"`
			CloudySky *skyIrradiance `json:"cloudy_sky"`
		} `json:"daily"`
	} `json:"irradiance"`
}
