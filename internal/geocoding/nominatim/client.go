// Package nominatim implements geocoding.Provider on top of the
// OpenStreetMap Nominatim search and reverse APIs.
package nominatim

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/ventosol/ventosol/internal/geocoding"
	"github.com/ventosol/ventosol/internal/provider"
	"github.com/ventosol/ventosol/internal/provider/resilience"
	"github.com/ventosol/ventosol/internal/terrain"
)

const (
	// ProviderName identifies this geocoding provider.
	ProviderName = "nominatim"

	// DefaultBaseURL is the public Nominatim instance.
	DefaultBaseURL = "https://nominatim.openstreetmap.org"

	// DefaultUserAgent identifies the service, as required by the Nominatim usage policy.
	DefaultUserAgent = "ventosol/1.0"

	// reverseZoom asks for city-level detail.
	reverseZoom = "10"
)

// ClientConfig holds configuration for the Nominatim client.
type ClientConfig struct {
	// BaseURL is the API host (optional, defaults to DefaultBaseURL).
	BaseURL string

	// UserAgent is sent with every request (optional, defaults to DefaultUserAgent).
	UserAgent string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a resilient client with defaults.
	HTTPClient *resilience.Client

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is a Nominatim API client.
type Client struct {
	baseURL    string
	header     http.Header
	httpClient *resilience.Client
	logger     zerolog.Logger
}

// NewClient creates a new Nominatim client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.DefaultClientConfig(ProviderName))
	}

	header := http.Header{}
	header.Set("User-Agent", userAgent)

	return &Client{
		baseURL:    baseURL,
		header:     header,
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// Search returns places matching query. Terrain is inferred from the display name.
func (c *Client) Search(ctx context.Context, query string) ([]geocoding.Place, error) {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("q", query)

	var results []searchResult
	if err := c.httpClient.GetJSON(ctx, c.baseURL+"/search?"+q.Encode(), c.header, &results); err != nil {
		return nil, fmt.Errorf("nominatim search: %w", err)
	}

	places := make([]geocoding.Place, 0, len(results))
	for _, r := range results {
		lat, err := strconv.ParseFloat(r.Lat, 64)
		if err != nil {
			return nil, fmt.Errorf("nominatim search: %w: lat %q", provider.ErrMalformedResponse, r.Lat)
		}
		lng, err := strconv.ParseFloat(r.Lon, 64)
		if err != nil {
			return nil, fmt.Errorf("nominatim search: %w: lon %q", provider.ErrMalformedResponse, r.Lon)
		}

		places = append(places, geocoding.Place{
			Lat:     lat,
			Lng:     lng,
			Name:    r.DisplayName,
			Terrain: terrain.FromDisplayName(r.DisplayName),
		})
	}

	c.logger.Debug().
		Str("query", query).
		Int("results", len(places)).
		Msg("nominatim search completed")

	return places, nil
}

// Reverse returns the place at a coordinate. Terrain is inferred from the
// OSM address tags.
func (c *Client) Reverse(ctx context.Context, lat, lng float64) (*geocoding.Place, error) {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lng, 'f', -1, 64))
	q.Set("zoom", reverseZoom)

	var result reverseResult
	if err := c.httpClient.GetJSON(ctx, c.baseURL+"/reverse?"+q.Encode(), c.header, &result); err != nil {
		return nil, fmt.Errorf("nominatim reverse: %w", err)
	}
	if result.Error != "" || result.DisplayName == "" {
		return nil, fmt.Errorf("nominatim reverse: %w", provider.ErrNoResults)
	}

	return &geocoding.Place{
		Lat:  lat,
		Lng:  lng,
		Name: result.DisplayName,
		Terrain: terrain.FromAddressTags(terrain.AddressTags{
			Natural: result.Address.Natural,
			Landuse: result.Address.Landuse,
			Place:   result.Address.Place,
		}),
	}, nil
}

// Nominatim API response structures.

type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

type reverseResult struct {
	DisplayName string `json:"display_name"`
	Error       string `json:"error"`
	Address     struct {
		Natural string `json:"natural"`
		Landuse string `json:"landuse"`
		Place   string `json:"place"`
	} `json:"address"`
}
