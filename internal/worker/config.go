// Package worker runs background maintenance inside the API process: it keeps
// the weather cache warm for the sample cities and evicts idle sessions.
package worker

import (
	"time"

	"github.com/ventosol/ventosol/internal/geocoding"
)

// Point is a coordinate whose conditions are prefetched.
type Point struct {
	Name string
	Lat  float64
	Lng  float64
}

// Config holds configuration for the warm-up job.
type Config struct {
	// Points are the coordinates to prefetch.
	// If empty, uses DefaultPoints.
	Points []Point

	// Concurrency is the number of concurrent fetches.
	// Default: 3
	Concurrency int

	// Timeout bounds each point.
	// Default: 30 seconds
	Timeout time.Duration

	// Interval is the time between runs. It should be shorter than the
	// weather cache TTL so the sample cities never go cold.
	// Default: 9 minutes
	Interval time.Duration
}

// DefaultConfig returns the default warm-up configuration.
func DefaultConfig() Config {
	return Config{
		Points:      DefaultPoints(),
		Concurrency: 3,
		Timeout:     30 * time.Second,
		Interval:    9 * time.Minute,
	}
}

// DefaultPoints returns the city samples offered by the suggestions endpoint.
func DefaultPoints() []Point {
	samples := geocoding.CitySamples()
	points := make([]Point, 0, len(samples))
	for _, s := range samples {
		points = append(points, Point{Name: s.Name, Lat: s.Lat, Lng: s.Lng})
	}
	return points
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if len(c.Points) == 0 {
		c.Points = d.Points
	}
	if c.Concurrency <= 0 {
		c.Concurrency = d.Concurrency
	}
	if c.Timeout <= 0 {
		c.Timeout = d.Timeout
	}
	if c.Interval <= 0 {
		c.Interval = d.Interval
	}
	return c
}
