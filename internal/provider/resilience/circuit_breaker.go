// Package resilience wraps calls to the geocoding and weather providers with a
// per-attempt timeout, bounded retries and a circuit breaker per provider.
package resilience

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker/v2"
)

// CircuitBreakerConfig configures the breaker guarding one provider.
type CircuitBreakerConfig struct {
	Name string

	// MaxRequests is the number of probe requests let through while half-open.
	MaxRequests uint32

	// Timeout is how long the breaker stays open before probing again.
	Timeout time.Duration

	// ReadyToTrip decides when a closed breaker opens. Nil means DefaultReadyToTrip.
	ReadyToTrip func(counts gobreaker.Counts) bool

	// OnStateChange observes transitions, e.g. closed to open.
	OnStateChange func(name string, from, to gobreaker.State)
}

// DefaultCircuitBreakerConfig opens after a sustained failure rate and probes
// the provider again after one minute.
func DefaultCircuitBreakerConfig(name string) CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Name:        name,
		MaxRequests: 1,
		Timeout:     time.Minute,
		ReadyToTrip: DefaultReadyToTrip,
	}
}

// DefaultReadyToTrip opens the breaker once at least five calls were made and
// half or more of them failed.
func DefaultReadyToTrip(counts gobreaker.Counts) bool {
	if counts.Requests < 5 {
		return false
	}
	return counts.TotalFailures*2 >= counts.Requests
}

// countsAsSuccess reports whether err should leave the breaker untouched.
// Analyses superseded by a newer request cancel their provider calls; that
// says nothing about the provider's health.
func countsAsSuccess(err error) bool {
	return err == nil || errors.Is(err, context.Canceled)
}

// NewCircuitBreaker builds a gobreaker breaker from cfg.
func NewCircuitBreaker[T any](cfg CircuitBreakerConfig) *gobreaker.CircuitBreaker[T] {
	readyToTrip := cfg.ReadyToTrip
	if readyToTrip == nil {
		readyToTrip = DefaultReadyToTrip
	}

	return gobreaker.NewCircuitBreaker[T](gobreaker.Settings{
		Name:          cfg.Name,
		MaxRequests:   cfg.MaxRequests,
		Timeout:       cfg.Timeout,
		ReadyToTrip:   readyToTrip,
		OnStateChange: cfg.OnStateChange,
		IsSuccessful:  countsAsSuccess,
	})
}
