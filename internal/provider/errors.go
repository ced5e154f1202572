// Package provider defines the error kinds shared by all external data adapters.
package provider

import "errors"

// Adapter failure kinds. Clients wrap these with %w so callers can classify
// failures with errors.Is without knowing which provider produced them.
var (
	// ErrNetworkFailure means the provider was unreachable or returned a non-2xx status.
	ErrNetworkFailure = errors.New("provider network failure")

	// ErrNoResults means the provider answered but had nothing for the query.
	ErrNoResults = errors.New("provider returned no results")

	// ErrMalformedResponse means the payload did not have the expected shape.
	ErrMalformedResponse = errors.New("provider returned a malformed response")
)

// Kind returns a short label for err, for logs and metrics.
func Kind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNoResults):
		return "no_results"
	case errors.Is(err, ErrMalformedResponse):
		return "malformed"
	case errors.Is(err, ErrNetworkFailure):
		return "network"
	default:
		return "error"
	}
}
