package domain

import (
	"errors"
	"fmt"
)

var (
	// Geocoding returned zero results.
	ErrLocationNotFound = errors.New("location not found")
	// The geocoding service answered with a non-success status or could not be reached.
	ErrGeocodingFailed = errors.New("geocoding service failure")
	// The road network service could not be reached or returned garbage.
	ErrNetworkFetch = errors.New("road network fetch failed")
	// The road network around the requested point has no drivable edges.
	ErrEmptyNetwork = errors.New("road network is empty")
)

// LocationError identifies which input location failed to resolve and why.
// Err is always ErrLocationNotFound or ErrGeocodingFailed (possibly wrapped).
type LocationError struct {
	Role  string
	Query string
	Err   error
}

func (e *LocationError) Error() string {
	if errors.Is(e.Err, ErrLocationNotFound) {
		return fmt.Sprintf("%s location %q not found", e.Role, e.Query)
	}
	return fmt.Sprintf("failed to fetch coordinates for %s location %q: %v", e.Role, e.Query, e.Err)
}

func (e *LocationError) Unwrap() error { return e.Err }

// GeocodeStatusError carries the upstream HTTP status of a failed geocoding call.
// It matches ErrGeocodingFailed with errors.Is.
type GeocodeStatusError struct {
	StatusCode int
}

func (e *GeocodeStatusError) Error() string {
	return fmt.Sprintf("geocoding service failure: HTTP %d", e.StatusCode)
}

func (e *GeocodeStatusError) Is(target error) bool { return target == ErrGeocodingFailed }
