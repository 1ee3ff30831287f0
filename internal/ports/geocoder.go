package ports

import (
	"context"
	"route-finder-service/internal/domain"
)

// Contract for resolving free text to coordinates.
type Geocoder interface {
	// Return the coordinates of the first match for text.
	// Fails with domain.ErrLocationNotFound when there are no matches and with
	// domain.ErrGeocodingFailed when the upstream call does not succeed.
	Geocode(ctx context.Context, text string) (domain.Coordinates, error)
}
