package ports

import (
	"context"
	"route-finder-service/internal/domain"
)

// Contract for retrieving a drivable road graph around a point.
type NetworkProvider interface {
	Network(ctx context.Context, center domain.Coordinates, radiusMeters float64) (*domain.RoadGraph, error)
}
