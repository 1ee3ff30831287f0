package ports

import (
	"context"
	"route-finder-service/internal/domain"
)

// Port: persistent query -> coordinates cache used by geocoders.
type GeocodeCache interface {
	// Fetch cached coordinates for the given queries. Misses are simply absent.
	GetMany(ctx context.Context, queries []string) (map[string]domain.Coordinates, error)
	// Store query -> coordinate mappings.
	PutMany(ctx context.Context, results map[string]domain.Coordinates) error
}
