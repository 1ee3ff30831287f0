package ports

import (
	"context"
	"route-finder-service/internal/domain"
)

// Port: the per-session "last computed map" slot.
type MapStore interface {
	// Load returns the last successful result for the session, if any.
	Load(ctx context.Context, sessionID string) (*domain.RouteResult, bool, error)
	// Save replaces the session's slot wholesale.
	Save(ctx context.Context, sessionID string, result *domain.RouteResult) error
}
