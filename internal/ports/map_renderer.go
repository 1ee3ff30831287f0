package ports

import "route-finder-service/internal/domain"

// Contract for turning a selection into a renderable map object.
type MapRenderer interface {
	Render(
		graph *domain.RoadGraph,
		selection domain.SelectionResult,
		start domain.Coordinates,
		end domain.Coordinates,
	) (domain.RouteMap, error)
}
