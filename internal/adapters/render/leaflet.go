package render

import (
	"errors"
	"fmt"
	"route-finder-service/internal/domain"
)

const (
	OSMTiles    = "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"
	DefaultZoom = 14
)

// Styles for the map layers.
var (
	CandidateStyle = domain.Polyline{Color: "gray", Weight: 3, Opacity: 0.5}
	BestStyle      = domain.Polyline{Color: "green", Weight: 5, Opacity: 1, Tooltip: "Best Route"}
)

// LeafletRenderer implements ports.MapRenderer. The produced RouteMap is
// written out as a Leaflet page by WriteHTML.
type LeafletRenderer struct {
	tiles string
	zoom  int
}

func NewLeafletRenderer() *LeafletRenderer {
	return &LeafletRenderer{tiles: OSMTiles, zoom: DefaultZoom}
}

// Render draws every candidate as a faint gray line, the best one on top in
// green, and a marker on each endpoint. The map is centered on start.
func (r *LeafletRenderer) Render(
	g *domain.RoadGraph,
	selection domain.SelectionResult,
	start domain.Coordinates,
	end domain.Coordinates,
) (domain.RouteMap, error) {
	if g == nil {
		return domain.RouteMap{}, errors.New("render: graph is nil")
	}

	m := domain.RouteMap{
		Center:    start,
		Zoom:      r.zoom,
		Tiles:     r.tiles,
		Polylines: make([]domain.Polyline, 0, len(selection.Candidates)+1),
		Markers: []domain.Marker{
			{At: start, Popup: "Start", Color: "blue"},
			{At: end, Popup: "End", Color: "red"},
		},
	}

	for i, p := range selection.Candidates {
		pts, err := g.PathCoordinates(p)
		if err != nil {
			return domain.RouteMap{}, fmt.Errorf("render: candidate %d: %w", i, err)
		}
		line := CandidateStyle
		line.Points = pts
		m.Polylines = append(m.Polylines, line)
	}

	if best, ok := selection.Best(); ok {
		pts, err := g.PathCoordinates(best)
		if err != nil {
			return domain.RouteMap{}, fmt.Errorf("render: best route: %w", err)
		}
		line := BestStyle
		line.Points = pts
		m.Polylines = append(m.Polylines, line)
	}

	return m, nil
}
