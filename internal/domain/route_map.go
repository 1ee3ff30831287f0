package domain

import "time"

// A styled line drawn over the base map.
type Polyline struct {
	Points  []Coordinates `json:"points"`
	Color   string        `json:"color"`
	Weight  int           `json:"weight"`
	Opacity float64       `json:"opacity"`
	Tooltip string        `json:"tooltip,omitempty"`
}

type Marker struct {
	At    Coordinates `json:"at"`
	Popup string      `json:"popup"`
	Color string      `json:"color"`
}

// RouteMap is a renderable map object. It is built once per successful run and
// never mutated afterwards.
type RouteMap struct {
	Center    Coordinates `json:"center"`
	Zoom      int         `json:"zoom"`
	Tiles     string      `json:"tiles"`
	Polylines []Polyline  `json:"polylines"`
	Markers   []Marker    `json:"markers"`
}

// RouteResult is everything a successful run produces. Callers store it as the
// "last computed map" and replace it wholesale on the next success.
type RouteResult struct {
	Start     Location        `json:"start"`
	End       Location        `json:"end"`
	Selection SelectionResult `json:"selection"`
	// Node coordinates of every candidate, index-aligned with Selection.Candidates.
	CandidatePoints [][]Coordinates `json:"candidate_points"`
	Map             RouteMap        `json:"map"`
	ComputedAt      time.Time       `json:"computed_at"`
}
