package dto

import "time"

// RouteQuery is the pair of place names submitted by the form or the JSON API.
type RouteQuery struct {
	Start string `form:"start" validate:"required,max=200"`
	End   string `form:"end" validate:"required,max=200"`
}

type CoordinatesResponse struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type LocationResponse struct {
	Query       string              `json:"query"`
	Coordinates CoordinatesResponse `json:"coordinates"`
}

type CandidateResponse struct {
	Nodes    []int64 `json:"nodes"`
	Polyline string  `json:"polyline"`
	Score    int     `json:"score"`
	Best     bool    `json:"best"`
}

type RoutesResponse struct {
	Start      LocationResponse    `json:"start"`
	End        LocationResponse    `json:"end"`
	Candidates []CandidateResponse `json:"candidates"`
	// Nil when no route was found.
	BestIndex  *int      `json:"best_index"`
	ComputedAt time.Time `json:"computed_at"`
}
