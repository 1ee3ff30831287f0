package domain

// A free-text place name resolved to coordinates.
// Locations are created per request and never mutated.
type Location struct {
	Query       string      `json:"query"`
	Coordinates Coordinates `json:"coordinates"`
}
