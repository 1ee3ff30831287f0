package domain

import "fmt"

// Immutable geographic coordinates (latitude, longitude) in degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Return coordinates as [lat, lon], the order used by Leaflet and the traffic API.
func (c Coordinates) LatLon() []float64 { return []float64{c.Lat, c.Lon} }

// Return coordinates as [lon, lat] for GeoJSON compatibility.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lon, c.Lat} }

// Midpoint is the arithmetic mean of both coordinates. It is the proxy location
// used to sample traffic on a road segment.
func Midpoint(a, b Coordinates) Coordinates {
	return Coordinates{
		Lat: (a.Lat + b.Lat) / 2,
		Lon: (a.Lon + b.Lon) / 2,
	}
}

func (c Coordinates) String() string {
	return fmt.Sprintf("(%.6f, %.6f)", c.Lat, c.Lon)
}

// Valid reports whether the coordinates fall inside the WGS84 range.
func (c Coordinates) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}
