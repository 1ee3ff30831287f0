package render

import (
	"route-finder-service/internal/domain"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/twpayne/go-polyline"
)

func toLineString(pts []domain.Coordinates) orb.LineString {
	ls := make(orb.LineString, 0, len(pts))
	for _, p := range pts {
		ls = append(ls, orb.Point{p.Lon, p.Lat})
	}
	return ls
}

// FeatureCollection converts the map layers into GeoJSON: one LineString per
// polyline and one Point per marker, in drawing order. Styling goes into the
// feature properties.
func FeatureCollection(m domain.RouteMap) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for _, pl := range m.Polylines {
		f := geojson.NewFeature(toLineString(pl.Points))
		f.Properties["kind"] = "route"
		f.Properties["color"] = pl.Color
		f.Properties["weight"] = pl.Weight
		f.Properties["opacity"] = pl.Opacity
		if pl.Tooltip != "" {
			f.Properties["tooltip"] = pl.Tooltip
		}
		fc.Append(f)
	}

	for _, mk := range m.Markers {
		f := geojson.NewFeature(orb.Point{mk.At.Lon, mk.At.Lat})
		f.Properties["kind"] = "marker"
		f.Properties["color"] = mk.Color
		f.Properties["popup"] = mk.Popup
		fc.Append(f)
	}

	return fc
}

// EncodePolyline returns the Google encoded polyline (precision 5) for pts.
func EncodePolyline(pts []domain.Coordinates) string {
	coords := make([][]float64, 0, len(pts))
	for _, p := range pts {
		coords = append(coords, []float64{p.Lat, p.Lon})
	}
	return string(polyline.EncodeCoords(coords))
}
