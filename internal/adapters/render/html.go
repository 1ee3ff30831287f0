package render

import (
	"fmt"
	"html/template"
	"io"
	"route-finder-service/internal/domain"
)

var pageTmpl = template.Must(template.New("map").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Route map</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<style>html, body, #map { height: 100%; margin: 0; }</style>
</head>
<body>
<div id="map"></div>
<script>
var map = L.map("map").setView([{{.Lat}}, {{.Lon}}], {{.Zoom}});
L.tileLayer({{.Tiles}}, {
  maxZoom: 19,
  attribution: "&copy; OpenStreetMap contributors"
}).addTo(map);
var layers = {{.Layers}};
L.geoJSON(layers, {
  style: function (f) {
    return {color: f.properties.color, weight: f.properties.weight, opacity: f.properties.opacity};
  },
  pointToLayer: function (f, latlng) {
    return L.circleMarker(latlng, {radius: 8, color: f.properties.color, fillOpacity: 0.9});
  },
  onEachFeature: function (f, layer) {
    if (f.properties.tooltip) { layer.bindTooltip(f.properties.tooltip); }
    if (f.properties.popup) { layer.bindPopup(f.properties.popup); }
  }
}).addTo(map);
</script>
</body>
</html>
`))

type pageData struct {
	Lat, Lon float64
	Zoom     int
	Tiles    string
	Layers   template.JS
}

// WriteHTML writes m as a standalone Leaflet document.
func WriteHTML(w io.Writer, m domain.RouteMap) error {
	layers, err := FeatureCollection(m).MarshalJSON()
	if err != nil {
		return fmt.Errorf("write map html: encode layers: %w", err)
	}

	data := pageData{
		Lat:    m.Center.Lat,
		Lon:    m.Center.Lon,
		Zoom:   m.Zoom,
		Tiles:  m.Tiles,
		Layers: template.JS(layers),
	}
	if err := pageTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("write map html: %w", err)
	}
	return nil
}
