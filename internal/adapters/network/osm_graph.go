package network

import (
	"errors"
	"fmt"
	"route-finder-service/internal/domain"

	"github.com/golang/geo/s2"
	"github.com/paulmach/osm"
)

// Mean earth radius in meters, as used for great-circle lengths.
const earthRadiusMeters = 6371009.0

// Highway classes considered drivable.
var drivableHighways = map[string]struct{}{
	"motorway":       {},
	"motorway_link":  {},
	"trunk":          {},
	"trunk_link":     {},
	"primary":        {},
	"primary_link":   {},
	"secondary":      {},
	"secondary_link": {},
	"tertiary":       {},
	"tertiary_link":  {},
	"unclassified":   {},
	"residential":    {},
	"living_street":  {},
	"road":           {},
}

func acceptWay(w *osm.Way) bool {
	if _, ok := drivableHighways[w.Tags.Find("highway")]; !ok {
		return false
	}
	if w.Tags.Find("area") == "yes" {
		return false
	}
	switch w.Tags.Find("access") {
	case "no", "private":
		return false
	}
	return w.Tags.Find("motor_vehicle") != "no"
}

// travelDirections reports whether a way may be driven along (forward) and
// against (backward) its node order.
func travelDirections(w *osm.Way) (forward, backward bool) {
	switch w.Tags.Find("oneway") {
	case "yes", "true", "1":
		return true, false
	case "-1", "reverse":
		return false, true
	case "no", "false", "0":
		return true, true
	}

	if w.Tags.Find("junction") == "roundabout" || w.Tags.Find("highway") == "motorway" {
		return true, false
	}
	return true, true
}

// Great-circle distance in meters.
func segmentLength(a, b domain.Coordinates) float64 {
	la := s2.LatLngFromDegrees(a.Lat, a.Lon)
	lb := s2.LatLngFromDegrees(b.Lat, b.Lon)
	return la.Distance(lb).Radians() * earthRadiusMeters
}

// BuildRoadGraph turns decoded OSM data into a simplified drivable road graph.
//
// Way endpoints and nodes shared between ways (or repeated within one way)
// become graph nodes. The interstitial nodes of a way are folded into the edge
// between the surrounding graph nodes, whose length is the summed segment
// length. Ways referencing nodes missing from the data are cut at the gap.
func BuildRoadGraph(data *osm.OSM) (*domain.RoadGraph, error) {
	if data == nil {
		return nil, errors.New("build road graph: osm data is nil")
	}

	coords := make(map[osm.NodeID]domain.Coordinates, len(data.Nodes))
	for _, n := range data.Nodes {
		coords[n.ID] = domain.Coordinates{Lat: n.Lat, Lon: n.Lon}
	}

	ways := make([]*osm.Way, 0, len(data.Ways))
	for _, w := range data.Ways {
		if acceptWay(w) {
			ways = append(ways, w)
		}
	}

	// Split ways into runs of consecutive nodes with known coordinates.
	type run struct {
		way   *osm.Way
		nodes []osm.NodeID
	}
	runs := make([]run, 0, len(ways))
	for _, w := range ways {
		current := make([]osm.NodeID, 0, len(w.Nodes))
		for _, wn := range w.Nodes {
			if _, ok := coords[wn.ID]; !ok {
				if len(current) > 1 {
					runs = append(runs, run{way: w, nodes: current})
				}
				current = make([]osm.NodeID, 0, len(w.Nodes))
				continue
			}
			current = append(current, wn.ID)
		}
		if len(current) > 1 {
			runs = append(runs, run{way: w, nodes: current})
		}
	}

	uses := make(map[osm.NodeID]int)
	endpoints := make(map[osm.NodeID]bool)
	for _, r := range runs {
		for _, id := range r.nodes {
			uses[id]++
		}
		endpoints[r.nodes[0]] = true
		endpoints[r.nodes[len(r.nodes)-1]] = true
	}
	isGraphNode := func(id osm.NodeID) bool {
		return endpoints[id] || uses[id] > 1
	}

	g := domain.NewRoadGraph()
	for _, r := range runs {
		for _, id := range r.nodes {
			if isGraphNode(id) {
				if _, ok := g.Node(domain.NodeID(id)); !ok {
					g.AddNode(domain.NodeID(id), coords[id])
				}
			}
		}
	}

	for _, r := range runs {
		forward, backward := travelDirections(r.way)
		name := r.way.Tags.Find("name")
		highway := r.way.Tags.Find("highway")

		start := r.nodes[0]
		length := 0.0
		for i := 1; i < len(r.nodes); i++ {
			prev, cur := r.nodes[i-1], r.nodes[i]
			length += segmentLength(coords[prev], coords[cur])

			if !isGraphNode(cur) {
				continue
			}

			if start != cur {
				base := domain.Edge{
					LengthMeters: length,
					WayID:        int64(r.way.ID),
					Highway:      highway,
					Name:         name,
				}
				if forward {
					e := base
					e.From, e.To = domain.NodeID(start), domain.NodeID(cur)
					if err := g.AddEdge(e); err != nil {
						return nil, fmt.Errorf("build road graph: way %d: %w", r.way.ID, err)
					}
				}
				if backward {
					e := base
					e.From, e.To = domain.NodeID(cur), domain.NodeID(start)
					if err := g.AddEdge(e); err != nil {
						return nil, fmt.Errorf("build road graph: way %d: %w", r.way.ID, err)
					}
				}
			}

			start = cur
			length = 0
		}
	}

	return g, nil
}
