package services

import (
	"errors"
	"math"
	"route-finder-service/internal/domain"

	"github.com/golang/geo/s2"
	"github.com/tidwall/rtree"
)

const earthRadiusMeters = 6371009.0

// Initial half-width of the search box, in degrees (~110 m of latitude).
const initialSearchDegrees = 0.001

// NodeIndex answers nearest-node queries over a road graph.
// Items are stored as points keyed by their insertion index so that equally
// distant nodes resolve to the one added to the graph first.
type NodeIndex struct {
	tr    rtree.RTreeG[int]
	nodes []domain.Node
}

func NewNodeIndex(g *domain.RoadGraph) (*NodeIndex, error) {
	if g == nil {
		return nil, errors.New("node index: graph is nil")
	}

	idx := &NodeIndex{nodes: g.Nodes()}
	for i, n := range idx.nodes {
		p := [2]float64{n.Coordinates.Lon, n.Coordinates.Lat}
		idx.tr.Insert(p, p, i)
	}
	return idx, nil
}

func (idx *NodeIndex) Len() int { return len(idx.nodes) }

// Nearest returns the graph node with the smallest great-circle distance to c.
func (idx *NodeIndex) Nearest(c domain.Coordinates) (domain.Node, error) {
	if len(idx.nodes) == 0 {
		return domain.Node{}, domain.ErrEmptyNetwork
	}

	// Grow a box around c until it holds at least one node.
	best := -1
	bestDist := math.Inf(1)
	for half := initialSearchDegrees; best < 0; half *= 4 {
		best, bestDist = idx.searchBox(c, half, half)
		if half > 360 {
			break
		}
	}
	if best < 0 {
		return domain.Node{}, domain.ErrEmptyNetwork
	}

	// A box is not a circle: anything within bestDist may still sit outside the
	// first box, so search again with a box that covers the whole radius.
	latHalf := bestDist / earthRadiusMeters * 180 / math.Pi
	lonHalf := 360.0
	if cos := math.Cos((math.Abs(c.Lat) + latHalf) * math.Pi / 180); cos > 1e-9 {
		lonHalf = math.Min(latHalf/cos, 360)
	}
	if i, d := idx.searchBox(c, latHalf, lonHalf); i >= 0 && (d < bestDist || (d == bestDist && i < best)) {
		best = i
	}

	return idx.nodes[best], nil
}

func (idx *NodeIndex) searchBox(c domain.Coordinates, latHalf, lonHalf float64) (int, float64) {
	best := -1
	bestDist := math.Inf(1)
	lo := [2]float64{c.Lon - lonHalf, c.Lat - latHalf}
	hi := [2]float64{c.Lon + lonHalf, c.Lat + latHalf}

	idx.tr.Search(lo, hi, func(_, _ [2]float64, i int) bool {
		d := distanceMeters(c, idx.nodes[i].Coordinates)
		if d < bestDist || (d == bestDist && i < best) {
			best, bestDist = i, d
		}
		return true
	})
	return best, bestDist
}

// Great-circle distance in meters.
func distanceMeters(a, b domain.Coordinates) float64 {
	la := s2.LatLngFromDegrees(a.Lat, a.Lon)
	lb := s2.LatLngFromDegrees(b.Lat, b.Lon)
	return la.Distance(lb).Radians() * earthRadiusMeters
}
