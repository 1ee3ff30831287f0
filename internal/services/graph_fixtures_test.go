package services

import (
	"route-finder-service/internal/domain"
	"testing"
)

type testEdge struct {
	from, to domain.NodeID
	meters   float64
}

type testNode struct {
	id       domain.NodeID
	lat, lon float64
}

func buildGraph(t *testing.T, nodes []testNode, edges []testEdge) *domain.RoadGraph {
	t.Helper()
	g := domain.NewRoadGraph()
	for _, n := range nodes {
		g.AddNode(n.id, domain.Coordinates{Lat: n.lat, Lon: n.lon})
	}
	for _, e := range edges {
		if err := g.AddEdge(domain.Edge{From: e.from, To: e.to, LengthMeters: e.meters}); err != nil {
			t.Fatalf("add edge %d->%d: %v", e.from, e.to, err)
		}
	}
	return g
}

func coordsOf(t *testing.T, g *domain.RoadGraph, id domain.NodeID) domain.Coordinates {
	t.Helper()
	n, ok := g.Node(id)
	if !ok {
		t.Fatalf("node %d not in graph", id)
	}
	return n.Coordinates
}

// Two equal-length routes from 1 to 4: 1-2-4 and 1-3-4.
func diamondGraph(t *testing.T) *domain.RoadGraph {
	return buildGraph(t,
		[]testNode{
			{1, 12.9700, 77.5900},
			{2, 12.9700, 77.5910},
			{3, 12.9710, 77.5900},
			{4, 12.9710, 77.5910},
		},
		[]testEdge{
			{1, 2, 100}, {1, 3, 100},
			{2, 4, 100}, {3, 4, 100},
		},
	)
}

// Two equal-length routes from 1 to 5 with different edge counts:
// 1-3-4-5 (three edges) is enumerated before 1-2-5 (two edges).
func unevenGraph(t *testing.T) *domain.RoadGraph {
	return buildGraph(t,
		[]testNode{
			{1, 0, 0},
			{2, 0, 0.002},
			{3, 0.001, 0},
			{4, 0.001, 0.001},
			{5, 0.002, 0.002},
		},
		[]testEdge{
			{1, 2, 40}, {2, 5, 60},
			{1, 3, 10}, {3, 4, 10}, {4, 5, 80},
		},
	)
}
