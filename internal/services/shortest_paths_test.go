package services

import (
	"route-finder-service/internal/domain"
	"testing"
)

func TestAllShortestPathsDiamond(t *testing.T) {
	g := diamondGraph(t)

	paths, err := AllShortestPaths(g, 1, 4, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []domain.Path{{1, 2, 4}, {1, 3, 4}}
	if len(paths) != len(want) {
		t.Fatalf("expected %d paths, got %d: %v", len(want), len(paths), paths)
	}
	for i := range want {
		if !paths[i].Equal(want[i]) {
			t.Fatalf("path %d: expected %v, got %v", i, want[i], paths[i])
		}
	}
}

func TestAllShortestPathsOrderFollowsRelaxation(t *testing.T) {
	g := unevenGraph(t)

	paths, err := AllShortestPaths(g, 1, 5, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("expected 2 paths, got %v", paths)
	}
	if !paths[0].Equal(domain.Path{1, 3, 4, 5}) {
		t.Fatalf("expected 1-3-4-5 first, got %v", paths[0])
	}
	if !paths[1].Equal(domain.Path{1, 2, 5}) {
		t.Fatalf("expected 1-2-5 second, got %v", paths[1])
	}
}

func TestAllShortestPathsDropsLongerRoutes(t *testing.T) {
	g := buildGraph(t,
		[]testNode{{1, 0, 0}, {2, 0, 0.001}, {3, 0.001, 0}, {4, 0.001, 0.001}},
		[]testEdge{{1, 2, 100}, {2, 4, 100}, {1, 3, 100}, {3, 4, 100.5}},
	)

	paths, err := AllShortestPaths(g, 1, 4, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(paths) != 1 || !paths[0].Equal(domain.Path{1, 2, 4}) {
		t.Fatalf("expected only 1-2-4, got %v", paths)
	}
}

func TestAllShortestPathsTiesAtMillimeterPrecision(t *testing.T) {
	// 0.1 + 0.2 != 0.3 in floating point; both routes are 0.3 m.
	g := buildGraph(t,
		[]testNode{{1, 0, 0}, {2, 0, 0.001}, {3, 0.001, 0}},
		[]testEdge{{1, 2, 0.1}, {2, 3, 0.2}, {1, 3, 0.3}},
	)

	paths, err := AllShortestPaths(g, 1, 3, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("expected 2 tied paths, got %v", paths)
	}
}

func TestAllShortestPathsRespectsDirection(t *testing.T) {
	g := buildGraph(t,
		[]testNode{{1, 0, 0}, {2, 0, 0.001}},
		[]testEdge{{1, 2, 50}},
	)

	paths, err := AllShortestPaths(g, 2, 1, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(paths) != 0 {
		t.Fatalf("expected no path against a one-way edge, got %v", paths)
	}
}

func TestAllShortestPathsSameNode(t *testing.T) {
	paths, err := AllShortestPaths(diamondGraph(t), 2, 2, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if paths == nil || len(paths) != 0 {
		t.Fatalf("expected empty non-nil result, got %v", paths)
	}
}

func TestAllShortestPathsCap(t *testing.T) {
	// A 3x3 grid of unit edges going right and down has 6 shortest paths corner to corner.
	nodes := []testNode{}
	edges := []testEdge{}
	id := func(r, c int) domain.NodeID { return domain.NodeID(r*3 + c + 1) }
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			nodes = append(nodes, testNode{id(r, c), float64(r) * 0.001, float64(c) * 0.001})
		}
	}
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			if c < 2 {
				edges = append(edges, testEdge{id(r, c), id(r, c+1), 10})
			}
			if r < 2 {
				edges = append(edges, testEdge{id(r, c), id(r+1, c), 10})
			}
		}
	}
	g := buildGraph(t, nodes, edges)

	all, err := AllShortestPaths(g, id(0, 0), id(2, 2), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 6 {
		t.Fatalf("expected 6 paths, got %d", len(all))
	}

	capped, err := AllShortestPaths(g, id(0, 0), id(2, 2), 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(capped) != 4 {
		t.Fatalf("expected 4 paths, got %d", len(capped))
	}
	for i := range capped {
		if !capped[i].Equal(all[i]) {
			t.Fatalf("capped path %d differs: %v vs %v", i, capped[i], all[i])
		}
	}
}

func TestAllShortestPathsUnknownNodes(t *testing.T) {
	g := diamondGraph(t)
	if _, err := AllShortestPaths(g, 1, 99, 0); err == nil {
		t.Fatalf("expected error for unknown target")
	}
	if _, err := AllShortestPaths(g, 99, 1, 0); err == nil {
		t.Fatalf("expected error for unknown source")
	}
	if _, err := AllShortestPaths(g, 1, 4, -1); err == nil {
		t.Fatalf("expected error for negative cap")
	}
}

// 1-2 and 1-3 have equal length and 2-3 is zero length, so 2 reaches 3 at the
// same distance after 3 has been settled.
func zeroLengthGraph(t *testing.T) *domain.RoadGraph {
	return buildGraph(t,
		[]testNode{{1, 0, 0}, {2, 0, 0.001}, {3, 0.001, 0}, {4, 0.002, 0}},
		[]testEdge{{1, 3, 100}, {1, 2, 100}, {2, 3, 0}, {3, 4, 100}},
	)
}

func TestAllShortestPathsZeroLengthEdge(t *testing.T) {
	g := zeroLengthGraph(t)

	cases := []struct {
		name   string
		target domain.NodeID
		want   []domain.Path
	}{
		{"beyond the zero-length edge", 4, []domain.Path{{1, 3, 4}, {1, 2, 3, 4}}},
		{"at the end of the zero-length edge", 3, []domain.Path{{1, 3}, {1, 2, 3}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			paths, err := AllShortestPaths(g, 1, tc.target, 0)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(paths) != len(tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, paths)
			}
			for i := range tc.want {
				if !paths[i].Equal(tc.want[i]) {
					t.Fatalf("path %d: expected %v, got %v", i, tc.want[i], paths[i])
				}
			}
		})
	}
}

func TestAllShortestPathsZeroLengthCycle(t *testing.T) {
	// 2 and 3 are co-located and joined both ways by zero-length edges.
	g := buildGraph(t,
		[]testNode{{1, 0, 0}, {2, 0, 0.001}, {3, 0, 0.001}, {4, 0, 0.002}},
		[]testEdge{{1, 2, 10}, {2, 3, 0}, {3, 2, 0}, {3, 4, 10}},
	)

	paths, err := AllShortestPaths(g, 1, 4, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(paths) != 1 || !paths[0].Equal(domain.Path{1, 2, 3, 4}) {
		t.Fatalf("expected only 1-2-3-4, got %v", paths)
	}
}
