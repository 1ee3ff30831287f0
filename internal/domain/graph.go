package domain

import (
	"errors"
	"fmt"
)

// NodeID identifies a road graph node. Network providers use OSM node ids.
type NodeID int64

type Node struct {
	ID          NodeID
	Coordinates Coordinates
}

// Directed road segment between two graph nodes.
type Edge struct {
	From         NodeID
	To           NodeID
	LengthMeters float64
	WayID        int64
	Highway      string
	Name         string
}

// RoadGraph is a directed graph weighted by edge length.
// It keeps insertion order for nodes and out-edges so that every traversal
// over it is deterministic. At most one edge is kept per (from, to) pair.
type RoadGraph struct {
	nodes     map[NodeID]Node
	order     []NodeID
	out       map[NodeID][]Edge
	edgeCount int
}

func NewRoadGraph() *RoadGraph {
	return &RoadGraph{
		nodes: make(map[NodeID]Node),
		out:   make(map[NodeID][]Edge),
	}
}

// Add a node or update the coordinates of an existing one.
func (g *RoadGraph) AddNode(id NodeID, c Coordinates) {
	if _, ok := g.nodes[id]; !ok {
		g.order = append(g.order, id)
	}
	g.nodes[id] = Node{ID: id, Coordinates: c}
}

// AddEdge inserts a directed edge. When an edge between the same pair already
// exists, the shorter of the two is kept.
func (g *RoadGraph) AddEdge(e Edge) error {
	if e.From == e.To {
		return fmt.Errorf("add edge: self-loop on node %d", e.From)
	}
	if _, ok := g.nodes[e.From]; !ok {
		return fmt.Errorf("add edge: unknown from node %d", e.From)
	}
	if _, ok := g.nodes[e.To]; !ok {
		return fmt.Errorf("add edge: unknown to node %d", e.To)
	}
	if e.LengthMeters < 0 {
		return errors.New("add edge: length must not be negative")
	}

	edges := g.out[e.From]
	for i := range edges {
		if edges[i].To == e.To {
			if e.LengthMeters < edges[i].LengthMeters {
				edges[i] = e
			}
			return nil
		}
	}

	g.out[e.From] = append(edges, e)
	g.edgeCount++
	return nil
}

func (g *RoadGraph) Node(id NodeID) (Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all nodes in insertion order.
func (g *RoadGraph) Nodes() []Node {
	out := make([]Node, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.nodes[id])
	}
	return out
}

// OutEdges returns the edges leaving id in insertion order. The slice must not be modified.
func (g *RoadGraph) OutEdges(id NodeID) []Edge {
	return g.out[id]
}

func (g *RoadGraph) Edge(from, to NodeID) (Edge, bool) {
	for _, e := range g.out[from] {
		if e.To == to {
			return e, true
		}
	}
	return Edge{}, false
}

func (g *RoadGraph) NodeCount() int { return len(g.nodes) }

func (g *RoadGraph) EdgeCount() int { return g.edgeCount }

// Resolve the coordinates of every node along a path.
func (g *RoadGraph) PathCoordinates(p Path) ([]Coordinates, error) {
	coords := make([]Coordinates, 0, len(p))
	for _, id := range p {
		n, ok := g.nodes[id]
		if !ok {
			return nil, fmt.Errorf("path coordinates: unknown node %d", id)
		}
		coords = append(coords, n.Coordinates)
	}
	return coords, nil
}
