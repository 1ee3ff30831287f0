package services

import (
	"container/heap"
	"fmt"
	"math"
	"route-finder-service/internal/domain"
)

// Edge lengths are compared as integer millimeters so that equal-length
// alternatives tie exactly.
func lengthMillimeters(meters float64) int64 {
	return int64(math.Round(meters * 1000))
}

type queueItem struct {
	node domain.NodeID
	dist int64
	seq  int
}

type distQueue []queueItem

func (q distQueue) Len() int { return len(q) }
func (q distQueue) Less(i, j int) bool {
	if q[i].dist != q[j].dist {
		return q[i].dist < q[j].dist
	}
	return q[i].seq < q[j].seq
}
func (q distQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *distQueue) Push(x any)   { *q = append(*q, x.(queueItem)) }
func (q *distQueue) Pop() any {
	old := *q
	it := old[len(old)-1]
	*q = old[:len(old)-1]
	return it
}

// AllShortestPaths returns every path of minimum total length from source to
// target. Paths come out in a stable order: at each node, predecessors are
// visited in the order in which they were first relaxed.
//
// maxPaths caps the number of returned paths; 0 means no cap.
// Unreachable targets and source == target both yield no paths.
func AllShortestPaths(g *domain.RoadGraph, source, target domain.NodeID, maxPaths int) ([]domain.Path, error) {
	if g == nil {
		return nil, fmt.Errorf("all shortest paths: graph is nil")
	}
	if _, ok := g.Node(source); !ok {
		return nil, fmt.Errorf("all shortest paths: unknown source node %d", source)
	}
	if _, ok := g.Node(target); !ok {
		return nil, fmt.Errorf("all shortest paths: unknown target node %d", target)
	}
	if maxPaths < 0 {
		return nil, fmt.Errorf("all shortest paths: maxPaths must not be negative, got %d", maxPaths)
	}
	if source == target {
		return []domain.Path{}, nil
	}

	dist := map[domain.NodeID]int64{source: 0}
	preds := make(map[domain.NodeID][]domain.NodeID)
	settled := make(map[domain.NodeID]bool)

	// Nodes are settled until the queue head is farther than the target, so
	// equal-distance predecessors reached over zero-length edges are kept.
	targetDist := int64(-1)

	seq := 0
	q := &distQueue{{node: source, dist: 0, seq: seq}}
	for q.Len() > 0 {
		it := heap.Pop(q).(queueItem)
		u := it.node
		if settled[u] || it.dist > dist[u] {
			continue
		}
		if targetDist >= 0 && it.dist > targetDist {
			break
		}
		settled[u] = true
		if u == target {
			targetDist = it.dist
			continue
		}

		for _, e := range g.OutEdges(u) {
			v := e.To
			if v == source {
				continue
			}
			nd := dist[u] + lengthMillimeters(e.LengthMeters)
			cur, seen := dist[v]
			switch {
			case !seen || nd < cur:
				dist[v] = nd
				preds[v] = []domain.NodeID{u}
				seq++
				heap.Push(q, queueItem{node: v, dist: nd, seq: seq})
			case nd == cur:
				preds[v] = append(preds[v], u)
			}
		}
	}

	if !settled[target] {
		return []domain.Path{}, nil
	}

	// Zero-length cycles make the predecessor graph cyclic; a node already on
	// the current path is never revisited.
	paths := []domain.Path{}
	onPath := make(map[domain.NodeID]bool)
	var walk func(n domain.NodeID, suffix []domain.NodeID) bool
	walk = func(n domain.NodeID, suffix []domain.NodeID) bool {
		suffix = append(suffix, n)
		if n == source {
			p := make(domain.Path, len(suffix))
			for i := range suffix {
				p[i] = suffix[len(suffix)-1-i]
			}
			paths = append(paths, p)
			return maxPaths == 0 || len(paths) < maxPaths
		}

		onPath[n] = true
		defer delete(onPath, n)
		for _, pred := range preds[n] {
			if onPath[pred] {
				continue
			}
			if !walk(pred, suffix) {
				return false
			}
		}
		return true
	}
	walk(target, make([]domain.NodeID, 0, 64))

	return paths, nil
}
