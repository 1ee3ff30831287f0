package services

import (
	"context"
	"errors"
	"fmt"
	"route-finder-service/internal/domain"
	"route-finder-service/internal/platform/obs"
	"route-finder-service/internal/ports"
)

// ScorePath sums the congestion of every segment along p. Each segment is
// sampled once, at the midpoint of its two end nodes.
func ScorePath(
	ctx context.Context,
	g *domain.RoadGraph,
	p domain.Path,
	sampler ports.TrafficSampler,
) (int, error) {
	score := 0
	for _, seg := range p.Segments() {
		from, ok := g.Node(seg.From)
		if !ok {
			return 0, fmt.Errorf("score path: unknown node %d", seg.From)
		}
		to, ok := g.Node(seg.To)
		if !ok {
			return 0, fmt.Errorf("score path: unknown node %d", seg.To)
		}

		sample := sampler.Sample(ctx, domain.Midpoint(from.Coordinates, to.Coordinates))
		score += sample.Score()
	}
	return score, nil
}

// Find every tied-shortest path between the nodes nearest start and end and
// pick the least congested one.
//
// Traffic is sampled serially, path by path and edge by edge, with no caching.
// The lowest score wins and ties keep the earlier candidate, so when nothing
// has traffic data the first candidate is selected.
// maxCandidates caps the enumeration; 0 means no cap.
func FindBestRoute(
	ctx context.Context,
	g *domain.RoadGraph,
	start domain.Coordinates,
	end domain.Coordinates,
	sampler ports.TrafficSampler,
	maxCandidates int,
) (_ domain.SelectionResult, err error) {
	defer obs.Time(ctx, "services.FindBestRoute")(&err)

	if g == nil {
		return domain.EmptySelection(), errors.New("find best route: graph is nil")
	}
	if sampler == nil {
		return domain.EmptySelection(), errors.New("find best route: traffic sampler is nil")
	}

	idx, err := NewNodeIndex(g)
	if err != nil {
		return domain.EmptySelection(), fmt.Errorf("find best route: %w", err)
	}
	origin, err := idx.Nearest(start)
	if err != nil {
		return domain.EmptySelection(), fmt.Errorf("find best route: nearest node to start %s: %w", start, err)
	}
	dest, err := idx.Nearest(end)
	if err != nil {
		return domain.EmptySelection(), fmt.Errorf("find best route: nearest node to end %s: %w", end, err)
	}

	candidates, err := AllShortestPaths(g, origin.ID, dest.ID, maxCandidates)
	if err != nil {
		return domain.EmptySelection(), fmt.Errorf("find best route: %w", err)
	}
	if len(candidates) == 0 {
		return domain.EmptySelection(), nil
	}

	result := domain.SelectionResult{
		Candidates: candidates,
		Scores:     make([]int, len(candidates)),
		BestIndex:  -1,
	}

	bestScore := 0
	for i, p := range candidates {
		score, err := ScorePath(ctx, g, p, sampler)
		if err != nil {
			return domain.EmptySelection(), fmt.Errorf("find best route: candidate %d: %w", i, err)
		}
		result.Scores[i] = score

		if result.BestIndex < 0 || score < bestScore {
			result.BestIndex = i
			bestScore = score
		}
	}

	return result, nil
}
