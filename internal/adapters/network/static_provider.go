package network

import (
	"context"
	"route-finder-service/internal/domain"
	"sync"
)

// StaticProvider serves a fixed graph (or error) regardless of the requested
// area. It is used for offline runs and tests.
type StaticProvider struct {
	Graph *domain.RoadGraph
	Err   error

	mu    sync.Mutex
	calls []Request
}

// Request records one Network call.
type Request struct {
	Center       domain.Coordinates
	RadiusMeters float64
}

func NewStaticProvider(g *domain.RoadGraph) *StaticProvider {
	return &StaticProvider{Graph: g}
}

func (p *StaticProvider) Network(ctx context.Context, center domain.Coordinates, radiusMeters float64) (*domain.RoadGraph, error) {
	p.mu.Lock()
	p.calls = append(p.calls, Request{Center: center, RadiusMeters: radiusMeters})
	p.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.Err != nil {
		return nil, p.Err
	}
	if p.Graph == nil || p.Graph.EdgeCount() == 0 {
		return nil, domain.ErrEmptyNetwork
	}
	return p.Graph, nil
}

func (p *StaticProvider) Calls() []Request {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Request(nil), p.calls...)
}
