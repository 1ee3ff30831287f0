package services

import (
	"context"
	"errors"
	"fmt"
	"route-finder-service/internal/domain"
	"route-finder-service/internal/platform/obs"
	"route-finder-service/internal/ports"
	"time"

	"go.uber.org/zap"
)

const DefaultRadiusMeters = 15000

// RouteFinder runs the whole pipeline for one query: geocode both places,
// download the road network around the start, select the least congested
// shortest path and render it.
type RouteFinder struct {
	geocoder ports.Geocoder
	network  ports.NetworkProvider
	sampler  ports.TrafficSampler
	renderer ports.MapRenderer

	radiusMeters  float64
	maxCandidates int
	now           func() time.Time
	log           *zap.Logger
}

type RouteFinderOption func(*RouteFinder)

// WithRadius sets the network download radius around the start location.
func WithRadius(meters float64) RouteFinderOption {
	return func(f *RouteFinder) { f.radiusMeters = meters }
}

// WithMaxCandidates caps the number of tied-shortest paths scored. 0 means no cap.
func WithMaxCandidates(n int) RouteFinderOption {
	return func(f *RouteFinder) { f.maxCandidates = n }
}

func WithClock(now func() time.Time) RouteFinderOption {
	return func(f *RouteFinder) { f.now = now }
}

func WithLogger(log *zap.Logger) RouteFinderOption {
	return func(f *RouteFinder) {
		if log != nil {
			f.log = log
		}
	}
}

func NewRouteFinder(
	geocoder ports.Geocoder,
	network ports.NetworkProvider,
	sampler ports.TrafficSampler,
	renderer ports.MapRenderer,
	opts ...RouteFinderOption,
) (*RouteFinder, error) {
	if geocoder == nil || network == nil || sampler == nil || renderer == nil {
		return nil, errors.New("route finder: geocoder, network, sampler and renderer are required")
	}

	f := &RouteFinder{
		geocoder:     geocoder,
		network:      network,
		sampler:      sampler,
		renderer:     renderer,
		radiusMeters: DefaultRadiusMeters,
		now:          time.Now,
		log:          zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}

	if f.radiusMeters <= 0 {
		return nil, fmt.Errorf("route finder: radius must be positive, got %v", f.radiusMeters)
	}
	if f.maxCandidates < 0 {
		return nil, fmt.Errorf("route finder: max candidates must not be negative, got %d", f.maxCandidates)
	}
	return f, nil
}

// FindRoutes resolves both places and returns the candidate paths with the
// best one rendered on a map.
//
// Location failures come back as *domain.LocationError and stop the run before
// any network download. An empty candidate set is a successful result.
func (f *RouteFinder) FindRoutes(ctx context.Context, startText, endText string) (_ *domain.RouteResult, err error) {
	defer obs.Time(ctx, "services.FindRoutes")(&err)

	start, err := f.resolve(ctx, "start", startText)
	if err != nil {
		return nil, err
	}
	end, err := f.resolve(ctx, "end", endText)
	if err != nil {
		return nil, err
	}

	g, err := f.network.Network(ctx, start.Coordinates, f.radiusMeters)
	if err != nil {
		return nil, fmt.Errorf("find routes: road network around %s: %w", start.Coordinates, err)
	}

	selection, err := FindBestRoute(ctx, g, start.Coordinates, end.Coordinates, f.sampler, f.maxCandidates)
	if err != nil {
		return nil, fmt.Errorf("find routes: %w", err)
	}

	m, err := f.renderer.Render(g, selection, start.Coordinates, end.Coordinates)
	if err != nil {
		return nil, fmt.Errorf("find routes: render map: %w", err)
	}

	points := make([][]domain.Coordinates, 0, len(selection.Candidates))
	for i, p := range selection.Candidates {
		coords, err := g.PathCoordinates(p)
		if err != nil {
			return nil, fmt.Errorf("find routes: candidate %d: %w", i, err)
		}
		points = append(points, coords)
	}

	fields := []zap.Field{
		zap.String("req_id", obs.RequestID(ctx)),
		zap.String("start", start.Query),
		zap.String("end", end.Query),
		zap.Int("candidates", len(selection.Candidates)),
	}
	if score, ok := selection.BestScore(); ok {
		fields = append(fields, zap.Int("best_index", selection.BestIndex), zap.Int("best_score", score))
	}
	f.log.Info("routes found", fields...)

	return &domain.RouteResult{
		Start:           start,
		End:             end,
		Selection:       selection,
		CandidatePoints: points,
		Map:             m,
		ComputedAt:      f.now().UTC(),
	}, nil
}

func (f *RouteFinder) resolve(ctx context.Context, role, text string) (domain.Location, error) {
	c, err := f.geocoder.Geocode(ctx, text)
	if err != nil {
		return domain.Location{}, &domain.LocationError{Role: role, Query: text, Err: err}
	}
	return domain.Location{Query: text, Coordinates: c}, nil
}
