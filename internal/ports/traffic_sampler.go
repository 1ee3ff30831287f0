package ports

import (
	"context"
	"route-finder-service/internal/domain"
)

// Contract for sampling current traffic at a point.
type TrafficSampler interface {
	// Sample never fails: anything unusable comes back as a no_data sample.
	Sample(ctx context.Context, at domain.Coordinates) domain.CongestionSample
}
