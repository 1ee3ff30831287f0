package traffic

import (
	"context"
	"route-finder-service/internal/domain"
	"sync"
)

// MockSampler answers every point with a fixed sample unless an override is
// registered for that exact point. It records every sampled point in order.
type MockSampler struct {
	Default   domain.CongestionSample
	Overrides map[domain.Coordinates]domain.CongestionSample

	mu     sync.Mutex
	points []domain.Coordinates
}

func NewMockSampler(def domain.CongestionSample) *MockSampler {
	return &MockSampler{Default: def, Overrides: map[domain.Coordinates]domain.CongestionSample{}}
}

// NewSpeedSampler samples the same (current, free-flow) speeds everywhere.
func NewSpeedSampler(current, freeFlow float64) *MockSampler {
	return NewMockSampler(domain.ClassifySpeeds(current, freeFlow))
}

func (m *MockSampler) Sample(ctx context.Context, at domain.Coordinates) domain.CongestionSample {
	m.mu.Lock()
	m.points = append(m.points, at)
	m.mu.Unlock()

	if s, ok := m.Overrides[at]; ok {
		return s
	}
	return m.Default
}

func (m *MockSampler) Points() []domain.Coordinates {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Coordinates(nil), m.points...)
}
