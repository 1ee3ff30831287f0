package geocode

import (
	"context"
	"fmt"
	"route-finder-service/internal/domain"
	"sync"
)

// MockGeocoder resolves queries from a fixed table. Queries listed in Failures
// fail with the given error; unknown queries are not found.
type MockGeocoder struct {
	Places   map[string]domain.Coordinates
	Failures map[string]error

	mu    sync.Mutex
	calls []string
}

func NewMockGeocoder(places map[string]domain.Coordinates) *MockGeocoder {
	return &MockGeocoder{Places: places, Failures: map[string]error{}}
}

func (m *MockGeocoder) Geocode(ctx context.Context, text string) (domain.Coordinates, error) {
	m.mu.Lock()
	m.calls = append(m.calls, text)
	m.mu.Unlock()

	if err, ok := m.Failures[text]; ok {
		return domain.Coordinates{}, err
	}
	c, ok := m.Places[text]
	if !ok {
		return domain.Coordinates{}, fmt.Errorf("%w: no geocode results for %q", domain.ErrLocationNotFound, text)
	}
	return c, nil
}

// Calls returns the queries seen so far, in order.
func (m *MockGeocoder) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}
