package session

import (
	"context"
	"errors"
	"route-finder-service/internal/domain"
	"sync"
)

var errEmptySessionID = errors.New("session id is empty")

// MemoryStore keeps the last result of every session in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	results map[string]*domain.RouteResult
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{results: make(map[string]*domain.RouteResult)}
}

func (s *MemoryStore) Load(ctx context.Context, sessionID string) (*domain.RouteResult, bool, error) {
	if sessionID == "" {
		return nil, false, errEmptySessionID
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.results[sessionID]
	return r, ok, nil
}

func (s *MemoryStore) Save(ctx context.Context, sessionID string, result *domain.RouteResult) error {
	if sessionID == "" {
		return errEmptySessionID
	}
	if result == nil {
		return errors.New("save session result: result is nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.results[sessionID] = result
	return nil
}
