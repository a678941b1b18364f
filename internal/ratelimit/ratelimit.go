package ratelimit

import (
	"sync"
	"time"
)

// Store is an increment-and-check counter with a rolling window. Injected
// so single-instance deployments can use the in-process map while
// multi-instance ones swap in a shared backend without changing call sites.
type Store interface {
	// Allow records one request for key and reports whether it is within
	// the window's budget.
	Allow(key string) bool
}

type window struct {
	count   int
	resetAt time.Time
}

// MemoryStore is the in-process implementation.
type MemoryStore struct {
	mu       sync.Mutex
	limits   map[string]*window
	requests int
	span     time.Duration
	now      func() time.Time
}

func NewMemoryStore(requests int, span time.Duration) *MemoryStore {
	return &MemoryStore{
		limits:   make(map[string]*window),
		requests: requests,
		span:     span,
		now:      time.Now,
	}
}

func (s *MemoryStore) Allow(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	w, ok := s.limits[key]
	if !ok || now.After(w.resetAt) {
		s.limits[key] = &window{count: 1, resetAt: now.Add(s.span)}
		return true
	}
	if w.count >= s.requests {
		return false
	}
	w.count++
	return true
}
