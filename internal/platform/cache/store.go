package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Store is an in-process TTL cache. Concurrent loads of the same key share one loader call.
// Every Delete bumps the key's generation; a load that started under an older generation is
// returned to its callers but never stored.
type Store[V any] struct {
	mu          sync.RWMutex
	entries     map[string]entry[V]
	generations map[string]uint64
	ttl         time.Duration
	disabled    bool
	now         func() time.Time
	flight      singleflight.Group
}

// New returns a store whose entries expire after ttl; ttl <= 0 keeps entries until deleted.
func New[V any](ttl time.Duration) *Store[V] {
	return &Store[V]{
		entries:     make(map[string]entry[V]),
		generations: make(map[string]uint64),
		ttl:         ttl,
		now:         time.Now,
	}
}

// Disabled returns a store that never keeps values but still collapses concurrent loads.
func Disabled[V any]() *Store[V] {
	s := New[V](0)
	s.disabled = true
	return s
}

func (s *Store[V]) Get(_ context.Context, key string) (V, bool) {
	var zero V
	if key == "" || s.disabled {
		return zero, false
	}

	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return zero, false
	}
	if s.ttl > 0 && !e.expiresAt.After(s.now()) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return zero, false
	}

	return e.value, true
}

func (s *Store[V]) Set(_ context.Context, key string, value V) {
	if key == "" || s.disabled {
		return
	}

	var expiresAt time.Time
	if s.ttl > 0 {
		expiresAt = s.now().Add(s.ttl)
	}

	s.mu.Lock()
	s.entries[key] = entry[V]{value: value, expiresAt: expiresAt}
	s.mu.Unlock()
}

func (s *Store[V]) Delete(_ context.Context, key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.generations[key]++
	s.mu.Unlock()
	s.flight.Forget(key)
}

func (s *Store[V]) DeletePrefix(_ context.Context, prefix string) {
	if prefix == "" {
		return
	}

	s.mu.Lock()
	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			delete(s.entries, key)
			s.generations[key]++
			s.flight.Forget(key)
		}
	}
	for key := range s.generations {
		if _, cached := s.entries[key]; !cached && strings.HasPrefix(key, prefix) {
			s.generations[key]++
			s.flight.Forget(key)
		}
	}
	s.mu.Unlock()
}

// generation returns the current generation of key and registers it so DeletePrefix sees in-flight loads.
func (s *Store[V]) generation(key string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	gen, ok := s.generations[key]
	if !ok {
		s.generations[key] = 0
	}
	return gen
}

// setIfCurrent stores value only when key was not deleted since gen was read.
func (s *Store[V]) setIfCurrent(key string, value V, gen uint64) bool {
	if s.disabled {
		return false
	}

	var expiresAt time.Time
	if s.ttl > 0 {
		expiresAt = s.now().Add(s.ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generations[key] != gen {
		return false
	}
	s.entries[key] = entry[V]{value: value, expiresAt: expiresAt}
	return true
}

func (s *Store[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *Store[V]) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (V, error)) (V, error) {
	var zero V
	if loader == nil {
		return zero, fmt.Errorf("loader is required")
	}
	if key == "" {
		return loader(ctx)
	}

	if value, ok := s.Get(ctx, key); ok {
		return value, nil
	}

	value, err, _ := s.flight.Do(key, func() (any, error) {
		if cached, ok := s.Get(ctx, key); ok {
			return cached, nil
		}

		gen := s.generation(key)
		loaded, loadErr := loader(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		s.setIfCurrent(key, loaded, gen)
		return loaded, nil
	})
	if err != nil {
		return zero, err
	}

	return value.(V), nil
}
