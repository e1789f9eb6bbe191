package usecases_test

import (
	"context"
	"errors"
	"sync"

	"github.com/samirrijal/bubblepoint/internal/core/domain"
)

// --- Mock CacheService ---

type mockCache struct {
	mu    sync.Mutex
	data  map[string][]byte
	gets  int
	sets  int
	dels  int
	ttl   int
	setFn func(key string, value []byte) error
}

func newMockCache() *mockCache {
	return &mockCache{data: make(map[string][]byte)}
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	v, ok := m.data[key]
	if !ok {
		return nil, errors.New("valkey nil message")
	}
	return v, nil
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttlSeconds int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	m.ttl = ttlSeconds
	if m.setFn != nil {
		return m.setFn(key, value)
	}
	m.data[key] = value
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dels++
	delete(m.data, key)
	return nil
}

// --- Mock ResultPublisher ---

type mockPublisher struct {
	results   []*domain.EquilibriumResult
	isotherms []*domain.Isotherm
	publishFn func(r *domain.EquilibriumResult) error
}

func (m *mockPublisher) PublishResult(ctx context.Context, r *domain.EquilibriumResult) error {
	if m.publishFn != nil {
		if err := m.publishFn(r); err != nil {
			return err
		}
	}
	m.results = append(m.results, r)
	return nil
}

func (m *mockPublisher) PublishIsotherm(ctx context.Context, iso *domain.Isotherm) error {
	m.isotherms = append(m.isotherms, iso)
	return nil
}

// --- Mock ComponentRepository ---

type mockComponentRepo struct {
	getFn  func(ctx context.Context, id domain.ComponentID) (*domain.Component, error)
	listFn func(ctx context.Context) ([]domain.Component, error)
}

func (m *mockComponentRepo) Get(ctx context.Context, id domain.ComponentID) (*domain.Component, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	c, err := domain.LookupComponent(id)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (m *mockComponentRepo) List(ctx context.Context) ([]domain.Component, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return domain.Components(), nil
}
