package ports

import (
	"context"

	"github.com/samirrijal/bubblepoint/internal/core/domain"
)

// ResultPublisher publishes calculation results to a message broker.
type ResultPublisher interface {
	PublishResult(ctx context.Context, result *domain.EquilibriumResult) error
	PublishIsotherm(ctx context.Context, iso *domain.Isotherm) error
}

// ResultSubscriber receives calculation results from a message broker.
type ResultSubscriber interface {
	SubscribeResults(ctx context.Context, handler func(ctx context.Context, result *domain.EquilibriumResult) error) error
	SubscribeIsotherms(ctx context.Context, handler func(ctx context.Context, iso *domain.Isotherm) error) error
}

// CacheService provides read-through caching.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}
