package ports

import (
	"context"

	"github.com/samirrijal/bubblepoint/internal/core/domain"
)

// ComponentRepository looks up Antoine parameters by component id.
type ComponentRepository interface {
	Get(ctx context.Context, id domain.ComponentID) (*domain.Component, error)
	List(ctx context.Context) ([]domain.Component, error)
}
