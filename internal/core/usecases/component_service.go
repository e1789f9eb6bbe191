package usecases

import (
	"context"
	"strings"

	"github.com/samirrijal/bubblepoint/internal/core/domain"
	"github.com/samirrijal/bubblepoint/internal/core/ports"
)

// ComponentService exposes the Antoine parameter table.
type ComponentService struct {
	components ports.ComponentRepository
}

// NewComponentService creates a new ComponentService.
func NewComponentService(components ports.ComponentRepository) *ComponentService {
	return &ComponentService{components: components}
}

// List returns all components.
func (s *ComponentService) List(ctx context.Context) ([]domain.Component, error) {
	return s.components.List(ctx)
}

// Get returns a component by id (case-insensitive).
func (s *ComponentService) Get(ctx context.Context, id string) (*domain.Component, error) {
	return s.components.Get(ctx, domain.ComponentID(strings.ToLower(id)))
}
