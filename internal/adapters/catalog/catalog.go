package catalog

import (
	"context"

	"github.com/samirrijal/bubblepoint/internal/core/domain"
)

// Catalog implements ports.ComponentRepository on the built-in Antoine table.
type Catalog struct{}

// New creates a catalog over the built-in table.
func New() *Catalog {
	return &Catalog{}
}

// Get returns the component with the given id.
func (c *Catalog) Get(ctx context.Context, id domain.ComponentID) (*domain.Component, error) {
	comp, err := domain.LookupComponent(id)
	if err != nil {
		return nil, err
	}
	return &comp, nil
}

// List returns all components ordered by id.
func (c *Catalog) List(ctx context.Context) ([]domain.Component, error) {
	return domain.Components(), nil
}
