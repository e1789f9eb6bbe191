package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/samirrijal/bubblepoint/internal/adapters/catalog"
	"github.com/samirrijal/bubblepoint/internal/core/domain"
	"github.com/samirrijal/bubblepoint/internal/core/ports"
)

var _ ports.ComponentRepository = (*catalog.Catalog)(nil)

func TestCatalog_Get(t *testing.T) {
	c, err := catalog.New().Get(context.Background(), domain.Ethanol)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Name != "Ethanol" || c.Antoine.C != 219.16 {
		t.Errorf("unexpected component: %+v", c)
	}

	_, err = catalog.New().Get(context.Background(), "argon")
	if !errors.Is(err, domain.ErrUnknownComponent) {
		t.Errorf("expected ErrUnknownComponent, got %v", err)
	}
}

func TestCatalog_List(t *testing.T) {
	cs, err := catalog.New().List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cs) != 2 {
		t.Errorf("expected 2 components, got %d", len(cs))
	}
}
