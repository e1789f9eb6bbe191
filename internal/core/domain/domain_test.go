package domain_test

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/samirrijal/bubblepoint/internal/core/domain"
)

func TestLookupComponent(t *testing.T) {
	c, err := domain.LookupComponent(domain.Water)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Antoine != (domain.AntoineParameters{A: 8.07131, B: 1730.63, C: 233.426}) {
		t.Errorf("unexpected water coefficients: %+v", c.Antoine)
	}

	_, err = domain.LookupComponent("mercury")
	if !errors.Is(err, domain.ErrUnknownComponent) {
		t.Errorf("expected ErrUnknownComponent, got %v", err)
	}
}

func TestComponents_Sorted(t *testing.T) {
	cs := domain.Components()
	if len(cs) != 2 {
		t.Fatalf("expected 2 components, got %d", len(cs))
	}
	if cs[0].ID != domain.Ethanol || cs[1].ID != domain.Water {
		t.Errorf("expected ethanol, water order, got %s, %s", cs[0].ID, cs[1].ID)
	}
}

func TestNewMixture(t *testing.T) {
	m, err := domain.NewMixture(domain.Ethanol, domain.Water)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Component1.ID != domain.Ethanol || m.Component2.ID != domain.Water {
		t.Errorf("unexpected order: %+v", m)
	}

	if _, err := domain.NewMixture(domain.Water, domain.Water); !domain.IsInputError(err) {
		t.Errorf("expected input error for identical components, got %v", err)
	}
	if _, err := domain.NewMixture(domain.Water, "benzene"); !errors.Is(err, domain.ErrUnknownComponent) {
		t.Errorf("expected ErrUnknownComponent, got %v", err)
	}
}

func TestNewCompositionPair(t *testing.T) {
	tests := []struct {
		x1      float64
		wantX2  float64
		wantErr bool
	}{
		{0, 1, false},
		{1, 0, false},
		{0.25, 0.75, false},
		{-0.01, 0, true},
		{1.01, 0, true},
		{math.NaN(), 0, true},
		{math.Inf(1), 0, true},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("x1=%g", tt.x1), func(t *testing.T) {
			c, err := domain.NewCompositionPair(tt.x1)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && c.X2 != tt.wantX2 {
				t.Errorf("expected x2 %g, got %g", tt.wantX2, c.X2)
			}
		})
	}
}

func TestErrorClassification(t *testing.T) {
	wrapped := fmt.Errorf("calc: %w", &domain.BracketingError{Lower: 1, Upper: 2, FLower: 1, FUpper: 1})
	if !domain.IsSolverError(wrapped) || domain.IsInputError(wrapped) {
		t.Errorf("bracketing error misclassified")
	}

	conv := fmt.Errorf("calc: %w", &domain.ConvergenceError{MaxIter: 10})
	if !domain.IsSolverError(conv) {
		t.Errorf("convergence error misclassified")
	}

	input := fmt.Errorf("calc: %w", &domain.DomainError{Field: "x1", Value: 2.0, Reason: "out of range"})
	if !domain.IsInputError(input) || domain.IsSolverError(input) {
		t.Errorf("domain error misclassified")
	}
}
