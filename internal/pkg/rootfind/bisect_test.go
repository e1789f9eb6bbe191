package rootfind_test

import (
	"errors"
	"math"
	"testing"

	"github.com/samirrijal/bubblepoint/internal/pkg/rootfind"
)

func TestBisect_Linear(t *testing.T) {
	res, err := rootfind.Bisect(func(x float64) float64 { return x - 0.3 }, 0, 1, rootfind.DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(res.Root-0.3) > 1e-11 {
		t.Errorf("expected root 0.3, got %.15g", res.Root)
	}
	if res.Iterations == 0 || res.Iterations > 100 {
		t.Errorf("unexpected iteration count %d", res.Iterations)
	}
}

func TestBisect_Decreasing(t *testing.T) {
	// 2/p - 1 falls through zero at p = 2, the same shape as the VLE closure.
	res, err := rootfind.Bisect(func(p float64) float64 { return 2/p - 1 }, 0.5, 5, rootfind.DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(res.Root-2) > 1e-10 {
		t.Errorf("expected root 2, got %.15g", res.Root)
	}
}

func TestBisect_SwappedBracket(t *testing.T) {
	res, err := rootfind.Bisect(func(x float64) float64 { return x*x - 2 }, 2, 0, rootfind.DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(res.Root-math.Sqrt2) > 1e-10 {
		t.Errorf("expected sqrt(2), got %.15g", res.Root)
	}
}

func TestBisect_RootAtEnd(t *testing.T) {
	res, err := rootfind.Bisect(func(x float64) float64 { return x - 1 }, 0, 1, rootfind.DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Root != 1 || res.Iterations != 0 {
		t.Errorf("expected immediate root at 1, got %g after %d iterations", res.Root, res.Iterations)
	}
}

func TestBisect_EndWithinFTol(t *testing.T) {
	// Both ends positive, but the upper end is a root up to rounding.
	f := func(x float64) float64 { return 1e-15 + (1-x)*(1-x) }
	res, err := rootfind.Bisect(f, 0, 1, rootfind.DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Root != 1 {
		t.Errorf("expected root 1, got %g", res.Root)
	}
}

func TestBisect_NoSignChange(t *testing.T) {
	_, err := rootfind.Bisect(func(x float64) float64 { return x*x + 1 }, -1, 1, rootfind.DefaultOptions())
	var be *rootfind.BracketError
	if !errors.As(err, &be) {
		t.Fatalf("expected BracketError, got %v", err)
	}
	if be.FLower != 2 || be.FUpper != 2 {
		t.Errorf("unexpected residuals in error: %+v", be)
	}
}

func TestBisect_IterationBudget(t *testing.T) {
	opts := rootfind.DefaultOptions()
	opts.MaxIter = 3
	_, err := rootfind.Bisect(func(x float64) float64 { return x - 0.3 }, 0, 1, opts)
	var ce *rootfind.ConvergenceError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConvergenceError, got %v", err)
	}
	if ce.MaxIter != 3 {
		t.Errorf("expected MaxIter 3, got %d", ce.MaxIter)
	}
	if !(ce.Lower <= 0.3 && 0.3 <= ce.Upper) {
		t.Errorf("last bracket [%g, %g] should still contain the root", ce.Lower, ce.Upper)
	}
}

func TestBisect_NonFiniteBracket(t *testing.T) {
	if _, err := rootfind.Bisect(func(x float64) float64 { return x }, math.Inf(-1), 1, rootfind.DefaultOptions()); err == nil {
		t.Error("expected error for infinite bracket")
	}
}

func TestBisect_ZeroOptionsUseDefaults(t *testing.T) {
	res, err := rootfind.Bisect(func(x float64) float64 { return x - 0.25 }, 0, 1, rootfind.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Root != 0.25 {
		t.Errorf("expected exact root 0.25, got %.15g", res.Root)
	}
}

func TestOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		opts    rootfind.Options
		wantErr bool
	}{
		{"defaults", rootfind.DefaultOptions(), false},
		{"negative xtol", rootfind.Options{XTol: -1}, true},
		{"negative rtol", rootfind.Options{RTol: -1}, true},
		{"nan ftol", rootfind.Options{FTol: math.NaN()}, true},
		{"negative max iter", rootfind.Options{MaxIter: -5}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
