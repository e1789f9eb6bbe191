package thermo

import (
	"errors"
	"fmt"
	"math"

	"github.com/samirrijal/bubblepoint/internal/core/domain"
	"github.com/samirrijal/bubblepoint/internal/pkg/rootfind"
)

// compositionTol is how far x1 + x2 may drift from 1.
const compositionTol = 1e-9

// relXTol is the absolute bracket tolerance per bar of p_max. Saturation
// pressures near 0 °C are a few mbar, where a fixed 2e-12 bar is coarse.
const relXTol = 1e-12

// DistributionRatio is K = Psat / P.
func DistributionRatio(psat, p float64) float64 {
	return psat / p
}

// VaporFraction is y = K * x.
func VaporFraction(k, x float64) float64 {
	return k * x
}

// Residual is the bubble-point closure y1(P) + y2(P) - 1. It decreases
// strictly in P for positive saturation pressures.
func Residual(p, psat1, psat2, x1, x2 float64) float64 {
	y1 := VaporFraction(DistributionRatio(psat1, p), x1)
	y2 := VaporFraction(DistributionRatio(psat2, p), x2)
	return y1 + y2 - 1
}

// Bounds returns the physical pressure bracket: the lower saturation
// pressure and the ideal Raoult's-law total pressure. pMax is a convex
// combination of the saturation pressures, so it is never below pMin even
// when rounding says otherwise.
func Bounds(psat1, psat2, x1, x2 float64) (pMin, pMax float64) {
	pMin = math.Min(psat1, psat2)
	return pMin, math.Max(x1*psat1+x2*psat2, pMin)
}

// Solution is a solved bubble-point pressure and the bracket it came from.
type Solution struct {
	PVap       float64
	PMin       float64
	PMax       float64
	Iterations int
}

// Solver finds the equilibrium pressure by bisection.
type Solver struct {
	opts rootfind.Options
}

// NewSolver creates a Solver. Zero-valued options fall back to
// rootfind.DefaultOptions.
func NewSolver(opts rootfind.Options) *Solver {
	return &Solver{opts: opts}
}

// DefaultSolver uses rootfind.DefaultOptions.
func DefaultSolver() *Solver {
	return NewSolver(rootfind.DefaultOptions())
}

// Options returns the solver tolerances.
func (s *Solver) Options() rootfind.Options {
	return s.opts
}

// SolveEquilibriumPressure returns the total pressure at which the vapour
// fractions of the binary mixture sum to one.
func (s *Solver) SolveEquilibriumPressure(psat1, psat2, x1, x2 float64) (Solution, error) {
	if err := validatePressure("p_sat1", psat1); err != nil {
		return Solution{}, err
	}
	if err := validatePressure("p_sat2", psat2); err != nil {
		return Solution{}, err
	}
	if err := validateFraction("x1", x1); err != nil {
		return Solution{}, err
	}
	if err := validateFraction("x2", x2); err != nil {
		return Solution{}, err
	}
	if math.Abs(x1+x2-1) > compositionTol {
		return Solution{}, &domain.DomainError{Field: "x1+x2", Value: x1 + x2, Reason: "mole fractions must sum to 1"}
	}

	// Pure component or identical volatilities: the bracket has zero width.
	switch {
	case x1 == 1:
		return Solution{PVap: psat1, PMin: psat1, PMax: psat1}, nil
	case x2 == 1:
		return Solution{PVap: psat2, PMin: psat2, PMax: psat2}, nil
	case psat1 == psat2:
		return Solution{PVap: psat1, PMin: psat1, PMax: psat1}, nil
	}

	pMin, pMax := Bounds(psat1, psat2, x1, x2)
	if pMin == pMax {
		return Solution{PVap: pMax, PMin: pMin, PMax: pMax}, nil
	}
	objective := func(p float64) float64 {
		return Residual(p, psat1, psat2, x1, x2)
	}

	// f(pMax) is zero analytically. When rounding leaves it non-negative the
	// root sits on the upper end and there is nothing to bisect.
	if fMax := objective(pMax); fMax >= 0 && objective(pMin) > 0 {
		return Solution{PVap: pMax, PMin: pMin, PMax: pMax}, nil
	}

	opts := s.opts
	if xtol := relXTol * pMax; opts.XTol <= 0 || xtol < opts.XTol {
		opts.XTol = xtol
	}

	res, err := bisect(objective, pMin, pMax, opts)
	if err != nil {
		return Solution{}, err
	}

	// Bisection never leaves the bracket, but keep the invariant exact.
	pVap := math.Min(math.Max(res.Root, pMin), pMax)

	return Solution{PVap: pVap, PMin: pMin, PMax: pMax, Iterations: res.Iterations}, nil
}

// bisect runs rootfind.Bisect and maps its failures onto the domain errors.
func bisect(f func(float64) float64, lo, hi float64, opts rootfind.Options) (rootfind.Result, error) {
	res, err := rootfind.Bisect(f, lo, hi, opts)
	if err != nil {
		return rootfind.Result{}, translate(err)
	}
	return res, nil
}

func translate(err error) error {
	var be *rootfind.BracketError
	if errors.As(err, &be) {
		return &domain.BracketingError{Lower: be.Lower, Upper: be.Upper, FLower: be.FLower, FUpper: be.FUpper}
	}
	var ce *rootfind.ConvergenceError
	if errors.As(err, &ce) {
		return &domain.ConvergenceError{MaxIter: ce.MaxIter, Lower: ce.Lower, Upper: ce.Upper}
	}
	return fmt.Errorf("bisection: %w", err)
}

func validatePressure(field string, p float64) error {
	if math.IsNaN(p) || math.IsInf(p, 0) || p <= 0 {
		return &domain.DomainError{Field: field, Value: p, Reason: "saturation pressure must be finite and positive"}
	}
	return nil
}

func validateFraction(field string, x float64) error {
	if math.IsNaN(x) || x < 0 || x > 1 {
		return &domain.DomainError{Field: field, Value: x, Reason: "mole fraction must be within [0, 1]"}
	}
	return nil
}
