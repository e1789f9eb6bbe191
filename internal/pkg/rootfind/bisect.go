// Package rootfind implements bracketed scalar root finding.
package rootfind

import (
	"fmt"
	"math"
)

// Options controls termination of Bisect.
type Options struct {
	// XTol and RTol bound the final bracket half-width: |dx| < XTol + RTol*|x|.
	XTol float64
	RTol float64
	// FTol lets a bracket end whose residual is within FTol of zero stand in
	// for a root when the two ends do not straddle one.
	FTol    float64
	MaxIter int
}

// DefaultOptions mirrors the scipy bisect defaults.
func DefaultOptions() Options {
	return Options{
		XTol:    2e-12,
		RTol:    4 * 2.220446049250313e-16,
		FTol:    1e-12,
		MaxIter: 100,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.XTol <= 0 {
		o.XTol = d.XTol
	}
	if o.RTol <= 0 {
		o.RTol = d.RTol
	}
	if o.FTol < 0 {
		o.FTol = d.FTol
	}
	if o.MaxIter <= 0 {
		o.MaxIter = d.MaxIter
	}
	return o
}

// Validate rejects tolerances that can never be met.
func (o Options) Validate() error {
	if o.XTol < 0 || math.IsNaN(o.XTol) {
		return fmt.Errorf("xtol must be non-negative, got %g", o.XTol)
	}
	if o.RTol < 0 || math.IsNaN(o.RTol) {
		return fmt.Errorf("rtol must be non-negative, got %g", o.RTol)
	}
	if o.FTol < 0 || math.IsNaN(o.FTol) {
		return fmt.Errorf("ftol must be non-negative, got %g", o.FTol)
	}
	if o.MaxIter < 0 {
		return fmt.Errorf("max_iter must be non-negative, got %d", o.MaxIter)
	}
	return nil
}

// Result is a converged root.
type Result struct {
	Root       float64
	Residual   float64
	Iterations int
}

// BracketError means f(Lower) and f(Upper) have the same sign.
type BracketError struct {
	Lower, Upper   float64
	FLower, FUpper float64
}

func (e *BracketError) Error() string {
	return fmt.Sprintf("f(%g)=%g and f(%g)=%g do not bracket a root", e.Lower, e.FLower, e.Upper, e.FUpper)
}

// ConvergenceError means the iteration budget ran out.
type ConvergenceError struct {
	MaxIter      int
	Lower, Upper float64
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("failed to converge in %d iterations, bracket [%g, %g]", e.MaxIter, e.Lower, e.Upper)
}

// Bisect finds a root of f in [lo, hi].
func Bisect(f func(float64) float64, lo, hi float64, opts Options) (Result, error) {
	opts = opts.withDefaults()

	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return Result{}, fmt.Errorf("bracket [%g, %g] must be finite", lo, hi)
	}
	if lo > hi {
		lo, hi = hi, lo
	}

	flo := f(lo)
	fhi := f(hi)
	if math.IsNaN(flo) || math.IsNaN(fhi) {
		return Result{}, fmt.Errorf("objective is undefined at the bracket ends (f(%g)=%g, f(%g)=%g)", lo, flo, hi, fhi)
	}

	switch {
	case flo == 0:
		return Result{Root: lo, Residual: flo}, nil
	case fhi == 0:
		return Result{Root: hi, Residual: fhi}, nil
	}

	if math.Signbit(flo) == math.Signbit(fhi) {
		// Same sign: only an end that is already a root within FTol saves us.
		switch {
		case math.Abs(fhi) <= opts.FTol && math.Abs(fhi) <= math.Abs(flo):
			return Result{Root: hi, Residual: fhi}, nil
		case math.Abs(flo) <= opts.FTol:
			return Result{Root: lo, Residual: flo}, nil
		}
		return Result{}, &BracketError{Lower: lo, Upper: hi, FLower: flo, FUpper: fhi}
	}

	a, fa := lo, flo
	dm := hi - lo
	for iter := 1; iter <= opts.MaxIter; iter++ {
		dm *= 0.5
		xm := a + dm
		fm := f(xm)

		if math.Signbit(fm) == math.Signbit(fa) {
			a, fa = xm, fm
		}

		if fm == 0 || math.Abs(dm) < opts.XTol+opts.RTol*math.Abs(xm) {
			return Result{Root: xm, Residual: fm, Iterations: iter}, nil
		}
	}

	return Result{}, &ConvergenceError{MaxIter: opts.MaxIter, Lower: a, Upper: a + dm}
}
