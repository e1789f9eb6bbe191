// Package thermo holds the vapour-liquid equilibrium model: Antoine
// saturation pressures and the Raoult's-law bubble-point closure.
package thermo

import (
	"fmt"
	"math"

	"github.com/samirrijal/bubblepoint/internal/core/domain"
)

// MmHgPerBar converts Antoine output (mmHg) to bar. 1 atm = 760 mmHg and
// bar is taken as atm.
const MmHgPerBar = 760.0

// SaturationPressure evaluates Antoine's equation at tC (°C) and returns the
// saturation pressure in bar.
func SaturationPressure(p domain.AntoineParameters, tC float64) (float64, error) {
	if math.IsNaN(tC) || math.IsInf(tC, 0) {
		return 0, &domain.DomainError{Field: "temperature", Value: tC, Reason: "must be a finite number"}
	}
	denom := tC + p.C
	if denom == 0 {
		return 0, &domain.DomainError{
			Field:  "temperature",
			Value:  tC,
			Reason: fmt.Sprintf("T + C is zero (C=%g), Antoine's equation is undefined", p.C),
		}
	}

	mmHg := math.Pow(10, p.A-p.B/denom)
	psat := mmHg / MmHgPerBar
	if math.IsNaN(psat) || math.IsInf(psat, 0) || psat <= 0 {
		return 0, &domain.DomainError{
			Field:  "temperature",
			Value:  tC,
			Reason: fmt.Sprintf("saturation pressure evaluates to %g", psat),
		}
	}
	return psat, nil
}
