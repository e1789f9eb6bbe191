package thermo

import (
	"fmt"

	"github.com/samirrijal/bubblepoint/internal/core/domain"
)

// BubblePoint computes the equilibrium result for mixture m at tC (°C) and
// liquid mole fraction x1 of m.Component1.
func (s *Solver) BubblePoint(m domain.Mixture, tC, x1 float64) (*domain.EquilibriumResult, error) {
	comp, err := domain.NewCompositionPair(x1)
	if err != nil {
		return nil, err
	}

	psat1, err := SaturationPressure(m.Component1.Antoine, tC)
	if err != nil {
		return nil, fmt.Errorf("saturation pressure of %s: %w", m.Component1.ID, err)
	}
	psat2, err := SaturationPressure(m.Component2.Antoine, tC)
	if err != nil {
		return nil, fmt.Errorf("saturation pressure of %s: %w", m.Component2.ID, err)
	}

	sol, err := s.SolveEquilibriumPressure(psat1, psat2, comp.X1, comp.X2)
	if err != nil {
		return nil, fmt.Errorf("equilibrium pressure at T=%g x1=%g: %w", tC, comp.X1, err)
	}

	return &domain.EquilibriumResult{
		Component1: m.Component1.ID,
		Component2: m.Component2.ID,
		TV:         tC,
		X1:         comp.X1,
		X2:         comp.X2,
		PSat1:      psat1,
		PSat2:      psat2,
		PMin:       sol.PMin,
		PMax:       sol.PMax,
		PVap:       sol.PVap,
		Y1:         VaporFraction(DistributionRatio(psat1, sol.PVap), comp.X1),
		Y2:         VaporFraction(DistributionRatio(psat2, sol.PVap), comp.X2),
		Iterations: sol.Iterations,
	}, nil
}
