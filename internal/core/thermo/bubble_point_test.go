package thermo_test

import (
	"errors"
	"math"
	"testing"

	"github.com/samirrijal/bubblepoint/internal/core/domain"
	"github.com/samirrijal/bubblepoint/internal/core/thermo"
)

func TestBubblePoint_WaterEthanolAt50C(t *testing.T) {
	r, err := thermo.DefaultSolver().BubblePoint(domain.DefaultMixture(), 50, 0.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(r.PSat1-0.1214) > 5e-5 {
		t.Errorf("expected p_sat1 ~0.1214 bar, got %.6f", r.PSat1)
	}
	if math.Abs(r.PSat2-0.0285) > 5e-5 {
		t.Errorf("expected p_sat2 ~0.0285 bar, got %.6f", r.PSat2)
	}
	if r.PMin != r.PSat2 {
		t.Errorf("expected p_min to be the ethanol saturation pressure, got %g", r.PMin)
	}
	if math.Abs(r.PVap-0.0750) > 5e-5 {
		t.Errorf("expected p_vap ~0.0750 bar, got %.6f", r.PVap)
	}
	if r.Component1 != domain.Water || r.Component2 != domain.Ethanol {
		t.Errorf("unexpected components %s/%s", r.Component1, r.Component2)
	}
	if r.X2 != 0.5 || r.TV != 50 {
		t.Errorf("inputs not echoed: %+v", r)
	}
}

func TestBubblePoint_BoundsHoldOverGrid(t *testing.T) {
	s := thermo.DefaultSolver()
	m := domain.DefaultMixture()
	for tC := 0.0; tC <= 100; tC += 2.5 {
		for i := 0; i <= 20; i++ {
			x1 := float64(i) / 20
			r, err := s.BubblePoint(m, tC, x1)
			if err != nil {
				t.Fatalf("T=%g x1=%g: %v", tC, x1, err)
			}
			if math.Abs(r.X1+r.X2-1) > 1e-15 {
				t.Errorf("T=%g x1=%g: x1+x2 = %g", tC, x1, r.X1+r.X2)
			}
			if r.PVap < r.PMin || r.PVap > r.PMax {
				t.Errorf("T=%g x1=%g: p_vap %g outside [%g, %g]", tC, x1, r.PVap, r.PMin, r.PMax)
			}
			if sum := r.Y1 + r.Y2; math.Abs(sum-1) > 1e-10 {
				t.Errorf("T=%g x1=%g: y1+y2 = %.12g", tC, x1, sum)
			}
		}
	}
}

func TestBubblePoint_RelativePrecisionNearFreezing(t *testing.T) {
	s := thermo.DefaultSolver()
	m := domain.DefaultMixture()
	for _, tC := range []float64{0, 0.14, 1} {
		for _, x1 := range []float64{0.055, 0.3, 0.8} {
			r, err := s.BubblePoint(m, tC, x1)
			if err != nil {
				t.Fatalf("T=%g x1=%g: %v", tC, x1, err)
			}
			if sum := r.Y1 + r.Y2; math.Abs(sum-1) > 1e-10 {
				t.Errorf("T=%g x1=%g: y1+y2 = %.15g", tC, x1, sum)
			}
		}
	}
}

func TestBubblePoint_IncreasesWithTemperature(t *testing.T) {
	s := thermo.DefaultSolver()
	m := domain.DefaultMixture()
	for _, x1 := range []float64{0, 0.25, 0.5, 0.75, 1} {
		var prev *domain.EquilibriumResult
		for tC := 0.0; tC <= 100; tC += 10 {
			r, err := s.BubblePoint(m, tC, x1)
			if err != nil {
				t.Fatalf("T=%g x1=%g: %v", tC, x1, err)
			}
			if prev != nil {
				if r.PSat1 <= prev.PSat1 || r.PSat2 <= prev.PSat2 {
					t.Errorf("x1=%g: saturation pressures did not rise from T=%g to T=%g", x1, prev.TV, tC)
				}
				if r.PVap <= prev.PVap {
					t.Errorf("x1=%g: p_vap did not rise from T=%g to T=%g", x1, prev.TV, tC)
				}
			}
			prev = r
		}
	}
}

func TestBubblePoint_PureComponentBoundaries(t *testing.T) {
	s := thermo.DefaultSolver()
	m := domain.DefaultMixture()

	r, err := s.BubblePoint(m, 65, 1)
	if err != nil {
		t.Fatalf("x1=1: %v", err)
	}
	if r.PVap != r.PSat1 || r.PMin != r.PSat1 || r.PMax != r.PSat1 {
		t.Errorf("x1=1: expected p_vap = p_sat1 = p_min = p_max, got %+v", r)
	}
	if r.Y1 != 1 || r.Y2 != 0 {
		t.Errorf("x1=1: expected pure vapour, got y1=%g y2=%g", r.Y1, r.Y2)
	}

	r, err = s.BubblePoint(m, 65, 0)
	if err != nil {
		t.Fatalf("x1=0: %v", err)
	}
	if r.PVap != r.PSat2 || r.PMin != r.PSat2 || r.PMax != r.PSat2 {
		t.Errorf("x1=0: expected p_vap = p_sat2 = p_min = p_max, got %+v", r)
	}
}

func TestBubblePoint_SwappedMixture(t *testing.T) {
	m, err := domain.NewMixture(domain.Ethanol, domain.Water)
	if err != nil {
		t.Fatalf("mixture: %v", err)
	}
	s := thermo.DefaultSolver()
	a, err := s.BubblePoint(m, 40, 0.3)
	if err != nil {
		t.Fatal(err)
	}
	b, err := s.BubblePoint(domain.DefaultMixture(), 40, 0.7)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(a.PVap-b.PVap) > 1e-11 {
		t.Errorf("swapping components should not change p_vap: %g vs %g", a.PVap, b.PVap)
	}
}

func TestBubblePoint_InvalidComposition(t *testing.T) {
	_, err := thermo.DefaultSolver().BubblePoint(domain.DefaultMixture(), 50, 1.2)
	var de *domain.DomainError
	if !errors.As(err, &de) {
		t.Fatalf("expected DomainError, got %v", err)
	}
	if de.Field != "x1" {
		t.Errorf("expected field x1, got %s", de.Field)
	}
}

func TestBubblePoint_SingularTemperature(t *testing.T) {
	m := domain.DefaultMixture()
	_, err := thermo.DefaultSolver().BubblePoint(m, -m.Component2.Antoine.C, 0.5)
	if !domain.IsInputError(err) {
		t.Fatalf("expected input error, got %v", err)
	}
}
