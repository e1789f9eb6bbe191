package domain

import "math"

// CompositionPair holds the liquid mole fractions of a binary mixture.
type CompositionPair struct {
	X1 float64 `json:"x1"`
	X2 float64 `json:"x2"`
}

// NewCompositionPair derives x2 = 1 - x1.
func NewCompositionPair(x1 float64) (CompositionPair, error) {
	if math.IsNaN(x1) || math.IsInf(x1, 0) {
		return CompositionPair{}, &DomainError{Field: "x1", Value: x1, Reason: "must be a finite number"}
	}
	if x1 < 0 || x1 > 1 {
		return CompositionPair{}, &DomainError{Field: "x1", Value: x1, Reason: "mole fraction must be within [0, 1]"}
	}
	return CompositionPair{X1: x1, X2: 1 - x1}, nil
}

// BubblePointRequest is one calculation request.
type BubblePointRequest struct {
	Temperature float64     `json:"t_v"`
	X1          float64     `json:"x1"`
	Component1  ComponentID `json:"component1,omitempty"`
	Component2  ComponentID `json:"component2,omitempty"`
}

// EquilibriumResult is the outcome of one bubble-point calculation.
// Pressures are in bar, temperature in °C.
type EquilibriumResult struct {
	Component1 ComponentID `json:"component1"`
	Component2 ComponentID `json:"component2"`
	TV         float64     `json:"t_v"`
	X1         float64     `json:"x1"`
	X2         float64     `json:"x2"`
	PSat1      float64     `json:"p_sat1"`
	PSat2      float64     `json:"p_sat2"`
	PMin       float64     `json:"p_min"`
	PMax       float64     `json:"p_max"`
	PVap       float64     `json:"p_vap"`
	Y1         float64     `json:"y1"`
	Y2         float64     `json:"y2"`
	Iterations int         `json:"iterations"`
}

// IsothermPoint is one sample of a P-x diagram at fixed temperature.
type IsothermPoint struct {
	X1   float64 `json:"x1"`
	Y1   float64 `json:"y1"`
	PMin float64 `json:"p_min"`
	PMax float64 `json:"p_max"`
	PVap float64 `json:"p_vap"`
}

// Isotherm is a sampled P-x diagram.
type Isotherm struct {
	Component1  ComponentID     `json:"component1"`
	Component2  ComponentID     `json:"component2"`
	Temperature float64         `json:"t_v"`
	PSat1       float64         `json:"p_sat1"`
	PSat2       float64         `json:"p_sat2"`
	Points      []IsothermPoint `json:"points"`
}
