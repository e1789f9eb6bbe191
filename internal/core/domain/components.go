package domain

import (
	"fmt"
	"sort"
)

// ComponentID identifies a pure chemical component in the Antoine table.
type ComponentID string

const (
	Water   ComponentID = "water"
	Ethanol ComponentID = "ethanol"
)

// AntoineParameters are the empirical coefficients of
// log10(P) = A - B/(T + C), with P in mmHg and T in °C.
type AntoineParameters struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
	C float64 `json:"c"`
}

// Component is a named entry of the Antoine table.
type Component struct {
	ID      ComponentID       `json:"id"`
	Name    string            `json:"name"`
	Antoine AntoineParameters `json:"antoine"`
}

var components = map[ComponentID]Component{
	Water: {
		ID:      Water,
		Name:    "Water",
		Antoine: AntoineParameters{A: 8.07131, B: 1730.63, C: 233.426},
	},
	Ethanol: {
		ID:      Ethanol,
		Name:    "Ethanol",
		Antoine: AntoineParameters{A: 7.24677, B: 1590.84, C: 219.16},
	},
}

// LookupComponent returns the table entry for id.
func LookupComponent(id ComponentID) (Component, error) {
	c, ok := components[id]
	if !ok {
		return Component{}, fmt.Errorf("%w: %q", ErrUnknownComponent, id)
	}
	return c, nil
}

// Components returns every table entry ordered by id.
func Components() []Component {
	out := make([]Component, 0, len(components))
	for _, c := range components {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Mixture is an ordered binary pair: Component1 is the one x1 refers to.
type Mixture struct {
	Component1 Component `json:"component1"`
	Component2 Component `json:"component2"`
}

// DefaultMixture is water (1) / ethanol (2).
func DefaultMixture() Mixture {
	return Mixture{Component1: components[Water], Component2: components[Ethanol]}
}

// NewMixture resolves both ids against the table.
func NewMixture(id1, id2 ComponentID) (Mixture, error) {
	c1, err := LookupComponent(id1)
	if err != nil {
		return Mixture{}, err
	}
	c2, err := LookupComponent(id2)
	if err != nil {
		return Mixture{}, err
	}
	return MixtureOf(c1, c2)
}

// MixtureOf pairs two resolved components.
func MixtureOf(c1, c2 Component) (Mixture, error) {
	if c1.ID == c2.ID {
		return Mixture{}, &DomainError{Field: "component2", Value: string(c2.ID), Reason: "a binary mixture needs two distinct components"}
	}
	return Mixture{Component1: c1, Component2: c2}, nil
}
