package usecases

import (
	"fmt"
	"math"

	"github.com/samirrijal/bubblepoint/internal/core/domain"
)

// Operating range offered by the calculator surfaces. The thermodynamic core
// accepts any temperature for which Antoine's equation is defined; callers
// facing users clamp to the range the coefficients were fitted over.
const (
	MinTemperature     = 0.0
	MaxTemperature     = 100.0
	DefaultTemperature = 50.0
	DefaultX1          = 0.5
)

// ValidateOperatingRange rejects requests outside T in [0, 100] °C or
// x1 in [0, 1].
func ValidateOperatingRange(req domain.BubblePointRequest) error {
	if math.IsNaN(req.Temperature) || req.Temperature < MinTemperature || req.Temperature > MaxTemperature {
		return &domain.DomainError{Field: "t_v", Value: req.Temperature, Reason: "must be between 0 and 100 °C"}
	}
	if math.IsNaN(req.X1) || req.X1 < 0 || req.X1 > 1 {
		return &domain.DomainError{Field: "x1", Value: req.X1, Reason: "must be between 0 and 1"}
	}
	return nil
}

// ValidateTemperature applies the temperature part of ValidateOperatingRange.
func ValidateTemperature(tC float64) error {
	return ValidateOperatingRange(domain.BubblePointRequest{Temperature: tC, X1: DefaultX1})
}

// ValidateIsothermPoints rejects interval counts outside [1, MaxIsothermPoints].
func ValidateIsothermPoints(n int) error {
	if n < 1 || n > MaxIsothermPoints {
		return &domain.DomainError{Field: "points", Value: n, Reason: fmt.Sprintf("must be between 1 and %d", MaxIsothermPoints)}
	}
	return nil
}
