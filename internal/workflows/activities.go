package workflows

import (
	"context"
	"fmt"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/samirrijal/bubblepoint/internal/core/domain"
	"github.com/samirrijal/bubblepoint/internal/core/usecases"
)

// Activity names, registered by IsothermActivities.Register.
const (
	ComputePointActivity    = "ComputePoint"
	PublishIsothermActivity = "PublishIsotherm"
)

// IsothermActivities holds the activity implementations for the isotherm workflow.
type IsothermActivities struct {
	BubblePoints *usecases.BubblePointService
}

// ComputePoint solves one grid point. Input errors are not retried.
func (a *IsothermActivities) ComputePoint(ctx context.Context, req domain.BubblePointRequest) (*domain.EquilibriumResult, error) {
	r, err := a.BubblePoints.Evaluate(ctx, req)
	if err != nil {
		if domain.IsInputError(err) || domain.IsSolverError(err) {
			return nil, temporal.NewNonRetryableApplicationError(err.Error(), "CalculationError", err)
		}
		return nil, fmt.Errorf("compute x1=%g: %w", req.X1, err)
	}
	return r, nil
}

// PublishIsotherm hands the finished isotherm to the result broker.
func (a *IsothermActivities) PublishIsotherm(ctx context.Context, iso *domain.Isotherm) error {
	if err := a.BubblePoints.PublishIsotherm(ctx, iso); err != nil {
		return fmt.Errorf("publish isotherm: %w", err)
	}
	activity.GetLogger(ctx).Info("isotherm published",
		"component1", iso.Component1, "component2", iso.Component2, "points", len(iso.Points))
	return nil
}

// Registrar is the subset of worker.Worker used to register activities.
type Registrar interface {
	RegisterActivityWithOptions(a interface{}, options activity.RegisterOptions)
}

// Register registers the activities under their stable names.
func (a *IsothermActivities) Register(r Registrar) {
	r.RegisterActivityWithOptions(a.ComputePoint, activity.RegisterOptions{Name: ComputePointActivity})
	r.RegisterActivityWithOptions(a.PublishIsotherm, activity.RegisterOptions{Name: PublishIsothermActivity})
}
