package workflows

import (
	"fmt"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/samirrijal/bubblepoint/internal/core/domain"
	"github.com/samirrijal/bubblepoint/internal/core/usecases"
)

// IsothermInput is the input for the isotherm workflow.
type IsothermInput struct {
	Temperature float64
	Points      int
	Component1  domain.ComponentID
	Component2  domain.ComponentID
	Publish     bool
}

// IsothermWorkflow sweeps x1 over an even grid at a fixed temperature, one
// activity per grid point, and optionally publishes the assembled isotherm.
// A failed publish is logged; the isotherm is still returned.
func IsothermWorkflow(ctx workflow.Context, input IsothermInput) (*domain.Isotherm, error) {
	logger := workflow.GetLogger(ctx)

	if err := usecases.ValidateTemperature(input.Temperature); err != nil {
		return nil, temporal.NewNonRetryableApplicationError(err.Error(), "InvalidInput", err)
	}
	n := usecases.ClampIsothermPoints(input.Points)
	logger.Info("Starting isotherm sweep", "temperature", input.Temperature, "intervals", n)

	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 3,
		},
	})

	grid := usecases.IsothermGrid(n)
	futures := make([]workflow.Future, len(grid))
	for i, x1 := range grid {
		req := domain.BubblePointRequest{
			Temperature: input.Temperature,
			X1:          x1,
			Component1:  input.Component1,
			Component2:  input.Component2,
		}
		futures[i] = workflow.ExecuteActivity(ctx, ComputePointActivity, req)
	}

	iso := &domain.Isotherm{Temperature: input.Temperature}
	for i, f := range futures {
		var r domain.EquilibriumResult
		if err := f.Get(ctx, &r); err != nil {
			return nil, fmt.Errorf("point %d (x1=%g): %w", i, grid[i], err)
		}
		iso.Component1, iso.Component2 = r.Component1, r.Component2
		iso.PSat1, iso.PSat2 = r.PSat1, r.PSat2
		iso.Points = append(iso.Points, usecases.PointOf(&r))
	}

	if input.Publish {
		if err := workflow.ExecuteActivity(ctx, PublishIsothermActivity, iso).Get(ctx, nil); err != nil {
			logger.Warn("publish isotherm failed", "error", err)
		}
	}

	logger.Info("Isotherm sweep complete", "points", len(iso.Points))
	return iso, nil
}
