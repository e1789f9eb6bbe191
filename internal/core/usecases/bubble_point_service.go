package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samirrijal/bubblepoint/internal/core/domain"
	"github.com/samirrijal/bubblepoint/internal/core/ports"
	"github.com/samirrijal/bubblepoint/internal/core/thermo"
	"github.com/samirrijal/bubblepoint/internal/pkg/logging"
	"github.com/samirrijal/bubblepoint/internal/pkg/metrics"
	"github.com/samirrijal/bubblepoint/internal/pkg/telemetry"
)

var tracer = otel.Tracer("github.com/samirrijal/bubblepoint/internal/core/usecases")

// BubblePointService handles bubble-point calculations.
type BubblePointService struct {
	components ports.ComponentRepository
	solver     *thermo.Solver
	cache      ports.CacheService
	publisher  ports.ResultPublisher

	component1 domain.ComponentID
	component2 domain.ComponentID
	cacheTTL   int
}

// NewBubblePointService creates a new BubblePointService. cache and
// publisher may be nil.
func NewBubblePointService(
	components ports.ComponentRepository,
	solver *thermo.Solver,
	cache ports.CacheService,
	publisher ports.ResultPublisher,
) *BubblePointService {
	return &BubblePointService{
		components: components,
		solver:     solver,
		cache:      cache,
		publisher:  publisher,
		component1: domain.Water,
		component2: domain.Ethanol,
		cacheTTL:   3600,
	}
}

// WithDefaultMixture sets the pair used when a request names no components.
func (s *BubblePointService) WithDefaultMixture(c1, c2 domain.ComponentID) *BubblePointService {
	s.component1, s.component2 = c1, c2
	return s
}

// WithCacheTTL sets how long results stay cached, in seconds.
func (s *BubblePointService) WithCacheTTL(seconds int) *BubblePointService {
	s.cacheTTL = seconds
	return s
}

// DefaultMixture returns the ids used when a request names no components.
func (s *BubblePointService) DefaultMixture() (domain.ComponentID, domain.ComponentID) {
	return s.component1, s.component2
}

// Calculate solves the bubble point for req and publishes the result.
func (s *BubblePointService) Calculate(ctx context.Context, req domain.BubblePointRequest) (*domain.EquilibriumResult, error) {
	result, err := s.Evaluate(ctx, req)
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		if err := s.publisher.PublishResult(ctx, result); err != nil {
			metrics.ResultsPublished.WithLabelValues("result", "error").Inc()
			logging.FromContext(ctx).Warn("publish result failed", "error", err)
		} else {
			metrics.ResultsPublished.WithLabelValues("result", "ok").Inc()
		}
	}

	return result, nil
}

// Evaluate solves the bubble point for req without publishing it.
func (s *BubblePointService) Evaluate(ctx context.Context, req domain.BubblePointRequest) (*domain.EquilibriumResult, error) {
	ctx, span := tracer.Start(ctx, "BubblePointService.Evaluate")
	defer span.End()

	m, err := s.mixture(ctx, req.Component1, req.Component2)
	if err != nil {
		s.fail(ctx, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.Float64(telemetry.AttrTemperature, req.Temperature),
		attribute.Float64(telemetry.AttrX1, req.X1),
		attribute.String(telemetry.AttrComponent1, string(m.Component1.ID)),
		attribute.String(telemetry.AttrComponent2, string(m.Component2.ID)),
	)

	// Try cache
	cacheKey := resultKey(m, req.Temperature, req.X1)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var result domain.EquilibriumResult
			if err := json.Unmarshal(data, &result); err == nil {
				metrics.CacheHits.WithLabelValues("bubble_point").Inc()
				metrics.CalculationsTotal.WithLabelValues("cached").Inc()
				span.SetAttributes(attribute.Bool(telemetry.AttrCacheHit, true))
				return &result, nil
			}
			// Unreadable entry: evict it so a failed re-Set cannot leave it behind.
			if err := s.cache.Delete(ctx, cacheKey); err != nil {
				logging.FromContext(ctx).Warn("evict cache entry failed", "key", cacheKey, "error", err)
			}
		}
		metrics.CacheMisses.WithLabelValues("bubble_point").Inc()
	}

	result, err := s.solver.BubblePoint(m, req.Temperature, req.X1)
	if err != nil {
		s.fail(ctx, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	metrics.CalculationsTotal.WithLabelValues("ok").Inc()
	metrics.SolverIterations.Observe(float64(result.Iterations))
	span.SetAttributes(
		attribute.Float64(telemetry.AttrPVap, result.PVap),
		attribute.Int(telemetry.AttrIterations, result.Iterations),
	)

	if s.cache != nil {
		if data, err := json.Marshal(result); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, s.cacheTTL)
		}
	}

	return result, nil
}

// mixture resolves the requested pair, falling back to the defaults for
// empty ids.
func (s *BubblePointService) mixture(ctx context.Context, id1, id2 domain.ComponentID) (domain.Mixture, error) {
	if id1 == "" {
		id1 = s.component1
	}
	if id2 == "" {
		id2 = s.component2
	}
	c1, err := s.components.Get(ctx, domain.ComponentID(strings.ToLower(string(id1))))
	if err != nil {
		return domain.Mixture{}, fmt.Errorf("component1: %w", err)
	}
	c2, err := s.components.Get(ctx, domain.ComponentID(strings.ToLower(string(id2))))
	if err != nil {
		return domain.Mixture{}, fmt.Errorf("component2: %w", err)
	}
	return domain.MixtureOf(*c1, *c2)
}

func (s *BubblePointService) fail(ctx context.Context, err error) {
	outcome := "error"
	switch {
	case domain.IsInputError(err):
		outcome = "input_error"
	case domain.IsSolverError(err):
		outcome = "solver_error"
	}
	metrics.CalculationsTotal.WithLabelValues(outcome).Inc()
	logging.FromContext(ctx).Warn("bubble point calculation failed", "outcome", outcome, "error", err)
}

// resultKey formats inputs exactly so that distinct inputs never share an entry.
func resultKey(m domain.Mixture, tC, x1 float64) string {
	return fmt.Sprintf("vle:bubble:%s:%s:%s:%s",
		m.Component1.ID, m.Component2.ID,
		strconv.FormatFloat(tC, 'g', -1, 64),
		strconv.FormatFloat(x1, 'g', -1, 64),
	)
}
