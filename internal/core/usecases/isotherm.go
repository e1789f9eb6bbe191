package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/samber/lo"

	"github.com/samirrijal/bubblepoint/internal/core/domain"
	"github.com/samirrijal/bubblepoint/internal/pkg/logging"
	"github.com/samirrijal/bubblepoint/internal/pkg/metrics"
)

const (
	DefaultIsothermPoints = 20
	MaxIsothermPoints     = 200
)

// IsothermGrid returns n+1 evenly spaced liquid compositions from 0 to 1.
func IsothermGrid(n int) []float64 {
	if n < 1 {
		return nil
	}
	return lo.Map(lo.Range(n+1), func(i int, _ int) float64 {
		if i == n {
			return 1
		}
		return float64(i) / float64(n)
	})
}

// ClampIsothermPoints maps a requested interval count into [1, MaxIsothermPoints].
func ClampIsothermPoints(n int) int {
	if n <= 0 {
		return DefaultIsothermPoints
	}
	if n > MaxIsothermPoints {
		return MaxIsothermPoints
	}
	return n
}

// Isotherm samples the P-x diagram at temperature tC over n intervals of x1.
func (s *BubblePointService) Isotherm(ctx context.Context, tC float64, n int, id1, id2 domain.ComponentID) (*domain.Isotherm, error) {
	ctx, span := tracer.Start(ctx, "BubblePointService.Isotherm")
	defer span.End()

	n = ClampIsothermPoints(n)

	m, err := s.mixture(ctx, id1, id2)
	if err != nil {
		s.fail(ctx, err)
		return nil, err
	}

	cacheKey := fmt.Sprintf("vle:isotherm:%s:%s:%s:%d",
		m.Component1.ID, m.Component2.ID, strconv.FormatFloat(tC, 'g', -1, 64), n)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var iso domain.Isotherm
			if err := json.Unmarshal(data, &iso); err == nil {
				metrics.CacheHits.WithLabelValues("isotherm").Inc()
				return &iso, nil
			}
		}
		metrics.CacheMisses.WithLabelValues("isotherm").Inc()
	}

	iso := &domain.Isotherm{
		Component1:  m.Component1.ID,
		Component2:  m.Component2.ID,
		Temperature: tC,
	}
	for _, x1 := range IsothermGrid(n) {
		r, err := s.solver.BubblePoint(m, tC, x1)
		if err != nil {
			s.fail(ctx, err)
			return nil, err
		}
		iso.PSat1, iso.PSat2 = r.PSat1, r.PSat2
		iso.Points = append(iso.Points, PointOf(r))
	}
	metrics.IsothermPoints.Observe(float64(len(iso.Points)))

	if s.cache != nil {
		if data, err := json.Marshal(iso); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, s.cacheTTL)
		}
	}

	if err := s.PublishIsotherm(ctx, iso); err != nil {
		logging.FromContext(ctx).Warn("publish isotherm failed", "error", err)
	}

	return iso, nil
}

// PublishIsotherm sends a finished isotherm to the broker, if one is configured.
func (s *BubblePointService) PublishIsotherm(ctx context.Context, iso *domain.Isotherm) error {
	if s.publisher == nil {
		return nil
	}
	if err := s.publisher.PublishIsotherm(ctx, iso); err != nil {
		metrics.ResultsPublished.WithLabelValues("isotherm", "error").Inc()
		return err
	}
	metrics.ResultsPublished.WithLabelValues("isotherm", "ok").Inc()
	return nil
}

// PointOf reduces a full result to a P-x diagram sample.
func PointOf(r *domain.EquilibriumResult) domain.IsothermPoint {
	return domain.IsothermPoint{X1: r.X1, Y1: r.Y1, PMin: r.PMin, PMax: r.PMax, PVap: r.PVap}
}
