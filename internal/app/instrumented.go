package app

import (
	"context"
	"time"

	"github.com/google/uuid"

	types "github.com/quantumatlas/atlas-backend/internal/domain"
	"github.com/quantumatlas/atlas-backend/internal/observability"
	"github.com/quantumatlas/atlas-backend/internal/platform/analyzer"
	"github.com/quantumatlas/atlas-backend/internal/platform/rediscache"
	"github.com/quantumatlas/atlas-backend/internal/services"
)

type instrumentedAnalyzer struct {
	inner   analyzer.Control
	metrics *observability.Metrics
}

func instrumentAnalyzer(inner analyzer.Control, m *observability.Metrics) analyzer.Control {
	if inner == nil || m == nil {
		return inner
	}
	return &instrumentedAnalyzer{inner: inner, metrics: m}
}

func (a *instrumentedAnalyzer) Execute(ctx context.Context, impl *types.Implementation, params map[string]string) (map[string]string, error) {
	start := time.Now()
	out, err := a.inner.Execute(ctx, impl, params)
	a.metrics.ObserveAnalyzer(err, time.Since(start))
	return out, err
}

type instrumentedImageCache struct {
	rediscache.ImageCache
	metrics *observability.Metrics
}

func instrumentImageCache(inner rediscache.ImageCache, m *observability.Metrics) rediscache.ImageCache {
	if inner == nil || m == nil {
		return inner
	}
	return &instrumentedImageCache{ImageCache: inner, metrics: m}
}

func (c *instrumentedImageCache) Get(ctx context.Context, id uuid.UUID) (*rediscache.CachedImage, bool, error) {
	img, ok, err := c.ImageCache.Get(ctx, id)
	if err == nil {
		c.metrics.ObserveImageCache(ok)
	}
	return img, ok, err
}

type instrumentedSketches struct {
	services.SketchService
	metrics *observability.Metrics
}

func instrumentSketches(inner services.SketchService, m *observability.Metrics) services.SketchService {
	if m == nil {
		return inner
	}
	return &instrumentedSketches{SketchService: inner, metrics: m}
}

func (s *instrumentedSketches) AddSketchToAlgorithm(ctx context.Context, algoID uuid.UUID, upload services.SketchUpload) (*types.Sketch, error) {
	sketch, err := s.SketchService.AddSketchToAlgorithm(ctx, algoID, upload)
	if err == nil {
		s.metrics.ObserveSketchUpload(len(upload.Data))
	}
	return sketch, err
}
