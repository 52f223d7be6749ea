package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/quantumatlas/atlas-backend/internal/data/repos"
	types "github.com/quantumatlas/atlas-backend/internal/domain"
	"github.com/quantumatlas/atlas-backend/internal/pkg/dbctx"
	"github.com/quantumatlas/atlas-backend/internal/pkg/paging"
	"github.com/quantumatlas/atlas-backend/internal/platform/logger"
	"github.com/quantumatlas/atlas-backend/internal/platform/rediscache"
)

// Cascade removes the rows owned by algorithms and implementations. Algorithm,
// implementation and sketch deletes share it so each runs inside the caller's
// transaction.
type Cascade struct {
	log             *logger.Logger
	implementations repos.ImplementationRepo
	properties      repos.ComputeResourcePropertyRepo
	sketches        repos.SketchRepo
	images          repos.ImageRepo
	imageCache      rediscache.ImageCache
}

func NewCascade(baseLog *logger.Logger, implementations repos.ImplementationRepo, properties repos.ComputeResourcePropertyRepo, sketches repos.SketchRepo, images repos.ImageRepo, imageCache rediscache.ImageCache) *Cascade {
	if imageCache == nil {
		imageCache = rediscache.NewNopImageCache()
	}
	return &Cascade{
		log:             baseLog.With("service", "Cascade"),
		implementations: implementations,
		properties:      properties,
		sketches:        sketches,
		images:          images,
		imageCache:      imageCache,
	}
}

func (c *Cascade) deleteImplementation(dbc dbctx.Context, impl *types.Implementation) error {
	if err := c.implementations.ReplaceTags(dbc, impl, nil); err != nil {
		return err
	}
	if err := c.implementations.ReplaceSoftwarePlatforms(dbc, impl, nil); err != nil {
		return err
	}
	if err := c.properties.DeleteByOwner(dbc, types.PropertyOwner{Kind: types.OwnerImplementation, ID: impl.ID}); err != nil {
		return err
	}
	return c.implementations.DeleteByIDs(dbc, []uuid.UUID{impl.ID})
}

// deleteSketches removes sketches with their images and returns the ids whose
// cached bytes must be evicted once the transaction commits.
func (c *Cascade) deleteSketches(dbc dbctx.Context, sketches []*types.Sketch) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(sketches))
	for _, s := range sketches {
		ids = append(ids, s.ID)
	}
	if err := c.images.DeleteByIDs(dbc, ids); err != nil {
		return nil, err
	}
	if err := c.sketches.DeleteByIDs(dbc, ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// deleteAlgorithmOwned removes implementations, sketches and properties owned by algoID.
func (c *Cascade) deleteAlgorithmOwned(dbc dbctx.Context, algoID uuid.UUID) ([]uuid.UUID, error) {
	impls, _, err := c.implementations.ListByAlgorithm(dbc, algoID, paging.Unpaged())
	if err != nil {
		return nil, err
	}
	for _, impl := range impls {
		if err := c.deleteImplementation(dbc, impl); err != nil {
			return nil, err
		}
	}
	if err := c.properties.DeleteByOwner(dbc, types.PropertyOwner{Kind: types.OwnerAlgorithm, ID: algoID}); err != nil {
		return nil, err
	}
	sketches, err := c.sketches.ListByAlgorithm(dbc, algoID)
	if err != nil {
		return nil, err
	}
	return c.deleteSketches(dbc, sketches)
}

func (c *Cascade) evictImages(ctx context.Context, ids []uuid.UUID) {
	for _, id := range ids {
		if err := c.imageCache.Delete(ctx, id); err != nil {
			c.log.Warn("image cache eviction failed", "image_id", id, "error", err)
		}
	}
}
