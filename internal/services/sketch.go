package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quantumatlas/atlas-backend/internal/data/repos"
	types "github.com/quantumatlas/atlas-backend/internal/domain"
	"github.com/quantumatlas/atlas-backend/internal/domain/media"
	"github.com/quantumatlas/atlas-backend/internal/pkg/dbctx"
	"github.com/quantumatlas/atlas-backend/internal/platform/imaging"
	"github.com/quantumatlas/atlas-backend/internal/platform/logger"
	"github.com/quantumatlas/atlas-backend/internal/platform/rediscache"
)

type SketchUpload struct {
	Data        []byte
	MimeType    string
	Description string
	// BaseURL is the public API root the image URL is derived from.
	BaseURL string
}

type SketchService interface {
	AddSketchToAlgorithm(ctx context.Context, algoID uuid.UUID, upload SketchUpload) (*types.Sketch, error)
	Update(ctx context.Context, algoID, sketchID uuid.UUID, sketch *types.Sketch) (*types.Sketch, error)
	Delete(ctx context.Context, algoID, sketchID uuid.UUID) error
	FindByAlgorithm(ctx context.Context, algoID uuid.UUID) ([]*types.Sketch, error)
	FindByID(ctx context.Context, algoID, sketchID uuid.UUID) (*types.Sketch, error)
	GetImageBySketch(ctx context.Context, algoID, sketchID uuid.UUID) (*types.Image, error)
	// GetThumbnail returns a PNG no larger than maxSide on either axis.
	GetThumbnail(ctx context.Context, algoID, sketchID uuid.UUID, maxSide int) ([]byte, error)
}

type sketchService struct {
	db         *gorm.DB
	log        *logger.Logger
	algorithms repos.AlgorithmRepo
	sketches   repos.SketchRepo
	images     repos.ImageRepo
	imageCache rediscache.ImageCache
	cascade    *Cascade
	maxPixels  int
}

func NewSketchService(
	db *gorm.DB,
	baseLog *logger.Logger,
	algorithms repos.AlgorithmRepo,
	sketches repos.SketchRepo,
	images repos.ImageRepo,
	imageCache rediscache.ImageCache,
	cascade *Cascade,
	maxPixels int,
) SketchService {
	if imageCache == nil {
		imageCache = rediscache.NewNopImageCache()
	}
	return &sketchService{
		db:         db,
		log:        baseLog.With("service", "SketchService"),
		algorithms: algorithms,
		sketches:   sketches,
		images:     images,
		imageCache: imageCache,
		cascade:    cascade,
		maxPixels:  maxPixels,
	}
}

func (s *sketchService) AddSketchToAlgorithm(ctx context.Context, algoID uuid.UUID, upload SketchUpload) (*types.Sketch, error) {
	info, err := imaging.Inspect(upload.Data, upload.MimeType, s.maxPixels)
	if err != nil {
		return nil, err
	}
	sketch := &types.Sketch{AlgorithmID: algoID, Description: upload.Description}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if _, err := found(s.algorithms.GetByID(dbc, algoID))("algorithm", algoID); err != nil {
			return err
		}
		if err := s.sketches.Create(dbc, sketch); err != nil {
			return err
		}
		sketch.ImageURL = media.ImageURLFor(upload.BaseURL, algoID, sketch.ID)
		if err := s.sketches.UpdateImageURL(dbc, sketch.ID, sketch.ImageURL); err != nil {
			return err
		}
		return s.images.Create(dbc, &types.Image{
			ID:       sketch.ID,
			Data:     upload.Data,
			MimeType: info.MimeType,
			Width:    info.Width,
			Height:   info.Height,
		})
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("sketch added",
		"algorithm_id", algoID,
		"sketch_id", sketch.ID,
		"mime_type", info.MimeType,
		"bytes", len(upload.Data),
	)
	return sketch, nil
}

func (s *sketchService) owned(dbc dbctx.Context, algoID, sketchID uuid.UUID) (*types.Sketch, error) {
	sketch, err := found(s.sketches.GetByID(dbc, sketchID))("sketch", sketchID)
	if err != nil {
		return nil, err
	}
	if sketch.AlgorithmID != algoID {
		return nil, notFound("sketch", sketchID)
	}
	return sketch, nil
}

func (s *sketchService) Update(ctx context.Context, algoID, sketchID uuid.UUID, in *types.Sketch) (*types.Sketch, error) {
	var out *types.Sketch
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		existing, err := s.owned(dbc, algoID, sketchID)
		if err != nil {
			return err
		}
		existing.Description = in.Description
		if err := s.sketches.Save(dbc, existing); err != nil {
			return err
		}
		out = existing
		return nil
	})
	return out, err
}

func (s *sketchService) Delete(ctx context.Context, algoID, sketchID uuid.UUID) error {
	var evicted []uuid.UUID
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		sketch, err := s.owned(dbc, algoID, sketchID)
		if err != nil {
			return err
		}
		evicted, err = s.cascade.deleteSketches(dbc, []*types.Sketch{sketch})
		return err
	})
	if err != nil {
		return err
	}
	s.cascade.evictImages(ctx, evicted)
	return nil
}

func (s *sketchService) FindByAlgorithm(ctx context.Context, algoID uuid.UUID) ([]*types.Sketch, error) {
	dbc := readCtx(ctx)
	if _, err := found(s.algorithms.GetByID(dbc, algoID))("algorithm", algoID); err != nil {
		return nil, err
	}
	return s.sketches.ListByAlgorithm(dbc, algoID)
}

func (s *sketchService) FindByID(ctx context.Context, algoID, sketchID uuid.UUID) (*types.Sketch, error) {
	return s.owned(readCtx(ctx), algoID, sketchID)
}

// GetImageBySketch serves from the image cache when possible and fills it on a miss.
func (s *sketchService) GetImageBySketch(ctx context.Context, algoID, sketchID uuid.UUID) (*types.Image, error) {
	dbc := readCtx(ctx)
	if _, err := s.owned(dbc, algoID, sketchID); err != nil {
		return nil, err
	}
	if cached, ok, err := s.imageCache.Get(ctx, sketchID); err != nil {
		s.log.Warn("image cache read failed", "sketch_id", sketchID, "error", err)
	} else if ok {
		return &types.Image{
			ID:       cached.ID,
			Data:     cached.Data,
			MimeType: cached.MimeType,
			Width:    cached.Width,
			Height:   cached.Height,
		}, nil
	}

	img, err := found(s.images.GetByID(dbc, sketchID))("image", sketchID)
	if err != nil {
		return nil, err
	}
	if err := s.imageCache.Set(ctx, &rediscache.CachedImage{
		ID:       img.ID,
		Data:     img.Data,
		MimeType: img.MimeType,
		Width:    img.Width,
		Height:   img.Height,
	}); err != nil {
		s.log.Warn("image cache fill failed", "sketch_id", sketchID, "error", err)
	}
	return img, nil
}

func (s *sketchService) GetThumbnail(ctx context.Context, algoID, sketchID uuid.UUID, maxSide int) ([]byte, error) {
	img, err := s.GetImageBySketch(ctx, algoID, sketchID)
	if err != nil {
		return nil, err
	}
	return imaging.Thumbnail(img.Data, maxSide, s.maxPixels)
}
