package media

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quantumatlas/atlas-backend/internal/data/repos/crud"
	types "github.com/quantumatlas/atlas-backend/internal/domain"
	"github.com/quantumatlas/atlas-backend/internal/pkg/dbctx"
	"github.com/quantumatlas/atlas-backend/internal/platform/logger"
)

type SketchRepo interface {
	Create(dbc dbctx.Context, rows ...*types.Sketch) error
	GetByID(dbc dbctx.Context, id uuid.UUID, preloads ...string) (*types.Sketch, error)
	ListByAlgorithm(dbc dbctx.Context, algoID uuid.UUID) ([]*types.Sketch, error)
	Save(dbc dbctx.Context, row *types.Sketch) error
	UpdateImageURL(dbc dbctx.Context, id uuid.UUID, url string) error
	DeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error
}

type sketchRepo struct {
	crud.Table[types.Sketch]
	log *logger.Logger
}

func NewSketchRepo(db *gorm.DB, baseLog *logger.Logger) SketchRepo {
	return &sketchRepo{
		Table: crud.Table[types.Sketch]{DB: db, DefaultOrder: "created_at ASC"},
		log:   baseLog.With("repo", "SketchRepo"),
	}
}

func (r *sketchRepo) ListByAlgorithm(dbc dbctx.Context, algoID uuid.UUID) ([]*types.Sketch, error) {
	out := []*types.Sketch{}
	if algoID == uuid.Nil {
		return out, nil
	}
	if err := r.Conn(dbc).
		Where("algorithm_id = ?", algoID).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *sketchRepo) UpdateImageURL(dbc dbctx.Context, id uuid.UUID, url string) error {
	return r.Conn(dbc).
		Model(&types.Sketch{}).
		Where("id = ?", id).
		Update("image_url", url).Error
}

type ImageRepo interface {
	Create(dbc dbctx.Context, rows ...*types.Image) error
	GetByID(dbc dbctx.Context, id uuid.UUID, preloads ...string) (*types.Image, error)
	DeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error
}

type imageRepo struct {
	crud.Table[types.Image]
	log *logger.Logger
}

func NewImageRepo(db *gorm.DB, baseLog *logger.Logger) ImageRepo {
	return &imageRepo{
		Table: crud.Table[types.Image]{DB: db},
		log:   baseLog.With("repo", "ImageRepo"),
	}
}
