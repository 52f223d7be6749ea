package catalog

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quantumatlas/atlas-backend/internal/data/repos/crud"
	types "github.com/quantumatlas/atlas-backend/internal/domain"
	"github.com/quantumatlas/atlas-backend/internal/pkg/dbctx"
	"github.com/quantumatlas/atlas-backend/internal/platform/logger"
)

type AlgorithmRelationRepo interface {
	Create(dbc dbctx.Context, rows ...*types.AlgorithmRelation) error
	GetByID(dbc dbctx.Context, id uuid.UUID, preloads ...string) (*types.AlgorithmRelation, error)
	ListByAlgorithm(dbc dbctx.Context, algoID uuid.UUID) ([]*types.AlgorithmRelation, error)
	CountByType(dbc dbctx.Context, typeID uuid.UUID) (int64, error)
	Save(dbc dbctx.Context, row *types.AlgorithmRelation) error
	DeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error
	DeleteByAlgorithm(dbc dbctx.Context, algoID uuid.UUID) error
}

type algorithmRelationRepo struct {
	crud.Table[types.AlgorithmRelation]
	log *logger.Logger
}

func NewAlgorithmRelationRepo(db *gorm.DB, baseLog *logger.Logger) AlgorithmRelationRepo {
	return &algorithmRelationRepo{
		Table: crud.Table[types.AlgorithmRelation]{DB: db, DefaultOrder: "created_at ASC"},
		log:   baseLog.With("repo", "AlgorithmRelationRepo"),
	}
}

// ListByAlgorithm returns relations in both directions with their type loaded.
func (r *algorithmRelationRepo) ListByAlgorithm(dbc dbctx.Context, algoID uuid.UUID) ([]*types.AlgorithmRelation, error) {
	out := []*types.AlgorithmRelation{}
	if algoID == uuid.Nil {
		return out, nil
	}
	if err := r.Conn(dbc).
		Preload("AlgorithmRelationType").
		Where("source_algorithm_id = ? OR target_algorithm_id = ?", algoID, algoID).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *algorithmRelationRepo) CountByType(dbc dbctx.Context, typeID uuid.UUID) (int64, error) {
	return r.CountWhere(dbc, "algorithm_relation_type_id", typeID)
}

func (r *algorithmRelationRepo) DeleteByAlgorithm(dbc dbctx.Context, algoID uuid.UUID) error {
	return r.Conn(dbc).
		Where("source_algorithm_id = ? OR target_algorithm_id = ?", algoID, algoID).
		Delete(&types.AlgorithmRelation{}).Error
}

type PatternRelationRepo interface {
	Create(dbc dbctx.Context, rows ...*types.PatternRelation) error
	GetByID(dbc dbctx.Context, id uuid.UUID, preloads ...string) (*types.PatternRelation, error)
	ListByAlgorithm(dbc dbctx.Context, algoID uuid.UUID) ([]*types.PatternRelation, error)
	CountByType(dbc dbctx.Context, typeID uuid.UUID) (int64, error)
	Save(dbc dbctx.Context, row *types.PatternRelation) error
	DeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error
	DeleteByAlgorithm(dbc dbctx.Context, algoID uuid.UUID) error
}

type patternRelationRepo struct {
	crud.Table[types.PatternRelation]
	log *logger.Logger
}

func NewPatternRelationRepo(db *gorm.DB, baseLog *logger.Logger) PatternRelationRepo {
	return &patternRelationRepo{
		Table: crud.Table[types.PatternRelation]{DB: db, DefaultOrder: "created_at ASC"},
		log:   baseLog.With("repo", "PatternRelationRepo"),
	}
}

func (r *patternRelationRepo) ListByAlgorithm(dbc dbctx.Context, algoID uuid.UUID) ([]*types.PatternRelation, error) {
	out := []*types.PatternRelation{}
	if algoID == uuid.Nil {
		return out, nil
	}
	if err := r.Conn(dbc).
		Preload("PatternRelationType").
		Where("algorithm_id = ?", algoID).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *patternRelationRepo) CountByType(dbc dbctx.Context, typeID uuid.UUID) (int64, error) {
	return r.CountWhere(dbc, "pattern_relation_type_id", typeID)
}

func (r *patternRelationRepo) DeleteByAlgorithm(dbc dbctx.Context, algoID uuid.UUID) error {
	return r.DeleteWhere(dbc, "algorithm_id", algoID)
}
