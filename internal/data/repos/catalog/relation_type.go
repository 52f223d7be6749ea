package catalog

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quantumatlas/atlas-backend/internal/data/repos/crud"
	types "github.com/quantumatlas/atlas-backend/internal/domain"
	"github.com/quantumatlas/atlas-backend/internal/pkg/dbctx"
	"github.com/quantumatlas/atlas-backend/internal/pkg/paging"
	"github.com/quantumatlas/atlas-backend/internal/platform/logger"
)

// NamedTypeRepo covers the type tables that other rows reference by id and that
// clients look up by name.
type NamedTypeRepo[T any] interface {
	Create(dbc dbctx.Context, rows ...*T) error
	GetByID(dbc dbctx.Context, id uuid.UUID, preloads ...string) (*T, error)
	GetByName(dbc dbctx.Context, name string) (*T, error)
	List(dbc dbctx.Context, search string, p paging.Pageable, scopes ...func(*gorm.DB) *gorm.DB) ([]*T, int64, error)
	Save(dbc dbctx.Context, row *T) error
	DeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error
}

type AlgorithmRelationTypeRepo = NamedTypeRepo[types.AlgorithmRelationType]
type PatternRelationTypeRepo = NamedTypeRepo[types.PatternRelationType]

type namedTypeRepo[T any] struct {
	crud.Table[T]
	log *logger.Logger
}

func NewNamedTypeRepo[T any](db *gorm.DB, table string, log *logger.Logger) NamedTypeRepo[T] {
	return &namedTypeRepo[T]{
		Table: crud.Table[T]{
			DB:            db,
			SearchColumns: []string{table + ".name"},
			SortColumns:   map[string]string{"name": table + ".name", "createdAt": table + ".created_at"},
			DefaultOrder:  table + ".name ASC",
		},
		log: log,
	}
}

func NewAlgorithmRelationTypeRepo(db *gorm.DB, baseLog *logger.Logger) AlgorithmRelationTypeRepo {
	return NewNamedTypeRepo[types.AlgorithmRelationType](db, "algorithm_relation_type", baseLog.With("repo", "AlgorithmRelationTypeRepo"))
}

func NewPatternRelationTypeRepo(db *gorm.DB, baseLog *logger.Logger) PatternRelationTypeRepo {
	return NewNamedTypeRepo[types.PatternRelationType](db, "pattern_relation_type", baseLog.With("repo", "PatternRelationTypeRepo"))
}

// GetByName is an exact, case-sensitive match. It returns nil when nothing matches.
func (r *namedTypeRepo[T]) GetByName(dbc dbctx.Context, name string) (*T, error) {
	var row T
	err := r.Conn(dbc).Where("name = ?", name).Order("created_at ASC").First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}
