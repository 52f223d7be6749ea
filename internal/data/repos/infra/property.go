package infra

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quantumatlas/atlas-backend/internal/data/repos/catalog"
	"github.com/quantumatlas/atlas-backend/internal/data/repos/crud"
	types "github.com/quantumatlas/atlas-backend/internal/domain"
	"github.com/quantumatlas/atlas-backend/internal/pkg/dbctx"
	"github.com/quantumatlas/atlas-backend/internal/pkg/paging"
	"github.com/quantumatlas/atlas-backend/internal/platform/logger"
)

type ComputeResourcePropertyTypeRepo = catalog.NamedTypeRepo[types.ComputeResourcePropertyType]

func NewComputeResourcePropertyTypeRepo(db *gorm.DB, baseLog *logger.Logger) ComputeResourcePropertyTypeRepo {
	return catalog.NewNamedTypeRepo[types.ComputeResourcePropertyType](db, "compute_resource_property_type", baseLog.With("repo", "ComputeResourcePropertyTypeRepo"))
}

type ComputeResourcePropertyRepo interface {
	Create(dbc dbctx.Context, rows ...*types.ComputeResourceProperty) error
	GetByID(dbc dbctx.Context, id uuid.UUID, preloads ...string) (*types.ComputeResourceProperty, error)
	ListByOwner(dbc dbctx.Context, owner types.PropertyOwner, p paging.Pageable) ([]*types.ComputeResourceProperty, int64, error)
	CountByType(dbc dbctx.Context, typeID uuid.UUID) (int64, error)
	Save(dbc dbctx.Context, row *types.ComputeResourceProperty) error
	DeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error
	DeleteByOwner(dbc dbctx.Context, owner types.PropertyOwner) error
}

type computeResourcePropertyRepo struct {
	crud.Table[types.ComputeResourceProperty]
	log *logger.Logger
}

func NewComputeResourcePropertyRepo(db *gorm.DB, baseLog *logger.Logger) ComputeResourcePropertyRepo {
	return &computeResourcePropertyRepo{
		Table: crud.Table[types.ComputeResourceProperty]{
			DB:           db,
			SortColumns:  map[string]string{"value": "compute_resource_property.value", "createdAt": "compute_resource_property.created_at"},
			DefaultOrder: "compute_resource_property.created_at ASC",
			Preloads:     []string{"Type"},
		},
		log: baseLog.With("repo", "ComputeResourcePropertyRepo"),
	}
}

func (r *computeResourcePropertyRepo) ListByOwner(dbc dbctx.Context, owner types.PropertyOwner, p paging.Pageable) ([]*types.ComputeResourceProperty, int64, error) {
	return r.List(dbc, "", p, func(q *gorm.DB) *gorm.DB {
		return q.Where(owner.Column()+" = ?", owner.ID)
	})
}

func (r *computeResourcePropertyRepo) CountByType(dbc dbctx.Context, typeID uuid.UUID) (int64, error) {
	return r.CountWhere(dbc, "type_id", typeID)
}

func (r *computeResourcePropertyRepo) DeleteByOwner(dbc dbctx.Context, owner types.PropertyOwner) error {
	return r.DeleteWhere(dbc, owner.Column(), owner.ID)
}
