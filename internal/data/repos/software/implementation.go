package software

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quantumatlas/atlas-backend/internal/data/repos/crud"
	types "github.com/quantumatlas/atlas-backend/internal/domain"
	"github.com/quantumatlas/atlas-backend/internal/pkg/dbctx"
	"github.com/quantumatlas/atlas-backend/internal/pkg/paging"
	"github.com/quantumatlas/atlas-backend/internal/platform/logger"
)

type ImplementationRepo interface {
	Create(dbc dbctx.Context, rows ...*types.Implementation) error
	GetByID(dbc dbctx.Context, id uuid.UUID, preloads ...string) (*types.Implementation, error)
	List(dbc dbctx.Context, search string, p paging.Pageable, scopes ...func(*gorm.DB) *gorm.DB) ([]*types.Implementation, int64, error)
	ListByAlgorithm(dbc dbctx.Context, algoID uuid.UUID, p paging.Pageable) ([]*types.Implementation, int64, error)
	ListBySoftwarePlatform(dbc dbctx.Context, platformID uuid.UUID, p paging.Pageable) ([]*types.Implementation, int64, error)
	ListByTag(dbc dbctx.Context, tagID uuid.UUID, p paging.Pageable) ([]*types.Implementation, int64, error)
	CountBySdk(dbc dbctx.Context, sdkID uuid.UUID) (int64, error)
	Save(dbc dbctx.Context, row *types.Implementation) error
	ReplaceTags(dbc dbctx.Context, impl *types.Implementation, tags []*types.Tag) error
	ReplaceSoftwarePlatforms(dbc dbctx.Context, impl *types.Implementation, rows []*types.SoftwarePlatform) error
	DeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error
}

type implementationRepo struct {
	crud.Table[types.Implementation]
	log *logger.Logger
}

func NewImplementationRepo(db *gorm.DB, baseLog *logger.Logger) ImplementationRepo {
	return &implementationRepo{
		Table: crud.Table[types.Implementation]{
			DB:            db,
			SearchColumns: []string{"implementation.name"},
			SortColumns: map[string]string{
				"name":                "implementation.name",
				"programmingLanguage": "implementation.programming_language",
				"createdAt":           "implementation.created_at",
			},
			DefaultOrder: "implementation.name ASC",
		},
		log: baseLog.With("repo", "ImplementationRepo"),
	}
}

func (r *implementationRepo) ListByAlgorithm(dbc dbctx.Context, algoID uuid.UUID, p paging.Pageable) ([]*types.Implementation, int64, error) {
	return r.List(dbc, "", p, func(q *gorm.DB) *gorm.DB {
		return q.Where("implementation.algorithm_id = ?", algoID)
	})
}

func (r *implementationRepo) ListBySoftwarePlatform(dbc dbctx.Context, platformID uuid.UUID, p paging.Pageable) ([]*types.Implementation, int64, error) {
	return r.List(dbc, "", p, crud.JoinedOn("implementation_software_platforms", "implementation_id", "implementation.id", "software_platform_id", platformID))
}

func (r *implementationRepo) ListByTag(dbc dbctx.Context, tagID uuid.UUID, p paging.Pageable) ([]*types.Implementation, int64, error) {
	return r.List(dbc, "", p, crud.JoinedOn("implementation_tags", "implementation_id", "implementation.id", "tag_id", tagID))
}

func (r *implementationRepo) CountBySdk(dbc dbctx.Context, sdkID uuid.UUID) (int64, error) {
	return r.CountWhere(dbc, "sdk_id", sdkID)
}

func (r *implementationRepo) ReplaceTags(dbc dbctx.Context, impl *types.Implementation, tags []*types.Tag) error {
	impl.Tags = tags
	return crud.ReplaceAssociation(r.Conn(dbc), impl, "Tags", tags)
}

func (r *implementationRepo) ReplaceSoftwarePlatforms(dbc dbctx.Context, impl *types.Implementation, rows []*types.SoftwarePlatform) error {
	impl.SoftwarePlatforms = rows
	return crud.ReplaceAssociation(r.Conn(dbc), impl, "SoftwarePlatforms", rows)
}
