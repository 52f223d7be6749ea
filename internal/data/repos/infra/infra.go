package infra

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quantumatlas/atlas-backend/internal/data/repos/crud"
	types "github.com/quantumatlas/atlas-backend/internal/domain"
	"github.com/quantumatlas/atlas-backend/internal/pkg/dbctx"
	"github.com/quantumatlas/atlas-backend/internal/pkg/paging"
	"github.com/quantumatlas/atlas-backend/internal/platform/logger"
)

type ProviderRepo interface {
	Create(dbc dbctx.Context, rows ...*types.Provider) error
	GetByID(dbc dbctx.Context, id uuid.UUID, preloads ...string) (*types.Provider, error)
	Exists(dbc dbctx.Context, id uuid.UUID) (bool, error)
	List(dbc dbctx.Context, search string, p paging.Pageable, scopes ...func(*gorm.DB) *gorm.DB) ([]*types.Provider, int64, error)
	Save(dbc dbctx.Context, row *types.Provider) error
	DeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error
}

type providerRepo struct {
	crud.Table[types.Provider]
	log *logger.Logger
}

func NewProviderRepo(db *gorm.DB, baseLog *logger.Logger) ProviderRepo {
	return &providerRepo{
		Table: crud.Table[types.Provider]{
			DB:            db,
			SearchColumns: []string{"provider.name"},
			SortColumns:   map[string]string{"name": "provider.name"},
			DefaultOrder:  "provider.name ASC",
		},
		log: baseLog.With("repo", "ProviderRepo"),
	}
}

type CloudServiceRepo interface {
	Create(dbc dbctx.Context, rows ...*types.CloudService) error
	GetByID(dbc dbctx.Context, id uuid.UUID, preloads ...string) (*types.CloudService, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID, preloads ...string) ([]*types.CloudService, error)
	List(dbc dbctx.Context, search string, p paging.Pageable, scopes ...func(*gorm.DB) *gorm.DB) ([]*types.CloudService, int64, error)
	ListByComputeResource(dbc dbctx.Context, resourceID uuid.UUID, p paging.Pageable) ([]*types.CloudService, int64, error)
	ListBySoftwarePlatform(dbc dbctx.Context, platformID uuid.UUID, p paging.Pageable) ([]*types.CloudService, int64, error)
	CountByProvider(dbc dbctx.Context, providerID uuid.UUID) (int64, error)
	Save(dbc dbctx.Context, row *types.CloudService) error
	ReplaceComputeResources(dbc dbctx.Context, svc *types.CloudService, rows []*types.ComputeResource) error
	UnlinkSoftwarePlatforms(dbc dbctx.Context, id uuid.UUID) error
	DeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error
}

type cloudServiceRepo struct {
	crud.Table[types.CloudService]
	log *logger.Logger
}

func NewCloudServiceRepo(db *gorm.DB, baseLog *logger.Logger) CloudServiceRepo {
	return &cloudServiceRepo{
		Table: crud.Table[types.CloudService]{
			DB:            db,
			SearchColumns: []string{"cloud_service.name"},
			SortColumns:   map[string]string{"name": "cloud_service.name", "costModel": "cloud_service.cost_model"},
			DefaultOrder:  "cloud_service.name ASC",
		},
		log: baseLog.With("repo", "CloudServiceRepo"),
	}
}

func (r *cloudServiceRepo) ListByComputeResource(dbc dbctx.Context, resourceID uuid.UUID, p paging.Pageable) ([]*types.CloudService, int64, error) {
	return r.List(dbc, "", p, crud.JoinedOn("cloud_service_compute_resources", "cloud_service_id", "cloud_service.id", "compute_resource_id", resourceID))
}

func (r *cloudServiceRepo) ListBySoftwarePlatform(dbc dbctx.Context, platformID uuid.UUID, p paging.Pageable) ([]*types.CloudService, int64, error) {
	return r.List(dbc, "", p, crud.JoinedOn("software_platform_cloud_services", "cloud_service_id", "cloud_service.id", "software_platform_id", platformID))
}

func (r *cloudServiceRepo) CountByProvider(dbc dbctx.Context, providerID uuid.UUID) (int64, error) {
	return r.CountWhere(dbc, "provider_id", providerID)
}

func (r *cloudServiceRepo) ReplaceComputeResources(dbc dbctx.Context, svc *types.CloudService, rows []*types.ComputeResource) error {
	svc.ComputeResources = rows
	return crud.ReplaceAssociation(r.Conn(dbc), svc, "ComputeResources", rows)
}

type ComputeResourceRepo interface {
	Create(dbc dbctx.Context, rows ...*types.ComputeResource) error
	GetByID(dbc dbctx.Context, id uuid.UUID, preloads ...string) (*types.ComputeResource, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID, preloads ...string) ([]*types.ComputeResource, error)
	List(dbc dbctx.Context, search string, p paging.Pageable, scopes ...func(*gorm.DB) *gorm.DB) ([]*types.ComputeResource, int64, error)
	ListByCloudService(dbc dbctx.Context, serviceID uuid.UUID, p paging.Pageable) ([]*types.ComputeResource, int64, error)
	ListBySoftwarePlatform(dbc dbctx.Context, platformID uuid.UUID, p paging.Pageable) ([]*types.ComputeResource, int64, error)
	Save(dbc dbctx.Context, row *types.ComputeResource) error
	ClearCloudServices(dbc dbctx.Context, row *types.ComputeResource) error
	UnlinkSoftwarePlatforms(dbc dbctx.Context, id uuid.UUID) error
	DeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error
}

type computeResourceRepo struct {
	crud.Table[types.ComputeResource]
	log *logger.Logger
}

func NewComputeResourceRepo(db *gorm.DB, baseLog *logger.Logger) ComputeResourceRepo {
	return &computeResourceRepo{
		Table: crud.Table[types.ComputeResource]{
			DB:            db,
			SearchColumns: []string{"compute_resource.name", "compute_resource.vendor", "compute_resource.technology"},
			SortColumns: map[string]string{
				"name":       "compute_resource.name",
				"vendor":     "compute_resource.vendor",
				"technology": "compute_resource.technology",
			},
			DefaultOrder: "compute_resource.name ASC",
		},
		log: baseLog.With("repo", "ComputeResourceRepo"),
	}
}

func (r *computeResourceRepo) ListByCloudService(dbc dbctx.Context, serviceID uuid.UUID, p paging.Pageable) ([]*types.ComputeResource, int64, error) {
	return r.List(dbc, "", p, crud.JoinedOn("cloud_service_compute_resources", "compute_resource_id", "compute_resource.id", "cloud_service_id", serviceID))
}

func (r *computeResourceRepo) ListBySoftwarePlatform(dbc dbctx.Context, platformID uuid.UUID, p paging.Pageable) ([]*types.ComputeResource, int64, error) {
	return r.List(dbc, "", p, crud.JoinedOn("software_platform_compute_resources", "compute_resource_id", "compute_resource.id", "software_platform_id", platformID))
}

func (r *computeResourceRepo) ClearCloudServices(dbc dbctx.Context, row *types.ComputeResource) error {
	row.CloudServices = nil
	return crud.ReplaceAssociation[types.ComputeResource, types.CloudService](r.Conn(dbc), row, "CloudServices", nil)
}

func (r *computeResourceRepo) UnlinkSoftwarePlatforms(dbc dbctx.Context, id uuid.UUID) error {
	return unlink(r.Conn(dbc), "software_platform_compute_resources", "compute_resource_id", id)
}

func (r *cloudServiceRepo) UnlinkSoftwarePlatforms(dbc dbctx.Context, id uuid.UUID) error {
	return unlink(r.Conn(dbc), "software_platform_cloud_services", "cloud_service_id", id)
}

// unlink drops join rows owned by the software platform side, which infra types do not reference.
func unlink(conn *gorm.DB, joinTable, column string, id uuid.UUID) error {
	return conn.Exec("DELETE FROM "+joinTable+" WHERE "+column+" = ?", id).Error
}
