package software

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

type SoftwarePlatformRepo interface {
	Create(dbc dbctx.Context, rows ...*types.SoftwarePlatform) error
	GetByID(dbc dbctx.Context, id uuid.UUID, preloads ...string) (*types.SoftwarePlatform, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID, preloads ...string) ([]*types.SoftwarePlatform, error)
	List(dbc dbctx.Context, search string, p paging.Pageable, scopes ...func(*gorm.DB) *gorm.DB) ([]*types.SoftwarePlatform, int64, error)
	ListByImplementation(dbc dbctx.Context, implID uuid.UUID, p paging.Pageable) ([]*types.SoftwarePlatform, int64, error)
	ListByComputeResource(dbc dbctx.Context, resourceID uuid.UUID, p paging.Pageable) ([]*types.SoftwarePlatform, int64, error)
	ListByCloudService(dbc dbctx.Context, serviceID uuid.UUID, p paging.Pageable) ([]*types.SoftwarePlatform, int64, error)
	Save(dbc dbctx.Context, row *types.SoftwarePlatform) error
	ReplaceComputeResources(dbc dbctx.Context, platform *types.SoftwarePlatform, rows []*types.ComputeResource) error
	ReplaceCloudServices(dbc dbctx.Context, platform *types.SoftwarePlatform, rows []*types.CloudService) error
	ClearImplementations(dbc dbctx.Context, platform *types.SoftwarePlatform) error
	DeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error
}

type softwarePlatformRepo struct {
	crud.Table[types.SoftwarePlatform]
	log *logger.Logger
}

func NewSoftwarePlatformRepo(db *gorm.DB, baseLog *logger.Logger) SoftwarePlatformRepo {
	return &softwarePlatformRepo{
		Table: crud.Table[types.SoftwarePlatform]{
			DB:            db,
			SearchColumns: []string{"software_platform.name"},
			SortColumns:   map[string]string{"name": "software_platform.name", "version": "software_platform.version", "createdAt": "software_platform.created_at"},
			DefaultOrder:  "software_platform.name ASC",
		},
		log: baseLog.With("repo", "SoftwarePlatformRepo"),
	}
}

func (r *softwarePlatformRepo) ListByImplementation(dbc dbctx.Context, implID uuid.UUID, p paging.Pageable) ([]*types.SoftwarePlatform, int64, error) {
	return r.List(dbc, "", p, crud.JoinedOn("implementation_software_platforms", "software_platform_id", "software_platform.id", "implementation_id", implID))
}

func (r *softwarePlatformRepo) ListByComputeResource(dbc dbctx.Context, resourceID uuid.UUID, p paging.Pageable) ([]*types.SoftwarePlatform, int64, error) {
	return r.List(dbc, "", p, crud.JoinedOn("software_platform_compute_resources", "software_platform_id", "software_platform.id", "compute_resource_id", resourceID))
}

func (r *softwarePlatformRepo) ListByCloudService(dbc dbctx.Context, serviceID uuid.UUID, p paging.Pageable) ([]*types.SoftwarePlatform, int64, error) {
	return r.List(dbc, "", p, crud.JoinedOn("software_platform_cloud_services", "software_platform_id", "software_platform.id", "cloud_service_id", serviceID))
}

func (r *softwarePlatformRepo) ReplaceComputeResources(dbc dbctx.Context, platform *types.SoftwarePlatform, rows []*types.ComputeResource) error {
	platform.ComputeResources = rows
	return crud.ReplaceAssociation(r.Conn(dbc), platform, "ComputeResources", rows)
}

func (r *softwarePlatformRepo) ReplaceCloudServices(dbc dbctx.Context, platform *types.SoftwarePlatform, rows []*types.CloudService) error {
	platform.CloudServices = rows
	return crud.ReplaceAssociation(r.Conn(dbc), platform, "CloudServices", rows)
}

func (r *softwarePlatformRepo) ClearImplementations(dbc dbctx.Context, platform *types.SoftwarePlatform) error {
	platform.Implementations = nil
	return crud.ReplaceAssociation[types.SoftwarePlatform, types.Implementation](r.Conn(dbc), platform, "Implementations", nil)
}

type SdkRepo interface {
	Create(dbc dbctx.Context, rows ...*types.Sdk) error
	GetByID(dbc dbctx.Context, id uuid.UUID, preloads ...string) (*types.Sdk, error)
	GetByName(dbc dbctx.Context, name string) (*types.Sdk, error)
	List(dbc dbctx.Context, search string, p paging.Pageable, scopes ...func(*gorm.DB) *gorm.DB) ([]*types.Sdk, int64, error)
	Save(dbc dbctx.Context, row *types.Sdk) error
	DeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error
}

type sdkRepo struct {
	crud.Table[types.Sdk]
	log *logger.Logger
}

func NewSdkRepo(db *gorm.DB, baseLog *logger.Logger) SdkRepo {
	return &sdkRepo{
		Table: crud.Table[types.Sdk]{
			DB:            db,
			SearchColumns: []string{"sdk.name"},
			SortColumns:   map[string]string{"name": "sdk.name"},
			DefaultOrder:  "sdk.name ASC",
		},
		log: baseLog.With("repo", "SdkRepo"),
	}
}

func (r *sdkRepo) GetByName(dbc dbctx.Context, name string) (*types.Sdk, error) {
	var row types.Sdk
	err := r.Conn(dbc).Where("name = ?", name).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

type TagRepo interface {
	Create(dbc dbctx.Context, rows ...*types.Tag) error
	GetByID(dbc dbctx.Context, id uuid.UUID, preloads ...string) (*types.Tag, error)
	GetByName(dbc dbctx.Context, name string) (*types.Tag, error)
	List(dbc dbctx.Context, search string, p paging.Pageable, scopes ...func(*gorm.DB) *gorm.DB) ([]*types.Tag, int64, error)
	Save(dbc dbctx.Context, row *types.Tag) error
	ClearImplementations(dbc dbctx.Context, tag *types.Tag) error
	DeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error
}

type tagRepo struct {
	crud.Table[types.Tag]
	log *logger.Logger
}

func NewTagRepo(db *gorm.DB, baseLog *logger.Logger) TagRepo {
	return &tagRepo{
		Table: crud.Table[types.Tag]{
			DB:            db,
			SearchColumns: []string{"tag.name", "tag.description"},
			SortColumns:   map[string]string{"name": "tag.name"},
			DefaultOrder:  "tag.name ASC",
		},
		log: baseLog.With("repo", "TagRepo"),
	}
}

func (r *tagRepo) GetByName(dbc dbctx.Context, name string) (*types.Tag, error) {
	var row types.Tag
	err := r.Conn(dbc).Where("name = ?", name).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *tagRepo) ClearImplementations(dbc dbctx.Context, tag *types.Tag) error {
	tag.Implementations = nil
	return crud.ReplaceAssociation[types.Tag, types.Implementation](r.Conn(dbc), tag, "Implementations", nil)
}
