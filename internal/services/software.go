package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quantumatlas/atlas-backend/internal/data/repos"
	types "github.com/quantumatlas/atlas-backend/internal/domain"
	"github.com/quantumatlas/atlas-backend/internal/pkg/dbctx"
	"github.com/quantumatlas/atlas-backend/internal/pkg/paging"
	"github.com/quantumatlas/atlas-backend/internal/platform/logger"
)

type SdkService interface {
	Save(ctx context.Context, sdk *types.Sdk) (*types.Sdk, error)
	Update(ctx context.Context, id uuid.UUID, sdk *types.Sdk) (*types.Sdk, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindAll(ctx context.Context, p paging.Pageable, search string) (paging.Page[*types.Sdk], error)
	FindByID(ctx context.Context, id uuid.UUID) (*types.Sdk, error)
	FindByName(ctx context.Context, name string) (*types.Sdk, error)
}

type sdkService struct {
	db              *gorm.DB
	log             *logger.Logger
	sdks            repos.SdkRepo
	implementations repos.ImplementationRepo
}

func NewSdkService(db *gorm.DB, baseLog *logger.Logger, sdks repos.SdkRepo, implementations repos.ImplementationRepo) SdkService {
	return &sdkService{db: db, log: baseLog.With("service", "SdkService"), sdks: sdks, implementations: implementations}
}

// checkName rejects empty names and names already taken by another sdk.
func (s *sdkService) checkName(dbc dbctx.Context, self uuid.UUID, sdk *types.Sdk) error {
	if err := requireName(&sdk.Name); err != nil {
		return err
	}
	other, err := s.sdks.GetByName(dbc, sdk.Name)
	if err != nil {
		return err
	}
	if other != nil && other.ID != self {
		return duplicate("sdk", sdk.Name)
	}
	return nil
}

func (s *sdkService) Save(ctx context.Context, sdk *types.Sdk) (*types.Sdk, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if err := s.checkName(dbc, uuid.Nil, sdk); err != nil {
			return err
		}
		return s.sdks.Create(dbc, sdk)
	})
	if err != nil {
		return nil, err
	}
	return sdk, nil
}

func (s *sdkService) Update(ctx context.Context, id uuid.UUID, sdk *types.Sdk) (*types.Sdk, error) {
	var out *types.Sdk
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		existing, err := found(s.sdks.GetByID(dbc, id))("sdk", id)
		if err != nil {
			return err
		}
		if err := s.checkName(dbc, id, sdk); err != nil {
			return err
		}
		existing.Name = sdk.Name
		if err := s.sdks.Save(dbc, existing); err != nil {
			return err
		}
		out = existing
		return nil
	})
	return out, err
}

func (s *sdkService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if _, err := found(s.sdks.GetByID(dbc, id))("sdk", id); err != nil {
			return err
		}
		n, err := s.implementations.CountBySdk(dbc, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return inUse("sdk", id, n, "implementations")
		}
		return s.sdks.DeleteByIDs(dbc, []uuid.UUID{id})
	})
}

func (s *sdkService) FindAll(ctx context.Context, p paging.Pageable, search string) (paging.Page[*types.Sdk], error) {
	rows, total, err := s.sdks.List(readCtx(ctx), search, p)
	return page(rows, total, err, p)
}

func (s *sdkService) FindByID(ctx context.Context, id uuid.UUID) (*types.Sdk, error) {
	return found(s.sdks.GetByID(readCtx(ctx), id))("sdk", id)
}

func (s *sdkService) FindByName(ctx context.Context, name string) (*types.Sdk, error) {
	return found(s.sdks.GetByName(readCtx(ctx), name))("sdk", name)
}

type TagService interface {
	Save(ctx context.Context, tag *types.Tag) (*types.Tag, error)
	Update(ctx context.Context, id uuid.UUID, tag *types.Tag) (*types.Tag, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindAll(ctx context.Context, p paging.Pageable, search string) (paging.Page[*types.Tag], error)
	FindByID(ctx context.Context, id uuid.UUID) (*types.Tag, error)
	FindByName(ctx context.Context, name string) (*types.Tag, error)
	FindImplementations(ctx context.Context, name string, p paging.Pageable) (paging.Page[*types.Implementation], error)
}

type tagService struct {
	db              *gorm.DB
	log             *logger.Logger
	tags            repos.TagRepo
	implementations repos.ImplementationRepo
}

func NewTagService(db *gorm.DB, baseLog *logger.Logger, tags repos.TagRepo, implementations repos.ImplementationRepo) TagService {
	return &tagService{db: db, log: baseLog.With("service", "TagService"), tags: tags, implementations: implementations}
}

func (s *tagService) checkName(dbc dbctx.Context, self uuid.UUID, tag *types.Tag) error {
	if err := requireName(&tag.Name); err != nil {
		return err
	}
	other, err := s.tags.GetByName(dbc, tag.Name)
	if err != nil {
		return err
	}
	if other != nil && other.ID != self {
		return duplicate("tag", tag.Name)
	}
	return nil
}

func (s *tagService) Save(ctx context.Context, tag *types.Tag) (*types.Tag, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if err := s.checkName(dbc, uuid.Nil, tag); err != nil {
			return err
		}
		return s.tags.Create(dbc, tag)
	})
	if err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *tagService) Update(ctx context.Context, id uuid.UUID, tag *types.Tag) (*types.Tag, error) {
	var out *types.Tag
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		existing, err := found(s.tags.GetByID(dbc, id))("tag", id)
		if err != nil {
			return err
		}
		if err := s.checkName(dbc, id, tag); err != nil {
			return err
		}
		existing.Name = tag.Name
		existing.Description = tag.Description
		if err := s.tags.Save(dbc, existing); err != nil {
			return err
		}
		out = existing
		return nil
	})
	return out, err
}

func (s *tagService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		tag, err := found(s.tags.GetByID(dbc, id))("tag", id)
		if err != nil {
			return err
		}
		if err := s.tags.ClearImplementations(dbc, tag); err != nil {
			return err
		}
		return s.tags.DeleteByIDs(dbc, []uuid.UUID{id})
	})
}

func (s *tagService) FindAll(ctx context.Context, p paging.Pageable, search string) (paging.Page[*types.Tag], error) {
	rows, total, err := s.tags.List(readCtx(ctx), search, p)
	return page(rows, total, err, p)
}

func (s *tagService) FindByID(ctx context.Context, id uuid.UUID) (*types.Tag, error) {
	return found(s.tags.GetByID(readCtx(ctx), id))("tag", id)
}

func (s *tagService) FindByName(ctx context.Context, name string) (*types.Tag, error) {
	return found(s.tags.GetByName(readCtx(ctx), strings.TrimSpace(name)))("tag", name)
}

func (s *tagService) FindImplementations(ctx context.Context, name string, p paging.Pageable) (paging.Page[*types.Implementation], error) {
	tag, err := s.FindByName(ctx, name)
	if err != nil {
		return paging.Page[*types.Implementation]{}, err
	}
	rows, total, err := s.implementations.ListByTag(readCtx(ctx), tag.ID, p)
	return page(rows, total, err, p)
}

type SoftwarePlatformService interface {
	Save(ctx context.Context, platform *types.SoftwarePlatform) (*types.SoftwarePlatform, error)
	Update(ctx context.Context, id uuid.UUID, platform *types.SoftwarePlatform) (*types.SoftwarePlatform, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindAll(ctx context.Context, p paging.Pageable, search string) (paging.Page[*types.SoftwarePlatform], error)
	FindByID(ctx context.Context, id uuid.UUID) (*types.SoftwarePlatform, error)
	FindImplementations(ctx context.Context, id uuid.UUID, p paging.Pageable) (paging.Page[*types.Implementation], error)

	FindComputeResources(ctx context.Context, id uuid.UUID, p paging.Pageable) (paging.Page[*types.ComputeResource], error)
	AddComputeResourceReference(ctx context.Context, id, resourceID uuid.UUID) (*types.ComputeResource, error)
	DeleteComputeResourceReference(ctx context.Context, id, resourceID uuid.UUID) error

	FindCloudServices(ctx context.Context, id uuid.UUID, p paging.Pageable) (paging.Page[*types.CloudService], error)
	AddCloudServiceReference(ctx context.Context, id, serviceID uuid.UUID) (*types.CloudService, error)
	DeleteCloudServiceReference(ctx context.Context, id, serviceID uuid.UUID) error
}

type softwarePlatformService struct {
	db               *gorm.DB
	log              *logger.Logger
	platforms        repos.SoftwarePlatformRepo
	implementations  repos.ImplementationRepo
	computeResources repos.ComputeResourceRepo
	cloudServices    repos.CloudServiceRepo
}

func NewSoftwarePlatformService(
	db *gorm.DB,
	baseLog *logger.Logger,
	platforms repos.SoftwarePlatformRepo,
	implementations repos.ImplementationRepo,
	computeResources repos.ComputeResourceRepo,
	cloudServices repos.CloudServiceRepo,
) SoftwarePlatformService {
	return &softwarePlatformService{
		db:               db,
		log:              baseLog.With("service", "SoftwarePlatformService"),
		platforms:        platforms,
		implementations:  implementations,
		computeResources: computeResources,
		cloudServices:    cloudServices,
	}
}

func (s *softwarePlatformService) Save(ctx context.Context, platform *types.SoftwarePlatform) (*types.SoftwarePlatform, error) {
	if err := requireName(&platform.Name); err != nil {
		return nil, err
	}
	if err := s.platforms.Create(readCtx(ctx), platform); err != nil {
		return nil, err
	}
	return platform, nil
}

func (s *softwarePlatformService) Update(ctx context.Context, id uuid.UUID, platform *types.SoftwarePlatform) (*types.SoftwarePlatform, error) {
	if err := requireName(&platform.Name); err != nil {
		return nil, err
	}
	var out *types.SoftwarePlatform
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		existing, err := found(s.platforms.GetByID(dbc, id))("software platform", id)
		if err != nil {
			return err
		}
		existing.Name = platform.Name
		existing.Link = platform.Link
		existing.License = platform.License
		existing.Version = platform.Version
		if err := s.platforms.Save(dbc, existing); err != nil {
			return err
		}
		out = existing
		return nil
	})
	return out, err
}

func (s *softwarePlatformService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		platform, err := found(s.platforms.GetByID(dbc, id))("software platform", id)
		if err != nil {
			return err
		}
		if err := s.platforms.ClearImplementations(dbc, platform); err != nil {
			return err
		}
		if err := s.platforms.ReplaceComputeResources(dbc, platform, nil); err != nil {
			return err
		}
		if err := s.platforms.ReplaceCloudServices(dbc, platform, nil); err != nil {
			return err
		}
		return s.platforms.DeleteByIDs(dbc, []uuid.UUID{id})
	})
}

func (s *softwarePlatformService) FindAll(ctx context.Context, p paging.Pageable, search string) (paging.Page[*types.SoftwarePlatform], error) {
	rows, total, err := s.platforms.List(readCtx(ctx), search, p)
	return page(rows, total, err, p)
}

func (s *softwarePlatformService) FindByID(ctx context.Context, id uuid.UUID) (*types.SoftwarePlatform, error) {
	return found(s.platforms.GetByID(readCtx(ctx), id))("software platform", id)
}

func (s *softwarePlatformService) FindImplementations(ctx context.Context, id uuid.UUID, p paging.Pageable) (paging.Page[*types.Implementation], error) {
	if _, err := s.FindByID(ctx, id); err != nil {
		return paging.Page[*types.Implementation]{}, err
	}
	rows, total, err := s.implementations.ListBySoftwarePlatform(readCtx(ctx), id, p)
	return page(rows, total, err, p)
}

func (s *softwarePlatformService) FindComputeResources(ctx context.Context, id uuid.UUID, p paging.Pageable) (paging.Page[*types.ComputeResource], error) {
	if _, err := s.FindByID(ctx, id); err != nil {
		return paging.Page[*types.ComputeResource]{}, err
	}
	rows, total, err := s.computeResources.ListBySoftwarePlatform(readCtx(ctx), id, p)
	return page(rows, total, err, p)
}

func (s *softwarePlatformService) AddComputeResourceReference(ctx context.Context, id, resourceID uuid.UUID) (*types.ComputeResource, error) {
	var out *types.ComputeResource
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		platform, err := found(s.platforms.GetByID(dbc, id, "ComputeResources"))("software platform", id)
		if err != nil {
			return err
		}
		resource, err := found(s.computeResources.GetByID(dbc, resourceID))("compute resource", resourceID)
		if err != nil {
			return err
		}
		out = resource
		next, changed := withRef(platform.ComputeResources, resource, computeResourceIDOf)
		if !changed {
			return nil
		}
		return s.platforms.ReplaceComputeResources(dbc, platform, next)
	})
	return out, err
}

func (s *softwarePlatformService) DeleteComputeResourceReference(ctx context.Context, id, resourceID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		platform, err := found(s.platforms.GetByID(dbc, id, "ComputeResources"))("software platform", id)
		if err != nil {
			return err
		}
		next, changed := withoutRef(platform.ComputeResources, resourceID, computeResourceIDOf)
		if !changed {
			return nil
		}
		return s.platforms.ReplaceComputeResources(dbc, platform, next)
	})
}

func (s *softwarePlatformService) FindCloudServices(ctx context.Context, id uuid.UUID, p paging.Pageable) (paging.Page[*types.CloudService], error) {
	if _, err := s.FindByID(ctx, id); err != nil {
		return paging.Page[*types.CloudService]{}, err
	}
	rows, total, err := s.cloudServices.ListBySoftwarePlatform(readCtx(ctx), id, p)
	return page(rows, total, err, p)
}

func (s *softwarePlatformService) AddCloudServiceReference(ctx context.Context, id, serviceID uuid.UUID) (*types.CloudService, error) {
	var out *types.CloudService
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		platform, err := found(s.platforms.GetByID(dbc, id, "CloudServices"))("software platform", id)
		if err != nil {
			return err
		}
		svc, err := found(s.cloudServices.GetByID(dbc, serviceID))("cloud service", serviceID)
		if err != nil {
			return err
		}
		out = svc
		next, changed := withRef(platform.CloudServices, svc, cloudServiceIDOf)
		if !changed {
			return nil
		}
		return s.platforms.ReplaceCloudServices(dbc, platform, next)
	})
	return out, err
}

func (s *softwarePlatformService) DeleteCloudServiceReference(ctx context.Context, id, serviceID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		platform, err := found(s.platforms.GetByID(dbc, id, "CloudServices"))("software platform", id)
		if err != nil {
			return err
		}
		next, changed := withoutRef(platform.CloudServices, serviceID, cloudServiceIDOf)
		if !changed {
			return nil
		}
		return s.platforms.ReplaceCloudServices(dbc, platform, next)
	})
}
