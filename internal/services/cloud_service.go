package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quantumatlas/atlas-backend/internal/data/repos"
	types "github.com/quantumatlas/atlas-backend/internal/domain"
	"github.com/quantumatlas/atlas-backend/internal/pkg/dbctx"
	"github.com/quantumatlas/atlas-backend/internal/pkg/paging"
	"github.com/quantumatlas/atlas-backend/internal/platform/logger"
)

type CloudServiceService interface {
	Save(ctx context.Context, svc *types.CloudService) (*types.CloudService, error)
	// CreateOrUpdate inserts svc when it has no id and overwrites the stored row otherwise.
	CreateOrUpdate(ctx context.Context, svc *types.CloudService) (*types.CloudService, error)
	CreateOrUpdateAll(ctx context.Context, svcs []*types.CloudService) ([]*types.CloudService, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindAll(ctx context.Context, p paging.Pageable, search string) (paging.Page[*types.CloudService], error)
	FindByID(ctx context.Context, id uuid.UUID) (*types.CloudService, error)

	FindComputeResources(ctx context.Context, id uuid.UUID, p paging.Pageable) (paging.Page[*types.ComputeResource], error)
	AddComputeResourceReference(ctx context.Context, id, resourceID uuid.UUID) (*types.ComputeResource, error)
	DeleteComputeResourceReference(ctx context.Context, id, resourceID uuid.UUID) error
}

type cloudServiceService struct {
	db               *gorm.DB
	log              *logger.Logger
	cloudServices    repos.CloudServiceRepo
	providers        repos.ProviderRepo
	computeResources repos.ComputeResourceRepo
}

func NewCloudServiceService(db *gorm.DB, baseLog *logger.Logger, cloudServices repos.CloudServiceRepo, providers repos.ProviderRepo, computeResources repos.ComputeResourceRepo) CloudServiceService {
	return &cloudServiceService{
		db:               db,
		log:              baseLog.With("service", "CloudServiceService"),
		cloudServices:    cloudServices,
		providers:        providers,
		computeResources: computeResources,
	}
}

func (s *cloudServiceService) Save(ctx context.Context, svc *types.CloudService) (*types.CloudService, error) {
	svc.ID = uuid.Nil
	return s.CreateOrUpdate(ctx, svc)
}

func (s *cloudServiceService) CreateOrUpdate(ctx context.Context, svc *types.CloudService) (*types.CloudService, error) {
	var out *types.CloudService
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		out, err = s.createOrUpdate(dbctx.Context{Ctx: ctx, Tx: tx}, svc)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *cloudServiceService) CreateOrUpdateAll(ctx context.Context, svcs []*types.CloudService) ([]*types.CloudService, error) {
	out := make([]*types.CloudService, 0, len(svcs))
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		for _, svc := range svcs {
			saved, err := s.createOrUpdate(dbc, svc)
			if err != nil {
				return err
			}
			out = append(out, saved)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *cloudServiceService) createOrUpdate(dbc dbctx.Context, svc *types.CloudService) (*types.CloudService, error) {
	if err := requireName(&svc.Name); err != nil {
		return nil, err
	}
	if svc.ProviderID != nil && *svc.ProviderID == uuid.Nil {
		svc.ProviderID = nil
	}
	if svc.ProviderID != nil {
		if _, err := found(s.providers.GetByID(dbc, *svc.ProviderID))("provider", *svc.ProviderID); err != nil {
			return nil, err
		}
	}
	resources, err := s.resolveResources(dbc, svc.ComputeResources)
	if err != nil {
		return nil, err
	}

	target := svc
	if svc.ID == uuid.Nil {
		if err := s.cloudServices.Create(dbc, svc); err != nil {
			return nil, err
		}
	} else {
		existing, err := found(s.cloudServices.GetByID(dbc, svc.ID))("cloud service", svc.ID)
		if err != nil {
			return nil, err
		}
		existing.Name = svc.Name
		existing.ProviderID = svc.ProviderID
		existing.URL = svc.URL
		existing.CostModel = svc.CostModel
		existing.Description = svc.Description
		if err := s.cloudServices.Save(dbc, existing); err != nil {
			return nil, err
		}
		target = existing
	}
	if err := s.cloudServices.ReplaceComputeResources(dbc, target, resources); err != nil {
		return nil, err
	}
	return target, nil
}

// resolveResources loads the stored rows for the given compute resources; any unknown id fails.
func (s *cloudServiceService) resolveResources(dbc dbctx.Context, in []*types.ComputeResource) ([]*types.ComputeResource, error) {
	if len(in) == 0 {
		return nil, nil
	}
	ids := make([]uuid.UUID, 0, len(in))
	for _, r := range in {
		ids = append(ids, r.ID)
	}
	rows, err := s.computeResources.GetByIDs(dbc, ids)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if containsRef(rows, id, computeResourceIDOf) == nil {
			return nil, notFound("compute resource", id)
		}
	}
	return rows, nil
}

func (s *cloudServiceService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		svc, err := found(s.cloudServices.GetByID(dbc, id))("cloud service", id)
		if err != nil {
			return err
		}
		if err := s.cloudServices.ReplaceComputeResources(dbc, svc, nil); err != nil {
			return err
		}
		if err := s.cloudServices.UnlinkSoftwarePlatforms(dbc, id); err != nil {
			return err
		}
		return s.cloudServices.DeleteByIDs(dbc, []uuid.UUID{id})
	})
}

func (s *cloudServiceService) FindAll(ctx context.Context, p paging.Pageable, search string) (paging.Page[*types.CloudService], error) {
	rows, total, err := s.cloudServices.List(readCtx(ctx), search, p)
	return page(rows, total, err, p)
}

func (s *cloudServiceService) FindByID(ctx context.Context, id uuid.UUID) (*types.CloudService, error) {
	return found(s.cloudServices.GetByID(readCtx(ctx), id))("cloud service", id)
}

func (s *cloudServiceService) FindComputeResources(ctx context.Context, id uuid.UUID, p paging.Pageable) (paging.Page[*types.ComputeResource], error) {
	if _, err := s.FindByID(ctx, id); err != nil {
		return paging.Page[*types.ComputeResource]{}, err
	}
	rows, total, err := s.computeResources.ListByCloudService(readCtx(ctx), id, p)
	return page(rows, total, err, p)
}

func (s *cloudServiceService) AddComputeResourceReference(ctx context.Context, id, resourceID uuid.UUID) (*types.ComputeResource, error) {
	var out *types.ComputeResource
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		svc, err := found(s.cloudServices.GetByID(dbc, id, "ComputeResources"))("cloud service", id)
		if err != nil {
			return err
		}
		resource, err := found(s.computeResources.GetByID(dbc, resourceID))("compute resource", resourceID)
		if err != nil {
			return err
		}
		out = resource
		next, changed := withRef(svc.ComputeResources, resource, computeResourceIDOf)
		if !changed {
			return nil
		}
		return s.cloudServices.ReplaceComputeResources(dbc, svc, next)
	})
	return out, err
}

func (s *cloudServiceService) DeleteComputeResourceReference(ctx context.Context, id, resourceID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		svc, err := found(s.cloudServices.GetByID(dbc, id, "ComputeResources"))("cloud service", id)
		if err != nil {
			return err
		}
		next, changed := withoutRef(svc.ComputeResources, resourceID, computeResourceIDOf)
		if !changed {
			return nil
		}
		return s.cloudServices.ReplaceComputeResources(dbc, svc, next)
	})
}
