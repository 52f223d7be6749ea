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

type ComputeResourceService interface {
	Save(ctx context.Context, resource *types.ComputeResource) (*types.ComputeResource, error)
	CreateOrUpdate(ctx context.Context, resource *types.ComputeResource) (*types.ComputeResource, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindAll(ctx context.Context, p paging.Pageable, search string) (paging.Page[*types.ComputeResource], error)
	FindByID(ctx context.Context, id uuid.UUID) (*types.ComputeResource, error)
	FindLinkedCloudServices(ctx context.Context, id uuid.UUID, p paging.Pageable) (paging.Page[*types.CloudService], error)
	FindLinkedSoftwarePlatforms(ctx context.Context, id uuid.UUID, p paging.Pageable) (paging.Page[*types.SoftwarePlatform], error)
}

type computeResourceService struct {
	db               *gorm.DB
	log              *logger.Logger
	computeResources repos.ComputeResourceRepo
	cloudServices    repos.CloudServiceRepo
	platforms        repos.SoftwarePlatformRepo
	properties       repos.ComputeResourcePropertyRepo
}

func NewComputeResourceService(
	db *gorm.DB,
	baseLog *logger.Logger,
	computeResources repos.ComputeResourceRepo,
	cloudServices repos.CloudServiceRepo,
	platforms repos.SoftwarePlatformRepo,
	properties repos.ComputeResourcePropertyRepo,
) ComputeResourceService {
	return &computeResourceService{
		db:               db,
		log:              baseLog.With("service", "ComputeResourceService"),
		computeResources: computeResources,
		cloudServices:    cloudServices,
		platforms:        platforms,
		properties:       properties,
	}
}

func validateComputeResource(resource *types.ComputeResource) error {
	if err := requireName(&resource.Name); err != nil {
		return err
	}
	resource.QuantumComputationModel = strings.ToUpper(strings.TrimSpace(resource.QuantumComputationModel))
	if !types.QuantumComputationModel(resource.QuantumComputationModel).Valid() {
		return invalid("unknown quantum computation model %q", resource.QuantumComputationModel)
	}
	return nil
}

func (s *computeResourceService) Save(ctx context.Context, resource *types.ComputeResource) (*types.ComputeResource, error) {
	resource.ID = uuid.Nil
	return s.CreateOrUpdate(ctx, resource)
}

func (s *computeResourceService) CreateOrUpdate(ctx context.Context, resource *types.ComputeResource) (*types.ComputeResource, error) {
	if err := validateComputeResource(resource); err != nil {
		return nil, err
	}
	if resource.ID == uuid.Nil {
		if err := s.computeResources.Create(readCtx(ctx), resource); err != nil {
			return nil, err
		}
		return resource, nil
	}
	var out *types.ComputeResource
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		existing, err := found(s.computeResources.GetByID(dbc, resource.ID))("compute resource", resource.ID)
		if err != nil {
			return err
		}
		existing.Name = resource.Name
		existing.Vendor = resource.Vendor
		existing.Technology = resource.Technology
		existing.QuantumComputationModel = resource.QuantumComputationModel
		if err := s.computeResources.Save(dbc, existing); err != nil {
			return err
		}
		out = existing
		return nil
	})
	return out, err
}

func (s *computeResourceService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		resource, err := found(s.computeResources.GetByID(dbc, id))("compute resource", id)
		if err != nil {
			return err
		}
		if err := s.properties.DeleteByOwner(dbc, types.PropertyOwner{Kind: types.OwnerComputeResource, ID: id}); err != nil {
			return err
		}
		if err := s.computeResources.ClearCloudServices(dbc, resource); err != nil {
			return err
		}
		if err := s.computeResources.UnlinkSoftwarePlatforms(dbc, id); err != nil {
			return err
		}
		return s.computeResources.DeleteByIDs(dbc, []uuid.UUID{id})
	})
	if err != nil {
		return err
	}
	s.log.Info("compute resource deleted", "compute_resource_id", id)
	return nil
}

func (s *computeResourceService) FindAll(ctx context.Context, p paging.Pageable, search string) (paging.Page[*types.ComputeResource], error) {
	rows, total, err := s.computeResources.List(readCtx(ctx), search, p)
	return page(rows, total, err, p)
}

func (s *computeResourceService) FindByID(ctx context.Context, id uuid.UUID) (*types.ComputeResource, error) {
	return found(s.computeResources.GetByID(readCtx(ctx), id))("compute resource", id)
}

func (s *computeResourceService) FindLinkedCloudServices(ctx context.Context, id uuid.UUID, p paging.Pageable) (paging.Page[*types.CloudService], error) {
	if _, err := s.FindByID(ctx, id); err != nil {
		return paging.Page[*types.CloudService]{}, err
	}
	rows, total, err := s.cloudServices.ListByComputeResource(readCtx(ctx), id, p)
	return page(rows, total, err, p)
}

func (s *computeResourceService) FindLinkedSoftwarePlatforms(ctx context.Context, id uuid.UUID, p paging.Pageable) (paging.Page[*types.SoftwarePlatform], error) {
	if _, err := s.FindByID(ctx, id); err != nil {
		return paging.Page[*types.SoftwarePlatform]{}, err
	}
	rows, total, err := s.platforms.ListByComputeResource(readCtx(ctx), id, p)
	return page(rows, total, err, p)
}
