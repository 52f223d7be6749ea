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

// ComputeResourcePropertyService manages the properties attached to algorithms,
// implementations and compute resources. Every call is addressed through the owner;
// a property that belongs to another owner is rejected as invalid.
type ComputeResourcePropertyService interface {
	Add(ctx context.Context, owner types.PropertyOwner, prop *types.ComputeResourceProperty) (*types.ComputeResourceProperty, error)
	Update(ctx context.Context, owner types.PropertyOwner, id uuid.UUID, prop *types.ComputeResourceProperty) (*types.ComputeResourceProperty, error)
	Delete(ctx context.Context, owner types.PropertyOwner, id uuid.UUID) error
	FindByOwner(ctx context.Context, owner types.PropertyOwner, p paging.Pageable) (paging.Page[*types.ComputeResourceProperty], error)
	FindByID(ctx context.Context, owner types.PropertyOwner, id uuid.UUID) (*types.ComputeResourceProperty, error)
}

type computeResourcePropertyService struct {
	db               *gorm.DB
	log              *logger.Logger
	properties       repos.ComputeResourcePropertyRepo
	propertyTypes    repos.ComputeResourcePropertyTypeRepo
	algorithms       repos.AlgorithmRepo
	implementations  repos.ImplementationRepo
	computeResources repos.ComputeResourceRepo
}

func NewComputeResourcePropertyService(
	db *gorm.DB,
	baseLog *logger.Logger,
	properties repos.ComputeResourcePropertyRepo,
	propertyTypes repos.ComputeResourcePropertyTypeRepo,
	algorithms repos.AlgorithmRepo,
	implementations repos.ImplementationRepo,
	computeResources repos.ComputeResourceRepo,
) ComputeResourcePropertyService {
	return &computeResourcePropertyService{
		db:               db,
		log:              baseLog.With("service", "ComputeResourcePropertyService"),
		properties:       properties,
		propertyTypes:    propertyTypes,
		algorithms:       algorithms,
		implementations:  implementations,
		computeResources: computeResources,
	}
}

func (s *computeResourcePropertyService) requireOwner(dbc dbctx.Context, owner types.PropertyOwner) error {
	var err error
	switch owner.Kind {
	case types.OwnerAlgorithm:
		_, err = found(s.algorithms.GetByID(dbc, owner.ID))("algorithm", owner.ID)
	case types.OwnerImplementation:
		_, err = found(s.implementations.GetByID(dbc, owner.ID))("implementation", owner.ID)
	case types.OwnerComputeResource:
		_, err = found(s.computeResources.GetByID(dbc, owner.ID))("compute resource", owner.ID)
	default:
		err = invalid("unknown property owner %q", owner.Kind)
	}
	return err
}

// typed resolves the property's type and checks its value against the datatype.
func (s *computeResourcePropertyService) typed(dbc dbctx.Context, prop *types.ComputeResourceProperty) (*types.ComputeResourcePropertyType, error) {
	if prop.TypeID == uuid.Nil && prop.Type != nil {
		prop.TypeID = prop.Type.ID
	}
	if prop.TypeID == uuid.Nil {
		return nil, invalid("compute resource property type is required")
	}
	typ, err := found(s.propertyTypes.GetByID(dbc, prop.TypeID))("compute resource property type", prop.TypeID)
	if err != nil {
		return nil, err
	}
	if err := typ.Datatype.Validate(prop.Value); err != nil {
		return nil, invalid("%v", err)
	}
	return typ, nil
}

func (s *computeResourcePropertyService) owned(dbc dbctx.Context, owner types.PropertyOwner, id uuid.UUID) (*types.ComputeResourceProperty, error) {
	prop, err := found(s.properties.GetByID(dbc, id, "Type"))("compute resource property", id)
	if err != nil {
		return nil, err
	}
	if !prop.OwnedBy(owner) {
		return nil, invalid("compute resource property %s does not belong to %s %s", id, owner.Kind, owner.ID)
	}
	return prop, nil
}

func (s *computeResourcePropertyService) Add(ctx context.Context, owner types.PropertyOwner, prop *types.ComputeResourceProperty) (*types.ComputeResourceProperty, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if err := s.requireOwner(dbc, owner); err != nil {
			return err
		}
		typ, err := s.typed(dbc, prop)
		if err != nil {
			return err
		}
		prop.SetOwner(owner)
		if err := s.properties.Create(dbc, prop); err != nil {
			return err
		}
		prop.Type = typ
		return nil
	})
	if err != nil {
		return nil, err
	}
	return prop, nil
}

func (s *computeResourcePropertyService) Update(ctx context.Context, owner types.PropertyOwner, id uuid.UUID, prop *types.ComputeResourceProperty) (*types.ComputeResourceProperty, error) {
	var out *types.ComputeResourceProperty
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if err := s.requireOwner(dbc, owner); err != nil {
			return err
		}
		existing, err := s.owned(dbc, owner, id)
		if err != nil {
			return err
		}
		typ, err := s.typed(dbc, prop)
		if err != nil {
			return err
		}
		existing.TypeID = typ.ID
		existing.Value = prop.Value
		if err := s.properties.Save(dbc, existing); err != nil {
			return err
		}
		existing.Type = typ
		out = existing
		return nil
	})
	return out, err
}

func (s *computeResourcePropertyService) Delete(ctx context.Context, owner types.PropertyOwner, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if err := s.requireOwner(dbc, owner); err != nil {
			return err
		}
		if _, err := s.owned(dbc, owner, id); err != nil {
			return err
		}
		return s.properties.DeleteByIDs(dbc, []uuid.UUID{id})
	})
}

func (s *computeResourcePropertyService) FindByOwner(ctx context.Context, owner types.PropertyOwner, p paging.Pageable) (paging.Page[*types.ComputeResourceProperty], error) {
	dbc := readCtx(ctx)
	if err := s.requireOwner(dbc, owner); err != nil {
		return paging.Page[*types.ComputeResourceProperty]{}, err
	}
	rows, total, err := s.properties.ListByOwner(dbc, owner, p)
	return page(rows, total, err, p)
}

func (s *computeResourcePropertyService) FindByID(ctx context.Context, owner types.PropertyOwner, id uuid.UUID) (*types.ComputeResourceProperty, error) {
	dbc := readCtx(ctx)
	if err := s.requireOwner(dbc, owner); err != nil {
		return nil, err
	}
	return s.owned(dbc, owner, id)
}
