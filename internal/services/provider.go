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
	"github.com/quantumatlas/atlas-backend/internal/platform/secretbox"
)

type ProviderService interface {
	Save(ctx context.Context, provider *types.Provider) (*types.Provider, error)
	Update(ctx context.Context, id uuid.UUID, provider *types.Provider) (*types.Provider, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindAll(ctx context.Context, p paging.Pageable, search string) (paging.Page[*types.Provider], error)
	FindByID(ctx context.Context, id uuid.UUID) (*types.Provider, error)
}

type providerService struct {
	db            *gorm.DB
	log           *logger.Logger
	providers     repos.ProviderRepo
	cloudServices repos.CloudServiceRepo
	sealer        *secretbox.Sealer
}

func NewProviderService(db *gorm.DB, baseLog *logger.Logger, providers repos.ProviderRepo, cloudServices repos.CloudServiceRepo, sealer *secretbox.Sealer) ProviderService {
	return &providerService{
		db:            db,
		log:           baseLog.With("service", "ProviderService"),
		providers:     providers,
		cloudServices: cloudServices,
		sealer:        sealer,
	}
}

// seal keeps current when the client sent nothing or echoed the mask back.
func (s *providerService) seal(current, incoming string) (string, error) {
	if incoming == "" || incoming == types.MaskedKey {
		return current, nil
	}
	return s.sealer.Seal(incoming)
}

func (s *providerService) Save(ctx context.Context, provider *types.Provider) (*types.Provider, error) {
	if err := requireName(&provider.Name); err != nil {
		return nil, err
	}
	var err error
	if provider.AccessKey, err = s.seal("", provider.AccessKey); err != nil {
		return nil, err
	}
	if provider.SecretKey, err = s.seal("", provider.SecretKey); err != nil {
		return nil, err
	}
	if err := s.providers.Create(readCtx(ctx), provider); err != nil {
		return nil, err
	}
	s.log.Info("provider created", "provider_id", provider.ID, "sealed", s.sealer != nil)
	return provider, nil
}

func (s *providerService) Update(ctx context.Context, id uuid.UUID, provider *types.Provider) (*types.Provider, error) {
	if err := requireName(&provider.Name); err != nil {
		return nil, err
	}
	var out *types.Provider
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		existing, err := found(s.providers.GetByID(dbc, id))("provider", id)
		if err != nil {
			return err
		}
		existing.Name = provider.Name
		existing.OtherData = provider.OtherData
		if existing.AccessKey, err = s.seal(existing.AccessKey, provider.AccessKey); err != nil {
			return err
		}
		if existing.SecretKey, err = s.seal(existing.SecretKey, provider.SecretKey); err != nil {
			return err
		}
		if err := s.providers.Save(dbc, existing); err != nil {
			return err
		}
		out = existing
		return nil
	})
	return out, err
}

func (s *providerService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if _, err := found(s.providers.GetByID(dbc, id))("provider", id); err != nil {
			return err
		}
		n, err := s.cloudServices.CountByProvider(dbc, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return inUse("provider", id, n, "cloud services")
		}
		return s.providers.DeleteByIDs(dbc, []uuid.UUID{id})
	})
}

func (s *providerService) FindAll(ctx context.Context, p paging.Pageable, search string) (paging.Page[*types.Provider], error) {
	rows, total, err := s.providers.List(readCtx(ctx), search, p)
	return page(rows, total, err, p)
}

func (s *providerService) FindByID(ctx context.Context, id uuid.UUID) (*types.Provider, error) {
	return found(s.providers.GetByID(readCtx(ctx), id))("provider", id)
}
