package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quantumatlas/atlas-backend/internal/data/repos"
	types "github.com/quantumatlas/atlas-backend/internal/domain"
	"github.com/quantumatlas/atlas-backend/internal/pkg/dbctx"
	apperrors "github.com/quantumatlas/atlas-backend/internal/pkg/errors"
	"github.com/quantumatlas/atlas-backend/internal/pkg/paging"
	"github.com/quantumatlas/atlas-backend/internal/platform/analyzer"
	"github.com/quantumatlas/atlas-backend/internal/platform/logger"
)

type ImplementationService interface {
	Save(ctx context.Context, algoID uuid.UUID, impl *types.Implementation) (*types.Implementation, error)
	Update(ctx context.Context, algoID, id uuid.UUID, impl *types.Implementation) (*types.Implementation, error)
	Delete(ctx context.Context, algoID, id uuid.UUID) error
	FindAll(ctx context.Context, p paging.Pageable, search string) (paging.Page[*types.Implementation], error)
	FindByID(ctx context.Context, id uuid.UUID) (*types.Implementation, error)
	// FindByAlgorithmAndID is FindByID restricted to implementations of algoID.
	FindByAlgorithmAndID(ctx context.Context, algoID, id uuid.UUID) (*types.Implementation, error)
	FindByImplementedAlgorithm(ctx context.Context, algoID uuid.UUID, p paging.Pageable) (paging.Page[*types.Implementation], error)

	FindLinkedSoftwarePlatforms(ctx context.Context, id uuid.UUID, p paging.Pageable) (paging.Page[*types.SoftwarePlatform], error)
	AddSoftwarePlatformReference(ctx context.Context, id, platformID uuid.UUID) (*types.SoftwarePlatform, error)
	DeleteSoftwarePlatformReference(ctx context.Context, id, platformID uuid.UUID) error

	GetTags(ctx context.Context, id uuid.UUID) ([]*types.Tag, error)
	// AddTag links the tag with the given name, creating it first when unknown.
	AddTag(ctx context.Context, id uuid.UUID, tag *types.Tag) (*types.Tag, error)
	RemoveTag(ctx context.Context, id uuid.UUID, name string) error

	Execute(ctx context.Context, id uuid.UUID, params map[string]string) (map[string]string, error)
}

type implementationService struct {
	db              *gorm.DB
	log             *logger.Logger
	implementations repos.ImplementationRepo
	algorithms      repos.AlgorithmRepo
	sdks            repos.SdkRepo
	tags            repos.TagRepo
	platforms       repos.SoftwarePlatformRepo
	analyzer        analyzer.Control
	cascade         *Cascade
}

func NewImplementationService(
	db *gorm.DB,
	baseLog *logger.Logger,
	implementations repos.ImplementationRepo,
	algorithms repos.AlgorithmRepo,
	sdks repos.SdkRepo,
	tags repos.TagRepo,
	platforms repos.SoftwarePlatformRepo,
	analyzerControl analyzer.Control,
	cascade *Cascade,
) ImplementationService {
	return &implementationService{
		db:              db,
		log:             baseLog.With("service", "ImplementationService"),
		implementations: implementations,
		algorithms:      algorithms,
		sdks:            sdks,
		tags:            tags,
		platforms:       platforms,
		analyzer:        analyzerControl,
		cascade:         cascade,
	}
}

func (s *implementationService) validate(dbc dbctx.Context, impl *types.Implementation) error {
	impl.Name = strings.TrimSpace(impl.Name)
	if impl.Name == "" {
		return invalid("implementation name is required")
	}
	if impl.SdkID != nil && *impl.SdkID == uuid.Nil {
		impl.SdkID = nil
	}
	if impl.SdkID != nil {
		if _, err := found(s.sdks.GetByID(dbc, *impl.SdkID))("sdk", *impl.SdkID); err != nil {
			return err
		}
	}
	return nil
}

func (s *implementationService) Save(ctx context.Context, algoID uuid.UUID, impl *types.Implementation) (*types.Implementation, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if _, err := found(s.algorithms.GetByID(dbc, algoID))("algorithm", algoID); err != nil {
			return err
		}
		if err := s.validate(dbc, impl); err != nil {
			return err
		}
		impl.AlgorithmID = algoID
		return s.implementations.Create(dbc, impl)
	})
	if err != nil {
		return nil, err
	}
	s.log.Debug("implementation created", "implementation_id", impl.ID, "algorithm_id", algoID)
	return impl, nil
}

func (s *implementationService) owned(dbc dbctx.Context, algoID, id uuid.UUID, preloads ...string) (*types.Implementation, error) {
	impl, err := found(s.implementations.GetByID(dbc, id, preloads...))("implementation", id)
	if err != nil {
		return nil, err
	}
	if impl.AlgorithmID != algoID {
		return nil, notFound("implementation", id)
	}
	return impl, nil
}

func (s *implementationService) Update(ctx context.Context, algoID, id uuid.UUID, impl *types.Implementation) (*types.Implementation, error) {
	var out *types.Implementation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		existing, err := s.owned(dbc, algoID, id)
		if err != nil {
			return err
		}
		if err := s.validate(dbc, impl); err != nil {
			return err
		}
		existing.ApplyUpdate(impl)
		if err := s.implementations.Save(dbc, existing); err != nil {
			return err
		}
		out = existing
		return nil
	})
	return out, err
}

func (s *implementationService) Delete(ctx context.Context, algoID, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		impl, err := s.owned(dbc, algoID, id)
		if err != nil {
			return err
		}
		return s.cascade.deleteImplementation(dbc, impl)
	})
	if err != nil {
		return err
	}
	s.log.Info("implementation deleted", "implementation_id", id)
	return nil
}

func (s *implementationService) FindAll(ctx context.Context, p paging.Pageable, search string) (paging.Page[*types.Implementation], error) {
	rows, total, err := s.implementations.List(readCtx(ctx), search, p)
	return page(rows, total, err, p)
}

func (s *implementationService) FindByID(ctx context.Context, id uuid.UUID) (*types.Implementation, error) {
	return found(s.implementations.GetByID(readCtx(ctx), id))("implementation", id)
}

func (s *implementationService) FindByAlgorithmAndID(ctx context.Context, algoID, id uuid.UUID) (*types.Implementation, error) {
	return s.owned(readCtx(ctx), algoID, id)
}

func (s *implementationService) FindByImplementedAlgorithm(ctx context.Context, algoID uuid.UUID, p paging.Pageable) (paging.Page[*types.Implementation], error) {
	dbc := readCtx(ctx)
	if _, err := found(s.algorithms.GetByID(dbc, algoID))("algorithm", algoID); err != nil {
		return paging.Page[*types.Implementation]{}, err
	}
	rows, total, err := s.implementations.ListByAlgorithm(dbc, algoID, p)
	return page(rows, total, err, p)
}

func (s *implementationService) FindLinkedSoftwarePlatforms(ctx context.Context, id uuid.UUID, p paging.Pageable) (paging.Page[*types.SoftwarePlatform], error) {
	dbc := readCtx(ctx)
	if _, err := found(s.implementations.GetByID(dbc, id))("implementation", id); err != nil {
		return paging.Page[*types.SoftwarePlatform]{}, err
	}
	rows, total, err := s.platforms.ListByImplementation(dbc, id, p)
	return page(rows, total, err, p)
}

func (s *implementationService) AddSoftwarePlatformReference(ctx context.Context, id, platformID uuid.UUID) (*types.SoftwarePlatform, error) {
	var out *types.SoftwarePlatform
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		impl, err := found(s.implementations.GetByID(dbc, id, "SoftwarePlatforms"))("implementation", id)
		if err != nil {
			return err
		}
		platform, err := found(s.platforms.GetByID(dbc, platformID))("software platform", platformID)
		if err != nil {
			return err
		}
		out = platform
		next, changed := withRef(impl.SoftwarePlatforms, platform, softwarePlatformIDOf)
		if !changed {
			return nil
		}
		return s.implementations.ReplaceSoftwarePlatforms(dbc, impl, next)
	})
	return out, err
}

func (s *implementationService) DeleteSoftwarePlatformReference(ctx context.Context, id, platformID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		impl, err := found(s.implementations.GetByID(dbc, id, "SoftwarePlatforms"))("implementation", id)
		if err != nil {
			return err
		}
		next, changed := withoutRef(impl.SoftwarePlatforms, platformID, softwarePlatformIDOf)
		if !changed {
			return nil
		}
		return s.implementations.ReplaceSoftwarePlatforms(dbc, impl, next)
	})
}

func (s *implementationService) GetTags(ctx context.Context, id uuid.UUID) ([]*types.Tag, error) {
	impl, err := found(s.implementations.GetByID(readCtx(ctx), id, "Tags"))("implementation", id)
	if err != nil {
		return nil, err
	}
	if impl.Tags == nil {
		return []*types.Tag{}, nil
	}
	return impl.Tags, nil
}

func (s *implementationService) AddTag(ctx context.Context, id uuid.UUID, tag *types.Tag) (*types.Tag, error) {
	name := strings.TrimSpace(tag.Name)
	if name == "" {
		return nil, invalid("tag name is required")
	}
	var out *types.Tag
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		impl, err := found(s.implementations.GetByID(dbc, id, "Tags"))("implementation", id)
		if err != nil {
			return err
		}
		existing, err := s.tags.GetByName(dbc, name)
		if err != nil {
			return err
		}
		if existing == nil {
			existing = &types.Tag{Name: name, Description: tag.Description}
			if err := s.tags.Create(dbc, existing); err != nil {
				return err
			}
			s.log.Debug("tag created", "tag", name)
		}
		out = existing
		next, changed := withRef(impl.Tags, existing, tagIDOf)
		if !changed {
			return nil
		}
		return s.implementations.ReplaceTags(dbc, impl, next)
	})
	return out, err
}

func (s *implementationService) RemoveTag(ctx context.Context, id uuid.UUID, name string) error {
	name = strings.TrimSpace(name)
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		impl, err := found(s.implementations.GetByID(dbc, id, "Tags"))("implementation", id)
		if err != nil {
			return err
		}
		kept := make([]*types.Tag, 0, len(impl.Tags))
		for _, t := range impl.Tags {
			if t.Name != name {
				kept = append(kept, t)
			}
		}
		if len(kept) == len(impl.Tags) {
			return nil
		}
		return s.implementations.ReplaceTags(dbc, impl, kept)
	})
}

func (s *implementationService) Execute(ctx context.Context, id uuid.UUID, params map[string]string) (map[string]string, error) {
	impl, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if params == nil {
		params = map[string]string{}
	}
	if s.analyzer == nil {
		return nil, fmt.Errorf("no analyzer configured: %w", apperrors.ErrExecution)
	}
	out, err := s.analyzer.Execute(ctx, impl, params)
	if err != nil {
		s.log.Warn("implementation execution failed", "implementation_id", id, "error", err)
		return nil, err
	}
	if out == nil {
		out = map[string]string{}
	}
	return out, nil
}
