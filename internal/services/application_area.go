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

type ApplicationAreaService interface {
	Save(ctx context.Context, area *types.ApplicationArea) (*types.ApplicationArea, error)
	Update(ctx context.Context, id uuid.UUID, area *types.ApplicationArea) (*types.ApplicationArea, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindAll(ctx context.Context, p paging.Pageable, search string) (paging.Page[*types.ApplicationArea], error)
	FindByID(ctx context.Context, id uuid.UUID) (*types.ApplicationArea, error)
}

type applicationAreaService struct {
	db    *gorm.DB
	log   *logger.Logger
	areas repos.ApplicationAreaRepo
}

func NewApplicationAreaService(db *gorm.DB, baseLog *logger.Logger, areas repos.ApplicationAreaRepo) ApplicationAreaService {
	return &applicationAreaService{db: db, log: baseLog.With("service", "ApplicationAreaService"), areas: areas}
}

func (s *applicationAreaService) Save(ctx context.Context, area *types.ApplicationArea) (*types.ApplicationArea, error) {
	area.Name = strings.TrimSpace(area.Name)
	if area.Name == "" {
		return nil, invalid("application area name is required")
	}
	if err := s.areas.Create(readCtx(ctx), area); err != nil {
		return nil, err
	}
	return area, nil
}

func (s *applicationAreaService) Update(ctx context.Context, id uuid.UUID, area *types.ApplicationArea) (*types.ApplicationArea, error) {
	name := strings.TrimSpace(area.Name)
	if name == "" {
		return nil, invalid("application area name is required")
	}
	var out *types.ApplicationArea
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		existing, err := found(s.areas.GetByID(dbc, id))("application area", id)
		if err != nil {
			return err
		}
		existing.Name = name
		if err := s.areas.Save(dbc, existing); err != nil {
			return err
		}
		out = existing
		return nil
	})
	return out, err
}

func (s *applicationAreaService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		area, err := found(s.areas.GetByID(dbc, id))("application area", id)
		if err != nil {
			return err
		}
		if err := s.areas.ClearAlgorithms(dbc, area); err != nil {
			return err
		}
		return s.areas.DeleteByIDs(dbc, []uuid.UUID{id})
	})
}

func (s *applicationAreaService) FindAll(ctx context.Context, p paging.Pageable, search string) (paging.Page[*types.ApplicationArea], error) {
	rows, total, err := s.areas.List(readCtx(ctx), search, p)
	return page(rows, total, err, p)
}

func (s *applicationAreaService) FindByID(ctx context.Context, id uuid.UUID) (*types.ApplicationArea, error) {
	return found(s.areas.GetByID(readCtx(ctx), id))("application area", id)
}
