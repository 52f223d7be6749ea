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

type PublicationService interface {
	Save(ctx context.Context, pub *types.Publication) (*types.Publication, error)
	Update(ctx context.Context, id uuid.UUID, pub *types.Publication) (*types.Publication, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
	DeletePublicationsByIDs(ctx context.Context, ids []uuid.UUID) error
	FindAll(ctx context.Context, p paging.Pageable, search string) (paging.Page[*types.Publication], error)
	FindByID(ctx context.Context, id uuid.UUID) (*types.Publication, error)
	FindOptionalByID(ctx context.Context, id uuid.UUID) (*types.Publication, bool, error)
	CreateOrUpdateAll(ctx context.Context, pubs []*types.Publication) ([]*types.Publication, error)
	FindAlgorithms(ctx context.Context, id uuid.UUID, p paging.Pageable) (paging.Page[*types.Algorithm], error)
}

type publicationService struct {
	db           *gorm.DB
	log          *logger.Logger
	publications repos.PublicationRepo
	algorithms   repos.AlgorithmRepo
}

func NewPublicationService(db *gorm.DB, baseLog *logger.Logger, publications repos.PublicationRepo, algorithms repos.AlgorithmRepo) PublicationService {
	return &publicationService{
		db:           db,
		log:          baseLog.With("service", "PublicationService"),
		publications: publications,
		algorithms:   algorithms,
	}
}

func validatePublication(pub *types.Publication) error {
	pub.Title = strings.TrimSpace(pub.Title)
	if pub.Title == "" {
		return invalid("publication title is required")
	}
	return nil
}

func (s *publicationService) Save(ctx context.Context, pub *types.Publication) (*types.Publication, error) {
	if err := validatePublication(pub); err != nil {
		return nil, err
	}
	if err := s.publications.Create(readCtx(ctx), pub); err != nil {
		return nil, err
	}
	return pub, nil
}

func (s *publicationService) Update(ctx context.Context, id uuid.UUID, pub *types.Publication) (*types.Publication, error) {
	if err := validatePublication(pub); err != nil {
		return nil, err
	}
	var out *types.Publication
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		out, err = s.update(dbctx.Context{Ctx: ctx, Tx: tx}, id, pub)
		return err
	})
	return out, err
}

func (s *publicationService) update(dbc dbctx.Context, id uuid.UUID, pub *types.Publication) (*types.Publication, error) {
	existing, err := found(s.publications.GetByID(dbc, id))("publication", id)
	if err != nil {
		return nil, err
	}
	existing.ApplyUpdate(pub)
	if err := s.publications.Save(dbc, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *publicationService) DeleteByID(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		pub, err := found(s.publications.GetByID(dbc, id))("publication", id)
		if err != nil {
			return err
		}
		return s.delete(dbc, []*types.Publication{pub})
	})
}

// DeletePublicationsByIDs removes every listed publication that exists; unknown ids are skipped.
func (s *publicationService) DeletePublicationsByIDs(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		pubs, err := s.publications.GetByIDs(dbc, ids)
		if err != nil {
			return err
		}
		return s.delete(dbc, pubs)
	})
}

func (s *publicationService) delete(dbc dbctx.Context, pubs []*types.Publication) error {
	ids := make([]uuid.UUID, 0, len(pubs))
	for _, pub := range pubs {
		if err := s.publications.ClearAlgorithms(dbc, pub); err != nil {
			return err
		}
		ids = append(ids, pub.ID)
	}
	if err := s.publications.DeleteByIDs(dbc, ids); err != nil {
		return err
	}
	s.log.Info("publications deleted", "count", len(ids))
	return nil
}

func (s *publicationService) FindAll(ctx context.Context, p paging.Pageable, search string) (paging.Page[*types.Publication], error) {
	rows, total, err := s.publications.List(readCtx(ctx), search, p)
	return page(rows, total, err, p)
}

func (s *publicationService) FindByID(ctx context.Context, id uuid.UUID) (*types.Publication, error) {
	return found(s.publications.GetByID(readCtx(ctx), id))("publication", id)
}

func (s *publicationService) FindOptionalByID(ctx context.Context, id uuid.UUID) (*types.Publication, bool, error) {
	pub, err := s.publications.GetByID(readCtx(ctx), id)
	if err != nil {
		return nil, false, err
	}
	return pub, pub != nil, nil
}

// CreateOrUpdateAll inserts publications without a known id and updates the rest.
func (s *publicationService) CreateOrUpdateAll(ctx context.Context, pubs []*types.Publication) ([]*types.Publication, error) {
	out := make([]*types.Publication, 0, len(pubs))
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		for _, pub := range pubs {
			if err := validatePublication(pub); err != nil {
				return err
			}
			exists, err := s.publications.Exists(dbc, pub.ID)
			if err != nil {
				return err
			}
			if !exists {
				if err := s.publications.Create(dbc, pub); err != nil {
					return err
				}
				out = append(out, pub)
				continue
			}
			updated, err := s.update(dbc, pub.ID, pub)
			if err != nil {
				return err
			}
			out = append(out, updated)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *publicationService) FindAlgorithms(ctx context.Context, id uuid.UUID, p paging.Pageable) (paging.Page[*types.Algorithm], error) {
	dbc := readCtx(ctx)
	exists, err := s.publications.Exists(dbc, id)
	if err != nil {
		return paging.Page[*types.Algorithm]{}, err
	}
	if !exists {
		return paging.Page[*types.Algorithm]{}, notFound("publication", id)
	}
	rows, total, err := s.algorithms.ListByPublication(dbc, id, p)
	return page(rows, total, err, p)
}
