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

type ProblemTypeService interface {
	Save(ctx context.Context, pt *types.ProblemType) (*types.ProblemType, error)
	Update(ctx context.Context, id uuid.UUID, pt *types.ProblemType) (*types.ProblemType, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindAll(ctx context.Context, p paging.Pageable, search string) (paging.Page[*types.ProblemType], error)
	FindByID(ctx context.Context, id uuid.UUID) (*types.ProblemType, error)
	// GetParentList returns the problem type followed by its ancestors, nearest first.
	GetParentList(ctx context.Context, id uuid.UUID) ([]*types.ProblemType, error)
}

type problemTypeService struct {
	db           *gorm.DB
	log          *logger.Logger
	problemTypes repos.ProblemTypeRepo
}

func NewProblemTypeService(db *gorm.DB, baseLog *logger.Logger, problemTypes repos.ProblemTypeRepo) ProblemTypeService {
	return &problemTypeService{
		db:           db,
		log:          baseLog.With("service", "ProblemTypeService"),
		problemTypes: problemTypes,
	}
}

func (s *problemTypeService) Save(ctx context.Context, pt *types.ProblemType) (*types.ProblemType, error) {
	var out *types.ProblemType
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if err := s.validate(dbc, uuid.Nil, pt); err != nil {
			return err
		}
		if err := s.problemTypes.Create(dbc, pt); err != nil {
			return err
		}
		out = pt
		return nil
	})
	return out, err
}

func (s *problemTypeService) Update(ctx context.Context, id uuid.UUID, pt *types.ProblemType) (*types.ProblemType, error) {
	var out *types.ProblemType
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		existing, err := found(s.problemTypes.GetByID(dbc, id))("problem type", id)
		if err != nil {
			return err
		}
		if err := s.validate(dbc, id, pt); err != nil {
			return err
		}
		existing.Name = pt.Name
		existing.ParentProblemTypeID = pt.ParentProblemTypeID
		if err := s.problemTypes.Save(dbc, existing); err != nil {
			return err
		}
		out = existing
		return nil
	})
	return out, err
}

// validate checks the name and that the parent exists without closing a cycle through self.
func (s *problemTypeService) validate(dbc dbctx.Context, self uuid.UUID, pt *types.ProblemType) error {
	pt.Name = strings.TrimSpace(pt.Name)
	if pt.Name == "" {
		return invalid("problem type name is required")
	}
	if pt.ParentProblemTypeID == nil || *pt.ParentProblemTypeID == uuid.Nil {
		pt.ParentProblemTypeID = nil
		return nil
	}
	chain, err := s.chain(dbc, *pt.ParentProblemTypeID)
	if err != nil {
		return err
	}
	if self == uuid.Nil {
		return nil
	}
	for _, ancestor := range chain {
		if ancestor.ID == self {
			return invalid("problem type %s cannot be its own ancestor", self)
		}
	}
	return nil
}

func (s *problemTypeService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		pt, err := found(s.problemTypes.GetByID(dbc, id))("problem type", id)
		if err != nil {
			return err
		}
		if err := s.problemTypes.ClearAlgorithms(dbc, pt); err != nil {
			return err
		}
		if err := s.problemTypes.ClearParent(dbc, id); err != nil {
			return err
		}
		return s.problemTypes.DeleteByIDs(dbc, []uuid.UUID{id})
	})
	if err != nil {
		return err
	}
	s.log.Info("problem type deleted", "problem_type_id", id)
	return nil
}

func (s *problemTypeService) FindAll(ctx context.Context, p paging.Pageable, search string) (paging.Page[*types.ProblemType], error) {
	rows, total, err := s.problemTypes.List(readCtx(ctx), search, p)
	return page(rows, total, err, p)
}

func (s *problemTypeService) FindByID(ctx context.Context, id uuid.UUID) (*types.ProblemType, error) {
	return found(s.problemTypes.GetByID(readCtx(ctx), id))("problem type", id)
}

func (s *problemTypeService) GetParentList(ctx context.Context, id uuid.UUID) ([]*types.ProblemType, error) {
	return s.chain(readCtx(ctx), id)
}

// chain walks parent pointers from id and stops at the root or the first repeated id.
func (s *problemTypeService) chain(dbc dbctx.Context, id uuid.UUID) ([]*types.ProblemType, error) {
	first, err := found(s.problemTypes.GetByID(dbc, id))("problem type", id)
	if err != nil {
		return nil, err
	}
	out := []*types.ProblemType{first}
	seen := map[uuid.UUID]bool{first.ID: true}
	cur := first
	for cur.ParentProblemTypeID != nil && !seen[*cur.ParentProblemTypeID] {
		parent, err := s.problemTypes.GetByID(dbc, *cur.ParentProblemTypeID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			break
		}
		seen[parent.ID] = true
		out = append(out, parent)
		cur = parent
	}
	return out, nil
}
