package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quantumatlas/atlas-backend/internal/data/repos"
	"github.com/quantumatlas/atlas-backend/internal/data/repos/catalog"
	types "github.com/quantumatlas/atlas-backend/internal/domain"
	"github.com/quantumatlas/atlas-backend/internal/pkg/dbctx"
	apperrors "github.com/quantumatlas/atlas-backend/internal/pkg/errors"
	"github.com/quantumatlas/atlas-backend/internal/pkg/paging"
	"github.com/quantumatlas/atlas-backend/internal/platform/logger"
)

// TypeService is the contract shared by the type entities that relations and
// properties point at. Deleting a type that is still referenced fails with
// ErrConsistency.
type TypeService[T any] interface {
	Save(ctx context.Context, row *T) (*T, error)
	Update(ctx context.Context, id uuid.UUID, row *T) (*T, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	FindByName(ctx context.Context, name string) (*T, error)
	FindAll(ctx context.Context, p paging.Pageable, search string) (paging.Page[*T], error)
	CreateOrUpdateAll(ctx context.Context, rows []*T) ([]*T, error)
}

type AlgorithmRelationTypeService = TypeService[types.AlgorithmRelationType]
type PatternRelationTypeService = TypeService[types.PatternRelationType]
type ComputeResourcePropertyTypeService = TypeService[types.ComputeResourcePropertyType]

type typeHooks[T any] struct {
	kind string
	idOf func(*T) uuid.UUID
	// validate normalizes a row before it is written.
	validate func(*T) error
	// apply copies the mutable fields of src onto dst.
	apply func(dbc dbctx.Context, dst, src *T) error
	// dependents counts the rows that still point at the type.
	dependents func(dbc dbctx.Context, id uuid.UUID) (int64, error)
}

type typeService[T any] struct {
	db    *gorm.DB
	log   *logger.Logger
	repo  catalog.NamedTypeRepo[T]
	hooks typeHooks[T]
}

func NewAlgorithmRelationTypeService(db *gorm.DB, baseLog *logger.Logger, repo repos.AlgorithmRelationTypeRepo, relations repos.AlgorithmRelationRepo) AlgorithmRelationTypeService {
	return &typeService[types.AlgorithmRelationType]{
		db:   db,
		log:  baseLog.With("service", "AlgorithmRelationTypeService"),
		repo: repo,
		hooks: typeHooks[types.AlgorithmRelationType]{
			kind: "algorithm relation type",
			idOf: func(t *types.AlgorithmRelationType) uuid.UUID { return t.ID },
			validate: func(t *types.AlgorithmRelationType) error {
				return requireName(&t.Name)
			},
			apply: func(_ dbctx.Context, dst, src *types.AlgorithmRelationType) error {
				dst.Name = src.Name
				return nil
			},
			dependents: relations.CountByType,
		},
	}
}

func NewPatternRelationTypeService(db *gorm.DB, baseLog *logger.Logger, repo repos.PatternRelationTypeRepo, relations repos.PatternRelationRepo) PatternRelationTypeService {
	return &typeService[types.PatternRelationType]{
		db:   db,
		log:  baseLog.With("service", "PatternRelationTypeService"),
		repo: repo,
		hooks: typeHooks[types.PatternRelationType]{
			kind: "pattern relation type",
			idOf: func(t *types.PatternRelationType) uuid.UUID { return t.ID },
			validate: func(t *types.PatternRelationType) error {
				return requireName(&t.Name)
			},
			apply: func(_ dbctx.Context, dst, src *types.PatternRelationType) error {
				dst.Name = src.Name
				return nil
			},
			dependents: relations.CountByType,
		},
	}
}

func NewComputeResourcePropertyTypeService(db *gorm.DB, baseLog *logger.Logger, repo repos.ComputeResourcePropertyTypeRepo, properties repos.ComputeResourcePropertyRepo) ComputeResourcePropertyTypeService {
	return &typeService[types.ComputeResourcePropertyType]{
		db:   db,
		log:  baseLog.With("service", "ComputeResourcePropertyTypeService"),
		repo: repo,
		hooks: typeHooks[types.ComputeResourcePropertyType]{
			kind: "compute resource property type",
			idOf: func(t *types.ComputeResourcePropertyType) uuid.UUID { return t.ID },
			validate: func(t *types.ComputeResourcePropertyType) error {
				if err := requireName(&t.Name); err != nil {
					return err
				}
				t.Datatype = types.Datatype(strings.ToUpper(strings.TrimSpace(string(t.Datatype))))
				if !t.Datatype.Valid() {
					return invalid("unknown datatype %q", t.Datatype)
				}
				return nil
			},
			apply: func(dbc dbctx.Context, dst, src *types.ComputeResourcePropertyType) error {
				if dst.Datatype != src.Datatype {
					n, err := properties.CountByType(dbc, dst.ID)
					if err != nil {
						return err
					}
					if n > 0 {
						return fmt.Errorf("datatype of %s cannot change while %d properties use it: %w", dst.ID, n, apperrors.ErrConsistency)
					}
				}
				dst.Name = src.Name
				dst.Datatype = src.Datatype
				dst.Description = src.Description
				return nil
			},
			dependents: properties.CountByType,
		},
	}
}

func requireName(name *string) error {
	*name = strings.TrimSpace(*name)
	if *name == "" {
		return invalid("name is required")
	}
	return nil
}

func (s *typeService[T]) Save(ctx context.Context, row *T) (*T, error) {
	if err := s.hooks.validate(row); err != nil {
		return nil, err
	}
	if err := s.repo.Create(readCtx(ctx), row); err != nil {
		s.log.Error("create failed", "error", err)
		return nil, err
	}
	return row, nil
}

func (s *typeService[T]) Update(ctx context.Context, id uuid.UUID, row *T) (*T, error) {
	if err := s.hooks.validate(row); err != nil {
		return nil, err
	}
	var out *T
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		existing, err := found(s.repo.GetByID(dbc, id))(s.hooks.kind, id)
		if err != nil {
			return err
		}
		if err := s.hooks.apply(dbc, existing, row); err != nil {
			return err
		}
		if err := s.repo.Save(dbc, existing); err != nil {
			return err
		}
		out = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *typeService[T]) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if _, err := found(s.repo.GetByID(dbc, id))(s.hooks.kind, id); err != nil {
			return err
		}
		n, err := s.hooks.dependents(dbc, id)
		if err != nil {
			return err
		}
		if n > 0 {
			s.log.Info("refusing to delete referenced type", "id", id, "dependents", n)
			return inUse(s.hooks.kind, id, n, "rows")
		}
		return s.repo.DeleteByIDs(dbc, []uuid.UUID{id})
	})
}

func (s *typeService[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	return found(s.repo.GetByID(readCtx(ctx), id))(s.hooks.kind, id)
}

func (s *typeService[T]) FindByName(ctx context.Context, name string) (*T, error) {
	return found(s.repo.GetByName(readCtx(ctx), name))(s.hooks.kind, name)
}

func (s *typeService[T]) FindAll(ctx context.Context, p paging.Pageable, search string) (paging.Page[*T], error) {
	rows, total, err := s.repo.List(readCtx(ctx), search, p)
	return page(rows, total, err, p)
}

// CreateOrUpdateAll inserts rows without a known id and updates the rest.
func (s *typeService[T]) CreateOrUpdateAll(ctx context.Context, rows []*T) ([]*T, error) {
	out := make([]*T, 0, len(rows))
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		for _, row := range rows {
			if row == nil {
				continue
			}
			if err := s.hooks.validate(row); err != nil {
				return err
			}
			id := s.hooks.idOf(row)
			existing, err := s.repo.GetByID(dbc, id)
			if err != nil {
				return err
			}
			if existing == nil {
				if err := s.repo.Create(dbc, row); err != nil {
					return err
				}
				out = append(out, row)
				continue
			}
			if err := s.hooks.apply(dbc, existing, row); err != nil {
				return err
			}
			if err := s.repo.Save(dbc, existing); err != nil {
				return err
			}
			out = append(out, existing)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
