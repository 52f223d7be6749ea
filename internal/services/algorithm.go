package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quantumatlas/atlas-backend/internal/data/repos"
	"github.com/quantumatlas/atlas-backend/internal/data/repos/catalog"
	types "github.com/quantumatlas/atlas-backend/internal/domain"
	"github.com/quantumatlas/atlas-backend/internal/pkg/dbctx"
	"github.com/quantumatlas/atlas-backend/internal/pkg/paging"
	"github.com/quantumatlas/atlas-backend/internal/platform/logger"
)

type AlgorithmService interface {
	Save(ctx context.Context, algo *types.Algorithm) (*types.Algorithm, error)
	Update(ctx context.Context, id uuid.UUID, algo *types.Algorithm) (*types.Algorithm, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindAll(ctx context.Context, p paging.Pageable, search string) (paging.Page[*types.Algorithm], error)
	FindByID(ctx context.Context, id uuid.UUID) (*types.Algorithm, error)

	ListPublications(ctx context.Context, algoID uuid.UUID) ([]*types.Publication, error)
	GetPublication(ctx context.Context, algoID, publicationID uuid.UUID) (*types.Publication, error)
	AddPublicationReference(ctx context.Context, algoID, publicationID uuid.UUID) (*types.Publication, error)
	DeletePublicationReference(ctx context.Context, algoID, publicationID uuid.UUID) error

	ListProblemTypes(ctx context.Context, algoID uuid.UUID) ([]*types.ProblemType, error)
	GetProblemType(ctx context.Context, algoID, problemTypeID uuid.UUID) (*types.ProblemType, error)
	AddProblemTypeReference(ctx context.Context, algoID, problemTypeID uuid.UUID) (*types.ProblemType, error)
	DeleteProblemTypeReference(ctx context.Context, algoID, problemTypeID uuid.UUID) error

	ListApplicationAreas(ctx context.Context, algoID uuid.UUID) ([]*types.ApplicationArea, error)
	GetApplicationArea(ctx context.Context, algoID, areaID uuid.UUID) (*types.ApplicationArea, error)
	AddApplicationAreaReference(ctx context.Context, algoID, areaID uuid.UUID) (*types.ApplicationArea, error)
	DeleteApplicationAreaReference(ctx context.Context, algoID, areaID uuid.UUID) error

	GetPatternRelations(ctx context.Context, algoID uuid.UUID) ([]*types.PatternRelation, error)
	GetPatternRelation(ctx context.Context, algoID, relationID uuid.UUID) (*types.PatternRelation, error)
	AddPatternRelation(ctx context.Context, algoID uuid.UUID, rel *types.PatternRelation) (*types.PatternRelation, error)
	UpdatePatternRelation(ctx context.Context, algoID, relationID uuid.UUID, rel *types.PatternRelation) (*types.PatternRelation, error)
	DeletePatternRelation(ctx context.Context, algoID, relationID uuid.UUID) error

	GetAlgorithmRelations(ctx context.Context, algoID uuid.UUID) ([]*types.AlgorithmRelation, error)
	GetAlgorithmRelation(ctx context.Context, algoID, relationID uuid.UUID) (*types.AlgorithmRelation, error)
	AddOrUpdateAlgorithmRelation(ctx context.Context, algoID uuid.UUID, rel *types.AlgorithmRelation) (*types.AlgorithmRelation, error)
	DeleteAlgorithmRelation(ctx context.Context, algoID, relationID uuid.UUID) error
}

type algorithmService struct {
	db                   *gorm.DB
	log                  *logger.Logger
	algorithms           repos.AlgorithmRepo
	algorithmRelations   repos.AlgorithmRelationRepo
	algorithmRelTypes    repos.AlgorithmRelationTypeRepo
	patternRelations     repos.PatternRelationRepo
	patternRelationTypes repos.PatternRelationTypeRepo
	problemTypes         repos.ProblemTypeRepo
	applicationAreas     repos.ApplicationAreaRepo
	publications         repos.PublicationRepo
	cascade              *Cascade
}

func NewAlgorithmService(
	db *gorm.DB,
	baseLog *logger.Logger,
	algorithms repos.AlgorithmRepo,
	algorithmRelations repos.AlgorithmRelationRepo,
	algorithmRelTypes repos.AlgorithmRelationTypeRepo,
	patternRelations repos.PatternRelationRepo,
	patternRelationTypes repos.PatternRelationTypeRepo,
	problemTypes repos.ProblemTypeRepo,
	applicationAreas repos.ApplicationAreaRepo,
	publications repos.PublicationRepo,
	cascade *Cascade,
) AlgorithmService {
	return &algorithmService{
		db:                   db,
		log:                  baseLog.With("service", "AlgorithmService"),
		algorithms:           algorithms,
		algorithmRelations:   algorithmRelations,
		algorithmRelTypes:    algorithmRelTypes,
		patternRelations:     patternRelations,
		patternRelationTypes: patternRelationTypes,
		problemTypes:         problemTypes,
		applicationAreas:     applicationAreas,
		publications:         publications,
		cascade:              cascade,
	}
}

func (s *algorithmService) Save(ctx context.Context, algo *types.Algorithm) (*types.Algorithm, error) {
	if err := algo.Normalize(); err != nil {
		return nil, invalid("%v", err)
	}
	if err := s.algorithms.Create(readCtx(ctx), algo); err != nil {
		s.log.Error("create algorithm failed", "error", err)
		return nil, err
	}
	s.log.Debug("algorithm created", "algorithm_id", algo.ID, "computation_model", algo.ComputationModel)
	return algo, nil
}

func (s *algorithmService) Update(ctx context.Context, id uuid.UUID, algo *types.Algorithm) (*types.Algorithm, error) {
	if err := algo.Normalize(); err != nil {
		return nil, invalid("%v", err)
	}
	var out *types.Algorithm
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		existing, err := found(s.algorithms.GetByID(dbc, id))("algorithm", id)
		if err != nil {
			return err
		}
		existing.ApplyUpdate(algo)
		if err := s.algorithms.Save(dbc, existing); err != nil {
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

func (s *algorithmService) Delete(ctx context.Context, id uuid.UUID) error {
	var evicted []uuid.UUID
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		algo, err := found(s.algorithms.GetByID(dbc, id))("algorithm", id)
		if err != nil {
			return err
		}
		if err := s.algorithms.ReplaceProblemTypes(dbc, algo, nil); err != nil {
			return err
		}
		if err := s.algorithms.ReplaceApplicationAreas(dbc, algo, nil); err != nil {
			return err
		}
		if err := s.algorithms.ReplacePublications(dbc, algo, nil); err != nil {
			return err
		}
		if err := s.patternRelations.DeleteByAlgorithm(dbc, id); err != nil {
			return err
		}
		if err := s.algorithmRelations.DeleteByAlgorithm(dbc, id); err != nil {
			return err
		}
		if evicted, err = s.cascade.deleteAlgorithmOwned(dbc, id); err != nil {
			return err
		}
		return s.algorithms.DeleteByIDs(dbc, []uuid.UUID{id})
	})
	if err != nil {
		return err
	}
	s.cascade.evictImages(ctx, evicted)
	s.log.Info("algorithm deleted", "algorithm_id", id)
	return nil
}

func (s *algorithmService) FindAll(ctx context.Context, p paging.Pageable, search string) (paging.Page[*types.Algorithm], error) {
	rows, total, err := s.algorithms.List(readCtx(ctx), search, p)
	return page(rows, total, err, p)
}

func (s *algorithmService) FindByID(ctx context.Context, id uuid.UUID) (*types.Algorithm, error) {
	return found(s.algorithms.GetByID(readCtx(ctx), id))("algorithm", id)
}

func (s *algorithmService) requireAlgorithm(dbc dbctx.Context, id uuid.UUID, preloads ...string) (*types.Algorithm, error) {
	return found(s.algorithms.GetByID(dbc, id, preloads...))("algorithm", id)
}

// ---- publications

func (s *algorithmService) ListPublications(ctx context.Context, algoID uuid.UUID) ([]*types.Publication, error) {
	dbc := readCtx(ctx)
	if _, err := s.requireAlgorithm(dbc, algoID); err != nil {
		return nil, err
	}
	return s.publications.ListByAlgorithm(dbc, algoID)
}

func (s *algorithmService) GetPublication(ctx context.Context, algoID, publicationID uuid.UUID) (*types.Publication, error) {
	rows, err := s.ListPublications(ctx, algoID)
	if err != nil {
		return nil, err
	}
	if p := containsRef(rows, publicationID, publicationIDOf); p != nil {
		return p, nil
	}
	return nil, notFound("publication reference", publicationID)
}

func (s *algorithmService) AddPublicationReference(ctx context.Context, algoID, pubID uuid.UUID) (*types.Publication, error) {
	var out *types.Publication
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		algo, err := s.requireAlgorithm(dbc, algoID, catalog.AssocPublications)
		if err != nil {
			return err
		}
		pub, err := found(s.publications.GetByID(dbc, pubID))("publication", pubID)
		if err != nil {
			return err
		}
		out = pub
		next, changed := withRef(algo.Publications, pub, publicationIDOf)
		if !changed {
			return nil
		}
		return s.algorithms.ReplacePublications(dbc, algo, next)
	})
	return out, err
}

func (s *algorithmService) DeletePublicationReference(ctx context.Context, algoID, pubID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		algo, err := s.requireAlgorithm(dbc, algoID, catalog.AssocPublications)
		if err != nil {
			return err
		}
		next, changed := withoutRef(algo.Publications, pubID, publicationIDOf)
		if !changed {
			return nil
		}
		return s.algorithms.ReplacePublications(dbc, algo, next)
	})
}

// ---- problem types

func (s *algorithmService) ListProblemTypes(ctx context.Context, algoID uuid.UUID) ([]*types.ProblemType, error) {
	dbc := readCtx(ctx)
	if _, err := s.requireAlgorithm(dbc, algoID); err != nil {
		return nil, err
	}
	return s.problemTypes.ListByAlgorithm(dbc, algoID)
}

func (s *algorithmService) GetProblemType(ctx context.Context, algoID, problemTypeID uuid.UUID) (*types.ProblemType, error) {
	rows, err := s.ListProblemTypes(ctx, algoID)
	if err != nil {
		return nil, err
	}
	if pt := containsRef(rows, problemTypeID, problemTypeIDOf); pt != nil {
		return pt, nil
	}
	return nil, notFound("problem type reference", problemTypeID)
}

func (s *algorithmService) AddProblemTypeReference(ctx context.Context, algoID, problemTypeID uuid.UUID) (*types.ProblemType, error) {
	var out *types.ProblemType
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		algo, err := s.requireAlgorithm(dbc, algoID, catalog.AssocProblemTypes)
		if err != nil {
			return err
		}
		pt, err := found(s.problemTypes.GetByID(dbc, problemTypeID))("problem type", problemTypeID)
		if err != nil {
			return err
		}
		out = pt
		next, changed := withRef(algo.ProblemTypes, pt, problemTypeIDOf)
		if !changed {
			return nil
		}
		return s.algorithms.ReplaceProblemTypes(dbc, algo, next)
	})
	return out, err
}

func (s *algorithmService) DeleteProblemTypeReference(ctx context.Context, algoID, problemTypeID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		algo, err := s.requireAlgorithm(dbc, algoID, catalog.AssocProblemTypes)
		if err != nil {
			return err
		}
		next, changed := withoutRef(algo.ProblemTypes, problemTypeID, problemTypeIDOf)
		if !changed {
			return nil
		}
		return s.algorithms.ReplaceProblemTypes(dbc, algo, next)
	})
}

// ---- application areas

func (s *algorithmService) ListApplicationAreas(ctx context.Context, algoID uuid.UUID) ([]*types.ApplicationArea, error) {
	dbc := readCtx(ctx)
	if _, err := s.requireAlgorithm(dbc, algoID); err != nil {
		return nil, err
	}
	return s.applicationAreas.ListByAlgorithm(dbc, algoID)
}

func (s *algorithmService) GetApplicationArea(ctx context.Context, algoID, areaID uuid.UUID) (*types.ApplicationArea, error) {
	rows, err := s.ListApplicationAreas(ctx, algoID)
	if err != nil {
		return nil, err
	}
	if a := containsRef(rows, areaID, applicationAreaIDOf); a != nil {
		return a, nil
	}
	return nil, notFound("application area reference", areaID)
}

func (s *algorithmService) AddApplicationAreaReference(ctx context.Context, algoID, areaID uuid.UUID) (*types.ApplicationArea, error) {
	var out *types.ApplicationArea
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		algo, err := s.requireAlgorithm(dbc, algoID, catalog.AssocApplicationAreas)
		if err != nil {
			return err
		}
		area, err := found(s.applicationAreas.GetByID(dbc, areaID))("application area", areaID)
		if err != nil {
			return err
		}
		out = area
		next, changed := withRef(algo.ApplicationAreas, area, applicationAreaIDOf)
		if !changed {
			return nil
		}
		return s.algorithms.ReplaceApplicationAreas(dbc, algo, next)
	})
	return out, err
}

func (s *algorithmService) DeleteApplicationAreaReference(ctx context.Context, algoID, areaID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		algo, err := s.requireAlgorithm(dbc, algoID, catalog.AssocApplicationAreas)
		if err != nil {
			return err
		}
		next, changed := withoutRef(algo.ApplicationAreas, areaID, applicationAreaIDOf)
		if !changed {
			return nil
		}
		return s.algorithms.ReplaceApplicationAreas(dbc, algo, next)
	})
}

// ---- pattern relations

func (s *algorithmService) GetPatternRelations(ctx context.Context, algoID uuid.UUID) ([]*types.PatternRelation, error) {
	dbc := readCtx(ctx)
	if _, err := s.requireAlgorithm(dbc, algoID); err != nil {
		return nil, err
	}
	return s.patternRelations.ListByAlgorithm(dbc, algoID)
}

func (s *algorithmService) GetPatternRelation(ctx context.Context, algoID, relationID uuid.UUID) (*types.PatternRelation, error) {
	return s.patternRelationOf(readCtx(ctx), algoID, relationID)
}

func (s *algorithmService) patternRelationOf(dbc dbctx.Context, algoID, relationID uuid.UUID) (*types.PatternRelation, error) {
	rel, err := found(s.patternRelations.GetByID(dbc, relationID, "PatternRelationType"))("pattern relation", relationID)
	if err != nil {
		return nil, err
	}
	if rel.AlgorithmID != algoID {
		return nil, notFound("pattern relation", relationID)
	}
	return rel, nil
}

func (s *algorithmService) validatePatternRelation(dbc dbctx.Context, rel *types.PatternRelation) error {
	rel.Pattern = strings.TrimSpace(rel.Pattern)
	if rel.Pattern == "" {
		return invalid("pattern is required")
	}
	if rel.PatternRelationTypeID == uuid.Nil {
		return invalid("pattern relation type id is required")
	}
	typ, err := found(s.patternRelationTypes.GetByID(dbc, rel.PatternRelationTypeID))("pattern relation type", rel.PatternRelationTypeID)
	if err != nil {
		return err
	}
	rel.PatternRelationType = typ
	return nil
}

func (s *algorithmService) AddPatternRelation(ctx context.Context, algoID uuid.UUID, rel *types.PatternRelation) (*types.PatternRelation, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if _, err := s.requireAlgorithm(dbc, algoID); err != nil {
			return err
		}
		if err := s.validatePatternRelation(dbc, rel); err != nil {
			return err
		}
		rel.AlgorithmID = algoID
		return s.patternRelations.Create(dbc, rel)
	})
	if err != nil {
		return nil, err
	}
	return rel, nil
}

func (s *algorithmService) UpdatePatternRelation(ctx context.Context, algoID, relationID uuid.UUID, rel *types.PatternRelation) (*types.PatternRelation, error) {
	var out *types.PatternRelation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		existing, err := s.patternRelationOf(dbc, algoID, relationID)
		if err != nil {
			return err
		}
		if err := s.validatePatternRelation(dbc, rel); err != nil {
			return err
		}
		existing.Pattern = rel.Pattern
		existing.Description = rel.Description
		existing.PatternRelationTypeID = rel.PatternRelationTypeID
		existing.PatternRelationType = rel.PatternRelationType
		if err := s.patternRelations.Save(dbc, existing); err != nil {
			return err
		}
		out = existing
		return nil
	})
	return out, err
}

func (s *algorithmService) DeletePatternRelation(ctx context.Context, algoID, relationID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if _, err := s.patternRelationOf(dbc, algoID, relationID); err != nil {
			return err
		}
		return s.patternRelations.DeleteByIDs(dbc, []uuid.UUID{relationID})
	})
}

// ---- algorithm relations

func (s *algorithmService) GetAlgorithmRelations(ctx context.Context, algoID uuid.UUID) ([]*types.AlgorithmRelation, error) {
	dbc := readCtx(ctx)
	if _, err := s.requireAlgorithm(dbc, algoID); err != nil {
		return nil, err
	}
	return s.algorithmRelations.ListByAlgorithm(dbc, algoID)
}

func (s *algorithmService) GetAlgorithmRelation(ctx context.Context, algoID, relationID uuid.UUID) (*types.AlgorithmRelation, error) {
	return s.algorithmRelationOf(readCtx(ctx), algoID, relationID)
}

func (s *algorithmService) algorithmRelationOf(dbc dbctx.Context, algoID, relationID uuid.UUID) (*types.AlgorithmRelation, error) {
	rel, err := found(s.algorithmRelations.GetByID(dbc, relationID, "AlgorithmRelationType"))("algorithm relation", relationID)
	if err != nil {
		return nil, err
	}
	if !rel.Touches(algoID) {
		return nil, notFound("algorithm relation", relationID)
	}
	return rel, nil
}

// AddOrUpdateAlgorithmRelation updates the relation in place when its id is already
// stored and creates it otherwise.
func (s *algorithmService) AddOrUpdateAlgorithmRelation(ctx context.Context, algoID uuid.UUID, rel *types.AlgorithmRelation) (*types.AlgorithmRelation, error) {
	if !rel.Touches(algoID) {
		return nil, invalid("algorithm %s must be the source or the target of the relation", algoID)
	}
	if rel.AlgorithmRelationTypeID == uuid.Nil {
		return nil, invalid("algorithm relation type id is required")
	}
	var out *types.AlgorithmRelation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if _, err := s.requireAlgorithm(dbc, rel.SourceAlgorithmID); err != nil {
			return err
		}
		if _, err := s.requireAlgorithm(dbc, rel.TargetAlgorithmID); err != nil {
			return err
		}
		typ, err := found(s.algorithmRelTypes.GetByID(dbc, rel.AlgorithmRelationTypeID))("algorithm relation type", rel.AlgorithmRelationTypeID)
		if err != nil {
			return err
		}

		existing, err := s.algorithmRelations.GetByID(dbc, rel.ID)
		if err != nil {
			return err
		}
		if existing == nil {
			rel.AlgorithmRelationType = typ
			if err := s.algorithmRelations.Create(dbc, rel); err != nil {
				return err
			}
			out = rel
			return nil
		}
		if !existing.Touches(algoID) {
			return notFound("algorithm relation", rel.ID)
		}
		existing.SourceAlgorithmID = rel.SourceAlgorithmID
		existing.TargetAlgorithmID = rel.TargetAlgorithmID
		existing.AlgorithmRelationTypeID = typ.ID
		existing.Description = rel.Description
		if err := s.algorithmRelations.Save(dbc, existing); err != nil {
			return err
		}
		existing.AlgorithmRelationType = typ
		out = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *algorithmService) DeleteAlgorithmRelation(ctx context.Context, algoID, relationID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if _, err := s.algorithmRelationOf(dbc, algoID, relationID); err != nil {
			return err
		}
		return s.algorithmRelations.DeleteByIDs(dbc, []uuid.UUID{relationID})
	})
}
