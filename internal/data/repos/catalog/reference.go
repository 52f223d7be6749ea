package catalog

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quantumatlas/atlas-backend/internal/data/repos/crud"
	types "github.com/quantumatlas/atlas-backend/internal/domain"
	"github.com/quantumatlas/atlas-backend/internal/pkg/dbctx"
	"github.com/quantumatlas/atlas-backend/internal/pkg/paging"
	"github.com/quantumatlas/atlas-backend/internal/platform/logger"
)

type ProblemTypeRepo interface {
	Create(dbc dbctx.Context, rows ...*types.ProblemType) error
	GetByID(dbc dbctx.Context, id uuid.UUID, preloads ...string) (*types.ProblemType, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID, preloads ...string) ([]*types.ProblemType, error)
	List(dbc dbctx.Context, search string, p paging.Pageable, scopes ...func(*gorm.DB) *gorm.DB) ([]*types.ProblemType, int64, error)
	ListByAlgorithm(dbc dbctx.Context, algoID uuid.UUID) ([]*types.ProblemType, error)
	Save(dbc dbctx.Context, row *types.ProblemType) error
	ClearAlgorithms(dbc dbctx.Context, row *types.ProblemType) error
	ClearParent(dbc dbctx.Context, parentID uuid.UUID) error
	DeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error
}

type problemTypeRepo struct {
	crud.Table[types.ProblemType]
	log *logger.Logger
}

func NewProblemTypeRepo(db *gorm.DB, baseLog *logger.Logger) ProblemTypeRepo {
	return &problemTypeRepo{
		Table: crud.Table[types.ProblemType]{
			DB:            db,
			SearchColumns: []string{"problem_type.name"},
			SortColumns:   map[string]string{"name": "problem_type.name", "createdAt": "problem_type.created_at"},
			DefaultOrder:  "problem_type.name ASC",
		},
		log: baseLog.With("repo", "ProblemTypeRepo"),
	}
}

func (r *problemTypeRepo) ListByAlgorithm(dbc dbctx.Context, algoID uuid.UUID) ([]*types.ProblemType, error) {
	rows, _, err := r.List(dbc, "", paging.Unpaged(), crud.JoinedOn("algorithm_problem_types", "problem_type_id", "problem_type.id", "algorithm_id", algoID))
	return rows, err
}

func (r *problemTypeRepo) ClearAlgorithms(dbc dbctx.Context, row *types.ProblemType) error {
	return crud.ReplaceAssociation[types.ProblemType, types.Algorithm](r.Conn(dbc), row, "Algorithms", nil)
}

// ClearParent detaches the children of a problem type that is about to be removed.
func (r *problemTypeRepo) ClearParent(dbc dbctx.Context, parentID uuid.UUID) error {
	return r.Conn(dbc).
		Model(&types.ProblemType{}).
		Where("parent_problem_type_id = ?", parentID).
		Update("parent_problem_type_id", nil).Error
}

type ApplicationAreaRepo interface {
	Create(dbc dbctx.Context, rows ...*types.ApplicationArea) error
	GetByID(dbc dbctx.Context, id uuid.UUID, preloads ...string) (*types.ApplicationArea, error)
	List(dbc dbctx.Context, search string, p paging.Pageable, scopes ...func(*gorm.DB) *gorm.DB) ([]*types.ApplicationArea, int64, error)
	ListByAlgorithm(dbc dbctx.Context, algoID uuid.UUID) ([]*types.ApplicationArea, error)
	Save(dbc dbctx.Context, row *types.ApplicationArea) error
	ClearAlgorithms(dbc dbctx.Context, row *types.ApplicationArea) error
	DeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error
}

type applicationAreaRepo struct {
	crud.Table[types.ApplicationArea]
	log *logger.Logger
}

func NewApplicationAreaRepo(db *gorm.DB, baseLog *logger.Logger) ApplicationAreaRepo {
	return &applicationAreaRepo{
		Table: crud.Table[types.ApplicationArea]{
			DB:            db,
			SearchColumns: []string{"application_area.name"},
			SortColumns:   map[string]string{"name": "application_area.name", "createdAt": "application_area.created_at"},
			DefaultOrder:  "application_area.name ASC",
		},
		log: baseLog.With("repo", "ApplicationAreaRepo"),
	}
}

func (r *applicationAreaRepo) ListByAlgorithm(dbc dbctx.Context, algoID uuid.UUID) ([]*types.ApplicationArea, error) {
	rows, _, err := r.List(dbc, "", paging.Unpaged(), crud.JoinedOn("algorithm_application_areas", "application_area_id", "application_area.id", "algorithm_id", algoID))
	return rows, err
}

func (r *applicationAreaRepo) ClearAlgorithms(dbc dbctx.Context, row *types.ApplicationArea) error {
	return crud.ReplaceAssociation[types.ApplicationArea, types.Algorithm](r.Conn(dbc), row, "Algorithms", nil)
}

type PublicationRepo interface {
	Create(dbc dbctx.Context, rows ...*types.Publication) error
	GetByID(dbc dbctx.Context, id uuid.UUID, preloads ...string) (*types.Publication, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID, preloads ...string) ([]*types.Publication, error)
	Exists(dbc dbctx.Context, id uuid.UUID) (bool, error)
	List(dbc dbctx.Context, search string, p paging.Pageable, scopes ...func(*gorm.DB) *gorm.DB) ([]*types.Publication, int64, error)
	ListByAlgorithm(dbc dbctx.Context, algoID uuid.UUID) ([]*types.Publication, error)
	Save(dbc dbctx.Context, row *types.Publication) error
	ClearAlgorithms(dbc dbctx.Context, row *types.Publication) error
	DeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error
}

type publicationRepo struct {
	crud.Table[types.Publication]
	log *logger.Logger
}

func NewPublicationRepo(db *gorm.DB, baseLog *logger.Logger) PublicationRepo {
	return &publicationRepo{
		Table: crud.Table[types.Publication]{
			DB:            db,
			SearchColumns: []string{"publication.title"},
			SortColumns:   map[string]string{"title": "publication.title", "doi": "publication.doi", "createdAt": "publication.created_at"},
			DefaultOrder:  "publication.title ASC",
		},
		log: baseLog.With("repo", "PublicationRepo"),
	}
}

func (r *publicationRepo) ListByAlgorithm(dbc dbctx.Context, algoID uuid.UUID) ([]*types.Publication, error) {
	rows, _, err := r.List(dbc, "", paging.Unpaged(), crud.JoinedOn("algorithm_publications", "publication_id", "publication.id", "algorithm_id", algoID))
	return rows, err
}

func (r *publicationRepo) ClearAlgorithms(dbc dbctx.Context, row *types.Publication) error {
	return crud.ReplaceAssociation[types.Publication, types.Algorithm](r.Conn(dbc), row, "Algorithms", nil)
}
