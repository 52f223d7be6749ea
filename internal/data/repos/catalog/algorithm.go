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

const (
	AssocProblemTypes     = "ProblemTypes"
	AssocApplicationAreas = "ApplicationAreas"
	AssocPublications     = "Publications"
)

type AlgorithmRepo interface {
	Create(dbc dbctx.Context, rows ...*types.Algorithm) error
	GetByID(dbc dbctx.Context, id uuid.UUID, preloads ...string) (*types.Algorithm, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID, preloads ...string) ([]*types.Algorithm, error)
	Exists(dbc dbctx.Context, id uuid.UUID) (bool, error)
	List(dbc dbctx.Context, search string, p paging.Pageable, scopes ...func(*gorm.DB) *gorm.DB) ([]*types.Algorithm, int64, error)
	ListByPublication(dbc dbctx.Context, publicationID uuid.UUID, p paging.Pageable) ([]*types.Algorithm, int64, error)
	Save(dbc dbctx.Context, row *types.Algorithm) error
	DeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error

	ReplaceProblemTypes(dbc dbctx.Context, algo *types.Algorithm, rows []*types.ProblemType) error
	ReplaceApplicationAreas(dbc dbctx.Context, algo *types.Algorithm, rows []*types.ApplicationArea) error
	ReplacePublications(dbc dbctx.Context, algo *types.Algorithm, rows []*types.Publication) error
}

type algorithmRepo struct {
	crud.Table[types.Algorithm]
	log *logger.Logger
}

func NewAlgorithmRepo(db *gorm.DB, baseLog *logger.Logger) AlgorithmRepo {
	return &algorithmRepo{
		Table: crud.Table[types.Algorithm]{
			DB:            db,
			SearchColumns: []string{"algorithm.name", "algorithm.acronym"},
			SortColumns: map[string]string{
				"name":             "algorithm.name",
				"acronym":          "algorithm.acronym",
				"computationModel": "algorithm.computation_model",
				"createdAt":        "algorithm.created_at",
			},
			DefaultOrder: "algorithm.name ASC",
		},
		log: baseLog.With("repo", "AlgorithmRepo"),
	}
}

func (r *algorithmRepo) ListByPublication(dbc dbctx.Context, publicationID uuid.UUID, p paging.Pageable) ([]*types.Algorithm, int64, error) {
	return r.List(dbc, "", p, crud.JoinedOn("algorithm_publications", "algorithm_id", "algorithm.id", "publication_id", publicationID))
}

func (r *algorithmRepo) ReplaceProblemTypes(dbc dbctx.Context, algo *types.Algorithm, rows []*types.ProblemType) error {
	algo.ProblemTypes = rows
	return crud.ReplaceAssociation(r.Conn(dbc), algo, AssocProblemTypes, rows)
}

func (r *algorithmRepo) ReplaceApplicationAreas(dbc dbctx.Context, algo *types.Algorithm, rows []*types.ApplicationArea) error {
	algo.ApplicationAreas = rows
	return crud.ReplaceAssociation(r.Conn(dbc), algo, AssocApplicationAreas, rows)
}

func (r *algorithmRepo) ReplacePublications(dbc dbctx.Context, algo *types.Algorithm, rows []*types.Publication) error {
	algo.Publications = rows
	return crud.ReplaceAssociation(r.Conn(dbc), algo, AssocPublications, rows)
}
