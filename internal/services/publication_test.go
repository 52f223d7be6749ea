package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/quantumatlas/atlas-backend/internal/data/repos/testutil"
	types "github.com/quantumatlas/atlas-backend/internal/domain"
	apperrors "github.com/quantumatlas/atlas-backend/internal/pkg/errors"
	"github.com/quantumatlas/atlas-backend/internal/pkg/paging"
)

func TestPublicationUpdateOverwritesOnlyMutableFields(t *testing.T) {
	env := newTestEnv(t)
	pub, err := env.publications.Save(env.ctx, &types.Publication{
		Title:   "Quantum search",
		DOI:     "10.1000/182",
		URL:     "https://example.org/grover",
		Authors: datatypes.JSONSlice[string]{"L. Grover"},
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	updated, err := env.publications.Update(env.ctx, pub.ID, &types.Publication{
		ID:      uuid.New(),
		Title:   "A fast quantum mechanical algorithm for database search",
		DOI:     pub.DOI,
		URL:     pub.URL,
		Authors: pub.Authors,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err := env.publications.FindByID(env.ctx, pub.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if updated.ID != pub.ID || got.Title != "A fast quantum mechanical algorithm for database search" {
		t.Fatalf("title not updated: %+v", got)
	}
	if got.DOI != "10.1000/182" || got.URL != "https://example.org/grover" || len(got.Authors) != 1 || got.Authors[0] != "L. Grover" {
		t.Fatalf("other fields changed: %+v", got)
	}

	if _, err := env.publications.Update(env.ctx, uuid.New(), &types.Publication{Title: "x"}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("Update unknown: want ErrNotFound got %v", err)
	}
}

func TestPublicationCreateOrUpdateAllAndBulkDelete(t *testing.T) {
	env := newTestEnv(t)
	existing := testutil.SeedPublication(t, env.ctx, env.db, "old title")

	out, err := env.publications.CreateOrUpdateAll(env.ctx, []*types.Publication{
		{ID: existing.ID, Title: "new title"},
		{ID: uuid.New(), Title: "unknown id is inserted"},
		{Title: "no id"},
	})
	if err != nil {
		t.Fatalf("CreateOrUpdateAll: %v", err)
	}
	if len(out) != 3 || out[0].Title != "new title" {
		t.Fatalf("unexpected result: %+v", out)
	}
	pg, err := env.publications.FindAll(env.ctx, paging.Unpaged(), "")
	if err != nil || pg.Total != 3 {
		t.Fatalf("FindAll: %v total=%d", err, pg.Total)
	}

	if err := env.publications.DeletePublicationsByIDs(env.ctx, []uuid.UUID{out[1].ID, out[2].ID, uuid.New()}); err != nil {
		t.Fatalf("DeletePublicationsByIDs: %v", err)
	}
	_, ok, err := env.publications.FindOptionalByID(env.ctx, out[1].ID)
	if err != nil || ok {
		t.Fatalf("FindOptionalByID after delete: ok=%v err=%v", ok, err)
	}
	_, ok, err = env.publications.FindOptionalByID(env.ctx, existing.ID)
	if err != nil || !ok {
		t.Fatalf("FindOptionalByID survivor: ok=%v err=%v", ok, err)
	}
}

func TestPublicationDeleteClearsAlgorithmLinks(t *testing.T) {
	env := newTestEnv(t)
	algo := env.seedAlgorithm(t, "Shor")
	pub := testutil.SeedPublication(t, env.ctx, env.db, "Polynomial-time algorithms for prime factorization")
	if _, err := env.algorithms.AddPublicationReference(env.ctx, algo.ID, pub.ID); err != nil {
		t.Fatalf("AddPublicationReference: %v", err)
	}

	algos, err := env.publications.FindAlgorithms(env.ctx, pub.ID, paging.Unpaged())
	if err != nil || len(algos.Content) != 1 || algos.Content[0].ID != algo.ID {
		t.Fatalf("FindAlgorithms: %v %+v", err, algos)
	}

	if err := env.publications.DeleteByID(env.ctx, pub.ID); err != nil {
		t.Fatalf("DeleteByID: %v", err)
	}
	pubs, err := env.algorithms.ListPublications(env.ctx, algo.ID)
	if err != nil || len(pubs) != 0 {
		t.Fatalf("links should be cleared: %v %+v", err, pubs)
	}
	if err := env.publications.DeleteByID(env.ctx, pub.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("second delete: want ErrNotFound got %v", err)
	}
	if _, err := env.publications.FindAlgorithms(env.ctx, pub.ID, paging.Unpaged()); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("FindAlgorithms of deleted publication: want ErrNotFound got %v", err)
	}
}

func TestPublicationSearchIsCaseInsensitive(t *testing.T) {
	env := newTestEnv(t)
	testutil.SeedPublication(t, env.ctx, env.db, "Quantum Approximate Optimization")
	testutil.SeedPublication(t, env.ctx, env.db, "Variational eigensolvers")

	pg, err := env.publications.FindAll(env.ctx, paging.Of(0, 10), "approximate")
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if pg.Total != 1 || pg.Content[0].Title != "Quantum Approximate Optimization" {
		t.Fatalf("unexpected search result: %+v", pg.Content)
	}
}
