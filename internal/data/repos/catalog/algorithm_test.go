package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/quantumatlas/atlas-backend/internal/data/repos/testutil"
	types "github.com/quantumatlas/atlas-backend/internal/domain"
	"github.com/quantumatlas/atlas-backend/internal/pkg/dbctx"
	"github.com/quantumatlas/atlas-backend/internal/pkg/paging"
)

func TestAlgorithmRepoListSearchAndPaging(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewAlgorithmRepo(db, testutil.Logger(t))

	grover := &types.Algorithm{Name: "Grover", Acronym: "GRV", ComputationModel: types.ComputationModelQuantum}
	shor := &types.Algorithm{Name: "Shor", ComputationModel: types.ComputationModelQuantum}
	qaoa := &types.Algorithm{Name: "Quantum Approximate Optimization", Acronym: "QAOA", ComputationModel: types.ComputationModelHybrid}
	if err := repo.Create(dbc, grover, shor, qaoa); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if grover.ID == uuid.Nil {
		t.Fatal("expected generated id")
	}

	rows, total, err := repo.List(dbc, "", paging.Of(0, 2))
	if err != nil || total != 3 || len(rows) != 2 {
		t.Fatalf("List page: total=%d len=%d err=%v", total, len(rows), err)
	}
	if rows[0].Name != "Grover" {
		t.Fatalf("default order by name, got %q first", rows[0].Name)
	}

	rows, total, err = repo.List(dbc, "qaO", paging.Unpaged())
	if err != nil || total != 1 || len(rows) != 1 || rows[0].ID != qaoa.ID {
		t.Fatalf("search by acronym: total=%d rows=%v err=%v", total, rows, err)
	}
	rows, _, err = repo.List(dbc, "SHO", paging.Unpaged())
	if err != nil || len(rows) != 1 || rows[0].ID != shor.ID {
		t.Fatalf("search by name: rows=%v err=%v", rows, err)
	}

	got, err := repo.GetByID(dbc, grover.ID)
	if err != nil || got == nil || got.Acronym != "GRV" {
		t.Fatalf("GetByID: got=%v err=%v", got, err)
	}
}

func TestAlgorithmRepoReplaceReferences(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	log := testutil.Logger(t)
	algos := NewAlgorithmRepo(db, log)
	pubs := NewPublicationRepo(db, log)
	pts := NewProblemTypeRepo(db, log)

	a := testutil.SeedAlgorithm(t, ctx, tx, "Grover", types.ComputationModelQuantum)
	p1 := testutil.SeedPublication(t, ctx, tx, "p1")
	p2 := testutil.SeedPublication(t, ctx, tx, "p2")
	pt := testutil.SeedProblemType(t, ctx, tx, "search", nil)

	if err := algos.ReplacePublications(dbc, a, []*types.Publication{p1, p2}); err != nil {
		t.Fatalf("ReplacePublications: %v", err)
	}
	if rows, err := pubs.ListByAlgorithm(dbc, a.ID); err != nil || len(rows) != 2 {
		t.Fatalf("ListByAlgorithm: len=%d err=%v", len(rows), err)
	}
	if err := algos.ReplacePublications(dbc, a, []*types.Publication{p2}); err != nil {
		t.Fatalf("ReplacePublications shrink: %v", err)
	}
	if rows, err := pubs.ListByAlgorithm(dbc, a.ID); err != nil || len(rows) != 1 || rows[0].ID != p2.ID {
		t.Fatalf("after shrink: rows=%v err=%v", rows, err)
	}
	if rows, total, err := algos.ListByPublication(dbc, p2.ID, paging.Unpaged()); err != nil || total != 1 || rows[0].ID != a.ID {
		t.Fatalf("ListByPublication: rows=%v err=%v", rows, err)
	}
	if err := pubs.ClearAlgorithms(dbc, p2); err != nil {
		t.Fatalf("ClearAlgorithms: %v", err)
	}
	if rows, err := pubs.ListByAlgorithm(dbc, a.ID); err != nil || len(rows) != 0 {
		t.Fatalf("after clear: len=%d err=%v", len(rows), err)
	}

	if err := algos.ReplaceProblemTypes(dbc, a, []*types.ProblemType{pt}); err != nil {
		t.Fatalf("ReplaceProblemTypes: %v", err)
	}
	if rows, err := pts.ListByAlgorithm(dbc, a.ID); err != nil || len(rows) != 1 {
		t.Fatalf("problem types: len=%d err=%v", len(rows), err)
	}
	if err := algos.ReplaceProblemTypes(dbc, a, nil); err != nil {
		t.Fatalf("ReplaceProblemTypes empty: %v", err)
	}
	if rows, err := pts.ListByAlgorithm(dbc, a.ID); err != nil || len(rows) != 0 {
		t.Fatalf("problem types after clear: len=%d err=%v", len(rows), err)
	}
}
