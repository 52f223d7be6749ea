package services

import (
	"errors"
	"testing"

	"github.com/quantumatlas/atlas-backend/internal/data/repos/testutil"
	types "github.com/quantumatlas/atlas-backend/internal/domain"
	apperrors "github.com/quantumatlas/atlas-backend/internal/pkg/errors"
)

func TestProblemTypeParentList(t *testing.T) {
	env := newTestEnv(t)
	root := testutil.SeedProblemType(t, env.ctx, env.db, "Optimization", nil)
	mid := testutil.SeedProblemType(t, env.ctx, env.db, "Combinatorial", testutil.PtrUUID(root.ID))
	leaf := testutil.SeedProblemType(t, env.ctx, env.db, "MaxCut", testutil.PtrUUID(mid.ID))

	chain, err := env.problemTypes.GetParentList(env.ctx, leaf.ID)
	if err != nil {
		t.Fatalf("GetParentList: %v", err)
	}
	if len(chain) != 3 || chain[0].ID != leaf.ID || chain[1].ID != mid.ID || chain[2].ID != root.ID {
		t.Fatalf("unexpected chain: %+v", chain)
	}

	if _, err := env.problemTypes.Update(env.ctx, root.ID, &types.ProblemType{Name: "Optimization", ParentProblemTypeID: testutil.PtrUUID(leaf.ID)}); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("cycle: want ErrValidation got %v", err)
	}
}

func TestProblemTypeParentListStopsOnStoredCycle(t *testing.T) {
	env := newTestEnv(t)
	a := testutil.SeedProblemType(t, env.ctx, env.db, "A", nil)
	b := testutil.SeedProblemType(t, env.ctx, env.db, "B", testutil.PtrUUID(a.ID))
	if err := env.db.Model(&types.ProblemType{}).Where("id = ?", a.ID).Update("parent_problem_type_id", b.ID).Error; err != nil {
		t.Fatalf("force cycle: %v", err)
	}

	chain, err := env.problemTypes.GetParentList(env.ctx, a.ID)
	if err != nil {
		t.Fatalf("GetParentList: %v", err)
	}
	if len(chain) != 2 {
		t.Fatalf("cycle should be cut after each node is seen once, got %d", len(chain))
	}
}

func TestProblemTypeDeleteDetachesChildrenAndAlgorithms(t *testing.T) {
	env := newTestEnv(t)
	algo := env.seedAlgorithm(t, "QAOA")
	parent := testutil.SeedProblemType(t, env.ctx, env.db, "Optimization", nil)
	child := testutil.SeedProblemType(t, env.ctx, env.db, "MaxCut", testutil.PtrUUID(parent.ID))
	if _, err := env.algorithms.AddProblemTypeReference(env.ctx, algo.ID, parent.ID); err != nil {
		t.Fatalf("AddProblemTypeReference: %v", err)
	}

	if err := env.problemTypes.Delete(env.ctx, parent.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	got, err := env.problemTypes.FindByID(env.ctx, child.ID)
	if err != nil {
		t.Fatalf("FindByID child: %v", err)
	}
	if got.ParentProblemTypeID != nil {
		t.Fatalf("child should be detached, parent=%v", got.ParentProblemTypeID)
	}
	pts, err := env.algorithms.ListProblemTypes(env.ctx, algo.ID)
	if err != nil || len(pts) != 0 {
		t.Fatalf("algorithm link should be cleared: %v %+v", err, pts)
	}
}

func TestApplicationAreaCRUD(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.applicationAreas.Save(env.ctx, &types.ApplicationArea{Name: " "}); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("blank name: want ErrValidation got %v", err)
	}
	area, err := env.applicationAreas.Save(env.ctx, &types.ApplicationArea{Name: "Chemistry"})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := env.applicationAreas.Update(env.ctx, area.ID, &types.ApplicationArea{Name: "Quantum chemistry"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := env.applicationAreas.Delete(env.ctx, area.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := env.applicationAreas.Delete(env.ctx, area.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("second Delete: want ErrNotFound got %v", err)
	}
}
