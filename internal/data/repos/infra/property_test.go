package infra

import (
	"context"
	"testing"

	"github.com/quantumatlas/atlas-backend/internal/data/repos/testutil"
	types "github.com/quantumatlas/atlas-backend/internal/domain"
	"github.com/quantumatlas/atlas-backend/internal/pkg/dbctx"
	"github.com/quantumatlas/atlas-backend/internal/pkg/paging"
)

func TestComputeResourcePropertyRepoByOwner(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewComputeResourcePropertyRepo(db, testutil.Logger(t))

	qubits := testutil.SeedPropertyType(t, ctx, tx, "qubits", types.DatatypeInteger)
	cr := testutil.SeedComputeResource(t, ctx, tx, "ibmq")
	a := testutil.SeedAlgorithm(t, ctx, tx, "Grover", types.ComputationModelQuantum)

	crOwner := types.PropertyOwner{Kind: types.OwnerComputeResource, ID: cr.ID}
	algoOwner := types.PropertyOwner{Kind: types.OwnerAlgorithm, ID: a.ID}

	p1 := &types.ComputeResourceProperty{TypeID: qubits.ID, Value: "27"}
	p1.SetOwner(crOwner)
	p2 := &types.ComputeResourceProperty{TypeID: qubits.ID, Value: "5"}
	p2.SetOwner(algoOwner)
	if err := repo.Create(dbc, p1, p2); err != nil {
		t.Fatalf("Create: %v", err)
	}

	rows, total, err := repo.ListByOwner(dbc, crOwner, paging.Unpaged())
	if err != nil || total != 1 || rows[0].ID != p1.ID {
		t.Fatalf("ListByOwner: rows=%v err=%v", rows, err)
	}
	if rows[0].Type == nil || rows[0].Type.Name != "qubits" {
		t.Fatalf("type not preloaded: %+v", rows[0])
	}
	if n, err := repo.CountByType(dbc, qubits.ID); err != nil || n != 2 {
		t.Fatalf("CountByType: n=%d err=%v", n, err)
	}
	if err := repo.DeleteByOwner(dbc, crOwner); err != nil {
		t.Fatalf("DeleteByOwner: %v", err)
	}
	if n, err := repo.CountByType(dbc, qubits.ID); err != nil || n != 1 {
		t.Fatalf("after DeleteByOwner: n=%d err=%v", n, err)
	}
}

func TestCloudServiceRepoLinks(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	log := testutil.Logger(t)
	services := NewCloudServiceRepo(db, log)
	resources := NewComputeResourceRepo(db, log)

	prov := testutil.SeedProvider(t, ctx, tx, "IBM")
	svc := testutil.SeedCloudService(t, ctx, tx, "IBM Quantum", testutil.PtrUUID(prov.ID))
	cr := testutil.SeedComputeResource(t, ctx, tx, "ibmq_16")

	if n, err := services.CountByProvider(dbc, prov.ID); err != nil || n != 1 {
		t.Fatalf("CountByProvider: n=%d err=%v", n, err)
	}
	if err := services.ReplaceComputeResources(dbc, svc, []*types.ComputeResource{cr}); err != nil {
		t.Fatalf("ReplaceComputeResources: %v", err)
	}
	if rows, total, err := resources.ListByCloudService(dbc, svc.ID, paging.Unpaged()); err != nil || total != 1 || rows[0].ID != cr.ID {
		t.Fatalf("ListByCloudService: rows=%v err=%v", rows, err)
	}
	if rows, total, err := services.ListByComputeResource(dbc, cr.ID, paging.Unpaged()); err != nil || total != 1 || rows[0].ID != svc.ID {
		t.Fatalf("ListByComputeResource: rows=%v err=%v", rows, err)
	}
	if err := resources.ClearCloudServices(dbc, cr); err != nil {
		t.Fatalf("ClearCloudServices: %v", err)
	}
	if _, total, err := services.ListByComputeResource(dbc, cr.ID, paging.Unpaged()); err != nil || total != 0 {
		t.Fatalf("after clear: total=%d err=%v", total, err)
	}
}
