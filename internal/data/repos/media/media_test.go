package media

import (
	"context"
	"testing"

	"github.com/quantumatlas/atlas-backend/internal/data/repos/testutil"
	types "github.com/quantumatlas/atlas-backend/internal/domain"
	"github.com/quantumatlas/atlas-backend/internal/pkg/dbctx"
)

func TestSketchAndImageRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	log := testutil.Logger(t)
	sketches := NewSketchRepo(db, log)
	images := NewImageRepo(db, log)

	a := testutil.SeedAlgorithm(t, ctx, tx, "Grover", types.ComputationModelQuantum)
	s := &types.Sketch{AlgorithmID: a.ID, Description: "flowchart"}
	if err := sketches.Create(dbc, s); err != nil {
		t.Fatalf("Create sketch: %v", err)
	}
	if err := sketches.UpdateImageURL(dbc, s.ID, "http://x/img"); err != nil {
		t.Fatalf("UpdateImageURL: %v", err)
	}
	img := &types.Image{ID: s.ID, Data: []byte{1, 2, 3}, MimeType: "image/png", Width: 1, Height: 1}
	if err := images.Create(dbc, img); err != nil {
		t.Fatalf("Create image: %v", err)
	}

	rows, err := sketches.ListByAlgorithm(dbc, a.ID)
	if err != nil || len(rows) != 1 || rows[0].ImageURL != "http://x/img" {
		t.Fatalf("ListByAlgorithm: rows=%v err=%v", rows, err)
	}
	got, err := images.GetByID(dbc, s.ID)
	if err != nil || got == nil || string(got.Data) != string([]byte{1, 2, 3}) {
		t.Fatalf("GetByID image: got=%v err=%v", got, err)
	}
}
