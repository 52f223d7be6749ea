package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/quantumatlas/atlas-backend/internal/data/repos/testutil"
	types "github.com/quantumatlas/atlas-backend/internal/domain"
	apperrors "github.com/quantumatlas/atlas-backend/internal/pkg/errors"
	"github.com/quantumatlas/atlas-backend/internal/pkg/paging"
)

func TestAlgorithmSaveAndFind(t *testing.T) {
	env := newTestEnv(t)

	saved, err := env.algorithms.Save(env.ctx, &types.Algorithm{
		Name:             "  Grover ",
		ComputationModel: "quantum",
		Quantum:          types.QuantumAttributes{NisqReady: true, SpeedUp: "quadratic"},
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if saved.ID == uuid.Nil {
		t.Fatalf("Save: expected id to be assigned")
	}
	got, err := env.algorithms.FindByID(env.ctx, saved.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.Name != "Grover" || got.ComputationModel != types.ComputationModelQuantum {
		t.Fatalf("unexpected algorithm: %+v", got)
	}
	if !got.Quantum.NisqReady || got.Quantum.SpeedUp != "quadratic" {
		t.Fatalf("quantum attributes not stored: %+v", got.Quantum)
	}

	if _, err := env.algorithms.FindByID(env.ctx, uuid.New()); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("FindByID unknown: want ErrNotFound got %v", err)
	}
}

func TestAlgorithmSaveRejectsQuantumAttributesOnClassic(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.algorithms.Save(env.ctx, &types.Algorithm{
		Name:             "Shor classic",
		ComputationModel: types.ComputationModelClassic,
		Quantum:          types.QuantumAttributes{NisqReady: true},
	})
	if !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("want ErrValidation got %v", err)
	}
}

func TestAlgorithmUpdate(t *testing.T) {
	env := newTestEnv(t)
	algo := env.seedAlgorithm(t, "Grover")

	if _, err := env.algorithms.Update(env.ctx, uuid.New(), &types.Algorithm{Name: "x", ComputationModel: "CLASSIC"}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("Update unknown: want ErrNotFound got %v", err)
	}

	updated, err := env.algorithms.Update(env.ctx, algo.ID, &types.Algorithm{Name: "Grover search", Acronym: "GS", ComputationModel: "CLASSIC"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.ID != algo.ID || updated.Acronym != "GS" || updated.ComputationModel != types.ComputationModelClassic {
		t.Fatalf("unexpected update result: %+v", updated)
	}
}

func TestAlgorithmFindAllSearch(t *testing.T) {
	env := newTestEnv(t)
	env.seedAlgorithm(t, "Grover")
	env.seedAlgorithm(t, "Shor")
	env.seedAlgorithm(t, "Quantum Phase Estimation")

	pg, err := env.algorithms.FindAll(env.ctx, paging.Of(0, 10), "GROV")
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if pg.Total != 1 || len(pg.Content) != 1 || pg.Content[0].Name != "Grover" {
		t.Fatalf("search result: %+v", pg)
	}

	all, err := env.algorithms.FindAll(env.ctx, paging.Of(0, 2), "")
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if all.Total != 3 || len(all.Content) != 2 || all.TotalPages() != 2 {
		t.Fatalf("unfiltered page: total=%d len=%d pages=%d", all.Total, len(all.Content), all.TotalPages())
	}
}

func TestAlgorithmPublicationReferencesAreIdempotent(t *testing.T) {
	env := newTestEnv(t)
	algo := env.seedAlgorithm(t, "Grover")
	pub := testutil.SeedPublication(t, env.ctx, env.db, "A fast quantum search")

	for i := 0; i < 2; i++ {
		if _, err := env.algorithms.AddPublicationReference(env.ctx, algo.ID, pub.ID); err != nil {
			t.Fatalf("AddPublicationReference #%d: %v", i, err)
		}
	}
	pubs, err := env.algorithms.ListPublications(env.ctx, algo.ID)
	if err != nil {
		t.Fatalf("ListPublications: %v", err)
	}
	if len(pubs) != 1 || pubs[0].ID != pub.ID {
		t.Fatalf("want exactly one linked publication, got %+v", pubs)
	}
	if _, err := env.algorithms.GetPublication(env.ctx, algo.ID, pub.ID); err != nil {
		t.Fatalf("GetPublication: %v", err)
	}

	if err := env.algorithms.DeletePublicationReference(env.ctx, algo.ID, uuid.New()); err != nil {
		t.Fatalf("removing an absent reference should be a no-op, got %v", err)
	}
	if err := env.algorithms.DeletePublicationReference(env.ctx, algo.ID, pub.ID); err != nil {
		t.Fatalf("DeletePublicationReference: %v", err)
	}
	if _, err := env.algorithms.GetPublication(env.ctx, algo.ID, pub.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("GetPublication after removal: want ErrNotFound got %v", err)
	}
	if _, err := env.publications.FindByID(env.ctx, pub.ID); err != nil {
		t.Fatalf("publication itself must survive unlinking: %v", err)
	}

	if _, err := env.algorithms.AddPublicationReference(env.ctx, algo.ID, uuid.New()); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("linking an unknown publication: want ErrNotFound got %v", err)
	}
}

func TestAlgorithmProblemTypeAndApplicationAreaReferences(t *testing.T) {
	env := newTestEnv(t)
	algo := env.seedAlgorithm(t, "QAOA")
	pt := testutil.SeedProblemType(t, env.ctx, env.db, "Optimization", nil)
	area := testutil.SeedApplicationArea(t, env.ctx, env.db, "Logistics")

	if _, err := env.algorithms.AddProblemTypeReference(env.ctx, algo.ID, pt.ID); err != nil {
		t.Fatalf("AddProblemTypeReference: %v", err)
	}
	if _, err := env.algorithms.AddApplicationAreaReference(env.ctx, algo.ID, area.ID); err != nil {
		t.Fatalf("AddApplicationAreaReference: %v", err)
	}
	pts, err := env.algorithms.ListProblemTypes(env.ctx, algo.ID)
	if err != nil || len(pts) != 1 {
		t.Fatalf("ListProblemTypes: %v %+v", err, pts)
	}
	areas, err := env.algorithms.ListApplicationAreas(env.ctx, algo.ID)
	if err != nil || len(areas) != 1 {
		t.Fatalf("ListApplicationAreas: %v %+v", err, areas)
	}
	if err := env.algorithms.DeleteProblemTypeReference(env.ctx, algo.ID, pt.ID); err != nil {
		t.Fatalf("DeleteProblemTypeReference: %v", err)
	}
	if _, err := env.algorithms.GetProblemType(env.ctx, algo.ID, pt.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("GetProblemType after removal: want ErrNotFound got %v", err)
	}
	if _, err := env.algorithms.GetApplicationArea(env.ctx, algo.ID, area.ID); err != nil {
		t.Fatalf("GetApplicationArea: %v", err)
	}
}

func TestAlgorithmRelationAddOrUpdate(t *testing.T) {
	env := newTestEnv(t)
	a := env.seedAlgorithm(t, "A")
	b := env.seedAlgorithm(t, "B")
	c := env.seedAlgorithm(t, "C")
	typ := testutil.SeedAlgorithmRelationType(t, env.ctx, env.db, "generalizes")

	rel, err := env.algorithms.AddOrUpdateAlgorithmRelation(env.ctx, a.ID, &types.AlgorithmRelation{
		SourceAlgorithmID:       a.ID,
		TargetAlgorithmID:       b.ID,
		AlgorithmRelationTypeID: typ.ID,
	})
	if err != nil {
		t.Fatalf("AddOrUpdateAlgorithmRelation: %v", err)
	}

	updated, err := env.algorithms.AddOrUpdateAlgorithmRelation(env.ctx, b.ID, &types.AlgorithmRelation{
		ID:                      rel.ID,
		SourceAlgorithmID:       a.ID,
		TargetAlgorithmID:       b.ID,
		AlgorithmRelationTypeID: typ.ID,
		Description:             "B is more specific",
	})
	if err != nil {
		t.Fatalf("update relation: %v", err)
	}
	if updated.ID != rel.ID || updated.Description != "B is more specific" {
		t.Fatalf("relation should be updated in place: %+v", updated)
	}

	for _, algoID := range []uuid.UUID{a.ID, b.ID} {
		rels, err := env.algorithms.GetAlgorithmRelations(env.ctx, algoID)
		if err != nil {
			t.Fatalf("GetAlgorithmRelations: %v", err)
		}
		if len(rels) != 1 || rels[0].AlgorithmRelationType == nil || rels[0].AlgorithmRelationType.Name != "generalizes" {
			t.Fatalf("relations of %s: %+v", algoID, rels)
		}
	}

	_, err = env.algorithms.AddOrUpdateAlgorithmRelation(env.ctx, c.ID, &types.AlgorithmRelation{
		SourceAlgorithmID:       a.ID,
		TargetAlgorithmID:       b.ID,
		AlgorithmRelationTypeID: typ.ID,
	})
	if !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("path algorithm outside relation: want ErrValidation got %v", err)
	}

	_, err = env.algorithms.AddOrUpdateAlgorithmRelation(env.ctx, a.ID, &types.AlgorithmRelation{
		SourceAlgorithmID:       a.ID,
		TargetAlgorithmID:       uuid.New(),
		AlgorithmRelationTypeID: typ.ID,
	})
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("unknown target: want ErrNotFound got %v", err)
	}

	if err := env.algorithms.DeleteAlgorithmRelation(env.ctx, c.ID, rel.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("delete through unrelated algorithm: want ErrNotFound got %v", err)
	}
	if err := env.algorithms.DeleteAlgorithmRelation(env.ctx, a.ID, rel.ID); err != nil {
		t.Fatalf("DeleteAlgorithmRelation: %v", err)
	}
}

func TestAlgorithmPatternRelations(t *testing.T) {
	env := newTestEnv(t)
	algo := env.seedAlgorithm(t, "VQE")
	other := env.seedAlgorithm(t, "QAOA")
	typ := testutil.SeedPatternRelationType(t, env.ctx, env.db, "is implementation of")

	rel, err := env.algorithms.AddPatternRelation(env.ctx, algo.ID, &types.PatternRelation{
		Pattern:               "https://patterns.example/warm-start",
		PatternRelationTypeID: typ.ID,
	})
	if err != nil {
		t.Fatalf("AddPatternRelation: %v", err)
	}
	if rel.AlgorithmID != algo.ID {
		t.Fatalf("pattern relation should belong to the path algorithm: %+v", rel)
	}

	if _, err := env.algorithms.UpdatePatternRelation(env.ctx, other.ID, rel.ID, &types.PatternRelation{Pattern: "x", PatternRelationTypeID: typ.ID}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("update through another algorithm: want ErrNotFound got %v", err)
	}
	updated, err := env.algorithms.UpdatePatternRelation(env.ctx, algo.ID, rel.ID, &types.PatternRelation{
		Pattern:               "https://patterns.example/variational",
		PatternRelationTypeID: typ.ID,
		Description:           "core",
	})
	if err != nil {
		t.Fatalf("UpdatePatternRelation: %v", err)
	}
	if updated.Pattern != "https://patterns.example/variational" || updated.Description != "core" {
		t.Fatalf("unexpected update: %+v", updated)
	}

	if _, err := env.algorithms.AddPatternRelation(env.ctx, algo.ID, &types.PatternRelation{Pattern: "p", PatternRelationTypeID: uuid.New()}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("unknown type: want ErrNotFound got %v", err)
	}

	if err := env.algorithms.DeletePatternRelation(env.ctx, algo.ID, rel.ID); err != nil {
		t.Fatalf("DeletePatternRelation: %v", err)
	}
	rels, err := env.algorithms.GetPatternRelations(env.ctx, algo.ID)
	if err != nil || len(rels) != 0 {
		t.Fatalf("GetPatternRelations after delete: %v %+v", err, rels)
	}
}

func TestAlgorithmDeleteCascades(t *testing.T) {
	env := newTestEnv(t)
	algo := env.seedAlgorithm(t, "Grover")
	other := env.seedAlgorithm(t, "Amplitude amplification")
	relType := testutil.SeedAlgorithmRelationType(t, env.ctx, env.db, "specializes")
	testutil.SeedAlgorithmRelation(t, env.ctx, env.db, other.ID, algo.ID, relType.ID)
	pub := testutil.SeedPublication(t, env.ctx, env.db, "Grover 1996")
	if _, err := env.algorithms.AddPublicationReference(env.ctx, algo.ID, pub.ID); err != nil {
		t.Fatalf("AddPublicationReference: %v", err)
	}
	impl := testutil.SeedImplementation(t, env.ctx, env.db, algo.ID, "grover.qasm")
	if _, err := env.implementations.AddTag(env.ctx, impl.ID, &types.Tag{Name: "search"}); err != nil {
		t.Fatalf("AddTag: %v", err)
	}
	propType := testutil.SeedPropertyType(t, env.ctx, env.db, "qubits", types.DatatypeInteger)
	if _, err := env.properties.Add(env.ctx, types.PropertyOwner{Kind: types.OwnerAlgorithm, ID: algo.ID}, &types.ComputeResourceProperty{TypeID: propType.ID, Value: "5"}); err != nil {
		t.Fatalf("add property: %v", err)
	}
	sketch, err := env.sketches.AddSketchToAlgorithm(env.ctx, algo.ID, SketchUpload{Data: pngBytes(t, 4, 4), MimeType: "image/png", BaseURL: "http://localhost/api"})
	if err != nil {
		t.Fatalf("AddSketchToAlgorithm: %v", err)
	}

	if err := env.algorithms.Delete(env.ctx, algo.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := env.algorithms.FindByID(env.ctx, algo.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("algorithm should be gone, got %v", err)
	}
	if _, err := env.implementations.FindByID(env.ctx, impl.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("implementation should be gone, got %v", err)
	}
	if img, err := env.imageRepo.GetByID(readCtx(env.ctx), sketch.ID); err != nil || img != nil {
		t.Fatalf("image should be gone: %v %+v", err, img)
	}
	rels, err := env.algorithms.GetAlgorithmRelations(env.ctx, other.ID)
	if err != nil || len(rels) != 0 {
		t.Fatalf("relations touching the deleted algorithm should be gone: %v %+v", err, rels)
	}
	props, _, err := env.propRepo.ListByOwner(readCtx(env.ctx), types.PropertyOwner{Kind: types.OwnerAlgorithm, ID: algo.ID}, paging.Unpaged())
	if err != nil || len(props) != 0 {
		t.Fatalf("properties should be gone: %v %+v", err, props)
	}
	if _, err := env.publications.FindByID(env.ctx, pub.ID); err != nil {
		t.Fatalf("publication must survive: %v", err)
	}
	if _, err := env.tags.FindByName(env.ctx, "search"); err != nil {
		t.Fatalf("tag must survive: %v", err)
	}
}
