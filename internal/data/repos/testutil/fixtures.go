package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/quantumatlas/atlas-backend/internal/domain"
)

func SeedAlgorithm(tb testing.TB, ctx context.Context, tx *gorm.DB, name string, model types.ComputationModel) *types.Algorithm {
	tb.Helper()
	a := &types.Algorithm{
		ID:               uuid.New(),
		Name:             name,
		ComputationModel: model,
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed algorithm: %v", err)
	}
	return a
}

func SeedAlgorithmRelationType(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.AlgorithmRelationType {
	tb.Helper()
	t := &types.AlgorithmRelationType{ID: uuid.New(), Name: name}
	if err := tx.WithContext(ctx).Create(t).Error; err != nil {
		tb.Fatalf("seed algorithm relation type: %v", err)
	}
	return t
}

func SeedAlgorithmRelation(tb testing.TB, ctx context.Context, tx *gorm.DB, source, target, typeID uuid.UUID) *types.AlgorithmRelation {
	tb.Helper()
	r := &types.AlgorithmRelation{
		ID:                      uuid.New(),
		SourceAlgorithmID:       source,
		TargetAlgorithmID:       target,
		AlgorithmRelationTypeID: typeID,
	}
	if err := tx.WithContext(ctx).Omit("SourceAlgorithm", "TargetAlgorithm", "AlgorithmRelationType").Create(r).Error; err != nil {
		tb.Fatalf("seed algorithm relation: %v", err)
	}
	return r
}

func SeedPatternRelationType(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.PatternRelationType {
	tb.Helper()
	t := &types.PatternRelationType{ID: uuid.New(), Name: name}
	if err := tx.WithContext(ctx).Create(t).Error; err != nil {
		tb.Fatalf("seed pattern relation type: %v", err)
	}
	return t
}

func SeedPublication(tb testing.TB, ctx context.Context, tx *gorm.DB, title string) *types.Publication {
	tb.Helper()
	p := &types.Publication{ID: uuid.New(), Title: title, DOI: "10.1000/" + title, URL: "https://example.org/" + title, Authors: []string{"Ada", "Alan"}}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed publication: %v", err)
	}
	return p
}

func SeedProblemType(tb testing.TB, ctx context.Context, tx *gorm.DB, name string, parent *uuid.UUID) *types.ProblemType {
	tb.Helper()
	p := &types.ProblemType{ID: uuid.New(), Name: name, ParentProblemTypeID: parent}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed problem type: %v", err)
	}
	return p
}

func SeedApplicationArea(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.ApplicationArea {
	tb.Helper()
	a := &types.ApplicationArea{ID: uuid.New(), Name: name}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed application area: %v", err)
	}
	return a
}

func SeedImplementation(tb testing.TB, ctx context.Context, tx *gorm.DB, algoID uuid.UUID, name string) *types.Implementation {
	tb.Helper()
	i := &types.Implementation{ID: uuid.New(), AlgorithmID: algoID, Name: name, ProgrammingLanguage: "Python"}
	if err := tx.WithContext(ctx).Omit("Tags", "SoftwarePlatforms", "Sdk").Create(i).Error; err != nil {
		tb.Fatalf("seed implementation: %v", err)
	}
	return i
}

func SeedSoftwarePlatform(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.SoftwarePlatform {
	tb.Helper()
	p := &types.SoftwarePlatform{ID: uuid.New(), Name: name, Version: "1.0"}
	if err := tx.WithContext(ctx).Omit("ComputeResources", "CloudServices", "Implementations").Create(p).Error; err != nil {
		tb.Fatalf("seed software platform: %v", err)
	}
	return p
}

func SeedProvider(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.Provider {
	tb.Helper()
	p := &types.Provider{ID: uuid.New(), Name: name}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed provider: %v", err)
	}
	return p
}

func SeedCloudService(tb testing.TB, ctx context.Context, tx *gorm.DB, name string, providerID *uuid.UUID) *types.CloudService {
	tb.Helper()
	c := &types.CloudService{ID: uuid.New(), Name: name, ProviderID: providerID}
	if err := tx.WithContext(ctx).Omit("Provider", "ComputeResources").Create(c).Error; err != nil {
		tb.Fatalf("seed cloud service: %v", err)
	}
	return c
}

func SeedComputeResource(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.ComputeResource {
	tb.Helper()
	c := &types.ComputeResource{ID: uuid.New(), Name: name, Vendor: "IBM", Technology: "superconducting"}
	if err := tx.WithContext(ctx).Omit("Properties", "CloudServices").Create(c).Error; err != nil {
		tb.Fatalf("seed compute resource: %v", err)
	}
	return c
}

func SeedPropertyType(tb testing.TB, ctx context.Context, tx *gorm.DB, name string, dt types.Datatype) *types.ComputeResourcePropertyType {
	tb.Helper()
	t := &types.ComputeResourcePropertyType{ID: uuid.New(), Name: name, Datatype: dt}
	if err := tx.WithContext(ctx).Create(t).Error; err != nil {
		tb.Fatalf("seed property type: %v", err)
	}
	return t
}

func PtrUUID(v uuid.UUID) *uuid.UUID { return &v }
