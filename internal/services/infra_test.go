package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/quantumatlas/atlas-backend/internal/data/repos/testutil"
	types "github.com/quantumatlas/atlas-backend/internal/domain"
	apperrors "github.com/quantumatlas/atlas-backend/internal/pkg/errors"
	"github.com/quantumatlas/atlas-backend/internal/pkg/paging"
	"github.com/quantumatlas/atlas-backend/internal/platform/secretbox"
)

const testCredentialsKey = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

func openKeys(t *testing.T, env *testEnv, sealer *secretbox.Sealer, id uuid.UUID) (string, string, error) {
	t.Helper()
	p, err := env.providers.FindByID(env.ctx, id)
	if err != nil {
		return "", "", err
	}
	access, err := sealer.Open(p.AccessKey)
	if err != nil {
		return "", "", err
	}
	secret, err := sealer.Open(p.SecretKey)
	return access, secret, err
}

func TestProviderKeysAreSealedAndKeptOnMaskedUpdate(t *testing.T) {
	sealer, err := secretbox.NewSealer(testCredentialsKey)
	if err != nil {
		t.Fatalf("NewSealer: %v", err)
	}
	env := newTestEnv(t, func(o *envOptions) { o.sealer = sealer })

	p, err := env.providers.Save(env.ctx, &types.Provider{
		Name:      "IBM",
		AccessKey: "access-1",
		SecretKey: "secret-1",
		OtherData: datatypes.JSON(`{"region":"eu"}`),
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	stored, err := env.providers.FindByID(env.ctx, p.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if !secretbox.IsSealed(stored.SecretKey) || strings.Contains(stored.SecretKey, "secret-1") {
		t.Fatalf("secret key must be sealed at rest, got %q", stored.SecretKey)
	}

	if _, err := env.providers.Update(env.ctx, p.ID, &types.Provider{Name: "IBM Quantum", AccessKey: types.MaskedKey, SecretKey: ""}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	access, secret, err := openKeys(t, env, sealer, p.ID)
	if err != nil {
		t.Fatalf("openKeys: %v", err)
	}
	if access != "access-1" || secret != "secret-1" {
		t.Fatalf("masked update must keep keys, got %q/%q", access, secret)
	}

	if _, err := env.providers.Update(env.ctx, p.ID, &types.Provider{Name: "IBM Quantum", AccessKey: "access-2"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	access, _, err = openKeys(t, env, sealer, p.ID)
	if err != nil || access != "access-2" {
		t.Fatalf("new key should be stored: %q %v", access, err)
	}
}

func TestProviderDeleteWhileReferenced(t *testing.T) {
	env := newTestEnv(t)
	p := testutil.SeedProvider(t, env.ctx, env.db, "AWS")
	svc := testutil.SeedCloudService(t, env.ctx, env.db, "Braket", testutil.PtrUUID(p.ID))

	if err := env.providers.Delete(env.ctx, p.ID); !errors.Is(err, apperrors.ErrConsistency) {
		t.Fatalf("want ErrConsistency got %v", err)
	}
	if err := env.cloudServices.Delete(env.ctx, svc.ID); err != nil {
		t.Fatalf("cloud service Delete: %v", err)
	}
	if err := env.providers.Delete(env.ctx, p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}

func TestCloudServiceCreateOrUpdate(t *testing.T) {
	env := newTestEnv(t)
	p := testutil.SeedProvider(t, env.ctx, env.db, "Azure")
	res := testutil.SeedComputeResource(t, env.ctx, env.db, "IonQ Harmony")

	svc, err := env.cloudServices.CreateOrUpdate(env.ctx, &types.CloudService{
		Name:             "Azure Quantum",
		ProviderID:       testutil.PtrUUID(p.ID),
		ComputeResources: []*types.ComputeResource{{ID: res.ID}},
	})
	if err != nil {
		t.Fatalf("CreateOrUpdate insert: %v", err)
	}
	linked, err := env.cloudServices.FindComputeResources(env.ctx, svc.ID, paging.Unpaged())
	if err != nil || linked.Total != 1 {
		t.Fatalf("FindComputeResources: %v %+v", err, linked)
	}

	updated, err := env.cloudServices.CreateOrUpdate(env.ctx, &types.CloudService{ID: svc.ID, Name: "Azure Quantum", CostModel: "pay-per-shot"})
	if err != nil {
		t.Fatalf("CreateOrUpdate update: %v", err)
	}
	if updated.ID != svc.ID || updated.CostModel != "pay-per-shot" || updated.ProviderID != nil {
		t.Fatalf("unexpected update: %+v", updated)
	}
	linked, err = env.cloudServices.FindComputeResources(env.ctx, svc.ID, paging.Unpaged())
	if err != nil || linked.Total != 0 {
		t.Fatalf("compute resources should be overwritten: %v %+v", err, linked)
	}

	if _, err := env.cloudServices.CreateOrUpdate(env.ctx, &types.CloudService{ID: uuid.New(), Name: "ghost"}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("unknown id: want ErrNotFound got %v", err)
	}
	if _, err := env.cloudServices.CreateOrUpdate(env.ctx, &types.CloudService{Name: "x", ComputeResources: []*types.ComputeResource{{ID: uuid.New()}}}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("unknown compute resource: want ErrNotFound got %v", err)
	}

	all, err := env.cloudServices.CreateOrUpdateAll(env.ctx, []*types.CloudService{{Name: "one"}, {Name: "two"}})
	if err != nil || len(all) != 2 {
		t.Fatalf("CreateOrUpdateAll: %v %+v", err, all)
	}
}

func TestComputeResourceDeleteCascades(t *testing.T) {
	env := newTestEnv(t)
	res := testutil.SeedComputeResource(t, env.ctx, env.db, "ibmq_lima")
	svc := testutil.SeedCloudService(t, env.ctx, env.db, "IBM Cloud", nil)
	platform := testutil.SeedSoftwarePlatform(t, env.ctx, env.db, "Qiskit")
	typ := testutil.SeedPropertyType(t, env.ctx, env.db, "qubits", types.DatatypeInteger)
	owner := types.PropertyOwner{Kind: types.OwnerComputeResource, ID: res.ID}

	if _, err := env.cloudServices.AddComputeResourceReference(env.ctx, svc.ID, res.ID); err != nil {
		t.Fatalf("AddComputeResourceReference: %v", err)
	}
	if _, err := env.platforms.AddComputeResourceReference(env.ctx, platform.ID, res.ID); err != nil {
		t.Fatalf("platform AddComputeResourceReference: %v", err)
	}
	if _, err := env.properties.Add(env.ctx, owner, &types.ComputeResourceProperty{TypeID: typ.ID, Value: "5"}); err != nil {
		t.Fatalf("Add property: %v", err)
	}

	if err := env.computeResources.Delete(env.ctx, res.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if n, err := env.propRepo.CountByType(readCtx(env.ctx), typ.ID); err != nil || n != 0 {
		t.Fatalf("owned properties should be removed: n=%d err=%v", n, err)
	}
	linked, err := env.cloudServices.FindComputeResources(env.ctx, svc.ID, paging.Unpaged())
	if err != nil || linked.Total != 0 {
		t.Fatalf("cloud service link should be cleared: %v %+v", err, linked)
	}
	onPlatform, err := env.platforms.FindComputeResources(env.ctx, platform.ID, paging.Unpaged())
	if err != nil || onPlatform.Total != 0 {
		t.Fatalf("platform link should be cleared: %v %+v", err, onPlatform)
	}
}

func TestComputeResourceSearchAndValidation(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.computeResources.Save(env.ctx, &types.ComputeResource{Name: "x", QuantumComputationModel: "analog"}); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("unknown model: want ErrValidation got %v", err)
	}
	if _, err := env.computeResources.Save(env.ctx, &types.ComputeResource{Name: "Aspen-9", Vendor: "Rigetti", QuantumComputationModel: "gate_based"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	testutil.SeedComputeResource(t, env.ctx, env.db, "Falcon")
	pg, err := env.computeResources.FindAll(env.ctx, paging.Of(0, 10), "rigetti")
	if err != nil || pg.Total != 1 || pg.Content[0].QuantumComputationModel != "GATE_BASED" {
		t.Fatalf("FindAll: %v %+v", err, pg.Content)
	}
}

func TestPropertyValidation(t *testing.T) {
	env := newTestEnv(t)
	algo := env.seedAlgorithm(t, "Grover")
	other := env.seedAlgorithm(t, "Shor")
	intType := testutil.SeedPropertyType(t, env.ctx, env.db, "qubits", types.DatatypeInteger)
	floatType := testutil.SeedPropertyType(t, env.ctx, env.db, "t1", types.DatatypeFloat)
	owner := types.PropertyOwner{Kind: types.OwnerAlgorithm, ID: algo.ID}

	if _, err := env.properties.Add(env.ctx, owner, &types.ComputeResourceProperty{TypeID: intType.ID, Value: "many"}); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("non-integer value: want ErrValidation got %v", err)
	}
	if _, err := env.properties.Add(env.ctx, owner, &types.ComputeResourceProperty{TypeID: uuid.New(), Value: "1"}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("unknown type: want ErrNotFound got %v", err)
	}
	prop, err := env.properties.Add(env.ctx, owner, &types.ComputeResourceProperty{TypeID: floatType.ID, Value: "12.5"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if prop.Type == nil || prop.Type.Name != "t1" || !prop.OwnedBy(owner) {
		t.Fatalf("unexpected property: %+v", prop)
	}

	wrongOwner := types.PropertyOwner{Kind: types.OwnerAlgorithm, ID: other.ID}
	if _, err := env.properties.Update(env.ctx, wrongOwner, prop.ID, &types.ComputeResourceProperty{TypeID: floatType.ID, Value: "1"}); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("wrong owner: want ErrValidation got %v", err)
	}
	if err := env.properties.Delete(env.ctx, wrongOwner, prop.ID); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("wrong owner delete: want ErrValidation got %v", err)
	}

	updated, err := env.properties.Update(env.ctx, owner, prop.ID, &types.ComputeResourceProperty{TypeID: intType.ID, Value: "7"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.TypeID != intType.ID || updated.Value != "7" {
		t.Fatalf("unexpected update: %+v", updated)
	}
	pg, err := env.properties.FindByOwner(env.ctx, owner, paging.Unpaged())
	if err != nil || pg.Total != 1 || pg.Content[0].Type == nil {
		t.Fatalf("FindByOwner: %v %+v", err, pg)
	}
	if err := env.properties.Delete(env.ctx, owner, prop.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := env.properties.FindByOwner(env.ctx, types.PropertyOwner{Kind: types.OwnerImplementation, ID: uuid.New()}, paging.Unpaged()); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("unknown owner: want ErrNotFound got %v", err)
	}
}
