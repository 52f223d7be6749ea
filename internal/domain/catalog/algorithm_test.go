package catalog

import "testing"

func TestAlgorithmNormalizeVariants(t *testing.T) {
	a := &Algorithm{Name: " Grover ", ComputationModel: "quantum", Quantum: QuantumAttributes{NisqReady: true, QuantumComputationModel: QuantumComputationModelGateBased}}
	if err := a.Normalize(); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if a.Name != "Grover" || a.ComputationModel != ComputationModelQuantum {
		t.Fatalf("unexpected normalized algorithm: %+v", a)
	}

	classic := &Algorithm{Name: "Shor pre", ComputationModel: ComputationModelClassic, Quantum: QuantumAttributes{SpeedUp: "exponential"}}
	if err := classic.Normalize(); err == nil {
		t.Fatal("expected CLASSIC with quantum fields to be rejected")
	}

	bad := &Algorithm{Name: "x", ComputationModel: "ANALOG"}
	if err := bad.Normalize(); err == nil {
		t.Fatal("expected unknown computation model to be rejected")
	}
	if err := (&Algorithm{ComputationModel: ComputationModelClassic}).Normalize(); err == nil {
		t.Fatal("expected missing name to be rejected")
	}
}

func TestAlgorithmApplyUpdateZeroesQuantumForClassic(t *testing.T) {
	a := &Algorithm{Name: "VQE", ComputationModel: ComputationModelHybrid, Quantum: QuantumAttributes{NisqReady: true}}
	a.ApplyUpdate(&Algorithm{Name: "VQE", ComputationModel: ComputationModelClassic, Quantum: QuantumAttributes{NisqReady: true}})
	if !a.Quantum.IsZero() {
		t.Fatalf("quantum attributes must be cleared, got %+v", a.Quantum)
	}
}
