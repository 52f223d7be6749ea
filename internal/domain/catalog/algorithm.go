package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/quantumatlas/atlas-backend/internal/domain/base"
	"gorm.io/gorm"
)

type ComputationModel string

const (
	ComputationModelClassic ComputationModel = "CLASSIC"
	ComputationModelQuantum ComputationModel = "QUANTUM"
	ComputationModelHybrid  ComputationModel = "HYBRID"
)

func (m ComputationModel) Valid() bool {
	switch m {
	case ComputationModelClassic, ComputationModelQuantum, ComputationModelHybrid:
		return true
	}
	return false
}

// CarriesQuantumAttributes reports whether the variant stores quantum specific fields.
func (m ComputationModel) CarriesQuantumAttributes() bool {
	return m == ComputationModelQuantum || m == ComputationModelHybrid
}

type QuantumComputationModel string

const (
	QuantumComputationModelGateBased        QuantumComputationModel = "GATE_BASED"
	QuantumComputationModelMeasurementBased QuantumComputationModel = "MEASUREMENT_BASED"
	QuantumComputationModelAnnealing        QuantumComputationModel = "QUANTUM_ANNEALING"
)

func (m QuantumComputationModel) Valid() bool {
	switch m {
	case "", QuantumComputationModelGateBased, QuantumComputationModelMeasurementBased, QuantumComputationModelAnnealing:
		return true
	}
	return false
}

// QuantumAttributes only hold data for QUANTUM and HYBRID algorithms.
type QuantumAttributes struct {
	NisqReady               bool                    `gorm:"column:nisq_ready;not null;default:false" json:"nisq_ready"`
	QuantumComputationModel QuantumComputationModel `gorm:"column:quantum_computation_model" json:"quantum_computation_model,omitempty"`
	SpeedUp                 string                  `gorm:"column:speed_up" json:"speed_up,omitempty"`
}

func (q QuantumAttributes) IsZero() bool {
	return !q.NisqReady && q.QuantumComputationModel == "" && q.SpeedUp == ""
}

type Algorithm struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Name             string           `gorm:"column:name;not null;index" json:"name"`
	Acronym          string           `gorm:"column:acronym" json:"acronym,omitempty"`
	Intent           string           `gorm:"column:intent;type:text" json:"intent,omitempty"`
	Problem          string           `gorm:"column:problem;type:text" json:"problem,omitempty"`
	InputFormat      string           `gorm:"column:input_format;type:text" json:"input_format,omitempty"`
	AlgoParameter    string           `gorm:"column:algo_parameter;type:text" json:"algo_parameter,omitempty"`
	OutputFormat     string           `gorm:"column:output_format;type:text" json:"output_format,omitempty"`
	Solution         string           `gorm:"column:solution;type:text" json:"solution,omitempty"`
	AssumptionsText  string           `gorm:"column:assumptions;type:text" json:"assumptions,omitempty"`
	ComputationModel ComputationModel `gorm:"column:computation_model;not null;index" json:"computation_model"`

	Quantum QuantumAttributes `gorm:"embedded" json:"quantum"`

	ProblemTypes     []*ProblemType     `gorm:"many2many:algorithm_problem_types" json:"-"`
	ApplicationAreas []*ApplicationArea `gorm:"many2many:algorithm_application_areas" json:"-"`
	Publications     []*Publication     `gorm:"many2many:algorithm_publications" json:"-"`
	PatternRelations []*PatternRelation `gorm:"foreignKey:AlgorithmID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Algorithm) TableName() string { return "algorithm" }

func (a *Algorithm) BeforeCreate(*gorm.DB) error {
	base.EnsureID(&a.ID)
	return nil
}

// Normalize enforces the variant rules: the computation model must be known and
// quantum attributes may only be present on QUANTUM and HYBRID algorithms.
func (a *Algorithm) Normalize() error {
	a.Name = strings.TrimSpace(a.Name)
	if a.Name == "" {
		return fmt.Errorf("algorithm name is required")
	}
	if a.ComputationModel == "" {
		return fmt.Errorf("computation model is required")
	}
	a.ComputationModel = ComputationModel(strings.ToUpper(string(a.ComputationModel)))
	if !a.ComputationModel.Valid() {
		return fmt.Errorf("unknown computation model %q", a.ComputationModel)
	}
	if !a.ComputationModel.CarriesQuantumAttributes() {
		if !a.Quantum.IsZero() {
			return fmt.Errorf("quantum attributes are not allowed on %s algorithms", a.ComputationModel)
		}
		return nil
	}
	if !a.Quantum.QuantumComputationModel.Valid() {
		return fmt.Errorf("unknown quantum computation model %q", a.Quantum.QuantumComputationModel)
	}
	return nil
}

// ApplyUpdate copies the mutable fields of in onto a. ID and relationships are kept.
func (a *Algorithm) ApplyUpdate(in *Algorithm) {
	a.Name = in.Name
	a.Acronym = in.Acronym
	a.Intent = in.Intent
	a.Problem = in.Problem
	a.InputFormat = in.InputFormat
	a.AlgoParameter = in.AlgoParameter
	a.OutputFormat = in.OutputFormat
	a.Solution = in.Solution
	a.AssumptionsText = in.AssumptionsText
	a.ComputationModel = in.ComputationModel
	a.Quantum = in.Quantum
	if !a.ComputationModel.CarriesQuantumAttributes() {
		a.Quantum = QuantumAttributes{}
	}
}
