package dto

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"

	types "github.com/quantumatlas/atlas-backend/internal/domain"
)

// Algorithm is the wire form of an algorithm. The quantum fields are only
// present for QUANTUM and HYBRID algorithms.
type Algorithm struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Acronym          string    `json:"acronym,omitempty"`
	Intent           string    `json:"intent,omitempty"`
	Problem          string    `json:"problem,omitempty"`
	InputFormat      string    `json:"input_format,omitempty"`
	AlgoParameter    string    `json:"algo_parameter,omitempty"`
	OutputFormat     string    `json:"output_format,omitempty"`
	Solution         string    `json:"solution,omitempty"`
	Assumptions      string    `json:"assumptions,omitempty"`
	ComputationModel string    `json:"computation_model"`

	NisqReady               *bool  `json:"nisq_ready,omitempty"`
	QuantumComputationModel string `json:"quantum_computation_model,omitempty"`
	SpeedUp                 string `json:"speed_up,omitempty"`

	Links Links `json:"_links,omitempty"`
}

func FromAlgorithm(base string, a *types.Algorithm) Algorithm {
	out := Algorithm{
		ID:               a.ID,
		Name:             a.Name,
		Acronym:          a.Acronym,
		Intent:           a.Intent,
		Problem:          a.Problem,
		InputFormat:      a.InputFormat,
		AlgoParameter:    a.AlgoParameter,
		OutputFormat:     a.OutputFormat,
		Solution:         a.Solution,
		Assumptions:      a.AssumptionsText,
		ComputationModel: string(a.ComputationModel),
	}
	if a.ComputationModel.CarriesQuantumAttributes() {
		nisq := a.Quantum.NisqReady
		out.NisqReady = &nisq
		out.QuantumComputationModel = string(a.Quantum.QuantumComputationModel)
		out.SpeedUp = a.Quantum.SpeedUp
	}
	self := Href(base, "algorithms", a.ID)
	out.Links = Resource(self).
		Add("publications", Href(self, "publications")).
		Add("problem-types", Href(self, "problem-types")).
		Add("application-areas", Href(self, "application-areas")).
		Add("pattern-relations", Href(self, "pattern-relations")).
		Add("algorithm-relations", Href(self, "algorithm-relations")).
		Add("implementations", Href(self, "implementations")).
		Add("sketches", Href(self, "sketches")).
		Add("compute-resource-properties", Href(self, "compute-resource-properties"))
	return out
}

func (d Algorithm) ToEntity() *types.Algorithm {
	a := &types.Algorithm{
		ID:               d.ID,
		Name:             d.Name,
		Acronym:          d.Acronym,
		Intent:           d.Intent,
		Problem:          d.Problem,
		InputFormat:      d.InputFormat,
		AlgoParameter:    d.AlgoParameter,
		OutputFormat:     d.OutputFormat,
		Solution:         d.Solution,
		AssumptionsText:  d.Assumptions,
		ComputationModel: types.ComputationModel(d.ComputationModel),
	}
	if d.NisqReady != nil {
		a.Quantum.NisqReady = *d.NisqReady
	}
	a.Quantum.QuantumComputationModel = types.QuantumComputationModel(d.QuantumComputationModel)
	a.Quantum.SpeedUp = d.SpeedUp
	return a
}

func (d Algorithm) Identifier() uuid.UUID { return d.ID }

type Publication struct {
	ID      uuid.UUID `json:"id"`
	Title   string    `json:"title"`
	DOI     string    `json:"doi,omitempty"`
	URL     string    `json:"url,omitempty"`
	Authors []string  `json:"authors"`
	Links   Links     `json:"_links,omitempty"`
}

func FromPublication(base string, p *types.Publication) Publication {
	authors := []string(p.Authors)
	if authors == nil {
		authors = []string{}
	}
	self := Href(base, "publications", p.ID)
	return Publication{
		ID:      p.ID,
		Title:   p.Title,
		DOI:     p.DOI,
		URL:     p.URL,
		Authors: authors,
		Links:   Resource(self).Add("algorithms", Href(self, "algorithms")),
	}
}

func (d Publication) ToEntity() *types.Publication {
	authors := datatypes.JSONSlice[string](d.Authors)
	if authors == nil {
		authors = datatypes.JSONSlice[string]{}
	}
	return &types.Publication{ID: d.ID, Title: d.Title, DOI: d.DOI, URL: d.URL, Authors: authors}
}

func (d Publication) Identifier() uuid.UUID { return d.ID }

type ProblemType struct {
	ID                  uuid.UUID  `json:"id"`
	Name                string     `json:"name"`
	ParentProblemTypeID *uuid.UUID `json:"parent_problem_type_id,omitempty"`
	Links               Links      `json:"_links,omitempty"`
}

func FromProblemType(base string, p *types.ProblemType) ProblemType {
	self := Href(base, "problem-types", p.ID)
	links := Resource(self).Add("parents", Href(self, "parents"))
	if p.ParentProblemTypeID != nil {
		links.Add("parent", Href(base, "problem-types", *p.ParentProblemTypeID))
	}
	return ProblemType{ID: p.ID, Name: p.Name, ParentProblemTypeID: p.ParentProblemTypeID, Links: links}
}

func (d ProblemType) ToEntity() *types.ProblemType {
	return &types.ProblemType{ID: d.ID, Name: d.Name, ParentProblemTypeID: d.ParentProblemTypeID}
}

func (d ProblemType) Identifier() uuid.UUID { return d.ID }

type ApplicationArea struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Links Links     `json:"_links,omitempty"`
}

func FromApplicationArea(base string, a *types.ApplicationArea) ApplicationArea {
	return ApplicationArea{ID: a.ID, Name: a.Name, Links: Resource(Href(base, "application-areas", a.ID))}
}

func (d ApplicationArea) ToEntity() *types.ApplicationArea {
	return &types.ApplicationArea{ID: d.ID, Name: d.Name}
}

func (d ApplicationArea) Identifier() uuid.UUID { return d.ID }
