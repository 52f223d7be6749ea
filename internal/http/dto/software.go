package dto

import (
	"github.com/google/uuid"

	types "github.com/quantumatlas/atlas-backend/internal/domain"
)

type Implementation struct {
	ID                  uuid.UUID  `json:"id"`
	Name                string     `json:"name"`
	AlgorithmID         uuid.UUID  `json:"algorithm_id"`
	SdkID               *uuid.UUID `json:"sdk_id,omitempty"`
	ProgrammingLanguage string     `json:"programming_language,omitempty"`
	SelectionRule       string     `json:"selection_rule,omitempty"`
	FileLocation        string     `json:"file_location,omitempty"`
	Description         string     `json:"description,omitempty"`
	Contributors        string     `json:"contributors,omitempty"`
	Assumptions         string     `json:"assumptions,omitempty"`
	InputFormat         string     `json:"input_format,omitempty"`
	OutputFormat        string     `json:"output_format,omitempty"`
	Parameter           string     `json:"parameter,omitempty"`
	Dependencies        string     `json:"dependencies,omitempty"`
	Link                string     `json:"link,omitempty"`
	Links               Links      `json:"_links,omitempty"`
}

func FromImplementation(base string, i *types.Implementation) Implementation {
	self := Href(base, "algorithms", i.AlgorithmID, "implementations", i.ID)
	links := Resource(self).
		Add("algorithm", Href(base, "algorithms", i.AlgorithmID)).
		Add("tags", Href(self, "tags")).
		Add("software-platforms", Href(self, "software-platforms")).
		Add("compute-resource-properties", Href(self, "compute-resource-properties")).
		Add("execute", Href(self, "execute"))
	if i.SdkID != nil {
		links.Add("sdk", Href(base, "sdks", *i.SdkID))
	}
	return Implementation{
		ID:                  i.ID,
		Name:                i.Name,
		AlgorithmID:         i.AlgorithmID,
		SdkID:               i.SdkID,
		ProgrammingLanguage: i.ProgrammingLanguage,
		SelectionRule:       i.SelectionRule,
		FileLocation:        i.FileLocation,
		Description:         i.Description,
		Contributors:        i.Contributors,
		Assumptions:         i.AssumptionsText,
		InputFormat:         i.InputFormat,
		OutputFormat:        i.OutputFormat,
		Parameter:           i.Parameter,
		Dependencies:        i.Dependencies,
		Link:                i.Link,
		Links:               links,
	}
}

func (d Implementation) ToEntity() *types.Implementation {
	return &types.Implementation{
		ID:                  d.ID,
		Name:                d.Name,
		AlgorithmID:         d.AlgorithmID,
		SdkID:               d.SdkID,
		ProgrammingLanguage: d.ProgrammingLanguage,
		SelectionRule:       d.SelectionRule,
		FileLocation:        d.FileLocation,
		Description:         d.Description,
		Contributors:        d.Contributors,
		AssumptionsText:     d.Assumptions,
		InputFormat:         d.InputFormat,
		OutputFormat:        d.OutputFormat,
		Parameter:           d.Parameter,
		Dependencies:        d.Dependencies,
		Link:                d.Link,
	}
}

func (d Implementation) Identifier() uuid.UUID { return d.ID }

type Sdk struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Links Links     `json:"_links,omitempty"`
}

func FromSdk(base string, s *types.Sdk) Sdk {
	return Sdk{ID: s.ID, Name: s.Name, Links: Resource(Href(base, "sdks", s.ID))}
}

func (d Sdk) ToEntity() *types.Sdk { return &types.Sdk{ID: d.ID, Name: d.Name} }

func (d Sdk) Identifier() uuid.UUID { return d.ID }

type Tag struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Links       Links     `json:"_links,omitempty"`
}

func FromTag(base string, t *types.Tag) Tag {
	return Tag{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Links: Resource(Href(base, "tags", t.ID)).
			Add("implementations", Href(base, "tags", t.Name, "implementations")),
	}
}

func (d Tag) ToEntity() *types.Tag {
	return &types.Tag{ID: d.ID, Name: d.Name, Description: d.Description}
}

func (d Tag) Identifier() uuid.UUID { return d.ID }

type SoftwarePlatform struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Link    string    `json:"link,omitempty"`
	License string    `json:"license,omitempty"`
	Version string    `json:"version,omitempty"`
	Links   Links     `json:"_links,omitempty"`
}

func FromSoftwarePlatform(base string, p *types.SoftwarePlatform) SoftwarePlatform {
	self := Href(base, "software-platforms", p.ID)
	return SoftwarePlatform{
		ID:      p.ID,
		Name:    p.Name,
		Link:    p.Link,
		License: p.License,
		Version: p.Version,
		Links: Resource(self).
			Add("compute-resources", Href(self, "compute-resources")).
			Add("cloud-services", Href(self, "cloud-services")).
			Add("implementations", Href(self, "implementations")),
	}
}

func (d SoftwarePlatform) ToEntity() *types.SoftwarePlatform {
	return &types.SoftwarePlatform{ID: d.ID, Name: d.Name, Link: d.Link, License: d.License, Version: d.Version}
}

func (d SoftwarePlatform) Identifier() uuid.UUID { return d.ID }
