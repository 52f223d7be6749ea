package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/quantumatlas/atlas-backend/internal/domain/base"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProblemType struct {
	ID                  uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	Name                string       `gorm:"column:name;not null;index" json:"name"`
	ParentProblemTypeID *uuid.UUID   `gorm:"type:uuid;column:parent_problem_type_id;index" json:"parent_problem_type_id,omitempty"`
	Algorithms          []*Algorithm `gorm:"many2many:algorithm_problem_types" json:"-"`
	CreatedAt           time.Time    `json:"created_at"`
	UpdatedAt           time.Time    `json:"updated_at"`
}

func (ProblemType) TableName() string { return "problem_type" }

func (p *ProblemType) BeforeCreate(*gorm.DB) error {
	base.EnsureID(&p.ID)
	return nil
}

type ApplicationArea struct {
	ID         uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string       `gorm:"column:name;not null;index" json:"name"`
	Algorithms []*Algorithm `gorm:"many2many:algorithm_application_areas" json:"-"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

func (ApplicationArea) TableName() string { return "application_area" }

func (a *ApplicationArea) BeforeCreate(*gorm.DB) error {
	base.EnsureID(&a.ID)
	return nil
}

type Publication struct {
	ID      uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	Title   string                      `gorm:"column:title;not null;index" json:"title"`
	DOI     string                      `gorm:"column:doi" json:"doi,omitempty"`
	URL     string                      `gorm:"column:url" json:"url,omitempty"`
	Authors datatypes.JSONSlice[string] `gorm:"column:authors" json:"authors"`

	Algorithms []*Algorithm `gorm:"many2many:algorithm_publications" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Publication) TableName() string { return "publication" }

func (p *Publication) BeforeCreate(*gorm.DB) error {
	base.EnsureID(&p.ID)
	if p.Authors == nil {
		p.Authors = datatypes.JSONSlice[string]{}
	}
	return nil
}

// ApplyUpdate copies title, DOI, URL and authors; nothing else is mutable.
func (p *Publication) ApplyUpdate(in *Publication) {
	p.Title = in.Title
	p.DOI = in.DOI
	p.URL = in.URL
	p.Authors = in.Authors
	if p.Authors == nil {
		p.Authors = datatypes.JSONSlice[string]{}
	}
}
