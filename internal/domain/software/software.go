package software

import (
	"time"

	"github.com/google/uuid"
	"github.com/quantumatlas/atlas-backend/internal/domain/base"
	"github.com/quantumatlas/atlas-backend/internal/domain/infra"
	"gorm.io/gorm"
)

type Sdk struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"column:name;not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Sdk) TableName() string { return "sdk" }

func (s *Sdk) BeforeCreate(*gorm.DB) error {
	base.EnsureID(&s.ID)
	return nil
}

type SoftwarePlatform struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name    string    `gorm:"column:name;not null;index" json:"name"`
	Link    string    `gorm:"column:link" json:"link,omitempty"`
	License string    `gorm:"column:license" json:"license,omitempty"`
	Version string    `gorm:"column:version" json:"version,omitempty"`

	ComputeResources []*infra.ComputeResource `gorm:"many2many:software_platform_compute_resources" json:"-"`
	CloudServices    []*infra.CloudService    `gorm:"many2many:software_platform_cloud_services" json:"-"`
	Implementations  []*Implementation        `gorm:"many2many:implementation_software_platforms" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (SoftwarePlatform) TableName() string { return "software_platform" }

func (p *SoftwarePlatform) BeforeCreate(*gorm.DB) error {
	base.EnsureID(&p.ID)
	return nil
}

type Implementation struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Name                string     `gorm:"column:name;not null;index" json:"name"`
	AlgorithmID         uuid.UUID  `gorm:"type:uuid;column:algorithm_id;not null;index" json:"algorithm_id"`
	SdkID               *uuid.UUID `gorm:"type:uuid;column:sdk_id;index" json:"sdk_id,omitempty"`
	Sdk                 *Sdk       `gorm:"foreignKey:SdkID;references:ID" json:"-"`
	ProgrammingLanguage string     `gorm:"column:programming_language" json:"programming_language,omitempty"`
	SelectionRule       string     `gorm:"column:selection_rule;type:text" json:"selection_rule,omitempty"`
	FileLocation        string     `gorm:"column:file_location" json:"file_location,omitempty"`
	Description         string     `gorm:"column:description;type:text" json:"description,omitempty"`
	Contributors        string     `gorm:"column:contributors" json:"contributors,omitempty"`
	AssumptionsText     string     `gorm:"column:assumptions;type:text" json:"assumptions,omitempty"`
	InputFormat         string     `gorm:"column:input_format;type:text" json:"input_format,omitempty"`
	OutputFormat        string     `gorm:"column:output_format;type:text" json:"output_format,omitempty"`
	Parameter           string     `gorm:"column:parameter;type:text" json:"parameter,omitempty"`
	Dependencies        string     `gorm:"column:dependencies;type:text" json:"dependencies,omitempty"`
	Link                string     `gorm:"column:link" json:"link,omitempty"`

	Tags              []*Tag              `gorm:"many2many:implementation_tags" json:"-"`
	SoftwarePlatforms []*SoftwarePlatform `gorm:"many2many:implementation_software_platforms" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Implementation) TableName() string { return "implementation" }

func (i *Implementation) BeforeCreate(*gorm.DB) error {
	base.EnsureID(&i.ID)
	return nil
}

// ApplyUpdate copies the scalar fields of in. Algorithm ownership and links are kept.
func (i *Implementation) ApplyUpdate(in *Implementation) {
	i.Name = in.Name
	i.SdkID = in.SdkID
	i.ProgrammingLanguage = in.ProgrammingLanguage
	i.SelectionRule = in.SelectionRule
	i.FileLocation = in.FileLocation
	i.Description = in.Description
	i.Contributors = in.Contributors
	i.AssumptionsText = in.AssumptionsText
	i.InputFormat = in.InputFormat
	i.OutputFormat = in.OutputFormat
	i.Parameter = in.Parameter
	i.Dependencies = in.Dependencies
	i.Link = in.Link
}

type Tag struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	Name            string            `gorm:"column:name;not null;uniqueIndex" json:"name"`
	Description     string            `gorm:"column:description;type:text" json:"description,omitempty"`
	Implementations []*Implementation `gorm:"many2many:implementation_tags" json:"-"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

func (Tag) TableName() string { return "tag" }

func (t *Tag) BeforeCreate(*gorm.DB) error {
	base.EnsureID(&t.ID)
	return nil
}
