package infra

import (
	"time"

	"github.com/google/uuid"
	"github.com/quantumatlas/atlas-backend/internal/domain/base"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MaskedKey is what reads return in place of a stored provider key.
const MaskedKey = "******"

// Provider keys are stored sealed when a credentials key is configured.
type Provider struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string         `gorm:"column:name;not null;index" json:"name"`
	AccessKey string         `gorm:"column:access_key" json:"-"`
	SecretKey string         `gorm:"column:secret_key" json:"-"`
	OtherData datatypes.JSON `gorm:"column:other_data" json:"other_data,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (Provider) TableName() string { return "provider" }

func (p *Provider) BeforeCreate(*gorm.DB) error {
	base.EnsureID(&p.ID)
	return nil
}

type CloudService struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string     `gorm:"column:name;not null;index" json:"name"`
	ProviderID  *uuid.UUID `gorm:"type:uuid;column:provider_id;index" json:"provider_id,omitempty"`
	Provider    *Provider  `gorm:"foreignKey:ProviderID;references:ID" json:"-"`
	URL         string     `gorm:"column:url" json:"url,omitempty"`
	CostModel   string     `gorm:"column:cost_model" json:"cost_model,omitempty"`
	Description string     `gorm:"column:description;type:text" json:"description,omitempty"`

	ComputeResources []*ComputeResource `gorm:"many2many:cloud_service_compute_resources" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CloudService) TableName() string { return "cloud_service" }

func (c *CloudService) BeforeCreate(*gorm.DB) error {
	base.EnsureID(&c.ID)
	return nil
}

type ComputeResource struct {
	ID                      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name                    string    `gorm:"column:name;not null;index" json:"name"`
	Vendor                  string    `gorm:"column:vendor" json:"vendor,omitempty"`
	Technology              string    `gorm:"column:technology" json:"technology,omitempty"`
	QuantumComputationModel string    `gorm:"column:quantum_computation_model" json:"quantum_computation_model,omitempty"`

	Properties    []*ComputeResourceProperty `gorm:"foreignKey:ComputeResourceID" json:"-"`
	CloudServices []*CloudService            `gorm:"many2many:cloud_service_compute_resources" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ComputeResource) TableName() string { return "compute_resource" }

func (c *ComputeResource) BeforeCreate(*gorm.DB) error {
	base.EnsureID(&c.ID)
	return nil
}
