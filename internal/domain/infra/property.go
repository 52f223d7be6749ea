package infra

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/quantumatlas/atlas-backend/internal/domain/base"
	"gorm.io/gorm"
)

type Datatype string

const (
	DatatypeInteger Datatype = "INTEGER"
	DatatypeFloat   Datatype = "FLOAT"
	DatatypeString  Datatype = "STRING"
)

func (d Datatype) Valid() bool {
	switch d {
	case DatatypeInteger, DatatypeFloat, DatatypeString:
		return true
	}
	return false
}

// Validate checks that value can be read as d.
func (d Datatype) Validate(value string) error {
	v := strings.TrimSpace(value)
	switch d {
	case DatatypeInteger:
		if _, err := strconv.ParseInt(v, 10, 64); err != nil {
			return fmt.Errorf("value %q is not an INTEGER", value)
		}
	case DatatypeFloat:
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			return fmt.Errorf("value %q is not a FLOAT", value)
		}
	case DatatypeString:
	default:
		return fmt.Errorf("unknown datatype %q", d)
	}
	return nil
}

type ComputeResourcePropertyType struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"column:name;not null;index" json:"name"`
	Datatype    Datatype  `gorm:"column:datatype;not null" json:"datatype"`
	Description string    `gorm:"column:description;type:text" json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (ComputeResourcePropertyType) TableName() string { return "compute_resource_property_type" }

func (t *ComputeResourcePropertyType) BeforeCreate(*gorm.DB) error {
	base.EnsureID(&t.ID)
	return nil
}

type OwnerKind string

const (
	OwnerAlgorithm       OwnerKind = "algorithm"
	OwnerImplementation  OwnerKind = "implementation"
	OwnerComputeResource OwnerKind = "compute_resource"
)

// Owner identifies the single entity a property is attached to.
type Owner struct {
	Kind OwnerKind
	ID   uuid.UUID
}

func (o Owner) Column() string {
	switch o.Kind {
	case OwnerAlgorithm:
		return "algorithm_id"
	case OwnerImplementation:
		return "implementation_id"
	default:
		return "compute_resource_id"
	}
}

type ComputeResourceProperty struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	TypeID uuid.UUID                    `gorm:"type:uuid;column:type_id;not null;index" json:"type_id"`
	Type   *ComputeResourcePropertyType `gorm:"foreignKey:TypeID;references:ID" json:"type,omitempty"`
	Value  string                       `gorm:"column:value" json:"value"`

	AlgorithmID       *uuid.UUID `gorm:"type:uuid;column:algorithm_id;index" json:"algorithm_id,omitempty"`
	ImplementationID  *uuid.UUID `gorm:"type:uuid;column:implementation_id;index" json:"implementation_id,omitempty"`
	ComputeResourceID *uuid.UUID `gorm:"type:uuid;column:compute_resource_id;index" json:"compute_resource_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ComputeResourceProperty) TableName() string { return "compute_resource_property" }

func (p *ComputeResourceProperty) BeforeCreate(*gorm.DB) error {
	base.EnsureID(&p.ID)
	return nil
}

// SetOwner clears any previous owner and attaches the property to o.
func (p *ComputeResourceProperty) SetOwner(o Owner) {
	id := o.ID
	p.AlgorithmID, p.ImplementationID, p.ComputeResourceID = nil, nil, nil
	switch o.Kind {
	case OwnerAlgorithm:
		p.AlgorithmID = &id
	case OwnerImplementation:
		p.ImplementationID = &id
	case OwnerComputeResource:
		p.ComputeResourceID = &id
	}
}

func (p *ComputeResourceProperty) OwnedBy(o Owner) bool {
	var got *uuid.UUID
	switch o.Kind {
	case OwnerAlgorithm:
		got = p.AlgorithmID
	case OwnerImplementation:
		got = p.ImplementationID
	case OwnerComputeResource:
		got = p.ComputeResourceID
	}
	return got != nil && *got == o.ID
}
