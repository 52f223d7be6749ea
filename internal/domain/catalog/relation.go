package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/quantumatlas/atlas-backend/internal/domain/base"
	"gorm.io/gorm"
)

// AlgorithmRelationType names a kind of edge between two algorithms ("generalizes", ...).
type AlgorithmRelationType struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"column:name;not null;index" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (AlgorithmRelationType) TableName() string { return "algorithm_relation_type" }

func (t *AlgorithmRelationType) BeforeCreate(*gorm.DB) error {
	base.EnsureID(&t.ID)
	return nil
}

// AlgorithmRelation is a directed, typed edge between two algorithms.
type AlgorithmRelation struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	SourceAlgorithmID uuid.UUID  `gorm:"type:uuid;column:source_algorithm_id;not null;index" json:"source_algorithm_id"`
	SourceAlgorithm   *Algorithm `gorm:"foreignKey:SourceAlgorithmID;references:ID" json:"source_algorithm,omitempty"`
	TargetAlgorithmID uuid.UUID  `gorm:"type:uuid;column:target_algorithm_id;not null;index" json:"target_algorithm_id"`
	TargetAlgorithm   *Algorithm `gorm:"foreignKey:TargetAlgorithmID;references:ID" json:"target_algorithm,omitempty"`

	AlgorithmRelationTypeID uuid.UUID              `gorm:"type:uuid;column:algorithm_relation_type_id;not null;index" json:"algorithm_relation_type_id"`
	AlgorithmRelationType   *AlgorithmRelationType `gorm:"foreignKey:AlgorithmRelationTypeID;references:ID" json:"algorithm_relation_type,omitempty"`

	Description string    `gorm:"column:description;type:text" json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (AlgorithmRelation) TableName() string { return "algorithm_relation" }

func (r *AlgorithmRelation) BeforeCreate(*gorm.DB) error {
	base.EnsureID(&r.ID)
	return nil
}

// Touches reports whether algoID is either end of the relation.
func (r *AlgorithmRelation) Touches(algoID uuid.UUID) bool {
	return r.SourceAlgorithmID == algoID || r.TargetAlgorithmID == algoID
}

type PatternRelationType struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"column:name;not null;index" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (PatternRelationType) TableName() string { return "pattern_relation_type" }

func (t *PatternRelationType) BeforeCreate(*gorm.DB) error {
	base.EnsureID(&t.ID)
	return nil
}

// PatternRelation links an algorithm to an external pattern (by URI).
type PatternRelation struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AlgorithmID uuid.UUID `gorm:"type:uuid;column:algorithm_id;not null;index" json:"algorithm_id"`
	Pattern     string    `gorm:"column:pattern;not null" json:"pattern"`

	PatternRelationTypeID uuid.UUID            `gorm:"type:uuid;column:pattern_relation_type_id;not null;index" json:"pattern_relation_type_id"`
	PatternRelationType   *PatternRelationType `gorm:"foreignKey:PatternRelationTypeID;references:ID" json:"pattern_relation_type,omitempty"`

	Description string    `gorm:"column:description;type:text" json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (PatternRelation) TableName() string { return "pattern_relation" }

func (r *PatternRelation) BeforeCreate(*gorm.DB) error {
	base.EnsureID(&r.ID)
	return nil
}
