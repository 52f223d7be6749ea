package dto

import (
	"github.com/google/uuid"

	types "github.com/quantumatlas/atlas-backend/internal/domain"
)

// NamedType is shared by algorithm and pattern relation types.
type NamedType struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Links Links     `json:"_links,omitempty"`
}

func (d NamedType) Identifier() uuid.UUID { return d.ID }

func FromAlgorithmRelationType(base string, t *types.AlgorithmRelationType) NamedType {
	return NamedType{ID: t.ID, Name: t.Name, Links: Resource(Href(base, "algorithm-relation-types", t.ID))}
}

func (d NamedType) ToAlgorithmRelationType() *types.AlgorithmRelationType {
	return &types.AlgorithmRelationType{ID: d.ID, Name: d.Name}
}

func FromPatternRelationType(base string, t *types.PatternRelationType) NamedType {
	return NamedType{ID: t.ID, Name: t.Name, Links: Resource(Href(base, "pattern-relation-types", t.ID))}
}

func (d NamedType) ToPatternRelationType() *types.PatternRelationType {
	return &types.PatternRelationType{ID: d.ID, Name: d.Name}
}

type AlgorithmRelation struct {
	ID                      uuid.UUID  `json:"id"`
	SourceAlgorithmID       uuid.UUID  `json:"source_algorithm_id"`
	TargetAlgorithmID       uuid.UUID  `json:"target_algorithm_id"`
	AlgorithmRelationTypeID uuid.UUID  `json:"algorithm_relation_type_id"`
	AlgorithmRelationType   *NamedType `json:"algorithm_relation_type,omitempty"`
	Description             string     `json:"description,omitempty"`
	Links                   Links      `json:"_links,omitempty"`
}

func FromAlgorithmRelation(base string, algoID uuid.UUID, r *types.AlgorithmRelation) AlgorithmRelation {
	out := AlgorithmRelation{
		ID:                      r.ID,
		SourceAlgorithmID:       r.SourceAlgorithmID,
		TargetAlgorithmID:       r.TargetAlgorithmID,
		AlgorithmRelationTypeID: r.AlgorithmRelationTypeID,
		Description:             r.Description,
	}
	if r.AlgorithmRelationType != nil {
		t := FromAlgorithmRelationType(base, r.AlgorithmRelationType)
		out.AlgorithmRelationType = &t
	}
	out.Links = Resource(Href(base, "algorithms", algoID, "algorithm-relations", r.ID)).
		Add("source-algorithm", Href(base, "algorithms", r.SourceAlgorithmID)).
		Add("target-algorithm", Href(base, "algorithms", r.TargetAlgorithmID)).
		Add("algorithm-relation-type", Href(base, "algorithm-relation-types", r.AlgorithmRelationTypeID))
	return out
}

func (d AlgorithmRelation) ToEntity() *types.AlgorithmRelation {
	typeID := d.AlgorithmRelationTypeID
	if typeID == uuid.Nil && d.AlgorithmRelationType != nil {
		typeID = d.AlgorithmRelationType.ID
	}
	return &types.AlgorithmRelation{
		ID:                      d.ID,
		SourceAlgorithmID:       d.SourceAlgorithmID,
		TargetAlgorithmID:       d.TargetAlgorithmID,
		AlgorithmRelationTypeID: typeID,
		Description:             d.Description,
	}
}

func (d AlgorithmRelation) Identifier() uuid.UUID { return d.ID }

type PatternRelation struct {
	ID                    uuid.UUID  `json:"id"`
	AlgorithmID           uuid.UUID  `json:"algorithm_id"`
	Pattern               string     `json:"pattern"`
	PatternRelationTypeID uuid.UUID  `json:"pattern_relation_type_id"`
	PatternRelationType   *NamedType `json:"pattern_relation_type,omitempty"`
	Description           string     `json:"description,omitempty"`
	Links                 Links      `json:"_links,omitempty"`
}

func FromPatternRelation(base string, r *types.PatternRelation) PatternRelation {
	out := PatternRelation{
		ID:                    r.ID,
		AlgorithmID:           r.AlgorithmID,
		Pattern:               r.Pattern,
		PatternRelationTypeID: r.PatternRelationTypeID,
		Description:           r.Description,
	}
	if r.PatternRelationType != nil {
		t := FromPatternRelationType(base, r.PatternRelationType)
		out.PatternRelationType = &t
	}
	out.Links = Resource(Href(base, "algorithms", r.AlgorithmID, "pattern-relations", r.ID)).
		Add("algorithm", Href(base, "algorithms", r.AlgorithmID)).
		Add("pattern-relation-type", Href(base, "pattern-relation-types", r.PatternRelationTypeID))
	return out
}

func (d PatternRelation) ToEntity() *types.PatternRelation {
	typeID := d.PatternRelationTypeID
	if typeID == uuid.Nil && d.PatternRelationType != nil {
		typeID = d.PatternRelationType.ID
	}
	return &types.PatternRelation{
		ID:                    d.ID,
		AlgorithmID:           d.AlgorithmID,
		Pattern:               d.Pattern,
		PatternRelationTypeID: typeID,
		Description:           d.Description,
	}
}

func (d PatternRelation) Identifier() uuid.UUID { return d.ID }
