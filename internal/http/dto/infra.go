package dto

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	types "github.com/quantumatlas/atlas-backend/internal/domain"
)

func mask(v string) string {
	if v == "" {
		return ""
	}
	return types.MaskedKey
}

// Provider accepts arbitrary extra fields; anything that is not a known field
// is folded into other_data.
type Provider struct {
	ID        uuid.UUID      `json:"id"`
	Name      string         `json:"name"`
	AccessKey string         `json:"access_key,omitempty"`
	SecretKey string         `json:"secret_key,omitempty"`
	OtherData map[string]any `json:"other_data,omitempty"`
	Links     Links          `json:"_links,omitempty"`
}

var providerFields = map[string]bool{
	"id": true, "name": true, "access_key": true, "secret_key": true, "other_data": true, "_links": true,
}

func (d *Provider) UnmarshalJSON(b []byte) error {
	type plain Provider
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	for k, v := range raw {
		if providerFields[k] {
			continue
		}
		var val any
		if err := json.Unmarshal(v, &val); err != nil {
			return fmt.Errorf("provider field %q: %w", k, err)
		}
		if p.OtherData == nil {
			p.OtherData = map[string]any{}
		}
		p.OtherData[k] = val
	}
	*d = Provider(p)
	return nil
}

func FromProvider(base string, p *types.Provider) Provider {
	out := Provider{
		ID:        p.ID,
		Name:      p.Name,
		AccessKey: mask(p.AccessKey),
		SecretKey: mask(p.SecretKey),
		Links:     Resource(Href(base, "providers", p.ID)),
	}
	if len(p.OtherData) > 0 {
		_ = json.Unmarshal(p.OtherData, &out.OtherData)
	}
	return out
}

func (d Provider) ToEntity() (*types.Provider, error) {
	p := &types.Provider{ID: d.ID, Name: d.Name, AccessKey: d.AccessKey, SecretKey: d.SecretKey}
	if len(d.OtherData) > 0 {
		raw, err := json.Marshal(d.OtherData)
		if err != nil {
			return nil, err
		}
		p.OtherData = datatypes.JSON(raw)
	}
	return p, nil
}

func (d Provider) Identifier() uuid.UUID { return d.ID }

type CloudService struct {
	ID                 uuid.UUID   `json:"id"`
	Name               string      `json:"name"`
	ProviderID         *uuid.UUID  `json:"provider_id,omitempty"`
	URL                string      `json:"url,omitempty"`
	CostModel          string      `json:"cost_model,omitempty"`
	Description        string      `json:"description,omitempty"`
	ComputeResourceIDs []uuid.UUID `json:"compute_resource_ids,omitempty"`
	Links              Links       `json:"_links,omitempty"`
}

func FromCloudService(base string, s *types.CloudService) CloudService {
	self := Href(base, "cloud-services", s.ID)
	links := Resource(self).Add("compute-resources", Href(self, "compute-resources"))
	if s.ProviderID != nil {
		links.Add("provider", Href(base, "providers", *s.ProviderID))
	}
	return CloudService{
		ID:          s.ID,
		Name:        s.Name,
		ProviderID:  s.ProviderID,
		URL:         s.URL,
		CostModel:   s.CostModel,
		Description: s.Description,
		Links:       links,
	}
}

func (d CloudService) ToEntity() *types.CloudService {
	s := &types.CloudService{
		ID:          d.ID,
		Name:        d.Name,
		ProviderID:  d.ProviderID,
		URL:         d.URL,
		CostModel:   d.CostModel,
		Description: d.Description,
	}
	for _, id := range d.ComputeResourceIDs {
		s.ComputeResources = append(s.ComputeResources, &types.ComputeResource{ID: id})
	}
	return s
}

func (d CloudService) Identifier() uuid.UUID { return d.ID }

type ComputeResource struct {
	ID                      uuid.UUID `json:"id"`
	Name                    string    `json:"name"`
	Vendor                  string    `json:"vendor,omitempty"`
	Technology              string    `json:"technology,omitempty"`
	QuantumComputationModel string    `json:"quantum_computation_model,omitempty"`
	Links                   Links     `json:"_links,omitempty"`
}

func FromComputeResource(base string, r *types.ComputeResource) ComputeResource {
	self := Href(base, "compute-resources", r.ID)
	return ComputeResource{
		ID:                      r.ID,
		Name:                    r.Name,
		Vendor:                  r.Vendor,
		Technology:              r.Technology,
		QuantumComputationModel: r.QuantumComputationModel,
		Links: Resource(self).
			Add("compute-resource-properties", Href(self, "compute-resource-properties")).
			Add("cloud-services", Href(self, "cloud-services")).
			Add("software-platforms", Href(self, "software-platforms")),
	}
}

func (d ComputeResource) ToEntity() *types.ComputeResource {
	return &types.ComputeResource{
		ID:                      d.ID,
		Name:                    d.Name,
		Vendor:                  d.Vendor,
		Technology:              d.Technology,
		QuantumComputationModel: d.QuantumComputationModel,
	}
}

func (d ComputeResource) Identifier() uuid.UUID { return d.ID }

type PropertyType struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Datatype    string    `json:"datatype"`
	Description string    `json:"description,omitempty"`
	Links       Links     `json:"_links,omitempty"`
}

func FromPropertyType(base string, t *types.ComputeResourcePropertyType) PropertyType {
	return PropertyType{
		ID:          t.ID,
		Name:        t.Name,
		Datatype:    string(t.Datatype),
		Description: t.Description,
		Links:       Resource(Href(base, "compute-resource-property-types", t.ID)),
	}
}

func (d PropertyType) ToEntity() *types.ComputeResourcePropertyType {
	return &types.ComputeResourcePropertyType{
		ID:          d.ID,
		Name:        d.Name,
		Datatype:    types.Datatype(d.Datatype),
		Description: d.Description,
	}
}

func (d PropertyType) Identifier() uuid.UUID { return d.ID }

type Property struct {
	ID     uuid.UUID     `json:"id"`
	TypeID uuid.UUID     `json:"type_id"`
	Type   *PropertyType `json:"type,omitempty"`
	Value  string        `json:"value"`
	Links  Links         `json:"_links,omitempty"`
}

// FromProperty renders p under ownerHref, the address of the owning entity.
func FromProperty(base, ownerHref string, p *types.ComputeResourceProperty) Property {
	out := Property{ID: p.ID, TypeID: p.TypeID, Value: p.Value}
	if p.Type != nil {
		t := FromPropertyType(base, p.Type)
		out.Type = &t
	}
	out.Links = Resource(Href(ownerHref, "compute-resource-properties", p.ID)).
		Add("owner", ownerHref).
		Add("type", Href(base, "compute-resource-property-types", p.TypeID))
	return out
}

func (d Property) ToEntity() *types.ComputeResourceProperty {
	typeID := d.TypeID
	if typeID == uuid.Nil && d.Type != nil {
		typeID = d.Type.ID
	}
	return &types.ComputeResourceProperty{ID: d.ID, TypeID: typeID, Value: d.Value}
}

func (d Property) Identifier() uuid.UUID { return d.ID }
