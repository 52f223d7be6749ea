package dto

import (
	"github.com/google/uuid"

	types "github.com/quantumatlas/atlas-backend/internal/domain"
)

type Sketch struct {
	ID          uuid.UUID `json:"id"`
	AlgorithmID uuid.UUID `json:"algorithm_id"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	Links       Links     `json:"_links,omitempty"`
}

func FromSketch(base string, s *types.Sketch) Sketch {
	self := Href(base, "algorithms", s.AlgorithmID, "sketches", s.ID)
	return Sketch{
		ID:          s.ID,
		AlgorithmID: s.AlgorithmID,
		Description: s.Description,
		ImageURL:    s.ImageURL,
		Links: Resource(self).
			Add("image", Href(self, "image")).
			Add("algorithm", Href(base, "algorithms", s.AlgorithmID)),
	}
}

func (d Sketch) ToEntity() *types.Sketch {
	return &types.Sketch{ID: d.ID, AlgorithmID: d.AlgorithmID, Description: d.Description, ImageURL: d.ImageURL}
}

func (d Sketch) Identifier() uuid.UUID { return d.ID }
