package media

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/quantumatlas/atlas-backend/internal/domain/base"
	"gorm.io/gorm"
)

type Sketch struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AlgorithmID uuid.UUID `gorm:"type:uuid;column:algorithm_id;not null;index" json:"algorithm_id"`
	Description string    `gorm:"column:description;type:text" json:"description,omitempty"`
	ImageURL    string    `gorm:"column:image_url" json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Sketch) TableName() string { return "sketch" }

func (s *Sketch) BeforeCreate(*gorm.DB) error {
	base.EnsureID(&s.ID)
	return nil
}

// ImageURLFor builds the public address of the image belonging to a sketch.
func ImageURLFor(baseURL string, algoID, sketchID uuid.UUID) string {
	return fmt.Sprintf("%s/algorithms/%s/sketches/%s/image", strings.TrimRight(baseURL, "/"), algoID, sketchID)
}

// Image shares its primary key with the owning sketch.
type Image struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Data      []byte    `gorm:"column:data" json:"-"`
	MimeType  string    `gorm:"column:mime_type" json:"mime_type"`
	Width     int       `gorm:"column:width" json:"width"`
	Height    int       `gorm:"column:height" json:"height"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Image) TableName() string { return "image" }
