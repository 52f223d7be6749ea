package discussion

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/quantumatlas/atlas-backend/internal/domain/base"
	"gorm.io/gorm"
)

type Status string

const (
	StatusOpen   Status = "OPEN"
	StatusClosed Status = "CLOSED"
)

// ParseStatus accepts either case; empty means open.
func ParseStatus(raw string) (Status, error) {
	switch Status(strings.ToUpper(strings.TrimSpace(raw))) {
	case "", StatusOpen:
		return StatusOpen, nil
	case StatusClosed:
		return StatusClosed, nil
	default:
		return "", fmt.Errorf("unknown discussion status %q", raw)
	}
}

type Topic struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"column:title;not null;index" json:"title"`
	Description string    `gorm:"column:description;type:text" json:"description,omitempty"`
	Status      Status    `gorm:"column:status;not null;default:OPEN" json:"status"`
	Date        time.Time `gorm:"column:date;not null" json:"date"`

	Comments []*Comment `gorm:"foreignKey:TopicID;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Topic) TableName() string { return "discussion_topic" }

func (t *Topic) BeforeCreate(*gorm.DB) error {
	base.EnsureID(&t.ID)
	if t.Date.IsZero() {
		t.Date = time.Now().UTC()
	}
	if t.Status == "" {
		t.Status = StatusOpen
	}
	return nil
}

// ApplyUpdate copies title, description and status. The opening date stays.
func (t *Topic) ApplyUpdate(in *Topic) {
	t.Title = in.Title
	t.Description = in.Description
	t.Status = in.Status
}

// Comment belongs to one topic and may answer another comment of that topic.
type Comment struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	TopicID   uuid.UUID  `gorm:"type:uuid;column:topic_id;not null;index" json:"topic_id"`
	Text      string     `gorm:"column:text;type:text;not null" json:"text"`
	ReplyToID *uuid.UUID `gorm:"type:uuid;column:reply_to_id;index" json:"reply_to_id,omitempty"`
	Date      time.Time  `gorm:"column:date;not null" json:"date"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (Comment) TableName() string { return "discussion_comment" }

func (c *Comment) BeforeCreate(*gorm.DB) error {
	base.EnsureID(&c.ID)
	if c.Date.IsZero() {
		c.Date = time.Now().UTC()
	}
	return nil
}
