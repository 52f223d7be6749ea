package dto

import (
	"time"

	"github.com/google/uuid"

	types "github.com/quantumatlas/atlas-backend/internal/domain"
)

type DiscussionTopic struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status,omitempty"`
	Date        *time.Time `json:"date,omitempty"`

	Links Links `json:"_links,omitempty"`
}

func FromDiscussionTopic(base string, t *types.DiscussionTopic) DiscussionTopic {
	date := t.Date
	self := Href(base, "discussion-topics", t.ID)
	return DiscussionTopic{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Date:        &date,
		Links:       Resource(self).Add("discussion-comments", Href(self, "discussion-comments")),
	}
}

// ToEntity ignores the date: topics are stamped when they are opened.
func (d DiscussionTopic) ToEntity() *types.DiscussionTopic {
	return &types.DiscussionTopic{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Status:      types.DiscussionStatus(d.Status),
	}
}

func (d DiscussionTopic) Identifier() uuid.UUID { return d.ID }

type DiscussionComment struct {
	ID      uuid.UUID  `json:"id"`
	Text    string     `json:"text"`
	ReplyTo *uuid.UUID `json:"reply_to_id,omitempty"`
	Date    *time.Time `json:"date,omitempty"`
	Links   Links      `json:"_links,omitempty"`
}

func FromDiscussionComment(base string, c *types.DiscussionComment) DiscussionComment {
	date := c.Date
	topic := Href(base, "discussion-topics", c.TopicID)
	out := DiscussionComment{
		ID:      c.ID,
		Text:    c.Text,
		ReplyTo: c.ReplyToID,
		Date:    &date,
	}
	out.Links = Resource(Href(topic, "discussion-comments", c.ID)).Add("discussion-topic", topic)
	if c.ReplyToID != nil {
		out.Links.Add("reply-to", Href(topic, "discussion-comments", *c.ReplyToID))
	}
	return out
}

func (d DiscussionComment) ToEntity() *types.DiscussionComment {
	return &types.DiscussionComment{ID: d.ID, Text: d.Text, ReplyToID: d.ReplyTo}
}

func (d DiscussionComment) Identifier() uuid.UUID { return d.ID }
