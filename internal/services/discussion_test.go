package services

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	types "github.com/quantumatlas/atlas-backend/internal/domain"
	apperrors "github.com/quantumatlas/atlas-backend/internal/pkg/errors"
	"github.com/quantumatlas/atlas-backend/internal/pkg/paging"
)

func TestDiscussionTopicDefaultsAndValidation(t *testing.T) {
	env := newTestEnv(t)
	topic, err := env.discussions.SaveTopic(env.ctx, &types.DiscussionTopic{Title: "  Grover on NISQ  "})
	if err != nil {
		t.Fatalf("SaveTopic: %v", err)
	}
	if topic.Title != "Grover on NISQ" || topic.Status != types.DiscussionOpen || topic.Date.IsZero() {
		t.Fatalf("unexpected topic: %+v", topic)
	}

	if _, err := env.discussions.SaveTopic(env.ctx, &types.DiscussionTopic{Title: " "}); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("blank title: want ErrValidation got %v", err)
	}
	if _, err := env.discussions.SaveTopic(env.ctx, &types.DiscussionTopic{Title: "x", Status: "ARCHIVED"}); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("bad status: want ErrValidation got %v", err)
	}

	opened := topic.Date
	updated, err := env.discussions.UpdateTopic(env.ctx, topic.ID, &types.DiscussionTopic{Title: "Grover", Status: "closed"})
	if err != nil {
		t.Fatalf("UpdateTopic: %v", err)
	}
	if updated.Status != types.DiscussionClosed || updated.Date.Sub(opened).Abs() > time.Second {
		t.Fatalf("status or date wrong after update: %+v", updated)
	}
	if _, err := env.discussions.UpdateTopic(env.ctx, uuid.New(), &types.DiscussionTopic{Title: "x"}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("unknown topic: want ErrNotFound got %v", err)
	}
}

func TestDiscussionCommentsStayInsideTheirTopic(t *testing.T) {
	env := newTestEnv(t)
	a, _ := env.discussions.SaveTopic(env.ctx, &types.DiscussionTopic{Title: "a"})
	b, _ := env.discussions.SaveTopic(env.ctx, &types.DiscussionTopic{Title: "b"})

	first, err := env.discussions.AddComment(env.ctx, a.ID, &types.DiscussionComment{Text: "first"})
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	reply, err := env.discussions.AddComment(env.ctx, a.ID, &types.DiscussionComment{Text: "reply", ReplyToID: &first.ID})
	if err != nil {
		t.Fatalf("AddComment reply: %v", err)
	}
	if reply.TopicID != a.ID || reply.ReplyToID == nil || *reply.ReplyToID != first.ID {
		t.Fatalf("unexpected reply: %+v", reply)
	}

	if _, err := env.discussions.AddComment(env.ctx, b.ID, &types.DiscussionComment{Text: "cross", ReplyToID: &first.ID}); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("reply across topics: want ErrValidation got %v", err)
	}
	if _, err := env.discussions.FindComment(env.ctx, b.ID, first.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("comment under wrong topic: want ErrNotFound got %v", err)
	}
	if _, err := env.discussions.AddComment(env.ctx, a.ID, &types.DiscussionComment{Text: ""}); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("empty text: want ErrValidation got %v", err)
	}
	if _, err := env.discussions.UpdateComment(env.ctx, a.ID, first.ID, &types.DiscussionComment{Text: "self", ReplyToID: &first.ID}); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("self reply: want ErrValidation got %v", err)
	}

	pg, err := env.discussions.FindComments(env.ctx, a.ID, paging.Of(0, 10), "")
	if err != nil {
		t.Fatalf("FindComments: %v", err)
	}
	if pg.Total != 2 {
		t.Fatalf("want 2 comments got %d", pg.Total)
	}

	if err := env.discussions.DeleteComment(env.ctx, a.ID, first.ID); err != nil {
		t.Fatalf("DeleteComment: %v", err)
	}
	kept, err := env.discussions.FindComment(env.ctx, a.ID, reply.ID)
	if err != nil {
		t.Fatalf("reply should survive: %v", err)
	}
	if kept.ReplyToID != nil {
		t.Fatalf("reply should be detached, got %v", *kept.ReplyToID)
	}
}

func TestClosedTopicRejectsCommentsAndDeleteCascades(t *testing.T) {
	env := newTestEnv(t)
	topic, _ := env.discussions.SaveTopic(env.ctx, &types.DiscussionTopic{Title: "t"})
	c, err := env.discussions.AddComment(env.ctx, topic.ID, &types.DiscussionComment{Text: "hello"})
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	if _, err := env.discussions.UpdateTopic(env.ctx, topic.ID, &types.DiscussionTopic{Title: "t", Status: types.DiscussionClosed}); err != nil {
		t.Fatalf("UpdateTopic: %v", err)
	}
	if _, err := env.discussions.AddComment(env.ctx, topic.ID, &types.DiscussionComment{Text: "late"}); !errors.Is(err, apperrors.ErrConsistency) {
		t.Fatalf("closed topic: want ErrConsistency got %v", err)
	}

	if err := env.discussions.DeleteTopic(env.ctx, topic.ID); err != nil {
		t.Fatalf("DeleteTopic: %v", err)
	}
	var n int64
	if err := env.db.Model(&types.DiscussionComment{}).Where("id = ?", c.ID).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("comments must go with their topic, %d left", n)
	}
	if _, err := env.discussions.FindComments(env.ctx, topic.ID, paging.Of(0, 10), ""); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("deleted topic: want ErrNotFound got %v", err)
	}
}
