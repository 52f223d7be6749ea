package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quantumatlas/atlas-backend/internal/data/repos"
	types "github.com/quantumatlas/atlas-backend/internal/domain"
	"github.com/quantumatlas/atlas-backend/internal/domain/discussion"
	"github.com/quantumatlas/atlas-backend/internal/pkg/dbctx"
	apperrors "github.com/quantumatlas/atlas-backend/internal/pkg/errors"
	"github.com/quantumatlas/atlas-backend/internal/pkg/paging"
	"github.com/quantumatlas/atlas-backend/internal/platform/logger"
)

type DiscussionService interface {
	SaveTopic(ctx context.Context, topic *types.DiscussionTopic) (*types.DiscussionTopic, error)
	UpdateTopic(ctx context.Context, id uuid.UUID, topic *types.DiscussionTopic) (*types.DiscussionTopic, error)
	// DeleteTopic removes the topic together with its comments.
	DeleteTopic(ctx context.Context, id uuid.UUID) error
	FindTopics(ctx context.Context, p paging.Pageable, search string) (paging.Page[*types.DiscussionTopic], error)
	FindTopicByID(ctx context.Context, id uuid.UUID) (*types.DiscussionTopic, error)

	AddComment(ctx context.Context, topicID uuid.UUID, comment *types.DiscussionComment) (*types.DiscussionComment, error)
	UpdateComment(ctx context.Context, topicID, commentID uuid.UUID, comment *types.DiscussionComment) (*types.DiscussionComment, error)
	// DeleteComment keeps the answers to the comment but detaches them.
	DeleteComment(ctx context.Context, topicID, commentID uuid.UUID) error
	FindComments(ctx context.Context, topicID uuid.UUID, p paging.Pageable, search string) (paging.Page[*types.DiscussionComment], error)
	FindComment(ctx context.Context, topicID, commentID uuid.UUID) (*types.DiscussionComment, error)
}

type discussionService struct {
	db       *gorm.DB
	log      *logger.Logger
	topics   repos.DiscussionTopicRepo
	comments repos.DiscussionCommentRepo
}

func NewDiscussionService(db *gorm.DB, baseLog *logger.Logger, topics repos.DiscussionTopicRepo, comments repos.DiscussionCommentRepo) DiscussionService {
	return &discussionService{
		db:       db,
		log:      baseLog.With("service", "DiscussionService"),
		topics:   topics,
		comments: comments,
	}
}

func validateTopic(t *types.DiscussionTopic) error {
	t.Title = strings.TrimSpace(t.Title)
	if t.Title == "" {
		return invalid("discussion topic title is required")
	}
	status, err := discussion.ParseStatus(string(t.Status))
	if err != nil {
		return fmt.Errorf("%v: %w", err, apperrors.ErrValidation)
	}
	t.Status = status
	return nil
}

func (s *discussionService) SaveTopic(ctx context.Context, topic *types.DiscussionTopic) (*types.DiscussionTopic, error) {
	if err := validateTopic(topic); err != nil {
		return nil, err
	}
	if err := s.topics.Create(readCtx(ctx), topic); err != nil {
		return nil, err
	}
	return topic, nil
}

func (s *discussionService) UpdateTopic(ctx context.Context, id uuid.UUID, topic *types.DiscussionTopic) (*types.DiscussionTopic, error) {
	if err := validateTopic(topic); err != nil {
		return nil, err
	}
	var out *types.DiscussionTopic
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		existing, err := found(s.topics.GetByID(dbc, id))("discussion topic", id)
		if err != nil {
			return err
		}
		existing.ApplyUpdate(topic)
		if err := s.topics.Save(dbc, existing); err != nil {
			return err
		}
		out = existing
		return nil
	})
	return out, err
}

func (s *discussionService) DeleteTopic(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if _, err := found(s.topics.GetByID(dbc, id))("discussion topic", id); err != nil {
			return err
		}
		if err := s.comments.DeleteWhere(dbc, "topic_id", id); err != nil {
			return err
		}
		if err := s.topics.DeleteByIDs(dbc, []uuid.UUID{id}); err != nil {
			return err
		}
		s.log.Info("discussion topic deleted", "topic_id", id)
		return nil
	})
}

func (s *discussionService) FindTopics(ctx context.Context, p paging.Pageable, search string) (paging.Page[*types.DiscussionTopic], error) {
	rows, total, err := s.topics.List(readCtx(ctx), search, p)
	return page(rows, total, err, p)
}

func (s *discussionService) FindTopicByID(ctx context.Context, id uuid.UUID) (*types.DiscussionTopic, error) {
	return found(s.topics.GetByID(readCtx(ctx), id))("discussion topic", id)
}

// comment loads a comment and insists that it sits below topicID.
func (s *discussionService) comment(dbc dbctx.Context, topicID, commentID uuid.UUID) (*types.DiscussionComment, error) {
	c, err := found(s.comments.GetByID(dbc, commentID))("discussion comment", commentID)
	if err != nil {
		return nil, err
	}
	if c.TopicID != topicID {
		return nil, notFound("discussion comment", commentID)
	}
	return c, nil
}

// checkReply verifies that an answered comment exists in the same topic.
func (s *discussionService) checkReply(dbc dbctx.Context, topicID, self uuid.UUID, replyTo *uuid.UUID) error {
	if replyTo == nil {
		return nil
	}
	if *replyTo == self {
		return invalid("a comment cannot answer itself")
	}
	target, err := found(s.comments.GetByID(dbc, *replyTo))("discussion comment", *replyTo)
	if err != nil {
		return err
	}
	if target.TopicID != topicID {
		return invalid("comment %s belongs to another topic", *replyTo)
	}
	return nil
}

func (s *discussionService) AddComment(ctx context.Context, topicID uuid.UUID, comment *types.DiscussionComment) (*types.DiscussionComment, error) {
	comment.Text = strings.TrimSpace(comment.Text)
	if comment.Text == "" {
		return nil, invalid("comment text is required")
	}
	comment.ReplyToID = nilIfZero(comment.ReplyToID)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		topic, err := found(s.topics.GetByID(dbc, topicID))("discussion topic", topicID)
		if err != nil {
			return err
		}
		if topic.Status == types.DiscussionClosed {
			return fmt.Errorf("discussion topic %s is closed: %w", topicID, apperrors.ErrConsistency)
		}
		if err := s.checkReply(dbc, topicID, uuid.Nil, comment.ReplyToID); err != nil {
			return err
		}
		comment.ID = uuid.Nil
		comment.TopicID = topicID
		return s.comments.Create(dbc, comment)
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *discussionService) UpdateComment(ctx context.Context, topicID, commentID uuid.UUID, comment *types.DiscussionComment) (*types.DiscussionComment, error) {
	text := strings.TrimSpace(comment.Text)
	if text == "" {
		return nil, invalid("comment text is required")
	}
	comment.ReplyToID = nilIfZero(comment.ReplyToID)
	var out *types.DiscussionComment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		existing, err := s.comment(dbc, topicID, commentID)
		if err != nil {
			return err
		}
		if err := s.checkReply(dbc, topicID, commentID, comment.ReplyToID); err != nil {
			return err
		}
		existing.Text = text
		existing.ReplyToID = comment.ReplyToID
		if err := s.comments.Save(dbc, existing); err != nil {
			return err
		}
		out = existing
		return nil
	})
	return out, err
}

func (s *discussionService) DeleteComment(ctx context.Context, topicID, commentID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if _, err := s.comment(dbc, topicID, commentID); err != nil {
			return err
		}
		if err := s.comments.ClearReplies(dbc, commentID); err != nil {
			return err
		}
		return s.comments.DeleteByIDs(dbc, []uuid.UUID{commentID})
	})
}

func (s *discussionService) FindComments(ctx context.Context, topicID uuid.UUID, p paging.Pageable, search string) (paging.Page[*types.DiscussionComment], error) {
	dbc := readCtx(ctx)
	if _, err := found(s.topics.GetByID(dbc, topicID))("discussion topic", topicID); err != nil {
		return paging.Page[*types.DiscussionComment]{}, err
	}
	rows, total, err := s.comments.ListByTopic(dbc, topicID, search, p)
	return page(rows, total, err, p)
}

func (s *discussionService) FindComment(ctx context.Context, topicID, commentID uuid.UUID) (*types.DiscussionComment, error) {
	return s.comment(readCtx(ctx), topicID, commentID)
}

func nilIfZero(id *uuid.UUID) *uuid.UUID {
	if id == nil || *id == uuid.Nil {
		return nil
	}
	return id
}
