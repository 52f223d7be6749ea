package discussion

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quantumatlas/atlas-backend/internal/data/db"
	"github.com/quantumatlas/atlas-backend/internal/data/repos/crud"
	types "github.com/quantumatlas/atlas-backend/internal/domain"
	"github.com/quantumatlas/atlas-backend/internal/pkg/dbctx"
	"github.com/quantumatlas/atlas-backend/internal/pkg/paging"
	"github.com/quantumatlas/atlas-backend/internal/platform/logger"
)

type TopicRepo interface {
	Create(dbc dbctx.Context, rows ...*types.DiscussionTopic) error
	GetByID(dbc dbctx.Context, id uuid.UUID, preloads ...string) (*types.DiscussionTopic, error)
	List(dbc dbctx.Context, search string, p paging.Pageable, scopes ...func(*gorm.DB) *gorm.DB) ([]*types.DiscussionTopic, int64, error)
	Save(dbc dbctx.Context, row *types.DiscussionTopic) error
	DeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error
}

type topicRepo struct {
	crud.Table[types.DiscussionTopic]
	log *logger.Logger
}

func NewTopicRepo(db *gorm.DB, baseLog *logger.Logger) TopicRepo {
	return &topicRepo{
		Table: crud.Table[types.DiscussionTopic]{
			DB:            db,
			SearchColumns: []string{"discussion_topic.title", "discussion_topic.description"},
			SortColumns: map[string]string{
				"title":  "discussion_topic.title",
				"date":   "discussion_topic.date",
				"status": "discussion_topic.status",
			},
			DefaultOrder: "discussion_topic.date DESC",
		},
		log: baseLog.With("repo", "DiscussionTopicRepo"),
	}
}

type CommentRepo interface {
	Create(dbc dbctx.Context, rows ...*types.DiscussionComment) error
	GetByID(dbc dbctx.Context, id uuid.UUID, preloads ...string) (*types.DiscussionComment, error)
	ListByTopic(dbc dbctx.Context, topicID uuid.UUID, search string, p paging.Pageable) ([]*types.DiscussionComment, int64, error)
	Save(dbc dbctx.Context, row *types.DiscussionComment) error
	DeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error
	DeleteWhere(dbc dbctx.Context, column string, value interface{}) error
	// ClearReplies detaches every answer to commentID.
	ClearReplies(dbc dbctx.Context, commentID uuid.UUID) error
}

type commentRepo struct {
	crud.Table[types.DiscussionComment]
	log *logger.Logger
}

func NewCommentRepo(db *gorm.DB, baseLog *logger.Logger) CommentRepo {
	return &commentRepo{
		Table: crud.Table[types.DiscussionComment]{
			DB:            db,
			SearchColumns: []string{"discussion_comment.text"},
			SortColumns:   map[string]string{"date": "discussion_comment.date"},
			DefaultOrder:  "discussion_comment.date ASC, discussion_comment.created_at ASC",
		},
		log: baseLog.With("repo", "DiscussionCommentRepo"),
	}
}

func (r *commentRepo) ListByTopic(dbc dbctx.Context, topicID uuid.UUID, search string, p paging.Pageable) ([]*types.DiscussionComment, int64, error) {
	return r.List(dbc, search, p, func(q *gorm.DB) *gorm.DB {
		return q.Where("discussion_comment.topic_id = ?", topicID)
	})
}

func (r *commentRepo) ClearReplies(dbc dbctx.Context, commentID uuid.UUID) error {
	return db.TranslateError(r.Conn(dbc).
		Model(&types.DiscussionComment{}).
		Where("reply_to_id = ?", commentID).
		Update("reply_to_id", nil).Error)
}
