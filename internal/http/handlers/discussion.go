package handlers

import (
	"github.com/gin-gonic/gin"

	types "github.com/quantumatlas/atlas-backend/internal/domain"
	"github.com/quantumatlas/atlas-backend/internal/http/dto"
	"github.com/quantumatlas/atlas-backend/internal/http/response"
	"github.com/quantumatlas/atlas-backend/internal/services"
)

type DiscussionHandler struct {
	discussions services.DiscussionService
}

func NewDiscussionHandler(discussions services.DiscussionService) *DiscussionHandler {
	return &DiscussionHandler{discussions: discussions}
}

// GET /api/discussion-topics
func (h *DiscussionHandler) ListTopics(c *gin.Context) {
	base := apiBase(c)
	pg, err := h.discussions.FindTopics(c.Request.Context(), pageable(c), search(c))
	respondPage(c, pg, err, "discussionTopics", dto.Href(base, "discussion-topics"), func(t *types.DiscussionTopic) dto.DiscussionTopic {
		return dto.FromDiscussionTopic(base, t)
	})
}

// GET /api/discussion-topics/:id
func (h *DiscussionHandler) GetTopic(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	topic, err := h.discussions.FindTopicByID(c.Request.Context(), id)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, dto.FromDiscussionTopic(apiBase(c), topic))
}

// POST /api/discussion-topics
func (h *DiscussionHandler) CreateTopic(c *gin.Context) {
	var in dto.DiscussionTopic
	if !bindCreate(c, &in) {
		return
	}
	topic, err := h.discussions.SaveTopic(c.Request.Context(), in.ToEntity())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondCreated(c, dto.FromDiscussionTopic(apiBase(c), topic))
}

// PUT /api/discussion-topics/:id
func (h *DiscussionHandler) UpdateTopic(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var in dto.DiscussionTopic
	if !bindUpdate(c, &in, id) {
		return
	}
	topic, err := h.discussions.UpdateTopic(c.Request.Context(), id, in.ToEntity())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, dto.FromDiscussionTopic(apiBase(c), topic))
}

// DELETE /api/discussion-topics/:id
func (h *DiscussionHandler) DeleteTopic(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	respondDeleted(c, h.discussions.DeleteTopic(c.Request.Context(), id))
}

// GET /api/discussion-topics/:id/discussion-comments
func (h *DiscussionHandler) ListComments(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	base := apiBase(c)
	pg, err := h.discussions.FindComments(c.Request.Context(), id, pageable(c), search(c))
	respondPage(c, pg, err, "discussionComments", dto.Href(base, "discussion-topics", id, "discussion-comments"), func(cm *types.DiscussionComment) dto.DiscussionComment {
		return dto.FromDiscussionComment(base, cm)
	})
}

// GET /api/discussion-topics/:id/discussion-comments/:commentId
func (h *DiscussionHandler) GetComment(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	commentID, ok := pathUUID(c, "commentId")
	if !ok {
		return
	}
	cm, err := h.discussions.FindComment(c.Request.Context(), id, commentID)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, dto.FromDiscussionComment(apiBase(c), cm))
}

// POST /api/discussion-topics/:id/discussion-comments
func (h *DiscussionHandler) CreateComment(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var in dto.DiscussionComment
	if !bindCreate(c, &in) {
		return
	}
	cm, err := h.discussions.AddComment(c.Request.Context(), id, in.ToEntity())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondCreated(c, dto.FromDiscussionComment(apiBase(c), cm))
}

// PUT /api/discussion-topics/:id/discussion-comments/:commentId
func (h *DiscussionHandler) UpdateComment(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	commentID, ok := pathUUID(c, "commentId")
	if !ok {
		return
	}
	var in dto.DiscussionComment
	if !bindUpdate(c, &in, commentID) {
		return
	}
	cm, err := h.discussions.UpdateComment(c.Request.Context(), id, commentID, in.ToEntity())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, dto.FromDiscussionComment(apiBase(c), cm))
}

// DELETE /api/discussion-topics/:id/discussion-comments/:commentId
func (h *DiscussionHandler) DeleteComment(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	commentID, ok := pathUUID(c, "commentId")
	if !ok {
		return
	}
	respondDeleted(c, h.discussions.DeleteComment(c.Request.Context(), id, commentID))
}
