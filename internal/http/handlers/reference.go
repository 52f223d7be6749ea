package handlers

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/quantumatlas/atlas-backend/internal/http/dto"
	"github.com/quantumatlas/atlas-backend/internal/http/response"
	"github.com/quantumatlas/atlas-backend/internal/platform/apierr"
)

// refBody is the request body of a reference add: only the id is read.
type refBody struct {
	ID uuid.UUID `json:"id"`
}

// references serves a many-to-many link collection below an owner,
// e.g. /algorithms/:id/publications[/:refId].
type references[E, D any] struct {
	owner   string
	segment string
	rel     string
	list    func(ctx context.Context, ownerID uuid.UUID) ([]*E, error)
	get     func(ctx context.Context, ownerID, refID uuid.UUID) (*E, error)
	add     func(ctx context.Context, ownerID, refID uuid.UUID) (*E, error)
	remove  func(ctx context.Context, ownerID, refID uuid.UUID) error
	toDTO   func(base string, row *E) D
}

func (r references[E, D]) self(base string, ownerID uuid.UUID) string {
	return dto.Href(base, r.owner, ownerID, r.segment)
}

func (r references[E, D]) List(c *gin.Context) {
	ownerID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	base := apiBase(c)
	rows, err := r.list(c.Request.Context(), ownerID)
	respondList(c, rows, err, r.rel, r.self(base, ownerID), func(row *E) D { return r.toDTO(base, row) })
}

func (r references[E, D]) Get(c *gin.Context) {
	ownerID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	refID, ok := pathUUID(c, "refId")
	if !ok {
		return
	}
	row, err := r.get(c.Request.Context(), ownerID, refID)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, r.toDTO(apiBase(c), row))
}

// Add links the entity named by the body id and answers with the updated collection.
func (r references[E, D]) Add(c *gin.Context) {
	ownerID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var body refBody
	if !bindBody(c, &body) {
		return
	}
	if body.ID == uuid.Nil {
		response.RespondErr(c, apierr.BadRequest("id_required", errors.New("the id of the referenced entity is required")))
		return
	}
	ctx := c.Request.Context()
	if _, err := r.add(ctx, ownerID, body.ID); err != nil {
		response.RespondErr(c, err)
		return
	}
	base := apiBase(c)
	rows, err := r.list(ctx, ownerID)
	respondList(c, rows, err, r.rel, r.self(base, ownerID), func(row *E) D { return r.toDTO(base, row) })
}

func (r references[E, D]) Delete(c *gin.Context) {
	ownerID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	refID, ok := pathUUID(c, "refId")
	if !ok {
		return
	}
	respondDeleted(c, r.remove(c.Request.Context(), ownerID, refID))
}
