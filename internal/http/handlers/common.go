package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/quantumatlas/atlas-backend/internal/http/dto"
	"github.com/quantumatlas/atlas-backend/internal/http/response"
	"github.com/quantumatlas/atlas-backend/internal/pkg/paging"
	"github.com/quantumatlas/atlas-backend/internal/platform/apierr"
)

type identified interface {
	Identifier() uuid.UUID
}

func apiBase(c *gin.Context) string {
	if v := c.GetString(dto.CtxAPIBase); v != "" {
		return v
	}
	return dto.BaseURL(c, "")
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param(name)))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("%s: %w", name, err))
		return uuid.Nil, false
	}
	return id, true
}

func pageable(c *gin.Context) paging.Pageable {
	return paging.Parse(c.Query("page"), c.Query("size"), c.QueryArray("sort"))
}

func search(c *gin.Context) string {
	return strings.TrimSpace(c.Query("search"))
}

func bindBody(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return false
	}
	return true
}

// bindCreate decodes a create request; bodies that already carry an id are rejected.
func bindCreate[D identified](c *gin.Context, dst *D) bool {
	if !bindBody(c, dst) {
		return false
	}
	if (*dst).Identifier() != uuid.Nil {
		response.RespondErr(c, apierr.BadRequest("id_forbidden", errors.New("id must not be set on create")))
		return false
	}
	return true
}

// bindUpdate decodes an update request; a body id must match the path id.
func bindUpdate[D identified](c *gin.Context, dst *D, id uuid.UUID) bool {
	if !bindBody(c, dst) {
		return false
	}
	if got := (*dst).Identifier(); got != uuid.Nil && got != id {
		response.RespondErr(c, apierr.BadRequest("id_mismatch", fmt.Errorf("body id %s does not match path id %s", got, id)))
		return false
	}
	return true
}

func respondPage[E, T any](c *gin.Context, pg paging.Page[E], err error, rel, self string, fn func(E) T) {
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, dto.Paged(pg, rel, self, fn))
}

func respondList[E, T any](c *gin.Context, rows []E, err error, rel, self string, fn func(E) T) {
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, dto.Collection(rows, rel, self, fn))
}

func respondDeleted(c *gin.Context, err error) {
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondNoContent(c)
}
