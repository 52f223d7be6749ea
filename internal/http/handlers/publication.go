package handlers

import (
	"github.com/gin-gonic/gin"

	types "github.com/quantumatlas/atlas-backend/internal/domain"
	"github.com/quantumatlas/atlas-backend/internal/http/dto"
	"github.com/quantumatlas/atlas-backend/internal/http/response"
	"github.com/quantumatlas/atlas-backend/internal/services"
)

type PublicationHandler struct {
	publications services.PublicationService
}

func NewPublicationHandler(publications services.PublicationService) *PublicationHandler {
	return &PublicationHandler{publications: publications}
}

// GET /api/publications
func (h *PublicationHandler) List(c *gin.Context) {
	base := apiBase(c)
	pg, err := h.publications.FindAll(c.Request.Context(), pageable(c), search(c))
	respondPage(c, pg, err, "publications", dto.Href(base, "publications"), func(p *types.Publication) dto.Publication {
		return dto.FromPublication(base, p)
	})
}

// GET /api/publications/:id
func (h *PublicationHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	pub, err := h.publications.FindByID(c.Request.Context(), id)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, dto.FromPublication(apiBase(c), pub))
}

// POST /api/publications
func (h *PublicationHandler) Create(c *gin.Context) {
	var in dto.Publication
	if !bindCreate(c, &in) {
		return
	}
	pub, err := h.publications.Save(c.Request.Context(), in.ToEntity())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondCreated(c, dto.FromPublication(apiBase(c), pub))
}

// PUT /api/publications/:id
func (h *PublicationHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var in dto.Publication
	if !bindUpdate(c, &in, id) {
		return
	}
	pub, err := h.publications.Update(c.Request.Context(), id, in.ToEntity())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, dto.FromPublication(apiBase(c), pub))
}

// DELETE /api/publications/:id
func (h *PublicationHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	respondDeleted(c, h.publications.DeleteByID(c.Request.Context(), id))
}

// GET /api/publications/:id/algorithms
func (h *PublicationHandler) ListAlgorithms(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	base := apiBase(c)
	pg, err := h.publications.FindAlgorithms(c.Request.Context(), id, pageable(c))
	respondPage(c, pg, err, "algorithms", dto.Href(base, "publications", id, "algorithms"), func(a *types.Algorithm) dto.Algorithm {
		return dto.FromAlgorithm(base, a)
	})
}

type ProblemTypeHandler struct {
	problemTypes services.ProblemTypeService
}

func NewProblemTypeHandler(problemTypes services.ProblemTypeService) *ProblemTypeHandler {
	return &ProblemTypeHandler{problemTypes: problemTypes}
}

// GET /api/problem-types
func (h *ProblemTypeHandler) List(c *gin.Context) {
	base := apiBase(c)
	pg, err := h.problemTypes.FindAll(c.Request.Context(), pageable(c), search(c))
	respondPage(c, pg, err, "problemTypes", dto.Href(base, "problem-types"), func(p *types.ProblemType) dto.ProblemType {
		return dto.FromProblemType(base, p)
	})
}

// GET /api/problem-types/:id
func (h *ProblemTypeHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	pt, err := h.problemTypes.FindByID(c.Request.Context(), id)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, dto.FromProblemType(apiBase(c), pt))
}

// POST /api/problem-types
func (h *ProblemTypeHandler) Create(c *gin.Context) {
	var in dto.ProblemType
	if !bindCreate(c, &in) {
		return
	}
	pt, err := h.problemTypes.Save(c.Request.Context(), in.ToEntity())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondCreated(c, dto.FromProblemType(apiBase(c), pt))
}

// PUT /api/problem-types/:id
func (h *ProblemTypeHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var in dto.ProblemType
	if !bindUpdate(c, &in, id) {
		return
	}
	pt, err := h.problemTypes.Update(c.Request.Context(), id, in.ToEntity())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, dto.FromProblemType(apiBase(c), pt))
}

// DELETE /api/problem-types/:id
func (h *ProblemTypeHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	respondDeleted(c, h.problemTypes.Delete(c.Request.Context(), id))
}

// GET /api/problem-types/:id/parents
func (h *ProblemTypeHandler) Parents(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	base := apiBase(c)
	rows, err := h.problemTypes.GetParentList(c.Request.Context(), id)
	respondList(c, rows, err, "problemTypes", dto.Href(base, "problem-types", id, "parents"), func(p *types.ProblemType) dto.ProblemType {
		return dto.FromProblemType(base, p)
	})
}

type ApplicationAreaHandler struct {
	areas services.ApplicationAreaService
}

func NewApplicationAreaHandler(areas services.ApplicationAreaService) *ApplicationAreaHandler {
	return &ApplicationAreaHandler{areas: areas}
}

// GET /api/application-areas
func (h *ApplicationAreaHandler) List(c *gin.Context) {
	base := apiBase(c)
	pg, err := h.areas.FindAll(c.Request.Context(), pageable(c), search(c))
	respondPage(c, pg, err, "applicationAreas", dto.Href(base, "application-areas"), func(a *types.ApplicationArea) dto.ApplicationArea {
		return dto.FromApplicationArea(base, a)
	})
}

// GET /api/application-areas/:id
func (h *ApplicationAreaHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	area, err := h.areas.FindByID(c.Request.Context(), id)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, dto.FromApplicationArea(apiBase(c), area))
}

// POST /api/application-areas
func (h *ApplicationAreaHandler) Create(c *gin.Context) {
	var in dto.ApplicationArea
	if !bindCreate(c, &in) {
		return
	}
	area, err := h.areas.Save(c.Request.Context(), in.ToEntity())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondCreated(c, dto.FromApplicationArea(apiBase(c), area))
}

// PUT /api/application-areas/:id
func (h *ApplicationAreaHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var in dto.ApplicationArea
	if !bindUpdate(c, &in, id) {
		return
	}
	area, err := h.areas.Update(c.Request.Context(), id, in.ToEntity())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, dto.FromApplicationArea(apiBase(c), area))
}

// DELETE /api/application-areas/:id
func (h *ApplicationAreaHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	respondDeleted(c, h.areas.Delete(c.Request.Context(), id))
}
