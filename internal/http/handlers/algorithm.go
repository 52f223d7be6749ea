package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/quantumatlas/atlas-backend/internal/domain"
	"github.com/quantumatlas/atlas-backend/internal/http/dto"
	"github.com/quantumatlas/atlas-backend/internal/http/response"
	"github.com/quantumatlas/atlas-backend/internal/services"
)

type AlgorithmHandler struct {
	algorithms services.AlgorithmService

	Publications     references[types.Publication, dto.Publication]
	ProblemTypes     references[types.ProblemType, dto.ProblemType]
	ApplicationAreas references[types.ApplicationArea, dto.ApplicationArea]
}

func NewAlgorithmHandler(algorithms services.AlgorithmService) *AlgorithmHandler {
	return &AlgorithmHandler{
		algorithms: algorithms,
		Publications: references[types.Publication, dto.Publication]{
			owner:   "algorithms",
			segment: "publications",
			rel:     "publications",
			list:    algorithms.ListPublications,
			get:     algorithms.GetPublication,
			add:     algorithms.AddPublicationReference,
			remove:  algorithms.DeletePublicationReference,
			toDTO:   dto.FromPublication,
		},
		ProblemTypes: references[types.ProblemType, dto.ProblemType]{
			owner:   "algorithms",
			segment: "problem-types",
			rel:     "problemTypes",
			list:    algorithms.ListProblemTypes,
			get:     algorithms.GetProblemType,
			add:     algorithms.AddProblemTypeReference,
			remove:  algorithms.DeleteProblemTypeReference,
			toDTO:   dto.FromProblemType,
		},
		ApplicationAreas: references[types.ApplicationArea, dto.ApplicationArea]{
			owner:   "algorithms",
			segment: "application-areas",
			rel:     "applicationAreas",
			list:    algorithms.ListApplicationAreas,
			get:     algorithms.GetApplicationArea,
			add:     algorithms.AddApplicationAreaReference,
			remove:  algorithms.DeleteApplicationAreaReference,
			toDTO:   dto.FromApplicationArea,
		},
	}
}

// GET /api/algorithms
func (h *AlgorithmHandler) List(c *gin.Context) {
	base := apiBase(c)
	pg, err := h.algorithms.FindAll(c.Request.Context(), pageable(c), search(c))
	respondPage(c, pg, err, "algorithms", dto.Href(base, "algorithms"), func(a *types.Algorithm) dto.Algorithm {
		return dto.FromAlgorithm(base, a)
	})
}

// GET /api/algorithms/:id
func (h *AlgorithmHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	algo, err := h.algorithms.FindByID(c.Request.Context(), id)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, dto.FromAlgorithm(apiBase(c), algo))
}

// POST /api/algorithms
func (h *AlgorithmHandler) Create(c *gin.Context) {
	var in dto.Algorithm
	if !bindCreate(c, &in) {
		return
	}
	algo, err := h.algorithms.Save(c.Request.Context(), in.ToEntity())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondCreated(c, dto.FromAlgorithm(apiBase(c), algo))
}

// PUT /api/algorithms/:id
func (h *AlgorithmHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var in dto.Algorithm
	if !bindUpdate(c, &in, id) {
		return
	}
	algo, err := h.algorithms.Update(c.Request.Context(), id, in.ToEntity())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, dto.FromAlgorithm(apiBase(c), algo))
}

// DELETE /api/algorithms/:id
func (h *AlgorithmHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	respondDeleted(c, h.algorithms.Delete(c.Request.Context(), id))
}

// GET /api/algorithms/:id/pattern-relations
func (h *AlgorithmHandler) ListPatternRelations(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	base := apiBase(c)
	rows, err := h.algorithms.GetPatternRelations(c.Request.Context(), id)
	respondList(c, rows, err, "patternRelations", dto.Href(base, "algorithms", id, "pattern-relations"), func(r *types.PatternRelation) dto.PatternRelation {
		return dto.FromPatternRelation(base, r)
	})
}

// GET /api/algorithms/:id/pattern-relations/:relId
func (h *AlgorithmHandler) GetPatternRelation(c *gin.Context) {
	id, relID, ok := algoAndRel(c)
	if !ok {
		return
	}
	rel, err := h.algorithms.GetPatternRelation(c.Request.Context(), id, relID)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, dto.FromPatternRelation(apiBase(c), rel))
}

// POST /api/algorithms/:id/pattern-relations
func (h *AlgorithmHandler) CreatePatternRelation(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var in dto.PatternRelation
	if !bindCreate(c, &in) {
		return
	}
	rel, err := h.algorithms.AddPatternRelation(c.Request.Context(), id, in.ToEntity())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondCreated(c, dto.FromPatternRelation(apiBase(c), rel))
}

// PUT /api/algorithms/:id/pattern-relations/:relId
func (h *AlgorithmHandler) UpdatePatternRelation(c *gin.Context) {
	id, relID, ok := algoAndRel(c)
	if !ok {
		return
	}
	var in dto.PatternRelation
	if !bindUpdate(c, &in, relID) {
		return
	}
	rel, err := h.algorithms.UpdatePatternRelation(c.Request.Context(), id, relID, in.ToEntity())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, dto.FromPatternRelation(apiBase(c), rel))
}

// DELETE /api/algorithms/:id/pattern-relations/:relId
func (h *AlgorithmHandler) DeletePatternRelation(c *gin.Context) {
	id, relID, ok := algoAndRel(c)
	if !ok {
		return
	}
	respondDeleted(c, h.algorithms.DeletePatternRelation(c.Request.Context(), id, relID))
}

// GET /api/algorithms/:id/algorithm-relations
func (h *AlgorithmHandler) ListAlgorithmRelations(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	base := apiBase(c)
	rows, err := h.algorithms.GetAlgorithmRelations(c.Request.Context(), id)
	respondList(c, rows, err, "algorithmRelations", dto.Href(base, "algorithms", id, "algorithm-relations"), func(r *types.AlgorithmRelation) dto.AlgorithmRelation {
		return dto.FromAlgorithmRelation(base, id, r)
	})
}

// GET /api/algorithms/:id/algorithm-relations/:relId
func (h *AlgorithmHandler) GetAlgorithmRelation(c *gin.Context) {
	id, relID, ok := algoAndRel(c)
	if !ok {
		return
	}
	rel, err := h.algorithms.GetAlgorithmRelation(c.Request.Context(), id, relID)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, dto.FromAlgorithmRelation(apiBase(c), id, rel))
}

// POST /api/algorithms/:id/algorithm-relations
func (h *AlgorithmHandler) CreateAlgorithmRelation(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var in dto.AlgorithmRelation
	if !bindCreate(c, &in) {
		return
	}
	rel, err := h.algorithms.AddOrUpdateAlgorithmRelation(c.Request.Context(), id, in.ToEntity())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondCreated(c, dto.FromAlgorithmRelation(apiBase(c), id, rel))
}

// PUT /api/algorithms/:id/algorithm-relations/:relId
func (h *AlgorithmHandler) UpdateAlgorithmRelation(c *gin.Context) {
	id, relID, ok := algoAndRel(c)
	if !ok {
		return
	}
	var in dto.AlgorithmRelation
	if !bindUpdate(c, &in, relID) {
		return
	}
	ctx := c.Request.Context()
	if _, err := h.algorithms.GetAlgorithmRelation(ctx, id, relID); err != nil {
		response.RespondErr(c, err)
		return
	}
	rel := in.ToEntity()
	rel.ID = relID
	saved, err := h.algorithms.AddOrUpdateAlgorithmRelation(ctx, id, rel)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, dto.FromAlgorithmRelation(apiBase(c), id, saved))
}

// DELETE /api/algorithms/:id/algorithm-relations/:relId
func (h *AlgorithmHandler) DeleteAlgorithmRelation(c *gin.Context) {
	id, relID, ok := algoAndRel(c)
	if !ok {
		return
	}
	respondDeleted(c, h.algorithms.DeleteAlgorithmRelation(c.Request.Context(), id, relID))
}

func algoAndRel(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	relID, ok := pathUUID(c, "relId")
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	return id, relID, true
}
