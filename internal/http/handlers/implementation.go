package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	types "github.com/quantumatlas/atlas-backend/internal/domain"
	"github.com/quantumatlas/atlas-backend/internal/http/dto"
	"github.com/quantumatlas/atlas-backend/internal/http/response"
	"github.com/quantumatlas/atlas-backend/internal/services"
)

type ImplementationHandler struct {
	implementations services.ImplementationService
}

func NewImplementationHandler(implementations services.ImplementationService) *ImplementationHandler {
	return &ImplementationHandler{implementations: implementations}
}

// scoped resolves :id and :implId and checks that the implementation belongs to the algorithm.
func (h *ImplementationHandler) scoped(c *gin.Context) (*types.Implementation, bool) {
	algoID, ok := pathUUID(c, "id")
	if !ok {
		return nil, false
	}
	implID, ok := pathUUID(c, "implId")
	if !ok {
		return nil, false
	}
	impl, err := h.implementations.FindByAlgorithmAndID(c.Request.Context(), algoID, implID)
	if err != nil {
		response.RespondErr(c, err)
		return nil, false
	}
	return impl, true
}

// GET /api/implementations
func (h *ImplementationHandler) ListAll(c *gin.Context) {
	base := apiBase(c)
	pg, err := h.implementations.FindAll(c.Request.Context(), pageable(c), search(c))
	respondPage(c, pg, err, "implementations", dto.Href(base, "implementations"), func(i *types.Implementation) dto.Implementation {
		return dto.FromImplementation(base, i)
	})
}

// GET /api/implementations/:id
func (h *ImplementationHandler) GetAny(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	impl, err := h.implementations.FindByID(c.Request.Context(), id)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, dto.FromImplementation(apiBase(c), impl))
}

// GET /api/algorithms/:id/implementations
func (h *ImplementationHandler) List(c *gin.Context) {
	algoID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	base := apiBase(c)
	pg, err := h.implementations.FindByImplementedAlgorithm(c.Request.Context(), algoID, pageable(c))
	respondPage(c, pg, err, "implementations", dto.Href(base, "algorithms", algoID, "implementations"), func(i *types.Implementation) dto.Implementation {
		return dto.FromImplementation(base, i)
	})
}

// GET /api/algorithms/:id/implementations/:implId
func (h *ImplementationHandler) Get(c *gin.Context) {
	impl, ok := h.scoped(c)
	if !ok {
		return
	}
	response.RespondOK(c, dto.FromImplementation(apiBase(c), impl))
}

// POST /api/algorithms/:id/implementations
func (h *ImplementationHandler) Create(c *gin.Context) {
	algoID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var in dto.Implementation
	if !bindCreate(c, &in) {
		return
	}
	impl, err := h.implementations.Save(c.Request.Context(), algoID, in.ToEntity())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondCreated(c, dto.FromImplementation(apiBase(c), impl))
}

// PUT /api/algorithms/:id/implementations/:implId
func (h *ImplementationHandler) Update(c *gin.Context) {
	algoID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	implID, ok := pathUUID(c, "implId")
	if !ok {
		return
	}
	var in dto.Implementation
	if !bindUpdate(c, &in, implID) {
		return
	}
	impl, err := h.implementations.Update(c.Request.Context(), algoID, implID, in.ToEntity())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, dto.FromImplementation(apiBase(c), impl))
}

// DELETE /api/algorithms/:id/implementations/:implId
func (h *ImplementationHandler) Delete(c *gin.Context) {
	algoID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	implID, ok := pathUUID(c, "implId")
	if !ok {
		return
	}
	respondDeleted(c, h.implementations.Delete(c.Request.Context(), algoID, implID))
}

func (h *ImplementationHandler) tagsHref(base string, impl *types.Implementation) string {
	return dto.Href(base, "algorithms", impl.AlgorithmID, "implementations", impl.ID, "tags")
}

// GET /api/algorithms/:id/implementations/:implId/tags
func (h *ImplementationHandler) ListTags(c *gin.Context) {
	impl, ok := h.scoped(c)
	if !ok {
		return
	}
	base := apiBase(c)
	tags, err := h.implementations.GetTags(c.Request.Context(), impl.ID)
	respondList(c, tags, err, "tags", h.tagsHref(base, impl), func(t *types.Tag) dto.Tag { return dto.FromTag(base, t) })
}

// POST /api/algorithms/:id/implementations/:implId/tags
func (h *ImplementationHandler) AddTag(c *gin.Context) {
	impl, ok := h.scoped(c)
	if !ok {
		return
	}
	var in dto.Tag
	if !bindBody(c, &in) {
		return
	}
	ctx := c.Request.Context()
	if _, err := h.implementations.AddTag(ctx, impl.ID, in.ToEntity()); err != nil {
		response.RespondErr(c, err)
		return
	}
	base := apiBase(c)
	tags, err := h.implementations.GetTags(ctx, impl.ID)
	respondList(c, tags, err, "tags", h.tagsHref(base, impl), func(t *types.Tag) dto.Tag { return dto.FromTag(base, t) })
}

// DELETE /api/algorithms/:id/implementations/:implId/tags/:name
func (h *ImplementationHandler) RemoveTag(c *gin.Context) {
	impl, ok := h.scoped(c)
	if !ok {
		return
	}
	respondDeleted(c, h.implementations.RemoveTag(c.Request.Context(), impl.ID, strings.TrimSpace(c.Param("name"))))
}

// GET /api/algorithms/:id/implementations/:implId/software-platforms
func (h *ImplementationHandler) ListSoftwarePlatforms(c *gin.Context) {
	impl, ok := h.scoped(c)
	if !ok {
		return
	}
	base := apiBase(c)
	pg, err := h.implementations.FindLinkedSoftwarePlatforms(c.Request.Context(), impl.ID, pageable(c))
	self := dto.Href(base, "algorithms", impl.AlgorithmID, "implementations", impl.ID, "software-platforms")
	respondPage(c, pg, err, "softwarePlatforms", self, func(p *types.SoftwarePlatform) dto.SoftwarePlatform {
		return dto.FromSoftwarePlatform(base, p)
	})
}

// POST /api/algorithms/:id/implementations/:implId/software-platforms
func (h *ImplementationHandler) AddSoftwarePlatform(c *gin.Context) {
	impl, ok := h.scoped(c)
	if !ok {
		return
	}
	var body refBody
	if !bindBody(c, &body) {
		return
	}
	platform, err := h.implementations.AddSoftwarePlatformReference(c.Request.Context(), impl.ID, body.ID)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, dto.FromSoftwarePlatform(apiBase(c), platform))
}

// DELETE /api/algorithms/:id/implementations/:implId/software-platforms/:refId
func (h *ImplementationHandler) DeleteSoftwarePlatform(c *gin.Context) {
	impl, ok := h.scoped(c)
	if !ok {
		return
	}
	refID, ok := pathUUID(c, "refId")
	if !ok {
		return
	}
	respondDeleted(c, h.implementations.DeleteSoftwarePlatformReference(c.Request.Context(), impl.ID, refID))
}

// POST /api/algorithms/:id/implementations/:implId/execute
func (h *ImplementationHandler) Execute(c *gin.Context) {
	impl, ok := h.scoped(c)
	if !ok {
		return
	}
	params := map[string]string{}
	if c.Request.ContentLength != 0 {
		if !bindBody(c, &params) {
			return
		}
	}
	out, err := h.implementations.Execute(c.Request.Context(), impl.ID, params)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	if out == nil {
		out = map[string]string{}
	}
	response.RespondOK(c, gin.H{"implementation_id": impl.ID, "result": out})
}

// ImplementationOwner resolves the owner of /algorithms/:id/implementations/:implId/compute-resource-properties.
func (h *ImplementationHandler) ImplementationOwner(c *gin.Context) (types.PropertyOwner, string, bool) {
	impl, ok := h.scoped(c)
	if !ok {
		return types.PropertyOwner{}, "", false
	}
	href := dto.Href(apiBase(c), "algorithms", impl.AlgorithmID, "implementations", impl.ID)
	return types.PropertyOwner{Kind: types.OwnerImplementation, ID: impl.ID}, href, true
}
