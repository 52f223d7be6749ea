package handlers

import (
	"github.com/gin-gonic/gin"

	types "github.com/quantumatlas/atlas-backend/internal/domain"
	"github.com/quantumatlas/atlas-backend/internal/http/dto"
	"github.com/quantumatlas/atlas-backend/internal/http/response"
	"github.com/quantumatlas/atlas-backend/internal/services"
)

// OwnerResolver reads the property owner from the route and returns it with
// the owner's href. It writes the error response itself when it fails.
type OwnerResolver func(c *gin.Context) (types.PropertyOwner, string, bool)

func AlgorithmOwner(c *gin.Context) (types.PropertyOwner, string, bool) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return types.PropertyOwner{}, "", false
	}
	return types.PropertyOwner{Kind: types.OwnerAlgorithm, ID: id}, dto.Href(apiBase(c), "algorithms", id), true
}

func ComputeResourceOwner(c *gin.Context) (types.PropertyOwner, string, bool) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return types.PropertyOwner{}, "", false
	}
	return types.PropertyOwner{Kind: types.OwnerComputeResource, ID: id}, dto.Href(apiBase(c), "compute-resources", id), true
}

// PropertyHandler serves compute-resource-properties below any owner.
type PropertyHandler struct {
	properties services.ComputeResourcePropertyService
}

func NewPropertyHandler(properties services.ComputeResourcePropertyService) *PropertyHandler {
	return &PropertyHandler{properties: properties}
}

// GET <owner>/compute-resource-properties
func (h *PropertyHandler) List(resolve OwnerResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, href, ok := resolve(c)
		if !ok {
			return
		}
		base := apiBase(c)
		pg, err := h.properties.FindByOwner(c.Request.Context(), owner, pageable(c))
		respondPage(c, pg, err, "computeResourceProperties", dto.Href(href, "compute-resource-properties"), func(p *types.ComputeResourceProperty) dto.Property {
			return dto.FromProperty(base, href, p)
		})
	}
}

// GET <owner>/compute-resource-properties/:propId
func (h *PropertyHandler) Get(resolve OwnerResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, href, ok := resolve(c)
		if !ok {
			return
		}
		propID, ok := pathUUID(c, "propId")
		if !ok {
			return
		}
		prop, err := h.properties.FindByID(c.Request.Context(), owner, propID)
		if err != nil {
			response.RespondErr(c, err)
			return
		}
		response.RespondOK(c, dto.FromProperty(apiBase(c), href, prop))
	}
}

// POST <owner>/compute-resource-properties
func (h *PropertyHandler) Create(resolve OwnerResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, href, ok := resolve(c)
		if !ok {
			return
		}
		var in dto.Property
		if !bindCreate(c, &in) {
			return
		}
		prop, err := h.properties.Add(c.Request.Context(), owner, in.ToEntity())
		if err != nil {
			response.RespondErr(c, err)
			return
		}
		response.RespondCreated(c, dto.FromProperty(apiBase(c), href, prop))
	}
}

// PUT <owner>/compute-resource-properties/:propId
func (h *PropertyHandler) Update(resolve OwnerResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, href, ok := resolve(c)
		if !ok {
			return
		}
		propID, ok := pathUUID(c, "propId")
		if !ok {
			return
		}
		var in dto.Property
		if !bindUpdate(c, &in, propID) {
			return
		}
		prop, err := h.properties.Update(c.Request.Context(), owner, propID, in.ToEntity())
		if err != nil {
			response.RespondErr(c, err)
			return
		}
		response.RespondOK(c, dto.FromProperty(apiBase(c), href, prop))
	}
}

// DELETE <owner>/compute-resource-properties/:propId
func (h *PropertyHandler) Delete(resolve OwnerResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, _, ok := resolve(c)
		if !ok {
			return
		}
		propID, ok := pathUUID(c, "propId")
		if !ok {
			return
		}
		respondDeleted(c, h.properties.Delete(c.Request.Context(), owner, propID))
	}
}
