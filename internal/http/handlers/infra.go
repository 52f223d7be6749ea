package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	types "github.com/quantumatlas/atlas-backend/internal/domain"
	"github.com/quantumatlas/atlas-backend/internal/http/dto"
	"github.com/quantumatlas/atlas-backend/internal/http/response"
	"github.com/quantumatlas/atlas-backend/internal/services"
)

type ProviderHandler struct {
	providers services.ProviderService
}

func NewProviderHandler(providers services.ProviderService) *ProviderHandler {
	return &ProviderHandler{providers: providers}
}

// GET /api/providers
func (h *ProviderHandler) List(c *gin.Context) {
	base := apiBase(c)
	pg, err := h.providers.FindAll(c.Request.Context(), pageable(c), search(c))
	respondPage(c, pg, err, "providers", dto.Href(base, "providers"), func(p *types.Provider) dto.Provider {
		return dto.FromProvider(base, p)
	})
}

// GET /api/providers/:id
func (h *ProviderHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	p, err := h.providers.FindByID(c.Request.Context(), id)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, dto.FromProvider(apiBase(c), p))
}

// POST /api/providers
func (h *ProviderHandler) Create(c *gin.Context) {
	var in dto.Provider
	if !bindCreate(c, &in) {
		return
	}
	row, err := in.ToEntity()
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	p, err := h.providers.Save(c.Request.Context(), row)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondCreated(c, dto.FromProvider(apiBase(c), p))
}

// PUT /api/providers/:id
func (h *ProviderHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var in dto.Provider
	if !bindUpdate(c, &in, id) {
		return
	}
	row, err := in.ToEntity()
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	p, err := h.providers.Update(c.Request.Context(), id, row)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, dto.FromProvider(apiBase(c), p))
}

// DELETE /api/providers/:id
func (h *ProviderHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	respondDeleted(c, h.providers.Delete(c.Request.Context(), id))
}

type CloudServiceHandler struct {
	cloudServices services.CloudServiceService
}

func NewCloudServiceHandler(cloudServices services.CloudServiceService) *CloudServiceHandler {
	return &CloudServiceHandler{cloudServices: cloudServices}
}

// GET /api/cloud-services
func (h *CloudServiceHandler) List(c *gin.Context) {
	base := apiBase(c)
	pg, err := h.cloudServices.FindAll(c.Request.Context(), pageable(c), search(c))
	respondPage(c, pg, err, "cloudServices", dto.Href(base, "cloud-services"), func(svc *types.CloudService) dto.CloudService {
		return dto.FromCloudService(base, svc)
	})
}

// GET /api/cloud-services/:id
func (h *CloudServiceHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	svc, err := h.cloudServices.FindByID(c.Request.Context(), id)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, dto.FromCloudService(apiBase(c), svc))
}

// POST /api/cloud-services
func (h *CloudServiceHandler) Create(c *gin.Context) {
	var in dto.CloudService
	if !bindCreate(c, &in) {
		return
	}
	svc, err := h.cloudServices.Save(c.Request.Context(), in.ToEntity())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondCreated(c, dto.FromCloudService(apiBase(c), svc))
}

// PUT /api/cloud-services/:id
func (h *CloudServiceHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var in dto.CloudService
	if !bindUpdate(c, &in, id) {
		return
	}
	row := in.ToEntity()
	row.ID = id
	svc, err := h.cloudServices.CreateOrUpdate(c.Request.Context(), row)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, dto.FromCloudService(apiBase(c), svc))
}

// DELETE /api/cloud-services/:id
func (h *CloudServiceHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	respondDeleted(c, h.cloudServices.Delete(c.Request.Context(), id))
}

// GET /api/cloud-services/:id/compute-resources
func (h *CloudServiceHandler) ListComputeResources(c *gin.Context) {
	listBelow(c, "cloud-services", "compute-resources", "computeResources", h.cloudServices.FindComputeResources, dto.FromComputeResource)
}

// POST /api/cloud-services/:id/compute-resources
func (h *CloudServiceHandler) AddComputeResource(c *gin.Context) {
	linkBelow(c, h.cloudServices.AddComputeResourceReference, dto.FromComputeResource)
}

// DELETE /api/cloud-services/:id/compute-resources/:refId
func (h *CloudServiceHandler) DeleteComputeResource(c *gin.Context) {
	unlinkBelow(c, h.cloudServices.DeleteComputeResourceReference)
}

type ComputeResourceHandler struct {
	computeResources services.ComputeResourceService
}

func NewComputeResourceHandler(computeResources services.ComputeResourceService) *ComputeResourceHandler {
	return &ComputeResourceHandler{computeResources: computeResources}
}

// GET /api/compute-resources
func (h *ComputeResourceHandler) List(c *gin.Context) {
	base := apiBase(c)
	pg, err := h.computeResources.FindAll(c.Request.Context(), pageable(c), search(c))
	respondPage(c, pg, err, "computeResources", dto.Href(base, "compute-resources"), func(r *types.ComputeResource) dto.ComputeResource {
		return dto.FromComputeResource(base, r)
	})
}

// GET /api/compute-resources/:id
func (h *ComputeResourceHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	r, err := h.computeResources.FindByID(c.Request.Context(), id)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, dto.FromComputeResource(apiBase(c), r))
}

// POST /api/compute-resources
func (h *ComputeResourceHandler) Create(c *gin.Context) {
	var in dto.ComputeResource
	if !bindCreate(c, &in) {
		return
	}
	r, err := h.computeResources.Save(c.Request.Context(), in.ToEntity())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondCreated(c, dto.FromComputeResource(apiBase(c), r))
}

// PUT /api/compute-resources/:id
func (h *ComputeResourceHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var in dto.ComputeResource
	if !bindUpdate(c, &in, id) {
		return
	}
	row := in.ToEntity()
	row.ID = id
	r, err := h.computeResources.CreateOrUpdate(c.Request.Context(), row)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, dto.FromComputeResource(apiBase(c), r))
}

// DELETE /api/compute-resources/:id
func (h *ComputeResourceHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	respondDeleted(c, h.computeResources.Delete(c.Request.Context(), id))
}

// GET /api/compute-resources/:id/cloud-services
func (h *ComputeResourceHandler) ListCloudServices(c *gin.Context) {
	listBelow(c, "compute-resources", "cloud-services", "cloudServices", h.computeResources.FindLinkedCloudServices, dto.FromCloudService)
}

// GET /api/compute-resources/:id/software-platforms
func (h *ComputeResourceHandler) ListSoftwarePlatforms(c *gin.Context) {
	listBelow(c, "compute-resources", "software-platforms", "softwarePlatforms", h.computeResources.FindLinkedSoftwarePlatforms, dto.FromSoftwarePlatform)
}
