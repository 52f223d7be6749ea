package handlers

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/quantumatlas/atlas-backend/internal/domain"
	"github.com/quantumatlas/atlas-backend/internal/http/dto"
	"github.com/quantumatlas/atlas-backend/internal/http/response"
	"github.com/quantumatlas/atlas-backend/internal/pkg/paging"
	"github.com/quantumatlas/atlas-backend/internal/services"
)

type SdkHandler struct {
	sdks services.SdkService
}

func NewSdkHandler(sdks services.SdkService) *SdkHandler {
	return &SdkHandler{sdks: sdks}
}

// GET /api/sdks?name= answers with the single sdk of that name.
func (h *SdkHandler) List(c *gin.Context) {
	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		h.listAll(c)
		return
	}
	sdk, err := h.sdks.FindByName(c.Request.Context(), name)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, dto.FromSdk(apiBase(c), sdk))
}

func (h *SdkHandler) listAll(c *gin.Context) {
	base := apiBase(c)
	pg, err := h.sdks.FindAll(c.Request.Context(), pageable(c), search(c))
	respondPage(c, pg, err, "sdks", dto.Href(base, "sdks"), func(sdk *types.Sdk) dto.Sdk {
		return dto.FromSdk(base, sdk)
	})
}

// GET /api/sdks/:id
func (h *SdkHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	sdk, err := h.sdks.FindByID(c.Request.Context(), id)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, dto.FromSdk(apiBase(c), sdk))
}

// POST /api/sdks
func (h *SdkHandler) Create(c *gin.Context) {
	var in dto.Sdk
	if !bindCreate(c, &in) {
		return
	}
	sdk, err := h.sdks.Save(c.Request.Context(), in.ToEntity())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondCreated(c, dto.FromSdk(apiBase(c), sdk))
}

// PUT /api/sdks/:id
func (h *SdkHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var in dto.Sdk
	if !bindUpdate(c, &in, id) {
		return
	}
	sdk, err := h.sdks.Update(c.Request.Context(), id, in.ToEntity())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, dto.FromSdk(apiBase(c), sdk))
}

// DELETE /api/sdks/:id
func (h *SdkHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	respondDeleted(c, h.sdks.Delete(c.Request.Context(), id))
}

type TagHandler struct {
	tags services.TagService
}

func NewTagHandler(tags services.TagService) *TagHandler {
	return &TagHandler{tags: tags}
}

// GET /api/tags
func (h *TagHandler) List(c *gin.Context) {
	base := apiBase(c)
	pg, err := h.tags.FindAll(c.Request.Context(), pageable(c), search(c))
	respondPage(c, pg, err, "tags", dto.Href(base, "tags"), func(tag *types.Tag) dto.Tag {
		return dto.FromTag(base, tag)
	})
}

// POST /api/tags
func (h *TagHandler) Create(c *gin.Context) {
	var in dto.Tag
	if !bindCreate(c, &in) {
		return
	}
	tag, err := h.tags.Save(c.Request.Context(), in.ToEntity())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondCreated(c, dto.FromTag(apiBase(c), tag))
}

// PUT /api/tags/:id
func (h *TagHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var in dto.Tag
	if !bindUpdate(c, &in, id) {
		return
	}
	tag, err := h.tags.Update(c.Request.Context(), id, in.ToEntity())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, dto.FromTag(apiBase(c), tag))
}

// DELETE /api/tags/:id
func (h *TagHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	respondDeleted(c, h.tags.Delete(c.Request.Context(), id))
}

// GET /api/tags/:id accepts a tag id or a tag name.
func (h *TagHandler) Get(c *gin.Context) {
	key := strings.TrimSpace(c.Param("id"))
	var (
		tag *types.Tag
		err error
	)
	if id, perr := uuid.Parse(key); perr == nil {
		tag, err = h.tags.FindByID(c.Request.Context(), id)
	} else {
		tag, err = h.tags.FindByName(c.Request.Context(), key)
	}
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, dto.FromTag(apiBase(c), tag))
}

// GET /api/tags/:name/implementations
func (h *TagHandler) ListImplementations(c *gin.Context) {
	name := strings.TrimSpace(c.Param("id"))
	base := apiBase(c)
	pg, err := h.tags.FindImplementations(c.Request.Context(), name, pageable(c))
	respondPage(c, pg, err, "implementations", dto.Href(base, "tags", name, "implementations"), func(i *types.Implementation) dto.Implementation {
		return dto.FromImplementation(base, i)
	})
}

type SoftwarePlatformHandler struct {
	platforms services.SoftwarePlatformService
}

func NewSoftwarePlatformHandler(platforms services.SoftwarePlatformService) *SoftwarePlatformHandler {
	return &SoftwarePlatformHandler{platforms: platforms}
}

// GET /api/software-platforms
func (h *SoftwarePlatformHandler) List(c *gin.Context) {
	base := apiBase(c)
	pg, err := h.platforms.FindAll(c.Request.Context(), pageable(c), search(c))
	respondPage(c, pg, err, "softwarePlatforms", dto.Href(base, "software-platforms"), func(p *types.SoftwarePlatform) dto.SoftwarePlatform {
		return dto.FromSoftwarePlatform(base, p)
	})
}

// GET /api/software-platforms/:id
func (h *SoftwarePlatformHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	p, err := h.platforms.FindByID(c.Request.Context(), id)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, dto.FromSoftwarePlatform(apiBase(c), p))
}

// POST /api/software-platforms
func (h *SoftwarePlatformHandler) Create(c *gin.Context) {
	var in dto.SoftwarePlatform
	if !bindCreate(c, &in) {
		return
	}
	p, err := h.platforms.Save(c.Request.Context(), in.ToEntity())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondCreated(c, dto.FromSoftwarePlatform(apiBase(c), p))
}

// PUT /api/software-platforms/:id
func (h *SoftwarePlatformHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var in dto.SoftwarePlatform
	if !bindUpdate(c, &in, id) {
		return
	}
	p, err := h.platforms.Update(c.Request.Context(), id, in.ToEntity())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, dto.FromSoftwarePlatform(apiBase(c), p))
}

// DELETE /api/software-platforms/:id
func (h *SoftwarePlatformHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	respondDeleted(c, h.platforms.Delete(c.Request.Context(), id))
}

// GET /api/software-platforms/:id/implementations
func (h *SoftwarePlatformHandler) ListImplementations(c *gin.Context) {
	listBelow(c, "software-platforms", "implementations", "implementations", h.platforms.FindImplementations, dto.FromImplementation)
}

// GET /api/software-platforms/:id/compute-resources
func (h *SoftwarePlatformHandler) ListComputeResources(c *gin.Context) {
	listBelow(c, "software-platforms", "compute-resources", "computeResources", h.platforms.FindComputeResources, dto.FromComputeResource)
}

// POST /api/software-platforms/:id/compute-resources
func (h *SoftwarePlatformHandler) AddComputeResource(c *gin.Context) {
	linkBelow(c, h.platforms.AddComputeResourceReference, dto.FromComputeResource)
}

// DELETE /api/software-platforms/:id/compute-resources/:refId
func (h *SoftwarePlatformHandler) DeleteComputeResource(c *gin.Context) {
	unlinkBelow(c, h.platforms.DeleteComputeResourceReference)
}

// GET /api/software-platforms/:id/cloud-services
func (h *SoftwarePlatformHandler) ListCloudServices(c *gin.Context) {
	listBelow(c, "software-platforms", "cloud-services", "cloudServices", h.platforms.FindCloudServices, dto.FromCloudService)
}

// POST /api/software-platforms/:id/cloud-services
func (h *SoftwarePlatformHandler) AddCloudService(c *gin.Context) {
	linkBelow(c, h.platforms.AddCloudServiceReference, dto.FromCloudService)
}

// DELETE /api/software-platforms/:id/cloud-services/:refId
func (h *SoftwarePlatformHandler) DeleteCloudService(c *gin.Context) {
	unlinkBelow(c, h.platforms.DeleteCloudServiceReference)
}

// listBelow answers GET /<owner>/:id/<segment> with a page of linked rows.
func listBelow[E, D any](
	c *gin.Context,
	owner, segment, rel string,
	find func(ctx context.Context, id uuid.UUID, p paging.Pageable) (paging.Page[*E], error),
	toDTO func(base string, row *E) D,
) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	base := apiBase(c)
	pg, err := find(c.Request.Context(), id, pageable(c))
	respondPage(c, pg, err, rel, dto.Href(base, owner, id, segment), func(row *E) D { return toDTO(base, row) })
}

// linkBelow answers POST /<owner>/:id/<segment> with body {"id": ...}.
func linkBelow[E, D any](
	c *gin.Context,
	add func(ctx context.Context, id, refID uuid.UUID) (*E, error),
	toDTO func(base string, row *E) D,
) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var body refBody
	if !bindBody(c, &body) {
		return
	}
	row, err := add(c.Request.Context(), id, body.ID)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, toDTO(apiBase(c), row))
}

func unlinkBelow(c *gin.Context, remove func(ctx context.Context, id, refID uuid.UUID) error) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	refID, ok := pathUUID(c, "refId")
	if !ok {
		return
	}
	respondDeleted(c, remove(c.Request.Context(), id, refID))
}
