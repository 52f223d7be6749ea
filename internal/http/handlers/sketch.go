package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/quantumatlas/atlas-backend/internal/domain"
	"github.com/quantumatlas/atlas-backend/internal/http/dto"
	"github.com/quantumatlas/atlas-backend/internal/http/response"
	"github.com/quantumatlas/atlas-backend/internal/services"
)

const defaultMaxUploadBytes = 10 << 20

type SketchHandler struct {
	sketches       services.SketchService
	maxUploadBytes int64
}

func NewSketchHandler(sketches services.SketchService, maxUploadBytes int64) *SketchHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	return &SketchHandler{sketches: sketches, maxUploadBytes: maxUploadBytes}
}

func algoAndSketch(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	algoID, ok := pathUUID(c, "id")
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	sketchID, ok := pathUUID(c, "sketchId")
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	return algoID, sketchID, true
}

// GET /api/algorithms/:id/sketches
func (h *SketchHandler) List(c *gin.Context) {
	algoID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	base := apiBase(c)
	rows, err := h.sketches.FindByAlgorithm(c.Request.Context(), algoID)
	respondList(c, rows, err, "sketches", dto.Href(base, "algorithms", algoID, "sketches"), func(s *types.Sketch) dto.Sketch {
		return dto.FromSketch(base, s)
	})
}

// GET /api/algorithms/:id/sketches/:sketchId
func (h *SketchHandler) Get(c *gin.Context) {
	algoID, sketchID, ok := algoAndSketch(c)
	if !ok {
		return
	}
	sketch, err := h.sketches.FindByID(c.Request.Context(), algoID, sketchID)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, dto.FromSketch(apiBase(c), sketch))
}

// POST /api/algorithms/:id/sketches (multipart: file, description)
func (h *SketchHandler) Upload(c *gin.Context) {
	algoID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.RespondError(c, http.StatusRequestEntityTooLarge, "upload_too_large", err)
			return
		}
		response.RespondError(c, http.StatusBadRequest, "invalid_upload", err)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_upload", err)
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_upload", err)
		return
	}

	base := apiBase(c)
	sketch, err := h.sketches.AddSketchToAlgorithm(c.Request.Context(), algoID, services.SketchUpload{
		Data:        data,
		MimeType:    fh.Header.Get("Content-Type"),
		Description: strings.TrimSpace(c.PostForm("description")),
		BaseURL:     base,
	})
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondCreated(c, dto.FromSketch(base, sketch))
}

// PUT /api/algorithms/:id/sketches/:sketchId
func (h *SketchHandler) Update(c *gin.Context) {
	algoID, sketchID, ok := algoAndSketch(c)
	if !ok {
		return
	}
	var in dto.Sketch
	if !bindUpdate(c, &in, sketchID) {
		return
	}
	sketch, err := h.sketches.Update(c.Request.Context(), algoID, sketchID, in.ToEntity())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, dto.FromSketch(apiBase(c), sketch))
}

// DELETE /api/algorithms/:id/sketches/:sketchId
func (h *SketchHandler) Delete(c *gin.Context) {
	algoID, sketchID, ok := algoAndSketch(c)
	if !ok {
		return
	}
	respondDeleted(c, h.sketches.Delete(c.Request.Context(), algoID, sketchID))
}

// GET /api/algorithms/:id/sketches/:sketchId/image[?size=N]
func (h *SketchHandler) Image(c *gin.Context) {
	algoID, sketchID, ok := algoAndSketch(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	if raw := strings.TrimSpace(c.Query("size")); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size <= 0 {
			response.RespondError(c, http.StatusBadRequest, "invalid_size", errors.New("size must be a positive integer"))
			return
		}
		thumb, err := h.sketches.GetThumbnail(ctx, algoID, sketchID, size)
		if err != nil {
			response.RespondErr(c, err)
			return
		}
		c.Data(http.StatusOK, "image/png", thumb)
		return
	}
	img, err := h.sketches.GetImageBySketch(ctx, algoID, sketchID)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	mime := img.MimeType
	if mime == "" {
		mime = "application/octet-stream"
	}
	c.Header("Cache-Control", "public, max-age=300")
	c.Data(http.StatusOK, mime, img.Data)
}
