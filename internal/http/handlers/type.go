package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	types "github.com/quantumatlas/atlas-backend/internal/domain"
	"github.com/quantumatlas/atlas-backend/internal/http/dto"
	"github.com/quantumatlas/atlas-backend/internal/http/response"
	"github.com/quantumatlas/atlas-backend/internal/services"
)

// TypeHandler serves the type collections (relation types, property types).
type TypeHandler[T any, D identified] struct {
	svc        services.TypeService[T]
	collection string
	rel        string
	toDTO      func(base string, row *T) D
	toEntity   func(D) *T
}

type (
	AlgorithmRelationTypeHandler = TypeHandler[types.AlgorithmRelationType, dto.NamedType]
	PatternRelationTypeHandler   = TypeHandler[types.PatternRelationType, dto.NamedType]
	PropertyTypeHandler          = TypeHandler[types.ComputeResourcePropertyType, dto.PropertyType]
)

func NewAlgorithmRelationTypeHandler(svc services.AlgorithmRelationTypeService) *AlgorithmRelationTypeHandler {
	return &AlgorithmRelationTypeHandler{
		svc:        svc,
		collection: "algorithm-relation-types",
		rel:        "algorithmRelationTypes",
		toDTO:      dto.FromAlgorithmRelationType,
		toEntity:   dto.NamedType.ToAlgorithmRelationType,
	}
}

func NewPatternRelationTypeHandler(svc services.PatternRelationTypeService) *PatternRelationTypeHandler {
	return &PatternRelationTypeHandler{
		svc:        svc,
		collection: "pattern-relation-types",
		rel:        "patternRelationTypes",
		toDTO:      dto.FromPatternRelationType,
		toEntity:   dto.NamedType.ToPatternRelationType,
	}
}

func NewPropertyTypeHandler(svc services.ComputeResourcePropertyTypeService) *PropertyTypeHandler {
	return &PropertyTypeHandler{
		svc:        svc,
		collection: "compute-resource-property-types",
		rel:        "computeResourcePropertyTypes",
		toDTO:      dto.FromPropertyType,
		toEntity:   dto.PropertyType.ToEntity,
	}
}

// GET /api/<types>?name= looks up one row by exact name; otherwise the page is listed.
func (h *TypeHandler[T, D]) List(c *gin.Context) {
	base := apiBase(c)
	if name := strings.TrimSpace(c.Query("name")); name != "" {
		row, err := h.svc.FindByName(c.Request.Context(), name)
		if err != nil {
			response.RespondErr(c, err)
			return
		}
		response.RespondOK(c, h.toDTO(base, row))
		return
	}
	p := pageable(c)
	pg, err := h.svc.FindAll(c.Request.Context(), p, search(c))
	respondPage(c, pg, err, h.rel, dto.Href(base, h.collection), func(row *T) D { return h.toDTO(base, row) })
}

// GET /api/<types>/:id
func (h *TypeHandler[T, D]) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	row, err := h.svc.FindByID(c.Request.Context(), id)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, h.toDTO(apiBase(c), row))
}

// POST /api/<types>
func (h *TypeHandler[T, D]) Create(c *gin.Context) {
	var in D
	if !bindCreate(c, &in) {
		return
	}
	row, err := h.svc.Save(c.Request.Context(), h.toEntity(in))
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondCreated(c, h.toDTO(apiBase(c), row))
}

// PUT /api/<types>/:id
func (h *TypeHandler[T, D]) Update(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var in D
	if !bindUpdate(c, &in, id) {
		return
	}
	row, err := h.svc.Update(c.Request.Context(), id, h.toEntity(in))
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, h.toDTO(apiBase(c), row))
}

// DELETE /api/<types>/:id
func (h *TypeHandler[T, D]) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	respondDeleted(c, h.svc.Delete(c.Request.Context(), id))
}
