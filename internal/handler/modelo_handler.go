package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vertice.mx/concesionario/internal/dto"
	"vertice.mx/concesionario/internal/service"
	"vertice.mx/concesionario/pkg/apperror"
	"vertice.mx/concesionario/pkg/response"
	"vertice.mx/concesionario/pkg/validator"
)

type ModeloHandler struct {
	service service.ModeloService
}

func NewModeloHandler(service service.ModeloService) *ModeloHandler {
	return &ModeloHandler{service: service}
}

func (h *ModeloHandler) GetAll(c *gin.Context) {
	modelos, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, modelos)
}

func (h *ModeloHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	modelo, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, modelo)
}

func (h *ModeloHandler) GetByMarca(c *gin.Context) {
	marcaID, err := parseIDParam(c, "marcaId")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	modelos, err := h.service.GetByMarca(c.Request.Context(), marcaID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, modelos)
}

func (h *ModeloHandler) Create(c *gin.Context) {
	var req dto.CreateModeloRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ResponseError(c, apperror.Validation("Datos de entrada no válidos", validator.FormatValidationError(err)))
		return
	}

	modelo, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, modelo)
}

func (h *ModeloHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.UpdateModeloRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ResponseError(c, apperror.Validation("Datos de entrada no válidos", validator.FormatValidationError(err)))
		return
	}

	modelo, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, modelo)
}

func (h *ModeloHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Modelo eliminado correctamente"})
}
