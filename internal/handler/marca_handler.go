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

type MarcaHandler struct {
	service service.MarcaService
}

func NewMarcaHandler(service service.MarcaService) *MarcaHandler {
	return &MarcaHandler{service: service}
}

func (h *MarcaHandler) GetAll(c *gin.Context) {
	marcas, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, marcas)
}

func (h *MarcaHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	marca, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, marca)
}

func (h *MarcaHandler) Create(c *gin.Context) {
	var req dto.CreateMarcaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ResponseError(c, apperror.Validation("Datos de entrada no válidos", validator.FormatValidationError(err)))
		return
	}

	marca, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, marca)
}

func (h *MarcaHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.UpdateMarcaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ResponseError(c, apperror.Validation("Datos de entrada no válidos", validator.FormatValidationError(err)))
		return
	}

	marca, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, marca)
}

func (h *MarcaHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Marca eliminada correctamente"})
}
