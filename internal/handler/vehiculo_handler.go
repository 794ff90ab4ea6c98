package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vertice.mx/concesionario/internal/dto"
	"vertice.mx/concesionario/internal/search"
	"vertice.mx/concesionario/internal/service"
	"vertice.mx/concesionario/pkg/apperror"
	"vertice.mx/concesionario/pkg/response"
	"vertice.mx/concesionario/pkg/validator"
)

type VehiculoHandler struct {
	service service.VehiculoService
}

func NewVehiculoHandler(service service.VehiculoService) *VehiculoHandler {
	return &VehiculoHandler{service: service}
}

func (h *VehiculoHandler) GetAll(c *gin.Context) {
	vehiculos, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehiculos)
}

func (h *VehiculoHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	vehiculo, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehiculo)
}

func (h *VehiculoHandler) Search(c *gin.Context) {
	var params search.Params
	if err := c.ShouldBindQuery(&params); err != nil {
		response.ResponseError(c, apperror.BadRequest("Parámetros de búsqueda no válidos"))
		return
	}

	vehiculos, err := h.service.Search(c.Request.Context(), params)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehiculos)
}

func (h *VehiculoHandler) Create(c *gin.Context) {
	var req dto.CreateVehiculoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ResponseError(c, apperror.Validation("Datos de entrada no válidos", validator.FormatValidationError(err)))
		return
	}

	vehiculo, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, vehiculo)
}

func (h *VehiculoHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.UpdateVehiculoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ResponseError(c, apperror.Validation("Datos de entrada no válidos", validator.FormatValidationError(err)))
		return
	}

	vehiculo, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehiculo)
}

func (h *VehiculoHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Vehículo eliminado correctamente"})
}
