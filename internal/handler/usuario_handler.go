package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vertice.mx/concesionario/internal/dto"
	"vertice.mx/concesionario/internal/middleware"
	"vertice.mx/concesionario/internal/service"
	"vertice.mx/concesionario/pkg/apperror"
	"vertice.mx/concesionario/pkg/response"
	"vertice.mx/concesionario/pkg/validator"
)

type UsuarioHandler struct {
	service service.UsuarioService
}

func NewUsuarioHandler(service service.UsuarioService) *UsuarioHandler {
	return &UsuarioHandler{service: service}
}

func (h *UsuarioHandler) GetAll(c *gin.Context) {
	usuarios, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, usuarios)
}

func (h *UsuarioHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	usuario, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, usuario)
}

func (h *UsuarioHandler) Create(c *gin.Context) {
	var req dto.CreateUsuarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ResponseError(c, apperror.Validation("Datos de entrada no válidos", validator.FormatValidationError(err)))
		return
	}

	usuario, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Usuario creado correctamente",
		"usuario": usuario,
	})
}

func (h *UsuarioHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.UpdateUsuarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ResponseError(c, apperror.Validation("Datos de entrada no válidos", validator.FormatValidationError(err)))
		return
	}

	usuario, err := h.service.Update(c.Request.Context(), middleware.CallerFromContext(c), id, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Usuario actualizado correctamente",
		"usuario": usuario,
	})
}

func (h *UsuarioHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), middleware.CallerFromContext(c), id); err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Usuario eliminado correctamente"})
}

func (h *UsuarioHandler) UpdateRol(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.UpdateRolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ResponseError(c, apperror.BadRequest("Rol no válido. Debe ser 'admin' o 'empleado'"))
		return
	}

	usuario, err := h.service.UpdateRol(c.Request.Context(), middleware.CallerFromContext(c), id, req.Rol)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Rol actualizado correctamente",
		"usuario": usuario,
	})
}

func (h *UsuarioHandler) ChangePassword(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ResponseError(c, apperror.BadRequest("La nueva contraseña debe tener al menos 6 caracteres"))
		return
	}

	usuario, err := h.service.ChangePassword(c.Request.Context(), id, req.NewPassword)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Contraseña actualizada correctamente",
		"usuario": usuario,
	})
}

func (h *UsuarioHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
