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

type AuthHandler struct {
	service service.AuthService
}

func NewAuthHandler(service service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ResponseError(c, apperror.Validation("Datos de entrada no válidos", validator.FormatValidationError(err)))
		return
	}

	usuario, err := h.service.Signup(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Usuario registrado correctamente",
		"usuario": usuario,
	})
}

func (h *AuthHandler) Signin(c *gin.Context) {
	var req dto.SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ResponseError(c, apperror.Validation("Datos de entrada no válidos", validator.FormatValidationError(err)))
		return
	}

	usuario, token, err := h.service.Signin(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SigninResponse{
		Message: "Inicio de sesión exitoso",
		Usuario: usuario,
		Token:   token,
	})
}

func (h *AuthHandler) Profile(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	usuario, err := h.service.Profile(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, usuario)
}
