package dto

import (
	"time"

	"vertice.mx/concesionario/internal/model"
)

type CreateUsuarioRequest struct {
	Nombre    string `json:"nombre" binding:"required"`
	Apellidos string `json:"apellidos" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	Rol       string `json:"rol" binding:"omitempty,oneof=admin empleado"`
}

type UpdateUsuarioRequest struct {
	Nombre    *string `json:"nombre"`
	Apellidos *string `json:"apellidos"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Rol       *string `json:"rol" binding:"omitempty,oneof=admin empleado"`
}

type UpdateRolRequest struct {
	Rol string `json:"rol" binding:"required,oneof=admin empleado"`
}

type ChangePasswordRequest struct {
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

type UsuarioResponse struct {
	ID        uint      `json:"id"`
	Nombre    string    `json:"nombre"`
	Apellidos string    `json:"apellidos"`
	Email     string    `json:"email"`
	Rol       string    `json:"rol"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type UsuarioStatsResponse struct {
	TotalUsuarios       int64  `json:"totalUsuarios"`
	TotalAdmins         int64  `json:"totalAdmins"`
	TotalEmpleados      int64  `json:"totalEmpleados"`
	UsuariosRecientes   int64  `json:"usuariosRecientes"`
	PorcentajeAdmins    string `json:"porcentajeAdmins"`
	PorcentajeEmpleados string `json:"porcentajeEmpleados"`
}

func ToUsuarioResponse(u *model.Usuario) *UsuarioResponse {
	return &UsuarioResponse{
		ID:        u.ID,
		Nombre:    u.Nombre,
		Apellidos: u.Apellidos,
		Email:     u.Email,
		Rol:       u.Rol,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
