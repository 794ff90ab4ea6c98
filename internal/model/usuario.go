package model

import "time"

const (
	RolAdmin    = "admin"
	RolEmpleado = "empleado"
)

type Usuario struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Nombre    string    `gorm:"size:100;not null" json:"nombre"`
	Apellidos string    `gorm:"size:150;not null" json:"apellidos"`
	Email     string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Rol       string    `gorm:"size:20;not null;default:empleado" json:"rol"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (u *Usuario) EsAdmin() bool {
	return u.Rol == RolAdmin
}
