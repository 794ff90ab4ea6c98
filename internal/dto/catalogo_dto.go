package dto

import (
	"time"

	"vertice.mx/concesionario/internal/model"
)

type CreateMarcaRequest struct {
	Nombre string  `json:"nombre" binding:"required"`
	Pais   *string `json:"pais"`
	Logo   *string `json:"logo"`
}

type UpdateMarcaRequest struct {
	Nombre *string `json:"nombre"`
	Pais   *string `json:"pais"`
	Logo   *string `json:"logo"`
}

// MarcaResumen is the summary embedded in modelo/vehiculo reads.
type MarcaResumen struct {
	ID     uint   `json:"id"`
	Nombre string `json:"nombre"`
}

type CreateModeloRequest struct {
	Nombre  string `json:"nombre" binding:"required"`
	Anio    int    `json:"anio" binding:"required"`
	Tipo    string `json:"tipo" binding:"omitempty,oneof=sedan suv hatchback pickup deportivo otro"`
	MarcaID uint   `json:"marcaId" binding:"required"`
}

type UpdateModeloRequest struct {
	Nombre  *string `json:"nombre"`
	Anio    *int    `json:"anio"`
	Tipo    *string `json:"tipo" binding:"omitempty,oneof=sedan suv hatchback pickup deportivo otro"`
	MarcaID *uint   `json:"marcaId"`
}

type ModeloResponse struct {
	ID        uint          `json:"id"`
	Nombre    string        `json:"nombre"`
	Anio      int           `json:"anio"`
	Tipo      string        `json:"tipo"`
	MarcaID   uint          `json:"marcaId"`
	Marca     *MarcaResumen `json:"marca,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// ModeloResumen is the summary embedded in vehiculo reads, carrying its own
// marca summary.
type ModeloResumen struct {
	ID     uint          `json:"id"`
	Nombre string        `json:"nombre"`
	Anio   int           `json:"anio"`
	Tipo   string        `json:"tipo"`
	Marca  *MarcaResumen `json:"marca,omitempty"`
}

type CreateVehiculoRequest struct {
	VIN         string   `json:"vin" binding:"required"`
	Color       string   `json:"color" binding:"required"`
	Precio      *float64 `json:"precio" binding:"required,gte=0"`
	Kilometraje *int     `json:"kilometraje" binding:"omitempty,gte=0"`
	Combustible string   `json:"combustible" binding:"required,oneof=gasolina diesel electrico hibrido"`
	Transmision string   `json:"transmision" binding:"required,oneof=manual automatica"`
	Estado      string   `json:"estado" binding:"omitempty,oneof=nuevo usado vendido"`
	Descripcion *string  `json:"descripcion"`
	Imagenes    []string `json:"imagenes"`
	ModeloID    uint     `json:"modeloId" binding:"required"`
}

type UpdateVehiculoRequest struct {
	VIN         *string  `json:"vin"`
	Color       *string  `json:"color"`
	Precio      *float64 `json:"precio" binding:"omitempty,gte=0"`
	Kilometraje *int     `json:"kilometraje" binding:"omitempty,gte=0"`
	Combustible *string  `json:"combustible" binding:"omitempty,oneof=gasolina diesel electrico hibrido"`
	Transmision *string  `json:"transmision" binding:"omitempty,oneof=manual automatica"`
	Estado      *string  `json:"estado" binding:"omitempty,oneof=nuevo usado vendido"`
	Descripcion *string  `json:"descripcion"`
	Imagenes    []string `json:"imagenes"`
	ModeloID    *uint    `json:"modeloId"`
}

type VehiculoResponse struct {
	ID          uint           `json:"id"`
	VIN         string         `json:"vin"`
	Color       string         `json:"color"`
	Precio      float64        `json:"precio"`
	Kilometraje int            `json:"kilometraje"`
	Combustible string         `json:"combustible"`
	Transmision string         `json:"transmision"`
	Estado      string         `json:"estado"`
	Descripcion *string        `json:"descripcion"`
	Imagenes    []string       `json:"imagenes"`
	ModeloID    uint           `json:"modeloId"`
	Modelo      *ModeloResumen `json:"modelo,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

func ToMarcaResumen(m *model.Marca) *MarcaResumen {
	if m == nil {
		return nil
	}
	return &MarcaResumen{ID: m.ID, Nombre: m.Nombre}
}

func ToModeloResponse(m *model.Modelo) *ModeloResponse {
	return &ModeloResponse{
		ID:        m.ID,
		Nombre:    m.Nombre,
		Anio:      m.Anio,
		Tipo:      m.Tipo,
		MarcaID:   m.MarcaID,
		Marca:     ToMarcaResumen(m.Marca),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToModeloResumen(m *model.Modelo) *ModeloResumen {
	if m == nil {
		return nil
	}
	return &ModeloResumen{
		ID:     m.ID,
		Nombre: m.Nombre,
		Anio:   m.Anio,
		Tipo:   m.Tipo,
		Marca:  ToMarcaResumen(m.Marca),
	}
}

func ToVehiculoResponse(v *model.Vehiculo) *VehiculoResponse {
	return &VehiculoResponse{
		ID:          v.ID,
		VIN:         v.VIN,
		Color:       v.Color,
		Precio:      v.Precio,
		Kilometraje: v.Kilometraje,
		Combustible: v.Combustible,
		Transmision: v.Transmision,
		Estado:      v.Estado,
		Descripcion: v.Descripcion,
		Imagenes:    v.Imagenes,
		ModeloID:    v.ModeloID,
		Modelo:      ToModeloResumen(v.Modelo),
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}
