package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

const (
	EstadoNuevo   = "nuevo"
	EstadoUsado   = "usado"
	EstadoVendido = "vendido"
)

type Marca struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Nombre    string    `gorm:"size:100;uniqueIndex;not null" json:"nombre"`
	Pais      *string   `gorm:"size:100" json:"pais"`
	Logo      *string   `gorm:"type:text" json:"logo"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

type Modelo struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Nombre    string    `gorm:"size:100;not null" json:"nombre"`
	Anio      int       `gorm:"not null" json:"anio"`
	Tipo      string    `gorm:"size:20;not null;default:otro" json:"tipo"`
	MarcaID   uint      `gorm:"not null;index" json:"marcaId"`
	Marca     *Marca    `gorm:"foreignKey:MarcaID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"marca,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

type Vehiculo struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	VIN         string    `gorm:"size:64;uniqueIndex;not null" json:"vin"`
	Color       string    `gorm:"size:50;not null" json:"color"`
	Precio      float64   `gorm:"type:decimal(10,2);not null" json:"precio"`
	Kilometraje int       `gorm:"not null;default:0" json:"kilometraje"`
	Combustible string    `gorm:"size:20;not null" json:"combustible"`
	Transmision string    `gorm:"size:20;not null" json:"transmision"`
	Estado      string    `gorm:"size:20;not null;default:nuevo" json:"estado"`
	Descripcion *string   `gorm:"type:text" json:"descripcion"`
	Imagenes    ImageList `gorm:"type:text" json:"imagenes"`
	ModeloID    uint      `gorm:"not null;index" json:"modeloId"`
	Modelo      *Modelo   `gorm:"foreignKey:ModeloID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"modelo,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// ImageList stores the ordered vehicle image payloads as a JSON column.
type ImageList []string

func (l ImageList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *ImageList) Scan(value any) error {
	if value == nil {
		*l = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type for ImageList: %T", value)
	}
}
