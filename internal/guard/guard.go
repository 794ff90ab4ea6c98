// Package guard holds the pre-write referential-integrity checks for the
// catalog. The checks are advisory: the store-level unique indexes and FK
// constraints remain the safety net for concurrent writers, and constraint
// violations surfacing there are translated back into the same error shapes.
package guard

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"vertice.mx/concesionario/internal/model"
	"vertice.mx/concesionario/pkg/apperror"
)

type MarcaStore interface {
	FindByID(ctx context.Context, id uint) (*model.Marca, error)
}

type ModeloStore interface {
	FindByID(ctx context.Context, id uint) (*model.Modelo, error)
	CountByMarca(ctx context.Context, marcaID uint) (int64, error)
}

type VehiculoStore interface {
	FindByVIN(ctx context.Context, vin string) (*model.Vehiculo, error)
	CountByModelo(ctx context.Context, modeloID uint) (int64, error)
}

type UsuarioStore interface {
	CountByRol(ctx context.Context, rol string) (int64, error)
}

type Guard struct {
	marcas    MarcaStore
	modelos   ModeloStore
	vehiculos VehiculoStore
	usuarios  UsuarioStore
}

func New(marcas MarcaStore, modelos ModeloStore, vehiculos VehiculoStore, usuarios UsuarioStore) *Guard {
	return &Guard{
		marcas:    marcas,
		modelos:   modelos,
		vehiculos: vehiculos,
		usuarios:  usuarios,
	}
}

// CheckModeloWrite validates that the referenced marca exists. Used on
// create and on any update that changes marcaId.
func (g *Guard) CheckModeloWrite(ctx context.Context, marcaID uint) error {
	if _, err := g.marcas.FindByID(ctx, marcaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("Marca no encontrada")
		}
		return err
	}
	return nil
}

// CheckVehiculoCreate validates the modelo reference and VIN uniqueness.
func (g *Guard) CheckVehiculoCreate(ctx context.Context, modeloID uint, vin string) error {
	if err := g.checkModeloExists(ctx, modeloID); err != nil {
		return err
	}
	return g.checkVINUnused(ctx, vin, 0)
}

// CheckVehiculoUpdate re-validates only the fields being changed. A nil
// modeloID/vin means the field is untouched. VIN uniqueness excludes the
// record's own id.
func (g *Guard) CheckVehiculoUpdate(ctx context.Context, id uint, modeloID *uint, vin *string) error {
	if modeloID != nil {
		if err := g.checkModeloExists(ctx, *modeloID); err != nil {
			return err
		}
	}
	if vin != nil {
		if err := g.checkVINUnused(ctx, *vin, id); err != nil {
			return err
		}
	}
	return nil
}

// CheckMarcaDelete rejects deletion while dependent modelos exist; the
// message reports the exact count.
func (g *Guard) CheckMarcaDelete(ctx context.Context, marcaID uint) error {
	count, err := g.modelos.CountByMarca(ctx, marcaID)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperror.Conflictf("No se puede eliminar la marca porque tiene %d modelos asociados", count)
	}
	return nil
}

// CheckModeloDelete applies the dependent-count protection symmetrically to
// modelos with registered vehiculos.
func (g *Guard) CheckModeloDelete(ctx context.Context, modeloID uint) error {
	count, err := g.vehiculos.CountByModelo(ctx, modeloID)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperror.Conflictf("No se puede eliminar el modelo porque tiene %d vehículos asociados", count)
	}
	return nil
}

// CheckAdminDeletion rejects removing the last remaining admin.
func (g *Guard) CheckAdminDeletion(ctx context.Context, target *model.Usuario) error {
	if !target.EsAdmin() {
		return nil
	}
	count, err := g.usuarios.CountByRol(ctx, model.RolAdmin)
	if err != nil {
		return err
	}
	if count <= 1 {
		return apperror.BadRequest("No se puede eliminar el último administrador del sistema")
	}
	return nil
}

// CheckAdminDemotion rejects demoting the last remaining admin.
func (g *Guard) CheckAdminDemotion(ctx context.Context, target *model.Usuario, nuevoRol string) error {
	if !target.EsAdmin() || nuevoRol == model.RolAdmin {
		return nil
	}
	count, err := g.usuarios.CountByRol(ctx, model.RolAdmin)
	if err != nil {
		return err
	}
	if count <= 1 {
		return apperror.BadRequest("No se puede cambiar el rol del último administrador del sistema")
	}
	return nil
}

func (g *Guard) checkModeloExists(ctx context.Context, modeloID uint) error {
	if _, err := g.modelos.FindByID(ctx, modeloID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("Modelo no encontrado")
		}
		return err
	}
	return nil
}

func (g *Guard) checkVINUnused(ctx context.Context, vin string, excludeID uint) error {
	existing, err := g.vehiculos.FindByVIN(ctx, vin)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != excludeID {
		return apperror.Conflict("Ya existe un vehículo con este VIN")
	}
	return nil
}
