package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"vertice.mx/concesionario/internal/dto"
	"vertice.mx/concesionario/internal/guard"
	"vertice.mx/concesionario/internal/model"
	"vertice.mx/concesionario/internal/repository"
	"vertice.mx/concesionario/internal/search"
	"vertice.mx/concesionario/pkg/apperror"
)

type VehiculoService interface {
	GetAll(ctx context.Context) ([]*dto.VehiculoResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.VehiculoResponse, error)
	Search(ctx context.Context, params search.Params) ([]*dto.VehiculoResponse, error)
	Create(ctx context.Context, input dto.CreateVehiculoRequest) (*dto.VehiculoResponse, error)
	Update(ctx context.Context, id uint, input dto.UpdateVehiculoRequest) (*dto.VehiculoResponse, error)
	Delete(ctx context.Context, id uint) error
}

type vehiculoService struct {
	repo  repository.VehiculoRepository
	guard *guard.Guard
}

func NewVehiculoService(repo repository.VehiculoRepository, g *guard.Guard) VehiculoService {
	return &vehiculoService{repo: repo, guard: g}
}

func (s *vehiculoService) GetAll(ctx context.Context) ([]*dto.VehiculoResponse, error) {
	vehiculos, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return toVehiculoResponses(vehiculos), nil
}

func (s *vehiculoService) GetByID(ctx context.Context, id uint) (*dto.VehiculoResponse, error) {
	vehiculo, err := s.findVehiculo(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ToVehiculoResponse(vehiculo), nil
}

// Search compiles the flat parameter set into a predicate tree and executes
// it against the store. An empty parameter set returns the unfiltered list.
func (s *vehiculoService) Search(ctx context.Context, params search.Params) ([]*dto.VehiculoResponse, error) {
	vehiculos, err := s.repo.Search(ctx, search.Compile(params))
	if err != nil {
		return nil, err
	}
	return toVehiculoResponses(vehiculos), nil
}

func (s *vehiculoService) Create(ctx context.Context, input dto.CreateVehiculoRequest) (*dto.VehiculoResponse, error) {
	if err := s.guard.CheckVehiculoCreate(ctx, input.ModeloID, input.VIN); err != nil {
		return nil, err
	}

	estado := input.Estado
	if estado == "" {
		estado = model.EstadoNuevo
	}
	kilometraje := 0
	if input.Kilometraje != nil {
		kilometraje = *input.Kilometraje
	}

	vehiculo := &model.Vehiculo{
		VIN:         input.VIN,
		Color:       input.Color,
		Precio:      *input.Precio,
		Kilometraje: kilometraje,
		Combustible: input.Combustible,
		Transmision: input.Transmision,
		Estado:      estado,
		Descripcion: input.Descripcion,
		Imagenes:    input.Imagenes,
		ModeloID:    input.ModeloID,
	}

	if err := s.repo.Create(ctx, vehiculo); err != nil {
		return nil, translateVehiculoWriteErr(err)
	}

	// Re-read to pick up the nested modelo/marca summary.
	return s.GetByID(ctx, vehiculo.ID)
}

func (s *vehiculoService) Update(ctx context.Context, id uint, input dto.UpdateVehiculoRequest) (*dto.VehiculoResponse, error) {
	vehiculo, err := s.findVehiculo(ctx, id)
	if err != nil {
		return nil, err
	}

	// Only changed references are re-validated.
	var modeloID *uint
	if input.ModeloID != nil && *input.ModeloID != vehiculo.ModeloID {
		modeloID = input.ModeloID
	}
	var vin *string
	if input.VIN != nil && *input.VIN != vehiculo.VIN {
		vin = input.VIN
	}
	if err := s.guard.CheckVehiculoUpdate(ctx, id, modeloID, vin); err != nil {
		return nil, err
	}

	if vin != nil {
		vehiculo.VIN = *vin
	}
	if modeloID != nil {
		vehiculo.ModeloID = *modeloID
		vehiculo.Modelo = nil
	}
	if input.Color != nil {
		vehiculo.Color = *input.Color
	}
	if input.Precio != nil {
		vehiculo.Precio = *input.Precio
	}
	if input.Kilometraje != nil {
		vehiculo.Kilometraje = *input.Kilometraje
	}
	if input.Combustible != nil {
		vehiculo.Combustible = *input.Combustible
	}
	if input.Transmision != nil {
		vehiculo.Transmision = *input.Transmision
	}
	if input.Estado != nil {
		vehiculo.Estado = *input.Estado
	}
	if input.Descripcion != nil {
		vehiculo.Descripcion = input.Descripcion
	}
	if input.Imagenes != nil {
		vehiculo.Imagenes = input.Imagenes
	}

	if err := s.repo.Update(ctx, vehiculo); err != nil {
		return nil, translateVehiculoWriteErr(err)
	}

	return s.GetByID(ctx, id)
}

func (s *vehiculoService) Delete(ctx context.Context, id uint) error {
	if _, err := s.findVehiculo(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *vehiculoService) findVehiculo(ctx context.Context, id uint) (*model.Vehiculo, error) {
	vehiculo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Vehículo no encontrado")
		}
		return nil, err
	}
	return vehiculo, nil
}

// translateVehiculoWriteErr maps store constraint violations raised by a
// concurrent writer to the same shapes as the advisory guard checks.
func translateVehiculoWriteErr(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperror.Conflict("Ya existe un vehículo con este VIN")
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return apperror.NotFound("Modelo no encontrado")
	}
	return err
}

func toVehiculoResponses(vehiculos []*model.Vehiculo) []*dto.VehiculoResponse {
	responses := make([]*dto.VehiculoResponse, 0, len(vehiculos))
	for _, v := range vehiculos {
		responses = append(responses, dto.ToVehiculoResponse(v))
	}
	return responses
}
