package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"vertice.mx/concesionario/internal/dto"
	"vertice.mx/concesionario/internal/guard"
	"vertice.mx/concesionario/internal/model"
	"vertice.mx/concesionario/internal/repository"
	"vertice.mx/concesionario/pkg/apperror"
)

type ModeloService interface {
	GetAll(ctx context.Context) ([]*dto.ModeloResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.ModeloResponse, error)
	GetByMarca(ctx context.Context, marcaID uint) ([]*dto.ModeloResponse, error)
	Create(ctx context.Context, input dto.CreateModeloRequest) (*dto.ModeloResponse, error)
	Update(ctx context.Context, id uint, input dto.UpdateModeloRequest) (*dto.ModeloResponse, error)
	Delete(ctx context.Context, id uint) error
}

type modeloService struct {
	repo  repository.ModeloRepository
	guard *guard.Guard
}

func NewModeloService(repo repository.ModeloRepository, g *guard.Guard) ModeloService {
	return &modeloService{repo: repo, guard: g}
}

func (s *modeloService) GetAll(ctx context.Context) ([]*dto.ModeloResponse, error) {
	modelos, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return toModeloResponses(modelos), nil
}

func (s *modeloService) GetByID(ctx context.Context, id uint) (*dto.ModeloResponse, error) {
	modelo, err := s.findModelo(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ToModeloResponse(modelo), nil
}

func (s *modeloService) GetByMarca(ctx context.Context, marcaID uint) ([]*dto.ModeloResponse, error) {
	modelos, err := s.repo.FindByMarca(ctx, marcaID)
	if err != nil {
		return nil, err
	}
	return toModeloResponses(modelos), nil
}

func (s *modeloService) Create(ctx context.Context, input dto.CreateModeloRequest) (*dto.ModeloResponse, error) {
	if err := s.guard.CheckModeloWrite(ctx, input.MarcaID); err != nil {
		return nil, err
	}

	tipo := input.Tipo
	if tipo == "" {
		tipo = "otro"
	}

	modelo := &model.Modelo{
		Nombre:  input.Nombre,
		Anio:    input.Anio,
		Tipo:    tipo,
		MarcaID: input.MarcaID,
	}

	if err := s.repo.Create(ctx, modelo); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, apperror.NotFound("Marca no encontrada")
		}
		return nil, err
	}

	// Re-read to pick up the marca summary for the response.
	return s.GetByID(ctx, modelo.ID)
}

func (s *modeloService) Update(ctx context.Context, id uint, input dto.UpdateModeloRequest) (*dto.ModeloResponse, error) {
	modelo, err := s.findModelo(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.MarcaID != nil && *input.MarcaID != modelo.MarcaID {
		if err := s.guard.CheckModeloWrite(ctx, *input.MarcaID); err != nil {
			return nil, err
		}
		modelo.MarcaID = *input.MarcaID
		modelo.Marca = nil
	}
	if input.Nombre != nil {
		modelo.Nombre = *input.Nombre
	}
	if input.Anio != nil {
		modelo.Anio = *input.Anio
	}
	if input.Tipo != nil {
		modelo.Tipo = *input.Tipo
	}

	if err := s.repo.Update(ctx, modelo); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, apperror.NotFound("Marca no encontrada")
		}
		return nil, err
	}

	return s.GetByID(ctx, id)
}

func (s *modeloService) Delete(ctx context.Context, id uint) error {
	if _, err := s.findModelo(ctx, id); err != nil {
		return err
	}

	if err := s.guard.CheckModeloDelete(ctx, id); err != nil {
		return err
	}

	return s.repo.Delete(ctx, id)
}

func (s *modeloService) findModelo(ctx context.Context, id uint) (*model.Modelo, error) {
	modelo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Modelo no encontrado")
		}
		return nil, err
	}
	return modelo, nil
}

func toModeloResponses(modelos []*model.Modelo) []*dto.ModeloResponse {
	responses := make([]*dto.ModeloResponse, 0, len(modelos))
	for _, m := range modelos {
		responses = append(responses, dto.ToModeloResponse(m))
	}
	return responses
}
