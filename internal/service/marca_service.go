package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"vertice.mx/concesionario/internal/dto"
	"vertice.mx/concesionario/internal/guard"
	"vertice.mx/concesionario/internal/model"
	"vertice.mx/concesionario/internal/repository"
	"vertice.mx/concesionario/pkg/apperror"
)

type MarcaService interface {
	GetAll(ctx context.Context) ([]*model.Marca, error)
	GetByID(ctx context.Context, id uint) (*model.Marca, error)
	Create(ctx context.Context, input dto.CreateMarcaRequest) (*model.Marca, error)
	Update(ctx context.Context, id uint, input dto.UpdateMarcaRequest) (*model.Marca, error)
	Delete(ctx context.Context, id uint) error
}

type marcaService struct {
	repo  repository.MarcaRepository
	guard *guard.Guard
}

func NewMarcaService(repo repository.MarcaRepository, g *guard.Guard) MarcaService {
	return &marcaService{repo: repo, guard: g}
}

func (s *marcaService) GetAll(ctx context.Context) ([]*model.Marca, error) {
	return s.repo.FindAll(ctx)
}

func (s *marcaService) GetByID(ctx context.Context, id uint) (*model.Marca, error) {
	return s.findMarca(ctx, id)
}

func (s *marcaService) Create(ctx context.Context, input dto.CreateMarcaRequest) (*model.Marca, error) {
	nombre := strings.TrimSpace(input.Nombre)
	if nombre == "" {
		return nil, apperror.BadRequest("El nombre de la marca es obligatorio")
	}

	if err := s.ensureNombreUnused(ctx, nombre, 0); err != nil {
		return nil, err
	}

	marca := &model.Marca{
		Nombre: nombre,
		Pais:   input.Pais,
		Logo:   input.Logo,
	}

	if err := s.repo.Create(ctx, marca); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("Ya existe una marca con este nombre")
		}
		return nil, err
	}

	return marca, nil
}

func (s *marcaService) Update(ctx context.Context, id uint, input dto.UpdateMarcaRequest) (*model.Marca, error) {
	marca, err := s.findMarca(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Nombre != nil {
		nombre := strings.TrimSpace(*input.Nombre)
		if nombre == "" {
			return nil, apperror.BadRequest("El nombre de la marca es obligatorio")
		}
		if nombre != marca.Nombre {
			if err := s.ensureNombreUnused(ctx, nombre, id); err != nil {
				return nil, err
			}
		}
		marca.Nombre = nombre
	}
	if input.Pais != nil {
		marca.Pais = input.Pais
	}
	if input.Logo != nil {
		marca.Logo = input.Logo
	}

	if err := s.repo.Update(ctx, marca); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("Ya existe una marca con este nombre")
		}
		return nil, err
	}

	return marca, nil
}

func (s *marcaService) Delete(ctx context.Context, id uint) error {
	if _, err := s.findMarca(ctx, id); err != nil {
		return err
	}

	if err := s.guard.CheckMarcaDelete(ctx, id); err != nil {
		return err
	}

	return s.repo.Delete(ctx, id)
}

func (s *marcaService) findMarca(ctx context.Context, id uint) (*model.Marca, error) {
	marca, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Marca no encontrada")
		}
		return nil, err
	}
	return marca, nil
}

func (s *marcaService) ensureNombreUnused(ctx context.Context, nombre string, excludeID uint) error {
	existing, err := s.repo.FindByNombre(ctx, nombre)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != excludeID {
		return apperror.Conflict("Ya existe una marca con este nombre")
	}
	return nil
}
