package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"vertice.mx/concesionario/internal/dto"
	"vertice.mx/concesionario/internal/guard"
	"vertice.mx/concesionario/internal/model"
	"vertice.mx/concesionario/internal/policy"
	"vertice.mx/concesionario/internal/repository"
	"vertice.mx/concesionario/pkg/apperror"
)

type UsuarioService interface {
	GetAll(ctx context.Context) ([]*dto.UsuarioResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.UsuarioResponse, error)
	Create(ctx context.Context, input dto.CreateUsuarioRequest) (*dto.UsuarioResponse, error)
	Update(ctx context.Context, caller policy.Caller, id uint, input dto.UpdateUsuarioRequest) (*dto.UsuarioResponse, error)
	Delete(ctx context.Context, caller policy.Caller, id uint) error
	UpdateRol(ctx context.Context, caller policy.Caller, id uint, rol string) (*dto.UsuarioResponse, error)
	ChangePassword(ctx context.Context, id uint, newPassword string) (*dto.UsuarioResponse, error)
	Stats(ctx context.Context) (*dto.UsuarioStatsResponse, error)
}

type usuarioService struct {
	repo  repository.UsuarioRepository
	guard *guard.Guard
}

func NewUsuarioService(repo repository.UsuarioRepository, g *guard.Guard) UsuarioService {
	return &usuarioService{repo: repo, guard: g}
}

func (s *usuarioService) GetAll(ctx context.Context) ([]*dto.UsuarioResponse, error) {
	usuarios, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.UsuarioResponse, 0, len(usuarios))
	for _, u := range usuarios {
		responses = append(responses, dto.ToUsuarioResponse(u))
	}
	return responses, nil
}

func (s *usuarioService) GetByID(ctx context.Context, id uint) (*dto.UsuarioResponse, error) {
	usuario, err := s.findUsuario(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ToUsuarioResponse(usuario), nil
}

func (s *usuarioService) Create(ctx context.Context, input dto.CreateUsuarioRequest) (*dto.UsuarioResponse, error) {
	email := normalizeEmail(input.Email)

	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.BadRequest("Ya existe un usuario con este email")
	}

	hashed, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	// Only the explicit admin value mints admins; anything else is empleado.
	rol := model.RolEmpleado
	if input.Rol == model.RolAdmin {
		rol = model.RolAdmin
	}

	usuario := &model.Usuario{
		Nombre:    strings.TrimSpace(input.Nombre),
		Apellidos: strings.TrimSpace(input.Apellidos),
		Email:     email,
		Password:  hashed,
		Rol:       rol,
	}

	if err := s.repo.Create(ctx, usuario); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.BadRequest("Ya existe un usuario con este email")
		}
		return nil, err
	}

	return dto.ToUsuarioResponse(usuario), nil
}

func (s *usuarioService) Update(ctx context.Context, caller policy.Caller, id uint, input dto.UpdateUsuarioRequest) (*dto.UsuarioResponse, error) {
	usuario, err := s.findUsuario(ctx, id)
	if err != nil {
		return nil, err
	}

	nuevoRol := ""
	if input.Rol != nil {
		nuevoRol = *input.Rol
	}

	decision := policy.Authorize(caller, policy.ActionUsuarioUpdate, policy.Target{UsuarioID: id, NuevoRol: nuevoRol})
	if !decision.Allowed {
		return nil, denialError(decision.Reason)
	}

	if input.Email != nil {
		email := normalizeEmail(*input.Email)
		if email != usuario.Email {
			existing, err := s.repo.FindByEmail(ctx, email)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			if existing != nil {
				return nil, apperror.BadRequest("Ya existe un usuario con este email")
			}
		}
		usuario.Email = email
	}

	if input.Rol != nil && *input.Rol != usuario.Rol {
		if err := s.guard.CheckAdminDemotion(ctx, usuario, *input.Rol); err != nil {
			return nil, err
		}
		usuario.Rol = *input.Rol
	}

	if input.Nombre != nil {
		usuario.Nombre = strings.TrimSpace(*input.Nombre)
	}
	if input.Apellidos != nil {
		usuario.Apellidos = strings.TrimSpace(*input.Apellidos)
	}

	if err := s.repo.Update(ctx, usuario); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.BadRequest("Ya existe un usuario con este email")
		}
		return nil, err
	}

	return dto.ToUsuarioResponse(usuario), nil
}

func (s *usuarioService) Delete(ctx context.Context, caller policy.Caller, id uint) error {
	usuario, err := s.findUsuario(ctx, id)
	if err != nil {
		return err
	}

	decision := policy.Authorize(caller, policy.ActionUsuarioDelete, policy.Target{UsuarioID: id})
	if !decision.Allowed {
		return denialError(decision.Reason)
	}

	if err := s.guard.CheckAdminDeletion(ctx, usuario); err != nil {
		return err
	}

	return s.repo.Delete(ctx, id)
}

func (s *usuarioService) UpdateRol(ctx context.Context, caller policy.Caller, id uint, rol string) (*dto.UsuarioResponse, error) {
	usuario, err := s.findUsuario(ctx, id)
	if err != nil {
		return nil, err
	}

	decision := policy.Authorize(caller, policy.ActionUsuarioUpdateRol, policy.Target{UsuarioID: id, NuevoRol: rol})
	if !decision.Allowed {
		return nil, denialError(decision.Reason)
	}

	if err := s.guard.CheckAdminDemotion(ctx, usuario, rol); err != nil {
		return nil, err
	}

	usuario.Rol = rol
	if err := s.repo.Update(ctx, usuario); err != nil {
		return nil, err
	}

	return dto.ToUsuarioResponse(usuario), nil
}

func (s *usuarioService) ChangePassword(ctx context.Context, id uint, newPassword string) (*dto.UsuarioResponse, error) {
	usuario, err := s.findUsuario(ctx, id)
	if err != nil {
		return nil, err
	}

	hashed, err := hashPassword(newPassword)
	if err != nil {
		return nil, err
	}

	usuario.Password = hashed
	if err := s.repo.Update(ctx, usuario); err != nil {
		return nil, err
	}

	return dto.ToUsuarioResponse(usuario), nil
}

func (s *usuarioService) Stats(ctx context.Context) (*dto.UsuarioStatsResponse, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	admins, err := s.repo.CountByRol(ctx, model.RolAdmin)
	if err != nil {
		return nil, err
	}
	empleados, err := s.repo.CountByRol(ctx, model.RolEmpleado)
	if err != nil {
		return nil, err
	}
	recientes, err := s.repo.CountCreatedSince(ctx, time.Now().AddDate(0, 0, -30))
	if err != nil {
		return nil, err
	}

	return &dto.UsuarioStatsResponse{
		TotalUsuarios:       total,
		TotalAdmins:         admins,
		TotalEmpleados:      empleados,
		UsuariosRecientes:   recientes,
		PorcentajeAdmins:    percentage(admins, total),
		PorcentajeEmpleados: percentage(empleados, total),
	}, nil
}

func (s *usuarioService) findUsuario(ctx context.Context, id uint) (*model.Usuario, error) {
	usuario, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Usuario no encontrado")
		}
		return nil, err
	}
	return usuario, nil
}

func denialError(reason policy.Reason) error {
	switch reason {
	case policy.ReasonSelfDelete:
		return apperror.BadRequest("No puedes eliminar tu propia cuenta")
	case policy.ReasonSelfDemote:
		return apperror.BadRequest("No puedes cambiar tu propio rol de administrador")
	case policy.ReasonAdminRequired:
		return apperror.Forbidden("Requiere rol de administrador")
	default:
		return apperror.Unauthorized("No autenticado")
	}
}

func percentage(part, total int64) string {
	if total == 0 {
		return "0.0"
	}
	return fmt.Sprintf("%.1f", float64(part)/float64(total)*100)
}
