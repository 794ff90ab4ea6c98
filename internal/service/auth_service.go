package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"vertice.mx/concesionario/internal/dto"
	"vertice.mx/concesionario/internal/model"
	"vertice.mx/concesionario/internal/repository"
	"vertice.mx/concesionario/pkg/apperror"
	"vertice.mx/concesionario/pkg/token"
)

type AuthService interface {
	Signup(ctx context.Context, input dto.SignupRequest) (*dto.UsuarioResponse, error)
	Signin(ctx context.Context, input dto.SigninRequest) (*dto.UsuarioResponse, string, error)
	Profile(ctx context.Context, userID uint) (*dto.UsuarioResponse, error)
}

type authService struct {
	repo     repository.UsuarioRepository
	secret   string
	tokenTTL time.Duration
}

func NewAuthService(repo repository.UsuarioRepository, secret string, tokenTTL time.Duration) AuthService {
	return &authService{
		repo:     repo,
		secret:   secret,
		tokenTTL: tokenTTL,
	}
}

// Signup registers a new empleado account. Public signups never choose
// their own role. The password is hashed here, before the store ever sees
// the record.
func (s *authService) Signup(ctx context.Context, input dto.SignupRequest) (*dto.UsuarioResponse, error) {
	email := normalizeEmail(input.Email)

	if err := s.ensureEmailUnused(ctx, email, 0); err != nil {
		return nil, err
	}

	hashed, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	usuario := &model.Usuario{
		Nombre:    strings.TrimSpace(input.Nombre),
		Apellidos: strings.TrimSpace(input.Apellidos),
		Email:     email,
		Password:  hashed,
		Rol:       model.RolEmpleado,
	}

	if err := s.repo.Create(ctx, usuario); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.BadRequest("Ya existe un usuario con este email")
		}
		return nil, err
	}

	return dto.ToUsuarioResponse(usuario), nil
}

// Signin verifies credentials and issues a signed token carrying id and rol.
// Unknown email and wrong password answer identically.
func (s *authService) Signin(ctx context.Context, input dto.SigninRequest) (*dto.UsuarioResponse, string, error) {
	usuario, err := s.repo.FindByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apperror.Unauthorized("Credenciales incorrectas")
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usuario.Password), []byte(input.Password)); err != nil {
		return nil, "", apperror.Unauthorized("Credenciales incorrectas")
	}

	signed, _, err := token.Generate(usuario.ID, usuario.Rol, s.secret, s.tokenTTL)
	if err != nil {
		return nil, "", err
	}

	return dto.ToUsuarioResponse(usuario), signed, nil
}

func (s *authService) Profile(ctx context.Context, userID uint) (*dto.UsuarioResponse, error) {
	usuario, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Usuario no encontrado")
		}
		return nil, err
	}
	return dto.ToUsuarioResponse(usuario), nil
}

func (s *authService) ensureEmailUnused(ctx context.Context, email string, excludeID uint) error {
	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != excludeID {
		return apperror.BadRequest("Ya existe un usuario con este email")
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
