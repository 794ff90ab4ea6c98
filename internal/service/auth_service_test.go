package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"vertice.mx/concesionario/internal/dto"
	"vertice.mx/concesionario/internal/guard"
	"vertice.mx/concesionario/internal/model"
	"vertice.mx/concesionario/internal/repository"
	"vertice.mx/concesionario/pkg/apperror"
	"vertice.mx/concesionario/pkg/token"
)

const testSecret = "test-secret"

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&model.Usuario{}, &model.Marca{}, &model.Modelo{}, &model.Vehiculo{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestGuard(db *gorm.DB) *guard.Guard {
	return guard.New(
		repository.NewMarcaRepository(db),
		repository.NewModeloRepository(db),
		repository.NewVehiculoRepository(db),
		repository.NewUsuarioRepository(db),
	)
}

func appCode(t *testing.T, err error) int {
	t.Helper()
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("want *apperror.AppError, got %T: %v", err, err)
	}
	return appErr.Code
}

func TestSignup(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewUsuarioRepository(db)
	svc := NewAuthService(repo, testSecret, time.Hour)
	ctx := context.Background()

	input := dto.SignupRequest{
		Nombre:    "Carlos",
		Apellidos: "Mendoza",
		Email:     "  Carlos@Test.com ",
		Password:  "secreto1",
	}

	resp, err := svc.Signup(ctx, input)
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if resp.Email != "carlos@test.com" {
		t.Fatalf("email must be normalized, got %q", resp.Email)
	}
	if resp.Rol != model.RolEmpleado {
		t.Fatalf("public signups must get rol empleado, got %q", resp.Rol)
	}

	stored, err := repo.FindByEmail(ctx, "carlos@test.com")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if stored.Password == "secreto1" {
		t.Fatal("password must never be stored in the clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secreto1")); err != nil {
		t.Fatalf("stored hash does not match the password: %v", err)
	}

	t.Run("duplicate email is rejected", func(t *testing.T) {
		_, err := svc.Signup(ctx, input)
		if err == nil {
			t.Fatal("expected rejection")
		}
		if err.Error() != "Ya existe un usuario con este email" {
			t.Fatalf("unexpected message %q", err.Error())
		}
	})
}

func TestSignin(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewUsuarioRepository(db)
	svc := NewAuthService(repo, testSecret, time.Hour)
	ctx := context.Background()

	if _, err := svc.Signup(ctx, dto.SignupRequest{
		Nombre: "Laura", Apellidos: "Vega", Email: "laura@test.com", Password: "secreto1",
	}); err != nil {
		t.Fatalf("signup: %v", err)
	}

	t.Run("valid credentials yield a usable token", func(t *testing.T) {
		usuario, signed, err := svc.Signin(ctx, dto.SigninRequest{Email: "laura@test.com", Password: "secreto1"})
		if err != nil {
			t.Fatalf("signin: %v", err)
		}
		if signed == "" {
			t.Fatal("expected a token")
		}

		claims, err := token.Parse(signed, testSecret)
		if err != nil {
			t.Fatalf("parse token: %v", err)
		}
		id, err := claims.UserID()
		if err != nil {
			t.Fatalf("claims subject: %v", err)
		}
		if id != usuario.ID {
			t.Fatalf("token subject = %d, want %d", id, usuario.ID)
		}
		if claims.Rol != model.RolEmpleado {
			t.Fatalf("token rol = %q, want empleado", claims.Rol)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Signin(ctx, dto.SigninRequest{Email: "laura@test.com", Password: "wrong"})
		if err == nil {
			t.Fatal("expected rejection")
		}
		if code := appCode(t, err); code != 401 {
			t.Fatalf("want 401, got %d", code)
		}
		if err.Error() != "Credenciales incorrectas" {
			t.Fatalf("unexpected message %q", err.Error())
		}
	})

	t.Run("unknown email gets the same answer", func(t *testing.T) {
		_, _, err := svc.Signin(ctx, dto.SigninRequest{Email: "nadie@test.com", Password: "secreto1"})
		if err == nil {
			t.Fatal("expected rejection")
		}
		if code := appCode(t, err); code != 401 {
			t.Fatalf("want 401, got %d", code)
		}
		if err.Error() != "Credenciales incorrectas" {
			t.Fatalf("unexpected message %q", err.Error())
		}
	})

	t.Run("email lookup is case-insensitive on signin", func(t *testing.T) {
		_, _, err := svc.Signin(ctx, dto.SigninRequest{Email: "LAURA@test.com", Password: "secreto1"})
		if err != nil {
			t.Fatalf("signin with mixed-case email: %v", err)
		}
	})
}
