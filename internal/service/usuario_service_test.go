package service

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"vertice.mx/concesionario/internal/dto"
	"vertice.mx/concesionario/internal/model"
	"vertice.mx/concesionario/internal/policy"
	"vertice.mx/concesionario/internal/repository"
)

func seedUsuario(t *testing.T, db *gorm.DB, nombre, email, rol string) *model.Usuario {
	t.Helper()
	u := &model.Usuario{Nombre: nombre, Apellidos: "Test", Email: email, Password: "hash", Rol: rol}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed usuario %s: %v", email, err)
	}
	return u
}

func adminCaller(id uint) policy.Caller {
	return policy.Caller{ID: id, Rol: model.RolAdmin, Authenticated: true}
}

func TestUsuarioDelete(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewUsuarioRepository(db)
	svc := NewUsuarioService(repo, newTestGuard(db))
	ctx := context.Background()

	admin := seedUsuario(t, db, "Admin", "admin@test.com", model.RolAdmin)
	empleado := seedUsuario(t, db, "Emp", "emp@test.com", model.RolEmpleado)

	t.Run("admin cannot delete own account", func(t *testing.T) {
		err := svc.Delete(ctx, adminCaller(admin.ID), admin.ID)
		if err == nil {
			t.Fatal("expected rejection")
		}
		if code := appCode(t, err); code != 400 {
			t.Fatalf("want 400, got %d", code)
		}
		if err.Error() != "No puedes eliminar tu propia cuenta" {
			t.Fatalf("unexpected message %q", err.Error())
		}
	})

	t.Run("sole admin is protected even from another session", func(t *testing.T) {
		err := svc.Delete(ctx, adminCaller(999), admin.ID)
		if err == nil {
			t.Fatal("expected rejection")
		}
		if err.Error() != "No se puede eliminar el último administrador del sistema" {
			t.Fatalf("unexpected message %q", err.Error())
		}
	})

	t.Run("empleados can be deleted", func(t *testing.T) {
		if err := svc.Delete(ctx, adminCaller(admin.ID), empleado.ID); err != nil {
			t.Fatalf("delete empleado: %v", err)
		}
		if _, err := svc.GetByID(ctx, empleado.ID); err == nil {
			t.Fatal("deleted usuario must be gone")
		}
	})

	t.Run("missing usuario yields 404", func(t *testing.T) {
		err := svc.Delete(ctx, adminCaller(admin.ID), 12345)
		if err == nil {
			t.Fatal("expected rejection")
		}
		if code := appCode(t, err); code != 404 {
			t.Fatalf("want 404, got %d", code)
		}
	})
}

func TestUsuarioUpdateRol(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewUsuarioRepository(db)
	svc := NewUsuarioService(repo, newTestGuard(db))
	ctx := context.Background()

	admin := seedUsuario(t, db, "Admin", "admin@test.com", model.RolAdmin)
	empleado := seedUsuario(t, db, "Emp", "emp@test.com", model.RolEmpleado)

	t.Run("admin cannot demote own role", func(t *testing.T) {
		_, err := svc.UpdateRol(ctx, adminCaller(admin.ID), admin.ID, model.RolEmpleado)
		if err == nil {
			t.Fatal("expected rejection")
		}
		if err.Error() != "No puedes cambiar tu propio rol de administrador" {
			t.Fatalf("unexpected message %q", err.Error())
		}
	})

	t.Run("promoting an empleado works", func(t *testing.T) {
		resp, err := svc.UpdateRol(ctx, adminCaller(admin.ID), empleado.ID, model.RolAdmin)
		if err != nil {
			t.Fatalf("promote: %v", err)
		}
		if resp.Rol != model.RolAdmin {
			t.Fatalf("rol = %q, want admin", resp.Rol)
		}
	})

	t.Run("with two admins demotion works", func(t *testing.T) {
		resp, err := svc.UpdateRol(ctx, adminCaller(empleado.ID), admin.ID, model.RolEmpleado)
		if err != nil {
			t.Fatalf("demote: %v", err)
		}
		if resp.Rol != model.RolEmpleado {
			t.Fatalf("rol = %q, want empleado", resp.Rol)
		}
	})
}

func TestUsuarioCreateAndUpdate(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewUsuarioRepository(db)
	svc := NewUsuarioService(repo, newTestGuard(db))
	ctx := context.Background()

	admin := seedUsuario(t, db, "Admin", "admin@test.com", model.RolAdmin)

	created, err := svc.Create(ctx, dto.CreateUsuarioRequest{
		Nombre: "Nuevo", Apellidos: "Empleado", Email: "nuevo@test.com", Password: "secreto1",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Rol != model.RolEmpleado {
		t.Fatalf("rol defaults to empleado, got %q", created.Rol)
	}

	t.Run("email stays unique across updates", func(t *testing.T) {
		email := "admin@test.com"
		_, err := svc.Update(ctx, adminCaller(admin.ID), created.ID, dto.UpdateUsuarioRequest{Email: &email})
		if err == nil {
			t.Fatal("expected rejection")
		}
		if err.Error() != "Ya existe un usuario con este email" {
			t.Fatalf("unexpected message %q", err.Error())
		}
	})

	t.Run("partial update leaves other fields alone", func(t *testing.T) {
		nombre := "Renombrado"
		resp, err := svc.Update(ctx, adminCaller(admin.ID), created.ID, dto.UpdateUsuarioRequest{Nombre: &nombre})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if resp.Nombre != "Renombrado" || resp.Email != "nuevo@test.com" {
			t.Fatalf("unexpected result %+v", resp)
		}
	})

	t.Run("change password rehashes", func(t *testing.T) {
		if _, err := svc.ChangePassword(ctx, created.ID, "otrosecreto"); err != nil {
			t.Fatalf("change password: %v", err)
		}
		stored, err := repo.FindByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		if err := bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("otrosecreto")); err != nil {
			t.Fatalf("new password does not verify: %v", err)
		}
	})
}

func TestUsuarioStats(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewUsuarioRepository(db)
	svc := NewUsuarioService(repo, newTestGuard(db))
	ctx := context.Background()

	t.Run("empty system reports zero percentages", func(t *testing.T) {
		stats, err := svc.Stats(ctx)
		if err != nil {
			t.Fatalf("stats: %v", err)
		}
		if stats.TotalUsuarios != 0 || stats.PorcentajeAdmins != "0.0" {
			t.Fatalf("unexpected stats %+v", stats)
		}
	})

	seedUsuario(t, db, "A", "a@test.com", model.RolAdmin)
	seedUsuario(t, db, "B", "b@test.com", model.RolEmpleado)
	seedUsuario(t, db, "C", "c@test.com", model.RolEmpleado)
	seedUsuario(t, db, "D", "d@test.com", model.RolEmpleado)

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalUsuarios != 4 || stats.TotalAdmins != 1 || stats.TotalEmpleados != 3 {
		t.Fatalf("unexpected totals %+v", stats)
	}
	if stats.PorcentajeAdmins != "25.0" || stats.PorcentajeEmpleados != "75.0" {
		t.Fatalf("unexpected percentages %+v", stats)
	}
	if stats.UsuariosRecientes != 4 {
		t.Fatalf("all seeded users are recent, got %d", stats.UsuariosRecientes)
	}
}
