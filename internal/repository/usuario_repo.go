package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"vertice.mx/concesionario/internal/model"
)

type UsuarioRepository interface {
	Create(ctx context.Context, usuario *model.Usuario) error
	FindByID(ctx context.Context, id uint) (*model.Usuario, error)
	FindByEmail(ctx context.Context, email string) (*model.Usuario, error)
	FindAll(ctx context.Context) ([]*model.Usuario, error)
	Update(ctx context.Context, usuario *model.Usuario) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
	CountByRol(ctx context.Context, rol string) (int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
}

type usuarioRepository struct {
	db *gorm.DB
}

func NewUsuarioRepository(db *gorm.DB) UsuarioRepository {
	return &usuarioRepository{db: db}
}

func (r *usuarioRepository) Create(ctx context.Context, usuario *model.Usuario) error {
	return r.db.WithContext(ctx).Create(usuario).Error
}

func (r *usuarioRepository) FindByID(ctx context.Context, id uint) (*model.Usuario, error) {
	var usuario model.Usuario
	if err := r.db.WithContext(ctx).First(&usuario, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &usuario, nil
}

func (r *usuarioRepository) FindByEmail(ctx context.Context, email string) (*model.Usuario, error) {
	var usuario model.Usuario
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&usuario).Error; err != nil {
		return nil, err
	}
	return &usuario, nil
}

func (r *usuarioRepository) FindAll(ctx context.Context) ([]*model.Usuario, error) {
	var usuarios []*model.Usuario
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&usuarios).Error; err != nil {
		return nil, err
	}
	return usuarios, nil
}

func (r *usuarioRepository) Update(ctx context.Context, usuario *model.Usuario) error {
	return r.db.WithContext(ctx).Save(usuario).Error
}

func (r *usuarioRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Usuario{}, "id = ?", id).Error
}

func (r *usuarioRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Usuario{}).Count(&count).Error
	return count, err
}

func (r *usuarioRepository) CountByRol(ctx context.Context, rol string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Usuario{}).Where("rol = ?", rol).Count(&count).Error
	return count, err
}

func (r *usuarioRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Usuario{}).Where("created_at >= ?", since).Count(&count).Error
	return count, err
}
