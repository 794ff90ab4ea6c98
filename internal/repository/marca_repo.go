package repository

import (
	"context"

	"gorm.io/gorm"
	"vertice.mx/concesionario/internal/model"
)

type MarcaRepository interface {
	Create(ctx context.Context, marca *model.Marca) error
	FindByID(ctx context.Context, id uint) (*model.Marca, error)
	FindByNombre(ctx context.Context, nombre string) (*model.Marca, error)
	FindAll(ctx context.Context) ([]*model.Marca, error)
	Update(ctx context.Context, marca *model.Marca) error
	Delete(ctx context.Context, id uint) error
}

type marcaRepository struct {
	db *gorm.DB
}

func NewMarcaRepository(db *gorm.DB) MarcaRepository {
	return &marcaRepository{db: db}
}

func (r *marcaRepository) Create(ctx context.Context, marca *model.Marca) error {
	return r.db.WithContext(ctx).Create(marca).Error
}

func (r *marcaRepository) FindByID(ctx context.Context, id uint) (*model.Marca, error) {
	var marca model.Marca
	if err := r.db.WithContext(ctx).First(&marca, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &marca, nil
}

func (r *marcaRepository) FindByNombre(ctx context.Context, nombre string) (*model.Marca, error) {
	var marca model.Marca
	if err := r.db.WithContext(ctx).Where("nombre = ?", nombre).First(&marca).Error; err != nil {
		return nil, err
	}
	return &marca, nil
}

func (r *marcaRepository) FindAll(ctx context.Context) ([]*model.Marca, error) {
	var marcas []*model.Marca
	if err := r.db.WithContext(ctx).Find(&marcas).Error; err != nil {
		return nil, err
	}
	return marcas, nil
}

func (r *marcaRepository) Update(ctx context.Context, marca *model.Marca) error {
	return r.db.WithContext(ctx).Save(marca).Error
}

func (r *marcaRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Marca{}, "id = ?", id).Error
}
