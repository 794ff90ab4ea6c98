package repository

import (
	"context"

	"gorm.io/gorm"
	"vertice.mx/concesionario/internal/model"
)

type ModeloRepository interface {
	Create(ctx context.Context, modelo *model.Modelo) error
	FindByID(ctx context.Context, id uint) (*model.Modelo, error)
	FindAll(ctx context.Context) ([]*model.Modelo, error)
	FindByMarca(ctx context.Context, marcaID uint) ([]*model.Modelo, error)
	CountByMarca(ctx context.Context, marcaID uint) (int64, error)
	Update(ctx context.Context, modelo *model.Modelo) error
	Delete(ctx context.Context, id uint) error
}

type modeloRepository struct {
	db *gorm.DB
}

func NewModeloRepository(db *gorm.DB) ModeloRepository {
	return &modeloRepository{db: db}
}

func (r *modeloRepository) Create(ctx context.Context, modelo *model.Modelo) error {
	return r.db.WithContext(ctx).Create(modelo).Error
}

func (r *modeloRepository) FindByID(ctx context.Context, id uint) (*model.Modelo, error) {
	var modelo model.Modelo
	if err := r.db.WithContext(ctx).Preload("Marca").First(&modelo, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &modelo, nil
}

func (r *modeloRepository) FindAll(ctx context.Context) ([]*model.Modelo, error) {
	var modelos []*model.Modelo
	if err := r.db.WithContext(ctx).Preload("Marca").Find(&modelos).Error; err != nil {
		return nil, err
	}
	return modelos, nil
}

func (r *modeloRepository) FindByMarca(ctx context.Context, marcaID uint) ([]*model.Modelo, error) {
	var modelos []*model.Modelo
	if err := r.db.WithContext(ctx).Preload("Marca").
		Where("marca_id = ?", marcaID).
		Find(&modelos).Error; err != nil {
		return nil, err
	}
	return modelos, nil
}

func (r *modeloRepository) CountByMarca(ctx context.Context, marcaID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Modelo{}).Where("marca_id = ?", marcaID).Count(&count).Error
	return count, err
}

func (r *modeloRepository) Update(ctx context.Context, modelo *model.Modelo) error {
	return r.db.WithContext(ctx).Save(modelo).Error
}

func (r *modeloRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Modelo{}, "id = ?", id).Error
}
