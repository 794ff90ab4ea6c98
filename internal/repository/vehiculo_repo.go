package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"vertice.mx/concesionario/internal/model"
	"vertice.mx/concesionario/internal/search"
)

type VehiculoRepository interface {
	Create(ctx context.Context, vehiculo *model.Vehiculo) error
	FindByID(ctx context.Context, id uint) (*model.Vehiculo, error)
	FindByVIN(ctx context.Context, vin string) (*model.Vehiculo, error)
	FindAll(ctx context.Context) ([]*model.Vehiculo, error)
	Search(ctx context.Context, query search.Query) ([]*model.Vehiculo, error)
	CountByModelo(ctx context.Context, modeloID uint) (int64, error)
	Update(ctx context.Context, vehiculo *model.Vehiculo) error
	Delete(ctx context.Context, id uint) error
}

type vehiculoRepository struct {
	db *gorm.DB
}

func NewVehiculoRepository(db *gorm.DB) VehiculoRepository {
	return &vehiculoRepository{db: db}
}

func (r *vehiculoRepository) Create(ctx context.Context, vehiculo *model.Vehiculo) error {
	return r.db.WithContext(ctx).Create(vehiculo).Error
}

func (r *vehiculoRepository) FindByID(ctx context.Context, id uint) (*model.Vehiculo, error) {
	var vehiculo model.Vehiculo
	if err := r.db.WithContext(ctx).
		Preload("Modelo").
		Preload("Modelo.Marca").
		First(&vehiculo, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &vehiculo, nil
}

func (r *vehiculoRepository) FindByVIN(ctx context.Context, vin string) (*model.Vehiculo, error) {
	var vehiculo model.Vehiculo
	if err := r.db.WithContext(ctx).Where("vin = ?", vin).First(&vehiculo).Error; err != nil {
		return nil, err
	}
	return &vehiculo, nil
}

func (r *vehiculoRepository) FindAll(ctx context.Context) ([]*model.Vehiculo, error) {
	var vehiculos []*model.Vehiculo
	if err := r.db.WithContext(ctx).
		Preload("Modelo").
		Preload("Modelo.Marca").
		Find(&vehiculos).Error; err != nil {
		return nil, err
	}
	return vehiculos, nil
}

// Search executes a compiled query. Joins against modelos/marcas are added
// only when the query filters on them; display preloads stay unconditional.
func (r *vehiculoRepository) Search(ctx context.Context, query search.Query) ([]*model.Vehiculo, error) {
	tx := r.db.WithContext(ctx).Model(&model.Vehiculo{}).
		Preload("Modelo").
		Preload("Modelo.Marca")

	for _, cond := range query.Vehiculo {
		tx = applyCondition(tx, "vehiculos", cond)
	}

	if query.RequiresModelo() {
		tx = tx.Joins("JOIN modelos ON modelos.id = vehiculos.modelo_id")
		for _, cond := range query.Modelo {
			tx = applyCondition(tx, "modelos", cond)
		}
	}

	if query.RequiresMarca() {
		tx = tx.Joins("JOIN marcas ON marcas.id = modelos.marca_id")
		for _, cond := range query.Marca {
			tx = applyCondition(tx, "marcas", cond)
		}
	}

	var vehiculos []*model.Vehiculo
	if err := tx.Find(&vehiculos).Error; err != nil {
		return nil, err
	}
	return vehiculos, nil
}

func applyCondition(tx *gorm.DB, table string, cond search.Condition) *gorm.DB {
	column := fmt.Sprintf("%s.%s", table, cond.Column)

	switch cond.Op {
	case search.OpEq:
		return tx.Where(column+" = ?", cond.Value)
	case search.OpGte:
		return tx.Where(column+" >= ?", cond.Value)
	case search.OpLte:
		return tx.Where(column+" <= ?", cond.Value)
	case search.OpBetween:
		return tx.Where(column+" BETWEEN ? AND ?", cond.Value, cond.Hi)
	case search.OpContains:
		pattern := "%" + strings.ToLower(fmt.Sprint(cond.Value)) + "%"
		return tx.Where("LOWER("+column+") LIKE ?", pattern)
	default:
		return tx
	}
}

func (r *vehiculoRepository) CountByModelo(ctx context.Context, modeloID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Vehiculo{}).Where("modelo_id = ?", modeloID).Count(&count).Error
	return count, err
}

func (r *vehiculoRepository) Update(ctx context.Context, vehiculo *model.Vehiculo) error {
	return r.db.WithContext(ctx).Save(vehiculo).Error
}

func (r *vehiculoRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Vehiculo{}, "id = ?", id).Error
}
