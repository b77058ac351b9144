package repository

import (
	"go-restaurant-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SupplierRepository interface {
	Create(supplier *model.Supplier) error
	FindAll() ([]model.Supplier, error)
	FindByID(id uuid.UUID) (*model.Supplier, error)
	Update(supplier *model.Supplier) error
	ReplaceSuppliedItems(supplier *model.Supplier, items []model.MenuItem) error
	Delete(id uuid.UUID) error
}

type supplierRepo struct {
	db *gorm.DB
}

func NewSupplierRepo(db *gorm.DB) SupplierRepository {
	return &supplierRepo{db}
}

func (r *supplierRepo) Create(supplier *model.Supplier) error {
	return r.db.Create(supplier).Error
}

func (r *supplierRepo) FindAll() ([]model.Supplier, error) {
	var suppliers []model.Supplier
	err := r.db.Preload("SuppliedItems").Order("company_name ASC").Find(&suppliers).Error
	return suppliers, err
}

func (r *supplierRepo) FindByID(id uuid.UUID) (*model.Supplier, error) {
	var supplier model.Supplier
	err := r.db.Preload("SuppliedItems").First(&supplier, "id = ?", id).Error
	return &supplier, err
}

func (r *supplierRepo) Update(supplier *model.Supplier) error {
	return r.db.Save(supplier).Error
}

func (r *supplierRepo) ReplaceSuppliedItems(supplier *model.Supplier, items []model.MenuItem) error {
	return r.db.Model(supplier).Association("SuppliedItems").Replace(items)
}

func (r *supplierRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Supplier{}, "id = ?", id).Error
}
