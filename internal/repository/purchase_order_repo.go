package repository

import (
	"go-restaurant-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PurchaseOrderRepository interface {
	Create(po *model.PurchaseOrder) error
	FindAll() ([]model.PurchaseOrder, error)
	FindByStatus(status model.PurchaseOrderStatus) ([]model.PurchaseOrder, error)
	FindByID(tx *gorm.DB, id uuid.UUID) (*model.PurchaseOrder, error)
	SetStatus(tx *gorm.DB, id uuid.UUID, from, to model.PurchaseOrderStatus, updatedBy string) (bool, error)
	CountToday() (int64, error)
}

type purchaseOrderRepo struct {
	db *gorm.DB
}

func NewPurchaseOrderRepo(db *gorm.DB) PurchaseOrderRepository {
	return &purchaseOrderRepo{db}
}

func (r *purchaseOrderRepo) Create(po *model.PurchaseOrder) error {
	return r.db.Create(po).Error
}

func (r *purchaseOrderRepo) FindAll() ([]model.PurchaseOrder, error) {
	var orders []model.PurchaseOrder
	err := r.db.Preload("Items").Preload("Supplier").Preload("Employee").
		Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *purchaseOrderRepo) FindByStatus(status model.PurchaseOrderStatus) ([]model.PurchaseOrder, error) {
	var orders []model.PurchaseOrder
	err := r.db.Preload("Items").Preload("Supplier").
		Where("status = ?", status).Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *purchaseOrderRepo) FindByID(tx *gorm.DB, id uuid.UUID) (*model.PurchaseOrder, error) {
	if tx == nil {
		tx = r.db
	}
	var po model.PurchaseOrder
	err := tx.Preload("Items").Preload("Supplier").First(&po, "id = ?", id).Error
	return &po, err
}

// SetStatus flips the status only while the row still holds the expected one.
// A raced transition loses with zero affected rows instead of overwriting.
func (r *purchaseOrderRepo) SetStatus(tx *gorm.DB, id uuid.UUID, from, to model.PurchaseOrderStatus, updatedBy string) (bool, error) {
	if tx == nil {
		tx = r.db
	}
	res := tx.Model(&model.PurchaseOrder{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_by": updatedBy,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// CountToday feeds the order-number sequence suffix.
func (r *purchaseOrderRepo) CountToday() (int64, error) {
	var count int64
	err := r.db.Model(&model.PurchaseOrder{}).
		Where("DATE(created_at) = DATE(CURRENT_TIMESTAMP)").
		Count(&count).Error
	return count, err
}
