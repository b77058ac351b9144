package repository

import (
	"go-restaurant-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StockRepository interface {
	Create(tx *gorm.DB, stock *model.Stock) error
	FindAll() ([]model.Stock, error)
	FindByItemID(tx *gorm.DB, itemID uuid.UUID) (*model.Stock, error)
	FindLow() ([]model.Stock, error)
	UpdateQuantity(tx *gorm.DB, itemID uuid.UUID, newQty int, updatedBy string) error
	DeductIfAvailable(tx *gorm.DB, itemID uuid.UUID, qty int) (bool, error)
	Increment(tx *gorm.DB, itemID uuid.UUID, qty int) error
	UpdateThresholds(itemID uuid.UUID, min, max int, updatedBy string) error
	Delete(tx *gorm.DB, itemID uuid.UUID) error
	Stats() (*StockStats, error)
}

// StockStats is the dashboard overview rollup.
type StockStats struct {
	TotalItems      int64   `json:"total_items"`
	TotalStockValue float64 `json:"total_stock_value"`
	LowStockCount   int64   `json:"low_stock_count"`
	OutOfStockCount int64   `json:"out_of_stock_count"`
}

type stockRepo struct {
	db *gorm.DB
}

func NewStockRepo(db *gorm.DB) StockRepository {
	return &stockRepo{db}
}

func (r *stockRepo) Create(tx *gorm.DB, stock *model.Stock) error {
	return tx.Create(stock).Error
}

func (r *stockRepo) FindAll() ([]model.Stock, error) {
	var stocks []model.Stock
	err := r.db.Preload("MenuItem").Find(&stocks).Error
	return stocks, err
}

func (r *stockRepo) FindByItemID(tx *gorm.DB, itemID uuid.UUID) (*model.Stock, error) {
	if tx == nil {
		tx = r.db
	}
	var stock model.Stock
	err := tx.First(&stock, "menu_item_id = ?", itemID).Error
	return &stock, err
}

// FindLow returns stocks strictly below their min threshold; quantity equal to
// the threshold does not count as low.
func (r *stockRepo) FindLow() ([]model.Stock, error) {
	var stocks []model.Stock
	err := r.db.Preload("MenuItem").Where("quantity < min_threshold").Find(&stocks).Error
	return stocks, err
}

func (r *stockRepo) UpdateQuantity(tx *gorm.DB, itemID uuid.UUID, newQty int, updatedBy string) error {
	return tx.Model(&model.Stock{}).
		Where("menu_item_id = ?", itemID).
		Updates(map[string]interface{}{
			"quantity":          newQty,
			"last_restocked_at": gorm.Expr("CURRENT_TIMESTAMP"),
			"updated_by":        updatedBy,
		}).Error
}

// DeductIfAvailable is the atomic conditional decrement: the quantity guard
// lives inside the UPDATE itself, so two racing checkouts cannot both pass a
// stale read and drive the stored quantity negative.
func (r *stockRepo) DeductIfAvailable(tx *gorm.DB, itemID uuid.UUID, qty int) (bool, error) {
	res := tx.Model(&model.Stock{}).
		Where("menu_item_id = ? AND quantity >= ?", itemID, qty).
		Update("quantity", gorm.Expr("quantity - ?", qty))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *stockRepo) Increment(tx *gorm.DB, itemID uuid.UUID, qty int) error {
	return tx.Model(&model.Stock{}).
		Where("menu_item_id = ?", itemID).
		Updates(map[string]interface{}{
			"quantity":          gorm.Expr("quantity + ?", qty),
			"last_restocked_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}).Error
}

func (r *stockRepo) UpdateThresholds(itemID uuid.UUID, min, max int, updatedBy string) error {
	return r.db.Model(&model.Stock{}).
		Where("menu_item_id = ?", itemID).
		Updates(map[string]interface{}{
			"min_threshold": min,
			"max_threshold": max,
			"updated_by":    updatedBy,
		}).Error
}

func (r *stockRepo) Delete(tx *gorm.DB, itemID uuid.UUID) error {
	return tx.Delete(&model.Stock{}, "menu_item_id = ?", itemID).Error
}

func (r *stockRepo) Stats() (*StockStats, error) {
	var stats StockStats

	if err := r.db.Model(&model.MenuItem{}).Count(&stats.TotalItems).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Stock{}).Where("quantity < min_threshold").Count(&stats.LowStockCount).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Stock{}).Where("quantity = 0").Count(&stats.OutOfStockCount).Error; err != nil {
		return nil, err
	}
	err := r.db.Model(&model.Stock{}).
		Joins("JOIN menu_items ON menu_items.id = stocks.menu_item_id").
		Select("COALESCE(SUM(stocks.quantity * menu_items.price), 0)").
		Scan(&stats.TotalStockValue).Error
	return &stats, err
}
