package repository

import (
	"time"

	"go-restaurant-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StockTransactionRepository interface {
	Append(tx *gorm.DB, txn *model.StockTransaction) error
	FindRecent(limit int) ([]model.StockTransaction, error)
	FindByItem(itemID uuid.UUID) ([]model.StockTransaction, error)
	GetMovement(startDate, endDate time.Time) ([]MovementData, error)
	GetTopSellers(limit int) ([]TopSellerData, error)
}

// MovementData is one day of the purchases-vs-sales chart. Inbound counts
// purchase/restock rows and positive adjustments; outbound counts sale/waste
// rows and negative adjustments.
type MovementData struct {
	Date     string `json:"date"`
	Inbound  int    `json:"inbound"`
	Outbound int    `json:"outbound"`
}

// TopSellerData is one row of the best-sellers rollup.
type TopSellerData struct {
	MenuItemID uuid.UUID `json:"menu_item_id"`
	Name       string    `json:"name"`
	TotalSold  int       `json:"total_sold"`
}

type stockTransactionRepo struct {
	db *gorm.DB
}

func NewStockTransactionRepo(db *gorm.DB) StockTransactionRepository {
	return &stockTransactionRepo{db}
}

func (r *stockTransactionRepo) Append(tx *gorm.DB, txn *model.StockTransaction) error {
	return tx.Create(txn).Error
}

func (r *stockTransactionRepo) FindRecent(limit int) ([]model.StockTransaction, error) {
	var txns []model.StockTransaction
	err := r.db.Preload("MenuItem").Order("created_at DESC").Limit(limit).Find(&txns).Error
	return txns, err
}

func (r *stockTransactionRepo) FindByItem(itemID uuid.UUID) ([]model.StockTransaction, error) {
	var txns []model.StockTransaction
	err := r.db.Where("menu_item_id = ?", itemID).Order("created_at DESC").Find(&txns).Error
	return txns, err
}

func (r *stockTransactionRepo) GetMovement(startDate, endDate time.Time) ([]MovementData, error) {
	var results []MovementData

	rows, err := r.db.Model(&model.StockTransaction{}).
		Select(`
			DATE(created_at) as date,
			COALESCE(SUM(CASE WHEN quantity > 0 THEN quantity ELSE 0 END), 0) as inbound,
			COALESCE(SUM(CASE WHEN quantity < 0 THEN -quantity ELSE 0 END), 0) as outbound
		`).
		Where("created_at BETWEEN ? AND ?", startDate, endDate).
		Group("DATE(created_at)").
		Order("date ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data MovementData
		if err := rows.Scan(&data.Date, &data.Inbound, &data.Outbound); err != nil {
			return nil, err
		}
		results = append(results, data)
	}
	return results, nil
}

func (r *stockTransactionRepo) GetTopSellers(limit int) ([]TopSellerData, error) {
	var results []TopSellerData

	rows, err := r.db.Model(&model.StockTransaction{}).
		Select(`
			stock_transactions.menu_item_id,
			menu_items.name,
			SUM(-stock_transactions.quantity) as total_sold
		`).
		Joins("JOIN menu_items ON menu_items.id = stock_transactions.menu_item_id").
		Where("stock_transactions.type = ?", model.TxSale).
		Group("stock_transactions.menu_item_id, menu_items.name").
		Order("total_sold DESC").
		Limit(limit).
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data TopSellerData
		if err := rows.Scan(&data.MenuItemID, &data.Name, &data.TotalSold); err != nil {
			return nil, err
		}
		results = append(results, data)
	}
	return results, nil
}
