package repository

import (
	"time"

	"go-restaurant-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(tx *gorm.DB, order *model.Order) error
	FindByID(id uuid.UUID) (*model.Order, error)
	FindByTransactionID(tranID string) (*model.Order, error)
	FindByUser(userID uuid.UUID) ([]model.Order, error)
	FindAll() ([]model.Order, error)
	FindByPaymentMethod(method string) ([]model.Order, error)
	TokenExists(tx *gorm.DB, token int) (bool, error)
	SetPaymentMethod(tx *gorm.DB, id uuid.UUID, method string) error
	SetVerified(id uuid.UUID, verified bool) error
	Delete(tx *gorm.DB, id uuid.UUID) error
	DeleteStalePending(userID uuid.UUID, before time.Time) (int64, error)
	SalesSummary(startDate, endDate time.Time) (*SalesSummary, error)
}

// SalesSummary is the dashboard revenue rollup over a window. Pending gateway
// orders are excluded because they are not yet paid.
type SalesSummary struct {
	OrderCount int64   `json:"order_count"`
	Revenue    float64 `json:"revenue"`
}

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepo(db *gorm.DB) OrderRepository {
	return &orderRepo{db}
}

func (r *orderRepo) Create(tx *gorm.DB, order *model.Order) error {
	return tx.Create(order).Error
}

func (r *orderRepo) FindByID(id uuid.UUID) (*model.Order, error) {
	var order model.Order
	err := r.db.Preload("Items").Preload("User").First(&order, "id = ?", id).Error
	return &order, err
}

func (r *orderRepo) FindByTransactionID(tranID string) (*model.Order, error) {
	var order model.Order
	err := r.db.Preload("Items").First(&order, "transaction_id = ?", tranID).Error
	return &order, err
}

func (r *orderRepo) FindByUser(userID uuid.UUID) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Preload("Items").Where("user_id = ?", userID).
		Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepo) FindAll() ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Preload("Items").Preload("User").Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepo) FindByPaymentMethod(method string) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Preload("Items").Preload("User").Where("payment_method = ?", method).
		Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepo) TokenExists(tx *gorm.DB, token int) (bool, error) {
	var count int64
	err := tx.Model(&model.Order{}).Where("token_number = ?", token).Count(&count).Error
	return count > 0, err
}

func (r *orderRepo) SetPaymentMethod(tx *gorm.DB, id uuid.UUID, method string) error {
	return tx.Model(&model.Order{}).Where("id = ?", id).Update("payment_method", method).Error
}

func (r *orderRepo) SetVerified(id uuid.UUID, verified bool) error {
	return r.db.Model(&model.Order{}).Where("id = ?", id).Update("verified", verified).Error
}

func (r *orderRepo) Delete(tx *gorm.DB, id uuid.UUID) error {
	if tx == nil {
		tx = r.db
	}
	if err := tx.Where("order_id = ?", id).Delete(&model.OrderItem{}).Error; err != nil {
		return err
	}
	return tx.Delete(&model.Order{}, "id = ?", id).Error
}

// DeleteStalePending clears abandoned gateway orders for one customer. Called
// best-effort before a new payment initiation.
func (r *orderRepo) DeleteStalePending(userID uuid.UUID, before time.Time) (int64, error) {
	res := r.db.Where("user_id = ? AND payment_method = ? AND created_at < ?",
		userID, model.MethodGatewayPending, before).
		Delete(&model.Order{})
	return res.RowsAffected, res.Error
}

func (r *orderRepo) SalesSummary(startDate, endDate time.Time) (*SalesSummary, error) {
	var summary SalesSummary

	base := r.db.Model(&model.Order{}).
		Where("payment_method <> ? AND created_at BETWEEN ? AND ?",
			model.MethodGatewayPending, startDate, endDate)

	if err := base.Count(&summary.OrderCount).Error; err != nil {
		return nil, err
	}
	err := r.db.Model(&model.Order{}).
		Where("payment_method <> ? AND created_at BETWEEN ? AND ?",
			model.MethodGatewayPending, startDate, endDate).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&summary.Revenue).Error
	return &summary, err
}
