package service

import (
	"errors"
	"fmt"

	"go-restaurant-api/internal/model"
	"go-restaurant-api/internal/repository"
	"go-restaurant-api/internal/ws"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var (
	ErrStockNotFound     = errors.New("stock record not found")
	ErrInsufficientStock = errors.New("insufficient stock remaining")
	ErrNegativeQuantity  = errors.New("quantity cannot be negative")
	ErrInvalidThresholds = errors.New("min threshold cannot exceed max threshold")
)

// Actor identifies who performed a ledger mutation.
type Actor struct {
	ID   uuid.UUID
	Type model.ActorType
	Name string
}

type StockService interface {
	Adjust(itemID uuid.UUID, targetQty int, reason string, actor Actor) (*model.Stock, error)
	RecordWaste(itemID uuid.UUID, qty int, reason string, actor Actor) (*model.Stock, error)
	UpdateThresholds(itemID uuid.UUID, min, max int, actor Actor) error
	GetAll() ([]model.Stock, error)
	GetLow() ([]model.Stock, error)
	GetByItem(itemID uuid.UUID) (*model.Stock, error)
	GetItemHistory(itemID uuid.UUID) ([]model.StockTransaction, error)
}

type stockService struct {
	stockRepo repository.StockRepository
	txRepo    repository.StockTransactionRepository
	db        *gorm.DB
	hub       *ws.Hub
}

func NewStockService(stockRepo repository.StockRepository, txRepo repository.StockTransactionRepository, db *gorm.DB, hub *ws.Hub) StockService {
	return &stockService{
		stockRepo: stockRepo,
		txRepo:    txRepo,
		db:        db,
		hub:       hub,
	}
}

// Adjust overwrites the current quantity with an absolute target and logs the
// signed delta. The read and write share one DB transaction so the ledger row
// always matches the stored quantity.
func (s *stockService) Adjust(itemID uuid.UUID, targetQty int, reason string, actor Actor) (*model.Stock, error) {
	if targetQty < 0 {
		return nil, ErrNegativeQuantity
	}

	var adjusted *model.Stock
	err := s.db.Transaction(func(tx *gorm.DB) error {
		stock, err := s.stockRepo.FindByItemID(tx, itemID)
		if err != nil {
			return ErrStockNotFound
		}

		previous := stock.Quantity
		if err := s.stockRepo.UpdateQuantity(tx, itemID, targetQty, actor.ID.String()); err != nil {
			return err
		}

		txn := &model.StockTransaction{
			MenuItemID:  itemID,
			Type:        model.TxAdjustment,
			Quantity:    targetQty - previous,
			PreviousQty: previous,
			NewQty:      targetQty,
			Reason:      reason,
			ActorID:     actor.ID,
			ActorType:   actor.Type,
		}
		txn.CreatedBy = actor.ID.String()
		if err := s.txRepo.Append(tx, txn); err != nil {
			return err
		}

		stock.Quantity = targetQty
		adjusted = stock
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyChange(adjusted, model.TxAdjustment, actor)
	return adjusted, nil
}

// RecordWaste decrements stock for spoilage/breakage with a mandatory reason.
func (s *stockService) RecordWaste(itemID uuid.UUID, qty int, reason string, actor Actor) (*model.Stock, error) {
	if qty <= 0 {
		return nil, ErrNegativeQuantity
	}

	var wasted *model.Stock
	err := s.db.Transaction(func(tx *gorm.DB) error {
		ok, err := s.stockRepo.DeductIfAvailable(tx, itemID, qty)
		if err != nil {
			return err
		}
		if !ok {
			if _, err := s.stockRepo.FindByItemID(tx, itemID); err != nil {
				return ErrStockNotFound
			}
			return ErrInsufficientStock
		}

		// Read back under the transaction's row lock so the ledger row
		// matches the stored quantity even when another deduction raced us.
		stock, err := s.stockRepo.FindByItemID(tx, itemID)
		if err != nil {
			return err
		}

		txn := &model.StockTransaction{
			MenuItemID:  itemID,
			Type:        model.TxWaste,
			Quantity:    -qty,
			PreviousQty: stock.Quantity + qty,
			NewQty:      stock.Quantity,
			Reason:      reason,
			ActorID:     actor.ID,
			ActorType:   actor.Type,
		}
		txn.CreatedBy = actor.ID.String()
		if err := s.txRepo.Append(tx, txn); err != nil {
			return err
		}

		wasted = stock
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyChange(wasted, model.TxWaste, actor)
	return wasted, nil
}

func (s *stockService) UpdateThresholds(itemID uuid.UUID, min, max int, actor Actor) error {
	if min < 0 || max < 0 {
		return ErrNegativeQuantity
	}
	if min > max {
		return ErrInvalidThresholds
	}
	if _, err := s.stockRepo.FindByItemID(nil, itemID); err != nil {
		return ErrStockNotFound
	}
	return s.stockRepo.UpdateThresholds(itemID, min, max, actor.ID.String())
}

func (s *stockService) GetAll() ([]model.Stock, error) {
	return s.stockRepo.FindAll()
}

func (s *stockService) GetLow() ([]model.Stock, error) {
	return s.stockRepo.FindLow()
}

func (s *stockService) GetByItem(itemID uuid.UUID) (*model.Stock, error) {
	stock, err := s.stockRepo.FindByItemID(nil, itemID)
	if err != nil {
		return nil, ErrStockNotFound
	}
	return stock, nil
}

func (s *stockService) GetItemHistory(itemID uuid.UUID) ([]model.StockTransaction, error) {
	return s.txRepo.FindByItem(itemID)
}

// notifyChange pushes the mutation to the dashboard feed, with a second alert
// event when the item just crossed below its min threshold.
func (s *stockService) notifyChange(stock *model.Stock, txType model.StockTransactionType, actor Actor) {
	go func() {
		s.hub.Publish(ws.EventStockChanged, map[string]interface{}{
			"menu_item_id": stock.MenuItemID,
			"quantity":     stock.Quantity,
			"type":         txType,
			"actor":        actor.Name,
		})
		if stock.Quantity < stock.MinThreshold {
			s.hub.Publish(ws.EventLowStockAlert, map[string]interface{}{
				"menu_item_id": stock.MenuItemID,
				"quantity":     stock.Quantity,
				"min":          stock.MinThreshold,
			})
			log.Warn().
				Str("menu_item_id", stock.MenuItemID.String()).
				Int("quantity", stock.Quantity).
				Msg(fmt.Sprintf("stock below threshold after %s", txType))
		}
	}()
}
