package service

import (
	"errors"
	"fmt"
	"time"

	"go-restaurant-api/internal/model"
	"go-restaurant-api/internal/repository"
	"go-restaurant-api/internal/ws"
	"go-restaurant-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrSupplierNotFound      = errors.New("supplier not found")
	ErrPurchaseOrderNotFound = errors.New("purchase order not found")
	ErrIllegalTransition     = errors.New("illegal purchase order status transition")
	ErrEmptyPurchase         = errors.New("purchase order must contain at least one line item")
)

// purchaseTaxRate is applied on top of the line-item subtotal.
var purchaseTaxRate = decimal.NewFromFloat(0.10)

// PurchaseLine is one requested replenishment line.
type PurchaseLine struct {
	MenuItemID uuid.UUID       `json:"menu_item_id" validate:"uuid_required"`
	Quantity   int             `json:"quantity" validate:"required,gt=0"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
}

type PurchaseOrderInput struct {
	SupplierID uuid.UUID      `json:"supplier_id" validate:"uuid_required"`
	Items      []PurchaseLine `json:"items"`
	Notes      string         `json:"notes"`
}

type PurchaseService interface {
	CreateSupplier(supplier *model.Supplier, itemIDs []uuid.UUID, actor Actor) error
	UpdateSupplier(id uuid.UUID, supplier *model.Supplier, itemIDs []uuid.UUID, actor Actor) (*model.Supplier, error)
	DeleteSupplier(id uuid.UUID) error
	GetSuppliers() ([]model.Supplier, error)
	GetSupplier(id uuid.UUID) (*model.Supplier, error)

	CreatePurchaseOrder(input PurchaseOrderInput, actor Actor) (*model.PurchaseOrder, error)
	UpdateStatus(id uuid.UUID, next model.PurchaseOrderStatus, actor Actor) (*model.PurchaseOrder, error)
	GetPurchaseOrders() ([]model.PurchaseOrder, error)
	GetPurchaseOrdersByStatus(status model.PurchaseOrderStatus) ([]model.PurchaseOrder, error)
	GetPurchaseOrder(id uuid.UUID) (*model.PurchaseOrder, error)
}

type purchaseService struct {
	supplierRepo repository.SupplierRepository
	poRepo       repository.PurchaseOrderRepository
	menuRepo     repository.MenuRepository
	stockRepo    repository.StockRepository
	txRepo       repository.StockTransactionRepository
	db           *gorm.DB
	hub          *ws.Hub
}

func NewPurchaseService(supplierRepo repository.SupplierRepository, poRepo repository.PurchaseOrderRepository,
	menuRepo repository.MenuRepository, stockRepo repository.StockRepository,
	txRepo repository.StockTransactionRepository, db *gorm.DB, hub *ws.Hub) PurchaseService {
	return &purchaseService{
		supplierRepo: supplierRepo,
		poRepo:       poRepo,
		menuRepo:     menuRepo,
		stockRepo:    stockRepo,
		txRepo:       txRepo,
		db:           db,
		hub:          hub,
	}
}

func (s *purchaseService) CreateSupplier(supplier *model.Supplier, itemIDs []uuid.UUID, actor Actor) error {
	if errs := validator.ValidateStruct(supplier); len(errs) > 0 {
		return validationError(errs)
	}

	items, err := s.resolveItems(itemIDs)
	if err != nil {
		return err
	}

	supplier.CreatedBy = actor.ID.String()
	supplier.UpdatedBy = actor.ID.String()
	supplier.SuppliedItems = items
	return s.supplierRepo.Create(supplier)
}

func (s *purchaseService) UpdateSupplier(id uuid.UUID, supplier *model.Supplier, itemIDs []uuid.UUID, actor Actor) (*model.Supplier, error) {
	existing, err := s.supplierRepo.FindByID(id)
	if err != nil {
		return nil, ErrSupplierNotFound
	}

	existing.CompanyName = supplier.CompanyName
	existing.ContactPerson = supplier.ContactPerson
	existing.Email = supplier.Email
	existing.Phone = supplier.Phone
	existing.Address = supplier.Address
	existing.IsActive = supplier.IsActive
	existing.UpdatedBy = actor.ID.String()

	if errs := validator.ValidateStruct(existing); len(errs) > 0 {
		return nil, validationError(errs)
	}

	if itemIDs != nil {
		items, err := s.resolveItems(itemIDs)
		if err != nil {
			return nil, err
		}
		if err := s.supplierRepo.ReplaceSuppliedItems(existing, items); err != nil {
			return nil, err
		}
		// Keep the in-memory association in step with the replaced join rows,
		// otherwise the following save re-links the old items.
		existing.SuppliedItems = items
	}

	if err := s.supplierRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *purchaseService) DeleteSupplier(id uuid.UUID) error {
	if _, err := s.supplierRepo.FindByID(id); err != nil {
		return ErrSupplierNotFound
	}
	return s.supplierRepo.Delete(id)
}

func (s *purchaseService) GetSuppliers() ([]model.Supplier, error) {
	return s.supplierRepo.FindAll()
}

func (s *purchaseService) GetSupplier(id uuid.UUID) (*model.Supplier, error) {
	supplier, err := s.supplierRepo.FindByID(id)
	if err != nil {
		return nil, ErrSupplierNotFound
	}
	return supplier, nil
}

// CreatePurchaseOrder prices the lines with decimal math and stamps a
// generated order number. Stock stays untouched until delivery.
func (s *purchaseService) CreatePurchaseOrder(input PurchaseOrderInput, actor Actor) (*model.PurchaseOrder, error) {
	if len(input.Items) == 0 {
		return nil, ErrEmptyPurchase
	}
	if _, err := s.supplierRepo.FindByID(input.SupplierID); err != nil {
		return nil, ErrSupplierNotFound
	}

	subtotal := decimal.Zero
	items := make([]model.PurchaseOrderItem, 0, len(input.Items))
	for _, line := range input.Items {
		if line.Quantity <= 0 {
			return nil, ErrEmptyPurchase
		}
		menuItem, err := s.menuRepo.FindByID(line.MenuItemID)
		if err != nil {
			return nil, ErrMenuItemNotFound
		}

		lineTotal := line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		subtotal = subtotal.Add(lineTotal)
		items = append(items, model.PurchaseOrderItem{
			MenuItemID: line.MenuItemID,
			Name:       menuItem.Name,
			Quantity:   line.Quantity,
			UnitPrice:  line.UnitPrice,
			LineTotal:  lineTotal,
		})
	}

	tax := subtotal.Mul(purchaseTaxRate).Round(2)
	orderNumber, err := s.nextOrderNumber()
	if err != nil {
		return nil, err
	}

	po := &model.PurchaseOrder{
		OrderNumber: orderNumber,
		SupplierID:  input.SupplierID,
		EmployeeID:  actor.ID,
		Items:       items,
		Subtotal:    subtotal,
		Tax:         tax,
		Total:       subtotal.Add(tax),
		Status:      model.POPending,
		Notes:       input.Notes,
	}
	po.CreatedBy = actor.ID.String()
	po.UpdatedBy = actor.ID.String()

	if err := s.poRepo.Create(po); err != nil {
		return nil, err
	}
	return po, nil
}

// UpdateStatus walks the status machine. The delivered transition is the
// receive point: the guarded status flip and the stock increments with their
// restock ledger rows commit as one transaction, so a purchase order cannot
// be received twice.
func (s *purchaseService) UpdateStatus(id uuid.UUID, next model.PurchaseOrderStatus, actor Actor) (*model.PurchaseOrder, error) {
	po, err := s.poRepo.FindByID(nil, id)
	if err != nil {
		return nil, ErrPurchaseOrderNotFound
	}
	if !po.CanTransition(next) {
		return nil, ErrIllegalTransition
	}

	if next != model.PODelivered {
		ok, err := s.poRepo.SetStatus(nil, id, po.Status, next, actor.ID.String())
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrIllegalTransition
		}
		po.Status = next
		return po, nil
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// The guarded flip claims the row first: of two concurrent delivery
		// calls only one still sees it shipped, the other aborts before
		// touching stock.
		ok, err := s.poRepo.SetStatus(tx, id, model.POShipped, model.PODelivered, actor.ID.String())
		if err != nil {
			return err
		}
		if !ok {
			return ErrIllegalTransition
		}

		for _, item := range po.Items {
			if err := s.stockRepo.Increment(tx, item.MenuItemID, item.Quantity); err != nil {
				return err
			}
			// Post-increment read under the row lock keeps the ledger row in
			// step with the stored quantity.
			stock, err := s.stockRepo.FindByItemID(tx, item.MenuItemID)
			if err != nil {
				return ErrStockNotFound
			}

			txn := &model.StockTransaction{
				MenuItemID:  item.MenuItemID,
				Type:        model.TxRestock,
				Quantity:    item.Quantity,
				PreviousQty: stock.Quantity - item.Quantity,
				NewQty:      stock.Quantity,
				Reason:      fmt.Sprintf("received purchase order %s", po.OrderNumber),
				ActorID:     actor.ID,
				ActorType:   model.ActorStaff,
			}
			txn.CreatedBy = actor.ID.String()
			if err := s.txRepo.Append(tx, txn); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	po.Status = model.PODelivered
	go s.hub.Publish(ws.EventStockChanged, map[string]interface{}{
		"purchase_order": po.OrderNumber,
		"status":         po.Status,
	})
	return po, nil
}

func (s *purchaseService) GetPurchaseOrders() ([]model.PurchaseOrder, error) {
	return s.poRepo.FindAll()
}

func (s *purchaseService) GetPurchaseOrdersByStatus(status model.PurchaseOrderStatus) ([]model.PurchaseOrder, error) {
	return s.poRepo.FindByStatus(status)
}

func (s *purchaseService) GetPurchaseOrder(id uuid.UUID) (*model.PurchaseOrder, error) {
	po, err := s.poRepo.FindByID(nil, id)
	if err != nil {
		return nil, ErrPurchaseOrderNotFound
	}
	return po, nil
}

func (s *purchaseService) resolveItems(itemIDs []uuid.UUID) ([]model.MenuItem, error) {
	items := make([]model.MenuItem, 0, len(itemIDs))
	for _, id := range itemIDs {
		item, err := s.menuRepo.FindByID(id)
		if err != nil {
			return nil, ErrMenuItemNotFound
		}
		items = append(items, *item)
	}
	return items, nil
}

func (s *purchaseService) nextOrderNumber() (string, error) {
	count, err := s.poRepo.CountToday()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("PO-%s-%04d", time.Now().Format("20060102"), count+1), nil
}
