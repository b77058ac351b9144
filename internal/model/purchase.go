package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PurchaseOrderStatus string

const (
	POPending   PurchaseOrderStatus = "pending"
	POConfirmed PurchaseOrderStatus = "confirmed"
	POShipped   PurchaseOrderStatus = "shipped"
	PODelivered PurchaseOrderStatus = "delivered"
	POCancelled PurchaseOrderStatus = "cancelled"
)

type PurchaseOrder struct {
	BaseModel
	OrderNumber string    `gorm:"type:varchar(30);uniqueIndex;not null" json:"order_number"`
	SupplierID  uuid.UUID `gorm:"type:uuid;not null;index" json:"supplier_id"`
	Supplier    *Supplier `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	EmployeeID  uuid.UUID `gorm:"type:uuid;not null" json:"employee_id"`
	Employee    *Employee `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`

	Items    []PurchaseOrderItem `json:"items"`
	Subtotal decimal.Decimal     `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	Tax      decimal.Decimal     `gorm:"type:decimal(12,2);not null" json:"tax"`
	Total    decimal.Decimal     `gorm:"type:decimal(12,2);not null" json:"total"`

	Status PurchaseOrderStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Notes  string              `gorm:"type:text" json:"notes"`
}

type PurchaseOrderItem struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	PurchaseOrderID uuid.UUID       `gorm:"type:uuid;not null;index" json:"purchase_order_id"`
	MenuItemID      uuid.UUID       `gorm:"type:uuid;not null" json:"menu_item_id"`
	Name            string          `gorm:"type:varchar(255);not null" json:"name"`
	Quantity        int             `gorm:"not null" json:"quantity"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	LineTotal       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"line_total"`
}

// Legal status transitions. Delivered is terminal because it is the receive
// point for stock; cancelled is terminal outright.
var poTransitions = map[PurchaseOrderStatus][]PurchaseOrderStatus{
	POPending:   {POConfirmed, POCancelled},
	POConfirmed: {POShipped, POCancelled},
	POShipped:   {PODelivered},
}

// CanTransition reports whether moving from the current status to next is legal.
func (po *PurchaseOrder) CanTransition(next PurchaseOrderStatus) bool {
	for _, s := range poTransitions[po.Status] {
		if s == next {
			return true
		}
	}
	return false
}
