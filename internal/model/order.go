package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment methods. MethodGatewayPending is the sentinel for orders created
// before the hosted gateway confirms the payment.
const (
	MethodCashOnDelivery = "cash_on_delivery"
	MethodGateway        = "gateway"
	MethodGatewayPending = "gateway_pending"
)

type Order struct {
	BaseModel
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User   *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Items      []OrderItem     `json:"items"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_price"`

	// Payment metadata. CardRef holds a masked reference, never raw card data.
	PaymentMethod string `gorm:"type:varchar(30);not null;index" json:"payment_method"`
	CardRef       string `gorm:"type:varchar(50)" json:"card_ref,omitempty"`
	TransactionID string `gorm:"type:varchar(64);index" json:"transaction_id,omitempty"`

	// Shipment block.
	Address  string `gorm:"type:text" json:"address"`
	City     string `gorm:"type:varchar(100)" json:"city"`
	Postcode string `gorm:"type:varchar(20)" json:"postcode"`
	Phone    string `gorm:"type:varchar(20)" json:"phone"`

	// Human-facing order reference, collision-checked at checkout.
	TokenNumber int  `gorm:"uniqueIndex;not null" json:"token_number"`
	Verified    bool `gorm:"default:false" json:"verified"`
}

// OrderItem is a denormalized cart line: name and unit price are copied at
// checkout so later menu edits do not rewrite history.
type OrderItem struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	OrderID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	MenuItemID uuid.UUID       `gorm:"type:uuid;not null" json:"menu_item_id"`
	Name       string          `gorm:"type:varchar(255);not null" json:"name"`
	Quantity   int             `gorm:"not null" json:"quantity"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
}
