package model

import (
	"time"

	"github.com/google/uuid"
)

type Stock struct {
	BaseModel
	MenuItemID      uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null" json:"menu_item_id"`
	MenuItem        *MenuItem  `gorm:"foreignKey:MenuItemID" json:"menu_item,omitempty"`
	Quantity        int        `gorm:"not null;default:0" json:"quantity"`
	MinThreshold    int        `gorm:"not null;default:0" json:"min_threshold"`
	MaxThreshold    int        `gorm:"not null;default:0" json:"max_threshold"`
	LastRestockedAt *time.Time `json:"last_restocked_at,omitempty"`
}

type StockTransactionType string

const (
	TxPurchase   StockTransactionType = "purchase"
	TxSale       StockTransactionType = "sale"
	TxAdjustment StockTransactionType = "adjustment"
	TxWaste      StockTransactionType = "waste"
	TxRestock    StockTransactionType = "restock"
)

type ActorType string

const (
	ActorCustomer ActorType = "customer"
	ActorStaff    ActorType = "staff"
)

// StockTransaction is the append-only audit record paired with every stock
// mutation. Quantity is signed; NewQty = PreviousQty + Quantity always holds
// because the row is written in the same DB transaction as the mutation.
type StockTransaction struct {
	BaseModel
	MenuItemID  uuid.UUID            `gorm:"type:uuid;not null;index" json:"menu_item_id" validate:"uuid_required"`
	MenuItem    *MenuItem            `gorm:"foreignKey:MenuItemID" json:"menu_item,omitempty" validate:"-"`
	Type        StockTransactionType `gorm:"type:varchar(20);not null;index" json:"type" validate:"required,oneof=purchase sale adjustment waste restock"`
	Quantity    int                  `gorm:"not null" json:"quantity"`
	PreviousQty int                  `gorm:"not null" json:"previous_qty"`
	NewQty      int                  `gorm:"not null" json:"new_qty"`
	Reason      string               `gorm:"type:text" json:"reason"`
	ActorID     uuid.UUID            `gorm:"type:uuid" json:"actor_id"`
	ActorType   ActorType            `gorm:"type:varchar(10)" json:"actor_type"`
}
