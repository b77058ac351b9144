package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type MenuCategory string

const (
	CategoryAppetizer MenuCategory = "appetizer"
	CategoryMain      MenuCategory = "main"
	CategoryDessert   MenuCategory = "dessert"
	CategoryBeverage  MenuCategory = "beverage"
	CategorySide      MenuCategory = "side"
)

// MaxMenuImages caps how many asset references a single item may carry.
const MaxMenuImages = 5

type MenuItem struct {
	BaseModel
	Code            string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"code" validate:"required"`
	Name            string          `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Description     string          `gorm:"type:text" json:"description"`
	Category        MenuCategory    `gorm:"type:varchar(20);not null" json:"category" validate:"required,oneof=appetizer main dessert beverage side"`
	Price           decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	OldPrice        decimal.Decimal `gorm:"type:decimal(12,2)" json:"old_price"`
	DiscountPercent int             `gorm:"default:0" json:"discount_percent" validate:"gte=0,lte=100"`

	Images []MenuImage `json:"images,omitempty"`
	Stock  *Stock      `json:"stock,omitempty"`
}

// MenuImage is one asset-host reference owned by a menu item.
type MenuImage struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	MenuItemID uuid.UUID `gorm:"type:uuid;not null;index" json:"menu_item_id"`
	URL        string    `gorm:"type:text;not null" json:"url"`
	PublicID   string    `gorm:"type:varchar(255);not null" json:"public_id"`
}
