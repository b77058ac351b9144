package model

import "github.com/google/uuid"

// Review holds one customer's star rating of a menu item. A customer keeps a
// single review per item; repeat submissions update it in place.
type Review struct {
	BaseModel
	MenuItemID uuid.UUID `gorm:"type:uuid;not null;index:idx_review_item_user,unique" json:"menu_item_id" validate:"uuid_required"`
	MenuItem   *MenuItem `gorm:"foreignKey:MenuItemID" json:"menu_item,omitempty" validate:"-"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index:idx_review_item_user,unique" json:"user_id"`
	User       *User     `gorm:"foreignKey:UserID" json:"user,omitempty" validate:"-"`
	Rating     int       `gorm:"not null" json:"rating" validate:"gte=1,lte=5"`
	Comment    string    `gorm:"type:text" json:"comment"`
}
