package model

type Supplier struct {
	BaseModel
	CompanyName   string `gorm:"type:varchar(200);not null" json:"company_name" validate:"required"`
	ContactPerson string `gorm:"type:varchar(100)" json:"contact_person"`
	Email         string `gorm:"type:varchar(255)" json:"email" validate:"omitempty,email"`
	Phone         string `gorm:"type:varchar(20)" json:"phone"`
	Address       string `gorm:"type:text" json:"address"`
	IsActive      bool   `gorm:"default:true" json:"is_active"`

	// Menu items this supplier can replenish.
	SuppliedItems []MenuItem `gorm:"many2many:supplier_items;" json:"supplied_items,omitempty"`
}
