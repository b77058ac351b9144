package model

import "time"

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCancelled ReservationStatus = "cancelled"
)

type Reservation struct {
	BaseModel
	Name           string            `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Email          string            `gorm:"type:varchar(255);not null" json:"email" validate:"required,email"`
	Phone          string            `gorm:"type:varchar(20)" json:"phone"`
	PartySize      int               `gorm:"not null" json:"party_size" validate:"gte=1,lte=20"`
	ReservedFor    time.Time         `gorm:"not null;index" json:"reserved_for" validate:"future_date"`
	SpecialRequest string            `gorm:"type:text" json:"special_request"`
	Status         ReservationStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
}
