package model

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Staff roles.
const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
)

type Employee struct {
	BaseModel
	Name     string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Email    string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" validate:"required,email"`
	Password string `gorm:"type:varchar(255);not null" json:"-"`
	Phone    string `gorm:"type:varchar(20)" json:"phone"`
	Role     string `gorm:"type:varchar(20);not null;default:'employee'" json:"role" validate:"required,oneof=employee manager"`
	IsAdmin  bool   `gorm:"default:false" json:"is_admin"`
	IsActive bool   `gorm:"default:true" json:"is_active"`

	OTPCode      string     `gorm:"type:varchar(10)" json:"-"`
	OTPExpiresAt *time.Time `json:"-"`
}

func (e *Employee) SetPassword(password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	e.Password = string(hashed)
	return nil
}

func (e *Employee) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(e.Password), []byte(password)) == nil
}

type EmployeeResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Phone    string    `json:"phone"`
	Role     string    `json:"role"`
	IsAdmin  bool      `json:"is_admin"`
	IsActive bool      `json:"is_active"`
}

func (e *Employee) ToResponse() EmployeeResponse {
	return EmployeeResponse{
		ID:       e.ID,
		Name:     e.Name,
		Email:    e.Email,
		Phone:    e.Phone,
		Role:     e.Role,
		IsAdmin:  e.IsAdmin,
		IsActive: e.IsActive,
	}
}
