package repository

import (
	"time"

	"go-restaurant-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EmployeeRepository interface {
	Create(employee *model.Employee) error
	FindAll() ([]model.Employee, error)
	FindByEmail(email string) (*model.Employee, error)
	FindByID(id uuid.UUID) (*model.Employee, error)
	Update(employee *model.Employee) error
	SetOTP(id uuid.UUID, code string, expiresAt time.Time) error
	ClearOTP(id uuid.UUID) error
	Delete(id uuid.UUID) error
}

type employeeRepo struct {
	db *gorm.DB
}

func NewEmployeeRepo(db *gorm.DB) EmployeeRepository {
	return &employeeRepo{db}
}

func (r *employeeRepo) Create(employee *model.Employee) error {
	return r.db.Create(employee).Error
}

func (r *employeeRepo) FindAll() ([]model.Employee, error) {
	var employees []model.Employee
	err := r.db.Order("name ASC").Find(&employees).Error
	return employees, err
}

func (r *employeeRepo) FindByEmail(email string) (*model.Employee, error) {
	var employee model.Employee
	if err := r.db.First(&employee, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepo) FindByID(id uuid.UUID) (*model.Employee, error) {
	var employee model.Employee
	if err := r.db.First(&employee, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepo) Update(employee *model.Employee) error {
	return r.db.Save(employee).Error
}

func (r *employeeRepo) SetOTP(id uuid.UUID, code string, expiresAt time.Time) error {
	return r.db.Model(&model.Employee{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"otp_code":       code,
			"otp_expires_at": expiresAt,
		}).Error
}

func (r *employeeRepo) ClearOTP(id uuid.UUID) error {
	return r.db.Model(&model.Employee{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"otp_code":       "",
			"otp_expires_at": nil,
		}).Error
}

func (r *employeeRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Employee{}, "id = ?", id).Error
}
