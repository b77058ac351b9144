package service

import (
	"errors"
	"fmt"

	"go-restaurant-api/internal/model"
	"go-restaurant-api/internal/repository"
	"go-restaurant-api/pkg/validator"

	"github.com/google/uuid"
)

var ErrEmployeeNotFound = errors.New("employee not found")

type EmployeeService interface {
	Create(employee *model.Employee, password string, actor Actor) error
	Update(id uuid.UUID, employee *model.Employee, actor Actor) (*model.Employee, error)
	Deactivate(id uuid.UUID, actor Actor) error
	Delete(id uuid.UUID) error
	GetAll() ([]model.Employee, error)
	GetByID(id uuid.UUID) (*model.Employee, error)
}

type employeeService struct {
	repo repository.EmployeeRepository
}

func NewEmployeeService(repo repository.EmployeeRepository) EmployeeService {
	return &employeeService{repo: repo}
}

func (s *employeeService) Create(employee *model.Employee, password string, actor Actor) error {
	if errs := validator.ValidateStruct(employee); len(errs) > 0 {
		return validationError(errs)
	}
	if len(password) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", ErrValidation)
	}

	if existing, _ := s.repo.FindByEmail(employee.Email); existing != nil {
		return ErrEmailExists
	}

	if err := employee.SetPassword(password); err != nil {
		return err
	}
	employee.IsActive = true
	employee.CreatedBy = actor.ID.String()
	employee.UpdatedBy = actor.ID.String()
	return s.repo.Create(employee)
}

func (s *employeeService) Update(id uuid.UUID, employee *model.Employee, actor Actor) (*model.Employee, error) {
	existing, err := s.repo.FindByID(id)
	if err != nil {
		return nil, ErrEmployeeNotFound
	}

	existing.Name = employee.Name
	existing.Phone = employee.Phone
	existing.Role = employee.Role
	existing.IsAdmin = employee.IsAdmin
	existing.IsActive = employee.IsActive
	existing.UpdatedBy = actor.ID.String()

	if errs := validator.ValidateStruct(existing); len(errs) > 0 {
		return nil, validationError(errs)
	}

	if err := s.repo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *employeeService) Deactivate(id uuid.UUID, actor Actor) error {
	existing, err := s.repo.FindByID(id)
	if err != nil {
		return ErrEmployeeNotFound
	}
	existing.IsActive = false
	existing.UpdatedBy = actor.ID.String()
	return s.repo.Update(existing)
}

func (s *employeeService) Delete(id uuid.UUID) error {
	if _, err := s.repo.FindByID(id); err != nil {
		return ErrEmployeeNotFound
	}
	return s.repo.Delete(id)
}

func (s *employeeService) GetAll() ([]model.Employee, error) {
	return s.repo.FindAll()
}

func (s *employeeService) GetByID(id uuid.UUID) (*model.Employee, error) {
	employee, err := s.repo.FindByID(id)
	if err != nil {
		return nil, ErrEmployeeNotFound
	}
	return employee, nil
}
